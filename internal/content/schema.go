// Package content supplies the static data the engine consumes: question
// definitions, condition rules, and content fragments. Content is loaded
// from YAML files in a content directory, falling back to the embedded
// default set, and held in a caller-owned cache with explicit invalidation.
package content

import (
	"fmt"

	"github.com/guidekit/guidekit/internal/engine"
)

// YAML schema types. Each file wraps its records under a top-level key so a
// content directory stays self-describing.

type questionsFile struct {
	Questions []questionYAML `yaml:"questions"`
}

type questionYAML struct {
	ID            string   `yaml:"id"`
	Prompt        string   `yaml:"prompt"`
	Description   string   `yaml:"description"`
	Type          string   `yaml:"type"`
	Options       []string `yaml:"options"`
	Default       any      `yaml:"default"`
	Prerequisites []string `yaml:"prerequisites"`
	Required      bool     `yaml:"required"`
}

type rulesFile struct {
	Rules []ruleYAML `yaml:"rules"`
}

type ruleYAML struct {
	Content       string          `yaml:"content"`
	Priority      int             `yaml:"priority"`
	Concepts      []string        `yaml:"concepts"`
	ConflictsWith []string        `yaml:"conflicts_with"`
	Conditions    []conditionYAML `yaml:"conditions"`
}

type conditionYAML struct {
	Field    string `yaml:"field"`
	Operator string `yaml:"operator"`
	Value    any    `yaml:"value"`
}

type fragmentsFile struct {
	Fragments []fragmentYAML `yaml:"fragments"`
}

type fragmentYAML struct {
	ID       string `yaml:"id"`
	Category string `yaml:"category"`
	Section  string `yaml:"section"`
	Weight   int    `yaml:"weight"`
	Body     string `yaml:"body"`
}

// toQuestion converts a YAML record to the engine type, normalizing the
// default value to the shape the question type expects.
func (q questionYAML) toQuestion() (engine.Question, error) {
	qt := engine.QuestionType(q.Type)
	if !qt.IsValid() {
		return engine.Question{}, fmt.Errorf("question %q: unknown type %q", q.ID, q.Type)
	}

	def := q.Default
	if def != nil {
		switch qt {
		case engine.QuestionBoolean:
			if _, ok := def.(bool); !ok {
				return engine.Question{}, fmt.Errorf("question %q: default must be a boolean", q.ID)
			}
		case engine.QuestionSingle, engine.QuestionText:
			if _, ok := def.(string); !ok {
				return engine.Question{}, fmt.Errorf("question %q: default must be a string", q.ID)
			}
		case engine.QuestionMultiple:
			members, ok := toStringList(def)
			if !ok {
				return engine.Question{}, fmt.Errorf("question %q: default must be a list of strings", q.ID)
			}
			def = members
		}
	}

	return engine.Question{
		ID:            q.ID,
		Prompt:        q.Prompt,
		Description:   q.Description,
		Type:          qt,
		Options:       q.Options,
		Default:       def,
		Prerequisites: q.Prerequisites,
		Required:      q.Required,
	}, nil
}

func (r ruleYAML) toRule() engine.ConditionRule {
	conditions := make([]engine.Condition, 0, len(r.Conditions))
	for _, c := range r.Conditions {
		conditions = append(conditions, engine.Condition{
			Field:    c.Field,
			Operator: engine.Operator(c.Operator),
			Value:    c.Value,
		})
	}
	return engine.ConditionRule{
		ContentID:     r.Content,
		Priority:      r.Priority,
		Concepts:      r.Concepts,
		ConflictsWith: r.ConflictsWith,
		Conditions:    conditions,
	}
}

func (f fragmentYAML) toFragment() (engine.ContentFragment, error) {
	category := engine.FragmentCategory(f.Category)
	if !category.IsValid() {
		return engine.ContentFragment{}, fmt.Errorf("fragment %q: unknown category %q", f.ID, f.Category)
	}
	return engine.ContentFragment{
		ID:       f.ID,
		Category: category,
		Section:  f.Section,
		Weight:   f.Weight,
		Body:     f.Body,
	}, nil
}

func toStringList(v any) ([]string, bool) {
	switch list := v.(type) {
	case []string:
		return list, true
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}
