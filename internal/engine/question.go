package engine

import "strings"

// QuestionType defines the answer shape of a question.
type QuestionType string

const (
	// QuestionSingle is a single-choice selection from Options.
	QuestionSingle QuestionType = "single"
	// QuestionMultiple is a multi-choice selection from Options.
	QuestionMultiple QuestionType = "multiple"
	// QuestionBoolean is a yes/no question.
	QuestionBoolean QuestionType = "boolean"
	// QuestionText is a free-form text question.
	QuestionText QuestionType = "text"
)

// IsValid checks whether the question type is a known value.
func (t QuestionType) IsValid() bool {
	switch t {
	case QuestionSingle, QuestionMultiple, QuestionBoolean, QuestionText:
		return true
	}
	return false
}

// Question is a single configuration prompt. Questions are loaded once per
// session from the content repository and are immutable thereafter.
type Question struct {
	ID            string       // Unique identifier across the active question set
	Prompt        string       // Text shown to the user
	Description   string       // Optional additional help text
	Type          QuestionType // Answer shape
	Options       []string     // Allowed values, required iff single/multiple
	Default       any          // Typed per Type; applied when unanswered and not required
	Prerequisites []string     // IDs of questions that must be satisfied first
	Required      bool         // Whether an answer must be provided
}

// AnswerSet is the ordered mapping from question id to answer value.
// Insertion order is the order answered. Recording an answer for an id that
// already exists overwrites the value and keeps the original position, which
// is the "go back and change" behavior.
type AnswerSet struct {
	order  []string
	values map[string]any
}

// NewAnswerSet creates an empty AnswerSet.
func NewAnswerSet() *AnswerSet {
	return &AnswerSet{values: make(map[string]any)}
}

// Set records an answer for a question id.
func (a *AnswerSet) Set(id string, value any) {
	if _, exists := a.values[id]; !exists {
		a.order = append(a.order, id)
	}
	a.values[id] = value
}

// Get returns the answer for a question id and whether one was recorded.
func (a *AnswerSet) Get(id string) (any, bool) {
	v, ok := a.values[id]
	return v, ok
}

// Has reports whether an answer was recorded for the question id.
func (a *AnswerSet) Has(id string) bool {
	_, ok := a.values[id]
	return ok
}

// IDs returns the question ids in the order they were answered.
func (a *AnswerSet) IDs() []string {
	out := make([]string, len(a.order))
	copy(out, a.order)
	return out
}

// Len returns the number of recorded answers.
func (a *AnswerSet) Len() int {
	return len(a.order)
}

// answerSatisfies implements the prerequisite satisfaction rule shared by the
// resolver and the validator: a boolean answer satisfies iff true, a sequence
// iff non-empty, a string iff non-blank after trimming, anything else iff the
// value is defined and non-nil.
func answerSatisfies(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return strings.TrimSpace(v) != ""
	case []string:
		return len(v) > 0
	case []any:
		return len(v) > 0
	default:
		return true
	}
}
