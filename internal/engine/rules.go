package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/guidekit/guidekit/pkg/models"
)

// Operator is a condition comparison operator.
type Operator string

const (
	// OpEquals matches when the resolved field strictly equals the value.
	OpEquals Operator = "equals"
	// OpIncludes matches when the resolved field is a sequence containing the value.
	OpIncludes Operator = "includes"
	// OpExists matches when the resolved field is defined, non-nil, and not
	// an empty string.
	OpExists Operator = "exists"
)

// IsValid checks whether the operator is a known value.
func (o Operator) IsValid() bool {
	switch o {
	case OpEquals, OpIncludes, OpExists:
		return true
	}
	return false
}

// Condition is one predicate clause over the project configuration. Field is
// a dotted path into the configuration's field map; missing path segments
// resolve to undefined rather than an error.
type Condition struct {
	Field    string
	Operator Operator
	Value    any
}

// ConditionRule selects one content fragment when any of its conditions
// matches the configuration. An empty condition list always fires. Priority
// breaks ties when fragments compete for the same section ordering: higher
// priority sorts first, equal priorities keep declaration order.
type ConditionRule struct {
	ContentID     string
	Conditions    []Condition
	Priority      int
	ConflictsWith []string
	Concepts      []string
}

// ConflictDrop records a fired rule that was dropped because a
// higher-priority fired rule declared a conflict with it.
type ConflictDrop struct {
	ContentID string // the dropped fragment
	Winner    string // the higher-priority fragment that survived
}

// Selection is the full result of rule evaluation: the ordered fragment ids,
// the union of concept flags contributed by the fired rules, and any
// conflict-resolution drops.
type Selection struct {
	ContentIDs []string
	Concepts   []string
	Dropped    []ConflictDrop
}

// RuleEngine evaluates declarative condition rules against a resolved
// configuration. Evaluation is pure and deterministic: the same
// configuration and rule set always produce the same ordered selection.
type RuleEngine struct{}

// NewRuleEngine creates a RuleEngine.
func NewRuleEngine() *RuleEngine {
	return &RuleEngine{}
}

// SelectApplicable returns the ordered content ids selected for the
// configuration. See Select for the full result including concepts and drops.
func (e *RuleEngine) SelectApplicable(cfg models.ProjectConfiguration, rules []ConditionRule) []string {
	return e.Select(cfg, rules).ContentIDs
}

// Concepts returns the deterministic union of concept flags contributed by
// the rules that fire for the configuration.
func (e *RuleEngine) Concepts(cfg models.ProjectConfiguration, rules []ConditionRule) []string {
	return e.Select(cfg, rules).Concepts
}

// Select evaluates every rule, orders the fired ones by priority descending
// with declaration order breaking ties (stable sort — the ordering is a
// user-visible contract that drives section layout), and resolves declared
// conflicts by dropping the lower-priority member of each conflicting pair.
func (e *RuleEngine) Select(cfg models.ProjectConfiguration, rules []ConditionRule) Selection {
	fields := cfg.FieldMap()

	type firedRule struct {
		rule *ConditionRule
		pos  int
	}
	var fired []firedRule
	for i := range rules {
		if ruleFires(&rules[i], fields) {
			fired = append(fired, firedRule{rule: &rules[i], pos: i})
		}
	}

	sort.SliceStable(fired, func(a, b int) bool {
		return fired[a].rule.Priority > fired[b].rule.Priority
	})

	sel := Selection{}
	kept := make(map[string]bool, len(fired))
	conflicted := make(map[string]string) // dropped id -> winning id

	for _, f := range fired {
		id := f.rule.ContentID
		if winner, dropped := conflicted[id]; dropped {
			sel.Dropped = append(sel.Dropped, ConflictDrop{ContentID: id, Winner: winner})
			continue
		}
		blocked := false
		for _, rival := range f.rule.ConflictsWith {
			if kept[rival] {
				// A higher-priority (or earlier-declared) fired rule already
				// claimed the slot; this rule loses the conflict.
				sel.Dropped = append(sel.Dropped, ConflictDrop{ContentID: id, Winner: rival})
				blocked = true
				break
			}
		}
		if blocked {
			continue
		}
		kept[id] = true
		sel.ContentIDs = append(sel.ContentIDs, id)
		for _, rival := range f.rule.ConflictsWith {
			if _, seen := conflicted[rival]; !seen {
				conflicted[rival] = id
			}
		}
		sel.Concepts = appendUnique(sel.Concepts, f.rule.Concepts)
	}

	return sel
}

// ruleFires evaluates the rule's disjunction: an empty condition list fires
// unconditionally; otherwise any single matching condition is enough. The
// permissive OR policy is deliberate — a rule included for overlapping
// reasons only needs one reason to hold.
func ruleFires(rule *ConditionRule, fields map[string]any) bool {
	if len(rule.Conditions) == 0 {
		return true
	}
	for _, c := range rule.Conditions {
		if conditionMatches(&c, fields) {
			return true
		}
	}
	return false
}

func conditionMatches(c *Condition, fields map[string]any) bool {
	value, defined := resolvePath(fields, c.Field)

	switch c.Operator {
	case OpEquals:
		return defined && equalValues(value, c.Value)
	case OpIncludes:
		if !defined {
			return false
		}
		members, ok := stringSlice(value)
		if !ok {
			return false
		}
		want := fmt.Sprintf("%v", c.Value)
		for _, m := range members {
			if m == want {
				return true
			}
		}
		return false
	case OpExists:
		return defined && value != nil && value != ""
	}
	return false
}

// resolvePath walks a dotted path through nested maps. A missing segment
// yields undefined, never an error.
func resolvePath(fields map[string]any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	var current any = fields
	for _, segment := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// equalValues compares strictly but bridges the numeric representations that
// YAML decoding produces (int vs float64 for whole numbers).
func equalValues(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}
	if na, ok := toInt(a); ok {
		if nb, ok := toInt(b); ok {
			return na == nb
		}
		return false
	}
	return a == b
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}

func appendUnique(dst []string, src []string) []string {
	for _, s := range src {
		found := false
		for _, existing := range dst {
			if existing == s {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, s)
		}
	}
	return dst
}

// ValidateRuleSet checks structural invariants of a rule set against the
// fragment inventory: unique content ids, known operators, and every rule
// referencing an existing fragment. Problems are collected like
// ValidateQuestionSet so authors see everything at once.
func ValidateRuleSet(rules []ConditionRule, fragments []ContentFragment) error {
	var problems []string

	fragmentIDs := make(map[string]bool, len(fragments))
	for _, f := range fragments {
		fragmentIDs[f.ID] = true
	}

	seen := make(map[string]bool, len(rules))
	for i, r := range rules {
		if r.ContentID == "" {
			problems = append(problems, fmt.Sprintf("rule at position %d has an empty content id", i))
			continue
		}
		if seen[r.ContentID] {
			problems = append(problems, fmt.Sprintf("duplicate rule for content id %q", r.ContentID))
		}
		seen[r.ContentID] = true

		if !fragmentIDs[r.ContentID] {
			problems = append(problems, fmt.Sprintf("rule %q references an unknown fragment", r.ContentID))
		}
		for _, c := range r.Conditions {
			if !c.Operator.IsValid() {
				problems = append(problems, fmt.Sprintf("rule %q has unknown operator %q", r.ContentID, c.Operator))
			}
			if c.Field == "" {
				problems = append(problems, fmt.Sprintf("rule %q has a condition with an empty field path", r.ContentID))
			}
		}
	}

	if len(problems) > 0 {
		return &QuestionSetError{Problems: problems, Wrapped: ErrInvalidRuleSet}
	}
	return nil
}
