package engine

import "fmt"

// DependencyResolver walks a dependency-ordered question set relative to a
// partially-answered configuration, skipping any question whose prerequisites
// are unmet. It assumes the question set has already passed
// ValidateQuestionSet; traversal itself never fails.
type DependencyResolver struct {
	questions []Question
	index     map[string]int
}

// NewDependencyResolver creates a resolver over the canonical question order.
func NewDependencyResolver(questions []Question) *DependencyResolver {
	index := make(map[string]int, len(questions))
	for i, q := range questions {
		index[q.ID] = i
	}
	return &DependencyResolver{questions: questions, index: index}
}

// Questions returns the canonical question order the resolver scans.
func (r *DependencyResolver) Questions() []Question {
	return r.questions
}

// NextQuestion returns the next askable question after currentID, or nil when
// the flow is complete. An empty or unknown currentID means "no current
// position": the scan starts from the first question. The scan is iterative
// with a loop bound equal to the question count; unmet-prerequisite questions
// are skipped, never recursed into.
func (r *DependencyResolver) NextQuestion(currentID string, answers *AnswerSet) *Question {
	start := 0
	if pos, ok := r.index[currentID]; ok {
		start = pos + 1
	}
	for i := start; i < len(r.questions); i++ {
		if r.prerequisitesMet(&r.questions[i], answers) {
			return &r.questions[i]
		}
	}
	return nil
}

// PreviousQuestion returns the nearest askable question before currentID, or
// nil when at the first question or when currentID is unknown.
func (r *DependencyResolver) PreviousQuestion(currentID string, answers *AnswerSet) *Question {
	pos, ok := r.index[currentID]
	if !ok {
		return nil
	}
	for i := pos - 1; i >= 0; i-- {
		if r.prerequisitesMet(&r.questions[i], answers) {
			return &r.questions[i]
		}
	}
	return nil
}

// prerequisitesMet applies the satisfaction rule over ALL declared
// prerequisite ids (logical AND).
func (r *DependencyResolver) prerequisitesMet(q *Question, answers *AnswerSet) bool {
	return prerequisitesMet(q, answers)
}

func prerequisitesMet(q *Question, answers *AnswerSet) bool {
	for _, id := range q.Prerequisites {
		value, ok := answers.Get(id)
		if !ok || !answerSatisfies(value) {
			return false
		}
	}
	return true
}

// ValidateQuestionSet checks the structural invariants of a question set:
// globally unique ids, prerequisites referencing only earlier questions
// (which also rules out cycles), valid question types, and option lists
// present exactly when the type needs them. All problems are collected so a
// content author can fix everything at once.
func ValidateQuestionSet(questions []Question) error {
	var problems []string
	seen := make(map[string]int, len(questions))

	for i, q := range questions {
		if q.ID == "" {
			problems = append(problems, fmt.Sprintf("question at position %d has an empty id", i))
			continue
		}
		if prev, dup := seen[q.ID]; dup {
			problems = append(problems, fmt.Sprintf("duplicate question id %q (positions %d and %d)", q.ID, prev, i))
			continue
		}
		seen[q.ID] = i

		if !q.Type.IsValid() {
			problems = append(problems, fmt.Sprintf("question %q has unknown type %q", q.ID, q.Type))
		}

		switch q.Type {
		case QuestionSingle, QuestionMultiple:
			if len(q.Options) == 0 {
				problems = append(problems, fmt.Sprintf("question %q of type %s has no options", q.ID, q.Type))
			}
		}

		for _, dep := range q.Prerequisites {
			pos, known := seen[dep]
			if !known {
				// Unknown here means the id either does not exist at all or
				// appears later in canonical order; both are forward
				// references and both are configuration errors.
				problems = append(problems, fmt.Sprintf("question %q has forward or unknown prerequisite %q", q.ID, dep))
				continue
			}
			if pos == i {
				problems = append(problems, fmt.Sprintf("question %q depends on itself", q.ID))
			}
		}
	}

	if len(problems) > 0 {
		return &QuestionSetError{Problems: problems, Wrapped: ErrInvalidQuestionSet}
	}
	return nil
}
