package engine

import (
	"fmt"
	"strings"
)

// ValidationResult is the outcome of validating an answer set. Valid is false
// iff at least one error exists. Errors are ordered by the canonical question
// order so a caller can report everything at once.
type ValidationResult struct {
	Valid  bool
	Errors []AnswerError
}

// AnswerValidator validates a completed (or in-progress) answer set against
// the question set's type constraints and required-ness.
type AnswerValidator struct{}

// NewAnswerValidator creates an AnswerValidator.
func NewAnswerValidator() *AnswerValidator {
	return &AnswerValidator{}
}

// Validate checks every reachable question and collects ALL errors rather
// than short-circuiting. Questions whose prerequisites are not satisfied are
// skipped entirely: unreachable questions impose no constraints.
func (v *AnswerValidator) Validate(answers *AnswerSet, questions []Question) ValidationResult {
	var errs []AnswerError

	for i := range questions {
		q := &questions[i]
		if !prerequisitesMet(q, answers) {
			continue
		}

		value, answered := answers.Get(q.ID)
		if !answered || isEmptyString(value) {
			if q.Required {
				errs = append(errs, AnswerError{
					QuestionID: q.ID,
					Kind:       KindMissingRequiredAnswer,
					Message:    "a required question was not answered",
				})
			}
			continue
		}

		if err := validateAnswerType(q, value); err != nil {
			errs = append(errs, *err)
		}
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// validateAnswerType applies the per-type domain checks to an answered value.
func validateAnswerType(q *Question, value any) *AnswerError {
	switch q.Type {
	case QuestionSingle:
		s, ok := value.(string)
		if !ok {
			return &AnswerError{
				QuestionID: q.ID,
				Kind:       KindTypeMismatch,
				Message:    fmt.Sprintf("expected a string option, got %T", value),
			}
		}
		if !containsOption(q.Options, s) {
			return &AnswerError{
				QuestionID: q.ID,
				Kind:       KindInvalidOption,
				Message:    fmt.Sprintf("%q is not one of: %s", s, strings.Join(q.Options, ", ")),
			}
		}

	case QuestionMultiple:
		members, ok := stringSlice(value)
		if !ok {
			return &AnswerError{
				QuestionID: q.ID,
				Kind:       KindTypeMismatch,
				Message:    fmt.Sprintf("expected a list of options, got %T", value),
			}
		}
		var offending []string
		for _, m := range members {
			if !containsOption(q.Options, m) {
				offending = append(offending, m)
			}
		}
		if len(offending) > 0 {
			return &AnswerError{
				QuestionID: q.ID,
				Kind:       KindInvalidOption,
				Message:    fmt.Sprintf("invalid options: %s", strings.Join(offending, ", ")),
			}
		}

	case QuestionBoolean:
		if _, ok := value.(bool); !ok {
			return &AnswerError{
				QuestionID: q.ID,
				Kind:       KindTypeMismatch,
				Message:    fmt.Sprintf("expected true or false, got %T", value),
			}
		}

	case QuestionText:
		if _, ok := value.(string); !ok {
			return &AnswerError{
				QuestionID: q.ID,
				Kind:       KindTypeMismatch,
				Message:    fmt.Sprintf("expected a string, got %T", value),
			}
		}
	}
	return nil
}

func isEmptyString(value any) bool {
	s, ok := value.(string)
	return ok && s == ""
}

func containsOption(options []string, value string) bool {
	for _, o := range options {
		if o == value {
			return true
		}
	}
	return false
}

// stringSlice normalizes a sequence answer to []string. YAML decoding and the
// wizard both can hand over []any.
func stringSlice(value any) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		return v, true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}
