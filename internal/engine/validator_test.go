package engine

import "testing"

func TestValidateMissingRequiredAnswer(t *testing.T) {
	v := NewAnswerValidator()

	result := v.Validate(NewAnswerSet(), []Question{
		{ID: "x", Type: QuestionText, Required: true},
	})

	if result.Valid {
		t.Fatal("expected invalid result")
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d", len(result.Errors))
	}
	if result.Errors[0].QuestionID != "x" || result.Errors[0].Kind != KindMissingRequiredAnswer {
		t.Errorf("unexpected error: %+v", result.Errors[0])
	}
}

func TestValidateSkipsUnreachableQuestions(t *testing.T) {
	v := NewAnswerValidator()
	questions := []Question{
		{ID: "a", Type: QuestionBoolean, Required: true},
		{ID: "b", Type: QuestionText, Required: true, Prerequisites: []string{"a"}},
	}

	answers := NewAnswerSet()
	answers.Set("a", false)

	// b is unreachable, so its required-ness imposes no constraint.
	result := v.Validate(answers, questions)
	if !result.Valid {
		t.Fatalf("expected valid result, got errors: %v", result.Errors)
	}
}

func TestValidatePerTypeChecks(t *testing.T) {
	tests := []struct {
		name     string
		question Question
		answer   any
		wantKind ErrorKind // "" means no error expected
	}{
		{
			name:     "single valid option",
			question: Question{ID: "q", Type: QuestionSingle, Options: []string{"a", "b"}},
			answer:   "a",
		},
		{
			name:     "single invalid option",
			question: Question{ID: "q", Type: QuestionSingle, Options: []string{"a", "b"}},
			answer:   "c",
			wantKind: KindInvalidOption,
		},
		{
			name:     "single non-string",
			question: Question{ID: "q", Type: QuestionSingle, Options: []string{"a"}},
			answer:   7,
			wantKind: KindTypeMismatch,
		},
		{
			name:     "multiple all valid",
			question: Question{ID: "q", Type: QuestionMultiple, Options: []string{"a", "b", "c"}},
			answer:   []string{"a", "c"},
		},
		{
			name:     "multiple with offender",
			question: Question{ID: "q", Type: QuestionMultiple, Options: []string{"a", "b"}},
			answer:   []string{"a", "z"},
			wantKind: KindInvalidOption,
		},
		{
			name:     "multiple not a list",
			question: Question{ID: "q", Type: QuestionMultiple, Options: []string{"a"}},
			answer:   "a",
			wantKind: KindTypeMismatch,
		},
		{
			name:     "boolean true",
			question: Question{ID: "q", Type: QuestionBoolean},
			answer:   true,
		},
		{
			name:     "boolean string",
			question: Question{ID: "q", Type: QuestionBoolean},
			answer:   "true",
			wantKind: KindTypeMismatch,
		},
		{
			name:     "text string",
			question: Question{ID: "q", Type: QuestionText},
			answer:   "hello",
		},
		{
			name:     "text non-string",
			question: Question{ID: "q", Type: QuestionText},
			answer:   []string{"hello"},
			wantKind: KindTypeMismatch,
		},
	}

	v := NewAnswerValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answers := NewAnswerSet()
			answers.Set(tt.question.ID, tt.answer)

			result := v.Validate(answers, []Question{tt.question})
			if tt.wantKind == "" {
				if !result.Valid {
					t.Fatalf("expected valid, got errors: %v", result.Errors)
				}
				return
			}
			if result.Valid || len(result.Errors) != 1 {
				t.Fatalf("expected exactly one error, got %+v", result)
			}
			if result.Errors[0].Kind != tt.wantKind {
				t.Errorf("error kind = %q, want %q", result.Errors[0].Kind, tt.wantKind)
			}
		})
	}
}

func TestValidateCollectsAllErrorsInCanonicalOrder(t *testing.T) {
	v := NewAnswerValidator()
	questions := []Question{
		{ID: "first", Type: QuestionText, Required: true},
		{ID: "second", Type: QuestionSingle, Options: []string{"a"}, Required: true},
		{ID: "third", Type: QuestionBoolean, Required: true},
	}

	answers := NewAnswerSet()
	// Answer out of canonical order; errors must still come back in it.
	answers.Set("third", "not-a-bool")
	answers.Set("second", "z")

	result := v.Validate(answers, questions)
	if result.Valid {
		t.Fatal("expected invalid result")
	}
	if len(result.Errors) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(result.Errors), result.Errors)
	}

	wantOrder := []string{"first", "second", "third"}
	for i, want := range wantOrder {
		if result.Errors[i].QuestionID != want {
			t.Errorf("error %d is for %q, want %q", i, result.Errors[i].QuestionID, want)
		}
	}
}

func TestValidateEmptyStringCountsAsMissing(t *testing.T) {
	v := NewAnswerValidator()
	answers := NewAnswerSet()
	answers.Set("x", "")

	result := v.Validate(answers, []Question{
		{ID: "x", Type: QuestionText, Required: true},
	})
	if result.Valid || result.Errors[0].Kind != KindMissingRequiredAnswer {
		t.Fatalf("empty string should report MissingRequiredAnswer, got %+v", result)
	}
}

func TestValidateOptionalUnansweredIsValid(t *testing.T) {
	v := NewAnswerValidator()

	result := v.Validate(NewAnswerSet(), []Question{
		{ID: "x", Type: QuestionText, Required: false},
	})
	if !result.Valid {
		t.Fatalf("optional unanswered question should be valid, got %v", result.Errors)
	}
}
