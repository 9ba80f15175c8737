package engine

import (
	"errors"
	"testing"
)

func boolQuestion(id string, prereqs ...string) Question {
	return Question{ID: id, Type: QuestionBoolean, Prerequisites: prereqs}
}

func TestNextQuestionFromStart(t *testing.T) {
	r := NewDependencyResolver([]Question{
		boolQuestion("a"),
		boolQuestion("b", "a"),
	})

	q := r.NextQuestion("", NewAnswerSet())
	if q == nil || q.ID != "a" {
		t.Fatalf("NextQuestion(\"\") = %v, want question a", q)
	}
}

func TestNextQuestionSkipsUnmetPrerequisite(t *testing.T) {
	r := NewDependencyResolver([]Question{
		boolQuestion("a"),
		boolQuestion("b", "a"),
	})

	answers := NewAnswerSet()
	answers.Set("a", false)

	if q := r.NextQuestion("a", answers); q != nil {
		t.Fatalf("NextQuestion(a) = %q, want nil (b's boolean prerequisite unmet)", q.ID)
	}

	answers.Set("a", true)
	q := r.NextQuestion("a", answers)
	if q == nil || q.ID != "b" {
		t.Fatalf("NextQuestion(a) = %v, want question b after a=true", q)
	}
}

func TestNextQuestionUnknownCurrentID(t *testing.T) {
	r := NewDependencyResolver([]Question{
		boolQuestion("a"),
		boolQuestion("b"),
	})

	// Malformed currentID is treated as "no current position".
	q := r.NextQuestion("nope", NewAnswerSet())
	if q == nil || q.ID != "a" {
		t.Fatalf("NextQuestion(unknown) = %v, want question a", q)
	}
}

func TestPreviousQuestion(t *testing.T) {
	r := NewDependencyResolver([]Question{
		boolQuestion("a"),
		boolQuestion("b", "a"),
		boolQuestion("c"),
	})

	answers := NewAnswerSet()
	answers.Set("a", true)

	tests := []struct {
		name    string
		current string
		want    string // "" means nil
	}{
		{"from c with met prereq", "c", "b"},
		{"from b", "b", "a"},
		{"at first question", "a", ""},
		{"unknown current", "zzz", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := r.PreviousQuestion(tt.current, answers)
			got := ""
			if q != nil {
				got = q.ID
			}
			if got != tt.want {
				t.Errorf("PreviousQuestion(%q) = %q, want %q", tt.current, got, tt.want)
			}
		})
	}
}

func TestPreviousQuestionSkipsUnmet(t *testing.T) {
	r := NewDependencyResolver([]Question{
		boolQuestion("a"),
		boolQuestion("b", "a"),
		boolQuestion("c"),
	})

	// a=false makes b unreachable, so previous from c lands on a.
	answers := NewAnswerSet()
	answers.Set("a", false)

	q := r.PreviousQuestion("c", answers)
	if q == nil || q.ID != "a" {
		t.Fatalf("PreviousQuestion(c) = %v, want question a", q)
	}
}

func TestPrerequisiteSatisfactionRules(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"true bool", true, true},
		{"false bool", false, false},
		{"non-empty list", []string{"jest"}, true},
		{"empty list", []string{}, false},
		{"non-blank string", "go", true},
		{"blank string", "   ", false},
		{"empty string", "", false},
		{"nil", nil, false},
		{"other defined value", 42, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := answerSatisfies(tt.value); got != tt.want {
				t.Errorf("answerSatisfies(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestDependencySkipNeverReturnsUnmet(t *testing.T) {
	questions := []Question{
		boolQuestion("a"),
		boolQuestion("b", "a"),
		boolQuestion("c"),
		boolQuestion("d", "b"),
	}
	r := NewDependencyResolver(questions)

	answers := NewAnswerSet()
	answers.Set("a", false)

	// Walk the whole flow; b and d must never appear.
	seen := map[string]bool{}
	current := ""
	for i := 0; i <= len(questions); i++ {
		q := r.NextQuestion(current, answers)
		if q == nil {
			break
		}
		seen[q.ID] = true
		current = q.ID
	}

	if seen["b"] || seen["d"] {
		t.Errorf("flow visited unmet-prerequisite questions: %v", seen)
	}
	if !seen["a"] || !seen["c"] {
		t.Errorf("flow skipped reachable questions: %v", seen)
	}
}

func TestValidateQuestionSet(t *testing.T) {
	tests := []struct {
		name      string
		questions []Question
		wantErr   bool
	}{
		{
			name: "valid ordered set",
			questions: []Question{
				boolQuestion("a"),
				boolQuestion("b", "a"),
			},
			wantErr: false,
		},
		{
			name: "duplicate id",
			questions: []Question{
				boolQuestion("a"),
				boolQuestion("a"),
			},
			wantErr: true,
		},
		{
			name: "forward prerequisite",
			questions: []Question{
				boolQuestion("a", "b"),
				boolQuestion("b"),
			},
			wantErr: true,
		},
		{
			name: "cyclic prerequisites",
			questions: []Question{
				boolQuestion("a", "b"),
				boolQuestion("b", "a"),
			},
			wantErr: true,
		},
		{
			name: "unknown prerequisite",
			questions: []Question{
				boolQuestion("a", "ghost"),
			},
			wantErr: true,
		},
		{
			name: "single without options",
			questions: []Question{
				{ID: "a", Type: QuestionSingle},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuestionSet(tt.questions)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidQuestionSet) {
					t.Fatalf("ValidateQuestionSet() = %v, want ErrInvalidQuestionSet", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateQuestionSet() = %v, want nil", err)
			}
		})
	}
}

func TestValidateQuestionSetCollectsAllProblems(t *testing.T) {
	err := ValidateQuestionSet([]Question{
		{ID: "a", Type: QuestionSingle}, // no options
		boolQuestion("b", "ghost"),      // unknown prerequisite
	})

	var setErr *QuestionSetError
	if !errors.As(err, &setErr) {
		t.Fatalf("expected *QuestionSetError, got %T", err)
	}
	if len(setErr.Problems) != 2 {
		t.Errorf("expected 2 collected problems, got %d: %v", len(setErr.Problems), setErr.Problems)
	}
}
