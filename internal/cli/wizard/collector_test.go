package wizard

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/guidekit/guidekit/internal/engine"
	"github.com/guidekit/guidekit/internal/ui"
)

func headlessCollector(questions []engine.Question, overrides map[string]string) *Collector {
	hm := ui.NewHeadlessManager()
	hm.ForceHeadless(true)
	hm.SetOverrides(overrides)
	return NewCollector(questions, ui.NewTheme(), hm)
}

func testQuestions() []engine.Question {
	return []engine.Question{
		{ID: "project_name", Prompt: "Name?", Type: engine.QuestionText, Required: true},
		{ID: "tdd", Prompt: "TDD?", Type: engine.QuestionBoolean, Default: false},
		{
			ID:      "testing_tools",
			Prompt:  "Tools?",
			Type:    engine.QuestionMultiple,
			Options: []string{"jest", "vitest", "cypress"},
		},
		{
			ID:            "coverage_target",
			Prompt:        "Coverage?",
			Type:          engine.QuestionSingle,
			Options:       []string{"70", "80", "90"},
			Default:       "80",
			Prerequisites: []string{"testing_tools"},
		},
	}
}

func TestHeadlessRunWithOverrides(t *testing.T) {
	c := headlessCollector(testQuestions(), map[string]string{
		"project_name":  "demo",
		"tdd":           "true",
		"testing_tools": "jest, cypress",
	})

	answers, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if v, _ := answers.Get("project_name"); v != "demo" {
		t.Errorf("project_name = %v, want demo", v)
	}
	if v, _ := answers.Get("tdd"); v != true {
		t.Errorf("tdd = %v, want true", v)
	}
	if v, _ := answers.Get("testing_tools"); !reflect.DeepEqual(v, []string{"jest", "cypress"}) {
		t.Errorf("testing_tools = %v, want [jest cypress]", v)
	}
	// coverage_target becomes reachable once testing_tools is non-empty
	// and falls back to its default.
	if v, _ := answers.Get("coverage_target"); v != "80" {
		t.Errorf("coverage_target = %v, want 80", v)
	}
}

func TestHeadlessSkipsUnreachableQuestions(t *testing.T) {
	c := headlessCollector(testQuestions(), map[string]string{
		"project_name": "demo",
	})

	answers, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// testing_tools has no default and no override, so it stays unanswered
	// and coverage_target is never reached.
	if answers.Has("testing_tools") {
		t.Error("testing_tools should be unanswered")
	}
	if answers.Has("coverage_target") {
		t.Error("coverage_target should be skipped when its prerequisite is unmet")
	}
}

func TestHeadlessRequiredWithoutAnswer(t *testing.T) {
	c := headlessCollector(testQuestions(), nil)

	_, err := c.Run(context.Background())
	if !errors.Is(err, ErrMissingAnswer) {
		t.Fatalf("Run() error = %v, want ErrMissingAnswer", err)
	}
}

func TestHeadlessInvalidBooleanOverride(t *testing.T) {
	c := headlessCollector(testQuestions(), map[string]string{
		"project_name": "demo",
		"tdd":          "maybe",
	})

	_, err := c.Run(context.Background())
	if err == nil {
		t.Fatal("Run() should reject a non-boolean override for a boolean question")
	}
}

func TestHeadlessContextCancellation(t *testing.T) {
	c := headlessCollector(testQuestions(), map[string]string{"project_name": "demo"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
}

func TestRunEmptyQuestionSet(t *testing.T) {
	c := headlessCollector(nil, nil)

	_, err := c.Run(context.Background())
	if !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("Run() error = %v, want ErrNoQuestions", err)
	}
}

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		name    string
		qtype   engine.QuestionType
		raw     string
		want    any
		wantErr bool
	}{
		{name: "boolean true", qtype: engine.QuestionBoolean, raw: "true", want: true},
		{name: "boolean false", qtype: engine.QuestionBoolean, raw: "false", want: false},
		{name: "boolean padded", qtype: engine.QuestionBoolean, raw: " 1 ", want: true},
		{name: "boolean invalid", qtype: engine.QuestionBoolean, raw: "yes please", wantErr: true},
		{name: "multiple list", qtype: engine.QuestionMultiple, raw: "a, b ,c", want: []string{"a", "b", "c"}},
		{name: "multiple empty entries dropped", qtype: engine.QuestionMultiple, raw: "a,,b,", want: []string{"a", "b"}},
		{name: "text trimmed", qtype: engine.QuestionText, raw: "  hello  ", want: "hello"},
		{name: "single passthrough", qtype: engine.QuestionSingle, raw: "typescript", want: "typescript"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &engine.Question{ID: "q", Type: tt.qtype}
			got, err := parseAnswer(q, tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseAnswer(%q) should fail", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseAnswer(%q) error = %v", tt.raw, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseAnswer(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestFormThemeBuilds(t *testing.T) {
	theme := newFormTheme(ui.NewTheme().Colors)
	if theme == nil {
		t.Fatal("newFormTheme() returned nil")
	}
}
