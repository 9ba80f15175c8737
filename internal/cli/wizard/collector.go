package wizard

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/guidekit/guidekit/internal/engine"
	"github.com/guidekit/guidekit/internal/ui"
)

// Collector walks the question flow and records answers.
type Collector struct {
	questions []engine.Question
	headless  *ui.HeadlessManager
	theme     *huh.Theme
}

// NewCollector creates a Collector over a validated question set.
func NewCollector(questions []engine.Question, theme *ui.Theme, hm *ui.HeadlessManager) *Collector {
	return &Collector{
		questions: questions,
		headless:  hm,
		theme:     newFormTheme(theme.Colors),
	}
}

// Run collects an answer for every reachable question, honoring context
// cancellation between questions. The flow is forward-only: each answered
// question advances the resolver position.
func (c *Collector) Run(ctx context.Context) (*engine.AnswerSet, error) {
	if len(c.questions) == 0 {
		return nil, ErrNoQuestions
	}

	if c.headless.IsHeadless() {
		return c.runHeadless(ctx)
	}
	return c.runInteractive(ctx)
}

// runHeadless answers every reachable question from overrides and question
// defaults without prompting.
func (c *Collector) runHeadless(ctx context.Context) (*engine.AnswerSet, error) {
	resolver := engine.NewDependencyResolver(c.questions)
	answers := engine.NewAnswerSet()

	current := ""
	for q := resolver.NextQuestion(current, answers); q != nil; q = resolver.NextQuestion(current, answers) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		value, ok, err := c.headlessAnswer(q)
		if err != nil {
			return nil, err
		}
		if ok {
			answers.Set(q.ID, value)
		} else if q.Required {
			return nil, fmt.Errorf("%w: %q", ErrMissingAnswer, q.ID)
		}
		current = q.ID
	}

	return answers, nil
}

// headlessAnswer resolves one question from an override or its default.
func (c *Collector) headlessAnswer(q *engine.Question) (any, bool, error) {
	if raw, ok := c.headless.Override(q.ID); ok {
		value, err := parseAnswer(q, raw)
		if err != nil {
			return nil, false, err
		}
		return value, true, nil
	}
	if q.Default != nil {
		return q.Default, true, nil
	}
	return nil, false, nil
}

// parseAnswer converts an override string to the answer shape of the question.
func parseAnswer(q *engine.Question, raw string) (any, error) {
	switch q.Type {
	case engine.QuestionBoolean:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("wizard: question %q: %q is not a boolean", q.ID, raw)
		}
		return b, nil
	case engine.QuestionMultiple:
		var members []string
		for _, part := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				members = append(members, trimmed)
			}
		}
		return members, nil
	default:
		return strings.TrimSpace(raw), nil
	}
}

// runInteractive asks each reachable question as its own huh form.
// One form per question sidesteps the huh v0.8 viewport scroll bug that
// appears when multiple groups share a viewport, and lets the resolver
// re-evaluate prerequisites after every answer.
func (c *Collector) runInteractive(ctx context.Context) (*engine.AnswerSet, error) {
	resolver := engine.NewDependencyResolver(c.questions)
	answers := engine.NewAnswerSet()

	current := ""
	for q := resolver.NextQuestion(current, answers); q != nil; q = resolver.NextQuestion(current, answers) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		value, err := c.ask(q)
		if err != nil {
			return nil, err
		}
		answers.Set(q.ID, value)
		current = q.ID
	}

	return answers, nil
}

// ask runs one question as a standalone form and returns the typed answer.
func (c *Collector) ask(q *engine.Question) (any, error) {
	var (
		field huh.Field
		read  func() any
	)

	switch q.Type {
	case engine.QuestionSingle:
		var selected string
		if def, ok := q.Default.(string); ok {
			selected = def
		}
		field = huh.NewSelect[string]().
			Title(q.Prompt).
			Description(q.Description).
			Options(stringOptions(q.Options)...).
			Value(&selected)
		read = func() any { return selected }

	case engine.QuestionMultiple:
		var selected []string
		if def, ok := q.Default.([]string); ok {
			selected = append(selected, def...)
		}
		ms := huh.NewMultiSelect[string]().
			Title(q.Prompt).
			Description(q.Description).
			Options(stringOptions(q.Options)...).
			Value(&selected)
		if q.Required {
			ms = ms.Validate(func(vals []string) error {
				if len(vals) == 0 {
					return errors.New("select at least one option")
				}
				return nil
			})
		}
		field = ms
		read = func() any { return selected }

	case engine.QuestionBoolean:
		var confirmed bool
		if def, ok := q.Default.(bool); ok {
			confirmed = def
		}
		field = huh.NewConfirm().
			Title(q.Prompt).
			Description(q.Description).
			Value(&confirmed)
		read = func() any { return confirmed }

	default: // engine.QuestionText
		var value string
		inp := huh.NewInput().
			Title(q.Prompt).
			Description(q.Description).
			Value(&value)
		if def, ok := q.Default.(string); ok && def != "" {
			inp = inp.Placeholder(def)
		}
		if q.Required {
			inp = inp.Validate(func(val string) error {
				if strings.TrimSpace(val) == "" {
					return errors.New("a value is required")
				}
				return nil
			})
		}
		field = inp
		read = func() any {
			v := strings.TrimSpace(value)
			if v == "" {
				if def, ok := q.Default.(string); ok {
					return def
				}
			}
			return v
		}
	}

	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(c.theme).
		WithAccessible(false)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, ErrCancelled
		}
		return nil, fmt.Errorf("wizard: %w", err)
	}

	return read(), nil
}

func stringOptions(options []string) []huh.Option[string] {
	opts := make([]huh.Option[string], len(options))
	for i, opt := range options {
		opts[i] = huh.NewOption(opt, opt)
	}
	return opts
}
