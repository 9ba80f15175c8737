package content

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guidekit/guidekit/internal/engine"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestLoadEmbeddedDefaults(t *testing.T) {
	repo := NewRepository("", NewCache(), quietLogger())

	set, err := repo.Load()
	require.NoError(t, err)

	assert.NotEmpty(t, set.Questions)
	assert.NotEmpty(t, set.Rules)
	assert.NotEmpty(t, set.Fragments)

	// Every rule must point at a defined fragment.
	fragments := make(map[string]bool, len(set.Fragments))
	for _, f := range set.Fragments {
		fragments[f.ID] = true
	}
	for _, rule := range set.Rules {
		assert.True(t, fragments[rule.ContentID], "rule references undefined fragment %q", rule.ContentID)
	}
}

func TestLoadEmbeddedQuestionOrder(t *testing.T) {
	repo := NewRepository("", NewCache(), quietLogger())

	questions, err := repo.LoadQuestions()
	require.NoError(t, err)
	require.NotEmpty(t, questions)

	assert.Equal(t, "project_name", questions[0].ID)
	assert.Equal(t, "output_documents", questions[len(questions)-1].ID)

	// Prerequisites only reference earlier questions, so the resolver can
	// walk the list in a single direction.
	seen := make(map[string]bool, len(questions))
	for _, q := range questions {
		for _, prereq := range q.Prerequisites {
			assert.True(t, seen[prereq], "question %q has forward prerequisite %q", q.ID, prereq)
		}
		seen[q.ID] = true
	}
}

func TestDirectoryOverridesEmbedded(t *testing.T) {
	dir := t.TempDir()
	writeContentFile(t, dir, QuestionsFile, `
questions:
  - id: only_question
    prompt: "Just one"
    type: text
`)

	repo := NewRepository(dir, NewCache(), quietLogger())
	set, err := repo.Load()
	require.NoError(t, err)

	// Questions come from the directory, rules and fragments fall back to
	// the embedded defaults file by file.
	require.Len(t, set.Questions, 1)
	assert.Equal(t, "only_question", set.Questions[0].ID)
	assert.NotEmpty(t, set.Fragments)
}

func TestLoadRejectsUnknownQuestionType(t *testing.T) {
	dir := t.TempDir()
	writeContentFile(t, dir, QuestionsFile, `
questions:
  - id: broken
    prompt: "Broken"
    type: slider
`)

	repo := NewRepository(dir, NewCache(), quietLogger())
	_, err := repo.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrContentLoad)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	writeContentFile(t, dir, RulesFile, "rules: [\n")

	repo := NewRepository(dir, NewCache(), quietLogger())
	_, err := repo.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrContentLoad)
}

func TestLoadRejectsDanglingRuleReference(t *testing.T) {
	dir := t.TempDir()
	writeContentFile(t, dir, RulesFile, `
rules:
  - content: no-such-fragment
    priority: 10
`)

	repo := NewRepository(dir, NewCache(), quietLogger())
	_, err := repo.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrContentLoad)
	assert.ErrorIs(t, err, engine.ErrInvalidRuleSet)
}

func TestLoadRejectsInvalidQuestionSet(t *testing.T) {
	dir := t.TempDir()
	writeContentFile(t, dir, QuestionsFile, `
questions:
  - id: dup
    prompt: "First"
    type: text
  - id: dup
    prompt: "Second"
    type: text
`)

	repo := NewRepository(dir, NewCache(), quietLogger())
	_, err := repo.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrContentLoad)
	assert.ErrorIs(t, err, engine.ErrInvalidQuestionSet)
}

func TestCacheServesWithoutReread(t *testing.T) {
	dir := t.TempDir()
	writeContentFile(t, dir, QuestionsFile, `
questions:
  - id: cached
    prompt: "Cached"
    type: text
`)

	cache := NewCache()
	repo := NewRepository(dir, cache, quietLogger())
	first, err := repo.Load()
	require.NoError(t, err)

	// Break the file on disk; the cached set still serves.
	writeContentFile(t, dir, QuestionsFile, "questions: [\n")
	second, err := repo.Load()
	require.NoError(t, err)
	assert.Same(t, first, second)

	// After invalidation the broken file surfaces.
	cache.Invalidate()
	_, err = repo.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrContentLoad)
}

func TestReloadRefreshesCache(t *testing.T) {
	dir := t.TempDir()
	writeContentFile(t, dir, QuestionsFile, `
questions:
  - id: before
    prompt: "Before"
    type: text
`)

	repo := NewRepository(dir, NewCache(), quietLogger())
	set, err := repo.Load()
	require.NoError(t, err)
	require.Equal(t, "before", set.Questions[0].ID)

	writeContentFile(t, dir, QuestionsFile, `
questions:
  - id: after
    prompt: "After"
    type: text
`)

	set, err = repo.Reload()
	require.NoError(t, err)
	assert.Equal(t, "after", set.Questions[0].ID)

	// The refreshed set is what subsequent loads see.
	set, err = repo.Load()
	require.NoError(t, err)
	assert.Equal(t, "after", set.Questions[0].ID)
}

func TestMultipleDefaultNormalized(t *testing.T) {
	dir := t.TempDir()
	writeContentFile(t, dir, QuestionsFile, `
questions:
  - id: picks
    prompt: "Pick some"
    type: multiple
    options: [a, b, c]
    default: [a, c]
`)

	repo := NewRepository(dir, NewCache(), quietLogger())
	questions, err := repo.LoadQuestions()
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, []string{"a", "c"}, questions[0].Default)
}

func writeContentFile(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}
