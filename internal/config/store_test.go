package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guidekit/guidekit/pkg/models"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func validConfiguration() models.ProjectConfiguration {
	return models.ProjectConfiguration{
		Identity: models.IdentityConfig{
			ProjectName: "demo",
			ProjectType: "typescript",
		},
		Philosophy: models.PhilosophyConfig{TDD: true, StrictTypes: true},
		Tools: models.ToolsConfig{
			TestingTools:   []string{"vitest"},
			PackageManager: "pnpm",
		},
		Quality: models.QualityConfig{CoverageTarget: 80},
		Outputs: models.OutputConfig{Documents: []string{"claude", "readme"}},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, quietLogger())

	want := validConfiguration()
	require.NoError(t, store.Save(want))
	assert.True(t, store.Exists())

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadMissingFile(t *testing.T) {
	store := NewStore(t.TempDir(), quietLogger())

	assert.False(t, store.Exists())
	_, err := store.Load()
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestLoadMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte("project: [\n"), 0o644))

	store := NewStore(dir, quietLogger())
	_, err := store.Load()
	assert.ErrorIs(t, err, ErrInvalidYAML)
}

func TestLoadInvalidConfiguration(t *testing.T) {
	dir := t.TempDir()
	body := `
project:
  identity:
    project_name: ""
    project_type: cobol
  outputs:
    documents: [claude]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte(body), 0o644))

	store := NewStore(dir, quietLogger())
	_, err := store.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSaveRejectsInvalidConfiguration(t *testing.T) {
	store := NewStore(t.TempDir(), quietLogger())

	cfg := validConfiguration()
	cfg.Outputs.Documents = nil

	err := store.Save(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.False(t, store.Exists())
}

func TestSaveOverwritesAtomically(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, quietLogger())

	first := validConfiguration()
	require.NoError(t, store.Save(first))

	second := first
	second.Identity.ProjectName = "renamed"
	require.NoError(t, store.Save(second))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Identity.ProjectName)

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ConfigFile, entries[0].Name())
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := models.ProjectConfiguration{
		Identity: models.IdentityConfig{ProjectName: "  ", ProjectType: "fortran"},
		Quality:  models.QualityConfig{CoverageTarget: 140},
		Outputs:  models.OutputConfig{Documents: []string{"claude", "notepad"}},
	}

	err := Validate(cfg)
	require.Error(t, err)

	var verrs *ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs.Errors, 4)
}

func TestValidateAcceptsAllProjectTypes(t *testing.T) {
	for _, pt := range []string{"typescript", "javascript", "python", "go"} {
		cfg := validConfiguration()
		cfg.Identity.ProjectType = pt
		assert.NoError(t, Validate(cfg), "project type %q", pt)
	}
}
