package engine

import (
	"strconv"
	"strings"

	"github.com/guidekit/guidekit/pkg/models"
)

// Canonical question ids understood by the configuration transform. The
// default content set uses these ids; custom content sets may add questions,
// but only these feed the typed configuration.
const (
	QProjectName     = "project_name"
	QDescription     = "description"
	QAuthor          = "author"
	QProjectType     = "project_type"
	QTDD             = "tdd"
	QStrictTypes     = "strict_types"
	QDocComments     = "doc_comments"
	QTestingTools    = "testing_tools"
	QLinter          = "linter"
	QFormatter       = "formatter"
	QPackageManager  = "package_manager"
	QCoverageTarget  = "coverage_target"
	QCodeReview      = "code_review"
	QSecurityAudit   = "security_audit"
	QCI              = "ci"
	QDocker          = "docker"
	QGitHooks        = "git_hooks"
	QOutputDocuments = "output_documents"
)

// DefaultCoverageTarget is applied when the coverage question is unanswered.
const DefaultCoverageTarget = 80

// BuildConfiguration is the one-way, deterministic transform from a completed
// answer set to the strongly-shaped project configuration. Untyped answer
// values stop here: every field of the result has a defined value, with the
// question's default (or a compiled fallback) applied when unanswered.
func BuildConfiguration(answers *AnswerSet, questions []Question) models.ProjectConfiguration {
	defaults := defaultsByID(questions)

	cfg := models.ProjectConfiguration{
		Identity: models.IdentityConfig{
			ProjectName: stringAnswer(answers, defaults, QProjectName, "my-project"),
			Description: stringAnswer(answers, defaults, QDescription, ""),
			Author:      stringAnswer(answers, defaults, QAuthor, ""),
			ProjectType: stringAnswer(answers, defaults, QProjectType, "typescript"),
		},
		Philosophy: models.PhilosophyConfig{
			TDD:         boolAnswer(answers, defaults, QTDD, false),
			StrictTypes: boolAnswer(answers, defaults, QStrictTypes, true),
			DocComments: boolAnswer(answers, defaults, QDocComments, false),
		},
		Tools: models.ToolsConfig{
			TestingTools:   stringsAnswer(answers, defaults, QTestingTools),
			Linter:         stringAnswer(answers, defaults, QLinter, "none"),
			Formatter:      stringAnswer(answers, defaults, QFormatter, "none"),
			PackageManager: stringAnswer(answers, defaults, QPackageManager, "npm"),
		},
		Quality: models.QualityConfig{
			CoverageTarget: intAnswer(answers, defaults, QCoverageTarget, DefaultCoverageTarget),
			CodeReview:     boolAnswer(answers, defaults, QCodeReview, false),
			SecurityAudit:  boolAnswer(answers, defaults, QSecurityAudit, false),
		},
		Infra: models.InfraConfig{
			CI:       boolAnswer(answers, defaults, QCI, false),
			Docker:   boolAnswer(answers, defaults, QDocker, false),
			GitHooks: boolAnswer(answers, defaults, QGitHooks, false),
		},
		Outputs: models.OutputConfig{
			Documents: stringsAnswer(answers, defaults, QOutputDocuments),
		},
	}

	if len(cfg.Outputs.Documents) == 0 {
		cfg.Outputs.Documents = []string{string(models.DocClaude), string(models.DocReadme)}
	}
	return cfg
}

// defaultsByID collects the declared question defaults for fallback lookup.
func defaultsByID(questions []Question) map[string]any {
	defaults := make(map[string]any, len(questions))
	for _, q := range questions {
		if q.Default != nil {
			defaults[q.ID] = q.Default
		}
	}
	return defaults
}

// answerOrDefault resolves the effective value for a question id: the
// recorded answer when present and non-blank, otherwise the declared default.
func answerOrDefault(answers *AnswerSet, defaults map[string]any, id string) (any, bool) {
	if v, ok := answers.Get(id); ok && !isEmptyString(v) {
		return v, true
	}
	if v, ok := defaults[id]; ok {
		return v, true
	}
	return nil, false
}

func stringAnswer(answers *AnswerSet, defaults map[string]any, id, fallback string) string {
	v, ok := answerOrDefault(answers, defaults, id)
	if !ok {
		return fallback
	}
	s, ok := v.(string)
	if !ok {
		return fallback
	}
	return strings.TrimSpace(s)
}

func boolAnswer(answers *AnswerSet, defaults map[string]any, id string, fallback bool) bool {
	v, ok := answerOrDefault(answers, defaults, id)
	if !ok {
		return fallback
	}
	b, ok := v.(bool)
	if !ok {
		return fallback
	}
	return b
}

func intAnswer(answers *AnswerSet, defaults map[string]any, id string, fallback int) int {
	v, ok := answerOrDefault(answers, defaults, id)
	if !ok {
		return fallback
	}
	switch n := v.(type) {
	case int:
		return n
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return parsed
		}
	}
	return fallback
}

func stringsAnswer(answers *AnswerSet, defaults map[string]any, id string) []string {
	v, ok := answerOrDefault(answers, defaults, id)
	if !ok {
		return nil
	}
	members, ok := stringSlice(v)
	if !ok {
		return nil
	}
	out := make([]string, len(members))
	copy(out, members)
	return out
}
