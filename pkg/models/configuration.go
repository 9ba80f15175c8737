package models

// ProjectConfiguration is the fully-resolved settings object derived from a
// completed answer set. Every field has a defined value: the transform in the
// engine applies explicit defaults for unanswered optional questions. A
// configuration is immutable once built; regeneration always starts from a
// fresh value.
type ProjectConfiguration struct {
	Identity   IdentityConfig   `yaml:"identity" json:"identity"`
	Philosophy PhilosophyConfig `yaml:"philosophy" json:"philosophy"`
	Tools      ToolsConfig      `yaml:"tools" json:"tools"`
	Quality    QualityConfig    `yaml:"quality" json:"quality"`
	Infra      InfraConfig      `yaml:"infra" json:"infra"`
	Outputs    OutputConfig     `yaml:"outputs" json:"outputs"`
}

// IdentityConfig holds the project identity fields.
type IdentityConfig struct {
	ProjectName string `yaml:"project_name" json:"projectName"`
	Description string `yaml:"description" json:"description"`
	Author      string `yaml:"author" json:"author"`
	ProjectType string `yaml:"project_type" json:"projectType"` // typescript, javascript, python, go
}

// PhilosophyConfig holds the development philosophy flags.
type PhilosophyConfig struct {
	TDD         bool `yaml:"tdd" json:"tdd"`
	StrictTypes bool `yaml:"strict_types" json:"strictTypes"`
	DocComments bool `yaml:"doc_comments" json:"docComments"`
}

// ToolsConfig holds the tool selections.
type ToolsConfig struct {
	TestingTools   []string `yaml:"testing_tools" json:"testingTools"` // jest, vitest, pytest, gotest, cypress, playwright
	Linter         string   `yaml:"linter" json:"linter"`
	Formatter      string   `yaml:"formatter" json:"formatter"`
	PackageManager string   `yaml:"package_manager" json:"packageManager"`
}

// QualityConfig holds the quality requirements.
type QualityConfig struct {
	CoverageTarget int  `yaml:"coverage_target" json:"coverageTarget"`
	CodeReview     bool `yaml:"code_review" json:"codeReview"`
	SecurityAudit  bool `yaml:"security_audit" json:"securityAudit"`
}

// InfraConfig holds the infrastructure flags.
type InfraConfig struct {
	CI       bool `yaml:"ci" json:"ci"`
	Docker   bool `yaml:"docker" json:"docker"`
	GitHooks bool `yaml:"git_hooks" json:"gitHooks"`
}

// OutputConfig holds the selected output documents.
type OutputConfig struct {
	Documents []string `yaml:"documents" json:"documents"`
}

// FieldMap exposes the configuration as nested maps keyed by the canonical
// rule-condition field names. Rule predicates resolve dotted paths such as
// "philosophy.tdd" or "tools.testingTools" against this map. The mapping is
// written out by hand so the path vocabulary is an explicit, reviewable
// contract rather than a reflection artifact.
func (c ProjectConfiguration) FieldMap() map[string]any {
	return map[string]any{
		"identity": map[string]any{
			"projectName": c.Identity.ProjectName,
			"description": c.Identity.Description,
			"author":      c.Identity.Author,
			"projectType": c.Identity.ProjectType,
		},
		"philosophy": map[string]any{
			"tdd":         c.Philosophy.TDD,
			"strictTypes": c.Philosophy.StrictTypes,
			"docComments": c.Philosophy.DocComments,
		},
		"tools": map[string]any{
			"testingTools":   c.Tools.TestingTools,
			"linter":         c.Tools.Linter,
			"formatter":      c.Tools.Formatter,
			"packageManager": c.Tools.PackageManager,
		},
		"quality": map[string]any{
			"coverageTarget": c.Quality.CoverageTarget,
			"codeReview":     c.Quality.CodeReview,
			"securityAudit":  c.Quality.SecurityAudit,
		},
		"infra": map[string]any{
			"ci":       c.Infra.CI,
			"docker":   c.Infra.Docker,
			"gitHooks": c.Infra.GitHooks,
		},
		"outputs": map[string]any{
			"documents": c.Outputs.Documents,
		},
		// Top-level alias kept for rule sets written against the flat schema.
		"projectType": c.Identity.ProjectType,
	}
}

// SelectedDocuments converts the configured output names to DocumentType
// values, silently skipping unknown names. An empty selection falls back to
// the full document set.
func (c ProjectConfiguration) SelectedDocuments() []DocumentType {
	if len(c.Outputs.Documents) == 0 {
		return AllDocumentTypes()
	}
	docs := make([]DocumentType, 0, len(c.Outputs.Documents))
	for _, name := range c.Outputs.Documents {
		if d, ok := ParseDocumentType(name); ok {
			docs = append(docs, d)
		}
	}
	return docs
}
