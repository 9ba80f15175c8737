package config

import (
	"strings"

	"github.com/guidekit/guidekit/pkg/models"
)

var knownProjectTypes = map[string]bool{
	"typescript": true,
	"javascript": true,
	"python":     true,
	"go":         true,
}

// Validate checks a configuration for structural problems, collecting every
// failure rather than stopping at the first.
func Validate(cfg models.ProjectConfiguration) error {
	var errs []ValidationError

	if strings.TrimSpace(cfg.Identity.ProjectName) == "" {
		errs = append(errs, ValidationError{
			Field:   "identity.project_name",
			Message: "project name must not be empty",
		})
	}

	if !knownProjectTypes[cfg.Identity.ProjectType] {
		errs = append(errs, ValidationError{
			Field:   "identity.project_type",
			Message: "unknown project type",
			Value:   cfg.Identity.ProjectType,
		})
	}

	if cfg.Quality.CoverageTarget < 0 || cfg.Quality.CoverageTarget > 100 {
		errs = append(errs, ValidationError{
			Field:   "quality.coverage_target",
			Message: "coverage target must be between 0 and 100",
			Value:   cfg.Quality.CoverageTarget,
		})
	}

	if len(cfg.Outputs.Documents) == 0 {
		errs = append(errs, ValidationError{
			Field:   "outputs.documents",
			Message: "at least one output document must be selected",
		})
	}
	for _, name := range cfg.Outputs.Documents {
		if _, ok := models.ParseDocumentType(name); !ok {
			errs = append(errs, ValidationError{
				Field:   "outputs.documents",
				Message: "unknown document type",
				Value:   name,
			})
		}
	}

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}
