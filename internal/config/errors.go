// Package config persists a resolved project configuration as guidekit.yaml
// in the project root, so generation can re-run headlessly without asking
// the questions again.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for configuration operations.
var (
	// ErrConfigNotFound indicates no guidekit.yaml exists in the project root.
	ErrConfigNotFound = errors.New("config: guidekit.yaml not found")

	// ErrInvalidConfig indicates the configuration failed validation.
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrInvalidYAML indicates guidekit.yaml could not be parsed.
	ErrInvalidYAML = errors.New("config: invalid YAML syntax")
)

// ValidationError is a single validation failure with field context.
type ValidationError struct {
	Field   string
	Message string
	Value   any
}

func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("field %q: %s (got: %v)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("field %q: %s", e.Field, e.Message)
}

// ValidationErrors aggregates every validation failure found in one pass.
type ValidationErrors struct {
	Errors []ValidationError
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "validation: no errors"
	}
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("validation failed with %d error(s): %s", len(e.Errors), strings.Join(msgs, "; "))
}

// Is reports ErrInvalidConfig so callers can branch with errors.Is.
func (e *ValidationErrors) Is(target error) bool {
	return target == ErrInvalidConfig
}
