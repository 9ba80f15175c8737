// Package wizard collects answers to the configuration questions, either
// interactively with huh forms or headlessly from defaults and overrides.
// Question order and skipping follow the dependency resolver, so a question
// whose prerequisites are unmet is never asked.
package wizard

import "errors"

var (
	// ErrCancelled is returned when the user aborts the question flow.
	ErrCancelled = errors.New("wizard: cancelled by user")

	// ErrNoQuestions is returned when the question set is empty.
	ErrNoQuestions = errors.New("wizard: no questions provided")

	// ErrMissingAnswer is returned in headless mode when a required question
	// has neither a default nor an override.
	ErrMissingAnswer = errors.New("wizard: required question has no answer")
)
