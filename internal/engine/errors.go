package engine

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for engine operations.
var (
	// ErrInvalidQuestionSet indicates a structurally broken question set
	// (duplicate ids, forward or cyclic prerequisites, missing options).
	// This is a content-author mistake and is surfaced fail-fast at load time.
	ErrInvalidQuestionSet = errors.New("engine: invalid question set")

	// ErrInvalidRuleSet indicates a structurally broken rule set
	// (duplicate content ids, unknown operators, dangling fragment references).
	ErrInvalidRuleSet = errors.New("engine: invalid rule set")

	// ErrUnknownDocumentType indicates a generation request named a document
	// the system does not know. Other requested documents still succeed.
	ErrUnknownDocumentType = errors.New("engine: unknown document type")

	// ErrNoApplicableContent indicates a non-empty document request resolved
	// to zero fragments for every requested document, which signals a
	// misconfigured rule set rather than a normal empty selection.
	ErrNoApplicableContent = errors.New("engine: no applicable content for any requested document")
)

// ErrorKind tags a validation error with its machine-readable category.
type ErrorKind string

const (
	// KindMissingRequiredAnswer marks a reachable required question left
	// unanswered or answered with an empty string.
	KindMissingRequiredAnswer ErrorKind = "MissingRequiredAnswer"
	// KindInvalidOption marks an answer outside a question's option list.
	KindInvalidOption ErrorKind = "InvalidOption"
	// KindTypeMismatch marks an answer whose type does not match the question.
	KindTypeMismatch ErrorKind = "TypeMismatch"
)

// AnswerError is a single validation failure tied to one question.
type AnswerError struct {
	QuestionID string
	Kind       ErrorKind
	Message    string
}

// Error implements the error interface.
func (e AnswerError) Error() string {
	return fmt.Sprintf("question %q: %s: %s", e.QuestionID, e.Kind, e.Message)
}

// QuestionSetError aggregates structural problems found while validating a
// question or rule set at load time. Wrapped holds the sentinel the
// collection maps to for errors.Is support.
type QuestionSetError struct {
	Problems []string
	Wrapped  error
}

// Error implements the error interface.
func (e *QuestionSetError) Error() string {
	if len(e.Problems) == 0 {
		return e.Wrapped.Error()
	}
	return fmt.Sprintf("%s: %s", e.Wrapped.Error(), strings.Join(e.Problems, "; "))
}

// Unwrap returns the underlying sentinel error.
func (e *QuestionSetError) Unwrap() error {
	return e.Wrapped
}

// DocumentError ties a generation failure to one requested document name.
type DocumentError struct {
	Document string
	Err      error
}

// Error implements the error interface.
func (e DocumentError) Error() string {
	return fmt.Sprintf("document %q: %v", e.Document, e.Err)
}

// Unwrap returns the wrapped error.
func (e DocumentError) Unwrap() error {
	return e.Err
}
