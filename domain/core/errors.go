package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Configuration errors: fatal, abort the run before output.
	ErrScoringUnavailable = errors.New("scoring table unavailable")
	ErrColumnMissing      = errors.New("identifier column missing")
	ErrFolderMissing      = errors.New("survey folder missing")

	// Partial-data conditions: skip the affected computation, keep the run.
	ErrNoCommonRespondents = errors.New("no respondents common to both waves")
	ErrNoCommonQuestions   = errors.New("no scored questions common to both waves")
	ErrMissingCounterpart  = errors.New("post-survey counterpart missing")

	// Output errors.
	ErrOutputExists = errors.New("output file already exists")
)

// NewColumnMissingError reports a misconfigured identifier column name.
func NewColumnMissingError(column string) error {
	return fmt.Errorf("%w: %q not found in table", ErrColumnMissing, column)
}

// NewScoringError reports an incomplete rank map in the scoring table.
func NewScoringError(question, label string) error {
	return fmt.Errorf("%w: question %q has no rank for %q", ErrScoringUnavailable, question, label)
}

// NewOutputExistsError reports a refused overwrite.
func NewOutputExistsError(path string) error {
	return fmt.Errorf("%w: %s (use overwrite to replace)", ErrOutputExists, path)
}

// IsConfigurationError reports whether err aborts the whole run.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrScoringUnavailable) ||
		errors.Is(err, ErrColumnMissing) ||
		errors.Is(err, ErrFolderMissing)
}

// IsPartialDataError reports whether err only skips one computation.
func IsPartialDataError(err error) bool {
	return errors.Is(err, ErrNoCommonRespondents) ||
		errors.Is(err, ErrNoCommonQuestions) ||
		errors.Is(err, ErrMissingCounterpart)
}
