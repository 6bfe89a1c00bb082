/*
errors.go - Centralized error types for the recurrence engine

PURPOSE:
  All failure modes of the engine in one place. Every error here is
  deterministic and input-dependent: retrying never helps, and the engine
  never swallows one or substitutes a default in its place.

ERROR CATEGORIES:
  1. Validation errors - a config is structurally inconsistent with its mode
  2. Exhaustion errors - the bounded occurrence search found nothing
  3. Streak input errors - a habit log violates the sorted/unique contract

USAGE:
  Callers branch with errors.Is:

    if errors.Is(err, recur.ErrPatternExhausted) {
        // surface as a configuration problem, do not retry
    }
*/
package recur

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidConfig is returned when a RepeatConfig is structurally
	// inconsistent with its RepeatMode. Raised at construction and mapping
	// time, never during occurrence generation.
	ErrInvalidConfig = errors.New("invalid repeat configuration")

	// ErrPatternExhausted is returned when the bounded forward search found
	// no matching date within its horizon. A logically impossible pattern
	// surfaces here instead of looping forever.
	ErrPatternExhausted = errors.New("no occurrence within search horizon")

	// ErrStreakInput is returned when a habit log sequence is not sorted
	// ascending or contains duplicate dates.
	ErrStreakInput = errors.New("invalid habit log sequence")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ValidationError describes which part of a config failed validation.
type ValidationError struct {
	Mode   RepeatMode
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s config: %s %s", e.Mode, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidConfig }

// PatternExhaustedError reports where the search gave up.
type PatternExhaustedError struct {
	After   Date
	Horizon int // days scanned
}

func (e *PatternExhaustedError) Error() string {
	return fmt.Sprintf("no occurrence in %d days after %s", e.Horizon, e.After)
}

func (e *PatternExhaustedError) Unwrap() error { return ErrPatternExhausted }

// StreakInputError points at the offending log entry.
type StreakInputError struct {
	Index  int
	Date   Date
	Reason string
}

func (e *StreakInputError) Error() string {
	return fmt.Sprintf("habit log entry %d (%s): %s", e.Index, e.Date, e.Reason)
}

func (e *StreakInputError) Unwrap() error { return ErrStreakInput }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsConfigError returns true if the error is due to an invalid pattern,
// either rejected up front or discovered through an exhausted search.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrInvalidConfig) || errors.Is(err, ErrPatternExhausted)
}

func validationErr(mode RepeatMode, field, reason string) error {
	return &ValidationError{Mode: mode, Field: field, Reason: reason}
}
