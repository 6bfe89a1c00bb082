// Package habits applies the recurrence engine to habit tracking. It owns
// what the engine deliberately does not: template persistence, the
// materialized occurrence rows, the dated completion log, and the tick loop
// that advances cursors through a store.
package habits

import (
	"errors"

	"github.com/google/uuid"
	"github.com/warp/habit-engine/recur"
)

// =============================================================================
// DOMAIN TYPES
// =============================================================================

// Occurrence is one materialized instance of a template: the row a tick
// writes atomically with the cursor update.
type Occurrence struct {
	ID         string
	TemplateID string
	Date       recur.Date
}

// NewTemplate builds a habit template with a fresh ID.
func NewTemplate(name string, p recur.Pattern, end recur.RepeatEndMode, opts ...recur.TemplateOption) (recur.RepeatTemplate, error) {
	opts = append(opts, recur.Named(name))
	return recur.NewTemplate(uuid.NewString(), p, end, opts...)
}

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

var (
	// ErrTemplateNotFound is returned when a referenced template doesn't exist.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrDuplicateOccurrence is returned when an occurrence for the same
	// template and date already exists. This enforces the strictly-increasing
	// occurrence invariant at the storage layer as well.
	ErrDuplicateOccurrence = errors.New("duplicate occurrence for date")

	// ErrDuplicateLogEntry is returned when a habit already has a log entry
	// for the date. Log entries are unique per habit per day.
	ErrDuplicateLogEntry = errors.New("duplicate log entry for date")
)
