/*
store.go - Persistence interfaces for templates and habit logs

PURPOSE:
  Defines the contract between the tick loop and the database. The engine
  itself is stateless; these interfaces are where the cursor actually lives.

KEY INTERFACES:
  TemplateStore: template records, occurrence rows, atomic cursor advance
  LogStore:      dated completion entries, unique per habit per day

ATOMIC ADVANCE CONTRACT:
  AdvanceCursor persists the advanced template (new CurrentDate and
  RepeatedTimes) and the occurrence materialized from the candidate date in
  ONE transaction. Either both land or neither does - a crash between the
  two would otherwise emit the same date twice on restart.

SINGLE WRITER:
  Advancing the same template from two workers concurrently is a caller-side
  race. Implementations may reject it (optimistic check on RepeatedTimes)
  but are not required to resolve it.

IMPLEMENTATIONS:
  - habits/store:  in-memory, for tests and development
  - store/sqlite:  production SQLite
*/
package habits

import (
	"context"

	"github.com/warp/habit-engine/recur"
)

// TemplateStore persists repeat templates and their materialized occurrences.
type TemplateStore interface {
	// SaveTemplate inserts or replaces a template record.
	SaveTemplate(ctx context.Context, t recur.RepeatTemplate) error

	// Template loads one template. Returns ErrTemplateNotFound.
	Template(ctx context.Context, id string) (recur.RepeatTemplate, error)

	// ActiveTemplates lists templates with StatusActive.
	ActiveTemplates(ctx context.Context) ([]recur.RepeatTemplate, error)

	// SetStatus updates a template's status (e.g. abandoning a habit).
	SetStatus(ctx context.Context, id string, status recur.TemplateStatus) error

	// AdvanceCursor writes the advanced template and its new occurrence
	// atomically. Returns ErrDuplicateOccurrence if the date was already
	// materialized for this template.
	AdvanceCursor(ctx context.Context, t recur.RepeatTemplate, occ Occurrence) error

	// Occurrences lists materialized occurrences in [from, to], ordered by
	// date. A zero from or to leaves that side unbounded.
	Occurrences(ctx context.Context, templateID string, from, to recur.Date) ([]Occurrence, error)
}

// LogStore persists habit completion entries.
type LogStore interface {
	// AppendEntry records one dated entry. Returns ErrDuplicateLogEntry if
	// the habit already has an entry for that date.
	AppendEntry(ctx context.Context, habitID string, e recur.HabitLogEntry) error

	// Entries returns entries in [from, to] ordered by date ascending. A
	// zero from or to leaves that side unbounded.
	Entries(ctx context.Context, habitID string, from, to recur.Date) ([]recur.HabitLogEntry, error)
}
