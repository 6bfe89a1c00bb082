/*
Package sqlite provides a SQLite-backed implementation of the habits store
interfaces.

PURPOSE:
  Implements habits.TemplateStore and habits.LogStore using SQLite. The
  same patterns apply to PostgreSQL - only minor SQL dialect differences.

ATOMIC ADVANCE:
  AdvanceCursor runs the cursor update and the occurrence insert inside one
  database transaction. A crash between the two would otherwise re-emit the
  same date on restart; the unique (template_id, date) index backs the
  strictly-increasing occurrence invariant even against misbehaving callers.

KEY TABLES:
  repeat_templates: template records; the repeat rule is stored as the wire
                    JSON (form.RepeatVo), cursor fields as columns
  occurrences:      materialized instances, unique per template and date
  habit_log:        dated completion entries, unique per habit and date

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  multiple readers don't block and a single writer proceeds at a time.

USAGE:
  store, err := sqlite.New("./data/habits.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  prov := habits.NewProvisioner(store, &recur.Generator{Oracle: oracle})

SEE ALSO:
  - habits/store.go: interface definitions and the single-writer contract
  - habits/store/memory.go: in-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/habit-engine/form"
	"github.com/warp/habit-engine/habits"
	"github.com/warp/habit-engine/recur"
)

// Store implements the habits store interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var (
	_ habits.TemplateStore = (*Store)(nil)
	_ habits.LogStore      = (*Store)(nil)
)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	-- Repeat templates with their progress cursor
	CREATE TABLE IF NOT EXISTS repeat_templates (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		tags_json TEXT NOT NULL DEFAULT '[]',
		repeat_json TEXT NOT NULL,
		cursor_date TEXT NOT NULL,
		repeated_times INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'active'
	);

	CREATE INDEX IF NOT EXISTS idx_templates_status
		ON repeat_templates(status);

	-- Materialized occurrences
	CREATE TABLE IF NOT EXISTS occurrences (
		id TEXT PRIMARY KEY,
		template_id TEXT NOT NULL REFERENCES repeat_templates(id),
		date TEXT NOT NULL
	);

	-- One occurrence per template per date. Backs the strictly-increasing
	-- sequence invariant at the storage layer.
	CREATE UNIQUE INDEX IF NOT EXISTS idx_occurrences_template_date
		ON occurrences(template_id, date);

	-- Habit completion log, unique per habit per day
	CREATE TABLE IF NOT EXISTS habit_log (
		habit_id TEXT NOT NULL,
		date TEXT NOT NULL,
		score INTEGER NOT NULL,
		note TEXT NOT NULL DEFAULT '',
		mood TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (habit_id, date)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// TEMPLATE STORE
// =============================================================================

func (s *Store) SaveTemplate(ctx context.Context, t recur.RepeatTemplate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	vo, err := form.TemplateToVo(t)
	if err != nil {
		return err
	}
	repeatJSON, err := json.Marshal(vo)
	if err != nil {
		return fmt.Errorf("marshal repeat rule: %w", err)
	}
	tagsJSON, err := json.Marshal(t.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO repeat_templates
			(id, name, description, tags_json, repeat_json, cursor_date, repeated_times, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			tags_json = excluded.tags_json,
			repeat_json = excluded.repeat_json,
			cursor_date = excluded.cursor_date,
			repeated_times = excluded.repeated_times,
			status = excluded.status`,
		t.ID, t.Name, t.Description, string(tagsJSON), string(repeatJSON),
		t.CurrentDate.String(), t.RepeatedTimes, string(t.Status))
	return err
}

func (s *Store) Template(ctx context.Context, id string) (recur.RepeatTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, tags_json, repeat_json, cursor_date, repeated_times, status
		FROM repeat_templates WHERE id = ?`, id)
	t, err := scanTemplate(row)
	if err == sql.ErrNoRows {
		return recur.RepeatTemplate{}, habits.ErrTemplateNotFound
	}
	return t, err
}

func (s *Store) ActiveTemplates(ctx context.Context) ([]recur.RepeatTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, tags_json, repeat_json, cursor_date, repeated_times, status
		FROM repeat_templates WHERE status = ? ORDER BY id`, string(recur.StatusActive))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []recur.RepeatTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) SetStatus(ctx context.Context, id string, status recur.TemplateStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`UPDATE repeat_templates SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return habits.ErrTemplateNotFound
	}
	return nil
}

func (s *Store) AdvanceCursor(ctx context.Context, t recur.RepeatTemplate, occ habits.Occurrence) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM occurrences WHERE template_id = ? AND date = ?`,
		occ.TemplateID, occ.Date.String()).Scan(&exists)
	if err != nil {
		return err
	}
	if exists > 0 {
		return habits.ErrDuplicateOccurrence
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE repeat_templates SET cursor_date = ?, repeated_times = ? WHERE id = ?`,
		t.CurrentDate.String(), t.RepeatedTimes, t.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return habits.ErrTemplateNotFound
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO occurrences (id, template_id, date) VALUES (?, ?, ?)`,
		occ.ID, occ.TemplateID, occ.Date.String())
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) Occurrences(ctx context.Context, templateID string, from, to recur.Date) ([]habits.Occurrence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, template_id, date FROM occurrences WHERE template_id = ?`
	args := []any{templateID}
	if !from.IsZero() {
		query += ` AND date >= ?`
		args = append(args, from.String())
	}
	if !to.IsZero() {
		query += ` AND date <= ?`
		args = append(args, to.String())
	}
	query += ` ORDER BY date`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []habits.Occurrence
	for rows.Next() {
		var occ habits.Occurrence
		var date string
		if err := rows.Scan(&occ.ID, &occ.TemplateID, &date); err != nil {
			return nil, err
		}
		if occ.Date, err = recur.ParseDate(date); err != nil {
			return nil, err
		}
		out = append(out, occ)
	}
	return out, rows.Err()
}

// =============================================================================
// LOG STORE
// =============================================================================

func (s *Store) AppendEntry(ctx context.Context, habitID string, e recur.HabitLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM habit_log WHERE habit_id = ? AND date = ?`,
		habitID, e.Date.String()).Scan(&exists)
	if err != nil {
		return err
	}
	if exists > 0 {
		return habits.ErrDuplicateLogEntry
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO habit_log (habit_id, date, score, note, mood) VALUES (?, ?, ?, ?, ?)`,
		habitID, e.Date.String(), int(e.Score), e.Note, e.Mood)
	return err
}

func (s *Store) Entries(ctx context.Context, habitID string, from, to recur.Date) ([]recur.HabitLogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT date, score, note, mood FROM habit_log WHERE habit_id = ?`
	args := []any{habitID}
	if !from.IsZero() {
		query += ` AND date >= ?`
		args = append(args, from.String())
	}
	if !to.IsZero() {
		query += ` AND date <= ?`
		args = append(args, to.String())
	}
	query += ` ORDER BY date`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []recur.HabitLogEntry
	for rows.Next() {
		var e recur.HabitLogEntry
		var date string
		var score int
		if err := rows.Scan(&date, &score, &e.Note, &e.Mood); err != nil {
			return nil, err
		}
		if e.Date, err = recur.ParseDate(date); err != nil {
			return nil, err
		}
		e.Score = recur.CompletionScore(score)
		out = append(out, e)
	}
	return out, rows.Err()
}

// =============================================================================
// SCANNING
// =============================================================================

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTemplate(row rowScanner) (recur.RepeatTemplate, error) {
	var (
		id, name, description, tagsJSON, repeatJSON, cursorDate, status string

		repeatedTimes int
	)
	if err := row.Scan(&id, &name, &description, &tagsJSON, &repeatJSON,
		&cursorDate, &repeatedTimes, &status); err != nil {
		return recur.RepeatTemplate{}, err
	}

	var vo form.RepeatVo
	if err := json.Unmarshal([]byte(repeatJSON), &vo); err != nil {
		return recur.RepeatTemplate{}, fmt.Errorf("unmarshal repeat rule for %s: %w", id, err)
	}
	t, err := form.VoToTemplate(id, vo)
	if err != nil {
		return recur.RepeatTemplate{}, fmt.Errorf("rebuild template %s: %w", id, err)
	}

	t.Name = name
	t.Description = description
	if err := json.Unmarshal([]byte(tagsJSON), &t.Tags); err != nil {
		return recur.RepeatTemplate{}, fmt.Errorf("unmarshal tags for %s: %w", id, err)
	}
	if t.CurrentDate, err = recur.ParseDate(cursorDate); err != nil {
		return recur.RepeatTemplate{}, err
	}
	t.RepeatedTimes = repeatedTimes
	t.Status = recur.TemplateStatus(status)
	return t, nil
}
