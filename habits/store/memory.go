// Package store provides in-memory habits store implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/habit-engine/habits"
	"github.com/warp/habit-engine/recur"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu          sync.RWMutex
	templates   map[string]recur.RepeatTemplate
	occurrences map[string][]habits.Occurrence   // by template ID, date-ordered
	logs        map[string][]recur.HabitLogEntry // by habit ID, date-ordered
}

func NewMemory() *Memory {
	return &Memory{
		templates:   make(map[string]recur.RepeatTemplate),
		occurrences: make(map[string][]habits.Occurrence),
		logs:        make(map[string][]recur.HabitLogEntry),
	}
}

var (
	_ habits.TemplateStore = (*Memory)(nil)
	_ habits.LogStore      = (*Memory)(nil)
)

// -----------------------------------------------------------------------------
// TemplateStore
// -----------------------------------------------------------------------------

func (m *Memory) SaveTemplate(_ context.Context, t recur.RepeatTemplate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.templates[t.ID] = t
	return nil
}

func (m *Memory) Template(_ context.Context, id string) (recur.RepeatTemplate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.templates[id]
	if !ok {
		return recur.RepeatTemplate{}, habits.ErrTemplateNotFound
	}
	return t, nil
}

func (m *Memory) ActiveTemplates(_ context.Context) ([]recur.RepeatTemplate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []recur.RepeatTemplate
	for _, t := range m.templates {
		if t.Status == recur.StatusActive {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) SetStatus(_ context.Context, id string, status recur.TemplateStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.templates[id]
	if !ok {
		return habits.ErrTemplateNotFound
	}
	t.Status = status
	m.templates[id] = t
	return nil
}

func (m *Memory) AdvanceCursor(_ context.Context, t recur.RepeatTemplate, occ habits.Occurrence) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.templates[t.ID]; !ok {
		return habits.ErrTemplateNotFound
	}
	for _, existing := range m.occurrences[t.ID] {
		if existing.Date.Equal(occ.Date) {
			return habits.ErrDuplicateOccurrence
		}
	}
	// Both writes under one lock: the memory analog of a transaction.
	m.templates[t.ID] = t
	m.occurrences[t.ID] = append(m.occurrences[t.ID], occ)
	return nil
}

func (m *Memory) Occurrences(_ context.Context, templateID string, from, to recur.Date) ([]habits.Occurrence, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []habits.Occurrence
	for _, occ := range m.occurrences[templateID] {
		if inRange(occ.Date, from, to) {
			out = append(out, occ)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// -----------------------------------------------------------------------------
// LogStore
// -----------------------------------------------------------------------------

func (m *Memory) AppendEntry(_ context.Context, habitID string, e recur.HabitLogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.logs[habitID] {
		if existing.Date.Equal(e.Date) {
			return habits.ErrDuplicateLogEntry
		}
	}
	entries := append(m.logs[habitID], e)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Date.Before(entries[j].Date) })
	m.logs[habitID] = entries
	return nil
}

func (m *Memory) Entries(_ context.Context, habitID string, from, to recur.Date) ([]recur.HabitLogEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []recur.HabitLogEntry
	for _, e := range m.logs[habitID] {
		if inRange(e.Date, from, to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func inRange(d, from, to recur.Date) bool {
	if !from.IsZero() && d.Before(from) {
		return false
	}
	if !to.IsZero() && d.After(to) {
		return false
	}
	return true
}
