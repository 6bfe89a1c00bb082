// Package calendar provides CalendarOracle implementations backed by static
// per-year holiday data. The engine itself never knows which locale's rules
// apply; a Table is loaded with whatever the deployment ships and injected.
package calendar

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/warp/habit-engine/recur"
)

// =============================================================================
// TABLE - Date-keyed holiday / make-up day overrides
// =============================================================================

// Table classifies dates from an override map, falling back to plain weekday
// classification for every date it has no entry for. Safe for concurrent
// readers once populated; Add* calls and Classify may also be interleaved.
type Table struct {
	mu   sync.RWMutex
	days map[string]recur.DayClassification // keyed by ISO date
}

func NewTable() *Table {
	return &Table{days: make(map[string]recur.DayClassification)}
}

// AddHoliday marks d as a public holiday.
func (t *Table) AddHoliday(d recur.Date, name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.days[d.String()] = recur.DayClassification{Class: recur.ClassHoliday, Name: name}
}

// AddMakeupWorkday marks a weekend date as a working day traded for a nearby
// holiday.
func (t *Table) AddMakeupWorkday(d recur.Date) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.days[d.String()] = recur.DayClassification{Class: recur.ClassMakeupWorkday}
}

// Classify implements recur.CalendarOracle.
func (t *Table) Classify(d recur.Date) recur.DayClassification {
	t.mu.RLock()
	c, ok := t.days[d.String()]
	t.mu.RUnlock()
	if ok {
		return c
	}
	return recur.WeekdayOracle{}.Classify(d)
}

// =============================================================================
// JSON LOADING - Generated per-year data files
// =============================================================================

// entryJSON is one override in a data file:
//
//	{"date": "2024-02-10", "class": "HOLIDAY", "name": "Spring Festival"}
//	{"date": "2024-02-04", "class": "MAKEUP_WORKDAY"}
type entryJSON struct {
	Date  string `json:"date"`
	Class string `json:"class"`
	Name  string `json:"name,omitempty"`
}

// Load reads a JSON array of overrides into a new Table.
func Load(r io.Reader) (*Table, error) {
	var entries []entryJSON
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode calendar data: %w", err)
	}

	t := NewTable()
	for i, e := range entries {
		d, err := recur.ParseDate(e.Date)
		if err != nil {
			return nil, fmt.Errorf("calendar entry %d: %w", i, err)
		}
		switch recur.DayClass(e.Class) {
		case recur.ClassHoliday:
			t.AddHoliday(d, e.Name)
		case recur.ClassMakeupWorkday:
			t.AddMakeupWorkday(d)
		default:
			return nil, fmt.Errorf("calendar entry %d (%s): unknown class %q", i, e.Date, e.Class)
		}
	}
	return t, nil
}
