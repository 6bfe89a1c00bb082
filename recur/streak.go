package recur

import "github.com/shopspring/decimal"

// =============================================================================
// STREAK CALCULATOR - Consecutive-completion statistics from a habit log
// =============================================================================

// HabitLogEntry is one dated record in a habit's log. Entries for one habit
// are unique per date; the calculator validates that rather than silently
// producing wrong statistics.
type HabitLogEntry struct {
	Date  Date
	Score CompletionScore
	Note  string
	Mood  string
}

// Statistics summarizes a habit log as of a reference date.
//
// A day extends a streak only when it is FULLY_COMPLETED. A partially
// completed day counts toward CompletedCount and CompletionRate but breaks
// the streak, mirroring the product's "done" vs "partially done" split.
type Statistics struct {
	CurrentStreak   int
	LongestStreak   int
	CompletedCount  int // days scored partially or fully
	TotalLoggedDays int
	CompletionRate  decimal.Decimal // CompletedCount / TotalLoggedDays
	LastCompletedAt Date            // latest fully completed day; zero if none
}

// ComputeStatistics scans entries in ascending date order and derives streak
// and completion figures over the window up to and including asOf.
//
// CurrentStreak is measured backward from asOf. An asOf date with no entry
// does not break yesterday's streak as long as no full day has passed
// unlogged: logging is forgiven for the current day, not for prior ones.
func ComputeStatistics(entries []HabitLogEntry, asOf Date) (Statistics, error) {
	if err := validateLog(entries); err != nil {
		return Statistics{}, err
	}

	stats := Statistics{CompletionRate: decimal.Zero}

	var (
		running      int
		prevFullDate Date
		lastDate     Date
		asOfLogged   bool
	)
	for _, e := range entries {
		if e.Date.After(asOf) {
			break
		}
		stats.TotalLoggedDays++
		lastDate = e.Date
		if e.Date.Equal(asOf) {
			asOfLogged = true
		}
		if e.Score >= PartiallyCompleted {
			stats.CompletedCount++
		}
		if e.Score == FullyCompleted {
			if !prevFullDate.IsZero() && e.Date.DaysSince(prevFullDate) == 1 {
				running++
			} else {
				running = 1
			}
			prevFullDate = e.Date
			stats.LastCompletedAt = e.Date
			if running > stats.LongestStreak {
				stats.LongestStreak = running
			}
		} else {
			running = 0
		}
	}

	switch {
	case asOfLogged:
		// The streak stands only if asOf itself was fully completed.
		if !prevFullDate.IsZero() && prevFullDate.Equal(asOf) {
			stats.CurrentStreak = running
		}
	case !lastDate.IsZero() && asOf.DaysSince(lastDate) == 1:
		// asOf is the still-unlogged "today": the streak through yesterday
		// stands until a whole day passes without a qualifying entry.
		if !prevFullDate.IsZero() && prevFullDate.Equal(lastDate) {
			stats.CurrentStreak = running
		}
	}

	if stats.TotalLoggedDays > 0 {
		stats.CompletionRate = decimal.NewFromInt(int64(stats.CompletedCount)).
			Div(decimal.NewFromInt(int64(stats.TotalLoggedDays)))
	}
	return stats, nil
}

func validateLog(entries []HabitLogEntry) error {
	for i, e := range entries {
		if e.Date.IsZero() {
			return &StreakInputError{Index: i, Date: e.Date, Reason: "date is required"}
		}
		if !e.Score.Valid() {
			return &StreakInputError{Index: i, Date: e.Date, Reason: "unknown completion score"}
		}
		if i == 0 {
			continue
		}
		prev := entries[i-1].Date
		if e.Date.Equal(prev) {
			return &StreakInputError{Index: i, Date: e.Date, Reason: "duplicate date"}
		}
		if e.Date.Before(prev) {
			return &StreakInputError{Index: i, Date: e.Date, Reason: "entries not sorted ascending"}
		}
	}
	return nil
}
