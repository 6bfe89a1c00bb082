package recur_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/warp/habit-engine/recur"
)

func entry(day string, score recur.CompletionScore) recur.HabitLogEntry {
	return recur.HabitLogEntry{Date: d(day), Score: score}
}

func full(day string) recur.HabitLogEntry {
	return entry(day, recur.FullyCompleted)
}

func partial(day string) recur.HabitLogEntry {
	return entry(day, recur.PartiallyCompleted)
}

// =============================================================================
// STREAK COUNTING
// =============================================================================

func TestComputeStatistics_CurrentAndLongestStreaks(t *testing.T) {
	// GIVEN: Three full days, a gap, then two full days ending on asOf
	// WHEN: Computing statistics as of the last logged day
	// THEN: Current streak is 2, longest is the earlier run of 3

	entries := []recur.HabitLogEntry{
		full("2024-01-01"),
		full("2024-01-02"),
		full("2024-01-03"),
		full("2024-01-09"),
		full("2024-01-10"),
	}

	stats, err := recur.ComputeStatistics(entries, d("2024-01-10"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.CurrentStreak != 2 {
		t.Errorf("expected current streak 2, got %d", stats.CurrentStreak)
	}
	if stats.LongestStreak != 3 {
		t.Errorf("expected longest streak 3, got %d", stats.LongestStreak)
	}
	if stats.LastCompletedAt.String() != "2024-01-10" {
		t.Errorf("expected last completion 2024-01-10, got %s", stats.LastCompletedAt)
	}
}

func TestComputeStatistics_PartialDay_BreaksStreakButCounts(t *testing.T) {
	// GIVEN: Full, partial, full on consecutive days
	// WHEN: Computing as of the last day
	// THEN: The partial day breaks the streak yet counts as completed

	entries := []recur.HabitLogEntry{
		full("2024-01-01"),
		partial("2024-01-02"),
		full("2024-01-03"),
	}

	stats, err := recur.ComputeStatistics(entries, d("2024-01-03"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.CurrentStreak != 1 {
		t.Errorf("expected current streak 1, got %d", stats.CurrentStreak)
	}
	if stats.LongestStreak != 1 {
		t.Errorf("expected longest streak 1, got %d", stats.LongestStreak)
	}
	if stats.CompletedCount != 3 {
		t.Errorf("expected all three days counted as completed, got %d", stats.CompletedCount)
	}
}

func TestComputeStatistics_AsOfPartial_NoCurrentStreak(t *testing.T) {
	// GIVEN: A full day followed by a partial asOf day
	// WHEN: Computing as of the partial day
	// THEN: The current streak is zero; partial never extends

	entries := []recur.HabitLogEntry{
		full("2024-01-01"),
		partial("2024-01-02"),
	}

	stats, err := recur.ComputeStatistics(entries, d("2024-01-02"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.CurrentStreak != 0 {
		t.Errorf("expected current streak 0, got %d", stats.CurrentStreak)
	}
	if stats.LongestStreak != 1 {
		t.Errorf("expected longest streak 1, got %d", stats.LongestStreak)
	}
}

func TestComputeStatistics_UnloggedToday_KeepsYesterdaysStreak(t *testing.T) {
	// GIVEN: Full days through yesterday, nothing logged for asOf
	// WHEN: Computing as of today and then two days later
	// THEN: The streak stands today but collapses once a full day passes

	entries := []recur.HabitLogEntry{
		full("2024-01-01"),
		full("2024-01-02"),
	}

	stats, err := recur.ComputeStatistics(entries, d("2024-01-03"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.CurrentStreak != 2 {
		t.Errorf("expected grace for today's unlogged entry, got streak %d", stats.CurrentStreak)
	}

	stats, err = recur.ComputeStatistics(entries, d("2024-01-04"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.CurrentStreak != 0 {
		t.Errorf("expected broken streak after a skipped day, got %d", stats.CurrentStreak)
	}
	if stats.LongestStreak != 2 {
		t.Errorf("expected longest streak 2 to survive, got %d", stats.LongestStreak)
	}
}

func TestComputeStatistics_NotCompletedDay_BreaksStreak(t *testing.T) {
	entries := []recur.HabitLogEntry{
		full("2024-01-01"),
		full("2024-01-02"),
		entry("2024-01-03", recur.NotCompleted),
		full("2024-01-04"),
	}

	stats, err := recur.ComputeStatistics(entries, d("2024-01-04"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.CurrentStreak != 1 {
		t.Errorf("expected current streak 1, got %d", stats.CurrentStreak)
	}
	if stats.LongestStreak != 2 {
		t.Errorf("expected longest streak 2, got %d", stats.LongestStreak)
	}
}

func TestComputeStatistics_WindowExcludesFutureEntries(t *testing.T) {
	// GIVEN: Entries beyond asOf
	// WHEN: Computing with an earlier asOf
	// THEN: Later entries do not affect any figure

	entries := []recur.HabitLogEntry{
		full("2024-01-01"),
		full("2024-01-05"),
	}

	stats, err := recur.ComputeStatistics(entries, d("2024-01-01"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalLoggedDays != 1 {
		t.Errorf("expected 1 logged day in window, got %d", stats.TotalLoggedDays)
	}
	if stats.CurrentStreak != 1 {
		t.Errorf("expected current streak 1, got %d", stats.CurrentStreak)
	}
}

// =============================================================================
// COMPLETION FIGURES
// =============================================================================

func TestComputeStatistics_CompletionRate(t *testing.T) {
	// GIVEN: One full, one not completed
	// WHEN: Computing the rate
	// THEN: CompletedCount / TotalLoggedDays as an exact decimal

	entries := []recur.HabitLogEntry{
		full("2024-01-01"),
		entry("2024-01-02", recur.NotCompleted),
	}

	stats, err := recur.ComputeStatistics(entries, d("2024-01-02"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.CompletedCount != 1 || stats.TotalLoggedDays != 2 {
		t.Fatalf("unexpected counts: completed=%d total=%d", stats.CompletedCount, stats.TotalLoggedDays)
	}
	if !stats.CompletionRate.Equal(decimal.RequireFromString("0.5")) {
		t.Errorf("expected rate 0.5, got %s", stats.CompletionRate)
	}
}

func TestComputeStatistics_EmptyLog(t *testing.T) {
	stats, err := recur.ComputeStatistics(nil, d("2024-01-01"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.CurrentStreak != 0 || stats.LongestStreak != 0 {
		t.Errorf("expected zero streaks, got %+v", stats)
	}
	if !stats.CompletionRate.Equal(decimal.Zero) {
		t.Errorf("expected zero rate, got %s", stats.CompletionRate)
	}
	if !stats.LastCompletedAt.IsZero() {
		t.Errorf("expected zero LastCompletedAt, got %s", stats.LastCompletedAt)
	}
}

// =============================================================================
// INPUT VALIDATION
// =============================================================================

func TestComputeStatistics_RejectsBadInput(t *testing.T) {
	cases := []struct {
		name    string
		entries []recur.HabitLogEntry
	}{
		{"duplicate date", []recur.HabitLogEntry{full("2024-01-01"), full("2024-01-01")}},
		{"unsorted", []recur.HabitLogEntry{full("2024-01-02"), full("2024-01-01")}},
		{"zero date", []recur.HabitLogEntry{{Score: recur.FullyCompleted}}},
		{"unknown score", []recur.HabitLogEntry{entry("2024-01-01", recur.CompletionScore(9))}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := recur.ComputeStatistics(tc.entries, d("2024-01-05"))
			if !errors.Is(err, recur.ErrStreakInput) {
				t.Fatalf("expected ErrStreakInput, got %v", err)
			}
			var input *recur.StreakInputError
			if !errors.As(err, &input) {
				t.Fatalf("expected StreakInputError, got %T", err)
			}
		})
	}
}
