package habits

import (
	"context"

	"github.com/warp/habit-engine/recur"
)

// StreakReport loads a habit's full log from the store and computes streak
// statistics as of the given date.
func StreakReport(ctx context.Context, logs LogStore, habitID string, asOf recur.Date) (recur.Statistics, error) {
	entries, err := logs.Entries(ctx, habitID, recur.Date{}, asOf)
	if err != nil {
		return recur.Statistics{}, err
	}
	return recur.ComputeStatistics(entries, asOf)
}

// StreakReportWindow computes statistics over a bounded window, for
// month-at-a-time habit views.
func StreakReportWindow(ctx context.Context, logs LogStore, habitID string, from, asOf recur.Date) (recur.Statistics, error) {
	entries, err := logs.Entries(ctx, habitID, from, asOf)
	if err != nil {
		return recur.Statistics{}, err
	}
	return recur.ComputeStatistics(entries, asOf)
}
