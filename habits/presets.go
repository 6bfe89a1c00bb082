/*
presets.go - Pre-built repeat patterns for common habits

PURPOSE:
  Ready-to-use pattern constructors for the rules people actually pick:
  every day, every workday, a few weekdays, a monthly anchor. These are
  starting points; anything finer goes through recur's config types or the
  form package directly.

EXAMPLE:
  p := habits.Weekdays(recur.MustDate("2024-01-01"),
      time.Monday, time.Wednesday, time.Friday)
  tmpl, err := habits.NewTemplate("gym", p, recur.EndForever)
*/
package habits

import (
	"time"

	"github.com/warp/habit-engine/recur"
)

// EveryDay repeats daily from start.
func EveryDay(start recur.Date) recur.Pattern {
	return recur.Pattern{Start: start, Config: recur.Daily{}}
}

// EveryWorkday repeats on oracle-classified working days, honoring holiday
// make-up weekends.
func EveryWorkday(start recur.Date) recur.Pattern {
	return recur.Pattern{Start: start, Config: recur.Workdays{}}
}

// Weekdays repeats on the given weekdays every week.
func Weekdays(start recur.Date, weekdays ...time.Weekday) recur.Pattern {
	return recur.Pattern{Start: start, Config: recur.Weekly{Weekdays: weekdays}}
}

// MonthlyOnDays repeats on the given day-of-month numbers. A day a short
// month doesn't have is skipped, not clamped.
func MonthlyOnDays(start recur.Date, days ...int) recur.Pattern {
	return recur.Pattern{Start: start, Config: recur.Monthly{Rule: recur.MonthDays{Days: days}}}
}

// MonthlyOnOrdinalWeekday repeats on e.g. the second Tuesday of each month.
func MonthlyOnOrdinalWeekday(start recur.Date, week recur.OrdinalWeek, weekdays ...time.Weekday) recur.Pattern {
	return recur.Pattern{Start: start, Config: recur.Monthly{
		Rule: recur.MonthOrdinalWeek{Week: week, Weekdays: weekdays},
	}}
}

// EveryNDays repeats every n days from start.
func EveryNDays(start recur.Date, n int) recur.Pattern {
	return recur.Pattern{Start: start, Config: recur.Custom{Interval: n, Unit: recur.UnitDay}}
}

// EveryNWeeks repeats on the given weekdays, but only in weeks that are a
// multiple of n from the start week.
func EveryNWeeks(start recur.Date, n int, weekdays ...time.Weekday) recur.Pattern {
	return recur.Pattern{Start: start, Config: recur.Custom{
		Interval: n,
		Unit:     recur.UnitWeek,
		Sub:      recur.Weekly{Weekdays: weekdays},
	}}
}
