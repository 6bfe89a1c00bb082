package recur

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Day-granularity calendar value (this IS a calendar-date engine)
// =============================================================================

// Date is a single calendar day, normalized to midnight UTC.
// All engine computations operate on Dates; wall-clock time and time zones
// are the caller's concern.
type Date struct {
	t time.Time
}

// Constructors
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an arbitrary time.Time to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses an ISO "2006-01-02" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// MustDate is ParseDate for compile-time-known literals; panics on bad input.
func MustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Comparison
func (d Date) Before(other Date) bool        { return d.t.Before(other.t) }
func (d Date) After(other Date) bool         { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool         { return d.t.Equal(other.t) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.After(other) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.Before(other) }
func (d Date) IsZero() bool                  { return d.t.IsZero() }

// Arithmetic
func (d Date) AddDays(n int) Date   { return DateOf(d.t.AddDate(0, 0, n)) }
func (d Date) AddMonths(n int) Date { return DateOf(d.t.AddDate(0, n, 0)) }
func (d Date) AddYears(n int) Date  { return DateOf(d.t.AddDate(n, 0, 0)) }

// DaysSince returns the number of whole days from other to d (negative when
// d precedes other).
func (d Date) DaysSince(other Date) int {
	return int(d.t.Sub(other.t).Hours() / 24)
}

// Properties
func (d Date) Year() int             { return d.t.Year() }
func (d Date) Month() time.Month     { return d.t.Month() }
func (d Date) Day() int              { return d.t.Day() }
func (d Date) YearDay() int          { return d.t.YearDay() }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }
func (d Date) Time() time.Time       { return d.t }

func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// DaysInMonth returns the length of d's month.
func (d Date) DaysInMonth() int {
	return DaysInMonth(d.Year(), d.Month())
}

// DaysInYear returns 366 for leap years, 365 otherwise.
func (d Date) DaysInYear() int {
	if NewDate(d.Year(), time.December, 31).YearDay() == 366 {
		return 366
	}
	return 365
}

// StartOfWeek returns the Monday of d's ISO week.
func (d Date) StartOfWeek() Date {
	offset := (int(d.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return d.AddDays(-offset)
}

func (d Date) StartOfMonth() Date { return NewDate(d.Year(), d.Month(), 1) }
func (d Date) EndOfMonth() Date   { return NewDate(d.Year(), d.Month(), d.DaysInMonth()) }

func (d Date) String() string { return d.t.Format("2006-01-02") }

// JSON as ISO strings, matching the persisted wire form.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("invalid date JSON: %s", b)
	}
	parsed, err := ParseDate(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// =============================================================================
// DATE UTILITIES
// =============================================================================

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthsSince returns the number of whole calendar months from a's month to
// b's month, ignoring the day component.
func MonthsSince(b, a Date) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}

// WeeksSince returns the number of ISO weeks between the weeks containing a
// and b (Monday-anchored).
func WeeksSince(b, a Date) int {
	return b.StartOfWeek().DaysSince(a.StartOfWeek()) / 7
}
