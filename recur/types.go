/*
Package recur implements the recurrence-rule engine: declarative repeat
patterns expanded into concrete calendar dates, plus streak statistics over
dated habit logs.

PURPOSE:
  Given a pattern like "every 2nd Tuesday of the month" or "every workday,
  skipping public holidays", the engine answers exactly two questions:
  which dates does the pattern yield, and when does it stop. It creates no
  rows, sends no notifications, and stores no history - those belong to the
  caller.

KEY CONCEPTS:
  - Pattern:        a repeat rule (RepeatConfig) anchored at a start date
  - Generator:      bounded forward search producing occurrence dates
  - RepeatTemplate: the caller-owned aggregate with cursor + stop condition
  - CalendarOracle: injected workday/weekend/holiday classification
  - Statistics:     streak and completion-rate figures from a habit log

DESIGN PRINCIPLES:
  1. Purity: every call is a finite, side-effect-free computation
  2. Sum types: one config struct per repeat mode, checked at construction
  3. No defaults: structurally invalid configs fail, they are never patched
  4. Bounded search: impossible patterns error out instead of spinning

SEE ALSO:
  - config.go:   RepeatConfig variants and validation
  - generate.go: occurrence search
  - template.go: cursor advance and stop evaluation
  - streak.go:   habit statistics
*/
package recur

// =============================================================================
// REPEAT MODE - The pattern discriminant
// =============================================================================

// RepeatMode selects which repeat rule a pattern follows.
type RepeatMode string

const (
	ModeNone     RepeatMode = "NONE"     // fires once, on the start date
	ModeDaily    RepeatMode = "DAILY"    // every calendar day
	ModeWeekly   RepeatMode = "WEEKLY"   // configured weekdays, every week
	ModeMonthly  RepeatMode = "MONTHLY"  // per-month rule (day set / ordinal)
	ModeYearly   RepeatMode = "YEARLY"   // per-year rule
	ModeWeekdays RepeatMode = "WEEKDAYS" // Monday-Friday, calendar only
	ModeWeekend  RepeatMode = "WEEKEND"  // Saturday-Sunday, calendar only
	ModeWorkdays RepeatMode = "WORKDAYS" // oracle-classified working days
	ModeHoliday  RepeatMode = "HOLIDAY"  // oracle-classified public holidays
	ModeCustom   RepeatMode = "CUSTOM"   // every N units, with a sub-rule
)

// Valid reports whether m is a known repeat mode.
func (m RepeatMode) Valid() bool {
	switch m {
	case ModeNone, ModeDaily, ModeWeekly, ModeMonthly, ModeYearly,
		ModeWeekdays, ModeWeekend, ModeWorkdays, ModeHoliday, ModeCustom:
		return true
	}
	return false
}

// =============================================================================
// REPEAT END MODE - When a template stops producing occurrences
// =============================================================================

type RepeatEndMode string

const (
	EndForever  RepeatEndMode = "FOREVER"
	EndForTimes RepeatEndMode = "FOR_TIMES" // after repeatTimes occurrences
	EndToDate   RepeatEndMode = "TO_DATE"   // after repeatEndDate passes
)

func (m RepeatEndMode) Valid() bool {
	switch m {
	case EndForever, EndForTimes, EndToDate:
		return true
	}
	return false
}

// =============================================================================
// TIME UNIT - Step unit for CUSTOM patterns
// =============================================================================

type TimeUnit string

const (
	UnitDay   TimeUnit = "DAY"
	UnitWeek  TimeUnit = "WEEK"
	UnitMonth TimeUnit = "MONTH"
	UnitYear  TimeUnit = "YEAR"
)

func (u TimeUnit) Valid() bool {
	switch u {
	case UnitDay, UnitWeek, UnitMonth, UnitYear:
		return true
	}
	return false
}

// =============================================================================
// ORDINALS - Signed positions within a month or year
// =============================================================================

// OrdinalWeek is the position of a weekday occurrence within its month or
// year. Positive counts from the first day forward, negative from the last
// day backward: 2 is "the second", -1 is "the last", -2 "the second-to-last".
type OrdinalWeek int

const (
	WeekFirst      OrdinalWeek = 1
	WeekSecond     OrdinalWeek = 2
	WeekThird      OrdinalWeek = 3
	WeekFourth     OrdinalWeek = 4
	WeekLast       OrdinalWeek = -1
	WeekSecondLast OrdinalWeek = -2
)

func (w OrdinalWeek) Valid() bool {
	switch w {
	case WeekFirst, WeekSecond, WeekThird, WeekFourth, WeekLast, WeekSecondLast:
		return true
	}
	return false
}

// OrdinalDay is the signed position of a day within its month, counted over
// the days selected by an OrdinalDayType filter. 2 with WORKDAY means "the
// second workday of the month"; -2 means "the second-to-last".
type OrdinalDay int

func (o OrdinalDay) Valid() bool {
	return o != 0 && o >= -31 && o <= 31
}

// OrdinalDayType filters which days an OrdinalDay position counts over.
type OrdinalDayType string

const (
	DayKindCalendar OrdinalDayType = "CALENDAR_DAY"
	DayKindWorkday  OrdinalDayType = "WORKDAY"
	DayKindWeekend  OrdinalDayType = "WEEKEND_DAY"
)

func (k OrdinalDayType) Valid() bool {
	switch k {
	case DayKindCalendar, DayKindWorkday, DayKindWeekend:
		return true
	}
	return false
}

// =============================================================================
// COMPLETION SCORE - Habit log grading
// =============================================================================

// CompletionScore grades one logged day. Only FullyCompleted extends a
// streak; PartiallyCompleted still counts toward completion totals.
type CompletionScore int

const (
	NotCompleted       CompletionScore = 0
	PartiallyCompleted CompletionScore = 1
	FullyCompleted     CompletionScore = 2
)

func (s CompletionScore) Valid() bool {
	return s >= NotCompleted && s <= FullyCompleted
}

func (s CompletionScore) String() string {
	switch s {
	case NotCompleted:
		return "not_completed"
	case PartiallyCompleted:
		return "partially_completed"
	case FullyCompleted:
		return "fully_completed"
	default:
		return "unknown"
	}
}

// =============================================================================
// TEMPLATE STATUS
// =============================================================================

type TemplateStatus string

const (
	StatusActive    TemplateStatus = "active"
	StatusAbandoned TemplateStatus = "abandoned"
)
