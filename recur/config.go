package recur

import "time"

// =============================================================================
// REPEAT CONFIG - One variant per RepeatMode
// =============================================================================

// RepeatConfig is the sum type describing a repeat rule. Exactly one concrete
// config exists per RepeatMode, so a consumer switching on the variant is
// forced to handle every mode. Configs are immutable values; Validate is
// called at construction and mapping time, never during generation.
type RepeatConfig interface {
	Mode() RepeatMode
	Validate() error
}

// None fires exactly once, on the pattern's start date.
type None struct{}

// Daily matches every calendar day.
type Daily struct{}

// Weekdays matches Monday through Friday by calendar weekday, independent of
// any holiday oracle.
type Weekdays struct{}

// Weekend matches Saturday and Sunday by calendar weekday.
type Weekend struct{}

// Workdays matches days the oracle classifies as working days, including
// holiday make-up weekend days.
type Workdays struct{}

// Holiday matches days the oracle classifies as public holidays.
type Holiday struct{}

// Weekly matches the configured weekdays, every week.
type Weekly struct {
	Weekdays []time.Weekday // non-empty, no duplicates
}

// Monthly matches per-month positions described by its rule.
type Monthly struct {
	Rule MonthlyRule
}

// Yearly matches per-year positions described by its rule.
type Yearly struct {
	Rule YearlyRule
}

// Custom steps Interval units of Unit from the pattern's start date,
// intersected with a unit-specific sub-rule: a Weekly config when the unit is
// WEEK, Monthly when MONTH, Yearly when YEAR, and no sub-rule when DAY.
type Custom struct {
	Interval int
	Unit     TimeUnit
	Sub      RepeatConfig // nil for UnitDay
}

func (None) Mode() RepeatMode     { return ModeNone }
func (Daily) Mode() RepeatMode    { return ModeDaily }
func (Weekdays) Mode() RepeatMode { return ModeWeekdays }
func (Weekend) Mode() RepeatMode  { return ModeWeekend }
func (Workdays) Mode() RepeatMode { return ModeWorkdays }
func (Holiday) Mode() RepeatMode  { return ModeHoliday }
func (Weekly) Mode() RepeatMode   { return ModeWeekly }
func (Monthly) Mode() RepeatMode  { return ModeMonthly }
func (Yearly) Mode() RepeatMode   { return ModeYearly }
func (Custom) Mode() RepeatMode   { return ModeCustom }

func (None) Validate() error     { return nil }
func (Daily) Validate() error    { return nil }
func (Weekdays) Validate() error { return nil }
func (Weekend) Validate() error  { return nil }
func (Workdays) Validate() error { return nil }
func (Holiday) Validate() error  { return nil }

func (c Weekly) Validate() error {
	return validateWeekdaySet(ModeWeekly, c.Weekdays)
}

func (c Monthly) Validate() error {
	if c.Rule == nil {
		return validationErr(ModeMonthly, "rule", "is required")
	}
	return c.Rule.Validate()
}

func (c Yearly) Validate() error {
	if c.Rule == nil {
		return validationErr(ModeYearly, "rule", "is required")
	}
	return c.Rule.Validate()
}

func (c Custom) Validate() error {
	if c.Interval <= 0 {
		return validationErr(ModeCustom, "interval", "must be positive")
	}
	if !c.Unit.Valid() {
		return validationErr(ModeCustom, "intervalUnit", "is unknown")
	}
	switch c.Unit {
	case UnitDay:
		if c.Sub != nil {
			return validationErr(ModeCustom, "sub-rule", "not allowed for DAY unit")
		}
		return nil
	case UnitWeek:
		if _, ok := c.Sub.(Weekly); !ok {
			return validationErr(ModeCustom, "sub-rule", "must be a WEEKLY config for WEEK unit")
		}
	case UnitMonth:
		if _, ok := c.Sub.(Monthly); !ok {
			return validationErr(ModeCustom, "sub-rule", "must be a MONTHLY config for MONTH unit")
		}
	case UnitYear:
		if _, ok := c.Sub.(Yearly); !ok {
			return validationErr(ModeCustom, "sub-rule", "must be a YEARLY config for YEAR unit")
		}
	}
	return c.Sub.Validate()
}

// =============================================================================
// MONTHLY RULES - DAY / ORDINAL_WEEK / ORDINAL_DAY
// =============================================================================

// MonthlyType discriminates MonthlyRule variants on the wire.
type MonthlyType string

const (
	MonthlyDay         MonthlyType = "DAY"
	MonthlyOrdinalWeek MonthlyType = "ORDINAL_WEEK"
	MonthlyOrdinalDay  MonthlyType = "ORDINAL_DAY"
)

// MonthlyRule is the sub-sum a Monthly (or per-month Yearly) config carries.
type MonthlyRule interface {
	Type() MonthlyType
	Validate() error
}

// MonthDays matches explicit day-of-month numbers. A day beyond the month's
// length is skipped for that month, never clamped to an earlier day.
type MonthDays struct {
	Days []int // 1-31, non-empty, no duplicates
}

// MonthOrdinalWeek matches the Nth occurrence of one of the weekdays within
// the month, N possibly negative (counted from the month's last day).
type MonthOrdinalWeek struct {
	Week     OrdinalWeek
	Weekdays []time.Weekday // non-empty, no duplicates
}

// MonthOrdinalDay matches the Nth day of the month counted over the days the
// Kind filter selects (all days, workdays only, or weekend days only).
type MonthOrdinalDay struct {
	Day  OrdinalDay
	Kind OrdinalDayType
}

func (MonthDays) Type() MonthlyType        { return MonthlyDay }
func (MonthOrdinalWeek) Type() MonthlyType { return MonthlyOrdinalWeek }
func (MonthOrdinalDay) Type() MonthlyType  { return MonthlyOrdinalDay }

func (r MonthDays) Validate() error {
	if len(r.Days) == 0 {
		return validationErr(ModeMonthly, "days", "must not be empty")
	}
	seen := make(map[int]bool, len(r.Days))
	for _, day := range r.Days {
		if day < 1 || day > 31 {
			return validationErr(ModeMonthly, "days", "must be within 1-31")
		}
		if seen[day] {
			return validationErr(ModeMonthly, "days", "must not repeat")
		}
		seen[day] = true
	}
	return nil
}

func (r MonthOrdinalWeek) Validate() error {
	if !r.Week.Valid() {
		return validationErr(ModeMonthly, "ordinalWeek", "is out of range")
	}
	return validateWeekdaySet(ModeMonthly, r.Weekdays)
}

func (r MonthOrdinalDay) Validate() error {
	if !r.Day.Valid() {
		return validationErr(ModeMonthly, "ordinalDay", "is out of range")
	}
	if !r.Kind.Valid() {
		return validationErr(ModeMonthly, "dayType", "is unknown")
	}
	return nil
}

// =============================================================================
// YEARLY RULES - MONTH / ORDINAL_WEEK
// =============================================================================

// YearlyType discriminates YearlyRule variants on the wire.
type YearlyType string

const (
	YearlyMonth       YearlyType = "MONTH"
	YearlyOrdinalWeek YearlyType = "ORDINAL_WEEK"
)

// YearlyRule is the sub-sum a Yearly config carries.
type YearlyRule interface {
	Type() YearlyType
	Validate() error
}

// YearMonth pairs one month with its own monthly sub-rule.
type YearMonth struct {
	Month time.Month
	Rule  MonthlyRule
}

// YearMonths matches dates whose month is listed AND which satisfy that
// month's sub-rule.
type YearMonths struct {
	Months []YearMonth // non-empty, no duplicate months
}

// YearOrdinalWeek matches the Nth occurrence of one of the weekdays within
// the year, N possibly negative.
type YearOrdinalWeek struct {
	Week     OrdinalWeek
	Weekdays []time.Weekday
}

func (YearMonths) Type() YearlyType      { return YearlyMonth }
func (YearOrdinalWeek) Type() YearlyType { return YearlyOrdinalWeek }

func (r YearMonths) Validate() error {
	if len(r.Months) == 0 {
		return validationErr(ModeYearly, "months", "must not be empty")
	}
	seen := make(map[time.Month]bool, len(r.Months))
	for _, m := range r.Months {
		if m.Month < time.January || m.Month > time.December {
			return validationErr(ModeYearly, "months", "must be within JANUARY-DECEMBER")
		}
		if seen[m.Month] {
			return validationErr(ModeYearly, "months", "must not repeat")
		}
		seen[m.Month] = true
		if m.Rule == nil {
			return validationErr(ModeYearly, "months", "each month needs a sub-rule")
		}
		if err := m.Rule.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (r YearOrdinalWeek) Validate() error {
	if !r.Week.Valid() {
		return validationErr(ModeYearly, "ordinalWeek", "is out of range")
	}
	return validateWeekdaySet(ModeYearly, r.Weekdays)
}

func validateWeekdaySet(mode RepeatMode, weekdays []time.Weekday) error {
	if len(weekdays) == 0 {
		return validationErr(mode, "weekdays", "must not be empty")
	}
	seen := make(map[time.Weekday]bool, len(weekdays))
	for _, wd := range weekdays {
		if wd < time.Sunday || wd > time.Saturday {
			return validationErr(mode, "weekdays", "contains an unknown weekday")
		}
		if seen[wd] {
			return validationErr(mode, "weekdays", "must not repeat")
		}
		seen[wd] = true
	}
	return nil
}

func weekdayIn(set []time.Weekday, wd time.Weekday) bool {
	for _, w := range set {
		if w == wd {
			return true
		}
	}
	return false
}
