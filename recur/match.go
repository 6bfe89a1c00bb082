package recur

// =============================================================================
// PATTERN - A repeat rule anchored at its start date
// =============================================================================

// Pattern is a RepeatConfig together with the first eligible date. The anchor
// matters: NONE matches only the start date itself, and CUSTOM measures its
// interval multiples from it.
type Pattern struct {
	Start  Date
	Config RepeatConfig
}

// NewPattern validates the config and returns the pattern.
func NewPattern(start Date, config RepeatConfig) (Pattern, error) {
	p := Pattern{Start: start, Config: config}
	if err := p.Validate(); err != nil {
		return Pattern{}, err
	}
	return p, nil
}

func (p Pattern) Validate() error {
	if p.Config == nil {
		return validationErr("", "repeatConfig", "is required")
	}
	if p.Start.IsZero() {
		return validationErr(p.Config.Mode(), "repeatStartDate", "is required")
	}
	return p.Config.Validate()
}

// Matches reports whether d satisfies the pattern predicate. A nil oracle
// falls back to plain weekday classification.
func (p Pattern) Matches(d Date, oracle CalendarOracle) bool {
	if oracle == nil {
		oracle = WeekdayOracle{}
	}
	if d.Before(p.Start) {
		return false
	}
	return configMatches(d, p.Start, p.Config, oracle)
}

func configMatches(d, start Date, config RepeatConfig, oracle CalendarOracle) bool {
	switch c := config.(type) {
	case None:
		return d.Equal(start)
	case Daily:
		return true
	case Weekdays:
		return !d.IsWeekend()
	case Weekend:
		return d.IsWeekend()
	case Workdays:
		return oracle.Classify(d).Class.IsWorking()
	case Holiday:
		return oracle.Classify(d).Class == ClassHoliday
	case Weekly:
		return weekdayIn(c.Weekdays, d.Weekday())
	case Monthly:
		return monthlyRuleMatches(d, c.Rule, oracle)
	case Yearly:
		return yearlyRuleMatches(d, c.Rule, oracle)
	case Custom:
		return customMatches(d, start, c, oracle)
	default:
		return false
	}
}

func customMatches(d, start Date, c Custom, oracle CalendarOracle) bool {
	switch c.Unit {
	case UnitDay:
		return d.DaysSince(start)%c.Interval == 0
	case UnitWeek:
		if WeeksSince(d, start)%c.Interval != 0 {
			return false
		}
		return configMatches(d, start, c.Sub, oracle)
	case UnitMonth:
		if MonthsSince(d, start)%c.Interval != 0 {
			return false
		}
		return configMatches(d, start, c.Sub, oracle)
	case UnitYear:
		if (d.Year()-start.Year())%c.Interval != 0 {
			return false
		}
		return configMatches(d, start, c.Sub, oracle)
	default:
		return false
	}
}

// =============================================================================
// MONTHLY MATCHING
// =============================================================================

func monthlyRuleMatches(d Date, rule MonthlyRule, oracle CalendarOracle) bool {
	switch r := rule.(type) {
	case MonthDays:
		day := d.Day()
		for _, want := range r.Days {
			if day == want {
				return true
			}
		}
		return false
	case MonthOrdinalWeek:
		if !weekdayIn(r.Weekdays, d.Weekday()) {
			return false
		}
		return ordinalWeekOfMonthMatches(d, r.Week)
	case MonthOrdinalDay:
		return ordinalDayOfMonthMatches(d, r, oracle)
	default:
		return false
	}
}

// ordinalWeekOfMonthMatches checks the position of d's weekday within its
// month: the Nth occurrence from the front, or from the back when N < 0.
func ordinalWeekOfMonthMatches(d Date, week OrdinalWeek) bool {
	if week > 0 {
		return (d.Day()-1)/7+1 == int(week)
	}
	return (d.DaysInMonth()-d.Day())/7+1 == -int(week)
}

func ordinalDayOfMonthMatches(d Date, r MonthOrdinalDay, oracle CalendarOracle) bool {
	if r.Kind == DayKindCalendar {
		if r.Day > 0 {
			return d.Day() == int(r.Day)
		}
		return d.Day() == d.DaysInMonth()+1+int(r.Day)
	}

	if !ordinalDaySelected(d, r.Kind, oracle) {
		return false
	}
	if r.Day > 0 {
		pos := 0
		for day := d.StartOfMonth(); day.BeforeOrEqual(d); day = day.AddDays(1) {
			if ordinalDaySelected(day, r.Kind, oracle) {
				pos++
			}
		}
		return pos == int(r.Day)
	}
	fromEnd := 0
	for day := d.EndOfMonth(); day.AfterOrEqual(d); day = day.AddDays(-1) {
		if ordinalDaySelected(day, r.Kind, oracle) {
			fromEnd++
		}
	}
	return fromEnd == -int(r.Day)
}

func ordinalDaySelected(d Date, kind OrdinalDayType, oracle CalendarOracle) bool {
	switch kind {
	case DayKindWorkday:
		return oracle.Classify(d).Class.IsWorking()
	case DayKindWeekend:
		return oracle.Classify(d).Class == ClassWeekend
	default:
		return true
	}
}

// =============================================================================
// YEARLY MATCHING
// =============================================================================

func yearlyRuleMatches(d Date, rule YearlyRule, oracle CalendarOracle) bool {
	switch r := rule.(type) {
	case YearMonths:
		for _, m := range r.Months {
			if m.Month == d.Month() {
				return monthlyRuleMatches(d, m.Rule, oracle)
			}
		}
		return false
	case YearOrdinalWeek:
		if !weekdayIn(r.Weekdays, d.Weekday()) {
			return false
		}
		if r.Week > 0 {
			return (d.YearDay()-1)/7+1 == int(r.Week)
		}
		return (d.DaysInYear()-d.YearDay())/7+1 == -int(r.Week)
	default:
		return false
	}
}
