package recur

// =============================================================================
// CALENDAR ORACLE - Injected day classification
// =============================================================================

// DayClass is the oracle's verdict for one date.
type DayClass string

const (
	ClassWorkday DayClass = "WORKDAY"
	ClassWeekend DayClass = "WEEKEND"
	ClassHoliday DayClass = "HOLIDAY"
	// ClassMakeupWorkday marks a weekend day that a locale designates as a
	// working day in exchange for a nearby holiday.
	ClassMakeupWorkday DayClass = "MAKEUP_WORKDAY"
)

// DayClassification pairs the class with the holiday name when there is one.
type DayClassification struct {
	Class DayClass
	Name  string // holiday name, empty otherwise
}

// CalendarOracle classifies dates as working days, weekends, public holidays
// or holiday make-up workdays. The engine only ever reads from it; callers
// backing an oracle with network or disk I/O are responsible for caching.
//
// Implementations must be side-effect-free: the engine may call Classify
// concurrently from multiple goroutines.
type CalendarOracle interface {
	Classify(d Date) DayClassification
}

// WeekdayOracle is the default oracle for locales without holiday data:
// Saturday and Sunday are weekends, everything else is a workday.
type WeekdayOracle struct{}

func (WeekdayOracle) Classify(d Date) DayClassification {
	if d.IsWeekend() {
		return DayClassification{Class: ClassWeekend}
	}
	return DayClassification{Class: ClassWorkday}
}

// IsWorking reports whether the class counts as a working day. A make-up
// Saturday counts; a holiday Tuesday does not.
func (c DayClass) IsWorking() bool {
	return c == ClassWorkday || c == ClassMakeupWorkday
}
