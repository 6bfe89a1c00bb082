package form

import (
	"time"

	"github.com/warp/habit-engine/recur"
)

// =============================================================================
// NAME TABLES - Wire spellings for weekdays and months
// =============================================================================

var weekdayNames = map[time.Weekday]string{
	time.Monday:    "MONDAY",
	time.Tuesday:   "TUESDAY",
	time.Wednesday: "WEDNESDAY",
	time.Thursday:  "THURSDAY",
	time.Friday:    "FRIDAY",
	time.Saturday:  "SATURDAY",
	time.Sunday:    "SUNDAY",
}

var monthNames = map[time.Month]string{
	time.January:   "JANUARY",
	time.February:  "FEBRUARY",
	time.March:     "MARCH",
	time.April:     "APRIL",
	time.May:       "MAY",
	time.June:      "JUNE",
	time.July:      "JULY",
	time.August:    "AUGUST",
	time.September: "SEPTEMBER",
	time.October:   "OCTOBER",
	time.November:  "NOVEMBER",
	time.December:  "DECEMBER",
}

var weekdayValues = invert(weekdayNames)
var monthValues = invert(monthNames)

func invert[K comparable](names map[K]string) map[string]K {
	out := make(map[string]K, len(names))
	for k, name := range names {
		out[name] = k
	}
	return out
}

// WeekdayName returns the wire spelling ("MONDAY" ... "SUNDAY").
func WeekdayName(wd time.Weekday) string { return weekdayNames[wd] }

// ParseWeekday resolves a wire spelling; ok is false for unknown names.
func ParseWeekday(name string) (time.Weekday, bool) {
	wd, ok := weekdayValues[name]
	return wd, ok
}

// MonthName returns the wire spelling ("JANUARY" ... "DECEMBER").
func MonthName(m time.Month) string { return monthNames[m] }

// ParseMonth resolves a wire spelling; ok is false for unknown names.
func ParseMonth(name string) (time.Month, bool) {
	m, ok := monthValues[name]
	return m, ok
}

// =============================================================================
// VO -> FORM (validating)
// =============================================================================

// VoToForm converts a wire record into the editable form shape. It fails
// with a recur.ValidationError when the config is missing required fields
// for its declared mode, or carries payloads the mode has no use for -
// nothing is ever silently defaulted or dropped.
func VoToForm(vo RepeatVo) (RepeatForm, error) {
	mode := recur.RepeatMode(vo.RepeatMode)
	if !mode.Valid() {
		return RepeatForm{}, verr(mode, "repeatMode", "is unknown")
	}

	start, err := recur.ParseDate(vo.RepeatStartDate)
	if err != nil {
		return RepeatForm{}, verr(mode, "repeatStartDate", "is not an ISO date")
	}

	f := RepeatForm{Mode: RepeatModeForm{Mode: mode, StartDate: start}}

	if err := voEndToForm(vo, mode, &f.End); err != nil {
		return RepeatForm{}, err
	}
	if err := voConfigToForm(vo.RepeatConfig, mode, &f.Mode); err != nil {
		return RepeatForm{}, err
	}

	// The engine-side validation catches everything structural the per-field
	// checks above do not (empty sets, duplicate entries, bad ordinals).
	if _, err := f.Template(""); err != nil {
		return RepeatForm{}, err
	}
	return f, nil
}

func voEndToForm(vo RepeatVo, mode recur.RepeatMode, out *RepeatEndModeForm) error {
	endMode := recur.RepeatEndMode(vo.RepeatEndMode)
	if !endMode.Valid() {
		return verr(mode, "repeatEndMode", "is unknown")
	}
	out.Mode = endMode

	switch endMode {
	case recur.EndForTimes:
		if vo.RepeatTimes <= 0 {
			return verr(mode, "repeatTimes", "must be positive")
		}
		if vo.RepeatEndDate != "" {
			return verr(mode, "repeatEndDate", "not allowed for FOR_TIMES")
		}
		out.Times = vo.RepeatTimes
	case recur.EndToDate:
		if vo.RepeatTimes != 0 {
			return verr(mode, "repeatTimes", "not allowed for TO_DATE")
		}
		end, err := recur.ParseDate(vo.RepeatEndDate)
		if err != nil {
			return verr(mode, "repeatEndDate", "is not an ISO date")
		}
		out.EndDate = end
	default:
		if vo.RepeatTimes != 0 {
			return verr(mode, "repeatTimes", "not allowed for FOREVER")
		}
		if vo.RepeatEndDate != "" {
			return verr(mode, "repeatEndDate", "not allowed for FOREVER")
		}
	}
	return nil
}

func voConfigToForm(cfg *RepeatConfigVo, mode recur.RepeatMode, out *RepeatModeForm) error {
	switch mode {
	case recur.ModeNone, recur.ModeDaily, recur.ModeWeekdays,
		recur.ModeWeekend, recur.ModeWorkdays, recur.ModeHoliday:
		if cfg != nil {
			return verr(mode, "repeatConfig", "not allowed for this mode")
		}
		return nil
	}

	if cfg == nil {
		return verr(mode, "repeatConfig", "is required")
	}

	switch mode {
	case recur.ModeWeekly:
		if err := requireOnly(mode, cfg, wantWeekdays); err != nil {
			return err
		}
		weekdays, err := parseWeekdays(mode, cfg.Weekdays)
		if err != nil {
			return err
		}
		out.Weekly = WeeklyForm{Weekdays: weekdays}
	case recur.ModeMonthly:
		if err := requireOnly(mode, cfg, wantMonthly); err != nil {
			return err
		}
		monthly, err := monthlyVoToForm(mode, *cfg.Monthly)
		if err != nil {
			return err
		}
		out.Monthly = monthly
	case recur.ModeYearly:
		if err := requireOnly(mode, cfg, wantYearly); err != nil {
			return err
		}
		yearly, err := yearlyVoToForm(mode, *cfg.Yearly)
		if err != nil {
			return err
		}
		out.Yearly = yearly
	case recur.ModeCustom:
		return customVoToForm(cfg, out)
	}
	return nil
}

func customVoToForm(cfg *RepeatConfigVo, out *RepeatModeForm) error {
	const mode = recur.ModeCustom
	if cfg.Interval <= 0 {
		return verr(mode, "interval", "must be positive")
	}
	unit := recur.TimeUnit(cfg.IntervalUnit)
	if !unit.Valid() {
		return verr(mode, "intervalUnit", "is unknown")
	}
	custom := CustomForm{Interval: cfg.Interval, Unit: unit}

	switch unit {
	case recur.UnitDay:
		if err := requireOnly(mode, cfg, 0); err != nil {
			return err
		}
	case recur.UnitWeek:
		if err := requireOnly(mode, cfg, wantWeekdays); err != nil {
			return err
		}
		weekdays, err := parseWeekdays(mode, cfg.Weekdays)
		if err != nil {
			return err
		}
		custom.Weekly = WeeklyForm{Weekdays: weekdays}
	case recur.UnitMonth:
		if err := requireOnly(mode, cfg, wantMonthly); err != nil {
			return err
		}
		monthly, err := monthlyVoToForm(mode, *cfg.Monthly)
		if err != nil {
			return err
		}
		custom.Monthly = monthly
	case recur.UnitYear:
		if err := requireOnly(mode, cfg, wantYearly); err != nil {
			return err
		}
		yearly, err := yearlyVoToForm(mode, *cfg.Yearly)
		if err != nil {
			return err
		}
		custom.Yearly = yearly
	}
	out.Custom = custom
	return nil
}

// requireOnly rejects config payloads the declared mode cannot use, so the
// round-trip law stays exact: FormToVo emits only the relevant block, and a
// wire record carrying more was never valid.
const (
	wantWeekdays = 1 << iota
	wantMonthly
	wantYearly
)

func requireOnly(mode recur.RepeatMode, cfg *RepeatConfigVo, want int) error {
	if want&wantWeekdays != 0 && len(cfg.Weekdays) == 0 {
		return verr(mode, "weekdays", "is required")
	}
	if want&wantWeekdays == 0 && len(cfg.Weekdays) != 0 {
		return verr(mode, "weekdays", "not allowed")
	}
	if want&wantMonthly != 0 && cfg.Monthly == nil {
		return verr(mode, "monthly", "is required")
	}
	if want&wantMonthly == 0 && cfg.Monthly != nil {
		return verr(mode, "monthly", "not allowed")
	}
	if want&wantYearly != 0 && cfg.Yearly == nil {
		return verr(mode, "yearly", "is required")
	}
	if want&wantYearly == 0 && cfg.Yearly != nil {
		return verr(mode, "yearly", "not allowed")
	}
	if mode != recur.ModeCustom && (cfg.Interval != 0 || cfg.IntervalUnit != "") {
		return verr(mode, "interval", "only allowed for CUSTOM")
	}
	return nil
}

func monthlyVoToForm(mode recur.RepeatMode, vo MonthlyVo) (MonthlyForm, error) {
	f := MonthlyForm{Type: recur.MonthlyType(vo.Type)}
	switch f.Type {
	case recur.MonthlyDay:
		if len(vo.Days) == 0 {
			return MonthlyForm{}, verr(mode, "monthly.days", "is required")
		}
		f.Days = vo.Days
	case recur.MonthlyOrdinalWeek:
		if vo.OrdinalWeek == 0 {
			return MonthlyForm{}, verr(mode, "monthly.ordinalWeek", "is required")
		}
		weekdays, err := parseWeekdays(mode, vo.Weekdays)
		if err != nil {
			return MonthlyForm{}, err
		}
		f.OrdinalWeek = recur.OrdinalWeek(vo.OrdinalWeek)
		f.Weekdays = weekdays
	case recur.MonthlyOrdinalDay:
		if vo.OrdinalDay == 0 {
			return MonthlyForm{}, verr(mode, "monthly.ordinalDay", "is required")
		}
		if vo.DayType == "" {
			return MonthlyForm{}, verr(mode, "monthly.dayType", "is required")
		}
		f.OrdinalDay = recur.OrdinalDay(vo.OrdinalDay)
		f.DayType = recur.OrdinalDayType(vo.DayType)
	default:
		return MonthlyForm{}, verr(mode, "monthly.type", "is unknown")
	}
	return f, nil
}

func yearlyVoToForm(mode recur.RepeatMode, vo YearlyVo) (YearlyForm, error) {
	f := YearlyForm{Type: recur.YearlyType(vo.Type)}
	switch f.Type {
	case recur.YearlyMonth:
		if len(vo.Months) == 0 {
			return YearlyForm{}, verr(mode, "yearly.months", "is required")
		}
		for _, m := range vo.Months {
			month, ok := ParseMonth(m.Month)
			if !ok {
				return YearlyForm{}, verr(mode, "yearly.months", "contains an unknown month")
			}
			monthly, err := monthlyVoToForm(mode, m.Config)
			if err != nil {
				return YearlyForm{}, err
			}
			f.Months = append(f.Months, YearlyMonthForm{Month: month, Config: monthly})
		}
	case recur.YearlyOrdinalWeek:
		if vo.OrdinalWeek == 0 {
			return YearlyForm{}, verr(mode, "yearly.ordinalWeek", "is required")
		}
		weekdays, err := parseWeekdays(mode, vo.Weekdays)
		if err != nil {
			return YearlyForm{}, err
		}
		f.OrdinalWeek = recur.OrdinalWeek(vo.OrdinalWeek)
		f.Weekdays = weekdays
	default:
		return YearlyForm{}, verr(mode, "yearly.type", "is unknown")
	}
	return f, nil
}

func parseWeekdays(mode recur.RepeatMode, names []string) ([]time.Weekday, error) {
	if len(names) == 0 {
		return nil, verr(mode, "weekdays", "is required")
	}
	out := make([]time.Weekday, 0, len(names))
	for _, name := range names {
		wd, ok := ParseWeekday(name)
		if !ok {
			return nil, verr(mode, "weekdays", "contains an unknown weekday")
		}
		out = append(out, wd)
	}
	return out, nil
}

func verr(mode recur.RepeatMode, field, reason string) error {
	return &recur.ValidationError{Mode: mode, Field: field, Reason: reason}
}

// =============================================================================
// FORM -> VO (total)
// =============================================================================

// FormToVo converts a form back to its wire shape. It is total over valid
// forms and emits only the config block the active mode needs, clearing
// everything a mode switch may have left behind in the other sub-forms.
func FormToVo(f RepeatForm) RepeatVo {
	vo := RepeatVo{
		RepeatMode:      string(f.Mode.Mode),
		RepeatStartDate: f.Mode.StartDate.String(),
		RepeatEndMode:   string(f.End.Mode),
	}

	switch f.End.Mode {
	case recur.EndForTimes:
		vo.RepeatTimes = f.End.Times
	case recur.EndToDate:
		vo.RepeatEndDate = f.End.EndDate.String()
	}

	switch f.Mode.Mode {
	case recur.ModeWeekly:
		vo.RepeatConfig = &RepeatConfigVo{Weekdays: weekdayNameList(f.Mode.Weekly.Weekdays)}
	case recur.ModeMonthly:
		monthly := monthlyFormToVo(f.Mode.Monthly)
		vo.RepeatConfig = &RepeatConfigVo{Monthly: &monthly}
	case recur.ModeYearly:
		yearly := yearlyFormToVo(f.Mode.Yearly)
		vo.RepeatConfig = &RepeatConfigVo{Yearly: &yearly}
	case recur.ModeCustom:
		vo.RepeatConfig = customFormToVo(f.Mode.Custom)
	}
	return vo
}

func customFormToVo(f CustomForm) *RepeatConfigVo {
	cfg := &RepeatConfigVo{Interval: f.Interval, IntervalUnit: string(f.Unit)}
	switch f.Unit {
	case recur.UnitWeek:
		cfg.Weekdays = weekdayNameList(f.Weekly.Weekdays)
	case recur.UnitMonth:
		monthly := monthlyFormToVo(f.Monthly)
		cfg.Monthly = &monthly
	case recur.UnitYear:
		yearly := yearlyFormToVo(f.Yearly)
		cfg.Yearly = &yearly
	}
	return cfg
}

func monthlyFormToVo(f MonthlyForm) MonthlyVo {
	vo := MonthlyVo{Type: string(f.Type)}
	switch f.Type {
	case recur.MonthlyDay:
		vo.Days = f.Days
	case recur.MonthlyOrdinalWeek:
		vo.OrdinalWeek = int(f.OrdinalWeek)
		vo.Weekdays = weekdayNameList(f.Weekdays)
	case recur.MonthlyOrdinalDay:
		vo.OrdinalDay = int(f.OrdinalDay)
		vo.DayType = string(f.DayType)
	}
	return vo
}

func yearlyFormToVo(f YearlyForm) YearlyVo {
	vo := YearlyVo{Type: string(f.Type)}
	switch f.Type {
	case recur.YearlyMonth:
		for _, m := range f.Months {
			vo.Months = append(vo.Months, YearlyMonthVo{
				Month:  MonthName(m.Month),
				Config: monthlyFormToVo(m.Config),
			})
		}
	case recur.YearlyOrdinalWeek:
		vo.OrdinalWeek = int(f.OrdinalWeek)
		vo.Weekdays = weekdayNameList(f.Weekdays)
	}
	return vo
}

func weekdayNameList(weekdays []time.Weekday) []string {
	out := make([]string, 0, len(weekdays))
	for _, wd := range weekdays {
		out = append(out, WeekdayName(wd))
	}
	return out
}

// VoToTemplate is the one-step path from a persisted record to a runnable
// engine template.
func VoToTemplate(id string, vo RepeatVo) (recur.RepeatTemplate, error) {
	f, err := VoToForm(vo)
	if err != nil {
		return recur.RepeatTemplate{}, err
	}
	return f.Template(id)
}

// TemplateToVo serializes a template's repeat rule back to the wire shape.
func TemplateToVo(t recur.RepeatTemplate) (RepeatVo, error) {
	f, err := templateToForm(t)
	if err != nil {
		return RepeatVo{}, err
	}
	return FormToVo(f), nil
}

func templateToForm(t recur.RepeatTemplate) (RepeatForm, error) {
	modeForm, err := configToForm(t.Pattern.Config)
	if err != nil {
		return RepeatForm{}, err
	}
	modeForm.StartDate = t.Pattern.Start

	end := RepeatEndModeForm{Mode: t.EndMode}
	switch t.EndMode {
	case recur.EndForTimes:
		end.Times = t.RepeatTimes
	case recur.EndToDate:
		end.EndDate = t.RepeatEndDate
	}
	return RepeatForm{Mode: modeForm, End: end}, nil
}

func configToForm(cfg recur.RepeatConfig) (RepeatModeForm, error) {
	f := RepeatModeForm{Mode: cfg.Mode()}
	switch c := cfg.(type) {
	case recur.None, recur.Daily, recur.Weekdays, recur.Weekend, recur.Workdays, recur.Holiday:
		// no payload
	case recur.Weekly:
		f.Weekly = WeeklyForm{Weekdays: c.Weekdays}
	case recur.Monthly:
		monthly, err := monthlyRuleToForm(c.Rule)
		if err != nil {
			return RepeatModeForm{}, err
		}
		f.Monthly = monthly
	case recur.Yearly:
		yearly, err := yearlyRuleToForm(c.Rule)
		if err != nil {
			return RepeatModeForm{}, err
		}
		f.Yearly = yearly
	case recur.Custom:
		custom := CustomForm{Interval: c.Interval, Unit: c.Unit}
		switch sub := c.Sub.(type) {
		case nil:
		case recur.Weekly:
			custom.Weekly = WeeklyForm{Weekdays: sub.Weekdays}
		case recur.Monthly:
			monthly, err := monthlyRuleToForm(sub.Rule)
			if err != nil {
				return RepeatModeForm{}, err
			}
			custom.Monthly = monthly
		case recur.Yearly:
			yearly, err := yearlyRuleToForm(sub.Rule)
			if err != nil {
				return RepeatModeForm{}, err
			}
			custom.Yearly = yearly
		}
		f.Custom = custom
	default:
		return RepeatModeForm{}, verr(cfg.Mode(), "repeatConfig", "has no wire representation")
	}
	return f, nil
}

func monthlyRuleToForm(rule recur.MonthlyRule) (MonthlyForm, error) {
	switch r := rule.(type) {
	case recur.MonthDays:
		return MonthlyForm{Type: recur.MonthlyDay, Days: r.Days}, nil
	case recur.MonthOrdinalWeek:
		return MonthlyForm{Type: recur.MonthlyOrdinalWeek, OrdinalWeek: r.Week, Weekdays: r.Weekdays}, nil
	case recur.MonthOrdinalDay:
		return MonthlyForm{Type: recur.MonthlyOrdinalDay, OrdinalDay: r.Day, DayType: r.Kind}, nil
	default:
		return MonthlyForm{}, verr(recur.ModeMonthly, "monthly", "has no wire representation")
	}
}

func yearlyRuleToForm(rule recur.YearlyRule) (YearlyForm, error) {
	switch r := rule.(type) {
	case recur.YearMonths:
		f := YearlyForm{Type: recur.YearlyMonth}
		for _, m := range r.Months {
			monthly, err := monthlyRuleToForm(m.Rule)
			if err != nil {
				return YearlyForm{}, err
			}
			f.Months = append(f.Months, YearlyMonthForm{Month: m.Month, Config: monthly})
		}
		return f, nil
	case recur.YearOrdinalWeek:
		return YearlyForm{Type: recur.YearlyOrdinalWeek, OrdinalWeek: r.Week, Weekdays: r.Weekdays}, nil
	default:
		return YearlyForm{}, verr(recur.ModeYearly, "yearly", "has no wire representation")
	}
}
