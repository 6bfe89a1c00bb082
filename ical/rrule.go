package ical

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/teambition/rrule-go"
	"github.com/warp/habit-engine/recur"
)

// ErrNotExportable marks repeat rules with no RFC 5545 equivalent. Anything
// that consults the calendar oracle (workday counts, holiday matching) falls
// in this bucket: RRULE has no vocabulary for regional holiday calendars.
var ErrNotExportable = errors.New("repeat rule not expressible as RRULE")

// NotExportableError reports which rule could not be exported and why.
type NotExportableError struct {
	Mode   recur.RepeatMode
	Reason string
}

func (e *NotExportableError) Error() string {
	return fmt.Sprintf("%s rule not exportable: %s", e.Mode, e.Reason)
}

func (e *NotExportableError) Unwrap() error { return ErrNotExportable }

func notExportable(mode recur.RepeatMode, reason string) error {
	return &NotExportableError{Mode: mode, Reason: reason}
}

var rruleWeekdays = map[time.Weekday]rrule.Weekday{
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
	time.Sunday:    rrule.SU,
}

// Rule converts a template's repeat rule into a validated RRULE. One-shot
// templates and oracle-dependent rules return a NotExportableError; callers
// exporting calendars should fall back to plain dated events for those.
func Rule(t recur.RepeatTemplate) (*rrule.RRule, error) {
	opt, err := ruleOption(t)
	if err != nil {
		return nil, err
	}
	r, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, fmt.Errorf("build rrule for template %s: %w", t.ID, err)
	}
	return r, nil
}

// RuleString renders the RRULE property value (no "RRULE:" prefix, no
// DTSTART line) for a template's repeat rule.
func RuleString(t recur.RepeatTemplate) (string, error) {
	opt, err := ruleOption(t)
	if err != nil {
		return "", err
	}
	if _, err := rrule.NewRRule(opt); err != nil {
		return "", fmt.Errorf("build rrule for template %s: %w", t.ID, err)
	}
	return opt.RRuleString(), nil
}

func ruleOption(t recur.RepeatTemplate) (rrule.ROption, error) {
	opt := rrule.ROption{Dtstart: t.Pattern.Start.Time()}

	switch t.EndMode {
	case recur.EndForTimes:
		opt.Count = t.RepeatTimes
	case recur.EndToDate:
		opt.Until = t.RepeatEndDate.Time()
	}

	if err := applyConfig(&opt, t.Pattern.Config); err != nil {
		return rrule.ROption{}, err
	}
	return opt, nil
}

func applyConfig(opt *rrule.ROption, config recur.RepeatConfig) error {
	switch c := config.(type) {
	case recur.None:
		return notExportable(recur.ModeNone, "fires once, use a plain event")
	case recur.Daily:
		opt.Freq = rrule.DAILY
	case recur.Weekdays:
		opt.Freq = rrule.WEEKLY
		opt.Byweekday = []rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR}
	case recur.Weekend:
		opt.Freq = rrule.WEEKLY
		opt.Byweekday = []rrule.Weekday{rrule.SA, rrule.SU}
	case recur.Workdays:
		return notExportable(recur.ModeWorkdays, "depends on a holiday calendar oracle")
	case recur.Holiday:
		return notExportable(recur.ModeHoliday, "depends on a holiday calendar oracle")
	case recur.Weekly:
		opt.Freq = rrule.WEEKLY
		opt.Byweekday = toRRuleWeekdays(c.Weekdays)
	case recur.Monthly:
		opt.Freq = rrule.MONTHLY
		return applyMonthlyRule(opt, recur.ModeMonthly, c.Rule)
	case recur.Yearly:
		opt.Freq = rrule.YEARLY
		return applyYearlyRule(opt, c.Rule)
	case recur.Custom:
		return applyCustom(opt, c)
	default:
		return notExportable(config.Mode(), "unknown config variant")
	}
	return nil
}

func applyMonthlyRule(opt *rrule.ROption, mode recur.RepeatMode, rule recur.MonthlyRule) error {
	switch r := rule.(type) {
	case recur.MonthDays:
		opt.Bymonthday = append([]int(nil), r.Days...)
	case recur.MonthOrdinalWeek:
		for _, wd := range r.Weekdays {
			rwd := rruleWeekdays[wd]
			opt.Byweekday = append(opt.Byweekday, rwd.Nth(int(r.Week)))
		}
	case recur.MonthOrdinalDay:
		if r.Kind != recur.DayKindCalendar {
			return notExportable(mode, "ordinal day counted over oracle-filtered days")
		}
		opt.Bymonthday = []int{int(r.Day)}
	default:
		return notExportable(mode, "unknown monthly rule variant")
	}
	return nil
}

func applyYearlyRule(opt *rrule.ROption, rule recur.YearlyRule) error {
	switch r := rule.(type) {
	case recur.YearMonths:
		// RRULE carries a single BYxxx rule for all listed months, so months
		// with differing sub-rules cannot share one RRULE line.
		for _, m := range r.Months[1:] {
			if !reflect.DeepEqual(m.Rule, r.Months[0].Rule) {
				return notExportable(recur.ModeYearly, "months carry differing sub-rules")
			}
		}
		for _, m := range r.Months {
			opt.Bymonth = append(opt.Bymonth, int(m.Month))
		}
		return applyMonthlyRule(opt, recur.ModeYearly, r.Months[0].Rule)
	case recur.YearOrdinalWeek:
		opt.Byweekno = []int{int(r.Week)}
		opt.Byweekday = toRRuleWeekdays(r.Weekdays)
	default:
		return notExportable(recur.ModeYearly, "unknown yearly rule variant")
	}
	return nil
}

func applyCustom(opt *rrule.ROption, c recur.Custom) error {
	opt.Interval = c.Interval
	switch c.Unit {
	case recur.UnitDay:
		opt.Freq = rrule.DAILY
		return nil
	case recur.UnitWeek:
		opt.Freq = rrule.WEEKLY
	case recur.UnitMonth:
		opt.Freq = rrule.MONTHLY
	case recur.UnitYear:
		opt.Freq = rrule.YEARLY
	default:
		return notExportable(recur.ModeCustom, "unknown interval unit")
	}

	switch sub := c.Sub.(type) {
	case recur.Weekly:
		opt.Byweekday = toRRuleWeekdays(sub.Weekdays)
		return nil
	case recur.Monthly:
		return applyMonthlyRule(opt, recur.ModeCustom, sub.Rule)
	case recur.Yearly:
		return applyYearlyRule(opt, sub.Rule)
	default:
		return notExportable(recur.ModeCustom, "unknown sub-rule variant")
	}
}

func toRRuleWeekdays(weekdays []time.Weekday) []rrule.Weekday {
	out := make([]rrule.Weekday, 0, len(weekdays))
	for _, wd := range weekdays {
		out = append(out, rruleWeekdays[wd])
	}
	return out
}
