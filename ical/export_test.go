package ical_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/warp/habit-engine/habits"
	"github.com/warp/habit-engine/ical"
	"github.com/warp/habit-engine/recur"
)

func template(t *testing.T, config recur.RepeatConfig, end recur.RepeatEndMode, opts ...recur.TemplateOption) recur.RepeatTemplate {
	t.Helper()
	p, err := recur.NewPattern(recur.MustDate("2024-01-01"), config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	opts = append(opts, recur.Named("morning run"))
	tpl, err := recur.NewTemplate("tpl-1", p, end, opts...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return tpl
}

// =============================================================================
// RRULE CONVERSION
// =============================================================================

func TestRuleString_CoversRFCExpressibleRules(t *testing.T) {
	cases := []struct {
		name   string
		config recur.RepeatConfig
		want   []string
	}{
		{"daily", recur.Daily{}, []string{"FREQ=DAILY"}},
		{"weekdays", recur.Weekdays{}, []string{"FREQ=WEEKLY", "BYDAY=MO,TU,WE,TH,FR"}},
		{"weekend", recur.Weekend{}, []string{"FREQ=WEEKLY", "BYDAY=SA,SU"}},
		{"weekly", recur.Weekly{
			Weekdays: []time.Weekday{time.Monday, time.Friday},
		}, []string{"FREQ=WEEKLY", "BYDAY=MO,FR"}},
		{"monthly days", recur.Monthly{
			Rule: recur.MonthDays{Days: []int{1, 15}},
		}, []string{"FREQ=MONTHLY", "BYMONTHDAY=1,15"}},
		{"monthly second tuesday", recur.Monthly{
			Rule: recur.MonthOrdinalWeek{Week: recur.WeekSecond, Weekdays: []time.Weekday{time.Tuesday}},
		}, []string{"FREQ=MONTHLY", "BYDAY=+2TU"}},
		{"monthly last friday", recur.Monthly{
			Rule: recur.MonthOrdinalWeek{Week: recur.WeekLast, Weekdays: []time.Weekday{time.Friday}},
		}, []string{"FREQ=MONTHLY", "BYDAY=-1FR"}},
		{"monthly calendar ordinal day", recur.Monthly{
			Rule: recur.MonthOrdinalDay{Day: -1, Kind: recur.DayKindCalendar},
		}, []string{"FREQ=MONTHLY", "BYMONTHDAY=-1"}},
		{"yearly shared month rule", recur.Yearly{
			Rule: recur.YearMonths{Months: []recur.YearMonth{
				{Month: time.March, Rule: recur.MonthDays{Days: []int{1}}},
				{Month: time.September, Rule: recur.MonthDays{Days: []int{1}}},
			}},
		}, []string{"FREQ=YEARLY", "BYMONTH=3,9", "BYMONTHDAY=1"}},
		{"custom every 2 days", recur.Custom{
			Interval: 2, Unit: recur.UnitDay,
		}, []string{"FREQ=DAILY", "INTERVAL=2"}},
		{"custom every 3 weeks", recur.Custom{
			Interval: 3, Unit: recur.UnitWeek,
			Sub: recur.Weekly{Weekdays: []time.Weekday{time.Saturday}},
		}, []string{"FREQ=WEEKLY", "INTERVAL=3", "BYDAY=SA"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tpl := template(t, tc.config, recur.EndForever)
			rule, err := ical.RuleString(tpl)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, want := range tc.want {
				if !strings.Contains(rule, want) {
					t.Errorf("expected %q in rule %q", want, rule)
				}
			}
		})
	}
}

func TestRuleString_EndConditions(t *testing.T) {
	forTimes := template(t, recur.Daily{}, recur.EndForTimes, recur.ForTimes(10))
	rule, err := ical.RuleString(forTimes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rule, "COUNT=10") {
		t.Errorf("expected COUNT=10 in %q", rule)
	}

	toDate := template(t, recur.Daily{}, recur.EndToDate, recur.ToDate(recur.MustDate("2024-06-30")))
	rule, err = ical.RuleString(toDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rule, "UNTIL=20240630") {
		t.Errorf("expected UNTIL boundary in %q", rule)
	}
}

func TestRuleString_OracleDependentRules_NotExportable(t *testing.T) {
	// GIVEN: Rules whose matches depend on a holiday calendar
	// WHEN: Converting to RRULE
	// THEN: Each fails with ErrNotExportable and names its mode

	cases := []struct {
		name   string
		config recur.RepeatConfig
	}{
		{"workdays", recur.Workdays{}},
		{"holiday", recur.Holiday{}},
		{"ordinal workday", recur.Monthly{
			Rule: recur.MonthOrdinalDay{Day: 3, Kind: recur.DayKindWorkday},
		}},
		{"ordinal weekend day", recur.Monthly{
			Rule: recur.MonthOrdinalDay{Day: 1, Kind: recur.DayKindWeekend},
		}},
		{"yearly differing month rules", recur.Yearly{
			Rule: recur.YearMonths{Months: []recur.YearMonth{
				{Month: time.March, Rule: recur.MonthDays{Days: []int{1}}},
				{Month: time.September, Rule: recur.MonthDays{Days: []int{15}}},
			}},
		}},
		{"one-shot", recur.None{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tpl := template(t, tc.config, recur.EndForever)
			_, err := ical.RuleString(tpl)
			if !errors.Is(err, ical.ErrNotExportable) {
				t.Fatalf("expected ErrNotExportable, got %v", err)
			}
			var notExportable *ical.NotExportableError
			if !errors.As(err, &notExportable) {
				t.Fatalf("expected NotExportableError, got %T", err)
			}
		})
	}
}

// =============================================================================
// CALENDAR EXPORT
// =============================================================================

func TestTemplateCalendar_RecurringEvent(t *testing.T) {
	// GIVEN: A weekly template
	// WHEN: Exporting and encoding
	// THEN: The calendar carries one VEVENT with the recurrence rule

	tpl := template(t, recur.Weekly{
		Weekdays: []time.Weekday{time.Monday},
	}, recur.EndForever)
	tpl.Description = "around the park"

	cal, err := ical.TemplateCalendar(tpl)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text, err := ical.Encode(cal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"BEGIN:VEVENT",
		"SUMMARY:morning run",
		"DESCRIPTION:around the park",
		"RRULE:FREQ=WEEKLY",
		"20240101",
		"END:VCALENDAR",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q in encoded calendar:\n%s", want, text)
		}
	}
}

func TestTemplateCalendar_OneShot_PlainEvent(t *testing.T) {
	tpl := template(t, recur.None{}, recur.EndForever)

	cal, err := ical.TemplateCalendar(tpl)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text, err := ical.Encode(cal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(text, "RRULE") {
		t.Errorf("expected one-shot event without RRULE:\n%s", text)
	}
}

func TestTemplateCalendar_NotExportableRule_Fails(t *testing.T) {
	tpl := template(t, recur.Workdays{}, recur.EndForever)
	if _, err := ical.TemplateCalendar(tpl); !errors.Is(err, ical.ErrNotExportable) {
		t.Fatalf("expected ErrNotExportable, got %v", err)
	}
}

func TestOccurrenceCalendar_EventPerOccurrence(t *testing.T) {
	// GIVEN: Materialized occurrences of an oracle-dependent template
	// WHEN: Exporting them
	// THEN: Each occurrence becomes its own dated event

	tpl := template(t, recur.Workdays{}, recur.EndForever)
	occs := []habits.Occurrence{
		{ID: "occ-1", TemplateID: tpl.ID, Date: recur.MustDate("2024-01-02")},
		{ID: "occ-2", TemplateID: tpl.ID, Date: recur.MustDate("2024-01-03")},
	}

	text, err := ical.Encode(ical.OccurrenceCalendar(tpl, occs))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.Count(text, "BEGIN:VEVENT"); got != 2 {
		t.Fatalf("expected 2 events, got %d:\n%s", got, text)
	}
	for _, want := range []string{"20240102", "20240103", "occ-1@habit-engine", "occ-2@habit-engine"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q in encoded calendar:\n%s", want, text)
		}
	}
}
