package calendar_test

import (
	"strings"
	"testing"

	"github.com/warp/habit-engine/calendar"
	"github.com/warp/habit-engine/recur"
)

func TestTable_Classify_OverridesAndFallback(t *testing.T) {
	// GIVEN: A table with one holiday Monday and one make-up Saturday
	// WHEN: Classifying those dates and an ordinary one
	// THEN: Overrides win; everything else falls back to weekday rules

	table := calendar.NewTable()
	table.AddHoliday(recur.MustDate("2024-02-12"), "Spring Festival")
	table.AddMakeupWorkday(recur.MustDate("2024-02-04"))

	holiday := table.Classify(recur.MustDate("2024-02-12"))
	if holiday.Class != recur.ClassHoliday {
		t.Errorf("expected HOLIDAY, got %s", holiday.Class)
	}
	if holiday.Name != "Spring Festival" {
		t.Errorf("expected holiday name preserved, got %q", holiday.Name)
	}

	makeup := table.Classify(recur.MustDate("2024-02-04"))
	if makeup.Class != recur.ClassMakeupWorkday {
		t.Errorf("expected MAKEUP_WORKDAY, got %s", makeup.Class)
	}
	if !makeup.Class.IsWorking() {
		t.Error("expected make-up day to count as working")
	}

	if got := table.Classify(recur.MustDate("2024-02-13")).Class; got != recur.ClassWorkday {
		t.Errorf("expected plain Tuesday to be WORKDAY, got %s", got)
	}
	if got := table.Classify(recur.MustDate("2024-02-10")).Class; got != recur.ClassWeekend {
		t.Errorf("expected plain Saturday to be WEEKEND, got %s", got)
	}
}

func TestLoad_ParsesOverrideFile(t *testing.T) {
	data := `[
		{"date": "2024-02-10", "class": "HOLIDAY", "name": "Spring Festival"},
		{"date": "2024-02-04", "class": "MAKEUP_WORKDAY"}
	]`

	table, err := calendar.Load(strings.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := table.Classify(recur.MustDate("2024-02-10")); got.Class != recur.ClassHoliday || got.Name != "Spring Festival" {
		t.Errorf("unexpected classification: %+v", got)
	}
	if got := table.Classify(recur.MustDate("2024-02-04")).Class; got != recur.ClassMakeupWorkday {
		t.Errorf("expected MAKEUP_WORKDAY, got %s", got)
	}
}

func TestLoad_RejectsBadEntries(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"malformed JSON", `[{"date": "2024-01-01"`},
		{"bad date", `[{"date": "Jan 1", "class": "HOLIDAY"}]`},
		{"unknown class", `[{"date": "2024-01-01", "class": "FESTIVAL"}]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := calendar.Load(strings.NewReader(tc.data)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestTable_DrivesWorkdayPattern(t *testing.T) {
	// GIVEN: A workdays pattern and a table trading Mon Feb 12 for Sun Feb 4
	// WHEN: Generating occurrences through the swap
	// THEN: The holiday is skipped and the make-up Saturday is emitted

	table := calendar.NewTable()
	table.AddHoliday(recur.MustDate("2024-02-12"), "Spring Festival")
	table.AddMakeupWorkday(recur.MustDate("2024-02-04"))

	g := &recur.Generator{Oracle: table}
	p, err := recur.NewPattern(recur.MustDate("2024-02-01"), recur.Workdays{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	it, err := g.Range(p, recur.MustDate("2024-02-01"), recur.MustDate("2024-02-13"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got []string
	for _, day := range it.Collect() {
		got = append(got, day.String())
	}
	want := []string{
		"2024-02-01", "2024-02-02", // Thu, Fri
		"2024-02-04",               // make-up Sunday
		"2024-02-05", "2024-02-06", "2024-02-07", "2024-02-08", "2024-02-09",
		"2024-02-13", // Feb 12 holiday skipped
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d workdays, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("day %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}
