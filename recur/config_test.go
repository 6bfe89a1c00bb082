package recur_test

import (
	"errors"
	"testing"
	"time"

	"github.com/warp/habit-engine/recur"
)

func TestConfigValidate_RejectsBadShapes(t *testing.T) {
	// GIVEN: Configs violating structural rules
	// WHEN: Validating each
	// THEN: Every one fails with a config error naming the field

	cases := []struct {
		name   string
		config recur.RepeatConfig
	}{
		{"weekly empty weekdays", recur.Weekly{}},
		{"weekly duplicate weekdays", recur.Weekly{
			Weekdays: []time.Weekday{time.Monday, time.Monday},
		}},
		{"monthly missing rule", recur.Monthly{}},
		{"monthly day zero", recur.Monthly{Rule: recur.MonthDays{Days: []int{0}}}},
		{"monthly day 32", recur.Monthly{Rule: recur.MonthDays{Days: []int{32}}}},
		{"monthly duplicate days", recur.Monthly{Rule: recur.MonthDays{Days: []int{5, 5}}}},
		{"monthly ordinal week out of range", recur.Monthly{Rule: recur.MonthOrdinalWeek{
			Week:     recur.OrdinalWeek(5),
			Weekdays: []time.Weekday{time.Monday},
		}}},
		{"monthly ordinal day zero", recur.Monthly{Rule: recur.MonthOrdinalDay{
			Day:  0,
			Kind: recur.DayKindCalendar,
		}}},
		{"monthly ordinal day unknown kind", recur.Monthly{Rule: recur.MonthOrdinalDay{
			Day:  1,
			Kind: recur.OrdinalDayType("LUNAR_DAY"),
		}}},
		{"yearly empty months", recur.Yearly{Rule: recur.YearMonths{}}},
		{"yearly duplicate months", recur.Yearly{Rule: recur.YearMonths{
			Months: []recur.YearMonth{
				{Month: time.May, Rule: recur.MonthDays{Days: []int{1}}},
				{Month: time.May, Rule: recur.MonthDays{Days: []int{2}}},
			},
		}}},
		{"yearly month without sub-rule", recur.Yearly{Rule: recur.YearMonths{
			Months: []recur.YearMonth{{Month: time.May}},
		}}},
		{"custom zero interval", recur.Custom{Unit: recur.UnitDay}},
		{"custom day unit with sub-rule", recur.Custom{
			Interval: 1,
			Unit:     recur.UnitDay,
			Sub:      recur.Daily{},
		}},
		{"custom week unit with wrong sub-rule", recur.Custom{
			Interval: 2,
			Unit:     recur.UnitWeek,
			Sub:      recur.Daily{},
		}},
		{"custom month unit without sub-rule", recur.Custom{
			Interval: 2,
			Unit:     recur.UnitMonth,
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.Validate()
			if !errors.Is(err, recur.ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
			var verr *recur.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			if verr.Field == "" {
				t.Error("expected the failing field to be named")
			}
		})
	}
}

func TestConfigValidate_AcceptsNegativeOrdinals(t *testing.T) {
	// GIVEN: Ordinals counted from the end
	// WHEN: Validating
	// THEN: Negative positions within range are legal

	configs := []recur.RepeatConfig{
		recur.Monthly{Rule: recur.MonthOrdinalWeek{
			Week:     recur.WeekSecondLast,
			Weekdays: []time.Weekday{time.Friday},
		}},
		recur.Monthly{Rule: recur.MonthOrdinalDay{
			Day:  -3,
			Kind: recur.DayKindWorkday,
		}},
	}
	for _, cfg := range configs {
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected valid config, got %v", err)
		}
	}
}

func TestPatternValidate_RequiresStartAndConfig(t *testing.T) {
	if _, err := recur.NewPattern(recur.Date{}, recur.Daily{}); !errors.Is(err, recur.ErrInvalidConfig) {
		t.Errorf("expected zero start date to be rejected, got %v", err)
	}
	if _, err := recur.NewPattern(d("2024-01-01"), nil); !errors.Is(err, recur.ErrInvalidConfig) {
		t.Errorf("expected nil config to be rejected, got %v", err)
	}
}
