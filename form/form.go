/*
Package form provides bidirectional conversion between the persisted repeat
representation and the editable form representation used by configuration UIs.

PURPOSE:
  Two shapes of the same rule coexist. The wire shape (RepeatVo) is flat,
  carries dates as ISO strings, and types its config purely by repeatMode -
  it is what gets persisted and shipped. The form shape (RepeatModeForm /
  RepeatEndModeForm) nests config per mode and keeps structured calendar
  values, so a UI can hold partial selections for every mode at once while
  the user is mid-edit, without losing type safety.

CONTRACT:
  VoToForm fails with a recur.ValidationError - never silently defaults -
  when a wire record's config is missing required fields for its declared
  mode (e.g. WEEKLY without weekdays). FormToVo is total: every valid form
  value maps to exactly one wire value, clearing config the mode does not
  need. For every wire value that was valid to begin with:

    FormToVo(VoToForm(v)) == v

SEE ALSO:
  - mapping.go: the conversions and the weekday/month name tables
  - recur/config.go: the engine-side sum type these shapes describe
*/
package form

import (
	"time"

	"github.com/warp/habit-engine/recur"
)

// =============================================================================
// WIRE SHAPE - Flat, string-dated, persisted
// =============================================================================

// RepeatVo is the persisted repeat descriptor. RepeatConfig is interpreted
// purely through RepeatMode; modes without configuration carry none.
type RepeatVo struct {
	RepeatMode      string          `json:"repeatMode"`
	RepeatConfig    *RepeatConfigVo `json:"repeatConfig,omitempty"`
	RepeatStartDate string          `json:"repeatStartDate"`
	RepeatEndMode   string          `json:"repeatEndMode"`
	RepeatTimes     int             `json:"repeatTimes,omitempty"`
	RepeatEndDate   string          `json:"repeatEndDate,omitempty"`
}

// RepeatConfigVo is the mode-dependent config payload. WEEKLY uses Weekdays;
// MONTHLY uses Monthly; YEARLY uses Yearly; CUSTOM uses Interval and
// IntervalUnit plus the sub-config block matching the unit.
type RepeatConfigVo struct {
	Weekdays     []string   `json:"weekdays,omitempty"`
	Monthly      *MonthlyVo `json:"monthly,omitempty"`
	Yearly       *YearlyVo  `json:"yearly,omitempty"`
	Interval     int        `json:"interval,omitempty"`
	IntervalUnit string     `json:"intervalUnit,omitempty"`
}

type MonthlyVo struct {
	Type        string   `json:"type"` // DAY | ORDINAL_WEEK | ORDINAL_DAY
	Days        []int    `json:"days,omitempty"`
	OrdinalWeek int      `json:"ordinalWeek,omitempty"`
	Weekdays    []string `json:"weekdays,omitempty"`
	OrdinalDay  int      `json:"ordinalDay,omitempty"`
	DayType     string   `json:"dayType,omitempty"`
}

type YearlyVo struct {
	Type        string          `json:"type"` // MONTH | ORDINAL_WEEK
	Months      []YearlyMonthVo `json:"months,omitempty"`
	OrdinalWeek int             `json:"ordinalWeek,omitempty"`
	Weekdays    []string        `json:"weekdays,omitempty"`
}

type YearlyMonthVo struct {
	Month  string    `json:"month"`
	Config MonthlyVo `json:"config"`
}

// =============================================================================
// FORM SHAPE - Nested per mode, structured dates, edit-safe
// =============================================================================

// RepeatModeForm keeps one sub-form per configurable mode so switching modes
// mid-edit never drops what the user already picked.
type RepeatModeForm struct {
	Mode      recur.RepeatMode
	StartDate recur.Date
	Weekly    WeeklyForm
	Monthly   MonthlyForm
	Yearly    YearlyForm
	Custom    CustomForm
}

type WeeklyForm struct {
	Weekdays []time.Weekday
}

type MonthlyForm struct {
	Type        recur.MonthlyType
	Days        []int
	OrdinalWeek recur.OrdinalWeek
	Weekdays    []time.Weekday
	OrdinalDay  recur.OrdinalDay
	DayType     recur.OrdinalDayType
}

type YearlyForm struct {
	Type        recur.YearlyType
	Months      []YearlyMonthForm
	OrdinalWeek recur.OrdinalWeek
	Weekdays    []time.Weekday
}

type YearlyMonthForm struct {
	Month  time.Month
	Config MonthlyForm
}

type CustomForm struct {
	Interval int
	Unit     recur.TimeUnit
	Weekly   WeeklyForm
	Monthly  MonthlyForm
	Yearly   YearlyForm
}

// RepeatEndModeForm mirrors RepeatEndMode with structured values.
type RepeatEndModeForm struct {
	Mode    recur.RepeatEndMode
	Times   int
	EndDate recur.Date
}

// RepeatForm bundles both editable halves of a repeat rule.
type RepeatForm struct {
	Mode RepeatModeForm
	End  RepeatEndModeForm
}

// =============================================================================
// FORM -> ENGINE
// =============================================================================

// Config builds the engine-side sum type from the form's active mode.
func (f RepeatModeForm) Config() (recur.RepeatConfig, error) {
	cfg, err := f.config()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (f RepeatModeForm) config() (recur.RepeatConfig, error) {
	switch f.Mode {
	case recur.ModeNone:
		return recur.None{}, nil
	case recur.ModeDaily:
		return recur.Daily{}, nil
	case recur.ModeWeekdays:
		return recur.Weekdays{}, nil
	case recur.ModeWeekend:
		return recur.Weekend{}, nil
	case recur.ModeWorkdays:
		return recur.Workdays{}, nil
	case recur.ModeHoliday:
		return recur.Holiday{}, nil
	case recur.ModeWeekly:
		return recur.Weekly{Weekdays: f.Weekly.Weekdays}, nil
	case recur.ModeMonthly:
		rule, err := f.Monthly.rule()
		if err != nil {
			return nil, err
		}
		return recur.Monthly{Rule: rule}, nil
	case recur.ModeYearly:
		rule, err := f.Yearly.rule()
		if err != nil {
			return nil, err
		}
		return recur.Yearly{Rule: rule}, nil
	case recur.ModeCustom:
		return f.Custom.config()
	default:
		return nil, &recur.ValidationError{Mode: f.Mode, Field: "repeatMode", Reason: "is unknown"}
	}
}

func (f MonthlyForm) rule() (recur.MonthlyRule, error) {
	switch f.Type {
	case recur.MonthlyDay:
		return recur.MonthDays{Days: f.Days}, nil
	case recur.MonthlyOrdinalWeek:
		return recur.MonthOrdinalWeek{Week: f.OrdinalWeek, Weekdays: f.Weekdays}, nil
	case recur.MonthlyOrdinalDay:
		return recur.MonthOrdinalDay{Day: f.OrdinalDay, Kind: f.DayType}, nil
	default:
		return nil, &recur.ValidationError{Mode: recur.ModeMonthly, Field: "type", Reason: "is unknown"}
	}
}

func (f YearlyForm) rule() (recur.YearlyRule, error) {
	switch f.Type {
	case recur.YearlyMonth:
		months := make([]recur.YearMonth, 0, len(f.Months))
		for _, m := range f.Months {
			rule, err := m.Config.rule()
			if err != nil {
				return nil, err
			}
			months = append(months, recur.YearMonth{Month: m.Month, Rule: rule})
		}
		return recur.YearMonths{Months: months}, nil
	case recur.YearlyOrdinalWeek:
		return recur.YearOrdinalWeek{Week: f.OrdinalWeek, Weekdays: f.Weekdays}, nil
	default:
		return nil, &recur.ValidationError{Mode: recur.ModeYearly, Field: "type", Reason: "is unknown"}
	}
}

func (f CustomForm) config() (recur.RepeatConfig, error) {
	c := recur.Custom{Interval: f.Interval, Unit: f.Unit}
	switch f.Unit {
	case recur.UnitDay:
		// no sub-rule
	case recur.UnitWeek:
		c.Sub = recur.Weekly{Weekdays: f.Weekly.Weekdays}
	case recur.UnitMonth:
		rule, err := f.Monthly.rule()
		if err != nil {
			return nil, err
		}
		c.Sub = recur.Monthly{Rule: rule}
	case recur.UnitYear:
		rule, err := f.Yearly.rule()
		if err != nil {
			return nil, err
		}
		c.Sub = recur.Yearly{Rule: rule}
	default:
		return nil, &recur.ValidationError{Mode: recur.ModeCustom, Field: "intervalUnit", Reason: "is unknown"}
	}
	return c, nil
}

// Pattern builds the engine pattern from the form.
func (f RepeatForm) Pattern() (recur.Pattern, error) {
	cfg, err := f.Mode.Config()
	if err != nil {
		return recur.Pattern{}, err
	}
	return recur.NewPattern(f.Mode.StartDate, cfg)
}

// Template builds a validated engine template from the form.
func (f RepeatForm) Template(id string) (recur.RepeatTemplate, error) {
	p, err := f.Pattern()
	if err != nil {
		return recur.RepeatTemplate{}, err
	}
	var opts []recur.TemplateOption
	switch f.End.Mode {
	case recur.EndForTimes:
		opts = append(opts, recur.ForTimes(f.End.Times))
	case recur.EndToDate:
		opts = append(opts, recur.ToDate(f.End.EndDate))
	}
	return recur.NewTemplate(id, p, f.End.Mode, opts...)
}
