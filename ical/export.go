/*
Package ical exports repeat templates and materialized occurrences as
iCalendar data.

PURPOSE:
  Lets habit schedules travel to ordinary calendar clients. Two export
  shapes are offered:
  - TemplateCalendar: one recurring VEVENT carrying an RRULE, for rules
    RFC 5545 can express
  - OccurrenceCalendar: one plain all-day VEVENT per materialized
    occurrence, which works for every rule including oracle-dependent ones

EXPORTABILITY:
  RRULE has no notion of regional holiday calendars, so WORKDAYS, HOLIDAY
  and oracle-filtered ordinal-day rules return a NotExportableError from
  the RRULE path. Callers detect this with errors.Is(err, ErrNotExportable)
  and fall back to OccurrenceCalendar.

SEE ALSO:
  - rrule.go: repeat rule to RRULE conversion and its limits
  - habits/provisioner.go: produces the occurrences exported here
*/
package ical

import (
	"bytes"
	"time"

	goical "github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/warp/habit-engine/habits"
	"github.com/warp/habit-engine/recur"
)

const productID = "-//warp//habit-engine//EN"

func newCalendar() *goical.Calendar {
	cal := goical.NewCalendar()
	cal.Props.SetText(goical.PropVersion, "2.0")
	cal.Props.SetText(goical.PropProductID, productID)
	return cal
}

// TemplateCalendar renders a template as a single recurring all-day event.
// One-shot templates become a plain event without an RRULE; rules outside
// RFC 5545 return a NotExportableError.
func TemplateCalendar(t recur.RepeatTemplate) (*goical.Calendar, error) {
	cal := newCalendar()

	event := goical.NewEvent()
	event.Props.SetText(goical.PropUID, eventUID(t.ID))
	event.Props.SetText(goical.PropSummary, t.Name)
	if t.Description != "" {
		event.Props.SetText(goical.PropDescription, t.Description)
	}
	event.Props.SetDate(goical.PropDateTimeStart, t.Pattern.Start.Time())
	event.Props.SetDateTime(goical.PropDateTimeStamp, time.Now().UTC())

	if _, oneShot := t.Pattern.Config.(recur.None); !oneShot {
		rule, err := RuleString(t)
		if err != nil {
			return nil, err
		}
		event.Props.SetText(goical.PropRecurrenceRule, rule)
	}

	cal.Children = append(cal.Children, event.Component)
	return cal, nil
}

// OccurrenceCalendar renders materialized occurrences as individual all-day
// events named after the template. This path works for every repeat rule.
func OccurrenceCalendar(t recur.RepeatTemplate, occurrences []habits.Occurrence) *goical.Calendar {
	cal := newCalendar()
	stamp := time.Now().UTC()

	for _, occ := range occurrences {
		event := goical.NewEvent()
		event.Props.SetText(goical.PropUID, eventUID(occ.ID))
		event.Props.SetText(goical.PropSummary, t.Name)
		if t.Description != "" {
			event.Props.SetText(goical.PropDescription, t.Description)
		}
		event.Props.SetDate(goical.PropDateTimeStart, occ.Date.Time())
		event.Props.SetDateTime(goical.PropDateTimeStamp, stamp)
		cal.Children = append(cal.Children, event.Component)
	}
	return cal
}

// Encode serializes a calendar to its wire text.
func Encode(cal *goical.Calendar) (string, error) {
	var buf bytes.Buffer
	if err := goical.NewEncoder(&buf).Encode(cal); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func eventUID(id string) string {
	if id == "" {
		id = uuid.NewString()
	}
	return id + "@habit-engine"
}
