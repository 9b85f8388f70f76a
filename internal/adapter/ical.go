// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-webdav/caldav"

	"github.com/MKhiriev/go-plan-it/internal/store"
	"github.com/MKhiriev/go-plan-it/models"
)

const productID = "-//PlanIt//CalDAV//EN"

// iCalendar names not covered by go-ical's constant set.
const (
	compAlarm   = "VALARM"
	propAction  = "ACTION"
	propTrigger = "TRIGGER"

	// propCompleted is a private property carrying the planner's completion
	// flag; standard iCalendar has no such field for VEVENTs.
	propCompleted = "X-PLANIT-COMPLETED"
)

// rawToICal converts a provider-level event into a VCALENDAR ready for PUT.
func rawToICal(event store.RawCalendarEvent) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	vevent := ical.NewEvent()
	vevent.Props.SetText(ical.PropUID, event.UID)
	vevent.Props.SetText(ical.PropSummary, event.Title)

	if event.Description != "" {
		vevent.Props.SetText(ical.PropDescription, event.Description)
	}

	// convert to UTC explicitly so the encoder emits the Z suffix
	vevent.Props.SetDateTime(ical.PropDateTimeStart, event.Start.UTC())
	if !event.End.IsZero() {
		vevent.Props.SetDateTime(ical.PropDateTimeEnd, event.End.UTC())
	}

	if event.Frequency != "" {
		vevent.Props.SetText(ical.PropRecurrenceRule, "FREQ="+strings.ToUpper(event.Frequency))
	}

	if event.Completed {
		vevent.Props.SetText(propCompleted, "TRUE")
	}

	vevent.Props.SetDateTime(ical.PropDateTimeStamp, time.Now().UTC())

	for _, alarm := range event.Alarms {
		valarm := ical.NewComponent(compAlarm)
		valarm.Props.SetText(propAction, "DISPLAY")
		valarm.Props.SetText(ical.PropDescription, event.Title)
		valarm.Props.SetText(propTrigger, formatTrigger(alarm.RelativeOffset))
		vevent.Children = append(vevent.Children, valarm)
	}

	cal.Children = append(cal.Children, vevent.Component)
	return cal
}

// parseCalendarObject extracts the first VEVENT of a calendar object into the
// provider-level shape.
func parseCalendarObject(obj *caldav.CalendarObject) (store.RawCalendarEvent, error) {
	if obj.Data == nil {
		return store.RawCalendarEvent{}, fmt.Errorf("no data in calendar object")
	}

	for _, comp := range obj.Data.Children {
		if comp.Name != ical.CompEvent {
			continue
		}

		event := store.RawCalendarEvent{Path: obj.Path}

		if prop := comp.Props.Get(ical.PropUID); prop != nil {
			event.UID = prop.Value
		}
		if prop := comp.Props.Get(ical.PropSummary); prop != nil {
			event.Title = prop.Value
		}
		if prop := comp.Props.Get(ical.PropDescription); prop != nil {
			event.Description = prop.Value
		}
		if prop := comp.Props.Get(ical.PropDateTimeStart); prop != nil {
			if t, err := prop.DateTime(time.UTC); err == nil {
				event.Start = t
			}
		}
		if prop := comp.Props.Get(ical.PropDateTimeEnd); prop != nil {
			if t, err := prop.DateTime(time.UTC); err == nil {
				event.End = t
			}
		}
		if prop := comp.Props.Get(ical.PropRecurrenceRule); prop != nil {
			event.Frequency = frequencyFromRRule(prop.Value)
		}
		if prop := comp.Props.Get(propCompleted); prop != nil {
			event.Completed = strings.EqualFold(prop.Value, "TRUE")
		}

		for _, child := range comp.Children {
			if child.Name != compAlarm {
				continue
			}
			trigger := child.Props.Get(propTrigger)
			if trigger == nil {
				continue
			}
			offset, err := parseTrigger(trigger.Value)
			if err != nil {
				continue
			}
			event.Alarms = append(event.Alarms, models.Alarm{
				RelativeOffset: offset,
				Method:         models.AlarmMethodAlert,
			})
		}

		return event, nil
	}

	return store.RawCalendarEvent{}, fmt.Errorf("calendar object carries no VEVENT")
}

// frequencyFromRRule pulls the FREQ part out of an RRULE value.
func frequencyFromRRule(rrule string) string {
	for _, part := range strings.Split(rrule, ";") {
		if value, ok := strings.CutPrefix(strings.ToUpper(strings.TrimSpace(part)), "FREQ="); ok {
			return value
		}
	}
	return ""
}

// formatTrigger renders a reminder offset (minutes relative to the event
// start, non-positive meaning before) as an iCalendar duration.
func formatTrigger(offsetMinutes int) string {
	if offsetMinutes < 0 {
		return fmt.Sprintf("-PT%dM", -offsetMinutes)
	}
	return fmt.Sprintf("PT%dM", offsetMinutes)
}

// parseTrigger converts an iCalendar duration (RFC 5545 §3.3.6) back into
// minutes. Seconds are truncated; weeks and days are folded into minutes.
func parseTrigger(value string) (int, error) {
	s := strings.TrimSpace(strings.ToUpper(value))
	sign := 1

	switch {
	case strings.HasPrefix(s, "-"):
		sign = -1
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	if !strings.HasPrefix(s, "P") {
		return 0, fmt.Errorf("invalid duration %q", value)
	}
	s = s[1:]

	var minutes int
	var number strings.Builder
	inTime := false

	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			number.WriteRune(r)
		case r == 'T':
			inTime = true
		case r == 'W' || r == 'D' || r == 'H' || r == 'M' || r == 'S':
			if number.Len() == 0 {
				return 0, fmt.Errorf("invalid duration %q", value)
			}
			n, err := strconv.Atoi(number.String())
			if err != nil {
				return 0, fmt.Errorf("invalid duration %q: %w", value, err)
			}
			number.Reset()

			switch r {
			case 'W':
				minutes += n * 7 * 24 * 60
			case 'D':
				minutes += n * 24 * 60
			case 'H':
				minutes += n * 60
			case 'M':
				if !inTime {
					return 0, fmt.Errorf("invalid duration %q: months unsupported", value)
				}
				minutes += n
			case 'S':
				// sub-minute precision is dropped
			}
		default:
			return 0, fmt.Errorf("invalid duration %q", value)
		}
	}

	if number.Len() != 0 {
		return 0, fmt.Errorf("invalid duration %q: trailing number", value)
	}

	return sign * minutes, nil
}
