// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Repeat enumerates the supported recurrence frequencies of an event.
// RepeatNone (or an empty string) means the event does not recur.
type Repeat string

const (
	RepeatNone    Repeat = "none"
	RepeatDaily   Repeat = "daily"
	RepeatWeekly  Repeat = "weekly"
	RepeatMonthly Repeat = "monthly"
	RepeatYearly  Repeat = "yearly"
)

// AlarmMethodAlert is the only delivery method the planner emits; the field
// exists so that stores which support other methods (email, sms) can round-trip
// them unchanged.
const AlarmMethodAlert = "alert"

// Alarm describes a single reminder attached to an event.
//
// RelativeOffset is the number of minutes relative to the event's effective
// start at which the reminder fires. By convention the value is non-positive:
// 0 fires at the start instant, -15 fires fifteen minutes before it.
type Alarm struct {
	RelativeOffset int    `json:"relativeOffset"`
	Method         string `json:"method"`
}

// Event is the central entity of the planner.
//
// StartDate and EndDate are calendar-day anchors: only their year, month and
// day components are meaningful. StartTime and EndTime carry the wall-clock
// time of day; their date components are ignored. The instant an event
// actually begins is obtained via [Event.EffectiveStart].
//
// Notes holds free text as the user typed it. Backends without dedicated
// owner/color columns embed metadata tags into this field on write and strip
// them on read, so service-layer code always sees clean notes.
//
// The JSON field names match the persisted wire format of the file-backed
// store, so stored blobs stay readable across releases.
type Event struct {
	ID        string    `json:"id,omitempty"`
	Title     string    `json:"title"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Repeat    Repeat    `json:"repeat,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	Color     string    `json:"color,omitempty"`
	Alarms    []Alarm   `json:"alarms,omitempty"`
	Completed bool      `json:"completed"`
	UserID    string    `json:"userId,omitempty"`
}

// CombineDateTime merges the calendar day of date with the time of day of
// clock into a single instant, with seconds and sub-seconds zeroed. The
// resulting instant is expressed in clock's location.
func CombineDateTime(date, clock time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), 0, 0, clock.Location())
}

// EffectiveStart returns the instant the event begins: StartDate's day
// combined with StartTime's time of day.
func (e Event) EffectiveStart() time.Time {
	return CombineDateTime(e.StartDate, e.StartTime)
}

// EffectiveEnd returns the instant the event ends. The end shares the start's
// calendar day: multi-day events are modelled as recurrences, not as a later
// EndDate, so the end instant combines StartDate with EndTime.
func (e Event) EffectiveEnd() time.Time {
	return CombineDateTime(e.StartDate, e.EndTime)
}

// Recurs reports whether the event has a real recurrence rule attached.
func (e Event) Recurs() bool {
	return e.Repeat != "" && e.Repeat != RepeatNone
}

// TableName returns the name of the database table
// associated with the Event model.
func (e Event) TableName() string {
	return "events"
}
