// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-plan-it/internal/logger"
	"github.com/MKhiriev/go-plan-it/internal/metatag"
	"github.com/MKhiriev/go-plan-it/models"
)

// calendarEventStore is the CalDAV implementation of [EventStore]. It works
// inside one dedicated calendar provisioned for the planner and never touches
// the user's other calendars.
//
// The calendar is shared by all planner accounts of the CalDAV login, so
// ownership and color travel as metadata tags inside the event description.
// Events lacking an owner tag are invisible to every session.
type calendarEventStore struct {
	provider CalendarProvider
	calendar Calendar
	logger   *logger.Logger
}

// NewCalendarEventStore provisions the dedicated planner calendar (creating
// it on first run) and returns an [EventStore] bound to it.
func NewCalendarEventStore(ctx context.Context, provider CalendarProvider, calendarName string, log *logger.Logger) (EventStore, error) {
	calendar, err := provisionCalendar(ctx, provider, calendarName)
	if err != nil {
		log.Err(err).
			Str("func", "NewCalendarEventStore").
			Str("calendar", calendarName).
			Msg("failed to provision planner calendar")
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	log.Info().
		Str("calendar", calendar.Name).
		Str("path", calendar.Path).
		Msg("planner calendar ready")

	return &calendarEventStore{
		provider: provider,
		calendar: calendar,
		logger:   log,
	}, nil
}

// provisionCalendar finds the calendar with the given display name, creating
// it when absent. Reusing an existing calendar keeps provisioning idempotent
// across restarts.
func provisionCalendar(ctx context.Context, provider CalendarProvider, name string) (Calendar, error) {
	calendars, err := provider.ListCalendars(ctx)
	if err != nil {
		return Calendar{}, fmt.Errorf("listing calendars: %w", err)
	}

	for _, calendar := range calendars {
		if calendar.Name == name {
			return calendar, nil
		}
	}

	created, err := provider.CreateCalendar(ctx, name)
	if err != nil {
		return Calendar{}, fmt.Errorf("creating calendar %q: %w", name, err)
	}

	return created, nil
}

// repeatToFrequency maps the planner's repeat values onto RRULE FREQ names.
var repeatToFrequency = map[models.Repeat]string{
	models.RepeatDaily:   "DAILY",
	models.RepeatWeekly:  "WEEKLY",
	models.RepeatMonthly: "MONTHLY",
	models.RepeatYearly:  "YEARLY",
}

var frequencyToRepeat = map[string]models.Repeat{
	"DAILY":   models.RepeatDaily,
	"WEEKLY":  models.RepeatWeekly,
	"MONTHLY": models.RepeatMonthly,
	"YEARLY":  models.RepeatYearly,
}

func toRawCalendarEvent(event models.Event) RawCalendarEvent {
	return RawCalendarEvent{
		Path:  event.ID,
		Title: event.Title,
		Start: event.EffectiveStart(),
		End:   event.EffectiveEnd(),
		Description: metatag.Encode(event.Notes, metatag.Tags{
			Color:   event.Color,
			OwnerID: event.UserID,
		}),
		Frequency: repeatToFrequency[event.Repeat],
		Alarms:    event.Alarms,
		Completed: event.Completed,
	}
}

func fromRawCalendarEvent(raw RawCalendarEvent) models.Event {
	tags, cleaned := metatag.Decode(raw.Description)

	return models.Event{
		ID:        raw.Path,
		Title:     raw.Title,
		StartDate: raw.Start,
		EndDate:   raw.End,
		StartTime: raw.Start,
		EndTime:   raw.End,
		Repeat:    frequencyToRepeat[strings.ToUpper(raw.Frequency)],
		Notes:     cleaned,
		Color:     tags.Color,
		Alarms:    raw.Alarms,
		Completed: raw.Completed,
		UserID:    tags.OwnerID,
	}
}

func (s *calendarEventStore) ListEvents(ctx context.Context, ownerID string, from, to time.Time) ([]models.Event, error) {
	log := logger.FromContext(ctx)

	if ownerID == "" {
		return []models.Event{}, nil
	}

	raws, err := s.provider.ListEvents(ctx, s.calendar.Path, from, to)
	if err != nil {
		log.Err(err).
			Str("func", "calendarEventStore.ListEvents").
			Str("user_id", ownerID).
			Msg("failed to list calendar objects")
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	results := make([]models.Event, 0, len(raws))
	for _, raw := range raws {
		event := fromRawCalendarEvent(raw)
		if event.UserID != ownerID {
			continue
		}

		effective := event.EffectiveStart()
		if !from.IsZero() && effective.Before(from) {
			continue
		}
		if !to.IsZero() && effective.After(to) {
			continue
		}

		results = append(results, event)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].EffectiveStart().Before(results[j].EffectiveStart())
	})

	return results, nil
}

// GetEvent scans the full calendar range for the object. The provider port
// has no single-object fetch verb.
func (s *calendarEventStore) GetEvent(ctx context.Context, ownerID string, eventID string) (models.Event, error) {
	events, err := s.ListEvents(ctx, ownerID, time.Time{}, time.Time{})
	if err != nil {
		return models.Event{}, err
	}

	for _, event := range events {
		if event.ID == eventID {
			return event, nil
		}
	}
	return models.Event{}, ErrEventNotFound
}

func (s *calendarEventStore) CreateEvent(ctx context.Context, event models.Event) (models.Event, error) {
	log := logger.FromContext(ctx)

	if event.UserID == "" {
		return models.Event{}, ErrNoOwner
	}

	raw := toRawCalendarEvent(event)
	raw.Path = ""
	raw.UID = uuid.NewString()

	path, err := s.provider.CreateEvent(ctx, s.calendar.Path, raw)
	if err != nil {
		log.Err(err).
			Str("func", "calendarEventStore.CreateEvent").
			Str("user_id", event.UserID).
			Msg("failed to create calendar object")
		return models.Event{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	event.ID = path
	return event, nil
}

func (s *calendarEventStore) UpdateEvent(ctx context.Context, event models.Event) error {
	log := logger.FromContext(ctx)

	if event.UserID == "" {
		return ErrNoOwner
	}

	// ownership check before touching the shared calendar
	if _, err := s.GetEvent(ctx, event.UserID, event.ID); err != nil {
		return err
	}

	if err := s.provider.UpdateEvent(ctx, toRawCalendarEvent(event)); err != nil {
		log.Err(err).
			Str("func", "calendarEventStore.UpdateEvent").
			Str("event_id", event.ID).
			Msg("failed to update calendar object")
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return nil
}

func (s *calendarEventStore) DeleteEvent(ctx context.Context, ownerID string, eventID string) error {
	log := logger.FromContext(ctx)

	if ownerID == "" {
		return ErrNoOwner
	}

	if _, err := s.GetEvent(ctx, ownerID, eventID); err != nil {
		return err
	}

	if err := s.provider.DeleteEvent(ctx, eventID); err != nil {
		log.Err(err).
			Str("func", "calendarEventStore.DeleteEvent").
			Str("event_id", eventID).
			Msg("failed to delete calendar object")
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return nil
}
