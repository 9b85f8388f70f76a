// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-plan-it/internal/advisor"
	"github.com/MKhiriev/go-plan-it/internal/logger"
	"github.com/MKhiriev/go-plan-it/internal/notify"
	"github.com/MKhiriev/go-plan-it/internal/store"
	"github.com/MKhiriev/go-plan-it/models"
)

// aiNotesMarker is appended to the event's notes when the advisor merge lands.
const aiNotesMarker = "AI added %d reminders"

// Session coordinates one authenticated user's calendar work: it owns event
// persistence, deterministic reminder scheduling, and the asynchronous AI
// suggestion merge.
//
// All mutations are serialised through a single mutex, so there is exactly one
// writer per session. Each mutation bumps the event's revision counter; the
// advisor goroutine captures the revision it started from and discards its
// suggestions if the event has moved on in the meantime.
type Session struct {
	ownerID string

	events    store.EventStore
	scheduler *notify.Scheduler
	advisor   advisor.Advisor
	logger    *logger.Logger

	mu sync.Mutex

	// revisions tracks a monotonic per-event counter, bumped on every
	// mutation. Guarded by mu.
	revisions map[string]uint64

	// cached is the last slice returned by Events. Refreshes replace the
	// whole slice instead of mutating it in place.
	cached []models.Event

	closed bool
}

// NewSession creates a session for ownerID. The session is live until Close.
func NewSession(ownerID string, events store.EventStore, scheduler *notify.Scheduler, adv advisor.Advisor, log *logger.Logger) *Session {
	return &Session{
		ownerID:   ownerID,
		events:    events,
		scheduler: scheduler,
		advisor:   adv,
		logger:    log,
		revisions: make(map[string]uint64),
	}
}

// OwnerID returns the id of the user the session belongs to.
func (s *Session) OwnerID() string {
	return s.ownerID
}

// AddEvent persists the event, schedules its deterministic reminder, and
// kicks off the AI suggestion round in the background.
//
// The deterministic reminder is scheduled synchronously so that it always
// lands before any AI reminder for the same event. A scheduling failure is
// logged and does not fail the call; the event is already persisted.
//
// The advisor round runs on a detached context: it outlives the request,
// and its merge is dropped if the event is mutated or the session is closed
// before the suggestions arrive.
func (s *Session) AddEvent(ctx context.Context, event models.Event) (models.Event, error) {
	log := logger.FromContext(ctx)

	event.UserID = s.ownerID

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return models.Event{}, ErrSessionClosed
	}

	created, err := s.events.CreateEvent(ctx, event)
	if err != nil {
		s.mu.Unlock()
		log.Err(err).Str("title", event.Title).Msg("event creation failed")
		return models.Event{}, fmt.Errorf("event creation failed: %w", err)
	}

	s.revisions[created.ID]++
	revision := s.revisions[created.ID]
	s.mu.Unlock()

	if _, err := s.scheduler.ScheduleReminder(ctx, created); err != nil {
		log.Err(err).Str("event_id", created.ID).Msg("reminder scheduling failed")
	}

	go s.suggestAndMerge(context.WithoutCancel(ctx), created, revision)

	return created, nil
}

// UpdateEvent persists the caller's version of the event and reschedules its
// deterministic reminder, since the start may have moved. Returns the stored
// event re-fetched after the write.
func (s *Session) UpdateEvent(ctx context.Context, event models.Event) (models.Event, error) {
	log := logger.FromContext(ctx)

	event.UserID = s.ownerID

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return models.Event{}, ErrSessionClosed
	}

	if err := s.events.UpdateEvent(ctx, event); err != nil {
		s.mu.Unlock()
		log.Err(err).Str("event_id", event.ID).Msg("event update failed")
		return models.Event{}, fmt.Errorf("event update failed: %w", err)
	}
	s.revisions[event.ID]++

	updated, err := s.events.GetEvent(ctx, s.ownerID, event.ID)
	s.mu.Unlock()
	if err != nil {
		log.Err(err).Str("event_id", event.ID).Msg("event re-fetch after update failed")
		return models.Event{}, fmt.Errorf("event re-fetch after update failed: %w", err)
	}

	if _, err := s.scheduler.ScheduleReminder(ctx, updated); err != nil {
		log.Err(err).Str("event_id", updated.ID).Msg("reminder scheduling failed")
	}

	return updated, nil
}

// DeleteEvent removes the event from the store. Notifications already handed
// to the sink are not retracted; the device drops them by correlation id.
func (s *Session) DeleteEvent(ctx context.Context, eventID string) error {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}

	if err := s.events.DeleteEvent(ctx, s.ownerID, eventID); err != nil {
		log.Err(err).Str("event_id", eventID).Msg("event deletion failed")
		return fmt.Errorf("event deletion failed: %w", err)
	}

	s.revisions[eventID]++
	return nil
}

// ToggleEventComplete flips the completion flag of the event, leaving every
// other field untouched, and returns the stored result.
func (s *Session) ToggleEventComplete(ctx context.Context, eventID string) (models.Event, error) {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return models.Event{}, ErrSessionClosed
	}

	event, err := s.events.GetEvent(ctx, s.ownerID, eventID)
	if err != nil {
		log.Err(err).Str("event_id", eventID).Msg("event lookup for completion toggle failed")
		return models.Event{}, fmt.Errorf("event lookup failed: %w", err)
	}

	event.Completed = !event.Completed
	if err := s.events.UpdateEvent(ctx, event); err != nil {
		log.Err(err).Str("event_id", eventID).Msg("completion toggle failed")
		return models.Event{}, fmt.Errorf("completion toggle failed: %w", err)
	}

	s.revisions[eventID]++
	return event, nil
}

// Events lists the session owner's events whose effective start falls within
// [from, to], refreshing the session's cached slice by full reassignment.
func (s *Session) Events(ctx context.Context, from, to time.Time) ([]models.Event, error) {
	log := logger.FromContext(ctx)

	events, err := s.events.ListEvents(ctx, s.ownerID, from, to)
	if err != nil {
		log.Err(err).Msg("event listing failed")
		return nil, fmt.Errorf("event listing failed: %w", err)
	}

	s.mu.Lock()
	s.cached = events
	s.mu.Unlock()

	return events, nil
}

// Close tears the session down. In-flight advisor rounds become no-ops; their
// results are discarded at merge time.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// suggestAndMerge runs one AI suggestion round for the event.
//
// The round is strictly best-effort: advisor failures, a stale revision, a
// concurrently deleted event, and an empty suggestion set all end the round
// silently. On success the suggested alarms are merged into the stored event
// (skipping offsets that already exist), the notes gain the AI marker line,
// and one custom reminder is scheduled per new alarm.
func (s *Session) suggestAndMerge(ctx context.Context, event models.Event, revision uint64) {
	log := logger.FromContext(ctx)

	suggested, err := s.advisor.SuggestReminders(ctx, event)
	if err != nil {
		log.Err(err).Str("event_id", event.ID).Msg("advisor round failed")
		return
	}
	if len(suggested) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	if s.revisions[event.ID] != revision {
		log.Debug().
			Str("event_id", event.ID).
			Uint64("revision", revision).
			Msg("event changed while advisor was thinking, discarding suggestions")
		return
	}

	stored, err := s.events.GetEvent(ctx, s.ownerID, event.ID)
	if err != nil {
		if !errors.Is(err, store.ErrEventNotFound) {
			log.Err(err).Str("event_id", event.ID).Msg("event re-fetch for advisor merge failed")
		}
		return
	}

	added := mergeAlarms(&stored, suggested)
	if len(added) == 0 {
		return
	}
	stored.Notes = appendNotesMarker(stored.Notes, len(added))

	if err := s.events.UpdateEvent(ctx, stored); err != nil {
		log.Err(err).Str("event_id", event.ID).Msg("advisor merge persist failed")
		return
	}
	s.revisions[event.ID]++

	start := stored.EffectiveStart()
	for _, alarm := range added {
		trigger := start.Add(time.Duration(alarm.RelativeOffset) * time.Minute)
		body := advisorReminderBody(stored.Title, alarm)
		if _, err := s.scheduler.ScheduleCustomReminder(ctx, stored, notify.AdvisorTitle, body, trigger); err != nil {
			log.Err(err).Str("event_id", event.ID).Msg("advisor reminder scheduling failed")
		}
	}

	log.Info().
		Str("event_id", event.ID).
		Int("added", len(added)).
		Msg("advisor reminders merged")
}

// mergeAlarms appends the suggested alarms that are not already present on
// the event (matched by offset) and returns the ones actually added.
func mergeAlarms(event *models.Event, suggested []models.Alarm) []models.Alarm {
	existing := make(map[int]bool, len(event.Alarms))
	for _, alarm := range event.Alarms {
		existing[alarm.RelativeOffset] = true
	}

	var added []models.Alarm
	for _, alarm := range suggested {
		if existing[alarm.RelativeOffset] {
			continue
		}
		existing[alarm.RelativeOffset] = true
		added = append(added, alarm)
	}

	event.Alarms = append(event.Alarms, added...)
	return added
}

func appendNotesMarker(notes string, count int) string {
	marker := fmt.Sprintf(aiNotesMarker, count)
	if notes == "" {
		return marker
	}
	return notes + "\n" + marker
}

func advisorReminderBody(title string, alarm models.Alarm) string {
	minutes := -alarm.RelativeOffset
	if minutes <= 0 {
		return fmt.Sprintf("%s is starting now! 🔔", title)
	}
	return fmt.Sprintf("%s starts in %d minutes!", title, minutes)
}
