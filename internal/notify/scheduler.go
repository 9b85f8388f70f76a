// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-plan-it/internal/logger"
	"github.com/MKhiriev/go-plan-it/models"
)

const (
	// ReminderTitle heads every deterministic event reminder.
	ReminderTitle = "PlanIt Reminder 🔔"

	// AdvisorTitle heads reminders suggested by the AI advisor.
	AdvisorTitle = "PlanIt AI ⚡"

	// defaultLeadTime is how far before the event start the deterministic
	// reminder aims to fire.
	defaultLeadTime = 15 * time.Minute

	// catchUpDelay is the catch-up fallback: any reminder whose computed
	// trigger already passed fires this soon instead of being dropped.
	catchUpDelay = 5 * time.Second
)

// Scheduler turns events into sink deliveries. It owns the trigger-time
// arithmetic; delivery mechanics live behind [Sink].
type Scheduler struct {
	sink   Sink
	logger *logger.Logger

	// now is the clock; swapped out in tests.
	now func() time.Time
}

func NewScheduler(sink Sink, log *logger.Logger) *Scheduler {
	return &Scheduler{
		sink:   sink,
		logger: log,
		now:    time.Now,
	}
}

// ScheduleReminder schedules the deterministic reminder for an event:
// 15 minutes before the effective start. If that instant has already passed
// the reminder moves to the event start, and if the event has started too it
// fires a few seconds from now. The message tracks the chosen rung.
//
// Returns the sink's notification id.
func (s *Scheduler) ScheduleReminder(ctx context.Context, event models.Event) (string, error) {
	now := s.now()
	start := event.EffectiveStart()

	trigger := start.Add(-defaultLeadTime)
	body := fmt.Sprintf("%s starts in 15 minutes!", event.Title)

	if !trigger.After(now) {
		trigger = start
		body = fmt.Sprintf("%s is starting now! 🔔", event.Title)
	}
	if !trigger.After(now) {
		trigger = now.Add(catchUpDelay)
	}

	return s.schedule(ctx, Notification{
		Title:         ReminderTitle,
		Body:          body,
		TriggerAt:     trigger,
		CorrelationID: event.ID,
	})
}

// ScheduleCustomReminder schedules a reminder with a caller-supplied title
// and message at triggerAt, applying only the catch-up fallback.
func (s *Scheduler) ScheduleCustomReminder(ctx context.Context, event models.Event, title, body string, triggerAt time.Time) (string, error) {
	now := s.now()
	if !triggerAt.After(now) {
		triggerAt = now.Add(catchUpDelay)
	}

	return s.schedule(ctx, Notification{
		Title:         title,
		Body:          body,
		TriggerAt:     triggerAt,
		CorrelationID: event.ID,
	})
}

func (s *Scheduler) schedule(ctx context.Context, n Notification) (string, error) {
	log := logger.FromContext(ctx)

	id, err := s.sink.ScheduleAt(ctx, n)
	if err != nil {
		log.Err(err).
			Str("func", "Scheduler.schedule").
			Str("event_id", n.CorrelationID).
			Time("trigger_at", n.TriggerAt).
			Msg("failed to schedule notification")
		return "", err
	}

	log.Debug().
		Str("notification_id", id).
		Str("event_id", n.CorrelationID).
		Time("trigger_at", n.TriggerAt).
		Msg("notification scheduled")

	return id, nil
}
