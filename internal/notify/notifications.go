// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package notify schedules and delivers planner reminders.
//
// The [Scheduler] decides WHEN a reminder fires (the 15-minutes-before ladder
// with its catch-up fallback); the [Sink] decides HOW it is delivered. The
// production sink holds in-process timers and posts to an HTTP push gateway
// when they expire. A cron-driven morning digest lives here too.
package notify

import (
	"context"
	"time"
)

//go:generate mockgen -source=notifications.go -destination=../mock/notify_mock.go -package=mock

// Notification is one scheduled delivery.
type Notification struct {
	// Title is the notification headline, e.g. "PlanIt Reminder 🔔".
	Title string `json:"title"`

	// Body is the human-readable message.
	Body string `json:"body"`

	// TriggerAt is the instant the notification should be delivered.
	TriggerAt time.Time `json:"triggerAt"`

	// CorrelationID ties the notification back to the event that caused it.
	// Sinks may ignore it; no retraction of delivered notifications is built
	// on top of it.
	CorrelationID string `json:"correlationId,omitempty"`
}

// Sink delivers scheduled notifications.
type Sink interface {
	// ScheduleAt registers the notification for delivery at n.TriggerAt and
	// returns an opaque id usable with Cancel.
	ScheduleAt(ctx context.Context, n Notification) (string, error)

	// Cancel withdraws a pending notification. Cancelling an unknown or
	// already-delivered id is a no-op.
	Cancel(ctx context.Context, id string) error
}
