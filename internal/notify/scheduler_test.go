// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notify

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-plan-it/internal/logger"
	"github.com/MKhiriev/go-plan-it/models"
)

// fakeSink records scheduled notifications instead of delivering them.
type fakeSink struct {
	scheduled []Notification
	cancelled []string
	nextErr   error
}

func (f *fakeSink) ScheduleAt(ctx context.Context, n Notification) (string, error) {
	if f.nextErr != nil {
		return "", f.nextErr
	}
	f.scheduled = append(f.scheduled, n)
	return fmt.Sprintf("n-%d", len(f.scheduled)), nil
}

func (f *fakeSink) Cancel(ctx context.Context, id string) error {
	f.cancelled = append(f.cancelled, id)
	return nil
}

func newTestScheduler(now time.Time) (*Scheduler, *fakeSink) {
	sink := &fakeSink{}
	s := NewScheduler(sink, logger.NewLogger("test"))
	s.now = func() time.Time { return now }
	return s, sink
}

func eventStartingAt(start time.Time) models.Event {
	return models.Event{
		ID:        "e1",
		Title:     "Standup",
		StartDate: start,
		EndDate:   start,
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
		UserID:    "u1",
	}
}

func TestScheduleReminder_FifteenMinutesBefore(t *testing.T) {
	now := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	start := now.Add(2 * time.Hour)
	s, sink := newTestScheduler(now)

	id, err := s.ScheduleReminder(context.Background(), eventStartingAt(start))
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	require.Len(t, sink.scheduled, 1)
	n := sink.scheduled[0]
	assert.Equal(t, ReminderTitle, n.Title)
	assert.Equal(t, "Standup starts in 15 minutes!", n.Body)
	assert.True(t, n.TriggerAt.Equal(start.Add(-15*time.Minute)))
	assert.Equal(t, "e1", n.CorrelationID)
}

func TestScheduleReminder_LateFallsBackToStart(t *testing.T) {
	// start is 10 minutes away, so start-15m already passed
	now := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	start := now.Add(10 * time.Minute)
	s, sink := newTestScheduler(now)

	_, err := s.ScheduleReminder(context.Background(), eventStartingAt(start))
	require.NoError(t, err)

	require.Len(t, sink.scheduled, 1)
	n := sink.scheduled[0]
	assert.Equal(t, "Standup is starting now! 🔔", n.Body)
	assert.True(t, n.TriggerAt.Equal(start), "trigger must move to event start, not the past")
}

func TestScheduleReminder_DoubleLateFiresInFiveSeconds(t *testing.T) {
	// the event already started a minute ago
	now := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	start := now.Add(-time.Minute)
	s, sink := newTestScheduler(now)

	_, err := s.ScheduleReminder(context.Background(), eventStartingAt(start))
	require.NoError(t, err)

	require.Len(t, sink.scheduled, 1)
	n := sink.scheduled[0]
	assert.Equal(t, "Standup is starting now! 🔔", n.Body)
	assert.True(t, n.TriggerAt.Equal(now.Add(5*time.Second)),
		"trigger must resolve to now+5s, never to a past instant")
}

func TestScheduleCustomReminder_KeepsCallerMessage(t *testing.T) {
	now := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	s, sink := newTestScheduler(now)

	triggerAt := now.Add(45 * time.Minute)
	_, err := s.ScheduleCustomReminder(context.Background(), eventStartingAt(now.Add(time.Hour)),
		AdvisorTitle, "Heads up: Standup soon", triggerAt)
	require.NoError(t, err)

	require.Len(t, sink.scheduled, 1)
	n := sink.scheduled[0]
	assert.Equal(t, AdvisorTitle, n.Title)
	assert.Equal(t, "Heads up: Standup soon", n.Body)
	assert.True(t, n.TriggerAt.Equal(triggerAt))
}

func TestScheduleCustomReminder_CatchUpFallback(t *testing.T) {
	now := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	s, sink := newTestScheduler(now)

	_, err := s.ScheduleCustomReminder(context.Background(), eventStartingAt(now),
		AdvisorTitle, "Heads up", now.Add(-10*time.Minute))
	require.NoError(t, err)

	require.Len(t, sink.scheduled, 1)
	assert.True(t, sink.scheduled[0].TriggerAt.Equal(now.Add(5*time.Second)))
}

func TestScheduleReminder_SinkFailurePropagates(t *testing.T) {
	now := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	s, sink := newTestScheduler(now)
	sink.nextErr = errors.New("gateway unreachable")

	_, err := s.ScheduleReminder(context.Background(), eventStartingAt(now.Add(time.Hour)))
	assert.Error(t, err)
	assert.Empty(t, sink.scheduled)
}
