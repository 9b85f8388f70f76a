// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-plan-it/internal/advisor"
	"github.com/MKhiriev/go-plan-it/internal/logger"
	"github.com/MKhiriev/go-plan-it/internal/notify"
	"github.com/MKhiriev/go-plan-it/internal/store"
	"github.com/MKhiriev/go-plan-it/models"
)

// Sessions manages the live calendar sessions, one per authenticated user.
//
// It implements [EventService] by routing every call to the caller's session,
// opening one lazily on first use, and [notify.AgendaSource] by collecting
// the day's events of every open session for the morning digest.
type Sessions struct {
	events    store.EventStore
	scheduler *notify.Scheduler
	advisor   advisor.Advisor
	logger    *logger.Logger

	mu     sync.RWMutex
	byUser map[string]*Session
}

// NewSessions constructs the session manager over the selected event store.
func NewSessions(events store.EventStore, scheduler *notify.Scheduler, adv advisor.Advisor, log *logger.Logger) *Sessions {
	return &Sessions{
		events:    events,
		scheduler: scheduler,
		advisor:   adv,
		logger:    log,
		byUser:    make(map[string]*Session),
	}
}

// Open returns the live session for userID, creating one if needed.
func (m *Sessions) Open(userID string) *Session {
	m.mu.RLock()
	session, ok := m.byUser[userID]
	m.mu.RUnlock()
	if ok {
		return session
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if session, ok := m.byUser[userID]; ok {
		return session
	}

	session = NewSession(userID, m.events, m.scheduler, m.advisor, m.logger)
	m.byUser[userID] = session

	m.logger.Debug().Str("user_id", userID).Msg("calendar session opened")
	return session
}

// Close tears down the session for userID, if one is open. Used on logout;
// in-flight advisor rounds of the session are discarded.
func (m *Sessions) Close(userID string) {
	m.mu.Lock()
	session, ok := m.byUser[userID]
	delete(m.byUser, userID)
	m.mu.Unlock()

	if ok {
		session.Close()
		m.logger.Debug().Str("user_id", userID).Msg("calendar session closed")
	}
}

func (m *Sessions) AddEvent(ctx context.Context, userID string, event models.Event) (models.Event, error) {
	return m.Open(userID).AddEvent(ctx, event)
}

func (m *Sessions) UpdateEvent(ctx context.Context, userID string, event models.Event) (models.Event, error) {
	return m.Open(userID).UpdateEvent(ctx, event)
}

func (m *Sessions) DeleteEvent(ctx context.Context, userID string, eventID string) error {
	return m.Open(userID).DeleteEvent(ctx, eventID)
}

func (m *Sessions) ToggleEventComplete(ctx context.Context, userID string, eventID string) (models.Event, error) {
	return m.Open(userID).ToggleEventComplete(ctx, eventID)
}

func (m *Sessions) Events(ctx context.Context, userID string, from, to time.Time) ([]models.Event, error) {
	return m.Open(userID).Events(ctx, from, to)
}

// Agendas summarises the given day for every open session. Listing errors for
// a single user are logged and skip that user instead of failing the digest.
func (m *Sessions) Agendas(ctx context.Context, day time.Time) ([]notify.Agenda, error) {
	m.mu.RLock()
	sessions := make([]*Session, 0, len(m.byUser))
	for _, session := range m.byUser {
		sessions = append(sessions, session)
	}
	m.mu.RUnlock()

	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	to := from.Add(24*time.Hour - time.Second)

	agendas := make([]notify.Agenda, 0, len(sessions))
	for _, session := range sessions {
		events, err := session.Events(ctx, from, to)
		if err != nil {
			m.logger.Err(err).
				Str("func", "Sessions.Agendas").
				Str("user_id", session.OwnerID()).
				Msg("skipping agenda for user")
			continue
		}

		agenda := notify.Agenda{
			OwnerID:    session.OwnerID(),
			EventCount: len(events),
		}
		if len(events) > 0 {
			agenda.FirstTitle = events[0].Title
		}
		agendas = append(agendas, agenda)
	}

	return agendas, nil
}
