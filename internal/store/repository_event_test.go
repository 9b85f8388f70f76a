// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/MKhiriev/go-plan-it/internal/logger"
	"github.com/MKhiriev/go-plan-it/models"
)

func newTestEventRepo(t *testing.T) (*eventRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &eventRepository{
		DB:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func addEventRows(rows *sqlmock.Rows, stored ...eventRow) *sqlmock.Rows {
	for _, row := range stored {
		rows.AddRow(
			row.ID, row.Title, row.StartDate, row.EndDate, row.StartTime,
			row.EndTime, row.Repeat, row.Notes, row.Color, row.Alarms,
			row.Completed, row.UserID,
		)
	}
	return rows
}

func TestListEvents_Success(t *testing.T) {
	repo, mock, db := newTestEventRepo(t)
	defer db.Close()

	stored := eventRow{
		ID:        "e1",
		Title:     "Standup",
		StartDate: "2024-03-10",
		EndDate:   "2024-03-10",
		StartTime: "2024-03-10T09:00:00Z",
		EndTime:   "2024-03-10T09:30:00Z",
		Repeat:    "none",
		Notes:     "",
		Color:     "",
		Alarms:    "[]",
		Completed: false,
		UserID:    "u1",
	}

	rows := addEventRows(sqlmock.NewRows(eventColumns), stored)
	mock.ExpectQuery("SELECT .+ FROM events").
		WithArgs("u1").
		WillReturnRows(rows)

	events, err := repo.ListEvents(context.Background(), "u1", time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Title != "Standup" {
		t.Errorf("expected title Standup, got %q", events[0].Title)
	}

	wantStart := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	if !events[0].EffectiveStart().Equal(wantStart) {
		t.Errorf("expected effective start %v, got %v", wantStart, events[0].EffectiveStart())
	}
}

func TestListEvents_RangeRefinedByEffectiveStart(t *testing.T) {
	repo, mock, db := newTestEventRepo(t)
	defer db.Close()

	// same day anchor, one event before the lower bound by wall-clock time
	early := eventRow{
		ID: "e1", Title: "Early", StartDate: "2024-03-10", EndDate: "2024-03-10",
		StartTime: "2024-03-10T07:00:00Z", EndTime: "2024-03-10T08:00:00Z",
		Repeat: "none", Alarms: "[]", UserID: "u1",
	}
	late := eventRow{
		ID: "e2", Title: "Late", StartDate: "2024-03-10", EndDate: "2024-03-10",
		StartTime: "2024-03-10T12:00:00Z", EndTime: "2024-03-10T13:00:00Z",
		Repeat: "none", Alarms: "[]", UserID: "u1",
	}

	rows := addEventRows(sqlmock.NewRows(eventColumns), early, late)
	mock.ExpectQuery("SELECT .+ FROM events").
		WithArgs("u1", "2024-03-10", "2024-03-10").
		WillReturnRows(rows)

	from := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC)

	events, err := repo.ListEvents(context.Background(), "u1", from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event after range refinement, got %d", len(events))
	}
	if events[0].ID != "e2" {
		t.Errorf("expected event e2, got %s", events[0].ID)
	}
}

func TestListEvents_NoOwnerYieldsEmpty(t *testing.T) {
	repo, _, db := newTestEventRepo(t)
	defer db.Close()

	events, err := repo.ListEvents(context.Background(), "", time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected empty result for missing owner, got %d events", len(events))
	}
}

func TestListEvents_QueryError(t *testing.T) {
	repo, mock, db := newTestEventRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT .+ FROM events").
		WillReturnError(errors.New("disk I/O error"))

	_, err := repo.ListEvents(context.Background(), "u1", time.Time{}, time.Time{})
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery, got %v", err)
	}
}

func TestGetEvent_NotFound(t *testing.T) {
	repo, mock, db := newTestEventRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT .+ FROM events").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetEvent(context.Background(), "u1", "missing")
	if !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestCreateEvent_Success(t *testing.T) {
	repo, mock, db := newTestEventRepo(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO events").
		WillReturnResult(sqlmock.NewResult(0, 1))

	event := models.Event{
		Title:     "Standup",
		StartDate: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime: time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC),
		Repeat:    models.RepeatNone,
		UserID:    "u1",
	}

	created, err := repo.CreateEvent(context.Background(), event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == "" {
		t.Error("expected store-assigned id, got empty string")
	}
}

func TestCreateEvent_NoOwner(t *testing.T) {
	repo, _, db := newTestEventRepo(t)
	defer db.Close()

	_, err := repo.CreateEvent(context.Background(), models.Event{Title: "orphan"})
	if !errors.Is(err, ErrNoOwner) {
		t.Fatalf("expected ErrNoOwner, got %v", err)
	}
}

func TestCreateEvent_NotSaved(t *testing.T) {
	repo, mock, db := newTestEventRepo(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO events").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.CreateEvent(context.Background(), models.Event{Title: "x", UserID: "u1"})
	if !errors.Is(err, ErrEventNotSaved) {
		t.Fatalf("expected ErrEventNotSaved, got %v", err)
	}
}

func TestUpdateEvent_NotFound(t *testing.T) {
	repo, mock, db := newTestEventRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE events").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateEvent(context.Background(), models.Event{ID: "missing", UserID: "u1"})
	if !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestDeleteEvent_Success(t *testing.T) {
	repo, mock, db := newTestEventRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM events").
		WithArgs("e1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteEvent(context.Background(), "u1", "e1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}
