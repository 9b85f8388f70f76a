// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-plan-it/internal/logger"
	"github.com/MKhiriev/go-plan-it/models"
)

// Persistence layouts for the SQLite backend. Calendar-day anchors keep only
// the date part; wall-clock instants keep the full timestamp.
const (
	dateLayout = "2006-01-02"
	timeLayout = time.RFC3339
)

// eventRepository is the SQLite-backed implementation of [EventStore].
// It executes all event CRUD operations against the "events" table using the
// embedded [*DB] connection.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced with
// structured fields (user_id, event_id, etc.).
type eventRepository struct {
	*DB
	logger *logger.Logger
}

// NewEventRepository constructs an [EventStore] backed by the provided
// database connection and logger.
func NewEventRepository(db *DB, logger *logger.Logger) EventStore {
	logger.Debug().Msg("EventRepository created")
	return &eventRepository{
		DB:     db,
		logger: logger,
	}
}

// eventRow is the flat column shape of an event as stored in SQLite. Dates
// are ISO-8601 day strings, times full RFC 3339 timestamps, alarms a JSON
// array.
type eventRow struct {
	ID        string
	Title     string
	StartDate string
	EndDate   string
	StartTime string
	EndTime   string
	Repeat    string
	Notes     string
	Color     string
	Alarms    string
	Completed bool
	UserID    string
}

func toEventRow(event models.Event) (eventRow, error) {
	alarms := event.Alarms
	if alarms == nil {
		alarms = []models.Alarm{}
	}
	alarmsJSON, err := json.Marshal(alarms)
	if err != nil {
		return eventRow{}, fmt.Errorf("error encoding alarms: %w", err)
	}

	return eventRow{
		ID:        event.ID,
		Title:     event.Title,
		StartDate: event.StartDate.Format(dateLayout),
		EndDate:   event.EndDate.Format(dateLayout),
		StartTime: event.StartTime.Format(timeLayout),
		EndTime:   event.EndTime.Format(timeLayout),
		Repeat:    string(event.Repeat),
		Notes:     event.Notes,
		Color:     event.Color,
		Alarms:    string(alarmsJSON),
		Completed: event.Completed,
		UserID:    event.UserID,
	}, nil
}

func (row eventRow) toEvent() (models.Event, error) {
	startDate, err := time.Parse(dateLayout, row.StartDate)
	if err != nil {
		return models.Event{}, fmt.Errorf("error parsing start_date: %w", err)
	}
	endDate, err := time.Parse(dateLayout, row.EndDate)
	if err != nil {
		return models.Event{}, fmt.Errorf("error parsing end_date: %w", err)
	}
	startTime, err := time.Parse(timeLayout, row.StartTime)
	if err != nil {
		return models.Event{}, fmt.Errorf("error parsing start_time: %w", err)
	}
	endTime, err := time.Parse(timeLayout, row.EndTime)
	if err != nil {
		return models.Event{}, fmt.Errorf("error parsing end_time: %w", err)
	}

	var alarms []models.Alarm
	if row.Alarms != "" {
		if err := json.Unmarshal([]byte(row.Alarms), &alarms); err != nil {
			return models.Event{}, fmt.Errorf("error decoding alarms: %w", err)
		}
	}

	return models.Event{
		ID:        row.ID,
		Title:     row.Title,
		StartDate: startDate,
		EndDate:   endDate,
		StartTime: startTime,
		EndTime:   endTime,
		Repeat:    models.Repeat(row.Repeat),
		Notes:     row.Notes,
		Color:     row.Color,
		Alarms:    alarms,
		Completed: row.Completed,
		UserID:    row.UserID,
	}, nil
}

// ListEvents returns the owner's events whose effective start falls in
// [from, to]. The SQL range filter works on the start_date day column; the
// exact effective-start check is applied after scanning, because the day
// anchor and the wall-clock instant live in separate columns.
func (r *eventRepository) ListEvents(ctx context.Context, ownerID string, from, to time.Time) ([]models.Event, error) {
	log := logger.FromContext(ctx)

	// unauthenticated callers see an empty planner, never an error
	if ownerID == "" {
		return []models.Event{}, nil
	}

	var fromDay, toDay string
	if !from.IsZero() {
		fromDay = from.Format(dateLayout)
	}
	if !to.IsZero() {
		toDay = to.Format(dateLayout)
	}

	query, args, err := buildSelectEventsQuery(ownerID, fromDay, toDay)
	if err != nil {
		log.Err(err).
			Str("func", "eventRepository.ListEvents").
			Str("user_id", ownerID).
			Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "eventRepository.ListEvents").
			Str("user_id", ownerID).
			Msg("failed to execute query for listing events")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.Event, 0, 16)

	for rows.Next() {
		var row eventRow

		scanErr := rows.Scan(
			&row.ID,
			&row.Title,
			&row.StartDate,
			&row.EndDate,
			&row.StartTime,
			&row.EndTime,
			&row.Repeat,
			&row.Notes,
			&row.Color,
			&row.Alarms,
			&row.Completed,
			&row.UserID,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "eventRepository.ListEvents").
				Str("user_id", ownerID).
				Msg("failed to scan event row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		event, convErr := row.toEvent()
		if convErr != nil {
			log.Err(convErr).
				Str("func", "eventRepository.ListEvents").
				Str("event_id", row.ID).
				Msg("failed to convert event row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, convErr)
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

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "eventRepository.ListEvents").
			Str("user_id", ownerID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return results, nil
}

// GetEvent returns a single event by id, scoped to the owner.
func (r *eventRepository) GetEvent(ctx context.Context, ownerID string, eventID string) (models.Event, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectEventQuery(ownerID, eventID)
	if err != nil {
		log.Err(err).
			Str("func", "eventRepository.GetEvent").
			Str("event_id", eventID).
			Msg("failed to build query")
		return models.Event{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var row eventRow
	scanErr := r.DB.QueryRowContext(ctx, query, args...).Scan(
		&row.ID,
		&row.Title,
		&row.StartDate,
		&row.EndDate,
		&row.StartTime,
		&row.EndTime,
		&row.Repeat,
		&row.Notes,
		&row.Color,
		&row.Alarms,
		&row.Completed,
		&row.UserID,
	)
	if scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			return models.Event{}, ErrEventNotFound
		}
		log.Err(scanErr).
			Str("func", "eventRepository.GetEvent").
			Str("event_id", eventID).
			Msg("failed to scan event row")
		return models.Event{}, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
	}

	return row.toEvent()
}

// CreateEvent persists a new event with a freshly assigned id.
func (r *eventRepository) CreateEvent(ctx context.Context, event models.Event) (models.Event, error) {
	log := logger.FromContext(ctx)

	if event.UserID == "" {
		return models.Event{}, ErrNoOwner
	}

	event.ID = uuid.NewString()

	row, err := toEventRow(event)
	if err != nil {
		log.Err(err).
			Str("func", "eventRepository.CreateEvent").
			Str("user_id", event.UserID).
			Msg("failed to convert event to row")
		return models.Event{}, err
	}

	query, args, err := buildInsertEventQuery(row)
	if err != nil {
		log.Err(err).
			Str("func", "eventRepository.CreateEvent").
			Str("user_id", event.UserID).
			Msg("failed to build query")
		return models.Event{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "eventRepository.CreateEvent").
			Str("user_id", event.UserID).
			Msg("failed to execute insert statement")
		return models.Event{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		log.Error().
			Str("func", "eventRepository.CreateEvent").
			Str("user_id", event.UserID).
			Msg("provided event was not saved")
		return models.Event{}, ErrEventNotSaved
	}

	return event, nil
}

// UpdateEvent replaces the stored event identified by event.ID.
func (r *eventRepository) UpdateEvent(ctx context.Context, event models.Event) error {
	log := logger.FromContext(ctx)

	if event.UserID == "" {
		return ErrNoOwner
	}

	row, err := toEventRow(event)
	if err != nil {
		log.Err(err).
			Str("func", "eventRepository.UpdateEvent").
			Str("event_id", event.ID).
			Msg("failed to convert event to row")
		return err
	}

	query, args, err := buildUpdateEventQuery(row)
	if err != nil {
		log.Err(err).
			Str("func", "eventRepository.UpdateEvent").
			Str("event_id", event.ID).
			Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "eventRepository.UpdateEvent").
			Str("event_id", event.ID).
			Msg("failed to execute update statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

// DeleteEvent removes the owner's event by id.
func (r *eventRepository) DeleteEvent(ctx context.Context, ownerID string, eventID string) error {
	log := logger.FromContext(ctx)

	if ownerID == "" {
		return ErrNoOwner
	}

	query, args, err := buildDeleteEventQuery(ownerID, eventID)
	if err != nil {
		log.Err(err).
			Str("func", "eventRepository.DeleteEvent").
			Str("event_id", eventID).
			Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "eventRepository.DeleteEvent").
			Str("event_id", eventID).
			Msg("failed to execute delete statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}
