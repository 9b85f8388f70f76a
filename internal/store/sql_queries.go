// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	sq "github.com/Masterminds/squirrel"
)

const (
	eventsTable = "events"
	usersTable  = "users"
)

// eventColumns lists the events table columns in scan order. Insert and
// select builders must agree on this order.
var eventColumns = []string{
	"id",
	"title",
	"start_date",
	"end_date",
	"start_time",
	"end_time",
	"repeat",
	"notes",
	"color",
	"alarms",
	"completed",
	"user_id",
}

// userColumns lists the users table columns in scan order.
var userColumns = []string{
	"id",
	"email",
	"name",
	"password_hash",
}

// buildSelectEventsQuery builds a range query over the owner's events.
// Empty fromDay/toDay bounds are omitted, widening the range. Days are
// ISO-8601 date strings, so lexical comparison matches chronological order.
func buildSelectEventsQuery(ownerID string, fromDay, toDay string) (string, []any, error) {
	builder := sq.
		Select(eventColumns...).
		From(eventsTable).
		Where(sq.Eq{"user_id": ownerID})

	if fromDay != "" {
		builder = builder.Where(sq.GtOrEq{"start_date": fromDay})
	}
	if toDay != "" {
		builder = builder.Where(sq.LtOrEq{"start_date": toDay})
	}

	return builder.OrderBy("start_date", "start_time").ToSql()
}

// buildSelectEventQuery builds a single-event lookup scoped to the owner.
func buildSelectEventQuery(ownerID, eventID string) (string, []any, error) {
	return sq.
		Select(eventColumns...).
		From(eventsTable).
		Where(sq.Eq{"id": eventID, "user_id": ownerID}).
		ToSql()
}

// buildInsertEventQuery builds the INSERT for a fully populated event row.
func buildInsertEventQuery(row eventRow) (string, []any, error) {
	return sq.
		Insert(eventsTable).
		Columns(eventColumns...).
		Values(
			row.ID,
			row.Title,
			row.StartDate,
			row.EndDate,
			row.StartTime,
			row.EndTime,
			row.Repeat,
			row.Notes,
			row.Color,
			row.Alarms,
			row.Completed,
			row.UserID,
		).
		ToSql()
}

// buildUpdateEventQuery builds a full-row UPDATE keyed by id and owner.
func buildUpdateEventQuery(row eventRow) (string, []any, error) {
	return sq.
		Update(eventsTable).
		Set("title", row.Title).
		Set("start_date", row.StartDate).
		Set("end_date", row.EndDate).
		Set("start_time", row.StartTime).
		Set("end_time", row.EndTime).
		Set("repeat", row.Repeat).
		Set("notes", row.Notes).
		Set("color", row.Color).
		Set("alarms", row.Alarms).
		Set("completed", row.Completed).
		Where(sq.Eq{"id": row.ID, "user_id": row.UserID}).
		ToSql()
}

// buildDeleteEventQuery builds the DELETE scoped to the owner.
func buildDeleteEventQuery(ownerID, eventID string) (string, []any, error) {
	return sq.
		Delete(eventsTable).
		Where(sq.Eq{"id": eventID, "user_id": ownerID}).
		ToSql()
}

// buildInsertUserQuery builds the INSERT for a new user row.
func buildInsertUserQuery(user userRow) (string, []any, error) {
	return sq.
		Insert(usersTable).
		Columns(userColumns...).
		Values(user.ID, user.Email, user.Name, user.PasswordHash).
		ToSql()
}

// buildSelectUserByEmailQuery builds the login lookup by unique email.
func buildSelectUserByEmailQuery(email string) (string, []any, error) {
	return sq.
		Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{"email": email}).
		ToSql()
}
