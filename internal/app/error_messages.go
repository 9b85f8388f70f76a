// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// go-plan-it server handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// Keeping them in one place ensures consistent wording throughout the API.
package app

const (
	// MsgInvalidJSON is returned when the request body cannot be decoded.
	MsgInvalidJSON = "Invalid JSON was passed"

	// MsgInvalidDataProvided is returned when the request body decodes but
	// fails basic validation (e.g. missing required fields).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidEmailPassword is returned when the supplied email/password
	// combination does not match any existing user record.
	MsgInvalidEmailPassword = "invalid email/password"

	// MsgEmailAlreadyExists is returned when a registration attempt is
	// rejected because the requested email is already in use.
	MsgEmailAlreadyExists = "email already exists"

	// MsgInvalidEventID is returned when the event id route parameter is
	// missing or cannot be unescaped.
	MsgInvalidEventID = "invalid event id"

	// MsgInvalidRangeParams is returned when the from/to query parameters of
	// an event listing cannot be parsed as dates or timestamps.
	MsgInvalidRangeParams = "invalid from/to parameters"

	// MsgEventCreateFailed is returned when the event creation handler
	// encounters an error from the session layer.
	MsgEventCreateFailed = "error creating event"

	// MsgEventListFailed is returned when an event range listing fails.
	MsgEventListFailed = "error listing events"

	// MsgEventUpdateFailed is returned when an event update fails.
	MsgEventUpdateFailed = "error updating event"

	// MsgEventDeleteFailed is returned when an event deletion fails.
	MsgEventDeleteFailed = "error deleting event"

	// MsgEventToggleFailed is returned when flipping an event's completion
	// flag fails.
	MsgEventToggleFailed = "error toggling event completion"
)
