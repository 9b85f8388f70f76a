// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// User represents an account entity used for authentication and event
// ownership. It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the opaque unique identifier of the user. It doubles as the
	// owner id stamped on every event the user creates.
	ID string `json:"id,omitempty"`

	// Email is the unique login identifier used during authentication.
	Email string `json:"email"`

	// Name is the display name of the user.
	// It is non-sensitive and may be shown in UI.
	Name string `json:"name"`

	// Password carries the plain-text password on inbound register/login
	// requests only. It is never persisted; stores keep PasswordHash.
	Password string `json:"password,omitempty"`

	// PasswordHash is the bcrypt hash of the user's password. The JSON tag
	// exists for the file-backed store, which persists users as JSON blobs;
	// API handlers must not serialize User directly.
	PasswordHash string `json:"passwordHash,omitempty"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
