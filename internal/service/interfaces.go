// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service holds the application's business logic: account management
// and the per-user calendar session that coordinates event persistence,
// reminder scheduling, and AI reminder suggestions.
package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-plan-it/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService manages user accounts and JWT tokens.
type AuthService interface {
	// RegisterUser creates an account with a bcrypt-hashed password.
	RegisterUser(ctx context.Context, user models.User) (models.User, error)

	// Login verifies credentials and returns the stored account.
	Login(ctx context.Context, user models.User) (models.User, error)

	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// EventService is the surface the transport layer talks to. The session
// manager implements it by routing every call to the caller's session.
type EventService interface {
	AddEvent(ctx context.Context, userID string, event models.Event) (models.Event, error)
	UpdateEvent(ctx context.Context, userID string, event models.Event) (models.Event, error)
	DeleteEvent(ctx context.Context, userID string, eventID string) error
	ToggleEventComplete(ctx context.Context, userID string, eventID string) (models.Event, error)
	Events(ctx context.Context, userID string, from, to time.Time) ([]models.Event, error)
}
