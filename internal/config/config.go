// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// Storage backend selectors. Exactly one backend serves a running process;
// the choice is made once at startup and never mixed within a session.
const (
	// BackendCalDAV stores events in a dedicated calendar on a CalDAV server
	// (the device/system calendar path).
	BackendCalDAV = "caldav"

	// BackendSQLite stores events and users in an embedded SQLite database.
	BackendSQLite = "sqlite"

	// BackendFile stores events and users as JSON blobs in a single file
	// (the web/key-value fallback path).
	BackendFile = "file"
)

// StructuredConfig is the top-level configuration container for the
// go-plan-it application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as token parameters and the
	// application version.
	App App `envPrefix:"APP_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Storage holds configuration for all persistence backends and selects
	// which of them the process uses.
	Storage Storage `envPrefix:"STORAGE_"`

	// Advisor holds configuration for the generative-text reminder advisor.
	Advisor Advisor `envPrefix:"ADVISOR_"`

	// Notify holds configuration for the notification sink and the morning
	// digest job.
	Notify Notify `envPrefix:"NOTIFY_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control token
// lifecycle and versioning.
type App struct {
	// TokenSignKey is the secret key used to sign and verify JWT tokens.
	// Must be kept confidential.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token.
	// It identifies the service that issued the token and is validated on
	// every authenticated request.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a JWT token remains valid after
	// issuance (e.g. "1h", "30m").
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// Version is the semantic version string of the running application
	// (e.g. "1.2.3").
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups the configuration for all storage backends used by the
// application.
type Storage struct {
	// Backend selects the active event store: one of the Backend* constants.
	// Env: STORAGE_BACKEND
	Backend string `env:"BACKEND"`

	// DB holds the embedded relational database settings (BackendSQLite).
	DB DB `envPrefix:"DB_"`

	// File holds the JSON blob store settings (BackendFile).
	File File `envPrefix:"FILE_"`

	// CalDAV holds the system-calendar provider settings (BackendCalDAV).
	CalDAV CalDAV `envPrefix:"CALDAV_"`
}

// DB holds connection settings for the embedded relational backend.
type DB struct {
	// DSN is the SQLite database file path (e.g. "planit.db").
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// File holds settings for the JSON blob store backend.
type File struct {
	// Path is the file the blob store persists to. The literal value
	// ":memory:" keeps the store purely in memory.
	// Env: STORAGE_FILE_PATH
	Path string `env:"PATH"`
}

// CalDAV holds connection settings for the system-calendar provider.
type CalDAV struct {
	// URL is the CalDAV server endpoint
	// (e.g. "https://caldav.icloud.com").
	// Env: STORAGE_CALDAV_URL
	URL string `env:"URL"`

	// Username authenticates against the CalDAV server.
	// Env: STORAGE_CALDAV_USERNAME
	Username string `env:"USERNAME"`

	// Password authenticates against the CalDAV server. For iCloud this is
	// an app-specific password.
	// Env: STORAGE_CALDAV_PASSWORD
	Password string `env:"PASSWORD"`

	// CalendarName is the display name of the dedicated calendar the planner
	// provisions and works in. All planner events live in this calendar and
	// never touch the user's pre-existing ones.
	// Env: STORAGE_CALDAV_CALENDAR_NAME
	CalendarName string `env:"CALENDAR_NAME"`
}

// Advisor holds configuration for the generative-text endpoint that suggests
// extra reminder offsets.
type Advisor struct {
	// BaseURL is the endpoint root
	// (e.g. "https://generativelanguage.googleapis.com").
	// Env: ADVISOR_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// Model is the generative model name (e.g. "gemini-pro").
	// Env: ADVISOR_MODEL
	Model string `env:"MODEL"`

	// APIKey authenticates requests to the endpoint. An empty key disables
	// the advisor entirely; events then carry only the deterministic reminder.
	// Env: ADVISOR_API_KEY
	APIKey string `env:"API_KEY"`

	// Timeout bounds a single suggestion round-trip.
	// Env: ADVISOR_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT"`
}

// Notify holds configuration for outbound notifications.
type Notify struct {
	// PushGatewayURL is the endpoint scheduled notifications are delivered
	// to when they come due (an Expo-push-style JSON POST).
	// Env: NOTIFY_PUSH_GATEWAY_URL
	PushGatewayURL string `env:"PUSH_GATEWAY_URL"`

	// Timeout bounds a single delivery request.
	// Env: NOTIFY_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT"`

	// DigestTime is the local wall-clock time ("HH:MM") at which the morning
	// agenda digest fires. Empty disables the digest job.
	// Env: NOTIFY_DIGEST_TIME
	DigestTime string `env:"DIGEST_TIME"`

	// Timezone is the IANA zone name the digest schedule is evaluated in
	// (e.g. "Europe/Moscow"). Empty means the host's local zone.
	// Env: NOTIFY_TIMEZONE
	Timezone string `env:"TIMEZONE"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
