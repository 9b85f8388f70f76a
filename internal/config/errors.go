package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates incomplete storage settings for the
	// selected backend (for example, a CalDAV backend without credentials).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")

	// ErrUnknownStorageBackend indicates that STORAGE_BACKEND holds a value
	// outside the supported caldav|sqlite|file set.
	ErrUnknownStorageBackend = errors.New("unknown storage backend")
)
