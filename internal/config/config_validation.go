// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// The storage backend must be one of the Backend* constants (empty defaults
// to BackendSQLite during wiring and is allowed here), and the settings the
// selected backend depends on must be present.
//
// Returns nil if the configuration is valid, or a sentinel error otherwise.
func (cfg *StructuredConfig) validate() error {
	switch cfg.Storage.Backend {
	case "", BackendSQLite, BackendFile:
		// sqlite/file paths have usable defaults
	case BackendCalDAV:
		if cfg.Storage.CalDAV.Username == "" || cfg.Storage.CalDAV.Password == "" {
			return ErrInvalidStorageConfigs
		}
	default:
		return ErrUnknownStorageBackend
	}

	return nil
}
