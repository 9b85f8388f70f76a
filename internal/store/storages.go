package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-plan-it/internal/config"
	"github.com/MKhiriev/go-plan-it/internal/logger"
)

// Storages groups the selected persistence backends into a single value that
// can be passed around the service layer.
type Storages struct {
	EventStore EventStore
	UserStore  UserStore
}

// NewStorages initialises the storage layer for the backend selected in cfg.
//
// Backend mapping:
//   - BackendSQLite (also the default): events and users live in the embedded
//     SQLite database; schema migrations run on startup.
//   - BackendFile: events and users live in the JSON blob store.
//   - BackendCalDAV: events live in the dedicated planner calendar on the
//     CalDAV server reached through provider; accounts still live in SQLite,
//     because a calendar has no notion of users.
//
// provider is only consulted for BackendCalDAV and may be nil otherwise.
func NewStorages(ctx context.Context, cfg config.Storage, provider CalendarProvider, log *logger.Logger) (*Storages, error) {
	log.Info().Str("backend", cfg.Backend).Msg("creating new storages...")

	switch cfg.Backend {
	case config.BackendFile:
		fileStore, err := NewFileStore(cfg.File.Path, log)
		if err != nil {
			return nil, fmt.Errorf("blob store init error: %w", err)
		}
		return &Storages{
			EventStore: fileStore,
			UserStore:  fileStore,
		}, nil

	case config.BackendCalDAV:
		if provider == nil {
			return nil, fmt.Errorf("caldav backend selected but no calendar provider supplied")
		}

		events, err := NewCalendarEventStore(ctx, provider, cfg.CalDAV.CalendarName, log)
		if err != nil {
			return nil, fmt.Errorf("calendar store init error: %w", err)
		}

		db, err := newMigratedDB(ctx, cfg.DB, log)
		if err != nil {
			return nil, err
		}
		return &Storages{
			EventStore: events,
			UserStore:  NewUserRepository(db, log),
		}, nil

	case config.BackendSQLite, "":
		db, err := newMigratedDB(ctx, cfg.DB, log)
		if err != nil {
			return nil, err
		}
		return &Storages{
			EventStore: NewEventRepository(db, log),
			UserStore:  NewUserRepository(db, log),
		}, nil

	default:
		return nil, config.ErrUnknownStorageBackend
	}
}

func newMigratedDB(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	db, err := NewConnectSQLite(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return db, nil
}
