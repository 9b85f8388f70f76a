package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-plan-it/internal/logger"
	"github.com/MKhiriev/go-plan-it/models"
)

// FileStore is the JSON blob implementation of [EventStore] and [UserStore].
// Events and users are held as plain arrays under fixed top-level keys and
// flushed to a single file after every mutation. The literal path ":memory:"
// keeps the store purely in memory.
//
// This is the fallback backend for environments without a database or a
// calendar account; it favours simplicity over scalability.
type FileStore struct {
	path     string
	inMemory bool
	logger   *logger.Logger

	mu     sync.RWMutex
	events []models.Event
	users  []models.User
}

// filePersistedState is the on-disk shape of the blob. The key names are part
// of the persisted format and must not change.
type filePersistedState struct {
	Events []models.Event `json:"planit_web_events"`
	Users  []models.User  `json:"planit_web_users"`
}

func NewFileStore(path string, log *logger.Logger) (*FileStore, error) {
	if path == "" {
		path = ":memory:"
	}

	inMemory := path == ":memory:" || path == "memory"
	s := &FileStore{
		path:     path,
		inMemory: inMemory,
		logger:   log,
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) load() error {
	if s.inMemory {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read blob store file: %w", err)
	}

	var st filePersistedState
	if err = json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("decode blob store file: %w", err)
	}

	s.events = st.Events
	s.users = st.Users

	return nil
}

// persist flushes the full state to disk. Callers must hold the write lock.
func (s *FileStore) persist() error {
	if s.inMemory {
		return nil
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create blob store dir: %w", err)
		}
	}

	state := filePersistedState{Events: s.events, Users: s.users}
	payload, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode blob store: %w", err)
	}

	if err = os.WriteFile(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("write blob store file: %w", err)
	}

	return nil
}

func (s *FileStore) ListEvents(ctx context.Context, ownerID string, from, to time.Time) ([]models.Event, error) {
	if ownerID == "" {
		return []models.Event{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]models.Event, 0, len(s.events))
	for _, event := range s.events {
		if event.UserID != ownerID {
			continue
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

	sort.Slice(results, func(i, j int) bool {
		return results[i].EffectiveStart().Before(results[j].EffectiveStart())
	})

	return results, nil
}

func (s *FileStore) GetEvent(ctx context.Context, ownerID string, eventID string) (models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, event := range s.events {
		if event.ID == eventID && event.UserID == ownerID {
			return event, nil
		}
	}
	return models.Event{}, ErrEventNotFound
}

func (s *FileStore) CreateEvent(ctx context.Context, event models.Event) (models.Event, error) {
	log := logger.FromContext(ctx)

	if event.UserID == "" {
		return models.Event{}, ErrNoOwner
	}

	// web-prefixed ids mark events synthesized outside a calendar provider
	event.ID = "web-" + uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	// full reassignment keeps readers away from partially mutated state
	s.events = append(append([]models.Event{}, s.events...), event)

	if err := s.persist(); err != nil {
		log.Err(err).Str("func", "FileStore.CreateEvent").Msg("failed to persist blob store")
		return models.Event{}, err
	}

	return event, nil
}

func (s *FileStore) UpdateEvent(ctx context.Context, event models.Event) error {
	log := logger.FromContext(ctx)

	if event.UserID == "" {
		return ErrNoOwner
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	updated := make([]models.Event, len(s.events))
	copy(updated, s.events)

	found := false
	for i, existing := range updated {
		if existing.ID == event.ID && existing.UserID == event.UserID {
			updated[i] = event
			found = true
			break
		}
	}
	if !found {
		return ErrEventNotFound
	}

	s.events = updated

	if err := s.persist(); err != nil {
		log.Err(err).Str("func", "FileStore.UpdateEvent").Msg("failed to persist blob store")
		return err
	}

	return nil
}

func (s *FileStore) DeleteEvent(ctx context.Context, ownerID string, eventID string) error {
	log := logger.FromContext(ctx)

	if ownerID == "" {
		return ErrNoOwner
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	remaining := make([]models.Event, 0, len(s.events))
	found := false
	for _, existing := range s.events {
		if existing.ID == eventID && existing.UserID == ownerID {
			found = true
			continue
		}
		remaining = append(remaining, existing)
	}
	if !found {
		return ErrEventNotFound
	}

	s.events = remaining

	if err := s.persist(); err != nil {
		log.Err(err).Str("func", "FileStore.DeleteEvent").Msg("failed to persist blob store")
		return err
	}

	return nil
}

func (s *FileStore) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return models.User{}, ErrEmailAlreadyExists
		}
	}

	user.ID = "web-" + uuid.NewString()
	user.Password = ""
	s.users = append(append([]models.User{}, s.users...), user)

	if err := s.persist(); err != nil {
		log.Err(err).Str("func", "FileStore.CreateUser").Msg("failed to persist blob store")
		return models.User{}, err
	}

	return user, nil
}

func (s *FileStore) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, existing := range s.users {
		if existing.Email == email {
			return existing, nil
		}
	}
	return models.User{}, ErrUserNotFound
}
