package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-plan-it/models"
)

// EventStore is the persistence contract for planner events. Exactly one
// implementation serves a running process, selected at startup from
// configuration: the CalDAV store, the SQLite store, or the JSON file store.
//
// All methods scope their work to a single owning user. A store never returns
// or mutates another user's events.
type EventStore interface {
	// ListEvents returns the owner's events whose effective start falls in
	// [from, to]. Zero from/to values widen the corresponding bound to the
	// full range. An empty ownerID yields an empty result, never an error.
	ListEvents(ctx context.Context, ownerID string, from, to time.Time) ([]models.Event, error)

	// GetEvent returns a single event by id. Returns ErrEventNotFound if the
	// event does not exist or belongs to another user.
	GetEvent(ctx context.Context, ownerID string, eventID string) (models.Event, error)

	// CreateEvent persists a new event and returns it with the store-assigned
	// id filled in. The event's UserID must be set.
	CreateEvent(ctx context.Context, event models.Event) (models.Event, error)

	// UpdateEvent replaces the stored event identified by event.ID. Returns
	// ErrEventNotFound if no event with that id belongs to event.UserID.
	UpdateEvent(ctx context.Context, event models.Event) error

	// DeleteEvent removes the owner's event by id. Returns ErrEventNotFound
	// if no such event belongs to the owner.
	DeleteEvent(ctx context.Context, ownerID string, eventID string) error
}

// UserStore is the persistence contract for planner accounts. Password
// hashing happens above this layer; stores only ever see and return the
// bcrypt hash.
type UserStore interface {
	// CreateUser persists a new user and returns it with the assigned id.
	// Returns ErrEmailAlreadyExists if the email is taken.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail returns the user registered under email, or
	// ErrUserNotFound.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
}

// Calendar identifies a single calendar collection on a CalDAV server.
type Calendar struct {
	// Path is the server-side collection path, used for all object operations.
	Path string

	// Name is the calendar's display name.
	Name string
}

// RawCalendarEvent is the provider-level shape of a calendar object. The
// CalDAV event store maps between this and [models.Event]: metadata tags are
// encoded into Description on the way in and decoded on the way out.
type RawCalendarEvent struct {
	// Path is the object path on the server. It doubles as the event id.
	Path string

	// UID is the iCalendar UID of the contained VEVENT.
	UID string

	Title       string
	Start       time.Time
	End         time.Time
	Description string

	// Frequency is the RRULE FREQ value (DAILY, WEEKLY, MONTHLY, YEARLY) or
	// empty for non-recurring events.
	Frequency string

	// Alarms carries the VALARM triggers as reminder descriptors.
	Alarms []models.Alarm

	// Completed maps to a private X- property on the VEVENT; standard
	// iCalendar has no completion flag for events.
	Completed bool
}

// CalendarProvider is the narrow port the CalDAV event store drives.
// The production implementation lives in internal/adapter and talks to a
// real CalDAV server; tests substitute an in-memory fake.
type CalendarProvider interface {
	// ListCalendars enumerates the calendars visible to the authenticated
	// account.
	ListCalendars(ctx context.Context) ([]Calendar, error)

	// CreateCalendar provisions a new calendar collection with the given
	// display name and returns it.
	CreateCalendar(ctx context.Context, name string) (Calendar, error)

	// CreateEvent stores a new object in the calendar at calendarPath and
	// returns the object path.
	CreateEvent(ctx context.Context, calendarPath string, event RawCalendarEvent) (string, error)

	// UpdateEvent replaces the object at event.Path.
	UpdateEvent(ctx context.Context, event RawCalendarEvent) error

	// DeleteEvent removes the object at path.
	DeleteEvent(ctx context.Context, path string) error

	// ListEvents reports the objects in the calendar whose start falls in
	// [from, to]. Zero bounds widen to the full range.
	ListEvents(ctx context.Context, calendarPath string, from, to time.Time) ([]RawCalendarEvent, error)
}
