package store

import "errors"

// Sentinel errors returned by store methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an attempt to register a new user
	// fails because a user with the same email already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUserNotFound is returned when a query expected to match a user record
	// produces an empty result set.
	ErrUserNotFound = errors.New("no user was found")

	// ErrEventNotFound is returned when a read, update, or delete targets an
	// event that does not exist or belongs to another user.
	ErrEventNotFound = errors.New("event was not found")

	// ErrEventNotSaved is returned when an INSERT completes without error but
	// the number of affected rows is zero, indicating that nothing was
	// actually persisted.
	ErrEventNotSaved = errors.New("event was not saved")

	// ErrNoOwner is returned when a mutation is attempted without an owning
	// user id. Read paths treat a missing owner as an empty result instead.
	ErrNoOwner = errors.New("no owning user")

	// ErrCalendarNotFound is returned by provider lookups when no calendar
	// with the requested display name exists on the server.
	ErrCalendarNotFound = errors.New("calendar not found")

	// ErrStoreUnavailable is returned when the backing destination cannot be
	// reached or has not been provisioned yet.
	ErrStoreUnavailable = errors.New("event store unavailable")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan event row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan event rows")
)
