package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-plan-it/internal/logger"
	"github.com/MKhiriev/go-plan-it/models"
)

type userRepository struct {
	*DB
	logger *logger.Logger
}

func NewUserRepository(db *DB, logger *logger.Logger) UserStore {
	logger.Debug().Msg("UserRepository created")
	return &userRepository{
		DB:     db,
		logger: logger,
	}
}

// userRow is the flat column shape of a user as stored in SQLite.
type userRow struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
}

func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	user.ID = uuid.NewString()

	query, args, err := buildInsertUserQuery(userRow{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
	})
	if err != nil {
		log.Err(err).Str("func", "userRepository.CreateUser").Msg("failed to build query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	// create user in db
	if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "userRepository.CreateUser").Msg("error inserting user")

		if isUniqueViolation(err) {
			return models.User{}, ErrEmailAlreadyExists
		}
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectUserByEmailQuery(email)
	if err != nil {
		log.Err(err).Str("func", "userRepository.FindUserByEmail").Msg("failed to build query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var foundUser models.User
	scanErr := r.DB.QueryRowContext(ctx, query, args...).
		Scan(&foundUser.ID, &foundUser.Email, &foundUser.Name, &foundUser.PasswordHash)
	if scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(scanErr).Str("func", "userRepository.FindUserByEmail").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", scanErr)
	}

	return foundUser, nil
}

// isUniqueViolation reports whether err is a SQLite unique-constraint error
// (the email column carries a UNIQUE index).
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
