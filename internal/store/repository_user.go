// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"

	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/models"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account rows in the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Age, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	return user, err
}

// userError maps a driver error of a users query to the package sentinels.
func (r *userRepository) userError(err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return ErrUserNotFound
	case postgresError(err) == pgerrcode.UniqueViolation:
		return ErrEmailAlreadyExists
	default:
		return fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.classify(err))
	}
}

// CreateUser persists a new user record and returns the stored row with
// server-assigned timestamps.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrEmailAlreadyExists].
//   - Any other driver-level error → wrapped [ErrExecutingQuery].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser, user.ID, user.Name, user.Email, user.Age, user.PasswordHash)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
		return models.User{}, r.userError(err)
	}

	created, err := scanUser(row)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: scanning error")
		return models.User{}, r.userError(err)
	}

	return created, nil
}

// FindUserByEmail looks a user up by the normalized email.
// Returns [ErrUserNotFound] when no row matches.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := scanUser(r.db.QueryRowContext(ctx, findUserByEmail, email))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Err(err).Str("func", "*userRepository.FindUserByEmail").Msg("error finding user by email")
		}
		return models.User{}, r.userError(err)
	}

	return user, nil
}

// FindUserByID looks a user up by id.
// Returns [ErrUserNotFound] when no row matches.
func (r *userRepository) FindUserByID(ctx context.Context, userID uuid.UUID) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := scanUser(r.db.QueryRowContext(ctx, findUserByID, userID))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Err(err).Str("func", "*userRepository.FindUserByID").Str("user_id", userID.String()).Msg("error finding user by id")
		}
		return models.User{}, r.userError(err)
	}

	return user, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, userID uuid.UUID, update models.UserUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateUserQuery(userID, update)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("failed to build query")
		return models.User{}, err
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUser").Str("user_id", userID.String()).Msg("error updating user")
		return models.User{}, r.userError(err)
	}

	return user, nil
}

// DeleteUser removes the sessions, the tasks and finally the user row in a
// single transaction.
func (r *userRepository) DeleteUser(ctx context.Context, userID uuid.UUID) (models.User, error) {
	log := logger.FromContext(ctx)

	var deleted models.User
	err := r.db.WithTx(ctx, func(ctx context.Context, tx DBTX) error {
		if _, err := tx.ExecContext(ctx, deleteUserTokens, userID); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classify(err))
		}

		if _, err := tx.ExecContext(ctx, deleteUserTasks, userID); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classify(err))
		}

		user, err := scanUser(tx.QueryRowContext(ctx, deleteUser, userID))
		if err != nil {
			return r.userError(err)
		}

		deleted = user
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Str("user_id", userID.String()).Msg("error deleting user")
		return models.User{}, err
	}

	return deleted, nil
}

func (r *userRepository) SetAvatar(ctx context.Context, userID uuid.UUID, avatar []byte) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, setUserAvatar, userID, avatar)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.SetAvatar").Str("user_id", userID.String()).Msg("error storing avatar")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classify(err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// GetAvatar returns the stored PNG of the user, [ErrUserNotFound] when the
// user does not exist and [ErrAvatarNotFound] when it has no avatar.
func (r *userRepository) GetAvatar(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	log := logger.FromContext(ctx)

	var avatar []byte
	if err := r.db.QueryRowContext(ctx, getUserAvatar, userID).Scan(&avatar); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Err(err).Str("func", "*userRepository.GetAvatar").Str("user_id", userID.String()).Msg("error reading avatar")
		}
		return nil, r.userError(err)
	}

	if len(avatar) == 0 {
		return nil, ErrAvatarNotFound
	}

	return avatar, nil
}
