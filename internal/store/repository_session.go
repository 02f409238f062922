package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"

	"github.com/MKhiriev/go-task-manager/internal/logger"
)

type sessionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSessionRepository constructs a [SessionRepository] over the
// "user_tokens" table.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("creating session repository")
	return &sessionRepository{
		db:     db,
		logger: logger,
	}
}

// AddToken appends a session of userID. An unknown user is reported as
// [ErrUserNotFound] through the foreign key.
func (r *sessionRepository) AddToken(ctx context.Context, userID uuid.UUID, tokenHash string) error {
	if _, err := r.db.ExecContext(ctx, addToken, userID, tokenHash); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*sessionRepository.AddToken").
			Str("user_id", userID.String()).
			Msg("error adding session")
		if postgresError(err) == pgerrcode.ForeignKeyViolation {
			return ErrUserNotFound
		}
		return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classify(err))
	}

	return nil
}

// RemoveToken revokes one session. Removing an absent session is not an
// error.
func (r *sessionRepository) RemoveToken(ctx context.Context, userID uuid.UUID, tokenHash string) error {
	if _, err := r.db.ExecContext(ctx, removeToken, userID, tokenHash); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*sessionRepository.RemoveToken").
			Str("user_id", userID.String()).
			Msg("error removing session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classify(err))
	}

	return nil
}

// ClearTokens revokes every session of userID.
func (r *sessionRepository) ClearTokens(ctx context.Context, userID uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, clearTokens, userID); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*sessionRepository.ClearTokens").
			Str("user_id", userID.String()).
			Msg("error clearing sessions")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classify(err))
	}

	return nil
}

func (r *sessionRepository) ContainsToken(ctx context.Context, userID uuid.UUID, tokenHash string) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, containsToken, userID, tokenHash).Scan(&exists); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*sessionRepository.ContainsToken").
			Str("user_id", userID.String()).
			Msg("error checking session")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.classify(err))
	}

	return exists, nil
}

func (r *sessionRepository) PruneTokens(ctx context.Context, issuedBefore time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, pruneTokens, issuedBefore)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*sessionRepository.PruneTokens").
			Time("issued_before", issuedBefore).
			Msg("error pruning sessions")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classify(err))
	}

	pruned, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return pruned, nil
}
