package store

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassificator decides whether a failed database operation is
// transient.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// ErrorClassification tells whether an operation that failed could succeed
// when attempted again.
type ErrorClassification int

const (
	NonRetryable ErrorClassification = iota
	Retryable
)

// PostgresErrorClassifier classifies errors returned through the pgx driver.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify reports server errors by SQLSTATE class. Client-side failures
// count as retryable when the connection broke or the context ended.
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return NonRetryable
	}

	if code := postgresError(err); code != "" {
		return classifyPgCode(code)
	}

	var connectErr *pgconn.ConnectError
	switch {
	case errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, driver.ErrBadConn),
		errors.As(err, &connectErr):
		return Retryable
	}

	return NonRetryable
}

// classifyPgCode treats connection exceptions (08), transaction rollbacks (40)
// and insufficient resources (53) as retryable, plus the shutdown codes of
// class 57. query_canceled (57014) stays non-retryable.
// https://www.postgresql.org/docs/current/errcodes-appendix.html
func classifyPgCode(code string) ErrorClassification {
	switch {
	case pgerrcode.IsConnectionException(code),
		pgerrcode.IsTransactionRollback(code),
		pgerrcode.IsInsufficientResources(code):
		return Retryable
	}

	switch code {
	case pgerrcode.AdminShutdown, pgerrcode.CrashShutdown, pgerrcode.CannotConnectNow:
		return Retryable
	}

	return NonRetryable
}

// classify wraps err with [ErrTransientStorage] when the classifier marks it
// retryable. Repositories never retry on their own.
func (db *DB) classify(err error) error {
	if err == nil {
		return nil
	}

	classificator := db.errorClassificator
	if classificator == nil {
		classificator = NewPostgresErrorClassifier()
	}

	if classificator.Classify(err) == Retryable {
		return fmt.Errorf("%w: %w", ErrTransientStorage, err)
	}

	return err
}
