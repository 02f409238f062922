package store

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
)

func TestPostgresErrorClassifier_Classify(t *testing.T) {
	c := NewPostgresErrorClassifier()

	tests := []struct {
		name string
		err  error
		want ErrorClassification
	}{
		{name: "nil", err: nil, want: NonRetryable},
		{name: "plain error", err: errors.New("x"), want: NonRetryable},
		{name: "connection failure", err: pgError(pgerrcode.ConnectionFailure), want: Retryable},
		{name: "wrapped deadlock", err: fmt.Errorf("op: %w", pgError(pgerrcode.DeadlockDetected)), want: Retryable},
		{name: "serialization", err: pgError(pgerrcode.SerializationFailure), want: Retryable},
		{name: "too many connections", err: pgError(pgerrcode.TooManyConnections), want: Retryable},
		{name: "cannot connect now", err: pgError(pgerrcode.CannotConnectNow), want: Retryable},
		{name: "unique violation", err: pgError(pgerrcode.UniqueViolation), want: NonRetryable},
		{name: "syntax error", err: pgError(pgerrcode.SyntaxError), want: NonRetryable},
		{name: "admin shutdown", err: pgError(pgerrcode.AdminShutdown), want: Retryable},
		{name: "query canceled", err: pgError(pgerrcode.QueryCanceled), want: NonRetryable},
		{name: "out of memory", err: pgError(pgerrcode.OutOfMemory), want: Retryable},
		{name: "context canceled", err: context.Canceled, want: Retryable},
		{name: "deadline", err: fmt.Errorf("q: %w", context.DeadlineExceeded), want: Retryable},
		{name: "bad conn", err: driver.ErrBadConn, want: Retryable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.err))
		})
	}
}

func TestClassifyPgCode_UnknownCode(t *testing.T) {
	assert.Equal(t, NonRetryable, classifyPgCode("XX999"))
}

func TestDB_Classify(t *testing.T) {
	db, _ := newTestDB(t)

	assert.NoError(t, db.classify(nil))
	assert.ErrorIs(t, db.classify(pgError(pgerrcode.ConnectionFailure)), ErrTransientStorage)

	plain := errors.New("constraint")
	assert.Same(t, plain, db.classify(plain))
}

func TestPostgresError(t *testing.T) {
	assert.Equal(t, pgerrcode.UniqueViolation, postgresError(fmt.Errorf("w: %w", pgError(pgerrcode.UniqueViolation))))
	assert.Empty(t, postgresError(errors.New("x")))
}
