package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/MKhiriev/go-task-manager/internal/config"
	"github.com/MKhiriev/go-task-manager/internal/logger"
)

const (
	maxOpenConns    = 10
	maxIdleConns    = 4
	connMaxIdleTime = 5 * time.Minute
)

// NewConnectPostgres parses cfg.DSN, opens a pool through the pgx stdlib
// driver and pings it before handing it out.
func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	connConfig, err := pgx.ParseConfig(cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("invalid database DSN")
		return nil, fmt.Errorf("parsing database DSN: %w", err)
	}

	conn := stdlib.OpenDB(*connConfig)
	conn.SetMaxOpenConns(maxOpenConns)
	conn.SetMaxIdleConns(maxIdleConns)
	conn.SetConnMaxIdleTime(connMaxIdleTime)

	if err = conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		log.Err(err).
			Str("func", "NewConnectPostgres").
			Str("host", connConfig.Host).
			Str("database", connConfig.Database).
			Msg("database is unreachable")
		return nil, fmt.Errorf("%w: %w", ErrTransientStorage, err)
	}

	log.Info().
		Str("func", "NewConnectPostgres").
		Str("host", connConfig.Host).
		Str("database", connConfig.Database).
		Msg("connected to database")

	return newDB(conn, log), nil
}

func newDB(conn *sql.DB, log *logger.Logger) *DB {
	return &DB{
		DB:                 conn,
		logger:             log,
		errorClassificator: NewPostgresErrorClassifier(),
	}
}

// postgresError returns the SQLSTATE carried by err, or "" when err did not
// come from the server.
func postgresError(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
