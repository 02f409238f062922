// Package migrations embeds the SQL schema of the task manager and applies
// it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/MKhiriev/go-task-manager/internal/logger"
)

//go:embed *.sql
var embedMigrations embed.FS

var errNilDB = errors.New("migration error: db is nil")

// Migrate applies all pending migrations to db and logs every applied
// version.
func Migrate(ctx context.Context, db *sql.DB, log *logger.Logger) error {
	if db == nil {
		return errNilDB
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, embedMigrations)
	if err != nil {
		return fmt.Errorf("migration error creating provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	for _, result := range results {
		log.Info().
			Int64("version", result.Source.Version).
			Dur("duration", result.Duration).
			Msg("migration applied")
	}

	return nil
}
