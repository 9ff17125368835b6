package db

import (
	"embed"
	"errors"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies all pending schema migrations. The referential actions
// (comment/post cascades, group SET NULL, the follow edge primary key) live
// in the migration files, not in application code.
func Migrate(postgresURL string) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return err
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, pgxURL(postgresURL))
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// pgxURL rewrites a postgres:// URL to the scheme the migrate pgx/v5 driver
// registers under.
func pgxURL(u string) string {
	if rest, ok := strings.CutPrefix(u, "postgres://"); ok {
		return "pgx5://" + rest
	}
	if rest, ok := strings.CutPrefix(u, "postgresql://"); ok {
		return "pgx5://" + rest
	}
	return u
}
