// Package migrations applies the embedded SQL schema with golang-migrate.
package migrations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

const DefaultTable = "schema_migrations"

type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

type Config struct {
	// Source holds NNNNNN_name.up.sql / .down.sql files at its root.
	Source fs.FS
	Table  string
	Logger Logger
}

type migrator interface {
	Up() error
	Version() (version uint, dirty bool, err error)
	Close() (sourceErr error, databaseErr error)
}

// openMigrator is swapped in tests.
var openMigrator = func(src source.Driver, db *sql.DB, table string) (migrator, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{MigrationsTable: table})
	if err != nil {
		return nil, fmt.Errorf("postgres driver: %w", err)
	}
	return migrate.NewWithInstance("iofs", src, "postgres", driver)
}

// Result reports the schema version after Up.
type Result struct {
	Version uint
	Applied bool
}

// Up applies every pending migration. golang-migrate takes no context, so a
// cancelled ctx stops waiting and closes the migrator; the statement in
// flight may still finish.
func Up(ctx context.Context, db *sql.DB, cfg Config) (Result, error) {
	if db == nil {
		return Result{}, errors.New("migrations: db is nil")
	}
	if cfg.Source == nil {
		return Result{}, errors.New("migrations: no source")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if cfg.Table == "" {
		cfg.Table = DefaultTable
	}

	src, err := iofs.New(cfg.Source, ".")
	if err != nil {
		return Result{}, fmt.Errorf("migrations: source: %w", err)
	}

	m, err := openMigrator(src, db, cfg.Table)
	if err != nil {
		return Result{}, fmt.Errorf("migrations: init: %w", err)
	}

	r := &runner{m: m, logger: cfg.Logger}
	defer r.close()

	r.info("Applying SQL migrations", "table", cfg.Table)

	done := make(chan error, 1)
	go func() { done <- m.Up() }()

	var upErr error
	select {
	case <-ctx.Done():
		r.close()
		return Result{}, ctx.Err()
	case upErr = <-done:
	}

	applied := true
	if errors.Is(upErr, migrate.ErrNoChange) {
		applied = false
	} else if upErr != nil {
		return Result{}, fmt.Errorf("migrations: up: %w", upErr)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return Result{}, fmt.Errorf("migrations: version: %w", err)
	}
	if dirty {
		return Result{}, fmt.Errorf("migrations: schema is dirty at version %d", version)
	}

	if applied {
		r.info("Migrations applied", "version", version)
	} else {
		r.info("Schema already up to date", "version", version)
	}
	return Result{Version: version, Applied: applied}, nil
}

type runner struct {
	m      migrator
	logger Logger
	closed bool
}

func (r *runner) close() {
	if r.closed {
		return
	}
	r.closed = true

	srcErr, dbErr := r.m.Close()
	if r.logger == nil {
		return
	}
	if srcErr != nil {
		r.logger.Warn("Closing migration source failed", "error", srcErr)
	}
	if dbErr != nil {
		r.logger.Warn("Closing migration database failed", "error", dbErr)
	}
}

func (r *runner) info(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Info(msg, args...)
	}
}
