package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/jbweber/homelab/stagerad/internal/datastore"
)

// Migration represents a database migration with up and down functions
type Migration struct {
	Version int64
	Name    string
	Up      func(ctx context.Context, tx *sql.Tx) error
	Down    func(ctx context.Context, tx *sql.Tx) error
}

// Migrator handles database migrations
type Migrator struct {
	ds         *datastore.Datastore
	migrations []Migration
}

// NewMigrator creates a new migrator instance
func NewMigrator(ds *datastore.Datastore) *Migrator {
	return &Migrator{
		ds:         ds,
		migrations: []Migration{},
	}
}

// NewDefaultMigrator returns a migrator with the initial migrations for the
// datastore's dialect registered.
func NewDefaultMigrator(ds *datastore.Datastore) *Migrator {
	migrator := NewMigrator(ds)
	for _, migration := range GetInitialMigrations(ds.Dialect) {
		migrator.AddMigration(migration)
	}
	return migrator
}

// Apply runs every pending initial migration.
func Apply(ctx context.Context, ds *datastore.Datastore) error {
	return NewDefaultMigrator(ds).RunMigrations(ctx)
}

// AddMigration adds a migration to the migrator
func (m *Migrator) AddMigration(migration Migration) {
	m.migrations = append(m.migrations, migration)
	// Sort migrations by version
	sort.Slice(m.migrations, func(i, j int) bool {
		return m.migrations[i].Version < m.migrations[j].Version
	})
}

// RunMigrations runs all pending migrations
func (m *Migrator) RunMigrations(ctx context.Context) error {
	if err := m.createMigrationsTable(ctx); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	currentVersion, err := m.getCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current version: %w", err)
	}

	for _, migration := range m.migrations {
		if migration.Version > currentVersion {
			if err := m.runMigration(ctx, migration); err != nil {
				return fmt.Errorf("failed to run migration %d (%s): %w", migration.Version, migration.Name, err)
			}
		}
	}

	return nil
}

// Rollback reverts the most recently applied migration
func (m *Migrator) Rollback(ctx context.Context) error {
	if err := m.createMigrationsTable(ctx); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	currentVersion, err := m.getCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current version: %w", err)
	}
	if currentVersion == 0 {
		return nil
	}

	for _, migration := range m.migrations {
		if migration.Version != currentVersion {
			continue
		}
		return m.ds.WithinTx(ctx, func(tx *sql.Tx) error {
			if migration.Down != nil {
				if err := migration.Down(ctx, tx); err != nil {
					return err
				}
			}
			_, err := tx.ExecContext(ctx, m.ds.Rebind("DELETE FROM schema_migrations WHERE version = ?"), migration.Version)
			return err
		})
	}

	return fmt.Errorf("migration %d is not registered", currentVersion)
}

// createMigrationsTable creates the migrations tracking table
func (m *Migrator) createMigrationsTable(ctx context.Context) error {
	_, err := m.ds.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version BIGINT PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return err
}

// getCurrentVersion returns the current migration version
func (m *Migrator) getCurrentVersion(ctx context.Context) (int64, error) {
	var version int64
	err := m.ds.DB.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	if err != nil {
		return 0, err
	}
	return version, nil
}

// runMigration executes a single migration and records it in the same transaction
func (m *Migrator) runMigration(ctx context.Context, migration Migration) error {
	return m.ds.WithinTx(ctx, func(tx *sql.Tx) error {
		if err := migration.Up(ctx, tx); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx, m.ds.Rebind("INSERT INTO schema_migrations (version, name) VALUES (?, ?)"), migration.Version, migration.Name)
		return err
	})
}

// GetCurrentVersion returns the current migration version (public method)
func (m *Migrator) GetCurrentVersion(ctx context.Context) (int64, error) {
	return m.getCurrentVersion(ctx)
}

// GetMigrations returns all registered migrations
func (m *Migrator) GetMigrations() []Migration {
	return m.migrations
}
