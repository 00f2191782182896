package migrations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbweber/homelab/stagerad/internal/datastore"
)

func newTestDatastore(t *testing.T) *datastore.Datastore {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	ds, err := datastore.New(dsn)
	require.NoError(t, err)
	t.Cleanup(func() {
		if closeErr := ds.Close(); closeErr != nil {
			t.Logf("Warning: failed to close test database: %v", closeErr)
		}
	})
	return ds
}

func tableExists(t *testing.T, ds *datastore.Datastore, name string) bool {
	t.Helper()
	var count int
	err := ds.DB.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", name).Scan(&count)
	require.NoError(t, err)
	return count == 1
}

func TestMigrator_RunMigrations(t *testing.T) {
	ds := newTestDatastore(t)
	ctx := context.Background()

	migrator := NewMigrator(ds)
	for _, migration := range GetInitialMigrations(ds.Dialect) {
		migrator.AddMigration(migration)
	}

	err := migrator.RunMigrations(ctx)
	require.NoError(t, err)

	version, err := migrator.GetCurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)

	assert.True(t, tableExists(t, ds, "stage_radiologies"))
	assert.True(t, tableExists(t, ds, "schema_migrations"))

	var count int
	err = ds.DB.QueryRow("SELECT COUNT(*) FROM schema_migrations WHERE version = 1 AND name = 'create_stage_radiologies_table'").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	err = ds.DB.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name='idx_stage_radiologies_user_login'").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMigrator_RunMigrations_Idempotent(t *testing.T) {
	ds := newTestDatastore(t)
	ctx := context.Background()

	require.NoError(t, Apply(ctx, ds))
	require.NoError(t, Apply(ctx, ds))

	var count int
	err := ds.DB.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMigrator_AddMigration(t *testing.T) {
	ds := newTestDatastore(t)

	migrator := NewMigrator(ds)

	// Add migrations out of order
	migrator.AddMigration(Migration{Version: 3, Name: "third"})
	migrator.AddMigration(Migration{Version: 1, Name: "first"})
	migrator.AddMigration(Migration{Version: 2, Name: "second"})

	// Verify they are sorted
	migrations := migrator.GetMigrations()
	assert.Equal(t, int64(1), migrations[0].Version)
	assert.Equal(t, int64(2), migrations[1].Version)
	assert.Equal(t, int64(3), migrations[2].Version)
}

func TestMigrator_FailedMigrationIsNotRecorded(t *testing.T) {
	ds := newTestDatastore(t)
	ctx := context.Background()

	migrator := NewMigrator(ds)
	migrator.AddMigration(Migration{
		Version: 1,
		Name:    "broken",
		Up: func(ctx context.Context, tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, "CREATE TABLE half_done (id INTEGER)"); err != nil {
				return err
			}
			return errors.New("boom")
		},
	})

	err := migrator.RunMigrations(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to run migration 1 (broken)")

	version, err := migrator.GetCurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), version)
	assert.False(t, tableExists(t, ds, "half_done"))
}

func TestMigrator_Rollback(t *testing.T) {
	ds := newTestDatastore(t)
	ctx := context.Background()

	migrator := NewDefaultMigrator(ds)
	require.NoError(t, migrator.RunMigrations(ctx))

	require.NoError(t, migrator.Rollback(ctx))
	version, err := migrator.GetCurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	require.NoError(t, migrator.Rollback(ctx))
	version, err = migrator.GetCurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), version)
	assert.False(t, tableExists(t, ds, "stage_radiologies"))

	// nothing left to roll back
	require.NoError(t, migrator.Rollback(ctx))
}

func TestGetInitialMigrations_Postgres(t *testing.T) {
	migrations := GetInitialMigrations(datastore.DialectPostgres)
	require.Len(t, migrations, 2)
	assert.Equal(t, "create_stage_radiologies_table", migrations[0].Name)
	assert.NotNil(t, migrations[0].Down)
}

func TestMigrator_Rollback_FreshDatabase(t *testing.T) {
	ds := newTestDatastore(t)
	ctx := context.Background()

	require.NoError(t, NewDefaultMigrator(ds).Rollback(ctx))
	assert.True(t, tableExists(t, ds, "schema_migrations"))
}
