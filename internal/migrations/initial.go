package migrations

import (
	"context"
	"database/sql"

	"github.com/jbweber/homelab/stagerad/internal/datastore"
)

// GetInitialMigrations returns all initial migrations for the given dialect
func GetInitialMigrations(dialect datastore.Dialect) []Migration {
	idColumn := "id INTEGER PRIMARY KEY AUTOINCREMENT"
	if dialect == datastore.DialectPostgres {
		idColumn = "id BIGSERIAL PRIMARY KEY"
	}

	return []Migration{
		{
			Version: 1,
			Name:    "create_stage_radiologies_table",
			Up: func(ctx context.Context, tx *sql.Tx) error {
				_, err := tx.ExecContext(ctx, `
					CREATE TABLE stage_radiologies (
						`+idColumn+`,
						annee_etude TEXT,
						date_debut TEXT,
						date_fin TEXT,
						hopital TEXT,
						chef_service TEXT,
						semestre TEXT,
						groupe TEXT,
						evaluation_objectif_1_etudiant TEXT,
						note_objectif_1_encadrant_referent INTEGER,
						user_login TEXT,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
					)
				`)
				return err
			},
			Down: func(ctx context.Context, tx *sql.Tx) error {
				_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS stage_radiologies`)
				return err
			},
		},
		{
			Version: 2,
			Name:    "add_stage_radiologies_user_login_index",
			Up: func(ctx context.Context, tx *sql.Tx) error {
				// List queries for non-privileged callers filter by owner
				_, err := tx.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_stage_radiologies_user_login ON stage_radiologies(user_login)`)
				return err
			},
			Down: func(ctx context.Context, tx *sql.Tx) error {
				_, err := tx.ExecContext(ctx, `DROP INDEX IF EXISTS idx_stage_radiologies_user_login`)
				return err
			},
		},
	}
}
