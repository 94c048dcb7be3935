package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"specshare/internal/config"
	"specshare/internal/logger"
)

type migrationStep struct {
	Name string
	SQL  string
}

type dialect struct {
	sentinel string
	steps    []migrationStep
}

var dialects = map[string]dialect{
	config.DriverPostgres: {
		sentinel: "SELECT to_regclass('public.specs') IS NOT NULL",
		steps: []migrationStep{
			{
				Name: "create_table_specs",
				SQL: `CREATE TABLE IF NOT EXISTS specs (
  id         TEXT        PRIMARY KEY,
  content    TEXT        NOT NULL,
  title      TEXT        NOT NULL DEFAULT '',
  summary    TEXT        NOT NULL DEFAULT '',
  step_count INTEGER     NOT NULL DEFAULT 0 CHECK (step_count >= 0),
  version    TEXT        NOT NULL DEFAULT '',
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
			},
			{
				Name: "create_index_specs_created_at",
				SQL:  `CREATE INDEX IF NOT EXISTS idx_specs_created_at ON specs (created_at);`,
			},
		},
	},
	config.DriverSQLite: {
		sentinel: "SELECT EXISTS (SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = 'specs')",
		steps: []migrationStep{
			{
				Name: "create_table_specs",
				SQL: `CREATE TABLE IF NOT EXISTS specs (
  id         TEXT    PRIMARY KEY,
  content    TEXT    NOT NULL,
  title      TEXT    NOT NULL DEFAULT '',
  summary    TEXT    NOT NULL DEFAULT '',
  step_count INTEGER NOT NULL DEFAULT 0 CHECK (step_count >= 0),
  version    TEXT    NOT NULL DEFAULT '',
  created_at TEXT    NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
);`,
			},
			{
				Name: "create_index_specs_created_at",
				SQL:  `CREATE INDEX IF NOT EXISTS idx_specs_created_at ON specs (created_at);`,
			},
		},
	},
}

// EnsureMigrated checks if the 'specs' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, driver string, log logger.Logger) error {
	if driver == "" {
		driver = config.DriverPostgres
	}
	d, ok := dialects[driver]
	if !ok {
		return fmt.Errorf("no migrations for driver %q", driver)
	}

	start := time.Now()
	log = log.With(logger.String("component", "database"), logger.String("db_driver", driver))
	log.Info("db_migration_check")

	var exists bool
	if err := db.QueryRowContext(ctx, d.sentinel).Scan(&exists); err != nil {
		log.Error("db_migration_failed",
			logger.String("error_message", fmt.Sprintf("failed to check sentinel table: %v", err)),
			logger.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			logger.String("detail", "schema already exists, skipping migration"),
			logger.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil
	}

	log.Info("db_migration_start")

	for _, step := range d.steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				logger.String("migration_step", step.Name),
				logger.Err(err),
				logger.Int64("duration_ms", time.Since(start).Milliseconds()),
				logger.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("db_migration_step",
			logger.String("migration_step", step.Name),
			logger.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
		)
	}

	log.Info("db_migration_success", logger.Int64("duration_ms", time.Since(start).Milliseconds()))
	return nil
}
