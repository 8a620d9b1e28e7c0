package db

import (
	"database/sql"
	"fmt"

	"github.com/saadjs/dietgoals/internal/logger"
)

type migration struct {
	version int
	name    string
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		name:    "initial_schema",
		sql: `
CREATE TABLE IF NOT EXISTS goal_sets (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  set_type TEXT NOT NULL CHECK(set_type IN ('diet', 'meal')),
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS goals (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  goal_set_id TEXT NOT NULL,
  position INTEGER NOT NULL,
  identity TEXT NOT NULL,
  kind TEXT NOT NULL CHECK(kind IN ('energy', 'macro', 'micro')),
  derivation TEXT NOT NULL,
  macro TEXT,
  nutrient TEXT,
  unit TEXT,
  delta TEXT CHECK(delta IN ('deficit', 'surplus')),
  body_mass TEXT CHECK(body_mass IN ('weight', 'lean_mass')),
  per_unit TEXT,
  per_amount REAL CHECK(per_amount > 0),
  lower_bound REAL CHECK(lower_bound >= 0),
  upper_bound REAL CHECK(upper_bound >= 0),
  auto_generated INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(goal_set_id) REFERENCES goal_sets(id) ON DELETE CASCADE,
  UNIQUE(goal_set_id, identity)
);

CREATE INDEX IF NOT EXISTS idx_goals_goal_set_id ON goals(goal_set_id);
`,
	},
	{
		version: 2,
		name:    "body_tracking",
		sql: `
CREATE TABLE IF NOT EXISTS body_measurements (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  measured_at DATETIME NOT NULL,
  weight_kg REAL NOT NULL CHECK(weight_kg > 0),
  body_fat_pct REAL CHECK(body_fat_pct >= 0 AND body_fat_pct <= 100),
  notes TEXT,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_body_measurements_measured_at ON body_measurements(measured_at);
`,
	},
	{
		version: 3,
		name:    "app_config",
		sql: `
CREATE TABLE IF NOT EXISTS app_config (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`,
	},
	{
		version: 4,
		name:    "workouts",
		sql: `
CREATE TABLE IF NOT EXISTS workouts (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  duration_min REAL NOT NULL CHECK(duration_min > 0),
  performed_at DATETIME NOT NULL,
  notes TEXT,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_workouts_performed_at ON workouts(performed_at);
`,
	},
	{
		version: 5,
		name:    "meal_set_diet_link",
		sql: `
ALTER TABLE goal_sets ADD COLUMN diet_set_id TEXT REFERENCES goal_sets(id) ON DELETE SET NULL;
`,
	},
}

func ApplyMigrations(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`); err != nil {
		return fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		var exists int
		err := db.QueryRow(`SELECT 1 FROM schema_migrations WHERE version = ?`, m.version).Scan(&exists)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("check migration version %d: %w", m.version, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration tx: %w", err)
		}

		if _, err := tx.Exec(m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration version %d (%s): %w", m.version, m.name, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations(version, name) VALUES(?, ?)`, m.version, m.name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration version %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration version %d: %w", m.version, err)
		}
		logger.Info("applied migration", "version", m.version, "name", m.name)
	}
	return nil
}
