package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"tianji/internal/config"
	_ "modernc.org/sqlite"
)

// CurrentSchemaVersion is the latest schema version.
// Bump this when adding migrations.
const CurrentSchemaVersion = 1

// Init initializes the SQLite database at baseDir/tianji.db.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.tianji.
func Init(baseDir string) (*sql.DB, error) {
	// Create base directory with restricted permissions
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	// Explicit chmod (best-effort, may not work on all platforms)
	_ = os.Chmod(baseDir, 0700)

	// Open database with pragmas in connection string (applies to all connections)
	dbPath := filepath.Join(baseDir, "tianji.db")
	dsn := dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Verify WAL mode is active
	if err := verifyWALMode(db); err != nil {
		db.Close()
		return nil, err
	}

	// Run migrations (this creates the file if it doesn't exist)
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	// Set file permissions after file exists (best-effort)
	_ = os.Chmod(dbPath, 0600)

	return db, nil
}

// ConfigurePool applies connection pool settings from config.
// Only sets limits if explicitly configured (non-zero values).
// Call after Init if you need to tune pool behavior for contention.
func ConfigurePool(db *sql.DB, cfg *config.Config) {
	if cfg == nil {
		return
	}
	if cfg.DBMaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	}
	if cfg.DBMaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	}
}

// migrate applies schema migrations based on user_version.
func migrate(db *sql.DB) error {
	version, err := GetUserVersion(db)
	if err != nil {
		return err
	}

	// Migration 0 -> 1: Initial schema (v1)
	if version < 1 {
		schema := `
		CREATE TABLE IF NOT EXISTS charts (
		  id              TEXT PRIMARY KEY,
		  name_raw        TEXT,
		  name_norm       TEXT,
		  birth_year      INTEGER NOT NULL,
		  birth_month     INTEGER NOT NULL,
		  birth_day       INTEGER NOT NULL,
		  birth_hour      INTEGER NOT NULL,
		  pillars_json    TEXT NOT NULL,
		  tally_json      TEXT NOT NULL,
		  root_json       TEXT NOT NULL,
		  primary_element TEXT NOT NULL,
		  root_bonus      REAL NOT NULL,
		  created_at      INTEGER NOT NULL,
		  updated_at      INTEGER NOT NULL,
		  deleted_at      INTEGER
		);

		CREATE INDEX IF NOT EXISTS idx_charts_updated
		ON charts(updated_at DESC)
		WHERE deleted_at IS NULL;

		CREATE UNIQUE INDEX IF NOT EXISTS idx_charts_name_norm
		ON charts(name_norm)
		WHERE name_norm IS NOT NULL AND deleted_at IS NULL;

		CREATE TABLE IF NOT EXISTS cultivation (
		  chart_id           TEXT PRIMARY KEY REFERENCES charts(id),
		  realm              TEXT NOT NULL,
		  current_exp        REAL NOT NULL DEFAULT 0,
		  total_exp          REAL NOT NULL DEFAULT 0,
		  today_minutes      INTEGER NOT NULL DEFAULT 0,
		  last_day           TEXT NOT NULL DEFAULT '',
		  session_started_at INTEGER,
		  updated_at         INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS sessions (
		  id         TEXT PRIMARY KEY,
		  chart_id   TEXT NOT NULL REFERENCES charts(id),
		  started_at INTEGER NOT NULL,
		  ended_at   INTEGER NOT NULL,
		  minutes    INTEGER NOT NULL,
		  bonus      REAL NOT NULL,
		  exp_gained REAL NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_sessions_chart
		ON sessions(chart_id, ended_at DESC);
		`
		if _, err := db.Exec(schema); err != nil {
			return fmt.Errorf("migration 1 failed: %w", err)
		}
		if err := SetUserVersion(db, 1); err != nil {
			return err
		}
	}

	// Migration 1 -> 2: spirit stone balance on cultivation state
	if version < 2 {
		alter := `
		ALTER TABLE cultivation
		ADD COLUMN spirit_stones INTEGER NOT NULL DEFAULT 0;
		`
		if _, err := db.Exec(alter); err != nil {
			return fmt.Errorf("migration 2 failed: %w", err)
		}
		if err := SetUserVersion(db, 2); err != nil {
			return err
		}
	}

	// Future migrations go here:
	// if version < 3 { ... }

	return nil
}

// verifyWALMode checks that WAL mode is active (set via connection string).
func verifyWALMode(db *sql.DB) error {
	var journalMode string
	if err := db.QueryRow("PRAGMA journal_mode;").Scan(&journalMode); err != nil {
		return fmt.Errorf("failed to verify journal mode: %w", err)
	}
	if journalMode != "wal" {
		return fmt.Errorf("expected WAL mode, got %s", journalMode)
	}
	return nil
}

// GetUserVersion returns the current schema version (user_version pragma).
func GetUserVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version;").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get user_version: %w", err)
	}
	return version, nil
}

// SetUserVersion sets the schema version (user_version pragma).
func SetUserVersion(db *sql.DB, version int) error {
	_, err := db.Exec(fmt.Sprintf("PRAGMA user_version=%d", version))
	if err != nil {
		return fmt.Errorf("failed to set user_version: %w", err)
	}
	return nil
}
