package db

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"reflow_oven/internal/models"

	_ "modernc.org/sqlite"
)

const sqliteDriverName = "sqlite"

// InitDB opens/creates a SQLite DB file and ensures tables exist.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// SQLite is not great with many writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := seedProfiles(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Fail fast if the DB cannot be reached
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

const schemaConfig = `
CREATE TABLE IF NOT EXISTS config (
    key TEXT PRIMARY KEY,
    value INTEGER NOT NULL
);
`

const schemaProfiles = `
CREATE TABLE IF NOT EXISTS profiles (
    idx INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    setpoints TEXT NOT NULL
);
`

const schemaOvenState = `
CREATE TABLE IF NOT EXISTS oven_state (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    mode TEXT NOT NULL,
    profile_idx INTEGER NOT NULL,
    profile_name TEXT NOT NULL,
    elapsed_s REAL NOT NULL,
    setpoint_c REAL NOT NULL,
    temp_c REAL NOT NULL,
    heat BOOLEAN NOT NULL,
    fan BOOLEAN NOT NULL,
    running BOOLEAN NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
`

const schemaOvenEvents = `
CREATE TABLE IF NOT EXISTS oven_events (
    id TEXT PRIMARY KEY,
    occurred_at TIMESTAMP NOT NULL,
    type TEXT NOT NULL,
    message TEXT NOT NULL,
    meta TEXT
);
`

const schemaUsers = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL
);
`

func ensureSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		// In case of panic, rollback to avoid leaving an open transaction
		_ = tx.Rollback()
	}()

	for i, stmt := range []string{
		schemaConfig,
		schemaProfiles,
		schemaOvenState,
		schemaOvenEvents,
		schemaUsers,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}

// seedCount is how many editable profile slots a fresh database gets.
const seedCount = 2

// seedProfiles inserts blank user-editable profile slots on first run, so
// the unified index space has a persisted range to edit out of the box.
func seedProfiles(db *sql.DB) error {
	var empty [models.NumProfileTemps]int
	blank, err := json.Marshal(empty[:])
	if err != nil {
		return fmt.Errorf("marshal blank setpoints: %w", err)
	}
	for local := 0; local < seedCount; local++ {
		name := fmt.Sprintf("CUSTOM #%d", local+1)
		_, err := db.Exec(
			`INSERT OR IGNORE INTO profiles (idx, name, setpoints) VALUES (?, ?, ?)`,
			local, name, string(blank),
		)
		if err != nil {
			return fmt.Errorf("seed profile %d: %w", local, err)
		}
	}
	return nil
}
