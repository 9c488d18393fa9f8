package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DB is the global database connection
var DB *sqlx.DB

// SchemaVersion tags the persisted layout so future migrations can detect
// stores written by older builds.
const SchemaVersion = 1

// Connect establishes a connection to the database. dbType is "sqlite" or
// "postgres"; dsn is the sqlite file path or the postgres connection string.
func Connect(dbType, dsn string) error {
	if dbType == "postgres" {
		db, err := sqlx.Connect("postgres", dsn)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %v", err)
		}
		DB = db
		return initializeSchema()
	}

	// Default: sqlite. Create the data directory if it doesn't exist.
	if dsn == "" {
		dsn = filepath.Join("data", "fichas.db")
	}
	if dir := filepath.Dir(dsn); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %v", err)
		}
	}

	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}

	// SQLite doesn't support multiple writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	DB = db
	return initializeSchema()
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema() error {
	// Catalog of flashcards; position preserves catalog order.
	_, err := DB.Exec(`
		CREATE TABLE IF NOT EXISTS flashcards (
			id TEXT PRIMARY KEY,
			topic TEXT NOT NULL DEFAULT '',
			difficulty TEXT NOT NULL DEFAULT 'media',
			question TEXT NOT NULL,
			answer TEXT NOT NULL DEFAULT '',
			position INTEGER NOT NULL DEFAULT 0
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create flashcards table: %v", err)
	}

	// One row per (user, flashcard key). Rows are upserted, never deleted.
	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS review_progress (
			user_key TEXT NOT NULL,
			card_key TEXT NOT NULL,
			last_reviewed TEXT,
			next_due TEXT,
			times_known INTEGER NOT NULL DEFAULT 0,
			correct_today INTEGER NOT NULL DEFAULT 0,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_key, card_key)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create review_progress table: %v", err)
	}

	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS streaks (
			user_key TEXT PRIMARY KEY,
			current INTEGER NOT NULL DEFAULT 0,
			record INTEGER NOT NULL DEFAULT 0,
			last_activity TEXT
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create streaks table: %v", err)
	}

	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS schema_meta (
			version INTEGER NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_meta table: %v", err)
	}

	return stampSchemaVersion()
}

// stampSchemaVersion records the current schema version on first run.
func stampSchemaVersion() error {
	var count int
	if err := DB.Get(&count, "SELECT COUNT(*) FROM schema_meta"); err != nil {
		return fmt.Errorf("failed to read schema version: %v", err)
	}
	if count > 0 {
		return nil
	}
	query := DB.Rebind("INSERT INTO schema_meta (version) VALUES (?)")
	if _, err := DB.Exec(query, SchemaVersion); err != nil {
		return fmt.Errorf("failed to stamp schema version: %v", err)
	}
	return nil
}
