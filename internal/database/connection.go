package database

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Config holds database connection settings
type Config struct {
	// Type selects the driver: "sqlite" (default) or "postgres"
	Type string
	// DSN is the connection string, or the file path for sqlite
	DSN string
}

// ConfigFromEnv builds a Config from DB_TYPE and DATABASE_URL
func ConfigFromEnv() Config {
	cfg := Config{
		Type: os.Getenv("DB_TYPE"),
		DSN:  os.Getenv("DATABASE_URL"),
	}
	if cfg.Type == "" {
		cfg.Type = "sqlite"
	}
	if cfg.DSN == "" && cfg.Type == "sqlite" {
		cfg.DSN = filepath.Join("data", "estudaqui.db")
	}
	return cfg
}

// Connect opens the database, applies connection settings, creates the schema
// and runs pending column migrations. The returned handle is owned by the
// caller and injected into the repositories; nothing is stored globally.
func Connect(cfg Config) (*sqlx.DB, error) {
	var db *sqlx.DB
	var err error

	switch cfg.Type {
	case "postgres":
		db, err = sqlx.Connect("postgres", cfg.DSN)
	default:
		if dir := filepath.Dir(cfg.DSN); dir != "" && dir != "." && cfg.DSN != ":memory:" {
			if mkErr := os.MkdirAll(dir, 0755); mkErr != nil {
				return nil, fmt.Errorf("failed to create data directory: %w", mkErr)
			}
		}
		db, err = sqlx.Connect("sqlite3", cfg.DSN)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if db.DriverName() == "sqlite3" {
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	if err := initializeSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema(db *sqlx.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS subjects (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS topics (
			id TEXT PRIMARY KEY,
			subject_id TEXT NOT NULL,
			name TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (subject_id) REFERENCES subjects(id)
		)`,
		`CREATE TABLE IF NOT EXISTS questions (
			id TEXT PRIMARY KEY,
			topic_id TEXT NOT NULL,
			prompt TEXT NOT NULL,
			answer TEXT NOT NULL DEFAULT '',
			difficulty TEXT NOT NULL DEFAULT 'medium',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (topic_id) REFERENCES topics(id)
		)`,
		`CREATE TABLE IF NOT EXISTS review_schedules (
			id TEXT PRIMARY KEY,
			item_type TEXT NOT NULL,
			item_id TEXT NOT NULL,
			topic_id TEXT NOT NULL DEFAULT '',
			subject_id TEXT NOT NULL DEFAULT '',
			repetitions INTEGER NOT NULL DEFAULT 0,
			interval_days INTEGER NOT NULL DEFAULT 1,
			ease_factor REAL NOT NULL DEFAULT 2.5,
			correct_streak INTEGER NOT NULL DEFAULT 0,
			last_review TIMESTAMP,
			next_review_at TIMESTAMP NOT NULL,
			last_result INTEGER NOT NULL DEFAULT 0,
			last_confidence TEXT NOT NULL DEFAULT '',
			last_room TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (item_type, item_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_review_schedules_next_review
			ON review_schedules (next_review_at)`,
		`CREATE INDEX IF NOT EXISTS idx_review_schedules_subject
			ON review_schedules (subject_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}

// migrate applies additive column migrations for databases created before the
// columns existed. It runs once at connect time, before any scheduling logic.
func migrate(db *sqlx.DB) error {
	alters := []string{
		`ALTER TABLE review_schedules ADD COLUMN correct_streak INTEGER NOT NULL DEFAULT 0`,
		`ALTER TABLE review_schedules ADD COLUMN last_confidence TEXT NOT NULL DEFAULT ''`,
		`ALTER TABLE review_schedules ADD COLUMN last_room TEXT NOT NULL DEFAULT ''`,
	}
	for _, stmt := range alters {
		if _, err := db.Exec(stmt); err != nil {
			if isDuplicateColumn(err) {
				continue
			}
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}
	return nil
}

// isDuplicateColumn matches the sqlite and postgres flavors of the error an
// ALTER TABLE ADD COLUMN returns when the column is already present. Other
// migration failures must not be swallowed, so the match is exact: postgres
// error code 42701 (duplicate_column) and sqlite's "duplicate column name".
func isDuplicateColumn(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "42701"
	}
	return strings.Contains(err.Error(), "duplicate column name")
}
