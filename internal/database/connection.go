package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/example/vocabkeep/internal/config"
)

// DB wraps the sqlx handle. Repositories receive it explicitly; there is
// no package-global connection.
type DB struct {
	*sqlx.DB
}

// Connect opens the configured database and, for sqlite, bootstraps the
// schema. PostgreSQL schemas are managed by external migrations.
func Connect(cfg *config.Config) (*DB, error) {
	switch cfg.DBType {
	case "postgres", "postgresql":
		db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %v", err)
		}
		return &DB{DB: db}, nil

	case "sqlite", "sqlite3", "":
		path := cfg.DBPath
		if path == "" {
			path = config.DefaultDBPath
		}
		if path != ":memory:" {
			if dir := filepath.Dir(path); dir != "." {
				if err := os.MkdirAll(dir, 0755); err != nil {
					return nil, fmt.Errorf("failed to create data directory: %v", err)
				}
			}
		}

		db, err := sqlx.Connect("sqlite3", path)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %v", err)
		}

		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return nil, fmt.Errorf("failed to enable foreign keys: %v", err)
		}

		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)

		wrapped := &DB{DB: db}
		if err := wrapped.initializeSchema(); err != nil {
			return nil, err
		}
		return wrapped, nil

	default:
		return nil, fmt.Errorf("unsupported DB_TYPE: %s", cfg.DBType)
	}
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

// initializeSchema creates necessary tables if they don't exist
func (db *DB) initializeSchema() error {
	// Create categories table
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS categories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			word_count INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create categories table: %v", err)
	}

	// Create words table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS words (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			word TEXT NOT NULL,
			translation TEXT NOT NULL,
			example_sentence TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT 'Uncategorized',
			image_file TEXT,
			review_count INTEGER NOT NULL DEFAULT 0,
			srs_interval INTEGER NOT NULL DEFAULT 0,
			srs_repetitions INTEGER NOT NULL DEFAULT 0,
			srs_ease_factor REAL NOT NULL DEFAULT 2.5,
			next_review_date TIMESTAMP,
			last_reviewed TIMESTAMP,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(word, category)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create words table: %v", err)
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_words_due ON words(review_count, next_review_date)`)
	if err != nil {
		return fmt.Errorf("failed to create words index: %v", err)
	}

	// Create daily_study_log table (append-only activity ledger)
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS daily_study_log (
			date TEXT PRIMARY KEY,
			review_count INTEGER NOT NULL DEFAULT 0
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create daily_study_log table: %v", err)
	}

	// Create daily_word_reviews table. The composite primary key is what
	// makes the per-word-per-day credit a single atomic insert-or-noop.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS daily_word_reviews (
			word_id INTEGER NOT NULL,
			review_date TEXT NOT NULL,
			PRIMARY KEY (word_id, review_date)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create daily_word_reviews table: %v", err)
	}

	// Create word_history table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS word_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			word_id INTEGER NOT NULL,
			word TEXT NOT NULL,
			translation TEXT NOT NULL,
			example_sentence TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL,
			modification_type TEXT NOT NULL DEFAULT 'updated',
			modified_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create word_history table: %v", err)
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_word_history_word ON word_history(word_id, modified_at)`)
	if err != nil {
		return fmt.Errorf("failed to create word_history index: %v", err)
	}

	return nil
}
