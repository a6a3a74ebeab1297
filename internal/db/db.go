// Package db implements the SQLite persistence layer for projects,
// episodes, templates and settings. All lookups that can legitimately find
// nothing return a nil projection and a nil error; errors are reserved for
// storage faults.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"github.com/burnoutdv/epinames/internal/config"
)

// CurrentSchemaVersion is the latest schema version.
// Bump this when adding migrations.
const CurrentSchemaVersion = 1

// Store owns the database connection and the exclusive-instance lock.
// The store is treated as exclusively owned by one process for the
// session's duration; the flock enforces that.
type Store struct {
	db   *sql.DB
	lock *flock.Flock
	path string
}

// Open initializes the SQLite database at baseDir/epinames.db and acquires
// the instance lock. The baseDir parameter allows tests to use t.TempDir()
// instead of ~/.epinames.
func Open(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	_ = os.Chmod(baseDir, 0700)

	exportsDir := filepath.Join(baseDir, "exports")
	if err := os.MkdirAll(exportsDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create exports directory: %w", err)
	}

	lock := flock.New(filepath.Join(baseDir, "epinames.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire store lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("store at %s is in use by another process", baseDir)
	}

	dbPath := filepath.Join(baseDir, "epinames.db")
	dsn := dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db, lock: lock, path: dbPath}

	if err := migrate(db); err != nil {
		store.Close()
		return nil, err
	}

	_ = os.Chmod(dbPath, 0600)

	return store, nil
}

// Close closes the database connection and releases the instance lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var firstErr error
	if s.db != nil {
		firstErr = s.db.Close()
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ConfigurePool applies connection pool settings from config.
// Only sets limits if explicitly configured (non-zero values).
func (s *Store) ConfigurePool(cfg *config.Config) {
	if cfg == nil {
		return
	}
	if cfg.DBMaxOpenConns > 0 {
		s.db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	}
	if cfg.DBMaxIdleConns > 0 {
		s.db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	}
}

// migrate applies schema migrations based on user_version.
func migrate(db *sql.DB) error {
	version, err := getUserVersion(db)
	if err != nil {
		return err
	}

	// Migration 0 -> 1: Initial schema (v1)
	if version < 1 {
		schema := `
		CREATE TABLE IF NOT EXISTS projects (
		  id          INTEGER PRIMARY KEY AUTOINCREMENT,
		  title       TEXT NOT NULL,
		  category    TEXT NOT NULL DEFAULT 'default',
		  description TEXT NOT NULL DEFAULT '',
		  created_at  INTEGER NOT NULL,
		  updated_at  INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS episodes (
		  id          INTEGER PRIMARY KEY AUTOINCREMENT,
		  project_id  INTEGER NOT NULL REFERENCES projects(id),
		  template_id INTEGER,
		  title       TEXT NOT NULL DEFAULT '',
		  counter     INTEGER NOT NULL,
		  part        INTEGER NOT NULL DEFAULT 0,
		  session     TEXT NOT NULL DEFAULT '',
		  description TEXT NOT NULL DEFAULT '',
		  recorded_on TEXT NOT NULL,
		  created_at  INTEGER NOT NULL,
		  updated_at  INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS templates (
		  id         INTEGER PRIMARY KEY AUTOINCREMENT,
		  title      TEXT NOT NULL,
		  pattern    TEXT NOT NULL,
		  tags       TEXT NOT NULL DEFAULT '',
		  created_at INTEGER NOT NULL,
		  updated_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS settings (
		  key   TEXT PRIMARY KEY,
		  value TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_episodes_project_counter
		ON episodes(project_id, counter DESC);

		CREATE INDEX IF NOT EXISTS idx_projects_category
		ON projects(category);
		`
		// template_id is deliberately not a foreign key: the reference is
		// weak, and deleting a template must never touch episodes.
		if _, err := db.Exec(schema); err != nil {
			return fmt.Errorf("migration 1 failed: %w", err)
		}
		if err := setUserVersion(db, 1); err != nil {
			return err
		}
	}

	// Future migrations go here:
	// if version < 2 { ... }

	return nil
}

// getUserVersion returns the current schema version (user_version pragma).
func getUserVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version;").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get user_version: %w", err)
	}
	return version, nil
}

// setUserVersion sets the schema version (user_version pragma).
func setUserVersion(db *sql.DB, version int) error {
	_, err := db.Exec(fmt.Sprintf("PRAGMA user_version=%d", version))
	if err != nil {
		return fmt.Errorf("failed to set user_version: %w", err)
	}
	return nil
}
