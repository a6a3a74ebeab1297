package db

import (
	"database/sql"

	"github.com/burnoutdv/epinames/internal/errors"
)

// GetSetting retrieves a setting value by key. An unset key yields the
// empty string, not an error.
func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", errors.NewInternal(err)
	}
	return value, nil
}

// SetSetting stores a setting value, replacing any previous one.
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}
