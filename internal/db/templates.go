package db

import (
	"database/sql"
	"time"

	"github.com/burnoutdv/epinames/internal/episode"
	"github.com/burnoutdv/epinames/internal/errors"
)

const templateColumns = "id, title, pattern, tags, created_at, updated_at"

// GetTemplate retrieves a template by id. Returns (nil, nil) when no
// template with that id exists; a dangling episode reference resolves to
// absence, never a fault.
func (s *Store) GetTemplate(id int64) (*episode.Template, error) {
	row := s.db.QueryRow(
		"SELECT "+templateColumns+" FROM templates WHERE id = ?", id)

	t, err := scanTemplate(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return t, nil
}

// ListTemplates returns all stored templates. There is no sentinel or
// placeholder row: "no template" is expressed by a nil reference on the
// episode, not by a reserved id.
func (s *Store) ListTemplates() ([]episode.Template, error) {
	rows, err := s.db.Query(
		"SELECT " + templateColumns + " FROM templates ORDER BY id")
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	templates := make([]episode.Template, 0)
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		templates = append(templates, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return templates, nil
}

// SaveTemplate inserts or updates a template depending on whether it
// carries an identifier, and returns the affected id.
func (s *Store) SaveTemplate(t episode.Template) (int64, error) {
	now := time.Now().Unix()

	if t.ID == nil {
		res, err := s.db.Exec(`
			INSERT INTO templates (title, pattern, tags, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)
		`, t.Title, t.Pattern, t.Tags, now, now)
		if err != nil {
			return 0, errors.NewInternal(err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, errors.NewInternal(err)
		}
		return id, nil
	}

	_, err := s.db.Exec(`
		UPDATE templates
		SET title = ?, pattern = ?, tags = ?, updated_at = ?
		WHERE id = ?
	`, t.Title, t.Pattern, t.Tags, now, *t.ID)
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	return *t.ID, nil
}

// SearchTemplates returns templates whose title or tags contain the query,
// case-insensitive, ordered by id.
func (s *Store) SearchTemplates(query string) ([]episode.Template, error) {
	like := "%" + escapeLike(query) + "%"
	rows, err := s.db.Query(
		"SELECT "+templateColumns+` FROM templates
		 WHERE title LIKE ? ESCAPE '\' OR tags LIKE ? ESCAPE '\'
		 ORDER BY id`, like, like)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	templates := make([]episode.Template, 0)
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		templates = append(templates, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return templates, nil
}

// scanTemplate scans a single row into a Template projection.
func scanTemplate(row rowScanner) (*episode.Template, error) {
	var (
		t  episode.Template
		id int64
	)
	err := row.Scan(&id, &t.Title, &t.Pattern, &t.Tags, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.ID = &id
	return &t, nil
}
