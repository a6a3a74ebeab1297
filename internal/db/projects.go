package db

import (
	"database/sql"
	"time"

	"github.com/burnoutdv/epinames/internal/episode"
	"github.com/burnoutdv/epinames/internal/errors"
)

const projectColumns = "id, title, category, description, created_at, updated_at"

// GetProject retrieves a project by id. Returns (nil, nil) when no project
// with that id exists.
func (s *Store) GetProject(id int64) (*episode.Project, error) {
	row := s.db.QueryRow(
		"SELECT "+projectColumns+" FROM projects WHERE id = ?", id)

	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return p, nil
}

// ListProjects returns all projects. The order is unspecified beyond being
// stable (insertion order); an empty store yields an empty slice, never an
// absence signal.
func (s *Store) ListProjects() ([]episode.Project, error) {
	rows, err := s.db.Query(
		"SELECT " + projectColumns + " FROM projects ORDER BY id")
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()
	return collectProjects(rows)
}

// ListProjectsByActivity returns all projects grouped by category, with
// categories ordered by their most recent episode modification, newest
// first. Categories with no episodes sort after all active categories,
// then alphabetically; within a category projects keep id order. The
// ordering is stable so callers can diff successive results.
func (s *Store) ListProjectsByActivity() ([]episode.Project, error) {
	rows, err := s.db.Query(`
		SELECT p.id, p.title, p.category, p.description, p.created_at, p.updated_at
		FROM projects p
		LEFT JOIN (
			SELECT pr.category AS category, MAX(e.updated_at) AS last_activity
			FROM projects pr
			JOIN episodes e ON e.project_id = pr.id
			GROUP BY pr.category
		) act ON act.category = p.category
		ORDER BY act.last_activity IS NULL, act.last_activity DESC, p.category, p.id
	`)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()
	return collectProjects(rows)
}

// ListCategories returns every category present among projects, duplicate
// free, in unspecified order.
func (s *Store) ListCategories() ([]string, error) {
	return s.collectCategories(
		"SELECT DISTINCT category FROM projects ORDER BY category")
}

// ListCategoriesByActivity returns the distinct categories ordered by their
// most recent episode modification, newest first; categories with no
// episodes sort last, then alphabetically.
func (s *Store) ListCategoriesByActivity() ([]string, error) {
	return s.collectCategories(`
		SELECT p.category
		FROM projects p
		LEFT JOIN episodes e ON e.project_id = p.id
		GROUP BY p.category
		ORDER BY MAX(e.updated_at) IS NULL, MAX(e.updated_at) DESC, p.category
	`)
}

// SaveProject inserts or updates a project depending on whether it carries
// an identifier, and returns the affected id. Updating a nonexistent id is
// a no-op by contract; the given id is returned unchanged.
func (s *Store) SaveProject(p episode.Project) (int64, error) {
	now := time.Now().Unix()

	if p.ID == nil {
		category := p.Category
		if category == "" {
			category = episode.DefaultCategory
		}
		res, err := s.db.Exec(`
			INSERT INTO projects (title, category, description, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)
		`, p.Title, category, p.Description, now, now)
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
		UPDATE projects
		SET title = ?, category = ?, description = ?, updated_at = ?
		WHERE id = ?
	`, p.Title, p.Category, p.Description, now, *p.ID)
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	return *p.ID, nil
}

// collectCategories runs a single-column category query.
func (s *Store) collectCategories(query string) ([]string, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	categories := make([]string, 0)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, errors.NewInternal(err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return categories, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanProject scans a single row into a Project projection.
func scanProject(row rowScanner) (*episode.Project, error) {
	var (
		p  episode.Project
		id int64
	)
	err := row.Scan(&id, &p.Title, &p.Category, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.ID = &id
	return &p, nil
}

// collectProjects drains a project query into a slice.
func collectProjects(rows *sql.Rows) ([]episode.Project, error) {
	projects := make([]episode.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return projects, nil
}
