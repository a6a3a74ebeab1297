package db

import (
	"database/sql"
	"strings"
	"time"

	"github.com/burnoutdv/epinames/internal/episode"
	"github.com/burnoutdv/epinames/internal/errors"
)

// Order selects the primary-counter ordering of episode listings.
type Order string

const (
	Ascending  Order = "ASC"
	Descending Order = "DESC"
)

// episodeColumns joins against templates for the denormalized template
// title; the LEFT JOIN keeps episodes without a template (or with a
// dangling reference) in the result, title left empty.
const episodeColumns = `
	e.id, e.project_id, e.template_id, e.title, e.counter, e.part,
	e.session, e.description, e.recorded_on, COALESCE(t.title, ''),
	e.created_at, e.updated_at
`

const episodeFrom = `
	FROM episodes e
	LEFT JOIN templates t ON t.id = e.template_id
`

// GetEpisode retrieves an episode by id. Returns (nil, nil) when no
// episode with that id exists.
func (s *Store) GetEpisode(id int64) (*episode.Episode, error) {
	row := s.db.QueryRow(
		"SELECT "+episodeColumns+episodeFrom+" WHERE e.id = ?", id)

	e, err := scanEpisode(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return e, nil
}

// ListEpisodes returns the episodes of one project ordered by primary
// counter. An unknown order value falls back to ascending.
func (s *Store) ListEpisodes(projectID int64, order Order) ([]episode.Episode, error) {
	direction := "ASC"
	if order == Descending {
		direction = "DESC"
	}

	rows, err := s.db.Query(
		"SELECT "+episodeColumns+episodeFrom+
			" WHERE e.project_id = ? ORDER BY e.counter "+direction+", e.id "+direction,
		projectID)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	episodes := make([]episode.Episode, 0)
	for rows.Next() {
		e, err := scanEpisode(rows)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		episodes = append(episodes, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return episodes, nil
}

// SearchEpisodes returns the episodes of one project whose title contains
// the query, case-insensitive, in ascending counter order.
func (s *Store) SearchEpisodes(projectID int64, query string) ([]episode.Episode, error) {
	like := "%" + escapeLike(query) + "%"
	rows, err := s.db.Query(
		"SELECT "+episodeColumns+episodeFrom+
			` WHERE e.project_id = ? AND e.title LIKE ? ESCAPE '\'
			 ORDER BY e.counter ASC, e.id ASC`, projectID, like)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	episodes := make([]episode.Episode, 0)
	for rows.Next() {
		e, err := scanEpisode(rows)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		episodes = append(episodes, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return episodes, nil
}

// escapeLike escapes LIKE wildcards in user-supplied search text.
func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)
	return replacer.Replace(s)
}

// LatestEpisode returns the episode with the maximum primary counter within
// the project, or (nil, nil) if the project has no episodes. "Latest" is
// defined by the counter, not by insertion order.
func (s *Store) LatestEpisode(projectID int64) (*episode.Episode, error) {
	row := s.db.QueryRow(
		"SELECT "+episodeColumns+episodeFrom+
			" WHERE e.project_id = ? ORDER BY e.counter DESC, e.id DESC LIMIT 1",
		projectID)

	e, err := scanEpisode(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return e, nil
}

// ProjectHasParts reports whether at least one episode of the project has a
// running part counter. A project with zero episodes answers false.
func (s *Store) ProjectHasParts(projectID int64) (bool, error) {
	var one int
	err := s.db.QueryRow(
		"SELECT 1 FROM episodes WHERE project_id = ? AND part > 0 LIMIT 1",
		projectID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, errors.NewInternal(err)
	}
	return true, nil
}

// SaveEpisode inserts or updates an episode depending on whether it carries
// an identifier, and returns the affected id. The denormalized template
// title is never written; it is recomputed on read.
func (s *Store) SaveEpisode(e episode.Episode) (int64, error) {
	now := time.Now().Unix()
	recordedOn := e.RecordedOn.Format(episode.StorageDateFormat)
	templateID := toNullInt64(e.TemplateID)

	if e.ID == nil {
		res, err := s.db.Exec(`
			INSERT INTO episodes (
				project_id, template_id, title, counter, part,
				session, description, recorded_on, created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, e.ProjectID, templateID, e.Title, e.Counter, e.Part,
			e.Session, e.Description, recordedOn, now, now)
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
		UPDATE episodes
		SET project_id = ?, template_id = ?, title = ?, counter = ?, part = ?,
			session = ?, description = ?, recorded_on = ?, updated_at = ?
		WHERE id = ?
	`, e.ProjectID, templateID, e.Title, e.Counter, e.Part,
		e.Session, e.Description, recordedOn, now, *e.ID)
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	return *e.ID, nil
}

// scanEpisode scans a single row into an Episode projection.
func scanEpisode(row rowScanner) (*episode.Episode, error) {
	var (
		e          episode.Episode
		id         int64
		templateID sql.NullInt64
		recordedOn string
	)
	err := row.Scan(
		&id, &e.ProjectID, &templateID, &e.Title, &e.Counter, &e.Part,
		&e.Session, &e.Description, &recordedOn, &e.TemplateTitle,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.ID = &id
	e.TemplateID = fromNullInt64(templateID)
	e.RecordedOn, err = time.Parse(episode.StorageDateFormat, recordedOn)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// toNullInt64 converts a *int64 to sql.NullInt64.
func toNullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

// fromNullInt64 converts a sql.NullInt64 to *int64.
func fromNullInt64(nv sql.NullInt64) *int64 {
	if !nv.Valid {
		return nil
	}
	return &nv.Int64
}
