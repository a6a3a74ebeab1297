// Package ops implements the operation layer consumed by the CLI and the
// MCP tool surface. Each operation takes an Input struct, talks to the
// store and the pure engines, and returns an Output struct ready for JSON
// serialization. This package is the entire boundary a front end may call.
package ops

import (
	"strconv"

	"github.com/burnoutdv/epinames/internal/db"
	"github.com/burnoutdv/epinames/internal/episode"
	"github.com/burnoutdv/epinames/internal/errors"
)

// settingCurrentProject remembers the CLI's last used project so bare
// invocations can omit the project flag.
const settingCurrentProject = "current_project"

// ProjectView is the JSON-facing shape of a project projection.
type ProjectView struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	CreatedAt   int64  `json:"created_at"`
	UpdatedAt   int64  `json:"updated_at"`
}

// EpisodeView is the JSON-facing shape of an episode projection. The
// recording date uses the display layout (dd.mm.yyyy).
type EpisodeView struct {
	ID            int64  `json:"id"`
	ProjectID     int64  `json:"project_id"`
	TemplateID    *int64 `json:"template_id,omitempty"`
	TemplateTitle string `json:"template_title,omitempty"`
	Title         string `json:"title"`
	Counter       int    `json:"counter"`
	Part          int    `json:"part"`
	Session       string `json:"session,omitempty"`
	Description   string `json:"description,omitempty"`
	RecordedOn    string `json:"recorded_on"`
	CreatedAt     int64  `json:"created_at"`
	UpdatedAt     int64  `json:"updated_at"`
}

// TemplateView is the JSON-facing shape of a template projection.
type TemplateView struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Pattern   string `json:"pattern"`
	Tags      string `json:"tags,omitempty"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

func newProjectView(p episode.Project) ProjectView {
	v := ProjectView{
		Title:       p.Title,
		Category:    p.Category,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.ID != nil {
		v.ID = *p.ID
	}
	return v
}

func newEpisodeView(e episode.Episode) EpisodeView {
	v := EpisodeView{
		ProjectID:     e.ProjectID,
		TemplateID:    e.TemplateID,
		TemplateTitle: e.TemplateTitle,
		Title:         e.Title,
		Counter:       e.Counter,
		Part:          e.Part,
		Session:       e.Session,
		Description:   e.Description,
		RecordedOn:    e.RecordedOn.Format(episode.DisplayDateFormat),
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
	if e.ID != nil {
		v.ID = *e.ID
	}
	return v
}

func newTemplateView(t episode.Template) TemplateView {
	v := TemplateView{
		Title:     t.Title,
		Pattern:   t.Pattern,
		Tags:      t.Tags,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
	if t.ID != nil {
		v.ID = *t.ID
	}
	return v
}

// requireProjectID rejects a missing or nonsensical project reference.
func requireProjectID(id int64) error {
	if id <= 0 {
		return errors.NewInvalidRequest("project_id is required")
	}
	return nil
}

// CurrentProject returns the remembered project id, or 0 when none is set.
func CurrentProject(store *db.Store) (int64, error) {
	value, err := store.GetSetting(settingCurrentProject)
	if err != nil {
		return 0, err
	}
	if value == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		// A corrupted value behaves like "nothing remembered".
		return 0, nil
	}
	return id, nil
}

// RememberProject stores the project id used by the last CLI invocation.
func RememberProject(store *db.Store, id int64) error {
	return store.SetSetting(settingCurrentProject, strconv.FormatInt(id, 10))
}
