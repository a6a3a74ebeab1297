package ops

import (
	"strings"

	"github.com/burnoutdv/epinames/internal/config"
	"github.com/burnoutdv/epinames/internal/db"
	"github.com/burnoutdv/epinames/internal/episode"
	"github.com/burnoutdv/epinames/internal/errors"
)

// ListEpisodesInput contains parameters for the ListEpisodes operation.
type ListEpisodesInput struct {
	ProjectID  int64
	Descending bool
}

// ListEpisodesOutput contains the result of the ListEpisodes operation.
type ListEpisodesOutput struct {
	Items    []EpisodeView `json:"items"`
	HasParts bool          `json:"has_parts"`
}

// ListEpisodes returns one project's episodes ordered by primary counter,
// together with the part-column hint.
func ListEpisodes(store *db.Store, input ListEpisodesInput) (*ListEpisodesOutput, error) {
	if err := requireProjectID(input.ProjectID); err != nil {
		return nil, err
	}

	order := db.Ascending
	if input.Descending {
		order = db.Descending
	}
	episodes, err := store.ListEpisodes(input.ProjectID, order)
	if err != nil {
		return nil, err
	}
	hasParts, err := store.ProjectHasParts(input.ProjectID)
	if err != nil {
		return nil, err
	}

	items := make([]EpisodeView, 0, len(episodes))
	for _, e := range episodes {
		items = append(items, newEpisodeView(e))
	}
	return &ListEpisodesOutput{Items: items, HasParts: hasParts}, nil
}

// GetEpisodeOutput contains the result of the GetEpisode operation.
type GetEpisodeOutput struct {
	Item *EpisodeView `json:"item"` // nil when the id does not exist
}

// GetEpisode looks up one episode. Absence is a nil item, not an error.
func GetEpisode(store *db.Store, id int64) (*GetEpisodeOutput, error) {
	e, err := store.GetEpisode(id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return &GetEpisodeOutput{Item: nil}, nil
	}
	v := newEpisodeView(*e)
	return &GetEpisodeOutput{Item: &v}, nil
}

// LatestEpisodeOutput contains the result of the LatestEpisode operation.
type LatestEpisodeOutput struct {
	Item *EpisodeView `json:"item"` // nil if the project has no episodes
}

// LatestEpisode returns the episode with the highest primary counter of a
// project, or a nil item for a project without episodes.
func LatestEpisode(store *db.Store, projectID int64) (*LatestEpisodeOutput, error) {
	if err := requireProjectID(projectID); err != nil {
		return nil, err
	}
	e, err := store.LatestEpisode(projectID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return &LatestEpisodeOutput{Item: nil}, nil
	}
	v := newEpisodeView(*e)
	return &LatestEpisodeOutput{Item: &v}, nil
}

// NextEpisodeInput contains parameters for the NextEpisode operation.
type NextEpisodeInput struct {
	ProjectID   int64
	Title       string
	Session     *string
	Description *string
	ResetPart   bool

	// StartCounter seeds the first episode of an empty project. 0 falls
	// back to the configured start counter.
	StartCounter int

	// RecordedOn overrides the recording date, in display or ISO layout.
	// Unparseable input falls back to today rather than failing the edit.
	RecordedOn string

	// Draft skips persisting; the derived episode is returned for
	// further editing only.
	Draft bool
}

// NextEpisodeOutput contains the result of the NextEpisode operation.
type NextEpisodeOutput struct {
	Item  EpisodeView `json:"item"`
	First bool        `json:"first,omitempty"` // true when a shell was produced
	Draft bool        `json:"draft,omitempty"` // true when nothing was persisted
}

// NextEpisode produces the next episode of a project: a continuation of
// the latest episode when one exists, otherwise a first-episode shell.
// Unless Draft is set, the result is persisted in the same call.
func NextEpisode(store *db.Store, cfg *config.Config, input NextEpisodeInput) (*NextEpisodeOutput, error) {
	if err := requireProjectID(input.ProjectID); err != nil {
		return nil, err
	}
	p, err := store.GetProject(input.ProjectID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errors.NewNotFound("project", input.ProjectID)
	}

	prev, err := store.LatestEpisode(input.ProjectID)
	if err != nil {
		return nil, err
	}

	var (
		next  episode.Episode
		first bool
	)
	if prev != nil {
		next = episode.Continue(*prev, episode.ContinueOptions{
			Title:       input.Title,
			Session:     input.Session,
			Description: input.Description,
			ResetPart:   input.ResetPart,
		})
	} else {
		first = true
		start := input.StartCounter
		if start == 0 {
			start = cfg.StartCounter
		}
		next = episode.NewShell(input.ProjectID, start)
		next.Title = input.Title
		if input.Session != nil {
			next.Session = *input.Session
		}
		if input.Description != nil {
			next.Description = *input.Description
		}
	}

	if strings.TrimSpace(input.RecordedOn) != "" {
		next.RecordedOn = episode.ParseRecordingDate(input.RecordedOn)
	}

	if input.Draft {
		return &NextEpisodeOutput{Item: newEpisodeView(next), First: first, Draft: true}, nil
	}

	id, err := store.SaveEpisode(next)
	if err != nil {
		return nil, err
	}
	saved, err := store.GetEpisode(id)
	if err != nil {
		return nil, err
	}
	return &NextEpisodeOutput{Item: newEpisodeView(*saved), First: first}, nil
}

// SaveEpisodeInput contains parameters for the SaveEpisode operation.
// A nil ID creates a new episode; a non-nil ID updates the existing one.
type SaveEpisodeInput struct {
	ID          *int64
	ProjectID   int64
	TemplateID  *int64
	Title       string
	Counter     int
	Part        int
	Session     string
	Description string

	// RecordedOn in display or ISO layout; unparseable or empty input
	// falls back to today.
	RecordedOn string
}

// SaveEpisodeOutput contains the result of the SaveEpisode operation.
type SaveEpisodeOutput struct {
	ID int64 `json:"id"`
}

// SaveEpisode creates or updates an episode.
func SaveEpisode(store *db.Store, input SaveEpisodeInput) (*SaveEpisodeOutput, error) {
	if err := requireProjectID(input.ProjectID); err != nil {
		return nil, err
	}

	recorded := episode.Today()
	if strings.TrimSpace(input.RecordedOn) != "" {
		recorded = episode.ParseRecordingDate(input.RecordedOn)
	} else if input.ID != nil {
		// An edit that does not mention the date keeps the stored one.
		existing, err := store.GetEpisode(*input.ID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			recorded = existing.RecordedOn
		}
	}

	id, err := store.SaveEpisode(episode.Episode{
		ID:          input.ID,
		ProjectID:   input.ProjectID,
		TemplateID:  input.TemplateID,
		Title:       input.Title,
		Counter:     input.Counter,
		Part:        input.Part,
		Session:     input.Session,
		Description: input.Description,
		RecordedOn:  recorded,
	})
	if err != nil {
		return nil, err
	}
	return &SaveEpisodeOutput{ID: id}, nil
}

// AssignTemplateInput contains parameters for the AssignTemplate operation.
type AssignTemplateInput struct {
	EpisodeID int64

	// TemplateID is the template to assign; nil clears the assignment.
	TemplateID *int64
}

// AssignTemplateOutput contains the result of the AssignTemplate operation.
type AssignTemplateOutput struct {
	Item EpisodeView `json:"item"`
}

// AssignTemplate sets or clears an episode's template reference. This is
// the only way the reference changes; continuation always carries it over
// untouched.
func AssignTemplate(store *db.Store, input AssignTemplateInput) (*AssignTemplateOutput, error) {
	e, err := store.GetEpisode(input.EpisodeID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, errors.NewNotFound("episode", input.EpisodeID)
	}

	if input.TemplateID != nil {
		tpl, err := store.GetTemplate(*input.TemplateID)
		if err != nil {
			return nil, err
		}
		if tpl == nil {
			return nil, errors.NewNotFound("template", *input.TemplateID)
		}
	}

	e.TemplateID = input.TemplateID
	if _, err := store.SaveEpisode(*e); err != nil {
		return nil, err
	}

	saved, err := store.GetEpisode(input.EpisodeID)
	if err != nil {
		return nil, err
	}
	return &AssignTemplateOutput{Item: newEpisodeView(*saved)}, nil
}
