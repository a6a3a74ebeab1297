package ops

import (
	"github.com/burnoutdv/epinames/internal/db"
	"github.com/burnoutdv/epinames/internal/errors"
	"github.com/burnoutdv/epinames/internal/render"
)

// RenderInput contains parameters for the Render operation.
type RenderInput struct {
	EpisodeID int64
}

// RenderedText is the rendered description of one episode.
type RenderedText struct {
	EpisodeID     int64  `json:"episode_id"`
	TemplateID    int64  `json:"template_id"`
	TemplateTitle string `json:"template_title,omitempty"`
	Text          string `json:"text"`
}

// RenderOutput contains the result of the Render operation.
type RenderOutput struct {
	// Item is nil when there is no renderable text: the episode has no
	// template assigned, or its reference no longer resolves. That is an
	// answer, not a failure; the caller decides how to surface it.
	Item *RenderedText `json:"item"`
}

// Render resolves an episode's template reference and substitutes the
// episode's fields into the pattern.
func Render(store *db.Store, input RenderInput) (*RenderOutput, error) {
	e, err := store.GetEpisode(input.EpisodeID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, errors.NewNotFound("episode", input.EpisodeID)
	}

	if e.TemplateID == nil {
		return &RenderOutput{Item: nil}, nil
	}
	tpl, err := store.GetTemplate(*e.TemplateID)
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		// Dangling weak reference; the episode stays valid regardless.
		return &RenderOutput{Item: nil}, nil
	}

	return &RenderOutput{Item: &RenderedText{
		EpisodeID:     input.EpisodeID,
		TemplateID:    *e.TemplateID,
		TemplateTitle: tpl.Title,
		Text:          render.Describe(tpl.Pattern, *e),
	}}, nil
}
