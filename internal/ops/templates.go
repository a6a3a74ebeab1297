package ops

import (
	"strings"

	"github.com/burnoutdv/epinames/internal/db"
	"github.com/burnoutdv/epinames/internal/episode"
	"github.com/burnoutdv/epinames/internal/errors"
)

// ListTemplatesOutput contains the result of the ListTemplates operation.
type ListTemplatesOutput struct {
	Items []TemplateView `json:"items"`
}

// ListTemplates returns every stored template.
func ListTemplates(store *db.Store) (*ListTemplatesOutput, error) {
	templates, err := store.ListTemplates()
	if err != nil {
		return nil, err
	}
	items := make([]TemplateView, 0, len(templates))
	for _, t := range templates {
		items = append(items, newTemplateView(t))
	}
	return &ListTemplatesOutput{Items: items}, nil
}

// GetTemplateOutput contains the result of the GetTemplate operation.
type GetTemplateOutput struct {
	Item *TemplateView `json:"item"` // nil when the id does not exist
}

// GetTemplate looks up one template. Absence is a nil item, not an error.
func GetTemplate(store *db.Store, id int64) (*GetTemplateOutput, error) {
	t, err := store.GetTemplate(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return &GetTemplateOutput{Item: nil}, nil
	}
	v := newTemplateView(*t)
	return &GetTemplateOutput{Item: &v}, nil
}

// SaveTemplateInput contains parameters for the SaveTemplate operation.
// A nil ID creates a new template; a non-nil ID updates the existing one.
type SaveTemplateInput struct {
	ID      *int64
	Title   string
	Pattern string
	Tags    string
}

// SaveTemplateOutput contains the result of the SaveTemplate operation.
type SaveTemplateOutput struct {
	ID int64 `json:"id"`
}

// SaveTemplate creates or updates a template. The pattern is stored as-is;
// unknown token markers are a forward-compatibility feature, not an error.
func SaveTemplate(store *db.Store, input SaveTemplateInput) (*SaveTemplateOutput, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, errors.NewInvalidRequest("title is required")
	}

	id, err := store.SaveTemplate(episode.Template{
		ID:      input.ID,
		Title:   title,
		Pattern: input.Pattern,
		Tags:    strings.TrimSpace(input.Tags),
	})
	if err != nil {
		return nil, err
	}
	return &SaveTemplateOutput{ID: id}, nil
}
