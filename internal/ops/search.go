package ops

import (
	"strings"

	"github.com/burnoutdv/epinames/internal/db"
	"github.com/burnoutdv/epinames/internal/errors"
)

// SearchInput contains parameters for the Search operation.
type SearchInput struct {
	// Query is matched case-insensitively as a substring.
	Query string

	// ProjectID switches the search to episode titles within that
	// project; 0 searches template titles and tags instead.
	ProjectID int64
}

// SearchOutput contains the result of the Search operation. Exactly one of
// the item lists is populated, depending on the search scope.
type SearchOutput struct {
	Templates []TemplateView `json:"templates,omitempty"`
	Episodes  []EpisodeView  `json:"episodes,omitempty"`
	Total     int            `json:"total"`
}

// Search finds templates by title or tag, or episodes by title within one
// project. No hits is an empty result, not an error.
func Search(store *db.Store, input SearchInput) (*SearchOutput, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, errors.NewInvalidRequest("query is required")
	}

	if input.ProjectID > 0 {
		episodes, err := store.SearchEpisodes(input.ProjectID, query)
		if err != nil {
			return nil, err
		}
		items := make([]EpisodeView, 0, len(episodes))
		for _, e := range episodes {
			items = append(items, newEpisodeView(e))
		}
		return &SearchOutput{Episodes: items, Total: len(items)}, nil
	}

	templates, err := store.SearchTemplates(query)
	if err != nil {
		return nil, err
	}
	items := make([]TemplateView, 0, len(templates))
	for _, t := range templates {
		items = append(items, newTemplateView(t))
	}
	return &SearchOutput{Templates: items, Total: len(items)}, nil
}
