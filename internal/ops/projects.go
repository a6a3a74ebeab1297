package ops

import (
	"strings"

	"github.com/burnoutdv/epinames/internal/db"
	"github.com/burnoutdv/epinames/internal/episode"
	"github.com/burnoutdv/epinames/internal/errors"
)

// ListProjectsInput contains parameters for the ListProjects operation.
type ListProjectsInput struct {
	// ByActivity orders the result by recent episode activity per
	// category instead of plain id order.
	ByActivity bool
}

// ListProjectsOutput contains the result of the ListProjects operation.
type ListProjectsOutput struct {
	Items []ProjectView `json:"items"`
}

// ListProjects returns all projects. An empty store yields an empty item
// list, which callers must distinguish from a failed lookup.
func ListProjects(store *db.Store, input ListProjectsInput) (*ListProjectsOutput, error) {
	var (
		projects []episode.Project
		err      error
	)
	if input.ByActivity {
		projects, err = store.ListProjectsByActivity()
	} else {
		projects, err = store.ListProjects()
	}
	if err != nil {
		return nil, err
	}

	items := make([]ProjectView, 0, len(projects))
	for _, p := range projects {
		items = append(items, newProjectView(p))
	}
	return &ListProjectsOutput{Items: items}, nil
}

// GetProjectOutput contains the result of the GetProject operation.
type GetProjectOutput struct {
	Item *ProjectView `json:"item"` // nil when the id does not exist
}

// GetProject looks up one project. Absence is a nil item, not an error.
func GetProject(store *db.Store, id int64) (*GetProjectOutput, error) {
	p, err := store.GetProject(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return &GetProjectOutput{Item: nil}, nil
	}
	v := newProjectView(*p)
	return &GetProjectOutput{Item: &v}, nil
}

// SaveProjectInput contains parameters for the SaveProject operation.
// A nil ID creates a new project; a non-nil ID updates the existing one.
type SaveProjectInput struct {
	ID          *int64
	Title       string
	Category    string
	Description string
}

// SaveProjectOutput contains the result of the SaveProject operation.
type SaveProjectOutput struct {
	ID        int64 `json:"id"`
	Unchanged bool  `json:"unchanged,omitempty"`
}

// SaveProject creates or updates a project. An update whose business
// fields equal the stored ones is skipped entirely so the modification
// timestamp is not bumped for a no-op edit.
func SaveProject(store *db.Store, input SaveProjectInput) (*SaveProjectOutput, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, errors.NewInvalidRequest("title is required")
	}

	p := episode.Project{
		ID:          input.ID,
		Title:       title,
		Category:    strings.TrimSpace(input.Category),
		Description: input.Description,
	}
	if p.Category == "" {
		p.Category = episode.DefaultCategory
	}

	if input.ID != nil {
		existing, err := store.GetProject(*input.ID)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.EqualContent(p) {
			return &SaveProjectOutput{ID: *input.ID, Unchanged: true}, nil
		}
	}

	id, err := store.SaveProject(p)
	if err != nil {
		return nil, err
	}
	return &SaveProjectOutput{ID: id}, nil
}

// ListCategoriesInput contains parameters for the ListCategories operation.
type ListCategoriesInput struct {
	// ByActivity orders categories by recent episode activity.
	ByActivity bool
}

// ListCategoriesOutput contains the result of the ListCategories operation.
type ListCategoriesOutput struct {
	Items []string `json:"items"`
}

// ListCategories returns the distinct project categories.
func ListCategories(store *db.Store, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	var (
		categories []string
		err        error
	)
	if input.ByActivity {
		categories, err = store.ListCategoriesByActivity()
	} else {
		categories, err = store.ListCategories()
	}
	if err != nil {
		return nil, err
	}
	return &ListCategoriesOutput{Items: categories}, nil
}

// HasPartsOutput contains the result of the ProjectHasParts operation.
type HasPartsOutput struct {
	HasParts bool `json:"has_parts"`
}

// ProjectHasParts reports whether any episode of the project uses the
// secondary counter; front ends use it to decide whether the part column
// is worth showing. Always a definite answer, false for empty projects.
func ProjectHasParts(store *db.Store, projectID int64) (*HasPartsOutput, error) {
	if err := requireProjectID(projectID); err != nil {
		return nil, err
	}
	has, err := store.ProjectHasParts(projectID)
	if err != nil {
		return nil, err
	}
	return &HasPartsOutput{HasParts: has}, nil
}
