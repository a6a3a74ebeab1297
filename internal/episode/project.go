package episode

// Project represents a named content series that groups episodes.
// A nil ID means the project has not been persisted yet.
type Project struct {
	// ID is the database identifier (nil until persisted)
	ID *int64

	// Title is the series name (required, non-empty)
	Title string

	// Category is a free-text grouping label, "default" when unset
	Category string

	// Description is free text
	Description string

	// CreatedAt is the Unix timestamp when the project was created
	CreatedAt int64

	// UpdatedAt is the Unix timestamp when the project was last updated
	UpdatedAt int64
}

// DefaultCategory is used when a project is created without an explicit
// category.
const DefaultCategory = "default"

// Persisted reports whether the project has a database identifier.
func (p Project) Persisted() bool {
	return p.ID != nil
}

// EqualContent compares the business fields of two projects: title,
// category and description. Identifiers and timestamps are deliberately
// excluded so callers can detect "no real change" before writing an edit.
func (p Project) EqualContent(other Project) bool {
	return p.Title == other.Title &&
		p.Category == other.Category &&
		p.Description == other.Description
}
