package episode

// Template is a reusable text pattern with substitution tokens, plus an
// optional tag string for categorization and search. Templates are
// referenced by id from episodes, never owned by them.
type Template struct {
	// ID is the database identifier (nil until persisted)
	ID *int64

	// Title names the template
	Title string

	// Pattern is the template text. Opaque except for the recognized
	// token markers; unknown markers pass through rendering verbatim.
	Pattern string

	// Tags is comma-separated free text
	Tags string

	// CreatedAt is the Unix timestamp when the template was created
	CreatedAt int64

	// UpdatedAt is the Unix timestamp when the template was last updated
	UpdatedAt int64
}

// Persisted reports whether the template has a database identifier.
func (t Template) Persisted() bool {
	return t.ID != nil
}
