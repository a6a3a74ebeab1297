// Package episode holds the storage-independent projections of the three
// record kinds (Project, Episode, Template) and the continuation rules that
// derive a new episode from the previous one.
package episode

import "time"

// Episode represents one unit of content within a project. A nil ID means
// the episode has not been persisted yet; a nil TemplateID means no
// template is assigned.
type Episode struct {
	// ID is the database identifier (nil until persisted)
	ID *int64

	// ProjectID is the owning project (required, always > 0)
	ProjectID int64

	// TemplateID is a weak reference to a template (nil when unassigned).
	// Deleting a template never cascades into episodes; a dangling
	// reference just means the episode cannot be rendered.
	TemplateID *int64

	// Title is the episode title
	Title string

	// Counter is the primary episode number. It advances monotonically
	// within a project under normal use but is not enforced unique.
	Counter int

	// Part is the secondary counter for multi-part sessions.
	// 0 means "no sub-sequence in progress for this episode".
	Part int

	// Session is a free-text session label
	Session string

	// Description is free text
	Description string

	// RecordedOn is the calendar date of the recording
	RecordedOn time.Time

	// TemplateTitle is a derived convenience field populated from a join
	// against the template table on read. Never authoritative.
	TemplateTitle string

	// CreatedAt is the Unix timestamp when the episode was created
	CreatedAt int64

	// UpdatedAt is the Unix timestamp when the episode was last updated
	UpdatedAt int64
}

// Persisted reports whether the episode has a database identifier.
func (e Episode) Persisted() bool {
	return e.ID != nil
}

// HasTemplate reports whether a template is assigned. The reference may
// still be dangling; resolution happens at render time.
func (e Episode) HasTemplate() bool {
	return e.TemplateID != nil
}
