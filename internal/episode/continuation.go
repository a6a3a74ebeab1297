package episode

// ContinueOptions carries the per-episode overrides for Continue.
type ContinueOptions struct {
	// Title for the new episode. Titles never carry over implicitly:
	// consecutive same-name episodes are an authoring mistake the caller
	// should avoid, not one this engine papers over. Empty is allowed.
	Title string

	// Session replaces the carried-over session label when non-nil
	Session *string

	// Description replaces the carried-over description when non-nil
	Description *string

	// ResetPart starts a fresh sub-sequence: the new part counter is
	// forced to exactly 1 regardless of the previous value.
	ResetPart bool
}

// Continue derives the next episode of a project from its most recent one,
// encoding the show's numbering convention:
//
//   - the primary counter always advances by exactly 1
//   - a running part counter (part > 0) advances by 1; a dormant one
//     (part == 0) stays 0 unless ResetPart forces it to 1
//   - session, description, recording date and the template assignment
//     carry over; session and description can be overridden
//   - the result is always unpersisted, whatever the input was
func Continue(prev Episode, opts ContinueOptions) Episode {
	next := prev
	next.ID = nil
	next.CreatedAt = 0
	next.UpdatedAt = 0

	next.Counter = prev.Counter + 1
	if prev.Part > 0 {
		next.Part = prev.Part + 1
	}
	if opts.ResetPart {
		next.Part = 1
	}

	next.Title = opts.Title
	if opts.Session != nil {
		next.Session = *opts.Session
	}
	if opts.Description != nil {
		next.Description = *opts.Description
	}
	return next
}

// NewShell produces the first episode of a project that has none yet:
// only the owning project id and the caller-supplied start counter are
// filled in, the part counter is 0 and all text fields are empty. The
// caller supplies the rest through normal editing.
func NewShell(projectID int64, startCounter int) Episode {
	return Episode{
		ProjectID:  projectID,
		Counter:    startCounter,
		RecordedOn: Today(),
	}
}
