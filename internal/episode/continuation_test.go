package episode

import (
	"testing"
	"time"
)

// int64Ptr returns a pointer to the given int64.
func int64Ptr(v int64) *int64 {
	return &v
}

// stringPtr returns a pointer to the given string.
func stringPtr(s string) *string {
	return &s
}

func prevEpisode() Episode {
	return Episode{
		ID:          int64Ptr(42),
		ProjectID:   7,
		TemplateID:  int64Ptr(3),
		Title:       "Old Title",
		Counter:     12,
		Part:        0,
		Session:     "Session 4",
		Description: "carried text",
		RecordedOn:  time.Date(2024, 9, 9, 0, 0, 0, 0, time.UTC),
		CreatedAt:   100,
		UpdatedAt:   200,
	}
}

func TestContinueIncrementsCounter(t *testing.T) {
	prev := prevEpisode()
	next := Continue(prev, ContinueOptions{})
	if next.Counter != prev.Counter+1 {
		t.Errorf("Counter = %d, want %d", next.Counter, prev.Counter+1)
	}
}

func TestContinuePartStaysDormant(t *testing.T) {
	prev := prevEpisode()
	prev.Part = 0
	next := Continue(prev, ContinueOptions{})
	if next.Part != 0 {
		t.Errorf("Part = %d, want 0", next.Part)
	}
}

func TestContinuePartAdvancesWhenRunning(t *testing.T) {
	prev := prevEpisode()
	prev.Part = 2
	next := Continue(prev, ContinueOptions{})
	if next.Part != 3 {
		t.Errorf("Part = %d, want 3", next.Part)
	}
}

func TestContinueResetPart(t *testing.T) {
	for _, part := range []int{0, 1, 5} {
		prev := prevEpisode()
		prev.Part = part
		next := Continue(prev, ContinueOptions{ResetPart: true})
		if next.Part != 1 {
			t.Errorf("Part after reset (prev %d) = %d, want 1", part, next.Part)
		}
	}
}

func TestContinueAlwaysUnpersisted(t *testing.T) {
	next := Continue(prevEpisode(), ContinueOptions{})
	if next.ID != nil {
		t.Errorf("ID = %v, want nil", *next.ID)
	}
	if next.CreatedAt != 0 || next.UpdatedAt != 0 {
		t.Errorf("timestamps = %d/%d, want 0/0", next.CreatedAt, next.UpdatedAt)
	}
}

func TestContinueCarryForward(t *testing.T) {
	prev := prevEpisode()
	next := Continue(prev, ContinueOptions{Title: "Next"})

	if next.Session != prev.Session {
		t.Errorf("Session = %q, want carried %q", next.Session, prev.Session)
	}
	if next.Description != prev.Description {
		t.Errorf("Description = %q, want carried %q", next.Description, prev.Description)
	}
	if !next.RecordedOn.Equal(prev.RecordedOn) {
		t.Errorf("RecordedOn = %v, want carried %v", next.RecordedOn, prev.RecordedOn)
	}
	if next.TemplateID == nil || *next.TemplateID != *prev.TemplateID {
		t.Errorf("TemplateID = %v, want carried %v", next.TemplateID, *prev.TemplateID)
	}
	if next.ProjectID != prev.ProjectID {
		t.Errorf("ProjectID = %d, want %d", next.ProjectID, prev.ProjectID)
	}
}

func TestContinueTitleNeverCarries(t *testing.T) {
	next := Continue(prevEpisode(), ContinueOptions{})
	if next.Title != "" {
		t.Errorf("Title = %q, want empty without an override", next.Title)
	}
}

func TestContinueOverrides(t *testing.T) {
	next := Continue(prevEpisode(), ContinueOptions{
		Title:       "Next",
		Session:     stringPtr("Session 5"),
		Description: stringPtr("fresh text"),
	})
	if next.Title != "Next" {
		t.Errorf("Title = %q, want %q", next.Title, "Next")
	}
	if next.Session != "Session 5" {
		t.Errorf("Session = %q, want %q", next.Session, "Session 5")
	}
	if next.Description != "fresh text" {
		t.Errorf("Description = %q, want %q", next.Description, "fresh text")
	}
}

func TestContinueSpecificScenarios(t *testing.T) {
	// {counter:12, part:0} with title "Next" -> {13, 0, "Next"}
	prev := prevEpisode()
	prev.Counter = 12
	prev.Part = 0
	next := Continue(prev, ContinueOptions{Title: "Next"})
	if next.Counter != 13 || next.Part != 0 || next.Title != "Next" {
		t.Errorf("got {%d, %d, %q}, want {13, 0, \"Next\"}", next.Counter, next.Part, next.Title)
	}

	// {counter:5, part:2} without overrides -> {6, 3}
	prev = prevEpisode()
	prev.Counter = 5
	prev.Part = 2
	next = Continue(prev, ContinueOptions{})
	if next.Counter != 6 || next.Part != 3 {
		t.Errorf("got {%d, %d}, want {6, 3}", next.Counter, next.Part)
	}
}

func TestNewShell(t *testing.T) {
	shell := NewShell(9, 100)
	if shell.ID != nil {
		t.Errorf("ID = %v, want nil", *shell.ID)
	}
	if shell.ProjectID != 9 {
		t.Errorf("ProjectID = %d, want 9", shell.ProjectID)
	}
	if shell.Counter != 100 {
		t.Errorf("Counter = %d, want 100", shell.Counter)
	}
	if shell.Part != 0 {
		t.Errorf("Part = %d, want 0", shell.Part)
	}
	if shell.Title != "" || shell.Session != "" || shell.Description != "" {
		t.Errorf("text fields not empty: %q %q %q", shell.Title, shell.Session, shell.Description)
	}
	if shell.TemplateID != nil {
		t.Errorf("TemplateID = %v, want nil", *shell.TemplateID)
	}
}
