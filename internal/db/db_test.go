package db

import (
	"testing"
	"time"

	"github.com/burnoutdv/epinames/internal/episode"
)

// openTestStore opens a store in a temp dir and registers cleanup.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// mustSaveProject saves a project and returns its id.
func mustSaveProject(t *testing.T, store *Store, title, category string) int64 {
	t.Helper()
	id, err := store.SaveProject(episode.Project{Title: title, Category: category})
	if err != nil {
		t.Fatalf("SaveProject(%q) failed: %v", title, err)
	}
	return id
}

// mustSaveEpisode saves an episode and returns its id.
func mustSaveEpisode(t *testing.T, store *Store, e episode.Episode) int64 {
	t.Helper()
	if e.RecordedOn.IsZero() {
		e.RecordedOn = time.Date(2024, 9, 9, 0, 0, 0, 0, time.UTC)
	}
	id, err := store.SaveEpisode(e)
	if err != nil {
		t.Fatalf("SaveEpisode failed: %v", err)
	}
	return id
}

func int64Ptr(v int64) *int64 {
	return &v
}

func TestOpenIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	if err != nil {
		t.Fatalf("first Open failed: %v", err)
	}
	mustSaveProject(t, store, "Elden Ring DLC", "default")
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Reopening must find the same schema version and data.
	store, err = Open(dir)
	if err != nil {
		t.Fatalf("second Open failed: %v", err)
	}
	defer store.Close()

	projects, err := store.ListProjects()
	if err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}
	if len(projects) != 1 || projects[0].Title != "Elden Ring DLC" {
		t.Errorf("projects after reopen = %+v", projects)
	}
}

func TestOpenRefusesSecondInstance(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	if _, err := Open(dir); err == nil {
		t.Error("second Open on the same base dir should fail while the lock is held")
	}
}

func TestGetProjectNotFound(t *testing.T) {
	store := openTestStore(t)

	p, err := store.GetProject(12345)
	if err != nil {
		t.Fatalf("GetProject returned error for missing id: %v", err)
	}
	if p != nil {
		t.Errorf("GetProject = %+v, want nil for missing id", p)
	}
}

func TestSaveProjectRouting(t *testing.T) {
	store := openTestStore(t)

	id := mustSaveProject(t, store, "Spellforce 3", "")
	if id <= 0 {
		t.Fatalf("insert returned id %d", id)
	}

	p, err := store.GetProject(id)
	if err != nil {
		t.Fatalf("GetProject failed: %v", err)
	}
	if p.Category != episode.DefaultCategory {
		t.Errorf("Category = %q, want default fallback", p.Category)
	}
	if p.CreatedAt == 0 || p.UpdatedAt == 0 {
		t.Error("timestamps not set on insert")
	}

	// Carrying the id routes to update.
	p.Description = "second run"
	updatedID, err := store.SaveProject(*p)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updatedID != id {
		t.Errorf("update returned id %d, want %d", updatedID, id)
	}

	reread, err := store.GetProject(id)
	if err != nil {
		t.Fatalf("GetProject failed: %v", err)
	}
	if reread.Description != "second run" {
		t.Errorf("Description = %q after update", reread.Description)
	}
	if reread.CreatedAt != p.CreatedAt {
		t.Error("update must not touch created_at")
	}

	// Updating a nonexistent id is a no-op, not an error.
	ghost := episode.Project{ID: int64Ptr(9999), Title: "ghost"}
	if _, err := store.SaveProject(ghost); err != nil {
		t.Errorf("update of nonexistent id should be a no-op, got %v", err)
	}
	if p, _ := store.GetProject(9999); p != nil {
		t.Errorf("no-op update materialized a row: %+v", p)
	}
}

func TestListProjectsEmptyStore(t *testing.T) {
	store := openTestStore(t)

	projects, err := store.ListProjects()
	if err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}
	if projects == nil || len(projects) != 0 {
		t.Errorf("ListProjects on empty store = %v, want empty slice", projects)
	}
}

func TestListProjectsByActivity(t *testing.T) {
	store := openTestStore(t)

	// "legacy" gets the oldest activity, "default" the newest, "disgrace"
	// none at all.
	legacyID := mustSaveProject(t, store, "Metro Exodus", "legacy")
	defaultID := mustSaveProject(t, store, "Elder Scrolls Online", "default")
	mustSaveProject(t, store, "Dragon Age Origins", "disgrace")

	mustSaveEpisode(t, store, episode.Episode{ProjectID: legacyID, Counter: 1})
	time.Sleep(1100 * time.Millisecond) // updated_at has second granularity
	mustSaveEpisode(t, store, episode.Episode{ProjectID: defaultID, Counter: 1})

	projects, err := store.ListProjectsByActivity()
	if err != nil {
		t.Fatalf("ListProjectsByActivity failed: %v", err)
	}
	if len(projects) != 3 {
		t.Fatalf("got %d projects, want 3", len(projects))
	}

	got := []string{projects[0].Category, projects[1].Category, projects[2].Category}
	want := []string{"default", "legacy", "disgrace"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("category order = %v, want %v", got, want)
		}
	}

	categories, err := store.ListCategoriesByActivity()
	if err != nil {
		t.Fatalf("ListCategoriesByActivity failed: %v", err)
	}
	if len(categories) != 3 || categories[0] != "default" || categories[1] != "legacy" || categories[2] != "disgrace" {
		t.Errorf("ListCategoriesByActivity = %v", categories)
	}
}

func TestListCategoriesDistinct(t *testing.T) {
	store := openTestStore(t)
	mustSaveProject(t, store, "Viewfinder", "legacy")
	mustSaveProject(t, store, "Outer Wilds", "legacy")
	mustSaveProject(t, store, "Elden Ring DLC", "default")

	categories, err := store.ListCategories()
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if len(categories) != 2 {
		t.Errorf("ListCategories = %v, want 2 distinct entries", categories)
	}
}

func TestListEpisodesOrderAndJoin(t *testing.T) {
	store := openTestStore(t)
	projectID := mustSaveProject(t, store, "Elder Scrolls Online", "default")

	templateID, err := store.SaveTemplate(episode.Template{
		Title:   "ESO-Gold Road",
		Pattern: "LP #$$counter1$$ - $$title$$",
	})
	if err != nil {
		t.Fatalf("SaveTemplate failed: %v", err)
	}

	mustSaveEpisode(t, store, episode.Episode{
		ProjectID: projectID, Counter: 2, Title: "Azuras Laterne",
		TemplateID: &templateID,
	})
	mustSaveEpisode(t, store, episode.Episode{
		ProjectID: projectID, Counter: 1, Title: "Gefangene des Schicksals",
	})
	mustSaveEpisode(t, store, episode.Episode{
		ProjectID: projectID, Counter: 3, Title: "Boethias Klinge",
		TemplateID: int64Ptr(777), // dangling on purpose
	})

	asc, err := store.ListEpisodes(projectID, Ascending)
	if err != nil {
		t.Fatalf("ListEpisodes asc failed: %v", err)
	}
	if len(asc) != 3 {
		t.Fatalf("got %d episodes, want 3", len(asc))
	}
	if asc[0].Counter != 1 || asc[1].Counter != 2 || asc[2].Counter != 3 {
		t.Errorf("ascending counters = %d,%d,%d", asc[0].Counter, asc[1].Counter, asc[2].Counter)
	}

	// Joined template title: populated, empty for none, empty for dangling.
	if asc[1].TemplateTitle != "ESO-Gold Road" {
		t.Errorf("TemplateTitle = %q, want joined title", asc[1].TemplateTitle)
	}
	if asc[0].TemplateTitle != "" || asc[0].TemplateID != nil {
		t.Errorf("unassigned episode: title %q, id %v", asc[0].TemplateTitle, asc[0].TemplateID)
	}
	if asc[2].TemplateTitle != "" {
		t.Errorf("dangling reference should yield empty title, got %q", asc[2].TemplateTitle)
	}
	if asc[2].TemplateID == nil || *asc[2].TemplateID != 777 {
		t.Error("dangling reference id must survive the read")
	}

	desc, err := store.ListEpisodes(projectID, Descending)
	if err != nil {
		t.Fatalf("ListEpisodes desc failed: %v", err)
	}
	if desc[0].Counter != 3 || desc[2].Counter != 1 {
		t.Errorf("descending counters = %d..%d", desc[0].Counter, desc[2].Counter)
	}
}

func TestLatestEpisode(t *testing.T) {
	store := openTestStore(t)
	projectID := mustSaveProject(t, store, "Outer Wilds", "legacy")

	latest, err := store.LatestEpisode(projectID)
	if err != nil {
		t.Fatalf("LatestEpisode failed: %v", err)
	}
	if latest != nil {
		t.Errorf("LatestEpisode on empty project = %+v, want nil", latest)
	}

	// Latest is by counter, not insertion order.
	mustSaveEpisode(t, store, episode.Episode{ProjectID: projectID, Counter: 9, Title: "high"})
	mustSaveEpisode(t, store, episode.Episode{ProjectID: projectID, Counter: 4, Title: "low"})

	latest, err = store.LatestEpisode(projectID)
	if err != nil {
		t.Fatalf("LatestEpisode failed: %v", err)
	}
	if latest == nil || latest.Counter != 9 {
		t.Errorf("LatestEpisode = %+v, want counter 9", latest)
	}
}

func TestProjectHasParts(t *testing.T) {
	store := openTestStore(t)
	projectID := mustSaveProject(t, store, "Viewfinder", "legacy")

	has, err := store.ProjectHasParts(projectID)
	if err != nil {
		t.Fatalf("ProjectHasParts failed: %v", err)
	}
	if has {
		t.Error("project with zero episodes must answer false")
	}

	mustSaveEpisode(t, store, episode.Episode{ProjectID: projectID, Counter: 1, Part: 0})
	has, _ = store.ProjectHasParts(projectID)
	if has {
		t.Error("episodes with part 0 only must answer false")
	}

	mustSaveEpisode(t, store, episode.Episode{ProjectID: projectID, Counter: 2, Part: 1})
	has, _ = store.ProjectHasParts(projectID)
	if !has {
		t.Error("one episode with part > 0 must answer true")
	}
}

func TestEpisodeRoundTrip(t *testing.T) {
	store := openTestStore(t)
	projectID := mustSaveProject(t, store, "Elder Scrolls Online", "default")

	recorded := time.Date(2024, 9, 9, 0, 0, 0, 0, time.UTC)
	id := mustSaveEpisode(t, store, episode.Episode{
		ProjectID:   projectID,
		Title:       "Gefangene des Schicksals",
		Counter:     1924,
		Part:        1,
		Session:     "Sitzung 1",
		Description: "notes",
		RecordedOn:  recorded,
	})

	e, err := store.GetEpisode(id)
	if err != nil {
		t.Fatalf("GetEpisode failed: %v", err)
	}
	if e == nil {
		t.Fatal("GetEpisode returned nil for existing id")
	}
	if e.Title != "Gefangene des Schicksals" || e.Counter != 1924 || e.Part != 1 {
		t.Errorf("round trip mismatch: %+v", e)
	}
	if !e.RecordedOn.Equal(recorded) {
		t.Errorf("RecordedOn = %v, want %v", e.RecordedOn, recorded)
	}
	if e.Session != "Sitzung 1" || e.Description != "notes" {
		t.Errorf("text fields mismatch: %+v", e)
	}

	missing, err := store.GetEpisode(424242)
	if err != nil || missing != nil {
		t.Errorf("missing episode = (%+v, %v), want (nil, nil)", missing, err)
	}
}

func TestSettings(t *testing.T) {
	store := openTestStore(t)

	value, err := store.GetSetting("current_project")
	if err != nil {
		t.Fatalf("GetSetting failed: %v", err)
	}
	if value != "" {
		t.Errorf("unset key = %q, want empty", value)
	}

	if err := store.SetSetting("current_project", "3"); err != nil {
		t.Fatalf("SetSetting failed: %v", err)
	}
	if err := store.SetSetting("current_project", "5"); err != nil {
		t.Fatalf("SetSetting upsert failed: %v", err)
	}

	value, _ = store.GetSetting("current_project")
	if value != "5" {
		t.Errorf("GetSetting = %q, want 5", value)
	}
}
