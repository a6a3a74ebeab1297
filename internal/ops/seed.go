package ops

import (
	"github.com/burnoutdv/epinames/internal/db"
	"github.com/burnoutdv/epinames/internal/episode"
)

// seedPattern is the demo template used by Seed.
const seedPattern = `Episode $$counter2$$ des Gold Road DLCs - $$session$$

Let's Play ESO #$$counter1$$ ##$$counter2$$ - $$title$$ [Gold Road]

Aufnahme vom $$record_date$$ - #$$counter1$$ - ##$$counter2$$`

// seedTitles are the follow-up episode titles created by Seed.
var seedTitles = []string{
	"Mephalas Strang der Geheimnisse",
	"Azuras Laterne",
	"Boethias Klinge",
	"Holomagan-Kloster",
	"Schrein der unweigerlichen Geheimnisse",
	"Ereignisse auf Schienen",
}

// SeedOutput contains the result of the Seed operation.
type SeedOutput struct {
	Projects  int `json:"projects"`
	Templates int `json:"templates"`
	Episodes  int `json:"episodes"`
}

/// Seed fills an empty store with a demo dataset: one active project with a
// template and a run of consecutive episodes, plus a handful of empty
// projects across categories. Useful for trying the CLI out.
func Seed(store *db.Store) (*SeedOutput, error) {
	projectID, err := store.SaveProject(episode.Project{
		Title:    "Elder Scrolls Online",
		Category: episode.DefaultCategory,
	})
	if err != nil {
		return nil, err
	}

	templateID, err := store.SaveTemplate(episode.Template{
		Title:   "ESO-Gold Road",
		Pattern: seedPattern,
		Tags:    "eso, gold road, lets play",
	})
	if err != nil {
		return nil, err
	}

	first := episode.NewShell(projectID, 1924)
	first.Title = "Gefangene des Schicksals"
	first.TemplateID = &templateID
	first.Part = 1
	first.Session = "Sitzung 1"
	first.RecordedOn = episode.ParseRecordingDate("2024-09-09")

	lastID, err := store.SaveEpisode(first)
	if err != nil {
		return nil, err
	}
	episodes := 1

	for _, title := range seedTitles {
		prev, err := store.GetEpisode(lastID)
		if err != nil {
			return nil, err
		}
		next := episode.Continue(*prev, episode.ContinueOptions{Title: title})
		lastID, err = store.SaveEpisode(next)
		if err != nil {
			return nil, err
		}
		episodes++
	}

	empty := []episode.Project{
		{Title: "Elden Ring DLC", Category: "default"},
		{Title: "Spellforce 3", Category: "default"},
		{Title: "Viewfinder", Category: "legacy"},
		{Title: "Outer Wilds", Category: "legacy"},
		{Title: "Metro Exodus", Category: "legacy"},
		{Title: "Dragon Age Origins", Category: "disgrace"},
	}
	for _, p := range empty {
		if _, err := store.SaveProject(p); err != nil {
			return nil, err
		}
	}

	return &SeedOutput{
		Projects:  1 + len(empty),
		Templates: 1,
		Episodes:  episodes,
	}, nil
}
