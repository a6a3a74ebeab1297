package render

import (
	"testing"
	"time"

	"github.com/burnoutdv/epinames/internal/episode"
)

func testEpisode() episode.Episode {
	return episode.Episode{
		ProjectID:   1,
		Title:       "Gefangene des Schicksals",
		Counter:     1924,
		Part:        1,
		Session:     "Sitzung 1",
		Description: "",
		RecordedOn:  time.Date(2024, 9, 9, 0, 0, 0, 0, time.UTC),
	}
}

func TestDescribeSubstitutesAllTokens(t *testing.T) {
	pattern := "LP #$$counter1$$ ##$$counter2$$ - $$title$$ ($$session$$, $$record_date$$)"
	got := Describe(pattern, testEpisode())
	want := "LP #1924 ##1 - Gefangene des Schicksals (Sitzung 1, 09.09.2024)"
	if got != want {
		t.Errorf("Describe = %q, want %q", got, want)
	}
}

func TestDescribeIdempotentWithoutTokens(t *testing.T) {
	patterns := []string{
		"",
		"plain text, nothing to do",
		"almost a token: $$counter3$$ and $$Counter1$$ and $counter1$",
	}
	for _, pattern := range patterns {
		if got := Describe(pattern, testEpisode()); got != pattern {
			t.Errorf("Describe(%q) = %q, want unchanged", pattern, got)
		}
	}
}

func TestDescribeRepeatedTokens(t *testing.T) {
	got := Describe("$$counter1$$/$$counter1$$", testEpisode())
	if got != "1924/1924" {
		t.Errorf("Describe = %q, want %q", got, "1924/1924")
	}
}

func TestDescribeNeverRescansReplacements(t *testing.T) {
	// The title's value is exactly the part-counter marker. After one
	// simultaneous pass the output must contain that literal text, not
	// the part counter's value.
	e := testEpisode()
	e.Title = "$$counter2$$"
	e.Part = 99

	got := Describe("title=$$title$$ part=$$counter2$$", e)
	want := "title=$$counter2$$ part=99"
	if got != want {
		t.Errorf("Describe = %q, want %q", got, want)
	}
}

func TestDescribeSessionContainingMarker(t *testing.T) {
	e := testEpisode()
	e.Session = "before $$title$$ after"

	got := Describe("$$session$$|$$title$$", e)
	want := "before $$title$$ after|Gefangene des Schicksals"
	if got != want {
		t.Errorf("Describe = %q, want %q", got, want)
	}
}

func TestDescribeDormantPartRendersZero(t *testing.T) {
	e := testEpisode()
	e.Part = 0
	if got := Describe("##$$counter2$$", e); got != "##0" {
		t.Errorf("Describe = %q, want %q", got, "##0")
	}
}

func TestTokensListsAllMarkers(t *testing.T) {
	got := Tokens()
	if len(got) != 5 {
		t.Fatalf("Tokens() returned %d markers, want 5", len(got))
	}
	// Mutating the returned slice must not affect the renderer.
	got[0] = "$$nope$$"
	if Tokens()[0] != TokenCounter {
		t.Error("Tokens() should return a copy")
	}
}
