package episode

import "testing"

func TestEqualContentIgnoresIdentity(t *testing.T) {
	a := Project{
		ID:          int64Ptr(1),
		Title:       "Elder Scrolls Online",
		Category:    "default",
		Description: "long running",
		CreatedAt:   10,
		UpdatedAt:   20,
	}
	b := Project{
		ID:          int64Ptr(99),
		Title:       "Elder Scrolls Online",
		Category:    "default",
		Description: "long running",
		CreatedAt:   1000,
		UpdatedAt:   2000,
	}
	if !a.EqualContent(b) {
		t.Error("projects with identical business fields should compare equal")
	}
}

func TestEqualContentDetectsChanges(t *testing.T) {
	base := Project{Title: "Outer Wilds", Category: "legacy", Description: ""}

	changed := base
	changed.Category = "default"
	if base.EqualContent(changed) {
		t.Error("differing category alone should compare unequal")
	}

	changed = base
	changed.Title = "Outer Wilds DLC"
	if base.EqualContent(changed) {
		t.Error("differing title should compare unequal")
	}

	changed = base
	changed.Description = "echoes"
	if base.EqualContent(changed) {
		t.Error("differing description should compare unequal")
	}
}

func TestParseRecordingDate(t *testing.T) {
	got := ParseRecordingDate("09.09.2024")
	if got.Year() != 2024 || got.Month() != 9 || got.Day() != 9 {
		t.Errorf("display layout parsed to %v", got)
	}

	got = ParseRecordingDate("2024-12-31")
	if got.Year() != 2024 || got.Month() != 12 || got.Day() != 31 {
		t.Errorf("storage layout parsed to %v", got)
	}
}

func TestParseRecordingDateFallsBackToToday(t *testing.T) {
	today := Today()
	for _, input := range []string{"", "yesterday", "31.02.x", "13.32.2024"} {
		got := ParseRecordingDate(input)
		if !got.Equal(today) {
			t.Errorf("ParseRecordingDate(%q) = %v, want today %v", input, got, today)
		}
	}
}
