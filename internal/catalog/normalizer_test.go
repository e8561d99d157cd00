package catalog

import (
	"encoding/json"
	"reflect"
	"testing"
)

func rawRecord(t *testing.T, jsonStr string) RawRecord {
	t.Helper()
	var rec RawRecord
	if err := json.Unmarshal([]byte(jsonStr), &rec); err != nil {
		t.Fatalf("unmarshal raw record: %v", err)
	}
	return rec
}

func TestNormalizeDeduplicatesByTitle(t *testing.T) {
	first := []RawRecord{
		{Title: "Icebreaker", FullDescription: "from activities"},
	}
	second := []RawRecord{
		{Title: "Icebreaker", FullDescription: "from skills, dropped"},
		{Title: "Debate Prep"},
	}

	got := Normalize(first, second)
	if len(got) != 2 {
		t.Fatalf("expected 2 activities, got %d", len(got))
	}
	if got[0].FullDescription != "from activities" {
		t.Errorf("first source should win the duplicate title, got %q", got[0].FullDescription)
	}
	if got[1].Title != "Debate Prep" {
		t.Errorf("expected Debate Prep second, got %q", got[1].Title)
	}
}

func TestNormalizeKeepsAllUntitledRecords(t *testing.T) {
	src := []RawRecord{
		{FullDescription: "first untitled"},
		{FullDescription: "second untitled"},
	}

	got := Normalize(src)
	if len(got) != 2 {
		t.Fatalf("untitled records must never deduplicate, got %d", len(got))
	}
	if got[0].ID != "activity-0" || got[1].ID != "activity-1" {
		t.Errorf("expected positional fallback slugs, got %q and %q", got[0].ID, got[1].ID)
	}
}

func TestNormalizeSlugUniqueness(t *testing.T) {
	// Distinct titles that collapse to the same slug.
	src := []RawRecord{
		{Title: "Word Race!"},
		{Title: "Word Race?"},
		{Title: "Word (Race)"},
	}

	got := Normalize(src)
	seen := make(map[string]bool)
	for _, a := range got {
		if a.ID == "" {
			t.Errorf("activity %q has an empty id", a.Title)
		}
		if seen[a.ID] {
			t.Errorf("duplicate id %q", a.ID)
		}
		seen[a.ID] = true
	}
	if got[0].ID != "word-race" || got[1].ID != "word-race-2" || got[2].ID != "word-race-3" {
		t.Errorf("unexpected collision suffixes: %q %q %q", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestNormalizeIsDeterministic(t *testing.T) {
	src := []RawRecord{
		{Title: "Hot Seat"},
		{Title: "Hot Seat."},
		{},
		{Title: "Running Dictation"},
	}

	a := Normalize(src)
	b := Normalize(src)
	if !reflect.DeepEqual(a, b) {
		t.Error("normalization is not deterministic over identical input")
	}
}

func TestNormalizeTagCompleteness(t *testing.T) {
	src := []RawRecord{
		{Title: "No tags at all"},
		rawRecord(t, `{"title":"Partial","tags":{"main_category":"Oral English"}}`),
	}

	for _, a := range Normalize(src) {
		tags := a.Tags
		if tags.SubCategory == nil || tags.CEFRLevel == nil || tags.GroupSize == nil ||
			tags.MaterialsResources == nil || tags.ActivityType == nil {
			t.Errorf("%s: array tag fields must be non-nil", a.ID)
		}
	}
}

func TestNormalizeCoercesTagShapes(t *testing.T) {
	rec := rawRecord(t, `{
		"title": "Shape Shifter",
		"tags": {
			"main_category": ["Oral English", "ignored"],
			"sub_category": "Debate",
			"cefr_level": ["B1", 42, " B2 "],
			"sensitivity_warning": "true",
			"group_size": ["Pairs", ""]
		}
	}`)

	got := Normalize([]RawRecord{rec})[0].Tags
	if got.MainCategory != "Oral English" {
		t.Errorf("main_category = %q, want first array element", got.MainCategory)
	}
	if !reflect.DeepEqual(got.SubCategory, []string{"Debate"}) {
		t.Errorf("sub_category = %v, want wrapped single string", got.SubCategory)
	}
	if !reflect.DeepEqual(got.CEFRLevel, []string{"B1", "B2"}) {
		t.Errorf("cefr_level = %v, want non-strings dropped and items trimmed", got.CEFRLevel)
	}
	if !got.SensitivityWarning {
		t.Error("sensitivity_warning string \"true\" should coerce to true")
	}
	if !reflect.DeepEqual(got.GroupSize, []string{"Pairs"}) {
		t.Errorf("group_size = %v, want empties dropped", got.GroupSize)
	}
}

func TestNormalizeScenario(t *testing.T) {
	src := []RawRecord{
		{Title: "Icebreaker"},
		{Title: "Icebreaker"},
		rawRecord(t, `{"title":"Debate Prep","tags":{"main_category":"Oral English","cefr_level":["B1","B2"]}}`),
	}

	activities := Normalize(src)
	if len(activities) != 2 {
		t.Fatalf("expected 2 activities after dedup, got %d", len(activities))
	}

	opts := Extract(activities)
	if !reflect.DeepEqual(opts.MainCategory, []string{"Oral English"}) {
		t.Errorf("main_category facet = %v, want [Oral English]", opts.MainCategory)
	}

	f := DefaultFilters(&opts)
	f.CEFRLevel = CEFRRange{Min: "B2", Max: "C2"}
	matched := Apply(activities, f)
	if len(matched) != 1 || matched[0].Title != "Debate Prep" {
		t.Errorf("B2-C2 range should match exactly Debate Prep, got %v", matched)
	}
}
