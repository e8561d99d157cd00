package catalog

import (
	"fmt"
	"strings"
)

// Normalize merges raw source arrays, given in priority order, into the
// canonical activity set. Records are deduplicated by exact title: the first
// record with a given non-empty title wins, later records sharing it are
// dropped. Records without a title are always kept and get a positional
// fallback slug. Order is otherwise preserved.
func Normalize(sources ...[]RawRecord) []Activity {
	var combined []RawRecord
	for _, src := range sources {
		combined = append(combined, src...)
	}

	kept := make([]RawRecord, 0, len(combined))
	titlesSeen := make(map[string]struct{}, len(combined))
	for _, rec := range combined {
		title := rec.Title.String()
		if title == "" {
			kept = append(kept, rec)
			continue
		}
		if _, dup := titlesSeen[title]; dup {
			continue
		}
		titlesSeen[title] = struct{}{}
		kept = append(kept, rec)
	}

	counter := make(slugCounter, len(kept))
	activities := make([]Activity, 0, len(kept))
	for i, rec := range kept {
		base := Slugify(rec.Title.String(), fmt.Sprintf("activity-%d", i))
		activities = append(activities, FromRaw(counter.next(base), rec))
	}
	return activities
}

// FromRaw converts a single raw record into an Activity under the given id,
// merging its partial tag object over the schema defaults.
func FromRaw(id string, rec RawRecord) Activity {
	return Activity{
		ID:              id,
		Title:           cleanText(rec.Title.String()),
		FullDescription: rec.FullDescription.String(),
		Tags:            ensureTags(rec.Tags),
	}
}

// ensureTags fills the complete tag schema so no downstream code ever has to
// treat a field as absent.
func ensureTags(raw *RawTagSet) TagSet {
	t := defaultTags()
	if raw == nil {
		return t
	}

	t.MainCategory = cleanText(raw.MainCategory.String())
	t.SubCategory = cleanList(raw.SubCategory.Values())
	t.CEFRLevel = cleanList(raw.CEFRLevel.Values())
	t.GroupSize = cleanList(raw.GroupSize.Values())
	t.PreparationRequired = cleanText(raw.PreparationRequired.String())
	t.MaterialsResources = cleanList(raw.MaterialsResources.Values())
	t.SensitivityWarning = raw.SensitivityWarning.Bool()
	t.ActivityType = cleanList(raw.ActivityType.Values())
	t.ClassroomCommunityBonding = raw.ClassroomCommunityBonding.Bool()
	t.ThematicallyAdaptable = raw.ThematicallyAdaptable.Bool()
	t.TeacherInstruction = strings.TrimSpace(raw.TeacherInstruction.String())
	if len(raw.Flashcards) > 0 {
		t.Flashcards = raw.Flashcards
	}
	return t
}

// cleanText collapses whitespace runs and trims the string.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// cleanList trims items and drops the empty ones, always returning a
// non-nil slice.
func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, v := range items {
		if v = cleanText(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
