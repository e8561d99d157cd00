package catalog

import (
	"strings"
)

// CEFRRange is an inclusive [Min, Max] span on the canonical scale.
type CEFRRange struct {
	Min string `json:"min"`
	Max string `json:"max"`
}

// Filters is the current user selection. The zero value is not meaningful;
// build one with DefaultFilters so the CEFR range spans the known domain.
type Filters struct {
	SearchTerm                string    `json:"searchTerm"`
	MainCategory              string    `json:"main_category"`
	SubCategory               string    `json:"sub_category"`
	CEFRLevel                 CEFRRange `json:"cefr_level"`
	GroupSize                 []string  `json:"group_size"`
	PreparationRequired       string    `json:"preparation_required"`
	MaterialsResources        []string  `json:"materials_resources"`
	AvoidSensitiveTopics      bool      `json:"avoid_sensitive_topics"`
	ActivityType              []string  `json:"activity_type"`
	ClassroomCommunityBonding bool      `json:"classroom_community_bonding"`
	ThematicallyAdaptable     bool      `json:"thematically_adaptable"`
}

// DefaultFilters returns the all-clear selection. The CEFR range spans the
// facet-derived domain when options are available, the canonical scale
// otherwise.
func DefaultFilters(opts *FilterOptions) Filters {
	return Filters{
		CEFRLevel:          CEFRRange{Min: opts.CEFRMin(), Max: opts.CEFRMax()},
		GroupSize:          []string{},
		MaterialsResources: []string{},
		ActivityType:       []string{},
	}
}

// cefrActive reports whether the range narrows the canonical scale at all.
// A full A1–C2 span is "no filter": activities without levels pass through.
func (r CEFRRange) cefrActive() bool {
	return !(r.Min == CEFRLevels[0] && r.Max == CEFRLevels[len(CEFRLevels)-1])
}

// Apply evaluates the composite filter predicate over the activity set and
// returns the matching subset, preserving order. All predicates narrow by
// logical AND; evaluation is total and never panics on odd tag contents.
func Apply(activities []Activity, f Filters) []Activity {
	term := strings.ToLower(f.SearchTerm)

	cefrOn := false
	minIdx, maxIdx := 0, 0
	if f.CEFRLevel.cefrActive() {
		minIdx = CEFRIndex(f.CEFRLevel.Min)
		maxIdx = CEFRIndex(f.CEFRLevel.Max)
		// Unrecognized bounds or an inverted range deactivate the filter
		// rather than matching nothing.
		cefrOn = minIdx >= 0 && maxIdx >= 0 && minIdx <= maxIdx
	}

	out := make([]Activity, 0, len(activities))
	for _, a := range activities {
		if term != "" && !matchesSearch(a, term) {
			continue
		}
		if cefrOn && !matchesCEFR(a.Tags.CEFRLevel, minIdx, maxIdx) {
			continue
		}
		if f.MainCategory != "" && a.Tags.MainCategory != f.MainCategory {
			continue
		}
		if f.SubCategory != "" && !containsString(a.Tags.SubCategory, f.SubCategory) {
			continue
		}
		if f.PreparationRequired != "" && a.Tags.PreparationRequired != f.PreparationRequired {
			continue
		}
		if !containsAll(a.Tags.GroupSize, f.GroupSize) {
			continue
		}
		if !containsAll(a.Tags.MaterialsResources, f.MaterialsResources) {
			continue
		}
		if !containsAll(a.Tags.ActivityType, f.ActivityType) {
			continue
		}
		if f.AvoidSensitiveTopics && a.Tags.SensitivityWarning {
			continue
		}
		if f.ClassroomCommunityBonding && !a.Tags.ClassroomCommunityBonding {
			continue
		}
		if f.ThematicallyAdaptable && !a.Tags.ThematicallyAdaptable {
			continue
		}
		out = append(out, a)
	}
	return out
}

// matchesSearch is a case-insensitive substring match over title and
// description.
func matchesSearch(a Activity, lowerTerm string) bool {
	return strings.Contains(strings.ToLower(a.Title), lowerTerm) ||
		strings.Contains(strings.ToLower(a.FullDescription), lowerTerm)
}

// matchesCEFR requires at least one recognized level inside the inclusive
// index range. Activities with no levels never match an active range.
func matchesCEFR(levels []string, minIdx, maxIdx int) bool {
	for _, l := range levels {
		if idx := CEFRIndex(l); idx >= minIdx && idx <= maxIdx {
			return true
		}
	}
	return false
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// containsAll implements the AND semantics of the multi-select facets: the
// tag list must contain every selected option.
func containsAll(tagList, selected []string) bool {
	for _, want := range selected {
		if !containsString(tagList, want) {
			return false
		}
	}
	return true
}
