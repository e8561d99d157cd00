package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Facet names a filterable multi-value attribute.
type Facet string

const (
	FacetMainCategory        Facet = "main_category"
	FacetSubCategory         Facet = "sub_category"
	FacetCEFRLevel           Facet = "cefr_level"
	FacetGroupSize           Facet = "group_size"
	FacetPreparationRequired Facet = "preparation_required"
	FacetMaterialsResources  Facet = "materials_resources"
	FacetActivityType        Facet = "activity_type"
)

// FilterOptions lists, per facet, the values actually present in the current
// activity set, plus the main→sub category index. Boolean tags are handled
// as dedicated checkbox filters and enumerate to empty lists.
type FilterOptions struct {
	MainCategory              []string            `json:"main_category"`
	SubCategoryOptions        map[string][]string `json:"sub_category_options"`
	CEFRLevel                 []string            `json:"cefr_level"`
	GroupSize                 []string            `json:"group_size"`
	PreparationRequired       []string            `json:"preparation_required"`
	MaterialsResources        []string            `json:"materials_resources"`
	ActivityType              []string            `json:"activity_type"`
	ClassroomCommunityBonding []string            `json:"classroom_community_bonding"`
}

// CEFRMin returns the low bound of the known CEFR domain.
func (o *FilterOptions) CEFRMin() string {
	if o != nil && len(o.CEFRLevel) > 0 {
		return o.CEFRLevel[0]
	}
	return CEFRLevels[0]
}

// CEFRMax returns the high bound of the known CEFR domain.
func (o *FilterOptions) CEFRMax() string {
	if o != nil && len(o.CEFRLevel) > 0 {
		return o.CEFRLevel[len(o.CEFRLevel)-1]
	}
	return CEFRLevels[len(CEFRLevels)-1]
}

// facetValues returns the values an activity carries for a facet, in their
// stored form.
func facetValues(t TagSet, f Facet) []string {
	switch f {
	case FacetMainCategory:
		return []string{t.MainCategory}
	case FacetSubCategory:
		return t.SubCategory
	case FacetCEFRLevel:
		return t.CEFRLevel
	case FacetGroupSize:
		return t.GroupSize
	case FacetPreparationRequired:
		return []string{t.PreparationRequired}
	case FacetMaterialsResources:
		return t.MaterialsResources
	case FacetActivityType:
		return t.ActivityType
	}
	return nil
}

// isNone reports whether a value means "no value" rather than a real option.
func isNone(v string) bool {
	return strings.EqualFold(v, "none")
}

// ExtractFacet computes the distinct, trimmed, non-empty values observed for
// one facet across the whole set, excluding the literal "none". The CEFR
// facet is ordered on the canonical scale (unrecognized levels are dropped);
// every other facet sorts alphabetically with numeric-aware comparison.
func ExtractFacet(activities []Activity, f Facet) []string {
	seen := make(map[string]struct{})
	values := []string{}
	for _, a := range activities {
		for _, v := range facetValues(a.Tags, f) {
			v = strings.TrimSpace(v)
			if v == "" || isNone(v) {
				continue
			}
			if f == FacetCEFRLevel && CEFRIndex(v) < 0 {
				continue
			}
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			values = append(values, v)
		}
	}

	if f == FacetCEFRLevel {
		sort.Slice(values, func(i, j int) bool {
			return CEFRIndex(values[i]) < CEFRIndex(values[j])
		})
	} else {
		sortNatural(values)
	}
	return values
}

// Extract derives the full FilterOptions from the current activity set. The
// CEFR facet falls back to the whole canonical scale when no activity
// carries a level, so a range control always has a usable domain.
func Extract(activities []Activity) FilterOptions {
	opts := FilterOptions{
		MainCategory:              ExtractFacet(activities, FacetMainCategory),
		CEFRLevel:                 ExtractFacet(activities, FacetCEFRLevel),
		GroupSize:                 ExtractFacet(activities, FacetGroupSize),
		PreparationRequired:       ExtractFacet(activities, FacetPreparationRequired),
		MaterialsResources:        ExtractFacet(activities, FacetMaterialsResources),
		ActivityType:              ExtractFacet(activities, FacetActivityType),
		ClassroomCommunityBonding: []string{},
	}

	opts.SubCategoryOptions = make(map[string][]string, len(opts.MainCategory))
	for _, mainCat := range opts.MainCategory {
		seen := make(map[string]struct{})
		subs := []string{}
		for _, a := range activities {
			if a.Tags.MainCategory != mainCat {
				continue
			}
			for _, sc := range a.Tags.SubCategory {
				sc = strings.TrimSpace(sc)
				if sc == "" || isNone(sc) {
					continue
				}
				if _, dup := seen[sc]; dup {
					continue
				}
				seen[sc] = struct{}{}
				subs = append(subs, sc)
			}
		}
		sortNatural(subs)
		opts.SubCategoryOptions[mainCat] = subs
	}

	if len(opts.CEFRLevel) == 0 {
		opts.CEFRLevel = append([]string{}, CEFRLevels...)
	}
	return opts
}

// sortNatural sorts case-insensitively with numeric awareness, so
// "Level 2" comes before "Level 10". Collators are not safe for concurrent
// use, so each call builds its own.
func sortNatural(values []string) {
	collate.New(language.English, collate.Numeric, collate.Loose).SortStrings(values)
}
