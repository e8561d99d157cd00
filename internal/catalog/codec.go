package catalog

import (
	"net/url"
	"strings"
)

// Query parameter names, stable across encode and decode.
const (
	paramSearchTerm                = "searchTerm"
	paramMainCategory              = "main_category"
	paramSubCategory               = "sub_category"
	paramCEFRMin                   = "cefr_min"
	paramCEFRMax                   = "cefr_max"
	paramGroupSize                 = "group_size"
	paramPreparationRequired       = "preparation_required"
	paramMaterialsResources        = "materials_resources"
	paramAvoidSensitiveTopics      = "avoid_sensitive_topics"
	paramActivityType              = "activity_type"
	paramClassroomCommunityBonding = "classroom_community_bonding"
	paramThematicallyAdaptable     = "thematically_adaptable"
)

// EncodeFilters serializes a selection into query parameters. Fields at
// their default are omitted entirely: empty strings, empty sets, false
// booleans, and a CEFR bound equal to the corresponding edge of the
// currently known facet domain. Multi-value fields join with commas and
// booleans serialize only as the literal "true".
func EncodeFilters(f Filters, opts *FilterOptions) url.Values {
	q := url.Values{}

	setNonEmpty := func(key, v string) {
		if strings.TrimSpace(v) != "" {
			q.Set(key, v)
		}
	}
	setList := func(key string, vs []string) {
		if len(vs) > 0 {
			q.Set(key, strings.Join(vs, ","))
		}
	}
	setTrue := func(key string, v bool) {
		if v {
			q.Set(key, "true")
		}
	}

	setNonEmpty(paramSearchTerm, f.SearchTerm)
	setNonEmpty(paramMainCategory, f.MainCategory)
	setNonEmpty(paramSubCategory, f.SubCategory)
	if f.CEFRLevel.Min != opts.CEFRMin() {
		q.Set(paramCEFRMin, f.CEFRLevel.Min)
	}
	if f.CEFRLevel.Max != opts.CEFRMax() {
		q.Set(paramCEFRMax, f.CEFRLevel.Max)
	}
	setList(paramGroupSize, f.GroupSize)
	setNonEmpty(paramPreparationRequired, f.PreparationRequired)
	setList(paramMaterialsResources, f.MaterialsResources)
	setTrue(paramAvoidSensitiveTopics, f.AvoidSensitiveTopics)
	setList(paramActivityType, f.ActivityType)
	setTrue(paramClassroomCommunityBonding, f.ClassroomCommunityBonding)
	setTrue(paramThematicallyAdaptable, f.ThematicallyAdaptable)

	return q
}

// DecodeFilters parses query parameters into a full Filters value, starting
// from the defaults so every missing parameter lands on its default. CEFR
// bounds that are not recognized levels fall back to the domain edges.
func DecodeFilters(q url.Values, opts *FilterOptions) Filters {
	f := DefaultFilters(opts)

	f.SearchTerm = q.Get(paramSearchTerm)
	f.MainCategory = q.Get(paramMainCategory)
	f.SubCategory = q.Get(paramSubCategory)
	if v := q.Get(paramCEFRMin); CEFRIndex(v) >= 0 {
		f.CEFRLevel.Min = v
	}
	if v := q.Get(paramCEFRMax); CEFRIndex(v) >= 0 {
		f.CEFRLevel.Max = v
	}
	f.GroupSize = splitCSV(q.Get(paramGroupSize))
	f.PreparationRequired = q.Get(paramPreparationRequired)
	f.MaterialsResources = splitCSV(q.Get(paramMaterialsResources))
	f.AvoidSensitiveTopics = q.Get(paramAvoidSensitiveTopics) == "true"
	f.ActivityType = splitCSV(q.Get(paramActivityType))
	f.ClassroomCommunityBonding = q.Get(paramClassroomCommunityBonding) == "true"
	f.ThematicallyAdaptable = q.Get(paramThematicallyAdaptable) == "true"

	return f
}

// splitCSV splits a comma-separated parameter into trimmed non-empty
// values, always returning a non-nil slice.
func splitCSV(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
