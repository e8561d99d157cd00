package catalog

// CEFRLevels is the canonical proficiency scale, in order.
var CEFRLevels = []string{"A1", "A2", "B1", "B2", "C1", "C2"}

// CEFRIndex returns the position of a level on the canonical scale, or -1
// for anything that is not a recognized level.
func CEFRIndex(level string) int {
	for i, l := range CEFRLevels {
		if l == level {
			return i
		}
	}
	return -1
}

// Flashcard is one term/definition pair attached to an activity.
type Flashcard struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// TagSet is the full attribute schema an activity carries. After
// normalization every field is populated: slices are non-nil, strings may be
// empty, booleans default to false. Only Flashcards and TeacherInstruction
// are allowed to stay absent.
type TagSet struct {
	MainCategory              string      `json:"main_category"`
	SubCategory               []string    `json:"sub_category"`
	CEFRLevel                 []string    `json:"cefr_level"`
	GroupSize                 []string    `json:"group_size"`
	PreparationRequired       string      `json:"preparation_required"`
	MaterialsResources        []string    `json:"materials_resources"`
	SensitivityWarning        bool        `json:"sensitivity_warning"`
	ActivityType              []string    `json:"activity_type"`
	ClassroomCommunityBonding bool        `json:"classroom_community_bonding"`
	ThematicallyAdaptable     bool        `json:"thematically_adaptable"`
	Flashcards                []Flashcard `json:"flashcards,omitempty"`
	TeacherInstruction        string      `json:"teacher_instruction,omitempty"`
}

// Activity is a normalized record: stable unique ID, fully populated tags.
type Activity struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	FullDescription string `json:"full_description"`
	Tags            TagSet `json:"tags"`
}

// ExportRecord is the downloadable shape of an activity. The generated ID is
// deliberately omitted so re-imported files get fresh slugs.
type ExportRecord struct {
	Title           string `json:"title"`
	FullDescription string `json:"full_description"`
	Tags            TagSet `json:"tags"`
}

func defaultTags() TagSet {
	return TagSet{
		SubCategory:        []string{},
		CEFRLevel:          []string{},
		GroupSize:          []string{},
		MaterialsResources: []string{},
		ActivityType:       []string{},
	}
}
