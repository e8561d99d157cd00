package catalog

import (
	"encoding/json"
	"strings"
)

// RawRecord is one untrusted entry from a source file. Source files are not
// uniform: tags and most tag fields may be missing, and a few fields show up
// as either a string or an array depending on the source. All of that shape
// instability is absorbed here so the rest of the package only ever sees
// canonical types.
type RawRecord struct {
	Title           FlexString `json:"title"`
	FullDescription FlexString `json:"full_description"`
	Tags            *RawTagSet `json:"tags"`
}

// UnmarshalJSON tolerates array items that are not objects at all: they
// decode to an empty record (kept, fallback slug) instead of failing the
// whole source. Syntax errors still surface from the enclosing parse.
func (r *RawRecord) UnmarshalJSON(data []byte) error {
	type plain RawRecord
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		*r = RawRecord{}
		return nil
	}
	*r = RawRecord(p)
	return nil
}

// RawTagSet mirrors TagSet with lenient decoding per field.
type RawTagSet struct {
	MainCategory              FlexString  `json:"main_category"`
	SubCategory               FlexStrings `json:"sub_category"`
	CEFRLevel                 FlexStrings `json:"cefr_level"`
	GroupSize                 FlexStrings `json:"group_size"`
	PreparationRequired       FlexString  `json:"preparation_required"`
	MaterialsResources        FlexStrings `json:"materials_resources"`
	SensitivityWarning        FlexBool    `json:"sensitivity_warning"`
	ActivityType              FlexStrings `json:"activity_type"`
	ClassroomCommunityBonding FlexBool    `json:"classroom_community_bonding"`
	ThematicallyAdaptable     FlexBool    `json:"thematically_adaptable"`
	Flashcards                []Flashcard `json:"flashcards"`
	TeacherInstruction        FlexString  `json:"teacher_instruction"`
}

// FlexString decodes a JSON string, or the first non-empty string of an
// array where a source stored a single-valued field as a list. Anything else
// decodes to the empty string rather than failing the whole source.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	var list []json.RawMessage
	if err := json.Unmarshal(data, &list); err == nil {
		for _, item := range list {
			var s string
			if err := json.Unmarshal(item, &s); err == nil && strings.TrimSpace(s) != "" {
				*f = FlexString(s)
				return nil
			}
		}
	}
	*f = ""
	return nil
}

func (f FlexString) String() string { return string(f) }

// FlexStrings decodes a JSON array of strings, or a bare string as a
// one-element list. Non-string array items are dropped.
type FlexStrings []string

func (f *FlexStrings) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" {
			*f = nil
		} else {
			*f = FlexStrings{s}
		}
		return nil
	}
	var list []json.RawMessage
	if err := json.Unmarshal(data, &list); err == nil {
		out := make(FlexStrings, 0, len(list))
		for _, item := range list {
			var s string
			if err := json.Unmarshal(item, &s); err == nil {
				out = append(out, s)
			}
		}
		*f = out
		return nil
	}
	*f = nil
	return nil
}

// Values returns a non-nil copy of the list.
func (f FlexStrings) Values() []string {
	out := make([]string, 0, len(f))
	return append(out, f...)
}

// FlexBool decodes a JSON bool, tolerating the string forms "true"/"false".
type FlexBool bool

func (f *FlexBool) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = FlexBool(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexBool(strings.EqualFold(strings.TrimSpace(s), "true"))
		return nil
	}
	*f = false
	return nil
}

func (f FlexBool) Bool() bool { return bool(f) }
