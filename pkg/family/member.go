package family

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Gender tags a member for avatar colouring and the gender glyph.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Genders lists the accepted gender tags in editor order.
var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

// ParseGender parses a gender tag case-insensitively.
// An empty string is treated as male, the editor default.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "male", "m":
		return GenderMale, nil
	case "female", "f":
		return GenderFemale, nil
	case "other", "o":
		return GenderOther, nil
	}
	return "", fmt.Errorf("unknown gender %q (must be male, female or other)", s)
}

// Glyph returns the symbol drawn next to the avatar.
func (g Gender) Glyph() string {
	if g == GenderFemale {
		return "♀"
	}
	return "♂"
}

// Relation labels offered by the editor. The field itself is free text.
const (
	RelationRoot     = "Root"
	RelationSon      = "Son"
	RelationDaughter = "Daughter"
	RelationSibling  = "Sibling"
)

// SuggestedRelations lists the relation labels the editor cycles through.
var SuggestedRelations = []string{RelationRoot, RelationSon, RelationDaughter, RelationSibling}

// Placeholder values for members created by [Members.AddChild].
const (
	PlaceholderName     = "New Member"
	PlaceholderRelation = RelationSon
)

// Member is one person in the tree.
//
// ParentID is empty for the root. Dates are free-form strings and are not
// validated. Field names in JSON and YAML follow the documents written by
// the original web editor.
type Member struct {
	ID                 string `json:"id" yaml:"id"`
	ParentID           string `json:"parentId" yaml:"parentId"`
	Name               string `json:"name" yaml:"name"`
	RegionalName       string `json:"regionalName,omitempty" yaml:"regionalName,omitempty"`
	Relation           string `json:"relationType" yaml:"relationType"`
	BirthDate          string `json:"birthDate,omitempty" yaml:"birthDate,omitempty"`
	DeathDate          string `json:"deathDate,omitempty" yaml:"deathDate,omitempty"`
	SpouseName         string `json:"spouseName,omitempty" yaml:"spouseName,omitempty"`
	SpouseRegionalName string `json:"spouseRegionalName,omitempty" yaml:"spouseRegionalName,omitempty"`
	PhotoURL           string `json:"photoUrl,omitempty" yaml:"photoUrl,omitempty"`
	Gender             Gender `json:"gender" yaml:"gender"`
}

// IsRoot reports whether m has no parent.
func (m Member) IsRoot() bool {
	return m.ParentID == ""
}

// HasSpouse reports whether a spouse name is recorded.
func (m Member) HasSpouse() bool {
	return m.SpouseName != ""
}

// NewID returns a fresh member identity.
func NewID() string {
	return "member-" + uuid.NewString()
}

// Seed returns the single-member tree a new editor session starts with.
func Seed() Members {
	return Members{{
		ID:                 "root-1",
		Name:               "Grandfather",
		RegionalName:       "दादाजी",
		Relation:           RelationRoot,
		Gender:             GenderMale,
		SpouseName:         "Grandmother",
		SpouseRegionalName: "दादीजी",
	}}
}
