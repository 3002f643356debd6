// Package types provides type definitions for structured data used throughout the portfolio-builder system.
package types

import (
	"bytes"
	"encoding/json"
)

// PortfolioData is the canonical portfolio schema. It is the single source of
// truth consumed by the form editors, the public renderer, and persistence.
type PortfolioData struct {
	PersonalInfo   PersonalInfo     `json:"personalInfo"`
	SocialLinks    []SocialLink     `json:"socialLinks"`
	WorkExperience []WorkExperience `json:"workExperience"`
	Skills         SkillSet         `json:"skills"`
	Projects       []Project        `json:"projects"`
	Achievements   []Achievement    `json:"achievements"`
	Education      []Education      `json:"education"`
	Certifications []Certification  `json:"certifications"`
	Blogs          []Blog           `json:"blogs,omitempty"`
}

// PersonalInfo holds the scalar identity fields. All fields default to "".
type PersonalInfo struct {
	Name      string `json:"name"`
	Title     string `json:"title"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	Bio       string `json:"bio"`
	ResumeURL string `json:"resumeUrl,omitempty"`
}

// SocialLink is a single platform/URL pair.
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// WorkExperience is a single employment entry. Dates are free-text strings
// ("MM/YYYY" or "Present"), never parsed to calendar types.
type WorkExperience struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

// Project is a single portfolio project entry.
type Project struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Technology  string `json:"technology"` // comma-joined string
	Link        string `json:"link"`
	ImageURL    string `json:"imageUrl"`
}

// Achievement is a single achievement entry.
type Achievement struct {
	Description string `json:"description"`
	Link        string `json:"link"`
}

// Education is a single education entry with free-text dates.
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

// Certification is a single certification entry.
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
	URL    string `json:"url"`
}

// Blog is a single blog entry. Present only in the manage/live schema; the
// creation wizard never populates it.
type Blog struct {
	Title       string `json:"title"`
	Date        string `json:"date"` // ISO date string
	Description string `json:"description"`
}

// SkillShape identifies which of the two legal skill representations a
// SkillSet carries.
type SkillShape string

// Skill shape constants
const (
	// SkillShapeFlat is the legacy/simple form: a flat list of skill names.
	SkillShapeFlat SkillShape = "flat"
	// SkillShapeCategorized maps category names to skill lists.
	SkillShapeCategorized SkillShape = "categorized"
)

// FallbackCategory is the category a flat skill list is folded into when it
// must join a categorized set.
const FallbackCategory = "General"

// SkillSet is a tagged union over the two skill shapes. Exactly one of Flat
// or Categories is populated; Shape() reports which. On the wire a flat set
// is a JSON array of strings and a categorized set is a JSON object mapping
// category names to string arrays.
type SkillSet struct {
	Flat       []string
	Categories map[string][]string
}

// Shape returns the shape this set carries. An empty set reports flat, the
// creation-wizard default.
func (s SkillSet) Shape() SkillShape {
	if s.Categories != nil {
		return SkillShapeCategorized
	}
	return SkillShapeFlat
}

// IsEmpty reports whether the set contains no non-blank skills in either shape.
func (s SkillSet) IsEmpty() bool {
	for _, v := range s.Flat {
		if v != "" {
			return false
		}
	}
	for _, items := range s.Categories {
		for _, v := range items {
			if v != "" {
				return false
			}
		}
	}
	return true
}

// MarshalJSON emits the wire form matching the set's shape. Category keys
// come out sorted (encoding/json orders map keys), so persisted documents
// diff cleanly.
func (s SkillSet) MarshalJSON() ([]byte, error) {
	if s.Categories != nil {
		return json.Marshal(s.Categories)
	}
	if s.Flat == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.Flat)
}

// UnmarshalJSON accepts either wire shape. Anything else (null, a bare
// string) decodes to an empty flat set rather than failing, since stored
// documents predate the categorized shape.
func (s *SkillSet) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		*s = SkillSet{}
		return nil
	}

	switch trimmed[0] {
	case '[':
		var flat []string
		if err := json.Unmarshal(trimmed, &flat); err != nil {
			return err
		}
		*s = SkillSet{Flat: flat}
		return nil
	case '{':
		var cats map[string][]string
		if err := json.Unmarshal(trimmed, &cats); err != nil {
			return err
		}
		*s = SkillSet{Categories: cats}
		return nil
	default:
		*s = SkillSet{}
		return nil
	}
}

// NewPortfolioData returns an empty portfolio with every list seeded with a
// single blank entry so editors always have a row to render.
func NewPortfolioData() PortfolioData {
	return PortfolioData{
		SocialLinks:    []SocialLink{{}},
		WorkExperience: []WorkExperience{{}},
		Skills:         SkillSet{Flat: []string{""}},
		Projects:       []Project{{}},
		Achievements:   []Achievement{{}},
		Education:      []Education{{}},
		Certifications: []Certification{{}},
	}
}
