package types

import (
	"bytes"
	"encoding/json"
)

// Candidate is the loosely-typed result of parsing a model response. It
// mirrors PortfolioData's field names, but every field may be absent, null,
// wrongly typed, or shaped differently than the canonical schema. It is never
// persisted or rendered directly; it must pass through the reconciler first.
type Candidate struct {
	Name     FlexString `json:"name"`
	Title    FlexString `json:"title"`
	Email    FlexString `json:"email"`
	Phone    FlexString `json:"phone"`
	Location FlexString `json:"location"`
	Bio      FlexString `json:"bio"`

	SocialLinks    CandidateLinks                       `json:"socialLinks"`
	WorkExperience TolerantList[CandidateExperience]    `json:"workExperience"`
	Skills         FlexStringList                       `json:"skills"`
	Projects       TolerantList[CandidateProject]       `json:"projects"`
	Achievements   TolerantList[CandidateAchievement]   `json:"achievements"`
	Education      TolerantList[CandidateEducation]     `json:"education"`
	Certifications TolerantList[CandidateCertification] `json:"certifications"`
}

// TolerantList decodes a JSON array, skipping elements that cannot be decoded
// into T and degrading any non-array value to an empty list. A mis-shaped
// section never fails the candidate as a whole.
type TolerantList[T any] []T

// UnmarshalJSON implements tolerant array decoding.
func (l *TolerantList[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		*l = nil
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		*l = nil
		return nil
	}

	out := make([]T, 0, len(raw))
	for _, item := range raw {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	*l = out
	return nil
}

// CandidateLinks decodes socialLinks in any of the shapes models emit: an
// array of URL strings, an array of {platform, url} objects, or a single URL
// string.
type CandidateLinks []CandidateLink

// UnmarshalJSON implements tolerant link-list decoding.
func (l *CandidateLinks) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		*l = nil
		return nil
	}

	if trimmed[0] == '"' || trimmed[0] == '{' {
		var link CandidateLink
		_ = link.UnmarshalJSON(trimmed)
		if link == (CandidateLink{}) {
			*l = nil
			return nil
		}
		*l = []CandidateLink{link}
		return nil
	}

	var list TolerantList[CandidateLink]
	_ = list.UnmarshalJSON(trimmed)
	*l = []CandidateLink(list)
	return nil
}

// CandidateLink is a social link from the model, which may arrive as a bare
// URL string or as a {platform, url} object.
type CandidateLink struct {
	Platform string
	URL      string
}

// CandidateExperience mirrors WorkExperience with tolerant fields.
type CandidateExperience struct {
	Company     FlexString `json:"company"`
	Position    FlexString `json:"position"`
	StartDate   FlexString `json:"startDate"`
	EndDate     FlexString `json:"endDate"`
	Description FlexString `json:"description"`
}

// CandidateProject mirrors Project with tolerant fields. Technology may
// arrive as a comma-joined string or as a list.
type CandidateProject struct {
	Name        FlexString     `json:"name"`
	Description FlexString     `json:"description"`
	Technology  FlexStringList `json:"technology"`
	Link        FlexString     `json:"link"`
	ImageURL    FlexString     `json:"imageUrl"`
}

// CandidateAchievement mirrors Achievement with tolerant fields.
type CandidateAchievement struct {
	Description FlexString `json:"description"`
	Link        FlexString `json:"link"`
}

// CandidateEducation mirrors Education with tolerant fields.
type CandidateEducation struct {
	Institution FlexString `json:"institution"`
	Degree      FlexString `json:"degree"`
	Field       FlexString `json:"field"`
	StartDate   FlexString `json:"startDate"`
	EndDate     FlexString `json:"endDate"`
}

// CandidateCertification mirrors Certification with tolerant fields.
type CandidateCertification struct {
	Name   FlexString `json:"name"`
	Issuer FlexString `json:"issuer"`
	Date   FlexString `json:"date"`
	URL    FlexString `json:"url"`
}

// FlexString absorbs the scalar JSON values a model actually emits where a
// string was requested: strings, numbers, booleans, and null. Arrays and
// objects decode to "" rather than failing the whole candidate.
type FlexString string

// UnmarshalJSON implements tolerant scalar decoding.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		*f = ""
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			*f = ""
			return nil
		}
		*f = FlexString(s)
	case '[', '{':
		*f = ""
	default:
		// Number or boolean: keep the literal text.
		*f = FlexString(trimmed)
	}
	return nil
}

// String returns the underlying string value.
func (f FlexString) String() string { return string(f) }

// FlexStringList absorbs a JSON array of scalars, a single scalar, or null.
// Non-scalar array elements are skipped.
type FlexStringList []string

// UnmarshalJSON implements tolerant list decoding.
func (f *FlexStringList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		*f = nil
		return nil
	}

	if trimmed[0] == '[' {
		var raw []json.RawMessage
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			*f = nil
			return nil
		}
		out := make([]string, 0, len(raw))
		for _, item := range raw {
			var fs FlexString
			_ = fs.UnmarshalJSON(item)
			if fs != "" {
				out = append(out, string(fs))
			}
		}
		*f = out
		return nil
	}

	var fs FlexString
	_ = fs.UnmarshalJSON(trimmed)
	if fs == "" {
		*f = nil
		return nil
	}
	*f = []string{string(fs)}
	return nil
}

// UnmarshalJSON accepts either a bare URL string or a {platform, url} object.
// Anything else yields an empty link, which the reconciler skips.
func (l *CandidateLink) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		*l = CandidateLink{}
		return nil
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			*l = CandidateLink{}
			return nil
		}
		*l = CandidateLink{URL: s}
		return nil
	}

	if trimmed[0] == '{' {
		var obj struct {
			Platform FlexString `json:"platform"`
			URL      FlexString `json:"url"`
		}
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			*l = CandidateLink{}
			return nil
		}
		*l = CandidateLink{Platform: string(obj.Platform), URL: string(obj.URL)}
		return nil
	}

	*l = CandidateLink{}
	return nil
}
