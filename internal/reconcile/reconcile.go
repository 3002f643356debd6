// Package reconcile merges candidate extraction results into the canonical
// portfolio schema. By contract it never fails: every anomaly in the
// candidate degrades to a default or a skip, since a hard failure after the
// user has already uploaded a resume is worse than a partially-filled form.
package reconcile

import (
	"strings"

	"github.com/jonathan/portfolio-builder/internal/types"
)

// platformKeywords are matched against candidate URLs in order; the first
// case-insensitive substring hit names the platform.
var platformKeywords = []struct {
	keyword  string
	platform string
}{
	{"linkedin", "LinkedIn"},
	{"github", "GitHub"},
	{"twitter", "Twitter"},
}

// Merge reconciles a candidate against the current canonical portfolio and
// returns a new PortfolioData. The input values are never mutated; the result
// is committed atomically by the caller. Scalar fields are replaced when the
// candidate has a non-empty value. List fields are replaced only when the
// candidate has at least one usable item: an empty extraction enriches
// nothing and erases nothing.
func Merge(current types.PortfolioData, cand *types.Candidate) types.PortfolioData {
	out := current
	if cand == nil {
		return out
	}

	out.PersonalInfo = mergePersonalInfo(current.PersonalInfo, cand)
	out.SocialLinks = mergeSocialLinks(current.SocialLinks, cand.SocialLinks)
	out.WorkExperience = mergeWorkExperience(current.WorkExperience, cand.WorkExperience)
	out.Skills = MergeSkills(current.Skills, []string(cand.Skills))
	out.Projects = mergeProjects(current.Projects, cand.Projects)
	out.Achievements = mergeAchievements(current.Achievements, cand.Achievements)
	out.Education = mergeEducation(current.Education, cand.Education)
	out.Certifications = mergeCertifications(current.Certifications, cand.Certifications)
	// Blogs exist only in the manage/live schema; extraction never touches them.

	return out
}

// orKeep returns the candidate value when non-empty, else the current one.
func orKeep(candidate types.FlexString, current string) string {
	if v := strings.TrimSpace(candidate.String()); v != "" {
		return v
	}
	return current
}

func mergePersonalInfo(current types.PersonalInfo, cand *types.Candidate) types.PersonalInfo {
	return types.PersonalInfo{
		Name:      orKeep(cand.Name, current.Name),
		Title:     orKeep(cand.Title, current.Title),
		Email:     orKeep(cand.Email, current.Email),
		Phone:     orKeep(cand.Phone, current.Phone),
		Location:  orKeep(cand.Location, current.Location),
		Bio:       orKeep(cand.Bio, current.Bio),
		ResumeURL: current.ResumeURL,
	}
}

// NormalizeLink turns a candidate link into a canonical SocialLink: the
// platform is inferred from the URL when missing and the URL gains an https
// scheme when it has none. Returns false when the link has no URL at all.
func NormalizeLink(link types.CandidateLink) (types.SocialLink, bool) {
	url := strings.TrimSpace(link.URL)
	if url == "" {
		return types.SocialLink{}, false
	}

	platform := strings.TrimSpace(link.Platform)
	if platform == "" {
		platform = inferPlatform(url)
	}

	if !strings.HasPrefix(url, "http") {
		url = "https://" + url
	}

	return types.SocialLink{Platform: platform, URL: url}, true
}

func inferPlatform(url string) string {
	lower := strings.ToLower(url)
	for _, pk := range platformKeywords {
		if strings.Contains(lower, pk.keyword) {
			return pk.platform
		}
	}
	return "Website"
}

func mergeSocialLinks(current []types.SocialLink, cand types.CandidateLinks) []types.SocialLink {
	links := make([]types.SocialLink, 0, len(cand))
	for _, cl := range cand {
		if link, ok := NormalizeLink(cl); ok {
			links = append(links, link)
		}
	}
	if len(links) == 0 {
		return current
	}
	return links
}

func mergeWorkExperience(current []types.WorkExperience, cand types.TolerantList[types.CandidateExperience]) []types.WorkExperience {
	items := make([]types.WorkExperience, 0, len(cand))
	for _, c := range cand {
		item := types.WorkExperience{
			Company:     c.Company.String(),
			Position:    c.Position.String(),
			StartDate:   c.StartDate.String(),
			EndDate:     c.EndDate.String(),
			Description: c.Description.String(),
		}
		if item == (types.WorkExperience{}) {
			continue
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return current
	}
	return items
}

func mergeProjects(current []types.Project, cand types.TolerantList[types.CandidateProject]) []types.Project {
	items := make([]types.Project, 0, len(cand))
	for _, c := range cand {
		item := types.Project{
			Name:        c.Name.String(),
			Description: c.Description.String(),
			Technology:  strings.Join(c.Technology, ", "),
			Link:        c.Link.String(),
			ImageURL:    c.ImageURL.String(),
		}
		if item == (types.Project{}) {
			continue
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return current
	}
	return items
}

func mergeAchievements(current []types.Achievement, cand types.TolerantList[types.CandidateAchievement]) []types.Achievement {
	items := make([]types.Achievement, 0, len(cand))
	for _, c := range cand {
		item := types.Achievement{
			Description: c.Description.String(),
			Link:        c.Link.String(),
		}
		if item == (types.Achievement{}) {
			continue
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return current
	}
	return items
}

func mergeEducation(current []types.Education, cand types.TolerantList[types.CandidateEducation]) []types.Education {
	items := make([]types.Education, 0, len(cand))
	for _, c := range cand {
		item := types.Education{
			Institution: c.Institution.String(),
			Degree:      c.Degree.String(),
			Field:       c.Field.String(),
			StartDate:   c.StartDate.String(),
			EndDate:     c.EndDate.String(),
		}
		if item == (types.Education{}) {
			continue
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return current
	}
	return items
}

func mergeCertifications(current []types.Certification, cand types.TolerantList[types.CandidateCertification]) []types.Certification {
	items := make([]types.Certification, 0, len(cand))
	for _, c := range cand {
		item := types.Certification{
			Name:   c.Name.String(),
			Issuer: c.Issuer.String(),
			Date:   c.Date.String(),
			URL:    c.URL.String(),
		}
		if item == (types.Certification{}) {
			continue
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return current
	}
	return items
}
