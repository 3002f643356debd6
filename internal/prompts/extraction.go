package prompts

import "strconv"

// Length is the response-length hint for extracted descriptions.
type Length string

// Response-length hints and their approximate word budgets.
const (
	LengthShort       Length = "short"
	LengthMedium      Length = "medium"
	LengthDescriptive Length = "descriptive"
)

// WordBudget returns the approximate word budget for description fields.
// Unknown values fall back to the medium budget.
func (l Length) WordBudget() int {
	switch l {
	case LengthShort:
		return 100
	case LengthDescriptive:
		return 350
	default:
		return 250
	}
}

// Valid reports whether l is one of the recognized hints.
func (l Length) Valid() bool {
	switch l {
	case LengthShort, LengthMedium, LengthDescriptive:
		return true
	}
	return false
}

// BuildExtractionPrompt constructs the portfolio-extraction instruction for
// the model: the resume text, the target-field checklist, formatting
// constraints, and the word budget for the chosen length. Pure function of
// its inputs.
func BuildExtractionPrompt(resumeText, query string, length Length) string {
	template := MustGet("extraction.json", "extract-portfolio")

	querySection := ""
	if query != "" {
		queryTemplate := MustGet("extraction.json", "extract-portfolio-query")
		querySection = Format(queryTemplate, map[string]string{"Query": query})
	}

	return Format(template, map[string]string{
		"ResumeText":   resumeText,
		"WordBudget":   strconv.Itoa(length.WordBudget()),
		"QuerySection": querySection,
	})
}
