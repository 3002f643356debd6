package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_LoadsEmbeddedTemplates(t *testing.T) {
	template, err := Get("extraction.json", "extract-portfolio")
	require.NoError(t, err)
	assert.Contains(t, template, "{{.ResumeText}}")
	assert.Contains(t, template, "{{.WordBudget}}")
}

func TestGet_Errors(t *testing.T) {
	_, err := Get("extraction.json", "no-such-key")
	assert.Error(t, err)

	_, err = Get("missing.json", "extract-portfolio")
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	out := Format("Hello {{.Name}}, budget {{.Budget}} words. {{.Name}} again.", map[string]string{
		"Name":   "Jane",
		"Budget": "100",
	})
	assert.Equal(t, "Hello Jane, budget 100 words. Jane again.", out)
}

func TestLength_WordBudget(t *testing.T) {
	assert.Equal(t, 100, LengthShort.WordBudget())
	assert.Equal(t, 250, LengthMedium.WordBudget())
	assert.Equal(t, 350, LengthDescriptive.WordBudget())
	assert.Equal(t, 250, Length("bogus").WordBudget())
}

func TestLength_Valid(t *testing.T) {
	assert.True(t, LengthShort.Valid())
	assert.True(t, LengthMedium.Valid())
	assert.True(t, LengthDescriptive.Valid())
	assert.False(t, Length("").Valid())
	assert.False(t, Length("verbose").Valid())
}

func TestBuildExtractionPrompt(t *testing.T) {
	prompt := BuildExtractionPrompt("JOHN DOE\nSoftware Engineer", "", LengthShort)
	assert.Contains(t, prompt, "JOHN DOE")
	assert.Contains(t, prompt, "at most 100 words")
	assert.NotContains(t, prompt, "{{.")
	assert.NotContains(t, prompt, "Additional instructions")
}

func TestBuildExtractionPrompt_WithQuery(t *testing.T) {
	prompt := BuildExtractionPrompt("resume body", "emphasize leadership", LengthDescriptive)
	assert.Contains(t, prompt, "emphasize leadership")
	assert.Contains(t, prompt, "Additional instructions")
	assert.Contains(t, prompt, "350")
	assert.NotContains(t, prompt, "{{.")
}
