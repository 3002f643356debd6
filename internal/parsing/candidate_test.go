package parsing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCandidate_ValidResponse(t *testing.T) {
	raw := `{
		"name": "John Doe",
		"skills": ["Go", "React"],
		"socialLinks": ["github.com/jdoe"]
	}`

	cand, err := ParseCandidate(raw)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", cand.Name.String())
	assert.Equal(t, []string{"Go", "React"}, []string(cand.Skills))
	require.Len(t, cand.SocialLinks, 1)
}

func TestParseCandidate_FencedResponse(t *testing.T) {
	raw := "```json\n{\"name\": \"Jane\"}\n```"

	cand, err := ParseCandidate(raw)
	require.NoError(t, err)
	assert.Equal(t, "Jane", cand.Name.String())
}

func TestParseCandidate_PartialAndNoisy(t *testing.T) {
	// Nulls, wrong types, and unknown keys all survive.
	raw := `{
		"name": null,
		"email": 12345,
		"workExperience": "none",
		"extra_key": {"whatever": true}
	}`

	cand, err := ParseCandidate(raw)
	require.NoError(t, err)
	assert.Equal(t, "", cand.Name.String())
	assert.Equal(t, "12345", cand.Email.String())
	assert.Nil(t, cand.WorkExperience)
}

func TestParseCandidate_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "whitespace only", raw: "   \n\t"},
		{name: "prose", raw: "I could not find a resume in the provided text."},
		{name: "truncated JSON", raw: `{"name": "John`},
		{name: "empty fence", raw: "```json\n```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cand, err := ParseCandidate(tt.raw)
			assert.Nil(t, cand)
			var malformed *MalformedResponseError
			require.ErrorAs(t, err, &malformed)
		})
	}
}

func TestMalformedResponseError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &MalformedResponseError{Message: "bad", Cause: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "bad")
}
