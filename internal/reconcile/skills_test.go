package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/portfolio-builder/internal/types"
)

func TestMergeSkills_FlatReplacesFlat(t *testing.T) {
	current := types.SkillSet{Flat: []string{""}}
	merged := MergeSkills(current, []string{"Go", "React"})
	assert.Equal(t, types.SkillShapeFlat, merged.Shape())
	assert.Equal(t, []string{"Go", "React"}, merged.Flat)
}

func TestMergeSkills_EmptyCandidateKeepsCurrent(t *testing.T) {
	tests := []struct {
		name      string
		candidate []string
	}{
		{name: "nil", candidate: nil},
		{name: "empty", candidate: []string{}},
		{name: "blank entries only", candidate: []string{"", "  "}},
	}

	current := types.SkillSet{Flat: []string{"Go"}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged := MergeSkills(current, tt.candidate)
			assert.Equal(t, current, merged)
		})
	}
}

func TestMergeSkills_CategorizedShapePreserved(t *testing.T) {
	current := types.SkillSet{Categories: map[string][]string{
		"Frontend": {"React"},
	}}

	merged := MergeSkills(current, []string{"Docker"})
	require.Equal(t, types.SkillShapeCategorized, merged.Shape())
	assert.Equal(t, []string{"React"}, merged.Categories["Frontend"])
	assert.Equal(t, []string{"Docker"}, merged.Categories[types.FallbackCategory])
}

func TestMergeSkills_FoldSkipsExistingCaseInsensitive(t *testing.T) {
	current := types.SkillSet{Categories: map[string][]string{
		"Frontend": {"React"},
		"Infra":    {"Docker"},
	}}

	merged := MergeSkills(current, []string{"react", "DOCKER", "Kubernetes"})
	assert.Equal(t, []string{"React"}, merged.Categories["Frontend"])
	assert.Equal(t, []string{"Docker"}, merged.Categories["Infra"])
	assert.Equal(t, []string{"Kubernetes"}, merged.Categories[types.FallbackCategory])
}

func TestMergeSkills_DedupAndTrim(t *testing.T) {
	merged := MergeSkills(types.SkillSet{}, []string{" Go ", "go", "React", "", "react"})
	assert.Equal(t, []string{"Go", "React"}, merged.Flat)
}

func TestMergeSkills_DoesNotMutateCurrentCategories(t *testing.T) {
	current := types.SkillSet{Categories: map[string][]string{
		"Frontend": {"React"},
	}}

	_ = MergeSkills(current, []string{"Docker"})
	assert.Equal(t, map[string][]string{"Frontend": {"React"}}, current.Categories)
}
