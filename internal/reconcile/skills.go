package reconcile

import (
	"strings"

	"github.com/jonathan/portfolio-builder/internal/types"
)

// MergeSkills reconciles a flat candidate skill list against the current
// skill set. The stored shape is detected first and never silently
// downgraded: a flat candidate arriving against a categorized set folds into
// the fallback category instead of replacing the map.
func MergeSkills(current types.SkillSet, candidate []string) types.SkillSet {
	incoming := filterBlank(candidate)
	if len(incoming) == 0 {
		return current
	}

	if current.Shape() == types.SkillShapeCategorized {
		return foldIntoCategories(current, incoming)
	}

	return types.SkillSet{Flat: incoming}
}

// foldIntoCategories adds flat skills under the fallback category, keeping
// every existing category intact and skipping skills already present anywhere
// in the set (case-insensitive).
func foldIntoCategories(current types.SkillSet, incoming []string) types.SkillSet {
	cats := make(map[string][]string, len(current.Categories)+1)
	seen := make(map[string]bool)
	for name, items := range current.Categories {
		copied := filterBlank(items)
		cats[name] = copied
		for _, s := range copied {
			seen[strings.ToLower(s)] = true
		}
	}

	for _, s := range incoming {
		if seen[strings.ToLower(s)] {
			continue
		}
		seen[strings.ToLower(s)] = true
		cats[types.FallbackCategory] = append(cats[types.FallbackCategory], s)
	}

	return types.SkillSet{Categories: cats}
}

// filterBlank trims entries and drops empty strings, deduplicating
// case-insensitively while preserving order.
func filterBlank(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[strings.ToLower(s)] {
			continue
		}
		seen[strings.ToLower(s)] = true
		out = append(out, s)
	}
	return out
}
