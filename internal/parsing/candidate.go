// Package parsing decodes raw model responses into candidate extraction
// results. Decoding is deliberately lenient: missing keys, null values,
// wrongly-typed fields, and unknown extra keys all pass through; only a
// response that is not decodable as JSON at all fails.
package parsing

import (
	"encoding/json"
	"strings"

	"github.com/jonathan/portfolio-builder/internal/llm"
	"github.com/jonathan/portfolio-builder/internal/types"
)

// ParseCandidate parses the raw model response text into a candidate object.
// Markdown code fences are stripped first. Returns *MalformedResponseError
// when the response is not minimally well-formed JSON.
func ParseCandidate(raw string) (*types.Candidate, error) {
	cleaned := llm.CleanJSONBlock(raw)
	if strings.TrimSpace(cleaned) == "" {
		return nil, &MalformedResponseError{Message: "empty response"}
	}

	// The candidate's field types absorb shape mismatches themselves, so a
	// decode error here means the response is not JSON.
	var cand types.Candidate
	if err := json.Unmarshal([]byte(cleaned), &cand); err != nil {
		return nil, &MalformedResponseError{
			Message: "response is not valid JSON",
			Cause:   err,
		}
	}

	return &cand, nil
}
