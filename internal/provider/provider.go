// Package provider holds the contracts shared by external content providers:
// the roadmap generation prompt, response extraction and the errors adapters
// report when a provider call yields nothing usable.
package provider

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by provider adapters.
var (
	ErrUnexpectedStatus = errors.New("unexpected provider status")
	ErrEmptyResponse    = errors.New("empty provider response")
	ErrMalformedJSON    = errors.New("malformed provider json")
)

// RoadmapPrompt builds the single-turn instruction sent to a generative model.
func RoadmapPrompt(field string) string {
	return fmt.Sprintf(`You are an API that generates learning roadmaps.

Generate a beginner-friendly learning roadmap for the field: %s

STRICT RULES:
- Return ONLY valid JSON
- No markdown
- No explanation
- No extra text
- Max 15 levels

JSON FORMAT:
{
  "slug": "<lowercase-short-slug>",
  "title": "<Roadmap Title>",
  "levels": [
    {
      "level_no": 1,
      "title": "Level title",
      "short_description": "One-line description"
    }
  ]
}

IMPORTANT:
- Do NOT include theory content
- Do NOT include video links
- Keep titles simple and industry-aligned`, field)
}

// ExtractJSON returns the text between the first '{' and the last '}'.
// Models occasionally wrap the object in prose or code fences.
func ExtractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found: %w", ErrMalformedJSON)
	}
	return s[start : end+1], nil
}
