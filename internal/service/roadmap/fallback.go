package roadmap

import "github.com/heartmarshall/skillquest-backend/internal/domain"

var fallbackLevels = [...]domain.LevelDraft{
	{LevelNo: 1, Title: "Basics", ShortDescription: "Start with fundamentals"},
	{LevelNo: 2, Title: "Tools Setup", ShortDescription: "Install and configure tooling"},
	{LevelNo: 3, Title: "Core Concepts", ShortDescription: "Learn key concepts"},
	{LevelNo: 4, Title: "Hands-on Practice", ShortDescription: "Build small projects"},
	{LevelNo: 5, Title: "Project", ShortDescription: "Build a portfolio project"},
}

// BuildFallback returns the fixed five-level roadmap used when generation is
// unavailable or untrusted.
func BuildFallback(field, slug string) domain.RoadmapDraft {
	levels := make([]domain.LevelDraft, len(fallbackLevels))
	copy(levels, fallbackLevels[:])
	return domain.RoadmapDraft{
		Slug:   slug,
		Title:  field + " Roadmap",
		Levels: levels,
	}
}
