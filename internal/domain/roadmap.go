package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// MaxLevels is the upper bound on levels per roadmap, both accepted and exposed.
const MaxLevels = 15

// TheoryStatusPending marks a level whose theory content has not been authored yet.
const TheoryStatusPending = "pending"

// Roadmap is one curriculum, keyed by its slug.
type Roadmap struct {
	ID        uuid.UUID
	Slug      string
	Title     string
	CreatedAt time.Time
}

// Level is one ordered step of a roadmap.
type Level struct {
	ID               uuid.UUID
	RoadmapID        uuid.UUID
	LevelNo          int
	Title            string
	ShortDescription string
	TheoryStatus     string
	IsActive         bool
	CreatedAt        time.Time
}

// LevelDraft is a level before it is persisted. It is also the wire shape of a level.
type LevelDraft struct {
	LevelNo          int    `json:"level_no"`
	Title            string `json:"title"`
	ShortDescription string `json:"short_description"`
}

// RoadmapDraft is a roadmap produced by the generator or the fallback builder.
type RoadmapDraft struct {
	Slug   string       `json:"slug"`
	Title  string       `json:"title"`
	Levels []LevelDraft `json:"levels"`
}

// Normalize forces the slug, orders levels by level_no and caps them at MaxLevels.
func (d RoadmapDraft) Normalize(slug string) RoadmapDraft {
	levels := slices.Clone(d.Levels)
	slices.SortStableFunc(levels, func(a, b LevelDraft) int { return a.LevelNo - b.LevelNo })
	if len(levels) > MaxLevels {
		levels = levels[:MaxLevels]
	}
	return RoadmapDraft{Slug: slug, Title: d.Title, Levels: levels}
}

// RoadmapView is the canonical roadmap returned to callers.
type RoadmapView struct {
	Slug   string       `json:"slug"`
	Title  string       `json:"title"`
	Levels []LevelDraft `json:"levels"`
}

// NewRoadmapView builds the view of a stored roadmap: active levels only,
// ascending by level_no, at most MaxLevels.
func NewRoadmapView(r *Roadmap, levels []Level) *RoadmapView {
	active := make([]Level, 0, len(levels))
	for _, lv := range levels {
		if lv.IsActive {
			active = append(active, lv)
		}
	}
	slices.SortStableFunc(active, func(a, b Level) int { return a.LevelNo - b.LevelNo })
	if len(active) > MaxLevels {
		active = active[:MaxLevels]
	}

	view := &RoadmapView{
		Slug:   r.Slug,
		Title:  r.Title,
		Levels: make([]LevelDraft, len(active)),
	}
	for i, lv := range active {
		view.Levels[i] = LevelDraft{
			LevelNo:          lv.LevelNo,
			Title:            lv.Title,
			ShortDescription: lv.ShortDescription,
		}
	}
	return view
}

// ViewFromDraft builds the view returned right after a draft is persisted.
func ViewFromDraft(d RoadmapDraft) *RoadmapView {
	return &RoadmapView{
		Slug:   d.Slug,
		Title:  d.Title,
		Levels: slices.Clone(d.Levels),
	}
}
