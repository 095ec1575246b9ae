package domain

import (
	"fmt"
	"time"
)

// Lesson projection constants.
const (
	LessonCategoryPriority   = "priority"
	LessonXPReward           = 100
	LessonPlaceholderContent = "Content coming soon..."
)

// Lesson is a content row derived from a roadmap level.
type Lesson struct {
	ID             string    `db:"id"              json:"id"`
	Title          string    `db:"title"           json:"title"`
	EnglishContent string    `db:"english_content" json:"english_content"`
	Level          int       `db:"level"           json:"level"`
	Category       string    `db:"category"        json:"category"`
	SkillTag       string    `db:"skill_tag"       json:"skill_tag"`
	XPReward       int       `db:"xp_reward"       json:"xp_reward"`
	CreatedAt      time.Time `db:"created_at"      json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"      json:"updated_at"`
}

// LessonID returns the deterministic lesson identity for a roadmap level.
func LessonID(slug string, levelNo int) string {
	return fmt.Sprintf("%s-level-%d", slug, levelNo)
}

// NewLessonFromLevel projects a roadmap level into a lesson row.
func NewLessonFromLevel(slug string, lv LevelDraft) Lesson {
	content := lv.ShortDescription
	if content == "" {
		content = LessonPlaceholderContent
	}
	return Lesson{
		ID:             LessonID(slug, lv.LevelNo),
		Title:          lv.Title,
		EnglishContent: content,
		Level:          lv.LevelNo,
		Category:       LessonCategoryPriority,
		SkillTag:       slug,
		XPReward:       LessonXPReward,
	}
}

// LessonFilter narrows a lesson listing. Empty fields do not filter.
type LessonFilter struct {
	SkillTags []string
	Category  string
	Limit     int
}

// LessonTranslation is a lesson title and body in a target language.
type LessonTranslation struct {
	LessonID string `db:"lesson_id"`
	Lang     string `db:"lang"`
	Title    string `db:"translated_title"`
	Content  string `db:"translated_text"`
	Cached   bool   `db:"-"`
}
