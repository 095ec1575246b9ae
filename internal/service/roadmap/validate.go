package roadmap

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/heartmarshall/skillquest-backend/internal/domain"
)

// ValidateCandidate checks a generated roadmap against the roadmap shape and
// decodes it. Types are checked on the untyped JSON value, so a level_no of
// "1" is rejected rather than coerced.
//
// Rules: slug and title are non-empty strings; levels holds 1..MaxLevels
// objects; each level_no is a unique integer >= 1, each title a non-empty
// string and each short_description a string.
func ValidateCandidate(raw []byte) (domain.RoadmapDraft, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return domain.RoadmapDraft{}, fmt.Errorf("%w: not json", ErrSchemaInvalid)
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return domain.RoadmapDraft{}, fmt.Errorf("%w: not an object", ErrSchemaInvalid)
	}

	slug, ok := nonEmptyString(obj["slug"])
	if !ok {
		return domain.RoadmapDraft{}, fmt.Errorf("%w: slug", ErrSchemaInvalid)
	}
	title, ok := nonEmptyString(obj["title"])
	if !ok {
		return domain.RoadmapDraft{}, fmt.Errorf("%w: title", ErrSchemaInvalid)
	}

	items, ok := obj["levels"].([]any)
	if !ok {
		return domain.RoadmapDraft{}, fmt.Errorf("%w: levels is not an array", ErrSchemaInvalid)
	}
	if len(items) == 0 || len(items) > domain.MaxLevels {
		return domain.RoadmapDraft{}, fmt.Errorf("%w: %d levels", ErrSchemaInvalid, len(items))
	}

	levels := make([]domain.LevelDraft, 0, len(items))
	seen := make(map[int]struct{}, len(items))
	for i, item := range items {
		lv, err := validateLevel(item)
		if err != nil {
			return domain.RoadmapDraft{}, fmt.Errorf("%w: levels[%d]: %s", ErrSchemaInvalid, i, err)
		}
		if _, dup := seen[lv.LevelNo]; dup {
			return domain.RoadmapDraft{}, fmt.Errorf("%w: levels[%d]: duplicate level_no %d", ErrSchemaInvalid, i, lv.LevelNo)
		}
		seen[lv.LevelNo] = struct{}{}
		levels = append(levels, lv)
	}

	return domain.RoadmapDraft{Slug: slug, Title: title, Levels: levels}, nil
}

// IsValidCandidate reports whether raw passes ValidateCandidate.
func IsValidCandidate(raw []byte) bool {
	_, err := ValidateCandidate(raw)
	return err == nil
}

func validateLevel(item any) (domain.LevelDraft, error) {
	m, ok := item.(map[string]any)
	if !ok {
		return domain.LevelDraft{}, fmt.Errorf("not an object")
	}

	n, ok := m["level_no"].(float64)
	if !ok {
		return domain.LevelDraft{}, fmt.Errorf("level_no is not a number")
	}
	if n != math.Trunc(n) || n < 1 || n > math.MaxInt32 {
		return domain.LevelDraft{}, fmt.Errorf("level_no %v is not a positive integer", n)
	}

	title, ok := nonEmptyString(m["title"])
	if !ok {
		return domain.LevelDraft{}, fmt.Errorf("title")
	}

	desc, ok := m["short_description"].(string)
	if !ok {
		return domain.LevelDraft{}, fmt.Errorf("short_description is not a string")
	}

	return domain.LevelDraft{LevelNo: int(n), Title: title, ShortDescription: desc}, nil
}

func nonEmptyString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok && s != ""
}
