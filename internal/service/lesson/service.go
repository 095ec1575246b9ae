package lesson

import (
	"context"
	"log/slog"
	"strings"

	"github.com/heartmarshall/skillquest-backend/internal/domain"
)

const (
	defaultLimit = 50
	maxLimit     = 100
)

type lessonRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Lesson, error)
	List(ctx context.Context, filter domain.LessonFilter) ([]domain.Lesson, error)
}

// Service implements read access to lessons.
type Service struct {
	log     *slog.Logger
	lessons lessonRepo
}

// NewService creates a new lesson service.
func NewService(logger *slog.Logger, lessons lessonRepo) *Service {
	return &Service{
		log:     logger.With("service", "lesson"),
		lessons: lessons,
	}
}

// List returns lessons ordered by level, then id. Blank skill tags are
// dropped and the limit is clamped to [1, 100], defaulting to 50.
func (s *Service) List(ctx context.Context, filter domain.LessonFilter) ([]domain.Lesson, error) {
	tags := make([]string, 0, len(filter.SkillTags))
	for _, t := range filter.SkillTags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	filter.SkillTags = tags
	filter.Category = strings.TrimSpace(filter.Category)
	filter.Limit = clampLimit(filter.Limit)

	return s.lessons.List(ctx, filter)
}

// Get returns a lesson by id.
func (s *Service) Get(ctx context.Context, id string) (*domain.Lesson, error) {
	if id == "" {
		return nil, domain.NewValidationError("id", "required")
	}
	return s.lessons.GetByID(ctx, id)
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}
