package roadmap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/skillquest-backend/internal/domain"
)

// ProjectLessons upserts one lesson per level, keyed "<slug>-level-<level_no>".
// Running it again with the same input leaves the lessons unchanged.
func (s *Service) ProjectLessons(ctx context.Context, slug string, levels []domain.LevelDraft) error {
	if len(levels) == 0 {
		return nil
	}

	lessons := make([]domain.Lesson, 0, len(levels))
	for _, lv := range levels {
		lessons = append(lessons, domain.NewLessonFromLevel(slug, lv))
	}

	if err := s.lessons.Upsert(ctx, lessons); err != nil {
		return fmt.Errorf("upsert lessons for %s: %w", slug, err)
	}
	return nil
}

// ResyncResult summarizes a ResyncLessons run.
type ResyncResult struct {
	Roadmaps int
	Lessons  int
	Failed   []string
}

// ResyncLessons re-projects the active levels of every stored roadmap.
// A roadmap that fails is recorded and the run continues; the joined errors
// are returned alongside the result.
func (s *Service) ResyncLessons(ctx context.Context) (ResyncResult, error) {
	var res ResyncResult

	slugs, err := s.roadmaps.ListSlugs(ctx)
	if err != nil {
		return res, fmt.Errorf("list roadmaps: %w", err)
	}

	var errs []error
	for _, slug := range slugs {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		view, err := s.lookup(ctx, slug)
		if err == nil {
			err = s.ProjectLessons(ctx, slug, view.Levels)
		}
		if err != nil {
			s.log.ErrorContext(ctx, "resync lessons",
				slog.String("slug", slug),
				slog.String("error", err.Error()),
			)
			res.Failed = append(res.Failed, slug)
			errs = append(errs, fmt.Errorf("%s: %w", slug, err))
			continue
		}

		res.Roadmaps++
		res.Lessons += len(view.Levels)
	}

	s.log.InfoContext(ctx, "lessons resynced",
		slog.Int("roadmaps", res.Roadmaps),
		slog.Int("lessons", res.Lessons),
		slog.Int("failed", len(res.Failed)),
	)

	return res, errors.Join(errs...)
}
