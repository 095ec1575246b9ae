package roadmap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/skillquest-backend/internal/domain"
)

// RequestRoadmap returns the roadmap for field. A stored roadmap is returned
// without writes. Otherwise a draft is generated (or built by the fallback),
// persisted with its levels in one transaction and projected into lessons.
//
// Concurrent requests that normalize to the same slug share one resolution.
// The shared work is detached from the caller's cancellation, so a client
// that goes away does not fail the others waiting on the same slug; each
// caller still returns as soon as its own ctx is done.
func (s *Service) RequestRoadmap(ctx context.Context, field string) (*domain.RoadmapView, error) {
	if field == "" {
		return nil, domain.NewValidationError("field", "required")
	}

	slug := domain.NormalizeSlug(field)
	shared := context.WithoutCancel(ctx)

	ch := s.inflight.DoChan(slug, func() (any, error) {
		return s.resolve(shared, field, slug)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			s.log.DebugContext(ctx, "roadmap request coalesced", slog.String("slug", slug))
		}
		return res.Val.(*domain.RoadmapView), nil
	}
}

func (s *Service) resolve(ctx context.Context, field, slug string) (*domain.RoadmapView, error) {
	view, err := s.lookup(ctx, slug)
	if err == nil {
		return view, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("find roadmap %s: %w", slug, err)
	}

	draft := s.draft(ctx, field, slug).Normalize(slug)

	if err := s.persist(ctx, draft); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			// Another instance created it between lookup and insert.
			view, err := s.lookup(ctx, slug)
			if err != nil {
				return nil, fmt.Errorf("find roadmap %s after conflict: %w", slug, err)
			}
			s.log.InfoContext(ctx, "roadmap created concurrently, returning stored copy", slog.String("slug", slug))
			return view, nil
		}
		s.log.ErrorContext(ctx, "persist roadmap",
			slog.String("slug", slug),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("%w: %w", ErrCreateFailed, err)
	}

	if err := s.ProjectLessons(ctx, slug, draft.Levels); err != nil {
		s.log.ErrorContext(ctx, "project lessons",
			slog.String("slug", slug),
			slog.String("error", err.Error()),
		)
	}

	s.log.InfoContext(ctx, "roadmap created",
		slog.String("slug", slug),
		slog.Int("levels", len(draft.Levels)),
	)

	return domain.ViewFromDraft(draft), nil
}

func (s *Service) lookup(ctx context.Context, slug string) (*domain.RoadmapView, error) {
	rm, levels, err := s.roadmaps.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return domain.NewRoadmapView(rm, levels), nil
}

// draft returns the generated roadmap, or the fallback when generation is
// unavailable, fails, or yields a candidate that does not validate.
func (s *Service) draft(ctx context.Context, field, slug string) domain.RoadmapDraft {
	if s.gen == nil {
		s.log.InfoContext(ctx, "generation not configured, using fallback", slog.String("slug", slug))
		return BuildFallback(field, slug)
	}

	raw, err := s.gen.GenerateRoadmap(ctx, field)
	if err != nil {
		s.log.WarnContext(ctx, "roadmap generation failed, using fallback",
			slog.String("slug", slug),
			slog.String("error", err.Error()),
		)
		return BuildFallback(field, slug)
	}

	d, err := ValidateCandidate(raw)
	if err != nil {
		s.log.WarnContext(ctx, "generated roadmap rejected, using fallback",
			slog.String("slug", slug),
			slog.String("error", err.Error()),
		)
		return BuildFallback(field, slug)
	}

	if d.Slug != slug {
		s.log.DebugContext(ctx, "generator slug overridden",
			slog.String("proposed", d.Slug),
			slog.String("slug", slug),
		)
	}

	return d
}

// persist writes the roadmap and its levels in level_no order, all or nothing.
func (s *Service) persist(ctx context.Context, d domain.RoadmapDraft) error {
	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		rm, err := s.roadmaps.Create(txCtx, d.Slug, d.Title)
		if err != nil {
			return fmt.Errorf("create roadmap: %w", err)
		}
		for _, lv := range d.Levels {
			if err := s.roadmaps.AddLevel(txCtx, rm.ID, lv); err != nil {
				return fmt.Errorf("add level %d: %w", lv.LevelNo, err)
			}
		}
		return nil
	})
}
