package roadmap

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/heartmarshall/skillquest-backend/internal/domain"
)

// Errors returned by the roadmap service.
var (
	// ErrCreateFailed means the roadmap could not be persisted.
	ErrCreateFailed = errors.New("failed to create roadmap")
	// ErrSchemaInvalid means a generated candidate does not have the roadmap shape.
	ErrSchemaInvalid = errors.New("roadmap schema invalid")
)

type roadmapRepo interface {
	FindBySlug(ctx context.Context, slug string) (*domain.Roadmap, []domain.Level, error)
	Create(ctx context.Context, slug, title string) (*domain.Roadmap, error)
	AddLevel(ctx context.Context, roadmapID uuid.UUID, level domain.LevelDraft) error
	ListSlugs(ctx context.Context) ([]string, error)
}

type lessonRepo interface {
	Upsert(ctx context.Context, lessons []domain.Lesson) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Generator produces a roadmap candidate for a field as raw JSON.
type Generator interface {
	GenerateRoadmap(ctx context.Context, field string) (json.RawMessage, error)
}

// Service resolves roadmaps by field name, generating and persisting them on first request.
type Service struct {
	log      *slog.Logger
	roadmaps roadmapRepo
	lessons  lessonRepo
	tx       txManager
	gen      Generator
	inflight singleflight.Group
}

// NewService creates a new roadmap service. A nil gen means no generation
// credential is configured and every new roadmap is built by BuildFallback.
func NewService(
	logger *slog.Logger,
	roadmaps roadmapRepo,
	lessons lessonRepo,
	tx txManager,
	gen Generator,
) *Service {
	return &Service{
		log:      logger.With("service", "roadmap"),
		roadmaps: roadmaps,
		lessons:  lessons,
		tx:       tx,
		gen:      gen,
	}
}
