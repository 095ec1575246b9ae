package app

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/skillquest-backend/internal/config"
	"github.com/heartmarshall/skillquest-backend/internal/transport/middleware"
	"github.com/heartmarshall/skillquest-backend/internal/transport/rest"
)

// Handlers groups the REST handlers mounted by NewRouter.
type Handlers struct {
	Roadmap   *rest.RoadmapHandler
	Translate *rest.TranslateHandler
	Lesson    *rest.LessonHandler
	Health    *rest.HealthHandler
}

// NewRouter builds the HTTP handler tree.
func NewRouter(h Handlers, cfg *config.Config, logger *slog.Logger, limiter *middleware.RateLimiter) http.Handler {
	mux := http.NewServeMux()

	roadmapMW := middleware.Chain(
		limiter.Limit("roadmap", cfg.RateLimit.RoadmapPerMinute),
		middleware.RecoveryWithMessage(logger, rest.GenerationFailedMessage),
	)
	translateMW := limiter.Limit("translate", cfg.RateLimit.TranslatePerMinute)

	mux.Handle("POST /api/generate-roadmap", roadmapMW.ThenFunc(h.Roadmap.Generate))
	mux.Handle("POST /api/translate", translateMW.ThenFunc(h.Translate.Text))
	mux.Handle("POST /api/translate/lesson", translateMW.ThenFunc(h.Translate.Lesson))
	mux.HandleFunc("GET /api/lessons", h.Lesson.List)
	mux.HandleFunc("GET /api/lessons/{id}", h.Lesson.Get)

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	return middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	)(mux)
}
