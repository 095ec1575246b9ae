package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/skillquest-backend/internal/adapter/cache"
	"github.com/heartmarshall/skillquest-backend/internal/adapter/postgres"
	lessonrepo "github.com/heartmarshall/skillquest-backend/internal/adapter/postgres/lesson"
	roadmaprepo "github.com/heartmarshall/skillquest-backend/internal/adapter/postgres/roadmap"
	translationrepo "github.com/heartmarshall/skillquest-backend/internal/adapter/postgres/translation"
	"github.com/heartmarshall/skillquest-backend/internal/adapter/provider/anthropic"
	"github.com/heartmarshall/skillquest-backend/internal/adapter/provider/gemini"
	"github.com/heartmarshall/skillquest-backend/internal/adapter/provider/libretranslate"
	"github.com/heartmarshall/skillquest-backend/internal/adapter/provider/translate"
	"github.com/heartmarshall/skillquest-backend/internal/config"
	"github.com/heartmarshall/skillquest-backend/internal/service/lesson"
	"github.com/heartmarshall/skillquest-backend/internal/service/roadmap"
	"github.com/heartmarshall/skillquest-backend/internal/service/translation"
	"github.com/heartmarshall/skillquest-backend/internal/transport/middleware"
	"github.com/heartmarshall/skillquest-backend/internal/transport/rest"
)

// Version, Commit, and BuildTime are set via ldflags at build time.
// Example: go build -ldflags "-X github.com/heartmarshall/skillquest-backend/internal/app.Version=1.0.0"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion returns a formatted version string for startup logs and health endpoints.
func BuildVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime)
}

// Run loads configuration, wires every dependency and serves HTTP until ctx
// is cancelled, then shuts the server down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	var translationCache translation.Cache
	var redisCache *cache.TranslationCache
	if cfg.Redis.URL != "" {
		redisCache, err = cache.NewTranslationCache(ctx, cfg.Redis.URL, cfg.Redis.CacheTTL, logger)
		if err != nil {
			logger.Warn("translation cache unavailable", slog.String("error", err.Error()))
		} else {
			defer redisCache.Close() //nolint:errcheck
			translationCache = redisCache
		}
	}

	services := buildServices(cfg, logger, pool, translationCache)

	health := rest.NewHealthHandler(pool, BuildVersion())
	if redisCache != nil {
		health.WithOptional("cache", redisCache)
	}

	limiter := middleware.NewRateLimiter(5 * time.Minute)
	defer limiter.Stop()

	handler := NewRouter(Handlers{
		Roadmap:   rest.NewRoadmapHandler(services.roadmap, logger),
		Translate: rest.NewTranslateHandler(services.translation, logger),
		Lesson:    rest.NewLessonHandler(services.lesson, logger),
		Health:    health,
	}, cfg, logger, limiter)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

type services struct {
	roadmap     *roadmap.Service
	lesson      *lesson.Service
	translation *translation.Service
}

func buildServices(cfg *config.Config, logger *slog.Logger, pool *pgxpool.Pool, tc translation.Cache) services {
	tx := postgres.NewTxManager(pool)
	roadmaps := roadmaprepo.New(pool)
	lessons := lessonrepo.New(pool)
	translations := translationrepo.New(pool)

	return services{
		roadmap:     roadmap.NewService(logger, roadmaps, lessons, tx, NewGenerator(cfg.Generation, logger)),
		lesson:      lesson.NewService(logger, lessons),
		translation: translation.NewService(logger, NewTranslator(cfg.Translation, logger), tc, lessons, translations),
	}
}

// NewGenerator selects the roadmap generator. It returns nil when no
// credential is configured for the selected provider.
func NewGenerator(cfg config.GenerationConfig, logger *slog.Logger) roadmap.Generator {
	if !cfg.Enabled() {
		logger.Info("roadmap generation disabled, fallback roadmaps only",
			slog.String("provider", cfg.Provider))
		return nil
	}
	switch cfg.Provider {
	case config.ProviderAnthropic:
		return anthropic.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel, cfg.Timeout, logger)
	default:
		return gemini.NewClientWithURL(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.Timeout, logger)
	}
}

// NewTranslator selects the machine translator.
func NewTranslator(cfg config.TranslationConfig, logger *slog.Logger) translation.Translator {
	if cfg.Disabled {
		logger.Info("translation disabled, echoing source text")
		return translate.NewNoop()
	}
	return libretranslate.NewProvider(cfg.URL, cfg.APIKey, cfg.Timeout, logger)
}
