// Command resync-lessons re-derives lesson rows from every stored roadmap.
// It repairs lessons left behind when projection failed after a roadmap
// was created.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/skillquest-backend/internal/adapter/postgres"
	lessonrepo "github.com/heartmarshall/skillquest-backend/internal/adapter/postgres/lesson"
	roadmaprepo "github.com/heartmarshall/skillquest-backend/internal/adapter/postgres/roadmap"
	"github.com/heartmarshall/skillquest-backend/internal/app"
	"github.com/heartmarshall/skillquest-backend/internal/config"
	"github.com/heartmarshall/skillquest-backend/internal/service/roadmap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	svc := roadmap.NewService(
		logger,
		roadmaprepo.New(pool),
		lessonrepo.New(pool),
		postgres.NewTxManager(pool),
		nil,
	)

	res, err := svc.ResyncLessons(ctx)
	if err != nil {
		logger.Error("lesson resync failed",
			slog.Int("roadmaps", res.Roadmaps),
			slog.Int("lessons", res.Lessons),
			slog.Any("failed", res.Failed),
			slog.String("error", err.Error()),
		)
		pool.Close()
		os.Exit(1)
	}

	logger.Info("lesson resync completed",
		slog.Int("roadmaps", res.Roadmaps),
		slog.Int("lessons", res.Lessons),
	)
}
