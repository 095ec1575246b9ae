package rest

import (
	"context"
	"io"
	"log/slog"

	"github.com/heartmarshall/skillquest-backend/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type roadmapServiceMock struct {
	RequestRoadmapFunc func(ctx context.Context, field string) (*domain.RoadmapView, error)
	calls              []string
}

func (m *roadmapServiceMock) RequestRoadmap(ctx context.Context, field string) (*domain.RoadmapView, error) {
	m.calls = append(m.calls, field)
	return m.RequestRoadmapFunc(ctx, field)
}

type translationServiceMock struct {
	TranslateTextFunc   func(ctx context.Context, q, source, target string) (string, error)
	TranslateLessonFunc func(ctx context.Context, lessonID, lang string) (*domain.LessonTranslation, error)
}

func (m *translationServiceMock) TranslateText(ctx context.Context, q, source, target string) (string, error) {
	return m.TranslateTextFunc(ctx, q, source, target)
}

func (m *translationServiceMock) TranslateLesson(ctx context.Context, lessonID, lang string) (*domain.LessonTranslation, error) {
	return m.TranslateLessonFunc(ctx, lessonID, lang)
}

type lessonServiceMock struct {
	ListFunc func(ctx context.Context, filter domain.LessonFilter) ([]domain.Lesson, error)
	GetFunc  func(ctx context.Context, id string) (*domain.Lesson, error)
}

func (m *lessonServiceMock) List(ctx context.Context, filter domain.LessonFilter) ([]domain.Lesson, error) {
	return m.ListFunc(ctx, filter)
}

func (m *lessonServiceMock) Get(ctx context.Context, id string) (*domain.Lesson, error) {
	return m.GetFunc(ctx, id)
}
