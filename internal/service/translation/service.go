package translation

import (
	"context"
	"errors"
	"log/slog"

	"github.com/heartmarshall/skillquest-backend/internal/domain"
)

// SourceLang is the language lessons are authored in and the default source.
const SourceLang = "en"

// ErrTranslationFailed means the translation provider could not be reached.
var ErrTranslationFailed = errors.New("translation failed")

// Translator translates text between two languages.
type Translator interface {
	Translate(ctx context.Context, q, source, target string) (string, error)
}

// Cache stores text translations. A nil Cache disables caching.
type Cache interface {
	Get(ctx context.Context, source, target, q string) (string, bool, error)
	Set(ctx context.Context, source, target, q, translated string) error
}

type lessonRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Lesson, error)
}

type translationRepo interface {
	Get(ctx context.Context, lessonID, lang string) (*domain.LessonTranslation, error)
	Save(ctx context.Context, tr domain.LessonTranslation) error
}

// Service translates free text and lessons.
type Service struct {
	log          *slog.Logger
	translator   Translator
	cache        Cache
	lessons      lessonRepo
	translations translationRepo
}

// NewService creates a new translation service.
func NewService(
	logger *slog.Logger,
	translator Translator,
	cache Cache,
	lessons lessonRepo,
	translations translationRepo,
) *Service {
	return &Service{
		log:          logger.With("service", "translation"),
		translator:   translator,
		cache:        cache,
		lessons:      lessons,
		translations: translations,
	}
}
