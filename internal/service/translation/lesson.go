package translation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/skillquest-backend/internal/domain"
)

// TranslateLesson returns the lesson title and body in lang. English returns
// the lesson as authored. A stored translation is returned with Cached set;
// otherwise title and body are translated concurrently and stored.
func (s *Service) TranslateLesson(ctx context.Context, lessonID, lang string) (*domain.LessonTranslation, error) {
	if lessonID == "" || lang == "" {
		var errs []domain.FieldError
		if lessonID == "" {
			errs = append(errs, domain.FieldError{Field: "lessonId", Message: "required"})
		}
		if lang == "" {
			errs = append(errs, domain.FieldError{Field: "targetLang", Message: "required"})
		}
		return nil, domain.NewValidationErrors(errs)
	}

	if lang != SourceLang {
		stored, err := s.translations.Get(ctx, lessonID, lang)
		switch {
		case err == nil:
			return stored, nil
		case !errors.Is(err, domain.ErrNotFound):
			s.log.WarnContext(ctx, "read stored lesson translation",
				slog.String("lesson_id", lessonID),
				slog.String("error", err.Error()),
			)
		}
	}

	lesson, err := s.lessons.GetByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	if lang == SourceLang {
		return &domain.LessonTranslation{
			LessonID: lesson.ID,
			Lang:     SourceLang,
			Title:    lesson.Title,
			Content:  lesson.EnglishContent,
		}, nil
	}

	tr := domain.LessonTranslation{LessonID: lesson.ID, Lang: lang}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out, err := s.translateOrKeep(gctx, lesson.Title, lang)
		tr.Title = out
		return err
	})
	g.Go(func() error {
		out, err := s.translateOrKeep(gctx, lesson.EnglishContent, lang)
		tr.Content = out
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.ErrorContext(ctx, "translate lesson",
			slog.String("lesson_id", lessonID),
			slog.String("lang", lang),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("%w: %w", ErrTranslationFailed, err)
	}

	if tr.Title == lesson.Title && tr.Content == lesson.EnglishContent {
		// Nothing was translated; keep the slot free for a later attempt.
		return &tr, nil
	}

	if err := s.translations.Save(ctx, tr); err != nil {
		s.log.WarnContext(ctx, "store lesson translation",
			slog.String("lesson_id", lessonID),
			slog.String("lang", lang),
			slog.String("error", err.Error()),
		)
	}

	return &tr, nil
}

// translateOrKeep returns text translated into lang, or text itself when the
// provider answers with nothing.
func (s *Service) translateOrKeep(ctx context.Context, text, lang string) (string, error) {
	if text == "" {
		return "", nil
	}
	out, err := s.translator.Translate(ctx, text, SourceLang, lang)
	if err != nil {
		return "", err
	}
	if out == "" {
		return text, nil
	}
	return out, nil
}
