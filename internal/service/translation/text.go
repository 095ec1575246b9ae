package translation

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/skillquest-backend/internal/domain"
)

// TranslateText translates q into target. It never fails once the input is
// valid: an English target, a provider error or an empty provider answer
// all yield q unchanged.
func (s *Service) TranslateText(ctx context.Context, q, source, target string) (string, error) {
	if q == "" || target == "" {
		var errs []domain.FieldError
		if q == "" {
			errs = append(errs, domain.FieldError{Field: "q", Message: "required"})
		}
		if target == "" {
			errs = append(errs, domain.FieldError{Field: "target", Message: "required"})
		}
		return "", domain.NewValidationErrors(errs)
	}
	if source == "" {
		source = SourceLang
	}
	if target == SourceLang {
		return q, nil
	}

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, source, target, q)
		if err != nil {
			s.log.WarnContext(ctx, "translation cache read", slog.String("error", err.Error()))
		} else if ok {
			return cached, nil
		}
	}

	translated, err := s.translator.Translate(ctx, q, source, target)
	if err != nil {
		s.log.WarnContext(ctx, "translation failed, returning original text",
			slog.String("source", source),
			slog.String("target", target),
			slog.String("error", err.Error()),
		)
		return q, nil
	}
	if translated == "" || translated == q {
		return q, nil
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, source, target, q, translated); err != nil {
			s.log.WarnContext(ctx, "translation cache write", slog.String("error", err.Error()))
		}
	}

	return translated, nil
}
