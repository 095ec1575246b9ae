package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/skillquest-backend/internal/domain"
)

const (
	msgMissingFields     = "Missing required fields"
	msgLessonNotFound    = "Lesson not found"
	msgTranslationFailed = "Translation failed"
)

type translationService interface {
	TranslateText(ctx context.Context, q, source, target string) (string, error)
	TranslateLesson(ctx context.Context, lessonID, lang string) (*domain.LessonTranslation, error)
}

// TranslateHandler serves the translation endpoints.
type TranslateHandler struct {
	svc translationService
	log *slog.Logger
}

// NewTranslateHandler creates a TranslateHandler.
func NewTranslateHandler(svc translationService, logger *slog.Logger) *TranslateHandler {
	return &TranslateHandler{svc: svc, log: logger.With("handler", "translate")}
}

type translateTextRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
}

type translateTextResponse struct {
	TranslatedText string `json:"translatedText"`
}

type translateLessonRequest struct {
	LessonID   string `json:"lessonId"`
	TargetLang string `json:"targetLang"`
}

type translateLessonResponse struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Cached  bool   `json:"cached"`
}

// Text handles POST /api/translate.
func (h *TranslateHandler) Text(w http.ResponseWriter, r *http.Request) {
	var req translateTextRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgMissingFields)
		return
	}

	out, err := h.svc.TranslateText(r.Context(), req.Q, req.Source, req.Target)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, translateTextResponse{TranslatedText: out})
}

// Lesson handles POST /api/translate/lesson.
func (h *TranslateHandler) Lesson(w http.ResponseWriter, r *http.Request) {
	var req translateLessonRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgMissingFields)
		return
	}

	tr, err := h.svc.TranslateLesson(r.Context(), req.LessonID, req.TargetLang)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, translateLessonResponse{
		Title:   tr.Title,
		Content: tr.Content,
		Cached:  tr.Cached,
	})
}

func (h *TranslateHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, msgMissingFields)
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, msgLessonNotFound)
	default:
		h.log.ErrorContext(r.Context(), "translation failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, msgTranslationFailed)
	}
}
