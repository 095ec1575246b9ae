package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/heartmarshall/skillquest-backend/internal/domain"
)

type lessonService interface {
	List(ctx context.Context, filter domain.LessonFilter) ([]domain.Lesson, error)
	Get(ctx context.Context, id string) (*domain.Lesson, error)
}

// LessonHandler serves the lesson read endpoints.
type LessonHandler struct {
	svc lessonService
	log *slog.Logger
}

// NewLessonHandler creates a LessonHandler.
func NewLessonHandler(svc lessonService, logger *slog.Logger) *LessonHandler {
	return &LessonHandler{svc: svc, log: logger.With("handler", "lesson")}
}

type lessonListResponse struct {
	Lessons []domain.Lesson `json:"lessons"`
}

// List handles GET /api/lessons. The skill parameter may repeat or hold a
// comma-separated list.
func (h *LessonHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter domain.LessonFilter
	for _, v := range q["skill"] {
		filter.SkillTags = append(filter.SkillTags, strings.Split(v, ",")...)
	}
	filter.Category = q.Get("category")

	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = n
	}

	lessons, err := h.svc.List(r.Context(), filter)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, lessonListResponse{Lessons: lessons})
}

// Get handles GET /api/lessons/{id}.
func (h *LessonHandler) Get(w http.ResponseWriter, r *http.Request) {
	l, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, l)
}

func (h *LessonHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, msgLessonNotFound)
	default:
		h.log.ErrorContext(r.Context(), "lesson request failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
