package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/skillquest-backend/internal/domain"
	"github.com/heartmarshall/skillquest-backend/internal/service/roadmap"
)

// Error messages of the roadmap endpoint.
const (
	msgInvalidField     = "Invalid field"
	msgCreateFailed     = "Failed to create roadmap"
	msgGenerationFailed = "Generation failed"
)

// GenerationFailedMessage is the body used when the roadmap route panics.
const GenerationFailedMessage = msgGenerationFailed

type roadmapService interface {
	RequestRoadmap(ctx context.Context, field string) (*domain.RoadmapView, error)
}

// RoadmapHandler serves POST /api/generate-roadmap.
type RoadmapHandler struct {
	svc roadmapService
	log *slog.Logger
}

// NewRoadmapHandler creates a RoadmapHandler.
func NewRoadmapHandler(svc roadmapService, logger *slog.Logger) *RoadmapHandler {
	return &RoadmapHandler{svc: svc, log: logger.With("handler", "roadmap")}
}

// Generate returns the stored roadmap for a field, creating it on first request.
func (h *RoadmapHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := decodeBody(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidField)
		return
	}
	field, ok := body["field"].(string)
	if !ok {
		writeError(w, http.StatusBadRequest, msgInvalidField)
		return
	}

	view, err := h.svc.RequestRoadmap(r.Context(), field)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (h *RoadmapHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, msgInvalidField)
	case errors.Is(err, roadmap.ErrCreateFailed):
		writeError(w, http.StatusInternalServerError, msgCreateFailed)
	default:
		h.log.ErrorContext(r.Context(), "roadmap request failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, msgGenerationFailed)
	}
}
