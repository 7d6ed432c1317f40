package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/domain/entities"
)

// FeedbackService defines the reflection operations used by the handler.
type FeedbackService interface {
	UpdateFeedback(ctx context.Context, id string, feedback entities.Feedback) (*entities.Case, error)
}

// LearningService defines the suggestion aggregation used by the handler.
type LearningService interface {
	GetSuggestions(ctx context.Context) ([]string, error)
}

// FeedbackHandler handles the post-case reflection and the learning-loop
// suggestion feed.
type FeedbackHandler struct {
	service  FeedbackService
	learning LearningService
}

// NewFeedbackHandler creates a new feedback handler.
func NewFeedbackHandler(service FeedbackService, learning LearningService) *FeedbackHandler {
	return &FeedbackHandler{
		service:  service,
		learning: learning,
	}
}

// UpdateFeedback handles PUT /api/cases/{id}/feedback
func (h *FeedbackHandler) UpdateFeedback(w http.ResponseWriter, r *http.Request) {
	caseID := r.PathValue("id")
	if caseID == "" {
		respondWithError(w, http.StatusBadRequest, "case ID is required")
		return
	}

	var feedback entities.Feedback
	if err := json.NewDecoder(r.Body).Decode(&feedback); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	c, err := h.service.UpdateFeedback(r.Context(), caseID, feedback)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, c)
}

// GetSuggestions handles GET /api/learning/suggestions
func (h *FeedbackHandler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.learning.GetSuggestions(r.Context())
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"suggestions": suggestions,
		"disclaimer":  "These suggestions are based on your past case reflections.",
	})
}
