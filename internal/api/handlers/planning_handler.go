package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/domain/entities"
)

// PlanningService defines the risk analysis operation used by the handler.
type PlanningService interface {
	Analyze(ctx context.Context, id string) (*entities.RiskAssessment, error)
}

// PlanningHandler handles risk analysis HTTP requests.
type PlanningHandler struct {
	service PlanningService
}

// NewPlanningHandler creates a new planning handler.
func NewPlanningHandler(service PlanningService) *PlanningHandler {
	return &PlanningHandler{service: service}
}

// AnalyzeCase handles POST /api/cases/{id}/analyze
func (h *PlanningHandler) AnalyzeCase(w http.ResponseWriter, r *http.Request) {
	caseID := r.PathValue("id")
	if caseID == "" {
		respondWithError(w, http.StatusBadRequest, "case ID is required")
		return
	}

	assessment, err := h.service.Analyze(r.Context(), caseID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"riskAssessment": assessment,
	})
}
