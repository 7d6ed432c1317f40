package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/application/services"
	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/domain/entities"
)

// ChecklistService defines the checklist operations used by the handler.
type ChecklistService interface {
	MasterChecklist() (*entities.MasterChecklist, error)
	GetProstheticChecklist(ctx context.Context, caseID string) (*services.ProstheticChecklistResponse, error)
	UpdateProstheticChecklist(ctx context.Context, caseID string, checklist entities.FilteredChecklist) (*entities.Case, error)
	UpdateLegacyChecklist(ctx context.Context, caseID string, phase entities.ChecklistPhase, items []entities.ChecklistItem) (*entities.Case, error)
	AddCustomItem(ctx context.Context, caseID string, phase entities.ChecklistPhase, text string) (*entities.Case, error)
}

// ChecklistHandler handles checklist HTTP requests.
type ChecklistHandler struct {
	service ChecklistService
}

// NewChecklistHandler creates a new checklist handler.
func NewChecklistHandler(service ChecklistService) *ChecklistHandler {
	return &ChecklistHandler{service: service}
}

// GetMasterChecklist handles GET /api/prosthetic-checklist/master
func (h *ChecklistHandler) GetMasterChecklist(w http.ResponseWriter, r *http.Request) {
	template, err := h.service.MasterChecklist()
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, template)
}

// GetProstheticChecklist handles GET /api/cases/{id}/prosthetic-checklist
func (h *ChecklistHandler) GetProstheticChecklist(w http.ResponseWriter, r *http.Request) {
	caseID := r.PathValue("id")
	if caseID == "" {
		respondWithError(w, http.StatusBadRequest, "case ID is required")
		return
	}

	resp, err := h.service.GetProstheticChecklist(r.Context(), caseID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}

// UpdateProstheticChecklist handles PUT /api/cases/{id}/prosthetic-checklist
func (h *ChecklistHandler) UpdateProstheticChecklist(w http.ResponseWriter, r *http.Request) {
	caseID := r.PathValue("id")

	var req struct {
		Checklist entities.FilteredChecklist `json:"checklist"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	c, err := h.service.UpdateProstheticChecklist(r.Context(), caseID, req.Checklist)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, c)
}

// UpdateChecklist handles PUT /api/cases/{id}/checklists
func (h *ChecklistHandler) UpdateChecklist(w http.ResponseWriter, r *http.Request) {
	caseID := r.PathValue("id")

	var req struct {
		Phase entities.ChecklistPhase  `json:"phase"`
		Items []entities.ChecklistItem `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	c, err := h.service.UpdateLegacyChecklist(r.Context(), caseID, req.Phase, req.Items)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, c)
}

// AddChecklistItem handles POST /api/cases/{id}/checklists/{phase}/item
func (h *ChecklistHandler) AddChecklistItem(w http.ResponseWriter, r *http.Request) {
	caseID := r.PathValue("id")
	phase := entities.ChecklistPhase(r.PathValue("phase"))

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	c, err := h.service.AddCustomItem(r.Context(), caseID, phase, req.Text)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, c)
}
