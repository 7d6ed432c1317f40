package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/application/services"
	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/domain/entities"
	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/domain/repositories"
	apperrors "github.com/zatekoja/Implantcaseplanningdesign/backend/pkg/errors"
)

// CaseService defines the case lifecycle operations used by the handler.
type CaseService interface {
	Create(ctx context.Context, req services.CreateCaseRequest) (*entities.Case, error)
	GetByID(ctx context.Context, id string) (*entities.Case, error)
	List(ctx context.Context, filter repositories.CaseFilter) ([]*entities.Case, error)
	Update(ctx context.Context, id string, req services.UpdateCaseRequest) (*entities.Case, error)
	UpdateStatus(ctx context.Context, id string, status entities.CaseStatus) (*entities.Case, error)
	Delete(ctx context.Context, id string) error
}

// CaseHandler handles case CRUD and lifecycle HTTP requests.
type CaseHandler struct {
	service CaseService
}

// NewCaseHandler creates a new case handler.
func NewCaseHandler(service CaseService) *CaseHandler {
	return &CaseHandler{service: service}
}

// CreateCase handles POST /api/cases
func (h *CaseHandler) CreateCase(w http.ResponseWriter, r *http.Request) {
	var req services.CreateCaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	c, err := h.service.Create(r.Context(), req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, c)
}

// ListCases handles GET /api/cases
func (h *CaseHandler) ListCases(w http.ResponseWriter, r *http.Request) {
	filter := repositories.CaseFilter{
		Status: entities.CaseStatus(r.URL.Query().Get("status")),
		Limit:  queryInt(r, "limit", 50),
		Offset: queryInt(r, "offset", 0),
	}

	cases, err := h.service.List(r.Context(), filter)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"cases": cases,
		"count": len(cases),
	})
}

// GetCase handles GET /api/cases/{id}
func (h *CaseHandler) GetCase(w http.ResponseWriter, r *http.Request) {
	caseID := r.PathValue("id")
	if caseID == "" {
		respondWithError(w, http.StatusBadRequest, "case ID is required")
		return
	}

	c, err := h.service.GetByID(r.Context(), caseID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, c)
}

// UpdateCase handles PUT /api/cases/{id}
func (h *CaseHandler) UpdateCase(w http.ResponseWriter, r *http.Request) {
	caseID := r.PathValue("id")

	var req services.UpdateCaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	c, err := h.service.Update(r.Context(), caseID, req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, c)
}

// UpdateCaseStatus handles PUT /api/cases/{id}/status
func (h *CaseHandler) UpdateCaseStatus(w http.ResponseWriter, r *http.Request) {
	caseID := r.PathValue("id")

	var req struct {
		Status entities.CaseStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	c, err := h.service.UpdateStatus(r.Context(), caseID, req.Status)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, c)
}

// DeleteCase handles DELETE /api/cases/{id}
func (h *CaseHandler) DeleteCase(w http.ResponseWriter, r *http.Request) {
	caseID := r.PathValue("id")

	if err := h.service.Delete(r.Context(), caseID); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"status": "deleted",
		"id":     caseID,
	})
}

func queryInt(r *http.Request, key string, fallback int) int {
	if value := r.URL.Query().Get(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed >= 0 {
			return parsed
		}
	}
	return fallback
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithServiceError maps application errors onto HTTP statuses.
func respondWithServiceError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeNotFound:
			respondWithError(w, http.StatusNotFound, appErr.Message)
		case apperrors.ErrorTypeValidation:
			respondWithError(w, http.StatusBadRequest, appErr.Message)
		case apperrors.ErrorTypeConflict:
			respondWithError(w, http.StatusConflict, appErr.Message)
		default:
			respondWithError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	respondWithError(w, http.StatusInternalServerError, "internal server error")
}
