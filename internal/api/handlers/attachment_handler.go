package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/domain/entities"
)

// AttachmentService defines the attachment operations used by the handler.
type AttachmentService interface {
	AddAttachment(ctx context.Context, id, attachmentType, url string) (*entities.Case, error)
	RemoveAttachment(ctx context.Context, id, attachmentType, url string) (*entities.Case, error)
}

// AttachmentHandler handles case attachment HTTP requests.
type AttachmentHandler struct {
	service AttachmentService
}

// NewAttachmentHandler creates a new attachment handler.
func NewAttachmentHandler(service AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{service: service}
}

type attachmentRequest struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// AddAttachment handles POST /api/cases/{id}/attachments
func (h *AttachmentHandler) AddAttachment(w http.ResponseWriter, r *http.Request) {
	caseID := r.PathValue("id")

	var req attachmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	c, err := h.service.AddAttachment(r.Context(), caseID, req.Type, req.URL)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, c)
}

// RemoveAttachment handles DELETE /api/cases/{id}/attachments
func (h *AttachmentHandler) RemoveAttachment(w http.ResponseWriter, r *http.Request) {
	caseID := r.PathValue("id")

	req := attachmentRequest{
		Type: r.URL.Query().Get("type"),
		URL:  r.URL.Query().Get("url"),
	}
	if req.Type == "" || req.URL == "" {
		// Older clients send the target in the body instead.
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Type == "" || req.URL == "" {
			respondWithError(w, http.StatusBadRequest, "attachment type and url are required")
			return
		}
	}

	c, err := h.service.RemoveAttachment(r.Context(), caseID, req.Type, req.URL)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, c)
}
