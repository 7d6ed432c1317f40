package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/api/handlers"
	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/domain/entities"
)

type stubAttachmentService struct {
	c           *entities.Case
	addedType   string
	addedURL    string
	removedType string
	removedURL  string
}

func (s *stubAttachmentService) AddAttachment(ctx context.Context, id, attachmentType, url string) (*entities.Case, error) {
	s.addedType = attachmentType
	s.addedURL = url
	return s.c, nil
}

func (s *stubAttachmentService) RemoveAttachment(ctx context.Context, id, attachmentType, url string) (*entities.Case, error) {
	s.removedType = attachmentType
	s.removedURL = url
	return s.c, nil
}

func TestAttachmentHandler_AddAttachment(t *testing.T) {
	service := &stubAttachmentService{c: entities.NewCase("A", "8", time.Now())}
	handler := handlers.NewAttachmentHandler(service)

	body := `{"type":"cbctLinks","url":"https://pacs.example/scan/9"}`
	req := requestWithID("POST", "/api/cases/abc/attachments", body, "abc")
	w := httptest.NewRecorder()

	handler.AddAttachment(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "cbctLinks", service.addedType)
	assert.Equal(t, "https://pacs.example/scan/9", service.addedURL)
}

func TestAttachmentHandler_RemoveAttachment_QueryParams(t *testing.T) {
	service := &stubAttachmentService{c: entities.NewCase("A", "8", time.Now())}
	handler := handlers.NewAttachmentHandler(service)

	req := requestWithID("DELETE", "/api/cases/abc/attachments?type=images&url=https%3A%2F%2Fx%2F1.jpg", "", "abc")
	w := httptest.NewRecorder()

	handler.RemoveAttachment(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "images", service.removedType)
	assert.Equal(t, "https://x/1.jpg", service.removedURL)
}

func TestAttachmentHandler_RemoveAttachment_MissingTarget(t *testing.T) {
	handler := handlers.NewAttachmentHandler(&stubAttachmentService{})

	req := requestWithID("DELETE", "/api/cases/abc/attachments", "", "abc")
	w := httptest.NewRecorder()

	handler.RemoveAttachment(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
