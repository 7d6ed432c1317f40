package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/api/handlers"
	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/application/services"
	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/domain/entities"
	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/domain/repositories"
	apperrors "github.com/zatekoja/Implantcaseplanningdesign/backend/pkg/errors"
)

type stubCaseService struct {
	c       *entities.Case
	cases   []*entities.Case
	err     error
	deleted string
}

func (s *stubCaseService) Create(ctx context.Context, req services.CreateCaseRequest) (*entities.Case, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.c, nil
}

func (s *stubCaseService) GetByID(ctx context.Context, id string) (*entities.Case, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.c, nil
}

func (s *stubCaseService) List(ctx context.Context, filter repositories.CaseFilter) ([]*entities.Case, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.cases, nil
}

func (s *stubCaseService) Update(ctx context.Context, id string, req services.UpdateCaseRequest) (*entities.Case, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.c, nil
}

func (s *stubCaseService) UpdateStatus(ctx context.Context, id string, status entities.CaseStatus) (*entities.Case, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.c.Status = status
	return s.c, nil
}

func (s *stubCaseService) Delete(ctx context.Context, id string) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = id
	return nil
}

func requestWithID(method, target, body, id string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if id != "" {
		req.SetPathValue("id", id)
	}
	return req
}

func TestCaseHandler_CreateCase(t *testing.T) {
	c := entities.NewCase("New case", "8", time.Now())
	handler := handlers.NewCaseHandler(&stubCaseService{c: c})

	req := requestWithID("POST", "/api/cases", `{"caseName":"New case","toothNumber":"8"}`, "")
	w := httptest.NewRecorder()

	handler.CreateCase(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var got entities.Case
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, c.ID, got.ID)
}

func TestCaseHandler_CreateCase_InvalidJSON(t *testing.T) {
	handler := handlers.NewCaseHandler(&stubCaseService{})

	req := requestWithID("POST", "/api/cases", `{broken`, "")
	w := httptest.NewRecorder()

	handler.CreateCase(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCaseHandler_CreateCase_ValidationError(t *testing.T) {
	handler := handlers.NewCaseHandler(&stubCaseService{
		err: apperrors.NewValidationError("caseName is required"),
	})

	req := requestWithID("POST", "/api/cases", `{}`, "")
	w := httptest.NewRecorder()

	handler.CreateCase(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "caseName is required", response["error"])
}

func TestCaseHandler_GetCase_NotFound(t *testing.T) {
	handler := handlers.NewCaseHandler(&stubCaseService{
		err: apperrors.NewNotFoundError("case with id x not found"),
	})

	req := requestWithID("GET", "/api/cases/x", "", "x")
	w := httptest.NewRecorder()

	handler.GetCase(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCaseHandler_ListCases(t *testing.T) {
	cases := []*entities.Case{
		entities.NewCase("One", "8", time.Now()),
		entities.NewCase("Two", "30", time.Now()),
	}
	handler := handlers.NewCaseHandler(&stubCaseService{cases: cases})

	req := requestWithID("GET", "/api/cases?status=planning", "", "")
	w := httptest.NewRecorder()

	handler.ListCases(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Cases []*entities.Case `json:"cases"`
		Count int              `json:"count"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, 2, response.Count)
	assert.Len(t, response.Cases, 2)
}

func TestCaseHandler_UpdateCaseStatus(t *testing.T) {
	c := entities.NewCase("Status case", "8", time.Now())
	handler := handlers.NewCaseHandler(&stubCaseService{c: c})

	req := requestWithID("PUT", "/api/cases/"+c.ID+"/status", `{"status":"in_progress"}`, c.ID)
	w := httptest.NewRecorder()

	handler.UpdateCaseStatus(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var got entities.Case
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, entities.StatusInProgress, got.Status)
}

func TestCaseHandler_DeleteCase(t *testing.T) {
	service := &stubCaseService{}
	handler := handlers.NewCaseHandler(service)

	req := requestWithID("DELETE", "/api/cases/abc", "", "abc")
	w := httptest.NewRecorder()

	handler.DeleteCase(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc", service.deleted)
}
