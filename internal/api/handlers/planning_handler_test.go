package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/api/handlers"
	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/domain/entities"
	apperrors "github.com/zatekoja/Implantcaseplanningdesign/backend/pkg/errors"
)

type stubPlanningService struct {
	assessment *entities.RiskAssessment
	err        error
}

func (s *stubPlanningService) Analyze(ctx context.Context, id string) (*entities.RiskAssessment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.assessment, nil
}

func TestPlanningHandler_AnalyzeCase(t *testing.T) {
	handler := handlers.NewPlanningHandler(&stubPlanningService{
		assessment: &entities.RiskAssessment{
			OverallRisk:    entities.RiskModerate,
			CaseComplexity: entities.ComplexityModerate,
			PrimaryIssue:   "Esthetic Zone Placement",
		},
	})

	req := requestWithID("POST", "/api/cases/abc/analyze", "", "abc")
	w := httptest.NewRecorder()

	handler.AnalyzeCase(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		RiskAssessment entities.RiskAssessment `json:"riskAssessment"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, entities.RiskModerate, response.RiskAssessment.OverallRisk)
	assert.Equal(t, "Esthetic Zone Placement", response.RiskAssessment.PrimaryIssue)
}

func TestPlanningHandler_AnalyzeCase_NotFound(t *testing.T) {
	handler := handlers.NewPlanningHandler(&stubPlanningService{
		err: apperrors.NewNotFoundError("case with id abc not found"),
	})

	req := requestWithID("POST", "/api/cases/abc/analyze", "", "abc")
	w := httptest.NewRecorder()

	handler.AnalyzeCase(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
