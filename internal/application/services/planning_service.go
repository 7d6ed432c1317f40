package services

import (
	"context"
	"fmt"
	"time"

	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/domain/entities"
	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/domain/repositories"
	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/planning"
)

// PlanningService runs the risk engine over a case's planning data and
// persists the result on the case document.
type PlanningService struct {
	repo repositories.CaseRepository
}

// NewPlanningService creates a new planning service.
func NewPlanningService(repo repositories.CaseRepository) *PlanningService {
	return &PlanningService{repo: repo}
}

// Analyze computes the risk assessment for a case and stores it. The
// engine is deterministic, so re-analyzing unchanged planning data returns
// the same assessment.
func (s *PlanningService) Analyze(ctx context.Context, id string) (*entities.RiskAssessment, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	assessment := planning.CalculateRiskAssessment(c.PlanningData, c.ToothNumber)
	c.RiskAssessment = &assessment

	now := time.Now()
	c.AddTimelineEntry(now, "Risk assessment completed",
		fmt.Sprintf("Overall risk: %s, complexity: %s", assessment.OverallRisk, assessment.CaseComplexity), "")
	c.Touch(now)

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return &assessment, nil
}
