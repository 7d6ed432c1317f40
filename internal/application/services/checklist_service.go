package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/domain/entities"
	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/domain/repositories"
	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/planning"
	apperrors "github.com/zatekoja/Implantcaseplanningdesign/backend/pkg/errors"
)

// ProstheticChecklistResponse is the rendered prosthetic checklist plus the
// derivation context the client shows alongside it. IsDynamic is false when
// the master template was unavailable and the legacy fallback was served.
type ProstheticChecklistResponse struct {
	Checklist          entities.FilteredChecklist `json:"checklist"`
	PlanningConditions map[string]any             `json:"planningConditions"`
	ChecklistVersion   string                     `json:"checklistVersion"`
	IsDynamic          bool                       `json:"isDynamic"`
}

// ChecklistService handles both checklist generations: the legacy flat
// three-phase lists and the condition-filtered prosthetic checklist. The
// master template is injected at construction; a nil template switches the
// prosthetic checklist to the legacy fallback.
type ChecklistService struct {
	repo     repositories.CaseRepository
	template *entities.MasterChecklist
}

// NewChecklistService creates a new checklist service.
func NewChecklistService(repo repositories.CaseRepository, template *entities.MasterChecklist) *ChecklistService {
	return &ChecklistService{
		repo:     repo,
		template: template,
	}
}

// MasterChecklist returns the read-only template.
func (s *ChecklistService) MasterChecklist() (*entities.MasterChecklist, error) {
	if s.template == nil {
		return nil, apperrors.NewNotFoundError("master checklist template is not available")
	}
	return s.template, nil
}

// GetProstheticChecklist renders the per-case prosthetic checklist:
// filter the template by the case's derived conditions, merge previously
// stored completion state, auto-complete untouched planning items, then
// persist the result so the next render starts from it.
func (s *ChecklistService) GetProstheticChecklist(ctx context.Context, caseID string) (*ProstheticChecklistResponse, error) {
	c, err := s.repo.GetByID(ctx, caseID)
	if err != nil {
		return nil, err
	}

	if s.template == nil {
		return s.fallbackChecklist(ctx, c)
	}

	conditions := planning.DeriveConditions(c.PlanningData, c.RiskAssessment)
	now := time.Now()

	checklist := planning.FilterChecklist(s.template, conditions)
	checklist = planning.MergeCompletionStates(checklist, c.ProstheticChecklist)
	checklist = planning.ApplyAutoCompletion(checklist, c, c.ProstheticChecklist, now)

	c.ProstheticChecklist = checklist
	c.Touch(now)
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	return &ProstheticChecklistResponse{
		Checklist:          checklist,
		PlanningConditions: conditions,
		ChecklistVersion:   s.template.Version,
		IsDynamic:          true,
	}, nil
}

// fallbackChecklist serves the stored checklist, or the fixed legacy
// structure for cases that never rendered one. Serving it is a first-class
// contract, not an error: the case must stay usable without the template.
func (s *ChecklistService) fallbackChecklist(ctx context.Context, c *entities.Case) (*ProstheticChecklistResponse, error) {
	checklist := c.ProstheticChecklist
	if len(checklist) == 0 {
		checklist = planning.DefaultProstheticChecklist()
		c.ProstheticChecklist = checklist
		c.Touch(time.Now())
		if err := s.repo.Update(ctx, c); err != nil {
			return nil, err
		}
	}

	return &ProstheticChecklistResponse{
		Checklist:          checklist,
		PlanningConditions: map[string]any{},
		ChecklistVersion:   "legacy",
		IsDynamic:          false,
	}, nil
}

// UpdateProstheticChecklist replaces the stored prosthetic checklist with
// the client's copy and records the completion progress.
func (s *ChecklistService) UpdateProstheticChecklist(ctx context.Context, caseID string, checklist entities.FilteredChecklist) (*entities.Case, error) {
	if len(checklist) == 0 {
		return nil, apperrors.NewValidationError("checklist is required")
	}

	c, err := s.repo.GetByID(ctx, caseID)
	if err != nil {
		return nil, err
	}

	completed, total := checklistProgress(checklist)
	log.Printf("Prosthetic checklist for case %s: %d/%d items complete", caseID, completed, total)

	c.ProstheticChecklist = checklist
	now := time.Now()
	c.AddTimelineEntry(now, "Prosthetic checklist updated",
		fmt.Sprintf("%d of %d items complete", completed, total), "")
	c.Touch(now)

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateLegacyChecklist replaces one of the flat three-phase checklists.
func (s *ChecklistService) UpdateLegacyChecklist(ctx context.Context, caseID string, phase entities.ChecklistPhase, items []entities.ChecklistItem) (*entities.Case, error) {
	if !phase.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid checklist phase %q", phase))
	}

	c, err := s.repo.GetByID(ctx, caseID)
	if err != nil {
		return nil, err
	}

	switch phase {
	case entities.PhasePreTreatment:
		c.PreTreatmentChecklist = items
	case entities.PhaseTreatment:
		c.TreatmentChecklist = items
	case entities.PhasePostTreatment:
		c.PostTreatmentChecklist = items
	}

	now := time.Now()
	c.AddTimelineEntry(now, "Checklist updated", "", string(phase))
	c.Touch(now)

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// AddCustomItem appends a user-authored item to a legacy checklist phase.
func (s *ChecklistService) AddCustomItem(ctx context.Context, caseID string, phase entities.ChecklistPhase, text string) (*entities.Case, error) {
	if !phase.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid checklist phase %q", phase))
	}
	if text == "" {
		return nil, apperrors.NewValidationError("text is required")
	}

	c, err := s.repo.GetByID(ctx, caseID)
	if err != nil {
		return nil, err
	}

	item := entities.ChecklistItem{
		ID:       uuid.NewString(),
		Text:     text,
		IsCustom: true,
	}

	switch phase {
	case entities.PhasePreTreatment:
		c.PreTreatmentChecklist = append(c.PreTreatmentChecklist, item)
	case entities.PhaseTreatment:
		c.TreatmentChecklist = append(c.TreatmentChecklist, item)
	case entities.PhasePostTreatment:
		c.PostTreatmentChecklist = append(c.PostTreatmentChecklist, item)
	}

	now := time.Now()
	c.AddTimelineEntry(now, "Custom checklist item added", text, string(phase))
	c.Touch(now)

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// checklistProgress counts completed and total items across all phases.
func checklistProgress(checklist entities.FilteredChecklist) (completed, total int) {
	for _, phase := range checklist {
		if phase == nil {
			continue
		}
		for _, section := range phase.Sections {
			if section == nil {
				continue
			}
			for _, item := range section.Items {
				if item == nil {
					continue
				}
				total++
				if item.Completed != nil && *item.Completed {
					completed++
				}
			}
		}
	}
	return completed, total
}
