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

// CreateCaseRequest carries the fields accepted at case creation.
type CreateCaseRequest struct {
	CaseName     string                      `json:"caseName"`
	ToothNumber  string                      `json:"toothNumber"`
	OptionalAge  *int                        `json:"optionalAge,omitempty"`
	OptionalSex  string                      `json:"optionalSex,omitempty"`
	PlanningData *entities.PlanningDataPatch `json:"planningData,omitempty"`
}

// UpdateCaseRequest carries a partial case update. Nil fields stay as-is;
// planning data merges field-wise rather than replacing wholesale.
type UpdateCaseRequest struct {
	CaseName            *string                     `json:"caseName,omitempty"`
	ToothNumber         *string                     `json:"toothNumber,omitempty"`
	OptionalAge         *int                        `json:"optionalAge,omitempty"`
	OptionalSex         *string                     `json:"optionalSex,omitempty"`
	ConsentAcknowledged *bool                       `json:"consentAcknowledged,omitempty"`
	PlanningData        *entities.PlanningDataPatch `json:"planningData,omitempty"`
}

// CaseService handles the case document lifecycle.
type CaseService struct {
	repo     repositories.CaseRepository
	learning *LearningService
}

// NewCaseService creates a new case service.
func NewCaseService(repo repositories.CaseRepository, learning *LearningService) *CaseService {
	return &CaseService{
		repo:     repo,
		learning: learning,
	}
}

// Create builds a new case, seeds its checklists and persists it. Checklist
// suggestions learned from past cases land as custom pre-treatment items.
func (s *CaseService) Create(ctx context.Context, req CreateCaseRequest) (*entities.Case, error) {
	if req.CaseName == "" {
		return nil, apperrors.NewValidationError("caseName is required")
	}
	if req.ToothNumber == "" {
		return nil, apperrors.NewValidationError("toothNumber is required")
	}

	now := time.Now()
	c := entities.NewCase(req.CaseName, req.ToothNumber, now)
	c.OptionalAge = req.OptionalAge
	c.OptionalSex = req.OptionalSex
	req.PlanningData.Apply(&c.PlanningData)

	c.PreTreatmentChecklist = planning.DefaultChecklistItems(entities.PhasePreTreatment)
	c.TreatmentChecklist = planning.DefaultChecklistItems(entities.PhaseTreatment)
	c.PostTreatmentChecklist = planning.DefaultChecklistItems(entities.PhasePostTreatment)

	if s.learning != nil {
		suggestions, err := s.learning.GetSuggestions(ctx)
		if err != nil {
			// Seeding is best effort; a fresh install has no history anyway.
			log.Printf("Warning: Failed to load checklist suggestions: %v", err)
		}
		for _, suggestion := range suggestions {
			c.PreTreatmentChecklist = append(c.PreTreatmentChecklist, entities.ChecklistItem{
				ID:       uuid.NewString(),
				Text:     suggestion,
				IsCustom: true,
			})
		}
	}

	c.AddTimelineEntry(now, "Case created", fmt.Sprintf("Case %q for tooth #%s", c.CaseName, c.ToothNumber), "")

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetByID retrieves a case by ID.
func (s *CaseService) GetByID(ctx context.Context, id string) (*entities.Case, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves cases, optionally filtered by status.
func (s *CaseService) List(ctx context.Context, filter repositories.CaseFilter) ([]*entities.Case, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid status %q", filter.Status))
	}
	return s.repo.List(ctx, filter)
}

// Update applies a partial update to a case.
func (s *CaseService) Update(ctx context.Context, id string, req UpdateCaseRequest) (*entities.Case, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CaseName != nil {
		c.CaseName = *req.CaseName
	}
	if req.ToothNumber != nil {
		c.ToothNumber = *req.ToothNumber
	}
	if req.OptionalAge != nil {
		c.OptionalAge = req.OptionalAge
	}
	if req.OptionalSex != nil {
		c.OptionalSex = *req.OptionalSex
	}
	if req.ConsentAcknowledged != nil {
		c.ConsentAcknowledged = *req.ConsentAcknowledged
	}
	req.PlanningData.Apply(&c.PlanningData)

	now := time.Now()
	c.AddTimelineEntry(now, "Case details updated", "", "")
	c.Touch(now)

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateStatus moves the case to a new lifecycle state.
func (s *CaseService) UpdateStatus(ctx context.Context, id string, status entities.CaseStatus) (*entities.Case, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid status %q", status))
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Status = status
	now := time.Now()
	c.AddTimelineEntry(now, "Status changed", fmt.Sprintf("Status set to %s", status), "")
	c.Touch(now)

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes a case.
func (s *CaseService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// UpdateFeedback records the clinician's post-case reflection.
func (s *CaseService) UpdateFeedback(ctx context.Context, id string, feedback entities.Feedback) (*entities.Case, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if feedback.ReflectionCompletedAt == "" {
		feedback.ReflectionCompletedAt = now.UTC().Format(time.RFC3339Nano)
	}
	if feedback.CustomChecklistSuggestions == nil {
		feedback.CustomChecklistSuggestions = []string{}
	}
	c.Feedback = feedback
	c.AddTimelineEntry(now, "Reflection recorded", "", "")
	c.Touch(now)

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// AddAttachment appends an external link of the given type to the case.
func (s *CaseService) AddAttachment(ctx context.Context, id, attachmentType, url string) (*entities.Case, error) {
	if url == "" {
		return nil, apperrors.NewValidationError("url is required")
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch attachmentType {
	case entities.AttachmentImages:
		c.Attachments.Images = append(c.Attachments.Images, url)
	case entities.AttachmentCBCTLinks:
		c.Attachments.CBCTLinks = append(c.Attachments.CBCTLinks, url)
	case entities.AttachmentSTLLinks:
		c.Attachments.STLLinks = append(c.Attachments.STLLinks, url)
	default:
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid attachment type %q", attachmentType))
	}

	now := time.Now()
	c.AddTimelineEntry(now, "Attachment added", fmt.Sprintf("Added %s attachment", attachmentType), "")
	c.Touch(now)

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// RemoveAttachment removes a previously added link from the case.
func (s *CaseService) RemoveAttachment(ctx context.Context, id, attachmentType, url string) (*entities.Case, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var links *[]string
	switch attachmentType {
	case entities.AttachmentImages:
		links = &c.Attachments.Images
	case entities.AttachmentCBCTLinks:
		links = &c.Attachments.CBCTLinks
	case entities.AttachmentSTLLinks:
		links = &c.Attachments.STLLinks
	default:
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid attachment type %q", attachmentType))
	}

	filtered := make([]string, 0, len(*links))
	removed := false
	for _, link := range *links {
		if link == url && !removed {
			removed = true
			continue
		}
		filtered = append(filtered, link)
	}
	if !removed {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("attachment %q not found", url))
	}
	*links = filtered

	now := time.Now()
	c.AddTimelineEntry(now, "Attachment removed", fmt.Sprintf("Removed %s attachment", attachmentType), "")
	c.Touch(now)

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
