package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/domain/entities"
	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/domain/repositories"
	apperrors "github.com/zatekoja/Implantcaseplanningdesign/backend/pkg/errors"
)

// fakeCaseRepo is an in-memory CaseRepository used across the service tests.
type fakeCaseRepo struct {
	cases    map[string]*entities.Case
	feedback []*entities.Feedback
	listErr  error
}

func newFakeCaseRepo() *fakeCaseRepo {
	return &fakeCaseRepo{cases: map[string]*entities.Case{}}
}

func (r *fakeCaseRepo) Create(ctx context.Context, c *entities.Case) error {
	r.cases[c.ID] = c
	return nil
}

func (r *fakeCaseRepo) GetByID(ctx context.Context, id string) (*entities.Case, error) {
	c, ok := r.cases[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("case with id %s not found", id))
	}
	return c, nil
}

func (r *fakeCaseRepo) List(ctx context.Context, filter repositories.CaseFilter) ([]*entities.Case, error) {
	out := []*entities.Case{}
	for _, c := range r.cases {
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCaseRepo) Update(ctx context.Context, c *entities.Case) error {
	if _, ok := r.cases[c.ID]; !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("case with id %s not found", c.ID))
	}
	r.cases[c.ID] = c
	return nil
}

func (r *fakeCaseRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.cases[id]; !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("case with id %s not found", id))
	}
	delete(r.cases, id)
	return nil
}

func (r *fakeCaseRepo) ListFeedback(ctx context.Context, limit int) ([]*entities.Feedback, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.feedback, nil
}

func TestCaseService_Create(t *testing.T) {
	repo := newFakeCaseRepo()
	service := NewCaseService(repo, NewLearningService(repo))

	c, err := service.Create(context.Background(), CreateCaseRequest{
		CaseName:    "Lower right molar",
		ToothNumber: "30",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, entities.StatusPlanning, c.Status)
	assert.NotEmpty(t, c.PreTreatmentChecklist)
	assert.NotEmpty(t, c.TreatmentChecklist)
	assert.NotEmpty(t, c.PostTreatmentChecklist)
	require.Len(t, c.Timeline, 1)
	assert.Equal(t, "Case created", c.Timeline[0].Action)
	assert.Contains(t, repo.cases, c.ID)
}

func TestCaseService_Create_Validation(t *testing.T) {
	service := NewCaseService(newFakeCaseRepo(), nil)

	_, err := service.Create(context.Background(), CreateCaseRequest{ToothNumber: "8"})
	require.Error(t, err)

	_, err = service.Create(context.Background(), CreateCaseRequest{CaseName: "No tooth"})
	require.Error(t, err)
}

func TestCaseService_Create_SeedsLearnedSuggestions(t *testing.T) {
	repo := newFakeCaseRepo()
	repo.feedback = []*entities.Feedback{
		{CustomChecklistSuggestions: []string{"Verify interocclusal space early"}},
	}
	service := NewCaseService(repo, NewLearningService(repo))

	c, err := service.Create(context.Background(), CreateCaseRequest{
		CaseName:    "Premolar",
		ToothNumber: "12",
	})
	require.NoError(t, err)

	last := c.PreTreatmentChecklist[len(c.PreTreatmentChecklist)-1]
	assert.Equal(t, "Verify interocclusal space early", last.Text)
	assert.True(t, last.IsCustom)
}

func TestCaseService_Create_SurvivesSuggestionFailure(t *testing.T) {
	repo := newFakeCaseRepo()
	repo.listErr = apperrors.NewInternalError("db down", nil)
	service := NewCaseService(repo, NewLearningService(repo))

	c, err := service.Create(context.Background(), CreateCaseRequest{
		CaseName:    "Resilient case",
		ToothNumber: "19",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, c.PreTreatmentChecklist)
}

func TestCaseService_Update_MergesPlanningData(t *testing.T) {
	repo := newFakeCaseRepo()
	service := NewCaseService(repo, nil)

	c, err := service.Create(context.Background(), CreateCaseRequest{
		CaseName:    "Incisor",
		ToothNumber: "8",
		PlanningData: &entities.PlanningDataPatch{
			BoneAvailability: boneAvailabilityPtr(entities.BoneAdequate),
			SmokingStatus:    strPtr("never"),
		},
	})
	require.NoError(t, err)

	updated, err := service.Update(context.Background(), c.ID, UpdateCaseRequest{
		PlanningData: &entities.PlanningDataPatch{
			SmokingStatus: strPtr("current"),
		},
	})
	require.NoError(t, err)

	// The patched field changes; the untouched field survives.
	assert.Equal(t, "current", updated.PlanningData.SmokingStatus)
	assert.Equal(t, entities.BoneAdequate, updated.PlanningData.BoneAvailability)
	assert.Equal(t, "Case details updated", updated.Timeline[len(updated.Timeline)-1].Action)
}

func TestCaseService_UpdateStatus(t *testing.T) {
	repo := newFakeCaseRepo()
	service := NewCaseService(repo, nil)

	c, err := service.Create(context.Background(), CreateCaseRequest{CaseName: "S", ToothNumber: "30"})
	require.NoError(t, err)

	updated, err := service.UpdateStatus(context.Background(), c.ID, entities.StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusInProgress, updated.Status)

	_, err = service.UpdateStatus(context.Background(), c.ID, entities.CaseStatus("archived"))
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
}

func TestCaseService_UpdateFeedback_StampsReflection(t *testing.T) {
	repo := newFakeCaseRepo()
	service := NewCaseService(repo, nil)

	c, err := service.Create(context.Background(), CreateCaseRequest{CaseName: "F", ToothNumber: "8"})
	require.NoError(t, err)

	updated, err := service.UpdateFeedback(context.Background(), c.ID, entities.Feedback{
		WhatWasUnexpected: "Thin buccal plate",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, updated.Feedback.ReflectionCompletedAt)
	assert.NotNil(t, updated.Feedback.CustomChecklistSuggestions)
}

func TestCaseService_Attachments(t *testing.T) {
	repo := newFakeCaseRepo()
	service := NewCaseService(repo, nil)

	c, err := service.Create(context.Background(), CreateCaseRequest{CaseName: "A", ToothNumber: "8"})
	require.NoError(t, err)

	updated, err := service.AddAttachment(context.Background(), c.ID, entities.AttachmentCBCTLinks, "https://pacs.example/scan/1")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://pacs.example/scan/1"}, updated.Attachments.CBCTLinks)

	_, err = service.AddAttachment(context.Background(), c.ID, "documents", "https://x")
	require.Error(t, err)

	updated, err = service.RemoveAttachment(context.Background(), c.ID, entities.AttachmentCBCTLinks, "https://pacs.example/scan/1")
	require.NoError(t, err)
	assert.Empty(t, updated.Attachments.CBCTLinks)

	_, err = service.RemoveAttachment(context.Background(), c.ID, entities.AttachmentCBCTLinks, "https://gone")
	require.Error(t, err)
}

func strPtr(s string) *string {
	return &s
}

func boneAvailabilityPtr(b entities.BoneAvailability) *entities.BoneAvailability {
	return &b
}
