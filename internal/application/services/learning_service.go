package services

import (
	"context"

	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/domain/repositories"
)

// Learning-loop limits. Suggestions come from free text, so both the scan
// window and the returned set are bounded.
const (
	feedbackScanLimit = 50
	maxSuggestions    = 10
)

// LearningService surfaces checklist suggestions from past case
// reflections so they can seed future cases.
type LearningService struct {
	repo repositories.CaseRepository
}

// NewLearningService creates a new learning service.
func NewLearningService(repo repositories.CaseRepository) *LearningService {
	return &LearningService{repo: repo}
}

// GetSuggestions returns distinct custom checklist suggestions collected
// from completed cases, newest first.
func (s *LearningService) GetSuggestions(ctx context.Context) ([]string, error) {
	feedback, err := s.repo.ListFeedback(ctx, feedbackScanLimit)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	suggestions := []string{}
	for _, f := range feedback {
		if f == nil {
			continue
		}
		for _, suggestion := range f.CustomChecklistSuggestions {
			if suggestion == "" || seen[suggestion] {
				continue
			}
			seen[suggestion] = true
			suggestions = append(suggestions, suggestion)
			if len(suggestions) >= maxSuggestions {
				return suggestions, nil
			}
		}
	}

	return suggestions, nil
}
