package repositories

import (
	"context"

	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/domain/entities"
)

// CaseRepository defines the interface for case document operations.
type CaseRepository interface {
	// Create persists a new case
	Create(ctx context.Context, c *entities.Case) error

	// GetByID retrieves a case by ID
	GetByID(ctx context.Context, id string) (*entities.Case, error)

	// List retrieves cases with filters, newest first
	List(ctx context.Context, filter CaseFilter) ([]*entities.Case, error)

	// Update replaces the stored case document
	Update(ctx context.Context, c *entities.Case) error

	// Delete removes a case
	Delete(ctx context.Context, id string) error

	// ListFeedback retrieves the reflection feedback of completed cases,
	// newest first, for the learning loop
	ListFeedback(ctx context.Context, limit int) ([]*entities.Feedback, error)
}

// CaseFilter defines filters for listing cases.
type CaseFilter struct {
	Status entities.CaseStatus
	Limit  int
	Offset int
}
