package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/domain/entities"
	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/domain/providers"
	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/domain/repositories"
)

// CachedCaseAdapter wraps CaseAdapter with caching. Single-case reads are
// served cache-first with invalidation on every write; feedback reads used
// by the learning loop tolerate short staleness. List reads always hit the
// database because any case mutation would invalidate them anyway.
type CachedCaseAdapter struct {
	adapter repositories.CaseRepository
	cache   providers.CacheProvider
}

// NewCachedCaseAdapter creates a new cached case adapter.
func NewCachedCaseAdapter(adapter repositories.CaseRepository, cache providers.CacheProvider) repositories.CaseRepository {
	return &CachedCaseAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

// Cache TTLs (in seconds)
const (
	caseByIDTTL    = 300 // 5 minutes for single case
	feedbackTTL    = 120 // 2 minutes for learning-loop feedback
	feedbackKeyFmt = "cases:feedback:%d"
)

func caseCacheKey(id string) string {
	return fmt.Sprintf("case:%s", id)
}

// Create persists a new case.
func (a *CachedCaseAdapter) Create(ctx context.Context, c *entities.Case) error {
	return a.adapter.Create(ctx, c)
}

// GetByID retrieves a case by ID with caching.
func (a *CachedCaseAdapter) GetByID(ctx context.Context, id string) (*entities.Case, error) {
	cacheKey := caseCacheKey(id)

	// Try to get from cache first
	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var c entities.Case
		if err := json.Unmarshal(cached, &c); err == nil {
			return &c, nil
		}
		log.Printf("Failed to unmarshal cached case %s: %v", id, err)
	}

	// Cache miss - fetch from database
	c, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Update cache asynchronously to avoid blocking the response
	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(c); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, caseByIDTTL); err != nil {
				log.Printf("Failed to cache case %s: %v", id, err)
			}
		}
	}()

	return c, nil
}

// List retrieves cases straight from the database.
func (a *CachedCaseAdapter) List(ctx context.Context, filter repositories.CaseFilter) ([]*entities.Case, error) {
	return a.adapter.List(ctx, filter)
}

// Update replaces the stored case and invalidates its cache entry.
func (a *CachedCaseAdapter) Update(ctx context.Context, c *entities.Case) error {
	if err := a.adapter.Update(ctx, c); err != nil {
		return err
	}
	a.invalidate(ctx, c.ID)
	return nil
}

// Delete removes a case and invalidates its cache entry.
func (a *CachedCaseAdapter) Delete(ctx context.Context, id string) error {
	if err := a.adapter.Delete(ctx, id); err != nil {
		return err
	}
	a.invalidate(ctx, id)
	return nil
}

// ListFeedback retrieves completed-case feedback with caching.
func (a *CachedCaseAdapter) ListFeedback(ctx context.Context, limit int) ([]*entities.Feedback, error) {
	cacheKey := fmt.Sprintf(feedbackKeyFmt, limit)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var feedback []*entities.Feedback
		if err := json.Unmarshal(cached, &feedback); err == nil {
			return feedback, nil
		}
		log.Printf("Failed to unmarshal cached feedback: %v", err)
	}

	feedback, err := a.adapter.ListFeedback(ctx, limit)
	if err != nil {
		return nil, err
	}

	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(feedback); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, feedbackTTL); err != nil {
				log.Printf("Failed to cache feedback list: %v", err)
			}
		}
	}()

	return feedback, nil
}

func (a *CachedCaseAdapter) invalidate(ctx context.Context, id string) {
	if err := a.cache.Delete(ctx, caseCacheKey(id)); err != nil {
		log.Printf("Failed to invalidate cached case %s: %v", id, err)
	}
}
