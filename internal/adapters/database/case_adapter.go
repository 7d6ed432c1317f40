package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/domain/entities"
	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/domain/repositories"
	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/Implantcaseplanningdesign/backend/pkg/errors"
)

// CaseAdapter implements case persistence in Postgres. Each case is stored
// as a single JSONB document alongside a few indexed columns; the nested
// checklists, timeline and risk assessment always travel with the case.
type CaseAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCaseAdapter creates a new case adapter.
func NewCaseAdapter(client *postgres.Client) repositories.CaseRepository {
	return &CaseAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a case document.
func (a *CaseAdapter) Create(ctx context.Context, c *entities.Case) error {
	if c == nil {
		return apperrors.NewInternalError("case is nil", fmt.Errorf("case is nil"))
	}

	doc, err := json.Marshal(c)
	if err != nil {
		return apperrors.NewInternalError("failed to serialize case", err)
	}

	record := goqu.Record{
		"id":         c.ID,
		"status":     string(c.Status),
		"data":       doc,
		"created_at": c.CreatedAt,
		"updated_at": c.UpdatedAt,
	}

	query, args, err := a.db.Insert("cases").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build case insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create case", err)
	}

	return nil
}

// GetByID retrieves a case by ID.
func (a *CaseAdapter) GetByID(ctx context.Context, id string) (*entities.Case, error) {
	query, args, err := a.db.From("cases").
		Select("data").
		Where(goqu.C("id").Eq(id)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build case select query", err)
	}

	var doc []byte
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("case with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get case", err)
	}

	return decodeCase(doc)
}

// List retrieves cases filtered by status, newest first.
func (a *CaseAdapter) List(ctx context.Context, filter repositories.CaseFilter) ([]*entities.Case, error) {
	ds := a.db.From("cases").
		Select("data").
		Order(goqu.C("created_at").Desc())

	if filter.Status != "" {
		ds = ds.Where(goqu.C("status").Eq(string(filter.Status)))
	}
	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build case list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list cases", err)
	}
	defer rows.Close()

	cases := []*entities.Case{}
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, apperrors.NewInternalError("failed to scan case row", err)
		}
		c, err := decodeCase(doc)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate case rows", err)
	}

	return cases, nil
}

// Update replaces the stored case document.
func (a *CaseAdapter) Update(ctx context.Context, c *entities.Case) error {
	if c == nil {
		return apperrors.NewInternalError("case is nil", fmt.Errorf("case is nil"))
	}

	doc, err := json.Marshal(c)
	if err != nil {
		return apperrors.NewInternalError("failed to serialize case", err)
	}

	query, args, err := a.db.Update("cases").
		Set(goqu.Record{
			"status":     string(c.Status),
			"data":       doc,
			"updated_at": c.UpdatedAt,
		}).
		Where(goqu.C("id").Eq(c.ID)).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build case update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update case", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to read update result", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("case with id %s not found", c.ID))
	}

	return nil
}

// Delete removes a case.
func (a *CaseAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("cases").
		Where(goqu.C("id").Eq(id)).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build case delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete case", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to read delete result", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("case with id %s not found", id))
	}

	return nil
}

// ListFeedback retrieves the reflection feedback of completed cases, newest
// first. Cases with no recorded reflection are skipped.
func (a *CaseAdapter) ListFeedback(ctx context.Context, limit int) ([]*entities.Feedback, error) {
	ds := a.db.From("cases").
		Select(goqu.L("data->'feedback'")).
		Where(goqu.C("status").Eq(string(entities.StatusCompleted))).
		Order(goqu.C("updated_at").Desc())

	if limit > 0 {
		ds = ds.Limit(uint(limit))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build feedback list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list feedback", err)
	}
	defer rows.Close()

	feedback := []*entities.Feedback{}
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, apperrors.NewInternalError("failed to scan feedback row", err)
		}
		if len(doc) == 0 {
			continue
		}
		var f entities.Feedback
		if err := json.Unmarshal(doc, &f); err != nil {
			return nil, apperrors.NewInternalError("failed to deserialize feedback", err)
		}
		feedback = append(feedback, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate feedback rows", err)
	}

	return feedback, nil
}

func decodeCase(doc []byte) (*entities.Case, error) {
	var c entities.Case
	if err := json.Unmarshal(doc, &c); err != nil {
		return nil, apperrors.NewInternalError("failed to deserialize case", err)
	}
	return &c, nil
}
