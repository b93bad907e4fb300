package postgres

import (
	"context"
	"database/sql"

	"efgportal/internal/domain"

	"github.com/lib/pq"
)

type lookupRepository struct {
	DB *sql.DB
}

// NewLookupRepository returns a domain.LookupRepository over the industries and interests tables.
func NewLookupRepository(db *sql.DB) domain.LookupRepository {
	return &lookupRepository{DB: db}
}

func (r *lookupRepository) ListIndustries(ctx context.Context) ([]*domain.Industry, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name, slug FROM industries ORDER BY name`)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()
	industries := make([]*domain.Industry, 0)
	for rows.Next() {
		var i domain.Industry
		if err := rows.Scan(&i.ID, &i.Name, &i.Slug); err != nil {
			return nil, classify(err)
		}
		industries = append(industries, &i)
	}
	return industries, classify(rows.Err())
}

func (r *lookupRepository) ListInterests(ctx context.Context) ([]*domain.Interest, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name FROM interests ORDER BY name`)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()
	interests := make([]*domain.Interest, 0)
	for rows.Next() {
		var i domain.Interest
		if err := rows.Scan(&i.ID, &i.Name); err != nil {
			return nil, classify(err)
		}
		interests = append(interests, &i)
	}
	return interests, classify(rows.Err())
}

func (r *lookupRepository) GetIndustry(ctx context.Context, id string) (*domain.Industry, error) {
	var i domain.Industry
	err := r.DB.QueryRowContext(ctx, `SELECT id, name, slug FROM industries WHERE id = $1`, id).Scan(&i.ID, &i.Name, &i.Slug)
	if err != nil {
		return nil, classify(err)
	}
	return &i, nil
}

func (r *lookupRepository) MissingInterests(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.DB.QueryContext(ctx, `
		SELECT want.id
		FROM unnest($1::text[]) AS want(id)
		LEFT JOIN interests i ON i.id::text = want.id
		WHERE i.id IS NULL
	`, pq.Array(ids))
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()
	var missing []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, classify(err)
		}
		missing = append(missing, id)
	}
	return missing, classify(rows.Err())
}
