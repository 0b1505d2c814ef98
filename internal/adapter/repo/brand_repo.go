package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gayratjon-02/AD-sub001/internal/domain"
)

// BrandRepositoryPG implements domain.BrandRepository.
type BrandRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewBrandRepository creates a new brand repository backed by PostgreSQL.
func NewBrandRepository(pool *pgxpool.Pool) *BrandRepositoryPG {
	return &BrandRepositoryPG{pool: pool}
}

// GetByID fetches a brand owned by the given user. The playbook is stored as
// one JSONB document and normalized before it reaches callers.
func (r *BrandRepositoryPG) GetByID(ctx context.Context, id, userID string) (*domain.Brand, error) {
	query := `
SELECT id, user_id, name, playbook, created_at
FROM brands
WHERE id = $1 AND user_id = $2;
`
	row := r.pool.QueryRow(ctx, query, id, userID)
	var (
		brand        domain.Brand
		playbookJSON []byte
	)
	if err := row.Scan(
		&brand.ID,
		&brand.UserID,
		&brand.Name,
		&playbookJSON,
		&brand.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if len(playbookJSON) > 0 {
		if err := json.Unmarshal(playbookJSON, &brand.Playbook); err != nil {
			return nil, fmt.Errorf("decode playbook: %w", err)
		}
	}
	brand.Playbook.Normalize()
	return &brand, nil
}
