package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gayratjon-02/AD-sub001/internal/domain"
)

// ConceptRepositoryPG implements domain.ConceptRepository.
type ConceptRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewConceptRepository creates a new concept repository backed by PostgreSQL.
func NewConceptRepository(pool *pgxpool.Pool) *ConceptRepositoryPG {
	return &ConceptRepositoryPG{pool: pool}
}

// GetByID fetches a creative concept owned by the given user.
func (r *ConceptRepositoryPG) GetByID(ctx context.Context, id, userID string) (*domain.Concept, error) {
	query := `
SELECT id, user_id, title, analysis, created_at
FROM concepts
WHERE id = $1 AND user_id = $2;
`
	row := r.pool.QueryRow(ctx, query, id, userID)
	var concept domain.Concept
	if err := row.Scan(
		&concept.ID,
		&concept.UserID,
		&concept.Title,
		&concept.Analysis,
		&concept.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &concept, nil
}
