package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gayratjon-02/AD-sub001/internal/domain"
)

// GenerationRepositoryPG implements domain.GenerationRepository.
type GenerationRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewGenerationRepository creates a new generation repository backed by PostgreSQL.
func NewGenerationRepository(pool *pgxpool.Pool) *GenerationRepositoryPG {
	return &GenerationRepositoryPG{pool: pool}
}

// Create inserts a new generation record.
func (r *GenerationRepositoryPG) Create(ctx context.Context, gen *domain.Generation) error {
	query := `
INSERT INTO generations (id, user_id, brand_id, concept_id, angle_id, format_id, status, progress, result_images, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, '[]'::jsonb, $9, $10);
`
	_, err := r.pool.Exec(ctx, query,
		gen.ID,
		gen.UserID,
		gen.BrandID,
		gen.ConceptID,
		gen.AngleID,
		gen.FormatID,
		gen.Status,
		gen.Progress,
		gen.CreatedAt,
		gen.UpdatedAt,
	)
	return err
}

// UpdateProgress raises the stored progress. GREATEST keeps it monotonic even
// when updates land out of order.
func (r *GenerationRepositoryPG) UpdateProgress(ctx context.Context, id string, progress int) error {
	query := `
UPDATE generations
SET progress = GREATEST(progress, $2),
    updated_at = NOW()
WHERE id = $1;
`
	tag, err := r.pool.Exec(ctx, query, id, progress)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkFailed moves the record to FAILED with a stated reason. Terminal rows
// are left untouched.
func (r *GenerationRepositoryPG) MarkFailed(ctx context.Context, id, reason string) error {
	query := `
UPDATE generations
SET status = $2,
    failure_reason = $3,
    updated_at = NOW()
WHERE id = $1 AND status NOT IN ($4, $5);
`
	_, err := r.pool.Exec(ctx, query, id, domain.GenerationFailed, reason,
		domain.GenerationCompleted, domain.GenerationFailed)
	return err
}

// Complete stores the final copy and images and moves the record to COMPLETED.
func (r *GenerationRepositoryPG) Complete(ctx context.Context, id string, copy domain.AdCopy, images []domain.GeneratedImage, completedAt time.Time) error {
	copyJSON, err := json.Marshal(copy)
	if err != nil {
		return fmt.Errorf("encode ad copy: %w", err)
	}
	if images == nil {
		images = []domain.GeneratedImage{}
	}
	imagesJSON, err := json.Marshal(images)
	if err != nil {
		return fmt.Errorf("encode images: %w", err)
	}
	query := `
UPDATE generations
SET status = $2,
    progress = 100,
    generated_copy = $3,
    result_images = $4,
    completed_at = $5,
    updated_at = NOW()
WHERE id = $1;
`
	tag, err := r.pool.Exec(ctx, query, id, domain.GenerationCompleted, copyJSON, imagesJSON, completedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AppendImage adds one rendered variation to the record's image list.
func (r *GenerationRepositoryPG) AppendImage(ctx context.Context, id string, img domain.GeneratedImage) error {
	imgJSON, err := json.Marshal(img)
	if err != nil {
		return fmt.Errorf("encode image: %w", err)
	}
	query := `
UPDATE generations
SET result_images = result_images || $2::jsonb,
    updated_at = NOW()
WHERE id = $1;
`
	tag, err := r.pool.Exec(ctx, query, id, imgJSON)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID fetches a generation owned by the given user.
func (r *GenerationRepositoryPG) GetByID(ctx context.Context, id, userID string) (*domain.Generation, error) {
	query := `
SELECT id, user_id, brand_id, concept_id, angle_id, format_id, status, progress,
       generated_copy, result_images, failure_reason, completed_at, created_at, updated_at
FROM generations
WHERE id = $1 AND user_id = $2;
`
	return r.scanOne(r.pool.QueryRow(ctx, query, id, userID))
}

// LatestProcessing returns the user's most recent in-flight generation.
func (r *GenerationRepositoryPG) LatestProcessing(ctx context.Context, userID string) (*domain.Generation, error) {
	query := `
SELECT id, user_id, brand_id, concept_id, angle_id, format_id, status, progress,
       generated_copy, result_images, failure_reason, completed_at, created_at, updated_at
FROM generations
WHERE user_id = $1 AND status = $2
ORDER BY created_at DESC
LIMIT 1;
`
	return r.scanOne(r.pool.QueryRow(ctx, query, userID, domain.GenerationProcessing))
}

// FailStale moves PROCESSING records older than the cutoff to FAILED and
// reports how many were reaped.
func (r *GenerationRepositoryPG) FailStale(ctx context.Context, olderThan time.Duration, reason string) (int, error) {
	query := `
UPDATE generations
SET status = $1,
    failure_reason = $2,
    updated_at = NOW()
WHERE status = $3 AND updated_at < NOW() - $4::interval;
`
	interval := fmt.Sprintf("%d seconds", int(olderThan.Seconds()))
	tag, err := r.pool.Exec(ctx, query, domain.GenerationFailed, reason, domain.GenerationProcessing, interval)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (r *GenerationRepositoryPG) scanOne(row pgx.Row) (*domain.Generation, error) {
	var (
		gen           domain.Generation
		copyJSON      []byte
		imagesJSON    []byte
		failureReason *string
	)
	if err := row.Scan(
		&gen.ID,
		&gen.UserID,
		&gen.BrandID,
		&gen.ConceptID,
		&gen.AngleID,
		&gen.FormatID,
		&gen.Status,
		&gen.Progress,
		&copyJSON,
		&imagesJSON,
		&failureReason,
		&gen.CompletedAt,
		&gen.CreatedAt,
		&gen.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if len(copyJSON) > 0 {
		var copy domain.AdCopy
		if err := json.Unmarshal(copyJSON, &copy); err != nil {
			return nil, fmt.Errorf("decode ad copy: %w", err)
		}
		gen.Copy = &copy
	}
	gen.Images = []domain.GeneratedImage{}
	if len(imagesJSON) > 0 {
		if err := json.Unmarshal(imagesJSON, &gen.Images); err != nil {
			return nil, fmt.Errorf("decode images: %w", err)
		}
	}
	if failureReason != nil {
		gen.FailureReason = *failureReason
	}
	return &gen, nil
}
