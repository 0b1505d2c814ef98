package domain

import (
	"context"
	"time"
)

// GenerationRepository persists generation records. Implementations must keep
// Progress monotonic for a record (a lower value never overwrites a higher one).
type GenerationRepository interface {
	Create(ctx context.Context, gen *Generation) error
	UpdateProgress(ctx context.Context, id string, progress int) error
	MarkFailed(ctx context.Context, id, reason string) error
	Complete(ctx context.Context, id string, copy AdCopy, images []GeneratedImage, completedAt time.Time) error
	AppendImage(ctx context.Context, id string, img GeneratedImage) error
	GetByID(ctx context.Context, id, userID string) (*Generation, error)
	LatestProcessing(ctx context.Context, userID string) (*Generation, error)
	FailStale(ctx context.Context, olderThan time.Duration, reason string) (int, error)
}

// BrandRepository loads brands with an ownership check.
type BrandRepository interface {
	GetByID(ctx context.Context, id, userID string) (*Brand, error)
}

// ConceptRepository loads creative concepts with an ownership check.
type ConceptRepository interface {
	GetByID(ctx context.Context, id, userID string) (*Concept, error)
}

// BlobStore persists rendered image bytes and returns a public URL plus the
// storage key the bytes live under.
type BlobStore interface {
	Store(ctx context.Context, data []byte, folder, filename string) (url, key string, err error)
}
