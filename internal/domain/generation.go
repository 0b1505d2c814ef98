package domain

import "time"

// GenerationStatus enumerates generation lifecycle states.
type GenerationStatus string

const (
	GenerationPending    GenerationStatus = "PENDING"
	GenerationProcessing GenerationStatus = "PROCESSING"
	GenerationCompleted  GenerationStatus = "COMPLETED"
	GenerationFailed     GenerationStatus = "FAILED"
)

// AdCopy is the structured copy produced by the text-completion step. All four
// fields are required; a generation without copy is not a deliverable.
type AdCopy struct {
	Headline    string `json:"headline"`
	Subheadline string `json:"subheadline"`
	CTA         string `json:"cta"`
	ImagePrompt string `json:"image_prompt"`
}

// GeneratedImage is one rendered ad visual attached to a generation. Rerenders
// append entries with increasing variation indexes; prior images are never
// replaced.
type GeneratedImage struct {
	ID             string    `json:"id"`
	URL            string    `json:"url"`
	StorageKey     string    `json:"storage_key"`
	Format         string    `json:"format"`
	VariationIndex int       `json:"variation_index"`
	GeneratedAt    time.Time `json:"generated_at"`
}

// Generation tracks one ad-generation run. Created in PROCESSING once inputs
// are validated; terminal at COMPLETED or FAILED and never reopened.
type Generation struct {
	ID            string           `json:"id"`
	UserID        string           `json:"user_id"`
	BrandID       string           `json:"brand_id"`
	ConceptID     string           `json:"concept_id"`
	AngleID       string           `json:"angle_id"`
	FormatID      string           `json:"format_id"`
	Status        GenerationStatus `json:"status"`
	Progress      int              `json:"progress"`
	Copy          *AdCopy          `json:"generated_copy,omitempty"`
	Images        []GeneratedImage `json:"result_images"`
	FailureReason string           `json:"failure_reason,omitempty"`
	CompletedAt   *time.Time       `json:"completed_at,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// AdvanceProgress raises Progress to p. Progress never decreases within a run;
// a lower value is ignored.
func (g *Generation) AdvanceProgress(p int) {
	if p > 100 {
		p = 100
	}
	if p > g.Progress {
		g.Progress = p
	}
}

// Terminal reports whether the generation reached a final state.
func (g *Generation) Terminal() bool {
	return g.Status == GenerationCompleted || g.Status == GenerationFailed
}
