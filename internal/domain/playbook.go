package domain

import "time"

// ProductIdentity is the canonical description of the product a brand sells.
// The image model must never contradict it.
type ProductIdentity struct {
	Name              string            `json:"name"`
	Category          string            `json:"category"`
	VisualDescription string            `json:"visual_description"`
	PhysicalFeatures  []string          `json:"physical_features"`
	BrandColors       map[string]string `json:"brand_colors"`
	NegativeTraits    []string          `json:"negative_traits"`
}

// TargetAudience constrains any human model depicted alongside the product.
// Optional: a playbook without one degrades to anatomy-only constraints.
type TargetAudience struct {
	Gender     string `json:"gender"`
	AgeRange   string `json:"age_range"`
	BodyType   string `json:"body_type"`
	Styling    string `json:"styling"`
	Expression string `json:"expression"`
}

// Compliance holds brand rules forbidding specific claims or visuals.
type Compliance struct {
	Rules []string `json:"rules"`
}

// Playbook is the brand-level constraint set supplied per generation request.
// Read-only to the generation core.
type Playbook struct {
	ProductIdentity ProductIdentity `json:"product_identity"`
	TargetAudience  *TargetAudience `json:"target_audience,omitempty"`
	Compliance      Compliance      `json:"compliance"`
}

// Normalize fills structural defaults once at the loading boundary so
// consumers never branch on nil containers. A nil TargetAudience stays nil:
// its absence is meaningful (generic persona constraints apply).
func (p *Playbook) Normalize() {
	if p == nil {
		return
	}
	if p.ProductIdentity.BrandColors == nil {
		p.ProductIdentity.BrandColors = map[string]string{}
	}
	if p.ProductIdentity.PhysicalFeatures == nil {
		p.ProductIdentity.PhysicalFeatures = []string{}
	}
	if p.ProductIdentity.NegativeTraits == nil {
		p.ProductIdentity.NegativeTraits = []string{}
	}
	if p.Compliance.Rules == nil {
		p.Compliance.Rules = []string{}
	}
}

// PrimaryColor returns the brand's primary hex color, preferring the
// conventional "primary" key and falling back to the lexicographically first
// entry so the choice stays deterministic.
func (p Playbook) PrimaryColor() string {
	colors := p.ProductIdentity.BrandColors
	if hex, ok := colors["primary"]; ok && hex != "" {
		return hex
	}
	best := ""
	hex := ""
	for name, value := range colors {
		if value == "" {
			continue
		}
		if best == "" || name < best {
			best = name
			hex = value
		}
	}
	return hex
}

// Brand couples an owner with its playbook.
type Brand struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Playbook  Playbook  `json:"playbook"`
	CreatedAt time.Time `json:"created_at"`
}

// Concept is a creative idea analysed ahead of generation. Analysis is the
// free-form creative brief fed to the copywriting prompt.
type Concept struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Analysis  string    `json:"analysis"`
	CreatedAt time.Time `json:"created_at"`
}
