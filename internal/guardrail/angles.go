package guardrail

// Angle is one marketing framing strategy. The set is closed configuration
// data; adding an angle only requires a new entry here, and optionally a
// canned scene template in sceneTemplates.
type Angle struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

var angles = []Angle{
	{"problem_solution", "Problem / Solution", "Show the everyday problem, then the product resolving it."},
	{"before_after", "Before / After", "Split contrast between life without and with the product."},
	{"product_hero", "Product Hero", "The product alone, lit like the star of the frame."},
	{"lifestyle_moment", "Lifestyle Moment", "The product worn naturally inside a candid daily scene."},
	{"flat_lay", "Flat Lay", "Top-down styled arrangement on a clean surface."},
	{"close_up_detail", "Close-Up Detail", "Macro focus on stitching, fabric, and construction quality."},
	{"testimonial_style", "Testimonial Style", "A satisfied wearer framed as if quoting their own review."},
	{"social_proof", "Social Proof", "Crowd or community context implying broad adoption."},
	{"unboxing", "Unboxing", "The product emerging from branded packaging."},
	{"how_it_works", "How It Works", "Feature callout composition explaining a key mechanism."},
	{"comparison", "Comparison", "Side-by-side against a generic unnamed alternative."},
	{"seasonal_promo", "Seasonal Promo", "Seasonal styling and palette around the product."},
	{"limited_drop", "Limited Drop", "Scarcity-coded staging for a limited release."},
	{"bundle_offer", "Bundle Offer", "Multiple pieces composed together as a set."},
	{"gift_guide", "Gift Guide", "The product staged as a wrapped or giftable item."},
	{"ugc_style", "UGC Style", "Phone-shot authenticity, imperfect framing on purpose."},
	{"street_style", "Street Style", "Urban backdrop, candid walking pose."},
	{"athleisure_action", "Athleisure Action", "Mid-movement athletic wear in a training context."},
	{"luxury_minimal", "Luxury Minimal", "Sparse premium staging with generous negative space."},
	{"behind_the_scenes", "Behind The Scenes", "Workshop or atelier context showing the making."},
}

var angleIndex = func() map[string]Angle {
	idx := make(map[string]Angle, len(angles))
	for _, a := range angles {
		idx[a.ID] = a
	}
	return idx
}()

// AngleByID resolves a marketing angle from the closed configuration set.
func AngleByID(id string) (Angle, bool) {
	a, ok := angleIndex[id]
	return a, ok
}

// Angles returns the full configuration set in declaration order.
func Angles() []Angle {
	out := make([]Angle, len(angles))
	copy(out, angles)
	return out
}
