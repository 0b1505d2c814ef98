package guardrail

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gayratjon-02/AD-sub001/internal/domain"
)

// The compiler assembles one image-generation instruction from five
// independently-authored layers. Order is fixed: later layers reference nouns
// the earlier ones introduce, and the prompted model weights later positions
// more heavily.

// NegativeBoilerplate is the fixed anti-artifact clause shipped on every
// compiled prompt, before any brand-specific additions.
const NegativeBoilerplate = "Do not render: extra limbs or fingers, merged or warped hands, " +
	"embedded text, captions, watermarks, logos of other brands, stock-photo overlays, " +
	"frames or borders, duplicated products, or distorted product proportions."

const anatomicalClause = "Any depicted person must have anatomically correct hands with five fingers each, " +
	"correct limb count, and natural, undistorted proportions."

const readabilityLock = "READABILITY: keep a clear, low-detail zone with strong contrast where text overlays " +
	"will be placed; avoid busy texture or harsh highlights behind that zone."

const precedenceClosing = "PRECEDENCE: the PRODUCT, PERSONA, READABILITY, and NEGATIVE locks above override " +
	"the creative direction wherever they conflict."

// sceneTemplates are the canned staging compositions per marketing angle.
// Each writes the authoritative composition for its angle; %[1]s is the
// product name, %[2]s the brand primary color. Angles without an entry use
// the generic fallback in sceneDirective.
var sceneTemplates = map[string]string{
	"problem_solution": "SCENE: split composition. Left half: a muted, slightly desaturated moment of the everyday " +
		"frustration the product solves. Right half: the same setting transformed, %[1]s in crisp focus, " +
		"accented by %[2]s. A subtle diagonal divider separates the halves.",
	"before_after": "SCENE: two-panel before/after. The BEFORE panel is dimmer and cluttered; the AFTER panel is " +
		"bright and orderly with %[1]s worn confidently at center, %[2]s as the accent color tying both panels together.",
	"product_hero": "SCENE: %[1]s alone on a seamless studio backdrop tinted toward %[2]s, single dramatic key light, " +
		"soft ground shadow, shot slightly from below to feel monumental.",
	"lifestyle_moment": "SCENE: a candid, warmly lit daily moment — morning coffee, a walk, a doorway pause — with " +
		"%[1]s worn naturally, environment neutral so %[2]s accents read clearly.",
	"flat_lay": "SCENE: top-down flat lay of %[1]s neatly folded on a clean matte surface, two or three small " +
		"complementary props arranged on a loose grid, %[2]s echoed in one prop.",
	"close_up_detail": "SCENE: macro close-up of %[1]s showing stitching, fabric texture, and hardware, shallow depth " +
		"of field, raking light to bring out construction, %[2]s visible in the detailing.",
	"testimonial_style": "SCENE: a relaxed wearer of %[1]s facing camera at three-quarter angle in soft window light, " +
		"generous clean space beside them for a quote overlay, %[2]s as a quiet accent.",
	"ugc_style": "SCENE: handheld phone-camera framing of %[1]s, slightly imperfect angle, natural indoor light, " +
		"authentic casual setting, %[2]s present but not staged.",
	"street_style": "SCENE: candid mid-stride street shot of %[1]s against a softly blurred urban backdrop, " +
		"overcast even light, %[2]s popping against muted concrete tones.",
	"athleisure_action": "SCENE: %[1]s in mid-movement — a stretch, stride, or jump — inside a minimal training space, " +
		"motion conveyed by pose rather than blur, %[2]s accenting the kit.",
	"luxury_minimal": "SCENE: %[1]s staged with generous negative space on a stone or plaster surface, restrained " +
		"palette built around %[2]s, one precise soft shadow, gallery stillness.",
}

// Compile assembles the guarded image instruction for one generation. The
// creative text rides along subordinate to the locks; the compiler never
// truncates or validates overall length.
func Compile(creative, angleID, angleLabel, angleDescription string, pb domain.Playbook) string {
	sections := []string{
		productIdentityLock(pb.ProductIdentity),
		personaLock(pb.TargetAudience),
		readabilityLock,
		sceneDirective(angleID, angleLabel, angleDescription, pb),
		negativeDirective(pb),
	}
	if creative = strings.TrimSpace(creative); creative != "" {
		sections = append(sections, "CREATIVE DIRECTION (subordinate to the locks above): "+creative)
	}
	sections = append(sections, precedenceClosing)

	var nonEmpty []string
	for _, s := range sections {
		if s != "" {
			nonEmpty = append(nonEmpty, s)
		}
	}
	return strings.Join(nonEmpty, "\n\n")
}

func productIdentityLock(pi domain.ProductIdentity) string {
	var lines []string
	name := strings.TrimSpace(pi.Name)
	switch {
	case name != "" && pi.Category != "":
		lines = append(lines, fmt.Sprintf("PRODUCT LOCK: the product is %q, a %s. Render it exactly as described; never invent features.", name, pi.Category))
	case name != "":
		lines = append(lines, fmt.Sprintf("PRODUCT LOCK: the product is %q. Render it exactly as described; never invent features.", name))
	default:
		lines = append(lines, "PRODUCT LOCK: render the featured product exactly as described; never invent features.")
	}
	if desc := strings.TrimSpace(pi.VisualDescription); desc != "" {
		lines = append(lines, "Canonical appearance: "+desc)
	}
	if len(pi.PhysicalFeatures) > 0 {
		lines = append(lines, "Required physical traits: "+strings.Join(pi.PhysicalFeatures, "; ")+".")
	}
	if len(pi.BrandColors) > 0 {
		props := make([]string, 0, len(pi.BrandColors))
		for prop := range pi.BrandColors {
			props = append(props, prop)
		}
		sort.Strings(props)
		pairs := make([]string, 0, len(props))
		for _, prop := range props {
			pairs = append(pairs, fmt.Sprintf("%s %s", prop, pi.BrandColors[prop]))
		}
		lines = append(lines, "Exact brand colors: "+strings.Join(pairs, ", ")+".")
	}
	if len(pi.NegativeTraits) > 0 {
		lines = append(lines, "The product never has: "+strings.Join(pi.NegativeTraits, "; ")+".")
	}
	return strings.Join(lines, "\n")
}

func personaLock(ta *domain.TargetAudience) string {
	if ta == nil {
		return "PERSONA: if a person appears, keep them generic and photorealistic. " + anatomicalClause
	}
	var traits []string
	if ta.Gender != "" {
		traits = append(traits, "gender: "+ta.Gender)
	}
	if ta.AgeRange != "" {
		traits = append(traits, "age range: "+ta.AgeRange)
	}
	if ta.BodyType != "" {
		traits = append(traits, "body type: "+ta.BodyType)
	}
	if ta.Styling != "" {
		traits = append(traits, "styling: "+ta.Styling)
	}
	if ta.Expression != "" {
		traits = append(traits, "expression: "+ta.Expression)
	}
	if len(traits) == 0 {
		return "PERSONA: if a person appears, keep them generic and photorealistic. " + anatomicalClause
	}
	return "PERSONA: any depicted model matches the target audience — " +
		strings.Join(traits, ", ") + ". " + anatomicalClause
}

func sceneDirective(angleID, angleLabel, angleDescription string, pb domain.Playbook) string {
	name := strings.TrimSpace(pb.ProductIdentity.Name)
	if name == "" {
		name = "the product"
	}
	color := pb.PrimaryColor()
	if color == "" {
		color = "the brand's primary color"
	}
	if tpl, ok := sceneTemplates[angleID]; ok {
		return fmt.Sprintf(tpl, name, color)
	}
	// Generic fallback keeps any future angle id valid.
	label := strings.TrimSpace(angleLabel)
	if label == "" {
		label = angleID
	}
	directive := fmt.Sprintf("SCENE: stage %s for a %q ad composition, accented by %s.", name, label, color)
	if desc := strings.TrimSpace(angleDescription); desc != "" {
		directive += " " + desc
	}
	return directive
}

func negativeDirective(pb domain.Playbook) string {
	lines := []string{"NEGATIVE: " + NegativeBoilerplate}
	if traits := pb.ProductIdentity.NegativeTraits; len(traits) > 0 {
		lines = append(lines, "Additionally forbidden for this product: "+strings.Join(traits, "; ")+".")
	}
	if rules := pb.Compliance.Rules; len(rules) > 0 {
		lines = append(lines, "Brand compliance rules: "+strings.Join(rules, " "))
	}
	return strings.Join(lines, "\n")
}
