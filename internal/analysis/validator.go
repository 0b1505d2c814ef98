package analysis

import (
	"fmt"
	"regexp"
	"strings"
)

// A rule inspects the document, may rewrite fields in place, and returns the
// flags it raised. Rules never fail; a rule with nothing to do is a no-op.
type rule func(doc *Document) []Flag

// orderedRules run in this exact order. The order is load-bearing:
// reclassifyCategoryFromHem reads the ankle_termination text after
// normalizeHemTermination has already resolved contradictory hem signals.
var orderedRules = []rule{
	disambiguateFabric,
	normalizeHemTermination,
	qualifyOrientation,
	reviewBackPocketPresence,
	repairHexColor,
	gatePatchCompleteness,
	reclassifyCategoryFromHem,
}

// Validate runs the fixed correction checklist over a copy of doc and returns
// the corrected document with ordered findings. It is total over arbitrary
// partial documents and never mutates its input.
func Validate(doc Document) Result {
	out := doc.Clone()
	var flags []Flag
	for _, apply := range orderedRules {
		flags = append(flags, apply(&out)...)
	}
	modified := false
	for _, f := range flags {
		if f.Corrected != "" {
			modified = true
			break
		}
	}
	return Result{Data: out, Flags: flags, WasModified: modified}
}

var (
	corduroyRe = regexp.MustCompile(`(?i)\bcorduroy\b`)

	fineKnitHints        = []string{"stretch", "knit", "jersey", "soft", "fine"}
	thickRidgeConfirmers = []string{"wale", "velvet", "thick ridge", "heavyweight"}

	zipperTerms = []string{"zipper", "zip"}
	cuffTerms   = []string{"cuff", "elastic", "ribbing", "ribbed band"}

	pantsLikeTerms = []string{"pants", "jogger", "trouser", "sweatpant", "legging", "bottom"}

	sleepwearTerms  = []string{"pajama", "pyjama", "sleepwear", "nightwear", "lounge set"}
	looseKnitTerms  = []string{"lounge pants", "knit pants", "sweatpants", "wide-leg"}
	athleticTerms   = []string{"jogger", "track pants", "athletic pants", "training pants"}
	backPocketTerms = []string{"back", "welt", "rear"}
)

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

func pantsLike(category string) bool {
	return containsAny(strings.ToLower(category), pantsLikeTerms)
}

func hasZipperSignal(hem string) bool {
	return containsAny(strings.ToLower(hem), zipperTerms)
}

func hasCuffSignal(hem string) bool {
	return containsAny(strings.ToLower(hem), cuffTerms)
}

// disambiguateFabric rewrites a "corduroy" call when the surrounding
// descriptors describe a fine stretch knit instead of a true thick-wale
// fabric. Vision models routinely confuse ribbed knit loungewear with
// corduroy; corduroy is confirmed only by wale/velvet/heavyweight language.
func disambiguateFabric(doc *Document) []Flag {
	fabric := doc.Fabric
	if fabric == "" {
		return nil
	}
	lower := strings.ToLower(fabric)
	if !strings.Contains(lower, "corduroy") {
		return nil
	}
	if !containsAny(lower, fineKnitHints) || containsAny(lower, thickRidgeConfirmers) {
		return nil
	}
	corrected := corduroyRe.ReplaceAllString(fabric, "ribbed knit")
	doc.Fabric = corrected
	return []Flag{{
		Field:      "fabric",
		Issue:      "corduroy named alongside fine/stretch knit descriptors without thick-ridge confirmation",
		Original:   fabric,
		Corrected:  corrected,
		Confidence: ConfidenceAutoFixed,
	}}
}

// normalizeHemTermination resolves a hem described as both zippered and
// cuffed/elasticated. The two constructions are mutually exclusive; the zipper
// is the more specific signal and wins.
func normalizeHemTermination(doc *Document) []Flag {
	if !pantsLike(doc.Category) {
		return nil
	}
	hem := doc.AnkleTermination
	if hem == "" {
		return nil
	}
	if !hasZipperSignal(hem) || !hasCuffSignal(hem) {
		return nil
	}
	const corrected = "ankle zipper closure"
	doc.AnkleTermination = corrected
	return []Flag{{
		Field:      "ankle_termination",
		Issue:      "hem described as both zippered and cuffed/elasticated; resolved in favor of the zipper",
		Original:   hem,
		Corrected:  corrected,
		Confidence: ConfidenceAutoFixed,
	}}
}

var orientationRe = regexp.MustCompile(`(?i)\b(left|right)\s+(hip|side|pocket|area)\b`)

// qualifyOrientation injects a wearer-relative qualifier in front of bare
// left/right references on the back of the garment. Text already carrying a
// wearer marker is left alone so the rule stays idempotent.
func qualifyOrientation(doc *Document) []Flag {
	text := doc.BackPlacement
	if text == "" {
		return nil
	}
	if strings.Contains(strings.ToLower(text), "wearer") {
		return nil
	}
	corrected := orientationRe.ReplaceAllStringFunc(text, func(match string) string {
		sub := orientationRe.FindStringSubmatch(match)
		return "wearer's " + strings.ToUpper(sub[1]) + " " + strings.ToLower(sub[2])
	})
	if corrected == text {
		return nil
	}
	doc.BackPlacement = corrected
	return []Flag{{
		Field:      "back_placement",
		Issue:      "bare left/right without a wearer-relative qualifier",
		Original:   text,
		Corrected:  corrected,
		Confidence: ConfidenceAutoFixed,
	}}
}

// reviewBackPocketPresence nudges a reviewer when a pants-like garment lists
// pockets but none on the back. No correction: pocketless backs are a
// legitimate construction.
func reviewBackPocketPresence(doc *Document) []Flag {
	if !pantsLike(doc.Category) {
		return nil
	}
	pockets := doc.Pockets
	if pockets == "" {
		return nil
	}
	if containsAny(strings.ToLower(pockets), backPocketTerms) {
		return nil
	}
	return []Flag{{
		Field:      "pockets",
		Issue:      "pants-like garment lists no back, welt, or rear pocket; confirm against the photo",
		Original:   pockets,
		Confidence: ConfidenceNeedsReview,
	}}
}

var (
	bareHexRe   = regexp.MustCompile(`^[0-9a-fA-F]{6}$`)
	markedHexRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

// repairHexColor prepends the missing '#' on a bare six-digit hex value. A
// value matching neither form is left untouched for review.
func repairHexColor(doc *Document) []Flag {
	value := strings.TrimSpace(doc.PrimaryColorHex)
	if value == "" {
		return nil
	}
	if bareHexRe.MatchString(value) {
		corrected := "#" + value
		doc.PrimaryColorHex = corrected
		return []Flag{{
			Field:      "primary_color_hex",
			Issue:      "six-digit hex color missing its leading # marker",
			Original:   value,
			Corrected:  corrected,
			Confidence: ConfidenceAutoFixed,
		}}
	}
	if markedHexRe.MatchString(value) {
		return nil
	}
	return []Flag{{
		Field:      "primary_color_hex",
		Issue:      "color value is not a six-digit hex code",
		Original:   value,
		Confidence: ConfidenceNeedsReview,
	}}
}

func patchPlaceholder(value string) bool {
	trimmed := strings.TrimSpace(value)
	return trimmed == "" || strings.EqualFold(trimmed, "n/a")
}

// gatePatchCompleteness requires the full companion field set once a back
// patch is asserted. Missing values cannot be guessed, so the finding is
// critical and nothing is rewritten.
func gatePatchCompleteness(doc *Document) []Flag {
	if !doc.HasPatch {
		return nil
	}
	companions := []struct {
		name  string
		value string
	}{
		{"patch_color", doc.PatchColor},
		{"patch_detail", doc.PatchDetail},
		{"placement", doc.Placement},
		{"size", doc.Size},
		{"technique", doc.Technique},
	}
	var missing []string
	for _, c := range companions {
		if patchPlaceholder(c.value) {
			missing = append(missing, c.name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return []Flag{{
		Field:      "has_patch",
		Issue:      fmt.Sprintf("back patch asserted but companion fields are missing or placeholder: %s", strings.Join(missing, ", ")),
		Original:   "true",
		Confidence: ConfidenceCritical,
	}}
}

// reclassifyCategoryFromHem re-assigns the garment family when the hem
// construction contradicts it. Must run after normalizeHemTermination so the
// zipper/cuff signal is read from the corrected hem text.
func reclassifyCategoryFromHem(doc *Document) []Flag {
	category := doc.Category
	hem := doc.AnkleTermination
	if category == "" || hem == "" {
		return nil
	}
	lowerCat := strings.ToLower(category)
	zip := hasZipperSignal(hem)
	cuff := hasCuffSignal(hem)

	var corrected string
	switch {
	case containsAny(lowerCat, sleepwearTerms) && zip:
		corrected = "joggers"
	case containsAny(lowerCat, looseKnitTerms) && zip && !cuff:
		corrected = "joggers"
	case containsAny(lowerCat, athleticTerms) && cuff && !zip:
		corrected = "knit lounge pants"
	default:
		return nil
	}
	if strings.EqualFold(category, corrected) {
		return nil
	}
	doc.Category = corrected
	return []Flag{{
		Field:      "category",
		Issue:      fmt.Sprintf("category %q is inconsistent with the hem construction %q", category, hem),
		Original:   category,
		Corrected:  corrected,
		Confidence: ConfidenceAutoFixed,
	}}
}
