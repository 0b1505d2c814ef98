package analysis

import (
	"encoding/json"
	"math/rand"
	"strings"
	"testing"
)

func flagsFor(result Result, field string) []Flag {
	var out []Flag
	for _, f := range result.Flags {
		if f.Field == field {
			out = append(out, f)
		}
	}
	return out
}

func TestValidateHemContradictionResolvesToZipper(t *testing.T) {
	doc := Document{
		Category:         "jogger pants",
		AnkleTermination: "ankle zipper with elastic ribbed cuff",
	}
	result := Validate(doc)

	hem := result.Data.AnkleTermination
	if !strings.Contains(hem, "zipper") {
		t.Fatalf("hem = %q, want zipper phrasing", hem)
	}
	for _, term := range []string{"cuff", "elastic", "ribbing"} {
		if strings.Contains(strings.ToLower(hem), term) {
			t.Fatalf("hem = %q, still contains %q", hem, term)
		}
	}
	flags := flagsFor(result, "ankle_termination")
	if len(flags) != 1 {
		t.Fatalf("ankle_termination flags = %d, want 1", len(flags))
	}
	if flags[0].Confidence != ConfidenceAutoFixed {
		t.Fatalf("confidence = %q, want %q", flags[0].Confidence, ConfidenceAutoFixed)
	}
	if flags[0].Corrected == "" {
		t.Fatal("expected a corrected value on the hem flag")
	}
}

func TestValidateHemRuleSkipsNonPants(t *testing.T) {
	doc := Document{
		Category:         "hooded jacket",
		AnkleTermination: "zipper with elastic cuff",
	}
	result := Validate(doc)
	if result.Data.AnkleTermination != doc.AnkleTermination {
		t.Fatalf("hem rewritten for non-pants category: %q", result.Data.AnkleTermination)
	}
	if len(flagsFor(result, "ankle_termination")) != 0 {
		t.Fatal("expected no hem flags for non-pants category")
	}
}

func TestValidateFabricDisambiguation(t *testing.T) {
	cases := []struct {
		name    string
		fabric  string
		rewrite bool
	}{
		{"fine knit descriptors", "corduroy, soft stretch knit texture", true},
		{"confirmed thick ridge", "wide-wale corduroy, soft hand feel... knit lining", false},
		{"no knit hints", "corduroy with visible ridges", false},
		{"no corduroy mention", "ribbed knit, stretchy", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := Validate(Document{Fabric: tc.fabric})
			rewritten := result.Data.Fabric != tc.fabric
			if rewritten != tc.rewrite {
				t.Fatalf("fabric = %q, rewritten = %v, want %v", result.Data.Fabric, rewritten, tc.rewrite)
			}
			if tc.rewrite {
				if strings.Contains(strings.ToLower(result.Data.Fabric), "corduroy") {
					t.Fatalf("fabric = %q, corduroy survived the rewrite", result.Data.Fabric)
				}
				if !strings.Contains(result.Data.Fabric, "ribbed knit") {
					t.Fatalf("fabric = %q, want ribbed knit substitution", result.Data.Fabric)
				}
			}
		})
	}
}

func TestValidateOrientationQualifier(t *testing.T) {
	doc := Document{BackPlacement: "embroidery above the left pocket"}
	result := Validate(doc)
	want := "embroidery above the wearer's LEFT pocket"
	if result.Data.BackPlacement != want {
		t.Fatalf("back_placement = %q, want %q", result.Data.BackPlacement, want)
	}
	flags := flagsFor(result, "back_placement")
	if len(flags) != 1 || flags[0].Confidence != ConfidenceAutoFixed {
		t.Fatalf("unexpected back_placement flags: %+v", flags)
	}
}

func TestValidateOrientationIdempotent(t *testing.T) {
	doc := Document{BackPlacement: "tag on the right hip seam"}
	first := Validate(doc)
	second := Validate(first.Data)

	if second.Data.BackPlacement != first.Data.BackPlacement {
		t.Fatalf("second pass changed text: %q -> %q", first.Data.BackPlacement, second.Data.BackPlacement)
	}
	if strings.Contains(second.Data.BackPlacement, "wearer's wearer's") {
		t.Fatalf("double qualifier injected: %q", second.Data.BackPlacement)
	}
	if len(flagsFor(second, "back_placement")) != 0 {
		t.Fatal("second pass raised an orientation flag on already-qualified text")
	}
}

func TestValidateBackPocketReview(t *testing.T) {
	result := Validate(Document{
		Category: "straight-leg trousers",
		Pockets:  "two slanted front pockets",
	})
	flags := flagsFor(result, "pockets")
	if len(flags) != 1 {
		t.Fatalf("pockets flags = %d, want 1", len(flags))
	}
	if flags[0].Confidence != ConfidenceNeedsReview {
		t.Fatalf("confidence = %q, want %q", flags[0].Confidence, ConfidenceNeedsReview)
	}
	if flags[0].Corrected != "" {
		t.Fatal("pocket review must not correct data")
	}
	if result.Data.Pockets != "two slanted front pockets" {
		t.Fatalf("pocket data mutated: %q", result.Data.Pockets)
	}
}

func TestValidateHexColorRepair(t *testing.T) {
	cases := []struct {
		name       string
		value      string
		want       string
		confidence Confidence
		flagged    bool
	}{
		{"bare hex gets marker", "1A2B3C", "#1A2B3C", ConfidenceAutoFixed, true},
		{"marked hex untouched", "#1A2B3C", "#1A2B3C", "", false},
		{"garbage left for review", "dark navy", "dark navy", ConfidenceNeedsReview, true},
		{"absent skipped", "", "", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := Validate(Document{PrimaryColorHex: tc.value})
			if result.Data.PrimaryColorHex != tc.want {
				t.Fatalf("primary_color_hex = %q, want %q", result.Data.PrimaryColorHex, tc.want)
			}
			flags := flagsFor(result, "primary_color_hex")
			if tc.flagged {
				if len(flags) != 1 || flags[0].Confidence != tc.confidence {
					t.Fatalf("unexpected flags: %+v", flags)
				}
			} else if len(flags) != 0 {
				t.Fatalf("unexpected flags: %+v", flags)
			}
		})
	}
}

func TestValidatePatchCompletenessGate(t *testing.T) {
	doc := Document{
		HasPatch:    true,
		PatchColor:  "tan leather",
		PatchDetail: "N/A",
		Placement:   "",
		Size:        "5cm x 3cm",
		Technique:   " ",
	}
	result := Validate(doc)

	flags := flagsFor(result, "has_patch")
	if len(flags) != 1 {
		t.Fatalf("has_patch flags = %d, want 1", len(flags))
	}
	flag := flags[0]
	if flag.Confidence != ConfidenceCritical {
		t.Fatalf("confidence = %q, want %q", flag.Confidence, ConfidenceCritical)
	}
	if flag.Corrected != "" {
		t.Fatal("patch gate must not auto-fix")
	}
	for _, name := range []string{"patch_detail", "placement", "technique"} {
		if !strings.Contains(flag.Issue, name) {
			t.Fatalf("issue %q does not name missing field %q", flag.Issue, name)
		}
	}
	for _, name := range []string{"patch_color", "size"} {
		if strings.Contains(flag.Issue, name+",") || strings.HasSuffix(flag.Issue, name) {
			t.Fatalf("issue %q names present field %q", flag.Issue, name)
		}
	}
	if !result.Data.HasPatch || result.Data.PatchColor != doc.PatchColor || result.Data.PatchDetail != doc.PatchDetail {
		t.Fatal("patch gate altered patch fields")
	}
	if result.WasModified {
		t.Fatal("was_modified true with no corrections")
	}
}

func TestValidateCategoryReclassification(t *testing.T) {
	cases := []struct {
		name     string
		category string
		hem      string
		want     string
	}{
		{"sleepwear with zipper", "pajama pants", "ankle zipper closure", "joggers"},
		{"loose knit with zipper no cuff", "knit pants", "hidden zip at the ankle", "joggers"},
		{"joggers with cuff no zipper", "joggers", "elastic ribbed cuff", "knit lounge pants"},
		{"consistent construction untouched", "joggers", "ankle zipper closure", "joggers"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := Validate(Document{Category: tc.category, AnkleTermination: tc.hem})
			if result.Data.Category != tc.want {
				t.Fatalf("category = %q, want %q", result.Data.Category, tc.want)
			}
		})
	}
}

// The category rule must see the hem after the hem rule has resolved the
// contradiction: sweatpants with "zipper + cuff" text become joggers only
// because the hem was first normalized to zipper.
func TestValidateCategoryRuleReadsCorrectedHem(t *testing.T) {
	result := Validate(Document{
		Category:         "sweatpants",
		AnkleTermination: "ankle zip over an elastic cuff",
	})
	if result.Data.AnkleTermination != "ankle zipper closure" {
		t.Fatalf("hem = %q, want normalized zipper hem", result.Data.AnkleTermination)
	}
	if result.Data.Category != "joggers" {
		t.Fatalf("category = %q, want joggers", result.Data.Category)
	}
}

func TestValidateWasModifiedProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		doc := Document{}
		if rng.Intn(2) == 0 {
			doc.PrimaryColorHex = "A1B2C3" // correctable
		}
		if rng.Intn(2) == 0 {
			doc.Category = "trousers"
			doc.Pockets = "front pockets only" // review-only
		}
		if rng.Intn(2) == 0 {
			doc.BackPlacement = "label at the right side" // correctable
		}
		if rng.Intn(2) == 0 {
			doc.HasPatch = true // critical, no correction
		}

		result := Validate(doc)
		hasCorrection := false
		for _, f := range result.Flags {
			if f.Corrected != "" {
				hasCorrection = true
				break
			}
		}
		if result.WasModified != hasCorrection {
			t.Fatalf("iteration %d: was_modified = %v, corrections present = %v, flags = %+v",
				i, result.WasModified, hasCorrection, result.Flags)
		}
	}
}

func TestValidateDoesNotMutateInput(t *testing.T) {
	doc := Document{
		Category:         "jogger pants",
		AnkleTermination: "zipper and elastic cuff",
		PrimaryColorHex:  "FFFFFF",
		Extra:            map[string]json.RawMessage{"logo_placement": json.RawMessage(`"chest"`)},
	}
	_ = Validate(doc)
	if doc.AnkleTermination != "zipper and elastic cuff" {
		t.Fatalf("input hem mutated: %q", doc.AnkleTermination)
	}
	if doc.PrimaryColorHex != "FFFFFF" {
		t.Fatalf("input color mutated: %q", doc.PrimaryColorHex)
	}
}

func TestDocumentUnknownFieldsRoundTrip(t *testing.T) {
	raw := []byte(`{"category":"joggers","drawstring":"flat cotton cord","care":{"wash":"cold"}}`)
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.Category != "joggers" {
		t.Fatalf("category = %q", doc.Category)
	}
	if len(doc.Extra) != 2 {
		t.Fatalf("extra keys = %d, want 2", len(doc.Extra))
	}

	result := Validate(doc)
	out, err := json.Marshal(result.Data)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, fragment := range []string{`"drawstring":"flat cotton cord"`, `"wash":"cold"`} {
		if !strings.Contains(string(out), fragment) {
			t.Fatalf("round-tripped document %s missing %s", out, fragment)
		}
	}
}
