package generation

import (
	"strings"
	"testing"
)

func TestParseAdCopyFencedJSON(t *testing.T) {
	raw := "```json\n{\"headline\":\"H\",\"subheadline\":\"S\",\"cta\":\"C\",\"image_prompt\":\"P\"}\n```"
	adCopy, err := parseAdCopy(raw)
	if err != nil {
		t.Fatalf("parseAdCopy returned error: %v", err)
	}
	if adCopy.Headline != "H" || adCopy.ImagePrompt != "P" {
		t.Fatalf("adCopy = %+v", adCopy)
	}
}

func TestParseAdCopySurroundingProse(t *testing.T) {
	raw := `Sure! Here is the copy you asked for:
{"headline":"H","subheadline":"S","cta":"C","image_prompt":"P"}
Let me know if you need variations.`
	adCopy, err := parseAdCopy(raw)
	if err != nil {
		t.Fatalf("parseAdCopy returned error: %v", err)
	}
	if adCopy.CTA != "C" {
		t.Fatalf("CTA = %q, want %q", adCopy.CTA, "C")
	}
}

func TestParseAdCopyNestedBraces(t *testing.T) {
	raw := `{"headline":"Save {big}","subheadline":"S","cta":"C","image_prompt":"a scene with {curly} styling"}`
	adCopy, err := parseAdCopy(raw)
	if err != nil {
		t.Fatalf("parseAdCopy returned error: %v", err)
	}
	if adCopy.Headline != "Save {big}" {
		t.Fatalf("Headline = %q", adCopy.Headline)
	}
}

func TestParseAdCopyNotJSON(t *testing.T) {
	if _, err := parseAdCopy("not json at all"); err == nil {
		t.Fatal("parseAdCopy accepted prose with no JSON object")
	}
}

func TestParseAdCopyMissingFields(t *testing.T) {
	_, err := parseAdCopy(`{"headline":"H","cta":"C"}`)
	if err == nil {
		t.Fatal("parseAdCopy accepted copy missing required fields")
	}
	for _, name := range []string{"subheadline", "image_prompt"} {
		if !strings.Contains(err.Error(), name) {
			t.Fatalf("error %q does not name missing field %q", err, name)
		}
	}
}

func TestParseAdCopyBlankFieldCountsMissing(t *testing.T) {
	_, err := parseAdCopy(`{"headline":"H","subheadline":"  ","cta":"C","image_prompt":"P"}`)
	if err == nil || !strings.Contains(err.Error(), "subheadline") {
		t.Fatalf("err = %v, want missing subheadline", err)
	}
}
