package analysis

import "encoding/json"

// Document is a vision-model extraction of a single garment photo. Every field
// is optional: rules skip what is absent. Keys the validator does not inspect
// are preserved verbatim in Extra and round-trip untouched through JSON.
type Document struct {
	Category         string `json:"category,omitempty"`
	Fabric           string `json:"fabric,omitempty"`
	AnkleTermination string `json:"ankle_termination,omitempty"`
	BackPlacement    string `json:"back_placement,omitempty"`
	Pockets          string `json:"pockets,omitempty"`
	PrimaryColorHex  string `json:"primary_color_hex,omitempty"`
	HasPatch         bool   `json:"has_patch,omitempty"`
	PatchColor       string `json:"patch_color,omitempty"`
	PatchDetail      string `json:"patch_detail,omitempty"`
	Placement        string `json:"placement,omitempty"`
	Size             string `json:"size,omitempty"`
	Technique        string `json:"technique,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

var knownDocumentKeys = map[string]struct{}{
	"category":          {},
	"fabric":            {},
	"ankle_termination": {},
	"back_placement":    {},
	"pockets":           {},
	"primary_color_hex": {},
	"has_patch":         {},
	"patch_color":       {},
	"patch_detail":      {},
	"placement":         {},
	"size":              {},
	"technique":         {},
}

type documentAlias Document

func (d *Document) UnmarshalJSON(data []byte) error {
	var alias documentAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key := range knownDocumentKeys {
		delete(raw, key)
	}
	if len(raw) == 0 {
		raw = nil
	}
	alias.Extra = raw
	*d = Document(alias)
	return nil
}

func (d Document) MarshalJSON() ([]byte, error) {
	alias := documentAlias(d)
	alias.Extra = nil
	base, err := json.Marshal(alias)
	if err != nil {
		return nil, err
	}
	if len(d.Extra) == 0 {
		return base, nil
	}
	merged := map[string]json.RawMessage{}
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for key, value := range d.Extra {
		if _, known := knownDocumentKeys[key]; known {
			continue
		}
		merged[key] = value
	}
	return json.Marshal(merged)
}

// Clone returns a deep copy. Validate operates on a clone so the caller's
// document is never mutated.
func (d Document) Clone() Document {
	out := d
	if d.Extra != nil {
		out.Extra = make(map[string]json.RawMessage, len(d.Extra))
		for key, value := range d.Extra {
			out.Extra[key] = append(json.RawMessage(nil), value...)
		}
	}
	return out
}

// Confidence grades how trustworthy a correction is.
type Confidence string

const (
	ConfidenceAutoFixed   Confidence = "auto_fixed"
	ConfidenceNeedsReview Confidence = "needs_review"
	ConfidenceCritical    Confidence = "critical"
)

// Flag records one finding. Corrected is set only when the rule rewrote the
// field; review-only findings leave it empty.
type Flag struct {
	Field      string     `json:"field"`
	Issue      string     `json:"issue"`
	Original   string     `json:"original"`
	Corrected  string     `json:"corrected,omitempty"`
	Confidence Confidence `json:"confidence"`
}

// Result is the outcome of one Validate call. Flags preserve rule execution
// order. WasModified is true iff at least one flag carries a correction.
type Result struct {
	Data        Document `json:"data"`
	Flags       []Flag   `json:"flags"`
	WasModified bool     `json:"was_modified"`
}
