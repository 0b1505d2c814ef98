package guardrail

// Format is one deliverable ad size. Pixel dimensions are fixed per format;
// the aspect ratio string is what the image provider accepts.
type Format struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	AspectRatio string `json:"aspect_ratio"`
}

var formats = []Format{
	{"square", "Feed Square", 1080, 1080, "1:1"},
	{"story", "Story / Reel", 1080, 1920, "9:16"},
	{"portrait", "Feed Portrait", 1080, 1350, "4:5"},
	{"landscape", "Landscape Banner", 1920, 1080, "16:9"},
}

var formatIndex = func() map[string]Format {
	idx := make(map[string]Format, len(formats))
	for _, f := range formats {
		idx[f.ID] = f
	}
	return idx
}()

// FormatByID resolves an ad format from the closed configuration set.
func FormatByID(id string) (Format, bool) {
	f, ok := formatIndex[id]
	return f, ok
}

// Formats returns the full configuration set in declaration order.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}
