package generation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/gayratjon-02/AD-sub001/internal/domain"
)

// parseAdCopy decodes the text-completion output into structured ad copy.
// Models wrap JSON in code fences or surround it with prose; both are
// tolerated. All four fields are required — missing copy fails the whole run.
func parseAdCopy(raw string) (domain.AdCopy, error) {
	var adCopy domain.AdCopy
	fragment := extractJSONObject(trimCodeFence(raw))
	if fragment == "" {
		return adCopy, errors.New("no JSON object in completion output")
	}
	if err := json.Unmarshal([]byte(fragment), &adCopy); err != nil {
		return adCopy, fmt.Errorf("decode ad copy: %w", err)
	}
	var missing []string
	for _, field := range []struct {
		name  string
		value string
	}{
		{"headline", adCopy.Headline},
		{"subheadline", adCopy.Subheadline},
		{"cta", adCopy.CTA},
		{"image_prompt", adCopy.ImagePrompt},
	} {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return adCopy, fmt.Errorf("ad copy missing required fields: %s", strings.Join(missing, ", "))
	}
	return adCopy, nil
}

func trimCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```JSON")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}

// extractJSONObject returns the first balanced top-level JSON object in text,
// tracking brace depth while skipping string literals and escapes.
func extractJSONObject(text string) string {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}
