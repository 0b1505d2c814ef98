package text

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Completer is the text-completion capability the orchestrator depends on:
// given one prompt, return the raw model text or fail.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// StaticCompleter produces deterministic ad copy without calling a vendor.
// Used in keyless development and CI so the pipeline stays exercisable
// end-to-end.
type StaticCompleter struct{}

func NewStaticCompleter() *StaticCompleter {
	return &StaticCompleter{}
}

func (s *StaticCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	product := extractQuoted(prompt)
	if product == "" {
		product = "our product"
	}
	title := cases.Title(language.Und).String(product)
	payload := map[string]string{
		"headline":     fmt.Sprintf("Meet %s", title),
		"subheadline":  fmt.Sprintf("%s, made for every day", title),
		"cta":          "Shop now",
		"image_prompt": fmt.Sprintf("A clean studio photograph of %s on a neutral backdrop", product),
	}
	out, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// extractQuoted pulls the quoted product name out of the prompt, preferring
// the "Product:" marker the copy-prompt builder emits.
func extractQuoted(prompt string) string {
	if idx := strings.Index(prompt, "Product: "); idx >= 0 {
		prompt = prompt[idx:]
	}
	start := strings.Index(prompt, `"`)
	if start < 0 {
		return ""
	}
	rest := prompt[start+1:]
	end := strings.Index(rest, `"`)
	if end < 0 {
		return ""
	}
	return strings.TrimSpace(rest[:end])
}

var _ Completer = (*StaticCompleter)(nil)
