package image

import (
	"context"
	"errors"
)

// ErrNoImage marks a call that succeeded at the transport level but carried
// no image data. Callers treat it like any other generation failure.
var ErrNoImage = errors.New("image provider returned no image data")

// Request describes one render. AspectRatio is one of the closed format set
// ("9:16", "1:1", "4:5", "16:9").
type Request struct {
	Prompt      string
	AspectRatio string
	RequestID   string
	Variation   int
}

// Asset is the rendered image.
type Asset struct {
	Data   []byte
	Format string
	Width  int
	Height int
}

// Generator is the image-generation capability the orchestrator depends on.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Asset, error)
}

// aspectDimensions maps the supported aspect ratios to render dimensions.
func aspectDimensions(aspect string) (int, int) {
	switch aspect {
	case "9:16":
		return 1080, 1920
	case "4:5":
		return 1080, 1350
	case "16:9":
		return 1920, 1080
	default:
		return 1080, 1080
	}
}
