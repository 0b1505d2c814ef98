package image

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	stdimage "image"
	"image/color"
	"image/draw"
	"image/png"
)

// synthetic renders a deterministic placeholder PNG derived from the request,
// keeping downstream persistence testable without vendor credentials.
func (g *GeminiGenerator) synthetic(req Request) *Asset {
	width, height := aspectDimensions(req.AspectRatio)
	// Render at 1/10 scale; the placeholder only needs to be a valid PNG.
	w, h := width/10, height/10
	seed := sha256.Sum256(fmt.Appendf(nil, "%s|%s|%d", req.RequestID, req.Prompt, req.Variation))

	img := stdimage.NewRGBA(stdimage.Rect(0, 0, w, h))
	base := color.RGBA{R: seed[0], G: seed[1], B: seed[2], A: 255}
	band := color.RGBA{R: seed[3], G: seed[4], B: seed[5], A: 255}
	draw.Draw(img, img.Bounds(), &stdimage.Uniform{C: base}, stdimage.Point{}, draw.Src)
	draw.Draw(img, stdimage.Rect(0, h/3, w, 2*h/3), &stdimage.Uniform{C: band}, stdimage.Point{}, draw.Src)

	var buf bytes.Buffer
	_ = png.Encode(&buf, img)

	g.logger.Debug().
		Str("request_id", req.RequestID).
		Int("variation", req.Variation).
		Msg("image: generated synthetic asset")

	return &Asset{Data: buf.Bytes(), Format: "image/png", Width: width, Height: height}
}
