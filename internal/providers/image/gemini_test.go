package image

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func inlineImageBody(data []byte, mime string) io.ReadCloser {
	payload := map[string]any{
		"candidates": []map[string]any{{
			"content": map[string]any{
				"parts": []map[string]any{
					{"text": "here is your image"},
					{"inlineData": map[string]string{
						"mimeType": mime,
						"data":     base64.StdEncoding.EncodeToString(data),
					}},
				},
			},
		}},
	}
	raw, _ := json.Marshal(payload)
	return io.NopCloser(strings.NewReader(string(raw)))
}

func TestGeminiGeneratorDecodesInlineData(t *testing.T) {
	want := []byte{0x89, 0x50, 0x4e, 0x47}
	gen := NewGeminiGenerator(Options{
		APIKey: "dummy",
		HTTPClient: &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			return &http.Response{StatusCode: http.StatusOK, Body: inlineImageBody(want, "image/png")}, nil
		})},
	})
	asset, err := gen.Generate(context.Background(), Request{Prompt: "p", AspectRatio: "1:1", RequestID: "r1"})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if string(asset.Data) != string(want) {
		t.Fatalf("Data = %v, want %v", asset.Data, want)
	}
	if asset.Format != "image/png" {
		t.Fatalf("Format = %q", asset.Format)
	}
	if asset.Width != 1080 || asset.Height != 1080 {
		t.Fatalf("dimensions = %dx%d, want 1080x1080", asset.Width, asset.Height)
	}
}

func TestGeminiGeneratorNoImagePartsIsSoftFailure(t *testing.T) {
	gen := NewGeminiGenerator(Options{
		APIKey: "dummy",
		HTTPClient: &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			body := io.NopCloser(strings.NewReader(`{"candidates":[{"content":{"parts":[{"text":"sorry"}]}}]}`))
			return &http.Response{StatusCode: http.StatusOK, Body: body}, nil
		})},
	})
	_, err := gen.Generate(context.Background(), Request{Prompt: "p", AspectRatio: "1:1"})
	if !errors.Is(err, ErrNoImage) {
		t.Fatalf("err = %v, want ErrNoImage", err)
	}
}

func TestGeminiGeneratorSyntheticWithoutKey(t *testing.T) {
	gen := NewGeminiGenerator(Options{})
	a, err := gen.Generate(context.Background(), Request{Prompt: "p", AspectRatio: "9:16", RequestID: "r1"})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if len(a.Data) == 0 || a.Format != "image/png" {
		t.Fatalf("synthetic asset = %d bytes, format %q", len(a.Data), a.Format)
	}
	if a.Width != 1080 || a.Height != 1920 {
		t.Fatalf("dimensions = %dx%d, want 1080x1920", a.Width, a.Height)
	}

	b, err := gen.Generate(context.Background(), Request{Prompt: "p", AspectRatio: "9:16", RequestID: "r1"})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if string(a.Data) != string(b.Data) {
		t.Fatal("synthetic assets for identical requests differ")
	}
}

func TestGeminiGeneratorSurfacesErrorStatus(t *testing.T) {
	gen := NewGeminiGenerator(Options{
		APIKey: "dummy",
		HTTPClient: &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			return &http.Response{StatusCode: http.StatusBadGateway, Body: io.NopCloser(strings.NewReader("{}"))}, nil
		})},
	})
	if _, err := gen.Generate(context.Background(), Request{Prompt: "p", AspectRatio: "1:1"}); err == nil {
		t.Fatal("expected status error")
	}
}
