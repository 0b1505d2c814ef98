package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gayratjon-02/AD-sub001/internal/analysis"
	"github.com/gayratjon-02/AD-sub001/internal/infra"
)

func zerologNop() infra.Logger {
	return zerolog.Nop()
}

func TestAnalysesValidateRepairsDocument(t *testing.T) {
	app := NewApp(&fakeService{}, &fakeGenerationRepo{}, zerologNop())

	body := `{"category":"pants","fabric":"corduroy","primary_color_hex":"1A1A1A"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/analyses/validate", strings.NewReader(body))
	app.AnalysesValidate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body)
	}
	var res analysis.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if res.Data.PrimaryColorHex != "#1A1A1A" {
		t.Fatalf("PrimaryColorHex = %q, want %q", res.Data.PrimaryColorHex, "#1A1A1A")
	}
	if !res.WasModified {
		t.Fatal("WasModified = false, want true")
	}
}

func TestAnalysesValidateRejectsBadJSON(t *testing.T) {
	app := NewApp(&fakeService{}, &fakeGenerationRepo{}, zerologNop())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/analyses/validate", strings.NewReader("not json"))
	app.AnalysesValidate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestReferenceEndpoints(t *testing.T) {
	app := NewApp(&fakeService{}, &fakeGenerationRepo{}, zerologNop())

	rec := httptest.NewRecorder()
	app.ReferenceAngles(rec, httptest.NewRequest(http.MethodGet, "/v1/reference/angles", nil))
	var angles struct {
		Angles []struct {
			ID string `json:"id"`
		} `json:"angles"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &angles); err != nil {
		t.Fatalf("decode angles: %v", err)
	}
	if len(angles.Angles) < 20 {
		t.Fatalf("len(angles) = %d, want >= 20", len(angles.Angles))
	}

	rec = httptest.NewRecorder()
	app.ReferenceFormats(rec, httptest.NewRequest(http.MethodGet, "/v1/reference/formats", nil))
	var formats struct {
		Formats []struct {
			ID          string `json:"id"`
			AspectRatio string `json:"aspect_ratio"`
		} `json:"formats"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &formats); err != nil {
		t.Fatalf("decode formats: %v", err)
	}
	if len(formats.Formats) != 4 {
		t.Fatalf("len(formats) = %d, want 4", len(formats.Formats))
	}
}
