package handlers

import (
	"net/http"

	"github.com/gayratjon-02/AD-sub001/internal/guardrail"
)

// ReferenceAngles lists the closed set of marketing angles.
func (a *App) ReferenceAngles(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"angles": guardrail.Angles()})
}

// ReferenceFormats lists the supported ad formats and their dimensions.
func (a *App) ReferenceFormats(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"formats": guardrail.Formats()})
}
