package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gayratjon-02/AD-sub001/internal/analysis"
)

// AnalysesValidate runs the repair rules over a raw vision-model analysis and
// returns the corrected document with its review flags.
func (a *App) AnalysesValidate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "unreadable payload")
		return
	}
	var doc analysis.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "payload is not a valid analysis document")
		return
	}
	a.json(w, http.StatusOK, analysis.Validate(doc))
}
