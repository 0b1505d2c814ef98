package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gayratjon-02/AD-sub001/internal/domain"
	"github.com/gayratjon-02/AD-sub001/internal/generation"
	"github.com/gayratjon-02/AD-sub001/internal/middleware"
)

type generateRequest struct {
	BrandID   string `json:"brand_id"`
	ConceptID string `json:"concept_id"`
	AngleID   string `json:"angle_id"`
	FormatID  string `json:"format_id"`
}

// GenerationsCreate starts a generation run. It answers within the sync-wait
// window either with the finished record or with the PROCESSING record for
// the client to poll.
func (a *App) GenerationsCreate(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.BrandID == "" || req.ConceptID == "" || req.AngleID == "" || req.FormatID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "brand_id, concept_id, angle_id and format_id are required")
		return
	}

	res, err := a.Service.Start(r.Context(), generation.Request{
		UserID:    userID,
		BrandID:   req.BrandID,
		ConceptID: req.ConceptID,
		AngleID:   req.AngleID,
		FormatID:  req.FormatID,
		Locale:    middleware.LocaleFromContext(r.Context()),
	})
	if err != nil {
		a.generationError(w, err)
		return
	}
	code := http.StatusCreated
	if res.Generation.Status == domain.GenerationProcessing {
		code = http.StatusAccepted
	}
	a.json(w, code, res)
}

// GenerationsGet returns one generation owned by the caller.
func (a *App) GenerationsGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "id required")
		return
	}
	gen, err := a.Generations.GetByID(r.Context(), id, a.currentUserID(r))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "generation not found")
			return
		}
		a.Logger.Error().Err(err).Str("generation_id", id).Msg("handlers: load generation")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load generation")
		return
	}
	a.json(w, http.StatusOK, gen)
}

// GenerationsActive returns the caller's most recent in-flight run, for
// clients resuming a progress view after the early return.
func (a *App) GenerationsActive(w http.ResponseWriter, r *http.Request) {
	gen, err := a.Generations.LatestProcessing(r.Context(), a.currentUserID(r))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "no generation in progress")
			return
		}
		a.Logger.Error().Err(err).Msg("handlers: load active generation")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load generation")
		return
	}
	a.json(w, http.StatusOK, gen)
}

// GenerationsRerender renders one more variation of a completed run.
func (a *App) GenerationsRerender(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "id required")
		return
	}
	res, err := a.Service.Rerender(r.Context(), a.currentUserID(r), id)
	if err != nil {
		a.generationError(w, err)
		return
	}
	a.json(w, http.StatusOK, res)
}

func (a *App) generationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "resource not found")
	case errors.Is(err, domain.ErrUnknownAngle):
		a.error(w, http.StatusUnprocessableEntity, "unknown_angle", err.Error())
	case errors.Is(err, domain.ErrUnknownFormat):
		a.error(w, http.StatusUnprocessableEntity, "unknown_format", err.Error())
	case errors.Is(err, domain.ErrPlaybookIncomplete):
		a.error(w, http.StatusUnprocessableEntity, "playbook_incomplete", "brand playbook is missing a product name")
	case errors.Is(err, domain.ErrNotRerenderable):
		a.error(w, http.StatusConflict, "not_rerenderable", "generation has no completed copy to render from")
	case errors.Is(err, domain.ErrProviderFailure):
		a.error(w, http.StatusBadGateway, "provider_failure", "image provider failed")
	default:
		a.Logger.Error().Err(err).Msg("handlers: generation request")
		a.error(w, http.StatusInternalServerError, "internal", "generation failed")
	}
}
