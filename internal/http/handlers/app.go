package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gayratjon-02/AD-sub001/internal/domain"
	"github.com/gayratjon-02/AD-sub001/internal/generation"
	"github.com/gayratjon-02/AD-sub001/internal/infra"
	"github.com/gayratjon-02/AD-sub001/internal/middleware"
)

// GenerationService is the slice of the orchestrator the HTTP layer needs.
type GenerationService interface {
	Start(ctx context.Context, req generation.Request) (*generation.Result, error)
	Rerender(ctx context.Context, userID, generationID string) (*generation.Result, error)
}

type App struct {
	Service     GenerationService
	Generations domain.GenerationRepository
	Logger      infra.Logger
}

func NewApp(service GenerationService, generations domain.GenerationRepository, logger infra.Logger) *App {
	return &App{Service: service, Generations: generations, Logger: logger}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, kind, message string) {
	a.json(w, code, map[string]string{"error": kind, "message": message})
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}
