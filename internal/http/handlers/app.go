package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Surojit012/DobbyCaption/internal/domain"
	"github.com/Surojit012/DobbyCaption/internal/infra"
	"github.com/Surojit012/DobbyCaption/internal/pipeline"
)

// RunLister reads back recorded runs. Nil when no database is configured.
type RunLister interface {
	ListRecent(ctx context.Context, limit int) ([]domain.Run, error)
}

// App carries the wired collaborators for all HTTP handlers.
type App struct {
	Logger         infra.Logger
	Pipeline       *pipeline.Service
	Runs           RunLister
	MaxUploadBytes int64
}

func NewApp(logger infra.Logger, svc *pipeline.Service, runs RunLister, maxUploadBytes int64) *App {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 8 << 20
	}
	return &App{Logger: logger, Pipeline: svc, Runs: runs, MaxUploadBytes: maxUploadBytes}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]string{"code": code, "message": message})
}
