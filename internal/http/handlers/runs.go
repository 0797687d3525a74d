package handlers

import (
	"net/http"
	"strconv"
	"time"
)

type runItem struct {
	ID        string    `json:"id"`
	Tone      string    `json:"tone"`
	State     string    `json:"state"`
	Caption   string    `json:"caption,omitempty"`
	Error     string    `json:"error,omitempty"`
	LatencyMS int       `json:"latency_ms"`
	CreatedAt time.Time `json:"created_at"`
}

// RunsRecent lists recorded runs, newest first. Without a database the list
// is always empty.
func (a *App) RunsRecent(w http.ResponseWriter, r *http.Request) {
	items := []runItem{}
	if a.Runs != nil {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		runs, err := a.Runs.ListRecent(r.Context(), limit)
		if err != nil {
			a.Logger.Error().Err(err).Msg("handlers: failed to list runs")
			a.error(w, http.StatusInternalServerError, "internal", "failed to load runs")
			return
		}
		for _, run := range runs {
			items = append(items, runItem{
				ID:        run.ID,
				Tone:      run.Tone.String(),
				State:     string(run.State),
				Caption:   run.Caption,
				Error:     run.Error,
				LatencyMS: run.LatencyMS,
				CreatedAt: run.CreatedAt,
			})
		}
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}
