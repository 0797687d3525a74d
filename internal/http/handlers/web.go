package handlers

import (
	_ "embed"
	"html/template"
	"net/http"

	"github.com/Surojit012/DobbyCaption/internal/domain"
)

//go:embed index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

type indexTone struct {
	ID    string
	Label string
}

// Index serves the upload form. The generate button is disabled client-side
// while no file is chosen or a run is in flight; that is advisory only, the
// pipeline enforces nothing.
func (a *App) Index(w http.ResponseWriter, r *http.Request) {
	tones := make([]indexTone, 0, len(domain.Tones()))
	for _, tone := range domain.Tones() {
		tones = append(tones, indexTone{ID: tone.String(), Label: tone.DisplayName()})
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, map[string]any{"Tones": tones}); err != nil {
		a.Logger.Error().Err(err).Msg("handlers: failed to render index")
	}
}
