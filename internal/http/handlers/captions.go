package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/Surojit012/DobbyCaption/internal/domain"
)

type captionResponse struct {
	RunID   string `json:"run_id"`
	State   string `json:"state"`
	Caption string `json:"caption,omitempty"`
	Error   string `json:"error,omitempty"`
}

// CaptionsGenerate accepts a multipart form with an image file and a tone
// field, runs the pipeline synchronously and returns its terminal state. A
// pipeline failure is still a 200: the error string is a user-facing result,
// not a transport problem.
func (a *App) CaptionsGenerate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.MaxUploadBytes)
	if err := r.ParseMultipartForm(a.MaxUploadBytes); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid multipart payload")
		return
	}

	tone, err := domain.ParseTone(r.FormValue("tone"))
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "unsupported tone")
		return
	}

	asset, ok := a.readImage(w, r)
	if !ok {
		return
	}

	// The run outlives a dropped connection: once started it is never
	// aborted, only its commit can go stale.
	ctx := context.WithoutCancel(r.Context())
	run, err := a.Pipeline.Generate(ctx, asset, tone)
	if err != nil {
		if errors.Is(err, domain.ErrNoImage) {
			a.error(w, http.StatusBadRequest, "bad_request", "no image selected")
			return
		}
		a.Logger.Error().Err(err).Msg("handlers: caption generation rejected")
		a.error(w, http.StatusInternalServerError, "internal", "failed to start run")
		return
	}

	a.json(w, http.StatusOK, captionResponse{
		RunID:   run.ID,
		State:   string(run.State),
		Caption: run.Caption,
		Error:   run.Error,
	})
}

// CaptionsCurrent exposes the shared result slot: the latest run's terminal
// state, or the running/idle view.
func (a *App) CaptionsCurrent(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, a.Pipeline.Snapshot())
}

type toneItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Tones lists the fixed tone enumeration for the selector UI.
func (a *App) Tones(w http.ResponseWriter, r *http.Request) {
	items := make([]toneItem, 0, len(domain.Tones()))
	for _, tone := range domain.Tones() {
		items = append(items, toneItem{ID: tone.String(), Label: tone.DisplayName()})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) readImage(w http.ResponseWriter, r *http.Request) (domain.ImageAsset, bool) {
	file, header, err := r.FormFile("image")
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "no image selected")
		return domain.ImageAsset{}, false
	}
	defer func() {
		_ = file.Close()
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "failed to read image")
		return domain.ImageAsset{}, false
	}

	mediaType := strings.TrimSpace(header.Header.Get("Content-Type"))
	if mediaType == "" || mediaType == "application/octet-stream" {
		mediaType = http.DetectContentType(data)
	}
	return domain.ImageAsset{Data: data, MediaType: mediaType, Name: header.Filename}, true
}
