package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Surojit012/DobbyCaption/internal/http/handlers"
	"github.com/Surojit012/DobbyCaption/internal/infra"
	"github.com/Surojit012/DobbyCaption/internal/middleware"
)

// Options tunes router-level policies.
type Options struct {
	RateLimitPerMin int
	CORSOrigins     []string
}

func NewRouter(app *handlers.App, logger infra.Logger, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(logger),
	)
	if len(opts.CORSOrigins) > 0 {
		r.Use(middleware.CORS(opts.CORSOrigins))
	}

	r.Get("/", app.Index)
	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/tones", app.Tones)
	r.Get("/v1/openapi.json", app.OpenAPIJSON)
	r.Get("/v1/docs", app.OpenAPIDocs)

	r.Route("/v1/captions", func(r chi.Router) {
		if opts.RateLimitPerMin > 0 {
			r.With(middleware.RateLimit(opts.RateLimitPerMin, time.Minute)).Post("/", app.CaptionsGenerate)
		} else {
			r.Post("/", app.CaptionsGenerate)
		}
		r.Get("/current", app.CaptionsCurrent)
	})

	r.Get("/v1/runs/recent", app.RunsRecent)

	return r
}
