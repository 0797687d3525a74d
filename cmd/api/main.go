package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Surojit012/DobbyCaption/internal/adapter/repo"
	"github.com/Surojit012/DobbyCaption/internal/http/handlers"
	"github.com/Surojit012/DobbyCaption/internal/http/httpapi"
	"github.com/Surojit012/DobbyCaption/internal/infra"
	"github.com/Surojit012/DobbyCaption/internal/infra/credentials"
	"github.com/Surojit012/DobbyCaption/internal/pipeline"
	captionprovider "github.com/Surojit012/DobbyCaption/internal/providers/caption"
	"github.com/Surojit012/DobbyCaption/internal/providers/vision"
)

func main() {
	// .env is optional.
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()

	// The database only backs run history and the credential fallback; the
	// service runs fine without one.
	var sql infra.SQLExecutor
	var runs handlers.RunLister
	var recorder pipeline.Recorder
	if cfg.DatabaseURL != "" {
		pool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect database")
		}
		defer pool.Close()
		runner := infra.NewSQLRunner(pool, logger)
		runRepo := repo.NewRunRepository(runner, logger)
		sql = runner
		runs = runRepo
		recorder = runRepo
	} else {
		logger.Info().Msg("no DATABASE_URL set, run history disabled")
	}

	creds := credentials.NewStore(credentials.Options{
		VisionKeyEnv: cfg.VisionKeyEnv,
		DobbyKeyEnv:  cfg.DobbyKeyEnv,
		SQL:          sql,
	})

	httpClient := &http.Client{Timeout: 60 * time.Second}
	describer := vision.NewClient(vision.Options{
		KeyFunc:    creds.VisionAPIKey,
		Model:      cfg.VisionModel,
		BaseURL:    cfg.InferenceBaseURL,
		HTTPClient: httpClient,
		OnFallback: func(reason string) {
			logger.Warn().Str("reason", reason).Msg("vision: fell back to default description")
		},
	})
	captioner := captionprovider.NewClient(captionprovider.Options{
		KeyFunc:    creds.DobbyAPIKey,
		Model:      cfg.CaptionModel,
		BaseURL:    cfg.InferenceBaseURL,
		HTTPClient: httpClient,
		OnFallback: func(reason string) {
			logger.Warn().Str("reason", reason).Msg("caption: fell back to canned caption")
		},
	})

	svc := pipeline.NewService(pipeline.Options{
		Describer: describer,
		Captioner: captioner,
		Recorder:  recorder,
		Logger:    logger,
	})

	app := handlers.NewApp(logger, svc, runs, int64(cfg.MaxUploadMB)<<20)
	router := httpapi.NewRouter(app, logger, httpapi.Options{
		RateLimitPerMin: cfg.RateLimitPerMin,
		CORSOrigins:     cfg.CORSOrigins,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Str("addr", server.Addr()).Msg("API listening")
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
