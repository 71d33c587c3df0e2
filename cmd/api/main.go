package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appai "github.com/mentorflow/mentorflow/internal/application/ai"
	appsubmissions "github.com/mentorflow/mentorflow/internal/application/submissions"
	"github.com/mentorflow/mentorflow/internal/config"
	"github.com/mentorflow/mentorflow/internal/infra/ai/openai"
	"github.com/mentorflow/mentorflow/internal/infra/ai/provider"
	"github.com/mentorflow/mentorflow/internal/infra/ai/yandex"
	"github.com/mentorflow/mentorflow/internal/infra/extract"
	"github.com/mentorflow/mentorflow/internal/infra/httpserver"
	minioStore "github.com/mentorflow/mentorflow/internal/infra/storage"
	"github.com/mentorflow/mentorflow/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatal().Err(err).Msg("config load error")
	}
	setupLogger(cfg.Log.Level, cfg.Log.Pretty)

	ctx := context.Background()

	// init provider
	oc := openai.Config{
		APIKey:  cfg.OpenAI.APIKey,
		Model:   cfg.OpenAI.Model,
		BaseURL: cfg.OpenAI.BaseURL,
	}
	yc := yandex.Config{
		APIKey:   cfg.Yandex.APIKey,
		FolderID: cfg.Yandex.FolderID,
		ModelURI: cfg.Yandex.ModelURI,
		BaseURL:  cfg.Yandex.BaseURL,
	}
	client := provider.New(cfg.Provider, oc, yc)
	configured := provider.Configured(cfg.Provider, oc, yc)
	if !configured {
		// requests still start; /api/analyze answers 500 until keys are set
		log.Warn().Str("provider", client.Name()).Msg("provider credentials not configured")
	}

	checkers := map[string]middleware.HealthChecker{
		"provider": middleware.ProviderConfigChecker{Provider: client.Name(), Configured: configured},
	}

	// init service
	subs := &appsubmissions.Service{Extractor: extract.New()}

	// init minio
	if cfg.Minio.Enabled {
		store, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("minio init error")
		}
		subs.Artifacts = store
		checkers["storage"] = store
	}

	// init router
	handler := httpserver.NewRouter(subs, appai.NewService(client), httpserver.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Checkers:       checkers,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// run server
	go func() {
		log.Info().Str("addr", addr).Str("provider", client.Name()).Bool("archive", cfg.Minio.Enabled).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Info().Msg("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}

func setupLogger(level string, pretty bool) {
	zerolog.TimeFieldFormat = time.RFC3339
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	if pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}
