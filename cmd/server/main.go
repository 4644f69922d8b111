package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tirematch/backend/internal/catalog"
	"github.com/tirematch/backend/internal/checkout"
	"github.com/tirematch/backend/internal/config"
	"github.com/tirematch/backend/internal/db"
	httpapi "github.com/tirematch/backend/internal/http"
	"github.com/tirematch/backend/internal/installers"
	"github.com/tirematch/backend/internal/recommend"
	"github.com/tirematch/backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "tirematch-backend").Logger()

	ctx := context.Background()

	var store *db.Store
	if cfg.DatabaseURL != "" {
		store, err = db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect db")
		}
		defer store.Close()
	} else {
		logger.Info().Msg("DATABASE_URL not set, request log disabled")
	}

	catalogClient := &catalog.ShopifyClient{
		Domain:     cfg.ShopifyDomain,
		Token:      cfg.ShopifyToken,
		APIVersion: cfg.ShopifyAPIVersion,
		Logger:     logger,
	}

	var engine recommend.Engine
	if cfg.GeminiAPIKey == "" {
		engine = recommend.MockEngine{ModelVersion: "mock-v1"}
		logger.Info().Msg("GEMINI_API_KEY not set, using mock recommendation engine")
	} else {
		engine, err = recommend.NewGeminiEngine(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to init gemini client")
		}
	}

	recommender := &service.Recommender{
		Catalog: catalogClient,
		Engine:  engine,
		Store:   store,
		Logger:  logger,
	}

	installerClient := &installers.Client{
		APIKey:          cfg.AirtableAPIKey,
		BaseID:          cfg.AirtableBaseID,
		InstallersTable: cfg.AirtableInstallersTable,
		JobsTable:       cfg.AirtableJobsTable,
	}

	builder := &checkout.Builder{
		Domain:     cfg.ShopifyDomain,
		Token:      cfg.ShopifyToken,
		APIVersion: cfg.ShopifyAPIVersion,
		Logger:     logger,
	}

	router := httpapi.Router(cfg, recommender, installerClient, builder, store, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}
