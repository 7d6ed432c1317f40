package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/adapters/cache"
	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/adapters/database"
	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/api/handlers"
	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/api/middleware"
	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/api/routes"
	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/application/services"
	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/domain/providers"
	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/domain/repositories"
	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/infrastructure/clients/redis"
	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/infrastructure/observability"
	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/planning"
	"github.com/zatekoja/Implantcaseplanningdesign/backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize structured logging
	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)

	log.Info().
		Str("service", cfg.OTEL.ServiceName).
		Str("version", cfg.OTEL.ServiceVersion).
		Str("env", cfg.Server.Env).
		Msg("Starting Implant Case Planning API")

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	var shutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err = observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				if err := shutdown(shutdownCtx); err != nil {
					log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	log.Info().Msg("PostgreSQL client initialized successfully")

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize Redis client; continuing without caching")
	} else {
		defer redisClient.Close()
		log.Info().Msg("Redis client initialized successfully")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Initialize adapters

	baseCaseAdapter := database.NewCaseAdapter(pgClient)

	// Wrap with caching if Redis is available
	var caseRepo repositories.CaseRepository
	if cacheProvider != nil {
		caseRepo = database.NewCachedCaseAdapter(baseCaseAdapter, cacheProvider)
		log.Info().Msg("Case adapter wrapped with caching layer")
	} else {
		caseRepo = baseCaseAdapter
		log.Warn().Msg("Case adapter running without cache (Redis unavailable)")
	}

	// Load the master checklist template. The service falls back to the
	// legacy static checklist when the template is missing.
	template, err := planning.LoadMasterChecklist(cfg.Checklist.TemplatePath)
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.Checklist.TemplatePath).
			Msg("Failed to load master checklist template; dynamic checklists disabled")
		template = nil
	} else {
		log.Info().Str("version", template.Version).Msg("Master checklist template loaded")
	}

	// Initialize services

	learningService := services.NewLearningService(caseRepo)
	caseService := services.NewCaseService(caseRepo, learningService)
	planningService := services.NewPlanningService(caseRepo)
	checklistService := services.NewChecklistService(caseRepo, template)

	// Initialize handlers

	caseHandler := handlers.NewCaseHandler(caseService)
	planningHandler := handlers.NewPlanningHandler(planningService)
	checklistHandler := handlers.NewChecklistHandler(checklistService)
	feedbackHandler := handlers.NewFeedbackHandler(caseService, learningService)
	attachmentHandler := handlers.NewAttachmentHandler(caseService)

	// Initialize cache middleware
	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider, metrics)
		log.Info().Msg("Cache middleware initialized successfully")
	}

	// Set up router

	router := routes.NewRouter(
		caseHandler,
		planningHandler,
		checklistHandler,
		feedbackHandler,
		attachmentHandler,
		cacheMiddleware,
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", serverAddr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
