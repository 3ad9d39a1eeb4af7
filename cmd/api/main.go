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

	"github.com/codezero-health/er-intake/internal/adapters/cache"
	"github.com/codezero-health/er-intake/internal/adapters/database"
	"github.com/codezero-health/er-intake/internal/adapters/events"
	"github.com/codezero-health/er-intake/internal/adapters/memory"
	"github.com/codezero-health/er-intake/internal/adapters/providers/routing"
	"github.com/codezero-health/er-intake/internal/adapters/search"
	"github.com/codezero-health/er-intake/internal/api/handlers"
	"github.com/codezero-health/er-intake/internal/api/routes"
	"github.com/codezero-health/er-intake/internal/domain/providers"
	"github.com/codezero-health/er-intake/internal/domain/repositories"
	"github.com/codezero-health/er-intake/internal/geo"
	"github.com/codezero-health/er-intake/internal/infrastructure/clients/postgres"
	"github.com/codezero-health/er-intake/internal/infrastructure/clients/redis"
	"github.com/codezero-health/er-intake/internal/infrastructure/clients/typesense"
	"github.com/codezero-health/er-intake/internal/infrastructure/observability"
	"github.com/codezero-health/er-intake/internal/triage"
	"github.com/codezero-health/er-intake/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env, cfg.LogLevel)

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
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
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

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize Redis client, continuing without it")
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Info().Msg("Redis client initialized successfully")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// The queue falls back to process memory when Postgres is not
	// configured, which is the expected dev setup.
	var queue repositories.PatientQueueRepository
	if cfg.Database.Enabled {
		pgClient, err := postgres.NewClient(&cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
		}
		defer pgClient.Close()

		adapter := database.NewPatientQueueAdapter(pgClient)
		if pqa, ok := adapter.(*database.PatientQueueAdapter); ok {
			if err := pqa.EnsureSchema(ctx); err != nil {
				log.Fatal().Err(err).Msg("Failed to ensure queue schema")
			}
		}
		queue = adapter
		log.Info().Msg("PostgreSQL queue initialized successfully")
	} else {
		queue = memory.NewPatientQueue()
		log.Info().Msg("In-memory queue initialized")
	}

	// Occupancy reports are shared across instances when Redis is up
	var occupancy repositories.OccupancyStore
	if redisClient != nil {
		occupancy = cache.NewRedisOccupancyStore(redisClient)
	} else {
		occupancy = memory.NewOccupancyStore()
	}

	// Hospital directory, optionally index-backed
	var directory repositories.HospitalDirectory
	var typesenseClient *typesense.Client
	if cfg.Typesense.URL != "" {
		typesenseClient, err = typesense.NewClient(&cfg.Typesense)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize Typesense client")
			typesenseClient = nil
		}
	}
	if typesenseClient != nil {
		adapter := search.NewTypesenseDirectory(typesenseClient)
		if err := adapter.InitSchema(context.Background()); err != nil {
			log.Warn().Err(err).Msg("Failed to init Typesense schema")
		}
		directory = adapter
		log.Info().Msg("Typesense hospital directory initialized")
	} else {
		directory = search.NewStaticDirectory()
		log.Info().Msg("Static hospital directory initialized")
	}

	// Initialize event bus for real-time updates
	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		log.Info().Msg("Event bus initialized successfully")
	} else {
		log.Info().Msg("Event bus disabled (Redis not available)")
	}

	routingProvider := routing.NewRoutingProvider(cfg.Routing, cacheProvider)
	ranker := geo.NewRanker(directory, occupancy, routingProvider)
	classifier := triage.NewClassifier()

	// Initialize handlers
	triageHandler := handlers.NewTriageHandler(classifier, queue, ranker, eventBus, events.IntakeChannel, metrics)
	hospitalHandler := handlers.NewHospitalHandler(ranker, directory, occupancy)
	queueHandler := handlers.NewQueueHandler(queue, eventBus, events.IntakeChannel, cfg.Triage.QueueLimit)

	var sseHandler *handlers.SSEHandler
	if eventBus != nil {
		sseHandler = handlers.NewSSEHandler(eventBus, events.IntakeChannel)
	}

	// Set up router
	router := routes.NewRouter(
		triageHandler,
		hospitalHandler,
		queueHandler,
		sseHandler,
		metrics,
		cfg.Server.AllowedOrigins,
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

	// Close event bus
	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing event bus")
		}
	}

	log.Info().Msg("Server stopped")
}
