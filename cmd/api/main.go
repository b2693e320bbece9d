package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/healthflow/backend/internal/adapters/cache"
	"github.com/healthflow/backend/internal/adapters/database"
	"github.com/healthflow/backend/internal/api/handlers"
	"github.com/healthflow/backend/internal/api/routes"
	"github.com/healthflow/backend/internal/application/services"
	"github.com/healthflow/backend/internal/catalog"
	"github.com/healthflow/backend/internal/domain/providers"
	"github.com/healthflow/backend/internal/infrastructure/clients/openai"
	"github.com/healthflow/backend/internal/infrastructure/clients/postgres"
	"github.com/healthflow/backend/internal/infrastructure/clients/redis"
	"github.com/healthflow/backend/internal/infrastructure/observability"
	"github.com/healthflow/backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()

	// Initialize Redis client
	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		// Caching is optional; the API works without Redis
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		log.Println("Redis client initialized successfully")
	}

	// Load the bundled reference catalog
	cat, err := catalog.Load(cfg.Catalog.DataPath)
	if err != nil {
		// Degraded mode: store lookups and the national average still work
		log.Printf("Warning: Failed to load reference catalog from %s: %v", cfg.Catalog.DataPath, err)
		cat = catalog.Empty()
	} else {
		log.Printf("Reference catalog loaded: %d countries", len(cat.Countries()))
	}

	// Initialize advisory provider
	var advisoryProvider providers.AdvisoryProvider
	if cfg.OpenAI.APIKey == "" {
		log.Println("Warning: OPENAI_API_KEY is not set; AI advisory disabled")
	} else {
		openaiClient, err := openai.NewClient(&cfg.OpenAI)
		if err != nil {
			log.Printf("Warning: Failed to initialize OpenAI client: %v", err)
		} else {
			advisoryProvider = openaiClient
		}
	}

	// Initialize adapters
	procedureAdapter := database.NewProcedureAdapter(pgClient)
	hiddenCostAdapter := database.NewHiddenCostAdapter(pgClient)
	hospitalAdapter := database.NewHospitalAdapter(pgClient)

	// Initialize services
	eligibilityFilter := services.NewEligibilityFilter()
	pathwayService := services.NewPathwayService(
		procedureAdapter,
		hiddenCostAdapter,
		hospitalAdapter,
		cat,
		eligibilityFilter,
	)
	advisoryService := services.NewAdvisoryService(
		advisoryProvider,
		time.Duration(cfg.OpenAI.TimeoutSeconds)*time.Second,
	)

	// Initialize handlers
	catalogHandler := handlers.NewCatalogHandler(cat, pathwayService)
	pathwayHandler := handlers.NewPathwayHandler(pathwayService)
	advisoryHandler := handlers.NewAdvisoryHandler(advisoryService)

	handler := routes.NewRouter(routes.RouterConfig{
		CatalogHandler:  catalogHandler,
		PathwayHandler:  pathwayHandler,
		AdvisoryHandler: advisoryHandler,
		Cache:           cacheProvider,
		Metrics:         metrics,
	})

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server stopped")
}
