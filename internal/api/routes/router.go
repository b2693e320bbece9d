package routes

import (
	"net/http"

	"github.com/healthflow/backend/internal/api/handlers"
	"github.com/healthflow/backend/internal/api/middleware"
	"github.com/healthflow/backend/internal/domain/providers"
	"github.com/healthflow/backend/internal/infrastructure/observability"
)

// RouterConfig holds the handlers and infrastructure the router wires together
type RouterConfig struct {
	CatalogHandler  *handlers.CatalogHandler
	PathwayHandler  *handlers.PathwayHandler
	AdvisoryHandler *handlers.AdvisoryHandler
	Cache           providers.CacheProvider
	Metrics         *observability.Metrics
}

// NewRouter creates and configures the HTTP router
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Reference catalog
	mux.HandleFunc("GET /api/countries", cfg.CatalogHandler.ListCountries)
	mux.HandleFunc("GET /api/states/{country}", cfg.CatalogHandler.ListStates)
	mux.HandleFunc("GET /api/estimate", cfg.CatalogHandler.GetEstimate)

	// Pathway resolution
	mux.HandleFunc("POST /check-pathway", cfg.PathwayHandler.CheckPathway)

	// Grounded AI advisory
	mux.HandleFunc("POST /api/ask-ai", cfg.AdvisoryHandler.AskAI)

	// Middleware chain, outermost first
	var handler http.Handler = mux
	handler = middleware.NewCacheMiddleware(cfg.Cache, cfg.Metrics).Middleware(handler)
	handler = middleware.ObservabilityMiddleware(cfg.Metrics)(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
