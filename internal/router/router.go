package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appMiddleware "github.com/FACorreiaa/tripmate-api/app/middleware"
	"github.com/FACorreiaa/tripmate-api/internal/api/chat"
	"github.com/FACorreiaa/tripmate-api/internal/api/diag"
	"github.com/FACorreiaa/tripmate-api/internal/api/place"
	"github.com/FACorreiaa/tripmate-api/internal/api/poi"
)

// Config contains dependencies needed for the router setup
type Config struct {
	POIHandler         *poi.POIHandler
	PlaceHandler       *place.PlaceHandler
	ChatHandler        *chat.ChatHandler
	DiagHandler        *diag.DiagHandler
	AllowedOrigins     []string
	RateLimitPerMinute int
	MetricsEnabled     bool
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (like logger, requestID, recoverer) are expected
// to be applied *before* mounting this router in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any major browsers
	}))

	// Service endpoints, never rate limited
	r.Get("/", cfg.DiagHandler.Home)
	r.Get("/health", cfg.DiagHandler.Health)
	r.Get("/version", cfg.DiagHandler.Version)
	r.Get("/diag", cfg.DiagHandler.Diag)
	if cfg.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Group(func(r chi.Router) {
		r.Use(appMiddleware.RateLimit(cfg.RateLimitPerMinute))
		r.Use(middleware.NoCache)

		r.Get("/search", cfg.POIHandler.Search)
		r.Get("/destinations", cfg.POIHandler.GetDestinations)
		r.Get("/destinations_full", cfg.PlaceHandler.GetDestinationsFull)
		r.Get("/place", cfg.PlaceHandler.GetPlace)
		r.Post("/chat", cfg.ChatHandler.Chat)
	})

	return r
}
