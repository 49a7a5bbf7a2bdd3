package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/medvoy/medvoy-platform/internal/chat"
	"github.com/medvoy/medvoy-platform/internal/costs"
	"github.com/medvoy/medvoy-platform/internal/flights"
	"github.com/medvoy/medvoy-platform/internal/hospitals"
	httpmiddleware "github.com/medvoy/medvoy-platform/internal/http/middleware"
	"github.com/medvoy/medvoy-platform/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger             *logging.Logger
	ChatHandler        *chat.Handler
	HospitalsHandler   *hospitals.Handler
	FlightsHandler     *flights.Handler
	CostsHandler       *costs.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
	ServiceToken       string
}

// New creates a Chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	// Patient-facing surface. Compression stays off here: SSE frames must
	// reach the client as they are written.
	r.Group(func(public chi.Router) {
		public.Post("/chat", cfg.ChatHandler.Chat)
		public.Get("/chat/history", cfg.ChatHandler.History)
	})

	// Capability endpoints consumed by the relay's tool resolvers.
	r.Route("/capabilities", func(caps chi.Router) {
		caps.Use(middleware.Compress(5))
		caps.Use(httpmiddleware.ServiceToken(cfg.ServiceToken))
		caps.Post("/hospitals", cfg.HospitalsHandler.Search)
		caps.Post("/flights", cfg.FlightsHandler.Search)
		caps.Post("/costs", cfg.CostsHandler.Estimate)
	})

	return r
}
