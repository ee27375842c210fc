package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/riandyrn/otelchi"
	otelchimetric "github.com/riandyrn/otelchi/metric"
	"github.com/socialchef/mise/internal/middleware"
	"github.com/socialchef/mise/internal/sentry"
	"go.opentelemetry.io/otel"
)

// NewRouter wires the page and JSON routes behind the session middleware.
func NewRouter(srv *Server, sessions *middleware.Sessions) http.Handler {
	serverName := srv.cfg.ServiceName
	if serverName == "" {
		serverName = "socialchef-mise"
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(sentry.HTTPMiddleware)

	// Tracing
	r.Use(otelchi.Middleware(serverName,
		otelchi.WithChiRoutes(r),
		otelchi.WithFilter(func(r *http.Request) bool {
			return r.URL.Path != "/health"
		}),
	))

	// HTTP metrics
	metricCfg := otelchimetric.NewBaseConfig(serverName, otelchimetric.WithMeterProvider(otel.GetMeterProvider()))
	r.Use(otelchimetric.NewRequestDurationMillis(metricCfg))
	r.Use(otelchimetric.NewRequestInFlight(metricCfg))
	r.Use(otelchimetric.NewResponseSizeBytes(metricCfg))

	// Cross-origin access is off unless origins are configured; an empty
	// list would make cors allow every origin.
	if origins := srv.cfg.AllowedOrigins(); len(origins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   origins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Group(func(r chi.Router) {
		r.Use(sessions.Middleware)
		r.Use(middleware.RequireSession)

		r.Get("/", srv.HandleIndex)
		r.Post("/credential", srv.HandleCredentialForm)
		r.Post("/recipe", srv.HandleRecipeForm)

		r.Route("/api", func(r chi.Router) {
			r.NotFound(srv.HandleNotFound)
			r.Get("/state", srv.HandleState)
			r.Post("/credential", srv.HandleSubmitCredential)
			r.Put("/fields/{field}", srv.HandleUpdateField)
			r.Post("/recipe", srv.HandleSubmitRecipe)
		})
	})

	return r
}
