package rest

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/hrconsole/api"
	"github.com/frahmantamala/hrconsole/internal/activity"
	"github.com/frahmantamala/hrconsole/internal/console"
	"github.com/frahmantamala/hrconsole/internal/observability/metrics"
	"github.com/frahmantamala/hrconsole/internal/transport/middleware"
	"github.com/frahmantamala/hrconsole/internal/transport/swagger"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// Routes is everything RegisterAllRoutes mounts. Nil handlers are skipped and an empty MetricsPath
// disables the metrics endpoint.
type Routes struct {
	Health         *HealthHandler
	Console        *console.Handler
	Activity       *activity.Handler
	CurrentUser    middleware.CurrentUserFunc
	AllowedOrigins string
	MetricsPath    string
	Logger         *slog.Logger
}

func RegisterAllRoutes(router *chi.Mux, routes Routes) {
	if routes.Health == nil {
		routes.Health = NewHealthHandler()
	}
	if routes.CurrentUser == nil {
		routes.CurrentUser = func() string { return "" }
	}

	// Apply global middleware
	router.Use(middleware.CORS(routes.AllowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.TraceID)
	router.Use(middleware.RecoveryMiddleware(routes.Logger))
	if routes.MetricsPath != "" {
		router.Use(metrics.HTTPMetricsMiddleware)
	}
	router.Use(middleware.Actor(routes.CurrentUser))
	router.Use(middleware.LoggingMiddleware(routes.Logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", api.Handler().ServeHTTP)
	router.Handle("/swagger/*", swagger.Handler("/openapi.yml"))

	if routes.MetricsPath != "" {
		router.Handle(routes.MetricsPath, metrics.Handler())
	}

	// Mount API under /api/v1 to match the OpenAPI server url
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", routes.Health.healthCheckHandler)
		r.Get("/ping", routes.Health.pingHandler)

		if routes.Activity != nil {
			r.Group(func(pr chi.Router) {
				pr.Use(middleware.RequireSignedIn(routes.CurrentUser))
				pr.Get("/activity", routes.Activity.GetActivity)
			})
		}

		// The console checks sign-in itself, per operation.
		if routes.Console != nil {
			routes.Console.RegisterRoutes(r)
		}
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"type":"NOT_FOUND","code":"ROUTE_NOT_FOUND","message":"Not found."}}`))
	})
}
