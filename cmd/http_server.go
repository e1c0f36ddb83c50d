package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/hrconsole/api"
	"github.com/frahmantamala/hrconsole/internal/activity"
	activityPostgres "github.com/frahmantamala/hrconsole/internal/activity/postgres"
	"github.com/frahmantamala/hrconsole/internal/console"
	"github.com/frahmantamala/hrconsole/internal/core/events"
	"github.com/frahmantamala/hrconsole/internal/observability/metrics"
	"github.com/frahmantamala/hrconsole/internal/transport"
	"github.com/frahmantamala/hrconsole/internal/transport/rest"
	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server that exposes the console session`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

func startHTTPServer() {
	ctx := context.Background()

	deps, err := initializeDependencies(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}
	defer deps.Close()

	if _, err := api.Load(ctx); err != nil {
		deps.Logger.Error("embedded OpenAPI document is invalid", "error", err)
		os.Exit(1)
	}

	eventBus := events.NewEventBus(deps.Logger)
	router := chi.NewRouter()
	setupRoutes(ctx, deps, eventBus, router)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
		// let in-flight activity records finish before the database closes
		eventBus.Wait()
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("Server failed to start", "error", err)
			deps.Close()
			os.Exit(1)
		}
	}

	deps.Logger.Info("Server stopped")
}

func setupRoutes(ctx context.Context, deps *Dependencies, eventBus *events.EventBus, router *chi.Mux) {
	cfg := deps.Config
	base := transport.NewBaseHandler(deps.Logger)

	var activityHandler *activity.Handler
	if deps.Gorm != nil {
		activityService := activity.NewService(activityPostgres.NewActivityRepository(deps.Gorm), cfg.Activity.DefaultLimit, deps.Logger)
		activityService.RegisterEventHandlers(eventBus)
		activityHandler = activity.NewHandler(base, activityService)
	}

	metricsPath := ""
	if cfg.Observability.Metrics.Enabled {
		metrics.NewEventHandler(deps.Logger).RegisterEventHandlers(eventBus)
		metricsPath = cfg.Observability.Metrics.Path
	}

	repo := deps.loadRepository(ctx, eventBus)
	session := console.New(repo, eventBus, deps.Logger)

	rest.RegisterAllRoutes(router, rest.Routes{
		Health:         rest.NewHealthHandler(deps.healthChecks()...),
		Console:        console.NewHandler(base, session),
		Activity:       activityHandler,
		CurrentUser:    session.CurrentUserID,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		MetricsPath:    metricsPath,
		Logger:         deps.Logger,
	})
}
