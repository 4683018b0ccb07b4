package serve

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/spf13/cobra"

	"github.com/apimon/apimon/pkg/callbacks"
	"github.com/apimon/apimon/pkg/logger"
	"github.com/apimon/apimon/pkg/metrics"
	"github.com/apimon/apimon/pkg/monitor"
	monitorhttp "github.com/apimon/apimon/pkg/monitor/http"
	"github.com/apimon/apimon/pkg/scheduler"
	"github.com/apimon/apimon/pkg/settings"
)

var (
	port int
)

// origins allowed to call the API from a browser.
var origins = []string{
	"http://localhost",
	"http://localhost:8080",
	"http://localhost:5173",
	"https://react-frontend-production-81f7.up.railway.app",
}

// @title API Monitor
// @version 1.0
// @description API Monitor periodically checks a target endpoint and exposes control endpoints for the monitoring lifecycle

// @host localhost:8080
// @schemes http https

// setupServer configures and returns the HTTP server router
func setupServer(monitorService *monitor.Service, callbackService *callbacks.Service, m *metrics.Metrics) *chi.Mux {
	monitorHandler := monitorhttp.NewHandler(monitorService)
	callbackHandler := callbacks.NewHandler(callbackService)

	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	// Add CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	monitorHandler.RegisterRoutes(r)
	callbackHandler.RegisterRoutes(r)

	// Health check endpoint (required by many cloud platforms)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{"status": "healthy"})
	})

	r.Method(http.MethodGet, "/metrics", m.Handler())

	return r
}

// Command returns the serve command
func Command(log *logger.Logger) *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API monitor server",
		Long: `Start the HTTP server exposing the monitoring control endpoints.
For example:
  apimon serve --port 8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := settings.Load()
			if err != nil {
				return fmt.Errorf("failed to load settings: %w", err)
			}
			if port != 0 {
				cfg.Port = port
			}

			log, err := logger.New(&logger.Config{
				Level:      cfg.LogLevel,
				OutputPath: "stdout",
				Format:     "console",
			})
			if err != nil {
				return fmt.Errorf("failed to configure logger: %w", err)
			}

			sched := scheduler.NewCronScheduler(log)
			sched.Start()

			m := metrics.New()
			monitorService := monitor.NewService(monitor.NewConfig(), sched, log, m, os.Stdout)
			callbackService := callbacks.NewService(log)

			router := setupServer(monitorService, callbackService, m)

			httpServer := &http.Server{
				Addr:    fmt.Sprintf(":%d", cfg.Port),
				Handler: router,
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Info("HTTP server listening", "port", cfg.Port)
				errCh <- httpServer.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if err != nil && err != http.ErrServerClosed {
					return fmt.Errorf("failed to start HTTP server: %w", err)
				}
			case <-ctx.Done():
				log.Info("Shutting down")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				log.Error("HTTP server shutdown failed", "error", err)
			}

			// Deregister the monitoring job (no-op when inactive) and
			// release the scheduler before exit.
			sched.RemoveJob(monitor.JobID)
			sched.Shutdown()

			return nil
		},
	}

	// Add port flag; the PORT env var applies when the flag is not set
	serveCmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run the HTTP server on (default from PORT env var or 8080)")

	return serveCmd
}
