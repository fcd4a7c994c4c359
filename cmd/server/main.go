// agentdesk - WhatsApp AI agent dashboard server
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/nmoreau/agentdesk/internal/api"
	"github.com/nmoreau/agentdesk/internal/auth"
	"github.com/nmoreau/agentdesk/internal/config"
	"github.com/nmoreau/agentdesk/internal/events"
	"github.com/nmoreau/agentdesk/internal/kv"
	"github.com/nmoreau/agentdesk/internal/middleware"
	"github.com/nmoreau/agentdesk/internal/store"
	"github.com/nmoreau/agentdesk/internal/templates"
	"github.com/nmoreau/agentdesk/web"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "port", cfg.Port, "dev", cfg.IsDevelopment())

	// Initialize dependencies.
	slots, err := kv.NewSQLite(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize slot store", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := slots.Close(); closeErr != nil {
			slog.Error("Failed to close slot store", "error", closeErr)
		}
	}()

	if err := slots.Ping(context.Background()); err != nil {
		slog.Error("Slot store health check failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Slot store connected", "path", cfg.DBPath)

	secret, err := auth.GenerateOrLoadSecret(context.Background(), slots, cfg.JWTSecret)
	if err != nil {
		slog.Error("Failed to load JWT secret", "error", err)
		os.Exit(1)
	}

	authSvc, err := auth.New(context.Background(), slots, auth.Config{
		DemoEmail:    cfg.DemoEmail,
		DemoPassword: cfg.DemoPassword,
		Latency:      store.DefaultLatency().Scaled(cfg.LatencyScale).Auth,
	})
	if err != nil {
		slog.Error("Failed to initialize auth service", "error", err)
		os.Exit(1)
	}

	hub := events.NewHub()
	st := store.NewMemory(
		store.WithLatency(store.DefaultLatency().Scaled(cfg.LatencyScale)),
		store.WithEvents(hub),
	)
	if cfg.SeedDemoData {
		st.Seed()
		slog.Info("Demo data seeded")
	}

	handoff := templates.NewHandoff(slots)

	// Initialize handlers.
	handler := api.NewHandler(st, authSvc, handoff, api.Options{
		Secret:   secret,
		TokenTTL: cfg.TokenTTL,
		IsDev:    cfg.IsDevelopment(),
	})
	wsHandler := events.NewWebSocketHandler(hub, cfg.IsDevelopment())
	loginLimiter := middleware.NewRateLimiter(cfg.LoginRatePerMinute, cfg.LoginRateBurst)

	// Setup router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(middleware.CORS(corsOrigins(cfg)))

	// Public credential routes, rate limited per client IP.
	r.Group(func(r chi.Router) {
		r.Use(loginLimiter.Middleware)
		handler.RegisterAuthRoutes(r)
	})

	// Authenticated dashboard routes.
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(secret))
		handler.RegisterDashboardRoutes(r)
		r.Get("/ws/events", wsHandler.ServeHTTP)
	})

	// Serve embedded frontend (SPA catch-all).
	r.Handle("/*", web.SPAHandler())

	// Create server.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // websocket event streams stay open indefinitely
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server.
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}

func corsOrigins(cfg *config.Config) []string {
	if cfg.FrontendURL == "" {
		return []string{"*"}
	}
	return []string{cfg.FrontendURL}
}
