// Package main is the entry point for the Yatra API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
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
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/yatra-app/yatra/internal/config"
	"github.com/yatra-app/yatra/internal/events"
	"github.com/yatra-app/yatra/internal/handler"
	"github.com/yatra-app/yatra/internal/middleware"
	"github.com/yatra-app/yatra/internal/service"
	"github.com/yatra-app/yatra/internal/session"
	"github.com/yatra-app/yatra/internal/storage"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Storage ----------------------------------------------------------
	backend, err := storage.Open(context.Background(), cfg, logger)
	if err != nil {
		slog.Error("failed to open storage", "driver", cfg.StorageDriver, "error", err)
		os.Exit(1)
	}
	defer backend.Close()

	// --- Events -----------------------------------------------------------
	// Without AMQP_URL notifications are only stored, never published.
	var publisher events.Publisher = events.Nop{}
	if cfg.AMQPURL != "" {
		amqpPub, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			slog.Error("failed to connect to message broker", "error", err)
			os.Exit(1)
		}
		defer amqpPub.Close()
		publisher = amqpPub
		slog.Info("publishing social events", "exchange", cfg.AMQPExchange)
	}

	// --- Services ---------------------------------------------------------
	repos := backend.Repos
	fanout := service.NewFanout(repos.Notifications, publisher, logger)
	sessions := session.NewManager(cfg.JWTSecret, session.WithSecureCookie(cfg.IsProduction()))

	srv := handler.NewServer(handler.Services{
		Auth:          service.NewAuthService(repos.Users, cfg.BcryptCost),
		Trips:         service.NewTripService(repos.Trips),
		Social:        service.NewSocialService(repos, fanout),
		Notifications: service.NewNotificationService(repos.Notifications, repos.Users),
		Feed:          service.NewFeedService(repos),
		Profiles:      service.NewProfileService(repos.Users, repos.Trips),
		Search:        service.NewSearchService(repos.Users),
		Contact:       service.NewContactService(repos.Contacts),
		Travelers:     service.NewTravelerService(repos),
		Export:        service.NewExportService(repos.Trips),
	}, sessions, logger)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → MaxBodySize.
	// CORS runs before any handler so preflight OPTIONS requests get answered
	// without reaching the session checks.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	routes := srv.Routes()
	if cfg.StaticDir != "" {
		// Anything the API does not route is a frontend page. Signed-out
		// visitors to app pages are sent to /login first.
		static := http.FileServer(http.Dir(cfg.StaticDir))
		routes.NotFound(middleware.RedirectToLogin(sessions)(static).ServeHTTP)
		slog.Info("serving frontend", "dir", cfg.StaticDir)
	}
	r.Mount("/", routes)

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr, "env", cfg.AppEnv)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
