// Package main is the entry point for the API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/botforge-ai/response-engine/internal/config"
	"github.com/botforge-ai/response-engine/internal/engine"
	"github.com/botforge-ai/response-engine/internal/handler"
	"github.com/botforge-ai/response-engine/internal/intent"
	"github.com/botforge-ai/response-engine/internal/language"
	"github.com/botforge-ai/response-engine/internal/middleware"
	natsclient "github.com/botforge-ai/response-engine/internal/nats"
	"github.com/botforge-ai/response-engine/internal/store"
	"github.com/botforge-ai/response-engine/internal/template"
	"github.com/botforge-ai/response-engine/pkg/logger"
	"github.com/botforge-ai/response-engine/pkg/tracing"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting response engine")

	ctx := context.Background()
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "response-engine", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer tracing.Shutdown(ctx, tp)
		}
	}

	// Conversation history lives in JetStream. With NATS disabled the
	// engine still serves turns, it just keeps no transcript.
	var nc *natsclient.Client
	var history *natsclient.HistoryStore
	if cfg.NATSEnabled {
		nc, err = natsclient.Connect(ctx, natsclient.Config{
			URL:      cfg.NATSURL,
			CAFile:   cfg.NATSCAFile,
			CertFile: cfg.NATSCertFile,
			KeyFile:  cfg.NATSKeyFile,
			Token:    cfg.NATSToken,
		}, log)
		if err != nil {
			log.Error("failed to connect to NATS", zap.Error(err))
			os.Exit(1)
		}
		defer nc.Close()

		history = natsclient.NewHistoryStore(nc)
		if err := history.EnsureStream(ctx); err != nil {
			log.Error("failed to ensure history stream", zap.Error(err))
			os.Exit(1)
		}
	}

	embedder, err := intent.NewOpenAIEmbedder(cfg.OpenAIAPIKey, cfg.EmbeddingModel)
	if err != nil {
		log.Error("failed to create embedder", zap.Error(err))
		os.Exit(1)
	}

	classifier, err := intent.NewClassifier(ctx, embedder, intent.DefaultCatalog(), log)
	if err != nil {
		log.Error("failed to build intent classifier", zap.Error(err))
		os.Exit(1)
	}

	templates := template.NewMemoryStore()
	tenants := store.NewMemory()
	resolver := template.NewResolver(templates, templates)

	var engineHistory engine.History
	if history != nil {
		engineHistory = history
	}
	eng := engine.New(
		classifier,
		language.NewDetector(),
		resolver,
		tenants,
		tenants,
		tenants,
		engineHistory,
		engine.Thresholds{
			LanguageGate:      cfg.LanguageGate,
			ReinterpretFloor:  cfg.ReinterpretFloor,
			ReinterpretMargin: cfg.ReinterpretMargin,
			HistoryWindow:     cfg.HistoryWindow,
		},
		log,
	)

	healthHandler := handler.NewHealthHandler(nc, cfg.NATSEnabled)
	chatHandler := handler.NewChatHandler(eng, log)
	adminHandler := handler.NewAdminHandler(templates, tenants, log)

	var turnSource handler.TurnSource
	if history != nil {
		turnSource = history
	}
	historyHandler := handler.NewHistoryHandler(turnSource, log)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS())

	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// Widget endpoints: no auth, rate limited by client IP.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))

			r.Post("/chat", chatHandler.Chat)
			r.Get("/chat/welcome", chatHandler.Welcome)
			r.Get("/chat/history", historyHandler.SessionHistory)
		})

		// Tenant dashboard endpoints.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWTSecret))
			r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))

			r.Get("/history", historyHandler.Search)
			r.Get("/history/export", historyHandler.Export)

			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireScope("admin"))

				r.Get("/templates", adminHandler.ListTemplates)
				r.Put("/templates", adminHandler.UpsertTemplate)
				r.Put("/quick-replies", adminHandler.UpsertQuickReplies)
				r.Put("/profile", adminHandler.UpsertProfile)
				r.Put("/chatbot", adminHandler.UpsertChatbot)
				r.Get("/personalities", adminHandler.ListPersonalities)
			})
		})
	})

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}
