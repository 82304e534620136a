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

	"github.com/capitalize-ai/hivemind/internal/config"
	"github.com/capitalize-ai/hivemind/internal/handler"
	"github.com/capitalize-ai/hivemind/internal/llm"
	"github.com/capitalize-ai/hivemind/internal/middleware"
	natsclient "github.com/capitalize-ai/hivemind/internal/nats"
	"github.com/capitalize-ai/hivemind/internal/service"
	"github.com/capitalize-ai/hivemind/pkg/logger"
	"github.com/capitalize-ai/hivemind/pkg/tracing"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	logger.SetGlobal(log)

	log.Info("starting API server")

	// Initialize tracing if enabled
	ctx := context.Background()
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "hivemind", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer tracing.Shutdown(ctx, tp)
		}
	}

	// Connect to NATS when the event stream is enabled
	var (
		natsClient  *natsclient.Client
		publisher   service.EventPublisher
		activitySvc *service.ActivityService
	)
	if cfg.NATSEnabled {
		natsClient, err = natsclient.Connect(ctx, natsclient.Config{
			URL:      cfg.NATSURL,
			CAFile:   cfg.NATSCAFile,
			CertFile: cfg.NATSCertFile,
			KeyFile:  cfg.NATSKeyFile,
			Token:    cfg.NATSToken,
		}, log)
		if err != nil {
			log.Fatal("failed to connect to NATS", zap.Error(err))
		}
		defer natsClient.Close()

		streamManager := natsclient.NewStreamManager(natsClient)
		if err := streamManager.EnsureStream(ctx); err != nil {
			log.Fatal("failed to ensure stream", zap.Error(err))
		}
		publisher = streamManager
		activitySvc = service.NewActivityService(streamManager)
	} else {
		log.Info("event stream disabled")
	}

	// Initialize LLM clients; each configured provider joins the synthesis fan-out
	clients := newLLMClients(cfg, log)

	// Initialize services
	thoughtSvc := service.NewThoughtService(publisher, cfg.ClusterNames, log)
	synthesisSvc := service.NewSynthesisService(clients, publisher, cfg.LLMTimeout, cfg.LLMMaxTokens, log)
	analysisSvc := service.NewAnalysisService(log)

	if cfg.SeedFile != "" {
		nodes, err := service.LoadSeedFile(cfg.SeedFile)
		if err != nil {
			log.Fatal("failed to load seed file", zap.String("path", cfg.SeedFile), zap.Error(err))
		}
		thoughtSvc.Seed(ctx, nodes)
	}

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(natsClient, synthesisSvc.Providers())
	analysisHandler := handler.NewAnalysisHandler(analysisSvc, log)
	thoughtHandler := handler.NewThoughtHandler(thoughtSvc, log)
	synthesisHandler := handler.NewSynthesisHandler(synthesisSvc, log)
	streamHandler := handler.NewStreamHandler(synthesisSvc, activitySvc, log)
	eventHandler := handler.NewEventHandler(activitySvc, log)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS())

	// Health endpoints (no auth required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	// API routes with authentication
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWTSecret))
		r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))

		// Stateless analysis
		r.Post("/analyze/sentiment", analysisHandler.Sentiment)
		r.Post("/analyze/search", analysisHandler.Search)

		// Synthesis
		r.Route("/synthesis", func(r chi.Router) {
			r.Get("/providers", synthesisHandler.Providers)
			r.With(middleware.RequireScope(middleware.ScopeSynthesis)).Post("/", synthesisHandler.Synthesize)
			r.With(middleware.RequireScope(middleware.ScopeSynthesis)).Post("/stream", streamHandler.Synthesis)
		})

		// Thought board
		r.Route("/thoughts", func(r chi.Router) {
			r.Get("/", thoughtHandler.List)
			r.Get("/search", thoughtHandler.Search)
			r.Get("/trending", thoughtHandler.Trending)
			r.Get("/clusters", thoughtHandler.Clusters)
			r.Get("/{id}", thoughtHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireScope(middleware.ScopeThoughtsWrite))
				r.Post("/", thoughtHandler.Create)
				r.Post("/{id}/like", thoughtHandler.Like)
				r.Post("/{id}/comments", thoughtHandler.Comment)
				r.Put("/{id}/style", thoughtHandler.Customize)
			})
		})

		// Activity feed
		r.Get("/events", eventHandler.List)
		r.Get("/events/stream", streamHandler.Activity)
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}

func newLogger(cfg *config.Config) (*logger.Logger, error) {
	if cfg.Environment == "development" {
		return logger.NewDevelopment()
	}
	return logger.New(cfg.LogLevel)
}

func newLLMClients(cfg *config.Config, log *logger.Logger) []llm.Client {
	providers := []struct {
		provider llm.Provider
		apiKey   string
		model    string
	}{
		{llm.ProviderOpenAI, cfg.OpenAIAPIKey, cfg.OpenAIModel},
		{llm.ProviderAnthropic, cfg.AnthropicAPIKey, cfg.AnthropicModel},
	}

	var clients []llm.Client
	for _, p := range providers {
		if p.apiKey == "" {
			continue
		}
		client, err := llm.NewClient(p.provider, p.apiKey, p.model)
		if err != nil {
			log.Warn("failed to create LLM client", zap.String("provider", string(p.provider)), zap.Error(err))
			continue
		}
		clients = append(clients, client)
	}

	if len(clients) == 0 {
		log.Warn("no LLM providers configured, synthesis accepts supplied responses only")
	}
	return clients
}
