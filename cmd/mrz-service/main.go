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
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/veriscan/veriscan-backend/internal/auth/token"
	"github.com/veriscan/veriscan-backend/internal/mrz/consumers"
	"github.com/veriscan/veriscan-backend/internal/mrz/events"
	"github.com/veriscan/veriscan-backend/internal/mrz/handler"
	"github.com/veriscan/veriscan-backend/internal/mrz/repository"
	"github.com/veriscan/veriscan-backend/internal/mrz/service"
	"github.com/veriscan/veriscan-backend/internal/mrz/storage"
	"github.com/veriscan/veriscan-backend/pkg/apikey"
	"github.com/veriscan/veriscan-backend/pkg/config"
	"github.com/veriscan/veriscan-backend/pkg/database"
	"github.com/veriscan/veriscan-backend/pkg/httputil"
	"github.com/veriscan/veriscan-backend/pkg/logger"
	"github.com/veriscan/veriscan-backend/pkg/messaging"
)

func main() {
	// Load configuration with validation (fails fast in production if required config is missing)
	cfg, err := config.LoadWithValidation("mrz-service")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New("mrz-service", cfg.Server.Environment)
	log.Info().Msg("starting MRZ Service")

	// Connect to database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Connect to RabbitMQ
	rmq, err := messaging.New(&cfg.RabbitMQ, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
	}
	defer rmq.Close()

	// Initialize event publisher
	publisher, err := events.NewScanEventPublisher(rmq, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create event publisher")
	}

	// Initialize storage and repository
	jobStore := storage.NewJobStore(cfg.Scanner.JobTTL)
	auditRepo := repository.NewAuditRepository(db)

	// Initialize service
	scanService := service.NewService(jobStore, auditRepo, publisher, log, cfg.Scanner.MaxTranscriptBytes)

	// Initialize handlers
	mrzHandler := handler.NewHandler(scanService, log)

	// Initialize auth
	tokenManager := token.NewManager(&cfg.JWT)
	keyChecker := apikey.New(cfg.Scanner.APIClients)
	authMiddleware := token.NewMiddleware(tokenManager, keyChecker, log)

	// Start transcript consumer
	transcriptConsumer, err := consumers.NewTranscriptConsumer(rmq, scanService, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create transcript consumer")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := transcriptConsumer.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to start transcript consumer")
	}

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(httputil.RequestID)
	r.Use(httputil.Logger(log))
	r.Use(httputil.Recoverer(log))
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", "X-Client-ID", "X-API-Key"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check (no auth required)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]interface{}{
			"status":   "healthy",
			"service":  "mrz-service",
			"database": db.Health(r.Context()),
			"rabbitmq": rmq.Health(),
		})
	})

	// API routes (auth required)
	r.Route("/api/v1/mrz", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		mrzHandler.Routes(r)
	})

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Cancel context to stop consumers
	cancel()

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
