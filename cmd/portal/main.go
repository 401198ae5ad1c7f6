package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Experiencepwunkr/globomail/internal/config"
	"github.com/Experiencepwunkr/globomail/internal/data/mongo"
	"github.com/Experiencepwunkr/globomail/internal/data/postgres"
	"github.com/Experiencepwunkr/globomail/internal/logger"
	"github.com/Experiencepwunkr/globomail/internal/notify"
	"github.com/Experiencepwunkr/globomail/internal/platform/email"
	"github.com/Experiencepwunkr/globomail/internal/platform/messaging/producers"
	"github.com/Experiencepwunkr/globomail/internal/platform/persistence"
	"github.com/Experiencepwunkr/globomail/internal/portal"
	"github.com/Experiencepwunkr/globomail/internal/portal/auth"
	"github.com/Experiencepwunkr/globomail/internal/portal/service"
)

func main() {
	// Create base context with cancellation
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	// Initialize configuration
	cfg, err := config.LoadConfig("portal")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg)

	// Initialize databases with app context
	postgresDB, err := persistence.NewPostgresDB(appCtx, log, &cfg.Postgres)
	if err != nil {
		log.Error("Failed to initialize PostgreSQL", "error", err)
		os.Exit(1)
	}

	mongoDB, err := persistence.NewMongoDB(appCtx, log, &cfg.MongoDB)
	if err != nil {
		log.Error("Failed to initialize MongoDB", "error", err)
		os.Exit(1)
	}

	// Initialize Kafka producer for lifecycle events
	eventProducer, err := producers.NewRequestEventProducer(appCtx, log, &cfg.Kafka)
	if err != nil {
		log.Error("Failed to initialize lifecycle event producer", "error", err)
		os.Exit(1)
	}

	// Initialize outbound notification pipeline
	mailer := email.NewSMTPMailer(log, &cfg.SMTP)
	dispatcher, err := notify.NewDispatcher(log, mailer, cfg.WorkerPool.Size)
	if err != nil {
		log.Error("Failed to initialize notification dispatcher", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	agentRepo := postgres.NewAgentRepository(log, postgresDB)
	requestRepo := postgres.NewRequestRepository(log, postgresDB)
	auditRepo := mongo.NewAuditRepository(log, mongoDB.Database())

	// Initialize services
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	agentService := service.NewAgentService(agentRepo, tokens, cfg.Auth.BcryptCost)
	intakeService := service.NewIntakeService(log, requestRepo, auditRepo, eventProducer)
	fulfillmentService := service.NewFulfillmentService(log, requestRepo, auditRepo, eventProducer, dispatcher)

	// Initialize REST server
	server := portal.NewServer(log, cfg, tokens, agentService, intakeService, fulfillmentService)
	log.Info("REST server initialized")

	// Create error channel for server errors
	errChan := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Set up signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// Wait for a shutdown signal or error
	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error occurred", "error", err)
		serverErr = err
	}

	// Cancel the application context
	cancelAppCtx()

	// Create a shutdown context with timeout
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	// Graceful shutdown sequence
	log.Info("Starting graceful shutdown...")

	// Shutdown HTTP server first so no new work arrives
	if err = server.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
	}

	// Drain in-flight notification deliveries
	dispatcher.Shutdown()

	if err = eventProducer.Close(); err != nil {
		log.Error("Error closing lifecycle event producer", "error", err)
	}

	// Shutdown postgres connection pool
	postgresDB.Close()

	if err = mongoDB.Close(shutdownCtx); err != nil {
		log.Error("Error closing MongoDB connection", "error", err)
	}

	// Final status
	if serverErr != nil {
		log.Error("HTTP server shutdown with errors", "error", serverErr)
	}
	if err != nil {
		log.Error("Server shutdown completed with errors")
	} else {
		log.Info("Server shutdown completed successfully")
	}
}
