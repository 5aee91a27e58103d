package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Jose00521/Raffle-sub002/internal/allocation"
	"github.com/Jose00521/Raffle-sub002/internal/config"
	"github.com/Jose00521/Raffle-sub002/internal/draw"
	"github.com/Jose00521/Raffle-sub002/internal/handler"
	"github.com/Jose00521/Raffle-sub002/internal/notify"
	"github.com/Jose00521/Raffle-sub002/internal/repository"
	"github.com/Jose00521/Raffle-sub002/internal/service"
	"github.com/Jose00521/Raffle-sub002/internal/validator"
	"github.com/Jose00521/Raffle-sub002/pkg/database"
)

func main() {
	// Load configuration first
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Initialize zerolog based on configuration
	initLogger(cfg)

	// Create context for startup
	ctx := context.Background()

	// Initialize database pool with retry
	pool, err := database.NewPool(ctx, cfg.DB.DSN(), 5)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Initialize the notify collaborator. Campaign creation never depends on
	// it, so a disabled broker degrades to a no-op.
	var notifier service.Notifier = notify.Noop{}
	closeNotifier := func() {}
	if cfg.AMQP.Enabled {
		amqpNotifier, closeFn, err := notify.Dial(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to notification broker")
		}
		notifier = amqpNotifier
		closeNotifier = closeFn
		log.Info().Str("exchange", cfg.AMQP.Exchange).Msg("notification broker connected")
	}

	// Initialize Fiber with production-ready configuration
	app := fiber.New(fiber.Config{
		AppName:      "Raffle Campaign Service",
		ReadTimeout:  30 * time.Second,  // Max time to read request
		WriteTimeout: 30 * time.Second,  // Max time to write response
		IdleTimeout:  120 * time.Second, // Max time for keep-alive connections
		BodyLimit:    1 * 1024 * 1024,   // 1MB body limit (explicit, prevents large payloads)
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New()) // Adds X-Request-ID header to all requests
	app.Use(logger.New())

	// Initialize validator
	validate := validator.New()

	// Initialize campaign components (layered architecture)
	campaignRepo := repository.NewCampaignRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	prizeRepo := repository.NewPrizeRepository(pool)
	referenceRepo := repository.NewReferenceRepository(pool)
	engine := draw.NewEngine(cfg.Draw.AttemptsPerNumber)
	allocator := allocation.NewAllocator(engine)
	campaignService := service.NewCampaignService(
		pool, campaignRepo, ticketRepo, prizeRepo, referenceRepo, allocator, notifier)
	campaignHandler := handler.NewCampaignHandler(campaignService, validate)

	// Health handler
	healthHandler := handler.NewHealthHandler(pool, cfg.AMQP.Enabled)
	app.Get("/health", healthHandler.Check)

	// Campaign routes
	app.Post("/api/campaigns", campaignHandler.CreateCampaign)
	app.Get("/api/campaigns/:code/prizes", campaignHandler.GetCampaignPrizes)

	// Start server with graceful shutdown
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("starting server")
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("received shutdown signal")
	log.Info().Int("timeout_seconds", cfg.Server.ShutdownTimeout).Msg("shutting down server...")

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer shutdownCancel()

	// Shutdown server (waits for in-flight requests)
	log.Info().Msg("waiting for in-flight requests to complete...")
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	// Close broker and database pool AFTER server shutdown
	closeNotifier()
	log.Info().Msg("closing database connections...")
	pool.Close()
	log.Info().Msg("database connections closed")
	log.Info().Msg("server stopped")
}

// initLogger configures zerolog based on the application configuration.
func initLogger(cfg *config.Config) {
	// Set log level
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Log.Pretty {
		// Human-readable output for development
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).
			With().Timestamp().Logger()
	} else {
		// JSON output for production
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
}
