package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quote-desk/internal/catalog"
	"quote-desk/internal/config"
	"quote-desk/internal/database"
	"quote-desk/internal/handler"
	"quote-desk/internal/notify"
	"quote-desk/internal/reference"
	"quote-desk/internal/repository"
	"quote-desk/internal/router"
	"quote-desk/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting quote-desk API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize quote storage: Postgres when configured, in-memory otherwise
	var quoteRepo repository.QuoteRepository
	if cfg.Database.Enabled {
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer pool.Close()

		quoteRepo = repository.NewQuoteRepository(pool, logger)
	} else {
		logger.Warn().Msg("database disabled, quotes are stored in memory and lost on restart")
		quoteRepo = repository.NewMemoryRepository(logger)
	}

	// Initialize catalogue loader with S3 and local fallback
	fileLoader := catalog.NewFileLoader(logger)
	catalogLoader := fileLoader

	if cfg.Catalog.S3Enabled {
		s3Loader, err := catalog.NewS3Loader(ctx, cfg.Catalog.S3Bucket, cfg.Catalog.S3Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			catalogLoader = catalog.NewFallbackLoader(s3Loader, fileLoader, cfg.Catalog.S3Key, cfg.Catalog.LocalPath, logger)
		}
	} else {
		logger.Info().Msg("using local file system for the product catalogue (S3 disabled)")
	}

	products, err := catalogLoader.Load(ctx, cfg.Catalog.LocalPath)
	if err != nil {
		return fmt.Errorf("failed to load product catalogue: %w", err)
	}
	store := catalog.NewStore(products)
	logger.Info().Int("products", store.Size()).Msg("product catalogue loaded")

	// Initialize notifications
	notifier := notify.NewLogNotifier(cfg.Notify.AdminRecipient, logger)

	// Initialize services
	catalogService := service.NewCatalogService(store, logger)
	quoteService := service.NewQuoteService(quoteRepo, reference.NewAllocator(), notifier, service.QuoteConfig{
		Currency:     cfg.Quote.Currency,
		ExpiryDays:   cfg.Quote.ExpiryDays,
		AllocRetries: cfg.Quote.AllocRetries,
	}, logger)

	// Initialize HTTP handlers
	quoteHandler := handler.NewQuoteHandler(quoteService, logger)
	productHandler := handler.NewProductHandler(catalogService, logger)

	// Initialize router
	mux := router.New(quoteHandler, productHandler, cfg.Auth.AdminAPIKey, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
