package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/lexcards/lexcards-api/internal/config"
	"github.com/lexcards/lexcards-api/internal/platform/backup"
	"github.com/lexcards/lexcards-api/internal/platform/postgres"
	"github.com/lexcards/lexcards-api/internal/service"
	"github.com/lexcards/lexcards-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	cardStore store.CardStore
	backups   *backup.Store

	// Service interfaces
	cardService   service.CardService
	importService service.ImportService
	exportService service.ExportService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize stores
	app.cardStore = postgres.NewPostgresCardStore(db, logger)

	var err error
	app.backups, err = backup.NewStore(cfg.Backup.Dir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize backup store: %w", err)
	}
	logger.Info("Backup store initialized", "dir", cfg.Backup.Dir)

	// Initialize services
	app.cardService, err = service.NewCardService(app.cardStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create card service: %w", err)
	}

	app.importService, err = service.NewImportService(
		db,
		app.cardStore,
		app.backups,
		cfg.Import.MaxFileBytes,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create import service: %w", err)
	}

	app.exportService, err = service.NewExportService(app.cardStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create export service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
