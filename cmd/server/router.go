package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/lexcards/lexcards-api/internal/api"
	apiMiddleware "github.com/lexcards/lexcards-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. It accepts the application dependencies to create handlers
// and register routes. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Create API handlers using the application's services
	sessionHandler := api.NewSessionHandler(app.logger)
	cardHandler := api.NewCardHandler(app.cardService, app.config.Server.PageSize, app.logger)
	importHandler := api.NewImportHandler(
		app.importService,
		app.config.Import.MaxFileBytes,
		app.logger,
	)
	exportHandler := api.NewExportHandler(app.exportService, app.logger)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Session establishment (public)
		r.Post("/session", sessionHandler.Start)

		// Session-scoped routes
		r.Group(func(r chi.Router) {
			r.Use(apiMiddleware.SessionMiddleware)

			// Card endpoints
			r.Get("/cards", cardHandler.ListCards)
			r.Post("/cards", cardHandler.CreateCard)
			r.Put("/cards/{id}", cardHandler.EditCard)
			r.Delete("/cards/{id}", cardHandler.DeleteCard)
			r.Post("/cards/{id}/read", cardHandler.MarkRead)

			// Label and statistics endpoints
			r.Get("/exams", cardHandler.ListExams)
			r.Get("/statutes", cardHandler.ListStatutes)
			r.Get("/stats", cardHandler.Statistics)

			// Import, backup, and export endpoints
			r.Post("/import", importHandler.Import)
			r.Get("/backups", importHandler.ListSnapshots)
			r.Post("/backups/restore", importHandler.Restore)
			r.Get("/export", exportHandler.Export)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
