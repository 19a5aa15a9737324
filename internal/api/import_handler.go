package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/lexcards/lexcards-api/internal/api/shared"
	"github.com/lexcards/lexcards-api/internal/platform/logger"
	"github.com/lexcards/lexcards-api/internal/redact"
	"github.com/lexcards/lexcards-api/internal/service"
)

// ImportHandler handles JSON import, snapshot listing, and restore requests
type ImportHandler struct {
	importService service.ImportService
	maxFileBytes  int64
	logger        *slog.Logger
}

// NewImportHandler creates a new ImportHandler.
// maxFileBytes caps the accepted import payload size.
func NewImportHandler(importService service.ImportService, maxFileBytes int64, logger *slog.Logger) *ImportHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ImportHandler")
	}
	if maxFileBytes <= 0 {
		maxFileBytes = service.DefaultMaxImportBytes
	}

	return &ImportHandler{
		importService: importService,
		maxFileBytes:  maxFileBytes,
		logger:        logger.With(slog.String("component", "import_handler")),
	}
}

// Import handles POST /import requests
// The body is the raw JSON card file. Oversized payloads are rejected
// before the service layer sees them.
func (h *ImportHandler) Import(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	owner := shared.GetOwner(r.Context())

	// The extra byte lets the service distinguish "exactly at the cap"
	// from "over the cap" and respond with the file-too-large error.
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxFileBytes+1))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			shared.RespondWithErrorAndLog(w, r, http.StatusRequestEntityTooLarge,
				GetSafeErrorMessage(service.ErrFileTooLarge), service.ErrFileTooLarge)
			return
		}
		log.Warn("failed to read import body", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Failed to read request body")
		return
	}

	result, err := h.importService.Import(r.Context(), owner, body)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Info("import completed",
		slog.Int("inserted", result.Inserted),
		slog.Int("skipped", result.Skipped))
	shared.RespondWithJSON(w, r, http.StatusOK, ImportResponse{
		Inserted: result.Inserted,
		Skipped:  result.Skipped,
		Snapshot: result.Snapshot,
	})
}

// ListSnapshots handles GET /backups requests
func (h *ImportHandler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	owner := shared.GetOwner(r.Context())

	snapshots, err := h.importService.Snapshots(r.Context(), owner)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SnapshotsResponse{Snapshots: snapshots})
}

// Restore handles POST /backups/restore requests
// It replaces the session's cards with the named snapshot's contents,
// snapshotting the current state first.
func (h *ImportHandler) Restore(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	owner := shared.GetOwner(r.Context())

	var req RestoreRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	result, err := h.importService.Restore(r.Context(), owner, req.Name)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Info("restore completed",
		slog.String("snapshot", req.Name),
		slog.Int("inserted", result.Inserted))
	shared.RespondWithJSON(w, r, http.StatusOK, ImportResponse{
		Inserted: result.Inserted,
		Skipped:  result.Skipped,
		Snapshot: result.Snapshot,
	})
}
