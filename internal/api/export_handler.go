package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/lexcards/lexcards-api/internal/api/shared"
	"github.com/lexcards/lexcards-api/internal/platform/logger"
	"github.com/lexcards/lexcards-api/internal/service"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// ExportHandler handles DOCX export requests
type ExportHandler struct {
	exportService service.ExportService
	logger        *slog.Logger
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(exportService service.ExportService, logger *slog.Logger) *ExportHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ExportHandler")
	}

	return &ExportHandler{
		exportService: exportService,
		logger:        logger.With(slog.String("component", "export_handler")),
	}
}

// Export handles GET /export requests
// The optional exam and statute query parameters narrow the exported set;
// omitting both exports every card the session owns.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	owner := shared.GetOwner(r.Context())

	q := r.URL.Query()
	data, filename, err := h.exportService.Export(r.Context(), owner, q.Get("exam"), q.Get("statute"))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("export generated",
		slog.String("filename", filename),
		slog.Int("bytes", len(data)))

	w.Header().Set("Content-Type", docxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Error("failed to write export response", slog.String("error", err.Error()))
	}
}
