package api

import (
	"log/slog"
	"net/http"

	"github.com/lexcards/lexcards-api/internal/api/shared"
	"github.com/lexcards/lexcards-api/internal/domain"
	"github.com/lexcards/lexcards-api/internal/platform/logger"
	"github.com/lexcards/lexcards-api/internal/redact"
)

// SessionHandler handles session establishment requests
type SessionHandler struct {
	logger *slog.Logger
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(logger *slog.Logger) *SessionHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SessionHandler")
	}

	return &SessionHandler{
		logger: logger.With(slog.String("component", "session_handler")),
	}
}

// Start handles POST /session requests
// It normalizes the username, mints a fresh session token, and returns the
// combined owner string the caller must present on subsequent requests.
// The gate keeps studiers from trampling each other's cards; it is not an
// authentication boundary.
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req SessionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	session, err := domain.NewSession(req.Username)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Info("session started", slog.String("username", session.Username))
	shared.RespondWithJSON(w, r, http.StatusCreated, SessionResponse{
		Username:     session.Username,
		SessionToken: session.Token.String(),
		Owner:        session.Owner(),
	})
}
