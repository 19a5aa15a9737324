package middleware

import (
	"log/slog"
	"net/http"

	"github.com/lexcards/lexcards-api/internal/api/shared"
	"github.com/lexcards/lexcards-api/internal/domain"
	"github.com/lexcards/lexcards-api/internal/platform/logger"
)

// OwnerHeader carries the session owner identifier issued by the session
// endpoint. This is a scoping convention, not an authentication scheme; the
// service deliberately has no security boundary beyond the username gate.
const OwnerHeader = "X-Study-Owner"

// SessionMiddleware validates the owner header on every card-scoped request
// and stores the owner in the request context.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		owner := r.Header.Get(OwnerHeader)
		if owner == "" {
			shared.RespondWithError(w, r, http.StatusBadRequest,
				"Missing "+OwnerHeader+" header; create a session first")
			return
		}

		if err := domain.ValidateOwner(owner); err != nil {
			log := logger.FromContext(r.Context())
			log.Debug("rejected malformed owner header",
				slog.String("error", err.Error()))
			shared.RespondWithError(w, r, http.StatusBadRequest,
				"Invalid "+OwnerHeader+" header")
			return
		}

		ctx := shared.SetOwner(r.Context(), owner)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
