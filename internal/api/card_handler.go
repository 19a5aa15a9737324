package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/lexcards/lexcards-api/internal/api/shared"
	"github.com/lexcards/lexcards-api/internal/domain/browse"
	"github.com/lexcards/lexcards-api/internal/platform/logger"
	"github.com/lexcards/lexcards-api/internal/redact"
	"github.com/lexcards/lexcards-api/internal/service"
)

// CardHandler handles card-related HTTP requests
type CardHandler struct {
	cardService service.CardService
	pageSize    int
	logger      *slog.Logger
}

// NewCardHandler creates a new CardHandler.
// pageSize is the default browse page size.
func NewCardHandler(cardService service.CardService, pageSize int, logger *slog.Logger) *CardHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CardHandler")
	}
	if pageSize <= 0 {
		pageSize = browse.DefaultPageSize
	}

	return &CardHandler{
		cardService: cardService,
		pageSize:    pageSize,
		logger:      logger.With(slog.String("component", "card_handler")),
	}
}

// ListCards handles GET /cards requests
// It returns one filtered, paginated slice of the session's cards.
func (h *CardHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	owner := shared.GetOwner(r.Context())

	q := r.URL.Query()
	exam := q.Get("exam")
	statute := q.Get("statute")
	if exam == "" || statute == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"Query parameters exam and statute are required")
		return
	}

	bucket, err := browse.ParseReadBucket(q.Get("read"))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, GetSafeErrorMessage(err), err)
		return
	}

	page := intQueryParam(q.Get("page"), 1)
	pageSize := intQueryParam(q.Get("page_size"), h.pageSize)

	criteria := browse.Criteria{
		Exam:    exam,
		Statute: statute,
		Query:   q.Get("q"),
		Bucket:  bucket,
	}

	result, err := h.cardService.Browse(r.Context(), owner, criteria, pageSize, page)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("listed cards",
		slog.String("exam", exam),
		slog.String("statute", statute),
		slog.Int("page", result.Page.Number))
	shared.RespondWithJSON(w, r, http.StatusOK, BrowseResponse{
		Cards:        cardsToResponse(result.Page.Items),
		Page:         result.Page.Number,
		TotalPages:   result.Page.TotalPages,
		TotalMatched: result.Page.TotalItems,
		TotalCards:   result.TotalCards,
	})
}

// CreateCard handles POST /cards requests
func (h *CardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	owner := shared.GetOwner(r.Context())

	var req CardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	card, err := h.cardService.AddCard(r.Context(), owner, req.Fields())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("card created", slog.String("card_id", card.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, cardToResponse(card))
}

// EditCard handles PUT /cards/{id} requests
// The edit is a full field replacement; the read count is preserved.
func (h *CardHandler) EditCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	owner := shared.GetOwner(r.Context())

	cardID, ok := cardIDFromPath(w, r)
	if !ok {
		return
	}

	var req CardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	card, err := h.cardService.EditCard(r.Context(), owner, cardID, req.Fields())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("card edited", slog.String("card_id", cardID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, cardToResponse(card))
}

// MarkRead handles POST /cards/{id}/read requests
func (h *CardHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	owner := shared.GetOwner(r.Context())

	cardID, ok := cardIDFromPath(w, r)
	if !ok {
		return
	}

	readCount, err := h.cardService.MarkRead(r.Context(), owner, cardID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("card marked as read",
		slog.String("card_id", cardID.String()),
		slog.Int("read_count", readCount))
	shared.RespondWithJSON(w, r, http.StatusOK, MarkReadResponse{
		ID:        cardID.String(),
		ReadCount: readCount,
	})
}

// DeleteCard handles DELETE /cards/{id} requests
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	owner := shared.GetOwner(r.Context())

	cardID, ok := cardIDFromPath(w, r)
	if !ok {
		return
	}

	if err := h.cardService.DeleteCard(r.Context(), owner, cardID); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("card deleted", slog.String("card_id", cardID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// ListExams handles GET /exams requests
func (h *CardHandler) ListExams(w http.ResponseWriter, r *http.Request) {
	owner := shared.GetOwner(r.Context())

	exams, err := h.cardService.Exams(r.Context(), owner)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LabelsResponse{Labels: exams})
}

// ListStatutes handles GET /statutes requests
// The optional exam query parameter restricts statutes to one exam.
func (h *CardHandler) ListStatutes(w http.ResponseWriter, r *http.Request) {
	owner := shared.GetOwner(r.Context())

	statutes, err := h.cardService.Statutes(r.Context(), owner, r.URL.Query().Get("exam"))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LabelsResponse{Labels: statutes})
}

// Statistics handles GET /stats requests
// top limits the rankings (default 5); statutes is an optional
// comma-separated restriction to named statute buckets.
func (h *CardHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	owner := shared.GetOwner(r.Context())

	q := r.URL.Query()
	topN := intQueryParam(q.Get("top"), 5)

	var statutes []string
	if raw := q.Get("statutes"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				statutes = append(statutes, s)
			}
		}
	}

	stats, err := h.cardService.Statistics(r.Context(), owner, topN, statutes)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, statsToResponse(stats))
}

// cardIDFromPath extracts and parses the {id} path parameter, writing a 400
// response and returning ok=false when it is missing or malformed.
func cardIDFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	pathID := chi.URLParam(r, "id")
	if pathID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Card ID is required")
		return uuid.Nil, false
	}

	cardID, err := uuid.Parse(pathID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid card ID format")
		return uuid.Nil, false
	}
	return cardID, true
}

// intQueryParam parses a positive integer query parameter, falling back to
// the default on absence or garbage.
func intQueryParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
