package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lexcards/lexcards-api/internal/domain"
	"github.com/lexcards/lexcards-api/internal/domain/browse"
	"github.com/lexcards/lexcards-api/internal/platform/logger"
	"github.com/lexcards/lexcards-api/internal/sanitize"
	"github.com/lexcards/lexcards-api/internal/store"
)

// BrowseResult is one page of a filtered card listing together with the
// owner's total card count.
type BrowseResult struct {
	Page       browse.Page
	TotalCards int
}

// StatuteOverview combines a statute's summed read count with its single
// most-read card.
type StatuteOverview struct {
	Statute    string
	TotalReads int
	TopCard    *domain.Card
}

// Statistics is the per-statute aggregation served to the client: ranked
// read totals (optionally top-N) and the most-read card per statute bucket.
type Statistics struct {
	Rankings []browse.StatuteTotal
	TopCards []StatuteOverview
}

// CardService provides card-related operations: browsing, creation, edits,
// mark-as-read, deletion, label listing and statistics.
type CardService interface {
	// Browse returns one page of the owner's cards matching the criteria.
	Browse(ctx context.Context, owner string, criteria browse.Criteria, pageSize, page int) (*BrowseResult, error)

	// AddCard sanitizes and stores a new card with a zero read count.
	AddCard(ctx context.Context, owner string, fields domain.CardFields) (*domain.Card, error)

	// EditCard performs a full field replacement on the identified card,
	// preserving its read count.
	EditCard(ctx context.Context, owner string, id uuid.UUID, fields domain.CardFields) (*domain.Card, error)

	// MarkRead increments the card's read count by one and returns the new value.
	MarkRead(ctx context.Context, owner string, id uuid.UUID) (int, error)

	// DeleteCard removes the owner's card.
	DeleteCard(ctx context.Context, owner string, id uuid.UUID) error

	// Exams lists the owner's distinct exam labels.
	Exams(ctx context.Context, owner string) ([]string, error)

	// Statutes lists the owner's distinct statute labels under an exam.
	Statutes(ctx context.Context, owner, exam string) ([]string, error)

	// Statistics aggregates per-statute read totals and top cards.
	// topN limits the rankings; statutes, when non-empty, restricts the
	// aggregation to the named buckets.
	Statistics(ctx context.Context, owner string, topN int, statutes []string) (*Statistics, error)
}

// cardServiceImpl implements the CardService interface
type cardServiceImpl struct {
	cardStore store.CardStore
	logger    *slog.Logger
}

// NewCardService creates a new CardService.
// It returns an error if the card store is nil.
func NewCardService(cardStore store.CardStore, logger *slog.Logger) (CardService, error) {
	if cardStore == nil {
		return nil, domain.NewValidationError("cardStore", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &cardServiceImpl{
		cardStore: cardStore,
		logger:    logger.With(slog.String("component", "card_service")),
	}, nil
}

// Browse implements CardService.Browse
// It reloads the owner's full card list, applies the pure filter pass and
// slices the requested page.
func (s *cardServiceImpl) Browse(
	ctx context.Context,
	owner string,
	criteria browse.Criteria,
	pageSize, page int,
) (*BrowseResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cards, err := s.cardStore.List(ctx, owner)
	if err != nil {
		log.Error("failed to load cards for browse",
			slog.String("error", err.Error()),
			slog.String("owner", owner))
		return nil, NewCardServiceError("browse", "failed to load cards", err)
	}

	filtered := browse.Filter(cards, criteria)
	result := &BrowseResult{
		Page:       browse.Paginate(filtered, pageSize, page),
		TotalCards: len(cards),
	}

	log.Debug("browsed cards",
		slog.String("owner", owner),
		slog.String("exam", criteria.Exam),
		slog.String("statute", criteria.Statute),
		slog.Int("matched", len(filtered)),
		slog.Int("page", result.Page.Number))
	return result, nil
}

// AddCard implements CardService.AddCard
func (s *cardServiceImpl) AddCard(
	ctx context.Context,
	owner string,
	fields domain.CardFields,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	fields.Question = sanitize.Clean(fields.Question)
	fields.Answer = sanitize.Clean(fields.Answer)
	fields.ReadCount = 0

	card, err := domain.NewCard(owner, fields)
	if err != nil {
		log.Warn("card validation failed during add",
			slog.String("error", err.Error()),
			slog.String("owner", owner))
		return nil, domain.NewValidationError("card", "all required fields must be filled", err)
	}

	if err := s.cardStore.Insert(ctx, card); err != nil {
		if store.IsDuplicateError(err) {
			log.Debug("duplicate card rejected",
				slog.String("owner", owner))
			return nil, err
		}
		log.Error("failed to insert card",
			slog.String("error", err.Error()),
			slog.String("owner", owner))
		return nil, NewCardServiceError("add_card", "failed to save card", err)
	}

	return card, nil
}

// EditCard implements CardService.EditCard
// The card is addressed by ID, but the store replaces fields by identity key,
// so the existing card is loaded first to derive its key.
func (s *cardServiceImpl) EditCard(
	ctx context.Context,
	owner string,
	id uuid.UUID,
	fields domain.CardFields,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	existing, err := s.findByID(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	fields.Question = sanitize.Clean(fields.Question)
	fields.Answer = sanitize.Clean(fields.Answer)

	updated := *existing
	if err := updated.Replace(fields); err != nil {
		log.Warn("card validation failed during edit",
			slog.String("error", err.Error()),
			slog.String("owner", owner),
			slog.String("card_id", id.String()))
		return nil, domain.NewValidationError("card", "all required fields must be filled", err)
	}

	if err := s.cardStore.Update(ctx, existing.Identity(), fields); err != nil {
		if store.IsDuplicateError(err) {
			log.Debug("edit collides with existing card identity",
				slog.String("owner", owner),
				slog.String("card_id", id.String()))
			return nil, err
		}
		log.Error("failed to update card",
			slog.String("error", err.Error()),
			slog.String("owner", owner),
			slog.String("card_id", id.String()))
		return nil, NewCardServiceError("edit_card", "failed to update card", err)
	}

	return &updated, nil
}

// MarkRead implements CardService.MarkRead
func (s *cardServiceImpl) MarkRead(
	ctx context.Context,
	owner string,
	id uuid.UUID,
) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	readCount, err := s.cardStore.IncrementReadCount(ctx, owner, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return 0, err
		}
		log.Error("failed to mark card as read",
			slog.String("error", err.Error()),
			slog.String("owner", owner),
			slog.String("card_id", id.String()))
		return 0, NewCardServiceError("mark_read", "failed to update read count", err)
	}
	return readCount, nil
}

// DeleteCard implements CardService.DeleteCard
func (s *cardServiceImpl) DeleteCard(ctx context.Context, owner string, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.cardStore.Delete(ctx, owner, id); err != nil {
		if store.IsNotFoundError(err) {
			return err
		}
		log.Error("failed to delete card",
			slog.String("error", err.Error()),
			slog.String("owner", owner),
			slog.String("card_id", id.String()))
		return NewCardServiceError("delete_card", "failed to delete card", err)
	}
	return nil
}

// Exams implements CardService.Exams
func (s *cardServiceImpl) Exams(ctx context.Context, owner string) ([]string, error) {
	exams, err := s.cardStore.DistinctExams(ctx, owner)
	if err != nil {
		return nil, NewCardServiceError("exams", "failed to list exams", err)
	}
	return exams, nil
}

// Statutes implements CardService.Statutes
func (s *cardServiceImpl) Statutes(ctx context.Context, owner, exam string) ([]string, error) {
	statutes, err := s.cardStore.DistinctStatutes(ctx, owner, exam)
	if err != nil {
		return nil, NewCardServiceError("statutes", "failed to list statutes", err)
	}
	return statutes, nil
}

// Statistics implements CardService.Statistics
func (s *cardServiceImpl) Statistics(
	ctx context.Context,
	owner string,
	topN int,
	statutes []string,
) (*Statistics, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cards, err := s.cardStore.List(ctx, owner)
	if err != nil {
		log.Error("failed to load cards for statistics",
			slog.String("error", err.Error()),
			slog.String("owner", owner))
		return nil, NewCardServiceError("statistics", "failed to load cards", err)
	}

	stats := browse.Aggregate(cards)
	if len(statutes) > 0 {
		stats = stats.Restrict(statutes)
	}

	result := &Statistics{
		Rankings: stats.TopTotals(topN),
	}
	for _, statute := range stats.Statutes() {
		result.TopCards = append(result.TopCards, StatuteOverview{
			Statute:    statute,
			TotalReads: stats.Total(statute),
			TopCard:    stats.TopCard(statute),
		})
	}

	return result, nil
}

// findByID scans the owner's card list for the given ID.
// Returns store.ErrCardNotFound when absent.
func (s *cardServiceImpl) findByID(
	ctx context.Context,
	owner string,
	id uuid.UUID,
) (*domain.Card, error) {
	cards, err := s.cardStore.List(ctx, owner)
	if err != nil {
		return nil, NewCardServiceError("find_card", "failed to load cards", err)
	}
	for _, card := range cards {
		if card.ID == id {
			return card, nil
		}
	}
	return nil, store.ErrCardNotFound
}
