package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lexcards/lexcards-api/internal/docgen"
	"github.com/lexcards/lexcards-api/internal/domain"
	"github.com/lexcards/lexcards-api/internal/platform/logger"
	"github.com/lexcards/lexcards-api/internal/store"
)

// ExportService renders a card selection into a downloadable document.
type ExportService interface {
	// Export filters the owner's cards by optional exact exam/statute
	// matches (empty string = no filter) and renders them as a DOCX
	// document. Returns the document bytes and a suggested file name.
	// Returns ErrEmptyExport when no cards match; no document is produced.
	Export(ctx context.Context, owner, exam, statute string) ([]byte, string, error)
}

// exportServiceImpl implements the ExportService interface
type exportServiceImpl struct {
	cardStore store.CardStore
	logger    *slog.Logger
}

// NewExportService creates a new ExportService.
func NewExportService(cardStore store.CardStore, logger *slog.Logger) (ExportService, error) {
	if cardStore == nil {
		return nil, domain.NewValidationError("cardStore", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &exportServiceImpl{
		cardStore: cardStore,
		logger:    logger.With(slog.String("component", "export_service")),
	}, nil
}

// Export implements ExportService.Export
func (s *exportServiceImpl) Export(
	ctx context.Context,
	owner, exam, statute string,
) ([]byte, string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cards, err := s.cardStore.List(ctx, owner)
	if err != nil {
		log.Error("failed to load cards for export",
			slog.String("error", err.Error()),
			slog.String("owner", owner))
		return nil, "", NewCardServiceError("export", "failed to load cards", err)
	}

	selected := selectCards(cards, exam, statute)
	if len(selected) == 0 {
		log.Debug("export selection is empty",
			slog.String("owner", owner),
			slog.String("exam", exam),
			slog.String("statute", statute))
		return nil, "", ErrEmptyExport
	}

	data, err := docgen.Render(docgen.Build(selected))
	if err != nil {
		log.Error("failed to render export document",
			slog.String("error", err.Error()),
			slog.String("owner", owner))
		return nil, "", NewCardServiceError("export", "failed to render document", err)
	}

	filename := fmt.Sprintf("cards_%s.docx", domain.OwnerUsername(owner))
	log.Info("export rendered",
		slog.String("owner", owner),
		slog.Int("cards", len(selected)),
		slog.String("filename", filename))
	return data, filename, nil
}

// selectCards keeps cards matching the optional exam/statute filters,
// preserving input order.
func selectCards(cards []*domain.Card, exam, statute string) []*domain.Card {
	selected := make([]*domain.Card, 0, len(cards))
	for _, card := range cards {
		if exam != "" && card.Exam != exam {
			continue
		}
		if statute != "" && card.Statute != statute {
			continue
		}
		selected = append(selected, card)
	}
	return selected
}
