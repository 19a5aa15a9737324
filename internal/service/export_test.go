package service

import (
	"context"
	"log/slog"

	"github.com/lexcards/lexcards-api/internal/domain"
	"github.com/lexcards/lexcards-api/internal/platform/backup"
	"github.com/lexcards/lexcards-api/internal/store"
)

// Test-only bridge so the external service_test package can reach the
// unexported pieces exercised by the unit tests.

// ImportServiceImpl names the unexported implementation for tests.
type ImportServiceImpl = importServiceImpl

// BuildCards exposes buildCards for tests.
var BuildCards = buildCards

// NewImportServiceImplForTest builds an importServiceImpl directly,
// bypassing constructor validation, for tests that exercise the early
// validation paths without a live transaction source.
func NewImportServiceImplForTest(
	cardStore store.CardStore,
	backups *backup.Store,
	maxBytes int64,
	logger *slog.Logger,
) *ImportServiceImpl {
	return &importServiceImpl{
		cardStore: cardStore,
		backups:   backups,
		maxBytes:  maxBytes,
		logger:    logger,
	}
}

// InsertBatchForTest exposes insertBatch for tests.
func (s *importServiceImpl) InsertBatchForTest(
	ctx context.Context,
	txStore store.CardStore,
	existing, incoming []*domain.Card,
	result *ImportResult,
) error {
	return s.insertBatch(ctx, txStore, existing, incoming, result)
}

// SnapshotIfNotEmptyForTest exposes snapshotIfNotEmpty for tests.
func (s *importServiceImpl) SnapshotIfNotEmptyForTest(
	owner string,
	cards []*domain.Card,
	log *slog.Logger,
) (string, error) {
	return s.snapshotIfNotEmpty(owner, cards, log)
}
