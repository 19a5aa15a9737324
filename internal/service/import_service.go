package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/lexcards/lexcards-api/internal/domain"
	"github.com/lexcards/lexcards-api/internal/platform/backup"
	"github.com/lexcards/lexcards-api/internal/platform/logger"
	"github.com/lexcards/lexcards-api/internal/sanitize"
	"github.com/lexcards/lexcards-api/internal/store"
)

// DefaultMaxImportBytes is the default cap on import payload size (2 MiB).
const DefaultMaxImportBytes int64 = 2 << 20

// ImportResult reports the outcome of an import or restore batch.
type ImportResult struct {
	Inserted int
	Skipped  int
	Snapshot string // name of the pre-import backup snapshot, if one was taken
}

// ImportService merges externally supplied card lists into the store with
// identity-key deduplication, and restores backup snapshots.
type ImportService interface {
	// Import validates and merges a JSON card array into the owner's
	// collection. Records colliding with an existing card's identity key
	// (owner, question, answer), or with a record accepted earlier in the
	// same batch, are skipped. The owner's current non-empty card list is
	// snapshotted before any write.
	Import(ctx context.Context, owner string, data []byte) (*ImportResult, error)

	// Restore replaces the owner's collection with the named snapshot:
	// the current list is snapshotted, all rows deleted, and the snapshot
	// records fed through the same dedup import path.
	Restore(ctx context.Context, owner, snapshotName string) (*ImportResult, error)

	// Snapshots lists the owner's backup snapshot names, newest first.
	Snapshots(ctx context.Context, owner string) ([]string, error)
}

// importServiceImpl implements the ImportService interface
type importServiceImpl struct {
	db        *sql.DB
	cardStore store.CardStore
	backups   *backup.Store
	maxBytes  int64
	logger    *slog.Logger
}

// NewImportService creates a new ImportService.
// maxBytes caps the accepted import payload size.
func NewImportService(
	db *sql.DB,
	cardStore store.CardStore,
	backups *backup.Store,
	maxBytes int64,
	logger *slog.Logger,
) (ImportService, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if cardStore == nil {
		return nil, domain.NewValidationError("cardStore", "cannot be nil", domain.ErrValidation)
	}
	if backups == nil {
		return nil, domain.NewValidationError("backups", "cannot be nil", domain.ErrValidation)
	}
	if maxBytes <= 0 {
		return nil, domain.NewValidationError("maxBytes", "must be positive", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &importServiceImpl{
		db:        db,
		cardStore: cardStore,
		backups:   backups,
		maxBytes:  maxBytes,
		logger:    logger.With(slog.String("component", "import_service")),
	}, nil
}

// Import implements ImportService.Import
func (s *importServiceImpl) Import(
	ctx context.Context,
	owner string,
	data []byte,
) (*ImportResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if int64(len(data)) > s.maxBytes {
		log.Warn("import payload exceeds size cap",
			slog.String("owner", owner),
			slog.Int("size", len(data)),
			slog.Int64("cap", s.maxBytes))
		return nil, fmt.Errorf("%w: %d bytes (cap %d)", ErrFileTooLarge, len(data), s.maxBytes)
	}

	var records []backup.Record
	if err := json.Unmarshal(data, &records); err != nil {
		log.Warn("import payload failed to parse",
			slog.String("owner", owner),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", ErrMalformedImport, err)
	}

	// Whole-batch validation happens before any write; a single bad record
	// rejects the import.
	incoming, err := buildCards(owner, records)
	if err != nil {
		log.Warn("import batch failed validation",
			slog.String("owner", owner),
			slog.String("error", err.Error()))
		return nil, err
	}

	existing, err := s.cardStore.List(ctx, owner)
	if err != nil {
		return nil, NewCardServiceError("import", "failed to load existing cards", err)
	}

	snapshot, err := s.snapshotIfNotEmpty(owner, existing, log)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Snapshot: snapshot}
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.cardStore.WithTx(tx)
		return s.insertBatch(ctx, txStore, existing, incoming, result)
	})
	if err != nil {
		return nil, NewCardServiceError("import", "failed to write imported cards", err)
	}

	log.Info("import completed",
		slog.String("owner", owner),
		slog.Int("inserted", result.Inserted),
		slog.Int("skipped", result.Skipped))
	return result, nil
}

// Restore implements ImportService.Restore
func (s *importServiceImpl) Restore(
	ctx context.Context,
	owner, snapshotName string,
) (*ImportResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	records, err := s.backups.Read(owner, snapshotName)
	if err != nil {
		log.Warn("failed to read snapshot for restore",
			slog.String("owner", owner),
			slog.String("snapshot", snapshotName),
			slog.String("error", err.Error()))
		return nil, err
	}

	incoming, err := buildCards(owner, records)
	if err != nil {
		return nil, err
	}

	existing, err := s.cardStore.List(ctx, owner)
	if err != nil {
		return nil, NewCardServiceError("restore", "failed to load existing cards", err)
	}

	snapshot, err := s.snapshotIfNotEmpty(owner, existing, log)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Snapshot: snapshot}
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.cardStore.WithTx(tx)

		if _, err := txStore.DeleteAll(ctx, owner); err != nil {
			return err
		}
		return s.insertBatch(ctx, txStore, nil, incoming, result)
	})
	if err != nil {
		return nil, NewCardServiceError("restore", "failed to restore snapshot", err)
	}

	log.Info("restore completed",
		slog.String("owner", owner),
		slog.String("snapshot", snapshotName),
		slog.Int("inserted", result.Inserted),
		slog.Int("skipped", result.Skipped))
	return result, nil
}

// Snapshots implements ImportService.Snapshots
func (s *importServiceImpl) Snapshots(ctx context.Context, owner string) ([]string, error) {
	names, err := s.backups.List(owner)
	if err != nil {
		return nil, NewCardServiceError("snapshots", "failed to list snapshots", err)
	}
	return names, nil
}

// snapshotIfNotEmpty writes a backup snapshot of the current card list
// before a destructive batch, skipping empty lists.
func (s *importServiceImpl) snapshotIfNotEmpty(
	owner string,
	cards []*domain.Card,
	log *slog.Logger,
) (string, error) {
	if len(cards) == 0 {
		return "", nil
	}
	name, err := s.backups.Snapshot(owner, cards)
	if err != nil {
		log.Error("failed to snapshot cards before import",
			slog.String("owner", owner),
			slog.String("error", err.Error()))
		return "", NewCardServiceError("import", "failed to back up current cards", err)
	}
	return name, nil
}

// insertBatch inserts incoming cards, skipping identity-key duplicates
// against both the existing cards and records accepted earlier in the batch.
func (s *importServiceImpl) insertBatch(
	ctx context.Context,
	txStore store.CardStore,
	existing, incoming []*domain.Card,
	result *ImportResult,
) error {
	seen := make(map[domain.IdentityKey]bool, len(existing)+len(incoming))
	for _, card := range existing {
		seen[card.Identity()] = true
	}

	for _, card := range incoming {
		key := card.Identity()
		if seen[key] {
			result.Skipped++
			continue
		}
		if err := txStore.Insert(ctx, card); err != nil {
			return err
		}
		seen[key] = true
		result.Inserted++
	}
	return nil
}

// buildCards validates a record batch upfront, sanitizing text fields and
// converting to domain cards. Read counts are taken from the records,
// defaulting to zero. Returns a ValidationError naming the first bad record.
func buildCards(owner string, records []backup.Record) ([]*domain.Card, error) {
	cards := make([]*domain.Card, 0, len(records))
	for i, record := range records {
		fields := record.Fields()
		fields.Question = sanitize.Clean(fields.Question)
		fields.Answer = sanitize.Clean(fields.Answer)
		if fields.ReadCount < 0 {
			fields.ReadCount = 0
		}

		card, err := domain.NewCard(owner, fields)
		if err != nil {
			return nil, domain.NewValidationError(
				fmt.Sprintf("record[%d]", i),
				"exam, statute, question and answer are required",
				err,
			)
		}
		cards = append(cards, card)
	}
	return cards, nil
}
