package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lexcards/lexcards-api/internal/domain"
	"github.com/lexcards/lexcards-api/internal/platform/logger"
	"github.com/lexcards/lexcards-api/internal/store"
)

// PostgresCardStore implements the store.CardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the CardStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresCardStore(db store.DBTX, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure PostgresCardStore implements store.CardStore interface
var _ store.CardStore = (*PostgresCardStore)(nil)

// WithTx implements store.CardStore.WithTx
func (s *PostgresCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &PostgresCardStore{
		db:     tx,
		logger: s.logger,
	}
}

const cardColumns = `id, owner, exam, statute, question, answer, reference, read_count, created_at, updated_at`

// scanCard reads one card row from a row scanner.
func scanCard(row interface{ Scan(dest ...any) error }) (*domain.Card, error) {
	var card domain.Card
	err := row.Scan(
		&card.ID,
		&card.Owner,
		&card.Exam,
		&card.Statute,
		&card.Question,
		&card.Answer,
		&card.Reference,
		&card.ReadCount,
		&card.CreatedAt,
		&card.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// List implements store.CardStore.List
// It retrieves all of an owner's cards in insertion order.
func (s *PostgresCardStore) List(ctx context.Context, owner string) ([]*domain.Card, error) {
	return s.list(ctx, owner, -1, 0)
}

// ListRange implements store.CardStore.ListRange
func (s *PostgresCardStore) ListRange(
	ctx context.Context,
	owner string,
	limit, offset int,
) ([]*domain.Card, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	return s.list(ctx, owner, limit, offset)
}

func (s *PostgresCardStore) list(
	ctx context.Context,
	owner string,
	limit, offset int,
) ([]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`
		SELECT %s
		FROM cards
		WHERE owner = $1
		ORDER BY created_at, id
	`, cardColumns)

	args := []any{owner}
	if limit >= 0 {
		query += ` LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query cards",
			slog.String("error", err.Error()),
			slog.String("owner", owner))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var cards []*domain.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			log.Error("failed to scan card row",
				slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		cards = append(cards, card)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	if cards == nil {
		cards = []*domain.Card{}
	}

	log.Debug("listed cards",
		slog.String("owner", owner),
		slog.Int("count", len(cards)))
	return cards, nil
}

// Count implements store.CardStore.Count
func (s *PostgresCardStore) Count(ctx context.Context, owner string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM cards WHERE owner = $1`, owner,
	).Scan(&count)
	if err != nil {
		return 0, MapError(err)
	}
	return count, nil
}

// CountByGroup implements store.CardStore.CountByGroup
func (s *PostgresCardStore) CountByGroup(
	ctx context.Context,
	owner, exam, statute string,
) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM cards WHERE owner = $1 AND exam = $2 AND statute = $3`,
		owner, exam, statute,
	).Scan(&count)
	if err != nil {
		return 0, MapError(err)
	}
	return count, nil
}

// Insert implements store.CardStore.Insert
// It saves a new card, relying on the (owner, question, answer) unique index
// to reject identity-key duplicates.
func (s *PostgresCardStore) Insert(ctx context.Context, card *domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("card validation failed during insert",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO cards (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, cardColumns)

	_, err := s.db.ExecContext(
		ctx,
		query,
		card.ID,
		card.Owner,
		card.Exam,
		card.Statute,
		card.Question,
		card.Answer,
		card.Reference,
		card.ReadCount,
		card.CreatedAt,
		card.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("duplicate card rejected by unique index",
				slog.String("owner", card.Owner),
				slog.String("card_id", card.ID.String()))
			return fmt.Errorf("%w: %v", store.ErrCardExists, err)
		}
		log.Error("failed to insert card",
			slog.String("error", err.Error()),
			slog.String("owner", card.Owner),
			slog.String("card_id", card.ID.String()))
		return MapError(err)
	}

	log.Info("card inserted",
		slog.String("owner", card.Owner),
		slog.String("card_id", card.ID.String()),
		slog.String("exam", card.Exam),
		slog.String("statute", card.Statute))
	return nil
}

// Update implements store.CardStore.Update
// It performs a full field replacement on the card identified by the
// identity key, preserving the stored read count.
func (s *PostgresCardStore) Update(
	ctx context.Context,
	key domain.IdentityKey,
	fields domain.CardFields,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE cards
		SET exam = $1, statute = $2, question = $3, answer = $4, reference = $5, updated_at = $6
		WHERE owner = $7 AND question = $8 AND answer = $9
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		fields.Exam,
		fields.Statute,
		fields.Question,
		fields.Answer,
		fields.Reference,
		time.Now().UTC(),
		key.Owner,
		key.Question,
		key.Answer,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("card update collides with existing identity",
				slog.String("owner", key.Owner))
			return fmt.Errorf("%w: %v", store.ErrCardExists, err)
		}
		log.Error("failed to update card",
			slog.String("error", err.Error()),
			slog.String("owner", key.Owner))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "card"); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Debug("card not found for update",
				slog.String("owner", key.Owner))
			return store.ErrCardNotFound
		}
		return err
	}

	log.Info("card updated", slog.String("owner", key.Owner))
	return nil
}

// IncrementReadCount implements store.CardStore.IncrementReadCount
// It atomically adds one to the card's read count and returns the new value.
func (s *PostgresCardStore) IncrementReadCount(
	ctx context.Context,
	owner string,
	id uuid.UUID,
) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE cards
		SET read_count = read_count + 1, updated_at = $1
		WHERE owner = $2 AND id = $3
		RETURNING read_count
	`

	var readCount int
	err := s.db.QueryRowContext(ctx, query, time.Now().UTC(), owner, id).Scan(&readCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("card not found for mark-read",
				slog.String("owner", owner),
				slog.String("card_id", id.String()))
			return 0, store.ErrCardNotFound
		}
		log.Error("failed to increment read count",
			slog.String("error", err.Error()),
			slog.String("owner", owner),
			slog.String("card_id", id.String()))
		return 0, MapError(err)
	}

	log.Debug("read count incremented",
		slog.String("owner", owner),
		slog.String("card_id", id.String()),
		slog.Int("read_count", readCount))
	return readCount, nil
}

// Delete implements store.CardStore.Delete
func (s *PostgresCardStore) Delete(ctx context.Context, owner string, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(
		ctx,
		`DELETE FROM cards WHERE owner = $1 AND id = $2`,
		owner, id,
	)
	if err != nil {
		log.Error("failed to delete card",
			slog.String("error", err.Error()),
			slog.String("owner", owner),
			slog.String("card_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "card"); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Debug("card not found for delete",
				slog.String("owner", owner),
				slog.String("card_id", id.String()))
			return store.ErrCardNotFound
		}
		return err
	}

	log.Info("card deleted",
		slog.String("owner", owner),
		slog.String("card_id", id.String()))
	return nil
}

// DeleteAll implements store.CardStore.DeleteAll
func (s *PostgresCardStore) DeleteAll(ctx context.Context, owner string) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM cards WHERE owner = $1`, owner)
	if err != nil {
		log.Error("failed to delete owner's cards",
			slog.String("error", err.Error()),
			slog.String("owner", owner))
		return 0, MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	log.Info("deleted all cards for owner",
		slog.String("owner", owner),
		slog.Int64("count", rowsAffected))
	return int(rowsAffected), nil
}

// DistinctExams implements store.CardStore.DistinctExams
func (s *PostgresCardStore) DistinctExams(ctx context.Context, owner string) ([]string, error) {
	return s.distinct(ctx,
		`SELECT DISTINCT exam FROM cards WHERE owner = $1 ORDER BY exam`,
		owner)
}

// DistinctStatutes implements store.CardStore.DistinctStatutes
func (s *PostgresCardStore) DistinctStatutes(
	ctx context.Context,
	owner, exam string,
) ([]string, error) {
	if exam == "" {
		return s.distinct(ctx,
			`SELECT DISTINCT statute FROM cards WHERE owner = $1 ORDER BY statute`,
			owner)
	}
	return s.distinct(ctx,
		`SELECT DISTINCT statute FROM cards WHERE owner = $1 AND exam = $2 ORDER BY statute`,
		owner, exam)
}

func (s *PostgresCardStore) distinct(
	ctx context.Context,
	query string,
	args ...any,
) ([]string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query distinct labels",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var values []string
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, MapError(err)
		}
		values = append(values, value)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	if values == nil {
		values = []string{}
	}
	return values, nil
}
