package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lexcards/lexcards-api/internal/domain"
)

// CardStore defines the interface for card data persistence.
// Every call is scoped by owner; no cross-owner access is possible.
type CardStore interface {
	// List retrieves all of an owner's cards in insertion order.
	// Returns an empty slice when the owner has no cards.
	List(ctx context.Context, owner string) ([]*domain.Card, error)

	// ListRange retrieves a window of an owner's cards in insertion order,
	// for callers that paginate at the source rather than in memory.
	ListRange(ctx context.Context, owner string, limit, offset int) ([]*domain.Card, error)

	// Count returns the number of cards the owner has.
	Count(ctx context.Context, owner string) (int, error)

	// CountByGroup returns the number of the owner's cards filed under the
	// given exam and statute.
	CountByGroup(ctx context.Context, owner, exam, statute string) (int, error)

	// Insert saves a new card.
	// Returns ErrCardExists if a card with the same identity key
	// (owner, question, answer) already exists.
	// Returns validation errors if the card data is invalid.
	Insert(ctx context.Context, card *domain.Card) error

	// Update performs a full field replacement on the card identified by the
	// identity key. The stored read count is preserved; fields.ReadCount is
	// ignored. Returns ErrCardNotFound if no card matches the key and
	// ErrCardExists if the new fields collide with another card's identity.
	Update(ctx context.Context, key domain.IdentityKey, fields domain.CardFields) error

	// IncrementReadCount atomically adds one to the card's read count and
	// returns the new value. Returns ErrCardNotFound if the card does not
	// exist or belongs to a different owner.
	IncrementReadCount(ctx context.Context, owner string, id uuid.UUID) (int, error)

	// Delete removes the owner's card with the given ID.
	// Returns ErrCardNotFound if the card does not exist or belongs to a
	// different owner.
	Delete(ctx context.Context, owner string, id uuid.UUID) error

	// DeleteAll removes every card the owner has and reports how many rows
	// were removed. Used by the restore path before re-importing a snapshot.
	DeleteAll(ctx context.Context, owner string) (int, error)

	// DistinctExams returns the owner's distinct exam labels, sorted.
	DistinctExams(ctx context.Context, owner string) ([]string, error)

	// DistinctStatutes returns the owner's distinct statute labels under the
	// given exam, sorted. An empty exam returns statutes across all exams.
	DistinctStatutes(ctx context.Context, owner, exam string) ([]string, error)

	// WithTx returns a new CardStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller,
	// typically through RunInTransaction.
	WithTx(tx *sql.Tx) CardStore
}
