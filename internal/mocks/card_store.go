package mocks

import (
	"context"
	"database/sql"
	"sort"

	"github.com/google/uuid"
	"github.com/lexcards/lexcards-api/internal/domain"
	"github.com/lexcards/lexcards-api/internal/store"
)

// MockCardStore implements store.CardStore for testing.
// The default implementation keeps cards in an in-memory slice in insertion
// order; individual methods can be overridden through the function fields.
type MockCardStore struct {
	// Function fields for customizable behavior
	ListFn               func(ctx context.Context, owner string) ([]*domain.Card, error)
	ListRangeFn          func(ctx context.Context, owner string, limit, offset int) ([]*domain.Card, error)
	CountFn              func(ctx context.Context, owner string) (int, error)
	CountByGroupFn       func(ctx context.Context, owner, exam, statute string) (int, error)
	InsertFn             func(ctx context.Context, card *domain.Card) error
	UpdateFn             func(ctx context.Context, key domain.IdentityKey, fields domain.CardFields) error
	IncrementReadCountFn func(ctx context.Context, owner string, id uuid.UUID) (int, error)
	DeleteFn             func(ctx context.Context, owner string, id uuid.UUID) error
	DeleteAllFn          func(ctx context.Context, owner string) (int, error)
	DistinctExamsFn      func(ctx context.Context, owner string) ([]string, error)
	DistinctStatutesFn   func(ctx context.Context, owner, exam string) ([]string, error)

	// Data for default implementation
	Cards []*domain.Card
}

// NewMockCardStore creates a new mock store with initialized defaults
func NewMockCardStore() *MockCardStore {
	return &MockCardStore{}
}

// List implements the CardStore interface
func (m *MockCardStore) List(ctx context.Context, owner string) ([]*domain.Card, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, owner)
	}

	cards := make([]*domain.Card, 0, len(m.Cards))
	for _, card := range m.Cards {
		if card.Owner == owner {
			cards = append(cards, card)
		}
	}
	return cards, nil
}

// ListRange implements the CardStore interface
func (m *MockCardStore) ListRange(
	ctx context.Context,
	owner string,
	limit, offset int,
) ([]*domain.Card, error) {
	if m.ListRangeFn != nil {
		return m.ListRangeFn(ctx, owner, limit, offset)
	}

	cards, err := m.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	if offset > len(cards) {
		offset = len(cards)
	}
	end := offset + limit
	if end > len(cards) {
		end = len(cards)
	}
	return cards[offset:end], nil
}

// Count implements the CardStore interface
func (m *MockCardStore) Count(ctx context.Context, owner string) (int, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx, owner)
	}

	cards, err := m.List(ctx, owner)
	if err != nil {
		return 0, err
	}
	return len(cards), nil
}

// CountByGroup implements the CardStore interface
func (m *MockCardStore) CountByGroup(
	ctx context.Context,
	owner, exam, statute string,
) (int, error) {
	if m.CountByGroupFn != nil {
		return m.CountByGroupFn(ctx, owner, exam, statute)
	}

	count := 0
	for _, card := range m.Cards {
		if card.Owner == owner && card.Exam == exam && card.Statute == statute {
			count++
		}
	}
	return count, nil
}

// Insert implements the CardStore interface
func (m *MockCardStore) Insert(ctx context.Context, card *domain.Card) error {
	if m.InsertFn != nil {
		return m.InsertFn(ctx, card)
	}

	for _, existing := range m.Cards {
		if existing.Identity() == card.Identity() {
			return store.ErrCardExists
		}
	}
	m.Cards = append(m.Cards, card)
	return nil
}

// Update implements the CardStore interface
func (m *MockCardStore) Update(
	ctx context.Context,
	key domain.IdentityKey,
	fields domain.CardFields,
) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, key, fields)
	}

	for _, card := range m.Cards {
		if card.Identity() == key {
			continue
		}
		if card.Owner == key.Owner &&
			card.Question == fields.Question && card.Answer == fields.Answer {
			return store.ErrCardExists
		}
	}

	for _, card := range m.Cards {
		if card.Identity() == key {
			fields.ReadCount = card.ReadCount
			card.Exam = fields.Exam
			card.Statute = fields.Statute
			card.Question = fields.Question
			card.Answer = fields.Answer
			card.Reference = fields.Reference
			return nil
		}
	}
	return store.ErrCardNotFound
}

// IncrementReadCount implements the CardStore interface
func (m *MockCardStore) IncrementReadCount(
	ctx context.Context,
	owner string,
	id uuid.UUID,
) (int, error) {
	if m.IncrementReadCountFn != nil {
		return m.IncrementReadCountFn(ctx, owner, id)
	}

	for _, card := range m.Cards {
		if card.Owner == owner && card.ID == id {
			card.ReadCount++
			return card.ReadCount, nil
		}
	}
	return 0, store.ErrCardNotFound
}

// Delete implements the CardStore interface
func (m *MockCardStore) Delete(ctx context.Context, owner string, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, owner, id)
	}

	for i, card := range m.Cards {
		if card.Owner == owner && card.ID == id {
			m.Cards = append(m.Cards[:i], m.Cards[i+1:]...)
			return nil
		}
	}
	return store.ErrCardNotFound
}

// DeleteAll implements the CardStore interface
func (m *MockCardStore) DeleteAll(ctx context.Context, owner string) (int, error) {
	if m.DeleteAllFn != nil {
		return m.DeleteAllFn(ctx, owner)
	}

	kept := m.Cards[:0]
	removed := 0
	for _, card := range m.Cards {
		if card.Owner == owner {
			removed++
			continue
		}
		kept = append(kept, card)
	}
	m.Cards = kept
	return removed, nil
}

// DistinctExams implements the CardStore interface
func (m *MockCardStore) DistinctExams(ctx context.Context, owner string) ([]string, error) {
	if m.DistinctExamsFn != nil {
		return m.DistinctExamsFn(ctx, owner)
	}

	seen := make(map[string]bool)
	exams := []string{}
	for _, card := range m.Cards {
		if card.Owner == owner && !seen[card.Exam] {
			seen[card.Exam] = true
			exams = append(exams, card.Exam)
		}
	}
	sort.Strings(exams)
	return exams, nil
}

// DistinctStatutes implements the CardStore interface
func (m *MockCardStore) DistinctStatutes(
	ctx context.Context,
	owner, exam string,
) ([]string, error) {
	if m.DistinctStatutesFn != nil {
		return m.DistinctStatutesFn(ctx, owner, exam)
	}

	seen := make(map[string]bool)
	statutes := []string{}
	for _, card := range m.Cards {
		if card.Owner != owner {
			continue
		}
		if exam != "" && card.Exam != exam {
			continue
		}
		if !seen[card.Statute] {
			seen[card.Statute] = true
			statutes = append(statutes, card.Statute)
		}
	}
	sort.Strings(statutes)
	return statutes, nil
}

// WithTx implements the CardStore interface.
// The mock has no transaction state; it returns itself.
func (m *MockCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return m
}
