package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/lexcards/lexcards-api/internal/domain"
	"github.com/lexcards/lexcards-api/internal/domain/browse"
	"github.com/lexcards/lexcards-api/internal/service"
)

// MockCardService implements service.CardService for testing
type MockCardService struct {
	BrowseFn     func(ctx context.Context, owner string, criteria browse.Criteria, pageSize, page int) (*service.BrowseResult, error)
	AddCardFn    func(ctx context.Context, owner string, fields domain.CardFields) (*domain.Card, error)
	EditCardFn   func(ctx context.Context, owner string, id uuid.UUID, fields domain.CardFields) (*domain.Card, error)
	MarkReadFn   func(ctx context.Context, owner string, id uuid.UUID) (int, error)
	DeleteCardFn func(ctx context.Context, owner string, id uuid.UUID) error
	ExamsFn      func(ctx context.Context, owner string) ([]string, error)
	StatutesFn   func(ctx context.Context, owner, exam string) ([]string, error)
	StatisticsFn func(ctx context.Context, owner string, topN int, statutes []string) (*service.Statistics, error)
}

// Browse implements the CardService interface
func (m *MockCardService) Browse(
	ctx context.Context,
	owner string,
	criteria browse.Criteria,
	pageSize, page int,
) (*service.BrowseResult, error) {
	return m.BrowseFn(ctx, owner, criteria, pageSize, page)
}

// AddCard implements the CardService interface
func (m *MockCardService) AddCard(
	ctx context.Context,
	owner string,
	fields domain.CardFields,
) (*domain.Card, error) {
	return m.AddCardFn(ctx, owner, fields)
}

// EditCard implements the CardService interface
func (m *MockCardService) EditCard(
	ctx context.Context,
	owner string,
	id uuid.UUID,
	fields domain.CardFields,
) (*domain.Card, error) {
	return m.EditCardFn(ctx, owner, id, fields)
}

// MarkRead implements the CardService interface
func (m *MockCardService) MarkRead(ctx context.Context, owner string, id uuid.UUID) (int, error) {
	return m.MarkReadFn(ctx, owner, id)
}

// DeleteCard implements the CardService interface
func (m *MockCardService) DeleteCard(ctx context.Context, owner string, id uuid.UUID) error {
	return m.DeleteCardFn(ctx, owner, id)
}

// Exams implements the CardService interface
func (m *MockCardService) Exams(ctx context.Context, owner string) ([]string, error) {
	return m.ExamsFn(ctx, owner)
}

// Statutes implements the CardService interface
func (m *MockCardService) Statutes(ctx context.Context, owner, exam string) ([]string, error) {
	return m.StatutesFn(ctx, owner, exam)
}

// Statistics implements the CardService interface
func (m *MockCardService) Statistics(
	ctx context.Context,
	owner string,
	topN int,
	statutes []string,
) (*service.Statistics, error) {
	return m.StatisticsFn(ctx, owner, topN, statutes)
}
