package domain_test

import (
	"testing"
	"time"

	"github.com/lexcards/lexcards-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFields() domain.CardFields {
	return domain.CardFields{
		Exam:      "OAB",
		Statute:   "CF/88",
		Question:  "What does article 5 guarantee?",
		Answer:    "Fundamental rights and guarantees.",
		Reference: "Art. 5",
	}
}

func TestNewCard(t *testing.T) {
	t.Parallel()

	t.Run("creates card with valid fields", func(t *testing.T) {
		t.Parallel()

		card, err := domain.NewCard("maria_11111111-2222-3333-4444-555555555555", validFields())
		require.NoError(t, err)

		assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", card.ID.String())
		assert.Equal(t, "OAB", card.Exam)
		assert.Equal(t, "CF/88", card.Statute)
		assert.Equal(t, 0, card.ReadCount)
		assert.False(t, card.CreatedAt.IsZero())
		assert.Equal(t, card.CreatedAt, card.UpdatedAt)
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		t.Parallel()

		cases := []struct {
			name    string
			mutate  func(*domain.CardFields)
			wantErr error
		}{
			{"empty exam", func(f *domain.CardFields) { f.Exam = "" }, domain.ErrCardExamEmpty},
			{"empty statute", func(f *domain.CardFields) { f.Statute = "  " }, domain.ErrCardStatuteEmpty},
			{"empty question", func(f *domain.CardFields) { f.Question = "" }, domain.ErrCardQuestionEmpty},
			{"empty answer", func(f *domain.CardFields) { f.Answer = "" }, domain.ErrCardAnswerEmpty},
			{"negative read count", func(f *domain.CardFields) { f.ReadCount = -1 }, domain.ErrCardReadCountNegative},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				fields := validFields()
				tc.mutate(&fields)

				_, err := domain.NewCard("owner_11111111-2222-3333-4444-555555555555", fields)
				assert.ErrorIs(t, err, tc.wantErr)
			})
		}
	})

	t.Run("rejects empty owner", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewCard("", validFields())
		assert.ErrorIs(t, err, domain.ErrCardOwnerEmpty)
	})
}

func TestCardReplace(t *testing.T) {
	t.Parallel()

	t.Run("replaces fields and preserves read count", func(t *testing.T) {
		t.Parallel()

		card, err := domain.NewCard("owner_11111111-2222-3333-4444-555555555555", validFields())
		require.NoError(t, err)
		card.ReadCount = 7
		createdAt := card.CreatedAt

		newFields := domain.CardFields{
			Exam:      "Magistratura",
			Statute:   "CPC",
			Question:  "New question",
			Answer:    "New answer",
			Reference: "",
		}
		require.NoError(t, card.Replace(newFields))

		assert.Equal(t, "Magistratura", card.Exam)
		assert.Equal(t, "CPC", card.Statute)
		assert.Equal(t, "New question", card.Question)
		assert.Equal(t, "", card.Reference)
		assert.Equal(t, 7, card.ReadCount, "read count must survive a full replacement")
		assert.Equal(t, createdAt, card.CreatedAt)
		assert.True(t, card.UpdatedAt.After(createdAt) || card.UpdatedAt.Equal(createdAt))
	})

	t.Run("leaves card unchanged on invalid replacement", func(t *testing.T) {
		t.Parallel()

		card, err := domain.NewCard("owner_11111111-2222-3333-4444-555555555555", validFields())
		require.NoError(t, err)
		before := *card

		bad := validFields()
		bad.Answer = ""
		err = card.Replace(bad)

		assert.ErrorIs(t, err, domain.ErrCardAnswerEmpty)
		assert.Equal(t, before, *card)
	})
}

func TestCardIdentity(t *testing.T) {
	t.Parallel()

	owner := "ana_11111111-2222-3333-4444-555555555555"
	a, err := domain.NewCard(owner, validFields())
	require.NoError(t, err)

	// Same question/answer filed under a different exam and statute is
	// still the same study item.
	otherFiling := validFields()
	otherFiling.Exam = "Defensoria"
	otherFiling.Statute = "CDC"
	b, err := domain.NewCard(owner, otherFiling)
	require.NoError(t, err)

	assert.Equal(t, a.Identity(), b.Identity())

	differentText := validFields()
	differentText.Answer = "Something else entirely."
	c, err := domain.NewCard(owner, differentText)
	require.NoError(t, err)
	assert.NotEqual(t, a.Identity(), c.Identity())

	d, err := domain.NewCard("other_11111111-2222-3333-4444-555555555555", validFields())
	require.NoError(t, err)
	assert.NotEqual(t, a.Identity(), d.Identity(), "identity is owner-scoped")
}

func TestCardValidateTimestampsNotRequired(t *testing.T) {
	t.Parallel()

	// Validate only checks content fields; timestamps are store concerns.
	card := &domain.Card{
		Owner:     "o_11111111-2222-3333-4444-555555555555",
		Exam:      "OAB",
		Statute:   "CF/88",
		Question:  "q",
		Answer:    "a",
		CreatedAt: time.Time{},
	}
	assert.NoError(t, card.Validate())
}
