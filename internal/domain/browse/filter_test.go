package browse_test

import (
	"testing"

	"github.com/lexcards/lexcards-api/internal/domain"
	"github.com/lexcards/lexcards-api/internal/domain/browse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func card(exam, statute, question, answer, reference string, readCount int) *domain.Card {
	return &domain.Card{
		Exam:      exam,
		Statute:   statute,
		Question:  question,
		Answer:    answer,
		Reference: reference,
		ReadCount: readCount,
	}
}

func TestParseReadBucket(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input string
		want  browse.ReadBucket
	}{
		{"", browse.BucketAll},
		{"all", browse.BucketAll},
		{"ALL", browse.BucketAll},
		{"never", browse.BucketNeverRead},
		{"1+", browse.BucketAtLeastOne},
		{"5+", browse.BucketAtLeastFive},
		{"10+", browse.BucketAtLeastTen},
		{" 10+ ", browse.BucketAtLeastTen},
	}
	for _, tc := range cases {
		got, err := browse.ParseReadBucket(tc.input)
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.want, got, "input %q", tc.input)
	}

	_, err := browse.ParseReadBucket("2+")
	assert.ErrorIs(t, err, browse.ErrUnknownBucket)
}

func TestReadBucketMatches(t *testing.T) {
	t.Parallel()

	assert.True(t, browse.BucketAll.Matches(0))
	assert.True(t, browse.BucketAll.Matches(100))

	assert.True(t, browse.BucketNeverRead.Matches(0))
	assert.False(t, browse.BucketNeverRead.Matches(1))

	assert.False(t, browse.BucketAtLeastOne.Matches(0))
	assert.True(t, browse.BucketAtLeastOne.Matches(1))

	assert.False(t, browse.BucketAtLeastFive.Matches(4))
	assert.True(t, browse.BucketAtLeastFive.Matches(5))

	assert.False(t, browse.BucketAtLeastTen.Matches(9))
	assert.True(t, browse.BucketAtLeastTen.Matches(10))
}

func TestFilter(t *testing.T) {
	t.Parallel()

	cards := []*domain.Card{
		card("OAB", "CF/88", "What is habeas corpus?", "A remedy.", "Art. 5 LXVIII", 0),
		card("OAB", "CF/88", "Who may propose an ADI?", "Listed parties.", "Art. 103", 6),
		card("OAB", "CPC", "What is venue?", "Territorial competence.", "", 2),
		card("Magistratura", "CF/88", "Federal entities?", "Union, states, DF, municipalities.", "Art. 18", 11),
	}

	t.Run("exact exam and statute match", func(t *testing.T) {
		t.Parallel()

		got := browse.Filter(cards, browse.Criteria{Exam: "OAB", Statute: "CF/88"})
		require.Len(t, got, 2)
		assert.Same(t, cards[0], got[0])
		assert.Same(t, cards[1], got[1])

		// Exam match is exact, not case-insensitive.
		assert.Empty(t, browse.Filter(cards, browse.Criteria{Exam: "oab", Statute: "CF/88"}))
	})

	t.Run("search is case-insensitive over question answer and reference", func(t *testing.T) {
		t.Parallel()

		got := browse.Filter(cards, browse.Criteria{Exam: "OAB", Statute: "CF/88", Query: "HABEAS"})
		require.Len(t, got, 1)
		assert.Same(t, cards[0], got[0])

		got = browse.Filter(cards, browse.Criteria{Exam: "OAB", Statute: "CF/88", Query: "art. 103"})
		require.Len(t, got, 1)
		assert.Same(t, cards[1], got[0])

		assert.Empty(t, browse.Filter(cards, browse.Criteria{Exam: "OAB", Statute: "CF/88", Query: "nowhere"}))
	})

	t.Run("read bucket restricts matches", func(t *testing.T) {
		t.Parallel()

		got := browse.Filter(cards, browse.Criteria{
			Exam: "OAB", Statute: "CF/88", Bucket: browse.BucketAtLeastFive,
		})
		require.Len(t, got, 1)
		assert.Same(t, cards[1], got[0])

		got = browse.Filter(cards, browse.Criteria{
			Exam: "OAB", Statute: "CF/88", Bucket: browse.BucketNeverRead,
		})
		require.Len(t, got, 1)
		assert.Same(t, cards[0], got[0])
	})

	t.Run("preserves input order and never mutates", func(t *testing.T) {
		t.Parallel()

		before := make([]*domain.Card, len(cards))
		copy(before, cards)

		got := browse.Filter(cards, browse.Criteria{Exam: "OAB", Statute: "CF/88"})
		for i := 1; i < len(got); i++ {
			assert.True(t, indexOf(cards, got[i-1]) < indexOf(cards, got[i]))
		}
		assert.Equal(t, before, cards)
	})

	t.Run("empty input yields empty result", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, browse.Filter(nil, browse.Criteria{Exam: "OAB", Statute: "CF/88"}))
	})
}

func indexOf(cards []*domain.Card, target *domain.Card) int {
	for i, c := range cards {
		if c == target {
			return i
		}
	}
	return -1
}
