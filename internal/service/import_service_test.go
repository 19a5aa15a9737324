package service_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/lexcards/lexcards-api/internal/domain"
	"github.com/lexcards/lexcards-api/internal/mocks"
	"github.com/lexcards/lexcards-api/internal/platform/backup"
	"github.com/lexcards/lexcards-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const importOwner = "maria_11111111-2222-3333-4444-555555555555"

// newImportService builds an importServiceImpl directly so the early
// validation paths can be tested without a live transaction source.
func newImportServiceForTest(t *testing.T, cardStore *mocks.MockCardStore, maxBytes int64) *service.ImportServiceImpl {
	t.Helper()

	backups, err := backup.NewStore(t.TempDir(), nil)
	require.NoError(t, err)

	return service.NewImportServiceImplForTest(cardStore, backups, maxBytes, discardLogger())
}

func recordsJSON(t *testing.T, records []backup.Record) []byte {
	t.Helper()
	data, err := json.Marshal(records)
	require.NoError(t, err)
	return data
}

func TestImportRejectsOversizedPayload(t *testing.T) {
	t.Parallel()

	svc := newImportServiceForTest(t, mocks.NewMockCardStore(), 64)

	payload := []byte("[" + strings.Repeat(" ", 100) + "]")
	_, err := svc.Import(context.Background(), importOwner, payload)
	assert.ErrorIs(t, err, service.ErrFileTooLarge)
}

func TestImportRejectsMalformedJSON(t *testing.T) {
	t.Parallel()

	svc := newImportServiceForTest(t, mocks.NewMockCardStore(), 1<<20)

	for _, payload := range []string{"not json", `{"exam":"x"}`, `[{"exam":`} {
		_, err := svc.Import(context.Background(), importOwner, []byte(payload))
		assert.ErrorIs(t, err, service.ErrMalformedImport, "payload %q", payload)
	}
}

func TestImportRejectsInvalidRecordBeforeAnyWrite(t *testing.T) {
	t.Parallel()

	cardStore := mocks.NewMockCardStore()
	svc := newImportServiceForTest(t, cardStore, 1<<20)

	payload := recordsJSON(t, []backup.Record{
		{Exam: "OAB", Statute: "CF/88", Question: "q1", Answer: "a1"},
		{Exam: "OAB", Statute: "CF/88", Question: "q2", Answer: ""}, // invalid
	})

	_, err := svc.Import(context.Background(), importOwner, payload)

	var valErr *domain.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "record[1]", valErr.Field)
	assert.Empty(t, cardStore.Cards, "a single bad record rejects the whole batch")
}

func TestBuildCards(t *testing.T) {
	t.Parallel()

	t.Run("sanitizes text and clamps negative read counts", func(t *testing.T) {
		t.Parallel()

		cards, err := service.BuildCards(importOwner, []backup.Record{
			{
				Exam:      "OAB",
				Statute:   "CF/88",
				Question:  `<script>x</script><b>q</b>`,
				Answer:    "a",
				ReadCount: -3,
			},
		})
		require.NoError(t, err)
		require.Len(t, cards, 1)

		assert.Equal(t, "<b>q</b>", cards[0].Question)
		assert.Equal(t, 0, cards[0].ReadCount)
		assert.Equal(t, importOwner, cards[0].Owner)
	})

	t.Run("keeps read counts from records", func(t *testing.T) {
		t.Parallel()

		cards, err := service.BuildCards(importOwner, []backup.Record{
			{Exam: "OAB", Statute: "CF/88", Question: "q", Answer: "a", ReadCount: 7},
		})
		require.NoError(t, err)
		assert.Equal(t, 7, cards[0].ReadCount)
	})
}

func TestInsertBatchDeduplication(t *testing.T) {
	t.Parallel()

	mustCard := func(question, answer string) *domain.Card {
		card, err := domain.NewCard(importOwner, domain.CardFields{
			Exam:     "OAB",
			Statute:  "CF/88",
			Question: question,
			Answer:   answer,
		})
		require.NoError(t, err)
		return card
	}

	t.Run("skips records colliding with existing cards", func(t *testing.T) {
		t.Parallel()

		cardStore := mocks.NewMockCardStore()
		svc := newImportServiceForTest(t, cardStore, 1<<20)

		existing := []*domain.Card{mustCard("q1", "a1")}
		incoming := []*domain.Card{mustCard("q1", "a1"), mustCard("q2", "a2")}

		result := &service.ImportResult{}
		err := svc.InsertBatchForTest(context.Background(), cardStore, existing, incoming, result)
		require.NoError(t, err)

		assert.Equal(t, 1, result.Inserted)
		assert.Equal(t, 1, result.Skipped)
		require.Len(t, cardStore.Cards, 1)
		assert.Equal(t, "q2", cardStore.Cards[0].Question)
	})

	t.Run("skips duplicates within the batch itself", func(t *testing.T) {
		t.Parallel()

		cardStore := mocks.NewMockCardStore()
		svc := newImportServiceForTest(t, cardStore, 1<<20)

		incoming := []*domain.Card{
			mustCard("q1", "a1"),
			mustCard("q1", "a1"),
			mustCard("q1", "a1"),
		}

		result := &service.ImportResult{}
		err := svc.InsertBatchForTest(context.Background(), cardStore, nil, incoming, result)
		require.NoError(t, err)

		assert.Equal(t, 1, result.Inserted)
		assert.Equal(t, 2, result.Skipped)
	})

	t.Run("re-importing the same batch skips everything", func(t *testing.T) {
		t.Parallel()

		cardStore := mocks.NewMockCardStore()
		svc := newImportServiceForTest(t, cardStore, 1<<20)

		incoming := []*domain.Card{mustCard("q1", "a1"), mustCard("q2", "a2")}
		result := &service.ImportResult{}
		require.NoError(t, svc.InsertBatchForTest(context.Background(), cardStore, nil, incoming, result))
		assert.Equal(t, 2, result.Inserted)

		// Second pass against the now-populated store.
		again := []*domain.Card{mustCard("q1", "a1"), mustCard("q2", "a2")}
		result = &service.ImportResult{}
		require.NoError(t, svc.InsertBatchForTest(context.Background(), cardStore, cardStore.Cards, again, result))
		assert.Equal(t, 0, result.Inserted)
		assert.Equal(t, 2, result.Skipped)
		assert.Len(t, cardStore.Cards, 2)
	})

	t.Run("same question and answer under a different filing is still a duplicate", func(t *testing.T) {
		t.Parallel()

		cardStore := mocks.NewMockCardStore()
		svc := newImportServiceForTest(t, cardStore, 1<<20)

		moved, err := domain.NewCard(importOwner, domain.CardFields{
			Exam:     "Magistratura",
			Statute:  "CPC",
			Question: "q1",
			Answer:   "a1",
		})
		require.NoError(t, err)

		result := &service.ImportResult{}
		err = svc.InsertBatchForTest(
			context.Background(),
			cardStore,
			[]*domain.Card{mustCard("q1", "a1")},
			[]*domain.Card{moved},
			result,
		)
		require.NoError(t, err)
		assert.Equal(t, 0, result.Inserted)
		assert.Equal(t, 1, result.Skipped)
	})
}

func TestSnapshotIfNotEmpty(t *testing.T) {
	t.Parallel()

	svc := newImportServiceForTest(t, mocks.NewMockCardStore(), 1<<20)

	name, err := svc.SnapshotIfNotEmptyForTest(importOwner, nil, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, "", name, "empty list takes no snapshot")

	card, err := domain.NewCard(importOwner, domain.CardFields{
		Exam: "OAB", Statute: "CF/88", Question: "q", Answer: "a",
	})
	require.NoError(t, err)

	name, err = svc.SnapshotIfNotEmptyForTest(importOwner, []*domain.Card{card}, discardLogger())
	require.NoError(t, err)
	assert.NotEmpty(t, name)
}
