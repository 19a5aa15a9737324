package backup_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/lexcards/lexcards-api/internal/domain"
	"github.com/lexcards/lexcards-api/internal/platform/backup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOwner = "maria_11111111-2222-3333-4444-555555555555"

func testCards() []*domain.Card {
	return []*domain.Card{
		{
			Owner:     testOwner,
			Exam:      "OAB",
			Statute:   "CF/88",
			Question:  "q1",
			Answer:    "a1",
			Reference: "Art. 5",
			ReadCount: 3,
		},
		{
			Owner:    testOwner,
			Exam:     "OAB",
			Statute:  "CPC",
			Question: "q2",
			Answer:   "a2",
		},
	}
}

func TestNewStore(t *testing.T) {
	t.Parallel()

	t.Run("creates the directory", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "nested", "backups")
		_, err := backup.NewStore(dir, nil)
		require.NoError(t, err)

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("rejects an empty directory", func(t *testing.T) {
		t.Parallel()

		_, err := backup.NewStore("", nil)
		assert.Error(t, err)
	})
}

func TestSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("writes owner-prefixed json file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		store, err := backup.NewStore(dir, nil)
		require.NoError(t, err)

		name, err := store.Snapshot(testOwner, testCards())
		require.NoError(t, err)
		assert.True(t, len(name) > 0)
		assert.Contains(t, name, testOwner+"_")
		assert.Contains(t, name, ".json")

		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)

		var records []backup.Record
		require.NoError(t, json.Unmarshal(data, &records))
		require.Len(t, records, 2)
		assert.Equal(t, "q1", records[0].Question)
		assert.Equal(t, 3, records[0].ReadCount)
		assert.Equal(t, 0, records[1].ReadCount)
	})

	t.Run("empty card list writes nothing", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		store, err := backup.NewStore(dir, nil)
		require.NoError(t, err)

		name, err := store.Snapshot(testOwner, nil)
		require.NoError(t, err)
		assert.Equal(t, "", name)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestList(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := backup.NewStore(dir, nil)
	require.NoError(t, err)

	// Write files directly so the timestamps differ without sleeping.
	otherOwner := "joao_99999999-8888-7777-6666-555555555555"
	for _, name := range []string{
		testOwner + "_20240101_120000.json",
		testOwner + "_20240301_120000.json",
		testOwner + "_20240201_120000.json",
		otherOwner + "_20240401_120000.json",
		"unrelated.txt",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("[]"), 0o644))
	}

	names, err := store.List(testOwner)
	require.NoError(t, err)
	assert.Equal(t, []string{
		testOwner + "_20240301_120000.json",
		testOwner + "_20240201_120000.json",
		testOwner + "_20240101_120000.json",
	}, names, "newest first, other owners and non-snapshots excluded")
}

func TestRead(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := backup.NewStore(dir, nil)
	require.NoError(t, err)

	name, err := store.Snapshot(testOwner, testCards())
	require.NoError(t, err)

	t.Run("round-trips records", func(t *testing.T) {
		records, err := store.Read(testOwner, name)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "CF/88", records[0].Statute)
		assert.Equal(t, domain.CardFields{
			Exam:      "OAB",
			Statute:   "CF/88",
			Question:  "q1",
			Answer:    "a1",
			Reference: "Art. 5",
			ReadCount: 3,
		}, records[0].Fields())
	})

	t.Run("refuses other owners' snapshots", func(t *testing.T) {
		_, err := store.Read("joao_99999999-8888-7777-6666-555555555555", name)
		assert.ErrorIs(t, err, backup.ErrSnapshotNotFound)
	})

	t.Run("refuses path escapes", func(t *testing.T) {
		_, err := store.Read(testOwner, "../"+name)
		assert.ErrorIs(t, err, backup.ErrSnapshotNotFound)
	})

	t.Run("missing snapshot", func(t *testing.T) {
		_, err := store.Read(testOwner, testOwner+"_20000101_000000.json")
		assert.ErrorIs(t, err, backup.ErrSnapshotNotFound)
	})

	t.Run("malformed snapshot content", func(t *testing.T) {
		bad := testOwner + "_20240601_000000.json"
		require.NoError(t, os.WriteFile(filepath.Join(dir, bad), []byte("{not json"), 0o644))

		_, err := store.Read(testOwner, bad)
		assert.ErrorIs(t, err, backup.ErrMalformedSnapshot)
	})
}
