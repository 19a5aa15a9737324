// Package backup writes and reads point-in-time JSON snapshots of an
// owner's card list. Snapshots are taken automatically before destructive
// import/restore operations and are only ever read back on an explicit
// restore request, never automatically.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/lexcards/lexcards-api/internal/domain"
)

// Snapshot file errors.
var (
	// ErrSnapshotNotFound is returned when the named snapshot does not exist
	// or does not belong to the requesting owner.
	ErrSnapshotNotFound = errors.New("backup snapshot not found")

	// ErrMalformedSnapshot is returned when a snapshot file cannot be parsed
	// as a JSON array of card records.
	ErrMalformedSnapshot = errors.New("malformed backup snapshot")
)

// Record is the card shape stored in a snapshot file: every card field
// except the store-assigned ID and the owner (both implied by the file).
type Record struct {
	Exam      string `json:"exam"`
	Statute   string `json:"statute"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	Reference string `json:"reference"`
	ReadCount int    `json:"read_count"`
}

// Fields converts the record to domain card fields.
func (r Record) Fields() domain.CardFields {
	return domain.CardFields{
		Exam:      r.Exam,
		Statute:   r.Statute,
		Question:  r.Question,
		Answer:    r.Answer,
		Reference: r.Reference,
		ReadCount: r.ReadCount,
	}
}

// Store persists snapshots as files in a single directory, named
// <owner>_<timestamp>.json. The owner string already carries the session
// token, so snapshot visibility is per session.
type Store struct {
	dir    string
	logger *slog.Logger
	now    func() time.Time
}

// NewStore creates a snapshot store rooted at dir, creating the directory
// if needed. If logger is nil, a default logger will be used.
func NewStore(dir string, logger *slog.Logger) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("backup directory cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}
	return &Store{
		dir:    dir,
		logger: logger.With(slog.String("component", "backup_store")),
		now:    time.Now,
	}, nil
}

// Snapshot writes the owner's cards to a new snapshot file and returns its
// name. An empty card list writes nothing and returns an empty name.
func (s *Store) Snapshot(owner string, cards []*domain.Card) (string, error) {
	if len(cards) == 0 {
		return "", nil
	}

	records := make([]Record, 0, len(cards))
	for _, card := range cards {
		records = append(records, Record{
			Exam:      card.Exam,
			Statute:   card.Statute,
			Question:  card.Question,
			Answer:    card.Answer,
			Reference: card.Reference,
			ReadCount: card.ReadCount,
		})
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	name := fmt.Sprintf("%s_%s.json", owner, s.now().UTC().Format("20060102_150405"))
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.logger.Error("failed to write snapshot",
			slog.String("error", err.Error()),
			slog.String("owner", owner),
			slog.String("name", name))
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}

	s.logger.Info("snapshot written",
		slog.String("owner", owner),
		slog.String("name", name),
		slog.Int("cards", len(cards)))
	return name, nil
}

// List returns the owner's snapshot names, newest first.
func (s *Store) List(owner string) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	prefix := owner + "_"
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, prefix) && strings.HasSuffix(name, ".json") {
			names = append(names, name)
		}
	}

	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// Read loads the named snapshot, refusing names that do not belong to the
// owner or that try to escape the backup directory.
func (s *Store) Read(owner, name string) ([]Record, error) {
	if name != filepath.Base(name) || !strings.HasPrefix(name, owner+"_") {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, name)
	}

	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, name)
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	return records, nil
}
