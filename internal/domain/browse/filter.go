package browse

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lexcards/lexcards-api/internal/domain"
)

// ErrUnknownBucket is returned when a read bucket string cannot be parsed.
var ErrUnknownBucket = errors.New("unknown read bucket")

// ReadBucket selects cards by how often they have been marked as read.
type ReadBucket int

// Read-count buckets, mirroring the filter choices offered to the user.
const (
	BucketAll ReadBucket = iota
	BucketNeverRead
	BucketAtLeastOne
	BucketAtLeastFive
	BucketAtLeastTen
)

// ParseReadBucket maps the wire form of a bucket to a ReadBucket.
// The empty string means no read-count filtering.
func ParseReadBucket(s string) (ReadBucket, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return BucketAll, nil
	case "never":
		return BucketNeverRead, nil
	case "1+":
		return BucketAtLeastOne, nil
	case "5+":
		return BucketAtLeastFive, nil
	case "10+":
		return BucketAtLeastTen, nil
	default:
		return BucketAll, fmt.Errorf("%w: %q", ErrUnknownBucket, s)
	}
}

// Matches reports whether a read count falls inside the bucket.
func (b ReadBucket) Matches(readCount int) bool {
	switch b {
	case BucketNeverRead:
		return readCount == 0
	case BucketAtLeastOne:
		return readCount >= 1
	case BucketAtLeastFive:
		return readCount >= 5
	case BucketAtLeastTen:
		return readCount >= 10
	default:
		return true
	}
}

// String returns the wire form of the bucket.
func (b ReadBucket) String() string {
	switch b {
	case BucketNeverRead:
		return "never"
	case BucketAtLeastOne:
		return "1+"
	case BucketAtLeastFive:
		return "5+"
	case BucketAtLeastTen:
		return "10+"
	default:
		return "all"
	}
}

// Criteria describes one filtering pass over a card collection.
// Exam and Statute are matched exactly; Query is a case-insensitive
// substring search over question, answer and reference (an empty query
// matches everything); Bucket restricts by read count. All four
// predicates are ANDed.
type Criteria struct {
	Exam    string
	Statute string
	Query   string
	Bucket  ReadBucket
}

// Filter returns the cards matching the criteria, preserving their original
// relative order. The result is a fresh slice; the input is never mutated.
func Filter(cards []*domain.Card, c Criteria) []*domain.Card {
	query := strings.ToLower(c.Query)

	matched := make([]*domain.Card, 0, len(cards))
	for _, card := range cards {
		if card.Exam != c.Exam || card.Statute != c.Statute {
			continue
		}
		if !c.Bucket.Matches(card.ReadCount) {
			continue
		}
		if query != "" && !matchesQuery(card, query) {
			continue
		}
		matched = append(matched, card)
	}
	return matched
}

// matchesQuery reports whether the lowercased query appears in the card's
// question, answer or reference.
func matchesQuery(card *domain.Card, query string) bool {
	return strings.Contains(strings.ToLower(card.Question), query) ||
		strings.Contains(strings.ToLower(card.Answer), query) ||
		strings.Contains(strings.ToLower(card.Reference), query)
}
