package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Card-specific validation errors
var (
	// ErrCardOwnerEmpty is returned when a card's owner is empty.
	ErrCardOwnerEmpty = errors.New("card owner cannot be empty")

	// ErrCardExamEmpty is returned when a card's exam label is empty.
	ErrCardExamEmpty = errors.New("card exam cannot be empty")

	// ErrCardStatuteEmpty is returned when a card's statute label is empty.
	ErrCardStatuteEmpty = errors.New("card statute cannot be empty")

	// ErrCardQuestionEmpty is returned when a card's question is empty.
	ErrCardQuestionEmpty = errors.New("card question cannot be empty")

	// ErrCardAnswerEmpty is returned when a card's answer is empty.
	ErrCardAnswerEmpty = errors.New("card answer cannot be empty")

	// ErrCardReadCountNegative is returned when a card's read count is below zero.
	ErrCardReadCountNegative = errors.New("card read count cannot be negative")
)

// Card represents a single study item: a question/answer pair filed under an
// exam and a statute, scoped to one owner. ReadCount tracks how many times
// the owner has marked the card as read.
type Card struct {
	ID        uuid.UUID `json:"id"`
	Owner     string    `json:"owner"`
	Exam      string    `json:"exam"`
	Statute   string    `json:"statute"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Reference string    `json:"reference"`
	ReadCount int       `json:"read_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CardFields holds the mutable fields of a card for full-replacement edits.
// ReadCount is carried over from the existing card unless the caller sets it
// explicitly (imports do; edits do not).
type CardFields struct {
	Exam      string
	Statute   string
	Question  string
	Answer    string
	Reference string
	ReadCount int
}

// IdentityKey is the tuple that identifies a card for duplicate detection:
// two cards with the same owner, question and answer are considered the same
// study item regardless of which exam or statute they are filed under.
type IdentityKey struct {
	Owner    string
	Question string
	Answer   string
}

// Identity returns the card's identity key.
func (c *Card) Identity() IdentityKey {
	return IdentityKey{Owner: c.Owner, Question: c.Question, Answer: c.Answer}
}

// NewCard creates a new Card with the given owner and field values.
// It generates a new UUID for the card ID and sets the creation/update
// timestamps. Returns an error if validation fails.
func NewCard(owner string, fields CardFields) (*Card, error) {
	now := time.Now().UTC()
	card := &Card{
		ID:        uuid.New(),
		Owner:     owner,
		Exam:      fields.Exam,
		Statute:   fields.Statute,
		Question:  fields.Question,
		Answer:    fields.Answer,
		Reference: fields.Reference,
		ReadCount: fields.ReadCount,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
// Returns an error if any field fails validation.
func (c *Card) Validate() error {
	if strings.TrimSpace(c.Owner) == "" {
		return ErrCardOwnerEmpty
	}

	if strings.TrimSpace(c.Exam) == "" {
		return ErrCardExamEmpty
	}

	if strings.TrimSpace(c.Statute) == "" {
		return ErrCardStatuteEmpty
	}

	if strings.TrimSpace(c.Question) == "" {
		return ErrCardQuestionEmpty
	}

	if strings.TrimSpace(c.Answer) == "" {
		return ErrCardAnswerEmpty
	}

	if c.ReadCount < 0 {
		return ErrCardReadCountNegative
	}

	return nil
}

// Replace applies a full field replacement to the card, preserving its
// ReadCount, and updates the UpdatedAt timestamp. Returns an error if the
// new field values are invalid; the card is left unchanged on failure.
func (c *Card) Replace(fields CardFields) error {
	orig := *c

	c.Exam = fields.Exam
	c.Statute = fields.Statute
	c.Question = fields.Question
	c.Answer = fields.Answer
	c.Reference = fields.Reference

	if err := c.Validate(); err != nil {
		*c = orig
		return err
	}

	c.UpdatedAt = time.Now().UTC()
	return nil
}
