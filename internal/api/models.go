package api

import (
	"time"

	"github.com/lexcards/lexcards-api/internal/domain"
	"github.com/lexcards/lexcards-api/internal/sanitize"
	"github.com/lexcards/lexcards-api/internal/service"
)

// SessionRequest is the payload for opening a study session.
type SessionRequest struct {
	Username string `json:"username" validate:"required"`
}

// SessionResponse carries the issued session and the owner identifier the
// client must send on every card request.
type SessionResponse struct {
	Username     string `json:"username"`
	SessionToken string `json:"session_token"`
	Owner        string `json:"owner"`
}

// CardRequest is the payload for adding or editing a card.
type CardRequest struct {
	Exam      string `json:"exam"      validate:"required"`
	Statute   string `json:"statute"   validate:"required"`
	Question  string `json:"question"  validate:"required"`
	Answer    string `json:"answer"    validate:"required"`
	Reference string `json:"reference"`
}

// Fields converts the request to domain card fields.
func (r CardRequest) Fields() domain.CardFields {
	return domain.CardFields{
		Exam:      r.Exam,
		Statute:   r.Statute,
		Question:  r.Question,
		Answer:    r.Answer,
		Reference: r.Reference,
	}
}

// CardResponse represents the response data for a card.
// QuestionLabel is the tag-free variant of the question for display labels.
type CardResponse struct {
	ID            string    `json:"id"`
	Exam          string    `json:"exam"`
	Statute       string    `json:"statute"`
	Question      string    `json:"question"`
	QuestionLabel string    `json:"question_label"`
	Answer        string    `json:"answer"`
	Reference     string    `json:"reference"`
	ReadCount     int       `json:"read_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// cardToResponse converts a domain.Card to a CardResponse.
func cardToResponse(card *domain.Card) CardResponse {
	return CardResponse{
		ID:            card.ID.String(),
		Exam:          card.Exam,
		Statute:       card.Statute,
		Question:      card.Question,
		QuestionLabel: sanitize.Label(card.Question),
		Answer:        card.Answer,
		Reference:     card.Reference,
		ReadCount:     card.ReadCount,
		CreatedAt:     card.CreatedAt,
		UpdatedAt:     card.UpdatedAt,
	}
}

// cardsToResponse converts a card slice, always yielding a non-nil slice.
func cardsToResponse(cards []*domain.Card) []CardResponse {
	out := make([]CardResponse, 0, len(cards))
	for _, card := range cards {
		out = append(out, cardToResponse(card))
	}
	return out
}

// BrowseResponse is one page of filtered cards plus pagination state.
type BrowseResponse struct {
	Cards        []CardResponse `json:"cards"`
	Page         int            `json:"page"`
	TotalPages   int            `json:"total_pages"`
	TotalMatched int            `json:"total_matched"`
	TotalCards   int            `json:"total_cards"`
}

// MarkReadResponse reports the card's read count after a mark-read action.
type MarkReadResponse struct {
	ID        string `json:"id"`
	ReadCount int    `json:"read_count"`
}

// LabelsResponse lists distinct grouping labels (exams or statutes).
type LabelsResponse struct {
	Labels []string `json:"labels"`
}

// RankingEntry is one statute's summed read count in the rankings.
type RankingEntry struct {
	Statute    string `json:"statute"`
	TotalReads int    `json:"total_reads"`
}

// TopCardEntry is one statute's most-read card.
type TopCardEntry struct {
	Statute    string        `json:"statute"`
	TotalReads int           `json:"total_reads"`
	TopCard    *CardResponse `json:"top_card,omitempty"`
}

// StatsResponse carries the per-statute statistics aggregation.
type StatsResponse struct {
	Rankings []RankingEntry `json:"rankings"`
	TopCards []TopCardEntry `json:"top_cards"`
}

// statsToResponse converts service statistics to the response shape.
func statsToResponse(stats *service.Statistics) StatsResponse {
	resp := StatsResponse{
		Rankings: make([]RankingEntry, 0, len(stats.Rankings)),
		TopCards: make([]TopCardEntry, 0, len(stats.TopCards)),
	}
	for _, entry := range stats.Rankings {
		resp.Rankings = append(resp.Rankings, RankingEntry{
			Statute:    entry.Statute,
			TotalReads: entry.Total,
		})
	}
	for _, overview := range stats.TopCards {
		entry := TopCardEntry{
			Statute:    overview.Statute,
			TotalReads: overview.TotalReads,
		}
		if overview.TopCard != nil {
			card := cardToResponse(overview.TopCard)
			entry.TopCard = &card
		}
		resp.TopCards = append(resp.TopCards, entry)
	}
	return resp
}

// ImportResponse reports the outcome of an import or restore.
type ImportResponse struct {
	Inserted int    `json:"inserted"`
	Skipped  int    `json:"skipped"`
	Snapshot string `json:"snapshot,omitempty"`
}

// RestoreRequest names the backup snapshot to restore.
type RestoreRequest struct {
	Name string `json:"name" validate:"required"`
}

// SnapshotsResponse lists the session's backup snapshots, newest first.
type SnapshotsResponse struct {
	Snapshots []string `json:"snapshots"`
}
