package browse

import "github.com/lexcards/lexcards-api/internal/domain"

// NoStatute is the sentinel bucket for cards whose statute label is empty.
const NoStatute = "[none]"

// StatuteTotal is the summed read count for one statute.
type StatuteTotal struct {
	Statute string
	Total   int
}

// Stats holds the per-statute aggregation over a card collection: summed
// read counts and the single most-read card per statute.
type Stats struct {
	totals  map[string]int
	top     map[string]*domain.Card
	statute []string // first-seen order, used for deterministic ranking ties
}

// Aggregate groups cards by statute and computes per-statute read totals and
// the most-read card. Cards without a statute fall into the NoStatute bucket.
// When several cards share the highest read count, the first one encountered
// in input order wins. Pure function of its input.
func Aggregate(cards []*domain.Card) *Stats {
	s := &Stats{
		totals: make(map[string]int),
		top:    make(map[string]*domain.Card),
	}

	for _, card := range cards {
		statute := card.Statute
		if statute == "" {
			statute = NoStatute
		}

		if _, seen := s.totals[statute]; !seen {
			s.statute = append(s.statute, statute)
		}
		s.totals[statute] += card.ReadCount

		if best, ok := s.top[statute]; !ok || card.ReadCount > best.ReadCount {
			s.top[statute] = card
		}
	}

	return s
}

// Total returns the summed read count for a statute, zero if unknown.
func (s *Stats) Total(statute string) int {
	return s.totals[statute]
}

// TopCard returns the most-read card for a statute, nil if unknown.
func (s *Stats) TopCard(statute string) *domain.Card {
	return s.top[statute]
}

// Statutes returns all statute buckets in first-seen input order.
func (s *Stats) Statutes() []string {
	out := make([]string, len(s.statute))
	copy(out, s.statute)
	return out
}

// TopTotals returns up to n statutes ranked by total read count, descending.
// Ties keep first-seen input order. A non-positive n returns all statutes.
func (s *Stats) TopTotals(n int) []StatuteTotal {
	ranked := make([]StatuteTotal, 0, len(s.statute))
	for _, statute := range s.statute {
		ranked = append(ranked, StatuteTotal{Statute: statute, Total: s.totals[statute]})
	}

	// Stable insertion sort: the bucket count is small and first-seen order
	// must be kept among equal totals.
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && ranked[j].Total > ranked[j-1].Total; j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}

	if n > 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// Restrict returns a view of the stats limited to the given statutes, in the
// order given, dropping names with no bucket.
func (s *Stats) Restrict(statutes []string) *Stats {
	out := &Stats{
		totals: make(map[string]int),
		top:    make(map[string]*domain.Card),
	}
	for _, statute := range statutes {
		if _, ok := s.totals[statute]; !ok {
			continue
		}
		out.totals[statute] = s.totals[statute]
		out.top[statute] = s.top[statute]
		out.statute = append(out.statute, statute)
	}
	return out
}
