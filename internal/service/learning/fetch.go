package learning

import (
	"math"
	"slices"

	"github.com/heartmarshall/leitner/internal/domain"
	"github.com/heartmarshall/leitner/internal/lesson"
)

// fetchCards collects the candidate cards. Automatic selection (unlearned
// and/or expired) takes precedence over an explicit selection; without
// either, every card of the scope is learned.
func (s *Session) fetchCards() []*lesson.Card {
	p := s.policy

	var cards []*lesson.Card
	switch {
	case p.LearnUnlearned || p.LearnExpired:
		if p.LearnUnlearned {
			cards = append(cards, s.model.UnlearnedCards()...)
		}
		if p.LearnExpired {
			cards = append(cards, s.model.ExpiredCards(s.start)...)
		}
	case len(s.selected) > 0:
		cards = s.selected
	default:
		cards = s.model.AllCards()
	}

	seen := make(map[*lesson.Card]struct{}, len(cards))
	out := make([]*lesson.Card, 0, len(cards))
	for _, c := range cards {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// rankCategories numbers the categories of the scope in pre-order, or in a
// random order fixed for the whole session.
func (s *Session) rankCategories() {
	cats := s.model.Subtree()
	if s.policy.CategoryOrder == domain.CategoryOrderRandom {
		s.rng.Shuffle(len(cats), func(i, j int) { cats[i], cats[j] = cats[j], cats[i] })
	}
	s.categoryRank = make(map[*lesson.Category]int, len(cats))
	for i, c := range cats {
		s.categoryRank[c] = i
	}
}

// shuffleLevels gives round(ratio*N) records a session level different from
// their own, drawn from the levels present among the records.
func (s *Session) shuffleLevels(records []*cardRecord) {
	ratio := s.policy.ShuffleRatio
	if ratio <= 0 || len(records) == 0 {
		return
	}

	var levels []int
	for _, r := range records {
		if !slices.Contains(levels, r.level) {
			levels = append(levels, r.level)
		}
	}
	if len(levels) < 2 {
		return
	}
	slices.Sort(levels)

	n := min(int(math.Round(ratio*float64(len(records)))), len(records))
	for _, i := range s.rng.Perm(len(records))[:n] {
		r := records[i]
		own := slices.Index(levels, r.level)
		k := s.rng.IntN(len(levels) - 1)
		if k >= own {
			k++
		}
		r.level = levels[k]
	}
}

// decideFlip picks the side to show for card.
func (s *Session) decideFlip(card *lesson.Card) bool {
	switch s.policy.SidesMode {
	case domain.SidesModeFlipped:
		return true
	case domain.SidesModeRandom:
		return s.rng.IntN(2) == 1
	case domain.SidesModeBoth:
		needFront := max(0, s.policy.TestsRequired(false)-card.LearnedAmount(false))
		needBack := max(0, s.policy.TestsRequired(true)-card.LearnedAmount(true))
		if needFront+needBack == 0 {
			return false
		}
		return s.rng.IntN(needFront+needBack) >= needFront
	default:
		return false
	}
}
