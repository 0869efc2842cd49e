package learning

import (
	"slices"

	"github.com/heartmarshall/leitner/internal/domain"
	"github.com/heartmarshall/leitner/internal/lesson"
)

// OnCardEvent keeps the session in sync with the model. It is called
// synchronously by the model, possibly while CardChecked or CardSkipped is
// still running.
func (s *Session) OnCardEvent(e lesson.Event) {
	if s.status != domain.SessionStatusLearning {
		return
	}

	switch e.Type {
	case lesson.EventAdded:
		s.cardAdded(e.Card)
	case lesson.EventRemoved:
		s.cardRemoved(e.Card)
	case lesson.EventDeckChanged:
		if s.isCurrent(e.Card) {
			s.pending = nil
			s.gotoNextCard()
		}
	}
}

func (s *Session) isCurrent(card *lesson.Card) bool {
	return s.current != nil && s.current.card == card
}

func (s *Session) cardAdded(card *lesson.Card) {
	if _, ok := s.records[card]; ok {
		return
	}
	rec := &cardRecord{card: card, level: card.Level()}
	s.records[card] = rec

	if s.policy.CardLimitEnabled() && s.active.Len() >= s.policy.CardLimit {
		s.reserve.Add(rec)
		return
	}
	s.active.Add(rec)
}

func (s *Session) cardRemoved(card *lesson.Card) {
	if rec, ok := s.records[card]; ok {
		s.active.Remove(rec)
		s.reserve.Remove(rec)
		delete(s.records, card)
	}
	s.learned.Remove(card)
	s.everFailed.Remove(card)
	s.skipped.Remove(card)
	s.partial.Remove(card)
	s.history = slices.DeleteFunc(s.history, func(c *lesson.Card) bool { return c == card })

	if s.isCurrent(card) {
		s.current = nil
		s.gotoNextCard()
	}
}
