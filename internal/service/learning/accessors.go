package learning

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/leitner/internal/domain"
	"github.com/heartmarshall/leitner/internal/lesson"
)

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// Status returns the lifecycle state.
func (s *Session) Status() domain.SessionStatus { return s.status }

// StartTime returns when Start was called; it is also the reference time for
// every level change made by the session.
func (s *Session) StartTime() time.Time { return s.start }

// EndTime returns when the session ended, or the zero time.
func (s *Session) EndTime() time.Time { return s.end }

// TimedOut reports whether OnTimer fired.
func (s *Session) TimedOut() bool { return s.timedOut.Load() }

// Current returns the card being shown and whether it is shown back side up.
// card is nil when no card is shown.
func (s *Session) Current() (card *lesson.Card, flipped bool) {
	if s.current == nil {
		return nil, false
	}
	return s.current.card, s.flipped
}

// CardsLeft returns how many cards may still be shown.
func (s *Session) CardsLeft() int {
	left := s.active.Len() + s.reserve.Len()
	if s.policy.CardLimitEnabled() {
		left = min(left, max(0, s.policy.CardLimit-s.learned.Len()))
	}
	return left
}

// Checked returns every card shown so far, most recently shown last.
func (s *Session) Checked() []*lesson.Card {
	out := make([]*lesson.Card, len(s.history))
	copy(out, s.history)
	return out
}

// Active returns the cards still eligible for presentation in sorted order.
func (s *Session) Active() []*lesson.Card { return cardsOf(s.active.Slice()) }

// Reserve returns the cards held back by the card limit.
func (s *Session) Reserve() []*lesson.Card { return cardsOf(s.reserve.Slice()) }

// Learned returns the cards whose level was raised in this session.
func (s *Session) Learned() []*lesson.Card { return s.learned.Slice() }

// Passed returns the learned cards that never failed in this session.
func (s *Session) Passed() []*lesson.Card {
	return s.learned.filter(func(c *lesson.Card) bool { return !s.everFailed.Contains(c) })
}

// Failed returns the cards that failed and were not learned afterwards.
func (s *Session) Failed() []*lesson.Card {
	return s.everFailed.filter(func(c *lesson.Card) bool { return !s.learned.Contains(c) })
}

// Relearned returns the cards that failed and were then learned.
func (s *Session) Relearned() []*lesson.Card {
	return s.learned.filter(s.everFailed.Contains)
}

// Skipped returns the cards skipped and not checked since.
func (s *Session) Skipped() []*lesson.Card { return s.skipped.Slice() }

// PartiallyLearned returns the active cards with one side passed often
// enough but not the other.
func (s *Session) PartiallyLearned() []*lesson.Card { return s.partial.Slice() }

// Summary returns the counters of the session for persistence.
func (s *Session) Summary() domain.SessionSummary {
	return domain.SessionSummary{
		ID:        s.id,
		LessonID:  s.lessonID,
		StartedAt: s.start,
		EndedAt:   s.end,
		Checked:   s.checks,
		Passed:    len(s.Passed()),
		Failed:    len(s.Failed()),
		Skipped:   s.skipped.Len(),
		Relearned: len(s.Relearned()),
		TimedOut:  s.timedOut.Load(),
	}
}

func cardsOf(records []*cardRecord) []*lesson.Card {
	out := make([]*lesson.Card, len(records))
	for i, r := range records {
		out[i] = r.card
	}
	return out
}
