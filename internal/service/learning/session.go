// Package learning runs Leitner learning sessions over a card/category model.
//
// A Session is single-threaded: the model calls back into it synchronously
// (OnCardEvent) while a check or skip is still on the stack, and the session
// advances to the next card from inside that callback. Only OnTimer may be
// called from another goroutine.
package learning

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/leitner/internal/domain"
	"github.com/heartmarshall/leitner/internal/learning/partition"
	"github.com/heartmarshall/leitner/internal/learning/schedule"
	"github.com/heartmarshall/leitner/internal/lesson"
)

// Contract violations. They are raised as panics, never returned.
var (
	ErrAlreadyStarted = errors.New("learning: session already started")
	ErrNoCurrentCard  = errors.New("learning: no current card")
	ErrSessionEnded   = errors.New("learning: session ended")
	ErrInvariant      = errors.New("learning: invariant violated")
)

// cardModel is the part of the lesson model a session needs, scoped to the
// category being learned.
type cardModel interface {
	AllCards() []*lesson.Card
	UnlearnedCards() []*lesson.Card
	ExpiredCards(now time.Time) []*lesson.Card
	Subtree() []*lesson.Category

	RaiseCardLevel(card *lesson.Card, testDate, expiration time.Time)
	ResetCardLevel(card *lesson.Card, testDate time.Time)
	ReappendCard(card *lesson.Card, now time.Time)

	AddObserver(o lesson.Observer)
	RemoveObserver(o lesson.Observer)
}

// endHandler is notified once when a session ends.
type endHandler interface {
	SessionEnded(s *Session)
}

// Listener is told about every card the session presents.
type Listener interface {
	NextCardFetched(card *lesson.Card, flipped bool)
}

// Options are per-session inputs that are not part of the schedule policy.
type Options struct {
	LessonID uuid.UUID
	// Selected is used when neither unlearned nor expired cards are
	// selected automatically.
	Selected []*lesson.Card
	// Rand drives every random decision; nil means randomly seeded.
	Rand *rand.Rand
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// Session is one pass of learning over a category subtree.
type Session struct {
	id       uuid.UUID
	lessonID uuid.UUID
	log      *slog.Logger
	model    cardModel
	policy   schedule.Policy
	rng      *rand.Rand
	clock    func() time.Time
	owner    endHandler
	selected []*lesson.Card

	status domain.SessionStatus
	start  time.Time
	end    time.Time

	records      map[*lesson.Card]*cardRecord
	categoryRank map[*lesson.Category]int
	active       *partition.Set[*cardRecord]
	reserve      *partition.Set[*cardRecord]
	loop         *partition.Loop[*cardRecord]
	learned      *cardSet
	everFailed   *cardSet
	skipped      *cardSet
	partial      *cardSet
	history      []*lesson.Card

	current *cardRecord
	flipped bool
	checks  int

	// pending is the card whose check or skip waits for its DECK event.
	pending *lesson.Card
	depth   int
	stopped bool

	timedOut atomic.Bool

	listeners []Listener
}

// NewSession creates a session in the CREATED state. owner may be nil.
func NewSession(log *slog.Logger, model cardModel, policy schedule.Policy, opts Options, owner endHandler) *Session {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	s := &Session{
		id:         uuid.New(),
		lessonID:   opts.LessonID,
		log:        log.With("service", "learning"),
		model:      model,
		policy:     policy,
		rng:        rng,
		clock:      clock,
		owner:      owner,
		selected:   opts.Selected,
		status:     domain.SessionStatusCreated,
		records:    make(map[*lesson.Card]*cardRecord),
		learned:    newCardSet(),
		everFailed: newCardSet(),
		skipped:    newCardSet(),
		partial:    newCardSet(),
	}
	s.active = partition.New(s.compareRecords, rng)
	s.reserve = partition.New(s.compareRecords, rng)
	return s
}

// Start fetches the cards, applies the card limit and shows the first card.
// It panics with ErrAlreadyStarted when called twice.
func (s *Session) Start() {
	if s.status != domain.SessionStatusCreated {
		panic(ErrAlreadyStarted)
	}
	s.status = domain.SessionStatusLearning
	s.start = s.clock()

	s.rankCategories()
	cards := s.fetchCards()
	records := make([]*cardRecord, len(cards))
	for i, c := range cards {
		records[i] = &cardRecord{card: c, level: c.Level()}
		s.records[c] = records[i]
	}
	s.shuffleLevels(records)
	for _, r := range records {
		s.active.Add(r)
	}

	if s.policy.CardLimitEnabled() && s.active.Len() > s.policy.CardLimit {
		s.reserve = s.active
		s.active = s.reserve.Partition(s.policy.CardLimit)
	}
	s.loop = s.active.Loop()
	s.model.AddObserver(s)

	s.log.Info("session started",
		slog.String("session_id", s.id.String()),
		slog.Int("active", s.active.Len()),
		slog.Int("reserve", s.reserve.Len()),
		slog.String("sides", s.policy.SidesMode.String()),
	)

	s.depth++
	defer func() { s.depth-- }()
	s.gotoNextCard()
}

// End stops the session for good and notifies the owner. Ending an ended
// session is a no-op.
func (s *Session) End() {
	if s.status == domain.SessionStatusEnded {
		return
	}
	wasLearning := s.status == domain.SessionStatusLearning
	s.status = domain.SessionStatusEnded
	s.end = s.clock()
	s.current = nil
	s.pending = nil

	if wasLearning {
		s.loop.Close()
		s.model.RemoveObserver(s)
	}

	s.log.Info("session ended",
		slog.String("session_id", s.id.String()),
		slog.Int("passed", len(s.Passed())),
		slog.Int("failed", len(s.Failed())),
		slog.Int("skipped", s.skipped.Len()),
		slog.Int("relearned", len(s.Relearned())),
		slog.Bool("timed_out", s.timedOut.Load()),
	)

	if s.owner != nil {
		s.owner.SessionEnded(s)
	}
}

// OnTimer marks the time limit as reached. The session ends at its next
// advance; a step in progress is not interrupted. Safe for concurrent use.
func (s *Session) OnTimer() {
	s.timedOut.Store(true)
}

// Stop asks the session to end. Outside of a check or skip it ends at once.
func (s *Session) Stop() {
	s.stopped = true
	if s.status == domain.SessionStatusLearning && s.depth == 0 {
		s.End()
	}
}

// CardChecked records the answer for the current card.
func (s *Session) CardChecked(passed, shownFlipped bool) {
	rec := s.requireCurrent()
	card := rec.card

	s.depth++
	defer func() { s.depth-- }()

	s.checks++
	s.skipped.Remove(card)
	s.partial.Remove(card)
	s.log.Debug("card checked",
		slog.String("card_id", card.ID.String()),
		slog.Bool("passed", passed),
		slog.Bool("flipped", shownFlipped),
	)

	if passed {
		if s.policy.SidesMode == domain.SidesModeBoth {
			card.IncrementLearnedAmount(shownFlipped)
			if card.LearnedAmount(false) < s.policy.TestsRequired(false) || card.LearnedAmount(true) < s.policy.TestsRequired(true) {
				s.partial.Add(card)
				s.gotoNextCard()
				return
			}
		}

		s.active.Remove(rec)
		s.learned.Add(card)
		expiration := s.policy.ExpirationDate(s.start, card.Level())
		s.settle(card, func() { s.model.RaiseCardLevel(card, s.start, expiration) })
		return
	}

	if !s.policy.RetestFailed {
		s.active.Remove(rec)
	}
	if card.Level() > 0 {
		s.everFailed.Add(card)
	}
	rec.level = 0
	s.active.ResetEquivalenceClass(rec)
	s.settle(card, func() { s.model.ResetCardLevel(card, s.start) })
}

// CardSkipped postpones the current card. With a non-empty reserve the card
// is swapped for one reserve card so the active pool keeps its size.
func (s *Session) CardSkipped() {
	rec := s.requireCurrent()
	card := rec.card

	s.depth++
	defer func() { s.depth-- }()

	s.skipped.Add(card)
	s.log.Debug("card skipped", slog.String("card_id", card.ID.String()))

	if s.reserve.Len() > 0 {
		for r := range s.reserve.Partition(1).All() {
			s.active.Add(r)
			if r.card.LearnedAmount(false) > 0 || r.card.LearnedAmount(true) > 0 {
				s.partial.Add(r.card)
			}
		}
		s.active.Remove(rec)
		s.reserve.AddExpired(rec)
		s.partial.Remove(card)
	}

	s.settle(card, func() { s.model.ReappendCard(card, s.clock()) })
}

// settle runs a model mutation that should announce itself with a DECK
// event for card; the event handler advances. If no event arrived the
// session advances here, so every settling step advances exactly once.
func (s *Session) settle(card *lesson.Card, mutate func()) {
	s.pending = card
	mutate()
	if s.pending == card {
		s.pending = nil
		s.gotoNextCard()
	}
}

func (s *Session) requireCurrent() *cardRecord {
	if s.status == domain.SessionStatusEnded {
		panic(ErrSessionEnded)
	}
	rec := s.current
	if rec == nil {
		panic(ErrNoCurrentCard)
	}
	if !s.active.Contains(rec) || s.reserve.Contains(rec) || s.learned.Contains(rec.card) {
		panic(fmt.Errorf("%w: current card %s is not active", ErrInvariant, rec.card.ID))
	}
	return rec
}

func (s *Session) quitting() bool {
	return s.active.Len() == 0 ||
		(s.policy.CardLimitEnabled() && s.learned.Len() >= s.policy.CardLimit) ||
		s.timedOut.Load() ||
		s.stopped
}

func (s *Session) gotoNextCard() {
	if s.status != domain.SessionStatusLearning {
		return
	}
	if s.quitting() {
		s.End()
		return
	}

	prev := s.current
	next := s.loop.Next()
	if next == prev && s.active.Len() > 1 {
		next = s.loop.Next()
	}
	s.current = next

	card := next.card
	s.history = slices.DeleteFunc(s.history, func(c *lesson.Card) bool { return c == card })
	s.history = append(s.history, card)
	s.flipped = s.decideFlip(card)

	for _, l := range slices.Clone(s.listeners) {
		l.NextCardFetched(card, s.flipped)
	}
}

// AddListener registers l for next-card notifications.
func (s *Session) AddListener(l Listener) {
	s.listeners = append(s.listeners, l)
}

// RemoveListener unregisters l.
func (s *Session) RemoveListener(l Listener) {
	s.listeners = slices.DeleteFunc(s.listeners, func(x Listener) bool { return x == l })
}
