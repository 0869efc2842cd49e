package learning

import (
	"cmp"
	"slices"

	"github.com/heartmarshall/leitner/internal/lesson"
)

// cardRecord wraps a card for the duration of a session. level is the
// session-local level and only matches the card's level right after fetch,
// unless the shuffle ratio moved it.
type cardRecord struct {
	card  *lesson.Card
	level int
}

// compareRecords orders records by session level, then by category rank when
// grouping is on. Cards without a ranked category sort last.
func (s *Session) compareRecords(a, b *cardRecord) int {
	if c := cmp.Compare(a.level, b.level); c != 0 {
		return c
	}
	if !s.policy.GroupByCategory {
		return 0
	}
	return cmp.Compare(s.rankOf(a.card), s.rankOf(b.card))
}

func (s *Session) rankOf(card *lesson.Card) int {
	if r, ok := s.categoryRank[card.Category()]; ok {
		return r
	}
	return len(s.categoryRank)
}

// cardSet is an insertion-ordered set of cards.
type cardSet struct {
	members map[*lesson.Card]struct{}
	order   []*lesson.Card
}

func newCardSet() *cardSet {
	return &cardSet{members: make(map[*lesson.Card]struct{})}
}

func (cs *cardSet) Add(c *lesson.Card) {
	if _, ok := cs.members[c]; ok {
		return
	}
	cs.members[c] = struct{}{}
	cs.order = append(cs.order, c)
}

func (cs *cardSet) Remove(c *lesson.Card) {
	if _, ok := cs.members[c]; !ok {
		return
	}
	delete(cs.members, c)
	cs.order = slices.DeleteFunc(cs.order, func(x *lesson.Card) bool { return x == c })
}

func (cs *cardSet) Contains(c *lesson.Card) bool {
	_, ok := cs.members[c]
	return ok
}

func (cs *cardSet) Len() int { return len(cs.order) }

func (cs *cardSet) Slice() []*lesson.Card { return slices.Clone(cs.order) }

// filter returns the members of cs for which keep holds, in insertion order.
func (cs *cardSet) filter(keep func(*lesson.Card) bool) []*lesson.Card {
	var out []*lesson.Card
	for _, c := range cs.order {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}
