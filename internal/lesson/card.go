package lesson

import (
	"time"

	"github.com/google/uuid"
)

// Card is a two-sided flashcard. Its level is the index of the deck it sits
// in; level 0 means unlearned.
type Card struct {
	ID    uuid.UUID
	Front string
	Back  string

	DateCreated time.Time
	DateTested  *time.Time
	DateExpired *time.Time
	DateTouched time.Time

	TestsTotal  int
	TestsPassed int

	level        int
	category     *Category
	learnedFront int
	learnedBack  int
}

// NewCard creates an unattached card.
func NewCard(front, back string, created time.Time) *Card {
	return &Card{
		ID:          uuid.New(),
		Front:       front,
		Back:        back,
		DateCreated: created,
		DateTouched: created,
	}
}

// Level returns the card's current level.
func (c *Card) Level() int { return c.level }

// Category returns the category that holds the card, or nil if detached.
func (c *Card) Category() *Category { return c.category }

// LearnedAmount returns how often the given side was answered correctly since
// the last level change. flipped selects the back side.
func (c *Card) LearnedAmount(flipped bool) int {
	if flipped {
		return c.learnedBack
	}
	return c.learnedFront
}

// IncrementLearnedAmount records one correct answer for a side.
func (c *Card) IncrementLearnedAmount(flipped bool) {
	if flipped {
		c.learnedBack++
	} else {
		c.learnedFront++
	}
}

// SetLearnedAmounts restores both side counters, e.g. when loading from storage.
func (c *Card) SetLearnedAmounts(front, back int) {
	c.learnedFront = front
	c.learnedBack = back
}

// ResetLearnedAmounts clears both side counters.
func (c *Card) ResetLearnedAmounts() {
	c.learnedFront = 0
	c.learnedBack = 0
}

// IsExpired reports whether a learned card is due again at now.
func (c *Card) IsExpired(now time.Time) bool {
	return c.level > 0 && c.DateExpired != nil && !c.DateExpired.After(now)
}

// IsLearned reports whether the card has a level and is not yet due.
func (c *Card) IsLearned(now time.Time) bool {
	return c.level > 0 && !c.IsExpired(now)
}
