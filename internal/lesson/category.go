// Package lesson is the in-memory card and category model: a tree of
// categories, each holding its cards in Leitner decks indexed by level.
// Every mutation is announced synchronously to the observers of the card's
// category and of all its ancestors.
package lesson

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category is a node of the lesson tree.
type Category struct {
	ID   uuid.UUID
	Name string

	parent    *Category
	children  []*Category
	decks     [][]*Card
	observers []Observer
}

// NewCategory creates a detached category, usually the lesson root.
func NewCategory(name string) *Category {
	return &Category{ID: uuid.New(), Name: name}
}

// AddChild appends a new child category.
func (c *Category) AddChild(name string) *Category {
	child := NewCategory(name)
	c.AttachChild(child)
	return child
}

// AttachChild appends an existing detached category as the last child.
func (c *Category) AttachChild(child *Category) {
	child.parent = c
	c.children = append(c.children, child)
}

// Parent returns the parent category, or nil for the root.
func (c *Category) Parent() *Category { return c.parent }

// Children returns the direct children in order.
func (c *Category) Children() []*Category { return slices.Clone(c.children) }

// Depth returns 0 for the root, 1 for its children, and so on.
func (c *Category) Depth() int {
	d := 0
	for p := c.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// Path returns the slash-separated names from the root down to c.
func (c *Category) Path() string {
	var names []string
	for p := c; p != nil; p = p.parent {
		names = append(names, p.Name)
	}
	slices.Reverse(names)
	return strings.Join(names, "/")
}

// Subtree returns c and all its descendants in pre-order.
func (c *Category) Subtree() []*Category {
	out := []*Category{c}
	for _, child := range c.children {
		out = append(out, child.Subtree()...)
	}
	return out
}

// Contains reports whether other is c or one of its descendants.
func (c *Category) Contains(other *Category) bool {
	for p := other; p != nil; p = p.parent {
		if p == c {
			return true
		}
	}
	return false
}

// DeckCount returns the number of decks, i.e. the highest level plus one.
func (c *Category) DeckCount() int { return len(c.decks) }

// Deck returns the cards of one level in natural order.
func (c *Category) Deck(level int) []*Card {
	if level < 0 || level >= len(c.decks) {
		return nil
	}
	return slices.Clone(c.decks[level])
}

// Cards returns the cards held directly by c, lowest deck first.
func (c *Category) Cards() []*Card {
	var out []*Card
	for _, deck := range c.decks {
		out = append(out, deck...)
	}
	return out
}

// AllCards returns the cards of the whole subtree.
func (c *Category) AllCards() []*Card {
	return c.collect(func(*Card) bool { return true })
}

// UnlearnedCards returns the level-0 cards of the subtree.
func (c *Category) UnlearnedCards() []*Card {
	return c.collect(func(card *Card) bool { return card.level == 0 })
}

// ExpiredCards returns the learned cards of the subtree that are due at now.
func (c *Category) ExpiredCards(now time.Time) []*Card {
	return c.collect(func(card *Card) bool { return card.IsExpired(now) })
}

// LearnedCards returns the cards of the subtree that are learned and not due.
func (c *Category) LearnedCards(now time.Time) []*Card {
	return c.collect(func(card *Card) bool { return card.IsLearned(now) })
}

func (c *Category) collect(keep func(*Card) bool) []*Card {
	var out []*Card
	for _, cat := range c.Subtree() {
		for _, card := range cat.Cards() {
			if keep(card) {
				out = append(out, card)
			}
		}
	}
	return out
}

// AddCard puts a detached card into c at the given level.
func (c *Category) AddCard(card *Card, level int) {
	if card.category != nil {
		panic(fmt.Sprintf("lesson: card %s already belongs to %q", card.ID, card.category.Path()))
	}
	card.category = c
	card.level = max(level, 0)
	c.appendToDeck(card)

	c.fire(Event{Type: EventAdded, Card: card, Category: c, Deck: card.level})
}

// RemoveCard detaches a card held anywhere in c's subtree. It returns false
// if the card is not in the subtree.
func (c *Category) RemoveCard(card *Card) bool {
	owner := card.category
	if owner == nil || !c.Contains(owner) {
		return false
	}
	owner.removeFromDeck(card)

	// Observers still see the owner; the card is detached afterwards.
	owner.fire(Event{Type: EventRemoved, Card: card, Category: owner, Deck: card.level})
	card.category = nil
	return true
}

// RaiseCardLevel moves a passed card one deck up and stamps its test and
// expiration dates.
func (c *Category) RaiseCardLevel(card *Card, testDate, expiration time.Time) {
	owner := c.owning(card)

	card.DateTested = &testDate
	card.DateTouched = testDate
	card.DateExpired = &expiration
	card.TestsTotal++
	card.TestsPassed++
	card.ResetLearnedAmounts()
	owner.moveToDeck(card, card.level+1)

	owner.fire(Event{Type: EventDeckChanged, Card: card, Category: owner, Deck: card.level})
}

// ResetCardLevel moves a failed card back to deck 0.
func (c *Category) ResetCardLevel(card *Card, testDate time.Time) {
	owner := c.owning(card)

	card.DateTested = &testDate
	card.DateTouched = testDate
	card.DateExpired = nil
	card.TestsTotal++
	card.ResetLearnedAmounts()
	owner.moveToDeck(card, 0)

	owner.fire(Event{Type: EventDeckChanged, Card: card, Category: owner, Deck: 0})
}

// ReappendCard moves a card to the end of its deck.
func (c *Category) ReappendCard(card *Card, now time.Time) {
	owner := c.owning(card)

	card.DateTouched = now
	owner.removeFromDeck(card)
	owner.appendToDeck(card)

	owner.fire(Event{Type: EventDeckChanged, Card: card, Category: owner, Deck: card.level})
}

// AddObserver registers o for events of c's subtree.
func (c *Category) AddObserver(o Observer) {
	c.observers = append(c.observers, o)
}

// RemoveObserver unregisters o.
func (c *Category) RemoveObserver(o Observer) {
	c.observers = slices.DeleteFunc(c.observers, func(x Observer) bool { return x == o })
}

// fire notifies the observers of c and of every ancestor.
func (c *Category) fire(e Event) {
	for p := c; p != nil; p = p.parent {
		for _, o := range slices.Clone(p.observers) {
			o.OnCardEvent(e)
		}
	}
}

func (c *Category) owning(card *Card) *Category {
	owner := card.category
	if owner == nil || !c.Contains(owner) {
		panic(fmt.Sprintf("lesson: card %s is not in category %q", card.ID, c.Path()))
	}
	return owner
}

func (c *Category) appendToDeck(card *Card) {
	for len(c.decks) <= card.level {
		c.decks = append(c.decks, nil)
	}
	c.decks[card.level] = append(c.decks[card.level], card)
}

func (c *Category) removeFromDeck(card *Card) {
	deck := c.decks[card.level]
	if i := slices.Index(deck, card); i >= 0 {
		c.decks[card.level] = slices.Delete(deck, i, i+1)
	}
}

func (c *Category) moveToDeck(card *Card, level int) {
	c.removeFromDeck(card)
	card.level = level
	c.appendToDeck(card)
}
