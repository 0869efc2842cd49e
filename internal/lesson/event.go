package lesson

// EventType identifies a card mutation.
type EventType int

const (
	EventAdded EventType = iota + 1
	EventRemoved
	// EventDeckChanged covers level changes, expiration changes and reordering
	// within a deck.
	EventDeckChanged
)

func (t EventType) String() string {
	switch t {
	case EventAdded:
		return "ADDED"
	case EventRemoved:
		return "REMOVED"
	case EventDeckChanged:
		return "DECK_CHANGED"
	}
	return "UNKNOWN"
}

// Event describes a mutation of one card.
type Event struct {
	Type     EventType
	Card     *Card
	Category *Category
	Deck     int
}

// Observer receives card events. Events are delivered synchronously, before
// the mutating call returns, so observers may re-enter the model.
type Observer interface {
	OnCardEvent(e Event)
}
