package domain

import "strings"

// SidesMode controls which side of a card is shown first.
type SidesMode string

const (
	SidesModeNormal  SidesMode = "NORMAL"
	SidesModeFlipped SidesMode = "FLIPPED"
	SidesModeRandom  SidesMode = "RANDOM"
	SidesModeBoth    SidesMode = "BOTH"
)

func (m SidesMode) String() string { return string(m) }

func (m SidesMode) IsValid() bool {
	switch m {
	case SidesModeNormal, SidesModeFlipped, SidesModeRandom, SidesModeBoth:
		return true
	}
	return false
}

// ParseSidesMode accepts the mode name in any case.
func ParseSidesMode(s string) (SidesMode, bool) {
	m := SidesMode(strings.ToUpper(strings.TrimSpace(s)))
	return m, m.IsValid()
}

// CategoryOrder controls how categories are ranked when cards are grouped by category.
type CategoryOrder string

const (
	CategoryOrderFixed  CategoryOrder = "FIXED"
	CategoryOrderRandom CategoryOrder = "RANDOM"
)

func (o CategoryOrder) String() string { return string(o) }

func (o CategoryOrder) IsValid() bool {
	switch o {
	case CategoryOrderFixed, CategoryOrderRandom:
		return true
	}
	return false
}

// ParseCategoryOrder accepts the order name in any case.
func ParseCategoryOrder(s string) (CategoryOrder, bool) {
	o := CategoryOrder(strings.ToUpper(strings.TrimSpace(s)))
	return o, o.IsValid()
}

// SessionStatus represents the lifecycle state of a learning session.
type SessionStatus string

const (
	SessionStatusCreated  SessionStatus = "CREATED"
	SessionStatusLearning SessionStatus = "LEARNING"
	SessionStatusEnded    SessionStatus = "ENDED"
)

func (s SessionStatus) String() string { return string(s) }

func (s SessionStatus) IsValid() bool {
	switch s {
	case SessionStatusCreated, SessionStatusLearning, SessionStatusEnded:
		return true
	}
	return false
}
