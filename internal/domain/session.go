package domain

import (
	"time"

	"github.com/google/uuid"
)

// SessionSummary is the persisted outcome of one learning session.
type SessionSummary struct {
	ID        uuid.UUID
	LessonID  uuid.UUID
	LearnerID uuid.UUID
	StartedAt time.Time
	EndedAt   time.Time
	Checked   int
	Passed    int
	Failed    int
	Skipped   int
	Relearned int
	TimedOut  bool
	CreatedAt time.Time
}

// Duration returns how long the session ran.
func (s SessionSummary) Duration() time.Duration {
	return s.EndedAt.Sub(s.StartedAt)
}
