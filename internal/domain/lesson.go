package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Lesson is a named card collection. Its cards live in a category tree whose
// root is RootCategoryID.
type Lesson struct {
	ID             uuid.UUID
	Name           string
	RootCategoryID uuid.UUID
	CreatedAt      time.Time
}

// Validate checks the fields a lesson needs before it is stored.
func (l Lesson) Validate() error {
	var verr ValidationError
	if l.ID == uuid.Nil {
		verr.Add("id", "required")
	}
	if strings.TrimSpace(l.Name) == "" {
		verr.Add("name", "required")
	}
	return verr.OrNil()
}
