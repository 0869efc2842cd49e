package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/leitner/internal/domain"
)

// SeedLesson inserts a lesson with an empty root category.
func SeedLesson(t *testing.T, pool *pgxpool.Pool) domain.Lesson {
	t.Helper()
	ctx := context.Background()

	l := domain.Lesson{
		ID:             uuid.New(),
		Name:           "lesson-" + uuid.NewString()[:8],
		RootCategoryID: uuid.New(),
		CreatedAt:      time.Now().UTC().Truncate(time.Microsecond),
	}

	if _, err := pool.Exec(ctx,
		`INSERT INTO lessons (id, name, created_at) VALUES ($1, $2, $3)`,
		l.ID, l.Name, l.CreatedAt,
	); err != nil {
		t.Fatalf("testhelper: SeedLesson insert lesson: %v", err)
	}

	if _, err := pool.Exec(ctx,
		`INSERT INTO categories (id, lesson_id, parent_id, name, position) VALUES ($1, $2, NULL, $3, 0)`,
		l.RootCategoryID, l.ID, l.Name,
	); err != nil {
		t.Fatalf("testhelper: SeedLesson insert root category: %v", err)
	}

	return l
}

// SeedCategory inserts a child category under parentID.
func SeedCategory(t *testing.T, pool *pgxpool.Pool, lessonID, parentID uuid.UUID, name string, position int) uuid.UUID {
	t.Helper()

	id := uuid.New()
	if _, err := pool.Exec(context.Background(),
		`INSERT INTO categories (id, lesson_id, parent_id, name, position) VALUES ($1, $2, $3, $4, $5)`,
		id, lessonID, parentID, name, position,
	); err != nil {
		t.Fatalf("testhelper: SeedCategory: %v", err)
	}
	return id
}

// SeedCard inserts a card at the given level. Cards above level 0 are due
// one hour ago.
func SeedCard(t *testing.T, pool *pgxpool.Pool, categoryID uuid.UUID, front string, level, position int) uuid.UUID {
	t.Helper()

	id := uuid.New()
	now := time.Now().UTC().Truncate(time.Microsecond)
	var expired *time.Time
	if level > 0 {
		due := now.Add(-time.Hour)
		expired = &due
	}

	if _, err := pool.Exec(context.Background(),
		`INSERT INTO cards (id, category_id, front, back, level, position, date_created, date_expired, date_touched)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $7)`,
		id, categoryID, front, front+" (back)", level, position, now, expired,
	); err != nil {
		t.Fatalf("testhelper: SeedCard: %v", err)
	}
	return id
}
