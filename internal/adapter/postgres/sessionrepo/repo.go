// Package sessionrepo stores the summaries of ended learning sessions.
// Queries are plain SQL constants; the table has no dynamic filters.
package sessionrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/leitner/internal/adapter/postgres"
	"github.com/heartmarshall/leitner/internal/domain"
	"github.com/heartmarshall/leitner/pkg/ctxutil"
)

// Repo provides session history persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a session repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const summaryColumns = `id, lesson_id, learner_id, started_at, ended_at,
checked, passed, failed, skipped, relearned, timed_out, created_at`

const createSQL = `
INSERT INTO learn_sessions (id, lesson_id, learner_id, started_at, ended_at,
    checked, passed, failed, skipped, relearned, timed_out, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING ` + summaryColumns

const listByLessonSQL = `
SELECT ` + summaryColumns + `
FROM learn_sessions
WHERE lesson_id = $1 AND learner_id = $2
ORDER BY started_at DESC
LIMIT $3`

const totalsByLessonSQL = `
SELECT count(*), coalesce(sum(passed), 0), coalesce(sum(failed), 0)
FROM learn_sessions
WHERE lesson_id = $1 AND learner_id = $2`

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create stores the summary for the learner found in ctx.
func (r *Repo) Create(ctx context.Context, s domain.SessionSummary) (domain.SessionSummary, error) {
	learnerID, ok := ctxutil.LearnerIDFromCtx(ctx)
	if !ok {
		return domain.SessionSummary{}, domain.NewValidationError("learner_id", "missing from context")
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	row := q.QueryRow(ctx, createSQL,
		s.ID,
		s.LessonID,
		learnerID,
		s.StartedAt.UTC().Truncate(time.Microsecond),
		s.EndedAt.UTC().Truncate(time.Microsecond),
		s.Checked,
		s.Passed,
		s.Failed,
		s.Skipped,
		s.Relearned,
		s.TimedOut,
		time.Now().UTC().Truncate(time.Microsecond),
	)

	created, err := scanSummary(row)
	if err != nil {
		return domain.SessionSummary{}, postgres.MapError(err, "session", s.ID)
	}
	return created, nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// ListByLesson returns the learner's most recent sessions of a lesson,
// newest first.
func (r *Repo) ListByLesson(ctx context.Context, lessonID uuid.UUID, limit int) ([]domain.SessionSummary, error) {
	learnerID, ok := ctxutil.LearnerIDFromCtx(ctx)
	if !ok {
		return nil, domain.NewValidationError("learner_id", "missing from context")
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, listByLessonSQL, lessonID, learnerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions by lesson: %w", err)
	}
	defer rows.Close()

	out := []domain.SessionSummary{}
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("list sessions by lesson: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions by lesson: %w", err)
	}
	return out, nil
}

// Totals aggregates the learner's history of one lesson.
type Totals struct {
	Sessions int
	Passed   int
	Failed   int
}

// TotalsByLesson sums passed and failed counts over all sessions.
func (r *Repo) TotalsByLesson(ctx context.Context, lessonID uuid.UUID) (Totals, error) {
	learnerID, ok := ctxutil.LearnerIDFromCtx(ctx)
	if !ok {
		return Totals{}, domain.NewValidationError("learner_id", "missing from context")
	}

	var t Totals
	err := postgres.QuerierFromCtx(ctx, r.pool).
		QueryRow(ctx, totalsByLessonSQL, lessonID, learnerID).
		Scan(&t.Sessions, &t.Passed, &t.Failed)
	if err != nil {
		return Totals{}, fmt.Errorf("session totals: %w", err)
	}
	return t, nil
}

// ---------------------------------------------------------------------------
// Row scanning
// ---------------------------------------------------------------------------

func scanSummary(row pgx.Row) (domain.SessionSummary, error) {
	var s domain.SessionSummary
	err := row.Scan(
		&s.ID, &s.LessonID, &s.LearnerID, &s.StartedAt, &s.EndedAt,
		&s.Checked, &s.Passed, &s.Failed, &s.Skipped, &s.Relearned, &s.TimedOut, &s.CreatedAt,
	)
	return s, err
}
