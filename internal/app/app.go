// Package app wires configuration, logging, storage and the learning engine
// into the terminal learning command.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/leitner/internal/adapter/postgres"
	"github.com/heartmarshall/leitner/internal/adapter/postgres/lessonrepo"
	"github.com/heartmarshall/leitner/internal/adapter/postgres/sessionrepo"
	"github.com/heartmarshall/leitner/internal/config"
	"github.com/heartmarshall/leitner/internal/domain"
	"github.com/heartmarshall/leitner/internal/learning/schedule"
	"github.com/heartmarshall/leitner/internal/service/learning"
	"github.com/heartmarshall/leitner/pkg/ctxutil"
)

// recentSessions is how many past sessions the final report lists.
const recentSessions = 5

// Params selects what Run learns and where it talks to the learner.
type Params struct {
	LessonID  uuid.UUID
	LearnerID uuid.UUID
	In        io.Reader
	Out       io.Writer
}

// Run loads the lesson, runs one learning session on p.In and p.Out, and
// stores the updated cards together with the session summary.
func Run(ctx context.Context, p Params) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	ctx = ctxutil.WithLearnerID(ctx, p.LearnerID)
	ctx = ctxutil.WithRequestID(ctx, uuid.NewString())

	logger.Info("starting leitner",
		slog.String("version", BuildVersion()),
		slog.String("lesson_id", p.LessonID.String()),
		slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
	)

	pool, err := postgres.NewPool(ctx, logger, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	lessons := lessonrepo.New(pool)
	sessions := sessionrepo.New(pool)
	txm := postgres.NewTxManager(pool)

	l, root, err := lessons.Load(ctx, p.LessonID)
	if err != nil {
		return fmt.Errorf("load lesson: %w", err)
	}

	policy := schedule.FromConfig(logger, cfg.Learning)
	opts := learning.Options{LessonID: l.ID}
	if seed := cfg.Learning.Seed; seed != 0 {
		opts.Rand = rand.New(rand.NewPCG(seed, seed))
	}

	registry := learning.NewRegistry(logger)
	registry.OnSessionEnded(func(sum domain.SessionSummary) {
		if sum.TimedOut {
			fmt.Fprintln(p.Out, "time is up")
		}
	})

	s, err := registry.Start(root, policy, opts)
	if err != nil {
		return err
	}
	if registry.Current() == nil {
		fmt.Fprintf(p.Out, "%s: nothing to learn, %d cards learned and not due\n", l.Name, len(root.LearnedCards(time.Now())))
		return nil
	}
	if policy.TimeLimitEnabled() {
		timer := time.AfterFunc(policy.TimeLimit, s.OnTimer)
		defer timer.Stop()
	}

	fmt.Fprintf(p.Out, "%s: %d cards to learn, %d learned and not due\n",
		l.Name, s.CardsLeft(), len(root.LearnedCards(s.StartTime())))
	if err := drive(s, p.In, p.Out); err != nil {
		return fmt.Errorf("read answers: %w", err)
	}

	ended := registry.Summaries()
	if len(ended) == 0 {
		return fmt.Errorf("session %s: not ended after input", s.ID())
	}
	summary := ended[len(ended)-1]
	if summary.Checked == 0 && summary.Skipped == 0 {
		fmt.Fprintln(p.Out, "nothing learned, nothing saved")
		return nil
	}

	err = txm.RunInTx(ctx, func(ctx context.Context) error {
		if err := lessons.SaveCards(ctx, root.AllCards()); err != nil {
			return err
		}
		_, err := sessions.Create(ctx, summary)
		return err
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	totals, err := sessions.TotalsByLesson(ctx, l.ID)
	if err != nil {
		return err
	}
	recent, err := sessions.ListByLesson(ctx, l.ID, recentSessions)
	if err != nil {
		return err
	}
	printSummary(p.Out, summary, totals, recent)
	return nil
}
