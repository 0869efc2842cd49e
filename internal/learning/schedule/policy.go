// Package schedule holds the configuration of a learning session and the
// Leitner expiration arithmetic derived from it.
package schedule

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/leitner/internal/config"
	"github.com/heartmarshall/leitner/internal/domain"
)

// TimeOfDay is a wall-clock time used as a fixed daily due time.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) String() string { return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute) }

// Policy is the complete, immutable configuration of a learning session.
type Policy struct {
	Table Table
	// FixedDueTime, when set, pins every expiration to this time of day.
	FixedDueTime *TimeOfDay

	TestsFront int
	TestsBack  int

	CardLimit int           // 0 disables the limit
	TimeLimit time.Duration // 0 disables the limit

	ShuffleRatio    float64
	GroupByCategory bool
	CategoryOrder   domain.CategoryOrder
	RetestFailed    bool
	SidesMode       domain.SidesMode

	// LearnUnlearned and LearnExpired select cards automatically; when either
	// is set an explicit card selection is ignored.
	LearnUnlearned bool
	LearnExpired   bool
}

// Default returns the linear schedule with one test per side and no limits.
func Default() Policy {
	t, _ := PresetTable(PresetLinear)
	return Policy{
		Table:         t,
		TestsFront:    1,
		TestsBack:     1,
		CategoryOrder: domain.CategoryOrderFixed,
		RetestFailed:  true,
		SidesMode:     domain.SidesModeNormal,
	}
}

// FromConfig builds a Policy from validated configuration.
func FromConfig(log *slog.Logger, cfg config.LearningConfig) Policy {
	log = log.With("component", "schedule")

	p := Policy{
		Table:           Resolve(log, cfg.SchedulePreset, cfg.CustomSchedule),
		TestsFront:      cfg.TestsFront,
		TestsBack:       cfg.TestsBack,
		CardLimit:       cfg.CardLimit,
		TimeLimit:       cfg.TimeLimit,
		ShuffleRatio:    cfg.ShuffleRatio,
		GroupByCategory: cfg.GroupByCategory,
		CategoryOrder:   cfg.Order,
		RetestFailed:    cfg.RetestFailedCards,
		SidesMode:       cfg.Sides,
		LearnUnlearned:  cfg.LearnUnlearned,
		LearnExpired:    cfg.LearnExpired,
	}
	if cfg.FixedDue != nil {
		p.FixedDueTime = &TimeOfDay{Hour: cfg.FixedDue.Hour, Minute: cfg.FixedDue.Minute}
	}
	return p
}

// CardLimitEnabled reports whether the session stops after CardLimit learned cards.
func (p Policy) CardLimitEnabled() bool { return p.CardLimit > 0 }

// TimeLimitEnabled reports whether the session is bounded by TimeLimit.
func (p Policy) TimeLimitEnabled() bool { return p.TimeLimit > 0 }

// Delay returns the schedule delay for a card at the given level.
func (p Policy) Delay(level int) time.Duration {
	level = min(max(level, 0), Levels-1)
	return time.Duration(p.Table[level]) * time.Minute
}

// ExpirationDate returns when a card learned at learnDate with currentLevel
// becomes due again. With a fixed due time the result is moved to that time
// of day, rolling to the next day when the raw date is at or past it.
func (p Policy) ExpirationDate(learnDate time.Time, currentLevel int) time.Time {
	date := learnDate.Add(p.Delay(currentLevel))
	if p.FixedDueTime == nil {
		return date
	}

	y, m, d := date.Date()
	fixed := time.Date(y, m, d, p.FixedDueTime.Hour, p.FixedDueTime.Minute, 0, 0, date.Location())
	if !date.Before(fixed) {
		fixed = time.Date(y, m, d+1, p.FixedDueTime.Hour, p.FixedDueTime.Minute, 0, 0, date.Location())
	}
	return fixed
}

// TestsRequired returns the number of passes needed for one side.
func (p Policy) TestsRequired(flipped bool) int {
	if flipped {
		return p.TestsBack
	}
	return p.TestsFront
}
