package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/heartmarshall/leitner/internal/domain"
)

// ScheduleLevels is the number of entries a custom schedule must have.
const ScheduleLevels = 10

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
	}

	if err := c.Learning.validate(); err != nil {
		return fmt.Errorf("learning: %w", err)
	}

	return nil
}

// validate checks the learning settings and fills the parsed fields.
// An out-of-range schedule preset is deliberately accepted here: the
// schedule policy substitutes the linear preset and logs it.
func (l *LearningConfig) validate() error {
	var verr domain.ValidationError

	if l.TestsFront < 1 {
		verr.Add("tests_front", fmt.Sprintf("must be >= 1 (got %d)", l.TestsFront))
	}
	if l.TestsBack < 1 {
		verr.Add("tests_back", fmt.Sprintf("must be >= 1 (got %d)", l.TestsBack))
	}
	if l.CardLimit < 0 {
		verr.Add("card_limit", fmt.Sprintf("must be >= 0 (got %d)", l.CardLimit))
	}
	if l.TimeLimit < 0 {
		verr.Add("time_limit", fmt.Sprintf("must be >= 0 (got %s)", l.TimeLimit))
	}
	if l.ShuffleRatio < 0 || l.ShuffleRatio > 1 {
		verr.Add("shuffle_ratio", fmt.Sprintf("must be within [0, 1] (got %v)", l.ShuffleRatio))
	}

	if sides, ok := domain.ParseSidesMode(l.SidesModeRaw); ok {
		l.Sides = sides
	} else {
		verr.Add("sides_mode", fmt.Sprintf("unknown mode %q", l.SidesModeRaw))
	}
	if order, ok := domain.ParseCategoryOrder(l.CategoryOrderRaw); ok {
		l.Order = order
	} else {
		verr.Add("category_order", fmt.Sprintf("unknown order %q", l.CategoryOrderRaw))
	}

	schedule, err := ParseSchedule(l.CustomScheduleRaw)
	if err != nil {
		verr.Add("custom_schedule", err.Error())
	}
	l.CustomSchedule = schedule

	due, err := ParseDueTime(l.FixedDueTimeRaw)
	if err != nil {
		verr.Add("fixed_due_time", err.Error())
	}
	l.FixedDue = due

	return verr.OrNil()
}

// ParseSchedule parses a comma-separated list of minute delays
// (e.g. "5,10,60,...") into exactly ScheduleLevels positive values.
// An empty string returns a nil slice.
func ParseSchedule(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	if len(parts) != ScheduleLevels {
		return nil, fmt.Errorf("expected %d entries, got %d", ScheduleLevels, len(parts))
	}

	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid delay %q: %w", p, err)
		}
		if n <= 0 {
			return nil, fmt.Errorf("delay must be > 0 (got %d)", n)
		}
		out = append(out, n)
	}

	return out, nil
}

// ParseDueTime parses "HH:MM". An empty string returns nil.
func ParseDueTime(raw string) (*DueTime, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	h, m, ok := strings.Cut(raw, ":")
	if !ok {
		return nil, fmt.Errorf("invalid time %q: want HH:MM", raw)
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return nil, fmt.Errorf("invalid hour in %q", raw)
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return nil, fmt.Errorf("invalid minute in %q", raw)
	}

	return &DueTime{Hour: hour, Minute: minute}, nil
}
