package config

import (
	"time"

	"github.com/heartmarshall/leitner/internal/domain"
)

// Config is the root application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Learning LearningConfig `yaml:"learning"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"5"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// LearningConfig holds the settings of a learning session.
//
// Booleans that default to true carry no env-default tag: cleanenv applies
// a default to every zero field, which would undo an explicit false from the
// YAML file. Their defaults come from newConfig instead.
type LearningConfig struct {
	SchedulePreset    int           `yaml:"schedule_preset"     env:"LEARN_SCHEDULE_PRESET"     env-default:"1"`
	CustomScheduleRaw string        `yaml:"custom_schedule"     env:"LEARN_CUSTOM_SCHEDULE"`
	FixedDueTimeRaw   string        `yaml:"fixed_due_time"      env:"LEARN_FIXED_DUE_TIME"`
	TestsFront        int           `yaml:"tests_front"         env:"LEARN_TESTS_FRONT"         env-default:"1"`
	TestsBack         int           `yaml:"tests_back"          env:"LEARN_TESTS_BACK"          env-default:"1"`
	CardLimit         int           `yaml:"card_limit"          env:"LEARN_CARD_LIMIT"          env-default:"0"`
	TimeLimit         time.Duration `yaml:"time_limit"          env:"LEARN_TIME_LIMIT"          env-default:"0s"`
	ShuffleRatio      float64       `yaml:"shuffle_ratio"       env:"LEARN_SHUFFLE_RATIO"       env-default:"0"`
	GroupByCategory   bool          `yaml:"group_by_category"   env:"LEARN_GROUP_BY_CATEGORY"   env-default:"false"`
	CategoryOrderRaw  string        `yaml:"category_order"      env:"LEARN_CATEGORY_ORDER"      env-default:"fixed"`
	RetestFailedCards bool          `yaml:"retest_failed_cards" env:"LEARN_RETEST_FAILED_CARDS"`
	SidesModeRaw      string        `yaml:"sides_mode"          env:"LEARN_SIDES_MODE"          env-default:"normal"`
	LearnUnlearned    bool          `yaml:"learn_unlearned"     env:"LEARN_UNLEARNED"`
	LearnExpired      bool          `yaml:"learn_expired"       env:"LEARN_EXPIRED"`
	Seed              uint64        `yaml:"seed"                env:"LEARN_SEED"                env-default:"0"`

	// CustomSchedule is parsed from CustomScheduleRaw during validation.
	CustomSchedule []int `yaml:"-" env:"-"`
	// FixedDue is parsed from FixedDueTimeRaw during validation; nil when unset.
	FixedDue *DueTime `yaml:"-" env:"-"`
	// Order is parsed from CategoryOrderRaw during validation.
	Order domain.CategoryOrder `yaml:"-" env:"-"`
	// Sides is parsed from SidesModeRaw during validation.
	Sides domain.SidesMode `yaml:"-" env:"-"`
}

// DueTime is a wall-clock hour and minute.
type DueTime struct {
	Hour   int
	Minute int
}

// newConfig returns the defaults cleanenv cannot express.
func newConfig() Config {
	return Config{
		Learning: LearningConfig{
			RetestFailedCards: true,
			LearnUnlearned:    true,
			LearnExpired:      true,
		},
	}
}
