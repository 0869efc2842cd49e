package schedule

import (
	"log/slog"
	"math"
)

// Levels is the number of schedule entries. Cards above the last level reuse
// the last entry.
const Levels = 10

const minutesPerDay = 24 * 60

// Table holds the delay in minutes for each level.
type Table [Levels]int

// Preset identifies a built-in schedule. The numeric values are the indices
// stored in configuration.
type Preset int

const (
	PresetConstant Preset = iota
	PresetLinear
	PresetQuadratic
	PresetExponential
	PresetCram
	PresetCustom
)

var presetNames = [...]string{"constant", "linear", "quadratic", "exponential", "cram", "custom"}

func (p Preset) String() string {
	if p < 0 || int(p) >= len(presetNames) {
		return "unknown"
	}
	return presetNames[p]
}

// PresetTable returns the table of a built-in preset. It returns false for
// PresetCustom and for unknown indices.
func PresetTable(p Preset) (Table, bool) {
	var t Table
	for level := range Levels {
		n := level + 1
		switch p {
		case PresetConstant:
			t[level] = minutesPerDay
		case PresetLinear:
			t[level] = n * minutesPerDay
		case PresetQuadratic:
			t[level] = n * n * minutesPerDay
		case PresetExponential:
			t[level] = int(math.Pow(2, float64(level))) * minutesPerDay
		case PresetCram:
			t[level] = n * 5
		default:
			return Table{}, false
		}
	}
	return t, true
}

// Resolve picks the table for a configured preset index. The custom preset
// uses custom verbatim. An unknown index, or the custom preset without a
// table, is logged and replaced by the linear preset.
func Resolve(log *slog.Logger, index int, custom []int) Table {
	p := Preset(index)
	if p == PresetCustom && len(custom) == Levels {
		var t Table
		copy(t[:], custom)
		return t
	}
	if t, ok := PresetTable(p); ok {
		return t
	}

	log.Warn("unknown schedule preset, using linear",
		slog.Int("preset", index),
		slog.Int("custom_entries", len(custom)),
	)
	t, _ := PresetTable(PresetLinear)
	return t
}
