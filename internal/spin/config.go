package spin

import (
	"time"

	"github.com/whotakesshowers/wts/internal/config"
)

// Variant selects how the spin is presented.
type Variant string

const (
	// Cycle highlights candidates in turn.
	Cycle Variant = "cycle"
	// Wheel rotates a segmented wheel under a fixed pointer.
	Wheel Variant = "wheel"
)

// Config holds the timing model of a spin.
type Config struct {
	Variant Variant

	// Duration is the self-driven phase. No session lands earlier.
	Duration time.Duration
	// SettleDuration is the final transition onto the winner.
	SettleDuration time.Duration
	// TickInterval is the frame period used by drivers.
	TickInterval time.Duration

	// InitialRate and FloorRate are cycles per second at the start and end
	// of Duration.
	InitialRate float64
	FloorRate   float64

	// Extra full wheel rotations are drawn from [ExtraSpinsMin, ExtraSpinsMax).
	ExtraSpinsMin int
	ExtraSpinsMax int
}

// FromConfig converts the file configuration.
func FromConfig(sc config.SpinConfig) Config {
	return Config{
		Variant:        Variant(sc.Variant),
		Duration:       sc.Duration,
		SettleDuration: sc.SettleDuration,
		TickInterval:   sc.TickInterval,
		InitialRate:    sc.InitialRate,
		FloorRate:      sc.FloorRate,
		ExtraSpinsMin:  sc.ExtraSpinsMin,
		ExtraSpinsMax:  sc.ExtraSpinsMax,
	}
}

// DefaultConfig returns the defaults for a variant.
func DefaultConfig(v Variant) Config {
	return FromConfig(config.DefaultSpin(string(v)))
}

// Total is the minimum wall time from start to Landed.
func (c Config) Total() time.Duration {
	return c.Duration + c.SettleDuration
}

// extraSpinsRange returns a usable [lo, hi) range with lo >= 1.
func (c Config) extraSpinsRange() (lo, hi int) {
	lo, hi = c.ExtraSpinsMin, c.ExtraSpinsMax
	if lo < 1 {
		lo = 1
	}
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}
