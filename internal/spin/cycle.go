package spin

import (
	"math"
	"time"
)

// Rate returns the cycling rate, in cycles per second, at elapsed. It falls
// linearly from InitialRate to FloorRate over Duration and stays at
// FloorRate afterwards.
func Rate(cfg Config, elapsed time.Duration) float64 {
	p := fraction(elapsed, cfg.Duration)
	return cfg.InitialRate - (cfg.InitialRate-cfg.FloorRate)*p
}

// CycleIndex is the highlighted index of the cycle variant at elapsed:
// floor(elapsedMs * rate / 1000) mod n.
func CycleIndex(cfg Config, elapsed time.Duration, n int) int {
	if n <= 0 {
		return 0
	}
	ms := float64(elapsed.Milliseconds())
	if ms < 0 {
		ms = 0
	}
	steps := int64(math.Floor(ms * Rate(cfg, elapsed) / 1000))
	return int(steps % int64(n))
}

// travel is the distance covered by the wheel, in segments, after elapsed:
// the integral of Rate. It never decreases.
func travel(cfg Config, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	t := elapsed.Seconds()
	d := cfg.Duration.Seconds()
	if d <= 0 {
		return cfg.FloorRate * t
	}
	if t <= d {
		return cfg.InitialRate*t - (cfg.InitialRate-cfg.FloorRate)*t*t/(2*d)
	}
	full := cfg.InitialRate*d - (cfg.InitialRate-cfg.FloorRate)*d/2
	return full + cfg.FloorRate*(t-d)
}

func fraction(elapsed, total time.Duration) float64 {
	if total <= 0 {
		return 1
	}
	p := float64(elapsed) / float64(total)
	return math.Max(0, math.Min(1, p))
}
