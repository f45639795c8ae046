package spin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRate(t *testing.T) {
	cfg := DefaultConfig(Cycle)

	assert.InDelta(t, 10.0, Rate(cfg, 0), 1e-9)
	assert.InDelta(t, 6.0, Rate(cfg, 1500*time.Millisecond), 1e-9)
	assert.InDelta(t, 2.0, Rate(cfg, cfg.Duration), 1e-9)
	assert.InDelta(t, 2.0, Rate(cfg, 2*cfg.Duration), 1e-9, "rate stays at the floor")
}

func TestRateNeverIncreases(t *testing.T) {
	cfg := DefaultConfig(Cycle)
	prev := Rate(cfg, 0)
	for ms := 0; ms <= 4000; ms += 10 {
		r := Rate(cfg, time.Duration(ms)*time.Millisecond)
		assert.LessOrEqual(t, r, prev)
		prev = r
	}
}

func TestCycleIndex(t *testing.T) {
	cfg := DefaultConfig(Cycle)

	tests := []struct {
		name    string
		elapsed time.Duration
		n       int
		want    int
	}{
		{"start", 0, 4, 0},
		{"first step", 100 * time.Millisecond, 4, 0}, // 100*9.73/1000 = 0.97
		{"midway", 1500 * time.Millisecond, 4, 1},    // 1500*6/1000 = 9
		{"end", 3000 * time.Millisecond, 4, 2},       // 3000*2/1000 = 6
		{"single", 2200 * time.Millisecond, 1, 0},
		{"no candidates", time.Second, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CycleIndex(cfg, tt.elapsed, tt.n))
		})
	}
}

func TestCycleIndexInRange(t *testing.T) {
	cfg := DefaultConfig(Cycle)
	for n := 1; n <= 9; n++ {
		for ms := 0; ms <= 3000; ms += 50 {
			i := CycleIndex(cfg, time.Duration(ms)*time.Millisecond, n)
			assert.GreaterOrEqual(t, i, 0)
			assert.Less(t, i, n)
		}
	}
}

func TestTravelMonotonic(t *testing.T) {
	cfg := DefaultConfig(Wheel)
	prev := -1.0
	for ms := 0; ms <= 4000; ms += 25 {
		d := travel(cfg, time.Duration(ms)*time.Millisecond)
		assert.Greater(t, d, prev)
		prev = d
	}
	// 10*2 - 8*2/2 = 12 segments over the 2s window.
	assert.InDelta(t, 12.0, travel(cfg, cfg.Duration), 1e-9)
}
