package spin

import (
	"math"
	"time"
)

// SegmentAngle is the arc, in degrees, of one of n equal wheel segments.
func SegmentAngle(n int) float64 {
	if n <= 0 {
		return 360
	}
	return 360 / float64(n)
}

// TargetRotation returns the rotation that leaves segment w centered under
// the pointer after k extra full turns beyond the current one. The result
// modulo 360 does not depend on k.
func TargetRotation(current float64, w, n, k int) float64 {
	seg := SegmentAngle(n)
	center := float64(w)*seg + seg/2
	return current - mod360(current) + float64(k)*360 + (360 - center)
}

// WinnerUnderPointer returns the segment under the pointer for a rotation.
func WinnerUnderPointer(rotation float64, n int) int {
	if n <= 0 {
		return 0
	}
	i := int(math.Floor(mod360(360-mod360(rotation)) / SegmentAngle(n)))
	if i >= n {
		i = n - 1
	}
	return i
}

// RunningRotation is the self-driven wheel angle added to the start angle
// after elapsed.
func RunningRotation(cfg Config, elapsed time.Duration, n int) float64 {
	return travel(cfg, elapsed) * SegmentAngle(n)
}

func mod360(a float64) float64 {
	m := math.Mod(a, 360)
	if m < 0 {
		m += 360
	}
	return m
}

// CubicBezier returns the CSS-style timing function with control points
// (x1,y1) and (x2,y2). x1 and x2 must lie in [0,1].
func CubicBezier(x1, y1, x2, y2 float64) func(float64) float64 {
	bez := func(t, p1, p2 float64) float64 {
		u := 1 - t
		return 3*u*u*t*p1 + 3*u*t*t*p2 + t*t*t
	}
	return func(x float64) float64 {
		if x <= 0 {
			return 0
		}
		if x >= 1 {
			return 1
		}
		// x(t) is monotonic on [0,1] for valid control points.
		lo, hi := 0.0, 1.0
		t := x
		for range 50 {
			got := bez(t, x1, x2)
			if math.Abs(got-x) < 1e-7 {
				break
			}
			if got < x {
				lo = t
			} else {
				hi = t
			}
			t = (lo + hi) / 2
		}
		return bez(t, y1, y2)
	}
}

// Ease is the wheel's settle curve.
var Ease = CubicBezier(0.25, 0.1, 0.25, 1)
