package mathutil

import "math"

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// WrapDegrees maps an angle to [0, 360).
func WrapDegrees(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	// -1e-15 + 360 rounds to 360
	if d >= 360 {
		d = 0
	}
	return d
}

// AngleDist returns the shortest angular distance between two angles in degrees (0–180).
func AngleDist(a, b float64) float64 {
	d := WrapDegrees(a - b)
	if d > 180 {
		return 360 - d
	}
	return d
}
