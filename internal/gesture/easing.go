package gesture

import "math"

// Easing maps linear time in [0,1] to progress in [0,1].
type Easing interface {
	Ease(t float64) float64
}

// Linear is the identity easing.
type Linear struct{}

func (Linear) Ease(t float64) float64 { return t }

// ReleaseEasing is the deceleration curve of a released drag.
var ReleaseEasing = NewCubicBezier(0.33, 0.66, 0.66, 1)

// CubicBezier is a CSS-style timing function with end points (0,0) and (1,1).
type CubicBezier struct {
	cx, bx, ax float64
	cy, by, ay float64
}

// NewCubicBezier builds the curve from its two control points. x1 and x2 are
// clamped to [0,1] so the curve stays a function of time.
func NewCubicBezier(x1, y1, x2, y2 float64) *CubicBezier {
	x1 = math.Max(0, math.Min(1, x1))
	x2 = math.Max(0, math.Min(1, x2))
	c := &CubicBezier{}
	c.cx = 3 * x1
	c.bx = 3*(x2-x1) - c.cx
	c.ax = 1 - c.cx - c.bx
	c.cy = 3 * y1
	c.by = 3*(y2-y1) - c.cy
	c.ay = 1 - c.cy - c.by
	return c
}

func (c *CubicBezier) sampleX(s float64) float64 { return ((c.ax*s+c.bx)*s + c.cx) * s }
func (c *CubicBezier) sampleY(s float64) float64 { return ((c.ay*s+c.by)*s + c.cy) * s }
func (c *CubicBezier) slopeX(s float64) float64  { return (3*c.ax*s+2*c.bx)*s + c.cx }

// Ease returns y at the curve parameter whose x equals t.
func (c *CubicBezier) Ease(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return c.sampleY(c.solveX(t))
}

func (c *CubicBezier) solveX(x float64) float64 {
	const eps = 1e-9

	// Newton first, it converges in a few steps on well-behaved curves
	s := x
	for i := 0; i < 8; i++ {
		err := c.sampleX(s) - x
		if math.Abs(err) < eps {
			return s
		}
		d := c.slopeX(s)
		if math.Abs(d) < 1e-6 {
			break
		}
		s -= err / d
	}

	lo, hi := 0.0, 1.0
	s = x
	for lo < hi {
		v := c.sampleX(s)
		if math.Abs(v-x) < eps {
			return s
		}
		if x > v {
			lo = s
		} else {
			hi = s
		}
		next := (lo + hi) / 2
		if next == s {
			break
		}
		s = next
	}
	return s
}
