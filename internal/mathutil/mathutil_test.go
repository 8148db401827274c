package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSphericalAxes(t *testing.T) {
	tests := []struct {
		name           string
		polar, azimuth float64
		want           Vec3
	}{
		{"zenith", 0, 0, Vec3{0, 1, 0}},
		{"horizon front", 90, 0, Vec3{0, 0, 1}},
		{"horizon left", 90, 90, Vec3{1, 0, 0}},
		{"nadir", 180, 0, Vec3{0, -1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Spherical(tt.polar, tt.azimuth)
			for i := 0; i < 3; i++ {
				assert.InDelta(t, tt.want[i], got[i], 1e-12)
			}
		})
	}
}

func TestHorizontalHasNoVerticalComponent(t *testing.T) {
	for _, a := range []float64{-90, 0, 33, 180, 270} {
		assert.Equal(t, 0.0, Horizontal(a)[1])
		assert.InDelta(t, 1.0, Horizontal(a).Len(), 1e-12)
	}
}

func TestPolarAzimuthRoundTrip(t *testing.T) {
	theta, phi := PolarAzimuth(Vec3{0, 2, 0})
	assert.InDelta(t, 0, theta, 1e-12)
	assert.True(t, phi >= 0 && phi <= 2*math.Pi)

	theta, _ = PolarAzimuth(Vec3{0, -3, 0})
	assert.InDelta(t, math.Pi, theta, 1e-12)

	theta, phi = PolarAzimuth(Vec3{-1, 0, 0})
	assert.InDelta(t, math.Pi/2, theta, 1e-12)
	assert.InDelta(t, 2*math.Pi, phi, 1e-12)
}

func TestEulerZXYIdentity(t *testing.T) {
	m := EulerZXY(0, 0, 0)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			want := 0.0
			if r == c {
				want = 1
			}
			assert.InDelta(t, want, m.At(r, c), 1e-12)
		}
	}
}

func TestEulerZXYElements(t *testing.T) {
	a, b, g := 30.0, 40.0, 50.0
	m := EulerZXY(a, b, g)
	sa, ca := math.Sincos(Deg2Rad(a))
	sb, cb := math.Sincos(Deg2Rad(b))
	sg, cg := math.Sincos(Deg2Rad(g))

	assert.InDelta(t, cg*sa*sb+ca*sg, m.At(0, 2), 1e-12)
	assert.InDelta(t, sa*sg-ca*cg*sb, m.At(1, 2), 1e-12)
	assert.InDelta(t, -cb*sg, m.At(2, 0), 1e-12)
	assert.InDelta(t, sb, m.At(2, 1), 1e-12)
	assert.InDelta(t, cb*cg, m.At(2, 2), 1e-12)
}

func TestRotateAbout(t *testing.T) {
	v := RotateAbout(Vec3{1, 0, 0}, Vec3{0, 0, 1}, 90)
	assert.InDelta(t, 0, v[0], 1e-12)
	assert.InDelta(t, 1, v[1], 1e-12)

	same := RotateAbout(Vec3{1, 2, 3}, Vec3{}, 45)
	assert.Equal(t, Vec3{1, 2, 3}, same)
}

func TestWrapAndDist(t *testing.T) {
	assert.Equal(t, 0.0, WrapDegrees(360))
	assert.Equal(t, 350.0, WrapDegrees(-10))
	assert.InDelta(t, 90.0, WrapDegrees(450), 1e-12)
	assert.InDelta(t, 20.0, AngleDist(350, 10), 1e-12)
	assert.InDelta(t, 180.0, AngleDist(0, 180), 1e-12)
	assert.Equal(t, 30.0, Clamp(10, 30, 90))
	assert.Equal(t, 90.0, Clamp(120, 30, 90))
}
