package mathutil

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is a 3-component vector (value type, stack-allocated).
type Vec3 = mgl64.Vec3

// Spherical returns the unit direction for a polar angle measured from +Y and
// an azimuth measured from +Z towards +X. Angles in degrees.
func Spherical(polarDeg, azimuthDeg float64) Vec3 {
	p := Deg2Rad(polarDeg)
	a := Deg2Rad(azimuthDeg)
	sp := math.Sin(p)
	return Vec3{sp * math.Sin(a), math.Cos(p), sp * math.Cos(a)}
}

// Horizontal returns the unit direction in the XZ plane for an azimuth in degrees.
// The Y component is exactly zero.
func Horizontal(azimuthDeg float64) Vec3 {
	a := Deg2Rad(azimuthDeg)
	return Vec3{math.Sin(a), 0, math.Cos(a)}
}

// PolarAzimuth recovers the polar angle (from +Y, [0,π]) and the shifted azimuth
// atan2(z,x)+π ([0,2π]) of a direction. Angles in radians. v must be non-zero.
func PolarAzimuth(v Vec3) (theta, phi float64) {
	invNorm := 1.0 / math.Sqrt(v[0]*v[0]+v[1]*v[1]+v[2]*v[2])
	y := v[1] * invNorm
	// acos is undefined a hair outside [-1,1]
	if y > 1 {
		y = 1
	} else if y < -1 {
		y = -1
	}
	return math.Acos(y), math.Atan2(v[2], v[0]) + math.Pi
}
