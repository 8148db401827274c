package mathutil

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Mat3 is a 3×3 column-major rotation matrix; use At(row, col) for elements.
type Mat3 = mgl64.Mat3

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(r float64) float64 {
	return r * 180 / math.Pi
}

// EulerZXY returns Rz(alpha) × Rx(beta) × Ry(gamma), the intrinsic Z-X'-Y''
// rotation used by device-orientation sensors. Angles in degrees.
func EulerZXY(alpha, beta, gamma float64) Mat3 {
	rz := mgl64.Rotate3DZ(Deg2Rad(alpha))
	rx := mgl64.Rotate3DX(Deg2Rad(beta))
	ry := mgl64.Rotate3DY(Deg2Rad(gamma))
	return rz.Mul3(rx).Mul3(ry)
}

// RotateAbout rotates v about axis by deg degrees (right-hand rule).
// A zero axis leaves v unchanged.
func RotateAbout(v, axis Vec3, deg float64) Vec3 {
	if deg == 0 || axis.Len() < 1e-12 {
		return v
	}
	q := mgl64.QuatRotate(Deg2Rad(deg), axis.Normalize())
	return q.Rotate(v)
}
