package projector

import (
	"math"

	"pano-viewer/internal/mathutil"
	"pano-viewer/internal/raster"
)

// Face indexes the six faces of a cube map.
type Face int

// Faces in world axes: Front +Z, Back -Z, Left +X, Right -X, Top +Y, Bottom -Y.
const (
	Front Face = iota
	Back
	Left
	Right
	Top
	Bottom
)

// FaceNames are the face names used for file lookup and config keys.
var FaceNames = [6]string{"front", "back", "left", "right", "top", "bottom"}

func (f Face) String() string {
	if f < 0 || int(f) >= len(FaceNames) {
		return "unknown"
	}
	return FaceNames[f]
}

// CubeMap samples six square-ish face images. Each face is oriented so it
// appears upright when the camera looks straight at it.
type CubeMap struct {
	Faces [6]*raster.Source
}

func (c CubeMap) Valid() bool {
	for _, f := range c.Faces {
		if !f.Valid() {
			return false
		}
	}
	return true
}

func (c CubeMap) Variant() Variant { return VariantCube }

// Lookup samples the face hit by dir.
func (c CubeMap) Lookup(dir mathutil.Vec3, f Filter) (r, g, b uint8) {
	face, u, v := FaceUV(dir)
	src := c.Faces[face]
	x := u * float64(src.Width)
	y := v * float64(src.Height)
	if f == Bilinear {
		return raster.SampleBilinearClamp(src, x, y)
	}
	col := clampIndex(int(math.Floor(x)), src.Width)
	row := clampIndex(int(math.Floor(y)), src.Height)
	return src.At(row, col)
}

// FaceUV returns the face hit by dir and the face coordinates in [0,1],
// u to the right and v downwards.
func FaceUV(dir mathutil.Vec3) (face Face, u, v float64) {
	x, y, z := dir[0], dir[1], dir[2]
	ax, ay, az := math.Abs(x), math.Abs(y), math.Abs(z)

	switch {
	case ax >= ay && ax >= az:
		if ax == 0 {
			return Front, 0.5, 0.5
		}
		if x > 0 {
			return Left, (z/ax + 1) / 2, (-y/ax + 1) / 2
		}
		return Right, (-z/ax + 1) / 2, (-y/ax + 1) / 2
	case ay >= az:
		if y > 0 {
			return Top, (-x/ay + 1) / 2, (z/ay + 1) / 2
		}
		return Bottom, (-x/ay + 1) / 2, (-z/ay + 1) / 2
	default:
		if z > 0 {
			return Front, (-x/az + 1) / 2, (-y/az + 1) / 2
		}
		return Back, (x/az + 1) / 2, (-y/az + 1) / 2
	}
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
