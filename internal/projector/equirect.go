package projector

import (
	"math"

	"pano-viewer/internal/mathutil"
	"pano-viewer/internal/raster"
)

// Equirect samples a 360°×180° equirectangular source: columns map linearly to
// azimuth, rows to the polar angle from the zenith.
type Equirect struct {
	Source *raster.Source
}

func (e Equirect) Valid() bool      { return e.Source.Valid() }
func (e Equirect) Variant() Variant { return VariantEquirect }

// Lookup samples the source along dir.
func (e Equirect) Lookup(dir mathutil.Vec3, f Filter) (r, g, b uint8) {
	src := e.Source
	theta, phi := mathutil.PolarAzimuth(dir)
	if math.IsNaN(theta) || math.IsNaN(phi) {
		return 0, 0, 0
	}
	if f == Bilinear {
		thetaFac := float64(src.Height) / math.Pi
		phiFac := float64(src.Width) * 0.5 / math.Pi
		return raster.SampleBilinear(src, phiFac*phi, thetaFac*theta)
	}
	row, col := SampleIndex(theta, phi, src.Width, src.Height)
	return src.At(row, col)
}

// SampleIndex maps spherical angles (radians) to a source pixel.
// The row is clamped to [0,h-1] since the poles do not wrap; the column wraps
// modulo w because azimuth 2π is the same meridian as 0.
func SampleIndex(theta, phi float64, w, h int) (row, col int) {
	thetaFac := float64(h) / math.Pi
	phiFac := float64(w) * 0.5 / math.Pi

	row = int(math.Floor(thetaFac * theta))
	if row < 0 {
		row = 0
	} else if row >= h {
		row = h - 1
	}

	col = int(math.Floor(phiFac*phi)) % w
	if col < 0 {
		col += w
	}
	return row, col
}
