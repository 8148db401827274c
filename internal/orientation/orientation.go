// Package orientation converts device-orientation sensor readings into
// gimbal-lock-corrected Euler angles and incremental camera deltas.
package orientation

import (
	"math"

	"pano-viewer/internal/camera"
	"pano-viewer/internal/mathutil"
)

// Sample is a raw sensor reading in degrees: alpha about Z, beta about X,
// gamma about Y.
type Sample struct {
	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`
	Gamma float64 `json:"gamma"`
}

func (s Sample) valid() bool {
	return finite(s.Alpha) && finite(s.Beta) && finite(s.Gamma)
}

// Euler is a corrected yaw/pitch/roll triple in degrees.
type Euler struct {
	Yaw   float64
	Pitch float64
	Roll  float64
}

// Delta is the change applied to the camera by one sample.
type Delta struct {
	Heading float64
	Pitch   float64
}

// ScreenOrientation is the screen rotation-lock angle reported by the platform.
type ScreenOrientation int

const (
	Portrait           ScreenOrientation = 0
	LandscapeLeft      ScreenOrientation = 90
	PortraitUpsideDown ScreenOrientation = 180
	LandscapeRight     ScreenOrientation = -90
)

// YawOffset is the baseline yaw for the screen orientation. Unknown angles
// get no offset.
func (o ScreenOrientation) YawOffset() float64 {
	switch o {
	case Portrait:
		return 180
	case PortraitUpsideDown:
		return 0
	case LandscapeLeft:
		return 90
	case LandscapeRight:
		return -90
	}
	return 0
}

// Correct re-extracts the Euler angles of a sensor sample from a frame whose
// singularity sits at the up/down poles instead of at the device's
// natural horizontal-level pole.
func Correct(s Sample) Euler {
	r := mathutil.EulerZXY(s.Alpha, s.Beta, s.Gamma)

	m00 := r.At(1, 2)
	m10 := r.At(2, 2)
	m11 := -r.At(2, 1)
	m12 := r.At(2, 0)
	m20 := r.At(0, 2)

	return Euler{
		Yaw:   mathutil.Rad2Deg(math.Atan2(-m20, m00)),
		Pitch: mathutil.Rad2Deg(math.Asin(mathutil.Clamp(m10, -1, 1))),
		Roll:  mathutil.Rad2Deg(math.Atan2(-m12, m11)),
	}
}

// Filter keeps the previous corrected triple and turns each new sample into
// an additive camera delta, so sensor input composes with manual dragging.
type Filter struct {
	prev Euler
}

// NewFilter creates a filter baselined for the given screen orientation.
func NewFilter(o ScreenOrientation) *Filter {
	f := &Filter{}
	f.Reset(o)
	return f
}

// Reset re-baselines the filter, e.g. after the screen rotated.
func (f *Filter) Reset(o ScreenOrientation) {
	f.prev = Euler{Yaw: o.YawOffset()}
}

// Previous returns the last corrected triple (or the baseline).
func (f *Filter) Previous() Euler {
	return f.prev
}

// Update corrects s and returns the delta from the previous triple without
// touching any camera. Samples with non-finite angles are ignored.
func (f *Filter) Update(s Sample) (Delta, bool) {
	if !s.valid() {
		return Delta{}, false
	}
	corrected := Correct(s)
	d := Delta{
		Heading: f.prev.Yaw - corrected.Yaw,
		Pitch:   f.prev.Pitch - corrected.Pitch,
	}
	f.prev = corrected
	return d, true
}

// Apply runs Update and adds the delta to cam.
func (f *Filter) Apply(s Sample, cam *camera.State) (Delta, bool) {
	d, ok := f.Update(s)
	if !ok {
		return d, false
	}
	cam.SetHeading(d.Heading)
	cam.SetPitch(d.Pitch)
	return d, true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
