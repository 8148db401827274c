// Package camera holds the viewing orientation of a single viewer instance.
//
// Pitch is polar: 0 looks straight up, 90 at the horizon, 180 straight down.
package camera

import (
	"math"

	"pano-viewer/internal/mathutil"
)

// Default orientation and valid ranges, in degrees.
const (
	DefaultHeading = 90.0
	DefaultPitch   = 90.0
	DefaultFOV     = 90.0

	MinPitch = 0.0
	MaxPitch = 180.0
	MinFOV   = 30.0
	MaxFOV   = 90.0
)

// View is an immutable snapshot of the camera consumed by the projector.
type View struct {
	Heading     float64
	Pitch       float64
	Roll        float64
	FieldOfView float64
}

// State owns the current viewing orientation and its valid ranges.
// It is not safe for concurrent use; a viewer mutates it from one goroutine.
type State struct {
	heading float64
	pitch   float64
	roll    float64
	fov     float64

	minPitch, maxPitch float64
	minFOV, maxFOV     float64
}

// Option configures a State.
type Option func(*State)

// WithOrientation sets the initial heading, pitch and roll.
func WithOrientation(heading, pitch, roll float64) Option {
	return func(s *State) {
		s.heading, s.pitch, s.roll = heading, pitch, roll
	}
}

// WithFieldOfView sets the initial field of view.
func WithFieldOfView(fov float64) Option {
	return func(s *State) {
		s.fov = fov
	}
}

// WithPitchRange narrows the pitch clamp. Values outside [0,180] are ignored.
func WithPitchRange(lo, hi float64) Option {
	return func(s *State) {
		if lo < MinPitch || hi > MaxPitch || lo > hi {
			return
		}
		s.minPitch, s.maxPitch = lo, hi
	}
}

// WithFOVRange overrides the field-of-view clamp.
func WithFOVRange(lo, hi float64) Option {
	return func(s *State) {
		if lo <= 0 || hi >= 180 || lo > hi {
			return
		}
		s.minFOV, s.maxFOV = lo, hi
	}
}

// New creates a camera at the default orientation.
func New(opts ...Option) *State {
	s := &State{
		heading:  DefaultHeading,
		pitch:    DefaultPitch,
		fov:      DefaultFOV,
		minPitch: MinPitch,
		maxPitch: MaxPitch,
		minFOV:   MinFOV,
		maxFOV:   MaxFOV,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.clamp()
	return s
}

// SetHeading adds delta to the heading. Heading is never clamped.
func (s *State) SetHeading(delta float64) {
	if !finite(delta) {
		return
	}
	s.heading += delta
}

// SetPitch adds delta to the pitch and clamps it to the configured range.
func (s *State) SetPitch(delta float64) {
	if !finite(delta) {
		return
	}
	s.pitch = mathutil.Clamp(s.pitch+delta, s.minPitch, s.maxPitch)
}

// SetRoll adds delta to the roll.
func (s *State) SetRoll(delta float64) {
	if !finite(delta) {
		return
	}
	s.roll += delta
}

// SetFieldOfView adds delta to the field of view and clamps it.
func (s *State) SetFieldOfView(delta float64) {
	if !finite(delta) {
		return
	}
	s.fov = mathutil.Clamp(s.fov+delta, s.minFOV, s.maxFOV)
}

// Reset replaces the whole orientation; values are clamped like deltas are.
func (s *State) Reset(heading, pitch, roll, fov float64) {
	s.heading, s.pitch, s.roll, s.fov = heading, pitch, roll, fov
	s.clamp()
}

func (s *State) Heading() float64     { return s.heading }
func (s *State) Pitch() float64       { return s.pitch }
func (s *State) Roll() float64        { return s.roll }
func (s *State) FieldOfView() float64 { return s.fov }

// NormalizedHeading returns the heading mapped to [0, 360).
func (s *State) NormalizedHeading() float64 {
	return mathutil.WrapDegrees(s.heading)
}

// PitchRange returns the active pitch clamp.
func (s *State) PitchRange() (lo, hi float64) {
	return s.minPitch, s.maxPitch
}

// View returns a snapshot of the current orientation.
func (s *State) View() View {
	return View{
		Heading:     s.heading,
		Pitch:       s.pitch,
		Roll:        s.roll,
		FieldOfView: s.fov,
	}
}

func (s *State) clamp() {
	if !finite(s.heading) {
		s.heading = DefaultHeading
	}
	if !finite(s.roll) {
		s.roll = 0
	}
	if !finite(s.pitch) {
		s.pitch = DefaultPitch
	}
	if !finite(s.fov) {
		s.fov = DefaultFOV
	}
	s.pitch = mathutil.Clamp(s.pitch, s.minPitch, s.maxPitch)
	s.fov = mathutil.Clamp(s.fov, s.minFOV, s.maxFOV)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
