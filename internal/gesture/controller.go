// Package gesture turns pointer samples into camera deltas and computes the
// momentum trajectory when a drag is released. Mouse and touch share one
// Controller; only one gesture is active at a time.
package gesture

import (
	"math"
	"time"

	"pano-viewer/internal/camera"
)

// DefaultDrag is the deceleration coefficient of a released drag, in px/ms².
const DefaultDrag = 0.012

// maxSamples bounds the retained history; only the newest two are ever read.
const maxSamples = 32

// State of the pointer state machine. Released is transient and never observed.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Sample is one pointer position at a monotonic instant.
type Sample struct {
	X, Y float64
	Time time.Time
}

// Scale converts raster deltas into degrees.
type Scale struct {
	Heading float64
	Pitch   float64
}

// Reference sensitivities of the two viewer variants.
var (
	EquirectScale = Scale{Heading: 1.0, Pitch: 0.5}
	CubeScale     = Scale{Heading: 0.2, Pitch: 0.1}
)

// Delta is an orientation change in degrees.
type Delta struct {
	Heading float64
	Pitch   float64
}

// Controller is the pointer state machine bound to one camera.
type Controller struct {
	cam     *camera.State
	scale   Scale
	drag    float64
	samples []Sample
}

// Option configures a Controller.
type Option func(*Controller)

// WithDrag overrides the release deceleration coefficient.
func WithDrag(drag float64) Option {
	return func(c *Controller) {
		if drag > 0 {
			c.drag = drag
		}
	}
}

// NewController creates an idle controller that mutates cam.
func NewController(cam *camera.State, scale Scale, opts ...Option) *Controller {
	c := &Controller{
		cam:     cam,
		scale:   scale,
		drag:    DefaultDrag,
		samples: make([]Sample, 0, maxSamples),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State reports whether a drag is in progress.
func (c *Controller) State() State {
	if len(c.samples) == 0 {
		return Idle
	}
	return Dragging
}

// Samples returns a copy of the recorded samples of the active gesture.
func (c *Controller) Samples() []Sample {
	return append([]Sample(nil), c.samples...)
}

// SetScale changes the sensitivity for subsequent moves.
func (c *Controller) SetScale(s Scale) {
	c.scale = s
}

// SetDrag changes the release deceleration coefficient. Non-positive values
// are ignored. It applies to the next End, including one of a drag in progress.
func (c *Controller) SetDrag(drag float64) {
	if drag > 0 {
		c.drag = drag
	}
}

// Drag returns the release deceleration coefficient.
func (c *Controller) Drag() float64 {
	return c.drag
}

// Start begins a gesture. A Start while dragging restarts from a single sample.
func (c *Controller) Start(x, y float64, t time.Time) {
	c.samples = append(c.samples[:0], Sample{X: x, Y: y, Time: t})
}

// Move records a sample and applies the delta from the previous one to the
// camera. It is a no-op returning false when no gesture is active.
func (c *Controller) Move(x, y float64, t time.Time) (Delta, bool) {
	if len(c.samples) == 0 {
		return Delta{}, false
	}
	if len(c.samples) == maxSamples {
		copy(c.samples, c.samples[1:])
		c.samples = c.samples[:maxSamples-1]
	}
	c.samples = append(c.samples, Sample{X: x, Y: y, Time: t})

	prev := c.samples[len(c.samples)-2]
	d := Delta{
		Heading: -(x - prev.X) * c.scale.Heading,
		Pitch:   (y - prev.Y) * c.scale.Pitch,
	}
	c.cam.SetHeading(d.Heading)
	c.cam.SetPitch(d.Pitch)
	return d, true
}

// End finishes the gesture and returns its release trajectory. A release
// position that differs from the last sample is applied as a final move first.
// The sample history is cleared in every case. End returns false when no
// gesture was active.
func (c *Controller) End(x, y float64, t time.Time) (Release, bool) {
	if len(c.samples) == 0 {
		return Release{}, false
	}
	last := c.samples[len(c.samples)-1]
	if x != last.X || y != last.Y {
		c.Move(x, y, t)
	}

	var r Release
	if n := len(c.samples); n >= 2 {
		r = c.release(c.samples[n-2], c.samples[n-1])
	}
	c.samples = c.samples[:0]
	return r, true
}

// release computes velocity, decay time and the extrapolated offset of the
// last segment.
func (c *Controller) release(prev, cur Sample) Release {
	dx := cur.X - prev.X
	dy := cur.Y - prev.Y
	dist := math.Sqrt(dx*dx + dy*dy)
	ms := float64(cur.Time.Sub(prev.Time)) / float64(time.Millisecond)
	if ms <= 0 || dist == 0 {
		return Release{}
	}

	velocity := dist / ms
	r := Release{
		Velocity: velocity,
		Duration: time.Duration(velocity / c.drag * float64(time.Millisecond)),
		DX:       dx * velocity,
		DY:       dy * velocity,
	}
	r.Heading = -r.DX * c.scale.Heading
	r.Pitch = r.DY * c.scale.Pitch
	return r
}
