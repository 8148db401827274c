// Package viewer composes one interactive panorama view: a camera, the
// pointer and sensor handlers that move it, and the projector that draws it.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"pano-viewer/internal/camera"
	"pano-viewer/internal/gesture"
	"pano-viewer/internal/orientation"
	"pano-viewer/internal/projector"
	"pano-viewer/internal/raster"
)

// ErrNoSurface is returned by Draw when the viewer has nowhere to render.
var ErrNoSurface = errors.New("viewer: no surface")

// Surface is the presentation target. The viewer renders into FrameBuffer
// and calls Present once per drawn frame.
type Surface interface {
	FrameBuffer() *raster.FrameBuffer
	Present() error
}

// Direction of auto-rotation.
type Direction int

const (
	RotateOff Direction = iota
	RotateLeft
	RotateRight
)

// ParseDirection maps "left"/"right" to a Direction; anything else is off.
func ParseDirection(s string) Direction {
	switch s {
	case "left":
		return RotateLeft
	case "right":
		return RotateRight
	}
	return RotateOff
}

// Settings are the interaction parameters that can change while running.
type Settings struct {
	Scale           gesture.Scale
	Drag            float64
	Pointer         bool
	Gyro            bool
	AutoRotate      Direction
	AutoRotateSpeed float64 // degrees per second
	Workers         int     // render goroutines; <= 1 renders inline
}

// DefaultSettings matches the equirectangular reference viewer.
func DefaultSettings() Settings {
	return Settings{
		Scale:           gesture.EquirectScale,
		Drag:            gesture.DefaultDrag,
		Pointer:         true,
		AutoRotateSpeed: 10,
		Workers:         1,
	}
}

// Viewer is one independent panorama instance. Several viewers may share a
// Projector and an Environment but never camera or gesture state.
// All methods are safe for concurrent use.
type Viewer struct {
	mu sync.Mutex

	cam      *camera.State
	gesture  *gesture.Controller
	filter   *orientation.Filter
	proj     *projector.Projector
	env      projector.Environment
	surface  Surface
	settings Settings

	momentum *gesture.Momentum
	lastTick time.Time
	dirty    bool
	log      *slog.Logger
}

// Option configures a Viewer.
type Option func(*Viewer)

// WithCamera replaces the default camera.
func WithCamera(cam *camera.State) Option {
	return func(v *Viewer) {
		if cam != nil {
			v.cam = cam
		}
	}
}

// WithSettings sets the interaction parameters.
func WithSettings(s Settings) Option {
	return func(v *Viewer) {
		v.settings = s
	}
}

// WithScreenOrientation baselines the sensor filter.
func WithScreenOrientation(o orientation.ScreenOrientation) Option {
	return func(v *Viewer) {
		v.filter.Reset(o)
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(v *Viewer) {
		if l != nil {
			v.log = l
		}
	}
}

// New creates a viewer drawing env through proj onto surface.
func New(env projector.Environment, proj *projector.Projector, surface Surface, opts ...Option) *Viewer {
	v := &Viewer{
		cam:      camera.New(),
		filter:   orientation.NewFilter(orientation.Portrait),
		proj:     proj,
		env:      env,
		surface:  surface,
		settings: DefaultSettings(),
		dirty:    true,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.proj == nil {
		v.proj = projector.New()
	}
	v.gesture = gesture.NewController(v.cam, v.settings.Scale, gesture.WithDrag(v.settings.Drag))
	v.log = v.log.With("component", "viewer")
	return v
}

// Camera returns a snapshot of the current view.
func (v *Viewer) Camera() camera.View {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cam.View()
}

// Settings returns the current interaction parameters.
func (v *Viewer) Settings() Settings {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.settings
}

// UpdateSettings applies new interaction parameters. Scale and drag take
// effect immediately, so a drag in progress releases with the new drag.
func (v *Viewer) UpdateSettings(s Settings) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.settings = s
	v.gesture.SetScale(s.Scale)
	v.gesture.SetDrag(s.Drag)
	if !s.Pointer {
		v.cancelMomentum()
	}
	v.log.Debug("settings updated", "auto_rotate", s.AutoRotate, "pointer", s.Pointer, "gyro", s.Gyro)
}

// SetEnvironment swaps the panorama being shown.
func (v *Viewer) SetEnvironment(env projector.Environment) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.env = env
	v.dirty = true
}

// Environment returns the panorama being shown.
func (v *Viewer) Environment() projector.Environment {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.env
}

// OnPointerDown starts a drag and stops any running momentum.
func (v *Viewer) OnPointerDown(x, y float64, t time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.settings.Pointer {
		return
	}
	v.cancelMomentum()
	v.gesture.Start(x, y, t)
}

// OnPointerMove drags the camera.
func (v *Viewer) OnPointerMove(x, y float64, t time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.settings.Pointer {
		return
	}
	if _, ok := v.gesture.Move(x, y, t); ok {
		v.dirty = true
	}
}

// OnPointerUp ends the drag and starts the release momentum, if any.
func (v *Viewer) OnPointerUp(x, y float64, t time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.settings.Pointer {
		return
	}
	r, ok := v.gesture.End(x, y, t)
	if !ok {
		return
	}
	v.dirty = true
	if r.HasMomentum() {
		v.momentum = gesture.NewMomentum(r, t, gesture.ReleaseEasing)
		v.log.Debug("release", "velocity", r.Velocity, "duration", r.Duration)
	}
}

// OnWheel zooms by wheel notches; positive notches widen the field of view.
func (v *Viewer) OnWheel(notches float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if notches == 0 {
		return
	}
	v.cam.SetFieldOfView(notches)
	v.dirty = true
}

// OnOrientation feeds one device-orientation sample when the gyro is enabled.
func (v *Viewer) OnOrientation(s orientation.Sample) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.settings.Gyro {
		return false
	}
	if _, ok := v.filter.Apply(s, v.cam); !ok {
		return false
	}
	v.dirty = true
	return true
}

// OnMessage handles a relayed orientation envelope. Messages of other types
// are ignored without error.
func (v *Viewer) OnMessage(msg []byte) error {
	s, err := orientation.DecodeEnvelope(msg)
	if errors.Is(err, orientation.ErrNotOrientation) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("viewer: message: %w", err)
	}
	v.OnOrientation(s)
	return nil
}

// OnScreenOrientation re-baselines the sensor filter after a screen rotation.
func (v *Viewer) OnScreenOrientation(o orientation.ScreenOrientation) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filter.Reset(o)
	v.log.Debug("screen orientation", "angle", int(o))
}

// Tick advances the release momentum and auto-rotation to now.
func (v *Viewer) Tick(now time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.momentum != nil {
		d, running := v.momentum.Step(now)
		if d.Heading != 0 || d.Pitch != 0 {
			v.cam.SetHeading(d.Heading)
			v.cam.SetPitch(d.Pitch)
			v.dirty = true
		}
		if !running {
			v.momentum = nil
		}
	}

	if !v.lastTick.IsZero() && v.settings.AutoRotate != RotateOff && v.gesture.State() == gesture.Idle {
		dt := now.Sub(v.lastTick).Seconds()
		if dt > 0 {
			step := v.settings.AutoRotateSpeed * dt
			if v.settings.AutoRotate == RotateRight {
				step = -step
			}
			v.cam.SetHeading(step)
			v.dirty = true
		}
	}
	v.lastTick = now
}

// Animating reports whether release momentum is still running.
func (v *Viewer) Animating() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.momentum != nil
}

// Dirty reports whether the view changed since the last Draw.
func (v *Viewer) Dirty() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.dirty
}

// Invalidate forces the next Draw to render, e.g. after the surface resized.
func (v *Viewer) Invalidate() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.dirty = true
}

// Draw renders the current view if it changed and presents it. It reports
// whether a frame was rendered; a missing environment is not an error.
func (v *Viewer) Draw(ctx context.Context) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.surface == nil {
		return false, ErrNoSurface
	}
	if !v.dirty {
		return false, nil
	}
	fb := v.surface.FrameBuffer()
	view := v.cam.View()

	var drawn bool
	if v.settings.Workers > 1 {
		var err error
		drawn, err = v.proj.RenderParallel(ctx, view, v.env, fb, v.settings.Workers)
		if err != nil {
			return false, fmt.Errorf("viewer: render: %w", err)
		}
	} else {
		drawn = v.proj.Render(view, v.env, fb)
	}
	if !drawn {
		return false, nil
	}
	v.dirty = false
	if err := v.surface.Present(); err != nil {
		return true, fmt.Errorf("viewer: present: %w", err)
	}
	return true, nil
}

func (v *Viewer) cancelMomentum() {
	if v.momentum != nil {
		v.momentum.Cancel()
		v.momentum = nil
	}
}
