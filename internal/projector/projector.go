// Package projector maps destination raster coordinates to samples of a
// spherical environment by casting one ray per destination pixel.
package projector

import (
	"context"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"pano-viewer/internal/camera"
	"pano-viewer/internal/mathutil"
	"pano-viewer/internal/raster"
)

// DefaultAspect is the fixed view-plane width/height ratio of the reference viewer.
const DefaultAspect = 1.33

// Filter selects how environment samples are reconstructed.
type Filter int

const (
	Nearest Filter = iota
	Bilinear
)

// ParseFilter maps a config name to a Filter. Unknown names fall back to Nearest.
func ParseFilter(name string) Filter {
	if name == "bilinear" {
		return Bilinear
	}
	return Nearest
}

// Variant identifies the camera model of an environment.
type Variant int

const (
	VariantEquirect Variant = iota
	VariantCube
)

// Environment is anything the projector can sample along a ray direction.
// Implementations must be immutable while a frame renders.
type Environment interface {
	Valid() bool
	Variant() Variant
	Lookup(dir mathutil.Vec3, f Filter) (r, g, b uint8)
}

// Projector renders camera views of an environment into a frame buffer.
// It holds no per-frame state and may be shared between viewers.
type Projector struct {
	aspect     float64
	destAspect bool
	filter     Filter
}

// Option configures a Projector.
type Option func(*Projector)

// WithAspect overrides the view-plane aspect ratio.
func WithAspect(a float64) Option {
	return func(p *Projector) {
		if a > 0 {
			p.aspect = a
			p.destAspect = false
		}
	}
}

// WithDestinationAspect derives the aspect ratio from the destination size.
func WithDestinationAspect() Option {
	return func(p *Projector) {
		p.destAspect = true
	}
}

// WithFilter selects the sampling filter.
func WithFilter(f Filter) Option {
	return func(p *Projector) {
		p.filter = f
	}
}

// New creates a projector with the reference aspect and nearest sampling.
func New(opts ...Option) *Projector {
	p := &Projector{aspect: DefaultAspect, filter: Nearest}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Basis is the camera-space view rectangle for one frame.
type Basis struct {
	Forward mathutil.Vec3
	Up      mathutil.Vec3 // scaled by 2·tan(fov/2)
	Right   mathutil.Vec3 // scaled by Up's ratio × aspect
	Origin  mathutil.Vec3 // top-left corner: forward + up/2 - right/2
}

// Basis computes the view rectangle for a w×h destination. Roll is applied
// only when withRoll is set (cube variant).
func (p *Projector) Basis(v camera.View, w, h int, withRoll bool) Basis {
	aspect := p.aspect
	if p.destAspect && w > 0 && h > 0 {
		aspect = float64(w) / float64(h)
	}

	ratioUp := 2.0 * tanHalf(v.FieldOfView)
	ratioRight := ratioUp * aspect

	forward := mathutil.Spherical(v.Pitch, v.Heading)
	up := mathutil.Spherical(v.Pitch-90.0, v.Heading).Mul(ratioUp)
	right := mathutil.Horizontal(v.Heading - 90.0).Mul(ratioRight)

	if withRoll && v.Roll != 0 {
		up = mathutil.RotateAbout(up, forward, v.Roll)
		right = mathutil.RotateAbout(right, forward, v.Roll)
	}

	return Basis{
		Forward: forward,
		Up:      up,
		Right:   right,
		Origin:  forward.Add(up.Mul(0.5)).Sub(right.Mul(0.5)),
	}
}

// Ray returns the unnormalized direction through the view plane at (fx, fy),
// both in [0,1) with (0,0) at the top-left.
func (b Basis) Ray(fx, fy float64) mathutil.Vec3 {
	return mathutil.Vec3{
		b.Origin[0] + fx*b.Right[0] - fy*b.Up[0],
		b.Origin[1] + fx*b.Right[1] - fy*b.Up[1],
		b.Origin[2] + fx*b.Right[2] - fy*b.Up[2],
	}
}

// Render projects the view into fb. It returns false and leaves fb untouched
// when there is nothing to sample or nowhere to draw.
func (p *Projector) Render(v camera.View, env Environment, fb *raster.FrameBuffer) bool {
	if !ready(env, fb) {
		return false
	}
	b := p.Basis(v, fb.Width, fb.Height, env.Variant() == VariantCube)
	p.renderRows(b, env, fb, 0, fb.Height)
	return true
}

// RenderEquirect is Render for a plain equirectangular source.
func (p *Projector) RenderEquirect(v camera.View, src *raster.Source, fb *raster.FrameBuffer) bool {
	return p.Render(v, Equirect{Source: src}, fb)
}

// RenderParallel splits the destination rows across workers. The output is
// byte-identical to Render. workers <= 0 uses GOMAXPROCS.
func (p *Projector) RenderParallel(ctx context.Context, v camera.View, env Environment, fb *raster.FrameBuffer, workers int) (bool, error) {
	if !ready(env, fb) {
		return false, nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > fb.Height {
		workers = fb.Height
	}
	b := p.Basis(v, fb.Width, fb.Height, env.Variant() == VariantCube)

	g, ctx := errgroup.WithContext(ctx)
	rows := (fb.Height + workers - 1) / workers
	for y0 := 0; y0 < fb.Height; y0 += rows {
		y1 := min(y0+rows, fb.Height)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p.renderRows(b, env, fb, y0, y1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return false, err
	}
	return true, nil
}

// renderRows is the hot path: one ray per pixel, RGB written, alpha untouched.
func (p *Projector) renderRows(b Basis, env Environment, fb *raster.FrameBuffer, y0, y1 int) {
	w, h := fb.Width, fb.Height
	fw, fh := float64(w), float64(h)
	pix := fb.Pix
	filter := p.filter

	for i := y0; i < y1; i++ {
		fy := float64(i) / fh
		rowOff := i * w * 4
		for j := 0; j < w; j++ {
			fx := float64(j) / fw
			r, g, bl := env.Lookup(b.Ray(fx, fy), filter)

			off := rowOff + j*4
			pix[off] = r
			pix[off+1] = g
			pix[off+2] = bl
		}
	}
}

func tanHalf(fovDeg float64) float64 {
	return math.Tan(mathutil.Deg2Rad(fovDeg) / 2.0)
}

func ready(env Environment, fb *raster.FrameBuffer) bool {
	return env != nil && env.Valid() && !fb.Empty()
}
