package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"pano-viewer/internal/postprocess"
	"pano-viewer/internal/projector"
	"pano-viewer/internal/raster"
	"pano-viewer/internal/viewer"
)

var errQuit = errors.New("quit")

// surface presents viewer frames through an ebiten image.
type surface struct {
	fb      *raster.FrameBuffer
	out     *raster.FrameBuffer
	img     *ebiten.Image
	overlay bool
	imgW    int
	imgH    int
}

func newSurface(w, h int, env projector.Environment) *surface {
	s := &surface{
		fb:  raster.NewFrameBuffer(w, h),
		out: raster.NewFrameBuffer(w, h),
	}
	switch e := env.(type) {
	case projector.Equirect:
		s.imgW, s.imgH = e.Source.Width, e.Source.Height
	case projector.CubeMap:
		if f := e.Faces[projector.Front]; f != nil {
			s.imgW, s.imgH = f.Width, f.Height
		}
	}
	return s
}

func (s *surface) FrameBuffer() *raster.FrameBuffer { return s.fb }

// Present copies the frame, adds the overlay when enabled, and uploads it.
func (s *surface) Present() error {
	if s.img == nil {
		s.img = ebiten.NewImage(s.fb.Width, s.fb.Height)
	}
	copy(s.out.Pix, s.fb.Pix)
	if s.overlay {
		postprocess.DrawText(s.out, postprocess.Info{
			CanvasWidth:  s.fb.Width,
			CanvasHeight: s.fb.Height,
			ImageWidth:   s.imgW,
			ImageHeight:  s.imgH,
			FPS:          ebiten.ActualFPS(),
		}.Lines())
	}
	s.img.WritePixels(s.out.Pix)
	return nil
}

type game struct {
	ctx     context.Context
	v       *viewer.Viewer
	surface *surface

	touch    ebiten.TouchID
	touching bool
	mouse    bool
	lastX    float64
	lastY    float64
	touchIDs []ebiten.TouchID
}

func newGame(ctx context.Context, v *viewer.Viewer, s *surface) *game {
	return &game{ctx: ctx, v: v, surface: s}
}

func (g *game) Update() error {
	if g.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return errQuit
	}
	now := time.Now()

	if inpututil.IsKeyJustPressed(ebiten.KeyI) {
		g.surface.overlay = !g.surface.overlay
		g.v.Invalidate()
	}
	if g.surface.overlay {
		// keep the FPS readout fresh
		g.v.Invalidate()
	}

	g.updateMouse(now)
	g.updateTouch(now)

	if _, dy := ebiten.Wheel(); dy != 0 {
		g.v.OnWheel(dy)
	}

	g.v.Tick(now)
	return nil
}

func (g *game) updateMouse(now time.Time) {
	if g.touching {
		return
	}
	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx), float64(cy)

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.mouse = true
		g.v.OnPointerDown(x, y, now)
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) && g.mouse:
		g.mouse = false
		g.v.OnPointerUp(x, y, now)
	case g.mouse && (x != g.lastX || y != g.lastY):
		g.v.OnPointerMove(x, y, now)
	}
	g.lastX, g.lastY = x, y
}

func (g *game) updateTouch(now time.Time) {
	if g.touching {
		if inpututil.IsTouchJustReleased(g.touch) {
			px, py := inpututil.TouchPositionInPreviousTick(g.touch)
			g.touching = false
			g.v.OnPointerUp(float64(px), float64(py), now)
			return
		}
		tx, ty := ebiten.TouchPosition(g.touch)
		g.v.OnPointerMove(float64(tx), float64(ty), now)
		return
	}

	g.touchIDs = inpututil.AppendJustPressedTouchIDs(g.touchIDs[:0])
	if len(g.touchIDs) == 0 || g.mouse {
		return
	}
	g.touch = g.touchIDs[0]
	g.touching = true
	tx, ty := ebiten.TouchPosition(g.touch)
	g.v.OnPointerDown(float64(tx), float64(ty), now)
}

func (g *game) Draw(screen *ebiten.Image) {
	if _, err := g.v.Draw(g.ctx); err != nil {
		slog.Warn("draw failed", "error", err)
		return
	}
	if g.surface.img != nil {
		screen.DrawImage(g.surface.img, nil)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.surface.fb.Width, g.surface.fb.Height
}
