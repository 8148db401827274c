package postprocess

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"pano-viewer/internal/raster"
)

// Info is the status shown by the overlay.
type Info struct {
	CanvasWidth  int
	CanvasHeight int
	ImageWidth   int
	ImageHeight  int
	FPS          float64
	Heading      float64
	Pitch        float64
	FieldOfView  float64
}

// Lines formats the overlay text.
func (in Info) Lines() []string {
	return []string{
		fmt.Sprintf("canvas %dx%d", in.CanvasWidth, in.CanvasHeight),
		fmt.Sprintf("image  %dx%d", in.ImageWidth, in.ImageHeight),
		fmt.Sprintf("fps    %.1f", in.FPS),
		fmt.Sprintf("view   h=%.1f p=%.1f fov=%.1f", in.Heading, in.Pitch, in.FieldOfView),
	}
}

const (
	lineHeight = 16
	padding    = 6
)

// DrawText draws lines in the top-left corner over a translucent panel.
func DrawText(fb *raster.FrameBuffer, lines []string) {
	if fb.Empty() || len(lines) == 0 {
		return
	}
	face := basicfont.Face7x13
	img := fb.Image()

	width := 0
	for _, l := range lines {
		if adv := font.MeasureString(face, l).Ceil(); adv > width {
			width = adv
		}
	}
	panel := image.Rect(0, 0, width+2*padding, len(lines)*lineHeight+padding).Intersect(img.Bounds())
	draw.Draw(img, panel, image.NewUniform(color.RGBA{0, 0, 0, 160}), image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{255, 255, 255, 255}),
		Face: face,
	}
	for i, l := range lines {
		d.Dot = fixed.P(padding, (i+1)*lineHeight)
		d.DrawString(l)
	}
}
