package raster

import (
	"fmt"
	"image"
	"image/draw"
)

// Source is an immutable RGB raster, row-major, top-to-bottom, left-to-right.
type Source struct {
	Width   int
	Height  int
	Samples []uint8 // RGB interleaved, len = W*H*3
}

// NewSource validates dimensions against the sample slice.
func NewSource(w, h int, samples []uint8) (*Source, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("raster: invalid source size %dx%d", w, h)
	}
	if len(samples) != w*h*3 {
		return nil, fmt.Errorf("raster: source %dx%d needs %d samples, got %d", w, h, w*h*3, len(samples))
	}
	return &Source{Width: w, Height: h, Samples: samples}, nil
}

// NewSolid creates a source filled with a single color.
func NewSolid(w, h int, r, g, b uint8) *Source {
	s := &Source{Width: w, Height: h, Samples: make([]uint8, w*h*3)}
	for i := 0; i+2 < len(s.Samples); i += 3 {
		s.Samples[i] = r
		s.Samples[i+1] = g
		s.Samples[i+2] = b
	}
	return s
}

// Valid reports whether the source can be sampled.
func (s *Source) Valid() bool {
	return s != nil && s.Width > 0 && s.Height > 0 && len(s.Samples) >= s.Width*s.Height*3
}

// At returns the sample at (row, col). Indices must be in range.
func (s *Source) At(row, col int) (r, g, b uint8) {
	i := (row*s.Width + col) * 3
	return s.Samples[i], s.Samples[i+1], s.Samples[i+2]
}

// FromImage drops alpha and copies any decoded image into a Source.
func FromImage(img image.Image) *Source {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	src := &Source{Width: w, Height: h, Samples: make([]uint8, w*h*3)}
	if w == 0 || h == 0 {
		return src
	}

	rgba, ok := img.(*image.RGBA)
	if !ok {
		// draw handles YCbCr, paletted and gray conversions for us
		rgba = image.NewRGBA(image.Rect(0, 0, w, h))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
		b = rgba.Bounds()
	}

	j := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := rgba.PixOffset(b.Min.X, y)
		for x := 0; x < w; x++ {
			i := off + x*4
			src.Samples[j] = rgba.Pix[i]
			src.Samples[j+1] = rgba.Pix[i+1]
			src.Samples[j+2] = rgba.Pix[i+2]
			j += 3
		}
	}
	return src
}

// Image converts the source back into an opaque *image.RGBA.
func (s *Source) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.Width, s.Height))
	for i, j := 0, 0; i+2 < len(s.Samples); i, j = i+3, j+4 {
		img.Pix[j] = s.Samples[i]
		img.Pix[j+1] = s.Samples[i+1]
		img.Pix[j+2] = s.Samples[i+2]
		img.Pix[j+3] = 255
	}
	return img
}
