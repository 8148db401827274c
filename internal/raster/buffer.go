package raster

import "image"

// FrameBuffer is the destination raster as a flat RGBA slice for cache locality.
// The projector writes RGB only; alpha keeps whatever the caller initialized.
type FrameBuffer struct {
	Width  int
	Height int
	Pix    []uint8 // RGBA interleaved, len = W*H*4
}

// NewFrameBuffer allocates an opaque black buffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	fb := &FrameBuffer{
		Width:  w,
		Height: h,
		Pix:    make([]uint8, w*h*4),
	}
	fb.Clear(0, 0, 0, 255)
	return fb
}

// Empty reports whether the buffer has no pixels to draw into.
func (fb *FrameBuffer) Empty() bool {
	return fb == nil || fb.Width <= 0 || fb.Height <= 0 || len(fb.Pix) < fb.Width*fb.Height*4
}

// Clear fills every pixel with the given color.
func (fb *FrameBuffer) Clear(r, g, b, a uint8) {
	for i := 0; i+3 < len(fb.Pix); i += 4 {
		fb.Pix[i] = r
		fb.Pix[i+1] = g
		fb.Pix[i+2] = b
		fb.Pix[i+3] = a
	}
}

// RGBA returns the color at (x, y).
func (fb *FrameBuffer) RGBA(x, y int) (r, g, b, a uint8) {
	i := (y*fb.Width + x) * 4
	return fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2], fb.Pix[i+3]
}

// Resize reallocates the buffer when the dimensions change and reports whether it did.
func (fb *FrameBuffer) Resize(w, h int) bool {
	if w == fb.Width && h == fb.Height {
		return false
	}
	*fb = *NewFrameBuffer(w, h)
	return true
}

// Image wraps the buffer as an *image.RGBA sharing the same pixel memory.
func (fb *FrameBuffer) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    fb.Pix,
		Stride: fb.Width * 4,
		Rect:   image.Rect(0, 0, fb.Width, fb.Height),
	}
}
