package postprocess

import (
	"golang.org/x/image/draw"

	"pano-viewer/internal/raster"
)

// Downsample reduces a supersampled frame to w x h with CatmullRom filtering
// (approximates Lanczos). Frames are opaque, so no alpha premultiplication is
// needed. The input is returned unchanged when it is already no larger.
func Downsample(fb *raster.FrameBuffer, w, h int) *raster.FrameBuffer {
	if fb.Empty() || w <= 0 || h <= 0 {
		return fb
	}
	if fb.Width <= w && fb.Height <= h {
		return fb
	}

	dst := raster.NewFrameBuffer(w, h)
	img := dst.Image()
	src := fb.Image()
	draw.CatmullRom.Scale(img, img.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// Supersample returns the render size for a factor, clamped to [1, 4].
func Supersample(w, h, factor int) (int, int) {
	if factor < 1 {
		factor = 1
	}
	if factor > 4 {
		factor = 4
	}
	return w * factor, h * factor
}
