package postprocess

import "pano-viewer/internal/raster"

// FlipHorizontal mirrors a source left-to-right. Panoramas shot for viewing
// from outside the sphere need this to read correctly from the inside.
func FlipHorizontal(src *raster.Source) *raster.Source {
	if !src.Valid() {
		return src
	}
	w, h := src.Width, src.Height
	out := &raster.Source{Width: w, Height: h, Samples: make([]uint8, w*h*3)}
	for y := 0; y < h; y++ {
		row := y * w * 3
		for x := 0; x < w; x++ {
			si := row + (w-1-x)*3
			di := row + x*3
			copy(out.Samples[di:di+3], src.Samples[si:si+3])
		}
	}
	return out
}

// FlipHorizontalFrame mirrors a frame buffer in place.
func FlipHorizontalFrame(fb *raster.FrameBuffer) {
	if fb.Empty() {
		return
	}
	w := fb.Width
	for y := 0; y < fb.Height; y++ {
		row := y * w * 4
		for l, r := 0, w-1; l < r; l, r = l+1, r-1 {
			li, ri := row+l*4, row+r*4
			for c := 0; c < 4; c++ {
				fb.Pix[li+c], fb.Pix[ri+c] = fb.Pix[ri+c], fb.Pix[li+c]
			}
		}
	}
}
