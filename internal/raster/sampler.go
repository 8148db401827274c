package raster

// SampleBilinear filters the four texels around the continuous pixel position
// (x, y). Columns wrap around the seam; rows clamp at the poles.
func SampleBilinear(s *Source, x, y float64) (r, g, b uint8) {
	return bilinear(s, x, y, true)
}

// SampleBilinearClamp is SampleBilinear with both axes clamped, for cube faces.
func SampleBilinearClamp(s *Source, x, y float64) (r, g, b uint8) {
	return bilinear(s, x, y, false)
}

// bilinear accesses Samples directly for performance.
func bilinear(s *Source, x, y float64, wrapX bool) (r, g, b uint8) {
	w, h := s.Width, s.Height

	// Texel centers sit at +0.5
	x -= 0.5
	y -= 0.5

	fx := floor(x)
	fy := floor(y)
	dx := x - float64(fx)
	dy := y - float64(fy)

	var x0, x1 int
	if wrapX {
		x0 = wrap(fx, w)
		x1 = wrap(fx+1, w)
	} else {
		x0 = clampInt(fx, w)
		x1 = clampInt(fx+1, w)
	}
	y0 := clampInt(fy, h)
	y1 := clampInt(fy+1, h)

	pix := s.Samples
	i00 := (y0*w + x0) * 3
	i10 := (y0*w + x1) * 3
	i01 := (y1*w + x0) * 3
	i11 := (y1*w + x1) * 3

	w00 := (1 - dx) * (1 - dy)
	w10 := dx * (1 - dy)
	w01 := (1 - dx) * dy
	w11 := dx * dy

	fr := float64(pix[i00])*w00 + float64(pix[i10])*w10 + float64(pix[i01])*w01 + float64(pix[i11])*w11
	fg := float64(pix[i00+1])*w00 + float64(pix[i10+1])*w10 + float64(pix[i01+1])*w01 + float64(pix[i11+1])*w11
	fb := float64(pix[i00+2])*w00 + float64(pix[i10+2])*w10 + float64(pix[i01+2])*w01 + float64(pix[i11+2])*w11

	return clamp255(fr), clamp255(fg), clamp255(fb)
}

func floor(v float64) int {
	i := int(v)
	if float64(i) > v {
		i--
	}
	return i
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

func clampInt(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
