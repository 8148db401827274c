package postprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pano-viewer/internal/raster"
)

func TestDownsampleUniform(t *testing.T) {
	fb := raster.NewFrameBuffer(8, 8)
	fb.Clear(200, 100, 50, 255)

	out := Downsample(fb, 4, 4)
	require.Equal(t, 4, out.Width)
	require.Equal(t, 4, out.Height)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			r, g, b, a := out.RGBA(x, y)
			assert.Equal(t, [4]uint8{200, 100, 50, 255}, [4]uint8{r, g, b, a})
		}
	}
}

func TestDownsampleNoop(t *testing.T) {
	fb := raster.NewFrameBuffer(4, 4)
	assert.Same(t, fb, Downsample(fb, 4, 4))
	assert.Same(t, fb, Downsample(fb, 8, 8))
}

func TestSupersample(t *testing.T) {
	w, h := Supersample(100, 50, 2)
	assert.Equal(t, 200, w)
	assert.Equal(t, 100, h)

	w, h = Supersample(100, 50, 0)
	assert.Equal(t, 100, w)
	assert.Equal(t, 50, h)

	w, _ = Supersample(100, 50, 9)
	assert.Equal(t, 400, w)
}

func TestFlipHorizontal(t *testing.T) {
	src, err := raster.NewSource(3, 1, []uint8{1, 1, 1, 2, 2, 2, 3, 3, 3})
	require.NoError(t, err)

	out := FlipHorizontal(src)
	assert.Equal(t, []uint8{3, 3, 3, 2, 2, 2, 1, 1, 1}, out.Samples)
	assert.Equal(t, []uint8{1, 1, 1, 2, 2, 2, 3, 3, 3}, src.Samples, "input untouched")

	assert.Equal(t, src.Samples, FlipHorizontal(out).Samples)
}

func TestFlipHorizontalFrame(t *testing.T) {
	fb := raster.NewFrameBuffer(2, 1)
	copy(fb.Pix, []uint8{1, 2, 3, 4, 5, 6, 7, 8})
	FlipHorizontalFrame(fb)
	assert.Equal(t, []uint8{5, 6, 7, 8, 1, 2, 3, 4}, fb.Pix)
}

func TestDrawText(t *testing.T) {
	fb := raster.NewFrameBuffer(200, 80)
	fb.Clear(0, 0, 0, 255)

	info := Info{CanvasWidth: 200, CanvasHeight: 80, ImageWidth: 4096, ImageHeight: 2048, FPS: 59.9}
	lines := info.Lines()
	require.Len(t, lines, 4)
	assert.Equal(t, "image  4096x2048", lines[1])

	DrawText(fb, lines)

	lit := false
	for i := 0; i < len(fb.Pix); i += 4 {
		if fb.Pix[i] > 128 {
			lit = true
			break
		}
	}
	assert.True(t, lit, "text pixels drawn")

	r, g, b, _ := fb.RGBA(199, 79)
	assert.Equal(t, [3]uint8{0, 0, 0}, [3]uint8{r, g, b}, "outside panel untouched")
}
