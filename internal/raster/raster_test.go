package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFrameBufferOpaqueBlack(t *testing.T) {
	fb := NewFrameBuffer(3, 2)
	require.Len(t, fb.Pix, 3*2*4)
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			r, g, b, a := fb.RGBA(x, y)
			assert.Equal(t, [4]uint8{0, 0, 0, 255}, [4]uint8{r, g, b, a})
		}
	}
	assert.False(t, fb.Empty())
	assert.True(t, NewFrameBuffer(0, 5).Empty())
	assert.True(t, (*FrameBuffer)(nil).Empty())
}

func TestFrameBufferResizeAndImage(t *testing.T) {
	fb := NewFrameBuffer(2, 2)
	assert.False(t, fb.Resize(2, 2))
	assert.True(t, fb.Resize(4, 1))
	assert.Equal(t, 4, fb.Width)
	assert.Len(t, fb.Pix, 16)

	img := fb.Image()
	img.Set(1, 0, color.RGBA{9, 8, 7, 255})
	r, g, b, _ := fb.RGBA(1, 0)
	assert.Equal(t, [3]uint8{9, 8, 7}, [3]uint8{r, g, b})
}

func TestNewSourceValidates(t *testing.T) {
	_, err := NewSource(0, 1, nil)
	assert.Error(t, err)
	_, err = NewSource(2, 2, make([]uint8, 11))
	assert.Error(t, err)
	s, err := NewSource(2, 2, make([]uint8, 12))
	require.NoError(t, err)
	assert.True(t, s.Valid())
	assert.False(t, (*Source)(nil).Valid())
}

func TestFromImageDropsAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(10, 10, 12, 11))
	img.SetNRGBA(10, 10, color.NRGBA{255, 0, 0, 255})
	img.SetNRGBA(11, 10, color.NRGBA{0, 0, 255, 255})

	s := FromImage(img)
	require.Equal(t, 2, s.Width)
	require.Equal(t, 1, s.Height)
	r, g, b := s.At(0, 0)
	assert.Equal(t, [3]uint8{255, 0, 0}, [3]uint8{r, g, b})
	r, g, b = s.At(0, 1)
	assert.Equal(t, [3]uint8{0, 0, 255}, [3]uint8{r, g, b})

	back := s.Image()
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, back.RGBAAt(1, 0))
}

func TestSampleBilinear(t *testing.T) {
	// one row: black | white
	s, err := NewSource(2, 1, []uint8{0, 0, 0, 255, 255, 255})
	require.NoError(t, err)

	r, _, _ := SampleBilinear(s, 0.5, 0.5)
	assert.Equal(t, uint8(0), r)
	r, _, _ = SampleBilinear(s, 1.5, 0.5)
	assert.Equal(t, uint8(255), r)
	r, _, _ = SampleBilinear(s, 1.0, 0.5)
	assert.Equal(t, uint8(128), r)

	// across the seam the left column blends with the right one
	r, _, _ = SampleBilinear(s, 0.0, 0.5)
	assert.Equal(t, uint8(128), r)
	r, _, _ = SampleBilinear(s, 2.0, 0.5)
	assert.Equal(t, uint8(128), r)

	// rows clamp
	r, _, _ = SampleBilinear(s, 1.5, -3)
	assert.Equal(t, uint8(255), r)
}

func TestNewSolid(t *testing.T) {
	s := NewSolid(3, 3, 1, 2, 3)
	r, g, b := s.At(2, 2)
	assert.Equal(t, [3]uint8{1, 2, 3}, [3]uint8{r, g, b})
}

func TestSampleBilinearClampDoesNotWrap(t *testing.T) {
	s, err := NewSource(2, 1, []uint8{0, 0, 0, 255, 255, 255})
	require.NoError(t, err)
	r, _, _ := SampleBilinearClamp(s, 0.0, 0.5)
	assert.Equal(t, uint8(0), r)
	r, _, _ = SampleBilinearClamp(s, 2.0, 0.5)
	assert.Equal(t, uint8(255), r)
}
