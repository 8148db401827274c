package projector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pano-viewer/internal/camera"
	"pano-viewer/internal/mathutil"
	"pano-viewer/internal/raster"
)

var faceColors = [6][3]uint8{
	Front:  {255, 0, 0},
	Back:   {0, 255, 0},
	Left:   {0, 0, 255},
	Right:  {255, 255, 0},
	Top:    {0, 255, 255},
	Bottom: {255, 0, 255},
}

func coloredCube() CubeMap {
	var c CubeMap
	for i, col := range faceColors {
		c.Faces[i] = raster.NewSolid(4, 4, col[0], col[1], col[2])
	}
	return c
}

func TestFaceUV(t *testing.T) {
	tests := []struct {
		dir  mathutil.Vec3
		face Face
	}{
		{mathutil.Vec3{0, 0, 1}, Front},
		{mathutil.Vec3{0, 0, -1}, Back},
		{mathutil.Vec3{1, 0, 0}, Left},
		{mathutil.Vec3{-1, 0, 0}, Right},
		{mathutil.Vec3{0, 1, 0}, Top},
		{mathutil.Vec3{0, -1, 0}, Bottom},
	}
	for _, tt := range tests {
		t.Run(tt.face.String(), func(t *testing.T) {
			face, u, v := FaceUV(tt.dir)
			assert.Equal(t, tt.face, face)
			assert.InDelta(t, 0.5, u, 1e-12)
			assert.InDelta(t, 0.5, v, 1e-12)
		})
	}
}

func TestFaceUVOrientation(t *testing.T) {
	// looking at the front face, +u follows the camera's right (-X) and +v points down
	_, u, v := FaceUV(mathutil.Vec3{-0.5, -0.5, 1})
	assert.InDelta(t, 0.75, u, 1e-12)
	assert.InDelta(t, 0.75, v, 1e-12)

	_, u, _ = FaceUV(mathutil.Vec3{0.5, 0, -1})
	assert.InDelta(t, 0.75, u, 1e-12)
}

func TestCubeCenterPixelPicksFace(t *testing.T) {
	cube := coloredCube()
	require.True(t, cube.Valid())
	p := New()

	tests := []struct {
		name           string
		heading, pitch float64
		face           Face
	}{
		{"front", 0, 90, Front},
		{"back", 180, 90, Back},
		{"left", 90, 90, Left},
		{"right", -90, 90, Right},
		{"top", 0, 0, Top},
		{"bottom", 0, 180, Bottom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := raster.NewFrameBuffer(2, 2)
			require.True(t, p.Render(camera.View{Heading: tt.heading, Pitch: tt.pitch, FieldOfView: 60}, cube, fb))
			// pixel (1,1) is fx = fy = 0.5, the forward ray
			assert.Equal(t, faceColors[tt.face], rgb(fb, 1, 1))
		})
	}
}

func TestCubeMapInvalidWithMissingFace(t *testing.T) {
	cube := coloredCube()
	cube.Faces[Top] = nil
	assert.False(t, cube.Valid())
	assert.False(t, New().Render(camera.View{Pitch: 90, FieldOfView: 90}, cube, raster.NewFrameBuffer(2, 2)))
	assert.Equal(t, "top", Top.String())
	assert.Equal(t, "unknown", Face(9).String())
}
