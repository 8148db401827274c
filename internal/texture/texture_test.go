package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pano-viewer/internal/projector"
	"pano-viewer/internal/raster"
)

func writePNG(t *testing.T, path string, w, h int, c color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
}

func TestLoadPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pano.png")
	writePNG(t, path, 8, 4, color.NRGBA{10, 20, 30, 255})

	src, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, src.Width)
	assert.Equal(t, 4, src.Height)
	r, g, b := src.At(3, 7)
	assert.Equal(t, [3]uint8{10, 20, 30}, [3]uint8{r, g, b})
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "pano.xyz"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(filepath.Join(dir, "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0644))
	_, err = Load(bad)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnsupportedFormat)
}

func TestCacheLoadsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pano.png")
	writePNG(t, path, 2, 1, color.NRGBA{1, 2, 3, 255})

	c := NewCache()
	calls := 0
	c.load = func(p string) (*raster.Source, error) {
		calls++
		return Load(p)
	}

	a, err := c.Resolve(path)
	require.NoError(t, err)
	b, err := c.Resolve(filepath.Join(filepath.Dir(path), ".", "pano.png"))
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, c.Len())
}

func TestBuildIndexAndLoadCube(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "front.png"), 4, 4, color.NRGBA{255, 0, 0, 255})
	writePNG(t, filepath.Join(dir, "posz.png"), 4, 4, color.NRGBA{0, 0, 0, 255})
	writePNG(t, filepath.Join(dir, "negz.png"), 4, 4, color.NRGBA{0, 255, 0, 255})
	writePNG(t, filepath.Join(dir, "Top.PNG"), 4, 4, color.NRGBA{0, 0, 255, 255})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	idx, err := BuildIndex(dir)
	require.NoError(t, err)
	assert.Equal(t, 3, idx.Len())

	p, ok := idx.Path(projector.Front)
	require.True(t, ok)
	assert.Equal(t, "front.png", filepath.Base(p))
	_, ok = idx.Path(projector.Left)
	assert.False(t, ok)

	cube, err := LoadCube(idx, NewCache(), 2)
	require.NoError(t, err)
	assert.True(t, cube.Valid())

	r, g, b := cube.Faces[projector.Front].At(0, 0)
	assert.Equal(t, [3]uint8{255, 0, 0}, [3]uint8{r, g, b})
	r, g, b = cube.Faces[projector.Back].At(0, 0)
	assert.Equal(t, [3]uint8{0, 255, 0}, [3]uint8{r, g, b})
	assert.Equal(t, 2, cube.Faces[projector.Left].Width)
}

func TestBuildIndexMissingDir(t *testing.T) {
	_, err := BuildIndex(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestDecodeByExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pano.png")
	writePNG(t, path, 3, 2, color.NRGBA{9, 8, 7, 255})
	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	src, err := Decode(bytes.NewReader(raw), "PNG")
	require.NoError(t, err)
	assert.Equal(t, 3, src.Width)

	_, err = Decode(bytes.NewReader(raw), ".psd")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadEnvironmentEquirect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pano.png")
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 255})
	img.SetNRGBA(1, 0, color.NRGBA{0, 0, 255, 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	env, err := LoadEnvironment(Request{Variant: "equirect", Source: path}, nil)
	require.NoError(t, err)
	eq, ok := env.(projector.Equirect)
	require.True(t, ok)
	r, _, _ := eq.Source.At(0, 0)
	assert.Equal(t, uint8(255), r)

	env, err = LoadEnvironment(Request{Variant: "equirect", Source: path, Mirror: true}, nil)
	require.NoError(t, err)
	r, _, b := env.(projector.Equirect).Source.At(0, 0)
	assert.Equal(t, [2]uint8{0, 255}, [2]uint8{r, b})
}

func TestLoadEnvironmentCube(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "back.png"), 5, 5, color.NRGBA{1, 2, 3, 255})

	env, err := LoadEnvironment(Request{Variant: "cube", CubeDir: dir}, nil)
	require.NoError(t, err)
	cube, ok := env.(projector.CubeMap)
	require.True(t, ok)
	assert.Equal(t, projector.VariantCube, cube.Variant())
	assert.Equal(t, 5, cube.Faces[projector.Top].Width, "placeholder matches face size")
}

func TestLoadEnvironmentErrors(t *testing.T) {
	_, err := LoadEnvironment(Request{Variant: "cube", CubeDir: t.TempDir()}, nil)
	assert.Error(t, err)

	_, err = LoadEnvironment(Request{Variant: "sphere"}, nil)
	assert.Error(t, err)

	_, err = LoadEnvironment(Request{Variant: "equirect", Source: "missing.png"}, nil)
	assert.Error(t, err)
}
