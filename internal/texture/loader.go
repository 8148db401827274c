package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"

	"pano-viewer/internal/raster"
)

// ErrUnsupportedFormat is returned for files no registered decoder accepts.
var ErrUnsupportedFormat = errors.New("texture: unsupported format")

type decodeFunc func(io.Reader) (image.Image, error)

// decoders by file extension. TGA has no magic number, so files are decoded
// by extension rather than by sniffing.
var decoders = map[string]decodeFunc{
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".png":  png.Decode,
	".gif":  gif.Decode,
	".bmp":  bmp.Decode,
	".tif":  tiff.Decode,
	".tiff": tiff.Decode,
	".webp": webp.Decode,
	".tga":  tga.Decode,
}

// Supported reports whether the file extension has a decoder.
func Supported(path string) bool {
	_, ok := decoders[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Load reads an image file and returns it as an RGB source.
func Load(path string) (*raster.Source, error) {
	if !Supported(path) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("texture: read %s: %w", path, err)
	}
	src, err := Decode(bytes.NewReader(raw), filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}
	return src, nil
}

// Decode decodes r with the decoder registered for ext (".png", "tga", ...).
func Decode(r io.Reader, ext string) (*raster.Source, error) {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	decode, ok := decoders[strings.ToLower(ext)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	img, err := decode(r)
	if err != nil {
		return nil, err
	}
	src := raster.FromImage(img)
	if !src.Valid() {
		return nil, errors.New("texture: empty image")
	}
	return src, nil
}
