package texture

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"pano-viewer/internal/projector"
	"pano-viewer/internal/raster"
)

// faceAliases maps lowercase file stems to cube faces.
var faceAliases = map[string]projector.Face{
	"front": projector.Front, "posz": projector.Front, "pz": projector.Front, "f": projector.Front,
	"back": projector.Back, "negz": projector.Back, "nz": projector.Back, "b": projector.Back,
	"left": projector.Left, "posx": projector.Left, "px": projector.Left, "l": projector.Left,
	"right": projector.Right, "negx": projector.Right, "nx": projector.Right, "r": projector.Right,
	"top": projector.Top, "posy": projector.Top, "py": projector.Top, "up": projector.Top, "u": projector.Top,
	"bottom": projector.Bottom, "negy": projector.Bottom, "ny": projector.Bottom, "down": projector.Bottom, "d": projector.Bottom,
}

// placeholder colors for faces without an image
var placeholders = [6][3]uint8{
	{96, 96, 96}, {64, 64, 64}, {80, 80, 96}, {96, 80, 80}, {128, 128, 144}, {48, 48, 40},
}

// Index maps cube faces to image paths found in a directory.
type Index struct {
	faces [6]string
}

// BuildIndex scans dir (non-recursively) for face images named by face or by
// the common posx/negx style aliases. Exact face names win over aliases.
func BuildIndex(dir string) (*Index, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("texture: scan %s: %w", dir, err)
	}

	idx := &Index{}
	for _, e := range entries {
		if e.IsDir() || !Supported(e.Name()) {
			continue
		}
		stem := strings.ToLower(strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
		face, ok := faceAliases[stem]
		if !ok {
			continue
		}
		path := filepath.Join(dir, e.Name())
		existing := idx.faces[face]
		if existing == "" || stem == face.String() {
			idx.faces[face] = path
		}
	}
	return idx, nil
}

// Path returns the image path of a face, or ("", false).
func (idx *Index) Path(f projector.Face) (string, bool) {
	p := idx.faces[f]
	return p, p != ""
}

// Len returns the number of faces with an image.
func (idx *Index) Len() int {
	n := 0
	for _, p := range idx.faces {
		if p != "" {
			n++
		}
	}
	return n
}

// LoadCube resolves every face of the index. Faces without an image get a
// solid placeholder of the given size; a face that fails to decode is an error.
func LoadCube(idx *Index, r Resolver, placeholderSize int) (projector.CubeMap, error) {
	var cube projector.CubeMap
	if placeholderSize <= 0 {
		placeholderSize = 1
	}
	for f := projector.Front; f <= projector.Bottom; f++ {
		path, ok := idx.Path(f)
		if !ok {
			slog.Warn("cube face missing, using placeholder", "face", f.String())
			c := placeholders[f]
			cube.Faces[f] = raster.NewSolid(placeholderSize, placeholderSize, c[0], c[1], c[2])
			continue
		}
		src, err := r.Resolve(path)
		if err != nil {
			return projector.CubeMap{}, fmt.Errorf("texture: face %s: %w", f, err)
		}
		cube.Faces[f] = src
	}
	return cube, nil
}
