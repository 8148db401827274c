package texture

import (
	"fmt"
	"log/slog"

	"pano-viewer/internal/postprocess"
	"pano-viewer/internal/projector"
)

// Request names the panorama to load.
type Request struct {
	Variant string // "equirect" or "cube"
	Source  string // equirectangular image
	CubeDir string // directory of face images
	Mirror  bool   // flip the equirectangular source left-to-right
}

// LoadEnvironment decodes the requested panorama into a projector environment.
func LoadEnvironment(req Request, r Resolver) (projector.Environment, error) {
	if r == nil {
		r = NewCache()
	}
	switch req.Variant {
	case "cube":
		idx, err := BuildIndex(req.CubeDir)
		if err != nil {
			return nil, err
		}
		if idx.Len() == 0 {
			return nil, fmt.Errorf("texture: no cube faces in %s", req.CubeDir)
		}
		if req.Mirror {
			slog.Warn("mirror is only supported for equirectangular sources")
		}
		size := 0
		for f := projector.Front; f <= projector.Bottom; f++ {
			if p, ok := idx.Path(f); ok {
				src, err := r.Resolve(p)
				if err != nil {
					return nil, fmt.Errorf("texture: face %s: %w", f, err)
				}
				size = src.Width
				break
			}
		}
		cube, err := LoadCube(idx, r, size)
		if err != nil {
			return nil, err
		}
		slog.Info("cube loaded", "dir", req.CubeDir, "faces", idx.Len(), "size", size)
		return cube, nil

	case "equirect", "":
		src, err := r.Resolve(req.Source)
		if err != nil {
			return nil, err
		}
		if req.Mirror {
			src = postprocess.FlipHorizontal(src)
		}
		slog.Info("panorama loaded", "source", req.Source, "width", src.Width, "height", src.Height)
		return projector.Equirect{Source: src}, nil
	}
	return nil, fmt.Errorf("texture: unknown variant %q", req.Variant)
}
