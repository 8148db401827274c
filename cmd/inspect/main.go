package main

import (
	"fmt"
	"math"
	"os"

	"pano-viewer/internal/camera"
	"pano-viewer/internal/mathutil"
	"pano-viewer/internal/projector"
	"pano-viewer/internal/texture"
)

// inspect prints what the viewer would see of a panorama: source size, cube
// faces found, and where the corner and center rays of the default view land.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: inspect <panorama image | cube face directory>")
		os.Exit(2)
	}
	path := os.Args[1]

	info, err := os.Stat(path)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	req := texture.Request{Variant: "equirect", Source: path}
	if info.IsDir() {
		req = texture.Request{Variant: "cube", CubeDir: path}
		idx, err := texture.BuildIndex(path)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cube faces: %d/6\n", idx.Len())
		for f := projector.Front; f <= projector.Bottom; f++ {
			if p, ok := idx.Path(f); ok {
				fmt.Printf("  %-6s %s\n", f, p)
			} else {
				fmt.Printf("  %-6s (placeholder)\n", f)
			}
		}
	}

	env, err := texture.LoadEnvironment(req, texture.NewCache())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if eq, ok := env.(projector.Equirect); ok {
		w, h := eq.Source.Width, eq.Source.Height
		fmt.Printf("Equirect: %dx%d, ratio %.3f\n", w, h, float64(w)/float64(h))
		if w != 2*h {
			fmt.Println("  Warning: not 2:1, poles and horizon will be stretched")
		}
		fmt.Printf("  Degrees per pixel: %.4f horizontal, %.4f vertical\n", 360/float64(w), 180/float64(h))
	}

	// Corner and center rays of the default view on a 320x240 destination
	const dw, dh = 320, 240
	view := camera.New().View()
	b := projector.New().Basis(view, dw, dh, env.Variant() == projector.VariantCube)
	fmt.Printf("Default view: heading=%.0f pitch=%.0f fov=%.0f\n", view.Heading, view.Pitch, view.FieldOfView)
	for _, p := range []struct {
		name   string
		fx, fy float64
	}{
		{"top-left", 0, 0},
		{"top-right", 1, 0},
		{"center", 0.5, 0.5},
		{"bottom-left", 0, 1},
		{"bottom-right", 1, 1},
	} {
		ray := b.Ray(p.fx, p.fy)
		theta, phi := mathutil.PolarAzimuth(ray)
		line := fmt.Sprintf("  %-12s theta=%6.1f phi=%6.1f", p.name, mathutil.Rad2Deg(theta), mathutil.Rad2Deg(phi))
		if eq, ok := env.(projector.Equirect); ok {
			row, col := projector.SampleIndex(theta, phi, eq.Source.Width, eq.Source.Height)
			line += fmt.Sprintf("  -> row %d col %d", row, col)
		} else if !math.IsNaN(theta) {
			face, u, v := projector.FaceUV(ray)
			line += fmt.Sprintf("  -> %s u=%.2f v=%.2f", face, u, v)
		}
		fmt.Println(line)
	}
}
