package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"pano-viewer/internal/batch"
	"pano-viewer/internal/camera"
	"pano-viewer/internal/config"
	"pano-viewer/internal/logging"
	"pano-viewer/internal/projector"
	"pano-viewer/internal/texture"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config file (.json, .toml, .yaml)")
	source := flag.String("source", "", "Equirectangular panorama image")
	cubeDir := flag.String("cube", "", "Directory of cube face images (front, back, left, right, top, bottom)")
	outputDir := flag.String("output", "", "Output directory (default: renders)")
	format := flag.String("format", "", "Output format: webp or png (default: webp)")
	width := flag.Int("width", 0, "Output width (default: 320)")
	height := flag.Int("height", 0, "Output height (default: 240)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	sweep := flag.Int("sweep", 0, "Render N views evenly spaced around the horizon")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")

	flag.Parse()

	// Load config
	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		Source:    *source,
		CubeDir:   *cubeDir,
		OutputDir: *outputDir,
		Format:    *format,
		Width:     *width,
		Height:    *height,
		Workers:   *workers,
		LogLevel:  *logLevel,
	})

	if _, err := logging.Setup(cfg.LogLevel, cfg.LogFormat, "render"); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	env, err := texture.LoadEnvironment(texture.Request{
		Variant: cfg.Variant,
		Source:  cfg.Source,
		CubeDir: cfg.CubeDir,
		Mirror:  cfg.Mirror,
	}, texture.NewCache())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading panorama: %v\n", err)
		os.Exit(1)
	}

	// A single view from the configured camera unless a sweep was asked for.
	// The camera clamps the configured values the same way the viewer does.
	cam := camera.New(
		camera.WithOrientation(cfg.Heading, cfg.Pitch, cfg.Roll),
		camera.WithFieldOfView(cfg.FieldOfView),
	)
	jobs := []batch.Job{{Name: "view", View: cam.View()}}
	if *sweep > 0 {
		jobs = batch.Sweep(*sweep, cam.Pitch(), cam.Roll(), cam.FieldOfView())
	}

	fmt.Printf("Panorama renderer → %s\n", cfg.Format)
	fmt.Printf("Views: %d, Size: %dx%d, Workers: %d\n", len(jobs), cfg.Width, cfg.Height, cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()

	// Run batch
	batchCfg := batch.Config{
		Env:         env,
		Projector:   newProjector(cfg),
		OutputDir:   cfg.OutputDir,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Supersample: cfg.Supersample,
		Format:      cfg.Format,
		Workers:     cfg.Workers,
	}

	results := batch.Run(ctx, batchCfg, jobs)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(jobs))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := min(20, len(errors))
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.Name, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		slog.Warn("create output dir", "error", err)
	}
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		slog.Warn("manifest write failed", "error", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func newProjector(cfg config.Config) *projector.Projector {
	opts := []projector.Option{projector.WithFilter(projector.ParseFilter(cfg.Filter))}
	switch {
	case cfg.Aspect > 0:
		opts = append(opts, projector.WithAspect(cfg.Aspect))
	case cfg.Aspect < 0:
		opts = append(opts, projector.WithDestinationAspect())
	}
	return projector.New(opts...)
}
