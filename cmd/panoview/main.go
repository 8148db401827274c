// Command panoview shows an equirectangular or cube panorama in a desktop
// window. Drag to look around, scroll to zoom, press I for the info overlay.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/hajimehoshi/ebiten/v2"

	"pano-viewer/internal/camera"
	"pano-viewer/internal/config"
	"pano-viewer/internal/gesture"
	"pano-viewer/internal/logging"
	"pano-viewer/internal/orientation"
	"pano-viewer/internal/projector"
	"pano-viewer/internal/texture"
	"pano-viewer/internal/viewer"
)

func main() {
	configFile := flag.String("config", "", "Path to config file (.json, .toml, .yaml); watched for changes")
	source := flag.String("source", "", "Equirectangular panorama image")
	cubeDir := flag.String("cube", "", "Directory of cube face images")
	width := flag.Int("width", 0, "Render width (default: 320)")
	height := flag.Int("height", 0, "Render height (default: 240)")
	scale := flag.Int("scale", 2, "Window scale factor")
	relay := flag.Bool("relay", false, "Read orientation messages as JSON lines from stdin")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")

	flag.Parse()

	flags := config.Flags{
		Source:   *source,
		CubeDir:  *cubeDir,
		Width:    *width,
		Height:   *height,
		LogLevel: *logLevel,
	}

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(flags)

	log, err := logging.Setup(cfg.LogLevel, cfg.LogFormat, "panoview")
	if err != nil {
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

	surface := newSurface(cfg.Width, cfg.Height, env)
	cam := camera.New(
		camera.WithOrientation(cfg.Heading, cfg.Pitch, cfg.Roll),
		camera.WithFieldOfView(cfg.FieldOfView),
	)
	v := viewer.New(env, newProjector(cfg), surface,
		viewer.WithCamera(cam),
		viewer.WithSettings(settingsFrom(cfg)),
		viewer.WithScreenOrientation(orientation.ScreenOrientation(cfg.ScreenOrientation)),
		viewer.WithLogger(log),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *configFile != "" {
		w, err := config.NewWatcher(*configFile, flags, func(c config.Config) {
			v.UpdateSettings(settingsFrom(c))
		})
		if err != nil {
			log.Warn("config hot reload disabled", "error", err)
		} else {
			go w.Run(ctx)
		}
	}

	if *relay {
		go relayMessages(ctx, v, log)
	}

	ebiten.SetWindowTitle("panoview")
	ebiten.SetWindowSize(cfg.Width*(*scale), cfg.Height*(*scale))
	ebiten.SetTPS(60)

	if err := ebiten.RunGame(newGame(ctx, v, surface)); err != nil && !errors.Is(err, errQuit) {
		log.Error("viewer stopped", "error", err)
		os.Exit(1)
	}
}

// settingsFrom maps the interaction fields of a resolved config.
func settingsFrom(cfg config.Config) viewer.Settings {
	return viewer.Settings{
		Scale:           gesture.Scale{Heading: cfg.HeadingScale, Pitch: cfg.PitchScale},
		Drag:            cfg.Drag,
		Pointer:         cfg.PointerEnabled(),
		Gyro:            cfg.EnableGyro,
		AutoRotate:      viewer.ParseDirection(cfg.AutoRotate),
		AutoRotateSpeed: cfg.AutoRotateSpeed,
		Workers:         cfg.Workers,
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

// relayMessages feeds one JSON envelope per stdin line to the viewer.
func relayMessages(ctx context.Context, v *viewer.Viewer, log *slog.Logger) {
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		if ctx.Err() != nil {
			return
		}
		if err := v.OnMessage(sc.Bytes()); err != nil {
			log.Debug("relay message dropped", "error", err)
		}
	}
	if err := sc.Err(); err != nil {
		log.Warn("relay stopped", "error", err)
	}
}
