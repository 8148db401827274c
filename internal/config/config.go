// Package config loads viewer and renderer settings from JSON, TOML or YAML.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid")

// Config holds all configurable paths, view and render settings.
type Config struct {
	// Sources
	Source  string `json:"source" toml:"source" yaml:"source"`
	CubeDir string `json:"cube_dir" toml:"cube_dir" yaml:"cube_dir"`
	Variant string `json:"variant" toml:"variant" yaml:"variant"` // "equirect" or "cube"
	Mirror  bool   `json:"mirror" toml:"mirror" yaml:"mirror"`

	// Initial view, degrees
	Heading     float64 `json:"heading" toml:"heading" yaml:"heading"`
	Pitch       float64 `json:"pitch" toml:"pitch" yaml:"pitch"`
	Roll        float64 `json:"roll" toml:"roll" yaml:"roll"`
	FieldOfView float64 `json:"fov" toml:"fov" yaml:"fov"`

	// Projection
	Width       int     `json:"width" toml:"width" yaml:"width"`
	Height      int     `json:"height" toml:"height" yaml:"height"`
	Aspect      float64 `json:"aspect" toml:"aspect" yaml:"aspect"` // 0 = reference 1.33, <0 = destination
	Filter      string  `json:"filter" toml:"filter" yaml:"filter"` // "nearest" or "bilinear"
	Supersample int     `json:"supersample" toml:"supersample" yaml:"supersample"`

	// Interaction
	HeadingScale      float64 `json:"heading_scale" toml:"heading_scale" yaml:"heading_scale"`
	PitchScale        float64 `json:"pitch_scale" toml:"pitch_scale" yaml:"pitch_scale"`
	Drag              float64 `json:"drag" toml:"drag" yaml:"drag"`
	EnablePointer     *bool   `json:"enable_pointer,omitempty" toml:"enable_pointer,omitempty" yaml:"enable_pointer,omitempty"`
	EnableGyro        bool    `json:"enable_gyro" toml:"enable_gyro" yaml:"enable_gyro"`
	ScreenOrientation int     `json:"screen_orientation" toml:"screen_orientation" yaml:"screen_orientation"`
	AutoRotate        string  `json:"auto_rotate" toml:"auto_rotate" yaml:"auto_rotate"` // "", "left" or "right"
	AutoRotateSpeed   float64 `json:"auto_rotate_speed" toml:"auto_rotate_speed" yaml:"auto_rotate_speed"` // degrees per second

	// Output
	OutputDir string `json:"output_dir" toml:"output_dir" yaml:"output_dir"`
	Format    string `json:"format" toml:"format" yaml:"format"` // "webp" or "png"
	Workers   int    `json:"workers" toml:"workers" yaml:"workers"`

	// Logging
	LogLevel  string `json:"log_level" toml:"log_level" yaml:"log_level"`
	LogFormat string `json:"log_format" toml:"log_format" yaml:"log_format"`
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Source    string
	CubeDir   string
	OutputDir string
	Format    string
	Width     int
	Height    int
	Workers   int
	LogLevel  string
}

// Default returns the reference settings of the equirectangular viewer.
// Drag sensitivity is left zero so Resolve can pick it by variant.
func Default() Config {
	return Config{
		Variant:         "equirect",
		Heading:         90,
		Pitch:           90,
		FieldOfView:     90,
		Width:           320,
		Height:          240,
		Filter:          "nearest",
		Supersample:     1,
		Drag:            0.012,
		AutoRotateSpeed: 10,
		Format:          "webp",
	}
}

// Load reads a config file and decodes it by extension (.json, .toml,
// .yaml/.yml). Fields not set in the file keep their Default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &cfg)
	case ".toml":
		_, err = toml.Decode(string(data), &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("config: unknown format %q for %s", ext, path)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve applies CLI overrides, then fills empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.Source != "" {
		c.Source = flags.Source
	}
	if flags.CubeDir != "" {
		c.CubeDir = flags.CubeDir
		c.Variant = "cube"
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}

	def := Default()
	if c.Variant == "" {
		c.Variant = def.Variant
	}
	if c.FieldOfView == 0 {
		c.FieldOfView = def.FieldOfView
	}
	if c.Width <= 0 {
		c.Width = def.Width
	}
	if c.Height <= 0 {
		c.Height = def.Height
	}
	if c.Filter == "" {
		c.Filter = def.Filter
	}
	if c.Supersample <= 0 {
		c.Supersample = def.Supersample
	}
	if c.HeadingScale == 0 && c.PitchScale == 0 {
		if c.Variant == "cube" {
			c.HeadingScale, c.PitchScale = 0.2, 0.1
		} else {
			c.HeadingScale, c.PitchScale = 1.0, 0.5
		}
	}
	if c.Drag <= 0 {
		c.Drag = def.Drag
	}
	if c.AutoRotateSpeed <= 0 {
		c.AutoRotateSpeed = def.AutoRotateSpeed
	}
	if c.Format == "" {
		c.Format = def.Format
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.OutputDir == "" {
		c.OutputDir = "renders"
	}
}

// PointerEnabled reports whether pointer input is on. It defaults to true.
func (c *Config) PointerEnabled() bool {
	return c.EnablePointer == nil || *c.EnablePointer
}

// Validate checks the resolved configuration.
func (c *Config) Validate() error {
	var errs []error
	switch c.Variant {
	case "equirect":
		if c.Source == "" {
			errs = append(errs, errors.New("equirect variant needs a source image"))
		}
	case "cube":
		if c.CubeDir == "" {
			errs = append(errs, errors.New("cube variant needs a cube_dir"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown variant %q", c.Variant))
	}
	switch c.Filter {
	case "nearest", "bilinear":
	default:
		errs = append(errs, fmt.Errorf("unknown filter %q", c.Filter))
	}
	switch c.Format {
	case "webp", "png":
	default:
		errs = append(errs, fmt.Errorf("unknown output format %q", c.Format))
	}
	switch c.AutoRotate {
	case "", "left", "right":
	default:
		errs = append(errs, fmt.Errorf("auto_rotate must be left or right, got %q", c.AutoRotate))
	}
	switch c.ScreenOrientation {
	case 0, 90, 180, -90:
	default:
		errs = append(errs, fmt.Errorf("screen_orientation must be 0, 90, 180 or -90, got %d", c.ScreenOrientation))
	}
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("size must be positive, got %dx%d", c.Width, c.Height))
	}
	for name, v := range map[string]float64{
		"heading": c.Heading, "pitch": c.Pitch, "roll": c.Roll, "fov": c.FieldOfView,
		"aspect": c.Aspect, "heading_scale": c.HeadingScale, "pitch_scale": c.PitchScale, "drag": c.Drag,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, fmt.Errorf("%s must be finite", name))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}
