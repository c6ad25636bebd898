// Package config loads softraster's YAML configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/taigrr/softraster/pkg/render"
)

// Fill modes.
const (
	FillSerial   = "serial"
	FillParallel = "parallel"
)

// maxConfigSize bounds the file read by Load.
const maxConfigSize = 1 << 20

// Config holds render and window settings. Zero-valued fields in a file
// keep their defaults.
type Config struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	FOV        float64 `yaml:"fov"` // Horizontal, radians
	FPS        int     `yaml:"fps"`
	Wireframe  bool    `yaml:"wireframe"`
	DepthFloor float64 `yaml:"depth_floor"`
	Texture    string  `yaml:"texture"`
	Model      string  `yaml:"model"`
	Fill       Fill    `yaml:"fill"`
	Clip       Clip    `yaml:"clip"`
}

// Fill selects the scan-line fill strategy.
type Fill struct {
	Mode    string `yaml:"mode"`
	Workers int    `yaml:"workers"`
}

// Clip configures the near plane.
type Clip struct {
	Distance float64 `yaml:"distance"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Width:      683,
		Height:     384,
		FOV:        math.Pi / 3,
		FPS:        60,
		DepthFloor: render.DefaultDepthFloor,
		Fill: Fill{
			Mode:    FillSerial,
			Workers: render.DefaultFillWorkers,
		},
		Clip: Clip{Distance: render.DefaultNearDistance},
	}
}

// Load reads path on top of the defaults and validates the result.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxConfigSize+1))
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(data) > maxConfigSize {
		return Config{}, fmt.Errorf("config %s exceeds %d bytes", path, maxConfigSize)
	}
	return Parse(data)
}

// Parse decodes YAML on top of the defaults. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("size %dx%d must be positive", c.Width, c.Height))
	}
	if c.FOV <= 0 || c.FOV >= math.Pi {
		errs = append(errs, fmt.Errorf("fov %v must be in (0, pi)", c.FOV))
	}
	if c.FPS <= 0 {
		errs = append(errs, fmt.Errorf("fps %d must be positive", c.FPS))
	}
	if c.DepthFloor < 0 {
		errs = append(errs, fmt.Errorf("depth_floor %v must not be negative", c.DepthFloor))
	}
	if c.Clip.Distance <= 0 {
		errs = append(errs, fmt.Errorf("clip distance %v must be positive", c.Clip.Distance))
	}
	switch c.Fill.Mode {
	case FillSerial:
	case FillParallel:
		if c.Fill.Workers < 1 {
			errs = append(errs, fmt.Errorf("fill workers %d must be at least 1", c.Fill.Workers))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown fill mode %q", c.Fill.Mode))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Pipeline builds the render pipeline the config describes.
func (c Config) Pipeline() render.Pipeline {
	p := render.Pipeline{
		Near: render.NearPlane(c.Clip.Distance),
		Fill: render.SerialFill{},
	}
	if c.Fill.Mode == FillParallel {
		p.Fill = render.ParallelFill{Workers: c.Fill.Workers}
	}
	return p
}
