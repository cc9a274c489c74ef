package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/inamate/planar/internal/camera"
)

// Prefix is prepended to every environment variable name, e.g. PLANAR_PPU.
const Prefix = "PLANAR"

var ErrPPURange = errors.New("config: invalid ppu range")

type Config struct {
	Port   int    `envconfig:"PORT" default:"8080"`
	WebDir string `envconfig:"WEB_DIR" default:"./web"`

	Width  int     `envconfig:"WIDTH" default:"800"`
	Height int     `envconfig:"HEIGHT" default:"600"`
	PPU    float64 `envconfig:"PPU" default:"50"`

	MinPPU      float64 `envconfig:"MIN_PPU" default:"8"`
	MaxPPU      float64 `envconfig:"MAX_PPU" default:"100"`
	ZoomStep    float64 `envconfig:"ZOOM_STEP" default:"5"`
	SnapRadius  float64 `envconfig:"SNAP_RADIUS" default:"0.3"`
	SnapMarker  float64 `envconfig:"SNAP_MARKER" default:"0.4"`
	FontHeight  float64 `envconfig:"FONT_HEIGHT" default:"0.4"`
	LabelOffset float64 `envconfig:"LABEL_OFFSET" default:"0.1"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Default returns the configuration Load produces from an empty environment.
func Default() *Config {
	return &Config{
		Port:        8080,
		WebDir:      "./web",
		Width:       800,
		Height:      600,
		PPU:         50,
		MinPPU:      8,
		MaxPPU:      100,
		ZoomStep:    5,
		SnapRadius:  0.3,
		SnapMarker:  0.4,
		FontHeight:  0.4,
		LabelOffset: 0.1,
		LogLevel:    "info",
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the camera cannot work with.
func (c *Config) Validate() error {
	if c.MinPPU <= 0 || c.MaxPPU < c.MinPPU {
		return fmt.Errorf("%w: [%v, %v]", ErrPPURange, c.MinPPU, c.MaxPPU)
	}
	if c.PPU < c.MinPPU || c.PPU > c.MaxPPU {
		return fmt.Errorf("%w: ppu %v outside [%v, %v]", ErrPPURange, c.PPU, c.MinPPU, c.MaxPPU)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("config: viewport %dx%d must be positive", c.Width, c.Height)
	}
	if c.ZoomStep <= 0 {
		return fmt.Errorf("config: zoom step %v must be positive", c.ZoomStep)
	}
	if c.FontHeight <= 0 || c.SnapMarker <= 0 {
		return errors.New("config: font height and snap marker size must be positive")
	}
	if c.SnapRadius < 0 || c.LabelOffset < 0 {
		return errors.New("config: snap radius and label offset must not be negative")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Camera derives the camera calibration.
func (c *Config) Camera() camera.Options {
	opts := camera.DefaultOptions()
	opts.MinPPU = c.MinPPU
	opts.MaxPPU = c.MaxPPU
	opts.ZoomStep = c.ZoomStep
	opts.FontHeight = c.FontHeight
	opts.LabelOffset = c.LabelOffset
	opts.SnapMarkerSize = c.SnapMarker
	return opts
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("config: log level: %w", err)
	}
	return l, nil
}
