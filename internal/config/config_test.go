package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 600, cfg.Height)
	assert.Equal(t, 50.0, cfg.PPU)
	assert.Equal(t, 0.3, cfg.SnapRadius)

	opts := cfg.Camera()
	assert.Equal(t, 8.0, opts.MinPPU)
	assert.Equal(t, 100.0, opts.MaxPPU)
	assert.Equal(t, 5.0, opts.ZoomStep)
	assert.Equal(t, 0.4, opts.SnapMarkerSize)
	assert.Equal(t, 0.15, opts.OriginMarkerSize)

	assert.Equal(t, Default(), cfg)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PLANAR_PORT", "9000")
	t.Setenv("PLANAR_PPU", "20")
	t.Setenv("PLANAR_MIN_PPU", "10")
	t.Setenv("PLANAR_ZOOM_STEP", "2.5")
	t.Setenv("PLANAR_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 20.0, cfg.PPU)
	assert.Equal(t, 10.0, cfg.Camera().MinPPU)
	assert.Equal(t, 2.5, cfg.Camera().ZoomStep)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("PLANAR_WIDTH", "wide")
	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Width: 800, Height: 600, PPU: 50,
			MinPPU: 8, MaxPPU: 100, ZoomStep: 5,
			SnapRadius: 0.3, SnapMarker: 0.4, FontHeight: 0.4, LabelOffset: 0.1,
			LogLevel: "info",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		ppuErr  bool
		wantErr bool
	}{
		{"valid", func(*Config) {}, false, false},
		{"inverted range", func(c *Config) { c.MinPPU, c.MaxPPU = 100, 8 }, true, true},
		{"zero min", func(c *Config) { c.MinPPU = 0 }, true, true},
		{"ppu above max", func(c *Config) { c.PPU = 200 }, true, true},
		{"zero width", func(c *Config) { c.Width = 0 }, false, true},
		{"zero step", func(c *Config) { c.ZoomStep = 0 }, false, true},
		{"zero font", func(c *Config) { c.FontHeight = 0 }, false, true},
		{"negative radius", func(c *Config) { c.SnapRadius = -1 }, false, true},
		{"zero radius disables snapping", func(c *Config) { c.SnapRadius = 0 }, false, false},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			if tt.ppuErr {
				assert.ErrorIs(t, err, ErrPPURange)
			} else {
				assert.NotErrorIs(t, err, ErrPPURange)
			}
		})
	}
}
