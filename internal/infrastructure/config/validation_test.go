package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "bad level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantErr: "logging.level"},
		{name: "bad format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: "logging.format"},
		{name: "negative hold", mutate: func(c *Config) { c.Gesture.TouchHoldDelayMs = -1 }, wantErr: "gesture.touch_hold_delay_ms"},
		{name: "zero touch multiplier", mutate: func(c *Config) { c.Resize.TouchMultiplier = 0 }, wantErr: "resize.touch_multiplier"},
		{name: "zero frame interval", mutate: func(c *Config) { c.Animation.FrameIntervalMs = 0 }, wantErr: "animation.frame_interval_ms"},
		{name: "ratio too wide", mutate: func(c *Config) { c.SplitScreen.BoundaryRatio = 0.6 }, wantErr: "split_screen.boundary_ratio"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := validateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateConfigAggregatesErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Level = "loud"
	cfg.Resize.KeyboardStep = 0

	err := validateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
	assert.Contains(t, err.Error(), "resize.keyboard_step")
}
