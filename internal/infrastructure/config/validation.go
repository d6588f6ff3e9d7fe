package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bnema/flexpane/internal/domain/entity"
)

// validateConfig performs comprehensive validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateLogging(config)...)
	validationErrors = append(validationErrors, validateGesture(config)...)
	validationErrors = append(validationErrors, validateResize(config)...)
	validationErrors = append(validationErrors, validateAnimation(config)...)
	validationErrors = append(validationErrors, validateSplitScreen(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}
	return nil
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	levels := []string{"trace", "debug", "info", "warn", "error", "fatal", "disabled"}
	if !slices.Contains(levels, config.Logging.Level) {
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.level must be one of: %s (got: %s)", strings.Join(levels, ", "), config.Logging.Level))
	}
	if config.Logging.Format != "console" && config.Logging.Format != "json" {
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.format must be one of: console, json (got: %s)", config.Logging.Format))
	}
	if config.Logging.MaxSizeMB < 0 {
		validationErrors = append(validationErrors, "logging.max_size_mb must be non-negative")
	}
	if config.Logging.MaxBackups < 0 {
		validationErrors = append(validationErrors, "logging.max_backups must be non-negative")
	}
	return validationErrors
}

func validateGesture(config *Config) []string {
	var validationErrors []string
	g := config.Gesture
	if g.MouseHoldDelayMs < 0 {
		validationErrors = append(validationErrors, "gesture.mouse_hold_delay_ms must be non-negative")
	}
	if g.TouchHoldDelayMs < 0 {
		validationErrors = append(validationErrors, "gesture.touch_hold_delay_ms must be non-negative")
	}
	if g.ResumeDelayMs < 0 {
		validationErrors = append(validationErrors, "gesture.resume_delay_ms must be non-negative")
	}
	if g.ScrollThreshold < 0 {
		validationErrors = append(validationErrors, "gesture.scroll_threshold must be non-negative")
	}
	return validationErrors
}

func validateResize(config *Config) []string {
	var validationErrors []string
	if _, err := entity.ParseMovementMode(config.Resize.MovementMode); err != nil {
		validationErrors = append(validationErrors,
			fmt.Sprintf("resize.movement_mode must be one of: divorce, bulldozer (got: %s)", config.Resize.MovementMode))
	}
	if config.Resize.DoubleClickWindowMs < 0 {
		validationErrors = append(validationErrors, "resize.double_click_window_ms must be non-negative")
	}
	if config.Resize.TouchMultiplier <= 0 {
		validationErrors = append(validationErrors, "resize.touch_multiplier must be positive")
	}
	if config.Resize.KeyboardStep <= 0 {
		validationErrors = append(validationErrors, "resize.keyboard_step must be positive")
	}
	return validationErrors
}

func validateAnimation(config *Config) []string {
	var validationErrors []string
	if config.Animation.TransitionMs < 0 {
		validationErrors = append(validationErrors, "animation.transition_ms must be non-negative")
	}
	if config.Animation.FrameIntervalMs < 1 {
		validationErrors = append(validationErrors, "animation.frame_interval_ms must be at least 1")
	}
	return validationErrors
}

func validateSplitScreen(config *Config) []string {
	r := config.SplitScreen.BoundaryRatio
	if r <= 0 || r > 0.5 {
		return []string{fmt.Sprintf("split_screen.boundary_ratio must be in (0, 0.5] (got: %g)", r)}
	}
	return nil
}
