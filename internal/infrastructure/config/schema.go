package config

import "time"

// Config represents the complete configuration for flexpane.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging" toml:"logging" json:"logging"`
	// Gesture tunes the press-and-hold drag recognizer.
	Gesture GestureConfig `mapstructure:"gesture" yaml:"gesture" toml:"gesture" json:"gesture"`
	// Resize tunes divider drags.
	Resize ResizeConfig `mapstructure:"resize" yaml:"resize" toml:"resize" json:"resize"`
	// Animation controls open/close transitions and frame pacing.
	Animation AnimationConfig `mapstructure:"animation" yaml:"animation" toml:"animation" json:"animation"`
	// SplitScreen tunes drop routing.
	SplitScreen SplitScreenConfig `mapstructure:"split_screen" yaml:"split_screen" toml:"split_screen" json:"split_screen"`
	// SizeHints controls the persisted per-session grow cache.
	SizeHints SizeHintsConfig `mapstructure:"size_hints" yaml:"size_hints" toml:"size_hints" json:"size_hints"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,enum=disabled"`
	Format string `mapstructure:"format" yaml:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json"`

	// File output configuration. The terminal playground always logs to a file.
	LogDir        string `mapstructure:"log_dir" yaml:"log_dir" toml:"log_dir" json:"log_dir,omitempty"`
	EnableFileLog bool   `mapstructure:"enable_file_log" yaml:"enable_file_log" toml:"enable_file_log" json:"enable_file_log"`
	MaxSizeMB     int    `mapstructure:"max_size_mb" yaml:"max_size_mb" toml:"max_size_mb" json:"max_size_mb" jsonschema:"minimum=0"`
	MaxBackups    int    `mapstructure:"max_backups" yaml:"max_backups" toml:"max_backups" json:"max_backups" jsonschema:"minimum=0"`
}

// GestureConfig mirrors gesture.Config in milliseconds and pixels.
type GestureConfig struct {
	MouseHoldDelayMs int     `mapstructure:"mouse_hold_delay_ms" yaml:"mouse_hold_delay_ms" toml:"mouse_hold_delay_ms" json:"mouse_hold_delay_ms" jsonschema:"minimum=0"`
	TouchHoldDelayMs int     `mapstructure:"touch_hold_delay_ms" yaml:"touch_hold_delay_ms" toml:"touch_hold_delay_ms" json:"touch_hold_delay_ms" jsonschema:"minimum=0"`
	ScrollThreshold  float64 `mapstructure:"scroll_threshold" yaml:"scroll_threshold" toml:"scroll_threshold" json:"scroll_threshold" jsonschema:"minimum=0"`
	ResumeDelayMs    int     `mapstructure:"resume_delay_ms" yaml:"resume_delay_ms" toml:"resume_delay_ms" json:"resume_delay_ms" jsonschema:"minimum=0"`
	// BlockActiveInput ignores presses on the focused element.
	BlockActiveInput bool `mapstructure:"block_active_input" yaml:"block_active_input" toml:"block_active_input" json:"block_active_input"`
}

// ResizeConfig holds divider drag settings.
type ResizeConfig struct {
	MovementMode        string  `mapstructure:"movement_mode" yaml:"movement_mode" toml:"movement_mode" json:"movement_mode" jsonschema:"enum=divorce,enum=bulldozer"`
	DoubleClickWindowMs int     `mapstructure:"double_click_window_ms" yaml:"double_click_window_ms" toml:"double_click_window_ms" json:"double_click_window_ms" jsonschema:"minimum=0"`
	TouchMultiplier     float64 `mapstructure:"touch_multiplier" yaml:"touch_multiplier" toml:"touch_multiplier" json:"touch_multiplier" jsonschema:"exclusiveMinimum=0"`
	// KeyboardStep is the divider movement per arrow key press in cells.
	KeyboardStep float64 `mapstructure:"keyboard_step" yaml:"keyboard_step" toml:"keyboard_step" json:"keyboard_step" jsonschema:"exclusiveMinimum=0"`
}

// AnimationConfig holds transition timings.
type AnimationConfig struct {
	TransitionMs    int `mapstructure:"transition_ms" yaml:"transition_ms" toml:"transition_ms" json:"transition_ms" jsonschema:"minimum=0"`
	FrameIntervalMs int `mapstructure:"frame_interval_ms" yaml:"frame_interval_ms" toml:"frame_interval_ms" json:"frame_interval_ms" jsonschema:"minimum=1"`
}

// SplitScreenConfig holds drop routing settings.
type SplitScreenConfig struct {
	// BoundaryRatio is the share of each node edge treated as a split band.
	BoundaryRatio float64 `mapstructure:"boundary_ratio" yaml:"boundary_ratio" toml:"boundary_ratio" json:"boundary_ratio" jsonschema:"exclusiveMinimum=0,maximum=0.5"`
}

// SizeHintsConfig holds size hint persistence settings.
type SizeHintsConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled" toml:"enabled" json:"enabled"`
	// DatabasePath defaults to the XDG data directory.
	DatabasePath string `mapstructure:"database_path" yaml:"database_path" toml:"database_path" json:"database_path,omitempty"`
	// Session scopes stored hints; playgrounds sharing a session share sizes.
	Session string `mapstructure:"session" yaml:"session" toml:"session" json:"session"`
}

func ms(v int) time.Duration { return time.Duration(v) * time.Millisecond }

func (g GestureConfig) MouseHoldDelay() time.Duration { return ms(g.MouseHoldDelayMs) }
func (g GestureConfig) TouchHoldDelay() time.Duration { return ms(g.TouchHoldDelayMs) }
func (g GestureConfig) ResumeDelay() time.Duration    { return ms(g.ResumeDelayMs) }

func (r ResizeConfig) DoubleClickWindow() time.Duration { return ms(r.DoubleClickWindowMs) }

func (a AnimationConfig) Transition() time.Duration    { return ms(a.TransitionMs) }
func (a AnimationConfig) FrameInterval() time.Duration { return ms(a.FrameIntervalMs) }
