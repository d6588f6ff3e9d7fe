package config

// Default configuration constants
const (
	// Logging defaults
	defaultLogLevel    = "info"
	defaultLogFormat   = "console"
	defaultLogMaxSize  = 10 // MB
	defaultLogBackups  = 3

	// Gesture defaults
	defaultHoldDelayMs = 300
	defaultTouchHoldMs = 0 // touch drags start immediately
	defaultResumeMs    = 400
	defaultScrollPx    = 10.0

	// Resize defaults
	defaultMovementMode  = "divorce"
	defaultDoubleClickMs = 500
	defaultTouchFactor   = 2.0
	defaultKeyboardStep  = 2.0

	// Animation defaults
	defaultTransitionMs    = 120
	defaultFrameIntervalMs = 16 // ~60fps

	defaultBoundaryRatio = 0.2
	defaultHintSession   = "default"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:         defaultLogLevel,
			Format:        defaultLogFormat,
			EnableFileLog: false,
			MaxSizeMB:     defaultLogMaxSize,
			MaxBackups:    defaultLogBackups,
		},
		Gesture: GestureConfig{
			MouseHoldDelayMs: defaultHoldDelayMs,
			TouchHoldDelayMs: defaultTouchHoldMs,
			ScrollThreshold:  defaultScrollPx,
			ResumeDelayMs:    defaultResumeMs,
		},
		Resize: ResizeConfig{
			MovementMode:        defaultMovementMode,
			DoubleClickWindowMs: defaultDoubleClickMs,
			TouchMultiplier:     defaultTouchFactor,
			KeyboardStep:        defaultKeyboardStep,
		},
		Animation: AnimationConfig{
			TransitionMs:    defaultTransitionMs,
			FrameIntervalMs: defaultFrameIntervalMs,
		},
		SplitScreen: SplitScreenConfig{
			BoundaryRatio: defaultBoundaryRatio,
		},
		SizeHints: SizeHintsConfig{
			Enabled: true,
			Session: defaultHintSession,
		},
	}
}
