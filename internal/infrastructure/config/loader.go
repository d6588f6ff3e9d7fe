package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/flexpane/internal/domain/entity"
	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
	explicit  string
	// watchCtx carries the logger used for reload messages.
	watchCtx context.Context
}

// NewManager creates a manager reading config.toml from the XDG config
// directory, then the current directory.
func NewManager() (*Manager, error) {
	return newManager("")
}

// NewManagerWithFile creates a manager bound to an explicit config file.
func NewManagerWithFile(path string) (*Manager, error) {
	if path == "" {
		return nil, errors.New("config file path is empty")
	}
	return newManager(path)
}

func newManager(explicit string) (*Manager, error) {
	v := viper.New()
	v.SetConfigType("toml")

	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName("config")
		configDir, err := GetConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
		}
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	// FLEXPANE_GESTURE_MOUSE_HOLD_DELAY_MS, FLEXPANE_RESIZE_MOVEMENT_MODE, ...
	v.SetEnvPrefix("FLEXPANE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("logging.level", "FLEXPANE_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind FLEXPANE_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "FLEXPANE_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind FLEXPANE_LOG_FORMAT: %w", err)
	}

	return &Manager{viper: v, explicit: explicit}, nil
}

// Load loads the configuration from file and environment variables. A
// missing config file is created with the defaults.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.explicit == "" {
		if err := EnsureDirectories(); err != nil {
			return fmt.Errorf("failed to ensure directories: %w", err)
		}
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}
	config, err := m.decode()
	if err != nil {
		return err
	}
	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) && !(m.explicit != "" && errors.Is(err, os.ErrNotExist)) {
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", m.configFileLocked(), err)
	}

	if createErr := m.createDefaultConfig(); createErr != nil {
		return fmt.Errorf("failed to create default config at %s: %w", m.configFileLocked(), createErr)
	}
	if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
		return fmt.Errorf("failed to read newly created config file: %w", rereadErr)
	}
	return nil
}

// decode unmarshals, fills derived paths, normalizes and validates.
func (m *Manager) decode() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.viper.ConfigFileUsed(),
			err,
		)
	}
	if err := fillPaths(config); err != nil {
		return nil, err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

func fillPaths(config *Config) error {
	if config.SizeHints.DatabasePath == "" {
		dbPath, err := GetDatabaseFile()
		if err != nil {
			return fmt.Errorf("failed to get database path: %w", err)
		}
		config.SizeHints.DatabasePath = dbPath
	}
	if config.Logging.LogDir == "" {
		logDir, err := GetLogDir()
		if err != nil {
			return fmt.Errorf("failed to get log directory: %w", err)
		}
		config.Logging.LogDir = logDir
	}
	return nil
}

func normalizeConfig(config *Config) {
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	if config.Logging.Level == "" {
		config.Logging.Level = defaultLogLevel
	}
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))
	if config.Logging.Format == "" {
		config.Logging.Format = defaultLogFormat
	}

	mode, err := entity.ParseMovementMode(strings.ToLower(strings.TrimSpace(config.Resize.MovementMode)))
	if err == nil {
		config.Resize.MovementMode = string(mode)
	}

	if strings.TrimSpace(config.SizeHints.Session) == "" {
		config.SizeHints.Session = defaultHintSession
	}
}

// Get returns the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.config == nil {
		return DefaultConfig()
	}
	return m.config
}

// GetConfigFile returns the config file in use, or the file that would be
// created.
func (m *Manager) GetConfigFile() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.configFileLocked()
}

func (m *Manager) configFileLocked() string {
	if used := m.viper.ConfigFileUsed(); used != "" {
		return used
	}
	if m.explicit != "" {
		return m.explicit
	}
	path, err := GetConfigFile()
	if err != nil {
		return "config.toml"
	}
	return path
}

func (m *Manager) createDefaultConfig() error {
	configFile := m.explicit
	if configFile == "" {
		var err error
		if configFile, err = GetConfigFile(); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(configFile), dirPerm); err != nil {
		return err
	}
	if err := m.viper.SafeWriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	m.viper.SetConfigFile(configFile)

	if err := WriteSchemaFile(filepath.Join(filepath.Dir(configFile), "config.schema.json")); err != nil {
		return err
	}
	return nil
}

func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.setLoggingDefaults(defaults)
	m.setGestureDefaults(defaults)
	m.setResizeDefaults(defaults)
	m.setAnimationDefaults(defaults)
	m.viper.SetDefault("split_screen.boundary_ratio", defaults.SplitScreen.BoundaryRatio)
	m.viper.SetDefault("size_hints.enabled", defaults.SizeHints.Enabled)
	m.viper.SetDefault("size_hints.session", defaults.SizeHints.Session)
}

func (m *Manager) setLoggingDefaults(defaults *Config) {
	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.enable_file_log", defaults.Logging.EnableFileLog)
	m.viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	m.viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
}

func (m *Manager) setGestureDefaults(defaults *Config) {
	m.viper.SetDefault("gesture.mouse_hold_delay_ms", defaults.Gesture.MouseHoldDelayMs)
	m.viper.SetDefault("gesture.touch_hold_delay_ms", defaults.Gesture.TouchHoldDelayMs)
	m.viper.SetDefault("gesture.scroll_threshold", defaults.Gesture.ScrollThreshold)
	m.viper.SetDefault("gesture.resume_delay_ms", defaults.Gesture.ResumeDelayMs)
	m.viper.SetDefault("gesture.block_active_input", defaults.Gesture.BlockActiveInput)
}

func (m *Manager) setResizeDefaults(defaults *Config) {
	m.viper.SetDefault("resize.movement_mode", defaults.Resize.MovementMode)
	m.viper.SetDefault("resize.double_click_window_ms", defaults.Resize.DoubleClickWindowMs)
	m.viper.SetDefault("resize.touch_multiplier", defaults.Resize.TouchMultiplier)
	m.viper.SetDefault("resize.keyboard_step", defaults.Resize.KeyboardStep)
}

func (m *Manager) setAnimationDefaults(defaults *Config) {
	m.viper.SetDefault("animation.transition_ms", defaults.Animation.TransitionMs)
	m.viper.SetDefault("animation.frame_interval_ms", defaults.Animation.FrameIntervalMs)
}
