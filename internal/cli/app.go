// Package cli provides the flexpane command-line application.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/bnema/flexpane/internal/cli/styles"
	"github.com/bnema/flexpane/internal/domain/build"
	"github.com/bnema/flexpane/internal/domain/repository"
	"github.com/bnema/flexpane/internal/infrastructure/config"
	"github.com/bnema/flexpane/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/flexpane/internal/logging"
)

// LogFileName is the log file written under the configured log directory.
const LogFileName = "flexpane.log"

// Options selects what NewApp prepares for a command.
type Options struct {
	// ConfigFile overrides the XDG config location.
	ConfigFile string
	// FileLog sends logs to the log file instead of stderr. Commands that
	// own the terminal set it.
	FileLog bool
	// OpenDatabase opens and migrates the size hint database up front
	// instead of on first use.
	OpenDatabase bool
}

// App holds CLI dependencies.
type App struct {
	Config        *config.Config
	ConfigManager *config.Manager
	Theme         *styles.Theme
	BuildInfo     build.Info

	DB *sqlite.LazyDB
	// Hints is nil when size hints are disabled.
	Hints repository.SizeHintRepository

	// Context with logger
	ctx        context.Context
	logCleanup func()
}

// NewApp loads the configuration, builds the logger and prepares storage.
// The log file and the database are opened concurrently.
func NewApp(opts Options) (*App, error) {
	mgr, cfg, cfgErr := loadConfig(opts.ConfigFile)
	if cfgErr != nil {
		if opts.ConfigFile != "" {
			return nil, cfgErr
		}
		mgr = nil
	}
	if cfg.SizeHints.DatabasePath == "" {
		if path, err := config.GetDatabaseFile(); err == nil {
			cfg.SizeHints.DatabasePath = path
		}
	}
	if cfg.Logging.LogDir == "" {
		if dir, err := config.GetLogDir(); err == nil {
			cfg.Logging.LogDir = dir
		}
	}

	logCfg := logging.Config{
		Level:      logging.ParseLevel(cfg.Logging.Level),
		Format:     cfg.Logging.Format,
		TimeFormat: "15:04:05",
		Output:     os.Stderr,
	}
	if opts.FileLog {
		// Nothing may reach the terminal until the file sink is open.
		logCfg.Output = io.Discard
	}
	logger := logging.New(logCfg)
	ctx := logging.WithContext(context.Background(), logger)

	db := sqlite.NewLazyDB(cfg.SizeHints.DatabasePath)
	var sink *logging.FileSink

	g, gctx := errgroup.WithContext(ctx)
	if opts.FileLog || cfg.Logging.EnableFileLog {
		g.Go(func() error {
			s, err := logging.NewFileSink(
				filepath.Join(cfg.Logging.LogDir, LogFileName),
				cfg.Logging.MaxSizeMB,
				cfg.Logging.MaxBackups,
			)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			sink = s
			return nil
		})
	}
	if opts.OpenDatabase && cfg.SizeHints.Enabled {
		g.Go(func() error {
			if _, err := db.DB(gctx); err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if sink != nil {
			_ = sink.Close()
		}
		_ = db.Close()
		return nil, err
	}

	logCleanup := func() {}
	if sink != nil {
		if opts.FileLog {
			logCfg.Output = sink
		} else {
			logCfg.Output = io.MultiWriter(os.Stderr, sink)
		}
		logger = logging.New(logCfg)
		ctx = logging.WithContext(context.Background(), logger)
		logCleanup = func() { _ = sink.Close() }
	}

	app := &App{
		Config:        cfg,
		ConfigManager: mgr,
		Theme:         styles.NewTheme(),
		DB:            db,
		ctx:           ctx,
		logCleanup:    logCleanup,
	}
	if cfg.SizeHints.Enabled {
		app.Hints = sqlite.NewLazySizeHintRepository(db)
	}
	if cfgErr != nil {
		logger.Warn().Err(cfgErr).Msg("config load failed, using defaults")
	}

	event := logger.Debug().
		Str("db_path", db.Path()).
		Bool("db_open", db.IsInitialized()).
		Bool("size_hints", cfg.SizeHints.Enabled)
	if db.IsInitialized() {
		if conn, err := db.DB(ctx); err == nil {
			if version, err := sqlite.GetMigrationStatus(conn); err == nil {
				event = event.Int64("schema_version", version)
			}
		}
	}
	event.Msg("app initialized")
	return app, nil
}

// Close releases all resources.
func (a *App) Close() error {
	if a.logCleanup != nil {
		a.logCleanup()
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// loadConfig loads configuration from path or the standard locations. On
// failure it still returns usable defaults alongside the error.
func loadConfig(path string) (*config.Manager, *config.Config, error) {
	var (
		mgr *config.Manager
		err error
	)
	if path != "" {
		mgr, err = config.NewManagerWithFile(path)
	} else {
		mgr, err = config.NewManager()
	}
	if err != nil {
		return nil, config.DefaultConfig(), err
	}
	if err := mgr.Load(); err != nil {
		return mgr, config.DefaultConfig(), err
	}
	cfg := mgr.Get()
	if cfg == nil {
		return mgr, config.DefaultConfig(), errors.New("config manager returned no configuration")
	}
	return mgr, cfg, nil
}
