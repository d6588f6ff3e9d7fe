package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// FileSink is the rotating log file writer. The TUI owns the terminal, so
// the demo logs here instead of stderr.
type FileSink struct {
	*lumberjack.Logger
}

// NewFileSink opens (or creates) path so that permission problems surface
// at startup rather than on the first log line. maxSizeMB <= 0 keeps the
// lumberjack default of 100 MB; maxBackups <= 0 keeps every backup.
func NewFileSink(path string, maxSizeMB, maxBackups int) (*FileSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close log file: %w", err)
	}

	return &FileSink{Logger: &lumberjack.Logger{
		Filename:   path,
		MaxSize:    max(0, maxSizeMB),
		MaxBackups: max(0, maxBackups),
		LocalTime:  true,
	}}, nil
}
