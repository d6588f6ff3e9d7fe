package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// FromContext extracts the logger from context
// If no logger is found, returns a disabled logger (no-op)
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// WithComponent creates a child logger with a component field
func WithComponent(ctx context.Context, component string) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str("component", component).Logger()
	return WithContext(ctx, childLogger)
}

// WithLayout creates a child logger with a layout field
func WithLayout(ctx context.Context, layout string) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str("layout", layout).Logger()
	return WithContext(ctx, childLogger)
}

// WithRoot creates a child logger with a split-screen root field
func WithRoot(ctx context.Context, root string) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str("root", root).Logger()
	return WithContext(ctx, childLogger)
}

// WithContainer creates a child logger with a container field
func WithContainer(ctx context.Context, container string) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str("container", container).Logger()
	return WithContext(ctx, childLogger)
}
