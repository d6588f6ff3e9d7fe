package repository

//go:generate mockgen -source=size_hint.go -destination=mocks/mock_size_hint.go -package=mocks

import (
	"context"
	"errors"

	"github.com/bnema/flexpane/internal/domain/entity"
)

// ErrHintNotFound is returned by Get when no hint is stored.
var ErrHintNotFound = errors.New("size hint not found")

// SizeHintRepository persists per-session container grow hints.
type SizeHintRepository interface {
	// Get returns the hint for a container, ErrHintNotFound when none is stored.
	Get(ctx context.Context, sessionID, containerName string) (*entity.SizeHint, error)

	// Set saves or replaces a hint.
	Set(ctx context.Context, hint *entity.SizeHint) error

	// List returns every hint of a session, most recent first.
	List(ctx context.Context, sessionID string) ([]*entity.SizeHint, error)

	// DeleteSession removes every hint of a session.
	DeleteSession(ctx context.Context, sessionID string) error

	// DeleteAll removes every hint.
	DeleteAll(ctx context.Context) error
}
