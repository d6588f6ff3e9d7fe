package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/flexpane/internal/application/port"
	"github.com/bnema/flexpane/internal/cache/generic"
	"github.com/bnema/flexpane/internal/domain/entity"
	"github.com/bnema/flexpane/internal/domain/repository"
	"github.com/bnema/flexpane/internal/logging"
)

// SizeHintService is the session-scoped grow hint cache. Repository errors
// are logged and swallowed; a nil repository disables hints.
type SizeHintService struct {
	repo      repository.SizeHintRepository
	sessionID string
	clock     port.Clock
}

var _ port.SizeHints = (*SizeHintService)(nil)

// NewSizeHintService creates a hint cache bound to one session.
func NewSizeHintService(repo repository.SizeHintRepository, sessionID string, clock port.Clock) *SizeHintService {
	return &SizeHintService{repo: repo, sessionID: sessionID, clock: clock}
}

// SessionID returns the session hints are scoped to.
func (s *SizeHintService) SessionID() string {
	return s.sessionID
}

func (s *SizeHintService) Lookup(ctx context.Context, containerName string) (float64, bool) {
	if s == nil || s.repo == nil {
		return 0, false
	}
	log := logging.FromContext(ctx)

	hint, err := s.repo.Get(ctx, s.sessionID, containerName)
	if errors.Is(err, repository.ErrHintNotFound) {
		return 0, false
	}
	if err != nil {
		log.Warn().Err(err).Str("container", containerName).Msg("size hint lookup failed")
		return 0, false
	}
	if hint == nil || hint.Grow < 0 {
		return 0, false
	}
	return hint.Grow, true
}

func (s *SizeHintService) Remember(ctx context.Context, containerName string, grow float64) {
	if s == nil || s.repo == nil {
		return
	}
	if err := s.Persist(ctx, containerName, grow); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Str("container", containerName).Msg("size hint write failed")
	}
}

// LoadAll returns the stored grows of the session keyed by container name.
func (s *SizeHintService) LoadAll(ctx context.Context) (map[string]float64, error) {
	out := make(map[string]float64)
	if s == nil || s.repo == nil {
		return out, nil
	}
	hints, err := s.repo.List(ctx, s.sessionID)
	if err != nil {
		return nil, fmt.Errorf("list size hints of %s: %w", s.sessionID, err)
	}
	for _, h := range hints {
		if h.Grow >= 0 {
			out[h.ContainerName] = h.Grow
		}
	}
	return out, nil
}

// Persist stores one grow hint and returns repository errors.
func (s *SizeHintService) Persist(ctx context.Context, containerName string, grow float64) error {
	if s == nil || s.repo == nil {
		return nil
	}
	return s.repo.Set(ctx, &entity.SizeHint{
		SessionID:     s.sessionID,
		ContainerName: containerName,
		Grow:          grow,
		UpdatedAt:     s.clock.Now(),
	})
}

// CachedSizeHints serves hint lookups from memory and writes them behind,
// keeping the repository off the caller's goroutine.
type CachedSizeHints struct {
	cache *generic.WriteBehind[string, float64]
}

var _ port.SizeHints = (*CachedSizeHints)(nil)

// NewCachedSizeHints preloads every hint of the service's session.
func NewCachedSizeHints(ctx context.Context, service *SizeHintService) (*CachedSizeHints, error) {
	cache := generic.NewWriteBehind[string, float64](service)
	if err := cache.Load(ctx); err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Debug().
		Str("session", service.SessionID()).
		Int("hints", cache.Len()).
		Msg("size hints preloaded")
	return &CachedSizeHints{cache: cache}, nil
}

func (c *CachedSizeHints) Lookup(_ context.Context, containerName string) (float64, bool) {
	return c.cache.Get(containerName)
}

func (c *CachedSizeHints) Remember(ctx context.Context, containerName string, grow float64) {
	c.cache.Set(ctx, containerName, grow)
}

// Flush waits for pending hint writes.
func (c *CachedSizeHints) Flush() {
	c.cache.Flush()
}
