package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/bnema/flexpane/internal/application/port"
	"github.com/bnema/flexpane/internal/domain/entity"
	"github.com/bnema/flexpane/internal/domain/repository"
	"github.com/bnema/flexpane/internal/logging"
)

// LazyDB implements port.DatabaseProvider with lazy initialization.
// The connection is created on first access, deferring the WASM compilation
// and migration cost until a size hint is actually needed.
type LazyDB struct {
	dbPath string
	db     *sql.DB
	err    error
	once   sync.Once
	mu     sync.RWMutex
}

// Compile-time interface check.
var _ port.DatabaseProvider = (*LazyDB)(nil)

// NewLazyDB creates a new lazy database provider.
func NewLazyDB(dbPath string) *LazyDB {
	return &LazyDB{dbPath: dbPath}
}

// DB returns the database connection, initializing it if necessary.
func (l *LazyDB) DB(ctx context.Context) (*sql.DB, error) {
	l.once.Do(func() {
		log := logging.FromContext(ctx)
		log.Debug().Str("path", l.dbPath).Msg("lazy database initialization starting")

		db, err := NewConnection(ctx, l.dbPath)
		l.mu.Lock()
		l.db, l.err = db, err
		l.mu.Unlock()
		if err != nil {
			log.Error().Err(err).Msg("lazy database initialization failed")
		}
	})

	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.err != nil {
		return nil, fmt.Errorf("database initialization failed: %w", l.err)
	}
	return l.db, nil
}

// Close closes the database connection if it was initialized.
func (l *LazyDB) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.db != nil {
		return l.db.Close()
	}
	return nil
}

// IsInitialized returns true if the database has been initialized.
func (l *LazyDB) IsInitialized() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.db != nil
}

// Path returns the database path.
func (l *LazyDB) Path() string {
	return l.dbPath
}

// LazySizeHintRepository opens the database on the first hint access.
type LazySizeHintRepository struct {
	provider port.DatabaseProvider
	repo     repository.SizeHintRepository
	once     sync.Once
	initErr  error
}

// NewLazySizeHintRepository creates a lazy-loading size hint repository.
func NewLazySizeHintRepository(provider port.DatabaseProvider) repository.SizeHintRepository {
	return &LazySizeHintRepository{provider: provider}
}

func (r *LazySizeHintRepository) init(ctx context.Context) error {
	r.once.Do(func() {
		db, err := r.provider.DB(ctx)
		if err != nil {
			r.initErr = err
			return
		}
		r.repo = NewSizeHintRepository(db)
	})
	return r.initErr
}

func (r *LazySizeHintRepository) Get(ctx context.Context, sessionID, containerName string) (*entity.SizeHint, error) {
	if err := r.init(ctx); err != nil {
		return nil, err
	}
	return r.repo.Get(ctx, sessionID, containerName)
}

func (r *LazySizeHintRepository) Set(ctx context.Context, hint *entity.SizeHint) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.repo.Set(ctx, hint)
}

func (r *LazySizeHintRepository) List(ctx context.Context, sessionID string) ([]*entity.SizeHint, error) {
	if err := r.init(ctx); err != nil {
		return nil, err
	}
	return r.repo.List(ctx, sessionID)
}

func (r *LazySizeHintRepository) DeleteSession(ctx context.Context, sessionID string) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.repo.DeleteSession(ctx, sessionID)
}

func (r *LazySizeHintRepository) DeleteAll(ctx context.Context) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.repo.DeleteAll(ctx)
}
