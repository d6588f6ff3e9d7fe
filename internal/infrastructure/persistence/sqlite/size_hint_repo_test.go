package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/flexpane/internal/domain/entity"
	"github.com/bnema/flexpane/internal/domain/repository"
	"github.com/bnema/flexpane/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/flexpane/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCtx() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func TestSizeHintRepository_CRUD(t *testing.T) {
	ctx := testCtx()
	dbPath := filepath.Join(t.TempDir(), "nested", "flexpane.db")

	db, err := sqlite.NewConnection(ctx, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })

	repo := sqlite.NewSizeHintRepository(db)

	_, err = repo.Get(ctx, "s1", "left")
	assert.ErrorIs(t, err, repository.ErrHintNotFound)

	t0 := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Set(ctx, &entity.SizeHint{SessionID: "s1", ContainerName: "left", Grow: 1.5, UpdatedAt: t0}))
	require.NoError(t, repo.Set(ctx, &entity.SizeHint{SessionID: "s1", ContainerName: "right", Grow: 0.5, UpdatedAt: t0.Add(time.Minute)}))
	require.NoError(t, repo.Set(ctx, &entity.SizeHint{SessionID: "s2", ContainerName: "left", Grow: 3, UpdatedAt: t0}))

	got, err := repo.Get(ctx, "s1", "left")
	require.NoError(t, err)
	assert.Equal(t, "s1", got.SessionID)
	assert.InDelta(t, 1.5, got.Grow, 1e-9)
	assert.True(t, got.UpdatedAt.Equal(t0))

	// upsert replaces
	require.NoError(t, repo.Set(ctx, &entity.SizeHint{SessionID: "s1", ContainerName: "left", Grow: 0, UpdatedAt: t0.Add(2 * time.Minute)}))
	got, err = repo.Get(ctx, "s1", "left")
	require.NoError(t, err)
	assert.Zero(t, got.Grow)

	list, err := repo.List(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "left", list[0].ContainerName, "most recent first")
	assert.Equal(t, "right", list[1].ContainerName)

	require.NoError(t, repo.DeleteSession(ctx, "s1"))
	list, err = repo.List(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = repo.Get(ctx, "s2", "left")
	require.NoError(t, err)
	require.NoError(t, repo.DeleteAll(ctx))
	_, err = repo.Get(ctx, "s2", "left")
	assert.ErrorIs(t, err, repository.ErrHintNotFound)
}

func TestSizeHintRepository_RejectsNegativeGrow(t *testing.T) {
	ctx := testCtx()
	db, err := sqlite.NewConnection(ctx, filepath.Join(t.TempDir(), "flexpane.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	err = sqlite.NewSizeHintRepository(db).Set(ctx, &entity.SizeHint{SessionID: "s", ContainerName: "a", Grow: -1})
	assert.Error(t, err)
}

func TestNewConnection_ReopenKeepsData(t *testing.T) {
	ctx := testCtx()
	dbPath := filepath.Join(t.TempDir(), "flexpane.db")

	db, err := sqlite.NewConnection(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, sqlite.NewSizeHintRepository(db).Set(ctx, &entity.SizeHint{SessionID: "s", ContainerName: "a", Grow: 2}))
	require.NoError(t, db.Close())

	db, err = sqlite.NewConnection(ctx, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	got, err := sqlite.NewSizeHintRepository(db).Get(ctx, "s", "a")
	require.NoError(t, err)
	assert.InDelta(t, 2.0, got.Grow, 1e-9)
}

func TestNewConnection_EmptyPath(t *testing.T) {
	_, err := sqlite.NewConnection(testCtx(), "")
	assert.Error(t, err)
}
