package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bnema/flexpane/internal/application/usecase"
	"github.com/bnema/flexpane/internal/domain/entity"
	"github.com/bnema/flexpane/internal/domain/repository"
	"github.com/bnema/flexpane/internal/domain/repository/mocks"
	"github.com/bnema/flexpane/internal/infrastructure/clock"
)

func TestSizeHintService_LookupIgnoresNegativeGrow(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSizeHintRepository(ctrl)
	repo.EXPECT().Get(gomock.Any(), "s1", "a").Return(&entity.SizeHint{Grow: -1}, nil)

	svc := usecase.NewSizeHintService(repo, "s1", clock.NewFake(epoch))
	_, ok := svc.Lookup(testContext(), "a")
	assert.False(t, ok)
}

func TestSizeHintService_NilRepositoryDisablesHints(t *testing.T) {
	svc := usecase.NewSizeHintService(nil, "s1", clock.NewFake(epoch))
	ctx := testContext()

	_, ok := svc.Lookup(ctx, "a")
	assert.False(t, ok)
	svc.Remember(ctx, "a", 2)
	all, err := svc.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSizeHintService_LoadAllKeysBySession(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSizeHintRepository(ctrl)
	repo.EXPECT().List(gomock.Any(), "s1").Return([]*entity.SizeHint{
		{SessionID: "s1", ContainerName: "a", Grow: 1.5},
		{SessionID: "s1", ContainerName: "b", Grow: -1},
		{SessionID: "s1", ContainerName: "c", Grow: 0},
	}, nil)

	svc := usecase.NewSizeHintService(repo, "s1", clock.NewFake(epoch))
	all, err := svc.LoadAll(testContext())
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"a": 1.5, "c": 0}, all)
}

func TestSizeHintService_PersistReturnsRepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSizeHintRepository(ctrl)
	repo.EXPECT().Set(gomock.Any(), gomock.Any()).Return(errors.New("read-only"))

	svc := usecase.NewSizeHintService(repo, "s1", clock.NewFake(epoch))
	require.ErrorContains(t, svc.Persist(testContext(), "a", 1), "read-only")
}

func TestCachedSizeHints_ServesPreloadedHints(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSizeHintRepository(ctrl)
	repo.EXPECT().List(gomock.Any(), "s1").Return([]*entity.SizeHint{
		{SessionID: "s1", ContainerName: "a", Grow: 2},
	}, nil)

	cached, err := usecase.NewCachedSizeHints(testContext(), usecase.NewSizeHintService(repo, "s1", clock.NewFake(epoch)))
	require.NoError(t, err)

	grow, ok := cached.Lookup(testContext(), "a")
	assert.True(t, ok)
	assert.InDelta(t, 2.0, grow, 1e-9)
	_, ok = cached.Lookup(testContext(), "b")
	assert.False(t, ok)
}

func TestCachedSizeHints_RememberWritesBehind(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSizeHintRepository(ctrl)
	repo.EXPECT().List(gomock.Any(), "s1").Return(nil, nil)

	var (
		mu    sync.Mutex
		saved []*entity.SizeHint
	)
	repo.EXPECT().Set(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, h *entity.SizeHint) error {
			mu.Lock()
			defer mu.Unlock()
			saved = append(saved, h)
			return nil
		})

	cached, err := usecase.NewCachedSizeHints(testContext(), usecase.NewSizeHintService(repo, "s1", clock.NewFake(epoch)))
	require.NoError(t, err)

	cached.Remember(testContext(), "a", 0.75)
	grow, ok := cached.Lookup(testContext(), "a")
	assert.True(t, ok)
	assert.InDelta(t, 0.75, grow, 1e-9)

	cached.Flush()
	require.Len(t, saved, 1)
	assert.Equal(t, "s1", saved[0].SessionID)
	assert.Equal(t, "a", saved[0].ContainerName)
	assert.Equal(t, epoch, saved[0].UpdatedAt)
}

func TestCachedSizeHints_LoadFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSizeHintRepository(ctrl)
	repo.EXPECT().List(gomock.Any(), "s1").Return(nil, repository.ErrHintNotFound)

	_, err := usecase.NewCachedSizeHints(testContext(), usecase.NewSizeHintService(repo, "s1", clock.NewFake(epoch)))
	require.ErrorIs(t, err, repository.ErrHintNotFound)
}
