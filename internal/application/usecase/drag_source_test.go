package usecase_test

import (
	"testing"
	"time"

	"github.com/bnema/flexpane/internal/application/usecase"
	"github.com/bnema/flexpane/internal/domain/entity"
	"github.com/bnema/flexpane/internal/domain/gesture"
	"github.com/bnema/flexpane/internal/infrastructure/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type immediateFrames struct{ posted []string }

func (f *immediateFrames) Post(key string, fn func()) {
	f.posted = append(f.posted, key)
	fn()
}

func TestDragSource_DropMovesTabIntoSplit(t *testing.T) {
	f := newSplitFixture(t, "a", "b")
	ctx := testContext()
	f.uc.Start(ctx)
	defer f.uc.Close()
	require.True(t, f.registry.SplitScreens.SetBounds("root", "root", entity.Rect{W: 200, H: 100}))

	fake := clock.NewFake(epoch)
	frames := &immediateFrames{}
	ds := usecase.NewDragSourceUseCase(f.registry, frames, fake, gesture.DefaultConfig())

	var results []entity.DropResult
	m := ds.Bind(ctx, usecase.DragSource{
		Root:            "root",
		LayoutName:      "root",
		ContainerName:   "b",
		NavigationTitle: "b",
		ScreenKey:       "kb",
		Content:         "content:b",
		OnResult:        func(r entity.DropResult) { results = append(results, r) },
	})

	m.Handle(gesture.Start{Point: entity.Point{X: 100, Y: 50}, Kind: entity.PointerMouse})
	preview, _ := f.registry.DropPreview.Get()
	assert.False(t, preview.Visible, "nothing happens before the hold delay")

	fake.Advance(300 * time.Millisecond)
	m.Handle(gesture.Move{Point: entity.Point{X: 190, Y: 50}})

	preview, _ = f.registry.DropPreview.Get()
	require.True(t, preview.Visible)
	assert.Equal(t, entity.BoundaryRight, preview.Boundary)
	assert.Equal(t, entity.Rect{X: 100, Y: 0, W: 100, H: 100}, preview.Rect)

	m.Handle(gesture.End{Point: entity.Point{X: 190, Y: 50}})

	require.Len(t, results, 1)
	assert.True(t, results[0].Accepted)
	assert.Equal(t, "root_after-1=kb", results[0].TargetLayoutName)
	assert.NotEmpty(t, results[0].CorrelationID)

	preview, _ = f.registry.DropPreview.Get()
	assert.False(t, preview.Visible)

	root := f.view(t, "root")
	assert.Equal(t, []string{"b_root_after-0"}, names(root.After))
	group := f.view(t, f.childKey(t, "root", entity.DropCenter, 0))
	assert.Equal(t, []string{"a"}, names(group.Center), "the dragged tab leaves its source")

	assert.Contains(t, frames.posted, "drag:root/b")
	_, ok := m.State().(gesture.Idle)
	assert.True(t, ok)
}

func TestDragSource_CancelClearsPreview(t *testing.T) {
	f := newSplitFixture(t, "a", "b")
	ctx := testContext()
	f.uc.Start(ctx)
	defer f.uc.Close()
	require.True(t, f.registry.SplitScreens.SetBounds("root", "root", entity.Rect{W: 200, H: 100}))

	fake := clock.NewFake(epoch)
	ds := usecase.NewDragSourceUseCase(f.registry, &immediateFrames{}, fake, gesture.DefaultConfig())

	called := false
	m := ds.Bind(ctx, usecase.DragSource{
		Root:          "root",
		LayoutName:    "root",
		ContainerName: "b",
		OnResult:      func(entity.DropResult) { called = true },
	})

	m.Handle(gesture.Start{Point: entity.Point{X: 10, Y: 50}, Kind: entity.PointerMouse})
	fake.Advance(300 * time.Millisecond)
	preview, _ := f.registry.DropPreview.Get()
	require.True(t, preview.Visible)

	m.Handle(gesture.Cancel{})
	preview, _ = f.registry.DropPreview.Get()
	assert.False(t, preview.Visible)
	assert.False(t, called)
	assert.Equal(t, []string{"a", "b"}, names(f.view(t, "root").Center))
}

func TestDragSource_DropOutsideIsReported(t *testing.T) {
	f := newSplitFixture(t, "a", "b")
	ctx := testContext()
	f.uc.Start(ctx)
	defer f.uc.Close()
	require.True(t, f.registry.SplitScreens.SetBounds("root", "root", entity.Rect{W: 200, H: 100}))

	fake := clock.NewFake(epoch)
	ds := usecase.NewDragSourceUseCase(f.registry, &immediateFrames{}, fake, gesture.DefaultConfig())

	opt := &entity.DropOutsideOption{OpenURL: "https://example.com/b", NewTab: true}
	var got entity.DropResult
	m := ds.Bind(ctx, usecase.DragSource{
		Root:          "root",
		LayoutName:    "root",
		ContainerName: "b",
		DropOutside:   opt,
		OnResult:      func(r entity.DropResult) { got = r },
	})

	m.Handle(gesture.Start{Point: entity.Point{X: 10, Y: 50}, Kind: entity.PointerMouse})
	fake.Advance(300 * time.Millisecond)
	m.Handle(gesture.Move{Point: entity.Point{X: 400, Y: 300}})
	m.Handle(gesture.End{Point: entity.Point{X: 400, Y: 300}})

	assert.False(t, got.Accepted)
	assert.Same(t, opt, got.Outside)
	assert.Equal(t, []string{"a", "b"}, names(f.view(t, "root").Center))
}
