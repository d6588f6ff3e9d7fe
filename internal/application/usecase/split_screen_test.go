package usecase_test

import (
	"testing"

	"github.com/bnema/flexpane/internal/application/usecase"
	"github.com/bnema/flexpane/internal/domain/entity"
	"github.com/bnema/flexpane/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type splitFixture struct {
	registry *store.Registry
	uc       *usecase.SplitScreenUseCase
}

func newSplitFixture(t *testing.T, tabs ...string) *splitFixture {
	t.Helper()
	f := &splitFixture{registry: store.NewRegistry()}
	f.uc = usecase.NewSplitScreenUseCase(f.registry, usecase.DefaultSplitScreenConfig())

	entries := make([]entity.DropTarget, len(tabs))
	for i, name := range tabs {
		entries[i] = entity.DropTarget{ContainerName: name, ScreenKey: "k" + name, NavigationTitle: name}
	}
	f.uc.Mount(testContext(), "root", entity.AxisRow, entries...)
	return f
}

func (f *splitFixture) view(t *testing.T, key string) entity.NodeView {
	t.Helper()
	v, ok := f.registry.SplitScreens.View("root", key)
	require.True(t, ok, "node %q", key)
	return v
}

func (f *splitFixture) childKey(t *testing.T, key string, pos entity.DropPosition, idx int) string {
	t.Helper()
	entry := f.view(t, key).List(pos)[idx]
	var out string
	f.registry.SplitScreens.Read("root", func(tr *entity.SplitTree) {
		out = tr.Key(entry.Child)
	})
	require.NotEmpty(t, out)
	return out
}

func names(list []entity.DropTarget) []string {
	out := make([]string, len(list))
	for i, e := range list {
		out[i] = e.ContainerName
	}
	return out
}

func (f *splitFixture) appendSide(key, name string, order entity.DropPosition, dir entity.Axis) entity.DropResult {
	reply := make(chan entity.DropResult, 1)
	f.uc.Dispatch(testContext(), entity.DropMovementEvent{
		ID:                  entity.NewCorrelationID(),
		State:               entity.MovementAppend,
		Root:                "root",
		TargetLayoutName:    key,
		TargetContainerName: name,
		Content:             "content:" + name,
		Order:               order,
		Target: &entity.DropTargetInfo{
			Origin:          name,
			NavigationTitle: name,
			ScreenKey:       "k" + name,
			Direction:       dir,
		},
		Reply: reply,
	})
	select {
	case res := <-reply:
		return res
	default:
		return entity.DropResult{}
	}
}

func (f *splitFixture) remove(key, name string) {
	f.uc.Dispatch(testContext(), entity.DropMovementEvent{
		State:               entity.MovementRemove,
		Root:                "root",
		TargetLayoutName:    key,
		TargetContainerName: name,
	})
}

func TestSplitScreen_MountPublishesCount(t *testing.T) {
	f := newSplitFixture(t, "a")
	count, _ := f.registry.SplitScreenCount.Get()
	assert.Equal(t, 1, count)

	root := f.view(t, "root")
	assert.Equal(t, []string{"a"}, names(root.Center))
	assert.Equal(t, "a", root.Center[0].Origin)

	f.uc.Unmount(testContext(), "root")
	count, _ = f.registry.SplitScreenCount.Get()
	assert.Equal(t, 0, count)
}

func TestSplitScreen_SideDropSplitsNode(t *testing.T) {
	f := newSplitFixture(t, "a")

	res := f.appendSide("root", "b", entity.DropAfter, entity.AxisRow)
	require.True(t, res.Accepted)
	assert.Equal(t, "root_after-1=kb", res.TargetLayoutName)

	root := f.view(t, "root")
	assert.True(t, root.IsSplit())
	assert.Equal(t, entity.AxisRow, root.Direction)
	require.Len(t, root.Center, 1)
	assert.True(t, root.Center[0].Group)
	assert.Equal(t, []string{"b_root_after-0"}, names(root.After))

	group := f.view(t, f.childKey(t, "root", entity.DropCenter, 0))
	assert.Equal(t, []string{"a"}, names(group.Center))

	child := f.view(t, "root_after-1=kb")
	assert.Equal(t, []string{"b_root_after-0"}, names(child.Center))
	assert.Equal(t, "content:b", child.Center[0].Content)
	assert.Equal(t, 1, child.Depth)
}

func TestSplitScreen_RemovingChildCollapsesParent(t *testing.T) {
	f := newSplitFixture(t, "a")
	require.True(t, f.appendSide("root", "b", entity.DropAfter, entity.AxisRow).Accepted)

	f.remove("root_after-1=kb", "b_root_after-0")

	root := f.view(t, "root")
	assert.False(t, root.IsSplit())
	assert.Equal(t, []string{"a"}, names(root.Center))
	_, ok := f.registry.SplitScreens.View("root", "root_after-1=kb")
	assert.False(t, ok)

	var size int
	f.registry.SplitScreens.Read("root", func(tr *entity.SplitTree) { size = tr.Len() })
	assert.Equal(t, 1, size)
}

func TestSplitScreen_SameDirectionPropagatesToParent(t *testing.T) {
	f := newSplitFixture(t, "a")
	require.True(t, f.appendSide("root", "b", entity.DropAfter, entity.AxisRow).Accepted)

	res := f.appendSide("root_after-1=kb", "c", entity.DropAfter, entity.AxisRow)
	require.True(t, res.Accepted)

	root := f.view(t, "root")
	assert.Equal(t, []string{"b_root_after-0", "c_root_after-1"}, names(root.After))
	assert.Equal(t, "root_after-1=kc", res.TargetLayoutName)

	child := f.view(t, "root_after-1=kb")
	assert.False(t, child.IsSplit())
}

func TestSplitScreen_PropagatedBeforeDropLandsBeforeAnchor(t *testing.T) {
	f := newSplitFixture(t, "a")
	require.True(t, f.appendSide("root", "b", entity.DropAfter, entity.AxisRow).Accepted)

	require.True(t, f.appendSide("root_after-1=kb", "c", entity.DropBefore, entity.AxisRow).Accepted)

	root := f.view(t, "root")
	assert.Equal(t, []string{"c_root_before-1", "b_root_after-0"}, names(root.After))
	assert.Empty(t, root.Before)
}

func TestSplitScreen_SequentialAnchoredDropsKeepOrder(t *testing.T) {
	f := newSplitFixture(t, "a")
	require.True(t, f.appendSide("root", "b", entity.DropAfter, entity.AxisRow).Accepted)
	require.True(t, f.appendSide("root_after-1=kb", "c", entity.DropAfter, entity.AxisRow).Accepted)

	require.True(t, f.appendSide("root_after-1=kc", "d", entity.DropBefore, entity.AxisRow).Accepted)
	require.True(t, f.appendSide("root_after-1=kb", "e", entity.DropAfter, entity.AxisRow).Accepted)

	root := f.view(t, "root")
	assert.Equal(t, []string{
		"b_root_after-0",
		"e_root_after-3",
		"d_root_before-2",
		"c_root_after-1",
	}, names(root.After))
}

func TestSplitScreen_RepeatedNameKeepsFirstOccurrence(t *testing.T) {
	f := newSplitFixture(t, "a")
	require.True(t, f.appendSide("root", "x", entity.DropBefore, entity.AxisRow).Accepted)
	require.True(t, f.appendSide("root", "y", entity.DropBefore, entity.AxisRow).Accepted)
	f.remove("root", "x_root_before-0")
	require.Equal(t, []string{"y_root_before-1"}, names(f.view(t, "root").Before))

	reply := make(chan entity.DropResult, 1)
	f.uc.Dispatch(testContext(), entity.DropMovementEvent{
		State:               entity.MovementAppend,
		Root:                "root",
		TargetLayoutName:    "root",
		TargetContainerName: "y",
		Content:             "fresh",
		Order:               entity.DropBefore,
		Target:              &entity.DropTargetInfo{Origin: "y", ScreenKey: "ky2", Direction: entity.AxisRow},
		Reply:               reply,
	})
	res := <-reply
	require.True(t, res.Accepted)
	assert.Equal(t, "root_before-1=ky2", res.TargetLayoutName)

	root := f.view(t, "root")
	require.Equal(t, []string{"y_root_before-1"}, names(root.Before))
	assert.Equal(t, "fresh", root.Before[0].Content)
	assert.Equal(t, "ky2", root.Before[0].ScreenKey)

	_, ok := f.registry.SplitScreens.View("root", "root_before-1=ky")
	assert.False(t, ok)
	var size int
	f.registry.SplitScreens.Read("root", func(tr *entity.SplitTree) { size = tr.Len() })
	assert.Equal(t, 3, size)
}

func TestSplitScreen_CrossDirectionSplitsChild(t *testing.T) {
	f := newSplitFixture(t, "a")
	require.True(t, f.appendSide("root", "b", entity.DropAfter, entity.AxisRow).Accepted)

	res := f.appendSide("root_after-1=kb", "c", entity.DropAfter, entity.AxisColumn)
	require.True(t, res.Accepted)

	child := f.view(t, "root_after-1=kb")
	assert.True(t, child.IsSplit())
	assert.Equal(t, entity.AxisColumn, child.Direction)
	assert.Equal(t, []string{"c_root_after-1=kb_after-0"}, names(child.After))
	assert.Equal(t, "root_after-1=kb_after-2=kc", res.TargetLayoutName)

	root := f.view(t, "root")
	assert.Equal(t, entity.AxisRow, root.Direction)
	assert.Equal(t, []string{"b_root_after-0"}, names(root.After))
}

func TestSplitScreen_CenterDropAddsTabs(t *testing.T) {
	f := newSplitFixture(t, "a")

	res := f.appendSide("root", "x", entity.DropCenter, entity.AxisRow)
	require.True(t, res.Accepted)
	assert.Equal(t, "root", res.TargetLayoutName)

	root := f.view(t, "root")
	assert.Equal(t, []string{"a", "x_root"}, names(root.Center))
	assert.Equal(t, 1, root.ActiveIndex)

	res = f.appendSide("root", "y", entity.DropCenter, entity.AxisRow)
	require.True(t, res.Accepted)
	assert.NotEqual(t, "root", res.TargetLayoutName)

	sub := f.view(t, res.TargetLayoutName)
	assert.Len(t, sub.Center, 2)
	assert.Equal(t, "x_root", sub.Center[0].ContainerName)
	assert.Equal(t, "y_"+res.TargetLayoutName, sub.Center[1].ContainerName)

	root = f.view(t, "root")
	assert.Equal(t, []string{"a", "x_root"}, names(root.Center), "tabs of the parent are unchanged")
}

func TestSplitScreen_ContentChangeKeepsRevision(t *testing.T) {
	f := newSplitFixture(t, "a")
	require.True(t, f.appendSide("root", "x", entity.DropCenter, entity.AxisRow).Accepted)

	f.uc.ActivateTab(testContext(), "root", "root", 0)
	before := f.view(t, "root").Revision

	f.uc.Dispatch(testContext(), entity.DropMovementEvent{
		State:               entity.MovementChange,
		Root:                "root",
		TargetLayoutName:    "root",
		TargetContainerName: "x_root",
		Content:             "new payload",
	})
	after := f.view(t, "root")
	assert.Equal(t, before, after.Revision)
	assert.Equal(t, "new payload", after.Center[1].Content)
}

func TestSplitScreen_CloseTabSelectsNeighbour(t *testing.T) {
	f := newSplitFixture(t, "a", "b", "c")
	ctx := testContext()

	require.True(t, f.uc.ActivateTab(ctx, "root", "root", 1))
	assert.False(t, f.uc.ActivateTab(ctx, "root", "root", 7))

	f.uc.CloseTab(ctx, "root", "root", 1)
	root := f.view(t, "root")
	assert.Equal(t, []string{"a", "c"}, names(root.Center))
	assert.Equal(t, 1, root.ActiveIndex, "the next tab takes over")

	f.uc.CloseTab(ctx, "root", "root", 1)
	root = f.view(t, "root")
	assert.Equal(t, []string{"a"}, names(root.Center))
	assert.Equal(t, 0, root.ActiveIndex, "the previous tab takes over when there is no next")
}

func TestSplitScreen_CloseTabBeforeActiveKeepsSelection(t *testing.T) {
	f := newSplitFixture(t, "a", "b", "c")
	ctx := testContext()

	require.True(t, f.uc.ActivateTab(ctx, "root", "root", 2))
	f.uc.CloseTab(ctx, "root", "root", 0)

	root := f.view(t, "root")
	assert.Equal(t, []string{"b", "c"}, names(root.Center))
	active, ok := root.Active()
	require.True(t, ok)
	assert.Equal(t, "c", active.ContainerName)
}

func TestSplitScreen_ClosingLastTabOfChildRemovesIt(t *testing.T) {
	f := newSplitFixture(t, "a")
	require.True(t, f.appendSide("root", "b", entity.DropAfter, entity.AxisRow).Accepted)

	f.uc.CloseTab(testContext(), "root", "root_after-1=kb", 0)

	root := f.view(t, "root")
	assert.False(t, root.IsSplit())
	assert.Equal(t, []string{"a"}, names(root.Center))
}

func TestSplitScreen_SplitKeepsTabSubNodesReachable(t *testing.T) {
	f := newSplitFixture(t, "a")
	ctx := testContext()
	require.True(t, f.appendSide("root", "x", entity.DropCenter, entity.AxisRow).Accepted)
	require.True(t, f.appendSide("root", "y", entity.DropCenter, entity.AxisRow).Accepted)
	require.True(t, f.appendSide("root", "b", entity.DropAfter, entity.AxisRow).Accepted)

	groupKey := f.childKey(t, "root", entity.DropCenter, 0)
	assert.Equal(t, []string{"a", "x_root"}, names(f.view(t, groupKey).Center))
	subKey := f.childKey(t, groupKey, entity.DropCenter, 1)
	require.Len(t, f.view(t, subKey).Center, 2)

	f.registry.SplitScreens.Read("root", func(tr *entity.SplitTree) {
		sub := tr.Find(subKey)
		assert.Equal(t, tr.Find(groupKey), tr.Node(sub).Parent)
		_, ok := tr.Slot(sub)
		assert.True(t, ok)
	})

	f.uc.CloseTab(ctx, "root", subKey, 0)
	f.uc.CloseTab(ctx, "root", subKey, 0)

	_, ok := f.registry.SplitScreens.View("root", subKey)
	assert.False(t, ok)
	group := f.view(t, groupKey)
	assert.Equal(t, []string{"a"}, names(group.Center))
	assert.Zero(t, group.Center[0].Child)

	var size int
	f.registry.SplitScreens.Read("root", func(tr *entity.SplitTree) { size = tr.Len() })
	assert.Equal(t, 3, size)
}

func TestSplitScreen_RootCanBecomeEmpty(t *testing.T) {
	f := newSplitFixture(t, "a")
	f.uc.CloseTab(testContext(), "root", "root", 0)

	root := f.view(t, "root")
	assert.True(t, root.IsEmpty())
}

func TestSplitScreen_MoveTab(t *testing.T) {
	f := newSplitFixture(t, "a", "b")

	res := f.uc.Move(testContext(), "root", "root", "b", "root", entity.DropAfter, entity.AxisRow)
	require.True(t, res.Accepted)
	assert.Equal(t, "root_after-1=kb", res.TargetLayoutName)

	root := f.view(t, "root")
	assert.Equal(t, []string{"b_root_after-0"}, names(root.After))
	group := f.view(t, f.childKey(t, "root", entity.DropCenter, 0))
	assert.Equal(t, []string{"a"}, names(group.Center))

	missing := f.uc.Move(testContext(), "root", "root", "zzz", "root", entity.DropAfter, entity.AxisRow)
	assert.False(t, missing.Accepted)
}

func TestSplitScreen_MoveWithinListAfterRemovals(t *testing.T) {
	f := newSplitFixture(t, "a")
	require.True(t, f.appendSide("root", "x", entity.DropAfter, entity.AxisRow).Accepted)
	require.True(t, f.appendSide("root", "b", entity.DropAfter, entity.AxisRow).Accepted)
	f.remove("root", "x_root_after-0")
	require.True(t, f.appendSide("root", "z", entity.DropAfter, entity.AxisRow).Accepted)
	f.remove("root", "b_root_after-1")
	require.Equal(t, []string{"z_root_after-1"}, names(f.view(t, "root").After))

	res := f.uc.Move(testContext(), "root", "root", "z_root_after-1", "root", entity.DropAfter, entity.AxisRow)
	require.True(t, res.Accepted)

	root := f.view(t, "root")
	require.Equal(t, []string{"z_root_after-1_root_after-1"}, names(root.After))
	assert.Equal(t, "content:z", root.After[0].Content)
	assert.Equal(t, "kz", root.After[0].ScreenKey)
}

func TestSplitScreen_EditsEmittedDuringDrainRunAfterCurrent(t *testing.T) {
	f := newSplitFixture(t, "a")
	ctx := testContext()

	var seenDuringListener []string
	fired := false
	stop := f.registry.SplitScreens.OnChange(func(string) {
		if fired {
			return
		}
		fired = true
		f.uc.Dispatch(ctx, entity.DropMovementEvent{
			State:               entity.MovementAppend,
			Root:                "root",
			TargetLayoutName:    "root",
			TargetContainerName: "y",
			Order:               entity.DropBefore,
			Target:              &entity.DropTargetInfo{Origin: "y", ScreenKey: "ky", Direction: entity.AxisRow},
		})
		seenDuringListener = names(f.view(t, "root").Before)
	})
	defer stop()

	require.True(t, f.appendSide("root", "b", entity.DropAfter, entity.AxisRow).Accepted)

	assert.Empty(t, seenDuringListener, "queued edit must not run inside the listener")
	root := f.view(t, "root")
	assert.Equal(t, []string{"y_root_before-0"}, names(root.Before))
	assert.Equal(t, []string{"b_root_after-0"}, names(root.After))
}

func TestSplitScreen_DropRouting(t *testing.T) {
	f := newSplitFixture(t, "a")
	ctx := testContext()
	f.uc.Start(ctx)
	defer f.uc.Close()

	require.True(t, f.appendSide("root", "b", entity.DropAfter, entity.AxisRow).Accepted)
	groupKey := f.childKey(t, "root", entity.DropCenter, 0)

	require.True(t, f.registry.SplitScreens.SetBounds("root", "root", entity.Rect{W: 200, H: 100}))
	require.True(t, f.registry.SplitScreens.SetBounds("root", groupKey, entity.Rect{W: 100, H: 100}))
	require.True(t, f.registry.SplitScreens.SetBounds("root", "root_after-1=kb", entity.Rect{X: 100, W: 100, H: 100}))

	t.Run("preview follows the pointer", func(t *testing.T) {
		f.registry.DragState.Set(entity.DragState{IsDragging: true, ContainerName: "z", Point: entity.Point{X: 50, Y: 5}})
		preview, _ := f.registry.DropPreview.Get()
		assert.True(t, preview.Visible)
		assert.Equal(t, groupKey, preview.LayoutName)
		assert.Equal(t, entity.BoundaryTop, preview.Boundary)
		assert.Equal(t, entity.Rect{X: 0, Y: 0, W: 100, H: 50}, preview.Rect)

		f.registry.DragState.Set(entity.DragState{ContainerName: "z", Point: entity.Point{X: 50, Y: 5}})
		preview, _ = f.registry.DropPreview.Get()
		assert.False(t, preview.Visible)
	})

	t.Run("self drop is rejected", func(t *testing.T) {
		reply := make(chan entity.DropResult, 1)
		f.registry.DragState.Set(entity.DragState{
			IsDrop:        true,
			ContainerName: "b_root_after-0",
			Point:         entity.Point{X: 150, Y: 50},
			CorrelationID: "c1",
			Reply:         reply,
		})
		res := <-reply
		assert.False(t, res.Accepted)
		assert.Equal(t, "c1", res.CorrelationID)
		assert.Equal(t, []string{"b_root_after-0"}, names(f.view(t, "root").After))
	})

	t.Run("outside drop reports the option", func(t *testing.T) {
		reply := make(chan entity.DropResult, 1)
		opt := &entity.DropOutsideOption{OpenURL: "https://example.com", WidthRatio: 0.5, HeightRatio: 0.5}
		f.registry.DragState.Set(entity.DragState{
			IsDrop:        true,
			ContainerName: "z",
			Point:         entity.Point{X: 500, Y: 500},
			DropOutside:   opt,
			Reply:         reply,
		})
		res := <-reply
		assert.False(t, res.Accepted)
		assert.Same(t, opt, res.Outside)
	})

	t.Run("bottom band of a child splits it by column", func(t *testing.T) {
		reply := make(chan entity.DropResult, 1)
		f.registry.DragState.Set(entity.DragState{
			IsDrop:        true,
			ContainerName: "z",
			ScreenKey:     "kz",
			Point:         entity.Point{X: 150, Y: 95},
			Reply:         reply,
		})
		res := <-reply
		require.True(t, res.Accepted)
		child := f.view(t, "root_after-1=kb")
		assert.True(t, child.IsSplit())
		assert.Equal(t, entity.AxisColumn, child.Direction)
		assert.Equal(t, []string{"z_root_after-1=kb_after-0"}, names(child.After))
	})
}
