package flex

import (
	"math"
	"testing"

	"github.com/bnema/flexpane/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func containers(grows ...float64) []*entity.Container {
	out := make([]*entity.Container, len(grows))
	for i, g := range grows {
		c := entity.NewContainer("layout", string(rune('a'+i)), i)
		c.SetGrow(g)
		out[i] = c
	}
	return out
}

func grows(list []*entity.Container) []float64 {
	out := make([]float64, len(list))
	for i, c := range list {
		out[i] = GetGrow(c)
	}
	return out
}

func TestMathGrow(t *testing.T) {
	assert.Equal(t, 1.5, MathGrow(150, 300, 3))
	assert.Equal(t, 0.0, MathGrow(0, 300, 3))
	assert.Equal(t, 1.0, MathGrow(100, 0, 3), "infinite grow is coerced to 1")
	assert.Equal(t, 0.0, MathGrow(0, 0, 3), "NaN grow is coerced to 0")
	assert.InDelta(t, 150.0, SizeFromGrow(MathGrow(150, 300, 3), 300, 3), 1e-9)
}

func TestMathWeight(t *testing.T) {
	assert.Equal(t, 1.0, MathWeight(3, 3))
	assert.Equal(t, 0.5, MathWeight(2, 1))
	assert.Equal(t, 0.0, MathWeight(0, 0))
}

func TestGetGrowPrefersLiveValue(t *testing.T) {
	c := entity.NewContainer("l", "a", 0).WithGrow(2)
	assert.Equal(t, 2.0, GetGrow(c))

	zero := 0.0
	c.Flex = &zero
	assert.Equal(t, 0.0, GetGrow(c), "a live zero is authoritative")

	nan := math.NaN()
	c.Flex = &nan
	assert.Equal(t, 2.0, GetGrow(c))

	assert.Equal(t, 0.0, GetGrow(entity.NewContainer("l", "b", 1)))
}

func TestRemainSharesWhatIsLeft(t *testing.T) {
	a := entity.NewContainer("l", "a", 0).WithGrow(1.5)
	b := entity.NewContainer("l", "b", 1)
	c := entity.NewContainer("l", "c", 2)

	Remain([]*entity.Container{a, b, c})

	assert.Equal(t, []float64{1.5, 0.75, 0.75}, grows([]*entity.Container{a, b, c}))
}

func TestRemainRecomputesInitialResizable(t *testing.T) {
	a := entity.NewContainer("l", "a", 0).WithGrow(2)
	a.IsInitialResizable = true
	b := entity.NewContainer("l", "b", 1)

	Remain([]*entity.Container{a, b})

	assert.Equal(t, []float64{1, 1}, grows([]*entity.Container{a, b}))
}

func TestSizes(t *testing.T) {
	list := containers(1, 2, 1)
	assert.Equal(t, []float64{100, 200, 100}, Sizes(list, 400))

	small := containers(0.25, 0.25)
	assert.Equal(t, []float64{100, 100}, Sizes(small, 400))

	assert.Equal(t, []float64{0, 0}, Sizes(containers(0, 0), 400))
}

func TestFindNotClosed(t *testing.T) {
	list := containers(1, 0, 0, 1)

	assert.Equal(t, 0, FindNotClosed(list, 2, -1))
	assert.Equal(t, 3, FindNotClosed(list, 1, 1))
	assert.Equal(t, -1, FindNotClosed(containers(0, 0), 1, -1))
}

func TestIsOverMove(t *testing.T) {
	assert.True(t, IsOverMove(0.5, 0))
	assert.True(t, IsOverMove(-3, 0))
	assert.True(t, IsOverMove(40, 50))
	assert.False(t, IsOverMove(60, 50))
	assert.False(t, IsOverMove(10, 0))
}

func TestCloseFlexRedistributesProportionally(t *testing.T) {
	list := containers(1, 1, 1)

	res := CloseFlex(list[1], list, entity.CloseOptions{})

	assert.Equal(t, []float64{1.5, 0, 1.5}, grows(list))
	require.NotNil(t, list[1].PrevGrow)
	assert.Equal(t, 1.0, *list[1].PrevGrow)
	assert.Len(t, res.Affected, 3)
	for _, c := range list {
		assert.True(t, c.Transitioning)
	}
}

func TestCloseFlexSingleSiblingTakesAll(t *testing.T) {
	list := containers(1, 0, 2)
	list[1].SetGrow(0)

	CloseFlex(list[2], list, entity.CloseOptions{})

	assert.Equal(t, []float64{3, 0, 0}, grows(list))
}

func TestCloseFlexResizeEqualizes(t *testing.T) {
	list := containers(0.5, 1, 1.5)

	CloseFlex(list[0], list, entity.CloseOptions{IsResize: true})

	assert.Equal(t, []float64{0, 1.5, 1.5}, grows(list))
}

func TestCloseFlexDisablesResizePanel(t *testing.T) {
	list := containers(1, 1)
	list[0].IsResizePanel = true

	CloseFlex(list[0], list, entity.CloseOptions{DisableResizePanel: true})
	assert.True(t, list[0].ResizePanelDisabled)

	OpenFlex(list[0], list, entity.OpenOptions{}, 200)
	assert.False(t, list[0].ResizePanelDisabled)
}

func TestOpenFlexRestoresPreviousGrow(t *testing.T) {
	list := containers(1, 1, 1)
	CloseFlex(list[1], list, entity.CloseOptions{})

	res := OpenFlex(list[1], list, entity.OpenOptions{IsPrevSizeOpen: true}, 300)

	assert.Equal(t, 1.0, res.Grow)
	for i, g := range grows(list) {
		assert.InDelta(t, 1.0, g, 1e-9, "container %d", i)
	}
}

func TestOpenFlexPriority(t *testing.T) {
	t.Run("important grow wins", func(t *testing.T) {
		list := containers(1.5, 0, 1.5)
		list[1].SetPrevGrow(1)

		res := OpenFlex(list[1], list, entity.OpenOptions{IsPrevSizeOpen: true, OpenGrowImportant: 2}, 300)

		assert.Equal(t, 2.0, res.Grow)
		assert.InDelta(t, 0.5, GetGrow(list[0]), 1e-9)
		assert.InDelta(t, 0.5, GetGrow(list[2]), 1e-9)
	})

	t.Run("fair share without previous size", func(t *testing.T) {
		list := containers(1.5, 0, 1.5)

		res := OpenFlex(list[1], list, entity.OpenOptions{}, 300)

		assert.Equal(t, 1.0, res.Grow)
		assert.InDelta(t, 3.0, GetGrow(list[0])+GetGrow(list[1])+GetGrow(list[2]), 1e-9)
	})

	t.Run("only open container takes the count", func(t *testing.T) {
		list := containers(0, 0)

		res := OpenFlex(list[0], list, entity.OpenOptions{}, 300)

		assert.Equal(t, 2.0, res.Grow)
	})

	t.Run("unmeasured parent falls back to one", func(t *testing.T) {
		list := containers(3, 0, 0)

		res := OpenFlex(list[1], list, entity.OpenOptions{}, 0)

		assert.Equal(t, 1.0, res.Grow)
		assert.InDelta(t, 2.0, GetGrow(list[0]), 1e-9)
	})

	t.Run("resize equalizes open containers", func(t *testing.T) {
		list := containers(2, 0, 1)

		OpenFlex(list[1], list, entity.OpenOptions{IsResize: true}, 300)

		assert.Equal(t, []float64{1, 1, 1}, grows(list))
	})
}

func TestFitContent(t *testing.T) {
	list := containers(1, 1, 1)

	grow := FitContent(list[0], list, 60, 300)

	assert.InDelta(t, 0.6, grow, 1e-9)
	assert.InDelta(t, 1.2, GetGrow(list[1]), 1e-9)
	assert.InDelta(t, 1.2, GetGrow(list[2]), 1e-9)

	assert.Equal(t, 3.0, FitContent(list[0], list, 900, 300), "clamped to the count")
}

func TestRemainRedistributesEarlierShares(t *testing.T) {
	a := entity.NewContainer("l", "a", 0)
	Remain([]*entity.Container{a})
	assert.Equal(t, 1.0, GetGrow(a))
	assert.True(t, a.Distributed)

	b := entity.NewContainer("l", "b", 1)
	Remain([]*entity.Container{a, b})
	assert.Equal(t, []float64{1, 1}, grows([]*entity.Container{a, b}))

	a.SetGrow(1.5)
	assert.False(t, a.Distributed)
	c := entity.NewContainer("l", "c", 2)
	Remain([]*entity.Container{a, b, c})
	assert.Equal(t, []float64{1.5, 0.75, 0.75}, grows([]*entity.Container{a, b, c}))
}
