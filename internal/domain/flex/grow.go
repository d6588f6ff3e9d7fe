// Package flex holds the grow arithmetic shared by every layout: converting
// measured sizes to grow units, the initial weight distribution and the
// open/close redistribution.
package flex

import (
	"math"

	"github.com/bnema/flexpane/internal/domain/entity"
)

func sanitize(v float64) float64 {
	switch {
	case math.IsInf(v, 0):
		return 1
	case math.IsNaN(v):
		return 0
	default:
		return v
	}
}

// MathGrow converts a measured size into grow units: count * child/parent.
func MathGrow(childSize, parentSize float64, containerCount int) float64 {
	return sanitize(float64(containerCount) * (childSize / parentSize))
}

// SizeFromGrow is the inverse of MathGrow.
func SizeFromGrow(grow, parentSize float64, containerCount int) float64 {
	if containerCount <= 0 {
		return 0
	}
	return sanitize(grow * parentSize / float64(containerCount))
}

// MathWeight returns the grow each of totalCount containers gets when they
// share totalGrow equally.
func MathWeight(totalCount int, totalGrow float64) float64 {
	n := float64(totalCount)
	return sanitize(1 + (totalGrow-n)/n)
}

// GetGrow reads the effective grow of a container: the live value first,
// then the cached attribute, else 0.
func GetGrow(c *entity.Container) float64 {
	if c == nil {
		return 0
	}
	if c.Flex != nil && !math.IsNaN(*c.Flex) {
		return *c.Flex
	}
	if c.DataGrow != nil && !math.IsNaN(*c.DataGrow) {
		return *c.DataGrow
	}
	return 0
}

// IsClosed reports whether a container currently takes no space.
func IsClosed(c *entity.Container) bool {
	return GetGrow(c) == 0
}

// Remain performs the initial distribution. Containers with a cached grow
// keep it unless they ask to be recomputed or got it from an earlier
// distribution; the rest share what is left of the container count equally.
func Remain(containers []*entity.Container) {
	remaining := float64(len(containers))
	var pending []*entity.Container
	for _, c := range containers {
		if c.DataGrow == nil || c.IsInitialResizable || c.Distributed {
			pending = append(pending, c)
			continue
		}
		c.SetGrow(*c.DataGrow)
		remaining -= *c.DataGrow
	}
	if len(pending) == 0 {
		return
	}
	weight := MathWeight(len(pending), remaining)
	if weight < 0 {
		weight = 0
	}
	for _, c := range pending {
		c.SetGrow(weight)
		c.Distributed = true
	}
}

// Resize assigns totalGrow/len(list) to every container in list.
func Resize(list []*entity.Container, totalGrow float64) {
	if len(list) == 0 {
		return
	}
	share := totalGrow / float64(len(list))
	for _, c := range list {
		c.SetGrow(share)
	}
}

// Sizes lays containers out along clientSize the way a flex row does: each
// gets its grow share of the space, or grow*space when the grows sum to
// less than one.
func Sizes(containers []*entity.Container, clientSize float64) []float64 {
	out := make([]float64, len(containers))
	total := 0.0
	for _, c := range containers {
		total += GetGrow(c)
	}
	if total <= 0 || clientSize <= 0 {
		return out
	}
	for i, c := range containers {
		if total < 1 {
			out[i] = GetGrow(c) * clientSize
		} else {
			out[i] = GetGrow(c) / total * clientSize
		}
	}
	return out
}

// FindNotClosed walks from index by step and returns the first container
// that is open, or -1 when the walk leaves the slice.
func FindNotClosed(containers []*entity.Container, index, step int) int {
	if step == 0 {
		step = 1
	}
	for i := index; i >= 0 && i < len(containers); i += step {
		if !IsClosed(containers[i]) {
			return i
		}
	}
	return -1
}

// IsOverMove reports whether a proposed size falls under its minimum.
func IsOverMove(size, minSize float64) bool {
	floored := math.Floor(size)
	return floored <= 0 || minSize >= floored
}

func openSiblings(target *entity.Container, containers []*entity.Container) []*entity.Container {
	var out []*entity.Container
	for _, c := range containers {
		if c != target && !IsClosed(c) {
			out = append(out, c)
		}
	}
	return out
}

func sumGrow(list []*entity.Container) float64 {
	total := 0.0
	for _, c := range list {
		total += GetGrow(c)
	}
	return total
}
