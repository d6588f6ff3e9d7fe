package flex

import "github.com/bnema/flexpane/internal/domain/entity"

// Result lists the containers whose grow changed.
type Result struct {
	Grow     float64
	Affected []*entity.Container
}

// CloseFlex collapses target to zero grow and hands its share to the open
// siblings in proportion to their current grow, so open grows keep summing
// to the container count.
func CloseFlex(target *entity.Container, containers []*entity.Container, opts entity.CloseOptions) Result {
	if target == nil {
		return Result{}
	}
	if target.IsResizePanel && opts.DisableResizePanel {
		target.ResizePanelDisabled = true
	}

	target.SetPrevGrow(GetGrow(target))
	open := openSiblings(target, containers)
	count := float64(len(containers))

	target.SetGrow(0)
	switch total := sumGrow(open); {
	case len(open) == 0:
	case opts.IsResize || total <= 0:
		Resize(open, count)
	case len(open) == 1:
		open[0].SetGrow(count)
	default:
		for _, c := range open {
			c.SetGrow(GetGrow(c) * count / total)
		}
	}

	affected := append(open, target)
	for _, c := range affected {
		c.Transitioning = true
	}
	return Result{Grow: 0, Affected: affected}
}

// OpenFlex gives target a non-zero grow and takes the delta from the open
// siblings in proportion to their grow. The target grow is chosen by
// priority: OpenGrowImportant, the recorded previous grow when
// IsPrevSizeOpen, a fair share of the container count, then 1.
func OpenFlex(target *entity.Container, containers []*entity.Container, opts entity.OpenOptions, parentSize float64) Result {
	if target == nil {
		return Result{}
	}
	target.ResizePanelDisabled = false

	open := openSiblings(target, containers)
	count := float64(len(containers))

	grow := 1.0
	switch {
	case opts.OpenGrowImportant > 0:
		grow = opts.OpenGrowImportant
	case opts.IsPrevSizeOpen && target.PrevGrow != nil && *target.PrevGrow > 0:
		grow = *target.PrevGrow
	case len(open) == 0:
		grow = count
	case parentSize > 0:
		grow = sanitize(count / float64(len(open)+1))
	}
	if grow > count {
		grow = count
	}

	if opts.IsResize {
		Resize(append(open, target), count)
		grow = GetGrow(target)
	} else {
		target.SetGrow(grow)
		remaining := count - grow
		total := sumGrow(open)
		switch {
		case len(open) == 0:
		case total <= 0:
			Resize(open, remaining)
		default:
			for _, c := range open {
				c.SetGrow(GetGrow(c) * remaining / total)
			}
		}
	}

	affected := append(open, target)
	for _, c := range affected {
		c.Transitioning = true
	}
	return Result{Grow: grow, Affected: affected}
}

// FitContent sizes target to a measured content size and rescales the open
// siblings to the space left. It returns the new grow of target.
func FitContent(target *entity.Container, containers []*entity.Container, contentSize, parentSize float64) float64 {
	if target == nil || parentSize <= 0 {
		return GetGrow(target)
	}
	count := float64(len(containers))
	grow := MathGrow(contentSize, parentSize, len(containers))
	if grow < 0 {
		grow = 0
	}
	if grow > count {
		grow = count
	}
	target.SetGrow(grow)

	open := openSiblings(target, containers)
	remaining := count - grow
	if total := sumGrow(open); total > 0 {
		for _, c := range open {
			c.SetGrow(GetGrow(c) * remaining / total)
		}
	} else {
		Resize(open, remaining)
	}
	return grow
}
