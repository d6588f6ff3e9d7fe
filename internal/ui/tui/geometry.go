package tui

import (
	"math"

	"github.com/bnema/flexpane/internal/domain/entity"
	"github.com/bnema/flexpane/internal/domain/flex"
)

// panelSpan is the cell rectangle of one flex container.
type panelSpan struct {
	Name   string
	Rect   entity.Rect
	Grow   float64
	Closed bool
}

// dividerSpan is the one-cell column drawn after a resize-panel container.
type dividerSpan struct {
	After string
	Rect  entity.Rect
}

// panelGeometry is the cell layout of the flex row.
type panelGeometry struct {
	Client   entity.Rect
	Spans    []panelSpan
	Dividers []dividerSpan
}

// distribute rounds sizes to whole cells so that the cumulative edges are
// rounded rather than each size, keeping the total at most total.
func distribute(sizes []float64, total int) []int {
	out := make([]int, len(sizes))
	acc, prev := 0.0, 0
	for i, s := range sizes {
		acc += s
		edge := int(math.Round(acc))
		if edge > total {
			edge = total
		}
		if edge < prev {
			edge = prev
		}
		out[i] = edge - prev
		prev = edge
	}
	return out
}

func hasDivider(containers []*entity.Container, i int) bool {
	c := containers[i]
	return i < len(containers)-1 && c.IsResizePanel && !c.ResizePanelDisabled
}

// layoutPanels places containers left to right inside area, reserving one
// column for every visible divider. Client is the area left for the
// containers themselves and is what the layout is measured with.
func layoutPanels(containers []*entity.Container, area entity.Rect) panelGeometry {
	dividers := 0
	for i := range containers {
		if hasDivider(containers, i) {
			dividers++
		}
	}
	clientW := math.Max(0, area.W-float64(dividers))
	g := panelGeometry{Client: entity.Rect{X: area.X, Y: area.Y, W: clientW, H: area.H}}

	widths := distribute(flex.Sizes(containers, clientW), int(clientW))
	x := area.X
	for i, c := range containers {
		w := float64(widths[i])
		g.Spans = append(g.Spans, panelSpan{
			Name:   c.Name,
			Rect:   entity.Rect{X: x, Y: area.Y, W: w, H: area.H},
			Grow:   flex.GetGrow(c),
			Closed: flex.IsClosed(c),
		})
		x += w
		if hasDivider(containers, i) {
			g.Dividers = append(g.Dividers, dividerSpan{
				After: c.Name,
				Rect:  entity.Rect{X: x, Y: area.Y, W: 1, H: area.H},
			})
			x++
		}
	}
	return g
}

// dividerAt returns the index of the divider under the cell (x, y).
func (g panelGeometry) dividerAt(x, y int) int {
	for i, d := range g.Dividers {
		if float64(x) == d.Rect.X && float64(y) >= d.Rect.Y && float64(y) < d.Rect.Bottom() {
			return i
		}
	}
	return -1
}

// tabGeom is the header cell range of one tab.
type tabGeom struct {
	Name      string
	Title     string
	ScreenKey string
	Content   any
	Outside   *entity.DropOutsideOption
	Index     int
	Rect      entity.Rect
}

// paneGeom is the cell layout of one split-screen node.
type paneGeom struct {
	Key    string
	Depth  int
	Bounds entity.Rect
	Split  bool

	// Unsplit nodes only.
	Tabs    []tabGeom
	Active  int
	Body    entity.Rect
	Content any
	// Nested is set when the active tab renders a child node in Body.
	Nested bool
}

// tabWidth is the header width of a tab titled title.
func tabWidth(title string) int {
	return len([]rune(title)) + 2
}

// splitCells divides length into n parts as evenly as whole cells allow.
func splitCells(length, n int) []int {
	if n <= 0 {
		return nil
	}
	out := make([]int, n)
	for i := range out {
		out[i] = length / n
		if i < length%n {
			out[i]++
		}
	}
	return out
}

// layoutSplit computes the geometry of every node of t inside area. Split
// nodes share their area equally between their entries along their
// direction; unsplit nodes get a one-row tab header above their body.
func layoutSplit(t *entity.SplitTree, area entity.Rect) []paneGeom {
	var out []paneGeom
	var visit func(id entity.NodeID, r entity.Rect)
	visit = func(id entity.NodeID, r entity.Rect) {
		node := t.Node(id)
		if node == nil {
			return
		}
		g := paneGeom{Key: t.Key(id), Depth: t.Depth(id), Bounds: r, Split: node.IsSplit()}

		if g.Split {
			out = append(out, g)
			var entries []entity.DropTarget
			for _, pos := range entity.DropPositions {
				entries = append(entries, node.List(pos)...)
			}
			length := int(node.Direction.Size(r))
			offset := node.Direction.Start(r)
			for i, part := range splitCells(length, len(entries)) {
				child := r
				if node.Direction == entity.AxisColumn {
					child.Y, child.H = offset, float64(part)
				} else {
					child.X, child.W = offset, float64(part)
				}
				offset += float64(part)
				if entries[i].Child != 0 {
					visit(entries[i].Child, child)
				}
			}
			return
		}

		g.Active = node.ActiveIndex
		x := r.X
		for i, e := range node.Center {
			title := e.NavigationTitle
			if title == "" {
				title = e.ContainerName
			}
			w := math.Min(float64(tabWidth(title)), math.Max(0, r.Right()-x))
			g.Tabs = append(g.Tabs, tabGeom{
				Name:      e.ContainerName,
				Title:     title,
				ScreenKey: e.ScreenKey,
				Content:   e.Content,
				Outside:   e.DropOutside,
				Index:     i,
				Rect:      entity.Rect{X: x, Y: r.Y, W: w, H: 1},
			})
			x += w + 1
		}
		g.Body = entity.Rect{X: r.X, Y: r.Y + 1, W: r.W, H: math.Max(0, r.H-1)}

		active, ok := node.Active()
		if ok {
			g.Content = active.Content
		}
		if ok && t.Node(active.Child) != nil {
			g.Nested = true
			out = append(out, g)
			visit(active.Child, g.Body)
			return
		}
		out = append(out, g)
	}
	visit(entity.RootID, area)
	return out
}

// tabAt returns the pane and tab under the cell (x, y). Deeper panes win.
func tabAt(panes []paneGeom, x, y int) (int, int, bool) {
	p := cellPoint(x, y)
	bestPane, bestTab, bestDepth := -1, -1, -1
	for pi, pane := range panes {
		for ti, tab := range pane.Tabs {
			if tab.Rect.W > 0 && p.X >= tab.Rect.X && p.X < tab.Rect.Right() &&
				p.Y >= tab.Rect.Y && p.Y < tab.Rect.Bottom() && pane.Depth > bestDepth {
				bestPane, bestTab, bestDepth = pi, ti, pane.Depth
			}
		}
	}
	return bestPane, bestTab, bestPane >= 0
}

// cellPoint maps a terminal cell to the surface point at its center.
func cellPoint(x, y int) entity.Point {
	return entity.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}
}
