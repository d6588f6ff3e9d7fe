package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/flexpane/internal/application/usecase"
	"github.com/bnema/flexpane/internal/cli/styles"
	"github.com/bnema/flexpane/internal/domain/entity"
	"github.com/bnema/flexpane/internal/domain/gesture"
	"github.com/bnema/flexpane/internal/logging"
)

// frameMsg asks the model to drain the engine queue.
type frameMsg struct{}

// Model is the playground Bubble Tea model.
type Model struct {
	ctx    context.Context
	engine *Engine
	theme  *styles.Theme
	paints map[paint]lipgloss.Style
	keys   styles.PlaygroundKeyMap
	help   help.Model
	wake   <-chan struct{}
	step   float64

	width, height int
	panels        panelGeometry
	panes         []paneGeom

	divider int
	pane    int

	resize  *usecase.ResizeSession
	resizeX int
	drag    *gesture.Machine
	status  string
}

// NewModel creates the playground model. step is the divider movement per
// key press; wake delivers the engine's queued-work signal and may be nil.
func NewModel(ctx context.Context, engine *Engine, theme *styles.Theme, step float64, wake <-chan struct{}) *Model {
	if theme == nil {
		theme = styles.NewTheme()
	}
	if step <= 0 {
		step = 1
	}
	return &Model{
		ctx:    logging.WithComponent(ctx, "playground"),
		engine: engine,
		theme:  theme,
		paints: paintStyles(theme),
		keys:   styles.DefaultPlaygroundKeyMap(),
		help:   styles.NewStyledHelp(theme),
		wake:   wake,
		step:   step,
		status: "hold a tab to drag it, drag a divider to resize",
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.waitForFrame()
}

func (m *Model) waitForFrame() tea.Cmd {
	if m.wake == nil {
		return nil
	}
	wake, done := m.wake, m.ctx.Done()
	return func() tea.Msg {
		select {
		case <-wake:
			return frameMsg{}
		case <-done:
			return nil
		}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
	case frameMsg:
		m.engine.Drain()
		cmd = m.waitForFrame()
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	}

	m.engine.Drain()
	m.relayout()
	return m, cmd
}

// relayout recomputes geometry for the current terminal size and reports
// measured bounds back to the engine.
func (m *Model) relayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	panelH := max(3, (m.height-3)/2)

	containers := m.engine.Registry.Containers.List(PanelLayout)
	m.panels = layoutPanels(containers, entity.Rect{X: 0, Y: 1, W: float64(m.width), H: float64(panelH)})
	m.engine.Containers.Measure(PanelLayout, m.panels.Client)

	area := entity.Rect{X: 0, Y: float64(1 + panelH), W: float64(m.width), H: float64(max(0, m.height-3-panelH))}
	var panes []paneGeom
	m.engine.Registry.SplitScreens.Read(WorkspaceRoot, func(t *entity.SplitTree) {
		panes = layoutSplit(t, area)
	})
	m.engine.Registry.SplitScreens.ClearBounds(WorkspaceRoot)
	for _, p := range panes {
		m.engine.Registry.SplitScreens.SetBounds(WorkspaceRoot, p.Key, p.Bounds)
	}
	m.panes = panes

	if m.divider >= len(m.panels.Dividers) {
		m.divider = max(0, len(m.panels.Dividers)-1)
	}
	if m.pane >= len(m.panes) || m.panes[m.pane].Split || m.panes[m.pane].Nested {
		m.pane = m.nextPane(-1)
	}
}

// nextPane returns the first unsplit, non-nested pane after from.
func (m *Model) nextPane(from int) int {
	for i := 1; i <= len(m.panes); i++ {
		idx := (from + i + len(m.panes)) % len(m.panes)
		if p := m.panes[idx]; !p.Split && !p.Nested {
			return idx
		}
	}
	return 0
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	containers := m.engine.Registry.Containers.List(PanelLayout)
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.TogglePanel):
		i := int(msg.String()[0] - '1')
		if i >= 0 && i < len(containers) {
			m.togglePanel(containers[i].Name)
		}
	case key.Matches(msg, m.keys.NextDivider):
		if n := len(m.panels.Dividers); n > 0 {
			m.divider = (m.divider + 1) % n
		}
	case key.Matches(msg, m.keys.PrevDivider):
		if n := len(m.panels.Dividers); n > 0 {
			m.divider = (m.divider - 1 + n) % n
		}
	case key.Matches(msg, m.keys.Grow):
		m.nudge(m.step)
	case key.Matches(msg, m.keys.Shrink):
		m.nudge(-m.step)
	case key.Matches(msg, m.keys.Mode):
		m.toggleMode()
	case key.Matches(msg, m.keys.Fit):
		if len(containers) > 0 {
			last := containers[len(containers)-1]
			m.engine.Containers.FitContent(m.ctx, PanelLayout, last.Name, float64(len(last.Name)+8))
		}
	case key.Matches(msg, m.keys.NextNode):
		if len(m.panes) > 0 {
			m.pane = m.nextPane(m.pane)
		}
	case key.Matches(msg, m.keys.NextTab), key.Matches(msg, m.keys.PrevTab):
		m.cycleTab(key.Matches(msg, m.keys.NextTab))
	case key.Matches(msg, m.keys.CloseTab):
		if p, ok := m.focusedPane(); ok && len(p.Tabs) > 0 {
			m.engine.Split.CloseTab(m.ctx, WorkspaceRoot, p.Key, p.Active)
		}
	}
}

func (m *Model) focusedPane() (paneGeom, bool) {
	if m.pane < 0 || m.pane >= len(m.panes) {
		return paneGeom{}, false
	}
	p := m.panes[m.pane]
	return p, !p.Split
}

func (m *Model) cycleTab(forward bool) {
	p, ok := m.focusedPane()
	if !ok || len(p.Tabs) == 0 {
		return
	}
	step := -1
	if forward {
		step = 1
	}
	next := (p.Active + step + len(p.Tabs)) % len(p.Tabs)
	m.engine.Split.ActivateTab(m.ctx, WorkspaceRoot, p.Key, next)
}

func (m *Model) togglePanel(name string) {
	m.engine.Containers.Send(PanelLayout, name, entity.ContainerStateRequest{
		Mode:        entity.RequestToggle,
		OpenOptions: &entity.OpenOptions{IsPrevSizeOpen: true},
		OnOpen:      func() { m.status = name + " opened" },
		OnClose:     func() { m.status = name + " closed" },
	})
}

func (m *Model) toggleMode() {
	layout := m.engine.Registry.Layouts.Get(PanelLayout)
	if layout == nil {
		return
	}
	if layout.MovementMode == entity.MovementBulldozer {
		layout.MovementMode = entity.MovementDivorce
	} else {
		layout.MovementMode = entity.MovementBulldozer
	}
	m.engine.Registry.Layouts.Notify(PanelLayout)
	m.status = "movement mode " + string(layout.MovementMode)
}

// nudge moves the focused divider by delta as one complete drag.
func (m *Model) nudge(delta float64) {
	if m.divider < 0 || m.divider >= len(m.panels.Dividers) {
		return
	}
	s, ok := m.engine.Resize.Begin(m.ctx, PanelLayout, m.panels.Dividers[m.divider].After)
	if !ok {
		return
	}
	s.Move(m.ctx, delta)
	s.End(m.ctx)
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		if d := m.panels.dividerAt(msg.X, msg.Y); d >= 0 {
			m.beginResize(d, msg.X)
			return
		}
		if pi, ti, ok := tabAt(m.panes, msg.X, msg.Y); ok {
			m.beginDrag(pi, ti, msg.X, msg.Y)
		}
	case tea.MouseActionMotion:
		if m.resize != nil {
			m.resize.Move(m.ctx, float64(msg.X-m.resizeX))
			m.resizeX = msg.X
			return
		}
		if m.drag != nil {
			m.drag.Handle(gesture.Move{Point: cellPoint(msg.X, msg.Y)})
		}
	case tea.MouseActionRelease:
		if m.resize != nil {
			m.resize.End(m.ctx)
			m.resize = nil
			return
		}
		if m.drag != nil {
			m.drag.Handle(gesture.End{Point: cellPoint(msg.X, msg.Y)})
		}
	}
}

func (m *Model) beginResize(d, x int) {
	name := m.panels.Dividers[d].After
	m.divider = d
	if m.engine.Resize.Click(m.ctx, PanelLayout, name) {
		return
	}
	if s, ok := m.engine.Resize.Begin(m.ctx, PanelLayout, name); ok {
		m.resize, m.resizeX = s, x
	}
}

func (m *Model) beginDrag(pi, ti, x, y int) {
	pane := m.panes[pi]
	tab := pane.Tabs[ti]
	m.pane = pi
	m.engine.Split.ActivateTab(m.ctx, WorkspaceRoot, pane.Key, tab.Index)

	if m.drag != nil {
		m.drag.Stop()
	}
	m.drag = m.engine.Drag.Bind(m.ctx, usecase.DragSource{
		Root:            WorkspaceRoot,
		LayoutName:      pane.Key,
		ContainerName:   tab.Name,
		NavigationTitle: tab.Title,
		ScreenKey:       tab.ScreenKey,
		Content:         tab.Content,
		DropOutside:     tab.Outside,
		OnResult:        m.onDrop,
	})
	m.drag.Handle(gesture.Start{Point: cellPoint(x, y), Kind: entity.PointerMouse})
}

func (m *Model) onDrop(res entity.DropResult) {
	switch {
	case res.Accepted:
		m.status = "moved to " + res.TargetLayoutName
	case res.Outside != nil:
		m.status = "dropped outside, would open " + res.Outside.OpenURL
	default:
		m.status = "drop ignored"
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 1 {
		return ""
	}
	c := newCanvas(m.width, m.height-1)
	m.paintTitle(c)
	m.paintPanels(c)
	m.paintPanes(c)
	if p, ok := m.engine.Registry.DropPreview.Get(); ok && p.Visible {
		c.tint(p.Rect, paintPreview)
	}
	m.paintStatus(c)
	return lipgloss.JoinVertical(lipgloss.Left, c.render(m.paints), m.help.View(m.keys))
}

func (m *Model) paintTitle(c *canvas) {
	c.text(1, 0, "flexpane", m.width, paintTitle)
	mode := string(entity.MovementDivorce)
	if layout := m.engine.Registry.Layouts.Get(PanelLayout); layout != nil {
		mode = string(layout.MovementMode)
	}
	right := "mode: " + mode
	c.text(m.width-len(right)-1, 0, right, len(right), paintMuted)
}

func (m *Model) paintPanels(c *canvas) {
	resizing, _ := m.engine.Registry.Resizing.Get()
	for _, s := range m.panels.Spans {
		if s.Closed || s.Rect.W < 2 {
			continue
		}
		x, y, w, _ := cells(s.Rect)
		c.box(s.Rect, paintBorder)
		c.text(x+1, y+1, s.Name, w-2, paintText)
		c.text(x+1, y+2, fmt.Sprintf("grow %.2f", s.Grow), w-2, paintMuted)
	}
	for i, d := range m.panels.Dividers {
		p := paintDivider
		if i == m.divider && (resizing || m.resize != nil) {
			p = paintDividerActive
		} else if i == m.divider {
			p = paintBorderActive
		}
		c.fill(d.Rect, '┃', p)
	}
	for _, s := range m.panels.Spans {
		if s.Closed {
			x, y, _, _ := cells(s.Rect)
			c.text(x, y, "▏"+s.Name, len(s.Name)+1, paintClosed)
		}
	}
}

func (m *Model) paintPanes(c *canvas) {
	for i, p := range m.panes {
		if p.Split {
			continue
		}
		for _, tab := range p.Tabs {
			tp := paintTab
			if tab.Index == p.Active {
				tp = paintTabActive
			}
			x, y, w, _ := cells(tab.Rect)
			c.text(x, y, " "+tab.Title+" ", w, tp)
		}
		if p.Nested {
			continue
		}
		border := paintBorder
		if i == m.pane {
			border = paintBorderActive
		}
		c.box(p.Body, border)
		if text, ok := p.Content.(string); ok {
			x, y, w, _ := cells(p.Body)
			c.text(x+2, y+1, text, w-4, paintText)
		}
	}
}

func (m *Model) paintStatus(c *canvas) {
	y := c.h - 1
	c.fill(entity.Rect{X: 0, Y: float64(y), W: float64(c.w), H: 1}, ' ', paintMuted)

	var parts []string
	if cursor, _ := m.engine.Registry.Cursor.Get(); cursor != "" {
		parts = append(parts, "cursor "+cursor)
	}
	if n, ok := m.engine.Registry.SplitScreenCount.Get(); ok {
		parts = append(parts, fmt.Sprintf("%d split screen(s)", n))
	}
	if m.drag != nil {
		parts = append(parts, "drag "+m.drag.State().Phase().String())
	}
	parts = append(parts, m.status)
	c.text(1, y, strings.Join(parts, "  ·  "), c.w-2, paintMuted)
}

var _ tea.Model = (*Model)(nil)
