package store

import (
	"sync"

	"github.com/bnema/flexpane/internal/domain/entity"
)

// LayoutInfo is the combined view of a layout's containers and dividers.
type LayoutInfo struct {
	LayoutName   string
	Containers   []*entity.Container
	ResizePanels []*entity.ResizePanel
}

// Registry is the application-scoped context object owning every store and
// event channel. The host creates one and hands it to each use case.
type Registry struct {
	Layouts      *LayoutStore
	Containers   *RefStore[entity.Container]
	ResizePanels *RefStore[entity.ResizePanel]
	Scroll       *ScrollStore
	SplitScreens *SplitScreenStore

	DragState        *Subject[entity.DragState]
	DropMovement     *Subject[entity.DropMovementEvent]
	DropPreview      *Subject[entity.DropPreview]
	Resizing         *Subject[bool]
	Cursor           *Subject[string]
	SplitScreenCount *Subject[int]

	mu       sync.Mutex
	requests map[string]*Subject[entity.ContainerStateRequest]
	spread   map[string]*Subject[entity.ContainerState]
}

func eq[T comparable](a, b T) bool { return a == b }

// NewRegistry creates empty stores.
func NewRegistry() *Registry {
	return &Registry{
		Layouts: NewLayoutStore(),
		Containers: NewRefStore(func(a, b *entity.Container) int {
			return a.Order - b.Order
		}),
		ResizePanels:     NewRefStore[entity.ResizePanel](nil),
		Scroll:           NewScrollStore(),
		SplitScreens:     NewSplitScreenStore(),
		DragState:        NewEventSubject[entity.DragState](),
		DropMovement:     NewEventSubject[entity.DropMovementEvent](),
		DropPreview:      NewBehaviorSubject(entity.DropPreview{}, eq[entity.DropPreview]),
		Resizing:         NewBehaviorSubject(false, eq[bool]),
		Cursor:           NewBehaviorSubject("", eq[string]),
		SplitScreenCount: NewBehaviorSubject(0, eq[int]),
		requests:         make(map[string]*Subject[entity.ContainerStateRequest]),
		spread:           make(map[string]*Subject[entity.ContainerState]),
	}
}

func containerKey(layout, name string) string {
	return layout + "/" + name
}

// Requests returns the open/close command channel of a container, creating
// it on first use.
func (r *Registry) Requests(layout, name string) *Subject[entity.ContainerStateRequest] {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := containerKey(layout, name)
	s, ok := r.requests[key]
	if !ok {
		s = NewEventSubject[entity.ContainerStateRequest]()
		r.requests[key] = s
	}
	return s
}

// Spread returns the settled open-state channel of a container, creating it
// on first use. New subscribers receive the last settled state.
func (r *Registry) Spread(layout, name string) *Subject[entity.ContainerState] {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := containerKey(layout, name)
	s, ok := r.spread[key]
	if !ok {
		s = NewReplaySubject(eq[entity.ContainerState])
		r.spread[key] = s
	}
	return s
}

// ReleaseContainer drops the command channels of an unmounted container.
func (r *Registry) ReleaseContainer(layout, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := containerKey(layout, name)
	delete(r.requests, key)
	delete(r.spread, key)
}

// LayoutInfos streams the combined view of a layout whenever its containers
// or dividers change. Nothing is delivered while the layout has no
// containers.
func (r *Registry) LayoutInfos(layout string, fn func(LayoutInfo)) (unsubscribe func()) {
	var (
		containers []*entity.Container
		panels     []*entity.ResizePanel
		ready      bool
	)
	emit := func() {
		if !ready || len(containers) == 0 {
			return
		}
		fn(LayoutInfo{LayoutName: layout, Containers: containers, ResizePanels: panels})
	}

	stopContainers := r.Containers.Observe(layout, func(list []*entity.Container) {
		containers = list
		emit()
	})
	stopPanels := r.ResizePanels.Observe(layout, func(list []*entity.ResizePanel) {
		panels = list
		emit()
	})
	ready = true
	emit()

	return func() {
		stopContainers()
		stopPanels()
	}
}
