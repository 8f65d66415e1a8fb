package input

import "sync"

// Tracker exposes the most recently observed scroll offset and pointer
// position. Each signal is written only by its own handler.
type Tracker struct {
	scroll  cell[float64]
	pointer cell[Pointer]
	bounds  Bounds

	mu       sync.Mutex
	watchers []watcher
	nextID   int
}

type watcher struct {
	id int
	fn func(Snapshot)
}

// NewTracker returns a tracker at scroll 0 with an unset pointer.
func NewTracker(bounds Bounds) *Tracker {
	return &Tracker{bounds: bounds}
}

func (t *Tracker) Scroll() float64 { return t.scroll.Load() }

func (t *Tracker) Pointer() Pointer { return t.pointer.Load() }

func (t *Tracker) Snapshot() Snapshot {
	return Snapshot{Scroll: t.scroll.Load(), Pointer: t.pointer.Load()}
}

func (t *Tracker) Bounds() Bounds { return t.bounds }

// OnScroll records a scroll offset, clamped to the tracker bounds.
func (t *Tracker) OnScroll(y float64) {
	t.scroll.Store(t.bounds.Clamp(y))
	t.notify()
}

// OnPointerMove records a pointer position and marks the pointer as set.
func (t *Tracker) OnPointerMove(x, y float64) {
	t.pointer.Store(At(x, y))
	t.notify()
}

// Handle dispatches a native event to the matching handler.
func (t *Tracker) Handle(ev Event) {
	switch ev.Kind {
	case ScrollEvent:
		t.OnScroll(ev.Y)
	case PointerEvent:
		t.OnPointerMove(ev.X, ev.Y)
	}
}

// Watch registers fn to run after every handled event. Watchers run
// synchronously on the handler's goroutine, in registration order.
func (t *Tracker) Watch(fn func(Snapshot)) (cancel func()) {
	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.watchers = append(t.watchers, watcher{id: id, fn: fn})
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			for i, w := range t.watchers {
				if w.id == id {
					t.watchers = append(t.watchers[:i:i], t.watchers[i+1:]...)
					return
				}
			}
		})
	}
}

func (t *Tracker) notify() {
	t.mu.Lock()
	ws := make([]watcher, len(t.watchers))
	copy(ws, t.watchers)
	t.mu.Unlock()

	if len(ws) == 0 {
		return
	}
	snap := t.Snapshot()
	for _, w := range ws {
		w.fn(snap)
	}
}

// Mount subscribes the tracker's handlers to every source.
func (t *Tracker) Mount(sources ...Source) *Mount {
	m := &Mount{}
	for _, src := range sources {
		m.unsubs = append(m.unsubs, src.Subscribe(t.Handle))
	}
	return m
}

// Mount is a scoped set of subscriptions. Close releases every one of them
// exactly once; later calls are no-ops.
type Mount struct {
	once   sync.Once
	unsubs []func()
}

func (m *Mount) Close() error {
	m.once.Do(func() {
		for i := len(m.unsubs) - 1; i >= 0; i-- {
			m.unsubs[i]()
		}
		m.unsubs = nil
	})
	return nil
}
