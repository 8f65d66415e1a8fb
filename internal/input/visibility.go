package input

import (
	"sort"
	"sync"
)

// DefaultThresholds are the intersection ratios at which entries fire.
var DefaultThresholds = []float64{0, 0.1, 0.5}

// Region is the vertical extent of an observed element in document space.
type Region struct {
	Top, Height float64
}

// VisibilityEntry reports a target crossing one of the watcher thresholds.
type VisibilityEntry struct {
	ID           string
	Ratio        float64
	Intersecting bool
}

// NoopVisibility discards entries.
func NoopVisibility([]VisibilityEntry) {}

type target struct {
	region Region
	bucket int
}

// VisibilityWatcher observes content sections entering and leaving the
// viewport. Entries go to a callback that records nothing by default; the
// watcher exists so sections are registered and released like any other
// observation.
type VisibilityWatcher struct {
	mu             sync.Mutex
	viewportHeight float64
	thresholds     []float64
	targets        map[string]*target
	order          []string
	callback       func([]VisibilityEntry)
}

func NewVisibilityWatcher(viewportHeight float64, thresholds []float64, callback func([]VisibilityEntry)) *VisibilityWatcher {
	if len(thresholds) == 0 {
		thresholds = DefaultThresholds
	}
	th := append([]float64(nil), thresholds...)
	sort.Float64s(th)
	if callback == nil {
		callback = NoopVisibility
	}
	return &VisibilityWatcher{
		viewportHeight: viewportHeight,
		thresholds:     th,
		targets:        make(map[string]*target),
		callback:       callback,
	}
}

// Observe starts watching id. The first Update after Observe always
// reports the target.
func (w *VisibilityWatcher) Observe(id string, r Region) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.targets[id]; !ok {
		w.order = append(w.order, id)
	}
	w.targets[id] = &target{region: r, bucket: -1}
}

func (w *VisibilityWatcher) Unobserve(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.targets[id]; !ok {
		return
	}
	delete(w.targets, id)
	for i, o := range w.order {
		if o == id {
			w.order = append(w.order[:i:i], w.order[i+1:]...)
			break
		}
	}
}

// Disconnect drops every target.
func (w *VisibilityWatcher) Disconnect() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.targets = make(map[string]*target)
	w.order = nil
}

func (w *VisibilityWatcher) Observed() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.targets)
}

// Update recomputes intersections for the viewport at scroll offset y and
// reports targets whose threshold bucket changed.
func (w *VisibilityWatcher) Update(y float64) {
	w.mu.Lock()
	var entries []VisibilityEntry
	for _, id := range w.order {
		t := w.targets[id]
		ratio := Intersection(t.region, y, w.viewportHeight)
		b := w.bucket(ratio)
		if b == t.bucket {
			continue
		}
		t.bucket = b
		entries = append(entries, VisibilityEntry{ID: id, Ratio: ratio, Intersecting: ratio > 0})
	}
	cb := w.callback
	w.mu.Unlock()

	if len(entries) > 0 {
		cb(entries)
	}
}

func (w *VisibilityWatcher) bucket(ratio float64) int {
	n := 0
	for _, th := range w.thresholds {
		if th == 0 {
			if ratio > 0 {
				n++
			}
			continue
		}
		if ratio >= th {
			n++
		}
	}
	return n
}

// Intersection is the visible fraction of r inside the viewport
// [y, y+viewportHeight].
func Intersection(r Region, y, viewportHeight float64) float64 {
	if r.Height <= 0 {
		if r.Top >= y && r.Top <= y+viewportHeight {
			return 1
		}
		return 0
	}
	top := max(r.Top, y)
	bottom := min(r.Top+r.Height, y+viewportHeight)
	if bottom <= top {
		return 0
	}
	return (bottom - top) / r.Height
}
