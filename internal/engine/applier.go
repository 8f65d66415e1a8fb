package engine

import (
	"sort"
	"sync"

	"github.com/san-kum/parallax/internal/transform"
)

// Applier receives the descriptor computed for an element. It stands in
// for whatever applies the transform to the rendered element.
type Applier interface {
	Apply(id string, d transform.Descriptor)
}

type ApplierFunc func(id string, d transform.Descriptor)

func (f ApplierFunc) Apply(id string, d transform.Descriptor) { f(id, d) }

// StyleMap keeps the last CSS transform applied to each element.
type StyleMap struct {
	mu      sync.Mutex
	styles  map[string]string
	applied int
}

func NewStyleMap() *StyleMap {
	return &StyleMap{styles: make(map[string]string)}
}

func (m *StyleMap) Apply(id string, d transform.Descriptor) {
	m.mu.Lock()
	m.styles[id] = d.CSS()
	m.applied++
	m.mu.Unlock()
}

// Style returns the element's transform, empty when none is applied.
func (m *StyleMap) Style(id string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.styles[id]
}

func (m *StyleMap) Styles() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.styles))
	for k, v := range m.styles {
		out[k] = v
	}
	return out
}

func (m *StyleMap) IDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.styles))
	for id := range m.styles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Applied counts Apply calls.
func (m *StyleMap) Applied() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.applied
}
