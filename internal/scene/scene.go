package scene

import (
	"github.com/zeebo/errs"

	"github.com/san-kum/parallax/internal/input"
	"github.com/san-kum/parallax/internal/parallax"
	"github.com/san-kum/parallax/internal/transform"
)

// Error is the class for scene-level failures.
var Error = errs.Class("scene")

// Scene is the fixed, ordered list of layers and sections supplied by the
// page. It is not mutated once an engine is mounted on it.
type Scene struct {
	Name     string                 `yaml:"name" json:"name"`
	Viewport parallax.Viewport      `yaml:"viewport" json:"viewport"`
	Layers   []parallax.LayerSpec   `yaml:"layers" json:"layers"`
	Sections []parallax.SectionSpec `yaml:"sections" json:"sections"`
}

// Elements returns layers then sections, in declaration order.
func (s *Scene) Elements() []parallax.Element {
	out := make([]parallax.Element, 0, len(s.Layers)+len(s.Sections))
	for _, l := range s.Layers {
		out = append(out, l)
	}
	for _, sec := range s.Sections {
		out = append(out, sec)
	}
	return out
}

func (s *Scene) IDs() []string {
	els := s.Elements()
	ids := make([]string, len(els))
	for i, e := range els {
		ids[i] = e.ID()
	}
	return ids
}

func (s *Scene) Validate() error {
	if s.Name == "" {
		return Error.New("scene name is required")
	}
	if s.Viewport.Width <= 0 || s.Viewport.Height <= 0 {
		return Error.New("scene %q: viewport must be positive, got %gx%g", s.Name, s.Viewport.Width, s.Viewport.Height)
	}
	seen := make(map[string]bool)
	for _, e := range s.Elements() {
		if err := e.Validate(); err != nil {
			return Error.Wrap(err)
		}
		if seen[e.ID()] {
			return Error.New("scene %q: duplicate element %q", s.Name, e.ID())
		}
		seen[e.ID()] = true
	}
	return nil
}

// Entry is one element's descriptor within a frame.
type Entry struct {
	ID         string               `json:"id"`
	Kind       parallax.Kind        `json:"kind"`
	Descriptor transform.Descriptor `json:"descriptor"`
}

// Frame is the full set of descriptors for one input state.
type Frame struct {
	Scroll  float64       `json:"scroll"`
	Pointer input.Pointer `json:"pointer"`
	Entries []Entry       `json:"entries"`
}

func (f Frame) Lookup(id string) (transform.Descriptor, bool) {
	for _, e := range f.Entries {
		if e.ID == id {
			return e.Descriptor, true
		}
	}
	return transform.Descriptor{}, false
}

// Equal compares frames entry by entry, bit for bit.
func (f Frame) Equal(g Frame) bool {
	if f.Scroll != g.Scroll || f.Pointer != g.Pointer || len(f.Entries) != len(g.Entries) {
		return false
	}
	for i := range f.Entries {
		if f.Entries[i] != g.Entries[i] {
			return false
		}
	}
	return true
}

// Frame evaluates every element for in.
func (s *Scene) Frame(in parallax.Inputs) Frame {
	els := s.Elements()
	f := Frame{
		Scroll:  in.Scroll,
		Pointer: in.Pointer,
		Entries: make([]Entry, len(els)),
	}
	for i, e := range els {
		f.Entries[i] = Entry{ID: e.ID(), Kind: e.Kind(), Descriptor: e.Transform(in)}
	}
	return f
}

// FrameAt evaluates the scene in its own viewport.
func (s *Scene) FrameAt(scroll float64, p input.Pointer) Frame {
	return s.Frame(parallax.Inputs{Scroll: scroll, Pointer: p, Viewport: s.Viewport})
}

// Section returns the section with the given id.
func (s *Scene) Section(id string) (parallax.SectionSpec, bool) {
	for _, sec := range s.Sections {
		if sec.ID() == id {
			return sec, true
		}
	}
	return parallax.SectionSpec{}, false
}

// Layer returns the layer with the given id.
func (s *Scene) Layer(id string) (parallax.LayerSpec, bool) {
	for _, l := range s.Layers {
		if l.ID() == id {
			return l, true
		}
	}
	return parallax.LayerSpec{}, false
}
