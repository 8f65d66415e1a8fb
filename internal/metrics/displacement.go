package metrics

import (
	"math"

	"github.com/san-kum/parallax/internal/scene"
	"github.com/san-kum/parallax/internal/transform"
)

// MaxDisplacement is the largest translation length seen on any element.
type MaxDisplacement struct {
	name string
	max  float64
}

func NewMaxDisplacement() *MaxDisplacement {
	return &MaxDisplacement{name: "max_displacement"}
}

func (m *MaxDisplacement) Name() string { return m.name }

func (m *MaxDisplacement) Observe(offset float64, f scene.Frame) {
	for _, e := range f.Entries {
		d := e.Descriptor
		l := math.Hypot(d.Value(transform.TranslateX), d.Value(transform.TranslateY))
		if l > m.max {
			m.max = l
		}
	}
}

func (m *MaxDisplacement) Value() float64 { return m.max }

func (m *MaxDisplacement) Reset() { m.max = 0 }
