package metrics

import (
	"math"

	"github.com/san-kum/parallax/internal/scene"
	"github.com/san-kum/parallax/internal/transform"
)

// MinScale is the smallest scale term seen. Frames without any scale term
// leave it at 1.
type MinScale struct {
	name    string
	min     float64
	samples int
}

func NewMinScale() *MinScale {
	return &MinScale{name: "min_scale", min: math.Inf(1)}
}

func (m *MinScale) Name() string { return m.name }

func (m *MinScale) Observe(offset float64, f scene.Frame) {
	for _, e := range f.Entries {
		if !e.Descriptor.Includes(transform.Scale) {
			continue
		}
		m.samples++
		if e.Descriptor.Scale < m.min {
			m.min = e.Descriptor.Scale
		}
	}
}

func (m *MinScale) Value() float64 {
	if m.samples == 0 {
		return 1
	}
	return m.min
}

func (m *MinScale) Reset() {
	m.min = math.Inf(1)
	m.samples = 0
}

// MaxRotation is the largest absolute rotation, in degrees, on any axis.
type MaxRotation struct {
	name string
	max  float64
}

func NewMaxRotation() *MaxRotation {
	return &MaxRotation{name: "max_rotation"}
}

func (m *MaxRotation) Name() string { return m.name }

func (m *MaxRotation) Observe(offset float64, f scene.Frame) {
	for _, e := range f.Entries {
		for _, t := range []transform.Term{transform.Rotate, transform.RotateX, transform.RotateY} {
			if v := math.Abs(e.Descriptor.Value(t)); v > m.max {
				m.max = v
			}
		}
	}
}

func (m *MaxRotation) Value() float64 { return m.max }

func (m *MaxRotation) Reset() { m.max = 0 }
