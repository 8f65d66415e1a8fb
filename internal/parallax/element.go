package parallax

import "github.com/san-kum/parallax/internal/transform"

type Kind string

const (
	KindLayer   Kind = "layer"
	KindSection Kind = "section"
)

// Element is anything that maps inputs to a descriptor.
type Element interface {
	ID() string
	Kind() Kind
	Transform(in Inputs) transform.Descriptor
	Validate() error
}

type Axis string

const (
	AxisXY Axis = "xy"
	AxisX  Axis = "x"
	AxisY  Axis = "y"

	// AxisNone disables translation, for layers that only scale or rotate.
	AxisNone Axis = "none"
)

func (a Axis) valid() bool {
	switch a {
	case "", AxisXY, AxisX, AxisY, AxisNone:
		return true
	}
	return false
}
