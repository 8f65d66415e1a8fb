package parallax

import "github.com/san-kum/parallax/internal/transform"

type Drive string

const (
	DriveScroll  Drive = "scroll"
	DrivePointer Drive = "pointer"
)

// LayerSpec configures one decorative background layer.
//
// Scroll-driven layers use SpeedX/SpeedY and the optional ScaleRate and
// RotateRate. Pointer-driven layers use Speed only. TransitionMS is a
// display hint for renderers that ease toward the computed transform; it
// never changes the descriptor.
type LayerSpec struct {
	Name         string   `yaml:"name" json:"name"`
	Element      string   `yaml:"element,omitempty" json:"element,omitempty"`
	Drive        Drive    `yaml:"drive,omitempty" json:"drive,omitempty"`
	Axes         Axis     `yaml:"axes,omitempty" json:"axes,omitempty"`
	SpeedX       float64  `yaml:"speed_x,omitempty" json:"speed_x,omitempty"`
	SpeedY       float64  `yaml:"speed_y,omitempty" json:"speed_y,omitempty"`
	Speed        float64  `yaml:"speed,omitempty" json:"speed,omitempty"`
	ScaleRate    *float64 `yaml:"scale_rate,omitempty" json:"scale_rate,omitempty"`
	RotateRate   *float64 `yaml:"rotate_rate,omitempty" json:"rotate_rate,omitempty"`
	TransitionMS float64  `yaml:"transition_ms,omitempty" json:"transition_ms,omitempty"`
}

// ScrollLayer returns a scroll-driven layer translating on both axes.
func ScrollLayer(name string, speedX, speedY float64) LayerSpec {
	return LayerSpec{Name: name, Drive: DriveScroll, SpeedX: speedX, SpeedY: speedY}
}

// PointerLayer returns a pointer-driven layer.
func PointerLayer(name string, speed float64) LayerSpec {
	return LayerSpec{Name: name, Drive: DrivePointer, Speed: speed}
}

func (l LayerSpec) WithScaleRate(rate float64) LayerSpec {
	l.ScaleRate = &rate
	return l
}

func (l LayerSpec) WithRotateRate(rate float64) LayerSpec {
	l.RotateRate = &rate
	return l
}

func (l LayerSpec) WithAxes(a Axis) LayerSpec {
	l.Axes = a
	return l
}

func (l LayerSpec) WithTransition(ms float64) LayerSpec {
	l.TransitionMS = ms
	return l
}

func (l LayerSpec) ID() string {
	if l.Element != "" {
		return l.Element
	}
	return l.Name
}

func (l LayerSpec) Kind() Kind { return KindLayer }

func (l LayerSpec) IsPointer() bool { return l.Drive == DrivePointer }

func (l LayerSpec) Transform(in Inputs) transform.Descriptor {
	if l.IsPointer() {
		return l.pointerTransform(in)
	}
	return l.scrollTransform(in.Scroll)
}

func (l LayerSpec) scrollTransform(s float64) transform.Descriptor {
	d := translate(transform.Identity(), l.Axes, s*l.SpeedX, s*l.SpeedY)
	if l.ScaleRate != nil {
		d = d.WithScale(1 + s*(*l.ScaleRate))
	}
	if l.RotateRate != nil {
		d = d.WithRotate(s * (*l.RotateRate))
	}
	return d
}

// pointerTransform measures displacement from the viewport centre. An unset
// pointer yields the identity, not a transform computed from (0, 0).
func (l LayerSpec) pointerTransform(in Inputs) transform.Descriptor {
	if !in.Pointer.Set {
		return transform.Identity()
	}
	cx, cy := in.Viewport.Center()
	return translate(transform.Identity(), l.Axes, (in.Pointer.X-cx)*l.Speed, (in.Pointer.Y-cy)*l.Speed)
}

func translate(d transform.Descriptor, axes Axis, x, y float64) transform.Descriptor {
	switch axes {
	case AxisX:
		return d.WithTranslateX(x)
	case AxisY:
		return d.WithTranslateY(y)
	case AxisNone:
		return d
	default:
		return d.WithTranslate(x, y)
	}
}

func (l LayerSpec) Validate() error {
	if l.Name == "" {
		return Error.New("layer name is required")
	}
	if !l.Axes.valid() {
		return Error.New("layer %q: unknown axes %q", l.Name, l.Axes)
	}
	switch l.Drive {
	case "", DriveScroll:
		if l.Speed != 0 {
			return Error.New("layer %q: speed applies to pointer layers only, use speed_x/speed_y", l.Name)
		}
	case DrivePointer:
		if l.ScaleRate != nil || l.RotateRate != nil || l.Axes == AxisNone {
			return Error.New("layer %q: pointer layers only translate", l.Name)
		}
		if l.SpeedX != 0 || l.SpeedY != 0 {
			return Error.New("layer %q: pointer layers use speed, not speed_x/speed_y", l.Name)
		}
	default:
		return Error.New("layer %q: unknown drive %q", l.Name, l.Drive)
	}
	if l.TransitionMS < 0 {
		return Error.New("layer %q: negative transition", l.Name)
	}
	return nil
}
