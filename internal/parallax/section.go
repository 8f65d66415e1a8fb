package parallax

import (
	"math"

	"github.com/san-kum/parallax/internal/input"
	"github.com/san-kum/parallax/internal/transform"
)

// ScaleDecay shrinks a section linearly from Start over Distance pixels of
// scroll, never below Floor.
type ScaleDecay struct {
	Start    float64 `yaml:"start" json:"start"`
	Distance float64 `yaml:"distance" json:"distance"`
	Floor    float64 `yaml:"floor" json:"floor"`
}

func (sd ScaleDecay) At(s float64) float64 {
	return max(sd.Floor, 1-Ramp(s, sd.Start)/sd.Distance)
}

// Nudge is a horizontal ramp with its own threshold.
type Nudge struct {
	Threshold float64 `yaml:"threshold" json:"threshold"`
	Speed     float64 `yaml:"speed" json:"speed"`
}

func (n Nudge) At(s float64) float64 { return Ramp(s, n.Threshold) * n.Speed }

// Tilt is a perspective rotation about X or Y capped at Max degrees. The
// term has no lower clamp: before the threshold it is (s-Threshold)*Rate,
// which may exceed Max and is then capped, or go negative.
type Tilt struct {
	Axis        Axis    `yaml:"axis" json:"axis"`
	Threshold   float64 `yaml:"threshold" json:"threshold"`
	Rate        float64 `yaml:"rate" json:"rate"`
	Max         float64 `yaml:"max" json:"max"`
	Perspective float64 `yaml:"perspective,omitempty" json:"perspective,omitempty"`
}

func (t Tilt) At(s float64) float64 { return min(t.Max, (s-t.Threshold)*t.Rate) }

// SectionSpec configures one content section. Threshold and the scale
// Start are independent constants, tuned per section to stagger motion
// down the page.
type SectionSpec struct {
	Name      string        `yaml:"name" json:"name"`
	Element   string        `yaml:"element,omitempty" json:"element,omitempty"`
	Threshold float64       `yaml:"threshold" json:"threshold"`
	Speed     float64       `yaml:"speed" json:"speed"`
	Scale     *ScaleDecay   `yaml:"scale,omitempty" json:"scale,omitempty"`
	Nudge     *Nudge        `yaml:"nudge,omitempty" json:"nudge,omitempty"`
	Tilt      *Tilt         `yaml:"tilt,omitempty" json:"tilt,omitempty"`
	Region    *input.Region `yaml:"region,omitempty" json:"region,omitempty"`
}

func (s SectionSpec) ID() string {
	if s.Element != "" {
		return s.Element
	}
	return s.Name
}

func (s SectionSpec) Kind() Kind { return KindSection }

// TranslateY is max(0, scroll-Threshold)*Speed.
func (s SectionSpec) TranslateY(scroll float64) float64 {
	return Ramp(scroll, s.Threshold) * s.Speed
}

func (s SectionSpec) Transform(in Inputs) transform.Descriptor {
	d := transform.Identity().WithTranslateY(s.TranslateY(in.Scroll))
	if s.Nudge != nil {
		d = d.WithTranslateX(s.Nudge.At(in.Scroll))
	}
	if s.Scale != nil {
		d = d.WithScale(s.Scale.At(in.Scroll))
	}
	if s.Tilt != nil {
		if s.Tilt.Perspective > 0 {
			d = d.WithPerspective(s.Tilt.Perspective)
		}
		deg := s.Tilt.At(in.Scroll)
		if s.Tilt.Axis == AxisY {
			d = d.WithRotateY(deg)
		} else {
			d = d.WithRotateX(deg)
		}
	}
	return d
}

func (s SectionSpec) Validate() error {
	if s.Name == "" {
		return Error.New("section name is required")
	}
	if !Finite(s.Threshold, s.Speed) {
		return Error.New("section %q: threshold and speed must be finite", s.Name)
	}
	if sc := s.Scale; sc != nil {
		if sc.Distance <= 0 {
			return Error.New("section %q: scale distance must be positive, got %g", s.Name, sc.Distance)
		}
		if sc.Floor <= 0 || sc.Floor > 1 {
			return Error.New("section %q: scale floor must be in (0, 1], got %g", s.Name, sc.Floor)
		}
	}
	if t := s.Tilt; t != nil {
		if t.Axis != AxisX && t.Axis != AxisY {
			return Error.New("section %q: tilt axis must be x or y, got %q", s.Name, t.Axis)
		}
		if t.Perspective < 0 {
			return Error.New("section %q: negative perspective", s.Name)
		}
	}
	if r := s.Region; r != nil && r.Height < 0 {
		return Error.New("section %q: negative region height", s.Name)
	}
	return nil
}

// Finite reports whether every value is neither NaN nor infinite.
func Finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
