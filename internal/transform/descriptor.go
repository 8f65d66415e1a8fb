package transform

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Term marks one component of a descriptor as present.
type Term uint8

const (
	TranslateX Term = 1 << iota
	TranslateY
	Scale
	Rotate
	RotateX
	RotateY
	Perspective
)

var termNames = []struct {
	term Term
	name string
}{
	{TranslateX, "translateX"},
	{TranslateY, "translateY"},
	{Scale, "scale"},
	{Rotate, "rotate"},
	{RotateX, "rotateX"},
	{RotateY, "rotateY"},
	{Perspective, "perspective"},
}

func (t Term) String() string {
	for _, tn := range termNames {
		if tn.term == t {
			return tn.name
		}
	}
	return fmt.Sprintf("term(%d)", uint8(t))
}

// ParseTerm resolves a term by its CSS function name.
func ParseTerm(name string) (Term, error) {
	for _, tn := range termNames {
		if strings.EqualFold(tn.name, name) {
			return tn.term, nil
		}
	}
	return 0, fmt.Errorf("unknown transform term: %s", name)
}

// Terms lists every term in application order.
func Terms() []Term {
	out := make([]Term, len(termNames))
	for i, tn := range termNames {
		out[i] = tn.term
	}
	return out
}

// Descriptor is a computed transform. Only terms present in Has take part
// in rendering; the zero value is the identity.
//
// Terms apply in a fixed order: perspective, translate, scale, rotate,
// rotateX, rotateY. Angles are degrees, lengths are pixels.
type Descriptor struct {
	TranslateX  float64
	TranslateY  float64
	Scale       float64
	Rotate      float64
	RotateX     float64
	RotateY     float64
	Perspective float64
	Has         Term
}

func Identity() Descriptor { return Descriptor{} }

func (d Descriptor) IsIdentity() bool { return d.Has == 0 }

func (d Descriptor) Includes(t Term) bool { return d.Has&t != 0 }

func (d Descriptor) WithTranslate(x, y float64) Descriptor {
	d.TranslateX, d.TranslateY = x, y
	d.Has |= TranslateX | TranslateY
	return d
}

func (d Descriptor) WithTranslateX(x float64) Descriptor {
	d.TranslateX = x
	d.Has |= TranslateX
	return d
}

func (d Descriptor) WithTranslateY(y float64) Descriptor {
	d.TranslateY = y
	d.Has |= TranslateY
	return d
}

func (d Descriptor) WithScale(s float64) Descriptor {
	d.Scale = s
	d.Has |= Scale
	return d
}

func (d Descriptor) WithRotate(deg float64) Descriptor {
	d.Rotate = deg
	d.Has |= Rotate
	return d
}

func (d Descriptor) WithRotateX(deg float64) Descriptor {
	d.RotateX = deg
	d.Has |= RotateX
	return d
}

func (d Descriptor) WithRotateY(deg float64) Descriptor {
	d.RotateY = deg
	d.Has |= RotateY
	return d
}

func (d Descriptor) WithPerspective(px float64) Descriptor {
	d.Perspective = px
	d.Has |= Perspective
	return d
}

// Value returns the effective value of t: the stored value when present,
// otherwise the neutral value (1 for scale, 0 for everything else).
func (d Descriptor) Value(t Term) float64 {
	if !d.Includes(t) {
		if t == Scale {
			return 1
		}
		return 0
	}
	switch t {
	case TranslateX:
		return d.TranslateX
	case TranslateY:
		return d.TranslateY
	case Scale:
		return d.Scale
	case Rotate:
		return d.Rotate
	case RotateX:
		return d.RotateX
	case RotateY:
		return d.RotateY
	case Perspective:
		return d.Perspective
	}
	return 0
}

// Equal reports whether d and o carry the same terms with values within
// eps of each other.
func (d Descriptor) Equal(o Descriptor, eps float64) bool {
	if d.Has != o.Has {
		return false
	}
	for _, t := range Terms() {
		if d.Includes(t) && math.Abs(d.Value(t)-o.Value(t)) > eps {
			return false
		}
	}
	return true
}

// CSS renders the descriptor as a CSS transform value. The identity
// renders as the empty string, meaning no transform is applied.
func (d Descriptor) CSS() string {
	var parts []string
	if d.Includes(Perspective) {
		parts = append(parts, "perspective("+num(d.Perspective)+"px)")
	}
	switch {
	case d.Includes(TranslateX) && d.Includes(TranslateY):
		parts = append(parts, "translate("+num(d.TranslateX)+"px, "+num(d.TranslateY)+"px)")
	case d.Includes(TranslateX):
		parts = append(parts, "translateX("+num(d.TranslateX)+"px)")
	case d.Includes(TranslateY):
		parts = append(parts, "translateY("+num(d.TranslateY)+"px)")
	}
	if d.Includes(Scale) {
		parts = append(parts, "scale("+num(d.Scale)+")")
	}
	if d.Includes(Rotate) {
		parts = append(parts, "rotate("+num(d.Rotate)+"deg)")
	}
	if d.Includes(RotateX) {
		parts = append(parts, "rotateX("+num(d.RotateX)+"deg)")
	}
	if d.Includes(RotateY) {
		parts = append(parts, "rotateY("+num(d.RotateY)+"deg)")
	}
	return strings.Join(parts, " ")
}

func (d Descriptor) String() string {
	if d.IsIdentity() {
		return "identity"
	}
	return d.CSS()
}

// Matrix composes the present terms into a homogeneous matrix, applied in
// the same order as CSS.
func (d Descriptor) Matrix() mgl64.Mat4 {
	m := mgl64.Ident4()
	if d.Includes(Perspective) && d.Perspective != 0 {
		p := mgl64.Ident4()
		p[2*4+3] = -1 / d.Perspective
		m = m.Mul4(p)
	}
	if d.Includes(TranslateX) || d.Includes(TranslateY) {
		m = m.Mul4(mgl64.Translate3D(d.Value(TranslateX), d.Value(TranslateY), 0))
	}
	if d.Includes(Scale) {
		m = m.Mul4(mgl64.Scale3D(d.Scale, d.Scale, 1))
	}
	if d.Includes(Rotate) {
		m = m.Mul4(mgl64.HomogRotate3DZ(mgl64.DegToRad(d.Rotate)))
	}
	if d.Includes(RotateX) {
		m = m.Mul4(mgl64.HomogRotate3DX(mgl64.DegToRad(d.RotateX)))
	}
	if d.Includes(RotateY) {
		m = m.Mul4(mgl64.HomogRotate3DY(mgl64.DegToRad(d.RotateY)))
	}
	return m
}

// Apply maps a point in the element's local plane through the descriptor.
func (d Descriptor) Apply(x, y float64) (float64, float64) {
	if d.IsIdentity() {
		return x, y
	}
	v := d.Matrix().Mul4x1(mgl64.Vec4{x, y, 0, 1})
	if v[3] != 0 && v[3] != 1 {
		return v[0] / v[3], v[1] / v[3]
	}
	return v[0], v[1]
}

func num(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
