package metrics

import (
	"math"

	"github.com/san-kum/parallax/internal/scene"
	"github.com/san-kum/parallax/internal/transform"
)

const (
	DefaultScaleLimit  = 3.0
	DefaultRotateLimit = 360.0
)

// Unbounded reports the fraction of frames in which some element scales
// beyond ScaleLimit (or below its inverse) or rotates about any axis past
// RotateLimit. Layer scale, layer rotation and section tilt before its
// threshold are unclamped; this counts the frames where that shows without
// altering the formulas.
type Unbounded struct {
	name        string
	scaleLimit  float64
	rotateLimit float64
	violations  int
	samples     int
	offenders   map[string]float64
}

func NewUnbounded(scaleLimit, rotateLimit float64) *Unbounded {
	return &Unbounded{
		name:        "unbounded",
		scaleLimit:  scaleLimit,
		rotateLimit: rotateLimit,
		offenders:   make(map[string]float64),
	}
}

func (u *Unbounded) Name() string { return u.name }

func (u *Unbounded) Observe(offset float64, f scene.Frame) {
	u.samples++
	bad := false
	for _, e := range f.Entries {
		if u.exceeds(e.Descriptor) {
			bad = true
			if _, seen := u.offenders[e.ID]; !seen {
				u.offenders[e.ID] = offset
			}
		}
	}
	if bad {
		u.violations++
	}
}

func (u *Unbounded) exceeds(d transform.Descriptor) bool {
	if d.Includes(transform.Scale) {
		s := d.Scale
		if s > u.scaleLimit || s < 1/u.scaleLimit {
			return true
		}
	}
	for _, term := range []transform.Term{transform.Rotate, transform.RotateX, transform.RotateY} {
		if math.Abs(d.Value(term)) > u.rotateLimit {
			return true
		}
	}
	return false
}

func (u *Unbounded) Value() float64 {
	if u.samples == 0 {
		return 0
	}
	return float64(u.violations) / float64(u.samples)
}

// Offenders maps each element that left the bounds to the first offset at
// which it did.
func (u *Unbounded) Offenders() map[string]float64 {
	out := make(map[string]float64, len(u.offenders))
	for k, v := range u.offenders {
		out[k] = v
	}
	return out
}

func (u *Unbounded) Reset() {
	u.violations = 0
	u.samples = 0
	u.offenders = make(map[string]float64)
}
