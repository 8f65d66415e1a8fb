package input

import "fmt"

// Pointer is a viewport-relative pointer position. The zero value is the
// Unset sentinel.
type Pointer struct {
	X, Y float64
	Set  bool
}

// Unset returns the pointer value observed before any pointer movement.
func Unset() Pointer { return Pointer{} }

// At returns a pointer positioned at (x, y).
func At(x, y float64) Pointer { return Pointer{X: x, Y: y, Set: true} }

func (p Pointer) String() string {
	if !p.Set {
		return "unset"
	}
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Snapshot holds the latest value of both tracked signals.
type Snapshot struct {
	Scroll  float64
	Pointer Pointer
}

// Bounds limits the scroll offset. A zero DocumentHeight leaves the upper
// end open.
type Bounds struct {
	ViewportHeight float64
	DocumentHeight float64
}

// MaxScroll is the largest reachable offset, or -1 when unbounded.
func (b Bounds) MaxScroll() float64 {
	if b.DocumentHeight <= 0 {
		return -1
	}
	m := b.DocumentHeight - b.ViewportHeight
	if m < 0 {
		return 0
	}
	return m
}

// Clamp maps y into [0, MaxScroll].
func (b Bounds) Clamp(y float64) float64 {
	if y < 0 || y != y {
		return 0
	}
	if m := b.MaxScroll(); m >= 0 && y > m {
		return m
	}
	return y
}
