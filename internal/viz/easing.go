package viz

import "github.com/charmbracelet/harmonica"

const (
	defaultFrequency = 6.0
	// A 300ms transition settles at about frequency 10.
	transitionScale = 3000.0
)

// easer smooths a pointer layer's on-screen offset toward the engine's
// descriptor. It only affects what is drawn.
type easer struct {
	spring harmonica.Spring
	x, vx  float64
	y, vy  float64
}

func newEaser(fps int, transitionMS float64) *easer {
	freq := defaultFrequency
	if transitionMS > 0 {
		freq = transitionScale / transitionMS
	}
	return &easer{spring: harmonica.NewSpring(harmonica.FPS(fps), freq, 1.0)}
}

// Step advances one frame toward (tx, ty) and returns the eased position.
func (e *easer) Step(tx, ty float64) (float64, float64) {
	e.x, e.vx = e.spring.Update(e.x, e.vx, tx)
	e.y, e.vy = e.spring.Update(e.y, e.vy, ty)
	return e.x, e.y
}

func (e *easer) Position() (float64, float64) { return e.x, e.y }
