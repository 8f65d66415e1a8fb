package parallax

import "github.com/san-kum/parallax/internal/input"

// Viewport is the visible area in CSS pixels. DocumentHeight bounds the
// scroll offset when non-zero.
type Viewport struct {
	Width          float64 `yaml:"width" json:"width"`
	Height         float64 `yaml:"height" json:"height"`
	DocumentHeight float64 `yaml:"document_height,omitempty" json:"document_height,omitempty"`
}

func (v Viewport) Center() (float64, float64) { return v.Width / 2, v.Height / 2 }

func (v Viewport) Bounds() input.Bounds {
	return input.Bounds{ViewportHeight: v.Height, DocumentHeight: v.DocumentHeight}
}

// Inputs is everything a transform may depend on.
type Inputs struct {
	Scroll   float64
	Pointer  input.Pointer
	Viewport Viewport
}

func InputsFrom(s input.Snapshot, vp Viewport) Inputs {
	return Inputs{Scroll: s.Scroll, Pointer: s.Pointer, Viewport: vp}
}

// Ramp is max(0, s-threshold): zero up to the threshold, linear after it.
func Ramp(s, threshold float64) float64 {
	return max(0, s-threshold)
}
