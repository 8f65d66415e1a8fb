package sweep

import (
	"math"

	"github.com/san-kum/parallax/internal/input"
	"github.com/san-kum/parallax/internal/parallax"
	"github.com/san-kum/parallax/internal/scene"
	"github.com/san-kum/parallax/internal/transform"
)

const (
	DefaultFrom = 0.0
	DefaultTo   = 12000.0
	DefaultStep = 50.0
	// MaxFrames bounds the number of offsets one sweep may evaluate.
	MaxFrames = 1_000_000
)

// Observer sees every frame of a sweep, in offset order.
type Observer interface {
	OnFrame(offset float64, f scene.Frame)
}

type Metric interface {
	Name() string
	Observe(offset float64, f scene.Frame)
	Value() float64
	Reset()
}

// Config is a scroll range evaluated at a fixed pointer.
type Config struct {
	From    float64       `json:"from"`
	To      float64       `json:"to"`
	Step    float64       `json:"step"`
	Pointer input.Pointer `json:"pointer"`
}

func DefaultConfig() Config {
	return Config{From: DefaultFrom, To: DefaultTo, Step: DefaultStep}
}

func (c Config) Validate() error {
	if !parallax.Finite(c.From, c.To, c.Step) {
		return Error.New("from, to and step must be finite, got %g, %g, %g", c.From, c.To, c.Step)
	}
	if c.Step <= 0 {
		return Error.New("step must be positive, got %f", c.Step)
	}
	if c.From < 0 {
		return Error.New("from must be non-negative, got %f", c.From)
	}
	if c.To < c.From {
		return Error.New("to (%f) must not be below from (%f)", c.To, c.From)
	}
	if n := (c.To - c.From) / c.Step; n+1 > MaxFrames {
		return Error.New("range %g..%g at step %g exceeds %d frames", c.From, c.To, c.Step, MaxFrames)
	}
	return nil
}

// Offsets lists From, From+Step, ... up to and including To.
func (c Config) Offsets() []float64 {
	n := int(math.Floor((c.To-c.From)/c.Step+1e-9)) + 1
	out := make([]float64, n)
	for i := range out {
		out[i] = c.From + float64(i)*c.Step
	}
	return out
}

type Result struct {
	Scene   string             `json:"scene"`
	Config  Config             `json:"config"`
	Offsets []float64          `json:"offsets"`
	Frames  []scene.Frame      `json:"frames"`
	Metrics map[string]float64 `json:"metrics"`
}

// IDs lists element ids in frame order.
func (r *Result) IDs() []string {
	if len(r.Frames) == 0 {
		return nil
	}
	ids := make([]string, len(r.Frames[0].Entries))
	for i, e := range r.Frames[0].Entries {
		ids[i] = e.ID
	}
	return ids
}

// Series extracts one term of one element across the sweep.
func (r *Result) Series(id string, term transform.Term) ([]float64, error) {
	out := make([]float64, len(r.Frames))
	for i, f := range r.Frames {
		d, ok := f.Lookup(id)
		if !ok {
			return nil, Error.New("unknown element: %s", id)
		}
		out[i] = d.Value(term)
	}
	return out, nil
}
