package scene

import (
	"sort"

	"github.com/san-kum/parallax/internal/input"
	"github.com/san-kum/parallax/internal/parallax"
)

var builtins = map[string]func() *Scene{
	"resume":  Resume,
	"minimal": Minimal,
	"orbs":    Orbs,
}

// Builtin returns a fresh copy of a named scene, or nil.
func Builtin(name string) *Scene {
	fn, ok := builtins[name]
	if !ok {
		return nil
	}
	return fn()
}

func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resume is the single-page resume: four drifting glow layers, two
// pointer-reactive orbs, a grid overlay, the hero block and seven content
// sections staggered down the page.
func Resume() *Scene {
	return &Scene{
		Name:     "resume",
		Viewport: parallax.Viewport{Width: 1440, Height: 900, DocumentHeight: 13600},
		Layers: []parallax.LayerSpec{
			parallax.ScrollLayer("glow-blue", 0.1, 0.15).WithScaleRate(0.0003),
			parallax.ScrollLayer("glow-purple", -0.2, 0.25).WithRotateRate(0.05),
			parallax.ScrollLayer("glow-emerald", 0.3, -0.35),
			parallax.ScrollLayer("glow-orange", 0.15, 0.4).WithScaleRate(0.0002),
			parallax.PointerLayer("orb-blue", 0.02).WithTransition(300),
			parallax.PointerLayer("orb-purple", -0.015).WithTransition(500),
			parallax.ScrollLayer("grid", 0, 0.1).WithAxes(parallax.AxisY),

			parallax.ScrollLayer("hero", 0, 0.4).WithAxes(parallax.AxisY),
			parallax.ScrollLayer("hero-badge", 0, -0.15).WithAxes(parallax.AxisY),
			parallax.ScrollLayer("hero-badge-pill", 0, 0).WithAxes(parallax.AxisNone).WithScaleRate(-0.0003),
			parallax.ScrollLayer("hero-name", 0, -0.2).WithAxes(parallax.AxisY).WithScaleRate(-0.0005),
			parallax.ScrollLayer("hero-role", 0, -0.25).WithAxes(parallax.AxisY),
			parallax.ScrollLayer("hero-contact", 0, -0.3).WithAxes(parallax.AxisY),
			parallax.ScrollLayer("hero-scroll-hint", 0, -0.35).WithAxes(parallax.AxisY),
		},
		Sections: []parallax.SectionSpec{
			{
				Name: "about", Threshold: 500, Speed: -0.1,
				Scale:  &parallax.ScaleDecay{Start: 1500, Distance: 1500, Floor: 0.85},
				Nudge:  &parallax.Nudge{Threshold: 500, Speed: 0.05},
				Tilt:   &parallax.Tilt{Axis: parallax.AxisX, Threshold: 600, Rate: -0.01, Max: 5, Perspective: 1000},
				Region: &input.Region{Top: 1000, Height: 700},
			},
			{
				Name: "tech-stack", Threshold: 1000, Speed: -0.15,
				Scale:  &parallax.ScaleDecay{Start: 2800, Distance: 1500, Floor: 0.8},
				Nudge:  &parallax.Nudge{Threshold: 1000, Speed: -0.05},
				Region: &input.Region{Top: 1850, Height: 900},
			},
			card("tech-card-1", 1100, 2050),
			card("tech-card-2", 1150, 2050),
			card("tech-card-3", 1200, 2350),
			card("tech-card-4", 1250, 2350),
			{
				Name: "career", Threshold: 1800, Speed: -0.09,
				Scale:  &parallax.ScaleDecay{Start: 5500, Distance: 1800, Floor: 0.7},
				Nudge:  &parallax.Nudge{Threshold: 1800, Speed: 0.03},
				Region: &input.Region{Top: 2900, Height: 3800},
			},
			staggered("projects", 6500, -0.05, 8500, 6900, 1200),
			staggered("education", 8000, -0.06, 10000, 8300, 900),
			staggered("training", 9500, -0.07, 11500, 9400, 1400),
			staggered("certifications", 11000, -0.07, 13000, 11000, 1200),
		},
	}
}

func card(name string, threshold, top float64) parallax.SectionSpec {
	return parallax.SectionSpec{
		Name: name, Threshold: threshold, Speed: -0.05,
		Tilt:   &parallax.Tilt{Axis: parallax.AxisY, Threshold: 1100, Rate: 0.01, Max: 5},
		Region: &input.Region{Top: top, Height: 260},
	}
}

func staggered(name string, threshold, speed, scaleStart, top, height float64) parallax.SectionSpec {
	return parallax.SectionSpec{
		Name: name, Threshold: threshold, Speed: speed,
		Scale:  &parallax.ScaleDecay{Start: scaleStart, Distance: 1500, Floor: 0.75},
		Region: &input.Region{Top: top, Height: height},
	}
}

// Minimal is one layer and one section, handy for experiments.
func Minimal() *Scene {
	return &Scene{
		Name:     "minimal",
		Viewport: parallax.Viewport{Width: 1280, Height: 800},
		Layers: []parallax.LayerSpec{
			parallax.ScrollLayer("backdrop", 0.1, 0.15).WithScaleRate(0.0003),
		},
		Sections: []parallax.SectionSpec{
			{
				Name: "content", Threshold: 500, Speed: -0.1,
				Scale:  &parallax.ScaleDecay{Start: 1500, Distance: 1500, Floor: 0.85},
				Region: &input.Region{Top: 800, Height: 1200},
			},
		},
	}
}

// Orbs has only pointer-driven layers.
func Orbs() *Scene {
	return &Scene{
		Name:     "orbs",
		Viewport: parallax.Viewport{Width: 1440, Height: 900},
		Layers: []parallax.LayerSpec{
			parallax.PointerLayer("orb-near", 0.02).WithTransition(300),
			parallax.PointerLayer("orb-mid", 0.01).WithTransition(400),
			parallax.PointerLayer("orb-far", -0.015).WithTransition(500),
		},
	}
}
