package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/parallax/internal/input"
	"github.com/san-kum/parallax/internal/parallax"
	"github.com/san-kum/parallax/internal/scene"
)

func testScene() *scene.Scene {
	return &scene.Scene{
		Name:     "test",
		Viewport: parallax.Viewport{Width: 1000, Height: 800},
		Layers: []parallax.LayerSpec{
			parallax.ScrollLayer("a", 0.3, 0.4).WithScaleRate(0.001).WithRotateRate(0.1),
		},
		Sections: []parallax.SectionSpec{
			{Name: "s", Threshold: 100, Speed: -0.1, Scale: &parallax.ScaleDecay{Start: 0, Distance: 100, Floor: 0.5}},
		},
	}
}

func TestMaxDisplacement(t *testing.T) {
	sc := testScene()
	m := NewMaxDisplacement()
	m.Observe(1000, sc.FrameAt(1000, input.Unset()))

	if math.Abs(m.Value()-500) > 1e-9 {
		t.Errorf("expected 500, got %f", m.Value())
	}
	m.Reset()
	if m.Value() != 0 {
		t.Error("reset did not clear")
	}
}

func TestMinScale(t *testing.T) {
	sc := testScene()
	m := NewMinScale()
	if m.Value() != 1 {
		t.Errorf("empty MinScale = %f, want 1", m.Value())
	}
	for _, off := range []float64{0, 50, 1000} {
		m.Observe(off, sc.FrameAt(off, input.Unset()))
	}
	if m.Value() != 0.5 {
		t.Errorf("expected floor 0.5, got %f", m.Value())
	}
}

func TestMaxRotation(t *testing.T) {
	sc := testScene()
	m := NewMaxRotation()
	m.Observe(900, sc.FrameAt(900, input.Unset()))
	if math.Abs(m.Value()-90) > 1e-9 {
		t.Errorf("expected 90, got %f", m.Value())
	}
}

func TestUnbounded(t *testing.T) {
	sc := testScene()
	u := NewUnbounded(DefaultScaleLimit, DefaultRotateLimit)

	u.Observe(0, sc.FrameAt(0, input.Unset()))
	u.Observe(1000, sc.FrameAt(1000, input.Unset()))
	if u.Value() != 0 {
		t.Errorf("expected no violations, got %f", u.Value())
	}

	// scale 1 + 5000*0.001 = 6 and rotate 500deg: both out of range.
	u.Observe(5000, sc.FrameAt(5000, input.Unset()))
	if math.Abs(u.Value()-1.0/3) > 1e-12 {
		t.Errorf("expected 1/3, got %f", u.Value())
	}
	if off, ok := u.Offenders()["a"]; !ok || off != 5000 {
		t.Errorf("expected layer a to offend at 5000, got %v", u.Offenders())
	}
	if _, ok := u.Offenders()["s"]; ok {
		t.Error("section scale is floored and should never offend")
	}

	u.Reset()
	if u.Value() != 0 || len(u.Offenders()) != 0 {
		t.Error("reset did not clear")
	}
}

func TestUnboundedTilt(t *testing.T) {
	sc := &scene.Scene{
		Name:     "tilt",
		Viewport: parallax.Viewport{Width: 1000, Height: 800},
		Sections: []parallax.SectionSpec{
			{Name: "x", Tilt: &parallax.Tilt{Axis: parallax.AxisX, Threshold: 5000, Rate: 1, Max: 10}},
			{Name: "y", Tilt: &parallax.Tilt{Axis: parallax.AxisY, Threshold: 200, Rate: 1, Max: 10}},
		},
	}
	u := NewUnbounded(DefaultScaleLimit, DefaultRotateLimit)

	// rotateX is (0-5000)*1 = -5000deg; rotateY is -200deg.
	u.Observe(0, sc.FrameAt(0, input.Unset()))
	if u.Value() != 1 {
		t.Errorf("expected every frame flagged, got %f", u.Value())
	}
	if off, ok := u.Offenders()["x"]; !ok || off != 0 {
		t.Errorf("expected section x to offend at 0, got %v", u.Offenders())
	}
	if _, ok := u.Offenders()["y"]; ok {
		t.Error("rotateY within the limit should not offend")
	}

	// rotateY at 10000 is capped at 10; rotateX is 5000 capped at 10.
	u.Observe(10000, sc.FrameAt(10000, input.Unset()))
	if math.Abs(u.Value()-0.5) > 1e-12 {
		t.Errorf("expected 1/2, got %f", u.Value())
	}
}
