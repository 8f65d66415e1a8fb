package sweep

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/parallax/internal/input"
	"github.com/san-kum/parallax/internal/scene"
	"github.com/san-kum/parallax/internal/transform"
)

type countingObserver struct {
	offsets []float64
}

func (c *countingObserver) OnFrame(offset float64, _ scene.Frame) {
	c.offsets = append(c.offsets, offset)
}

type lastScroll struct{ v float64 }

func (l *lastScroll) Name() string                          { return "last_scroll" }
func (l *lastScroll) Observe(offset float64, _ scene.Frame) { l.v = offset }
func (l *lastScroll) Value() float64                        { return l.v }
func (l *lastScroll) Reset()                                { l.v = -1 }

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default", DefaultConfig(), false},
		{"single offset", Config{From: 100, To: 100, Step: 1}, false},
		{"zero step", Config{From: 0, To: 10, Step: 0}, true},
		{"negative from", Config{From: -1, To: 10, Step: 1}, true},
		{"reversed", Config{From: 10, To: 0, Step: 1}, true},
		{"infinite to", Config{From: 0, To: math.Inf(1), Step: 50}, true},
		{"infinite from", Config{From: math.Inf(1), To: math.Inf(1), Step: 50}, true},
		{"nan step", Config{From: 0, To: 100, Step: math.NaN()}, true},
		{"nan to", Config{From: 0, To: math.NaN(), Step: 1}, true},
		{"too many frames", Config{From: 0, To: 100, Step: 1e-15}, true},
		{"at frame limit", Config{From: 0, To: MaxFrames - 1, Step: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !Error.Has(err) {
				t.Errorf("expected sweep error class, got %v", err)
			}
		})
	}
}

func TestConfigOffsets(t *testing.T) {
	got := Config{From: 0, To: 100, Step: 30}.Offsets()
	want := []float64{0, 30, 60, 90}
	if len(got) != len(want) {
		t.Fatalf("Offsets() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Offsets()[%d] = %f, want %f", i, got[i], want[i])
		}
	}

	if n := len((Config{From: 0, To: 1, Step: 0.1}).Offsets()); n != 11 {
		t.Errorf("expected 11 offsets for 0..1 step 0.1, got %d", n)
	}
}

func TestRunEvaluatesEveryOffset(t *testing.T) {
	sw := New(scene.Minimal(), nil)
	obs := &countingObserver{}
	sw.AddObserver(obs)
	sw.AddMetric(&lastScroll{})

	res, err := sw.Run(context.Background(), Config{From: 0, To: 2000, Step: 500})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(res.Frames) != 5 {
		t.Fatalf("expected 5 frames, got %d", len(res.Frames))
	}
	if len(obs.offsets) != 5 || obs.offsets[4] != 2000 {
		t.Errorf("observer saw %v", obs.offsets)
	}
	if res.Metrics["last_scroll"] != 2000 {
		t.Errorf("last_scroll = %f, want 2000", res.Metrics["last_scroll"])
	}
	for i, f := range res.Frames {
		if f.Scroll != res.Offsets[i] {
			t.Errorf("frame %d scroll = %f, want %f", i, f.Scroll, res.Offsets[i])
		}
	}
}

func TestSeries(t *testing.T) {
	sw := New(scene.Minimal(), nil)
	res, err := sw.Run(context.Background(), Config{From: 0, To: 1000, Step: 500})
	if err != nil {
		t.Fatal(err)
	}

	ty, err := res.Series("content", transform.TranslateY)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0, 0, -50}
	for i := range want {
		if diff := ty[i] - want[i]; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("content translateY[%d] = %f, want %f", i, ty[i], want[i])
		}
	}

	if _, err := res.Series("missing", transform.Scale); err == nil {
		t.Error("expected error for unknown element")
	}

	ids := res.IDs()
	if len(ids) != 2 || ids[0] != "backdrop" || ids[1] != "content" {
		t.Errorf("IDs() = %v", ids)
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	cfg := Config{From: 0, To: 6000, Step: 25, Pointer: input.At(900, 300)}

	seq, err := New(scene.Resume(), nil).Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}

	for _, workers := range []int{0, 1, 3, 8, 10000} {
		par, err := New(scene.Resume(), nil).RunParallel(context.Background(), cfg, workers)
		if err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}
		if len(par.Frames) != len(seq.Frames) {
			t.Fatalf("workers=%d: %d frames, want %d", workers, len(par.Frames), len(seq.Frames))
		}
		for i := range seq.Frames {
			if !seq.Frames[i].Equal(par.Frames[i]) {
				t.Fatalf("workers=%d: frame %d differs", workers, i)
			}
		}
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sw := New(scene.Resume(), nil)
	if _, err := sw.Run(ctx, DefaultConfig()); err == nil {
		t.Error("expected context error from Run")
	}
	if _, err := sw.RunParallel(ctx, DefaultConfig(), 4); err == nil {
		t.Error("expected context error from RunParallel")
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	sw := New(scene.Minimal(), nil)
	if _, err := sw.Run(context.Background(), Config{Step: -1}); err == nil {
		t.Error("expected validation error")
	}
}
