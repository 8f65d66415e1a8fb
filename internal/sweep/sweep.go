package sweep

import (
	"context"

	"github.com/spacemonkeygo/monkit/v3"
	"github.com/zeebo/errs"
	"go.uber.org/zap"

	"github.com/san-kum/parallax/internal/parallax"
	"github.com/san-kum/parallax/internal/scene"
)

var (
	mon   = monkit.Package()
	Error = errs.Class("sweep")
)

// Sweeper evaluates a scene over a range of scroll offsets.
type Sweeper struct {
	scene     *scene.Scene
	log       *zap.Logger
	metrics   []Metric
	observers []Observer
}

func New(sc *scene.Scene, log *zap.Logger) *Sweeper {
	if log == nil {
		log = zap.NewNop()
	}
	return &Sweeper{
		scene:     sc,
		log:       log,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Sweeper) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Sweeper) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Sweeper) Run(ctx context.Context, cfg Config) (_ *Result, err error) {
	defer mon.Task()(&ctx)(&err)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	offsets := cfg.Offsets()
	result := s.newResult(cfg, offsets)

	for i, off := range offsets {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}
		result.Frames[i] = s.frame(off, cfg)
	}

	s.observe(result)
	s.log.Debug("sweep finished", zap.String("scene", s.scene.Name), zap.Int("frames", len(offsets)))
	return result, nil
}

func (s *Sweeper) newResult(cfg Config, offsets []float64) *Result {
	return &Result{
		Scene:   s.scene.Name,
		Config:  cfg,
		Offsets: offsets,
		Frames:  make([]scene.Frame, len(offsets)),
		Metrics: make(map[string]float64),
	}
}

func (s *Sweeper) frame(off float64, cfg Config) scene.Frame {
	return s.scene.Frame(parallax.Inputs{Scroll: off, Pointer: cfg.Pointer, Viewport: s.scene.Viewport})
}

// observe feeds frames to metrics and observers in offset order.
func (s *Sweeper) observe(result *Result) {
	for _, m := range s.metrics {
		m.Reset()
	}
	for i, f := range result.Frames {
		off := result.Offsets[i]
		for _, m := range s.metrics {
			m.Observe(off, f)
		}
		for _, o := range s.observers {
			o.OnFrame(off, f)
		}
	}
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}
