package sweep

import (
	"context"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RunParallel splits the offsets into contiguous chunks evaluated
// concurrently. Metrics and observers still see frames in offset order, so
// the result matches Run.
func (s *Sweeper) RunParallel(ctx context.Context, cfg Config, workers int) (_ *Result, err error) {
	defer mon.Task()(&ctx)(&err)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	offsets := cfg.Offsets()
	if workers > len(offsets) {
		workers = len(offsets)
	}
	result := s.newResult(cfg, offsets)

	chunk := (len(offsets) + workers - 1) / workers
	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < len(offsets); start += chunk {
		lo, hi := start, min(start+chunk, len(offsets))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				result.Frames[i] = s.frame(offsets[i], cfg)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.observe(result)
	s.log.Debug("parallel sweep finished",
		zap.String("scene", s.scene.Name),
		zap.Int("frames", len(offsets)),
		zap.Int("workers", workers))
	return result, nil
}
