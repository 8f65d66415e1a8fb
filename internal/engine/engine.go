package engine

import (
	"sync"
	"sync/atomic"

	"github.com/zeebo/errs"
	"go.uber.org/zap"

	"github.com/san-kum/parallax/internal/input"
	"github.com/san-kum/parallax/internal/parallax"
	"github.com/san-kum/parallax/internal/scene"
	"github.com/san-kum/parallax/internal/transform"
)

var Error = errs.Class("engine")

type Option func(*Engine)

func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithVisibility routes section visibility entries to fn instead of the
// default no-op.
func WithVisibility(fn func([]input.VisibilityEntry)) Option {
	return func(e *Engine) { e.visibility = fn }
}

func WithThresholds(th []float64) Option {
	return func(e *Engine) { e.thresholds = th }
}

// Engine recomputes and applies every element's descriptor each time the
// tracker handles an event.
type Engine struct {
	scene      *scene.Scene
	tracker    *input.Tracker
	applier    Applier
	watcher    *input.VisibilityWatcher
	visibility func([]input.VisibilityEntry)
	thresholds []float64
	log        *zap.Logger

	mu      sync.Mutex
	mount   *input.Mount
	cancel  func()
	mounted bool

	frames atomic.Int64
}

// New validates sc and binds it to tracker. A nil tracker is replaced by
// one bounded by the scene viewport.
func New(sc *scene.Scene, tracker *input.Tracker, applier Applier, opts ...Option) (*Engine, error) {
	if sc == nil {
		return nil, Error.New("nil scene")
	}
	if err := sc.Validate(); err != nil {
		return nil, Error.Wrap(err)
	}
	if tracker == nil {
		tracker = input.NewTracker(sc.Viewport.Bounds())
	}
	if applier == nil {
		applier = ApplierFunc(func(string, transform.Descriptor) {})
	}
	e := &Engine{
		scene:   sc,
		tracker: tracker,
		applier: applier,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.watcher = input.NewVisibilityWatcher(sc.Viewport.Height, e.thresholds, e.visibility)
	return e, nil
}

func (e *Engine) Scene() *scene.Scene { return e.scene }

func (e *Engine) Tracker() *input.Tracker { return e.tracker }

func (e *Engine) Watcher() *input.VisibilityWatcher { return e.watcher }

// Mount registers sections with the visibility watcher, subscribes the
// tracker to sources and applies the initial frame.
func (e *Engine) Mount(sources ...input.Source) error {
	e.mu.Lock()
	if e.mounted {
		e.mu.Unlock()
		return Error.New("scene %q already mounted", e.scene.Name)
	}

	// Sections without geometry are observed as a point at the top of
	// the document.
	for _, sec := range e.scene.Sections {
		var region input.Region
		if sec.Region != nil {
			region = *sec.Region
		}
		e.watcher.Observe(sec.ID(), region)
	}
	e.cancel = e.tracker.Watch(e.render)
	e.mount = e.tracker.Mount(sources...)
	e.mounted = true

	e.log.Debug("mounted",
		zap.String("scene", e.scene.Name),
		zap.Int("elements", len(e.scene.Layers)+len(e.scene.Sections)),
		zap.Int("observed", e.watcher.Observed()),
		zap.Int("sources", len(sources)))
	e.mu.Unlock()

	e.render(e.tracker.Snapshot())
	return nil
}

// Close releases every subscription and observation. It is safe to call
// more than once and from inside an applier.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.mounted {
		return nil
	}
	e.cancel()
	err := e.mount.Close()
	e.watcher.Disconnect()
	e.mounted = false
	e.log.Debug("unmounted", zap.String("scene", e.scene.Name), zap.Int64("frames", e.frames.Load()))
	return err
}

func (e *Engine) Mounted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mounted
}

// Current computes a frame for the latest tracked inputs without applying it.
func (e *Engine) Current() scene.Frame {
	return e.scene.Frame(parallax.InputsFrom(e.tracker.Snapshot(), e.scene.Viewport))
}

// Frames counts applied frames.
func (e *Engine) Frames() int64 { return e.frames.Load() }

func (e *Engine) render(snap input.Snapshot) {
	e.watcher.Update(snap.Scroll)
	f := e.scene.Frame(parallax.InputsFrom(snap, e.scene.Viewport))
	for _, entry := range f.Entries {
		e.applier.Apply(entry.ID, entry.Descriptor)
	}
	e.frames.Add(1)
}
