package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/san-kum/parallax/internal/input"
	"github.com/san-kum/parallax/internal/parallax"
	"github.com/san-kum/parallax/internal/scene"
	"github.com/san-kum/parallax/internal/transform"
)

func TestMountAppliesInitialFrame(t *testing.T) {
	sc := scene.Resume()
	styles := NewStyleMap()
	e, err := New(sc, nil, styles, WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)

	em := input.NewEmitter()
	require.NoError(t, e.Mount(em))
	defer func() { require.NoError(t, e.Close()) }()

	require.Equal(t, int64(1), e.Frames())
	require.Equal(t, len(sc.Layers)+len(sc.Sections), styles.Applied())
	require.Equal(t, "translate(0px, 0px) scale(1)", styles.Style("glow-blue"))
	require.Empty(t, styles.Style("orb-blue"))
}

func TestEveryEventRecomputes(t *testing.T) {
	sc := scene.Resume()
	styles := NewStyleMap()
	e, err := New(sc, nil, styles)
	require.NoError(t, err)

	em := input.NewEmitter()
	require.NoError(t, e.Mount(em))
	defer e.Close()

	em.EmitScroll(1000)
	em.EmitScroll(1000)
	em.EmitPointer(720, 450)

	require.Equal(t, int64(4), e.Frames())
	require.Equal(t, "translate(0px, 0px)", styles.Style("orb-blue"))
	require.Equal(t, "translateY(400px)", styles.Style("hero"))

	cur := e.Current()
	d, ok := cur.Lookup("glow-purple")
	require.True(t, ok)
	require.InDelta(t, 50, d.Rotate, 1e-9)
}

func TestCloseReleasesEverything(t *testing.T) {
	sc := scene.Resume()
	e, err := New(sc, nil, nil)
	require.NoError(t, err)

	scroll, pointer := input.NewEmitter(), input.NewEmitter()
	require.NoError(t, e.Mount(scroll, pointer))
	require.True(t, e.Mounted())
	require.Greater(t, e.Watcher().Observed(), 0)

	require.NoError(t, e.Close())
	require.NoError(t, e.Close())
	require.False(t, e.Mounted())
	require.Zero(t, scroll.Listeners())
	require.Zero(t, pointer.Listeners())
	require.Zero(t, e.Watcher().Observed())

	frames := e.Frames()
	scroll.EmitScroll(500)
	require.Equal(t, frames, e.Frames())
}

func TestDoubleMount(t *testing.T) {
	e, err := New(scene.Minimal(), nil, nil)
	require.NoError(t, err)
	require.NoError(t, e.Mount())
	err = e.Mount()
	require.Error(t, err)
	require.True(t, Error.Has(err))
	require.NoError(t, e.Close())
	require.NoError(t, e.Mount())
	require.NoError(t, e.Close())
}

func TestCloseFromApplier(t *testing.T) {
	sc := scene.Minimal()
	em := input.NewEmitter()

	var e *Engine
	var applied int
	applier := ApplierFunc(func(id string, d transform.Descriptor) {
		applied++
		if d.Value(transform.TranslateY) < 0 {
			require.NoError(t, e.Close())
		}
	})
	var err error
	e, err = New(sc, nil, applier)
	require.NoError(t, err)
	require.NoError(t, e.Mount(em))

	em.EmitScroll(2000)
	require.False(t, e.Mounted())
	require.Zero(t, em.Listeners())

	before := applied
	em.EmitScroll(3000)
	require.Equal(t, before, applied)
}

func TestVisibilityHook(t *testing.T) {
	var entries []input.VisibilityEntry
	e, err := New(scene.Minimal(), nil, nil, WithVisibility(func(es []input.VisibilityEntry) {
		entries = append(entries, es...)
	}))
	require.NoError(t, err)

	em := input.NewEmitter()
	require.NoError(t, e.Mount(em))
	defer e.Close()

	require.Len(t, entries, 1)
	require.Equal(t, "content", entries[0].ID)
	require.False(t, entries[0].Intersecting)

	em.EmitScroll(400)
	require.Len(t, entries, 2)
	require.True(t, entries[1].Intersecting)
}

func TestMountObservesEverySection(t *testing.T) {
	sc := &scene.Scene{
		Name:     "plain",
		Viewport: parallax.Viewport{Width: 800, Height: 600},
		Sections: []parallax.SectionSpec{
			{Name: "intro", Threshold: 100, Speed: -0.1},
			{Name: "outro", Threshold: 900, Speed: 0.2},
		},
	}
	var seen []string
	e, err := New(sc, nil, nil, WithVisibility(func(es []input.VisibilityEntry) {
		for _, en := range es {
			seen = append(seen, en.ID)
		}
	}))
	require.NoError(t, err)

	require.NoError(t, e.Mount(input.NewEmitter()))
	defer e.Close()

	require.Equal(t, len(sc.Sections), e.Watcher().Observed())
	require.Equal(t, []string{"intro", "outro"}, seen)

	require.NoError(t, e.Close())
	require.Zero(t, e.Watcher().Observed())
}

func TestNewRejectsInvalidScene(t *testing.T) {
	sc := scene.Minimal()
	sc.Viewport.Width = 0
	_, err := New(sc, nil, nil)
	require.Error(t, err)

	_, err = New(nil, nil, nil)
	require.Error(t, err)
}
