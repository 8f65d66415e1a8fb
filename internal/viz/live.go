package viz

import (
	"fmt"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"go.uber.org/zap"

	"github.com/san-kum/parallax/internal/engine"
	"github.com/san-kum/parallax/internal/input"
	"github.com/san-kum/parallax/internal/scene"
	"github.com/san-kum/parallax/internal/transform"
)

const (
	width           = 60
	height          = 22
	historyCapacity = 240
	// layerHalf is the half-size, in CSS pixels, of the marker drawn per layer.
	layerHalf = 48.0
)

type TickMsg time.Time

// display is the preview's applier. The engine writes descriptors and
// visibility ratios into it; View reads them.
type display struct {
	mu          sync.Mutex
	descriptors map[string]transform.Descriptor
	ratios      map[string]float64
}

func newDisplay() *display {
	return &display{
		descriptors: make(map[string]transform.Descriptor),
		ratios:      make(map[string]float64),
	}
}

func (d *display) Apply(id string, desc transform.Descriptor) {
	d.mu.Lock()
	d.descriptors[id] = desc
	d.mu.Unlock()
}

func (d *display) onVisibility(entries []input.VisibilityEntry) {
	d.mu.Lock()
	for _, e := range entries {
		d.ratios[e.ID] = e.Ratio
	}
	d.mu.Unlock()
}

func (d *display) descriptor(id string) transform.Descriptor {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.descriptors[id]
}

func (d *display) ratio(id string) (float64, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	r, ok := d.ratios[id]
	return r, ok
}

// Options configures the preview.
type Options struct {
	Theme      string
	FPS        int
	ScrollStep float64
	Logger     *zap.Logger
}

// Model drives an engine from terminal input and renders what it applies.
type Model struct {
	scene    *scene.Scene
	engine   *engine.Engine
	emitter  *input.Emitter
	display  *display
	theme    Theme
	palette  []lipgloss.Color
	canvas   *Canvas
	fps      int
	step     float64
	easers   map[string]*easer
	ids      []string
	selected int
	term     int
	history  []float64
	termW    int
	termH    int
	showHelp bool
}

// NewModel builds an engine for sc and mounts it on an in-process emitter.
// Call Close when the program exits.
func NewModel(sc *scene.Scene, opts Options) (Model, error) {
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if opts.ScrollStep <= 0 {
		opts.ScrollStep = 40
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	disp := newDisplay()
	eng, err := engine.New(sc, nil, disp,
		engine.WithLogger(opts.Logger),
		engine.WithVisibility(disp.onVisibility))
	if err != nil {
		return Model{}, err
	}
	em := input.NewEmitter()
	if err := eng.Mount(em); err != nil {
		return Model{}, err
	}

	easers := make(map[string]*easer)
	for _, l := range sc.Layers {
		if l.IsPointer() {
			easers[l.ID()] = newEaser(opts.FPS, l.TransitionMS)
		}
	}

	theme := GetTheme(opts.Theme)
	ids := sc.IDs()
	return Model{
		scene:   sc,
		engine:  eng,
		emitter: em,
		display: disp,
		theme:   theme,
		palette: theme.Palette(len(ids)),
		canvas:  NewCanvas(width, height),
		fps:     opts.FPS,
		step:    opts.ScrollStep,
		easers:  easers,
		ids:     ids,
		history: make([]float64, 0, historyCapacity),
		termW:   width + 60,
		termH:   height + 4,
	}, nil
}

func (m Model) Close() error { return m.engine.Close() }

func (m Model) Engine() *engine.Engine { return m.engine }

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

// Update routes keys and mouse motion into the emitter and advances the
// display springs on every tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "j", "down":
			m.scrollBy(m.step)
		case "k", "up":
			m.scrollBy(-m.step)
		case "pgdown", " ":
			m.scrollBy(m.scene.Viewport.Height)
		case "pgup":
			m.scrollBy(-m.scene.Viewport.Height)
		case "g", "home":
			m.scrollTo(0)
		case "G", "end":
			m.scrollTo(m.bottom())
		case "tab":
			if len(m.ids) > 0 {
				m.selected = (m.selected + 1) % len(m.ids)
				m.history = m.history[:0]
			}
		case "[":
			m.cycleTerm(-1)
		case "]":
			m.cycleTerm(1)
		case "t":
			m.theme = NextTheme(m.theme.Name)
			m.palette = m.theme.Palette(len(m.ids))
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.MouseMsg:
		switch {
		case msg.Action == tea.MouseActionMotion:
			x, y := m.toViewport(msg.X, msg.Y)
			m.emitter.EmitPointer(x, y)
		case msg.Button == tea.MouseButtonWheelDown:
			m.scrollBy(m.step)
		case msg.Button == tea.MouseButtonWheelUp:
			m.scrollBy(-m.step)
		}
	case tea.WindowSizeMsg:
		m.termW, m.termH = msg.Width, msg.Height
	case TickMsg:
		m.ease()
		m.record()
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) scrollBy(dy float64) { m.scrollTo(m.engine.Tracker().Scroll() + dy) }

func (m *Model) scrollTo(y float64) { m.emitter.EmitScroll(y) }

func (m *Model) bottom() float64 {
	if limit := m.scene.Viewport.Bounds().MaxScroll(); limit >= 0 {
		return limit
	}
	return m.engine.Tracker().Scroll() + 10*m.scene.Viewport.Height
}

// toViewport scales a terminal cell to CSS pixels.
func (m *Model) toViewport(col, row int) (float64, float64) {
	w, h := max(m.termW, 1), max(m.termH, 1)
	return float64(col) / float64(w) * m.scene.Viewport.Width,
		float64(row) / float64(h) * m.scene.Viewport.Height
}

func (m *Model) cycleTerm(dir int) {
	n := len(transform.Terms())
	m.term = ((m.term+dir)%n + n) % n
	m.history = m.history[:0]
}

func (m *Model) selectedID() string {
	if len(m.ids) == 0 {
		return ""
	}
	return m.ids[m.selected]
}

func (m *Model) selectedTerm() transform.Term { return transform.Terms()[m.term] }

func (m *Model) ease() {
	for id, e := range m.easers {
		d := m.display.descriptor(id)
		e.Step(d.TranslateX, d.TranslateY)
	}
}

func (m *Model) record() {
	id := m.selectedID()
	if id == "" {
		return
	}
	m.history = append(m.history, m.display.descriptor(id).Value(m.selectedTerm()))
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

// drawn returns what the canvas shows for an element: the applied
// descriptor, with pointer layers replaced by their eased translation.
func (m *Model) drawn(id string) transform.Descriptor {
	d := m.display.descriptor(id)
	if e, ok := m.easers[id]; ok && d.Includes(transform.TranslateX|transform.TranslateY) {
		x, y := e.Position()
		d = d.WithTranslate(x, y)
	}
	return d
}

// shape maps local corners through d around a centre in viewport space
// and onto the canvas.
func (m *Model) shape(cx, cy float64, corners [][2]float64, d transform.Descriptor) [][2]int {
	cw, ch := m.canvas.PixelSize()
	sx := float64(cw) / m.scene.Viewport.Width
	sy := float64(ch) / m.scene.Viewport.Height

	pts := make([][2]int, len(corners))
	for i, c := range corners {
		x, y := d.Apply(c[0], c[1])
		pts[i] = [2]int{int((cx + x) * sx), int((cy + y) * sy)}
	}
	return pts
}

func rect(hw, hh float64) [][2]float64 {
	return [][2]float64{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
}

func (m *Model) draw() {
	m.canvas.Clear()
	vp := m.scene.Viewport
	scroll := m.engine.Tracker().Scroll()

	n := len(m.scene.Layers)
	for i, l := range m.scene.Layers {
		cx := float64(i+1) / float64(n+1) * vp.Width
		cy := vp.Height * (0.25 + 0.5*float64(i%3)/2)
		m.canvas.DrawPolygon(m.shape(cx, cy, rect(layerHalf, layerHalf), m.drawn(l.ID())))
	}

	for _, s := range m.scene.Sections {
		if s.Region == nil {
			continue
		}
		cy := s.Region.Top + s.Region.Height/2 - scroll
		m.canvas.DrawPolygon(m.shape(vp.Width/2, cy, rect(vp.Width*0.35, s.Region.Height/2), m.drawn(s.ID())))
	}
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(lipgloss.NewStyle().Foreground(m.theme.Secondary).Render(m.canvas.String()))

	snap := m.engine.Tracker().Snapshot()
	var s strings.Builder
	s.WriteString(GradientText(strings.ToUpper(m.scene.Name), m.theme.Primary, m.theme.Secondary) + "\n\n")
	s.WriteString(labelStyle.Render("Scroll") + valueStyle.Render(fmt.Sprintf("%.0fpx", snap.Scroll)) + "\n")
	s.WriteString(labelStyle.Render("Pointer") + valueStyle.Render(snap.Pointer.String()) + "\n")
	s.WriteString(labelStyle.Render("Frames") + valueStyle.Render(fmt.Sprintf("%d", m.engine.Frames())) + "\n")
	s.WriteString(labelStyle.Render("Theme") + valueStyle.Render(m.theme.Name) + "\n\n")

	for i, id := range m.ids {
		marker := "  "
		style := lipgloss.NewStyle().Foreground(m.palette[i])
		if i == m.selected {
			marker = "> "
			style = style.Bold(true)
		}
		line := marker + style.Render(fmt.Sprintf("%-16s", truncate(id, 16)))
		if r, ok := m.display.ratio(id); ok {
			line += " " + RatioBar(r, 6)
		}
		css := m.display.descriptor(id).CSS()
		if css == "" {
			css = "none"
		}
		line += " " + valueStyle.Render(truncate(css, 28))
		s.WriteString(line + "\n")
	}

	if len(m.history) > 1 {
		caption := fmt.Sprintf("%s.%s", m.selectedID(), m.selectedTerm())
		chart := asciigraph.Plot(m.history, asciigraph.Height(5), asciigraph.Width(40), asciigraph.Caption(caption))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(Separator(40, m.theme.Muted) + "\n")
	s.WriteString(helpStyle.Render("j/k:Scroll PgUp/PgDn:Page g/G:Ends\nTab:Element [ ]:Term T:Theme ?:Help Q:Quit"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panelStyle.Render(s.String()))
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  j/k ↑/↓  - Scroll one step          ║
║  PgDn/PgUp- Scroll one viewport      ║
║  g/G      - Jump to top/bottom       ║
║  Mouse    - Move the pointer         ║
║  Tab      - Select next element      ║
║  [ ]      - Cycle plotted term       ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// Run starts the preview on the alternate screen with mouse motion
// reporting and closes the engine on exit.
func Run(sc *scene.Scene, opts Options) (err error) {
	m, err := NewModel(sc, opts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := m.Close(); err == nil {
			err = cerr
		}
	}()

	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
