package input

import "sync"

type EventKind int

const (
	ScrollEvent EventKind = iota
	PointerEvent
)

func (k EventKind) String() string {
	switch k {
	case ScrollEvent:
		return "scroll"
	case PointerEvent:
		return "pointermove"
	default:
		return "unknown"
	}
}

// Event is one native input event. Scroll events carry Y only.
type Event struct {
	Kind EventKind
	X, Y float64
}

// Handler receives events. Handlers must return promptly and never block
// the source.
type Handler func(Event)

// Source delivers events to subscribed handlers. The returned function
// removes the subscription and must be safe to call more than once.
type Source interface {
	Subscribe(h Handler) (unsubscribe func())
}

type subscriber struct {
	id int
	h  Handler
}

// Emitter is an in-process Source. Events are delivered synchronously, in
// emission order, to handlers in subscription order.
type Emitter struct {
	mu     sync.Mutex
	subs   []subscriber
	nextID int
}

func NewEmitter() *Emitter {
	return &Emitter{}
}

func (e *Emitter) Subscribe(h Handler) func() {
	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.subs = append(e.subs, subscriber{id: id, h: h})
	e.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Lock()
			defer e.mu.Unlock()
			for i, s := range e.subs {
				if s.id == id {
					e.subs = append(e.subs[:i:i], e.subs[i+1:]...)
					return
				}
			}
		})
	}
}

func (e *Emitter) Emit(ev Event) {
	e.mu.Lock()
	subs := make([]subscriber, len(e.subs))
	copy(subs, e.subs)
	e.mu.Unlock()

	for _, s := range subs {
		s.h(ev)
	}
}

func (e *Emitter) EmitScroll(y float64) { e.Emit(Event{Kind: ScrollEvent, Y: y}) }

func (e *Emitter) EmitPointer(x, y float64) { e.Emit(Event{Kind: PointerEvent, X: x, Y: y}) }

// Listeners reports the number of live subscriptions.
func (e *Emitter) Listeners() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.subs)
}
