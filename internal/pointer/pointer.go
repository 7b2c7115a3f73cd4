// Package pointer carries pointer position from a host surface to the
// particle field.
package pointer

import (
	"sync"

	"github.com/san-kum/constellate/internal/geom"
)

// State is the last known pointer position in surface-local coordinates.
// The zero value means the pointer is outside the surface.
type State struct {
	X, Y    float64
	Present bool
}

func At(x, y float64) State { return State{X: x, Y: y, Present: true} }

func (s State) Point() geom.Point { return geom.Point{X: s.X, Y: s.Y} }

type Kind int

const (
	Move Kind = iota
	Leave
)

type Event struct {
	Kind Kind
	X, Y float64
}

// Source delivers pointer events for a surface. The returned cancel func
// removes the observer and is safe to call more than once.
type Source interface {
	Subscribe(fn func(Event)) (cancel func())
}

// Hub is a minimal Source that hosts embed in their surfaces and feed from
// their own input loop. Observers run synchronously on the publishing
// goroutine. Subscribe, cancel and Publish may race; Track must stay on one
// goroutine.
type Hub struct {
	mu        sync.Mutex
	next      int
	observers map[int]func(Event)
	inside    bool
}

func (h *Hub) Subscribe(fn func(Event)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.observers == nil {
		h.observers = make(map[int]func(Event))
	}
	id := h.next
	h.next++
	h.observers[id] = fn
	return func() {
		h.mu.Lock()
		delete(h.observers, id)
		h.mu.Unlock()
	}
}

func (h *Hub) Observers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.observers)
}

// Publish calls every observer registered at the time of the call. It
// holds no lock while observers run.
func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	fns := make([]func(Event), 0, len(h.observers))
	for _, fn := range h.observers {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// Track publishes a Move while inside is true and a
// single Leave on the transition out. Hosts that only poll a cursor
// position use it to synthesize enter/leave.
func (h *Hub) Track(x, y float64, inside bool) {
	if inside {
		h.inside = true
		h.Publish(Event{Kind: Move, X: x, Y: y})
		return
	}
	if h.inside {
		h.inside = false
		h.Publish(Event{Kind: Leave})
	}
}
