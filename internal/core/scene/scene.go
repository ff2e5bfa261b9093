// Package scene is the registry every node of a running level belongs to.
//
// Nodes are referenced by generation-checked handles. A node is constructed by
// Add and becomes ready on the next Activate, at which point its Ready hook
// provides capability tables. Every dispatch activates pending nodes first, so
// a node added mid-frame is ready before any later dispatch reaches it.
package scene

import (
	"fmt"
	"iter"
	"reflect"

	"github.com/zeusync/arena/internal/core/events/bus"
	"github.com/zeusync/arena/internal/core/observability/log"
	"github.com/zeusync/arena/internal/core/render"
)

// Lifecycle event types published when a bus is configured. Event data is the
// node Handle.
const (
	EventNodeAdded   = "scene.node.added"
	EventNodeReady   = "scene.node.ready"
	EventNodeRemoved = "scene.node.removed"
)

type slot struct {
	gen   uint32
	node  any
	state State
	caps  map[reflect.Type]any
}

// Scene is not safe for concurrent use; it is driven from the frame loop.
type Scene struct {
	// slots[0] is reserved so that the zero Handle never resolves.
	slots      []slot
	free       []uint32
	pending    []Handle
	live       int
	activating bool

	bus    bus.EventBus
	logger log.Log
}

type Option func(*Scene)

// WithBus publishes lifecycle events on b.
func WithBus(b bus.EventBus) Option {
	return func(s *Scene) { s.bus = b }
}

func WithLogger(l log.Log) Option {
	return func(s *Scene) { s.logger = l }
}

func New(opts ...Option) *Scene {
	s := &Scene{slots: make([]slot, 1, 64)}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.NewNop()
	}
	return s
}

// Len returns the number of live nodes.
func (s *Scene) Len() int { return s.live }

// Add registers node in the constructed state and returns its handle.
func (s *Scene) Add(node any) Handle {
	if node == nil {
		panic("scene: Add(nil)")
	}
	var idx uint32
	if n := len(s.free); n > 0 {
		idx = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.slots = append(s.slots, slot{gen: 1})
		idx = uint32(len(s.slots) - 1)
	}
	sl := &s.slots[idx]
	sl.node = node
	sl.state = StateConstructed
	h := Handle{idx: idx, gen: sl.gen}

	s.pending = append(s.pending, h)
	s.live++
	s.logger.Debug("node added", log.String("handle", h.String()), log.String("kind", fmt.Sprintf("%T", node)))
	s.publish(EventNodeAdded, h)
	return h
}

func (s *Scene) lookup(h Handle) (*slot, bool) {
	if h.idx == 0 || int(h.idx) >= len(s.slots) {
		return nil, false
	}
	sl := &s.slots[h.idx]
	if sl.gen != h.gen || sl.state == StateInvalid {
		return nil, false
	}
	return sl, true
}

// Alive reports whether h refers to a node that has not been removed.
func (s *Scene) Alive(h Handle) bool {
	_, ok := s.lookup(h)
	return ok
}

// State returns the lifecycle state of h, StateInvalid for dead handles.
func (s *Scene) State(h Handle) State {
	sl, ok := s.lookup(h)
	if !ok {
		return StateInvalid
	}
	return sl.state
}

// Remove removes the node behind h and drops its capabilities. It reports
// whether a live node was removed; removing twice returns false.
func (s *Scene) Remove(h Handle) bool {
	sl, ok := s.lookup(h)
	if !ok {
		return false
	}
	node := sl.node
	sl.node = nil
	sl.caps = nil
	sl.state = StateInvalid
	sl.gen++
	if sl.gen == 0 {
		sl.gen = 1
	}
	s.free = append(s.free, h.idx)
	s.live--

	if r, ok := node.(Remover); ok {
		r.Removed()
	}
	s.logger.Debug("node removed", log.String("handle", h.String()))
	s.publish(EventNodeRemoved, h)
	return true
}

// Activate moves every pending node to the ready state, calling Ready hooks in
// insertion order. Nodes added by a Ready hook are activated in the same call.
func (s *Scene) Activate() {
	if s.activating {
		return
	}
	s.activating = true
	defer func() { s.activating = false }()

	for len(s.pending) > 0 {
		h := s.pending[0]
		s.pending = s.pending[1:]

		sl, ok := s.lookup(h)
		if !ok || sl.state != StateConstructed {
			continue
		}
		sl.state = StateReady
		if r, ok := sl.node.(Readier); ok {
			r.Ready(s, h)
		}
		s.logger.Debug("node ready", log.String("handle", h.String()))
		s.publish(EventNodeReady, h)
	}
	s.pending = nil
}

// Update activates pending nodes, then calls Update on every ready Updater.
func (s *Scene) Update() {
	s.Activate()
	for h, node := range s.ready() {
		if u, ok := node.(Updater); ok {
			u.Update(s, h)
		}
	}
}

// Draw activates pending nodes, then calls Draw on every ready Drawer.
func (s *Scene) Draw(ctx render.Context) {
	s.Activate()
	for _, node := range s.ready() {
		if d, ok := node.(Drawer); ok {
			d.Draw(ctx)
		}
	}
}

// Handles yields the handles of all live nodes in slot order.
func (s *Scene) Handles() iter.Seq[Handle] {
	return func(yield func(Handle) bool) {
		for i := 1; i < len(s.slots); i++ {
			sl := &s.slots[i]
			if sl.state == StateInvalid {
				continue
			}
			if !yield(Handle{idx: uint32(i), gen: sl.gen}) {
				return
			}
		}
	}
}

// ready yields ready nodes in slot order. The slot is re-checked at every step,
// so nodes removed by an earlier callback are skipped.
func (s *Scene) ready() iter.Seq2[Handle, any] {
	return func(yield func(Handle, any) bool) {
		for i := 1; i < len(s.slots); i++ {
			sl := &s.slots[i]
			if sl.state != StateReady {
				continue
			}
			if !yield(Handle{idx: uint32(i), gen: sl.gen}, sl.node) {
				return
			}
		}
	}
}

func (s *Scene) publish(typ string, h Handle) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(bus.NewEvent(typ, "scene", h)); err != nil {
		s.logger.Warn("lifecycle subscriber failed", log.String("event", typ), log.Error(err))
	}
}
