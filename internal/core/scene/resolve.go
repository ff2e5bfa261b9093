package scene

import (
	"fmt"
	"iter"
	"reflect"
)

// Get resolves h to a node of kind T. It fails with ErrInvalidHandle when h is
// stale or the node is not a T.
func Get[T any](s *Scene, h Handle) (T, error) {
	var zero T
	sl, ok := s.lookup(h)
	if !ok {
		return zero, fmt.Errorf("%w: %s is not alive", ErrInvalidHandle, h)
	}
	node, ok := sl.node.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s holds %T, not %s", ErrInvalidHandle, h, sl.node, reflect.TypeFor[T]())
	}
	return node, nil
}

// MustGet is Get for callers holding a handle they know to be valid. A failure
// is a programming error and panics.
func MustGet[T any](s *Scene, h Handle) T {
	node, err := Get[T](s, h)
	if err != nil {
		panic(err)
	}
	return node
}

// Provide associates the capability table of type C with h, replacing any
// previous table of the same type. It panics when h is not alive.
func Provide[C any](s *Scene, h Handle, table C) {
	sl, ok := s.lookup(h)
	if !ok {
		panic(fmt.Errorf("%w: provide %s to %s", ErrInvalidHandle, reflect.TypeFor[C](), h))
	}
	if sl.caps == nil {
		sl.caps = make(map[reflect.Type]any, 2)
	}
	sl.caps[reflect.TypeFor[C]()] = table
}

// Lookup returns the table of type C provided for h.
func Lookup[C any](s *Scene, h Handle) (C, bool) {
	var zero C
	sl, ok := s.lookup(h)
	if !ok {
		return zero, false
	}
	table, ok := sl.caps[reflect.TypeFor[C]()].(C)
	if !ok {
		return zero, false
	}
	return table, true
}

// Capable activates pending nodes and yields every ready node providing a C
// table, in slot order. Nodes removed during iteration are skipped.
func Capable[C any](s *Scene) iter.Seq2[Handle, C] {
	key := reflect.TypeFor[C]()
	return func(yield func(Handle, C) bool) {
		s.Activate()
		for i := 1; i < len(s.slots); i++ {
			sl := &s.slots[i]
			if sl.state != StateReady {
				continue
			}
			table, ok := sl.caps[key].(C)
			if !ok {
				continue
			}
			if !yield(Handle{idx: uint32(i), gen: sl.gen}, table) {
				return
			}
		}
	}
}
