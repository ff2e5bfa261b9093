package scene

import "fmt"

// Handle is an opaque reference to a node in a Scene. Handles of removed nodes
// never resolve again, even when their slot is reused. The zero Handle is never
// issued.
type Handle struct {
	idx uint32
	gen uint32
}

func (h Handle) IsZero() bool { return h == Handle{} }

func (h Handle) String() string {
	if h.IsZero() {
		return "handle(nil)"
	}
	return fmt.Sprintf("handle(%d:%d)", h.idx, h.gen)
}

// Uint64 packs the handle into an integer suitable for logs and diagnostics.
func (h Handle) Uint64() uint64 { return uint64(h.gen)<<32 | uint64(h.idx) }

// State is a node's lifecycle state.
type State uint8

const (
	StateInvalid State = iota
	StateConstructed
	StateReady
)

func (s State) String() string {
	switch s {
	case StateConstructed:
		return "constructed"
	case StateReady:
		return "ready"
	default:
		return "invalid"
	}
}
