package bus

import "time"

// EventBus is an in-process, synchronous pub/sub bus.
//
// Handlers subscribe by event type. Publish calls every matching handler in the
// caller goroutine, in subscription order, and joins their errors. Subscribing
// to Wildcard receives every event. All methods are safe for concurrent use.
type EventBus interface {
	// Publish delivers event to the subscribers of event.Type and to wildcard
	// subscribers.
	Publish(event Event) error
	// Subscribe registers handler for eventType.
	Subscribe(eventType string, handler EventHandler) (*Subscription, error)
	// Unsubscribe cancels sub. A nil or already cancelled subscription is a no-op.
	Unsubscribe(sub *Subscription)
	// Metrics returns a snapshot of the delivery counters.
	Metrics() Metrics
}

// Wildcard subscribes to every event type.
const Wildcard = "*"

// Event is an immutable message transported by the bus.
type Event struct {
	Type      string
	Source    string
	Timestamp time.Time
	Data      any
}

// EventHandler is invoked per delivered event. Returned errors are joined into
// the Publish result.
type EventHandler func(event Event) error

type Metrics struct {
	Published   uint64
	Delivered   uint64
	Errors      uint64
	Subscribers int
}
