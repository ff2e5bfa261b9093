package bus

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrNilHandler = errors.New("bus: nil handler")

// NewEvent stamps an Event with the current time.
func NewEvent(typ, src string, data any) Event {
	return Event{Type: typ, Source: src, Timestamp: time.Now(), Data: data}
}

// Subscription is a registered handler. Cancel it to stop receiving events.
type Subscription struct {
	id        string
	eventType string
	handler   EventHandler
	bus       *inMemoryBus
}

func (s *Subscription) ID() string        { return s.id }
func (s *Subscription) EventType() string { return s.eventType }

// Cancel de-registers the handler. Multiple calls are safe.
func (s *Subscription) Cancel() {
	if s != nil && s.bus != nil {
		s.bus.Unsubscribe(s)
	}
}

type inMemoryBus struct {
	mu sync.RWMutex
	// eventType -> subscriptions in subscription order
	handlers map[string][]*Subscription
	metrics  Metrics
}

// New creates an empty EventBus.
func New() EventBus {
	return &inMemoryBus{handlers: make(map[string][]*Subscription)}
}

func (b *inMemoryBus) Subscribe(eventType string, handler EventHandler) (*Subscription, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	if eventType == "" {
		return nil, fmt.Errorf("bus: empty event type")
	}
	s := &Subscription{id: uuid.NewString(), eventType: eventType, handler: handler, bus: b}

	b.mu.Lock()
	b.handlers[eventType] = append(b.handlers[eventType], s)
	b.metrics.Subscribers++
	b.mu.Unlock()
	return s, nil
}

func (b *inMemoryBus) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.handlers[sub.eventType]
	for i, s := range subs {
		if s.id != sub.id {
			continue
		}
		b.handlers[sub.eventType] = append(subs[:i:i], subs[i+1:]...)
		b.metrics.Subscribers--
		break
	}
	if len(b.handlers[sub.eventType]) == 0 {
		delete(b.handlers, sub.eventType)
	}
}

func (b *inMemoryBus) Publish(event Event) error {
	b.mu.RLock()
	subs := make([]*Subscription, 0, len(b.handlers[event.Type])+len(b.handlers[Wildcard]))
	subs = append(subs, b.handlers[event.Type]...)
	if event.Type != Wildcard {
		subs = append(subs, b.handlers[Wildcard]...)
	}
	b.mu.RUnlock()

	var all error
	for _, s := range subs {
		if err := s.handler(event); err != nil {
			all = errors.Join(all, fmt.Errorf("%s: %w", event.Type, err))
		}
	}

	b.mu.Lock()
	b.metrics.Published++
	b.metrics.Delivered += uint64(len(subs))
	if all != nil {
		b.metrics.Errors++
	}
	b.mu.Unlock()
	return all
}

func (b *inMemoryBus) Metrics() Metrics {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.metrics
}
