// Package event provides a synchronous publish/subscribe bus for gameplay
// signals. Handlers run on the publishing goroutine and finish before Publish
// returns.
package event

import "sync"

// Type names an event topic.
type Type string

// Event is a published payload.
type Event struct {
	Type Type
	Data any
}

// Handler receives published events.
type Handler func(evt Event)

type subscriber struct {
	id      uint64
	handler Handler
}

// Bus fans out events to every subscriber of a topic in registration order.
// Publishing from inside a handler dispatches the nested event inline.
type Bus struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[Type][]subscriber
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Type][]subscriber)}
}

// Subscribe registers handler for typ. The returned subscription removes it.
func (b *Bus) Subscribe(typ Type, handler Handler) *Subscription {
	if b == nil || handler == nil {
		return &Subscription{}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs == nil {
		b.subs = make(map[Type][]subscriber)
	}
	b.nextID++
	id := b.nextID
	b.subs[typ] = append(b.subs[typ], subscriber{id: id, handler: handler})
	return &Subscription{bus: b, typ: typ, id: id}
}

// Publish delivers evt to the current subscribers of evt.Type. Subscriptions
// added or removed by a handler apply to later publishes.
func (b *Bus) Publish(evt Event) {
	if b == nil {
		return
	}
	b.mu.Lock()
	current := b.subs[evt.Type]
	snapshot := make([]subscriber, len(current))
	copy(snapshot, current)
	b.mu.Unlock()

	for _, s := range snapshot {
		s.handler(evt)
	}
}

// Emit is shorthand for Publish(Event{Type: typ, Data: data}).
func (b *Bus) Emit(typ Type, data any) {
	b.Publish(Event{Type: typ, Data: data})
}

// Count reports the number of handlers subscribed to typ.
func (b *Bus) Count(typ Type) int {
	if b == nil {
		return 0
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[typ])
}

func (b *Bus) remove(typ Type, id uint64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	list := b.subs[typ]
	for i, s := range list {
		if s.id != id {
			continue
		}
		next := make([]subscriber, 0, len(list)-1)
		next = append(next, list[:i]...)
		next = append(next, list[i+1:]...)
		if len(next) == 0 {
			delete(b.subs, typ)
		} else {
			b.subs[typ] = next
		}
		return true
	}
	return false
}

// Subscription is a single handler registration.
type Subscription struct {
	bus *Bus
	typ Type
	id  uint64
}

// Unsubscribe removes the handler. It is safe to call more than once.
func (s *Subscription) Unsubscribe() bool {
	if s == nil || s.bus == nil {
		return false
	}
	ok := s.bus.remove(s.typ, s.id)
	s.bus = nil
	return ok
}

// Scope owns the subscriptions of one listener so they can be dropped
// together when the listener is torn down.
type Scope struct {
	bus    *Bus
	subs   []*Subscription
	closed bool
}

// NewScope creates a scope bound to bus.
func NewScope(bus *Bus) *Scope {
	return &Scope{bus: bus}
}

// Bus returns the bus the scope subscribes on.
func (s *Scope) Bus() *Bus {
	if s == nil {
		return nil
	}
	return s.bus
}

// On subscribes handler for typ within the scope. It is a no-op once the
// scope is closed.
func (s *Scope) On(typ Type, handler Handler) {
	if s == nil || s.closed || s.bus == nil {
		return
	}
	s.subs = append(s.subs, s.bus.Subscribe(typ, handler))
}

// Close removes every subscription made through the scope.
func (s *Scope) Close() {
	if s == nil || s.closed {
		return
	}
	s.closed = true
	for _, sub := range s.subs {
		sub.Unsubscribe()
	}
	s.subs = nil
}

// Closed reports whether Close has run.
func (s *Scope) Closed() bool {
	return s == nil || s.closed
}
