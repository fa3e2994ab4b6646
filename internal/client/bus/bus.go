// Package bus implements a minimal in-process publish/subscribe mechanism.
//
// It decouples the transport layer's failure detection from the session
// manager's reaction: the transport has no reference to the manager, it only
// publishes a named event. The bus is a constructed dependency, never a
// package-level singleton, so tests can substitute their own instance.
package bus

import "sync"

// Handler receives the payload published with an event.
type Handler func(payload any)

type subscription struct {
	id      uint64
	handler Handler
}

// Bus delivers events synchronously to handlers in registration order.
// There is no persistence and no replay: handlers registered after an event
// fired do not receive it. Safe for concurrent use.
type Bus struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[string][]subscription
}

func New() *Bus {
	return &Bus{subs: make(map[string][]subscription)}
}

// On registers handler for the named event and returns a function that
// removes exactly this registration. Calling the returned function more than
// once is harmless.
func (b *Bus) On(event string, handler Handler) (off func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs[event] = append(b.subs[event], subscription{id: id, handler: handler})

	return func() { b.off(event, id) }
}

func (b *Bus) off(event string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[event]
	for i, s := range subs {
		if s.id == id {
			b.subs[event] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Emit delivers payload to all handlers currently registered for event, in
// registration order, on the caller's goroutine. Handlers are snapshotted
// before delivery, so a handler may unsubscribe itself or others without
// deadlocking the bus.
func (b *Bus) Emit(event string, payload any) {
	b.mu.Lock()
	subs := make([]subscription, len(b.subs[event]))
	copy(subs, b.subs[event])
	b.mu.Unlock()

	for _, s := range subs {
		s.handler(payload)
	}
}
