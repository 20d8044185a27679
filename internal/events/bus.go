package events

import "encoding/json"

// Handler receives the raw payload of one published message.
type Handler func(payload json.RawMessage)

// Bus fans inbound messages out to subscribers by message kind. It is not
// goroutine-safe: both publishing and (un)subscribing happen on the game
// loop's goroutine.
type Bus struct {
	subs   map[string][]*Subscription
	nextID uint64
}

// Subscription is the handle returned by Subscribe; cancelling it removes
// exactly that handler.
type Subscription struct {
	bus     *Bus
	kind    string
	id      uint64
	handler Handler
}

func NewBus() *Bus {
	return &Bus{subs: make(map[string][]*Subscription)}
}

// Subscribe registers handler for every future publish of kind. The same
// function may be subscribed more than once; each call gets its own handle.
func (b *Bus) Subscribe(kind string, handler Handler) *Subscription {
	b.nextID++
	sub := &Subscription{bus: b, kind: kind, id: b.nextID, handler: handler}
	b.subs[kind] = append(b.subs[kind], sub)
	return sub
}

// Cancel removes the subscription from its bus. Cancelling twice, or
// cancelling a nil subscription, is a no-op.
func (s *Subscription) Cancel() {
	if s == nil || s.bus == nil {
		return
	}
	list := s.bus.subs[s.kind]
	for i, sub := range list {
		if sub.id == s.id {
			s.bus.subs[s.kind] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	s.bus = nil
}

// Publish invokes every handler subscribed to kind, synchronously and in
// subscription order. A kind with no subscribers is a no-op. Handler
// panics are not recovered; a throwing handler is a bug to surface.
func (b *Bus) Publish(kind string, payload json.RawMessage) {
	// Snapshot the list so handlers may subscribe or cancel mid-publish
	// without skipping or double-running anyone in this round.
	list := b.subs[kind]
	for _, sub := range list {
		if sub.bus != nil {
			sub.handler(payload)
		}
	}
}
