// Package events is a small synchronous publish/subscribe bus with typed topics.
//
// Listeners are called in registration order on the publisher's goroutine.
// Publishing iterates over a snapshot of the listener list, so listeners may
// subscribe or unsubscribe from inside a callback.
package events

import "fmt"

// key identifies a listener list. Scoped topics carry the node id as a
// separate field rather than folding it into the name.
type key struct {
	name   string
	id     int
	scoped bool
}

// Topic is a named event carrying a payload of type T.
type Topic[T any] struct {
	k key
}

// NewTopic returns an unscoped topic.
func NewTopic[T any](name string) Topic[T] {
	return Topic[T]{k: key{name: name}}
}

// Name returns the topic name without any scope.
func (t Topic[T]) Name() string {
	return t.k.name
}

func (t Topic[T]) String() string {
	if t.k.scoped {
		return fmt.Sprintf("%s:%d", t.k.name, t.k.id)
	}
	return t.k.name
}

// ScopedTopic is a family of topics parameterized by node id.
type ScopedTopic[T any] struct {
	name string
}

func NewScopedTopic[T any](name string) ScopedTopic[T] {
	return ScopedTopic[T]{name: name}
}

// For returns the member of the family for one node.
func (s ScopedTopic[T]) For(id int) Topic[T] {
	return Topic[T]{k: key{name: s.name, id: id, scoped: true}}
}

type listener struct {
	fn      func(any)
	removed bool
}

// Bus holds listeners for any number of topics. The zero value is ready to use.
// A Bus is not safe for concurrent use.
type Bus struct {
	listeners map[key][]*listener
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn on topic and returns a function that removes it.
// The returned function may be called more than once.
func Subscribe[T any](b *Bus, topic Topic[T], fn func(T)) (unsubscribe func()) {
	if b.listeners == nil {
		b.listeners = make(map[key][]*listener)
	}
	l := &listener{fn: func(v any) { fn(v.(T)) }}
	b.listeners[topic.k] = append(b.listeners[topic.k], l)

	return func() {
		if l.removed {
			return
		}
		l.removed = true
		b.remove(topic.k, l)
	}
}

// Publish calls every listener of topic with payload.
func Publish[T any](b *Bus, topic Topic[T], payload T) {
	current := b.listeners[topic.k]
	if len(current) == 0 {
		return
	}
	snapshot := make([]*listener, len(current))
	copy(snapshot, current)
	for _, l := range snapshot {
		if l.removed {
			continue
		}
		l.fn(payload)
	}
}

// ListenerCount reports how many listeners are registered on topic.
func ListenerCount[T any](b *Bus, topic Topic[T]) int {
	return len(b.listeners[topic.k])
}

func (b *Bus) remove(k key, target *listener) {
	current := b.listeners[k]
	kept := make([]*listener, 0, len(current))
	for _, l := range current {
		if l != target {
			kept = append(kept, l)
		}
	}
	if len(kept) == 0 {
		delete(b.listeners, k)
		return
	}
	b.listeners[k] = kept
}
