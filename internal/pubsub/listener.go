package pubsub

import "context"

// Listener wraps a broker subscription for pull-style consumption, for
// callers that want a value-at-a-time API instead of a raw channel.
type Listener[T any] struct {
	ctx context.Context
	ch  <-chan Event[T]
}

// NewListener subscribes to the broker. The subscription is cleaned up
// when ctx is cancelled.
func NewListener[T any](ctx context.Context, broker *Broker[T]) *Listener[T] {
	return &Listener[T]{
		ctx: ctx,
		ch:  broker.Subscribe(ctx),
	}
}

// Next blocks until an event arrives. ok is false once the context is
// cancelled or the broker closes; no further events will arrive then.
func (l *Listener[T]) Next() (event Event[T], ok bool) {
	select {
	case <-l.ctx.Done():
		return Event[T]{}, false
	case event, ok := <-l.ch:
		if !ok {
			return Event[T]{}, false
		}
		return event, true
	}
}

// Events exposes the subscription channel for use in select loops.
func (l *Listener[T]) Events() <-chan Event[T] {
	return l.ch
}
