package selection

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Subscription identifies a handler registered with an Emitter.
type Subscription uuid.UUID

// HoverEvent reports a change of the hovered entity. ID is empty when nothing is hovered.
type HoverEvent struct {
	ID string
}

// SelectEvent reports a selection change. ID is empty when the selection was cleared.
type SelectEvent struct {
	ID string
}

// FocusEvent asks the camera to focus an entity at its live world position.
type FocusEvent struct {
	ID       string
	Position mgl32.Vec3
}

type subscriber[T any] struct {
	sub Subscription
	key string
	fn  func(T)
}

// Emitter is a synchronous typed pub-sub channel. Handlers run on the emitting
// goroutine in registration order. Handlers registered with On are always distinct;
// OnKey keeps a set keyed by a caller-chosen name.
type Emitter[T any] struct {
	mu   *sync.Mutex
	subs []subscriber[T]
}

// NewEmitter creates an empty emitter.
func NewEmitter[T any]() *Emitter[T] {
	return &Emitter[T]{mu: &sync.Mutex{}}
}

// On registers fn and returns the token that removes it.
func (e *Emitter[T]) On(fn func(T)) Subscription {
	e.mu.Lock()
	defer e.mu.Unlock()
	sub := Subscription(uuid.New())
	e.subs = append(e.subs, subscriber[T]{sub: sub, fn: fn})
	return sub
}

// OnKey registers fn under key unless a handler already holds key, in which case the
// existing token is returned and fn is dropped. An empty key behaves like On.
//
// Parameters:
//   - key: the de-duplication key
//   - fn: the handler
//
// Returns:
//   - Subscription: the token that removes the handler
func (e *Emitter[T]) OnKey(key string, fn func(T)) Subscription {
	if key == "" {
		return e.On(fn)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, s := range e.subs {
		if s.key == key {
			return s.sub
		}
	}
	sub := Subscription(uuid.New())
	e.subs = append(e.subs, subscriber[T]{sub: sub, key: key, fn: fn})
	return sub
}

// Off removes the handler registered under sub. Unknown tokens are ignored.
func (e *Emitter[T]) Off(sub Subscription) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, s := range e.subs {
		if s.sub == sub {
			e.subs = append(e.subs[:i:i], e.subs[i+1:]...)
			return
		}
	}
}

// Emit calls every handler with v. Handlers may register or remove handlers; the
// change applies from the next Emit.
func (e *Emitter[T]) Emit(v T) {
	e.mu.Lock()
	subs := make([]subscriber[T], len(e.subs))
	copy(subs, e.subs)
	e.mu.Unlock()

	for _, s := range subs {
		s.fn(v)
	}
}

// Len returns the number of registered handlers.
func (e *Emitter[T]) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.subs)
}

// Clear removes every handler.
func (e *Emitter[T]) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.subs = nil
}
