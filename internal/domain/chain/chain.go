package chain

import (
	"fmt"
	"iter"
	"reflect"
)

// Chain is an ordered, append-only sequence of handlers.
// It supports forward traversal only and a handler may appear at most once.
type Chain[T, R any] struct {
	handlers []Handler[T, R]
}

// New creates an empty chain
func New[T, R any]() *Chain[T, R] {
	return &Chain[T, R]{}
}

// Of creates a chain from handlers in order, failing on the first invalid attach
func Of[T, R any](handlers ...Handler[T, R]) (*Chain[T, R], error) {
	c := New[T, R]()
	for _, h := range handlers {
		if _, err := c.Attach(h); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Attach appends h after the last attached handler and returns h.
// Attaching the same handler instance twice fails and leaves the chain unmodified.
func (c *Chain[T, R]) Attach(h Handler[T, R]) (Handler[T, R], error) {
	if h == nil {
		return nil, ErrNilHandler
	}
	// Value check: an interface field holding a slice passes a type check
	if !reflect.ValueOf(h).Comparable() {
		return nil, fmt.Errorf("%w: %T", ErrUncomparableHandler, h)
	}

	for i, existing := range c.handlers {
		if existing == h {
			return nil, &DuplicateHandlerError{Identity: h.Identity(), Position: i}
		}
	}

	c.handlers = append(c.handlers, h)
	return h, nil
}

// MustAttach is like Attach but panics on error. Use it for chains assembled
// from literals where a duplicate is a programming error.
func (c *Chain[T, R]) MustAttach(h Handler[T, R]) Handler[T, R] {
	attached, err := c.Attach(h)
	if err != nil {
		panic(err)
	}
	return attached
}

// Handlers returns the handlers in attach order. The sequence is lazy and
// can be ranged over any number of times.
func (c *Chain[T, R]) Handlers() iter.Seq[Handler[T, R]] {
	return func(yield func(Handler[T, R]) bool) {
		for _, h := range c.handlers {
			if !yield(h) {
				return
			}
		}
	}
}

// Len returns the number of attached handlers
func (c *Chain[T, R]) Len() int {
	return len(c.handlers)
}

// Identities returns the identity of every handler in attach order
func (c *Chain[T, R]) Identities() []string {
	ids := make([]string, 0, len(c.handlers))
	for _, h := range c.handlers {
		ids = append(ids, h.Identity())
	}
	return ids
}
