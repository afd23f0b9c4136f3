package chain

// Handler is a single decision-making unit in a chain.
//
// Test must be a pure predicate, safe to call speculatively. Act is only
// called when the dispatch policy decides this handler should run. A
// handler never calls the next handler itself; traversal belongs to the
// dispatcher.
type Handler[T, R any] interface {
	// Identity returns a human-readable role label
	Identity() string

	// Test reports whether the handler is capable of handling item
	Test(item T) bool

	// Act handles item and returns exactly one outcome
	Act(item T) Outcome[R]
}

// TestFunc is the capability test of a handler
type TestFunc[T any] func(item T) bool

// ActFunc produces the outcome of a handler
type ActFunc[T, R any] func(item T) Outcome[R]

// funcHandler implements Handler from construction-time data and two functions
type funcHandler[T, R any] struct {
	identity string
	test     TestFunc[T]
	act      ActFunc[T, R]
}

// NewHandler builds a handler from an identity and its two functions.
// A nil test always passes. A nil act delegates.
func NewHandler[T, R any](identity string, test TestFunc[T], act ActFunc[T, R]) Handler[T, R] {
	return &funcHandler[T, R]{
		identity: identity,
		test:     test,
		act:      act,
	}
}

func (h *funcHandler[T, R]) Identity() string {
	return h.identity
}

func (h *funcHandler[T, R]) Test(item T) bool {
	if h.test == nil {
		return true
	}
	return h.test(item)
}

func (h *funcHandler[T, R]) Act(item T) Outcome[R] {
	if h.act == nil {
		return Delegate[R]()
	}
	return h.act(item)
}

// Always is a TestFunc that accepts every item
func Always[T any](T) bool {
	return true
}
