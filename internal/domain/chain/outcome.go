package chain

import "fmt"

// Kind is the variant tag of an Outcome
type Kind int

const (
	// KindDelegate passes control to the next handler. It is the zero value.
	KindDelegate Kind = iota
	// KindResolved ends traversal with a result
	KindResolved
	// KindRejected ends traversal with a failure reason
	KindRejected
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindDelegate:
		return "DELEGATE"
	case KindResolved:
		return "RESOLVED"
	case KindRejected:
		return "REJECTED"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Outcome is the three-way result of running one handler against a work item.
// Construct it with Resolved, Delegate or Rejected.
type Outcome[R any] struct {
	kind    Kind
	result  R
	reason  string
	handler string
}

// Resolved returns a terminal outcome carrying result
func Resolved[R any](result R) Outcome[R] {
	return Outcome[R]{kind: KindResolved, result: result}
}

// Delegate returns the non-terminal outcome
func Delegate[R any]() Outcome[R] {
	return Outcome[R]{kind: KindDelegate}
}

// Rejected returns a terminal failure outcome carrying reason
func Rejected[R any](reason string) Outcome[R] {
	return Outcome[R]{kind: KindRejected, reason: reason}
}

// Kind returns the variant tag
func (o Outcome[R]) Kind() Kind {
	return o.kind
}

// IsTerminal returns true for Resolved and Rejected
func (o Outcome[R]) IsTerminal() bool {
	return o.kind == KindResolved || o.kind == KindRejected
}

// IsResolved returns true if the outcome is Resolved
func (o Outcome[R]) IsResolved() bool {
	return o.kind == KindResolved
}

// IsRejected returns true if the outcome is Rejected
func (o Outcome[R]) IsRejected() bool {
	return o.kind == KindRejected
}

// Result returns the resolved value. ok is false for any other variant.
func (o Outcome[R]) Result() (result R, ok bool) {
	if o.kind != KindResolved {
		var zero R
		return zero, false
	}
	return o.result, true
}

// Reason returns the rejection reason, or "" for any other variant
func (o Outcome[R]) Reason() string {
	return o.reason
}

// Handler returns the identity of the handler that produced the outcome.
// It is empty for outcomes produced by chain exhaustion.
func (o Outcome[R]) Handler() string {
	return o.handler
}

// WithHandler returns a copy of the outcome attributed to identity
func (o Outcome[R]) WithHandler(identity string) Outcome[R] {
	o.handler = identity
	return o
}

// String returns a human-readable representation of the outcome
func (o Outcome[R]) String() string {
	switch o.kind {
	case KindResolved:
		return fmt.Sprintf("Resolved(%v)", o.result)
	case KindRejected:
		return fmt.Sprintf("Rejected(%q)", o.reason)
	default:
		return "Delegate"
	}
}
