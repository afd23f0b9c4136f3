package dispatcher

import (
	"fmt"

	"github.com/garyjia/approval-chain/internal/domain/chain"
)

// PolicyKind names the decision table the dispatcher applies
type PolicyKind string

const (
	// FirstMatchWinsKind stops at the first handler whose test passes
	FirstMatchWinsKind PolicyKind = "first-match-wins"
	// AllMustPassKind requires every handler's test to pass
	AllMustPassKind PolicyKind = "all-must-pass"
	// InterceptOrForwardKind invokes every handler until one short-circuits
	InterceptOrForwardKind PolicyKind = "intercept-or-forward"
)

// NoEligibleHandler is the exhaustion reason of the default first-match-wins policy
const NoEligibleHandler = "no eligible handler"

// String returns the string representation of the policy kind
func (k PolicyKind) String() string {
	return string(k)
}

// IsValid returns true if the kind is one of the known decision tables
func (k PolicyKind) IsValid() bool {
	switch k {
	case FirstMatchWinsKind, AllMustPassKind, InterceptOrForwardKind:
		return true
	}
	return false
}

// Policy is a decision table plus the outcome returned when the chain is exhausted
type Policy[R any] struct {
	Kind       PolicyKind
	Exhaustion chain.Outcome[R]
}

// FirstMatchWins returns the approval-style policy.
// Exhaustion yields Rejected(NoEligibleHandler).
func FirstMatchWins[R any]() Policy[R] {
	return Policy[R]{
		Kind:       FirstMatchWinsKind,
		Exhaustion: chain.Rejected[R](NoEligibleHandler),
	}
}

// AllMustPass returns the validation-style policy.
// Exhaustion yields Resolved(satisfied).
func AllMustPass[R any](satisfied R) Policy[R] {
	return Policy[R]{
		Kind:       AllMustPassKind,
		Exhaustion: chain.Resolved(satisfied),
	}
}

// InterceptOrForward returns the middleware-style policy.
// Exhaustion yields Resolved(defaultResult).
func InterceptOrForward[R any](defaultResult R) Policy[R] {
	return Policy[R]{
		Kind:       InterceptOrForwardKind,
		Exhaustion: chain.Resolved(defaultResult),
	}
}

// WithExhaustion returns a copy of the policy with a different exhaustion outcome
func (p Policy[R]) WithExhaustion(outcome chain.Outcome[R]) Policy[R] {
	p.Exhaustion = outcome
	return p
}

// Validate checks the policy can be bound to a chain
func (p Policy[R]) Validate() error {
	if !p.Kind.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownPolicy, p.Kind)
	}
	if !p.Exhaustion.IsTerminal() {
		return fmt.Errorf("%w: policy %s", ErrExhaustionWithoutDefault, p.Kind)
	}
	return nil
}
