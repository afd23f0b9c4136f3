package dispatcher

import "errors"

var (
	// ErrExhaustionWithoutDefault is returned when a policy has no terminal exhaustion outcome
	ErrExhaustionWithoutDefault = errors.New("policy has no exhaustion outcome")

	// ErrEmptyChain is returned when binding a dispatcher to a chain with no handlers
	ErrEmptyChain = errors.New("chain has no handlers")

	// ErrUnknownPolicy is returned for an unrecognized policy kind
	ErrUnknownPolicy = errors.New("unknown policy")

	// ErrNilChain is returned when binding a dispatcher to a nil chain
	ErrNilChain = errors.New("nil chain")
)
