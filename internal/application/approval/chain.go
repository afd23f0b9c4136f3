package approval

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/garyjia/approval-chain/internal/application/dispatcher"
	"github.com/garyjia/approval-chain/internal/domain/chain"
)

// ExhaustedReason is returned when no approver's ceiling covers the amount
const ExhaustedReason = "amount exceeds all authority levels"

// DefaultCatchAll is the role of the top-level approver in the default chain
const DefaultCatchAll = "Presidente"

var (
	// ErrInvalidLevel is returned for a level with an empty role or an unusable ceiling
	ErrInvalidLevel = errors.New("invalid approval level")

	// ErrDuplicateRole is returned when two levels share a role
	ErrDuplicateRole = errors.New("duplicate approval role")
)

// DefaultLevels returns the standard authority ceilings below the catch-all
func DefaultLevels() []Level {
	return []Level{
		{Role: "Gerente", Ceiling: 1000},
		{Role: "Diretor", Ceiling: 5000},
		{Role: "Vice-presidente", Ceiling: 20000},
	}
}

// Policy returns the first-match-wins policy used by approval chains
func Policy() dispatcher.Policy[Approval] {
	return dispatcher.FirstMatchWins[Approval]().
		WithExhaustion(chain.Rejected[Approval](ExhaustedReason))
}

// NewChain orders levels by increasing ceiling and appends a catch-all approver
// when catchAll is not empty. Without a catch-all, expenses above every
// ceiling are rejected.
func NewChain(levels []Level, catchAll string, logger Logger) (*chain.Chain[Expense, Approval], error) {
	ordered := slices.Clone(levels)
	slices.SortStableFunc(ordered, func(a, b Level) int {
		switch {
		case a.Ceiling < b.Ceiling:
			return -1
		case a.Ceiling > b.Ceiling:
			return 1
		}
		return 0
	})

	seen := make(map[string]bool, len(ordered)+1)
	c := chain.New[Expense, Approval]()

	for _, level := range ordered {
		if strings.TrimSpace(level.Role) == "" {
			return nil, fmt.Errorf("%w: empty role", ErrInvalidLevel)
		}
		if level.Ceiling < 0 || math.IsNaN(level.Ceiling) {
			return nil, fmt.Errorf("%w: %s ceiling %.2f", ErrInvalidLevel, level.Role, level.Ceiling)
		}
		if seen[level.Role] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRole, level.Role)
		}
		seen[level.Role] = true

		if _, err := c.Attach(NewApprover(level, logger)); err != nil {
			return nil, err
		}
	}

	if catchAll != "" {
		if seen[catchAll] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRole, catchAll)
		}
		if _, err := c.Attach(NewCatchAll(catchAll, logger)); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// NewDispatcher assembles an approval chain and binds it to the approval policy
func NewDispatcher(levels []Level, catchAll string, logger Logger, opts ...dispatcher.Option) (*dispatcher.Dispatcher[Expense, Approval], error) {
	c, err := NewChain(levels, catchAll, logger)
	if err != nil {
		return nil, err
	}
	return dispatcher.New(c, Policy(), opts...)
}
