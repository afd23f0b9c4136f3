package validation

import (
	"errors"
	"fmt"

	"github.com/garyjia/approval-chain/internal/application/dispatcher"
	"github.com/garyjia/approval-chain/internal/domain/chain"
)

// ErrInvalidRules is returned for a rule set that cannot build a chain
var ErrInvalidRules = errors.New("invalid validation rules")

// Rules selects which built-in validators a chain runs, in this order:
// required fields, password length, email format.
type Rules struct {
	RequiredFields    []string
	PasswordMinLength int
	CheckEmailFormat  bool
}

// DefaultRules returns the sign-up form rules
func DefaultRules() Rules {
	return Rules{
		RequiredFields:    []string{"name", "email"},
		PasswordMinLength: 8,
		CheckEmailFormat:  true,
	}
}

// Policy returns the all-must-pass policy used by validation chains
func Policy() dispatcher.Policy[bool] {
	return dispatcher.AllMustPass(true)
}

// NewChain builds a validation chain from rules.
// A PasswordMinLength of zero disables the password check.
func NewChain(rules Rules) (*chain.Chain[Fields, bool], error) {
	if rules.PasswordMinLength < 0 {
		return nil, fmt.Errorf("%w: password min length %d", ErrInvalidRules, rules.PasswordMinLength)
	}

	c := chain.New[Fields, bool]()
	seen := make(map[string]bool, len(rules.RequiredFields))

	for _, field := range rules.RequiredFields {
		if field == "" {
			return nil, fmt.Errorf("%w: empty required field name", ErrInvalidRules)
		}
		if seen[field] {
			return nil, fmt.Errorf("%w: field %s listed twice", ErrInvalidRules, field)
		}
		seen[field] = true
		c.MustAttach(RequiredField(field))
	}

	if rules.PasswordMinLength > 0 {
		c.MustAttach(PasswordLength(rules.PasswordMinLength))
	}
	if rules.CheckEmailFormat {
		c.MustAttach(EmailFormat())
	}

	return c, nil
}

// NewDispatcher builds a validation chain and binds it to the validation policy
func NewDispatcher(rules Rules, opts ...dispatcher.Option) (*dispatcher.Dispatcher[Fields, bool], error) {
	c, err := NewChain(rules)
	if err != nil {
		return nil, err
	}
	return dispatcher.New(c, Policy(), opts...)
}

// Validate dispatches fields and returns the verdict with the failure reason, if any
func Validate(d *dispatcher.Dispatcher[Fields, bool], fields Fields) (bool, string) {
	out := d.Dispatch(fields)
	if valid, ok := out.Result(); ok {
		return valid, ""
	}
	return false, out.Reason()
}
