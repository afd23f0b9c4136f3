// Package validation checks independent properties of a field mapping.
// Every rule must pass; the first failing rule in chain order supplies the reason.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/garyjia/approval-chain/internal/domain/chain"
)

// Field names read by the built-in rules
const (
	FieldEmail    = "email"
	FieldPassword = "password"
)

// EmailFormatReason is reported when the email field is malformed
const EmailFormatReason = "O formato do e-mail é inválido."

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,6}$`)

// Fields is the work item of a validation chain. Rules only read it.
type Fields map[string]string

// Get returns the value of a field and whether it is present
func (f Fields) Get(name string) (string, bool) {
	v, ok := f[name]
	return v, ok
}

// Without returns a copy of f with the named fields removed
func (f Fields) Without(names ...string) Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	for _, name := range names {
		delete(out, name)
	}
	return out
}

// newRule builds a handler whose act resolves true when check passes
// and rejects with reason otherwise
func newRule(identity string, check func(Fields) bool, reason string) chain.Handler[Fields, bool] {
	return chain.NewHandler(identity, check, func(f Fields) chain.Outcome[bool] {
		if check(f) {
			return chain.Resolved(true)
		}
		return chain.Rejected[bool](reason)
	})
}

// RequiredField fails when the field is missing or blank
func RequiredField(name string) chain.Handler[Fields, bool] {
	return newRule(
		fmt.Sprintf("RequiredFieldValidator(%s)", name),
		func(f Fields) bool {
			v, ok := f.Get(name)
			return ok && strings.TrimSpace(v) != ""
		},
		RequiredFieldReason(name),
	)
}

// RequiredFieldReason is reported when name is missing
func RequiredFieldReason(name string) string {
	return fmt.Sprintf("O campo %s é obrigatório.", name)
}

// PasswordLength fails when the password has fewer than minLength characters
func PasswordLength(minLength int) chain.Handler[Fields, bool] {
	return newRule(
		"PasswordLengthValidator",
		func(f Fields) bool {
			v, ok := f.Get(FieldPassword)
			return ok && v != "" && utf8.RuneCountInString(v) >= minLength
		},
		PasswordLengthReason(minLength),
	)
}

// PasswordLengthReason is reported when the password is too short
func PasswordLengthReason(minLength int) string {
	return fmt.Sprintf("A senha deve ter pelo menos %d caracteres.", minLength)
}

// EmailFormat fails when the email field is missing or malformed
func EmailFormat() chain.Handler[Fields, bool] {
	return newRule(
		"EmailFormatValidator",
		func(f Fields) bool {
			v, ok := f.Get(FieldEmail)
			return ok && emailPattern.MatchString(v)
		},
		EmailFormatReason,
	)
}
