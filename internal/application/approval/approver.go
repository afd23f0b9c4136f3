// Package approval routes expenses through approvers ordered by increasing authority.
package approval

import (
	"fmt"

	"github.com/garyjia/approval-chain/internal/domain/chain"
)

// Logger interface for logging operations
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// Expense is the work item of an approval chain
type Expense struct {
	Amount float64
}

// Approval is the result of a resolved approval dispatch
type Approval struct {
	Role   string
	Amount float64
}

// Message returns the approval narration
func (a Approval) Message() string {
	return fmt.Sprintf("%s aprovou a despesa de R$ %.2f.", a.Role, a.Amount)
}

// Level is one approver's authority ceiling
type Level struct {
	Role    string
	Ceiling float64
}

// NewApprover creates a handler that approves expenses up to the level's ceiling
func NewApprover(level Level, logger Logger) chain.Handler[Expense, Approval] {
	return chain.NewHandler(level.Role,
		func(e Expense) bool {
			return e.Amount <= level.Ceiling
		},
		approve(level.Role, logger),
	)
}

// NewCatchAll creates a handler that approves any expense
func NewCatchAll(role string, logger Logger) chain.Handler[Expense, Approval] {
	return chain.NewHandler(role, chain.Always[Expense], approve(role, logger))
}

func approve(role string, logger Logger) chain.ActFunc[Expense, Approval] {
	return func(e Expense) chain.Outcome[Approval] {
		approval := Approval{Role: role, Amount: e.Amount}
		if logger != nil {
			logger.Info("Expense approved",
				"role", role,
				"amount", e.Amount,
			)
		}
		return chain.Resolved(approval)
	}
}

// NoApproverMessage returns the narration for an expense nobody could approve
func NoApproverMessage(amount float64) string {
	return fmt.Sprintf("Nenhum aprovador disponível para R$ %.2f.", amount)
}
