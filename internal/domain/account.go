package domain

import (
	"fmt"
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies an account.
type AccountType string

const (
	AccountTypeSavings          AccountType = "savings"
	AccountTypeCurrent          AccountType = "current"
	AccountTypeFixedDeposit     AccountType = "fixed_deposit"
	AccountTypeRecurringDeposit AccountType = "recurring_deposit"
	AccountTypeLoan             AccountType = "loan"
	AccountTypeDemat            AccountType = "demat"
)

var validAccountTypes = map[AccountType]bool{
	AccountTypeSavings:          true,
	AccountTypeCurrent:          true,
	AccountTypeFixedDeposit:     true,
	AccountTypeRecurringDeposit: true,
	AccountTypeLoan:             true,
	AccountTypeDemat:            true,
}

// IsValid checks if the account type is known.
func (t AccountType) IsValid() bool {
	return validAccountTypes[t]
}

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	AccountStatusPending   AccountStatus = "pending"
	AccountStatusActive    AccountStatus = "active"
	AccountStatusSuspended AccountStatus = "suspended"
	AccountStatusClosed    AccountStatus = "closed"
)

// AccountNumberPattern is the shape of every generated account number.
var AccountNumberPattern = regexp.MustCompile(`^[A-Z]{2}\d{12}$`)

// Account is a customer account holding a balance.
// The balance is mutated only through the ledger workflow.
type Account struct {
	ID                    string
	AccountNumber         string
	CustomerID            string
	Type                  AccountType
	Balance               decimal.Decimal
	InterestRate          decimal.Decimal
	MinimumBalance        decimal.Decimal
	OverdraftLimit        decimal.Decimal
	MonthlyMaintenanceFee decimal.Decimal
	Status                AccountStatus
	BranchID              string
	BankID                string
	Description           string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Floor is the lowest balance a debit may leave behind:
// minimum balance less the overdraft allowance.
func (a *Account) Floor() decimal.Decimal {
	return a.MinimumBalance.Sub(a.OverdraftLimit)
}

// CanTransact reports whether movements may be applied.
func (a *Account) CanTransact() bool {
	return a.Status == AccountStatusActive
}

// ValidateDebit checks that debiting amount keeps the balance at or above the floor.
func (a *Account) ValidateDebit(amount decimal.Decimal) error {
	if a.Balance.Sub(amount).LessThan(a.Floor()) {
		return ErrInsufficientFunds
	}
	return nil
}

// CanTransitionTo reports whether a lifecycle transition is legal.
// Closed is terminal; every other transition between pending, active
// and suspended is allowed.
func (a *Account) CanTransitionTo(target AccountStatus) bool {
	if a.Status == AccountStatusClosed {
		return false
	}
	switch target {
	case AccountStatusActive, AccountStatusSuspended:
		return true
	case AccountStatusClosed:
		return a.Balance.IsZero()
	default:
		return false
	}
}

// Validate checks the account fields that callers control.
func (a *Account) Validate() error {
	if !a.Type.IsValid() {
		return fmt.Errorf("%w: unknown account type %q", ErrValidation, a.Type)
	}
	if a.Balance.IsNegative() {
		return fmt.Errorf("%w: initial balance must not be negative", ErrValidation)
	}
	for name, v := range map[string]decimal.Decimal{
		"interest_rate":           a.InterestRate,
		"minimum_balance":         a.MinimumBalance,
		"overdraft_limit":         a.OverdraftLimit,
		"monthly_maintenance_fee": a.MonthlyMaintenanceFee,
	} {
		if v.IsNegative() {
			return fmt.Errorf("%w: %s must not be negative", ErrValidation, name)
		}
	}
	if len(a.Description) > MaxDescriptionLength {
		return fmt.Errorf("%w: description exceeds %d characters", ErrValidation, MaxDescriptionLength)
	}
	return nil
}

// Summary is the read-only projection served to callers.
type Summary struct {
	ID             string
	AccountNumber  string
	Type           AccountType
	Balance        decimal.Decimal
	Status         AccountStatus
	InterestRate   decimal.Decimal
	MinimumBalance decimal.Decimal
	CreatedAt      time.Time
}

// Summarize builds the summary projection of the account.
func (a *Account) Summarize() Summary {
	return Summary{
		ID:             a.ID,
		AccountNumber:  a.AccountNumber,
		Type:           a.Type,
		Balance:        a.Balance,
		Status:         a.Status,
		InterestRate:   a.InterestRate,
		MinimumBalance: a.MinimumBalance,
		CreatedAt:      a.CreatedAt,
	}
}
