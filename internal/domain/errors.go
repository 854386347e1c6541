package domain

import "errors"

var (
	// Lookup errors
	ErrAccountNotFound     = errors.New("account not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrMemberNotFound      = errors.New("member not found")
	ErrBranchNotFound      = errors.New("branch not found")
	ErrLoanNotFound        = errors.New("loan not found")
	ErrRepaymentNotFound   = errors.New("repayment schedule entry not found")
	ErrDepositNotFound     = errors.New("recurring deposit not found")
	ErrInstallmentNotFound = errors.New("installment not found")

	// Business-rule rejections
	ErrInsufficientFunds = errors.New("insufficient funds for debit")
	ErrInvalidState      = errors.New("operation not allowed in current state")
	ErrConflict          = errors.New("uniqueness conflict")

	// Input errors
	ErrValidation = errors.New("validation failed")

	// Tenancy and authentication
	ErrAccessDenied = errors.New("access denied")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")

	// Infrastructure
	ErrStorage = errors.New("storage failure")
)

var sentinels = []error{
	ErrAccountNotFound, ErrTransactionNotFound, ErrCustomerNotFound,
	ErrMemberNotFound, ErrBranchNotFound, ErrLoanNotFound,
	ErrRepaymentNotFound, ErrDepositNotFound, ErrInstallmentNotFound,
	ErrInsufficientFunds, ErrInvalidState, ErrConflict, ErrValidation,
	ErrAccessDenied, ErrUnauthorized, ErrInvalidToken, ErrExpiredToken,
	ErrStorage,
}

// IsDomain reports whether err carries one of the package's sentinel
// errors.
func IsDomain(err error) bool {
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return true
		}
	}
	return false
}
