package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind names the business operation behind a movement.
type TransactionKind string

const (
	TransactionDeposit             TransactionKind = "deposit"
	TransactionWithdrawal          TransactionKind = "withdrawal"
	TransactionLoanRepayment       TransactionKind = "loan_repayment"
	TransactionInterBranchTransfer TransactionKind = "inter_branch_transfer"
)

var validTransactionKinds = map[TransactionKind]bool{
	TransactionDeposit:             true,
	TransactionWithdrawal:          true,
	TransactionLoanRepayment:       true,
	TransactionInterBranchTransfer: true,
}

// IsValid checks if the kind is known.
func (k TransactionKind) IsValid() bool {
	return validTransactionKinds[k]
}

// Direction is the balance effect of a movement.
type Direction string

const (
	DirectionCredit Direction = "credit"
	DirectionDebit  Direction = "debit"
)

// Direction maps the kind to its balance effect. Inter-branch transfer is
// modelled as a single-account debit; the crediting leg is out of scope.
func (k TransactionKind) Direction() Direction {
	switch k {
	case TransactionWithdrawal, TransactionInterBranchTransfer:
		return DirectionDebit
	default:
		return DirectionCredit
	}
}

// TransactionStatus is the settlement state of a transaction.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusCancelled TransactionStatus = "cancelled"
)

// Transaction is an immutable ledger record of one applied movement.
// Completed transactions are never edited; corrections are offsetting
// transactions.
type Transaction struct {
	ID              string
	ReferenceNumber string
	AccountID       string
	Kind            TransactionKind
	Amount          decimal.Decimal
	Description     string
	Status          TransactionStatus
	PerformedBy     string
	PreviousBalance decimal.Decimal
	NewBalance      decimal.Decimal
	CreatedAt       time.Time
}
