package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// LoanType classifies a loan product.
type LoanType string

const (
	LoanTypePersonal  LoanType = "personal"
	LoanTypeBusiness  LoanType = "business"
	LoanTypeGold      LoanType = "gold"
	LoanTypeEducation LoanType = "education"
	LoanTypeVehicle   LoanType = "vehicle"
	LoanTypeHome      LoanType = "home"
)

var validLoanTypes = map[LoanType]bool{
	LoanTypePersonal:  true,
	LoanTypeBusiness:  true,
	LoanTypeGold:      true,
	LoanTypeEducation: true,
	LoanTypeVehicle:   true,
	LoanTypeHome:      true,
}

// IsValid checks if the loan type is known.
func (t LoanType) IsValid() bool {
	return validLoanTypes[t]
}

// LoanStatus is the approval state of a loan.
type LoanStatus string

const (
	LoanStatusPending   LoanStatus = "pending"
	LoanStatusApproved  LoanStatus = "approved"
	LoanStatusRejected  LoanStatus = "rejected"
	LoanStatusDisbursed LoanStatus = "disbursed"
	LoanStatusClosed    LoanStatus = "closed"
)

var validLoanStatuses = map[LoanStatus]bool{
	LoanStatusPending:   true,
	LoanStatusApproved:  true,
	LoanStatusRejected:  true,
	LoanStatusDisbursed: true,
	LoanStatusClosed:    true,
}

// IsValid checks if the loan status is known.
func (s LoanStatus) IsValid() bool {
	return validLoanStatuses[s]
}

// RepaymentStatus tracks the borrower's progress.
type RepaymentStatus string

const (
	RepaymentOngoing   RepaymentStatus = "ongoing"
	RepaymentCompleted RepaymentStatus = "completed"
	RepaymentDefaulted RepaymentStatus = "defaulted"
)

// Loan is a member's borrowing. Repayment schedule rows are generated
// when the loan is disbursed.
type Loan struct {
	ID              string
	MemberID        string
	BranchID        string
	BankID          string
	Type            LoanType
	Amount          decimal.Decimal
	InterestRate    decimal.Decimal
	RepaymentTerm   int // months
	MaturityDate    *time.Time
	Status          LoanStatus
	RepaymentStatus RepaymentStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CanTransitionTo reports whether an approval lifecycle transition is
// legal. Pending loans are approved or rejected, approved loans are
// disbursed, disbursed loans are closed; rejected and closed are terminal.
func (l *Loan) CanTransitionTo(target LoanStatus) bool {
	switch l.Status {
	case LoanStatusPending:
		return target == LoanStatusApproved || target == LoanStatusRejected
	case LoanStatusApproved:
		return target == LoanStatusDisbursed
	case LoanStatusDisbursed:
		return target == LoanStatusClosed
	default:
		return false
	}
}

// AcceptsRepayments reports whether repayments may be recorded.
func (l *Loan) AcceptsRepayments() bool {
	return l.Status == LoanStatusDisbursed || l.Status == LoanStatusApproved
}

// Validate checks caller-controlled loan fields.
func (l *Loan) Validate() error {
	if l.MemberID == "" {
		return fmt.Errorf("%w: member_id is required", ErrValidation)
	}
	if !l.Type.IsValid() {
		return fmt.Errorf("%w: unknown loan type %q", ErrValidation, l.Type)
	}
	if !l.Amount.IsPositive() {
		return fmt.Errorf("%w: loan amount must be positive", ErrValidation)
	}
	if !l.InterestRate.IsPositive() {
		return fmt.Errorf("%w: interest rate must be positive", ErrValidation)
	}
	if l.RepaymentTerm <= 0 {
		return fmt.Errorf("%w: repayment term must be positive", ErrValidation)
	}
	return nil
}

// EMI is the equal monthly installment: principal plus simple interest
// over the term, divided evenly across the term.
func (l *Loan) EMI() decimal.Decimal {
	months := decimal.NewFromInt(int64(l.RepaymentTerm))
	interest := l.Amount.
		Mul(l.InterestRate).
		Div(decimal.NewFromInt(100)).
		Mul(months).
		Div(decimal.NewFromInt(12))

	return l.Amount.Add(interest).Div(months).Round(2)
}

// Guarantor backs a loan.
type Guarantor struct {
	ID                string
	LoanID            string
	Name              string
	Relationship      string
	Contact           string
	FinancialStanding string
	CreatedAt         time.Time
}

// RepaymentEntryStatus is the state of one schedule row.
type RepaymentEntryStatus string

const (
	RepaymentEntryPending RepaymentEntryStatus = "pending"
	RepaymentEntryPaid    RepaymentEntryStatus = "paid"
	RepaymentEntryOverdue RepaymentEntryStatus = "overdue"
	RepaymentEntryPartial RepaymentEntryStatus = "partial"
)

// LoanRepayment is one installment in a loan's repayment schedule.
type LoanRepayment struct {
	ID                string
	LoanID            string
	InstallmentNumber int
	DueDate           time.Time
	EMIAmount         decimal.Decimal
	PaidAmount        decimal.Decimal
	PaidDate          *time.Time
	Penalty           decimal.Decimal
	Status            RepaymentEntryStatus
	TransactionID     string
}
