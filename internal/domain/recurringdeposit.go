package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Penalty rates match the product terms: 1% of an installment per missed
// payment, 2% of total principal on early closure.
var (
	MissedInstallmentPenaltyRate = decimal.NewFromFloat(0.01)
	EarlyClosurePenaltyRate      = decimal.NewFromFloat(0.02)
)

// DepositFrequency is the installment cadence of a recurring deposit.
type DepositFrequency string

const (
	FrequencyMonthly DepositFrequency = "monthly"
	FrequencyWeekly  DepositFrequency = "weekly"
)

// IsValid checks if the frequency is known.
func (f DepositFrequency) IsValid() bool {
	return f == FrequencyMonthly || f == FrequencyWeekly
}

// DepositStatus is the lifecycle state of a recurring deposit.
type DepositStatus string

const (
	DepositStatusActive  DepositStatus = "active"
	DepositStatusMatured DepositStatus = "matured"
	DepositStatusClosed  DepositStatus = "closed"
)

// RecurringDeposit is a member's installment savings plan tied to an account.
type RecurringDeposit struct {
	ID                   string
	AccountID            string
	MemberID             string
	StartDate            time.Time
	EndDate              time.Time
	AmountPerInstallment decimal.Decimal
	Frequency            DepositFrequency
	TotalInstallments    int
	InterestRate         decimal.Decimal
	Status               DepositStatus
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Validate checks caller-controlled deposit fields.
func (rd *RecurringDeposit) Validate() error {
	if rd.AccountID == "" {
		return fmt.Errorf("%w: account_id is required", ErrValidation)
	}
	if rd.MemberID == "" {
		return fmt.Errorf("%w: member_id is required", ErrValidation)
	}
	if !rd.AmountPerInstallment.IsPositive() {
		return fmt.Errorf("%w: installment amount must be positive", ErrValidation)
	}
	if !rd.Frequency.IsValid() {
		return fmt.Errorf("%w: unknown frequency %q", ErrValidation, rd.Frequency)
	}
	if rd.TotalInstallments <= 0 {
		return fmt.Errorf("%w: total installments must be positive", ErrValidation)
	}
	if !rd.InterestRate.IsPositive() {
		return fmt.Errorf("%w: interest rate must be positive", ErrValidation)
	}
	return nil
}

// TotalPrincipal is the sum of all installments.
func (rd *RecurringDeposit) TotalPrincipal() decimal.Decimal {
	return rd.AmountPerInstallment.Mul(decimal.NewFromInt(int64(rd.TotalInstallments)))
}

// MaturityDate computes the end date from the start, frequency and count.
func (rd *RecurringDeposit) MaturityDate() time.Time {
	switch rd.Frequency {
	case FrequencyWeekly:
		return rd.StartDate.AddDate(0, 0, 7*rd.TotalInstallments)
	default:
		return rd.StartDate.AddDate(0, rd.TotalInstallments, 0)
	}
}

// EarlyClosurePenalty is the fee for closing before maturity.
func (rd *RecurringDeposit) EarlyClosurePenalty() decimal.Decimal {
	return rd.TotalPrincipal().Mul(EarlyClosurePenaltyRate).Round(2)
}

// Schedule builds the due installments for this deposit.
func (rd *RecurringDeposit) Schedule() []Installment {
	installments := make([]Installment, rd.TotalInstallments)
	due := rd.StartDate
	for i := range installments {
		installments[i] = Installment{
			DepositID: rd.ID,
			Sequence:  i + 1,
			DueDate:   due,
			Amount:    rd.AmountPerInstallment,
			Status:    InstallmentDue,
		}
		switch rd.Frequency {
		case FrequencyWeekly:
			due = due.AddDate(0, 0, 7)
		default:
			due = due.AddDate(0, 1, 0)
		}
	}
	return installments
}

// InstallmentStatus is the state of one scheduled payment.
type InstallmentStatus string

const (
	InstallmentDue    InstallmentStatus = "due"
	InstallmentPaid   InstallmentStatus = "paid"
	InstallmentMissed InstallmentStatus = "missed"
)

// Installment is one scheduled payment of a recurring deposit.
type Installment struct {
	ID        string
	DepositID string
	Sequence  int
	DueDate   time.Time
	Amount    decimal.Decimal
	PaidDate  *time.Time
	Status    InstallmentStatus
}

// MissedPenalty sums the penalty over the missed installments of a schedule.
func MissedPenalty(installments []Installment) decimal.Decimal {
	penalty := decimal.Zero
	for _, in := range installments {
		if in.Status == InstallmentMissed {
			penalty = penalty.Add(in.Amount.Mul(MissedInstallmentPenaltyRate))
		}
	}
	return penalty.Round(2)
}
