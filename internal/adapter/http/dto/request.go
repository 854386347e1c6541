package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cobanker/corebank/internal/domain"
	"github.com/cobanker/corebank/internal/usecase"
)

// OpenAccountRequest represents a request to open an account.
type OpenAccountRequest struct {
	CustomerID            string          `json:"customer_id"`
	AccountType           string          `json:"account_type"`
	InitialBalance        decimal.Decimal `json:"initial_balance"`
	InterestRate          decimal.Decimal `json:"interest_rate"`
	MinimumBalance        decimal.Decimal `json:"minimum_balance"`
	OverdraftLimit        decimal.Decimal `json:"overdraft_limit"`
	MonthlyMaintenanceFee decimal.Decimal `json:"monthly_maintenance_fee"`
	BranchID              string          `json:"branch_id"`
	BankID                string          `json:"bank_id"`
	Description           string          `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *OpenAccountRequest) ToUseCaseInput() usecase.OpenAccountInput {
	return usecase.OpenAccountInput{
		CustomerID:            r.CustomerID,
		Type:                  domain.AccountType(r.AccountType),
		InitialBalance:        r.InitialBalance,
		InterestRate:          r.InterestRate,
		MinimumBalance:        r.MinimumBalance,
		OverdraftLimit:        r.OverdraftLimit,
		MonthlyMaintenanceFee: r.MonthlyMaintenanceFee,
		BranchID:              r.BranchID,
		BankID:                r.BankID,
		Description:           r.Description,
	}
}

// RecordMovementRequest represents a request to apply a balance movement.
type RecordMovementRequest struct {
	Amount          decimal.Decimal `json:"amount"`
	TransactionType string          `json:"transaction_type"`
	Description     string          `json:"description,omitempty"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
}

// ToUseCaseInput converts to use case input for the given account.
func (r *RecordMovementRequest) ToUseCaseInput(accountID string) usecase.RecordMovementInput {
	return usecase.RecordMovementInput{
		AccountID:       accountID,
		Amount:          r.Amount,
		Kind:            domain.TransactionKind(r.TransactionType),
		Description:     r.Description,
		ReferenceNumber: r.ReferenceNumber,
	}
}

// CreateTransactionRequest represents a request to record a transaction
// against an explicit account.
type CreateTransactionRequest struct {
	AccountID       string          `json:"account_id"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionType string          `json:"transaction_type"`
	Description     string          `json:"description,omitempty"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransactionRequest) ToUseCaseInput() usecase.RecordMovementInput {
	return usecase.RecordMovementInput{
		AccountID:       r.AccountID,
		Amount:          r.Amount,
		Kind:            domain.TransactionKind(r.TransactionType),
		Description:     r.Description,
		ReferenceNumber: r.ReferenceNumber,
	}
}

// SuspendAccountRequest carries the mandatory suspension reason.
type SuspendAccountRequest struct {
	Reason string `json:"reason"`
}

// CreateCustomerRequest represents a request to register a customer.
type CreateCustomerRequest struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address,omitempty"`
	BranchID    string `json:"branch_id,omitempty"`
	KYCVerified bool   `json:"kyc_verified"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateCustomerRequest) ToUseCaseInput() usecase.CreateCustomerInput {
	return usecase.CreateCustomerInput{
		FullName:    r.FullName,
		Email:       r.Email,
		Phone:       r.Phone,
		Address:     r.Address,
		BranchID:    r.BranchID,
		KYCVerified: r.KYCVerified,
	}
}

// UpdateCustomerRequest represents a partial customer update. Absent fields
// are left unchanged.
type UpdateCustomerRequest struct {
	FullName    *string `json:"full_name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Address     *string `json:"address,omitempty"`
	Status      *string `json:"status,omitempty"`
	KYCVerified *bool   `json:"kyc_verified,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateCustomerRequest) ToUseCaseInput() usecase.UpdateCustomerInput {
	input := usecase.UpdateCustomerInput{
		FullName:    r.FullName,
		Email:       r.Email,
		Phone:       r.Phone,
		Address:     r.Address,
		KYCVerified: r.KYCVerified,
	}
	if r.Status != nil {
		status := domain.CustomerStatus(*r.Status)
		input.Status = &status
	}
	return input
}

// CreateMemberRequest represents a request to enroll a member.
type CreateMemberRequest struct {
	CustomerID        string     `json:"customer_id"`
	MembershipType    string     `json:"membership_type"`
	VotingEligibility bool       `json:"voting_eligibility"`
	JoiningDate       *time.Time `json:"joining_date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateMemberRequest) ToUseCaseInput() usecase.CreateMemberInput {
	return usecase.CreateMemberInput{
		CustomerID:        r.CustomerID,
		MembershipType:    domain.MembershipType(r.MembershipType),
		VotingEligibility: r.VotingEligibility,
		JoiningDate:       r.JoiningDate,
	}
}

// UpdateMemberRequest represents a partial member update.
type UpdateMemberRequest struct {
	MembershipType    *string `json:"membership_type,omitempty"`
	VotingEligibility *bool   `json:"voting_eligibility,omitempty"`
	Status            *string `json:"status,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateMemberRequest) ToUseCaseInput() usecase.UpdateMemberInput {
	input := usecase.UpdateMemberInput{
		VotingEligibility: r.VotingEligibility,
	}
	if r.MembershipType != nil {
		mt := domain.MembershipType(*r.MembershipType)
		input.MembershipType = &mt
	}
	if r.Status != nil {
		status := domain.MemberStatus(*r.Status)
		input.Status = &status
	}
	return input
}

// CreateLoanRequest represents a request to create a loan.
type CreateLoanRequest struct {
	MemberID      string          `json:"member_id"`
	LoanType      string          `json:"loan_type"`
	Amount        decimal.Decimal `json:"amount"`
	InterestRate  decimal.Decimal `json:"interest_rate"`
	RepaymentTerm int             `json:"repayment_term"`
	MaturityDate  *time.Time      `json:"maturity_date,omitempty"`
	BranchID      string          `json:"branch_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateLoanRequest) ToUseCaseInput() usecase.CreateLoanInput {
	return usecase.CreateLoanInput{
		MemberID:      r.MemberID,
		Type:          domain.LoanType(r.LoanType),
		Amount:        r.Amount,
		InterestRate:  r.InterestRate,
		RepaymentTerm: r.RepaymentTerm,
		MaturityDate:  r.MaturityDate,
		BranchID:      r.BranchID,
	}
}

// UpdateLoanStatusRequest represents a loan status transition.
type UpdateLoanStatusRequest struct {
	Status string `json:"status"`
}

// AddGuarantorRequest represents a request to attach a guarantor to a loan.
type AddGuarantorRequest struct {
	Name              string `json:"name"`
	Relationship      string `json:"relationship,omitempty"`
	Contact           string `json:"contact,omitempty"`
	FinancialStanding string `json:"financial_standing,omitempty"`
}

// ToDomain converts to a domain guarantor.
func (r *AddGuarantorRequest) ToDomain() domain.Guarantor {
	return domain.Guarantor{
		Name:              r.Name,
		Relationship:      r.Relationship,
		Contact:           r.Contact,
		FinancialStanding: r.FinancialStanding,
	}
}

// RecordRepaymentRequest represents a request to record a loan repayment.
type RecordRepaymentRequest struct {
	InstallmentNumber int             `json:"installment_number"`
	PaidAmount        decimal.Decimal `json:"paid_amount"`
	PaidDate          *time.Time      `json:"paid_date,omitempty"`
	Penalty           decimal.Decimal `json:"penalty"`
	TransactionID     string          `json:"transaction_id,omitempty"`
}

// ToUseCaseInput converts to use case input. A missing paid date defaults
// to now.
func (r *RecordRepaymentRequest) ToUseCaseInput() usecase.RecordRepaymentInput {
	paidDate := time.Now().UTC()
	if r.PaidDate != nil {
		paidDate = *r.PaidDate
	}
	return usecase.RecordRepaymentInput{
		InstallmentNumber: r.InstallmentNumber,
		PaidAmount:        r.PaidAmount,
		PaidDate:          paidDate,
		Penalty:           r.Penalty,
		TransactionID:     r.TransactionID,
	}
}

// CreateDepositRequest represents a request to open a recurring deposit.
type CreateDepositRequest struct {
	AccountID            string          `json:"account_id"`
	MemberID             string          `json:"member_id"`
	StartDate            time.Time       `json:"start_date"`
	AmountPerInstallment decimal.Decimal `json:"amount_per_installment"`
	Frequency            string          `json:"frequency"`
	TotalInstallments    int             `json:"total_installments"`
	InterestRate         decimal.Decimal `json:"interest_rate"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateDepositRequest) ToUseCaseInput() usecase.CreateDepositInput {
	return usecase.CreateDepositInput{
		AccountID:            r.AccountID,
		MemberID:             r.MemberID,
		StartDate:            r.StartDate,
		AmountPerInstallment: r.AmountPerInstallment,
		Frequency:            domain.DepositFrequency(r.Frequency),
		TotalInstallments:    r.TotalInstallments,
		InterestRate:         r.InterestRate,
	}
}

// PayInstallmentRequest identifies the installment being paid.
type PayInstallmentRequest struct {
	InstallmentID string `json:"installment_id"`
}
