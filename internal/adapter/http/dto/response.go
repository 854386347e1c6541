package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cobanker/corebank/internal/domain"
	"github.com/cobanker/corebank/internal/usecase"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID                    string          `json:"id"`
	AccountNumber         string          `json:"account_number"`
	CustomerID            string          `json:"customer_id"`
	AccountType           string          `json:"account_type"`
	Balance               decimal.Decimal `json:"balance"`
	InterestRate          decimal.Decimal `json:"interest_rate"`
	MinimumBalance        decimal.Decimal `json:"minimum_balance"`
	OverdraftLimit        decimal.Decimal `json:"overdraft_limit"`
	MonthlyMaintenanceFee decimal.Decimal `json:"monthly_maintenance_fee"`
	Status                string          `json:"status"`
	BranchID              string          `json:"branch_id"`
	BankID                string          `json:"bank_id"`
	Description           string          `json:"description,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:                    a.ID,
		AccountNumber:         a.AccountNumber,
		CustomerID:            a.CustomerID,
		AccountType:           string(a.Type),
		Balance:               a.Balance,
		InterestRate:          a.InterestRate,
		MinimumBalance:        a.MinimumBalance,
		OverdraftLimit:        a.OverdraftLimit,
		MonthlyMaintenanceFee: a.MonthlyMaintenanceFee,
		Status:                string(a.Status),
		BranchID:              a.BranchID,
		BankID:                a.BankID,
		Description:           a.Description,
		CreatedAt:             a.CreatedAt,
		UpdatedAt:             a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse wraps an account listing.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// SummaryResponse is the read-only account projection.
type SummaryResponse struct {
	ID             string          `json:"id"`
	AccountNumber  string          `json:"account_number"`
	AccountType    string          `json:"account_type"`
	Balance        decimal.Decimal `json:"balance"`
	Status         string          `json:"status"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
	MinimumBalance decimal.Decimal `json:"minimum_balance"`
	CreatedAt      time.Time       `json:"created_at"`
}

// SummaryFromDomain converts a domain summary to a response.
func SummaryFromDomain(s *domain.Summary) *SummaryResponse {
	return &SummaryResponse{
		ID:             s.ID,
		AccountNumber:  s.AccountNumber,
		AccountType:    string(s.Type),
		Balance:        s.Balance,
		Status:         string(s.Status),
		InterestRate:   s.InterestRate,
		MinimumBalance: s.MinimumBalance,
		CreatedAt:      s.CreatedAt,
	}
}

// TransactionResponse represents a journal entry in API responses.
type TransactionResponse struct {
	ID              string          `json:"id"`
	ReferenceNumber string          `json:"reference_number"`
	AccountID       string          `json:"account_id"`
	TransactionType string          `json:"transaction_type"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description,omitempty"`
	Status          string          `json:"status"`
	PerformedBy     string          `json:"performed_by"`
	PreviousBalance decimal.Decimal `json:"previous_balance"`
	NewBalance      decimal.Decimal `json:"new_balance"`
	CreatedAt       time.Time       `json:"created_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:              t.ID,
		ReferenceNumber: t.ReferenceNumber,
		AccountID:       t.AccountID,
		TransactionType: string(t.Kind),
		Amount:          t.Amount,
		Description:     t.Description,
		Status:          string(t.Status),
		PerformedBy:     t.PerformedBy,
		PreviousBalance: t.PreviousBalance,
		NewBalance:      t.NewBalance,
		CreatedAt:       t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txns []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txns))
	for i, t := range txns {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// MovementResponse is the outcome of a committed movement: the journal
// entry plus the account it moved.
type MovementResponse struct {
	Transaction *TransactionResponse `json:"transaction"`
	Account     *AccountResponse     `json:"account"`
}

// MovementFromResult converts a movement result to a response.
func MovementFromResult(res *usecase.MovementResult) *MovementResponse {
	return &MovementResponse{
		Transaction: TransactionFromDomain(res.Transaction),
		Account:     AccountFromDomain(res.Account),
	}
}

// CustomerResponse represents a customer in API responses.
type CustomerResponse struct {
	ID          string    `json:"id"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address,omitempty"`
	BankID      string    `json:"bank_id"`
	BranchID    string    `json:"branch_id"`
	Status      string    `json:"status"`
	KYCVerified bool      `json:"kyc_verified"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CustomerFromDomain converts a domain customer to a response.
func CustomerFromDomain(c *domain.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:          c.ID,
		FullName:    c.FullName,
		Email:       c.Email,
		Phone:       c.Phone,
		Address:     c.Address,
		BankID:      c.BankID,
		BranchID:    c.BranchID,
		Status:      string(c.Status),
		KYCVerified: c.KYCVerified,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// CustomersFromDomain converts domain customers to responses.
func CustomersFromDomain(customers []*domain.Customer) []*CustomerResponse {
	result := make([]*CustomerResponse, len(customers))
	for i, c := range customers {
		result[i] = CustomerFromDomain(c)
	}
	return result
}

// MemberResponse represents a member in API responses.
type MemberResponse struct {
	ID                string    `json:"id"`
	CustomerID        string    `json:"customer_id"`
	MembershipType    string    `json:"membership_type"`
	VotingEligibility bool      `json:"voting_eligibility"`
	Status            string    `json:"status"`
	JoiningDate       time.Time `json:"joining_date"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// MemberFromDomain converts a domain member to a response.
func MemberFromDomain(m *domain.Member) *MemberResponse {
	return &MemberResponse{
		ID:                m.ID,
		CustomerID:        m.CustomerID,
		MembershipType:    string(m.MembershipType),
		VotingEligibility: m.VotingEligibility,
		Status:            string(m.Status),
		JoiningDate:       m.JoiningDate,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// MembersFromDomain converts domain members to responses.
func MembersFromDomain(members []*domain.Member) []*MemberResponse {
	result := make([]*MemberResponse, len(members))
	for i, m := range members {
		result[i] = MemberFromDomain(m)
	}
	return result
}

// LoanResponse represents a loan in API responses.
type LoanResponse struct {
	ID              string          `json:"id"`
	MemberID        string          `json:"member_id"`
	BranchID        string          `json:"branch_id"`
	BankID          string          `json:"bank_id"`
	LoanType        string          `json:"loan_type"`
	Amount          decimal.Decimal `json:"amount"`
	InterestRate    decimal.Decimal `json:"interest_rate"`
	RepaymentTerm   int             `json:"repayment_term"`
	MaturityDate    *time.Time      `json:"maturity_date,omitempty"`
	Status          string          `json:"status"`
	RepaymentStatus string          `json:"repayment_status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// LoanFromDomain converts a domain loan to a response.
func LoanFromDomain(l *domain.Loan) *LoanResponse {
	return &LoanResponse{
		ID:              l.ID,
		MemberID:        l.MemberID,
		BranchID:        l.BranchID,
		BankID:          l.BankID,
		LoanType:        string(l.Type),
		Amount:          l.Amount,
		InterestRate:    l.InterestRate,
		RepaymentTerm:   l.RepaymentTerm,
		MaturityDate:    l.MaturityDate,
		Status:          string(l.Status),
		RepaymentStatus: string(l.RepaymentStatus),
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}

// LoansFromDomain converts domain loans to responses.
func LoansFromDomain(loans []*domain.Loan) []*LoanResponse {
	result := make([]*LoanResponse, len(loans))
	for i, l := range loans {
		result[i] = LoanFromDomain(l)
	}
	return result
}

// GuarantorResponse represents a guarantor in API responses.
type GuarantorResponse struct {
	ID                string    `json:"id"`
	LoanID            string    `json:"loan_id"`
	Name              string    `json:"name"`
	Relationship      string    `json:"relationship,omitempty"`
	Contact           string    `json:"contact,omitempty"`
	FinancialStanding string    `json:"financial_standing,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// GuarantorFromDomain converts a domain guarantor to a response.
func GuarantorFromDomain(g *domain.Guarantor) *GuarantorResponse {
	return &GuarantorResponse{
		ID:                g.ID,
		LoanID:            g.LoanID,
		Name:              g.Name,
		Relationship:      g.Relationship,
		Contact:           g.Contact,
		FinancialStanding: g.FinancialStanding,
		CreatedAt:         g.CreatedAt,
	}
}

// GuarantorsFromDomain converts domain guarantors to responses.
func GuarantorsFromDomain(guarantors []*domain.Guarantor) []*GuarantorResponse {
	result := make([]*GuarantorResponse, len(guarantors))
	for i, g := range guarantors {
		result[i] = GuarantorFromDomain(g)
	}
	return result
}

// RepaymentResponse represents one schedule entry in API responses.
type RepaymentResponse struct {
	ID                string          `json:"id"`
	LoanID            string          `json:"loan_id"`
	InstallmentNumber int             `json:"installment_number"`
	DueDate           time.Time       `json:"due_date"`
	EMIAmount         decimal.Decimal `json:"emi_amount"`
	PaidAmount        decimal.Decimal `json:"paid_amount"`
	PaidDate          *time.Time      `json:"paid_date,omitempty"`
	Penalty           decimal.Decimal `json:"penalty"`
	Status            string          `json:"status"`
	TransactionID     string          `json:"transaction_id,omitempty"`
}

// RepaymentFromDomain converts a domain schedule entry to a response.
func RepaymentFromDomain(r *domain.LoanRepayment) *RepaymentResponse {
	return &RepaymentResponse{
		ID:                r.ID,
		LoanID:            r.LoanID,
		InstallmentNumber: r.InstallmentNumber,
		DueDate:           r.DueDate,
		EMIAmount:         r.EMIAmount,
		PaidAmount:        r.PaidAmount,
		PaidDate:          r.PaidDate,
		Penalty:           r.Penalty,
		Status:            string(r.Status),
		TransactionID:     r.TransactionID,
	}
}

// RepaymentsFromDomain converts domain schedule entries to responses.
func RepaymentsFromDomain(entries []*domain.LoanRepayment) []*RepaymentResponse {
	result := make([]*RepaymentResponse, len(entries))
	for i, e := range entries {
		result[i] = RepaymentFromDomain(e)
	}
	return result
}

// DepositResponse represents a recurring deposit in API responses.
type DepositResponse struct {
	ID                   string          `json:"id"`
	AccountID            string          `json:"account_id"`
	MemberID             string          `json:"member_id"`
	StartDate            time.Time       `json:"start_date"`
	EndDate              time.Time       `json:"end_date"`
	AmountPerInstallment decimal.Decimal `json:"amount_per_installment"`
	Frequency            string          `json:"frequency"`
	TotalInstallments    int             `json:"total_installments"`
	InterestRate         decimal.Decimal `json:"interest_rate"`
	Status               string          `json:"status"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// DepositFromDomain converts a domain recurring deposit to a response.
func DepositFromDomain(d *domain.RecurringDeposit) *DepositResponse {
	return &DepositResponse{
		ID:                   d.ID,
		AccountID:            d.AccountID,
		MemberID:             d.MemberID,
		StartDate:            d.StartDate,
		EndDate:              d.EndDate,
		AmountPerInstallment: d.AmountPerInstallment,
		Frequency:            string(d.Frequency),
		TotalInstallments:    d.TotalInstallments,
		InterestRate:         d.InterestRate,
		Status:               string(d.Status),
		CreatedAt:            d.CreatedAt,
		UpdatedAt:            d.UpdatedAt,
	}
}

// DepositsFromDomain converts domain recurring deposits to responses.
func DepositsFromDomain(deposits []*domain.RecurringDeposit) []*DepositResponse {
	result := make([]*DepositResponse, len(deposits))
	for i, d := range deposits {
		result[i] = DepositFromDomain(d)
	}
	return result
}

// InstallmentResponse represents one deposit installment in API responses.
type InstallmentResponse struct {
	ID        string          `json:"id"`
	DepositID string          `json:"deposit_id"`
	Sequence  int             `json:"sequence"`
	DueDate   time.Time       `json:"due_date"`
	Amount    decimal.Decimal `json:"amount"`
	PaidDate  *time.Time      `json:"paid_date,omitempty"`
	Status    string          `json:"status"`
}

// InstallmentFromDomain converts a domain installment to a response.
func InstallmentFromDomain(in *domain.Installment) *InstallmentResponse {
	return &InstallmentResponse{
		ID:        in.ID,
		DepositID: in.DepositID,
		Sequence:  in.Sequence,
		DueDate:   in.DueDate,
		Amount:    in.Amount,
		PaidDate:  in.PaidDate,
		Status:    string(in.Status),
	}
}

// InstallmentsFromDomain converts domain installments to responses.
func InstallmentsFromDomain(installments []*domain.Installment) []*InstallmentResponse {
	result := make([]*InstallmentResponse, len(installments))
	for i, in := range installments {
		result[i] = InstallmentFromDomain(in)
	}
	return result
}

// PenaltyResponse carries a computed penalty amount.
type PenaltyResponse struct {
	DepositID string          `json:"deposit_id"`
	Penalty   decimal.Decimal `json:"penalty"`
}

// ClosureResponse carries the early-closure penalty of a deposit.
type ClosureResponse struct {
	DepositID string          `json:"deposit_id"`
	Status    string          `json:"status"`
	Penalty   decimal.Decimal `json:"penalty"`
}

// DriftResponse reports one account whose balance disagrees with its
// journal.
type DriftResponse struct {
	AccountID      string          `json:"account_id"`
	AccountNumber  string          `json:"account_number"`
	Balance        decimal.Decimal `json:"balance"`
	JournalBalance decimal.Decimal `json:"journal_balance"`
}

// ConsistencyResponse is the result of a ledger-wide integrity check.
type ConsistencyResponse struct {
	Consistent bool             `json:"consistent"`
	Drift      []*DriftResponse `json:"drift"`
}

// ConsistencyFromReport converts a consistency report to a response.
func ConsistencyFromReport(report *usecase.ConsistencyReport) *ConsistencyResponse {
	drift := make([]*DriftResponse, len(report.Drift))
	for i, d := range report.Drift {
		drift[i] = &DriftResponse{
			AccountID:      d.AccountID,
			AccountNumber:  d.AccountNumber,
			Balance:        d.Balance,
			JournalBalance: d.JournalBalance,
		}
	}
	return &ConsistencyResponse{
		Consistent: report.Consistent,
		Drift:      drift,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
