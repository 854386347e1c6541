package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cobanker/corebank/internal/domain"
)

// LoanUseCase handles loans, guarantors and repayment schedules.
type LoanUseCase struct {
	txManager  TransactionManager
	loanRepo   LoanRepository
	memberRepo MemberRepository
	idGen      IDGenerator
}

// NewLoanUseCase creates a new LoanUseCase.
func NewLoanUseCase(txManager TransactionManager, loanRepo LoanRepository, memberRepo MemberRepository, idGen IDGenerator) *LoanUseCase {
	return &LoanUseCase{
		txManager:  txManager,
		loanRepo:   loanRepo,
		memberRepo: memberRepo,
		idGen:      idGen,
	}
}

// CreateLoanInput represents input for creating a loan.
type CreateLoanInput struct {
	MemberID      string
	Type          domain.LoanType
	Amount        decimal.Decimal
	InterestRate  decimal.Decimal
	RepaymentTerm int
	MaturityDate  *time.Time
	BranchID      string
}

// CreateLoan creates a pending loan for an active member with no ongoing
// loans.
func (uc *LoanUseCase) CreateLoan(ctx context.Context, actor domain.Actor, input CreateLoanInput) (*domain.Loan, error) {
	if !actor.CanMutate() {
		return nil, domain.ErrAccessDenied
	}

	member, err := uc.memberRepo.GetByID(ctx, input.MemberID)
	if err != nil {
		return nil, err
	}
	if !member.IsActive() {
		return nil, fmt.Errorf("%w: member is not active", domain.ErrInvalidState)
	}

	ongoing, err := uc.loanRepo.CountOngoing(ctx, input.MemberID)
	if err != nil {
		return nil, err
	}
	if ongoing > 0 {
		return nil, fmt.Errorf("%w: member has ongoing loans", domain.ErrInvalidState)
	}

	branchID := input.BranchID
	if branchID == "" {
		branchID = actor.BranchID
	}

	now := time.Now().UTC()
	loan := &domain.Loan{
		ID:              uc.idGen.Generate(),
		MemberID:        input.MemberID,
		BranchID:        branchID,
		BankID:          actor.BankID,
		Type:            input.Type,
		Amount:          input.Amount,
		InterestRate:    input.InterestRate,
		RepaymentTerm:   input.RepaymentTerm,
		MaturityDate:    input.MaturityDate,
		Status:          domain.LoanStatusPending,
		RepaymentStatus: domain.RepaymentOngoing,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := loan.Validate(); err != nil {
		return nil, err
	}

	if err := uc.loanRepo.Create(ctx, loan); err != nil {
		return nil, err
	}

	return loan, nil
}

// GetLoan retrieves a loan by ID, enforcing tenant isolation.
func (uc *LoanUseCase) GetLoan(ctx context.Context, actor domain.Actor, id string) (*domain.Loan, error) {
	loan, err := uc.loanRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessBank(loan.BankID) {
		return nil, domain.ErrAccessDenied
	}
	return loan, nil
}

// ListLoans lists loans matching the filter. Non-admin callers are pinned
// to their own bank.
func (uc *LoanUseCase) ListLoans(ctx context.Context, actor domain.Actor, filter LoanFilter) ([]*domain.Loan, error) {
	if actor.Role != domain.RoleAdmin {
		filter.BankID = actor.BankID
	}
	filter.Limit, filter.Offset = domain.ClampPagination(filter.Limit, filter.Offset)
	return uc.loanRepo.List(ctx, filter)
}

// UpdateLoanStatus moves a loan through its approval lifecycle. Disbursal
// generates the repayment schedule atomically with the status change.
func (uc *LoanUseCase) UpdateLoanStatus(ctx context.Context, actor domain.Actor, id string, status domain.LoanStatus) (*domain.Loan, error) {
	if !actor.CanMutate() {
		return nil, domain.ErrAccessDenied
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown loan status %q", domain.ErrValidation, status)
	}

	loan, err := uc.GetLoan(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !loan.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: cannot move loan from %s to %s", domain.ErrInvalidState, loan.Status, status)
	}

	disbursing := status == domain.LoanStatusDisbursed

	loan.Status = status
	loan.UpdatedAt = time.Now().UTC()

	if !disbursing {
		if err := uc.loanRepo.Update(ctx, loan); err != nil {
			return nil, err
		}
		return loan, nil
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.loanRepo.UpdateTx(ctx, tx, loan); err != nil {
		return nil, err
	}
	if err := uc.loanRepo.CreateSchedule(ctx, tx, uc.buildSchedule(loan)); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return loan, nil
}

// buildSchedule generates equal monthly installments starting one month
// after disbursal.
func (uc *LoanUseCase) buildSchedule(loan *domain.Loan) []domain.LoanRepayment {
	emi := loan.EMI()
	due := loan.UpdatedAt

	entries := make([]domain.LoanRepayment, loan.RepaymentTerm)
	for i := range entries {
		due = due.AddDate(0, 1, 0)
		entries[i] = domain.LoanRepayment{
			ID:                uc.idGen.Generate(),
			LoanID:            loan.ID,
			InstallmentNumber: i + 1,
			DueDate:           due,
			EMIAmount:         emi,
			Penalty:           decimal.Zero,
			Status:            domain.RepaymentEntryPending,
		}
	}
	return entries
}

// AddGuarantor attaches a guarantor to a loan.
func (uc *LoanUseCase) AddGuarantor(ctx context.Context, actor domain.Actor, loanID string, guarantor domain.Guarantor) (*domain.Guarantor, error) {
	if !actor.CanMutate() {
		return nil, domain.ErrAccessDenied
	}
	if guarantor.Name == "" {
		return nil, fmt.Errorf("%w: guarantor name is required", domain.ErrValidation)
	}

	if _, err := uc.GetLoan(ctx, actor, loanID); err != nil {
		return nil, err
	}

	guarantor.ID = uc.idGen.Generate()
	guarantor.LoanID = loanID
	guarantor.CreatedAt = time.Now().UTC()

	if err := uc.loanRepo.AddGuarantor(ctx, &guarantor); err != nil {
		return nil, err
	}

	return &guarantor, nil
}

// ListGuarantors lists a loan's guarantors.
func (uc *LoanUseCase) ListGuarantors(ctx context.Context, actor domain.Actor, loanID string) ([]*domain.Guarantor, error) {
	if _, err := uc.GetLoan(ctx, actor, loanID); err != nil {
		return nil, err
	}
	return uc.loanRepo.ListGuarantors(ctx, loanID)
}

// RecordRepaymentInput represents input for recording a repayment against a
// schedule entry.
type RecordRepaymentInput struct {
	InstallmentNumber int
	PaidAmount        decimal.Decimal
	PaidDate          time.Time
	Penalty           decimal.Decimal
	TransactionID     string
}

// RecordRepayment marks a schedule entry paid or partial by comparing the
// paid amount against the installment's EMI.
func (uc *LoanUseCase) RecordRepayment(ctx context.Context, actor domain.Actor, loanID string, input RecordRepaymentInput) (*domain.LoanRepayment, error) {
	if !actor.CanMutate() {
		return nil, domain.ErrAccessDenied
	}
	if !input.PaidAmount.IsPositive() {
		return nil, fmt.Errorf("%w: paid amount must be positive", domain.ErrValidation)
	}
	if input.Penalty.IsNegative() {
		return nil, fmt.Errorf("%w: penalty must not be negative", domain.ErrValidation)
	}

	loan, err := uc.GetLoan(ctx, actor, loanID)
	if err != nil {
		return nil, err
	}
	if !loan.AcceptsRepayments() {
		return nil, fmt.Errorf("%w: repayments require a disbursed or approved loan", domain.ErrInvalidState)
	}

	entry, err := uc.loanRepo.GetScheduleEntry(ctx, loanID, input.InstallmentNumber)
	if err != nil {
		return nil, err
	}

	entry.PaidAmount = input.PaidAmount
	entry.PaidDate = &input.PaidDate
	entry.Penalty = input.Penalty
	entry.TransactionID = input.TransactionID
	if input.PaidAmount.GreaterThanOrEqual(entry.EMIAmount) {
		entry.Status = domain.RepaymentEntryPaid
	} else {
		entry.Status = domain.RepaymentEntryPartial
	}

	if err := uc.loanRepo.UpdateScheduleEntry(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// ListRepayments lists a loan's repayment schedule.
func (uc *LoanUseCase) ListRepayments(ctx context.Context, actor domain.Actor, loanID string) ([]*domain.LoanRepayment, error) {
	if _, err := uc.GetLoan(ctx, actor, loanID); err != nil {
		return nil, err
	}
	return uc.loanRepo.ListSchedule(ctx, loanID)
}
