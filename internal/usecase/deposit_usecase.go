package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cobanker/corebank/internal/domain"
)

// DepositUseCase handles recurring deposits and their installment
// schedules.
type DepositUseCase struct {
	txManager    TransactionManager
	depositRepo  DepositRepository
	accountRepo  AccountRepository
	memberRepo   MemberRepository
	customerRepo CustomerRepository
	idGen        IDGenerator
}

// NewDepositUseCase creates a new DepositUseCase.
func NewDepositUseCase(
	txManager TransactionManager,
	depositRepo DepositRepository,
	accountRepo AccountRepository,
	memberRepo MemberRepository,
	customerRepo CustomerRepository,
	idGen IDGenerator,
) *DepositUseCase {
	return &DepositUseCase{
		txManager:    txManager,
		depositRepo:  depositRepo,
		accountRepo:  accountRepo,
		memberRepo:   memberRepo,
		customerRepo: customerRepo,
		idGen:        idGen,
	}
}

// CreateDepositInput represents input for opening a recurring deposit.
type CreateDepositInput struct {
	AccountID            string
	MemberID             string
	StartDate            time.Time
	AmountPerInstallment decimal.Decimal
	Frequency            domain.DepositFrequency
	TotalInstallments    int
	InterestRate         decimal.Decimal
}

// CreateDeposit opens a recurring deposit and writes its full installment
// schedule in the same commit.
func (uc *DepositUseCase) CreateDeposit(ctx context.Context, actor domain.Actor, input CreateDepositInput) (*domain.RecurringDeposit, error) {
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

	account, err := uc.accountRepo.GetByID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessBank(account.BankID) {
		return nil, domain.ErrAccessDenied
	}

	now := time.Now().UTC()
	deposit := &domain.RecurringDeposit{
		ID:                   uc.idGen.Generate(),
		AccountID:            input.AccountID,
		MemberID:             input.MemberID,
		StartDate:            input.StartDate,
		AmountPerInstallment: input.AmountPerInstallment,
		Frequency:            input.Frequency,
		TotalInstallments:    input.TotalInstallments,
		InterestRate:         input.InterestRate,
		Status:               domain.DepositStatusActive,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := deposit.Validate(); err != nil {
		return nil, err
	}
	deposit.EndDate = deposit.MaturityDate()

	installments := deposit.Schedule()
	for i := range installments {
		installments[i].ID = uc.idGen.Generate()
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.depositRepo.Create(ctx, tx, deposit); err != nil {
		return nil, err
	}
	if err := uc.depositRepo.CreateInstallments(ctx, tx, installments); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return deposit, nil
}

// GetDeposit retrieves a recurring deposit by ID.
func (uc *DepositUseCase) GetDeposit(ctx context.Context, actor domain.Actor, id string) (*domain.RecurringDeposit, error) {
	deposit, err := uc.depositRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	account, err := uc.accountRepo.GetByID(ctx, deposit.AccountID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessBank(account.BankID) {
		return nil, domain.ErrAccessDenied
	}

	return deposit, nil
}

// ListDepositsByMember lists a member's recurring deposits. Tenancy is
// checked against the member's owning customer.
func (uc *DepositUseCase) ListDepositsByMember(ctx context.Context, actor domain.Actor, memberID string) ([]*domain.RecurringDeposit, error) {
	if memberID == "" {
		return nil, fmt.Errorf("%w: member_id is required", domain.ErrValidation)
	}

	member, err := uc.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	customer, err := uc.customerRepo.GetByID(ctx, member.CustomerID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessBank(customer.BankID) {
		return nil, domain.ErrAccessDenied
	}

	return uc.depositRepo.ListByMember(ctx, memberID)
}

// PayInstallment marks a due installment as paid.
func (uc *DepositUseCase) PayInstallment(ctx context.Context, actor domain.Actor, depositID, installmentID string) (*domain.Installment, error) {
	if !actor.CanMutate() {
		return nil, domain.ErrAccessDenied
	}

	deposit, err := uc.GetDeposit(ctx, actor, depositID)
	if err != nil {
		return nil, err
	}
	if deposit.Status != domain.DepositStatusActive {
		return nil, fmt.Errorf("%w: deposit is %s", domain.ErrInvalidState, deposit.Status)
	}

	installment, err := uc.depositRepo.GetInstallment(ctx, installmentID)
	if err != nil {
		return nil, err
	}
	if installment.DepositID != depositID {
		return nil, domain.ErrInstallmentNotFound
	}
	if installment.Status == domain.InstallmentPaid {
		return nil, fmt.Errorf("%w: installment already paid", domain.ErrInvalidState)
	}

	now := time.Now().UTC()
	installment.PaidDate = &now
	installment.Status = domain.InstallmentPaid

	if err := uc.depositRepo.UpdateInstallment(ctx, installment); err != nil {
		return nil, err
	}

	return installment, nil
}

// ListInstallments returns a deposit's installment schedule.
func (uc *DepositUseCase) ListInstallments(ctx context.Context, actor domain.Actor, depositID string) ([]*domain.Installment, error) {
	if _, err := uc.GetDeposit(ctx, actor, depositID); err != nil {
		return nil, err
	}
	return uc.depositRepo.ListInstallments(ctx, depositID)
}

// Penalty sums the missed-installment penalty for a deposit.
func (uc *DepositUseCase) Penalty(ctx context.Context, actor domain.Actor, depositID string) (decimal.Decimal, error) {
	if _, err := uc.GetDeposit(ctx, actor, depositID); err != nil {
		return decimal.Zero, err
	}

	installments, err := uc.depositRepo.ListInstallments(ctx, depositID)
	if err != nil {
		return decimal.Zero, err
	}

	schedule := make([]domain.Installment, len(installments))
	for i, in := range installments {
		schedule[i] = *in
	}

	return domain.MissedPenalty(schedule), nil
}

// CloseEarly closes an active deposit before maturity and returns the
// early-closure penalty.
func (uc *DepositUseCase) CloseEarly(ctx context.Context, actor domain.Actor, depositID string) (decimal.Decimal, error) {
	if !actor.CanMutate() {
		return decimal.Zero, domain.ErrAccessDenied
	}

	deposit, err := uc.GetDeposit(ctx, actor, depositID)
	if err != nil {
		return decimal.Zero, err
	}
	if deposit.Status != domain.DepositStatusActive {
		return decimal.Zero, fmt.Errorf("%w: deposit is %s", domain.ErrInvalidState, deposit.Status)
	}

	if err := uc.depositRepo.UpdateStatus(ctx, depositID, domain.DepositStatusClosed, time.Now().UTC()); err != nil {
		return decimal.Zero, err
	}

	return deposit.EarlyClosurePenalty(), nil
}
