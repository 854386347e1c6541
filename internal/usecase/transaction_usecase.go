package usecase

import (
	"context"

	"github.com/cobanker/corebank/internal/domain"
)

// TransactionUseCase serves journal queries and the transaction-typed entry
// point into the ledger workflow.
type TransactionUseCase struct {
	accountUC   *AccountUseCase
	txnRepo     TransactionRepository
	accountRepo AccountRepository
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(accountUC *AccountUseCase, txnRepo TransactionRepository, accountRepo AccountRepository) *TransactionUseCase {
	return &TransactionUseCase{
		accountUC:   accountUC,
		txnRepo:     txnRepo,
		accountRepo: accountRepo,
	}
}

// Create applies a movement through the ledger workflow and returns the
// journal record.
func (uc *TransactionUseCase) Create(ctx context.Context, actor domain.Actor, input RecordMovementInput) (*domain.Transaction, error) {
	result, err := uc.accountUC.RecordMovement(ctx, actor, input)
	if err != nil {
		return nil, err
	}
	return result.Transaction, nil
}

// Get retrieves a transaction by ID, enforcing tenant isolation through the
// owning account.
func (uc *TransactionUseCase) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Transaction, error) {
	txn, err := uc.txnRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	account, err := uc.accountRepo.GetByID(ctx, txn.AccountID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessBank(account.BankID) {
		return nil, domain.ErrAccessDenied
	}

	return txn, nil
}

// List lists journal records matching the filter. When the filter names an
// account, tenancy is checked against it; otherwise non-admin callers are
// pinned to their own bank.
func (uc *TransactionUseCase) List(ctx context.Context, actor domain.Actor, filter TransactionFilter) ([]*domain.Transaction, error) {
	if filter.AccountID != "" {
		account, err := uc.accountRepo.GetByID(ctx, filter.AccountID)
		if err != nil {
			return nil, err
		}
		if !actor.CanAccessBank(account.BankID) {
			return nil, domain.ErrAccessDenied
		}
	} else if actor.Role != domain.RoleAdmin {
		filter.BankID = actor.BankID
	}

	filter.Limit, filter.Offset = domain.ClampPagination(filter.Limit, filter.Offset)

	return uc.txnRepo.List(ctx, filter)
}
