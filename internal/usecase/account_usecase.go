package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cobanker/corebank/internal/domain"
)

const defaultSummaryCacheTTL = 30 * time.Second

// AccountUseCase owns the account ledger workflow: lifecycle transitions
// and balance movements. A movement and its journal record commit as one
// unit; concurrent movements against the same account are serialized by a
// row lock held for the duration of the read-modify-write.
type AccountUseCase struct {
	txManager    TransactionManager
	retrier      Retrier
	accountRepo  AccountRepository
	txnRepo      TransactionRepository
	customerRepo CustomerRepository
	branchRepo   BranchRepository
	idGen        IDGenerator
	numGen       NumberGenerator
	cache        SummaryCache
	cacheTTL     time.Duration
}

// NewAccountUseCase creates a new AccountUseCase. cache may be nil; a
// non-positive cacheTTL falls back to 30 seconds.
func NewAccountUseCase(
	txManager TransactionManager,
	retrier Retrier,
	accountRepo AccountRepository,
	txnRepo TransactionRepository,
	customerRepo CustomerRepository,
	branchRepo BranchRepository,
	idGen IDGenerator,
	numGen NumberGenerator,
	cache SummaryCache,
	cacheTTL time.Duration,
) *AccountUseCase {
	if cacheTTL <= 0 {
		cacheTTL = defaultSummaryCacheTTL
	}
	return &AccountUseCase{
		txManager:    txManager,
		retrier:      retrier,
		accountRepo:  accountRepo,
		txnRepo:      txnRepo,
		customerRepo: customerRepo,
		branchRepo:   branchRepo,
		idGen:        idGen,
		numGen:       numGen,
		cache:        cache,
		cacheTTL:     cacheTTL,
	}
}

// OpenAccountInput represents input for opening an account.
type OpenAccountInput struct {
	CustomerID            string
	Type                  domain.AccountType
	InitialBalance        decimal.Decimal
	InterestRate          decimal.Decimal
	MinimumBalance        decimal.Decimal
	OverdraftLimit        decimal.Decimal
	MonthlyMaintenanceFee decimal.Decimal
	BranchID              string
	BankID                string
	Description           string
}

// OpenAccount creates a pending account with a freshly generated account
// number. A positive initial balance is journalled as an opening deposit in
// the same commit, so the balance always equals the sum of the journal.
func (uc *AccountUseCase) OpenAccount(ctx context.Context, actor domain.Actor, input OpenAccountInput) (*domain.Account, error) {
	if !actor.CanMutate() {
		return nil, domain.ErrAccessDenied
	}

	branchID := input.BranchID
	if branchID == "" {
		branchID = actor.BranchID
	}
	bankID := input.BankID
	if bankID == "" {
		bankID = actor.BankID
	}
	if !actor.CanAccessBank(bankID) {
		return nil, domain.ErrAccessDenied
	}

	customer, err := uc.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if !customer.IsActive() {
		return nil, fmt.Errorf("%w: customer is not active", domain.ErrCustomerNotFound)
	}

	exists, err := uc.branchRepo.Exists(ctx, branchID, bankID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrBranchNotFound
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:                    uc.idGen.Generate(),
		AccountNumber:         uc.numGen.Next(),
		CustomerID:            customer.ID,
		Type:                  input.Type,
		Balance:               input.InitialBalance,
		InterestRate:          input.InterestRate,
		MinimumBalance:        input.MinimumBalance,
		OverdraftLimit:        input.OverdraftLimit,
		MonthlyMaintenanceFee: input.MonthlyMaintenanceFee,
		Status:                domain.AccountStatusPending,
		BranchID:              branchID,
		BankID:                bankID,
		Description:           input.Description,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}

	err = uc.createWithJournal(ctx, actor, account, now)
	if errors.Is(err, domain.ErrConflict) {
		// Practically unreachable collision on the generated number.
		account.AccountNumber = uc.numGen.Next()
		err = uc.createWithJournal(ctx, actor, account, now)
	}
	if err != nil {
		return nil, err
	}

	return account, nil
}

func (uc *AccountUseCase) createWithJournal(ctx context.Context, actor domain.Actor, account *domain.Account, now time.Time) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := uc.accountRepo.Create(ctx, tx, account); err != nil {
		return err
	}

	if account.Balance.IsPositive() {
		opening := &domain.Transaction{
			ID:              uc.idGen.Generate(),
			ReferenceNumber: uuid.NewString(),
			AccountID:       account.ID,
			Kind:            domain.TransactionDeposit,
			Amount:          account.Balance,
			Description:     "opening balance",
			Status:          domain.TransactionStatusCompleted,
			PerformedBy:     actor.UserID,
			PreviousBalance: decimal.Zero,
			NewBalance:      account.Balance,
			CreatedAt:       now,
		}
		if err := uc.txnRepo.Create(ctx, tx, opening); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// GetAccount retrieves an account by ID, enforcing tenant isolation.
func (uc *AccountUseCase) GetAccount(ctx context.Context, actor domain.Actor, id string) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessBank(account.BankID) {
		return nil, domain.ErrAccessDenied
	}
	return account, nil
}

// GetAccountByNumber retrieves an account by its account number.
func (uc *AccountUseCase) GetAccountByNumber(ctx context.Context, actor domain.Actor, number string) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessBank(account.BankID) {
		return nil, domain.ErrAccessDenied
	}
	return account, nil
}

// ListAccountsByCustomer lists a customer's accounts.
func (uc *AccountUseCase) ListAccountsByCustomer(ctx context.Context, actor domain.Actor, customerID string, filter AccountFilter) ([]*domain.Account, error) {
	customer, err := uc.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessBank(customer.BankID) {
		return nil, domain.ErrAccessDenied
	}

	filter.Limit, filter.Offset = domain.ClampPagination(filter.Limit, filter.Offset)

	return uc.accountRepo.ListByCustomer(ctx, customerID, filter)
}

// GetSummary returns the read-only summary projection, served from cache
// when fresh.
func (uc *AccountUseCase) GetSummary(ctx context.Context, actor domain.Actor, id string) (*domain.Summary, error) {
	if uc.cache != nil {
		if raw, err := uc.cache.Get(ctx, summaryKey(id)); err == nil && raw != nil {
			var cached cachedSummary
			if json.Unmarshal(raw, &cached) == nil && actor.CanAccessBank(cached.BankID) {
				return &cached.Summary, nil
			}
		}
	}

	account, err := uc.GetAccount(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	summary := account.Summarize()
	if uc.cache != nil {
		if raw, err := json.Marshal(cachedSummary{Summary: summary, BankID: account.BankID}); err == nil {
			_ = uc.cache.Set(ctx, summaryKey(id), raw, uc.cacheTTL)
		}
	}

	return &summary, nil
}

type cachedSummary struct {
	Summary domain.Summary `json:"summary"`
	BankID  string         `json:"bank_id"`
}

func summaryKey(id string) string {
	return "account:summary:" + id
}

// Activate transitions an account to active. A no-op if already active.
func (uc *AccountUseCase) Activate(ctx context.Context, actor domain.Actor, id string) (*domain.Account, error) {
	return uc.transition(ctx, actor, id, domain.AccountStatusActive, "")
}

// Suspend transitions an account to suspended. Requires a reason and is a
// no-op if already suspended.
func (uc *AccountUseCase) Suspend(ctx context.Context, actor domain.Actor, id, reason string) (*domain.Account, error) {
	if reason == "" {
		return nil, fmt.Errorf("%w: suspension reason is required", domain.ErrValidation)
	}
	return uc.transition(ctx, actor, id, domain.AccountStatusSuspended, reason)
}

// Close transitions an account to closed. Only legal at zero balance;
// closed is terminal.
func (uc *AccountUseCase) Close(ctx context.Context, actor domain.Actor, id string) (*domain.Account, error) {
	return uc.transition(ctx, actor, id, domain.AccountStatusClosed, "")
}

func (uc *AccountUseCase) transition(ctx context.Context, actor domain.Actor, id string, target domain.AccountStatus, reason string) (*domain.Account, error) {
	if !actor.CanMutate() {
		return nil, domain.ErrAccessDenied
	}

	var account *domain.Account

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		account, err = uc.accountRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if !actor.CanAccessBank(account.BankID) {
			return domain.ErrAccessDenied
		}

		// Idempotent no-op when already in the target state.
		if account.Status == target {
			return nil
		}

		if !account.CanTransitionTo(target) {
			if target == domain.AccountStatusClosed && !account.Balance.IsZero() {
				return fmt.Errorf("%w: cannot close account with nonzero balance", domain.ErrInvalidState)
			}
			return fmt.Errorf("%w: cannot transition from %s to %s", domain.ErrInvalidState, account.Status, target)
		}

		now := time.Now().UTC()
		if err := uc.accountRepo.UpdateStatus(ctx, tx, id, target, now); err != nil {
			return err
		}

		account.Status = target
		account.UpdatedAt = now
		_ = reason // recorded in the request log; the row keeps only the state

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateSummary(ctx, id)

	return account, nil
}

// RecordMovementInput represents input for applying a movement.
type RecordMovementInput struct {
	AccountID       string
	Amount          decimal.Decimal
	Kind            domain.TransactionKind
	Description     string
	ReferenceNumber string
}

// MovementResult is the outcome of a committed movement.
type MovementResult struct {
	Account     *domain.Account
	Transaction *domain.Transaction
}

// RecordMovement applies a signed movement to an account and journals it.
// The balance write and the journal insert commit atomically; the account
// row is locked from read to commit so concurrent debits cannot jointly
// pass the floor check. A caller-supplied reference number is checked for
// uniqueness inside the same transaction, making retries safe.
func (uc *AccountUseCase) RecordMovement(ctx context.Context, actor domain.Actor, input RecordMovementInput) (*MovementResult, error) {
	if !actor.CanMutate() {
		return nil, domain.ErrAccessDenied
	}
	if !input.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}
	if !input.Kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown transaction kind %q", domain.ErrValidation, input.Kind)
	}
	if len(input.Description) > domain.MaxDescriptionLength {
		return nil, fmt.Errorf("%w: description exceeds %d characters", domain.ErrValidation, domain.MaxDescriptionLength)
	}

	var result *MovementResult

	err := uc.retrier.Retry(ctx, func() error {
		res, err := uc.applyMovement(ctx, actor, input)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateSummary(ctx, input.AccountID)

	return result, nil
}

func (uc *AccountUseCase) applyMovement(ctx context.Context, actor domain.Actor, input RecordMovementInput) (*MovementResult, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, input.AccountID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessBank(account.BankID) {
		return nil, domain.ErrAccessDenied
	}
	if !account.CanTransact() {
		return nil, fmt.Errorf("%w: account is %s", domain.ErrInvalidState, account.Status)
	}

	reference := input.ReferenceNumber
	if reference == "" {
		reference = uuid.NewString()
	} else {
		// Reapplying a reference the journal already holds is a retry of a
		// movement that committed; reject it instead of double-applying.
		existing, err := uc.txnRepo.GetByReference(ctx, tx, reference)
		if err != nil && !errors.Is(err, domain.ErrTransactionNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: reference number already used", domain.ErrConflict)
		}
	}

	previous := account.Balance

	var newBalance decimal.Decimal
	if input.Kind.Direction() == domain.DirectionCredit {
		newBalance = previous.Add(input.Amount)
	} else {
		if err := account.ValidateDebit(input.Amount); err != nil {
			return nil, err
		}
		newBalance = previous.Sub(input.Amount)
	}

	now := time.Now().UTC()
	txn := &domain.Transaction{
		ID:              uc.idGen.Generate(),
		ReferenceNumber: reference,
		AccountID:       account.ID,
		Kind:            input.Kind,
		Amount:          input.Amount,
		Description:     input.Description,
		Status:          domain.TransactionStatusCompleted,
		PerformedBy:     actor.UserID,
		PreviousBalance: previous,
		NewBalance:      newBalance,
		CreatedAt:       now,
	}

	if err := uc.accountRepo.UpdateBalance(ctx, tx, account.ID, newBalance, now); err != nil {
		return nil, err
	}
	if err := uc.txnRepo.Create(ctx, tx, txn); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	account.Balance = newBalance
	account.UpdatedAt = now

	return &MovementResult{Account: account, Transaction: txn}, nil
}

func (uc *AccountUseCase) invalidateSummary(ctx context.Context, id string) {
	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, summaryKey(id))
	}
}
