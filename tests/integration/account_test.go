package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/cobanker/corebank/internal/domain"
	"github.com/cobanker/corebank/internal/usecase"
	"github.com/cobanker/corebank/tests/testutil"
)

func TestAccountLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	accountUC := newAccountUseCase(testDB)

	testDB.TruncateAll(ctx)

	bankID := "bank-1"
	branchID := testDB.CreateTestBranch(ctx, bankID, "head office")
	customer := testDB.CreateTestCustomer(ctx, bankID, branchID, "life.cycle")
	actor := tellerActor(bankID, branchID)

	account, err := accountUC.OpenAccount(ctx, actor, usecase.OpenAccountInput{
		CustomerID:     customer.ID,
		Type:           domain.AccountTypeSavings,
		InitialBalance: decimal.NewFromInt(200),
		BranchID:       branchID,
		BankID:         bankID,
	})
	if err != nil {
		t.Fatalf("failed to open account: %v", err)
	}
	if account.Status != domain.AccountStatusPending {
		t.Fatalf("expected new account to be pending, got %s", account.Status)
	}

	// Movements on a pending account must fail.
	if _, err := accountUC.RecordMovement(ctx, actor, usecase.RecordMovementInput{
		AccountID: account.ID,
		Amount:    decimal.NewFromInt(50),
		Kind:      domain.TransactionDeposit,
	}); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState for pending account, got %v", err)
	}

	if _, err := accountUC.Activate(ctx, actor, account.ID); err != nil {
		t.Fatalf("failed to activate account: %v", err)
	}

	result, err := accountUC.RecordMovement(ctx, actor, usecase.RecordMovementInput{
		AccountID: account.ID,
		Amount:    decimal.NewFromInt(100),
		Kind:      domain.TransactionDeposit,
	})
	if err != nil {
		t.Fatalf("failed to deposit: %v", err)
	}
	if !result.Account.Balance.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("expected balance 300, got %s", result.Account.Balance)
	}
	if !result.Transaction.NewBalance.Equal(result.Account.Balance) {
		t.Fatalf("expected journal row to carry the committed balance, got %s", result.Transaction.NewBalance)
	}

	// Closing with a non-zero balance must fail.
	if _, err := accountUC.Close(ctx, actor, account.ID); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState closing non-zero account, got %v", err)
	}

	if _, err := accountUC.RecordMovement(ctx, actor, usecase.RecordMovementInput{
		AccountID: account.ID,
		Amount:    decimal.NewFromInt(300),
		Kind:      domain.TransactionWithdrawal,
	}); err != nil {
		t.Fatalf("failed to withdraw remaining balance: %v", err)
	}

	closed, err := accountUC.Close(ctx, actor, account.ID)
	if err != nil {
		t.Fatalf("failed to close zero-balance account: %v", err)
	}
	if closed.Status != domain.AccountStatusClosed {
		t.Fatalf("expected closed status, got %s", closed.Status)
	}

	// Movements after close must fail.
	if _, err := accountUC.RecordMovement(ctx, actor, usecase.RecordMovementInput{
		AccountID: account.ID,
		Amount:    decimal.NewFromInt(10),
		Kind:      domain.TransactionDeposit,
	}); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState after close, got %v", err)
	}
}
