package integration

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cobanker/corebank/internal/adapter/repository/postgres"
	"github.com/cobanker/corebank/internal/domain"
	"github.com/cobanker/corebank/internal/usecase"
	"github.com/cobanker/corebank/tests/testutil"
)

func newAccountUseCase(testDB *testutil.TestDB) *usecase.AccountUseCase {
	pool := testDB.Pool

	return usecase.NewAccountUseCase(
		postgres.NewTxManager(pool),
		postgres.NewRetrier(zerolog.Nop()),
		postgres.NewAccountRepository(pool),
		postgres.NewTransactionRepository(pool),
		postgres.NewCustomerRepository(pool),
		postgres.NewBranchRepository(pool),
		postgres.NewULIDGenerator(),
		postgres.NewAccountNumberGenerator(),
		nil,
		0,
	)
}

func tellerActor(bankID, branchID string) domain.Actor {
	return domain.Actor{
		UserID:   "teller-1",
		Email:    "teller@bank.test",
		Role:     domain.RoleBranchEmployee,
		BankID:   bankID,
		BranchID: branchID,
	}
}

func TestConcurrentWithdrawals(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	accountUC := newAccountUseCase(testDB)

	t.Run("only the floor-respecting subset of concurrent debits succeeds", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		bankID := "bank-1"
		branchID := testDB.CreateTestBranch(ctx, bankID, "head office")
		customer := testDB.CreateTestCustomer(ctx, bankID, branchID, "con.current")
		actor := tellerActor(bankID, branchID)

		account, err := accountUC.OpenAccount(ctx, actor, usecase.OpenAccountInput{
			CustomerID:     customer.ID,
			Type:           domain.AccountTypeSavings,
			InitialBalance: decimal.NewFromInt(500),
			BranchID:       branchID,
			BankID:         bankID,
		})
		if err != nil {
			t.Fatalf("failed to open account: %v", err)
		}
		if _, err := accountUC.Activate(ctx, actor, account.ID); err != nil {
			t.Fatalf("failed to activate account: %v", err)
		}

		// 100 debits of 10 against a balance of 500: exactly 50 fit.
		numWithdrawals := 100
		amount := decimal.NewFromInt(10)

		var (
			wg           sync.WaitGroup
			successCount atomic.Int32
			failureCount atomic.Int32
		)

		wg.Add(numWithdrawals)
		for range numWithdrawals {
			go func() {
				defer wg.Done()

				_, err := accountUC.RecordMovement(ctx, actor, usecase.RecordMovementInput{
					AccountID: account.ID,
					Amount:    amount,
					Kind:      domain.TransactionWithdrawal,
				})
				if err != nil {
					failureCount.Add(1)
					return
				}
				successCount.Add(1)
			}()
		}
		wg.Wait()

		if got := successCount.Load(); got != 50 {
			t.Fatalf("expected exactly 50 withdrawals to succeed, got %d (failed %d)", got, failureCount.Load())
		}

		final, err := accountUC.GetAccount(ctx, actor, account.ID)
		if err != nil {
			t.Fatalf("failed to reload account: %v", err)
		}
		if !final.Balance.IsZero() {
			t.Fatalf("expected final balance 0, got %s", final.Balance)
		}
	})

	t.Run("mixed deposits and withdrawals keep balance equal to journal sum", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		bankID := "bank-1"
		branchID := testDB.CreateTestBranch(ctx, bankID, "head office")
		customer := testDB.CreateTestCustomer(ctx, bankID, branchID, "journal.sum")
		actor := tellerActor(bankID, branchID)

		account, err := accountUC.OpenAccount(ctx, actor, usecase.OpenAccountInput{
			CustomerID:     customer.ID,
			Type:           domain.AccountTypeSavings,
			InitialBalance: decimal.NewFromInt(1000),
			BranchID:       branchID,
			BankID:         bankID,
		})
		if err != nil {
			t.Fatalf("failed to open account: %v", err)
		}
		if _, err := accountUC.Activate(ctx, actor, account.ID); err != nil {
			t.Fatalf("failed to activate account: %v", err)
		}

		var wg sync.WaitGroup
		wg.Add(40)
		for i := range 40 {
			kind := domain.TransactionDeposit
			if i%2 == 0 {
				kind = domain.TransactionWithdrawal
			}
			go func(kind domain.TransactionKind) {
				defer wg.Done()
				_, _ = accountUC.RecordMovement(ctx, actor, usecase.RecordMovementInput{
					AccountID: account.ID,
					Amount:    decimal.NewFromInt(25),
					Kind:      kind,
				})
			}(kind)
		}
		wg.Wait()

		ledgerUC := usecase.NewLedgerUseCase(postgres.NewLedgerRepository(testDB.Pool))
		report, err := ledgerUC.CheckConsistency(ctx, domain.Actor{UserID: "admin-1", Role: domain.RoleAdmin})
		if err != nil {
			t.Fatalf("failed to check consistency: %v", err)
		}
		if !report.Consistent {
			t.Fatalf("expected balances to match journal, drift: %+v", report.Drift)
		}
	})
}
