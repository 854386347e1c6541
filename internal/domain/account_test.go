package domain

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
)

func TestAccount_ValidateDebit(t *testing.T) {
	tests := []struct {
		name           string
		balance        decimal.Decimal
		minimumBalance decimal.Decimal
		overdraftLimit decimal.Decimal
		amount         decimal.Decimal
		expectError    bool
	}{
		{
			name:           "debit above floor",
			balance:        decimal.NewFromInt(1000),
			minimumBalance: decimal.NewFromInt(500),
			amount:         decimal.NewFromInt(300),
			expectError:    false,
		},
		{
			name:           "debit below floor",
			balance:        decimal.NewFromInt(1000),
			minimumBalance: decimal.NewFromInt(500),
			amount:         decimal.NewFromInt(600),
			expectError:    true,
		},
		{
			name:           "debit exactly to floor",
			balance:        decimal.NewFromInt(1000),
			minimumBalance: decimal.NewFromInt(500),
			amount:         decimal.NewFromInt(500),
			expectError:    false,
		},
		{
			name:           "overdraft extends the floor",
			balance:        decimal.NewFromInt(1000),
			minimumBalance: decimal.NewFromInt(500),
			overdraftLimit: decimal.NewFromInt(200),
			amount:         decimal.NewFromInt(700),
			expectError:    false,
		},
		{
			name:           "debit past overdraft",
			balance:        decimal.NewFromInt(1000),
			minimumBalance: decimal.NewFromInt(500),
			overdraftLimit: decimal.NewFromInt(200),
			amount:         decimal.NewFromInt(701),
			expectError:    true,
		},
		{
			name:        "no minimum, full withdrawal",
			balance:     decimal.NewFromInt(100),
			amount:      decimal.NewFromInt(100),
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := &Account{
				Balance:        tt.balance,
				MinimumBalance: tt.minimumBalance,
				OverdraftLimit: tt.overdraftLimit,
			}

			err := acc.ValidateDebit(tt.amount)

			if tt.expectError && err == nil {
				t.Error("expected error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAccount_ValidateDebit_FloorProperty(t *testing.T) {
	// Random tuples: the check must reject exactly those debits that
	// would leave the balance below minimum_balance - overdraft_limit.
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 10000; i++ {
		acc := &Account{
			Balance:        decimal.NewFromInt(rng.Int63n(10000)),
			MinimumBalance: decimal.NewFromInt(rng.Int63n(5000)),
			OverdraftLimit: decimal.NewFromInt(rng.Int63n(2000)),
		}
		amount := decimal.NewFromInt(rng.Int63n(10000) + 1)

		err := acc.ValidateDebit(amount)
		violates := acc.Balance.Sub(amount).LessThan(acc.MinimumBalance.Sub(acc.OverdraftLimit))

		if violates && err == nil {
			t.Fatalf("balance=%s min=%s od=%s amount=%s: expected rejection",
				acc.Balance, acc.MinimumBalance, acc.OverdraftLimit, amount)
		}
		if !violates && err != nil {
			t.Fatalf("balance=%s min=%s od=%s amount=%s: unexpected rejection: %v",
				acc.Balance, acc.MinimumBalance, acc.OverdraftLimit, amount, err)
		}
	}
}

func TestAccount_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		status  AccountStatus
		balance decimal.Decimal
		target  AccountStatus
		want    bool
	}{
		{"pending to active", AccountStatusPending, decimal.Zero, AccountStatusActive, true},
		{"active to suspended", AccountStatusActive, decimal.NewFromInt(10), AccountStatusSuspended, true},
		{"suspended to active", AccountStatusSuspended, decimal.Zero, AccountStatusActive, true},
		{"close with zero balance", AccountStatusActive, decimal.Zero, AccountStatusClosed, true},
		{"close with nonzero balance", AccountStatusActive, decimal.NewFromInt(1), AccountStatusClosed, false},
		{"closed is terminal", AccountStatusClosed, decimal.Zero, AccountStatusActive, false},
		{"closed cannot be suspended", AccountStatusClosed, decimal.Zero, AccountStatusSuspended, false},
		{"cannot transition to pending", AccountStatusActive, decimal.Zero, AccountStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := &Account{Status: tt.status, Balance: tt.balance}
			if got := acc.CanTransitionTo(tt.target); got != tt.want {
				t.Errorf("CanTransitionTo(%s) = %v, want %v", tt.target, got, tt.want)
			}
		})
	}
}

func TestAccount_Validate(t *testing.T) {
	valid := func() *Account {
		return &Account{
			Type:           AccountTypeSavings,
			Balance:        decimal.NewFromInt(100),
			InterestRate:   decimal.NewFromFloat(3.5),
			MinimumBalance: decimal.NewFromInt(500),
		}
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := valid()
	bad.Type = "checking"
	if err := bad.Validate(); err == nil {
		t.Error("expected error for unknown account type")
	}

	bad = valid()
	bad.OverdraftLimit = decimal.NewFromInt(-1)
	if err := bad.Validate(); err == nil {
		t.Error("expected error for negative overdraft limit")
	}

	bad = valid()
	bad.Balance = decimal.NewFromInt(-10)
	if err := bad.Validate(); err == nil {
		t.Error("expected error for negative initial balance")
	}
}

func TestTransactionKind_Direction(t *testing.T) {
	tests := []struct {
		kind TransactionKind
		want Direction
	}{
		{TransactionDeposit, DirectionCredit},
		{TransactionLoanRepayment, DirectionCredit},
		{TransactionWithdrawal, DirectionDebit},
		{TransactionInterBranchTransfer, DirectionDebit},
	}

	for _, tt := range tests {
		if got := tt.kind.Direction(); got != tt.want {
			t.Errorf("%s direction = %s, want %s", tt.kind, got, tt.want)
		}
	}
}
