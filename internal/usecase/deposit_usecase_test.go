package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cobanker/corebank/internal/domain"
	"github.com/cobanker/corebank/internal/usecase"
	"github.com/cobanker/corebank/internal/usecase/mocks"
)

type depositFixture struct {
	uc       *usecase.DepositUseCase
	deposits *mocks.MockDepositRepository
	accounts *mocks.MockAccountRepository
}

func newDepositFixture() *depositFixture {
	deposits := mocks.NewMockDepositRepository()
	accounts := mocks.NewMockAccountRepository()
	members := mocks.NewMockMemberRepository()

	accounts.Seed(&domain.Account{
		ID:         "acc-1",
		CustomerID: "cust-1",
		Type:       domain.AccountTypeRecurringDeposit,
		Status:     domain.AccountStatusActive,
		BankID:     "bank-1",
	})
	members.Seed(&domain.Member{ID: "mem-1", CustomerID: "cust-1", Status: domain.MemberStatusActive})
	members.Seed(&domain.Member{ID: "mem-2", CustomerID: "cust-2", Status: domain.MemberStatusInactive})

	customers := mocks.NewMockCustomerRepository()
	customers.Seed(&domain.Customer{ID: "cust-1", Status: domain.CustomerStatusActive, BankID: "bank-1"})
	customers.Seed(&domain.Customer{ID: "cust-2", Status: domain.CustomerStatusActive, BankID: "bank-1"})

	uc := usecase.NewDepositUseCase(
		mocks.NewMockTxManager(), deposits, accounts, members, customers, mocks.NewMockIDGenerator(),
	)
	return &depositFixture{uc: uc, deposits: deposits, accounts: accounts}
}

func validDepositInput() usecase.CreateDepositInput {
	return usecase.CreateDepositInput{
		AccountID:            "acc-1",
		MemberID:             "mem-1",
		StartDate:            time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		AmountPerInstallment: decimal.RequireFromString("1000"),
		Frequency:            domain.FrequencyMonthly,
		TotalInstallments:    10,
		InterestRate:         decimal.RequireFromString("6.5"),
	}
}

func TestDepositUseCase_CreateDeposit(t *testing.T) {
	ctx := context.Background()

	t.Run("opens deposit with full schedule", func(t *testing.T) {
		f := newDepositFixture()

		deposit, err := f.uc.CreateDeposit(ctx, employee, validDepositInput())
		if err != nil {
			t.Fatalf("CreateDeposit() error = %v", err)
		}
		if deposit.Status != domain.DepositStatusActive {
			t.Errorf("status = %s, want active", deposit.Status)
		}
		want := time.Date(2026, 11, 15, 0, 0, 0, 0, time.UTC)
		if !deposit.EndDate.Equal(want) {
			t.Errorf("end date = %s, want %s", deposit.EndDate, want)
		}

		installments, err := f.deposits.ListInstallments(ctx, deposit.ID)
		if err != nil {
			t.Fatalf("ListInstallments() error = %v", err)
		}
		if len(installments) != 10 {
			t.Fatalf("schedule has %d rows, want 10", len(installments))
		}
		for _, in := range installments {
			if in.Status != domain.InstallmentDue {
				t.Errorf("installment %d status = %s, want due", in.Sequence, in.Status)
			}
			if in.ID == "" {
				t.Errorf("installment %d has no ID", in.Sequence)
			}
		}
	})

	tests := []struct {
		name    string
		actor   domain.Actor
		mutate  func(*usecase.CreateDepositInput)
		wantErr error
	}{
		{
			name:    "inactive member",
			actor:   employee,
			mutate:  func(in *usecase.CreateDepositInput) { in.MemberID = "mem-2" },
			wantErr: domain.ErrInvalidState,
		},
		{
			name:    "unknown account",
			actor:   employee,
			mutate:  func(in *usecase.CreateDepositInput) { in.AccountID = "acc-99" },
			wantErr: domain.ErrAccountNotFound,
		},
		{
			name:    "zero installments",
			actor:   employee,
			mutate:  func(in *usecase.CreateDepositInput) { in.TotalInstallments = 0 },
			wantErr: domain.ErrValidation,
		},
		{
			name:    "unknown frequency",
			actor:   employee,
			mutate:  func(in *usecase.CreateDepositInput) { in.Frequency = "daily" },
			wantErr: domain.ErrValidation,
		},
		{
			name:    "cross-bank account denied",
			actor:   outsider,
			mutate:  func(in *usecase.CreateDepositInput) {},
			wantErr: domain.ErrAccessDenied,
		},
		{
			name:    "customer role denied",
			actor:   reader,
			mutate:  func(in *usecase.CreateDepositInput) {},
			wantErr: domain.ErrAccessDenied,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newDepositFixture()
			input := validDepositInput()
			tt.mutate(&input)

			_, err := f.uc.CreateDeposit(ctx, tt.actor, input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateDeposit() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDepositUseCase_ListDepositsByMember(t *testing.T) {
	ctx := context.Background()
	f := newDepositFixture()

	deposit, err := f.uc.CreateDeposit(ctx, employee, validDepositInput())
	if err != nil {
		t.Fatalf("CreateDeposit() error = %v", err)
	}

	deposits, err := f.uc.ListDepositsByMember(ctx, employee, "mem-1")
	if err != nil {
		t.Fatalf("ListDepositsByMember() error = %v", err)
	}
	if len(deposits) != 1 || deposits[0].ID != deposit.ID {
		t.Fatalf("listing has %d deposits, want the opened one", len(deposits))
	}

	// Tenancy flows through the member's owning customer.
	if _, err := f.uc.ListDepositsByMember(ctx, outsider, "mem-1"); !errors.Is(err, domain.ErrAccessDenied) {
		t.Errorf("listing by outsider error = %v, want access denied", err)
	}
	if _, err := f.uc.ListDepositsByMember(ctx, employee, "mem-missing"); !errors.Is(err, domain.ErrMemberNotFound) {
		t.Errorf("listing for missing member error = %v, want not found", err)
	}
}

func TestDepositUseCase_PayInstallment(t *testing.T) {
	ctx := context.Background()
	f := newDepositFixture()

	deposit, err := f.uc.CreateDeposit(ctx, employee, validDepositInput())
	if err != nil {
		t.Fatalf("CreateDeposit() error = %v", err)
	}
	installments, _ := f.deposits.ListInstallments(ctx, deposit.ID)
	target := installments[0]

	paid, err := f.uc.PayInstallment(ctx, employee, deposit.ID, target.ID)
	if err != nil {
		t.Fatalf("PayInstallment() error = %v", err)
	}
	if paid.Status != domain.InstallmentPaid || paid.PaidDate == nil {
		t.Errorf("installment = %+v, want paid with date", paid)
	}

	if _, err := f.uc.PayInstallment(ctx, employee, deposit.ID, target.ID); !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("double PayInstallment() error = %v, want invalid state", err)
	}
	if _, err := f.uc.PayInstallment(ctx, employee, deposit.ID, "inst-missing"); !errors.Is(err, domain.ErrInstallmentNotFound) {
		t.Errorf("missing PayInstallment() error = %v, want not found", err)
	}
}

func TestDepositUseCase_Penalty(t *testing.T) {
	ctx := context.Background()
	f := newDepositFixture()

	deposit, err := f.uc.CreateDeposit(ctx, employee, validDepositInput())
	if err != nil {
		t.Fatalf("CreateDeposit() error = %v", err)
	}

	installments, _ := f.deposits.ListInstallments(ctx, deposit.ID)
	for i, in := range installments {
		if i >= 2 {
			break
		}
		in.Status = domain.InstallmentMissed
		if err := f.deposits.UpdateInstallment(ctx, in); err != nil {
			t.Fatalf("mark missed error = %v", err)
		}
	}

	penalty, err := f.uc.Penalty(ctx, employee, deposit.ID)
	if err != nil {
		t.Fatalf("Penalty() error = %v", err)
	}
	// Two missed installments of 1000 at 1% each.
	if !penalty.Equal(decimal.RequireFromString("20")) {
		t.Errorf("penalty = %s, want 20", penalty)
	}
}

func TestDepositUseCase_CloseEarly(t *testing.T) {
	ctx := context.Background()
	f := newDepositFixture()

	deposit, err := f.uc.CreateDeposit(ctx, employee, validDepositInput())
	if err != nil {
		t.Fatalf("CreateDeposit() error = %v", err)
	}

	penalty, err := f.uc.CloseEarly(ctx, employee, deposit.ID)
	if err != nil {
		t.Fatalf("CloseEarly() error = %v", err)
	}
	// 2% of the 10000 total principal.
	if !penalty.Equal(decimal.RequireFromString("200")) {
		t.Errorf("penalty = %s, want 200", penalty)
	}

	closed, err := f.uc.GetDeposit(ctx, employee, deposit.ID)
	if err != nil {
		t.Fatalf("GetDeposit() error = %v", err)
	}
	if closed.Status != domain.DepositStatusClosed {
		t.Errorf("status = %s, want closed", closed.Status)
	}

	if _, err := f.uc.CloseEarly(ctx, employee, deposit.ID); !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("double CloseEarly() error = %v, want invalid state", err)
	}

	if _, err := f.uc.PayInstallment(ctx, employee, deposit.ID, "any"); !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("PayInstallment() on closed error = %v, want invalid state", err)
	}
}
