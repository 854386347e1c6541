package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/cobanker/corebank/internal/domain"
	"github.com/cobanker/corebank/internal/usecase"
	"github.com/cobanker/corebank/internal/usecase/mocks"
)

type customerFixture struct {
	uc        *usecase.CustomerUseCase
	customers *mocks.MockCustomerRepository
	branches  *mocks.MockBranchRepository
	notifier  *mocks.MockNotifier
}

func newCustomerFixture() *customerFixture {
	customers := mocks.NewMockCustomerRepository()
	branches := mocks.NewMockBranchRepository()
	notifier := mocks.NewMockNotifier()
	uc := usecase.NewCustomerUseCase(customers, branches, mocks.NewMockIDGenerator(), notifier)
	return &customerFixture{uc: uc, customers: customers, branches: branches, notifier: notifier}
}

func validCustomerInput() usecase.CreateCustomerInput {
	return usecase.CreateCustomerInput{
		FullName: "Asha Rao",
		Email:    "asha@example.com",
		Phone:    "+919812345678",
		Address:  "12 MG Road",
	}
}

func TestCustomerUseCase_CreateCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("creates active customer under actor's tenancy", func(t *testing.T) {
		f := newCustomerFixture()

		customer, err := f.uc.CreateCustomer(ctx, employee, validCustomerInput())
		if err != nil {
			t.Fatalf("CreateCustomer() error = %v", err)
		}
		if customer.Status != domain.CustomerStatusActive {
			t.Errorf("status = %s, want active", customer.Status)
		}
		if customer.BankID != employee.BankID || customer.BranchID != employee.BranchID {
			t.Errorf("tenancy = %s/%s, want %s/%s",
				customer.BankID, customer.BranchID, employee.BankID, employee.BranchID)
		}
		if len(f.notifier.Sent) != 1 {
			t.Errorf("sent %d notifications, want 1", len(f.notifier.Sent))
		}
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		f := newCustomerFixture()

		if _, err := f.uc.CreateCustomer(ctx, employee, validCustomerInput()); err != nil {
			t.Fatalf("first CreateCustomer() error = %v", err)
		}
		_, err := f.uc.CreateCustomer(ctx, employee, validCustomerInput())
		if !errors.Is(err, domain.ErrConflict) {
			t.Errorf("duplicate CreateCustomer() error = %v, want conflict", err)
		}
	})

	t.Run("unknown branch rejected", func(t *testing.T) {
		f := newCustomerFixture()
		f.branches.ExistsFunc = func(ctx context.Context, id, bankID string) (bool, error) {
			return false, nil
		}

		_, err := f.uc.CreateCustomer(ctx, employee, validCustomerInput())
		if !errors.Is(err, domain.ErrBranchNotFound) {
			t.Errorf("CreateCustomer() error = %v, want branch not found", err)
		}
	})

	tests := []struct {
		name   string
		mutate func(*usecase.CreateCustomerInput)
	}{
		{"empty name", func(in *usecase.CreateCustomerInput) { in.FullName = "" }},
		{"bad email", func(in *usecase.CreateCustomerInput) { in.Email = "not-an-email" }},
		{"bad phone", func(in *usecase.CreateCustomerInput) { in.Phone = "abc" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCustomerFixture()
			input := validCustomerInput()
			tt.mutate(&input)

			_, err := f.uc.CreateCustomer(ctx, employee, input)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("CreateCustomer() error = %v, want validation", err)
			}
		})
	}

	t.Run("customer role denied", func(t *testing.T) {
		f := newCustomerFixture()
		_, err := f.uc.CreateCustomer(ctx, reader, validCustomerInput())
		if !errors.Is(err, domain.ErrAccessDenied) {
			t.Errorf("CreateCustomer() error = %v, want access denied", err)
		}
	})
}

func TestCustomerUseCase_GetCustomer(t *testing.T) {
	ctx := context.Background()
	f := newCustomerFixture()

	created, err := f.uc.CreateCustomer(ctx, employee, validCustomerInput())
	if err != nil {
		t.Fatalf("CreateCustomer() error = %v", err)
	}

	got, err := f.uc.GetCustomer(ctx, employee, created.ID)
	if err != nil {
		t.Fatalf("GetCustomer() error = %v", err)
	}
	if got.Email != created.Email {
		t.Errorf("email = %s, want %s", got.Email, created.Email)
	}

	if _, err := f.uc.GetCustomer(ctx, outsider, created.ID); !errors.Is(err, domain.ErrAccessDenied) {
		t.Errorf("GetCustomer() by outsider error = %v, want access denied", err)
	}
	if _, err := f.uc.GetCustomer(ctx, employee, "cust-missing"); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Errorf("GetCustomer() missing error = %v, want not found", err)
	}
}

func TestCustomerUseCase_ListCustomers(t *testing.T) {
	ctx := context.Background()
	f := newCustomerFixture()

	var captured string
	f.customers.ListFunc = func(ctx context.Context, bankID string, limit, offset int) ([]*domain.Customer, error) {
		captured = bankID
		return nil, nil
	}

	if _, err := f.uc.ListCustomers(ctx, employee, 0, 0); err != nil {
		t.Fatalf("ListCustomers() error = %v", err)
	}
	if captured != employee.BankID {
		t.Errorf("bank filter = %q, want %q", captured, employee.BankID)
	}

	admin := domain.Actor{UserID: "root", Role: domain.RoleAdmin}
	if _, err := f.uc.ListCustomers(ctx, admin, 0, 0); err != nil {
		t.Fatalf("admin ListCustomers() error = %v", err)
	}
	if captured != "" {
		t.Errorf("admin bank filter = %q, want unscoped", captured)
	}
}

func TestCustomerUseCase_UpdateCustomer(t *testing.T) {
	ctx := context.Background()
	f := newCustomerFixture()

	created, err := f.uc.CreateCustomer(ctx, employee, validCustomerInput())
	if err != nil {
		t.Fatalf("CreateCustomer() error = %v", err)
	}

	name := "Asha R. Rao"
	kyc := true
	updated, err := f.uc.UpdateCustomer(ctx, employee, created.ID, usecase.UpdateCustomerInput{
		FullName:    &name,
		KYCVerified: &kyc,
	})
	if err != nil {
		t.Fatalf("UpdateCustomer() error = %v", err)
	}
	if updated.FullName != name || !updated.KYCVerified {
		t.Errorf("update not applied: %+v", updated)
	}
	if updated.Email != created.Email {
		t.Errorf("untouched field changed: email = %s", updated.Email)
	}

	bad := "nope"
	if _, err := f.uc.UpdateCustomer(ctx, employee, created.ID, usecase.UpdateCustomerInput{Email: &bad}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("UpdateCustomer() bad email error = %v, want validation", err)
	}
}

func TestCustomerUseCase_DeactivateCustomer(t *testing.T) {
	ctx := context.Background()
	f := newCustomerFixture()

	created, err := f.uc.CreateCustomer(ctx, employee, validCustomerInput())
	if err != nil {
		t.Fatalf("CreateCustomer() error = %v", err)
	}

	deactivated, err := f.uc.DeactivateCustomer(ctx, employee, created.ID)
	if err != nil {
		t.Fatalf("DeactivateCustomer() error = %v", err)
	}
	if deactivated.Status != domain.CustomerStatusInactive {
		t.Errorf("status = %s, want inactive", deactivated.Status)
	}
}
