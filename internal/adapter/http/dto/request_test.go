package dto

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/cobanker/corebank/internal/domain"
)

func TestOpenAccountRequest_ToUseCaseInput(t *testing.T) {
	req := &OpenAccountRequest{
		CustomerID:     "cust-1",
		AccountType:    "savings",
		InitialBalance: decimal.NewFromInt(500),
		MinimumBalance: decimal.NewFromInt(100),
		OverdraftLimit: decimal.NewFromInt(50),
		BranchID:       "branch-1",
		BankID:         "bank-1",
		Description:    "salary account",
	}

	got := req.ToUseCaseInput()

	assert.Equal(t, "cust-1", got.CustomerID)
	assert.Equal(t, domain.AccountTypeSavings, got.Type)
	assert.True(t, got.InitialBalance.Equal(decimal.NewFromInt(500)))
	assert.True(t, got.MinimumBalance.Equal(decimal.NewFromInt(100)))
	assert.True(t, got.OverdraftLimit.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, "branch-1", got.BranchID)
	assert.Equal(t, "bank-1", got.BankID)
	assert.Equal(t, "salary account", got.Description)
}

func TestRecordMovementRequest_ToUseCaseInput(t *testing.T) {
	req := &RecordMovementRequest{
		Amount:          decimal.NewFromInt(100),
		TransactionType: "withdrawal",
		Description:     "ATM",
		ReferenceNumber: "REF-1",
	}

	got := req.ToUseCaseInput("acc-1")

	assert.Equal(t, "acc-1", got.AccountID)
	assert.Equal(t, domain.TransactionWithdrawal, got.Kind)
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, "REF-1", got.ReferenceNumber)
}

func TestRecordRepaymentRequest_DefaultsPaidDate(t *testing.T) {
	req := &RecordRepaymentRequest{
		InstallmentNumber: 2,
		PaidAmount:        decimal.NewFromInt(2500),
	}

	before := time.Now().UTC()
	got := req.ToUseCaseInput()

	assert.Equal(t, 2, got.InstallmentNumber)
	assert.False(t, got.PaidDate.Before(before))

	explicit := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	req.PaidDate = &explicit
	got = req.ToUseCaseInput()
	assert.Equal(t, explicit, got.PaidDate)
}

func TestUpdateCustomerRequest_PartialConversion(t *testing.T) {
	status := "inactive"
	name := "New Name"
	req := &UpdateCustomerRequest{
		FullName: &name,
		Status:   &status,
	}

	got := req.ToUseCaseInput()

	assert.NotNil(t, got.FullName)
	assert.Equal(t, "New Name", *got.FullName)
	assert.NotNil(t, got.Status)
	assert.Equal(t, domain.CustomerStatusInactive, *got.Status)
	assert.Nil(t, got.Email)
	assert.Nil(t, got.Phone)
}
