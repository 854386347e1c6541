package usecase

import (
	"context"
	"time"

	"github.com/cobanker/corebank/internal/domain"
)

// CustomerUseCase handles customer CRUD.
type CustomerUseCase struct {
	customerRepo CustomerRepository
	branchRepo   BranchRepository
	idGen        IDGenerator
	notifier     Notifier
}

// NewCustomerUseCase creates a new CustomerUseCase. notifier may be nil.
func NewCustomerUseCase(customerRepo CustomerRepository, branchRepo BranchRepository, idGen IDGenerator, notifier Notifier) *CustomerUseCase {
	return &CustomerUseCase{
		customerRepo: customerRepo,
		branchRepo:   branchRepo,
		idGen:        idGen,
		notifier:     notifier,
	}
}

// CreateCustomerInput represents input for creating a customer.
type CreateCustomerInput struct {
	FullName    string
	Email       string
	Phone       string
	Address     string
	BranchID    string
	KYCVerified bool
}

// CreateCustomer registers a customer under the actor's bank. Email and
// phone uniqueness surfaces as Conflict.
func (uc *CustomerUseCase) CreateCustomer(ctx context.Context, actor domain.Actor, input CreateCustomerInput) (*domain.Customer, error) {
	if !actor.CanMutate() {
		return nil, domain.ErrAccessDenied
	}

	branchID := input.BranchID
	if branchID == "" {
		branchID = actor.BranchID
	}

	now := time.Now().UTC()
	customer := &domain.Customer{
		ID:          uc.idGen.Generate(),
		FullName:    input.FullName,
		Email:       input.Email,
		Phone:       input.Phone,
		Address:     input.Address,
		BankID:      actor.BankID,
		BranchID:    branchID,
		Status:      domain.CustomerStatusActive,
		KYCVerified: input.KYCVerified,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := customer.Validate(); err != nil {
		return nil, err
	}

	exists, err := uc.branchRepo.Exists(ctx, branchID, customer.BankID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrBranchNotFound
	}

	if err := uc.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	if uc.notifier != nil {
		uc.notifier.Notify(ctx, customer.Email, "Welcome", "Your customer profile has been created.")
	}

	return customer, nil
}

// GetCustomer retrieves a customer by ID, enforcing tenant isolation.
func (uc *CustomerUseCase) GetCustomer(ctx context.Context, actor domain.Actor, id string) (*domain.Customer, error) {
	customer, err := uc.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessBank(customer.BankID) {
		return nil, domain.ErrAccessDenied
	}
	return customer, nil
}

// ListCustomers lists customers of the actor's bank. Admins see all banks.
func (uc *CustomerUseCase) ListCustomers(ctx context.Context, actor domain.Actor, limit, offset int) ([]*domain.Customer, error) {
	limit, offset = domain.ClampPagination(limit, offset)

	bankID := actor.BankID
	if actor.Role == domain.RoleAdmin {
		bankID = ""
	}

	return uc.customerRepo.List(ctx, bankID, limit, offset)
}

// UpdateCustomerInput represents input for updating a customer. Nil fields
// are left unchanged.
type UpdateCustomerInput struct {
	FullName    *string
	Email       *string
	Phone       *string
	Address     *string
	Status      *domain.CustomerStatus
	KYCVerified *bool
}

// UpdateCustomer applies a partial update.
func (uc *CustomerUseCase) UpdateCustomer(ctx context.Context, actor domain.Actor, id string, input UpdateCustomerInput) (*domain.Customer, error) {
	if !actor.CanMutate() {
		return nil, domain.ErrAccessDenied
	}

	customer, err := uc.GetCustomer(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		customer.FullName = *input.FullName
	}
	if input.Email != nil {
		customer.Email = *input.Email
	}
	if input.Phone != nil {
		customer.Phone = *input.Phone
	}
	if input.Address != nil {
		customer.Address = *input.Address
	}
	if input.Status != nil {
		customer.Status = *input.Status
	}
	if input.KYCVerified != nil {
		customer.KYCVerified = *input.KYCVerified
	}
	customer.UpdatedAt = time.Now().UTC()

	if err := customer.Validate(); err != nil {
		return nil, err
	}

	if err := uc.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// DeactivateCustomer soft-deletes a customer.
func (uc *CustomerUseCase) DeactivateCustomer(ctx context.Context, actor domain.Actor, id string) (*domain.Customer, error) {
	status := domain.CustomerStatusInactive
	return uc.UpdateCustomer(ctx, actor, id, UpdateCustomerInput{Status: &status})
}
