package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cobanker/corebank/internal/domain"
)

// MemberUseCase handles cooperative membership CRUD.
type MemberUseCase struct {
	memberRepo   MemberRepository
	customerRepo CustomerRepository
	idGen        IDGenerator
}

// NewMemberUseCase creates a new MemberUseCase.
func NewMemberUseCase(memberRepo MemberRepository, customerRepo CustomerRepository, idGen IDGenerator) *MemberUseCase {
	return &MemberUseCase{
		memberRepo:   memberRepo,
		customerRepo: customerRepo,
		idGen:        idGen,
	}
}

// CreateMemberInput represents input for enrolling a member.
type CreateMemberInput struct {
	CustomerID        string
	MembershipType    domain.MembershipType
	VotingEligibility bool
	JoiningDate       *time.Time
}

// CreateMember enrolls an active customer as a member. One membership per
// customer; duplicates surface as Conflict.
func (uc *MemberUseCase) CreateMember(ctx context.Context, actor domain.Actor, input CreateMemberInput) (*domain.Member, error) {
	if !actor.CanMutate() {
		return nil, domain.ErrAccessDenied
	}

	customer, err := uc.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessBank(customer.BankID) {
		return nil, domain.ErrAccessDenied
	}
	if !customer.IsActive() {
		return nil, fmt.Errorf("%w: customer is not active", domain.ErrInvalidState)
	}

	existing, err := uc.memberRepo.GetByCustomer(ctx, input.CustomerID)
	if err != nil && !errors.Is(err, domain.ErrMemberNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: customer is already a member", domain.ErrConflict)
	}

	now := time.Now().UTC()
	joining := now
	if input.JoiningDate != nil {
		joining = *input.JoiningDate
	}

	member := &domain.Member{
		ID:                uc.idGen.Generate(),
		CustomerID:        input.CustomerID,
		MembershipType:    input.MembershipType,
		VotingEligibility: input.VotingEligibility,
		Status:            domain.MemberStatusActive,
		JoiningDate:       joining,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := member.Validate(); err != nil {
		return nil, err
	}

	if err := uc.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}

	return member, nil
}

// GetMember retrieves a member by ID, enforcing tenant isolation through
// the underlying customer.
func (uc *MemberUseCase) GetMember(ctx context.Context, actor domain.Actor, id string) (*domain.Member, error) {
	member, err := uc.memberRepo.GetByID(ctx, id)
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

	return member, nil
}

// ListMembers lists members with pagination. Non-admin callers see only
// members whose customer belongs to their own bank.
func (uc *MemberUseCase) ListMembers(ctx context.Context, actor domain.Actor, limit, offset int) ([]*domain.Member, error) {
	bankID := ""
	if actor.Role != domain.RoleAdmin {
		bankID = actor.BankID
	}
	limit, offset = domain.ClampPagination(limit, offset)
	return uc.memberRepo.List(ctx, bankID, limit, offset)
}

// UpdateMemberInput represents input for updating a member. Nil fields are
// left unchanged.
type UpdateMemberInput struct {
	MembershipType    *domain.MembershipType
	VotingEligibility *bool
	Status            *domain.MemberStatus
}

// UpdateMember applies a partial update.
func (uc *MemberUseCase) UpdateMember(ctx context.Context, actor domain.Actor, id string, input UpdateMemberInput) (*domain.Member, error) {
	if !actor.CanMutate() {
		return nil, domain.ErrAccessDenied
	}

	member, err := uc.GetMember(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if input.MembershipType != nil {
		member.MembershipType = *input.MembershipType
	}
	if input.VotingEligibility != nil {
		member.VotingEligibility = *input.VotingEligibility
	}
	if input.Status != nil {
		member.Status = *input.Status
	}
	member.UpdatedAt = time.Now().UTC()

	if err := member.Validate(); err != nil {
		return nil, err
	}

	if err := uc.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}

	return member, nil
}
