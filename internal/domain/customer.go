package domain

import (
	"fmt"
	"time"
)

// CustomerStatus is the lifecycle state of a customer.
type CustomerStatus string

const (
	CustomerStatusPending   CustomerStatus = "pending"
	CustomerStatusActive    CustomerStatus = "active"
	CustomerStatusInactive  CustomerStatus = "inactive"
	CustomerStatusSuspended CustomerStatus = "suspended"
)

// Customer is a person banked by a branch. Email and phone are unique
// across the bank.
type Customer struct {
	ID          string
	FullName    string
	Email       string
	Phone       string
	Address     string
	BankID      string
	BranchID    string
	Status      CustomerStatus
	KYCVerified bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive reports whether the customer may open accounts or join as member.
func (c *Customer) IsActive() bool {
	return c.Status == CustomerStatusActive
}

// Validate checks caller-controlled customer fields.
func (c *Customer) Validate() error {
	if err := ValidateName(c.FullName); err != nil {
		return err
	}
	if err := ValidateEmail(c.Email); err != nil {
		return err
	}
	if err := ValidatePhone(c.Phone); err != nil {
		return err
	}
	if c.BranchID == "" {
		return fmt.Errorf("%w: branch_id is required", ErrValidation)
	}
	return nil
}

// MembershipType classifies a cooperative membership.
type MembershipType string

const (
	MembershipRegular  MembershipType = "regular"
	MembershipLifetime MembershipType = "lifetime"
	MembershipHonorary MembershipType = "honorary"
)

var validMembershipTypes = map[MembershipType]bool{
	MembershipRegular:  true,
	MembershipLifetime: true,
	MembershipHonorary: true,
}

// IsValid checks if the membership type is known.
func (t MembershipType) IsValid() bool {
	return validMembershipTypes[t]
}

// MemberStatus is the lifecycle state of a membership.
type MemberStatus string

const (
	MemberStatusActive    MemberStatus = "active"
	MemberStatusInactive  MemberStatus = "inactive"
	MemberStatusSuspended MemberStatus = "suspended"
)

// Member is a customer enrolled as a cooperative member. One membership
// per customer.
type Member struct {
	ID                string
	CustomerID        string
	MembershipType    MembershipType
	VotingEligibility bool
	Status            MemberStatus
	JoiningDate       time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsActive reports whether the member may take loans or open deposits.
func (m *Member) IsActive() bool {
	return m.Status == MemberStatusActive
}

// Validate checks caller-controlled member fields.
func (m *Member) Validate() error {
	if m.CustomerID == "" {
		return fmt.Errorf("%w: customer_id is required", ErrValidation)
	}
	if !m.MembershipType.IsValid() {
		return fmt.Errorf("%w: unknown membership type %q", ErrValidation, m.MembershipType)
	}
	return nil
}
