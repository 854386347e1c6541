package domain

// Role is a caller's access level.
type Role string

const (
	// RoleAdmin acts across banks.
	RoleAdmin Role = "admin"

	// RoleBankEmployee is scoped to one bank.
	RoleBankEmployee Role = "bank_employee"

	// RoleBranchEmployee is scoped to one branch of one bank.
	RoleBranchEmployee Role = "branch_employee"

	// RoleCustomer may only read rows of its own bank.
	RoleCustomer Role = "customer"
)

var validRoles = map[Role]bool{
	RoleAdmin:          true,
	RoleBankEmployee:   true,
	RoleBranchEmployee: true,
	RoleCustomer:       true,
}

// IsValid checks if the role is known.
func (r Role) IsValid() bool {
	return validRoles[r]
}

// IsEmployee reports whether the role may perform back-office mutations.
func (r Role) IsEmployee() bool {
	return r == RoleAdmin || r == RoleBankEmployee || r == RoleBranchEmployee
}

// Actor is the authenticated identity behind a request, carried from the
// bearer token into every use case so tenant isolation does not depend on
// datastore policy.
type Actor struct {
	UserID   string
	Email    string
	Role     Role
	BankID   string
	BranchID string
}

// CanAccessBank reports whether the actor may touch rows of bankID.
// Admins cross banks; everyone else stays inside their own.
func (a Actor) CanAccessBank(bankID string) bool {
	if a.Role == RoleAdmin {
		return true
	}
	return a.BankID != "" && a.BankID == bankID
}

// CanMutate reports whether the actor may perform mutating operations.
func (a Actor) CanMutate() bool {
	return a.Role.IsEmployee()
}
