package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cobanker/corebank/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, tx Transaction, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByNumber(ctx context.Context, number string) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	UpdateStatus(ctx context.Context, tx Transaction, id string, status domain.AccountStatus, updatedAt time.Time) error
	ListByCustomer(ctx context.Context, customerID string, filter AccountFilter) ([]*domain.Account, error)
}

// AccountFilter narrows account listings.
type AccountFilter struct {
	Status domain.AccountStatus
	Type   domain.AccountType
	Limit  int
	Offset int
}

// TransactionRepository defines data access for the transaction journal.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	GetByReference(ctx context.Context, tx Transaction, reference string) (*domain.Transaction, error)
	List(ctx context.Context, filter TransactionFilter) ([]*domain.Transaction, error)
}

// TransactionFilter narrows journal listings. BankID scopes the listing to
// one tenant via the owning account.
type TransactionFilter struct {
	AccountID string
	BankID    string
	Kind      domain.TransactionKind
	Status    domain.TransactionStatus
	Limit     int
	Offset    int
}

// CustomerRepository defines data access for customers.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	List(ctx context.Context, bankID string, limit, offset int) ([]*domain.Customer, error)
	Update(ctx context.Context, customer *domain.Customer) error
}

// MemberRepository defines data access for members.
type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) error
	GetByID(ctx context.Context, id string) (*domain.Member, error)
	GetByCustomer(ctx context.Context, customerID string) (*domain.Member, error)
	List(ctx context.Context, bankID string, limit, offset int) ([]*domain.Member, error)
	Update(ctx context.Context, member *domain.Member) error
}

// BranchRepository defines data access for branches.
type BranchRepository interface {
	Exists(ctx context.Context, id, bankID string) (bool, error)
}

// LoanRepository defines data access for loans, guarantors and repayment
// schedules.
type LoanRepository interface {
	Create(ctx context.Context, loan *domain.Loan) error
	GetByID(ctx context.Context, id string) (*domain.Loan, error)
	List(ctx context.Context, filter LoanFilter) ([]*domain.Loan, error)
	Update(ctx context.Context, loan *domain.Loan) error
	UpdateTx(ctx context.Context, tx Transaction, loan *domain.Loan) error
	CountOngoing(ctx context.Context, memberID string) (int, error)

	AddGuarantor(ctx context.Context, guarantor *domain.Guarantor) error
	ListGuarantors(ctx context.Context, loanID string) ([]*domain.Guarantor, error)

	CreateSchedule(ctx context.Context, tx Transaction, entries []domain.LoanRepayment) error
	GetScheduleEntry(ctx context.Context, loanID string, installment int) (*domain.LoanRepayment, error)
	UpdateScheduleEntry(ctx context.Context, entry *domain.LoanRepayment) error
	ListSchedule(ctx context.Context, loanID string) ([]*domain.LoanRepayment, error)
}

// LoanFilter narrows loan listings. BankID scopes the listing to one
// tenant.
type LoanFilter struct {
	MemberID        string
	BranchID        string
	BankID          string
	Status          domain.LoanStatus
	RepaymentStatus domain.RepaymentStatus
	Type            domain.LoanType
	Limit           int
	Offset          int
}

// DepositRepository defines data access for recurring deposits and their
// installment schedules.
type DepositRepository interface {
	Create(ctx context.Context, tx Transaction, deposit *domain.RecurringDeposit) error
	GetByID(ctx context.Context, id string) (*domain.RecurringDeposit, error)
	ListByMember(ctx context.Context, memberID string) ([]*domain.RecurringDeposit, error)
	UpdateStatus(ctx context.Context, id string, status domain.DepositStatus, updatedAt time.Time) error

	CreateInstallments(ctx context.Context, tx Transaction, installments []domain.Installment) error
	GetInstallment(ctx context.Context, id string) (*domain.Installment, error)
	UpdateInstallment(ctx context.Context, installment *domain.Installment) error
	ListInstallments(ctx context.Context, depositID string) ([]*domain.Installment, error)
}

// LedgerRepository defines ledger-wide operations.
type LedgerRepository interface {
	// FindDrift returns accounts whose stored balance disagrees with the
	// sum of their completed transactions.
	FindDrift(ctx context.Context) ([]domain.LedgerDrift, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs a transactional unit on transient datastore conflicts.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique entity IDs.
type IDGenerator interface {
	Generate() string
}

// NumberGenerator generates human-facing account numbers.
type NumberGenerator interface {
	Next() string
}

// SummaryCache caches account summary projections.
type SummaryCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

// Notifier delivers customer-facing notifications. Delivery is handled by
// an external collaborator; failures are logged, never surfaced.
type Notifier interface {
	Notify(ctx context.Context, recipient, subject, body string)
}
