package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/cobanker/corebank/internal/domain"
	"github.com/cobanker/corebank/internal/usecase"
)

// MockLoanRepository is a mock implementation of LoanRepository.
type MockLoanRepository struct {
	mu         sync.RWMutex
	loans      map[string]*domain.Loan
	guarantors map[string][]*domain.Guarantor
	schedules  map[string][]*domain.LoanRepayment

	CreateFunc              func(ctx context.Context, loan *domain.Loan) error
	GetByIDFunc             func(ctx context.Context, id string) (*domain.Loan, error)
	ListFunc                func(ctx context.Context, filter usecase.LoanFilter) ([]*domain.Loan, error)
	UpdateFunc              func(ctx context.Context, loan *domain.Loan) error
	UpdateTxFunc            func(ctx context.Context, tx usecase.Transaction, loan *domain.Loan) error
	CountOngoingFunc        func(ctx context.Context, memberID string) (int, error)
	AddGuarantorFunc        func(ctx context.Context, guarantor *domain.Guarantor) error
	ListGuarantorsFunc      func(ctx context.Context, loanID string) ([]*domain.Guarantor, error)
	CreateScheduleFunc      func(ctx context.Context, tx usecase.Transaction, entries []domain.LoanRepayment) error
	GetScheduleEntryFunc    func(ctx context.Context, loanID string, installment int) (*domain.LoanRepayment, error)
	UpdateScheduleEntryFunc func(ctx context.Context, entry *domain.LoanRepayment) error
	ListScheduleFunc        func(ctx context.Context, loanID string) ([]*domain.LoanRepayment, error)
}

func NewMockLoanRepository() *MockLoanRepository {
	return &MockLoanRepository{
		loans:      make(map[string]*domain.Loan),
		guarantors: make(map[string][]*domain.Guarantor),
		schedules:  make(map[string][]*domain.LoanRepayment),
	}
}

// Seed stores a loan directly.
func (m *MockLoanRepository) Seed(loan *domain.Loan) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *loan
	m.loans[loan.ID] = &cp
}

func (m *MockLoanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, loan)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *loan
	m.loans[loan.ID] = &cp
	return nil
}

func (m *MockLoanRepository) GetByID(ctx context.Context, id string) (*domain.Loan, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if l, ok := m.loans[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, domain.ErrLoanNotFound
}

func (m *MockLoanRepository) List(ctx context.Context, filter usecase.LoanFilter) ([]*domain.Loan, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Loan
	for _, l := range m.loans {
		if filter.MemberID != "" && l.MemberID != filter.MemberID {
			continue
		}
		if filter.BranchID != "" && l.BranchID != filter.BranchID {
			continue
		}
		if filter.BankID != "" && l.BankID != filter.BankID {
			continue
		}
		if filter.Status != "" && l.Status != filter.Status {
			continue
		}
		cp := *l
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MockLoanRepository) Update(ctx context.Context, loan *domain.Loan) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, loan)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.loans[loan.ID]; !ok {
		return domain.ErrLoanNotFound
	}
	cp := *loan
	m.loans[loan.ID] = &cp
	return nil
}

func (m *MockLoanRepository) UpdateTx(ctx context.Context, tx usecase.Transaction, loan *domain.Loan) error {
	if m.UpdateTxFunc != nil {
		return m.UpdateTxFunc(ctx, tx, loan)
	}
	return m.Update(ctx, loan)
}

func (m *MockLoanRepository) CountOngoing(ctx context.Context, memberID string) (int, error) {
	if m.CountOngoingFunc != nil {
		return m.CountOngoingFunc(ctx, memberID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, l := range m.loans {
		if l.MemberID != memberID {
			continue
		}
		switch l.Status {
		case domain.LoanStatusPending, domain.LoanStatusApproved, domain.LoanStatusDisbursed:
			count++
		}
	}
	return count, nil
}

func (m *MockLoanRepository) AddGuarantor(ctx context.Context, guarantor *domain.Guarantor) error {
	if m.AddGuarantorFunc != nil {
		return m.AddGuarantorFunc(ctx, guarantor)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *guarantor
	m.guarantors[guarantor.LoanID] = append(m.guarantors[guarantor.LoanID], &cp)
	return nil
}

func (m *MockLoanRepository) ListGuarantors(ctx context.Context, loanID string) ([]*domain.Guarantor, error) {
	if m.ListGuarantorsFunc != nil {
		return m.ListGuarantorsFunc(ctx, loanID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Guarantor
	for _, g := range m.guarantors[loanID] {
		cp := *g
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MockLoanRepository) CreateSchedule(ctx context.Context, tx usecase.Transaction, entries []domain.LoanRepayment) error {
	if m.CreateScheduleFunc != nil {
		return m.CreateScheduleFunc(ctx, tx, entries)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range entries {
		cp := entries[i]
		m.schedules[cp.LoanID] = append(m.schedules[cp.LoanID], &cp)
	}
	return nil
}

func (m *MockLoanRepository) GetScheduleEntry(ctx context.Context, loanID string, installment int) (*domain.LoanRepayment, error) {
	if m.GetScheduleEntryFunc != nil {
		return m.GetScheduleEntryFunc(ctx, loanID, installment)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.schedules[loanID] {
		if e.InstallmentNumber == installment {
			cp := *e
			return &cp, nil
		}
	}
	return nil, domain.ErrRepaymentNotFound
}

func (m *MockLoanRepository) UpdateScheduleEntry(ctx context.Context, entry *domain.LoanRepayment) error {
	if m.UpdateScheduleEntryFunc != nil {
		return m.UpdateScheduleEntryFunc(ctx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range m.schedules[entry.LoanID] {
		if e.InstallmentNumber == entry.InstallmentNumber {
			cp := *entry
			m.schedules[entry.LoanID][i] = &cp
			return nil
		}
	}
	return domain.ErrRepaymentNotFound
}

func (m *MockLoanRepository) ListSchedule(ctx context.Context, loanID string) ([]*domain.LoanRepayment, error) {
	if m.ListScheduleFunc != nil {
		return m.ListScheduleFunc(ctx, loanID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.LoanRepayment
	for _, e := range m.schedules[loanID] {
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

// MockDepositRepository is a mock implementation of DepositRepository.
type MockDepositRepository struct {
	mu           sync.RWMutex
	deposits     map[string]*domain.RecurringDeposit
	installments map[string]*domain.Installment

	CreateFunc             func(ctx context.Context, tx usecase.Transaction, deposit *domain.RecurringDeposit) error
	GetByIDFunc            func(ctx context.Context, id string) (*domain.RecurringDeposit, error)
	ListByMemberFunc       func(ctx context.Context, memberID string) ([]*domain.RecurringDeposit, error)
	UpdateStatusFunc       func(ctx context.Context, id string, status domain.DepositStatus, updatedAt time.Time) error
	CreateInstallmentsFunc func(ctx context.Context, tx usecase.Transaction, installments []domain.Installment) error
	GetInstallmentFunc     func(ctx context.Context, id string) (*domain.Installment, error)
	UpdateInstallmentFunc  func(ctx context.Context, installment *domain.Installment) error
	ListInstallmentsFunc   func(ctx context.Context, depositID string) ([]*domain.Installment, error)
}

func NewMockDepositRepository() *MockDepositRepository {
	return &MockDepositRepository{
		deposits:     make(map[string]*domain.RecurringDeposit),
		installments: make(map[string]*domain.Installment),
	}
}

// Seed stores a deposit directly.
func (m *MockDepositRepository) Seed(deposit *domain.RecurringDeposit) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *deposit
	m.deposits[deposit.ID] = &cp
}

// SeedInstallment stores an installment directly.
func (m *MockDepositRepository) SeedInstallment(installment *domain.Installment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *installment
	m.installments[installment.ID] = &cp
}

func (m *MockDepositRepository) Create(ctx context.Context, tx usecase.Transaction, deposit *domain.RecurringDeposit) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, deposit)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *deposit
	m.deposits[deposit.ID] = &cp
	return nil
}

func (m *MockDepositRepository) GetByID(ctx context.Context, id string) (*domain.RecurringDeposit, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if d, ok := m.deposits[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, domain.ErrDepositNotFound
}

func (m *MockDepositRepository) ListByMember(ctx context.Context, memberID string) ([]*domain.RecurringDeposit, error) {
	if m.ListByMemberFunc != nil {
		return m.ListByMemberFunc(ctx, memberID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.RecurringDeposit
	for _, d := range m.deposits {
		if d.MemberID != memberID {
			continue
		}
		cp := *d
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MockDepositRepository) UpdateStatus(ctx context.Context, id string, status domain.DepositStatus, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.deposits[id]
	if !ok {
		return domain.ErrDepositNotFound
	}
	d.Status = status
	d.UpdatedAt = updatedAt
	return nil
}

func (m *MockDepositRepository) CreateInstallments(ctx context.Context, tx usecase.Transaction, installments []domain.Installment) error {
	if m.CreateInstallmentsFunc != nil {
		return m.CreateInstallmentsFunc(ctx, tx, installments)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range installments {
		cp := installments[i]
		m.installments[cp.ID] = &cp
	}
	return nil
}

func (m *MockDepositRepository) GetInstallment(ctx context.Context, id string) (*domain.Installment, error) {
	if m.GetInstallmentFunc != nil {
		return m.GetInstallmentFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if inst, ok := m.installments[id]; ok {
		cp := *inst
		return &cp, nil
	}
	return nil, domain.ErrInstallmentNotFound
}

func (m *MockDepositRepository) UpdateInstallment(ctx context.Context, installment *domain.Installment) error {
	if m.UpdateInstallmentFunc != nil {
		return m.UpdateInstallmentFunc(ctx, installment)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.installments[installment.ID]; !ok {
		return domain.ErrInstallmentNotFound
	}
	cp := *installment
	m.installments[installment.ID] = &cp
	return nil
}

func (m *MockDepositRepository) ListInstallments(ctx context.Context, depositID string) ([]*domain.Installment, error) {
	if m.ListInstallmentsFunc != nil {
		return m.ListInstallmentsFunc(ctx, depositID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Installment
	for _, inst := range m.installments {
		if inst.DepositID != depositID {
			continue
		}
		cp := *inst
		out = append(out, &cp)
	}
	return out, nil
}

// MockLedgerRepository is a mock implementation of LedgerRepository.
type MockLedgerRepository struct {
	Drift []domain.LedgerDrift

	FindDriftFunc func(ctx context.Context) ([]domain.LedgerDrift, error)
}

func NewMockLedgerRepository() *MockLedgerRepository {
	return &MockLedgerRepository{}
}

func (m *MockLedgerRepository) FindDrift(ctx context.Context) ([]domain.LedgerDrift, error) {
	if m.FindDriftFunc != nil {
		return m.FindDriftFunc(ctx)
	}
	return m.Drift, nil
}
