package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cobanker/corebank/internal/domain"
	"github.com/cobanker/corebank/internal/usecase"
)

const loanColumns = `
	id, member_id, branch_id, bank_id, loan_type, amount, interest_rate,
	repayment_term, maturity_date, status, repayment_status, created_at,
	updated_at
`

const repaymentColumns = `
	id, loan_id, installment_number, due_date, emi_amount, paid_amount,
	paid_date, penalty, status, transaction_id
`

// LoanRepository implements usecase.LoanRepository.
type LoanRepository struct {
	pool *pgxpool.Pool
}

// NewLoanRepository creates a new LoanRepository.
func NewLoanRepository(pool *pgxpool.Pool) *LoanRepository {
	return &LoanRepository{pool: pool}
}

// Create inserts a new loan.
func (r *LoanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	query := `
		INSERT INTO loans (` + loanColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.pool.Exec(ctx, query, loanArgs(loan)...)

	return mapInsertError(err)
}

// GetByID retrieves a loan by ID.
func (r *LoanRepository) GetByID(ctx context.Context, id string) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`

	return scanLoan(r.pool.QueryRow(ctx, query, id))
}

// List lists loans matching the filter, newest first.
func (r *LoanRepository) List(ctx context.Context, filter usecase.LoanFilter) ([]*domain.Loan, error) {
	query := `
		SELECT ` + loanColumns + `
		FROM loans
		WHERE ($1 = '' OR member_id = $1)
		  AND ($2 = '' OR branch_id = $2)
		  AND ($3 = '' OR bank_id = $3)
		  AND ($4 = '' OR status = $4)
		  AND ($5 = '' OR repayment_status = $5)
		  AND ($6 = '' OR loan_type = $6)
		ORDER BY created_at DESC
		LIMIT $7 OFFSET $8
	`

	rows, err := r.pool.Query(ctx, query,
		filter.MemberID, filter.BranchID, filter.BankID, string(filter.Status),
		string(filter.RepaymentStatus), string(filter.Type),
		filter.Limit, filter.Offset)
	if err != nil {
		return nil, wrapStorage(err)
	}
	defer rows.Close()

	var loans []*domain.Loan
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, wrapStorage(err)
		}
		loans = append(loans, loan)
	}

	return loans, wrapStorage(rows.Err())
}

const loanUpdateQuery = `
	UPDATE loans
	SET status = $2, repayment_status = $3, maturity_date = $4, updated_at = $5
	WHERE id = $1
`

// Update rewrites a loan's mutable fields.
func (r *LoanRepository) Update(ctx context.Context, loan *domain.Loan) error {
	tag, err := r.pool.Exec(ctx, loanUpdateQuery, loanUpdateArgs(loan)...)
	if err != nil {
		return wrapStorage(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLoanNotFound
	}

	return nil
}

// UpdateTx rewrites a loan's mutable fields inside the given transaction.
func (r *LoanRepository) UpdateTx(ctx context.Context, tx usecase.Transaction, loan *domain.Loan) error {
	tag, err := tx.(*Tx).PgxTx().Exec(ctx, loanUpdateQuery, loanUpdateArgs(loan)...)
	if err != nil {
		return wrapStorage(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLoanNotFound
	}

	return nil
}

// CountOngoing counts a member's loans that are not yet settled.
func (r *LoanRepository) CountOngoing(ctx context.Context, memberID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM loans
		WHERE member_id = $1 AND status IN ('pending', 'approved', 'disbursed')
	`

	var count int
	if err := r.pool.QueryRow(ctx, query, memberID).Scan(&count); err != nil {
		return 0, wrapStorage(err)
	}

	return count, nil
}

// AddGuarantor attaches a guarantor to a loan.
func (r *LoanRepository) AddGuarantor(ctx context.Context, guarantor *domain.Guarantor) error {
	query := `
		INSERT INTO guarantors (id, loan_id, name, relationship, contact, financial_standing, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		guarantor.ID,
		guarantor.LoanID,
		guarantor.Name,
		guarantor.Relationship,
		guarantor.Contact,
		guarantor.FinancialStanding,
		timeToPgTimestamptz(guarantor.CreatedAt),
	)

	return mapInsertError(err)
}

// ListGuarantors lists a loan's guarantors.
func (r *LoanRepository) ListGuarantors(ctx context.Context, loanID string) ([]*domain.Guarantor, error) {
	query := `
		SELECT id, loan_id, name, relationship, contact, financial_standing, created_at
		FROM guarantors
		WHERE loan_id = $1
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query, loanID)
	if err != nil {
		return nil, wrapStorage(err)
	}
	defer rows.Close()

	var guarantors []*domain.Guarantor
	for rows.Next() {
		var (
			g         domain.Guarantor
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&g.ID, &g.LoanID, &g.Name, &g.Relationship, &g.Contact, &g.FinancialStanding, &createdAt); err != nil {
			return nil, wrapStorage(err)
		}
		g.CreatedAt = createdAt.Time
		guarantors = append(guarantors, &g)
	}

	return guarantors, wrapStorage(rows.Err())
}

// CreateSchedule inserts a loan's full repayment schedule inside the given
// transaction.
func (r *LoanRepository) CreateSchedule(ctx context.Context, tx usecase.Transaction, entries []domain.LoanRepayment) error {
	query := `
		INSERT INTO loan_repayments (` + repaymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	pgxTx := tx.(*Tx).PgxTx()
	for _, entry := range entries {
		var paidDate pgtype.Timestamptz
		if entry.PaidDate != nil {
			paidDate = timeToPgTimestamptz(*entry.PaidDate)
		}

		_, err := pgxTx.Exec(ctx, query,
			entry.ID,
			entry.LoanID,
			entry.InstallmentNumber,
			timeToPgTimestamptz(entry.DueDate),
			decimalToNumeric(entry.EMIAmount),
			decimalToNumeric(entry.PaidAmount),
			paidDate,
			decimalToNumeric(entry.Penalty),
			entry.Status,
			entry.TransactionID,
		)
		if err != nil {
			return mapInsertError(err)
		}
	}

	return nil
}

// GetScheduleEntry retrieves one schedule row by loan and installment
// number.
func (r *LoanRepository) GetScheduleEntry(ctx context.Context, loanID string, installment int) (*domain.LoanRepayment, error) {
	query := `
		SELECT ` + repaymentColumns + `
		FROM loan_repayments
		WHERE loan_id = $1 AND installment_number = $2
	`

	return scanRepayment(r.pool.QueryRow(ctx, query, loanID, installment))
}

// UpdateScheduleEntry rewrites one schedule row's payment state.
func (r *LoanRepository) UpdateScheduleEntry(ctx context.Context, entry *domain.LoanRepayment) error {
	query := `
		UPDATE loan_repayments
		SET paid_amount = $3, paid_date = $4, penalty = $5, status = $6, transaction_id = $7
		WHERE loan_id = $1 AND installment_number = $2
	`

	var paidDate pgtype.Timestamptz
	if entry.PaidDate != nil {
		paidDate = timeToPgTimestamptz(*entry.PaidDate)
	}

	tag, err := r.pool.Exec(ctx, query,
		entry.LoanID,
		entry.InstallmentNumber,
		decimalToNumeric(entry.PaidAmount),
		paidDate,
		decimalToNumeric(entry.Penalty),
		entry.Status,
		entry.TransactionID,
	)
	if err != nil {
		return wrapStorage(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRepaymentNotFound
	}

	return nil
}

// ListSchedule lists a loan's repayment schedule in installment order.
func (r *LoanRepository) ListSchedule(ctx context.Context, loanID string) ([]*domain.LoanRepayment, error) {
	query := `
		SELECT ` + repaymentColumns + `
		FROM loan_repayments
		WHERE loan_id = $1
		ORDER BY installment_number
	`

	rows, err := r.pool.Query(ctx, query, loanID)
	if err != nil {
		return nil, wrapStorage(err)
	}
	defer rows.Close()

	var entries []*domain.LoanRepayment
	for rows.Next() {
		entry, err := scanRepayment(rows)
		if err != nil {
			return nil, wrapStorage(err)
		}
		entries = append(entries, entry)
	}

	return entries, wrapStorage(rows.Err())
}

func loanArgs(loan *domain.Loan) []any {
	var maturity pgtype.Timestamptz
	if loan.MaturityDate != nil {
		maturity = timeToPgTimestamptz(*loan.MaturityDate)
	}

	return []any{
		loan.ID,
		loan.MemberID,
		loan.BranchID,
		loan.BankID,
		loan.Type,
		decimalToNumeric(loan.Amount),
		decimalToNumeric(loan.InterestRate),
		loan.RepaymentTerm,
		maturity,
		loan.Status,
		loan.RepaymentStatus,
		timeToPgTimestamptz(loan.CreatedAt),
		timeToPgTimestamptz(loan.UpdatedAt),
	}
}

func loanUpdateArgs(loan *domain.Loan) []any {
	var maturity pgtype.Timestamptz
	if loan.MaturityDate != nil {
		maturity = timeToPgTimestamptz(*loan.MaturityDate)
	}

	return []any{
		loan.ID,
		loan.Status,
		loan.RepaymentStatus,
		maturity,
		timeToPgTimestamptz(loan.UpdatedAt),
	}
}

func scanLoan(row pgx.Row) (*domain.Loan, error) {
	var (
		loan                 domain.Loan
		amount, rate         pgtype.Numeric
		maturity             pgtype.Timestamptz
		createdAt, updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&loan.ID,
		&loan.MemberID,
		&loan.BranchID,
		&loan.BankID,
		&loan.Type,
		&amount,
		&rate,
		&loan.RepaymentTerm,
		&maturity,
		&loan.Status,
		&loan.RepaymentStatus,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLoanNotFound
		}

		return nil, wrapStorage(err)
	}

	loan.Amount = numericToDecimal(amount)
	loan.InterestRate = numericToDecimal(rate)
	if maturity.Valid {
		t := maturity.Time
		loan.MaturityDate = &t
	}
	loan.CreatedAt = createdAt.Time
	loan.UpdatedAt = updatedAt.Time

	return &loan, nil
}

func scanRepayment(row pgx.Row) (*domain.LoanRepayment, error) {
	var (
		entry              domain.LoanRepayment
		emi, paid, penalty pgtype.Numeric
		dueDate, paidDate  pgtype.Timestamptz
	)

	err := row.Scan(
		&entry.ID,
		&entry.LoanID,
		&entry.InstallmentNumber,
		&dueDate,
		&emi,
		&paid,
		&paidDate,
		&penalty,
		&entry.Status,
		&entry.TransactionID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRepaymentNotFound
		}

		return nil, wrapStorage(err)
	}

	entry.DueDate = dueDate.Time
	entry.EMIAmount = numericToDecimal(emi)
	entry.PaidAmount = numericToDecimal(paid)
	entry.Penalty = numericToDecimal(penalty)
	if paidDate.Valid {
		t := paidDate.Time
		entry.PaidDate = &t
	}

	return &entry, nil
}
