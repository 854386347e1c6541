package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cobanker/corebank/internal/domain"
	"github.com/cobanker/corebank/internal/usecase"
)

const depositColumns = `
	id, account_id, member_id, start_date, end_date, amount_per_installment,
	frequency, total_installments, interest_rate, status, created_at,
	updated_at
`

const installmentColumns = `
	id, deposit_id, sequence, due_date, amount, paid_date, status
`

// DepositRepository implements usecase.DepositRepository.
type DepositRepository struct {
	pool *pgxpool.Pool
}

// NewDepositRepository creates a new DepositRepository.
func NewDepositRepository(pool *pgxpool.Pool) *DepositRepository {
	return &DepositRepository{pool: pool}
}

// Create inserts a recurring deposit inside the given transaction.
func (r *DepositRepository) Create(ctx context.Context, tx usecase.Transaction, deposit *domain.RecurringDeposit) error {
	query := `
		INSERT INTO recurring_deposits (` + depositColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := tx.(*Tx).PgxTx().Exec(ctx, query,
		deposit.ID,
		deposit.AccountID,
		deposit.MemberID,
		timeToPgTimestamptz(deposit.StartDate),
		timeToPgTimestamptz(deposit.EndDate),
		decimalToNumeric(deposit.AmountPerInstallment),
		deposit.Frequency,
		deposit.TotalInstallments,
		decimalToNumeric(deposit.InterestRate),
		deposit.Status,
		timeToPgTimestamptz(deposit.CreatedAt),
		timeToPgTimestamptz(deposit.UpdatedAt),
	)

	return mapInsertError(err)
}

// GetByID retrieves a recurring deposit by ID.
func (r *DepositRepository) GetByID(ctx context.Context, id string) (*domain.RecurringDeposit, error) {
	query := `SELECT ` + depositColumns + ` FROM recurring_deposits WHERE id = $1`

	return scanDeposit(r.pool.QueryRow(ctx, query, id))
}

// ListByMember lists a member's recurring deposits.
func (r *DepositRepository) ListByMember(ctx context.Context, memberID string) ([]*domain.RecurringDeposit, error) {
	query := `
		SELECT ` + depositColumns + `
		FROM recurring_deposits
		WHERE member_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, memberID)
	if err != nil {
		return nil, wrapStorage(err)
	}
	defer rows.Close()

	var deposits []*domain.RecurringDeposit
	for rows.Next() {
		deposit, err := scanDeposit(rows)
		if err != nil {
			return nil, wrapStorage(err)
		}
		deposits = append(deposits, deposit)
	}

	return deposits, wrapStorage(rows.Err())
}

// UpdateStatus updates the lifecycle status of a deposit.
func (r *DepositRepository) UpdateStatus(ctx context.Context, id string, status domain.DepositStatus, updatedAt time.Time) error {
	query := `UPDATE recurring_deposits SET status = $2, updated_at = $3 WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, status, timeToPgTimestamptz(updatedAt))
	if err != nil {
		return wrapStorage(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDepositNotFound
	}

	return nil
}

// CreateInstallments inserts a deposit's full installment schedule inside
// the given transaction.
func (r *DepositRepository) CreateInstallments(ctx context.Context, tx usecase.Transaction, installments []domain.Installment) error {
	query := `
		INSERT INTO deposit_installments (` + installmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	pgxTx := tx.(*Tx).PgxTx()
	for _, installment := range installments {
		var paidDate pgtype.Timestamptz
		if installment.PaidDate != nil {
			paidDate = timeToPgTimestamptz(*installment.PaidDate)
		}

		_, err := pgxTx.Exec(ctx, query,
			installment.ID,
			installment.DepositID,
			installment.Sequence,
			timeToPgTimestamptz(installment.DueDate),
			decimalToNumeric(installment.Amount),
			paidDate,
			installment.Status,
		)
		if err != nil {
			return mapInsertError(err)
		}
	}

	return nil
}

// GetInstallment retrieves one installment by ID.
func (r *DepositRepository) GetInstallment(ctx context.Context, id string) (*domain.Installment, error) {
	query := `SELECT ` + installmentColumns + ` FROM deposit_installments WHERE id = $1`

	return scanInstallment(r.pool.QueryRow(ctx, query, id))
}

// UpdateInstallment rewrites one installment's payment state.
func (r *DepositRepository) UpdateInstallment(ctx context.Context, installment *domain.Installment) error {
	query := `
		UPDATE deposit_installments
		SET paid_date = $2, status = $3
		WHERE id = $1
	`

	var paidDate pgtype.Timestamptz
	if installment.PaidDate != nil {
		paidDate = timeToPgTimestamptz(*installment.PaidDate)
	}

	tag, err := r.pool.Exec(ctx, query, installment.ID, paidDate, installment.Status)
	if err != nil {
		return wrapStorage(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInstallmentNotFound
	}

	return nil
}

// ListInstallments lists a deposit's installments in sequence order.
func (r *DepositRepository) ListInstallments(ctx context.Context, depositID string) ([]*domain.Installment, error) {
	query := `
		SELECT ` + installmentColumns + `
		FROM deposit_installments
		WHERE deposit_id = $1
		ORDER BY sequence
	`

	rows, err := r.pool.Query(ctx, query, depositID)
	if err != nil {
		return nil, wrapStorage(err)
	}
	defer rows.Close()

	var installments []*domain.Installment
	for rows.Next() {
		installment, err := scanInstallment(rows)
		if err != nil {
			return nil, wrapStorage(err)
		}
		installments = append(installments, installment)
	}

	return installments, wrapStorage(rows.Err())
}

func scanDeposit(row pgx.Row) (*domain.RecurringDeposit, error) {
	var (
		deposit              domain.RecurringDeposit
		amount, rate         pgtype.Numeric
		startDate, endDate   pgtype.Timestamptz
		createdAt, updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&deposit.ID,
		&deposit.AccountID,
		&deposit.MemberID,
		&startDate,
		&endDate,
		&amount,
		&deposit.Frequency,
		&deposit.TotalInstallments,
		&rate,
		&deposit.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDepositNotFound
		}

		return nil, wrapStorage(err)
	}

	deposit.StartDate = startDate.Time
	deposit.EndDate = endDate.Time
	deposit.AmountPerInstallment = numericToDecimal(amount)
	deposit.InterestRate = numericToDecimal(rate)
	deposit.CreatedAt = createdAt.Time
	deposit.UpdatedAt = updatedAt.Time

	return &deposit, nil
}

func scanInstallment(row pgx.Row) (*domain.Installment, error) {
	var (
		installment       domain.Installment
		amount            pgtype.Numeric
		dueDate, paidDate pgtype.Timestamptz
	)

	err := row.Scan(
		&installment.ID,
		&installment.DepositID,
		&installment.Sequence,
		&dueDate,
		&amount,
		&paidDate,
		&installment.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInstallmentNotFound
		}

		return nil, wrapStorage(err)
	}

	installment.DueDate = dueDate.Time
	installment.Amount = numericToDecimal(amount)
	if paidDate.Valid {
		t := paidDate.Time
		installment.PaidDate = &t
	}

	return &installment, nil
}
