package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/cobanker/corebank/internal/domain"
	"github.com/cobanker/corebank/internal/usecase"
)

const accountColumns = `
	id, account_number, customer_id, account_type, balance, interest_rate,
	minimum_balance, overdraft_limit, monthly_maintenance_fee, status,
	branch_id, bank_id, description, created_at, updated_at
`

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Create inserts a new account inside the given transaction.
func (r *AccountRepository) Create(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := tx.(*Tx).PgxTx().Exec(ctx, query,
		account.ID,
		account.AccountNumber,
		account.CustomerID,
		account.Type,
		decimalToNumeric(account.Balance),
		decimalToNumeric(account.InterestRate),
		decimalToNumeric(account.MinimumBalance),
		decimalToNumeric(account.OverdraftLimit),
		decimalToNumeric(account.MonthlyMaintenanceFee),
		account.Status,
		account.BranchID,
		account.BankID,
		account.Description,
		timeToPgTimestamptz(account.CreatedAt),
		timeToPgTimestamptz(account.UpdatedAt),
	)

	return mapInsertError(err)
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	return scanAccount(r.pool.QueryRow(ctx, query, id))
}

// GetByNumber retrieves an account by its account number.
func (r *AccountRepository) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1`

	return scanAccount(r.pool.QueryRow(ctx, query, number))
}

// GetByIDForUpdate retrieves an account by ID with a FOR UPDATE lock. The
// lock is held until the transaction ends, serializing concurrent
// movements against the row.
func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 FOR UPDATE`

	return scanAccount(tx.(*Tx).PgxTx().QueryRow(ctx, query, id))
}

// UpdateBalance updates the balance of an account inside the given
// transaction.
func (r *AccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	query := `UPDATE accounts SET balance = $2, updated_at = $3 WHERE id = $1`

	_, err := tx.(*Tx).PgxTx().Exec(ctx, query, id, decimalToNumeric(balance), timeToPgTimestamptz(updatedAt))

	return wrapStorage(err)
}

// UpdateStatus updates the lifecycle status of an account inside the given
// transaction.
func (r *AccountRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.AccountStatus, updatedAt time.Time) error {
	query := `UPDATE accounts SET status = $2, updated_at = $3 WHERE id = $1`

	_, err := tx.(*Tx).PgxTx().Exec(ctx, query, id, status, timeToPgTimestamptz(updatedAt))

	return wrapStorage(err)
}

// ListByCustomer lists a customer's accounts with optional status and type
// filters.
func (r *AccountRepository) ListByCustomer(ctx context.Context, customerID string, filter usecase.AccountFilter) ([]*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE customer_id = $1
		  AND ($2 = '' OR status = $2)
		  AND ($3 = '' OR account_type = $3)
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5
	`

	rows, err := r.pool.Query(ctx, query,
		customerID, string(filter.Status), string(filter.Type), filter.Limit, filter.Offset)
	if err != nil {
		return nil, wrapStorage(err)
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, wrapStorage(err)
		}
		accounts = append(accounts, account)
	}

	return accounts, wrapStorage(rows.Err())
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		account                                domain.Account
		balance, rate, minimum, overdraft, fee pgtype.Numeric
		createdAt, updatedAt                   pgtype.Timestamptz
	)

	err := row.Scan(
		&account.ID,
		&account.AccountNumber,
		&account.CustomerID,
		&account.Type,
		&balance,
		&rate,
		&minimum,
		&overdraft,
		&fee,
		&account.Status,
		&account.BranchID,
		&account.BankID,
		&account.Description,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, wrapStorage(err)
	}

	account.Balance = numericToDecimal(balance)
	account.InterestRate = numericToDecimal(rate)
	account.MinimumBalance = numericToDecimal(minimum)
	account.OverdraftLimit = numericToDecimal(overdraft)
	account.MonthlyMaintenanceFee = numericToDecimal(fee)
	account.CreatedAt = createdAt.Time
	account.UpdatedAt = updatedAt.Time

	return &account, nil
}
