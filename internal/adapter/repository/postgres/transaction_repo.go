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

const transactionColumns = `
	id, reference_number, account_id, transaction_type, amount, description,
	status, performed_by, previous_balance, new_balance, created_at
`

// TransactionRepository implements usecase.TransactionRepository. The
// journal is append-only; completed rows are never updated.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create inserts a journal record inside the given transaction.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := tx.(*Tx).PgxTx().Exec(ctx, query,
		txn.ID,
		txn.ReferenceNumber,
		txn.AccountID,
		txn.Kind,
		decimalToNumeric(txn.Amount),
		txn.Description,
		txn.Status,
		txn.PerformedBy,
		decimalToNumeric(txn.PreviousBalance),
		decimalToNumeric(txn.NewBalance),
		timeToPgTimestamptz(txn.CreatedAt),
	)

	return mapInsertError(err)
}

// GetByID retrieves a journal record by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	return scanTransaction(r.pool.QueryRow(ctx, query, id))
}

// GetByReference retrieves a journal record by reference number, reading
// through the given transaction so the uniqueness check sees the locked
// state.
func (r *TransactionRepository) GetByReference(ctx context.Context, tx usecase.Transaction, reference string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE reference_number = $1`

	return scanTransaction(tx.(*Tx).PgxTx().QueryRow(ctx, query, reference))
}

// List lists journal records matching the filter, newest first. The bank
// scope joins through the owning account.
func (r *TransactionRepository) List(ctx context.Context, filter usecase.TransactionFilter) ([]*domain.Transaction, error) {
	query := `
		SELECT ` + qualifiedTransactionColumns + `
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE ($1 = '' OR t.account_id = $1)
		  AND ($2 = '' OR a.bank_id = $2)
		  AND ($3 = '' OR t.transaction_type = $3)
		  AND ($4 = '' OR t.status = $4)
		ORDER BY t.created_at DESC
		LIMIT $5 OFFSET $6
	`

	rows, err := r.pool.Query(ctx, query,
		filter.AccountID, filter.BankID, string(filter.Kind), string(filter.Status),
		filter.Limit, filter.Offset)
	if err != nil {
		return nil, wrapStorage(err)
	}
	defer rows.Close()

	var transactions []*domain.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, wrapStorage(err)
		}
		transactions = append(transactions, txn)
	}

	return transactions, wrapStorage(rows.Err())
}

const qualifiedTransactionColumns = `
	t.id, t.reference_number, t.account_id, t.transaction_type, t.amount,
	t.description, t.status, t.performed_by, t.previous_balance,
	t.new_balance, t.created_at
`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		txn                          domain.Transaction
		amount, previous, newBalance pgtype.Numeric
		createdAt                    pgtype.Timestamptz
	)

	err := row.Scan(
		&txn.ID,
		&txn.ReferenceNumber,
		&txn.AccountID,
		&txn.Kind,
		&amount,
		&txn.Description,
		&txn.Status,
		&txn.PerformedBy,
		&previous,
		&newBalance,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, wrapStorage(err)
	}

	txn.Amount = numericToDecimal(amount)
	txn.PreviousBalance = numericToDecimal(previous)
	txn.NewBalance = numericToDecimal(newBalance)
	txn.CreatedAt = createdAt.Time

	return &txn, nil
}
