package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cobanker/corebank/internal/domain"
)

const customerColumns = `
	id, full_name, email, phone, address, bank_id, branch_id, status,
	kyc_verified, created_at, updated_at
`

// CustomerRepository implements usecase.CustomerRepository.
type CustomerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository creates a new CustomerRepository.
func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

// Create inserts a new customer. Email and phone uniqueness surfaces as
// domain.ErrConflict.
func (r *CustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		customer.ID,
		customer.FullName,
		customer.Email,
		customer.Phone,
		customer.Address,
		customer.BankID,
		customer.BranchID,
		customer.Status,
		customer.KYCVerified,
		timeToPgTimestamptz(customer.CreatedAt),
		timeToPgTimestamptz(customer.UpdatedAt),
	)

	return mapInsertError(err)
}

// GetByID retrieves a customer by ID.
func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`

	return scanCustomer(r.pool.QueryRow(ctx, query, id))
}

// List lists customers, optionally scoped to one bank.
func (r *CustomerRepository) List(ctx context.Context, bankID string, limit, offset int) ([]*domain.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE ($1 = '' OR bank_id = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, bankID, limit, offset)
	if err != nil {
		return nil, wrapStorage(err)
	}
	defer rows.Close()

	var customers []*domain.Customer
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, wrapStorage(err)
		}
		customers = append(customers, customer)
	}

	return customers, wrapStorage(rows.Err())
}

// Update rewrites a customer's mutable fields.
func (r *CustomerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	query := `
		UPDATE customers
		SET full_name = $2, email = $3, phone = $4, address = $5,
		    status = $6, kyc_verified = $7, updated_at = $8
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		customer.ID,
		customer.FullName,
		customer.Email,
		customer.Phone,
		customer.Address,
		customer.Status,
		customer.KYCVerified,
		timeToPgTimestamptz(customer.UpdatedAt),
	)
	if err != nil {
		return mapInsertError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCustomerNotFound
	}

	return nil
}

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var (
		customer             domain.Customer
		createdAt, updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&customer.ID,
		&customer.FullName,
		&customer.Email,
		&customer.Phone,
		&customer.Address,
		&customer.BankID,
		&customer.BranchID,
		&customer.Status,
		&customer.KYCVerified,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCustomerNotFound
		}

		return nil, wrapStorage(err)
	}

	customer.CreatedAt = createdAt.Time
	customer.UpdatedAt = updatedAt.Time

	return &customer, nil
}
