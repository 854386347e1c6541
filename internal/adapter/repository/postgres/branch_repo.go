package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// BranchRepository implements usecase.BranchRepository.
type BranchRepository struct {
	pool *pgxpool.Pool
}

// NewBranchRepository creates a new BranchRepository.
func NewBranchRepository(pool *pgxpool.Pool) *BranchRepository {
	return &BranchRepository{pool: pool}
}

// Exists reports whether a branch belongs to the given bank.
func (r *BranchRepository) Exists(ctx context.Context, id, bankID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM branches WHERE id = $1 AND bank_id = $2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, id, bankID).Scan(&exists); err != nil {
		return false, wrapStorage(err)
	}

	return exists, nil
}
