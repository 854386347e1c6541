package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cobanker/corebank/internal/domain"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

// FindDrift returns accounts whose stored balance disagrees with the sum
// of their completed journal records. Debit-direction kinds subtract;
// everything else adds.
func (r *LedgerRepository) FindDrift(ctx context.Context) ([]domain.LedgerDrift, error) {
	query := `
		SELECT a.id, a.account_number, a.balance, COALESCE(j.journal_balance, 0)
		FROM accounts a
		LEFT JOIN (
			SELECT account_id,
			       SUM(CASE
			           WHEN transaction_type IN ('withdrawal', 'inter_branch_transfer')
			           THEN -amount
			           ELSE amount
			       END) AS journal_balance
			FROM transactions
			WHERE status = 'completed'
			GROUP BY account_id
		) j ON j.account_id = a.id
		WHERE a.balance <> COALESCE(j.journal_balance, 0)
		ORDER BY a.account_number
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, wrapStorage(err)
	}
	defer rows.Close()

	var drift []domain.LedgerDrift
	for rows.Next() {
		var (
			d                domain.LedgerDrift
			balance, journal pgtype.Numeric
		)
		if err := rows.Scan(&d.AccountID, &d.AccountNumber, &balance, &journal); err != nil {
			return nil, wrapStorage(err)
		}
		d.Balance = numericToDecimal(balance)
		d.JournalBalance = numericToDecimal(journal)
		drift = append(drift, d)
	}

	return drift, wrapStorage(rows.Err())
}
