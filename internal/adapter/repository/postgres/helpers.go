package postgres

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/cobanker/corebank/internal/domain"
)

const pgErrUniqueViolation = "23505"

// mapInsertError translates constraint violations into domain errors.
func mapInsertError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
		return domain.ErrConflict
	}
	return wrapStorage(err)
}

// wrapStorage tags infrastructure failures as domain.ErrStorage so
// callers can tell a datastore outage from a domain rejection. Errors
// already carrying domain meaning pass through untouched, and the
// original error stays in the chain for the retrier's SQLSTATE checks.
func wrapStorage(err error) error {
	if err == nil || domain.IsDomain(err) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrStorage, err)
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
