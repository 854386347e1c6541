package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cobanker/corebank/internal/domain"
)

const memberColumns = `
	id, customer_id, membership_type, voting_eligibility, status,
	joining_date, created_at, updated_at
`

// MemberRepository implements usecase.MemberRepository.
type MemberRepository struct {
	pool *pgxpool.Pool
}

// NewMemberRepository creates a new MemberRepository.
func NewMemberRepository(pool *pgxpool.Pool) *MemberRepository {
	return &MemberRepository{pool: pool}
}

// Create inserts a new member. The unique constraint on customer_id
// surfaces as domain.ErrConflict.
func (r *MemberRepository) Create(ctx context.Context, member *domain.Member) error {
	query := `
		INSERT INTO members (` + memberColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		member.ID,
		member.CustomerID,
		member.MembershipType,
		member.VotingEligibility,
		member.Status,
		timeToPgTimestamptz(member.JoiningDate),
		timeToPgTimestamptz(member.CreatedAt),
		timeToPgTimestamptz(member.UpdatedAt),
	)

	return mapInsertError(err)
}

// GetByID retrieves a member by ID.
func (r *MemberRepository) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`

	return scanMember(r.pool.QueryRow(ctx, query, id))
}

// GetByCustomer retrieves the membership of a customer.
func (r *MemberRepository) GetByCustomer(ctx context.Context, customerID string) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE customer_id = $1`

	return scanMember(r.pool.QueryRow(ctx, query, customerID))
}

// List lists members with pagination. A non-empty bankID restricts the
// listing to members whose customer belongs to that bank.
func (r *MemberRepository) List(ctx context.Context, bankID string, limit, offset int) ([]*domain.Member, error) {
	query := `
		SELECT m.id, m.customer_id, m.membership_type, m.voting_eligibility,
		       m.status, m.joining_date, m.created_at, m.updated_at
		FROM members m
		JOIN customers c ON c.id = m.customer_id
		WHERE ($1 = '' OR c.bank_id = $1)
		ORDER BY m.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, bankID, limit, offset)
	if err != nil {
		return nil, wrapStorage(err)
	}
	defer rows.Close()

	var members []*domain.Member
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, wrapStorage(err)
		}
		members = append(members, member)
	}

	return members, wrapStorage(rows.Err())
}

// Update rewrites a member's mutable fields.
func (r *MemberRepository) Update(ctx context.Context, member *domain.Member) error {
	query := `
		UPDATE members
		SET membership_type = $2, voting_eligibility = $3, status = $4, updated_at = $5
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		member.ID,
		member.MembershipType,
		member.VotingEligibility,
		member.Status,
		timeToPgTimestamptz(member.UpdatedAt),
	)
	if err != nil {
		return wrapStorage(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMemberNotFound
	}

	return nil
}

func scanMember(row pgx.Row) (*domain.Member, error) {
	var (
		member                            domain.Member
		joiningDate, createdAt, updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&member.ID,
		&member.CustomerID,
		&member.MembershipType,
		&member.VotingEligibility,
		&member.Status,
		&joiningDate,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMemberNotFound
		}

		return nil, wrapStorage(err)
	}

	member.JoiningDate = joiningDate.Time
	member.CreatedAt = createdAt.Time
	member.UpdatedAt = updatedAt.Time

	return &member, nil
}
