package usecase

import (
	"context"

	"github.com/cobanker/corebank/internal/domain"
)

// LedgerUseCase serves ledger-wide integrity checks.
type LedgerUseCase struct {
	ledgerRepo LedgerRepository
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(ledgerRepo LedgerRepository) *LedgerUseCase {
	return &LedgerUseCase{ledgerRepo: ledgerRepo}
}

// ConsistencyReport is the result of a ledger-wide integrity check.
type ConsistencyReport struct {
	Consistent bool
	Drift      []domain.LedgerDrift
}

// CheckConsistency compares every account's stored balance against the sum
// of its completed transactions. Any drift means a balance was observed
// without its journal record, which the movement workflow is built to make
// impossible.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context, actor domain.Actor) (*ConsistencyReport, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrAccessDenied
	}

	drift, err := uc.ledgerRepo.FindDrift(ctx)
	if err != nil {
		return nil, err
	}

	return &ConsistencyReport{
		Consistent: len(drift) == 0,
		Drift:      drift,
	}, nil
}
