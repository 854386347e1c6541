package postgres

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
)

// ULIDGenerator generates ULID-based entity IDs.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate generates a new ULID.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}

// AccountNumberGenerator produces account numbers of the form
// "CB" followed by 12 digits. Numbers are a seconds-resolution timestamp
// extended by an atomic counter, so the generator does not collide with
// itself; the unique constraint on account_number backstops restarts.
type AccountNumberGenerator struct {
	counter atomic.Uint64
}

// NewAccountNumberGenerator creates a generator seeded from the clock.
func NewAccountNumberGenerator() *AccountNumberGenerator {
	g := &AccountNumberGenerator{}
	g.counter.Store(uint64(time.Now().Unix()) << 20)
	return g
}

// Next returns the next account number.
func (g *AccountNumberGenerator) Next() string {
	n := g.counter.Add(1)
	return fmt.Sprintf("CB%012d", n%1e12)
}
