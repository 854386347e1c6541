package domain

import "github.com/shopspring/decimal"

// LedgerDrift reports an account whose stored balance disagrees with the
// sum of its completed transactions. A non-empty drift set means the
// atomicity guarantee of the ledger workflow was violated somewhere.
type LedgerDrift struct {
	AccountID      string
	AccountNumber  string
	Balance        decimal.Decimal
	JournalBalance decimal.Decimal
}
