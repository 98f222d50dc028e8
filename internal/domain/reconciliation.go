package domain

import "github.com/shopspring/decimal"

// LoanDrift reports a loan whose cached outstanding balance no longer matches
// the balance recomputed from its payments.
type LoanDrift struct {
	LoanID          string
	CustomerID      string
	CachedBalance   decimal.Decimal
	ComputedBalance decimal.Decimal
	Difference      decimal.Decimal
}
