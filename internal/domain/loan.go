package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan represents a customer loan repaid in installments.
//
// OutstandingBalance is a denormalized snapshot, overwritten on every payment
// commit. The authoritative balance is always recomputed from the payment sum.
type Loan struct {
	ID                 string
	CustomerID         string
	TotalAmount        decimal.Decimal
	InstallmentAmount  decimal.Decimal
	OutstandingBalance decimal.Decimal
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Outstanding returns the debt left after paid has been applied to the loan
// total, floored at zero.
func (l *Loan) Outstanding(paid decimal.Decimal) decimal.Decimal {
	out := l.TotalAmount.Sub(paid)
	if out.IsNegative() {
		return decimal.Zero
	}

	return out
}

// InstallmentCount returns how many installments the loan total splits into
// at the loan's per-installment amount. The last installment absorbs any
// remainder smaller than a full installment.
func (l *Loan) InstallmentCount() int {
	if l.InstallmentAmount.LessThanOrEqual(decimal.Zero) {
		return 0
	}

	return int(l.TotalAmount.Div(l.InstallmentAmount).Ceil().IntPart())
}

// Schedule splits the loan total into its installment amounts, in order.
func (l *Loan) Schedule() []decimal.Decimal {
	n := l.InstallmentCount()
	if n == 0 {
		return nil
	}

	amounts := make([]decimal.Decimal, 0, n)
	remaining := l.TotalAmount

	for i := 0; i < n; i++ {
		amount := l.InstallmentAmount
		if remaining.LessThan(amount) {
			amount = remaining
		}

		amounts = append(amounts, amount)
		remaining = remaining.Sub(amount)
	}

	return amounts
}
