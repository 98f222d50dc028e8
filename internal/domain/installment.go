package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InstallmentStatus is the lifecycle state of an installment.
type InstallmentStatus string

// Installment statuses. The transition is one-way: pendiente -> pagada.
const (
	InstallmentPending InstallmentStatus = "pendiente"
	InstallmentPaid    InstallmentStatus = "pagada"
)

// Installment is a single scheduled repayment of a loan.
type Installment struct {
	ID        string
	LoanID    string
	Number    int
	Total     decimal.Decimal
	Status    InstallmentStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPending reports whether the installment is still owed.
func (i *Installment) IsPending() bool {
	return i.Status == InstallmentPending
}

// CoveredBy reports whether paid covers the installment total.
func (i *Installment) CoveredBy(paid decimal.Decimal) bool {
	return paid.GreaterThanOrEqual(i.Total)
}
