package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentType selects how a payment applies to the loan.
type PaymentType string

const (
	// PaymentTypeInstallment pays one specific installment.
	PaymentTypeInstallment PaymentType = "cuota"
	// PaymentTypeFull pays off the whole outstanding balance.
	PaymentTypeFull PaymentType = "total"
	// PaymentTypeCustom pays an arbitrary user-supplied amount.
	PaymentTypeCustom PaymentType = "otro"
)

// Valid reports whether t is a known payment type.
func (t PaymentType) Valid() bool {
	switch t {
	case PaymentTypeInstallment, PaymentTypeFull, PaymentTypeCustom:
		return true
	}

	return false
}

// PaymentMethod is the modality the payment was made with.
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "efectivo"
	PaymentMethodTransfer PaymentMethod = "transferencia"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCash || m == PaymentMethodTransfer
}

// Payment records money received against a loan. Payments are created once
// and never mutated.
//
// BalanceAfter is the loan's outstanding balance at creation time, a
// point-in-time snapshot rather than a live value.
type Payment struct {
	ID            string
	CustomerID    string
	LoanID        string
	InstallmentID *string
	Amount        decimal.Decimal
	Type          PaymentType
	Method        PaymentMethod
	ReceiptNumber *string
	BalanceAfter  decimal.Decimal
	CreatedAt     time.Time
}

// Validate validates the payment request fields that do not require any
// stored state.
func (p *Payment) Validate() error {
	if !p.Type.Valid() {
		return ErrInvalidPaymentType
	}

	if !p.Method.Valid() {
		return ErrInvalidPaymentMethod
	}

	if err := ValidateAmount(p.Amount); err != nil {
		return err
	}

	if p.Method == PaymentMethodTransfer {
		var receipt string
		if p.ReceiptNumber != nil {
			receipt = *p.ReceiptNumber
		}

		if err := ValidateReceiptNumber(receipt); err != nil {
			return err
		}
	}

	if p.Type == PaymentTypeInstallment && p.InstallmentID == nil {
		return ErrMissingInstallment
	}

	return nil
}

// SumAmounts totals the amount paid across payments.
func SumAmounts(payments []*Payment) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range payments {
		sum = sum.Add(p.Amount)
	}

	return sum
}
