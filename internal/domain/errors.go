package domain

import "errors"

var (
	// Lookup errors
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrLoanNotFound        = errors.New("loan not found")
	ErrInstallmentNotFound = errors.New("installment not found")
	ErrPaymentNotFound     = errors.New("payment not found")

	// ErrNoActiveLoan signals a customer without any funded loan. It is
	// distinct from a zero outstanding balance.
	ErrNoActiveLoan = errors.New("customer has no active loan")

	// Payment validation errors
	ErrAmountExceedsDebt    = errors.New("amount exceeds total debt")
	ErrMissingReceipt       = errors.New("receipt number required for transfer payments")
	ErrMissingInstallment   = errors.New("installment selection required for installment payments")
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrInvalidPaymentType   = errors.New("invalid payment type")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrDuplicateDocument signals a customer document number already registered.
	ErrDuplicateDocument = errors.New("document number already registered")
)
