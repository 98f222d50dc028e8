package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidCustomerName   = errors.New("invalid customer name")
	ErrInvalidDocumentNumber = errors.New("invalid document number")
	ErrInvalidReceiptNumber  = errors.New("invalid receipt number")
	ErrAmountTooLarge        = errors.New("amount exceeds maximum allowed")
)

// Validation constants
const (
	MaxCustomerNameLength = 255
	MinCustomerNameLength = 1
	MaxDocumentNumberLen  = 20
	MaxReceiptNumberLen   = 50
	MaxPaymentAmount      = "1000000000000" // 1 trillion
	MinPaymentAmount      = "0.01"
)

var documentNumberRegex = regexp.MustCompile(`^[0-9]{5,20}$`)

// ValidateCustomerName validates a customer name component.
func ValidateCustomerName(name string) error {
	name = strings.TrimSpace(name)

	if len(name) < MinCustomerNameLength {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidCustomerName)
	}

	if len(name) > MaxCustomerNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidCustomerName, MaxCustomerNameLength)
	}

	return nil
}

// ValidateDocumentNumber validates an identity document number.
func ValidateDocumentNumber(doc string) error {
	doc = strings.TrimSpace(doc)

	if !documentNumberRegex.MatchString(doc) {
		return fmt.Errorf("%w: must be %d-%d digits", ErrInvalidDocumentNumber, 5, MaxDocumentNumberLen)
	}

	return nil
}

// ValidateReceiptNumber validates a transfer receipt number.
func ValidateReceiptNumber(receipt string) error {
	receipt = strings.TrimSpace(receipt)

	if receipt == "" {
		return ErrMissingReceipt
	}

	if len(receipt) > MaxReceiptNumberLen {
		return fmt.Errorf("%w: exceeds %d characters", ErrInvalidReceiptNumber, MaxReceiptNumberLen)
	}

	return nil
}

// ValidateAmount validates a payment or loan amount.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	minAmount, _ := decimal.NewFromString(MinPaymentAmount)
	if amount.LessThan(minAmount) {
		return fmt.Errorf("%w: minimum amount is %s", ErrInvalidAmount, MinPaymentAmount)
	}

	maxAmount, _ := decimal.NewFromString(MaxPaymentAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxPaymentAmount)
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters
func ValidatePagination(limit, offset int) (int, int, error) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset, nil
}
