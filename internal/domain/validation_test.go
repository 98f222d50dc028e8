package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateCustomerName(t *testing.T) {
	t.Parallel()

	t.Run("valid name", func(t *testing.T) {
		if err := ValidateCustomerName("Maria Fernanda"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("empty name rejected", func(t *testing.T) {
		err := ValidateCustomerName("   ")
		if !errors.Is(err, ErrInvalidCustomerName) {
			t.Fatalf("expected ErrInvalidCustomerName, got %v", err)
		}
	})

	t.Run("name too long", func(t *testing.T) {
		tooLong := strings.Repeat("a", MaxCustomerNameLength+1)
		err := ValidateCustomerName(tooLong)
		if !errors.Is(err, ErrInvalidCustomerName) {
			t.Fatalf("expected ErrInvalidCustomerName, got %v", err)
		}
	})
}

func TestValidateDocumentNumber(t *testing.T) {
	t.Parallel()

	if err := ValidateDocumentNumber("1045789632"); err != nil {
		t.Fatalf("expected valid document, got %v", err)
	}

	if err := ValidateDocumentNumber("12ab34"); !errors.Is(err, ErrInvalidDocumentNumber) {
		t.Fatalf("expected ErrInvalidDocumentNumber, got %v", err)
	}

	if err := ValidateDocumentNumber("123"); !errors.Is(err, ErrInvalidDocumentNumber) {
		t.Fatalf("expected ErrInvalidDocumentNumber for short input, got %v", err)
	}
}

func TestValidateReceiptNumber(t *testing.T) {
	t.Parallel()

	if err := ValidateReceiptNumber("TRF-20240115-001"); err != nil {
		t.Fatalf("expected valid receipt, got %v", err)
	}

	if err := ValidateReceiptNumber("  "); !errors.Is(err, ErrMissingReceipt) {
		t.Fatalf("expected ErrMissingReceipt, got %v", err)
	}

	tooLong := strings.Repeat("9", MaxReceiptNumberLen+1)
	if err := ValidateReceiptNumber(tooLong); !errors.Is(err, ErrInvalidReceiptNumber) {
		t.Fatalf("expected ErrInvalidReceiptNumber, got %v", err)
	}
}

func TestValidateAmount(t *testing.T) {
	t.Parallel()

	if err := ValidateAmount(decimal.NewFromInt(100)); err != nil {
		t.Fatalf("expected valid amount, got %v", err)
	}

	if err := ValidateAmount(decimal.Zero); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}

	if err := ValidateAmount(decimal.RequireFromString("0.001")); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for sub-minimum amount, got %v", err)
	}

	huge := decimal.RequireFromString(MaxPaymentAmount).Add(decimal.NewFromInt(1))
	if err := ValidateAmount(huge); !errors.Is(err, ErrAmountTooLarge) {
		t.Fatalf("expected ErrAmountTooLarge, got %v", err)
	}
}

func TestValidatePagination(t *testing.T) {
	t.Parallel()

	limit, offset, err := ValidatePagination(0, -5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if limit != 50 || offset != 0 {
		t.Errorf("expected defaults (50, 0), got (%d, %d)", limit, offset)
	}

	limit, _, _ = ValidatePagination(5000, 0)
	if limit != 1000 {
		t.Errorf("expected limit capped at 1000, got %d", limit)
	}
}
