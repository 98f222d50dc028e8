package dto

import (
	"github.com/shopspring/decimal"

	"github.com/crediflow/cobranza/internal/domain"
	"github.com/crediflow/cobranza/internal/usecase"
)

// CreateCustomerRequest represents a request to create a customer.
type CreateCustomerRequest struct {
	DocumentNumber string `json:"numero_documento"`
	FirstNames     string `json:"nombres"`
	LastNames      string `json:"apellidos"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateCustomerRequest) ToUseCaseInput() usecase.CreateCustomerInput {
	return usecase.CreateCustomerInput{
		DocumentNumber: r.DocumentNumber,
		FirstNames:     r.FirstNames,
		LastNames:      r.LastNames,
	}
}

// CreateLoanRequest represents a request to create a loan.
type CreateLoanRequest struct {
	CustomerID        string          `json:"customer_id"`
	TotalAmount       decimal.Decimal `json:"monto_total"`
	InstallmentAmount decimal.Decimal `json:"valor_cuota"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateLoanRequest) ToUseCaseInput() usecase.CreateLoanInput {
	return usecase.CreateLoanInput{
		CustomerID:        r.CustomerID,
		TotalAmount:       r.TotalAmount,
		InstallmentAmount: r.InstallmentAmount,
	}
}

// CreatePaymentRequest represents a request to record a payment.
type CreatePaymentRequest struct {
	CustomerID    string          `json:"customer_id"`
	LoanID        string          `json:"loan_id"`
	InstallmentID *string         `json:"installment_id,omitempty"`
	Amount        decimal.Decimal `json:"monto_abonado"`
	Type          string          `json:"tipo_pago"`
	Method        string          `json:"modalidad_pago"`
	ReceiptNumber *string         `json:"numero_comprobante,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreatePaymentRequest) ToUseCaseInput() usecase.CreatePaymentInput {
	return usecase.CreatePaymentInput{
		CustomerID:    r.CustomerID,
		LoanID:        r.LoanID,
		InstallmentID: r.InstallmentID,
		Amount:        r.Amount,
		Type:          domain.PaymentType(r.Type),
		Method:        domain.PaymentMethod(r.Method),
		ReceiptNumber: r.ReceiptNumber,
	}
}

// PreviewPaymentRequest represents a request to preview a payment.
type PreviewPaymentRequest struct {
	CustomerID string           `json:"customer_id"`
	Type       string           `json:"tipo_pago"`
	Amount     *decimal.Decimal `json:"monto_abonado,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *PreviewPaymentRequest) ToUseCaseInput() usecase.PreviewPaymentInput {
	return usecase.PreviewPaymentInput{
		CustomerID: r.CustomerID,
		Type:       domain.PaymentType(r.Type),
		Amount:     r.Amount,
	}
}

// PaginationRequest represents pagination parameters.
type PaginationRequest struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
