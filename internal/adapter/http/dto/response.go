package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/crediflow/cobranza/internal/domain"
	"github.com/crediflow/cobranza/internal/usecase"
)

// CustomerResponse represents a customer in API responses.
type CustomerResponse struct {
	ID             string    `json:"id"`
	DocumentNumber string    `json:"numero_documento"`
	FirstNames     string    `json:"nombres"`
	LastNames      string    `json:"apellidos"`
	FullName       string    `json:"nombre_completo"`
	CreatedAt      time.Time `json:"created_at"`
}

// CustomerFromDomain converts a domain customer to a response.
func CustomerFromDomain(c *domain.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:             c.ID,
		DocumentNumber: c.DocumentNumber,
		FirstNames:     c.FirstNames,
		LastNames:      c.LastNames,
		FullName:       c.FullName(),
		CreatedAt:      c.CreatedAt,
	}
}

// CustomersFromDomain converts domain customers to responses.
func CustomersFromDomain(customers []*domain.Customer) []*CustomerResponse {
	result := make([]*CustomerResponse, len(customers))
	for i, c := range customers {
		result[i] = CustomerFromDomain(c)
	}
	return result
}

// LoanResponse represents a loan in API responses.
type LoanResponse struct {
	ID                 string          `json:"id"`
	CustomerID         string          `json:"customer_id"`
	TotalAmount        decimal.Decimal `json:"monto_total"`
	InstallmentAmount  decimal.Decimal `json:"valor_cuota"`
	OutstandingBalance decimal.Decimal `json:"saldo_pendiente"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// LoanFromDomain converts a domain loan to a response.
func LoanFromDomain(l *domain.Loan) *LoanResponse {
	return &LoanResponse{
		ID:                 l.ID,
		CustomerID:         l.CustomerID,
		TotalAmount:        l.TotalAmount,
		InstallmentAmount:  l.InstallmentAmount,
		OutstandingBalance: l.OutstandingBalance,
		CreatedAt:          l.CreatedAt,
		UpdatedAt:          l.UpdatedAt,
	}
}

// LoansFromDomain converts domain loans to responses.
func LoansFromDomain(loans []*domain.Loan) []*LoanResponse {
	result := make([]*LoanResponse, len(loans))
	for i, l := range loans {
		result[i] = LoanFromDomain(l)
	}
	return result
}

// InstallmentResponse represents an installment in API responses.
type InstallmentResponse struct {
	ID        string          `json:"id"`
	LoanID    string          `json:"loan_id"`
	Number    int             `json:"numero_cuota"`
	Total     decimal.Decimal `json:"total"`
	Status    string          `json:"estado"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// InstallmentFromDomain converts a domain installment to a response.
func InstallmentFromDomain(i *domain.Installment) *InstallmentResponse {
	return &InstallmentResponse{
		ID:        i.ID,
		LoanID:    i.LoanID,
		Number:    i.Number,
		Total:     i.Total,
		Status:    string(i.Status),
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

// InstallmentsFromDomain converts domain installments to responses.
func InstallmentsFromDomain(installments []*domain.Installment) []*InstallmentResponse {
	result := make([]*InstallmentResponse, len(installments))
	for i, inst := range installments {
		result[i] = InstallmentFromDomain(inst)
	}
	return result
}

// PaymentResponse represents a payment in API responses.
type PaymentResponse struct {
	ID            string          `json:"id"`
	CustomerID    string          `json:"customer_id"`
	LoanID        string          `json:"loan_id"`
	InstallmentID *string         `json:"installment_id,omitempty"`
	Amount        decimal.Decimal `json:"monto_abonado"`
	Type          string          `json:"tipo_pago"`
	Method        string          `json:"modalidad_pago"`
	ReceiptNumber *string         `json:"numero_comprobante,omitempty"`
	BalanceAfter  decimal.Decimal `json:"saldo_pendiente"`
	CreatedAt     time.Time       `json:"created_at"`
}

// PaymentFromDomain converts a domain payment to a response.
func PaymentFromDomain(p *domain.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:            p.ID,
		CustomerID:    p.CustomerID,
		LoanID:        p.LoanID,
		InstallmentID: p.InstallmentID,
		Amount:        p.Amount,
		Type:          string(p.Type),
		Method:        string(p.Method),
		ReceiptNumber: p.ReceiptNumber,
		BalanceAfter:  p.BalanceAfter,
		CreatedAt:     p.CreatedAt,
	}
}

// PaymentsFromDomain converts domain payments to responses.
func PaymentsFromDomain(payments []*domain.Payment) []*PaymentResponse {
	result := make([]*PaymentResponse, len(payments))
	for i, p := range payments {
		result[i] = PaymentFromDomain(p)
	}
	return result
}

// PaymentPreviewResponse represents a payment preview in API responses.
type PaymentPreviewResponse struct {
	LoanID             string               `json:"loan_id"`
	OutstandingBalance decimal.Decimal      `json:"saldo_pendiente"`
	Amount             *decimal.Decimal     `json:"monto_abonado,omitempty"`
	PreviewedBalance   decimal.Decimal      `json:"saldo_proyectado"`
	NextInstallment    *InstallmentResponse `json:"siguiente_cuota,omitempty"`
}

// PreviewFromUseCase converts a use case preview to a response.
func PreviewFromUseCase(p *usecase.PaymentPreview) *PaymentPreviewResponse {
	resp := &PaymentPreviewResponse{
		LoanID:             p.LoanID,
		OutstandingBalance: p.OutstandingBalance,
		Amount:             p.Amount,
		PreviewedBalance:   p.PreviewedBalance,
	}

	if p.NextInstallment != nil {
		resp.NextInstallment = InstallmentFromDomain(p.NextInstallment)
	}

	return resp
}

// BalanceResponse represents a recomputed loan balance in API responses.
type BalanceResponse struct {
	LoanID             string          `json:"loan_id"`
	TotalAmount        decimal.Decimal `json:"monto_total"`
	TotalPaid          decimal.Decimal `json:"total_abonado"`
	OutstandingBalance decimal.Decimal `json:"saldo_pendiente"`
}

// BalanceFromUseCase converts a use case balance result to a response.
func BalanceFromUseCase(b *usecase.BalanceResult) *BalanceResponse {
	return &BalanceResponse{
		LoanID:             b.LoanID,
		TotalAmount:        b.TotalAmount,
		TotalPaid:          b.TotalPaid,
		OutstandingBalance: b.OutstandingBalance,
	}
}

// LoanDriftResponse represents a drifted loan in API responses.
type LoanDriftResponse struct {
	LoanID          string          `json:"loan_id"`
	CustomerID      string          `json:"customer_id"`
	CachedBalance   decimal.Decimal `json:"saldo_almacenado"`
	ComputedBalance decimal.Decimal `json:"saldo_calculado"`
	Difference      decimal.Decimal `json:"diferencia"`
}

// ReconciliationResponse represents a consistency check in API responses.
type ReconciliationResponse struct {
	Consistent   bool                 `json:"consistent"`
	DriftedLoans []*LoanDriftResponse `json:"drifted_loans"`
	CheckedAt    time.Time            `json:"checked_at"`
}

// ReconciliationFromUseCase converts a use case result to a response.
func ReconciliationFromUseCase(r *usecase.ReconciliationResult) *ReconciliationResponse {
	drifted := make([]*LoanDriftResponse, len(r.DriftedLoans))
	for i, d := range r.DriftedLoans {
		drifted[i] = &LoanDriftResponse{
			LoanID:          d.LoanID,
			CustomerID:      d.CustomerID,
			CachedBalance:   d.CachedBalance,
			ComputedBalance: d.ComputedBalance,
			Difference:      d.Difference,
		}
	}

	return &ReconciliationResponse{
		Consistent:   r.Consistent,
		DriftedLoans: drifted,
		CheckedAt:    r.CheckedAt,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
