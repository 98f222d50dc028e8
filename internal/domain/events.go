package domain

import "time"

// Event types
const (
	EventTypePaymentCreated = "payment.created"
	EventTypeLoanCreated    = "loan.created"
	EventTypeLoanSettled    = "loan.settled"
)

// Aggregate types
const (
	AggregateTypePayment = "payment"
	AggregateTypeLoan    = "loan"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// PaymentCreatedEvent payload
type PaymentCreatedEvent struct {
	PaymentID     string `json:"payment_id"`
	LoanID        string `json:"loan_id"`
	CustomerID    string `json:"customer_id"`
	Amount        string `json:"amount"`
	Type          string `json:"type"`
	Method        string `json:"method"`
	BalanceAfter  string `json:"balance_after"`
	InstallmentID string `json:"installment_id,omitempty"`
}

// LoanCreatedEvent payload
type LoanCreatedEvent struct {
	LoanID       string `json:"loan_id"`
	CustomerID   string `json:"customer_id"`
	TotalAmount  string `json:"total_amount"`
	Installments int    `json:"installments"`
}

// LoanSettledEvent payload
type LoanSettledEvent struct {
	LoanID     string `json:"loan_id"`
	CustomerID string `json:"customer_id"`
	PaymentID  string `json:"payment_id"`
}
