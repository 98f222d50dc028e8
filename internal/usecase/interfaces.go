package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/crediflow/cobranza/internal/domain"
)

// CustomerRepository defines data access for customers.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	GetByDocument(ctx context.Context, documentNumber string) (*domain.Customer, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Customer, error)
}

// LoanRepository defines data access for loans.
type LoanRepository interface {
	Create(ctx context.Context, tx Transaction, loan *domain.Loan) error
	GetByID(ctx context.Context, id string) (*domain.Loan, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Loan, error)
	// GetLatestByCustomer returns the customer's most recent funded loan
	// (newest created_at among loans with a non-null total amount), or
	// domain.ErrNoActiveLoan when none exists.
	GetLatestByCustomer(ctx context.Context, customerID string) (*domain.Loan, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*domain.Loan, error)
}

// InstallmentRepository defines data access for installments.
type InstallmentRepository interface {
	Create(ctx context.Context, tx Transaction, installment *domain.Installment) error
	GetByID(ctx context.Context, id string) (*domain.Installment, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Installment, error)
	// GetNextPending returns the pending installment with the lowest
	// sequence number, or domain.ErrInstallmentNotFound when all are paid.
	GetNextPending(ctx context.Context, loanID string) (*domain.Installment, error)
	ListByLoan(ctx context.Context, loanID string) ([]*domain.Installment, error)
	MarkPaid(ctx context.Context, tx Transaction, id string, updatedAt time.Time) error
	MarkAllPaid(ctx context.Context, tx Transaction, loanID string, updatedAt time.Time) error
}

// PaymentRepository defines data access for payments.
type PaymentRepository interface {
	Create(ctx context.Context, tx Transaction, payment *domain.Payment) error
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	SumByLoan(ctx context.Context, loanID string) (decimal.Decimal, error)
	SumByLoanTx(ctx context.Context, tx Transaction, loanID string) (decimal.Decimal, error)
	SumByInstallmentTx(ctx context.Context, tx Transaction, installmentID string) (decimal.Decimal, error)
	ListByLoan(ctx context.Context, loanID string, limit, offset int) ([]*domain.Payment, error)
	ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*domain.Payment, error)
}

// ReconciliationRepository defines data access for balance drift checks.
type ReconciliationRepository interface {
	// FindDrift returns the loans whose cached outstanding balance differs
	// from the balance recomputed from the payment sum.
	FindDrift(ctx context.Context, limit int) ([]*domain.LoanDrift, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
