package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/crediflow/cobranza/internal/domain"
	"github.com/crediflow/cobranza/internal/infrastructure/metrics"
)

// LoanUseCase handles loan business logic.
type LoanUseCase struct {
	txManager       TransactionManager
	loanRepo        LoanRepository
	installmentRepo InstallmentRepository
	paymentRepo     PaymentRepository
	outboxRepo      OutboxRepository
	cache           Cache
	idGen           IDGenerator
	metrics         *metrics.Metrics
}

// NewLoanUseCase creates a new LoanUseCase.
func NewLoanUseCase(
	txManager TransactionManager,
	loanRepo LoanRepository,
	installmentRepo InstallmentRepository,
	paymentRepo PaymentRepository,
	outboxRepo OutboxRepository,
	cache Cache,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *LoanUseCase {
	return &LoanUseCase{
		txManager:       txManager,
		loanRepo:        loanRepo,
		installmentRepo: installmentRepo,
		paymentRepo:     paymentRepo,
		outboxRepo:      outboxRepo,
		cache:           cache,
		idGen:           idGen,
		metrics:         metrics,
	}
}

// CreateLoanInput represents input for creating a loan.
type CreateLoanInput struct {
	CustomerID        string
	TotalAmount       decimal.Decimal
	InstallmentAmount decimal.Decimal
}

// CreateLoan creates a loan and its installment schedule atomically.
func (uc *LoanUseCase) CreateLoan(ctx context.Context, input CreateLoanInput) (*domain.Loan, error) {
	if err := domain.ValidateAmount(input.TotalAmount); err != nil {
		return nil, err
	}

	if err := domain.ValidateAmount(input.InstallmentAmount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	loan := &domain.Loan{
		ID:                 uc.idGen.Generate(),
		CustomerID:         input.CustomerID,
		TotalAmount:        input.TotalAmount,
		InstallmentAmount:  input.InstallmentAmount,
		OutstandingBalance: input.TotalAmount,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	schedule := loan.Schedule()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.loanRepo.Create(ctx, tx, loan); err != nil {
		return nil, err
	}

	for i, amount := range schedule {
		installment := &domain.Installment{
			ID:        uc.idGen.Generate(),
			LoanID:    loan.ID,
			Number:    i + 1,
			Total:     amount,
			Status:    domain.InstallmentPending,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := uc.installmentRepo.Create(ctx, tx, installment); err != nil {
			return nil, err
		}
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   loan.ID,
		AggregateType: domain.AggregateTypeLoan,
		EventType:     domain.EventTypeLoanCreated,
		Payload: map[string]any{
			"loan_id":      loan.ID,
			"customer_id":  loan.CustomerID,
			"total_amount": loan.TotalAmount.String(),
			"installments": len(schedule),
		},
		CreatedAt: now,
	}

	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.LoansCreated.Inc()
		uc.metrics.LoanOutstanding.WithLabelValues(loan.ID).Set(loan.TotalAmount.InexactFloat64())
	}

	return loan, nil
}

// GetLoan retrieves a loan by ID.
func (uc *LoanUseCase) GetLoan(ctx context.Context, id string) (*domain.Loan, error) {
	return uc.loanRepo.GetByID(ctx, id)
}

// BalanceResult carries a loan's recomputed outstanding balance.
type BalanceResult struct {
	LoanID             string
	TotalAmount        decimal.Decimal
	TotalPaid          decimal.Decimal
	OutstandingBalance decimal.Decimal
}

// OutstandingBalance recomputes a loan's outstanding balance from its payment
// sum. The result is cached briefly; the cache is bypassed by payment commits,
// which always recompute inside their own transaction.
func (uc *LoanUseCase) OutstandingBalance(ctx context.Context, loanID string) (*BalanceResult, error) {
	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, balanceCacheKey(loanID)); err == nil {
			if result, ok := parseBalanceResult(loanID, cached); ok {
				return result, nil
			}
		}
	}

	loan, err := uc.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	paid, err := uc.paymentRepo.SumByLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}

	result := &BalanceResult{
		LoanID:             loanID,
		TotalAmount:        loan.TotalAmount,
		TotalPaid:          paid,
		OutstandingBalance: loan.Outstanding(paid),
	}

	if uc.cache != nil {
		_ = uc.cache.Set(ctx, balanceCacheKey(loanID), encodeBalanceResult(result), BalanceCacheTTL)
	}

	if uc.metrics != nil {
		uc.metrics.LoanOutstanding.WithLabelValues(loanID).Set(result.OutstandingBalance.InexactFloat64())
	}

	return result, nil
}

// ListLoansByCustomerInput represents input for listing a customer's loans.
type ListLoansByCustomerInput struct {
	CustomerID string
	Limit      int
	Offset     int
}

// ListLoansByCustomer lists loans for a customer.
func (uc *LoanUseCase) ListLoansByCustomer(ctx context.Context, input ListLoansByCustomerInput) ([]*domain.Loan, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	if input.Limit > 100 {
		input.Limit = 100
	}

	return uc.loanRepo.ListByCustomer(ctx, input.CustomerID, input.Limit, input.Offset)
}

// ListInstallments lists the installment schedule of a loan.
func (uc *LoanUseCase) ListInstallments(ctx context.Context, loanID string) ([]*domain.Installment, error) {
	if _, err := uc.loanRepo.GetByID(ctx, loanID); err != nil {
		return nil, err
	}

	return uc.installmentRepo.ListByLoan(ctx, loanID)
}
