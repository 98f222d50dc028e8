package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/crediflow/cobranza/internal/domain"
	"github.com/crediflow/cobranza/internal/infrastructure/postgres/generated"
	"github.com/crediflow/cobranza/internal/usecase"
)

// PaymentRepository implements usecase.PaymentRepository.
type PaymentRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create creates a new payment within a transaction.
func (r *PaymentRepository) Create(ctx context.Context, tx usecase.Transaction, payment *domain.Payment) error {
	queries := r.txQueries(tx)

	_, err := queries.CreatePayment(ctx, generated.CreatePaymentParams{
		ID:                payment.ID,
		CustomerID:        payment.CustomerID,
		LoanID:            payment.LoanID,
		InstallmentID:     textToPg(payment.InstallmentID),
		MontoAbonado:      decimalToNumeric(payment.Amount),
		TipoPago:          string(payment.Type),
		ModalidadPago:     string(payment.Method),
		NumeroComprobante: textToPg(payment.ReceiptNumber),
		SaldoPendiente:    decimalToNumeric(payment.BalanceAfter),
		CreatedAt:         timeToPgTimestamptz(payment.CreatedAt),
	})

	return err
}

// GetByID retrieves a payment by ID.
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	row, err := r.queries.GetPaymentByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPaymentNotFound
		}

		return nil, err
	}

	return rowToPayment(row), nil
}

// SumByLoan sums all payment amounts recorded against a loan.
func (r *PaymentRepository) SumByLoan(ctx context.Context, loanID string) (decimal.Decimal, error) {
	total, err := r.queries.SumPaymentsByLoan(ctx, loanID)
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(total), nil
}

// SumByLoanTx sums all payment amounts recorded against a loan inside the
// given transaction, so the result reflects rows the transaction itself wrote
// and is stable under the loan's FOR UPDATE lock.
func (r *PaymentRepository) SumByLoanTx(ctx context.Context, tx usecase.Transaction, loanID string) (decimal.Decimal, error) {
	queries := r.txQueries(tx)

	total, err := queries.SumPaymentsByLoan(ctx, loanID)
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(total), nil
}

// SumByInstallmentTx sums all payment amounts targeting an installment inside
// the given transaction.
func (r *PaymentRepository) SumByInstallmentTx(ctx context.Context, tx usecase.Transaction, installmentID string) (decimal.Decimal, error) {
	queries := r.txQueries(tx)

	total, err := queries.SumPaymentsByInstallment(ctx, textToPg(&installmentID))
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(total), nil
}

// ListByLoan lists payments of a loan, newest first.
func (r *PaymentRepository) ListByLoan(ctx context.Context, loanID string, limit, offset int) ([]*domain.Payment, error) {
	rows, err := r.queries.ListPaymentsByLoan(ctx, generated.ListPaymentsByLoanParams{
		LoanID: loanID,
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	payments := make([]*domain.Payment, 0, len(rows))
	for _, row := range rows {
		payments = append(payments, rowToPayment(row))
	}

	return payments, nil
}

// ListByCustomer lists payments of a customer, newest first.
func (r *PaymentRepository) ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*domain.Payment, error) {
	rows, err := r.queries.ListPaymentsByCustomer(ctx, generated.ListPaymentsByCustomerParams{
		CustomerID: customerID,
		Limit:      int32(limit),
		Offset:     int32(offset),
	})
	if err != nil {
		return nil, err
	}

	payments := make([]*domain.Payment, 0, len(rows))
	for _, row := range rows {
		payments = append(payments, rowToPayment(row))
	}

	return payments, nil
}

func (r *PaymentRepository) txQueries(tx usecase.Transaction) *generated.Queries {
	return generated.New(tx.(*Tx).PgxTx())
}

func rowToPayment(row generated.Payment) *domain.Payment {
	return &domain.Payment{
		ID:            row.ID,
		CustomerID:    row.CustomerID,
		LoanID:        row.LoanID,
		InstallmentID: pgToText(row.InstallmentID),
		Amount:        numericToDecimal(row.MontoAbonado),
		Type:          domain.PaymentType(row.TipoPago),
		Method:        domain.PaymentMethod(row.ModalidadPago),
		ReceiptNumber: pgToText(row.NumeroComprobante),
		BalanceAfter:  numericToDecimal(row.SaldoPendiente),
		CreatedAt:     row.CreatedAt.Time,
	}
}
