package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/crediflow/cobranza/internal/domain"
	"github.com/crediflow/cobranza/internal/infrastructure/postgres/generated"
	"github.com/crediflow/cobranza/internal/usecase"
)

// LoanRepository implements usecase.LoanRepository.
type LoanRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewLoanRepository creates a new LoanRepository.
func NewLoanRepository(pool *pgxpool.Pool) *LoanRepository {
	return &LoanRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create creates a new loan within a transaction.
func (r *LoanRepository) Create(ctx context.Context, tx usecase.Transaction, loan *domain.Loan) error {
	queries := r.txQueries(tx)

	_, err := queries.CreateLoan(ctx, generated.CreateLoanParams{
		ID:             loan.ID,
		CustomerID:     loan.CustomerID,
		MontoTotal:     decimalToNumeric(loan.TotalAmount),
		ValorCuota:     decimalToNumeric(loan.InstallmentAmount),
		SaldoPendiente: decimalToNumeric(loan.OutstandingBalance),
		CreatedAt:      timeToPgTimestamptz(loan.CreatedAt),
		UpdatedAt:      timeToPgTimestamptz(loan.UpdatedAt),
	})

	return err
}

// GetByID retrieves a loan by ID.
func (r *LoanRepository) GetByID(ctx context.Context, id string) (*domain.Loan, error) {
	row, err := r.queries.GetLoanByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLoanNotFound
		}

		return nil, err
	}

	return rowToLoan(row), nil
}

// GetByIDForUpdate retrieves a loan by ID with a FOR UPDATE lock.
func (r *LoanRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Loan, error) {
	queries := r.txQueries(tx)

	row, err := queries.GetLoanByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLoanNotFound
		}

		return nil, err
	}

	return rowToLoan(row), nil
}

// GetLatestByCustomer retrieves the customer's most recent funded loan.
// Loans without a monto_total are drafts and never selected.
func (r *LoanRepository) GetLatestByCustomer(ctx context.Context, customerID string) (*domain.Loan, error) {
	row, err := r.queries.GetLatestLoanByCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoActiveLoan
		}

		return nil, err
	}

	return rowToLoan(row), nil
}

// UpdateBalance updates the denormalized outstanding balance of a loan.
func (r *LoanRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	queries := r.txQueries(tx)

	return queries.UpdateLoanBalance(ctx, generated.UpdateLoanBalanceParams{
		ID:             id,
		SaldoPendiente: decimalToNumeric(balance),
		UpdatedAt:      timeToPgTimestamptz(updatedAt),
	})
}

// ListByCustomer lists loans for a customer with pagination.
func (r *LoanRepository) ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*domain.Loan, error) {
	rows, err := r.queries.ListLoansByCustomer(ctx, generated.ListLoansByCustomerParams{
		CustomerID: customerID,
		Limit:      int32(limit),
		Offset:     int32(offset),
	})
	if err != nil {
		return nil, err
	}

	loans := make([]*domain.Loan, 0, len(rows))
	for _, row := range rows {
		loans = append(loans, rowToLoan(row))
	}

	return loans, nil
}

func (r *LoanRepository) txQueries(tx usecase.Transaction) *generated.Queries {
	return generated.New(tx.(*Tx).PgxTx())
}

func rowToLoan(row generated.Loan) *domain.Loan {
	return &domain.Loan{
		ID:                 row.ID,
		CustomerID:         row.CustomerID,
		TotalAmount:        numericToDecimal(row.MontoTotal),
		InstallmentAmount:  numericToDecimal(row.ValorCuota),
		OutstandingBalance: numericToDecimal(row.SaldoPendiente),
		CreatedAt:          row.CreatedAt.Time,
		UpdatedAt:          row.UpdatedAt.Time,
	}
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func textToPg(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}

	return pgtype.Text{String: *s, Valid: true}
}

func pgToText(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}

	s := t.String

	return &s
}
