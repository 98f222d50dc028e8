package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crediflow/cobranza/internal/domain"
	"github.com/crediflow/cobranza/internal/infrastructure/postgres/generated"
	"github.com/crediflow/cobranza/internal/usecase"
)

// InstallmentRepository implements usecase.InstallmentRepository.
type InstallmentRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewInstallmentRepository creates a new InstallmentRepository.
func NewInstallmentRepository(pool *pgxpool.Pool) *InstallmentRepository {
	return &InstallmentRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create creates a new installment within a transaction.
func (r *InstallmentRepository) Create(ctx context.Context, tx usecase.Transaction, installment *domain.Installment) error {
	queries := r.txQueries(tx)

	_, err := queries.CreateInstallment(ctx, generated.CreateInstallmentParams{
		ID:          installment.ID,
		LoanID:      installment.LoanID,
		NumeroCuota: int32(installment.Number),
		Total:       decimalToNumeric(installment.Total),
		Estado:      string(installment.Status),
		CreatedAt:   timeToPgTimestamptz(installment.CreatedAt),
		UpdatedAt:   timeToPgTimestamptz(installment.UpdatedAt),
	})

	return err
}

// GetByID retrieves an installment by ID.
func (r *InstallmentRepository) GetByID(ctx context.Context, id string) (*domain.Installment, error) {
	row, err := r.queries.GetInstallmentByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInstallmentNotFound
		}

		return nil, err
	}

	return rowToInstallment(row), nil
}

// GetByIDForUpdate retrieves an installment by ID with a FOR UPDATE lock.
func (r *InstallmentRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Installment, error) {
	queries := r.txQueries(tx)

	row, err := queries.GetInstallmentByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInstallmentNotFound
		}

		return nil, err
	}

	return rowToInstallment(row), nil
}

// GetNextPending retrieves the lowest-numbered pending installment of a loan.
func (r *InstallmentRepository) GetNextPending(ctx context.Context, loanID string) (*domain.Installment, error) {
	row, err := r.queries.GetNextPendingInstallment(ctx, loanID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInstallmentNotFound
		}

		return nil, err
	}

	return rowToInstallment(row), nil
}

// ListByLoan lists installments of a loan ordered by number.
func (r *InstallmentRepository) ListByLoan(ctx context.Context, loanID string) ([]*domain.Installment, error) {
	rows, err := r.queries.ListInstallmentsByLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}

	installments := make([]*domain.Installment, 0, len(rows))
	for _, row := range rows {
		installments = append(installments, rowToInstallment(row))
	}

	return installments, nil
}

// MarkPaid marks a pending installment as paid within a transaction.
func (r *InstallmentRepository) MarkPaid(ctx context.Context, tx usecase.Transaction, id string, updatedAt time.Time) error {
	queries := r.txQueries(tx)

	return queries.MarkInstallmentPaid(ctx, generated.MarkInstallmentPaidParams{
		ID:        id,
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})
}

// MarkAllPaid marks every pending installment of a loan as paid within a transaction.
func (r *InstallmentRepository) MarkAllPaid(ctx context.Context, tx usecase.Transaction, loanID string, updatedAt time.Time) error {
	queries := r.txQueries(tx)

	return queries.MarkAllInstallmentsPaid(ctx, generated.MarkAllInstallmentsPaidParams{
		LoanID:    loanID,
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})
}

func (r *InstallmentRepository) txQueries(tx usecase.Transaction) *generated.Queries {
	return generated.New(tx.(*Tx).PgxTx())
}

func rowToInstallment(row generated.Installment) *domain.Installment {
	return &domain.Installment{
		ID:        row.ID,
		LoanID:    row.LoanID,
		Number:    int(row.NumeroCuota),
		Total:     numericToDecimal(row.Total),
		Status:    domain.InstallmentStatus(row.Estado),
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}
