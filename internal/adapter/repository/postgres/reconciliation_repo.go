package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crediflow/cobranza/internal/domain"
	"github.com/crediflow/cobranza/internal/infrastructure/postgres/generated"
)

// ReconciliationRepository implements usecase.ReconciliationRepository.
type ReconciliationRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewReconciliationRepository creates a new ReconciliationRepository.
func NewReconciliationRepository(pool *pgxpool.Pool) *ReconciliationRepository {
	return &ReconciliationRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// FindDrift reports loans whose stored saldo_pendiente differs from the
// balance recomputed from the payment sum.
func (r *ReconciliationRepository) FindDrift(ctx context.Context, limit int) ([]*domain.LoanDrift, error) {
	rows, err := r.queries.FindDriftedLoans(ctx, int32(limit))
	if err != nil {
		return nil, err
	}

	drifted := make([]*domain.LoanDrift, 0, len(rows))
	for _, row := range rows {
		cached := numericToDecimal(row.SaldoPendiente)
		computed := numericToDecimal(row.Computed)

		drifted = append(drifted, &domain.LoanDrift{
			LoanID:          row.ID,
			CustomerID:      row.CustomerID,
			CachedBalance:   cached,
			ComputedBalance: computed,
			Difference:      cached.Sub(computed),
		})
	}

	return drifted, nil
}
