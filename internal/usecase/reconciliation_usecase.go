package usecase

import (
	"context"
	"time"

	"github.com/crediflow/cobranza/internal/domain"
	"github.com/crediflow/cobranza/internal/infrastructure/metrics"
)

// ReconciliationUseCase verifies that cached loan balances match the balances
// recomputed from payment sums.
type ReconciliationUseCase struct {
	reconRepo ReconciliationRepository
	metrics   *metrics.Metrics
}

// NewReconciliationUseCase creates a new ReconciliationUseCase.
func NewReconciliationUseCase(reconRepo ReconciliationRepository, metrics *metrics.Metrics) *ReconciliationUseCase {
	return &ReconciliationUseCase{reconRepo: reconRepo, metrics: metrics}
}

// ReconciliationResult represents the result of a consistency check.
type ReconciliationResult struct {
	Consistent   bool
	DriftedLoans []*domain.LoanDrift
	CheckedAt    time.Time
}

// CheckConsistency reports any loan whose denormalized outstanding balance has
// drifted from the authoritative recomputation.
func (uc *ReconciliationUseCase) CheckConsistency(ctx context.Context) (*ReconciliationResult, error) {
	limit, _, _ := domain.ValidatePagination(1000, 0)

	drifted, err := uc.reconRepo.FindDrift(ctx, limit)
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.ReconciliationRuns.Inc()
		uc.metrics.ReconciliationDrift.Set(float64(len(drifted)))
	}

	return &ReconciliationResult{
		Consistent:   len(drifted) == 0,
		DriftedLoans: drifted,
		CheckedAt:    time.Now().UTC(),
	}, nil
}
