package integration

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/crediflow/cobranza/internal/adapter/repository/postgres"
	"github.com/crediflow/cobranza/internal/domain"
	"github.com/crediflow/cobranza/internal/usecase"
	"github.com/crediflow/cobranza/tests/testutil"
)

func TestReconciliationDetectsDrift(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	testDB.TruncateAll(ctx)

	pool := testDB.Pool
	loanRepo := postgres.NewLoanRepository(pool)
	installmentRepo := postgres.NewInstallmentRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	outboxRepo := postgres.NewNullOutboxRepository()
	reconRepo := postgres.NewReconciliationRepository(pool)
	txManager := postgres.NewTxManager(pool)
	idGen := postgres.NewULIDGenerator()

	paymentUC := usecase.NewPaymentUseCase(txManager, loanRepo, installmentRepo, paymentRepo, outboxRepo, nil, idGen, nil)
	reconciliationUC := usecase.NewReconciliationUseCase(reconRepo, nil)

	customer := testDB.CreateTestCustomer(ctx, "40000001", "Alba", "Ruiz")
	loan := testDB.CreateTestLoan(ctx, customer.ID, decimal.NewFromInt(1000), decimal.NewFromInt(250))

	if _, err := paymentUC.CreatePayment(ctx, usecase.CreatePaymentInput{
		CustomerID: customer.ID,
		LoanID:     loan.ID,
		Amount:     decimal.NewFromInt(400),
		Type:       domain.PaymentTypeCustom,
		Method:     domain.PaymentMethodCash,
	}); err != nil {
		t.Fatalf("failed to create payment: %v", err)
	}

	result, err := reconciliationUC.CheckConsistency(ctx)
	if err != nil {
		t.Fatalf("consistency check failed: %v", err)
	}
	if !result.Consistent {
		t.Fatalf("expected clean state after payment, got drift: %+v", result.DriftedLoans)
	}

	// Corrupt the cached balance behind the repositories' back.
	if _, err := pool.Exec(ctx, `UPDATE loans SET saldo_pendiente = 999 WHERE id = $1`, loan.ID); err != nil {
		t.Fatalf("failed to corrupt balance: %v", err)
	}

	result, err = reconciliationUC.CheckConsistency(ctx)
	if err != nil {
		t.Fatalf("consistency check failed: %v", err)
	}
	if result.Consistent {
		t.Fatal("expected drift to be detected")
	}
	if len(result.DriftedLoans) != 1 {
		t.Fatalf("expected one drifted loan, got %d", len(result.DriftedLoans))
	}

	drift := result.DriftedLoans[0]
	if drift.LoanID != loan.ID {
		t.Errorf("expected drifted loan %s, got %s", loan.ID, drift.LoanID)
	}
	if !drift.ComputedBalance.Equal(decimal.NewFromInt(600)) {
		t.Errorf("expected computed balance 600, got %s", drift.ComputedBalance)
	}
	if !drift.CachedBalance.Equal(decimal.NewFromInt(999)) {
		t.Errorf("expected cached balance 999, got %s", drift.CachedBalance)
	}
}
