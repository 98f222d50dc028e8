package integration

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/crediflow/cobranza/internal/adapter/repository/postgres"
	"github.com/crediflow/cobranza/internal/domain"
	"github.com/crediflow/cobranza/internal/infrastructure/eventpublisher"
	"github.com/crediflow/cobranza/internal/usecase"
	"github.com/crediflow/cobranza/tests/testutil"
)

func TestOutboxEventCreation(t *testing.T) {
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
	outboxRepo := postgres.NewOutboxRepository(pool)
	txManager := postgres.NewTxManager(pool)
	idGen := postgres.NewULIDGenerator()

	paymentUC := usecase.NewPaymentUseCase(txManager, loanRepo, installmentRepo, paymentRepo, outboxRepo, nil, idGen, nil)

	customer := testDB.CreateTestCustomer(ctx, "30000001", "Vera", "Salas")
	loan := testDB.CreateTestLoan(ctx, customer.ID, decimal.NewFromInt(500), decimal.NewFromInt(100))

	payment, err := paymentUC.CreatePayment(ctx, usecase.CreatePaymentInput{
		CustomerID: customer.ID,
		LoanID:     loan.ID,
		Amount:     decimal.NewFromInt(500),
		Type:       domain.PaymentTypeFull,
		Method:     domain.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("failed to create payment: %v", err)
	}

	events, err := outboxRepo.GetUnpublished(ctx, 10)
	if err != nil {
		t.Fatalf("failed to get unpublished events: %v", err)
	}

	var createdEvent, settledEvent *domain.OutboxEvent
	for _, event := range events {
		switch {
		case event.EventType == domain.EventTypePaymentCreated && event.AggregateID == payment.ID:
			createdEvent = event
		case event.EventType == domain.EventTypeLoanSettled && event.AggregateID == loan.ID:
			settledEvent = event
		}
	}

	if createdEvent == nil {
		t.Fatal("payment created event not found in outbox")
	}
	if createdEvent.AggregateType != domain.AggregateTypePayment {
		t.Errorf("expected aggregate type %s, got %s", domain.AggregateTypePayment, createdEvent.AggregateType)
	}
	if createdEvent.Published {
		t.Error("expected event to start unpublished")
	}

	// A full payment settles the loan, so both events must commit together.
	if settledEvent == nil {
		t.Fatal("loan settled event not found in outbox")
	}
}

func TestEventPublisherMarksEventsPublished(t *testing.T) {
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
	outboxRepo := postgres.NewOutboxRepository(pool)
	txManager := postgres.NewTxManager(pool)
	idGen := postgres.NewULIDGenerator()

	paymentUC := usecase.NewPaymentUseCase(txManager, loanRepo, installmentRepo, paymentRepo, outboxRepo, nil, idGen, nil)

	customer := testDB.CreateTestCustomer(ctx, "30000002", "Hugo", "Leon")
	loan := testDB.CreateTestLoan(ctx, customer.ID, decimal.NewFromInt(500), decimal.NewFromInt(100))

	if _, err := paymentUC.CreatePayment(ctx, usecase.CreatePaymentInput{
		CustomerID: customer.ID,
		LoanID:     loan.ID,
		Amount:     decimal.NewFromInt(100),
		Type:       domain.PaymentTypeCustom,
		Method:     domain.PaymentMethodCash,
	}); err != nil {
		t.Fatalf("failed to create payment: %v", err)
	}

	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  eventpublisher.NewLogPublisher(slog.Default()),
		BatchSize:  10,
		Interval:   50 * time.Millisecond,
	})

	publishCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = publisher.Start(publishCtx)
	}()

	deadline := time.After(2 * time.Second)
	for {
		events, err := outboxRepo.GetUnpublished(ctx, 10)
		if err != nil {
			t.Fatalf("failed to get unpublished events: %v", err)
		}
		if len(events) == 0 {
			break
		}

		select {
		case <-deadline:
			t.Fatalf("expected all events to be published, %d remain", len(events))
		case <-time.After(50 * time.Millisecond):
		}
	}

	cancel()
	<-done
}
