package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/crediflow/cobranza/internal/domain"
	"github.com/crediflow/cobranza/internal/usecase"
	"github.com/crediflow/cobranza/internal/usecase/mocks"
)

type paymentFixture struct {
	txMgr           *mocks.MockTransactionManager
	loanRepo        *mocks.MockLoanRepository
	installmentRepo *mocks.MockInstallmentRepository
	paymentRepo     *mocks.MockPaymentRepository
	outboxRepo      *mocks.MockOutboxRepository
	cache           *mocks.MockCache
	uc              *usecase.PaymentUseCase
}

func newPaymentFixture() *paymentFixture {
	f := &paymentFixture{
		txMgr:           mocks.NewMockTransactionManager(),
		loanRepo:        mocks.NewMockLoanRepository(),
		installmentRepo: mocks.NewMockInstallmentRepository(),
		paymentRepo:     mocks.NewMockPaymentRepository(),
		outboxRepo:      mocks.NewMockOutboxRepository(),
		cache:           mocks.NewMockCache(),
	}

	f.uc = usecase.NewPaymentUseCase(
		f.txMgr,
		f.loanRepo,
		f.installmentRepo,
		f.paymentRepo,
		f.outboxRepo,
		f.cache,
		mocks.NewMockIDGenerator(),
		nil,
	)

	return f
}

// seedLoan stores a loan of 1000 split into 4 installments of 250 for
// customer cust-1 and returns the installment IDs in sequence order.
func (f *paymentFixture) seedLoan(t *testing.T) []string {
	t.Helper()

	ctx := context.Background()

	loan := &domain.Loan{
		ID:                 "loan-1",
		CustomerID:         "cust-1",
		TotalAmount:        decimal.NewFromInt(1000),
		InstallmentAmount:  decimal.NewFromInt(250),
		OutstandingBalance: decimal.NewFromInt(1000),
		CreatedAt:          time.Now().UTC(),
	}
	if err := f.loanRepo.Create(ctx, nil, loan); err != nil {
		t.Fatalf("seed loan: %v", err)
	}

	ids := []string{"inst-1", "inst-2", "inst-3", "inst-4"}
	for i, id := range ids {
		err := f.installmentRepo.Create(ctx, nil, &domain.Installment{
			ID:     id,
			LoanID: "loan-1",
			Number: i + 1,
			Total:  decimal.NewFromInt(250),
			Status: domain.InstallmentPending,
		})
		if err != nil {
			t.Fatalf("seed installment: %v", err)
		}
	}

	return ids
}

func (f *paymentFixture) installmentStatus(t *testing.T, id string) domain.InstallmentStatus {
	t.Helper()

	inst, err := f.installmentRepo.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("get installment %s: %v", id, err)
	}

	return inst.Status
}

func TestPaymentUseCase_CreatePayment_Installment(t *testing.T) {
	f := newPaymentFixture()
	ids := f.seedLoan(t)

	instID := ids[0]
	payment, err := f.uc.CreatePayment(context.Background(), usecase.CreatePaymentInput{
		CustomerID:    "cust-1",
		LoanID:        "loan-1",
		InstallmentID: &instID,
		Amount:        decimal.NewFromInt(250),
		Type:          domain.PaymentTypeInstallment,
		Method:        domain.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !payment.BalanceAfter.Equal(decimal.NewFromInt(750)) {
		t.Errorf("expected balance after 750, got %s", payment.BalanceAfter)
	}

	if got := f.installmentStatus(t, ids[0]); got != domain.InstallmentPaid {
		t.Errorf("expected installment #1 paid, got %s", got)
	}

	for _, id := range ids[1:] {
		if got := f.installmentStatus(t, id); got != domain.InstallmentPending {
			t.Errorf("expected installment %s pending, got %s", id, got)
		}
	}

	loan, _ := f.loanRepo.GetByID(context.Background(), "loan-1")
	if !loan.OutstandingBalance.Equal(decimal.NewFromInt(750)) {
		t.Errorf("expected loan balance 750, got %s", loan.OutstandingBalance)
	}
}

func TestPaymentUseCase_CreatePayment_PartialInstallmentStaysPending(t *testing.T) {
	f := newPaymentFixture()
	ids := f.seedLoan(t)

	instID := ids[0]
	_, err := f.uc.CreatePayment(context.Background(), usecase.CreatePaymentInput{
		CustomerID:    "cust-1",
		LoanID:        "loan-1",
		InstallmentID: &instID,
		Amount:        decimal.NewFromInt(100),
		Type:          domain.PaymentTypeInstallment,
		Method:        domain.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := f.installmentStatus(t, ids[0]); got != domain.InstallmentPending {
		t.Errorf("expected underpaid installment to stay pending, got %s", got)
	}

	// A second partial payment that completes the installment closes it.
	_, err = f.uc.CreatePayment(context.Background(), usecase.CreatePaymentInput{
		CustomerID:    "cust-1",
		LoanID:        "loan-1",
		InstallmentID: &instID,
		Amount:        decimal.NewFromInt(150),
		Type:          domain.PaymentTypeInstallment,
		Method:        domain.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := f.installmentStatus(t, ids[0]); got != domain.InstallmentPaid {
		t.Errorf("expected completed installment paid, got %s", got)
	}
}

func TestPaymentUseCase_CreatePayment_FullClosesAllInstallments(t *testing.T) {
	f := newPaymentFixture()
	ids := f.seedLoan(t)

	payment, err := f.uc.CreatePayment(context.Background(), usecase.CreatePaymentInput{
		CustomerID: "cust-1",
		LoanID:     "loan-1",
		Amount:     decimal.NewFromInt(1000),
		Type:       domain.PaymentTypeFull,
		Method:     domain.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !payment.BalanceAfter.IsZero() {
		t.Errorf("expected zero balance after, got %s", payment.BalanceAfter)
	}

	for _, id := range ids {
		if got := f.installmentStatus(t, id); got != domain.InstallmentPaid {
			t.Errorf("expected installment %s paid, got %s", id, got)
		}
	}
}

func TestPaymentUseCase_CreatePayment_CustomCoveringDebtClosesAll(t *testing.T) {
	f := newPaymentFixture()
	ids := f.seedLoan(t)

	// First a partial payment, then a custom payment for the exact remainder.
	_, err := f.uc.CreatePayment(context.Background(), usecase.CreatePaymentInput{
		CustomerID: "cust-1",
		LoanID:     "loan-1",
		Amount:     decimal.NewFromInt(400),
		Type:       domain.PaymentTypeCustom,
		Method:     domain.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = f.uc.CreatePayment(context.Background(), usecase.CreatePaymentInput{
		CustomerID: "cust-1",
		LoanID:     "loan-1",
		Amount:     decimal.NewFromInt(600),
		Type:       domain.PaymentTypeCustom,
		Method:     domain.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, id := range ids {
		if got := f.installmentStatus(t, id); got != domain.InstallmentPaid {
			t.Errorf("expected installment %s paid after debt settled, got %s", id, got)
		}
	}
}

func TestPaymentUseCase_CreatePayment_CustomTargetedInstallment(t *testing.T) {
	f := newPaymentFixture()
	ids := f.seedLoan(t)

	instID := ids[0]
	_, err := f.uc.CreatePayment(context.Background(), usecase.CreatePaymentInput{
		CustomerID:    "cust-1",
		LoanID:        "loan-1",
		InstallmentID: &instID,
		Amount:        decimal.NewFromInt(300),
		Type:          domain.PaymentTypeCustom,
		Method:        domain.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := f.installmentStatus(t, ids[0]); got != domain.InstallmentPaid {
		t.Errorf("expected targeted installment paid, got %s", got)
	}

	if got := f.installmentStatus(t, ids[1]); got != domain.InstallmentPending {
		t.Errorf("expected untargeted installment pending, got %s", got)
	}
}

func TestPaymentUseCase_CreatePayment_Rejections(t *testing.T) {
	instID := "inst-1"

	tests := []struct {
		name      string
		input     usecase.CreatePaymentInput
		errorType error
	}{
		{
			name: "amount exceeds debt",
			input: usecase.CreatePaymentInput{
				CustomerID: "cust-1",
				LoanID:     "loan-1",
				Amount:     decimal.NewFromInt(1500),
				Type:       domain.PaymentTypeCustom,
				Method:     domain.PaymentMethodCash,
			},
			errorType: domain.ErrAmountExceedsDebt,
		},
		{
			name: "transfer without receipt",
			input: usecase.CreatePaymentInput{
				CustomerID: "cust-1",
				LoanID:     "loan-1",
				Amount:     decimal.NewFromInt(100),
				Type:       domain.PaymentTypeCustom,
				Method:     domain.PaymentMethodTransfer,
			},
			errorType: domain.ErrMissingReceipt,
		},
		{
			name: "installment type without installment",
			input: usecase.CreatePaymentInput{
				CustomerID: "cust-1",
				LoanID:     "loan-1",
				Amount:     decimal.NewFromInt(250),
				Type:       domain.PaymentTypeInstallment,
				Method:     domain.PaymentMethodCash,
			},
			errorType: domain.ErrMissingInstallment,
		},
		{
			name: "unknown loan",
			input: usecase.CreatePaymentInput{
				CustomerID: "cust-1",
				LoanID:     "loan-missing",
				Amount:     decimal.NewFromInt(100),
				Type:       domain.PaymentTypeCustom,
				Method:     domain.PaymentMethodCash,
			},
			errorType: domain.ErrLoanNotFound,
		},
		{
			name: "loan owned by another customer",
			input: usecase.CreatePaymentInput{
				CustomerID: "cust-2",
				LoanID:     "loan-1",
				Amount:     decimal.NewFromInt(100),
				Type:       domain.PaymentTypeCustom,
				Method:     domain.PaymentMethodCash,
			},
			errorType: domain.ErrLoanNotFound,
		},
		{
			name: "zero amount",
			input: usecase.CreatePaymentInput{
				CustomerID:    "cust-1",
				LoanID:        "loan-1",
				InstallmentID: &instID,
				Amount:        decimal.Zero,
				Type:          domain.PaymentTypeInstallment,
				Method:        domain.PaymentMethodCash,
			},
			errorType: domain.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPaymentFixture()
			ids := f.seedLoan(t)

			_, err := f.uc.CreatePayment(context.Background(), tt.input)
			if !errors.Is(err, tt.errorType) {
				t.Fatalf("expected %v, got %v", tt.errorType, err)
			}

			// Failed validation leaves the stores untouched.
			loan, _ := f.loanRepo.GetByID(context.Background(), "loan-1")
			if !loan.OutstandingBalance.Equal(decimal.NewFromInt(1000)) {
				t.Errorf("loan balance mutated on failure: %s", loan.OutstandingBalance)
			}

			payments, _ := f.paymentRepo.ListByLoan(context.Background(), "loan-1", 100, 0)
			if len(payments) != 0 {
				t.Errorf("expected no persisted payments, got %d", len(payments))
			}

			for _, id := range ids {
				if got := f.installmentStatus(t, id); got != domain.InstallmentPending {
					t.Errorf("installment %s mutated on failure: %s", id, got)
				}
			}
		})
	}
}

func TestPaymentUseCase_CreatePayment_RevalidatesAgainstCommittedSum(t *testing.T) {
	f := newPaymentFixture()
	f.seedLoan(t)

	// A prior payment of 900 already committed; the next 600 must be rejected
	// even though it would have passed against the original balance.
	err := f.paymentRepo.Create(context.Background(), nil, &domain.Payment{
		ID:     "pay-prior",
		LoanID: "loan-1",
		Amount: decimal.NewFromInt(900),
	})
	if err != nil {
		t.Fatalf("seed payment: %v", err)
	}

	_, err = f.uc.CreatePayment(context.Background(), usecase.CreatePaymentInput{
		CustomerID: "cust-1",
		LoanID:     "loan-1",
		Amount:     decimal.NewFromInt(600),
		Type:       domain.PaymentTypeCustom,
		Method:     domain.PaymentMethodCash,
	})
	if !errors.Is(err, domain.ErrAmountExceedsDebt) {
		t.Fatalf("expected ErrAmountExceedsDebt, got %v", err)
	}

	// The exact remainder still goes through.
	payment, err := f.uc.CreatePayment(context.Background(), usecase.CreatePaymentInput{
		CustomerID: "cust-1",
		LoanID:     "loan-1",
		Amount:     decimal.NewFromInt(100),
		Type:       domain.PaymentTypeCustom,
		Method:     domain.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !payment.BalanceAfter.IsZero() {
		t.Errorf("expected zero balance after settling, got %s", payment.BalanceAfter)
	}
}

func TestPaymentUseCase_CreatePayment_EmitsOutboxEvents(t *testing.T) {
	f := newPaymentFixture()
	f.seedLoan(t)

	_, err := f.uc.CreatePayment(context.Background(), usecase.CreatePaymentInput{
		CustomerID: "cust-1",
		LoanID:     "loan-1",
		Amount:     decimal.NewFromInt(1000),
		Type:       domain.PaymentTypeFull,
		Method:     domain.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	events := f.outboxRepo.Events()
	if len(events) != 2 {
		t.Fatalf("expected payment.created and loan.settled events, got %d", len(events))
	}

	if events[0].EventType != domain.EventTypePaymentCreated {
		t.Errorf("expected %s, got %s", domain.EventTypePaymentCreated, events[0].EventType)
	}

	if events[1].EventType != domain.EventTypeLoanSettled {
		t.Errorf("expected %s, got %s", domain.EventTypeLoanSettled, events[1].EventType)
	}
}

func TestPaymentUseCase_PreviewPayment(t *testing.T) {
	newPreviewFixture := func(t *testing.T) *paymentFixture {
		f := newPaymentFixture()
		f.seedLoan(t)

		err := f.paymentRepo.Create(context.Background(), nil, &domain.Payment{
			ID:     "pay-prior",
			LoanID: "loan-1",
			Amount: decimal.NewFromInt(250),
		})
		if err != nil {
			t.Fatalf("seed payment: %v", err)
		}

		return f
	}

	t.Run("installment type defaults to installment amount", func(t *testing.T) {
		f := newPreviewFixture(t)

		preview, err := f.uc.PreviewPayment(context.Background(), usecase.PreviewPaymentInput{
			CustomerID: "cust-1",
			Type:       domain.PaymentTypeInstallment,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if preview.Amount == nil || !preview.Amount.Equal(decimal.NewFromInt(250)) {
			t.Errorf("expected default amount 250, got %v", preview.Amount)
		}

		if !preview.PreviewedBalance.Equal(decimal.NewFromInt(500)) {
			t.Errorf("expected previewed balance 500, got %s", preview.PreviewedBalance)
		}

		if preview.NextInstallment == nil || preview.NextInstallment.Number != 1 {
			t.Errorf("expected next installment #1, got %+v", preview.NextInstallment)
		}
	})

	t.Run("full type defaults to outstanding balance", func(t *testing.T) {
		f := newPreviewFixture(t)

		preview, err := f.uc.PreviewPayment(context.Background(), usecase.PreviewPaymentInput{
			CustomerID: "cust-1",
			Type:       domain.PaymentTypeFull,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if preview.Amount == nil || !preview.Amount.Equal(decimal.NewFromInt(750)) {
			t.Errorf("expected default amount 750, got %v", preview.Amount)
		}

		if !preview.PreviewedBalance.IsZero() {
			t.Errorf("expected previewed balance 0, got %s", preview.PreviewedBalance)
		}
	})

	t.Run("custom type without amount carries outstanding only", func(t *testing.T) {
		f := newPreviewFixture(t)

		preview, err := f.uc.PreviewPayment(context.Background(), usecase.PreviewPaymentInput{
			CustomerID: "cust-1",
			Type:       domain.PaymentTypeCustom,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if preview.Amount != nil {
			t.Errorf("expected no default amount, got %s", preview.Amount)
		}

		if !preview.PreviewedBalance.Equal(decimal.NewFromInt(750)) {
			t.Errorf("expected previewed balance 750, got %s", preview.PreviewedBalance)
		}
	})

	t.Run("custom amount above debt rejected", func(t *testing.T) {
		f := newPreviewFixture(t)

		over := decimal.NewFromInt(800)
		_, err := f.uc.PreviewPayment(context.Background(), usecase.PreviewPaymentInput{
			CustomerID: "cust-1",
			Type:       domain.PaymentTypeCustom,
			Amount:     &over,
		})
		if !errors.Is(err, domain.ErrAmountExceedsDebt) {
			t.Fatalf("expected ErrAmountExceedsDebt, got %v", err)
		}
	})

	t.Run("customer without loan reports no debt sentinel", func(t *testing.T) {
		f := newPreviewFixture(t)

		_, err := f.uc.PreviewPayment(context.Background(), usecase.PreviewPaymentInput{
			CustomerID: "cust-without-loan",
			Type:       domain.PaymentTypeFull,
		})
		if !errors.Is(err, domain.ErrNoActiveLoan) {
			t.Fatalf("expected ErrNoActiveLoan, got %v", err)
		}
	})

	t.Run("preview is side effect free", func(t *testing.T) {
		f := newPreviewFixture(t)

		for i := 0; i < 5; i++ {
			_, err := f.uc.PreviewPayment(context.Background(), usecase.PreviewPaymentInput{
				CustomerID: "cust-1",
				Type:       domain.PaymentTypeFull,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		payments, _ := f.paymentRepo.ListByLoan(context.Background(), "loan-1", 100, 0)
		if len(payments) != 1 {
			t.Errorf("preview persisted payments: got %d, want 1", len(payments))
		}

		loan, _ := f.loanRepo.GetByID(context.Background(), "loan-1")
		if !loan.OutstandingBalance.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("preview mutated loan balance: %s", loan.OutstandingBalance)
		}
	})
}

func TestPaymentUseCase_NextInstallment(t *testing.T) {
	f := newPaymentFixture()
	ids := f.seedLoan(t)

	next, err := f.uc.NextInstallment(context.Background(), "loan-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if next.ID != ids[0] || next.Number != 1 {
		t.Errorf("expected first pending installment, got #%d (%s)", next.Number, next.ID)
	}

	// Close the first installment and check the pointer advances.
	if err := f.installmentRepo.MarkPaid(context.Background(), nil, ids[0], time.Now().UTC()); err != nil {
		t.Fatalf("mark paid: %v", err)
	}

	next, err = f.uc.NextInstallment(context.Background(), "loan-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if next.Number != 2 {
		t.Errorf("expected installment #2, got #%d", next.Number)
	}

	// All paid: not found.
	if err := f.installmentRepo.MarkAllPaid(context.Background(), nil, "loan-1", time.Now().UTC()); err != nil {
		t.Fatalf("mark all paid: %v", err)
	}

	if _, err := f.uc.NextInstallment(context.Background(), "loan-1"); !errors.Is(err, domain.ErrInstallmentNotFound) {
		t.Fatalf("expected ErrInstallmentNotFound, got %v", err)
	}
}

func TestPaymentUseCase_CreatePayment_InvalidatesBalanceCache(t *testing.T) {
	f := newPaymentFixture()
	f.seedLoan(t)

	_, err := f.uc.CreatePayment(context.Background(), usecase.CreatePaymentInput{
		CustomerID: "cust-1",
		LoanID:     "loan-1",
		Amount:     decimal.NewFromInt(100),
		Type:       domain.PaymentTypeCustom,
		Method:     domain.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(f.cache.Deleted) != 1 {
		t.Fatalf("expected one cache invalidation, got %d", len(f.cache.Deleted))
	}
}
