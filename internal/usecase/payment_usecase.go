package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/crediflow/cobranza/internal/domain"
	"github.com/crediflow/cobranza/internal/infrastructure/metrics"
)

// PaymentUseCase handles payment recording and balance reconciliation.
type PaymentUseCase struct {
	txManager       TransactionManager
	loanRepo        LoanRepository
	installmentRepo InstallmentRepository
	paymentRepo     PaymentRepository
	outboxRepo      OutboxRepository
	cache           Cache
	idGen           IDGenerator
	metrics         *metrics.Metrics
}

// NewPaymentUseCase creates a new PaymentUseCase.
func NewPaymentUseCase(
	txManager TransactionManager,
	loanRepo LoanRepository,
	installmentRepo InstallmentRepository,
	paymentRepo PaymentRepository,
	outboxRepo OutboxRepository,
	cache Cache,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *PaymentUseCase {
	return &PaymentUseCase{
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

// CreatePaymentInput represents input for recording a payment.
type CreatePaymentInput struct {
	CustomerID    string
	LoanID        string
	InstallmentID *string
	Amount        decimal.Decimal
	Type          domain.PaymentType
	Method        domain.PaymentMethod
	ReceiptNumber *string
}

// CreatePayment validates and persists a payment against a loan.
//
// The loan row is locked FOR UPDATE and the outstanding balance is recomputed
// from the payment sum inside the same transaction, so two concurrent
// submissions against one loan are serialized and the second is re-validated
// against the post-first-payment balance. Payment insert, loan balance update
// and installment closure commit together or not at all.
func (uc *PaymentUseCase) CreatePayment(ctx context.Context, input CreatePaymentInput) (*domain.Payment, error) {
	start := time.Now()

	payment, err := uc.createPayment(ctx, input)

	if uc.metrics != nil {
		if err != nil {
			uc.metrics.PaymentErrors.WithLabelValues(paymentErrorReason(err)).Inc()
			return nil, err
		}

		uc.metrics.PaymentsCreated.WithLabelValues(string(payment.Type)).Inc()
		uc.metrics.PaymentAmount.Observe(payment.Amount.InexactFloat64())
		uc.metrics.PaymentDuration.Observe(time.Since(start).Seconds())

		if payment.BalanceAfter.IsZero() {
			uc.metrics.LoansSettled.Inc()
		}
	}

	return payment, err
}

func (uc *PaymentUseCase) createPayment(ctx context.Context, input CreatePaymentInput) (*domain.Payment, error) {
	now := time.Now().UTC()

	payment := &domain.Payment{
		ID:            uc.idGen.Generate(),
		CustomerID:    input.CustomerID,
		LoanID:        input.LoanID,
		InstallmentID: input.InstallmentID,
		Amount:        input.Amount,
		Type:          input.Type,
		Method:        input.Method,
		ReceiptNumber: input.ReceiptNumber,
		CreatedAt:     now,
	}

	// Stateless validation before touching the database
	if err := payment.Validate(); err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	loan, err := uc.loanRepo.GetByIDForUpdate(ctx, tx, input.LoanID)
	if err != nil {
		return nil, err
	}

	if loan.CustomerID != input.CustomerID {
		return nil, domain.ErrLoanNotFound
	}

	// Authoritative balance: recomputed at commit time, never taken from the
	// cached loan field or a client-supplied preview.
	paid, err := uc.paymentRepo.SumByLoanTx(ctx, tx, loan.ID)
	if err != nil {
		return nil, err
	}

	outstanding := loan.Outstanding(paid)

	if input.Amount.GreaterThan(outstanding) {
		return nil, domain.ErrAmountExceedsDebt
	}

	newBalance := outstanding.Sub(input.Amount)
	if newBalance.IsNegative() {
		newBalance = decimal.Zero
	}

	payment.BalanceAfter = newBalance

	if err := uc.paymentRepo.Create(ctx, tx, payment); err != nil {
		return nil, err
	}

	if err := uc.loanRepo.UpdateBalance(ctx, tx, loan.ID, newBalance, now); err != nil {
		return nil, err
	}

	if err := uc.closeInstallments(ctx, tx, loan, payment, outstanding, now); err != nil {
		return nil, err
	}

	if err := uc.recordEvents(ctx, tx, loan, payment, newBalance, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.invalidateBalance(ctx, loan.ID)

	return payment, nil
}

// closeInstallments applies the installment-closure rule for a committed
// payment amount:
//
//   - cuota: the targeted installment is marked paid iff the cumulative
//     payments against it (including this one) cover its total.
//   - total: every pending installment is marked paid unconditionally.
//   - otro: the targeted installment (if any) is closed when its own
//     remainder is covered, and additionally all pending installments are
//     closed when the amount covers the loan's pre-payment outstanding
//     balance. Both checks run independently.
func (uc *PaymentUseCase) closeInstallments(
	ctx context.Context,
	tx Transaction,
	loan *domain.Loan,
	payment *domain.Payment,
	outstanding decimal.Decimal,
	now time.Time,
) error {
	switch payment.Type {
	case domain.PaymentTypeInstallment:
		return uc.closeTargetInstallment(ctx, tx, loan, payment, now)

	case domain.PaymentTypeFull:
		return uc.installmentRepo.MarkAllPaid(ctx, tx, loan.ID, now)

	case domain.PaymentTypeCustom:
		if payment.InstallmentID != nil {
			if err := uc.closeTargetInstallment(ctx, tx, loan, payment, now); err != nil {
				return err
			}
		}

		if payment.Amount.GreaterThanOrEqual(outstanding) {
			return uc.installmentRepo.MarkAllPaid(ctx, tx, loan.ID, now)
		}
	}

	return nil
}

func (uc *PaymentUseCase) closeTargetInstallment(
	ctx context.Context,
	tx Transaction,
	loan *domain.Loan,
	payment *domain.Payment,
	now time.Time,
) error {
	installment, err := uc.installmentRepo.GetByIDForUpdate(ctx, tx, *payment.InstallmentID)
	if err != nil {
		return err
	}

	if installment.LoanID != loan.ID {
		return domain.ErrInstallmentNotFound
	}

	if !installment.IsPending() {
		return nil
	}

	// Includes the payment persisted in this transaction.
	paidAgainst, err := uc.paymentRepo.SumByInstallmentTx(ctx, tx, installment.ID)
	if err != nil {
		return err
	}

	if installment.CoveredBy(paidAgainst) {
		return uc.installmentRepo.MarkPaid(ctx, tx, installment.ID, now)
	}

	return nil
}

func (uc *PaymentUseCase) recordEvents(
	ctx context.Context,
	tx Transaction,
	loan *domain.Loan,
	payment *domain.Payment,
	newBalance decimal.Decimal,
	now time.Time,
) error {
	installmentID := ""
	if payment.InstallmentID != nil {
		installmentID = *payment.InstallmentID
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   payment.ID,
		AggregateType: domain.AggregateTypePayment,
		EventType:     domain.EventTypePaymentCreated,
		Payload: map[string]any{
			"payment_id":     payment.ID,
			"loan_id":        payment.LoanID,
			"customer_id":    payment.CustomerID,
			"amount":         payment.Amount.String(),
			"type":           string(payment.Type),
			"method":         string(payment.Method),
			"balance_after":  payment.BalanceAfter.String(),
			"installment_id": installmentID,
		},
		CreatedAt: now,
	}

	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return err
	}

	if !newBalance.IsZero() {
		return nil
	}

	settled := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   loan.ID,
		AggregateType: domain.AggregateTypeLoan,
		EventType:     domain.EventTypeLoanSettled,
		Payload: map[string]any{
			"loan_id":     loan.ID,
			"customer_id": loan.CustomerID,
			"payment_id":  payment.ID,
		},
		CreatedAt: now,
	}

	return uc.outboxRepo.Create(ctx, tx, settled)
}

func (uc *PaymentUseCase) invalidateBalance(ctx context.Context, loanID string) {
	if uc.cache == nil {
		return
	}

	// Best effort. The cache is never an input to validation.
	_ = uc.cache.Delete(ctx, balanceCacheKey(loanID))
}

// paymentErrorReason maps a rejection to its metric label.
func paymentErrorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrAmountExceedsDebt):
		return "exceeds_debt"
	case errors.Is(err, domain.ErrMissingReceipt):
		return "missing_receipt"
	case errors.Is(err, domain.ErrMissingInstallment):
		return "missing_installment"
	case errors.Is(err, domain.ErrLoanNotFound):
		return "loan_not_found"
	case errors.Is(err, domain.ErrInstallmentNotFound):
		return "installment_not_found"
	case errors.Is(err, domain.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, domain.ErrAmountTooLarge):
		return "amount_too_large"
	case errors.Is(err, domain.ErrInvalidReceiptNumber):
		return "invalid_receipt"
	case errors.Is(err, domain.ErrInvalidPaymentType):
		return "invalid_type"
	case errors.Is(err, domain.ErrInvalidPaymentMethod):
		return "invalid_method"
	default:
		return "internal"
	}
}

// PreviewPaymentInput represents input for previewing a payment.
type PreviewPaymentInput struct {
	CustomerID string
	Type       domain.PaymentType
	Amount     *decimal.Decimal
}

// PaymentPreview is the reactive-field state computed for a proposed payment.
// It is a pure read: calling Preview any number of times mutates nothing.
type PaymentPreview struct {
	LoanID             string
	OutstandingBalance decimal.Decimal
	Amount             *decimal.Decimal
	PreviewedBalance   decimal.Decimal
	NextInstallment    *domain.Installment
}

// PreviewPayment resolves the customer's latest funded loan and computes the
// default amount and previewed balance for the chosen payment type.
//
// A proposed amount above the outstanding balance is rejected with
// ErrAmountExceedsDebt; the caller is expected to clear the field and
// redisplay the unchanged outstanding balance.
func (uc *PaymentUseCase) PreviewPayment(ctx context.Context, input PreviewPaymentInput) (*PaymentPreview, error) {
	preview, err := uc.previewPayment(ctx, input)

	if err == nil && uc.metrics != nil {
		uc.metrics.PaymentsPreviews.Inc()
	}

	return preview, err
}

func (uc *PaymentUseCase) previewPayment(ctx context.Context, input PreviewPaymentInput) (*PaymentPreview, error) {
	if !input.Type.Valid() {
		return nil, domain.ErrInvalidPaymentType
	}

	loan, err := uc.loanRepo.GetLatestByCustomer(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}

	paid, err := uc.paymentRepo.SumByLoan(ctx, loan.ID)
	if err != nil {
		return nil, err
	}

	outstanding := loan.Outstanding(paid)

	preview := &PaymentPreview{
		LoanID:             loan.ID,
		OutstandingBalance: outstanding,
		PreviewedBalance:   outstanding,
	}

	var amount decimal.Decimal

	switch input.Type {
	case domain.PaymentTypeInstallment:
		amount = loan.InstallmentAmount

		next, err := uc.installmentRepo.GetNextPending(ctx, loan.ID)
		if err != nil && !errors.Is(err, domain.ErrInstallmentNotFound) {
			return nil, err
		}

		preview.NextInstallment = next

	case domain.PaymentTypeFull:
		amount = outstanding

	case domain.PaymentTypeCustom:
		if input.Amount == nil {
			// No default for custom amounts; the preview carries the
			// outstanding balance only.
			return preview, nil
		}

		amount = *input.Amount
	}

	if amount.GreaterThan(outstanding) {
		return nil, domain.ErrAmountExceedsDebt
	}

	previewed := outstanding.Sub(amount)
	if previewed.IsNegative() {
		previewed = decimal.Zero
	}

	preview.Amount = &amount
	preview.PreviewedBalance = previewed

	return preview, nil
}

// NextInstallment returns the first unpaid installment of a loan, or
// domain.ErrInstallmentNotFound when every installment is already paid.
func (uc *PaymentUseCase) NextInstallment(ctx context.Context, loanID string) (*domain.Installment, error) {
	if _, err := uc.loanRepo.GetByID(ctx, loanID); err != nil {
		return nil, err
	}

	return uc.installmentRepo.GetNextPending(ctx, loanID)
}

// GetPayment retrieves a payment by ID.
func (uc *PaymentUseCase) GetPayment(ctx context.Context, id string) (*domain.Payment, error) {
	return uc.paymentRepo.GetByID(ctx, id)
}

// ListPaymentsByLoanInput represents input for listing payments of a loan.
type ListPaymentsByLoanInput struct {
	LoanID string
	Limit  int
	Offset int
}

// ListPaymentsByLoan lists payments recorded against a loan.
func (uc *PaymentUseCase) ListPaymentsByLoan(ctx context.Context, input ListPaymentsByLoanInput) ([]*domain.Payment, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	if input.Limit > 100 {
		input.Limit = 100
	}

	return uc.paymentRepo.ListByLoan(ctx, input.LoanID, input.Limit, input.Offset)
}

// ListPaymentsByCustomerInput represents input for listing a customer's payments.
type ListPaymentsByCustomerInput struct {
	CustomerID string
	Limit      int
	Offset     int
}

// ListPaymentsByCustomer lists payments recorded for a customer.
func (uc *PaymentUseCase) ListPaymentsByCustomer(ctx context.Context, input ListPaymentsByCustomerInput) ([]*domain.Payment, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	if input.Limit > 100 {
		input.Limit = 100
	}

	return uc.paymentRepo.ListByCustomer(ctx, input.CustomerID, input.Limit, input.Offset)
}

func balanceCacheKey(loanID string) string {
	return "loan:balance:" + loanID
}
