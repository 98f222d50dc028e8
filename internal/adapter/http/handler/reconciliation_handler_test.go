package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/crediflow/cobranza/internal/adapter/http/dto"
	"github.com/crediflow/cobranza/internal/domain"
	"github.com/crediflow/cobranza/internal/usecase"
)

type reconciliationServiceStub struct {
	checkFn func(ctx context.Context) (*usecase.ReconciliationResult, error)
}

func (s *reconciliationServiceStub) CheckConsistency(ctx context.Context) (*usecase.ReconciliationResult, error) {
	return s.checkFn(ctx)
}

func TestReconciliationHandler_Consistent(t *testing.T) {
	handler := NewReconciliationHandler(&reconciliationServiceStub{
		checkFn: func(ctx context.Context) (*usecase.ReconciliationResult, error) {
			return &usecase.ReconciliationResult{Consistent: true, CheckedAt: time.Now().UTC()}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/reconciliation/consistency", nil)
	rec := httptest.NewRecorder()

	handler.CheckConsistency(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ReconciliationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Consistent {
		t.Fatalf("expected consistent result, got %+v", resp)
	}
}

func TestReconciliationHandler_Drift(t *testing.T) {
	handler := NewReconciliationHandler(&reconciliationServiceStub{
		checkFn: func(ctx context.Context) (*usecase.ReconciliationResult, error) {
			return &usecase.ReconciliationResult{
				Consistent: false,
				DriftedLoans: []*domain.LoanDrift{{
					LoanID:          "loan-1",
					CustomerID:      "cust-1",
					CachedBalance:   decimal.NewFromInt(500),
					ComputedBalance: decimal.NewFromInt(400),
					Difference:      decimal.NewFromInt(100),
				}},
				CheckedAt: time.Now().UTC(),
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/reconciliation/consistency", nil)
	rec := httptest.NewRecorder()

	handler.CheckConsistency(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ReconciliationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Consistent || len(resp.DriftedLoans) != 1 {
		t.Fatalf("expected one drifted loan, got %+v", resp)
	}
}

func TestReconciliationHandler_Error(t *testing.T) {
	handler := NewReconciliationHandler(&reconciliationServiceStub{
		checkFn: func(ctx context.Context) (*usecase.ReconciliationResult, error) {
			return nil, errors.New("db down")
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/reconciliation/consistency", nil)
	rec := httptest.NewRecorder()

	handler.CheckConsistency(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
