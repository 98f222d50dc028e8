package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/crediflow/cobranza/internal/adapter/http/handler"
	"github.com/crediflow/cobranza/internal/adapter/http/middleware"
	"github.com/crediflow/cobranza/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	CustomerHandler       *handler.CustomerHandler
	LoanHandler           *handler.LoanHandler
	PaymentHandler        *handler.PaymentHandler
	ReconciliationHandler *handler.ReconciliationHandler
	HealthHandler         *handler.HealthHandler
	IdempotencyStore      usecase.IdempotencyStore
	RateLimiter           *middleware.RateLimiter
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Customers
		r.Route("/customers", func(r chi.Router) {
			r.Post("/", cfg.CustomerHandler.Create)
			r.Get("/", cfg.CustomerHandler.List)
			r.Get("/{id}", cfg.CustomerHandler.Get)
			r.Get("/document/{document}", cfg.CustomerHandler.GetByDocument)
			r.Get("/{id}/loans", cfg.CustomerHandler.ListLoans)
			r.Get("/{id}/payments", cfg.PaymentHandler.ListByCustomer)
		})

		// Loans
		r.Route("/loans", func(r chi.Router) {
			r.Post("/", cfg.LoanHandler.Create)
			r.Get("/{id}", cfg.LoanHandler.Get)
			r.Get("/{id}/balance", cfg.LoanHandler.Balance)
			r.Get("/{id}/installments", cfg.LoanHandler.Installments)
			r.Get("/{id}/installments/next", cfg.PaymentHandler.NextInstallment)
			r.Get("/{id}/payments", cfg.PaymentHandler.ListByLoan)
		})

		// Payments
		r.Route("/payments", func(r chi.Router) {
			r.Post("/", cfg.PaymentHandler.Create)
			r.Post("/preview", cfg.PaymentHandler.Preview)
			r.Get("/{id}", cfg.PaymentHandler.Get)
		})

		// Reconciliation
		r.Get("/reconciliation/consistency", cfg.ReconciliationHandler.CheckConsistency)
	})

	return r
}
