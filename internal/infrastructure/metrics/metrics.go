package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Payment metrics
	PaymentsCreated  *prometheus.CounterVec
	PaymentAmount    prometheus.Histogram
	PaymentDuration  prometheus.Histogram
	PaymentErrors    *prometheus.CounterVec
	LoansSettled     prometheus.Counter
	PaymentsPreviews prometheus.Counter

	// Loan metrics
	LoansCreated    prometheus.Counter
	LoanOutstanding *prometheus.GaugeVec

	// Customer metrics
	CustomersCreated prometheus.Counter

	// Reconciliation metrics
	ReconciliationRuns  prometheus.Counter
	ReconciliationDrift prometheus.Gauge

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBDuration    *prometheus.HistogramVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec

	// Outbox metrics
	OutboxPublished prometheus.Counter
	OutboxErrors    prometheus.Counter

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Payment metrics
		PaymentsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cobranza_payments_created_total",
				Help: "Total number of payments recorded by type",
			},
			[]string{"tipo_pago"},
		),
		PaymentAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "cobranza_payment_amount",
			Help:    "Payment amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		PaymentDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "cobranza_payment_duration_seconds",
			Help:    "Duration of payment recording operations",
			Buckets: prometheus.DefBuckets,
		}),
		PaymentErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cobranza_payment_errors_total",
				Help: "Total number of payment errors by type",
			},
			[]string{"error_type"},
		),
		LoansSettled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cobranza_loans_settled_total",
			Help: "Total number of loans fully paid off",
		}),
		PaymentsPreviews: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cobranza_payment_previews_total",
			Help: "Total number of payment previews computed",
		}),

		// Loan metrics
		LoansCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cobranza_loans_created_total",
			Help: "Total number of loans created",
		}),
		LoanOutstanding: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "cobranza_loan_outstanding_balance",
				Help: "Current loan outstanding balance",
			},
			[]string{"loan_id"},
		),

		// Customer metrics
		CustomersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cobranza_customers_created_total",
			Help: "Total number of customers created",
		}),

		// Reconciliation metrics
		ReconciliationRuns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cobranza_reconciliation_runs_total",
			Help: "Total number of balance consistency checks",
		}),
		ReconciliationDrift: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "cobranza_reconciliation_drifted_loans",
			Help: "Number of drifted loans found by the last consistency check",
		}),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cobranza_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cobranza_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Database metrics
		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cobranza_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "table"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cobranza_db_query_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "cobranza_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cobranza_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		// Redis metrics
		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cobranza_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cobranza_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),

		// Outbox metrics
		OutboxPublished: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cobranza_outbox_published_total",
			Help: "Total outbox events published",
		}),
		OutboxErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cobranza_outbox_errors_total",
			Help: "Total outbox publishing errors",
		}),

		// Rate limiting metrics
		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cobranza_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),
	}
}
