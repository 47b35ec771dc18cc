package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	CycleCount         prometheus.Counter
	CycleDuration      prometheus.Histogram
	AcceptedCount      prometheus.Counter
	RejectedCount      prometheus.Counter
	DuplicateCount     prometheus.Counter
	CredentialFailures prometheus.Counter
	AccountFailures    prometheus.Counter
	ActiveAccounts     prometheus.Gauge
}

// NewMetrics creates new Prometheus metrics
func NewMetrics() *Metrics {
	return &Metrics{
		CycleCount: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankmail_ledger_cycles_total",
			Help: "Total number of sync cycles run",
		}),
		CycleDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "bankmail_ledger_cycle_duration_seconds",
			Help:    "Time spent running sync cycles",
			Buckets: prometheus.DefBuckets,
		}),
		AcceptedCount: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankmail_ledger_transactions_accepted_total",
			Help: "Total number of transactions appended to ledgers",
		}),
		RejectedCount: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankmail_ledger_messages_rejected_total",
			Help: "Total number of messages that failed the acceptance gate",
		}),
		DuplicateCount: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankmail_ledger_duplicates_skipped_total",
			Help: "Total number of candidate transactions dropped as duplicates",
		}),
		CredentialFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankmail_ledger_credential_failures_total",
			Help: "Total number of refresh-token exchanges that failed",
		}),
		AccountFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankmail_ledger_account_sync_failures_total",
			Help: "Total number of per-account sync attempts that failed",
		}),
		ActiveAccounts: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "bankmail_ledger_active_accounts",
			Help: "Number of accounts currently active for sync",
		}),
	}
}
