package client

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

const (
	// MetricsSubsystem is a subsystem shared by all metrics exposed by this
	// package.
	MetricsSubsystem = "client"
)

// Metrics contains metrics exposed by this package.
type Metrics struct {
	// Number of transactions submitted to the federation.
	TransactionsSubmitted metrics.Counter
	// Number of submitted transactions accepted by consensus.
	TransactionsAccepted metrics.Counter
	// Number of submitted transactions rejected by consensus.
	TransactionsRejected metrics.Counter
	// Number of cached orders refreshed from the federation.
	OrdersSynced metrics.Counter
	// Number of orders rebuilt by the recovery scan.
	OrdersRecovered metrics.Counter
	// Duration of order reconciliation runs.
	SyncSeconds metrics.Histogram
}

// PrometheusMetrics returns Metrics build using Prometheus client library.
// Optionally, labels can be provided along with their values ("foo",
// "fooValue").
func PrometheusMetrics(namespace string, labelsAndValues ...string) *Metrics {
	labels := []string{}
	for i := 0; i < len(labelsAndValues); i += 2 {
		labels = append(labels, labelsAndValues[i])
	}
	return &Metrics{
		TransactionsSubmitted: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "transactions_submitted",
			Help:      "Number of transactions submitted to the federation.",
		}, labels).With(labelsAndValues...),
		TransactionsAccepted: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "transactions_accepted",
			Help:      "Number of submitted transactions accepted by consensus.",
		}, labels).With(labelsAndValues...),
		TransactionsRejected: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "transactions_rejected",
			Help:      "Number of submitted transactions rejected by consensus.",
		}, labels).With(labelsAndValues...),
		OrdersSynced: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "orders_synced",
			Help:      "Number of cached orders refreshed from the federation.",
		}, labels).With(labelsAndValues...),
		OrdersRecovered: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "orders_recovered",
			Help:      "Number of orders rebuilt by the recovery scan.",
		}, labels).With(labelsAndValues...),
		SyncSeconds: prometheus.NewHistogramFrom(stdprometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "sync_seconds",
			Help:      "Duration of order reconciliation runs.",
			Buckets:   stdprometheus.DefBuckets,
		}, labels).With(labelsAndValues...),
	}
}

// NopMetrics returns no-op Metrics.
func NopMetrics() *Metrics {
	return &Metrics{
		TransactionsSubmitted: discard.NewCounter(),
		TransactionsAccepted:  discard.NewCounter(),
		TransactionsRejected:  discard.NewCounter(),
		OrdersSynced:          discard.NewCounter(),
		OrdersRecovered:       discard.NewCounter(),
		SyncSeconds:           discard.NewHistogram(),
	}
}
