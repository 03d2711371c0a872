package app

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jsamuelsen/quotes-service/internal/domain"
)

// Operation result labels.
const (
	resultSuccess  = "success"
	resultNotFound = "not_found"
	resultInvalid  = "invalid"
	resultCanceled = "canceled"
	resultError    = "error"
)

const metricNamespace = "quotes"

// QuoteMetrics holds the Prometheus instruments for quote operations.
// A nil *QuoteMetrics records nothing.
type QuoteMetrics struct {
	operations    *prometheus.CounterVec
	created       *prometheus.CounterVec
	storeDuration *prometheus.HistogramVec
}

// NewQuoteMetrics registers the quote instruments with reg.
func NewQuoteMetrics(reg prometheus.Registerer) *QuoteMetrics {
	factory := promauto.With(reg)

	return &QuoteMetrics{
		operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricNamespace,
				Name:      "operations_total",
				Help:      "Total number of quote operations by outcome",
			},
			[]string{"operation", "result"},
		),
		created: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricNamespace,
				Name:      "created_total",
				Help:      "Total number of quotes created",
			},
			[]string{"category"},
		),
		storeDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricNamespace,
				Name:      "store_duration_seconds",
				Help:      "Duration of quote store calls in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"store", "operation"},
		),
	}
}

func (m *QuoteMetrics) observeOperation(operation string, err error) {
	if m == nil {
		return
	}

	m.operations.WithLabelValues(operation, resultLabel(err)).Inc()
}

func (m *QuoteMetrics) observeCreated(category domain.Category) {
	if m == nil {
		return
	}

	m.created.WithLabelValues(string(category)).Inc()
}

func (m *QuoteMetrics) observeStore(store, operation string, start time.Time) {
	if m == nil {
		return
	}

	m.storeDuration.WithLabelValues(store, operation).Observe(time.Since(start).Seconds())
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return resultSuccess
	case domain.IsNotFound(err):
		return resultNotFound
	case domain.IsValidation(err), domain.IsInvalidID(err):
		return resultInvalid
	case errors.Is(err, context.Canceled):
		return resultCanceled
	default:
		return resultError
	}
}
