// Package metrics exports workflow outcomes to Prometheus.
package metrics

import (
	"context"
	"time"

	"printshop/internal/core/domain/model/sequence"
	"printshop/internal/core/ports"
	"printshop/internal/pkg/errs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const outcomeSuccess = "success"

// PrometheusWorkflowMetrics counts workflow operations by action and outcome.
// The outcome is "success" or the error kind, e.g. "invalid_transition".
type PrometheusWorkflowMetrics struct {
	transitions *prometheus.CounterVec
	allocations *prometheus.CounterVec
	allocTime   *prometheus.HistogramVec
}

var _ ports.WorkflowMetrics = (*PrometheusWorkflowMetrics)(nil)

func NewPrometheusWorkflowMetrics(reg prometheus.Registerer) *PrometheusWorkflowMetrics {
	factory := promauto.With(reg)
	return &PrometheusWorkflowMetrics{
		transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "printshop",
			Name:      "workflow_operations_total",
			Help:      "Workflow operations by action and outcome.",
		}, []string{"action", "outcome"}),
		allocations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "printshop",
			Name:      "sequence_allocations_total",
			Help:      "Document number allocations by document type and outcome.",
		}, []string{"document_type", "outcome"}),
		allocTime: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "printshop",
			Name:      "sequence_allocation_duration_seconds",
			Help:      "Time spent allocating a document number.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"document_type"}),
	}
}

func (m *PrometheusWorkflowMetrics) ObserveTransition(action string, err error) {
	m.transitions.WithLabelValues(action, outcome(err)).Inc()
}

func (m *PrometheusWorkflowMetrics) observeAllocation(docType sequence.DocumentType, took time.Duration, err error) {
	m.allocations.WithLabelValues(docType.String(), outcome(err)).Inc()
	m.allocTime.WithLabelValues(docType.String()).Observe(took.Seconds())
}

func outcome(err error) string {
	if err == nil {
		return outcomeSuccess
	}
	return errs.KindOf(err).String()
}

// InstrumentedAllocator records every allocation made through next.
type InstrumentedAllocator struct {
	next    ports.SequenceAllocator
	metrics *PrometheusWorkflowMetrics
}

var _ ports.SequenceAllocator = (*InstrumentedAllocator)(nil)

func NewInstrumentedAllocator(next ports.SequenceAllocator, metrics *PrometheusWorkflowMetrics) *InstrumentedAllocator {
	return &InstrumentedAllocator{next: next, metrics: metrics}
}

func (a *InstrumentedAllocator) Next(ctx context.Context, docType sequence.DocumentType) (sequence.Number, error) {
	start := time.Now()
	n, err := a.next.Next(ctx, docType)
	a.metrics.observeAllocation(docType, time.Since(start), err)
	return n, err
}
