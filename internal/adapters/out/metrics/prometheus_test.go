package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"printshop/internal/core/domain/model/sequence"
	"printshop/internal/pkg/errs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAllocator struct {
	number sequence.Number
	err    error
}

func (s stubAllocator) Next(context.Context, sequence.DocumentType) (sequence.Number, error) {
	return s.number, s.err
}

func TestObserveTransition_CountsByOutcome(t *testing.T) {
	m := NewPrometheusWorkflowMetrics(prometheus.NewRegistry())

	m.ObserveTransition("submit-budget", nil)
	m.ObserveTransition("submit-budget", nil)
	m.ObserveTransition("submit-budget", errs.NewInvalidTransitionError("budget", "submit", "SUBMITTED", "SUBMITTED"))
	m.ObserveTransition("approve-budget", errs.NewUnauthorizedError("approve-budget", "USER", "requires MODERATOR or higher"))
	m.ObserveTransition("approve-budget", errors.New("connection reset"))

	assert.InDelta(t, 2, testutil.ToFloat64(m.transitions.WithLabelValues("submit-budget", "success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.transitions.WithLabelValues("submit-budget", "invalid_transition")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.transitions.WithLabelValues("approve-budget", "unauthorized")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.transitions.WithLabelValues("approve-budget", "internal")), 0)
	assert.Equal(t, 4, testutil.CollectAndCount(m.transitions))
}

func TestInstrumentedAllocator_PassesThroughAndCounts(t *testing.T) {
	m := NewPrometheusWorkflowMetrics(prometheus.NewRegistry())
	n, err := sequence.DefaultScheme().Number(sequence.OrderDocument, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), 12)
	require.NoError(t, err)

	ok := NewInstrumentedAllocator(stubAllocator{number: n}, m)
	got, err := ok.Next(context.Background(), sequence.OrderDocument)
	require.NoError(t, err)
	assert.Equal(t, n, got)

	failing := NewInstrumentedAllocator(stubAllocator{err: errs.NewAllocationFailedError("PED", errors.New("exhausted"))}, m)
	_, err = failing.Next(context.Background(), sequence.OrderDocument)
	assert.ErrorIs(t, err, errs.ErrAllocationFailed)

	assert.InDelta(t, 1, testutil.ToFloat64(m.allocations.WithLabelValues("PED", "success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.allocations.WithLabelValues("PED", "allocation_failed")), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.allocTime))
}

func TestNewPrometheusWorkflowMetrics_RegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewPrometheusWorkflowMetrics(reg)

	assert.Panics(t, func() { NewPrometheusWorkflowMetrics(reg) })
}
