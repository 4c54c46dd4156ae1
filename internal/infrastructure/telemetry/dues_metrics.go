package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// MeterName is the instrumentation scope of the dues instruments
const MeterName = "dues-engine"

// Attribute keys on dues instruments
var (
	AttrOrigin  = attribute.Key("origin")
	AttrSource  = attribute.Key("source")
	AttrStatus  = attribute.Key("status")
	AttrOutcome = attribute.Key("outcome")
)

// Transition outcomes
const (
	OutcomeApplied     = "applied"
	OutcomeNotFound    = "not_found"
	OutcomeUnsupported = "unsupported"
	OutcomeFailed      = "failed"
)

// aggregationBuckets cover four origin reads fanned out in parallel (seconds)
var aggregationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// DuesMetrics holds the instruments recorded by the aggregator and the status dispatcher.
type DuesMetrics struct {
	originUnavailable   metric.Int64Counter
	aggregationDuration metric.Float64Histogram
	transitions         metric.Int64Counter
}

// NewDuesMetrics registers the dues instruments on meter.
// A nil meter yields instruments that record nothing.
func NewDuesMetrics(meter metric.Meter) (*DuesMetrics, error) {
	if meter == nil {
		meter = noop.NewMeterProvider().Meter(MeterName)
	}

	var (
		m   DuesMetrics
		err error
	)
	m.originUnavailable, err = meter.Int64Counter("dues_origin_unavailable_total",
		metric.WithDescription("Origin reads that failed and contributed no dues"),
		metric.WithUnit("{read}"))
	if err != nil {
		return nil, fmt.Errorf("origin unavailable counter: %w", err)
	}

	m.aggregationDuration, err = meter.Float64Histogram("dues_aggregation_duration_seconds",
		metric.WithDescription("Time to read all origins and build the merged dues list"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(aggregationBuckets...))
	if err != nil {
		return nil, fmt.Errorf("aggregation duration histogram: %w", err)
	}

	m.transitions, err = meter.Int64Counter("dues_status_transitions_total",
		metric.WithDescription("Status change requests by source, target status and outcome"),
		metric.WithUnit("{request}"))
	if err != nil {
		return nil, fmt.Errorf("status transitions counter: %w", err)
	}
	return &m, nil
}

// NopDuesMetrics returns instruments backed by the no-op meter
func NopDuesMetrics() *DuesMetrics {
	m, _ := NewDuesMetrics(nil)
	return m
}

// RecordOriginUnavailable counts a failed origin read
func (m *DuesMetrics) RecordOriginUnavailable(ctx context.Context, origin string) {
	m.originUnavailable.Add(ctx, 1, metric.WithAttributes(AttrOrigin.String(origin)))
}

// RecordAggregation records how long one aggregation took
func (m *DuesMetrics) RecordAggregation(ctx context.Context, d time.Duration) {
	m.aggregationDuration.Record(ctx, d.Seconds())
}

// RecordTransition counts one status change request
func (m *DuesMetrics) RecordTransition(ctx context.Context, source, status, outcome string) {
	m.transitions.Add(ctx, 1, metric.WithAttributes(
		AttrSource.String(source),
		AttrStatus.String(status),
		AttrOutcome.String(outcome),
	))
}
