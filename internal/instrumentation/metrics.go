package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys.
const (
	attrOperation = "operation"
	attrStatus    = "status"
	attrTool      = "tool"
	attrFormat    = "format"
)

// Metrics provides methods for recording observability metrics. The zero
// value is a safe no-op recorder.
type Metrics struct {
	// Schedule operation metrics
	scheduleOperationsTotal   metric.Int64Counter
	scheduleOperationDuration metric.Float64Histogram
	appointmentsStored        metric.Int64Gauge

	// MCP tool metrics
	toolInvocationsTotal metric.Int64Counter
	toolDuration         metric.Float64Histogram

	// Backup metrics
	backupExportsTotal metric.Int64Counter
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.scheduleOperationsTotal, err = meter.Int64Counter(
		"schedule_operations_total",
		metric.WithDescription("Total number of schedule operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create schedule_operations_total counter: %w", err)
	}

	m.scheduleOperationDuration, err = meter.Float64Histogram(
		"schedule_operation_duration_seconds",
		metric.WithDescription("Schedule operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create schedule_operation_duration_seconds histogram: %w", err)
	}

	m.appointmentsStored, err = meter.Int64Gauge(
		"appointments_stored",
		metric.WithDescription("Number of appointments in the store after the last write"),
		metric.WithUnit("{appointment}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create appointments_stored gauge: %w", err)
	}

	m.toolInvocationsTotal, err = meter.Int64Counter(
		"tool_invocations_total",
		metric.WithDescription("Total number of MCP tool invocations"),
		metric.WithUnit("{invocation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tool_invocations_total counter: %w", err)
	}

	m.toolDuration, err = meter.Float64Histogram(
		"tool_duration_seconds",
		metric.WithDescription("MCP tool invocation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tool_duration_seconds histogram: %w", err)
	}

	m.backupExportsTotal, err = meter.Int64Counter(
		"backup_exports_total",
		metric.WithDescription("Total number of backup exports by format"),
		metric.WithUnit("{export}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create backup_exports_total counter: %w", err)
	}

	return m, nil
}

// RecordScheduleOperation records a schedule operation with its duration.
func (m *Metrics) RecordScheduleOperation(ctx context.Context, operation, status string, duration time.Duration) {
	if m == nil || m.scheduleOperationsTotal == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	)
	m.scheduleOperationsTotal.Add(ctx, 1, attrs)
	m.scheduleOperationDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordAppointmentCount records the collection size after a write.
func (m *Metrics) RecordAppointmentCount(ctx context.Context, count int) {
	if m == nil || m.appointmentsStored == nil {
		return
	}
	m.appointmentsStored.Record(ctx, int64(count))
}

// RecordToolInvocation records an MCP tool invocation with its duration.
func (m *Metrics) RecordToolInvocation(ctx context.Context, tool, status string, duration time.Duration) {
	if m == nil || m.toolInvocationsTotal == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String(attrTool, tool),
		attribute.String(attrStatus, status),
	)
	m.toolInvocationsTotal.Add(ctx, 1, attrs)
	m.toolDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordBackupExport records a backup export in the given format
// ("json", "csv", or "ics").
func (m *Metrics) RecordBackupExport(ctx context.Context, format, status string) {
	if m == nil || m.backupExportsTotal == nil {
		return
	}
	m.backupExportsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrFormat, format),
		attribute.String(attrStatus, status),
	))
}
