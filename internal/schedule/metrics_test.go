package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"psiagenda/internal/instrumentation"
)

// collectMetricNames runs one collection cycle and returns the names of all
// recorded metrics.
func collectMetricNames(t *testing.T, reader *sdkmetric.ManualReader) map[string]bool {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	names := make(map[string]bool)
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			names[m.Name] = true
		}
	}
	return names
}

func TestServiceRecordsOperationMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	metrics, err := instrumentation.NewMetrics(provider.Meter("test"))
	require.NoError(t, err)

	svc, _ := newTestService(t)
	svc.SetMetrics(metrics)
	ctx := context.Background()

	created, err := svc.Create(ctx, Appointment{
		PatientName: "Ana",
		Date:        "2024-03-18",
		StartTime:   "10:00",
	}, "")
	require.NoError(t, err)
	require.NoError(t, svc.DeleteSingle(ctx, created[0].ID))

	names := collectMetricNames(t, reader)
	assert.True(t, names["schedule_operations_total"], "operation counter not recorded")
	assert.True(t, names["schedule_operation_duration_seconds"], "operation histogram not recorded")
	assert.True(t, names["appointments_stored"], "collection size gauge not recorded")
}

func TestServiceWithoutMetricsRecorder(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// No recorder attached; operations must still work.
	created, err := svc.Create(ctx, Appointment{
		PatientName: "Ana",
		Date:        "2024-03-18",
		StartTime:   "10:00",
	}, "")
	require.NoError(t, err)
	assert.Len(t, created, 1)
}
