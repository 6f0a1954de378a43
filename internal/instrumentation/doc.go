// Package instrumentation provides OpenTelemetry metrics and tracing for
// psiagenda.
//
// Metrics cover schedule operations, MCP tool invocations, backup exports,
// and the stored appointment count. The default exporter is Prometheus,
// served by the MCP server's metrics endpoint; OTLP and stdout exporters
// are available for development. Instrumentation can be disabled entirely
// with INSTRUMENTATION_ENABLED=false, in which case every recorder is a
// no-op.
package instrumentation
