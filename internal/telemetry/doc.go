// Package telemetry provides OpenTelemetry initialization and helpers
// for the mise recipe form service.
//
// The package configures OTLP HTTP export for traces, logs and metrics.
// Telemetry stays disabled unless OTEL_EXPORTER_OTLP_ENDPOINT is set.
package telemetry
