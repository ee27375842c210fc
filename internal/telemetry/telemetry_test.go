package telemetry

import (
	"context"
	"testing"
)

func TestInitTelemetry(t *testing.T) {
	// Test with empty endpoint (should not fail, just no telemetry)
	shutdown, err := InitTelemetry(context.Background(), "test-service", "v1.0.0", "test", "", nil)
	if err != nil {
		t.Fatalf("InitTelemetry failed: %v", err)
	}
	if shutdown == nil {
		t.Fatal("expected a shutdown func")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("no-op shutdown returned %v", err)
	}
}

func TestParseEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		host       string
		insecure   bool
		tracePath  string
		metricPath string
	}{
		{
			name:       "bare host",
			raw:        "collector:4318",
			host:       "collector:4318",
			tracePath:  "/v1/traces",
			metricPath: "/v1/metrics",
		},
		{
			name:       "http scheme is insecure",
			raw:        "http://localhost:4318",
			host:       "localhost:4318",
			insecure:   true,
			tracePath:  "/v1/traces",
			metricPath: "/v1/metrics",
		},
		{
			name:       "https with base path",
			raw:        "https://otlp.example.com/otlp",
			host:       "otlp.example.com",
			tracePath:  "/otlp/v1/traces",
			metricPath: "/otlp/v1/metrics",
		},
		{
			name:       "signal path is stripped",
			raw:        "https://otlp.example.com/api/v1/traces",
			host:       "otlp.example.com",
			tracePath:  "/api/v1/traces",
			metricPath: "/api/v1/metrics",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ep := parseEndpoint(tt.raw)
			if ep.host != tt.host {
				t.Errorf("host = %q, want %q", ep.host, tt.host)
			}
			if ep.insecure != tt.insecure {
				t.Errorf("insecure = %v, want %v", ep.insecure, tt.insecure)
			}
			if ep.tracePath != tt.tracePath {
				t.Errorf("tracePath = %q, want %q", ep.tracePath, tt.tracePath)
			}
			if ep.metricPath != tt.metricPath {
				t.Errorf("metricPath = %q, want %q", ep.metricPath, tt.metricPath)
			}
		})
	}
}

func TestTracer(t *testing.T) {
	tracer := Tracer("test-tracer")
	if tracer == nil {
		t.Fatal("Tracer returned nil")
	}
}
