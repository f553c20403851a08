package config

import (
	"fmt"
	"strings"
	"time"
)

// TelemetryConfig controls span export and the metrics endpoint. Spans are always created;
// they only leave the process when Enabled is set.
type TelemetryConfig struct {
	Enabled bool          `koanf:"enabled"`
	Traces  TracesConfig  `koanf:"traces"`
	Metrics MetricsConfig `koanf:"metrics"`
}

// MetricsConfig exposes OpenTelemetry instruments in Prometheus format on /metrics.
type MetricsConfig struct {
	Enabled bool `koanf:"enabled"`
}

type TracesConfig struct {
	OtlpHttp OtlpHttpConfig `koanf:"otlphttp"`
}

type OtlpHttpConfig struct {
	Endpoint string        `koanf:"endpoint"`
	Insecure bool          `koanf:"insecure"`
	Timeout  time.Duration `koanf:"timeout"`
}

const defaultExportTimeout = 10 * time.Second

func (c *TelemetryConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Telemetry ---\n")
	b.WriteString(fmt.Sprintf("  enabled: %t\n", c.Enabled))
	b.WriteString(fmt.Sprintf("  traces.otlphttp.endpoint: %s\n", c.Traces.OtlpHttp.Endpoint))
	b.WriteString(fmt.Sprintf("  traces.otlphttp.insecure: %t\n", c.Traces.OtlpHttp.Insecure))
	b.WriteString(fmt.Sprintf("  traces.otlphttp.timeout: %v\n", c.Traces.OtlpHttp.Timeout))
	b.WriteString(fmt.Sprintf("  metrics.enabled: %t\n", c.Metrics.Enabled))
	return b.String()
}

func (c *TelemetryConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	exporter := &c.Traces.OtlpHttp
	if exporter.Endpoint == "" {
		return fmt.Errorf("OTel endpoint is not configured")
	}
	if strings.Contains(exporter.Endpoint, "://") {
		return fmt.Errorf("OTel endpoint must be host:port without a scheme: %s", exporter.Endpoint)
	}
	if exporter.Timeout <= 0 {
		exporter.Timeout = defaultExportTimeout
	}
	return nil
}
