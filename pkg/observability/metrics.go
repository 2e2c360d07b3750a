// Package observability exposes Prometheus metrics for mission execution
// through the OpenTelemetry metric API.
package observability

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Metrics records mission-level outcomes. The zero value is a no-op, so
// callers never need to branch on whether metrics are enabled.
type Metrics struct {
	missionDuration metric.Float64Histogram
	missionsTotal   metric.Int64Counter
	missionErrors   metric.Int64Counter
}

// InitMetrics registers the mission instruments with a Prometheus exporter.
// When disabled it returns a no-op Metrics and no handler is served.
func InitMetrics(enabled bool) (*Metrics, error) {
	if !enabled {
		return &Metrics{}, nil
	}

	exporter, err := otelprom.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	meter := meterProvider.Meter("sanhedrin")

	missionDuration, err := meter.Float64Histogram(
		"sanhedrin_mission_duration_seconds",
		metric.WithDescription("Mission execution duration in seconds"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mission duration histogram: %w", err)
	}

	missionsTotal, err := meter.Int64Counter(
		"sanhedrin_missions_total",
		metric.WithDescription("Total missions executed"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create missions counter: %w", err)
	}

	missionErrors, err := meter.Int64Counter(
		"sanhedrin_mission_errors_total",
		metric.WithDescription("Total failed missions"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mission errors counter: %w", err)
	}

	return &Metrics{
		missionDuration: missionDuration,
		missionsTotal:   missionsTotal,
		missionErrors:   missionErrors,
	}, nil
}

// ObserveMission records one completed mission run. Implements the runner's
// Observer interface.
func (m *Metrics) ObserveMission(missionType, status string, duration time.Duration) {
	if m == nil || m.missionsTotal == nil {
		return
	}

	ctx := context.Background()
	attrs := metric.WithAttributes(
		attribute.String("mission_type", missionType),
		attribute.String("status", status),
	)

	m.missionDuration.Record(ctx, duration.Seconds(), attrs)
	m.missionsTotal.Add(ctx, 1, attrs)

	if status != "success" {
		m.missionErrors.Add(ctx, 1, metric.WithAttributes(
			attribute.String("mission_type", missionType),
		))
	}
}

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
