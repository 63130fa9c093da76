package observability

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

type Observability struct {
	meterProvider *metric.MeterProvider
	meter         otelmetric.Meter
	quoteCounter  otelmetric.Int64Counter
	quoteDuration otelmetric.Float64Histogram
}

func New(serviceName string) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	res := resource.NewSchemaless(attribute.String("service.name", serviceName))
	provider := metric.NewMeterProvider(metric.WithReader(exporter), metric.WithResource(res))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	quoteCounter, _ := meter.Int64Counter(
		"quotes.processed",
		otelmetric.WithDescription("Number of quote requests processed"),
	)

	quoteDuration, _ := meter.Float64Histogram(
		"quotes.duration",
		otelmetric.WithDescription("Quote processing duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider: provider,
		meter:         meter,
		quoteCounter:  quoteCounter,
		quoteDuration: quoteDuration,
	}
}

func (o *Observability) RecordQuoteProcessed(ctx context.Context, source string) {
	if o.quoteCounter != nil {
		o.quoteCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("source", source),
		))
	}
}

func (o *Observability) RecordQuoteDuration(ctx context.Context, duration time.Duration, source string) {
	if o.quoteDuration != nil {
		o.quoteDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("source", source),
		))
	}
}

func (o *Observability) Shutdown() {
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		o.meterProvider.Shutdown(ctx)
	}
}
