package telemetry

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// endpoint is one OTLP destination; grpc wins when both transports are
// configured.
type endpoint struct {
	GrpcEndpoint string            `json:"grpc_endpoint"`
	HttpEndpoint string            `json:"http_endpoint"`
	Headers      map[string]string `json:"headers"`
}

func (e endpoint) transport() (kind, url string) {
	if e.GrpcEndpoint != "" {
		return "grpc", e.GrpcEndpoint
	}
	return "http", e.HttpEndpoint
}

func (e endpoint) log(signal string) {
	kind, url := e.transport()
	slog.Info(
		"otlp exporter initialized",
		"signal", signal,
		"transport", kind,
		"endpoint", url,
		"headers", len(e.Headers) > 0,
	)
}

type config struct {
	Otlp struct {
		Traces  endpoint `json:"traces"`
		Metrics endpoint `json:"metrics"`
	} `json:"otlp"`
}

const exporterDialTimeout = time.Second * 3

func newResource(serviceName string) (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		),
	)
}

func newTraceProvider(ctx context.Context, r *resource.Resource, c config) (*trace.TracerProvider, error) {
	ctx, cancel := context.WithTimeout(ctx, exporterDialTimeout)
	defer cancel()

	e := c.Otlp.Traces
	e.log("traces")

	var exporter trace.SpanExporter
	var err error
	if e.GrpcEndpoint != "" {
		exporter, err = otlptracegrpc.New(
			ctx,
			otlptracegrpc.WithEndpointURL(e.GrpcEndpoint),
			otlptracegrpc.WithHeaders(e.Headers),
		)
	} else {
		exporter, err = otlptracehttp.New(
			ctx,
			otlptracehttp.WithEndpointURL(e.HttpEndpoint),
			otlptracehttp.WithHeaders(e.Headers),
		)
	}
	if err != nil {
		return nil, err
	}

	// the jobs finish in seconds, a lazy batcher would still be holding
	// the tail of the run at shutdown
	return trace.NewTracerProvider(
		trace.WithBatcher(exporter, trace.WithBatchTimeout(time.Second)),
		trace.WithResource(r),
	), nil
}

func newMetricProvider(ctx context.Context, r *resource.Resource, c config) (*metric.MeterProvider, error) {
	ctx, cancel := context.WithTimeout(ctx, exporterDialTimeout)
	defer cancel()

	e := c.Otlp.Metrics
	e.log("metrics")

	var exporter metric.Exporter
	var err error
	if e.GrpcEndpoint != "" {
		exporter, err = otlpmetricgrpc.New(
			ctx,
			otlpmetricgrpc.WithEndpointURL(e.GrpcEndpoint),
			otlpmetricgrpc.WithHeaders(e.Headers),
		)
	} else {
		exporter, err = otlpmetrichttp.New(
			ctx,
			otlpmetrichttp.WithEndpointURL(e.HttpEndpoint),
			otlpmetrichttp.WithHeaders(e.Headers),
		)
	}
	if err != nil {
		return nil, err
	}

	// matches the perf stats ticker so every gauge sample gets shipped
	return metric.NewMeterProvider(
		metric.WithReader(metric.NewPeriodicReader(exporter, metric.WithInterval(time.Second*5))),
		metric.WithResource(r),
	), nil
}
