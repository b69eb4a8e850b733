package tracing

import (
	"context"
	"time"

	"github.com/ebanking/bff-gateway/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const ServiceName = "bff-gateway"

// Settings selects where spans go.
type Settings struct {
	ServiceName    string
	ServiceVersion string
	// OTLPEndpoint is host:port of an OTLP/HTTP collector, e.g. "localhost:4318".
	OTLPEndpoint string
	Enabled      bool
	// SampleRatio is the fraction of new traces recorded. Parent decisions
	// are always honoured.
	SampleRatio float64
}

func SettingsFromConfig(cfg *config.Config, version string) Settings {
	ratio := 1.0
	if cfg.AppEnv == "prod" {
		ratio = 0.1
	}
	return Settings{
		ServiceName:    ServiceName,
		ServiceVersion: version,
		OTLPEndpoint:   cfg.OTelEndpoint,
		Enabled:        cfg.OTelEnabled,
		SampleRatio:    ratio,
	}
}

// Provider owns the SDK tracer provider when exporting is enabled.
type Provider struct {
	sdk *sdktrace.TracerProvider
}

// Init installs the W3C propagator unconditionally, so inbound trace context
// is forwarded to collaborators even when nothing is exported. The exporter
// and SDK provider are only created when enabled with an endpoint.
func Init(ctx context.Context, s Settings) (*Provider, error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if !s.Enabled || s.OTLPEndpoint == "" {
		return &Provider{}, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(s.OTLPEndpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(s.ServiceName),
			semconv.ServiceVersion(s.ServiceVersion),
		),
	)
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(s.SampleRatio))),
	)
	otel.SetTracerProvider(provider)

	return &Provider{sdk: provider}, nil
}

func (p *Provider) Enabled() bool {
	return p != nil && p.sdk != nil
}

// Shutdown flushes pending spans.
func (p *Provider) Shutdown(ctx context.Context) error {
	if !p.Enabled() {
		return nil
	}
	return p.sdk.Shutdown(ctx)
}
