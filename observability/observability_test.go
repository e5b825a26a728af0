package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Endpoint != "localhost:4318" || cfg.SampleRate != 1.0 || cfg.MetricsPath != "/metrics" {
		t.Errorf("defaults = %+v", cfg)
	}
	tc := cfg.Tracer("gallery", "1.2.3", "test")
	if tc.ServiceName != "gallery" || tc.ServiceVersion != "1.2.3" || tc.Endpoint != cfg.Endpoint {
		t.Errorf("tracer config = %+v", tc)
	}
}

func TestStartAndEndSpan(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	_, span := StartSpan(context.Background(), SpanResolve)
	EndSpan(span, errors.New("sign failed"))

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name != SpanResolve {
		t.Errorf("span name = %q", spans[0].Name)
	}
	if len(spans[0].Events) == 0 {
		t.Error("expected recorded error event")
	}
}

func TestSamplerFor(t *testing.T) {
	if samplerFor(1).Description() != sdktrace.AlwaysSample().Description() {
		t.Error("rate 1 should always sample")
	}
	if samplerFor(0).Description() != sdktrace.NeverSample().Description() {
		t.Error("rate 0 should never sample")
	}
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.ObserveResolution(OutcomeSigned)
	m.ObserveResolution(OutcomeSigned)
	m.ObserveResolution(OutcomeMissing)
	m.ObserveProbe(true, nil)
	m.ObserveProbe(false, errors.New("x"))
	m.ObservePageFetch(nil)
	m.ObserveListingRequest("/api/illustrations", 401)
	m.ObserveRequest("GET", "/", 200, 20*time.Millisecond)

	if got := testutil.ToFloat64(m.resolutions.WithLabelValues(OutcomeSigned)); got != 2 {
		t.Errorf("signed resolutions = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.probes.WithLabelValues("error")); got != 1 {
		t.Errorf("probe errors = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.listingRequests.WithLabelValues("/api/illustrations", "401")); got != 1 {
		t.Errorf("listing 401s = %v, want 1", got)
	}
	if n := testutil.CollectAndCount(m.requestDuration); n != 1 {
		t.Errorf("histogram series = %d, want 1", n)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveResolution(OutcomeCacheHit)
	m.ObserveProbe(true, nil)
	m.ObservePageFetch(nil)
	m.ObserveListingRequest("/", 200)
	m.ObserveRequest("GET", "/", 200, time.Millisecond)
}
