// Package observability provides OpenTelemetry tracing and Prometheus
// metrics for the gallery.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, cfg.Tracer("gallery", version))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanResolve)
//	defer span.End()
//
// Metrics:
//
//	m := observability.NewMetrics(prometheus.NewRegistry())
//	m.ObserveResolution(observability.OutcomeSigned)
package observability
