// Package otelhook traces capability dispatch with OpenTelemetry.
//
// Usage:
//
//	cfg := server.Config{
//		Hooks: []server.Hook{otelhook.New(otelhook.DefaultConfig())},
//	}
package otelhook

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/wetware/ocap"
	"github.com/wetware/ocap/server"
)

const instrumentationName = "github.com/wetware/ocap"

// Config for the tracing hook.
type Config struct {
	// TracerProvider supplies the tracer. Defaults to otel.GetTracerProvider().
	TracerProvider trace.TracerProvider
	// MeterProvider supplies the meter. Defaults to otel.GetMeterProvider().
	MeterProvider metric.MeterProvider
	// EnableMetrics enables counter and histogram recording.
	EnableMetrics bool
	// RecordExceptions calls RecordError on the span for failed calls.
	RecordExceptions bool
	// CustomAttributes are added to every span.
	CustomAttributes []attribute.KeyValue
}

// DefaultConfig enables metrics and exception recording, using the
// global providers.
func DefaultConfig() Config {
	return Config{
		EnableMetrics:    true,
		RecordExceptions: true,
	}
}

// New returns a dispatch hook that starts one server span per call.
func New(cfg Config) server.Hook {
	if cfg.TracerProvider == nil {
		cfg.TracerProvider = otel.GetTracerProvider()
	}
	if cfg.MeterProvider == nil {
		cfg.MeterProvider = otel.GetMeterProvider()
	}

	h := &hook{
		cfg:    cfg,
		tracer: cfg.TracerProvider.Tracer(instrumentationName),
	}

	if cfg.EnableMetrics {
		meter := cfg.MeterProvider.Meter(instrumentationName)
		h.calls, _ = meter.Int64Counter("ocap.server.calls",
			metric.WithUnit("{call}"),
			metric.WithDescription("Number of dispatched calls"))
		h.duration, _ = meter.Float64Histogram("ocap.server.duration",
			metric.WithUnit("s"),
			metric.WithDescription("Duration of dispatched calls"))
	}

	return h
}

type hook struct {
	cfg      Config
	tracer   trace.Tracer
	calls    metric.Int64Counter
	duration metric.Float64Histogram
}

type spanToken struct {
	span  trace.Span
	start time.Time
}

// SpanName for a dispatched method.
func SpanName(m ocap.Method) string {
	return fmt.Sprintf("ocap/%s", m)
}

func (h *hook) OnDispatchStart(ctx context.Context, info server.DispatchInfo) (context.Context, server.HookToken) {
	attrs := append([]attribute.KeyValue{
		attribute.String("rpc.system", "ocap"),
		attribute.String("rpc.service", info.Method.InterfaceName),
		attribute.String("rpc.method", info.Method.MethodName),
		attribute.String("rpc.ocap.interface_id", fmt.Sprintf("%#x", info.Method.InterfaceID)),
		attribute.Int("rpc.ocap.method_id", int(info.Method.MethodID)),
		attribute.String("rpc.ocap.server_id", info.ServerID),
	}, h.cfg.CustomAttributes...)

	ctx, span := h.tracer.Start(ctx, SpanName(info.Method),
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(attrs...))

	return ctx, &spanToken{span: span, start: time.Now()}
}

func (h *hook) OnDispatchEnd(ctx context.Context, token server.HookToken, info server.DispatchInfo, err error) {
	st, ok := token.(*spanToken)
	if !ok {
		return
	}

	status := ocap.KindOf(err).String()

	if h.cfg.EnableMetrics {
		attrs := metric.WithAttributes(
			attribute.String("rpc.service", info.Method.InterfaceName),
			attribute.String("rpc.method", info.Method.MethodName),
			attribute.String("status", status))
		if h.calls != nil {
			h.calls.Add(ctx, 1, attrs)
		}
		if h.duration != nil {
			h.duration.Record(ctx, time.Since(st.start).Seconds(), attrs)
		}
	}

	if err != nil {
		st.span.SetStatus(codes.Error, err.Error())
		if h.cfg.RecordExceptions {
			st.span.RecordError(err)
		}
		st.span.SetAttributes(attribute.String("rpc.ocap.error_kind", status))
	} else {
		st.span.SetStatus(codes.Ok, "")
	}

	st.span.End()
}
