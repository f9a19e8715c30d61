package otelhook_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/wetware/ocap"
	api "github.com/wetware/ocap/api/demo"
	"github.com/wetware/ocap/internal/demo"
	"github.com/wetware/ocap/server"
	"github.com/wetware/ocap/util/otelhook"
)

func setup(t *testing.T) (*tracetest.SpanRecorder, *sdkmetric.ManualReader, server.Config) {
	t.Helper()

	spans := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	cfg := otelhook.DefaultConfig()
	cfg.TracerProvider = tp
	cfg.MeterProvider = mp
	cfg.CustomAttributes = []attribute.KeyValue{attribute.String("test", t.Name())}

	return spans, reader, server.Config{
		Hooks: []server.Hook{otelhook.New(cfg)},
	}
}

func TestHook(t *testing.T) {
	t.Parallel()

	spans, reader, cfg := setup(t)

	c := api.TestInterface_NewClient(new(demo.TestInterface), cfg)
	defer c.Release()

	f, release := c.Foo(context.Background(), func(ps api.TestInterface_foo_Params_Builder) error {
		ps.SetI(123)
		ps.SetJ(true)
		return nil
	})
	defer release()

	_, err := f.Struct()
	require.NoError(t, err)

	ended := spans.Ended()
	require.Len(t, ended, 1, "should record one span per call")

	span := ended[0]
	assert.Equal(t, "ocap/demo.capnp:TestInterface.foo", span.Name())
	assert.Equal(t, otelhook.SpanName(api.TestInterface_foo_Method), span.Name())
	assert.Equal(t, trace.SpanKindServer, span.SpanKind())
	assert.Equal(t, codes.Ok, span.Status().Code)
	assert.Contains(t, span.Attributes(), attribute.String("rpc.method", "foo"))
	assert.Contains(t, span.Attributes(), attribute.String("test", t.Name()))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.NotEmpty(t, rm.ScopeMetrics, "should record metrics")

	names := map[string]bool{}
	for _, m := range rm.ScopeMetrics[0].Metrics {
		names[m.Name] = true
	}
	assert.True(t, names["ocap.server.calls"], "should count calls")
	assert.True(t, names["ocap.server.duration"], "should time calls")
}

func TestHook_error(t *testing.T) {
	t.Parallel()

	spans, _, cfg := setup(t)

	c := api.TestInterface_NewClient(new(demo.TestInterface), cfg)
	defer c.Release()

	f, release := c.Bar(context.Background())
	defer release()
	require.Error(t, f.Await(context.Background()))

	ended := spans.Ended()
	require.Len(t, ended, 1)

	span := ended[0]
	assert.Equal(t, codes.Error, span.Status().Code)
	assert.Contains(t, span.Attributes(),
		attribute.String("rpc.ocap.error_kind", ocap.Unimplemented.String()))
	assert.NotEmpty(t, span.Events(), "should record exception")
}
