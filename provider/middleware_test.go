package provider_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/vidscribe/errors"
	"github.com/kbukum/vidscribe/logger"
	"github.com/kbukum/vidscribe/observability"
	"github.com/kbukum/vidscribe/provider"
)

type echoProvider struct {
	name string
	err  error
}

func (p *echoProvider) Name() string                     { return p.name }
func (p *echoProvider) IsAvailable(context.Context) bool { return true }
func (p *echoProvider) Execute(_ context.Context, in string) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	return "echo:" + in, nil
}

// tag records entry and exit so tests can check nesting.
func tag(name string, order *[]string) provider.Middleware[string, string] {
	return func(inner provider.RequestResponse[string, string]) provider.RequestResponse[string, string] {
		return &recorder{RequestResponse: inner, name: name, order: order}
	}
}

type recorder struct {
	provider.RequestResponse[string, string]
	name  string
	order *[]string
}

func (r *recorder) Execute(ctx context.Context, in string) (string, error) {
	*r.order = append(*r.order, r.name+">")
	out, err := r.RequestResponse.Execute(ctx, in)
	*r.order = append(*r.order, "<"+r.name)
	return out, err
}

func TestWrap(t *testing.T) {
	var order []string
	p := provider.Wrap[string, string](&echoProvider{name: "whisper"}, tag("A", &order), tag("B", &order), tag("C", &order))

	out, err := p.Execute(context.Background(), "x")
	if err != nil || out != "echo:x" {
		t.Fatalf("unexpected result %q %v", out, err)
	}
	if got := strings.Join(order, " "); got != "A> B> C> <C <B <A" {
		t.Errorf("unexpected nesting %q", got)
	}
	if p.Name() != "whisper" || !p.IsAvailable(context.Background()) {
		t.Error("expected Name and IsAvailable to pass through")
	}

	bare := provider.Wrap[string, string](&echoProvider{name: "bare"})
	if out, _ := bare.Execute(context.Background(), "y"); out != "echo:y" {
		t.Errorf("expected no-op wrap, got %q", out)
	}
}

func TestWithLogging(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: "debug", Format: "json"}, &buf)
	ctx := logger.ContextWithRunID(context.Background(), "run-7")

	ok := provider.WithLogging[string, string](log)(&echoProvider{name: "whisper"})
	if out, err := ok.Execute(ctx, "hello"); err != nil || out != "echo:hello" {
		t.Fatalf("unexpected result %q %v", out, err)
	}
	failing := provider.WithLogging[string, string](log)(&echoProvider{name: "deepgram", err: errors.Unauthorized("bad key")})
	if _, err := failing.Execute(ctx, "hello"); err == nil {
		t.Fatal("expected error to pass through")
	}

	out := buf.String()
	for _, want := range []string{
		`"message":"engine call finished"`,
		`"message":"engine call failed"`,
		`"run_id":"run-7"`,
		`"engine":"deepgram"`,
		`"code":"UNAUTHORIZED"`,
		`"retryable":false`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in log output %q", want, out)
		}
	}
}

func TestWithTracing(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(prev)

	p := provider.WithTracing[string, string](observability.SpanEngine)(&echoProvider{name: "whisper", err: errors.TranscriptionFailed("base", nil)})
	_, _ = p.Execute(context.Background(), "x")

	spans := exporter.GetSpans()
	if len(spans) != 1 || spans[0].Name != "vidscribe.transcriber.whisper" {
		t.Fatalf("unexpected spans %v", spans)
	}
	var code string
	for _, kv := range spans[0].Attributes {
		if kv.Key == observability.AttrErrorCode {
			code = kv.Value.AsString()
		}
	}
	if code != string(errors.ErrCodeTranscriptionFailed) {
		t.Errorf("expected error code attribute, got %q", code)
	}
}

func TestWithMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = mp.Shutdown(context.Background()) }()
	metrics, err := observability.NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatal(err)
	}

	p := provider.WithMetrics[string, string](metrics)(&echoProvider{name: "whisper"})
	for range 3 {
		_, _ = p.Execute(context.Background(), "x")
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatal(err)
	}
	var calls int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok && m.Name == "vidscribe.engine.calls" {
				for _, dp := range sum.DataPoints {
					calls += dp.Value
				}
			}
		}
	}
	if calls != 3 {
		t.Errorf("expected 3 engine calls recorded, got %d", calls)
	}
}
