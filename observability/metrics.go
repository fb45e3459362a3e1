package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/kbukum/vidscribe/errors"
)

// Metrics holds the instruments of the pipeline. The global meter provider
// is a no-op until Setup installs one, so recording is always safe.
type Metrics struct {
	runs          metric.Int64Counter
	runDuration   metric.Float64Histogram
	stageDuration metric.Float64Histogram
	engineCalls   metric.Int64Counter
	engineLatency metric.Float64Histogram
}

// NewMetrics creates the instruments on meter. A nil meter uses the
// global provider.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	if meter == nil {
		meter = otel.Meter(instrumentation)
	}
	var (
		m   Metrics
		err error
	)
	counter := func(name, desc string) metric.Int64Counter {
		if err != nil {
			return nil
		}
		var c metric.Int64Counter
		c, err = meter.Int64Counter(name, metric.WithDescription(desc))
		if err != nil {
			err = fmt.Errorf("observability: %s: %w", name, err)
		}
		return c
	}
	seconds := func(name, desc string) metric.Float64Histogram {
		if err != nil {
			return nil
		}
		var h metric.Float64Histogram
		h, err = meter.Float64Histogram(name, metric.WithDescription(desc), metric.WithUnit("s"))
		if err != nil {
			err = fmt.Errorf("observability: %s: %w", name, err)
		}
		return h
	}

	m.runs = counter("vidscribe.runs", "Pipeline runs by outcome")
	m.runDuration = seconds("vidscribe.run.duration", "Wall time of a pipeline run")
	m.stageDuration = seconds("vidscribe.stage.duration", "Wall time of a pipeline stage")
	m.engineCalls = counter("vidscribe.engine.calls", "Transcription calls by engine and error code")
	m.engineLatency = seconds("vidscribe.engine.duration", "Wall time of a transcription call")
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// RecordRun records a finished run. A failed run is labelled with the
// code of its innermost error.
func (m *Metrics) RecordRun(ctx context.Context, err error, d time.Duration) {
	attrs := metric.WithAttributes(outcome(err))
	m.runs.Add(ctx, 1, attrs)
	m.runDuration.Record(ctx, d.Seconds(), attrs)
}

// RecordStage records the duration of one stage.
func (m *Metrics) RecordStage(ctx context.Context, stage string, err error, d time.Duration) {
	m.stageDuration.Record(ctx, d.Seconds(), metric.WithAttributes(AttrStage.String(stage), outcome(err)))
}

// RecordEngine records one transcription call.
func (m *Metrics) RecordEngine(ctx context.Context, engine string, err error, d time.Duration) {
	attrs := metric.WithAttributes(AttrEngine.String(engine), outcome(err))
	m.engineCalls.Add(ctx, 1, attrs)
	m.engineLatency.Record(ctx, d.Seconds(), attrs)
}

func outcome(err error) attribute.KeyValue {
	if err == nil {
		return attribute.String("outcome", "ok")
	}
	return attribute.String("outcome", errorCode(err))
}

func errorCode(err error) string {
	if code := errors.RootCode(err); code != "" {
		return string(code)
	}
	return string(errors.ErrCodeInternal)
}
