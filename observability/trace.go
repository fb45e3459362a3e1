package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentation = "github.com/kbukum/vidscribe"

// Span names.
const (
	SpanRun = "vidscribe.run"
)

// SpanStage names the span of one pipeline stage.
func SpanStage(stage string) string { return "vidscribe.stage." + stage }

// SpanEngine names the span of one transcription engine call.
func SpanEngine(engine string) string { return "vidscribe.transcriber." + engine }

// Attribute keys.
const (
	AttrRunID       = attribute.Key("vidscribe.run_id")
	AttrStage       = attribute.Key("vidscribe.stage")
	AttrEngine      = attribute.Key("vidscribe.engine")
	AttrVideoPath   = attribute.Key("vidscribe.video_path")
	AttrAudioFormat = attribute.Key("vidscribe.audio_format")
	AttrModel       = attribute.Key("vidscribe.model")
	AttrErrorCode   = attribute.Key("vidscribe.error_code")
)

// StartSpan starts a span on the global tracer provider.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(instrumentation).Start(ctx, name, trace.WithAttributes(attrs...))
}

// EndSpan marks span failed when err is set and ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(AttrErrorCode.String(errorCode(err)))
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
