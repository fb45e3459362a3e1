// Package observability traces and measures vidscribe runs with
// OpenTelemetry.
//
// Export is opt-in. With Config.Enabled false Setup leaves the global
// no-op providers in place and spans and instruments cost nothing:
//
//	shutdown, err := observability.Setup(ctx, cfg.Observability)
//	defer shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanStage("extract"))
//	err := extract(ctx)
//	observability.EndSpan(span, err)
//
// Failed spans and metric points carry the code of the innermost
// application error, e.g. EXTRACTION_FAILED.
package observability
