// Package provider holds the plumbing shared by swappable backends such
// as transcription engines.
//
// A Registry keeps providers in the order they were registered, which is
// the order a pipeline runs them in. Middleware decorates Execute:
//
//	engine := provider.Wrap(raw,
//	    provider.WithLogging[In, Out](log),
//	    provider.WithTracing[In, Out](observability.SpanEngine),
//	    provider.WithMetrics[In, Out](metrics),
//	)
package provider
