package provider

import "context"

// Provider is a named backend that can report whether it is usable,
// e.g. a transcription engine whose binary or credential may be missing.
type Provider interface {
	Name() string
	IsAvailable(ctx context.Context) bool
}

// RequestResponse is a Provider that serves one call at a time.
type RequestResponse[I, O any] interface {
	Provider
	Execute(ctx context.Context, input I) (O, error)
}
