package provider

import (
	"context"
	"time"

	"github.com/kbukum/vidscribe/errors"
	"github.com/kbukum/vidscribe/logger"
	"github.com/kbukum/vidscribe/observability"
)

// Middleware decorates the Execute call of a provider.
type Middleware[I, O any] func(RequestResponse[I, O]) RequestResponse[I, O]

// Wrap applies mws to p with the first middleware outermost, so
// Wrap(p, a, b) runs a, then b, then p.
func Wrap[I, O any](p RequestResponse[I, O], mws ...Middleware[I, O]) RequestResponse[I, O] {
	for i := len(mws) - 1; i >= 0; i-- {
		p = mws[i](p)
	}
	return p
}

// decorated keeps Name and IsAvailable of the embedded provider and
// replaces Execute.
type decorated[I, O any] struct {
	RequestResponse[I, O]
	exec func(ctx context.Context, input I) (O, error)
}

func (d *decorated[I, O]) Execute(ctx context.Context, input I) (O, error) {
	return d.exec(ctx, input)
}

// around builds a Middleware from fn, which receives the provider and the
// timing of each call after it returns.
func around[I, O any](fn func(ctx context.Context, p RequestResponse[I, O], err error, elapsed time.Duration)) Middleware[I, O] {
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		return &decorated[I, O]{
			RequestResponse: inner,
			exec: func(ctx context.Context, input I) (O, error) {
				start := time.Now()
				out, err := inner.Execute(ctx, input)
				fn(ctx, inner, err, time.Since(start))
				return out, err
			},
		}
	}
}

// WithLogging logs each call with its duration and, on failure, the error
// and its innermost code. The run ID is taken from ctx.
func WithLogging[I, O any](log *logger.Logger) Middleware[I, O] {
	return around(func(ctx context.Context, p RequestResponse[I, O], err error, elapsed time.Duration) {
		fields := logger.MergeWithDuration(logger.Fields(logger.FieldEngine, p.Name()), elapsed)
		if err != nil {
			fields["code"] = string(errors.RootCode(err))
			fields["retryable"] = errors.RootCode(err).Retryable()
			log.WithContext(ctx).Warn("engine call failed", logger.MergeWithError(fields, err))
			return
		}
		log.WithContext(ctx).Debug("engine call finished", fields)
	})
}

// WithMetrics records the count and latency of each call.
func WithMetrics[I, O any](metrics *observability.Metrics) Middleware[I, O] {
	return around(func(ctx context.Context, p RequestResponse[I, O], err error, elapsed time.Duration) {
		metrics.RecordEngine(ctx, p.Name(), err, elapsed)
	})
}

// WithTracing runs each call in a span named by spanName(provider name).
func WithTracing[I, O any](spanName func(string) string) Middleware[I, O] {
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		return &decorated[I, O]{
			RequestResponse: inner,
			exec: func(ctx context.Context, input I) (O, error) {
				ctx, span := observability.StartSpan(ctx, spanName(inner.Name()), observability.AttrEngine.String(inner.Name()))
				out, err := inner.Execute(ctx, input)
				observability.EndSpan(span, err)
				return out, err
			},
		}
	}
}
