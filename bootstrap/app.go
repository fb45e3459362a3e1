package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/vidscribe/logger"
)

const defaultStopTimeout = 15 * time.Second

// Hook is a lifecycle callback.
type Hook func(ctx context.Context) error

// App drives one vidscribe invocation: hooks, summary, task, teardown.
type App[C Config] struct {
	Name    string
	Version string
	Cfg     C
	Logger  *logger.Logger
	Summary *Summary

	stopTimeout time.Duration
	wire        []func(ctx context.Context, app *App[C]) error
	before      []Hook
	after       []Hook
}

// Option tunes NewApp. Options do not depend on the config type.
type Option func(*settings)

type settings struct {
	log         *logger.Logger
	stopTimeout time.Duration
	summary     io.Writer
	quiet       bool
}

// WithLogger replaces the logger built from the logging section.
func WithLogger(l *logger.Logger) Option {
	return func(s *settings) { s.log = l }
}

// WithGracefulTimeout bounds the OnStop hooks.
func WithGracefulTimeout(d time.Duration) Option {
	return func(s *settings) { s.stopTimeout = d }
}

// WithSummaryOutput redirects the startup summary. nil silences it.
func WithSummaryOutput(w io.Writer) Option {
	return func(s *settings) {
		s.summary = w
		s.quiet = w == nil
	}
}

// NewApp defaults and validates cfg, then sets up logging from it.
func NewApp[C Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	s := settings{stopTimeout: defaultStopTimeout, summary: os.Stderr}
	for _, opt := range opts {
		opt(&s)
	}

	svc := cfg.GetServiceConfig()
	if s.log == nil {
		logger.Init(svc.Logging)
		s.log = logger.Root()
	}
	summary := NewSummary(svc.Name, svc.Version)
	summary.out = s.summary
	if s.quiet {
		summary.out = nil
	}
	return &App[C]{
		Name:        svc.Name,
		Version:     svc.Version,
		Cfg:         cfg,
		Logger:      s.log,
		Summary:     summary,
		stopTimeout: s.stopTimeout,
	}, nil
}

// OnStart hooks run first, before any engine is wired.
func (a *App[C]) OnStart(hooks ...Hook) { a.before = append(a.before, hooks...) }

// OnConfigure registers a callback that builds components from a.Cfg.
func (a *App[C]) OnConfigure(fn func(ctx context.Context, app *App[C]) error) {
	a.wire = append(a.wire, fn)
}

// OnStop hooks run after the task, whether it failed or not.
func (a *App[C]) OnStop(hooks ...Hook) { a.after = append(a.after, hooks...) }

// RunTask starts the app, runs task under a context that SIGINT and SIGTERM
// cancel, and stops the app. A task error wins over a stop error.
func (a *App[C]) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	if err := a.start(ctx); err != nil {
		if stopErr := a.stop(); stopErr != nil {
			a.Logger.Warn("stop after failed start", logger.MergeWithError(nil, stopErr))
		}
		return err
	}

	sigCtx, stopSignals := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	began := time.Now()
	err := task(sigCtx)
	if sigCtx.Err() != nil && ctx.Err() == nil {
		a.Logger.Info("task interrupted by signal")
	}
	stopSignals()
	a.Logger.Debug("task finished", logger.MergeWithDuration(nil, time.Since(began)))

	if stopErr := a.stop(); stopErr != nil && err == nil {
		return stopErr
	}
	return err
}

type phase struct {
	name string
	run  func(context.Context) error
}

func (a *App[C]) start(ctx context.Context) error {
	began := time.Now()
	a.Logger.Debug("starting", logger.Fields("name", a.Name, "version", a.Version))

	phases := []phase{
		{"start", func(ctx context.Context) error { return runHooks(ctx, a.before) }},
		{"configure", func(ctx context.Context) error {
			for _, fn := range a.wire {
				if err := fn(ctx, a); err != nil {
					return err
				}
			}
			return nil
		}},
	}
	for _, p := range phases {
		if err := p.run(ctx); err != nil {
			return fmt.Errorf("%s phase: %w", p.name, err)
		}
	}

	a.Summary.SetStartupDuration(time.Since(began))
	a.Summary.Display()
	return nil
}

// Shutdown runs the OnStop hooks without a task.
func (a *App[C]) Shutdown(context.Context) error { return a.stop() }

// stop gets a fresh context so it still runs after the task context ended.
func (a *App[C]) stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.stopTimeout)
	defer cancel()
	if err := runHooks(ctx, a.after); err != nil {
		a.Logger.Error("stop hook failed", logger.MergeWithError(nil, err))
		return err
	}
	return nil
}

func runHooks(ctx context.Context, hooks []Hook) error {
	for i, h := range hooks {
		if err := h(ctx); err != nil {
			return fmt.Errorf("hook %d: %w", i, err)
		}
	}
	return nil
}
