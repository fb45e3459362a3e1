package bootstrap

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/vidscribe/config"
	"github.com/kbukum/vidscribe/logger"
)

// testConfig is a minimal config for testing that satisfies the Config interface.
type testConfig struct {
	config.ServiceConfig
}

func newTestConfig(name, version string) *testConfig {
	return &testConfig{
		ServiceConfig: config.ServiceConfig{
			Name:        name,
			Version:     version,
			Environment: "development",
		},
	}
}

func newQuietApp(t *testing.T, cfg *testConfig, opts ...Option) *App[*testConfig] {
	t.Helper()
	opts = append([]Option{WithSummaryOutput(nil)}, opts...)
	app, err := NewApp(cfg, opts...)
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	return app
}

func TestNewApp(t *testing.T) {
	app := newQuietApp(t, newTestConfig("test-svc", "1.0.0"))
	if app.Name != "test-svc" || app.Version != "1.0.0" {
		t.Errorf("unexpected identity %s %s", app.Name, app.Version)
	}
	if app.Logger == nil || app.Summary == nil {
		t.Fatal("expected logger and summary")
	}
	if app.Cfg.Logging.Level != "info" {
		t.Errorf("expected logging defaults applied, got %+v", app.Cfg.Logging)
	}
	if app.stopTimeout != 15*time.Second {
		t.Errorf("expected default 15s, got %v", app.stopTimeout)
	}
}

func TestNewAppValidation(t *testing.T) {
	_, err := NewApp(&testConfig{ServiceConfig: config.ServiceConfig{Environment: "development"}})
	if err == nil || !strings.Contains(err.Error(), "config validation") {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestNewAppWithOptions(t *testing.T) {
	l := logger.New(logger.Config{}, io.Discard)
	app := newQuietApp(t, newTestConfig("svc", "1.0"), WithLogger(l), WithGracefulTimeout(2*time.Second))
	if app.Logger != l {
		t.Error("expected custom logger")
	}
	if app.stopTimeout != 2*time.Second {
		t.Errorf("expected 2s, got %v", app.stopTimeout)
	}
}

func TestRunTaskSuccess(t *testing.T) {
	app := newQuietApp(t, newTestConfig("test", "1.0"))
	executed := false
	err := app.RunTask(context.Background(), func(ctx context.Context) error {
		executed = true
		return nil
	})
	if err != nil {
		t.Fatalf("RunTask failed: %v", err)
	}
	if !executed {
		t.Error("expected task to be executed")
	}
}

func TestRunTaskError(t *testing.T) {
	app := newQuietApp(t, newTestConfig("test", "1.0"))
	err := app.RunTask(context.Background(), func(ctx context.Context) error {
		return fmt.Errorf("task error")
	})
	if err == nil || err.Error() != "task error" {
		t.Errorf("expected 'task error', got %v", err)
	}
}

func TestRunTaskCancellation(t *testing.T) {
	app := newQuietApp(t, newTestConfig("test", "1.0"))
	ctx, cancel := context.WithCancel(context.Background())

	err := app.RunTask(ctx, func(taskCtx context.Context) error {
		cancel()
		<-taskCtx.Done()
		return taskCtx.Err()
	})
	if err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunTaskLifecycleOrder(t *testing.T) {
	app := newQuietApp(t, newTestConfig("test", "1.0"))

	var order []string
	app.OnStart(func(ctx context.Context) error {
		order = append(order, "start")
		return nil
	})
	app.OnConfigure(func(ctx context.Context, a *App[*testConfig]) error {
		if a.Cfg.Name != "test" {
			return fmt.Errorf("unexpected config %q", a.Cfg.Name)
		}
		order = append(order, "configure")
		return nil
	})
	app.OnStop(func(ctx context.Context) error {
		order = append(order, "stop")
		return nil
	})

	if err := app.RunTask(context.Background(), func(ctx context.Context) error {
		order = append(order, "task")
		return nil
	}); err != nil {
		t.Fatalf("RunTask failed: %v", err)
	}

	if got := strings.Join(order, ","); got != "start,configure,task,stop" {
		t.Errorf("unexpected order %s", got)
	}
}

func TestRunTaskStartupErrors(t *testing.T) {
	boom := fmt.Errorf("boom")
	tests := []struct {
		name    string
		setup   func(a *App[*testConfig])
		wantMsg string
	}{
		{"start hook", func(a *App[*testConfig]) {
			a.OnStart(func(context.Context) error { return boom })
		}, "start phase"},
		{"configure", func(a *App[*testConfig]) {
			a.OnConfigure(func(context.Context, *App[*testConfig]) error { return boom })
		}, "configure phase"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := newQuietApp(t, newTestConfig("test", "1.0"))
			stopped := false
			app.OnStop(func(context.Context) error {
				stopped = true
				return nil
			})
			tc.setup(app)

			ran := false
			err := app.RunTask(context.Background(), func(context.Context) error {
				ran = true
				return nil
			})
			if err == nil || !strings.Contains(err.Error(), tc.wantMsg) {
				t.Fatalf("expected %q error, got %v", tc.wantMsg, err)
			}
			if ran {
				t.Error("task must not run after a startup failure")
			}
			if !stopped {
				t.Error("stop hooks must run after a startup failure")
			}
		})
	}
}

func TestRunTaskStopHookError(t *testing.T) {
	app := newQuietApp(t, newTestConfig("test", "1.0"))
	app.OnStop(func(context.Context) error { return fmt.Errorf("flush failed") })

	err := app.RunTask(context.Background(), func(context.Context) error { return nil })
	if err == nil || !strings.Contains(err.Error(), "flush failed") {
		t.Errorf("expected stop error, got %v", err)
	}

	err = app.RunTask(context.Background(), func(context.Context) error { return fmt.Errorf("task error") })
	if err == nil || err.Error() != "task error" {
		t.Errorf("expected task error to win, got %v", err)
	}
}

func TestStopHookHasDeadline(t *testing.T) {
	app := newQuietApp(t, newTestConfig("test", "1.0"), WithGracefulTimeout(time.Second))
	var hasDeadline bool
	app.OnStop(func(ctx context.Context) error {
		_, hasDeadline = ctx.Deadline()
		return nil
	})
	if err := app.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
	if !hasDeadline {
		t.Error("expected stop hooks to run under the graceful timeout")
	}
}

func TestHookErrorStopsExecution(t *testing.T) {
	second := false
	err := runHooks(context.Background(), []Hook{
		func(context.Context) error { return fmt.Errorf("first") },
		func(context.Context) error { second = true; return nil },
	})
	if err == nil || !strings.Contains(err.Error(), "hook 0:") {
		t.Errorf("unexpected error %v", err)
	}
	if second {
		t.Error("expected execution to stop at the first error")
	}
}

func TestSummaryDisplay(t *testing.T) {
	var buf bytes.Buffer
	app := newQuietApp(t, newTestConfig("vidscribe", "1.2.3"), WithSummaryOutput(&buf))
	app.Summary.TrackSetting("output_dir", "transcriptions")
	app.Summary.TrackComponent("whisper", "available", "model base", true)
	app.Summary.TrackComponent("deepgram", "missing", "no API key", false)

	if err := app.RunTask(context.Background(), func(context.Context) error { return nil }); err != nil {
		t.Fatalf("RunTask failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"vidscribe v1.2.3",
		"output_dir: transcriptions",
		"├── ✅ whisper (available): model base",
		"└── ❌ deepgram (missing): no API key",
		"(1/2 ready)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in summary:\n%s", want, out)
		}
	}
}

func TestSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	s := NewSummary("svc", "1.0")
	s.out = &buf
	s.Display()
	if !strings.Contains(buf.String(), "No engines registered") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestSummaryDisabled(t *testing.T) {
	s := NewSummary("svc", "1.0")
	s.out = nil
	s.TrackComponent("whisper", "available", "", true)
	s.Display()
	if len(s.Components()) != 1 {
		t.Error("expected tracked component")
	}
}

func TestStatusIcon(t *testing.T) {
	tests := []struct {
		status  string
		healthy bool
		want    string
	}{
		{"available", true, "✅"},
		{"disabled", true, "⏸️"},
		{"available", false, "❌"},
		{"unknown", true, "⚠️"},
	}
	for _, tc := range tests {
		if got := statusIcon(tc.status, tc.healthy); got != tc.want {
			t.Errorf("statusIcon(%q, %v) = %q, want %q", tc.status, tc.healthy, got, tc.want)
		}
	}
}

func TestTreePrefix(t *testing.T) {
	if treePrefix(0, 2) != "├──" || treePrefix(1, 2) != "└──" {
		t.Error("unexpected tree prefixes")
	}
}
