package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"
)

const defaultGracePeriod = 5 * time.Second

// Command is one tool invocation.
type Command struct {
	// Binary is a path or a name looked up on PATH.
	Binary string
	Args   []string
	// Dir defaults to the working directory.
	Dir string
	// Env is appended to the inherited environment.
	Env   []string
	Stdin io.Reader
	// GracePeriod separates SIGTERM from SIGKILL on cancellation. Zero
	// means five seconds.
	GracePeriod time.Duration
}

// String is the command line as logged.
func (c Command) String() string {
	return strings.Join(append([]string{c.Binary}, c.Args...), " ")
}

// Result is what a finished tool left behind.
type Result struct {
	Stdout []byte
	Stderr []byte
	// ExitCode is -1 when the process was killed or never started.
	ExitCode int
	Duration time.Duration
}

// StderrText is the trimmed stderr. It is safe on a nil Result, which
// failed lookups return.
func (r *Result) StderrText() string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(string(r.Stderr))
}

// Runner runs commands. ffmpeg and whisper callers take a Runner so tests
// can fake the tools.
type Runner interface {
	Run(ctx context.Context, cmd Command) (*Result, error)
}

// RunnerFunc lets a plain function serve as a Runner.
type RunnerFunc func(ctx context.Context, cmd Command) (*Result, error)

func (f RunnerFunc) Run(ctx context.Context, cmd Command) (*Result, error) { return f(ctx, cmd) }

// Run starts cmd in its own process group and waits for it. Cancelling ctx
// signals the group with SIGTERM and kills it after the grace period. The
// Result is non-nil whenever cmd.Binary was set, even on failure.
func Run(ctx context.Context, cmd Command) (*Result, error) {
	if cmd.Binary == "" {
		return nil, errors.New("process: binary is required")
	}
	var stdout, stderr bytes.Buffer
	c := exec.CommandContext(ctx, cmd.Binary, cmd.Args...) //nolint:gosec // runs the configured media and speech tools
	c.Dir = cmd.Dir
	c.Stdin = cmd.Stdin
	c.Stdout, c.Stderr = &stdout, &stderr
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	c.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	c.Cancel = func() error {
		return syscall.Kill(-c.Process.Pid, syscall.SIGTERM)
	}
	c.WaitDelay = cmd.GracePeriod
	if c.WaitDelay == 0 {
		c.WaitDelay = defaultGracePeriod
	}

	began := time.Now()
	err := c.Run()
	res := &Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: c.ProcessState.ExitCode(),
		Duration: time.Since(began),
	}
	switch {
	case err == nil:
		return res, nil
	case ctx.Err() != nil:
		return res, fmt.Errorf("process: %s stopped: %w", cmd.Binary, ctx.Err())
	default:
		return res, fmt.Errorf("process: %s exited with %d: %w", cmd.Binary, res.ExitCode, err)
	}
}

// LookPath resolves binary on PATH.
func LookPath(binary string) (string, error) { return exec.LookPath(binary) }

// Available reports whether binary resolves on PATH.
func Available(binary string) bool {
	_, err := exec.LookPath(binary)
	return err == nil
}
