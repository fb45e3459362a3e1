package process_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/vidscribe/process"
)

func TestRunEcho(t *testing.T) {
	result, err := process.Run(context.Background(), process.Command{
		Binary: "echo",
		Args:   []string{"hello", "world"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ExitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", result.ExitCode)
	}
	out := strings.TrimSpace(string(result.Stdout))
	if out != "hello world" {
		t.Fatalf("expected 'hello world', got %q", out)
	}
}

func TestRunStdin(t *testing.T) {
	result, err := process.Run(context.Background(), process.Command{
		Binary: "cat",
		Stdin:  strings.NewReader("from stdin"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := string(result.Stdout)
	if out != "from stdin" {
		t.Fatalf("expected 'from stdin', got %q", out)
	}
}

func TestRunExitCode(t *testing.T) {
	result, err := process.Run(context.Background(), process.Command{
		Binary: "sh",
		Args:   []string{"-c", "exit 42"},
	})
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}
	if result.ExitCode != 42 {
		t.Fatalf("expected exit code 42, got %d", result.ExitCode)
	}
}

func TestRunStderr(t *testing.T) {
	result, err := process.Run(context.Background(), process.Command{
		Binary: "sh",
		Args:   []string{"-c", "echo oops >&2"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stderr := strings.TrimSpace(string(result.Stderr))
	if stderr != "oops" {
		t.Fatalf("expected 'oops' on stderr, got %q", stderr)
	}
}

func TestRunContextCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	result, err := process.Run(ctx, process.Command{
		Binary:      "sleep",
		Args:        []string{"10"},
		GracePeriod: 500 * time.Millisecond,
	})
	if err == nil {
		t.Fatal("expected error from context cancellation")
	}
	if result.Duration > 5*time.Second {
		t.Fatalf("process took too long to kill: %v", result.Duration)
	}
}

func TestRunEmptyBinary(t *testing.T) {
	_, err := process.Run(context.Background(), process.Command{})
	if err == nil {
		t.Fatal("expected error for empty binary")
	}
}

func TestRunDuration(t *testing.T) {
	result, err := process.Run(context.Background(), process.Command{
		Binary: "sleep",
		Args:   []string{"0.1"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Duration < 50*time.Millisecond {
		t.Fatalf("duration too short: %v", result.Duration)
	}
}

func TestRunEnv(t *testing.T) {
	result, err := process.Run(context.Background(), process.Command{
		Binary: "sh",
		Args:   []string{"-c", "echo $MY_TEST_VAR"},
		Env:    []string{"MY_TEST_VAR=hello123"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := strings.TrimSpace(string(result.Stdout))
	if out != "hello123" {
		t.Fatalf("expected 'hello123', got %q", out)
	}
}

func TestRunMissingBinary(t *testing.T) {
	result, err := process.Run(context.Background(), process.Command{
		Binary: "vidscribe-no-such-binary",
	})
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
	if result.ExitCode != -1 {
		t.Fatalf("expected exit code -1 for a process that never started, got %d", result.ExitCode)
	}
}

func TestResultStderrText(t *testing.T) {
	var nilResult *process.Result
	if nilResult.StderrText() != "" {
		t.Fatal("expected empty text from nil result")
	}
	r := &process.Result{Stderr: []byte("  Invalid data found\n")}
	if got := r.StderrText(); got != "Invalid data found" {
		t.Fatalf("expected trimmed stderr, got %q", got)
	}
}

func TestCommandString(t *testing.T) {
	cmd := process.Command{Binary: "ffmpeg", Args: []string{"-y", "-i", "in.mp4"}}
	if got := cmd.String(); got != "ffmpeg -y -i in.mp4" {
		t.Fatalf("unexpected command line %q", got)
	}
	if got := (process.Command{Binary: "whisper"}).String(); got != "whisper" {
		t.Fatalf("unexpected command line %q", got)
	}
}

func TestExecutor(t *testing.T) {
	var r process.Runner = process.NewExecutor("sh")
	res, err := r.Run(context.Background(), process.Command{Binary: "sh", Args: []string{"-c", "echo ready"}})
	if err != nil || strings.TrimSpace(string(res.Stdout)) != "ready" {
		t.Fatalf("unexpected result %v %v", res, err)
	}

	res, err = r.Run(context.Background(), process.Command{Binary: "vidscribe-no-such-binary"})
	if err == nil || res == nil || res.ExitCode != -1 {
		t.Fatalf("expected a failed result for a missing binary, got %v %v", res, err)
	}

	if _, err := r.Run(context.Background(), process.Command{}); err == nil {
		t.Fatal("expected an error without a binary")
	}
}

func TestRunnerFunc(t *testing.T) {
	var seen process.Command
	var r process.Runner = process.RunnerFunc(func(_ context.Context, cmd process.Command) (*process.Result, error) {
		seen = cmd
		return &process.Result{Stdout: []byte("ok")}, nil
	})
	res, err := r.Run(context.Background(), process.Command{Binary: "ffmpeg"})
	if err != nil || string(res.Stdout) != "ok" || seen.Binary != "ffmpeg" {
		t.Fatalf("RunnerFunc did not delegate: %v %v %+v", res, err, seen)
	}
}

func TestAvailable(t *testing.T) {
	if !process.Available("sh") {
		t.Fatal("expected sh to be on PATH")
	}
	if process.Available("vidscribe-no-such-binary") {
		t.Fatal("did not expect a missing binary to be available")
	}
	if _, err := process.LookPath("vidscribe-no-such-binary"); err == nil {
		t.Fatal("expected LookPath error")
	}
}
