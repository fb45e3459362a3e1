package whisper

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/kbukum/vidscribe/errors"
	"github.com/kbukum/vidscribe/process"
	"github.com/kbukum/vidscribe/transcription"
)

func fakeLookPath(binary string) (string, error) {
	return "/fake/bin/" + binary, nil
}

// fakeWhisper writes doc as <stem>.json into the --output_dir argument.
type fakeWhisper struct {
	mu    sync.Mutex
	doc   any
	calls []process.Command
	err   error
}

func (f *fakeWhisper) Run(_ context.Context, cmd process.Command) (*process.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, cmd)
	f.mu.Unlock()
	if f.err != nil {
		return &process.Result{Stderr: []byte("RuntimeError: CUDA out of memory\n"), ExitCode: 1}, f.err
	}
	dir := argValue(cmd.Args, "--output_dir")
	data, err := json.Marshal(f.doc)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(cmd.Args[0]), filepath.Ext(cmd.Args[0])) + ".json"
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return nil, err
	}
	return &process.Result{Stdout: []byte("[00:00.000 --> 00:01.000] hello\n")}, nil
}

func argValue(args []string, flag string) string {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag {
			return args[i+1]
		}
	}
	return ""
}

func writeAudio(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "demo.wav")
	if err := os.WriteFile(p, []byte("RIFF"), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

var sampleDoc = map[string]any{
	"text":     "  Hello world. Second line.  ",
	"language": "en",
	"segments": []map[string]any{
		{"start": 1.5, "end": 3.0, "text": " Second line."},
		{"start": 0.0, "end": 1.5, "text": " Hello world."},
	},
}

func TestTranscribe_ParsesOutput(t *testing.T) {
	fake := &fakeWhisper{doc: sampleDoc}
	tr := New(Config{Binary: "whisper-parse"}, WithRunner(fake), WithLookPath(fakeLookPath))

	res, err := tr.Transcribe(context.Background(), transcription.Request{AudioPath: writeAudio(t)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Engine != transcription.EngineWhisper {
		t.Errorf("unexpected engine %q", res.Engine)
	}
	if res.Text != "  Hello world. Second line.  " {
		t.Errorf("expected text as written by whisper, got %q", res.Text)
	}
	if res.Language != "en" {
		t.Errorf("expected detected language en, got %q", res.Language)
	}
	if len(res.Segments) != 2 || res.Segments[0].Text != "Hello world." || res.Segments[1].Start != 1.5 {
		t.Errorf("expected chronological segments, got %+v", res.Segments)
	}
}

func TestTranscribe_BuildsCommand(t *testing.T) {
	quiet := false
	tests := []struct {
		name    string
		cfg     Config
		req     transcription.Request
		want    []string
		notWant []string
	}{
		{
			name:    "defaults",
			cfg:     Config{Binary: "whisper-cmd"},
			want:    []string{"--model base", "--task transcribe", "--output_format json", "--verbose True", "--fp16 False"},
			notWant: []string{"--language", "--model_dir"},
		},
		{
			name: "verbose switched off",
			cfg:  Config{Binary: "whisper-cmd", Verbose: &quiet},
			want: []string{"--verbose False"},
		},
		{
			name: "request overrides",
			cfg:  Config{Binary: "whisper-cmd", ModelDir: "/models"},
			req:  transcription.Request{Model: "small", Language: "de", Task: transcription.TaskTranslate, Verbose: true},
			want: []string{"--model small", "--task translate", "--language de", "--verbose True", "--model_dir /models"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeWhisper{doc: sampleDoc}
			tr := New(tc.cfg, WithRunner(fake), WithLookPath(fakeLookPath))
			tc.req.AudioPath = writeAudio(t)

			if _, err := tr.Transcribe(context.Background(), tc.req); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			cmd := fake.calls[0]
			if cmd.Binary != "/fake/bin/whisper-cmd" {
				t.Errorf("expected resolved binary, got %q", cmd.Binary)
			}
			if cmd.Args[0] != tc.req.AudioPath {
				t.Errorf("expected audio path first, got %q", cmd.Args[0])
			}
			line := strings.Join(cmd.Args, " ")
			for _, w := range tc.want {
				if !strings.Contains(line, w) {
					t.Errorf("expected %q in %q", w, line)
				}
			}
			for _, w := range tc.notWant {
				if strings.Contains(line, w) {
					t.Errorf("did not expect %q in %q", w, line)
				}
			}
		})
	}
}

func TestTranscribe_LanguageHintIsReported(t *testing.T) {
	fake := &fakeWhisper{doc: sampleDoc}
	tr := New(Config{Binary: "whisper-lang", Language: "fr"}, WithRunner(fake), WithLookPath(fakeLookPath))

	res, err := tr.Transcribe(context.Background(), transcription.Request{AudioPath: writeAudio(t)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Language != "fr" {
		t.Errorf("expected supplied language fr, got %q", res.Language)
	}
}

func TestTranscribe_RemovesTempDir(t *testing.T) {
	fake := &fakeWhisper{doc: sampleDoc}
	tr := New(Config{Binary: "whisper-tmp"}, WithRunner(fake), WithLookPath(fakeLookPath))

	if _, err := tr.Transcribe(context.Background(), transcription.Request{AudioPath: writeAudio(t)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dir := argValue(fake.calls[0].Args, "--output_dir")
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("expected temp dir %s to be removed", dir)
	}
}

func TestTranscribe_MissingAudio(t *testing.T) {
	fake := &fakeWhisper{doc: sampleDoc}
	tr := New(Config{Binary: "whisper-missing"}, WithRunner(fake), WithLookPath(fakeLookPath))

	_, err := tr.Transcribe(context.Background(), transcription.Request{AudioPath: "/no/such/file.wav"})
	if !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
	if len(fake.calls) != 0 {
		t.Error("whisper must not run for a missing file")
	}
}

func TestTranscribe_InvalidModel(t *testing.T) {
	fake := &fakeWhisper{doc: sampleDoc}
	tr := New(Config{Binary: "whisper-invalid"}, WithRunner(fake), WithLookPath(fakeLookPath))

	_, err := tr.Transcribe(context.Background(), transcription.Request{AudioPath: writeAudio(t), Model: "gigantic"})
	if !errors.HasCode(err, errors.ErrCodeTranscriptionFailed) {
		t.Fatalf("expected TRANSCRIPTION_FAILED, got %v", err)
	}
	if !strings.Contains(err.Error(), "invalid model") {
		t.Errorf("expected invalid model cause, got %v", err)
	}
}

func TestTranscribe_MissingBinary(t *testing.T) {
	lookPath := func(string) (string, error) { return "", fmt.Errorf("executable file not found in $PATH") }
	tr := New(Config{Binary: "whisper-absent"}, WithRunner(&fakeWhisper{}), WithLookPath(lookPath))

	if tr.IsAvailable(context.Background()) {
		t.Error("expected unavailable")
	}
	_, err := tr.Transcribe(context.Background(), transcription.Request{AudioPath: writeAudio(t)})
	if !errors.HasCode(err, errors.ErrCodeTranscriptionFailed) {
		t.Fatalf("expected TRANSCRIPTION_FAILED, got %v", err)
	}
}

func TestTranscribe_ToolFailure(t *testing.T) {
	fake := &fakeWhisper{err: fmt.Errorf("exit status 1")}
	tr := New(Config{Binary: "whisper-fail"}, WithRunner(fake), WithLookPath(fakeLookPath))

	_, err := tr.Transcribe(context.Background(), transcription.Request{AudioPath: writeAudio(t)})
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeTranscriptionFailed {
		t.Fatalf("expected TRANSCRIPTION_FAILED, got %v", err)
	}
	if appErr.Details["stderr"] != "RuntimeError: CUDA out of memory" {
		t.Errorf("expected stderr detail, got %v", appErr.Details["stderr"])
	}
}

func TestTranscribe_MalformedOutput(t *testing.T) {
	fake := &fakeWhisper{doc: "not an object"}
	tr := New(Config{Binary: "whisper-malformed"}, WithRunner(fake), WithLookPath(fakeLookPath))

	_, err := tr.Transcribe(context.Background(), transcription.Request{AudioPath: writeAudio(t)})
	if !errors.HasCode(err, errors.ErrCodeTranscriptionFailed) {
		t.Fatalf("expected TRANSCRIPTION_FAILED, got %v", err)
	}
}

func TestLoadModel_CachesHandles(t *testing.T) {
	var lookups int
	var mu sync.Mutex
	lookPath := func(b string) (string, error) {
		mu.Lock()
		lookups++
		mu.Unlock()
		return "/fake/" + b, nil
	}
	tr := New(Config{Binary: "whisper-cache"}, WithLookPath(lookPath))

	var wg sync.WaitGroup
	handles := make([]*Model, 8)
	for i := range handles {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m, err := tr.LoadModel("medium")
			if err != nil {
				t.Errorf("load: %v", err)
				return
			}
			handles[i] = m
		}(i)
	}
	wg.Wait()

	if lookups != 1 {
		t.Errorf("expected one lookup, got %d", lookups)
	}
	for _, h := range handles[1:] {
		if h != handles[0] {
			t.Fatal("expected the same cached handle")
		}
	}
	if handles[0].Tier != TierIndex("medium") || handles[0].Binary != "/fake/whisper-cache" {
		t.Errorf("unexpected handle %+v", handles[0])
	}
	if models.len() == 0 {
		t.Error("expected cache to be populated")
	}
}

func TestTierIndex(t *testing.T) {
	if TierIndex("tiny") != 0 || TierIndex("large") != 4 || TierIndex("xl") != -1 {
		t.Error("unexpected tier ordering")
	}
}

func TestConfig(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Binary != "whisper" || cfg.Model != "base" || cfg.Task != transcription.TaskTranscribe {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
	if !cfg.verbose() {
		t.Error("expected verbose output by default")
	}
	cfg.Model = "huge"
	if err := cfg.Validate(); err == nil {
		t.Error("expected invalid model to fail validation")
	}
}

// TestTranscribe_RealWhisper runs the real tool when it is installed.
func TestTranscribe_RealWhisper(t *testing.T) {
	if testing.Short() || !process.Available("whisper") || !process.Available("ffmpeg") {
		t.Skip("whisper/ffmpeg not installed")
	}
	dir := t.TempDir()
	audio := filepath.Join(dir, "silence.wav")
	if _, err := process.Run(context.Background(), process.Command{
		Binary: "ffmpeg",
		Args:   []string{"-y", "-loglevel", "error", "-f", "lavfi", "-i", "anullsrc=r=16000:cl=mono", "-t", "1", audio},
	}); err != nil {
		t.Skipf("cannot generate audio: %v", err)
	}
	res, err := New(Config{Model: "tiny", Language: "en"}).Transcribe(context.Background(), transcription.Request{AudioPath: audio})
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}
	if res.Language != "en" {
		t.Errorf("expected en, got %q", res.Language)
	}
}
