package whisper

import (
	"bufio"
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kbukum/vidscribe/errors"
	"github.com/kbukum/vidscribe/logger"
	"github.com/kbukum/vidscribe/process"
	"github.com/kbukum/vidscribe/transcription"
)

var _ transcription.Transcriber = (*Transcriber)(nil)

// Option configures a Transcriber.
type Option func(*Transcriber)

// WithRunner replaces the subprocess runner used to invoke whisper.
func WithRunner(r process.Runner) Option {
	return func(t *Transcriber) { t.runner = r }
}

// WithLookPath replaces the function used to resolve the whisper binary.
func WithLookPath(fn func(string) (string, error)) Option {
	return func(t *Transcriber) { t.lookPath = fn }
}

// Transcriber runs the whisper CLI on local audio files.
type Transcriber struct {
	config   Config
	runner   process.Runner
	lookPath func(string) (string, error)
	log      *logger.Logger
}

// New creates a whisper Transcriber. Unset config fields take their defaults.
func New(cfg Config, opts ...Option) *Transcriber {
	cfg.ApplyDefaults()
	t := &Transcriber{
		config:   cfg,
		runner:   process.NewExecutor(transcription.EngineWhisper),
		lookPath: process.LookPath,
		log:      logger.Get("whisper"),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name returns the engine name.
func (t *Transcriber) Name() string { return transcription.EngineWhisper }

// IsAvailable reports whether the whisper binary can be resolved.
func (t *Transcriber) IsAvailable(_ context.Context) bool {
	_, err := t.lookPath(t.config.Binary)
	return err == nil
}

// LoadModel resolves the named model, using the process-wide cache.
func (t *Transcriber) LoadModel(name string) (*Model, error) {
	if name == "" {
		name = t.config.Model
	}
	m, err := models.load(name, t.config.Binary, t.config.ModelDir, t.lookPath)
	if err != nil {
		return nil, errors.TranscriptionFailed(name, err)
	}
	return m, nil
}

// Transcribe runs whisper on req.AudioPath and returns the parsed result.
// Request fields left empty fall back to the configured defaults.
func (t *Transcriber) Transcribe(ctx context.Context, req transcription.Request) (*transcription.Result, error) {
	if _, err := os.Stat(req.AudioPath); err != nil {
		return nil, errors.NotFound("Audio file", req.AudioPath)
	}
	req = t.withDefaults(req)

	model, err := t.LoadModel(req.Model)
	if err != nil {
		return nil, err
	}

	log := t.log.WithContext(ctx)
	log.Info("transcribing audio", logger.Fields(logger.FieldPath, req.AudioPath, logger.FieldModel, model.Name, "task", req.Task))

	tmp, err := os.MkdirTemp("", "vidscribe-whisper-*")
	if err != nil {
		return nil, errors.TranscriptionFailed(model.Name, err)
	}
	defer func() {
		if rmErr := os.RemoveAll(tmp); rmErr != nil {
			log.Warn("failed to remove temp dir", logger.MergeWithError(logger.Fields(logger.FieldPath, tmp), rmErr))
		}
	}()

	start := time.Now()
	result, err := t.runner.Run(ctx, process.Command{
		Binary: model.Binary,
		Args:   buildArgs(model, req, tmp),
	})
	if req.Verbose && result != nil {
		logProgress(log, result.Stdout)
	}
	if err != nil {
		appErr := errors.TranscriptionFailed(model.Name, err)
		if stderr := result.StderrText(); stderr != "" {
			appErr.WithDetail("stderr", stderr)
		}
		return nil, appErr
	}

	out, err := readOutput(filepath.Join(tmp, stem(req.AudioPath)+".json"))
	if err != nil {
		return nil, errors.TranscriptionFailed(model.Name, err)
	}

	res := out.toResult(req.Language)
	res.Duration = time.Since(start)
	log.Info("transcription complete", logger.MergeWithDuration(logger.Fields(
		logger.FieldModel, model.Name,
		"language", res.Language,
		"segments", len(res.Segments),
	), res.Duration))
	return res, nil
}

func (t *Transcriber) withDefaults(req transcription.Request) transcription.Request {
	req.Model = cmp.Or(req.Model, t.config.Model)
	req.Language = cmp.Or(req.Language, t.config.Language)
	req.Task = cmp.Or(req.Task, t.config.Task)
	req.Verbose = req.Verbose || t.config.verbose()
	return req
}

func buildArgs(model *Model, req transcription.Request, outputDir string) []string {
	args := []string{
		req.AudioPath,
		"--model", model.Name,
		"--task", req.Task,
	}
	if req.Language != "" {
		args = append(args, "--language", req.Language)
	}
	args = append(args,
		"--output_format", "json",
		"--output_dir", outputDir,
		"--verbose", pyBool(req.Verbose),
		"--fp16", "False",
	)
	if model.Dir != "" {
		args = append(args, "--model_dir", model.Dir)
	}
	return args
}

// output is the JSON document whisper writes with --output_format json.
type output struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

func readOutput(path string) (*output, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read whisper output: %w", err)
	}
	var out output
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse whisper output: %w", err)
	}
	return &out, nil
}

// toResult keeps the full text exactly as whisper wrote it. Segment texts
// are trimmed.
func (o *output) toResult(language string) *transcription.Result {
	if language == "" {
		language = o.Language
	}
	segments := make([]transcription.Segment, 0, len(o.Segments))
	for _, s := range o.Segments {
		segments = append(segments, transcription.Segment{
			Start: s.Start,
			End:   s.End,
			Text:  strings.TrimSpace(s.Text),
		})
	}
	transcription.SortSegments(segments)
	return &transcription.Result{
		Engine:   transcription.EngineWhisper,
		Text:     o.Text,
		Segments: segments,
		Language: language,
	}
}

func logProgress(log *logger.Logger, stdout []byte) {
	scanner := bufio.NewScanner(bytes.NewReader(stdout))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			log.Debug(line)
		}
	}
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func pyBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
