package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/vidscribe/errors"
	"github.com/kbukum/vidscribe/logger"
	"github.com/kbukum/vidscribe/media"
	"github.com/kbukum/vidscribe/observability"
	"github.com/kbukum/vidscribe/provider"
	"github.com/kbukum/vidscribe/transcription"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Extractor produces an audio file from a video file.
type Extractor interface {
	Extract(ctx context.Context, videoPath, outputPath string, format media.Format) (media.Audio, error)
}

// engine is a transcriber wrapped with provider middleware.
type engine = provider.RequestResponse[transcription.Request, *transcription.Result]

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithMetrics records run and stage metrics on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

// WithLogger replaces the orchestrator's logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *Orchestrator) { o.log = l }
}

// Orchestrator sequences extraction, transcription and persistence.
type Orchestrator struct {
	extractor Extractor
	engines   []engine
	metrics   *observability.Metrics
	log       *logger.Logger
}

// New creates an Orchestrator. Engines run in registry order, each wrapped
// with logging, metrics and tracing middleware.
func New(extractor Extractor, transcribers *provider.Registry[transcription.Transcriber], opts ...Option) *Orchestrator {
	o := &Orchestrator{
		extractor: extractor,
		log:       logger.Get("pipeline"),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.metrics == nil {
		m, err := observability.NewMetrics(nil)
		if err != nil {
			o.log.Warn("metrics unavailable", logger.MergeWithError(nil, err))
		}
		o.metrics = m
	}

	mws := []provider.Middleware[transcription.Request, *transcription.Result]{
		provider.WithLogging[transcription.Request, *transcription.Result](o.log),
		provider.WithTracing[transcription.Request, *transcription.Result](observability.SpanEngine),
	}
	if o.metrics != nil {
		mws = append(mws, provider.WithMetrics[transcription.Request, *transcription.Result](o.metrics))
	}
	for _, t := range transcribers.All() {
		o.engines = append(o.engines, provider.Wrap(transcription.AsRequestResponse(t), mws...))
	}
	return o
}

// Engines returns the engine names in execution order.
func (o *Orchestrator) Engines() []string {
	names := make([]string, len(o.engines))
	for i, e := range o.engines {
		names[i] = e.Name()
	}
	return names
}

// run carries the mutable state of a single Run call.
type run struct {
	id       string
	req      Request
	state    State
	stage    string
	produced []string
	log      *logger.Logger
}

// Run executes the pipeline for req. On failure no run-produced files are
// left behind and the error is a PIPELINE_FAILED AppError wrapping the cause.
func (o *Orchestrator) Run(ctx context.Context, req Request) (*Output, error) {
	r := &run{id: uuid.NewString(), req: req, state: StateStart}
	ctx = logger.ContextWithRunID(ctx, r.id)
	r.log = o.log.WithContext(ctx)

	ctx, span := observability.StartSpan(ctx, observability.SpanRun,
		observability.AttrRunID.String(r.id),
		observability.AttrVideoPath.String(req.VideoPath),
		observability.AttrAudioFormat.String(req.AudioFormat),
		observability.AttrModel.String(req.Model),
		observability.AttrEngine.StringSlice(o.Engines()),
	)

	start := time.Now()
	r.log.Info("pipeline started", logger.Fields(
		"video_path", req.VideoPath,
		"output_dir", req.OutputDir,
		"audio_format", req.AudioFormat,
		"engines", o.Engines(),
	))

	out, err := o.execute(ctx, r)
	if err != nil {
		o.cleanup(ctx, r)
		r.transition(StateFailed)
		wrapped := errors.PipelineFailed(r.stage, err).WithDetail("run_id", r.id)
		observability.EndSpan(span, wrapped)
		o.recordRun(ctx, wrapped, time.Since(start))
		r.log.Error("pipeline failed", logger.MergeWithDuration(
			logger.MergeWithError(logger.Fields(logger.FieldStage, r.stage), err), time.Since(start)))
		return nil, wrapped
	}

	r.transition(StateDone)
	observability.EndSpan(span, nil)
	o.recordRun(ctx, nil, time.Since(start))
	r.log.Info("pipeline finished", logger.MergeWithDuration(logger.Fields("files", out.Files), time.Since(start)))
	return out, nil
}

func (o *Orchestrator) execute(ctx context.Context, r *run) (*Output, error) {
	req := r.req

	var format media.Format
	err := o.stage(ctx, r, StageValidate, func(context.Context) error {
		if err := req.Validate(); err != nil {
			return err
		}
		f, err := media.ParseFormat(req.AudioFormat)
		format = f
		return err
	})
	if err != nil {
		return nil, err
	}

	var audio media.Audio
	err = o.stage(ctx, r, StageExtract, func(ctx context.Context) error {
		// Missing input fails before anything is created under the output directory.
		if info, err := os.Stat(req.VideoPath); err != nil || !info.Mode().IsRegular() {
			return errors.NotFound("Video file", req.VideoPath)
		}
		if err := os.MkdirAll(req.OutputDir, dirPerm); err != nil {
			return errors.Internal(err).WithDetail("path", req.OutputDir)
		}
		audioPath := filepath.Join(req.OutputDir, media.Stem(req.VideoPath)+format.Ext())
		a, err := o.extractor.Extract(ctx, req.VideoPath, audioPath, format)
		if err != nil {
			return err
		}
		audio = a
		r.produced = append(r.produced, audio.Path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	r.transition(StateAudioExtracted)

	results := make(map[string]*transcription.Result, len(o.engines))
	err = o.stage(ctx, r, StageTranscribe, func(ctx context.Context) error {
		treq := req.transcriptionRequest(audio)
		for _, e := range o.engines {
			res, err := e.Execute(ctx, treq)
			if err != nil {
				return err
			}
			results[e.Name()] = res
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	r.transition(StateTranscribed)

	files := make(map[string]string, len(results)+1)
	err = o.stage(ctx, r, StagePersist, func(context.Context) error {
		stem := media.Stem(req.VideoPath)
		for _, e := range o.engines {
			text := results[e.Name()].Text
			if strings.TrimSpace(text) == "" {
				r.log.Warn("empty transcript, nothing saved", logger.Fields(logger.FieldEngine, e.Name()))
				continue
			}
			path := filepath.Join(req.OutputDir, stem+"_"+e.Name()+".txt")
			r.produced = append(r.produced, path)
			if err := os.WriteFile(path, []byte(text), filePerm); err != nil {
				return errors.Internal(err).WithDetail("path", path)
			}
			files[e.Name()] = path
			r.log.Info("transcript saved", logger.Fields(logger.FieldEngine, e.Name(), logger.FieldPath, path))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if retainAudio(audio.Path, req.OutputDir) {
		files[ArtifactAudio] = audio.Path
	} else {
		o.remove(ctx, r, audio.Path)
	}
	r.transition(StatePersisted)

	return &Output{RunID: r.id, Results: results, Files: files}, nil
}

// stage runs fn as a traced, timed pipeline stage.
func (o *Orchestrator) stage(ctx context.Context, r *run, name string, fn func(context.Context) error) error {
	r.stage = name
	ctx, span := observability.StartSpan(ctx, observability.SpanStage(name), observability.AttrStage.String(name))
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	observability.EndSpan(span, err)
	if o.metrics != nil {
		o.metrics.RecordStage(ctx, name, err, elapsed)
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.log.Debug("stage finished", logger.MergeWithDuration(logger.Fields(logger.FieldStage, name, logger.FieldStatus, status), elapsed))
	return err
}

// cleanup removes every file produced by the run, newest first.
func (o *Orchestrator) cleanup(ctx context.Context, r *run) {
	if len(r.produced) == 0 {
		return
	}
	_, span := observability.StartSpan(ctx, observability.SpanStage(StageCleanup))
	defer observability.EndSpan(span, nil)
	for i := len(r.produced) - 1; i >= 0; i-- {
		o.remove(ctx, r, r.produced[i])
	}
}

func (o *Orchestrator) remove(_ context.Context, r *run, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		r.log.Warn("failed to remove file", logger.MergeWithError(logger.Fields(logger.FieldPath, path), err))
		return
	}
	r.log.Debug("removed file", logger.Fields(logger.FieldPath, path))
}

func (o *Orchestrator) recordRun(ctx context.Context, err error, d time.Duration) {
	if o.metrics != nil {
		o.metrics.RecordRun(ctx, err, d)
	}
}

func (r *run) transition(to State) {
	r.log.Info("pipeline state", logger.Fields("from", r.state.String(), "to", to.String(), logger.FieldStage, r.stage))
	r.state = to
}

// retainAudio reports whether audioPath lives under outputDir. The check is a
// string prefix match against the cleaned directory, not path canonicalization.
func retainAudio(audioPath, outputDir string) bool {
	return strings.HasPrefix(audioPath, filepath.Clean(outputDir))
}
