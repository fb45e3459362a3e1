package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/kbukum/vidscribe/bootstrap"
	"github.com/kbukum/vidscribe/config"
	"github.com/kbukum/vidscribe/logger"
	"github.com/kbukum/vidscribe/media"
	"github.com/kbukum/vidscribe/observability"
	"github.com/kbukum/vidscribe/pipeline"
	"github.com/kbukum/vidscribe/process"
	"github.com/kbukum/vidscribe/provider"
	"github.com/kbukum/vidscribe/transcription"
	"github.com/kbukum/vidscribe/transcription/deepgram"
	"github.com/kbukum/vidscribe/transcription/whisper"
)

const previewLength = 100

// runPipeline wires the components from cfg and runs one pipeline job.
func runPipeline(ctx context.Context, cfg *config.Config, req pipeline.Request, verify bool, w io.Writer) error {
	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		return err
	}

	shutdown := observability.ShutdownFunc(func(context.Context) error { return nil })
	app.OnStart(func(ctx context.Context) error {
		fn, err := observability.Setup(ctx, app.Cfg.Observability)
		if err != nil {
			return err
		}
		shutdown = fn
		return nil
	})
	app.OnStop(func(ctx context.Context) error { return shutdown(ctx) })

	var (
		extractor *media.Extractor
		orch      *pipeline.Orchestrator
	)
	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*config.Config]) error {
		extractor = media.NewExtractor(a.Cfg.Media)
		reg, err := registerEngines(ctx, a.Cfg, a.Summary)
		if err != nil {
			return err
		}
		orch = pipeline.New(extractor, reg)
		trackSettings(a.Summary, a.Cfg, req)
		return nil
	})

	return app.RunTask(ctx, func(ctx context.Context) error {
		out, err := orch.Run(ctx, req)
		if err != nil {
			return err
		}
		if verify {
			if err := verifyAudio(ctx, extractor, out, req); err != nil {
				return err
			}
		}
		return printOutput(w, out, orch.Engines())
	})
}

// registerEngines builds the transcriber registry. Whisper is always
// registered; Deepgram only when enabled and a key is configured. Every
// engine is reported in the summary with its availability.
func registerEngines(ctx context.Context, cfg *config.Config, summary *bootstrap.Summary) (*provider.Registry[transcription.Transcriber], error) {
	reg := transcription.NewRegistry()
	if err := reg.Register(whisper.New(cfg.Whisper)); err != nil {
		return nil, err
	}
	if cfg.Deepgram.Ready() {
		dg, err := deepgram.New(cfg.Deepgram)
		if err != nil {
			return nil, err
		}
		if err := reg.Register(dg); err != nil {
			return nil, err
		}
	}

	ready := map[string]bool{}
	for _, t := range reg.Available(ctx) {
		ready[t.Name()] = true
	}
	for _, t := range reg.All() {
		status, details := engineStatus(cfg, t.Name(), ready[t.Name()])
		summary.TrackComponent(t.Name(), status, details, ready[t.Name()])
	}

	switch {
	case cfg.Deepgram.Ready():
	case cfg.Deepgram.Enabled:
		logger.Get("vidscribe").Warn("deepgram enabled without an API key, skipping",
			logger.Fields(logger.FieldEngine, transcription.EngineDeepgram))
		summary.TrackComponent(transcription.EngineDeepgram, "missing", "DEEPGRAM_API_KEY not set", false)
	default:
		summary.TrackComponent(transcription.EngineDeepgram, "disabled", "", true)
	}

	if !process.Available(cfg.Media.FFmpegBinary) {
		summary.TrackComponent(cfg.Media.FFmpegBinary, "missing", "not on PATH", false)
	}
	return reg, nil
}

func engineStatus(cfg *config.Config, name string, ok bool) (status, details string) {
	switch {
	case name == transcription.EngineWhisper && ok:
		return "available", "model " + cfg.Whisper.Model
	case name == transcription.EngineWhisper:
		return "missing", cfg.Whisper.Binary + " not on PATH"
	case ok:
		return "available", cfg.Deepgram.Model + "/" + cfg.Deepgram.Tier
	default:
		return "missing", "no credential"
	}
}

func trackSettings(summary *bootstrap.Summary, cfg *config.Config, req pipeline.Request) {
	summary.TrackSetting("video", req.VideoPath)
	summary.TrackSetting("output_dir", req.OutputDir)
	summary.TrackSetting("audio_format", req.AudioFormat)
	if cfg.Observability.Enabled {
		summary.TrackSetting("otlp_endpoint", cfg.Observability.Endpoint)
	}
}

// verifyAudio reads the codec of the retained audio file and checks it.
func verifyAudio(ctx context.Context, extractor *media.Extractor, out *pipeline.Output, req pipeline.Request) error {
	path, ok := out.Files[pipeline.ArtifactAudio]
	if !ok {
		return nil
	}
	format, err := media.ParseFormat(req.AudioFormat)
	if err != nil {
		return err
	}
	return extractor.Verify(ctx, media.Audio{Path: path, Format: format})
}

// printOutput writes the produced paths and a short preview of each transcript.
func printOutput(w io.Writer, out *pipeline.Output, engines []string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Run %s\n", out.RunID)
	if audio, ok := out.Files[pipeline.ArtifactAudio]; ok {
		fmt.Fprintf(&b, "  audio: %s\n", audio)
	}
	for _, name := range engines {
		path, ok := out.Files[name]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "  %s: %s\n", name, path)
		if res := out.Results[name]; res != nil {
			fmt.Fprintf(&b, "    %s\n", transcription.Preview(res.Text, previewLength))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
