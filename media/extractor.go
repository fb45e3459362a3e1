package media

import (
	"context"
	"os"
	"time"

	"github.com/kbukum/vidscribe/errors"
	"github.com/kbukum/vidscribe/logger"
	"github.com/kbukum/vidscribe/process"
)

// Audio is an audio file produced by extraction.
type Audio struct {
	Path   string
	Format Format
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithRunner replaces the subprocess runner used to invoke ffmpeg and ffprobe.
func WithRunner(r process.Runner) Option {
	return func(e *Extractor) { e.runner = r }
}

// Extractor converts video files into audio files.
type Extractor struct {
	config Config
	runner process.Runner
	log    *logger.Logger
}

// NewExtractor creates an Extractor. Unset config fields take their defaults.
func NewExtractor(cfg Config, opts ...Option) *Extractor {
	cfg.ApplyDefaults()
	e := &Extractor{
		config: cfg,
		runner: process.NewExecutor("ffmpeg"),
		log:    logger.Get("media"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract writes the audio track of videoPath to outputPath in the given format.
// An empty outputPath defaults to the video path with the format's extension.
// An existing file at outputPath is overwritten. On failure any partial output
// is removed.
func (e *Extractor) Extract(ctx context.Context, videoPath, outputPath string, format Format) (Audio, error) {
	if _, err := ParseFormat(string(format)); err != nil {
		return Audio{}, err
	}
	info, err := os.Stat(videoPath)
	if err != nil || !info.Mode().IsRegular() {
		return Audio{}, errors.NotFound("Video file", videoPath)
	}
	if outputPath == "" {
		outputPath = DefaultOutputPath(videoPath, format)
	}

	log := e.log.WithContext(ctx)
	log.Info("extracting audio", logger.Fields(logger.FieldPath, videoPath, "output", outputPath, "codec", format.Codec()))

	start := time.Now()
	result, err := e.runner.Run(ctx, process.Command{
		Binary: e.config.FFmpegBinary,
		Args:   ffmpegArgs(videoPath, outputPath, format),
	})
	if err != nil {
		if rmErr := os.Remove(outputPath); rmErr != nil && !os.IsNotExist(rmErr) {
			log.Warn("failed to remove partial audio", logger.MergeWithError(logger.Fields(logger.FieldPath, outputPath), rmErr))
		}
		return Audio{}, errors.ExtractionFailed(result.StderrText(), err).
			WithDetail("video_path", videoPath)
	}

	log.Info("audio extracted", logger.MergeWithDuration(logger.Fields(logger.FieldPath, outputPath), time.Since(start)))
	return Audio{Path: outputPath, Format: format}, nil
}

func ffmpegArgs(videoPath, outputPath string, format Format) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", videoPath,
		"-vn",
		"-acodec", format.Codec(),
		outputPath,
	}
}
