package main

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/vidscribe/config"
	"github.com/kbukum/vidscribe/pipeline"
)

// options holds the root command flags.
type options struct {
	configFile  string
	envFile     string
	model       string
	outputDir   string
	audioFormat string
	language    string
	task        string
	deepgram    bool
	verify      bool
}

func newRootCommand() *cobra.Command {
	var opts options

	rootCmd := &cobra.Command{
		Use:   "vidscribe [video]",
		Short: "Extract the audio track of a video and transcribe it",
		Long: `vidscribe extracts the audio track of a video with ffmpeg, transcribes it
with the local whisper CLI and, when enabled, with Deepgram. Transcripts are
written to <output-dir>/<video-stem>_<engine>.txt.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			applyFlags(cfg, opts)
			req := buildRequest(cfg, opts, args)
			return runPipeline(cmd.Context(), cfg, req, opts.verify, cmd.OutOrStdout())
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "Configuration file path")
	flags.StringVar(&opts.envFile, "env-file", "", "Path to a .env file (DEEPGRAM_API_KEY)")
	flags.StringVarP(&opts.model, "model", "m", "", "Whisper model tier: tiny, base, small, medium, large")
	flags.StringVarP(&opts.outputDir, "output-dir", "o", "", "Directory for transcripts and extracted audio")
	flags.StringVarP(&opts.audioFormat, "audio-format", "f", "", "Extracted audio format: wav or mp3")
	flags.StringVarP(&opts.language, "language", "l", "", "Language hint, e.g. en")
	flags.StringVar(&opts.task, "task", "", "Whisper task: transcribe or translate")
	flags.BoolVar(&opts.deepgram, "deepgram", false, "Also transcribe with Deepgram (needs DEEPGRAM_API_KEY)")
	flags.BoolVar(&opts.verify, "verify", false, "Check the codec of the retained audio with ffprobe")

	rootCmd.AddCommand(newVersionCommand())
	return rootCmd
}

func loadConfig(opts options) (*config.Config, error) {
	var loaderOpts []config.LoaderOption
	if opts.configFile != "" {
		loaderOpts = append(loaderOpts, config.WithConfigFile(opts.configFile))
	}
	if opts.envFile != "" {
		loaderOpts = append(loaderOpts, config.WithEnvFile(opts.envFile))
	}
	return config.Load(loaderOpts...)
}

// applyFlags overlays flags onto the loaded config before it is handed to
// the constructors.
func applyFlags(cfg *config.Config, opts options) {
	if opts.model != "" {
		cfg.Whisper.Model = opts.model
	}
	if opts.language != "" {
		cfg.Whisper.Language = opts.language
		cfg.Deepgram.Language = opts.language
	}
	if opts.task != "" {
		cfg.Whisper.Task = opts.task
	}
	if opts.outputDir != "" {
		cfg.Pipeline.OutputDir = opts.outputDir
	}
	if opts.audioFormat != "" {
		cfg.Pipeline.AudioFormat = opts.audioFormat
	}
	if opts.deepgram {
		cfg.Deepgram.Enabled = true
	}
}

// buildRequest turns the configured defaults and the positional video
// argument into a pipeline request.
func buildRequest(cfg *config.Config, opts options, args []string) pipeline.Request {
	req := pipeline.FromConfig(cfg.Pipeline)
	if len(args) > 0 {
		req.VideoPath = args[0]
	}
	req.Model = cfg.Whisper.Model
	req.Task = cfg.Whisper.Task
	if opts.language != "" {
		req.Language = opts.language
	}
	return req
}
