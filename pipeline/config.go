package pipeline

import (
	"github.com/kbukum/vidscribe/media"
	"github.com/kbukum/vidscribe/validation"
)

const (
	defaultVideoPath = "videos/demo_tense.mp4"
	defaultOutputDir = "transcriptions"
)

// Config holds the default job settings used when the caller does not
// supply them.
type Config struct {
	// VideoPath is the input video.
	VideoPath string `yaml:"video_path" mapstructure:"video_path" validate:"required"`
	// OutputDir receives the transcripts and the extracted audio.
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir" validate:"required"`
	// AudioFormat is wav or mp3. Case and a leading dot are ignored.
	AudioFormat string `yaml:"audio_format" mapstructure:"audio_format" validate:"required,audioformat"`
}

// ApplyDefaults sets default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.VideoPath == "" {
		c.VideoPath = defaultVideoPath
	}
	if c.OutputDir == "" {
		c.OutputDir = defaultOutputDir
	}
	if c.AudioFormat == "" {
		c.AudioFormat = string(media.FormatWAV)
	}
	if f, err := media.ParseFormat(c.AudioFormat); err == nil {
		c.AudioFormat = string(f)
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	return validation.Validate(c)
}
