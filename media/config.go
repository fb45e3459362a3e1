package media

import "github.com/kbukum/vidscribe/validation"

// Config holds the media tool settings.
type Config struct {
	// FFmpegBinary is the ffmpeg executable name or path.
	FFmpegBinary string `yaml:"ffmpeg_binary" mapstructure:"ffmpeg_binary" validate:"required"`
	// FFprobeBinary is the ffprobe executable name or path.
	FFprobeBinary string `yaml:"ffprobe_binary" mapstructure:"ffprobe_binary" validate:"required"`
}

// ApplyDefaults sets default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.FFmpegBinary == "" {
		c.FFmpegBinary = "ffmpeg"
	}
	if c.FFprobeBinary == "" {
		c.FFprobeBinary = "ffprobe"
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	return validation.Validate(c)
}
