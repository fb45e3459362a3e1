package whisper

import (
	"github.com/kbukum/vidscribe/transcription"
	"github.com/kbukum/vidscribe/validation"
)

const (
	defaultBinary = "whisper"
	defaultModel  = "base"
)

// Config holds configuration for the whisper transcriber.
type Config struct {
	// Binary is the whisper executable name or path.
	Binary string `yaml:"binary" mapstructure:"binary" validate:"required"`
	// Model is the default model tier.
	Model string `yaml:"model" mapstructure:"model" validate:"required,oneof=tiny base small medium large"`
	// ModelDir is where model weights are stored. Empty uses the tool's default.
	ModelDir string `yaml:"model_dir" mapstructure:"model_dir"`
	// Language is the default language hint. Empty means auto-detect.
	Language string `yaml:"language" mapstructure:"language"`
	// Task is "transcribe" or "translate".
	Task string `yaml:"task" mapstructure:"task" validate:"oneof=transcribe translate"`
	// Verbose streams the tool's progress into debug logs. Unset means on.
	Verbose *bool `yaml:"verbose" mapstructure:"verbose"`
}

func (c Config) verbose() bool { return c.Verbose == nil || *c.Verbose }

// ApplyDefaults sets default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.Binary == "" {
		c.Binary = defaultBinary
	}
	if c.Model == "" {
		c.Model = defaultModel
	}
	if c.Task == "" {
		c.Task = transcription.TaskTranscribe
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	return validation.Validate(c)
}
