package config

import (
	"fmt"

	"github.com/kbukum/vidscribe/media"
	"github.com/kbukum/vidscribe/observability"
	"github.com/kbukum/vidscribe/pipeline"
	"github.com/kbukum/vidscribe/transcription/deepgram"
	"github.com/kbukum/vidscribe/transcription/whisper"
	"github.com/kbukum/vidscribe/version"
)

// Config is the complete vidscribe configuration.
type Config struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Media         media.Config         `yaml:"media" mapstructure:"media"`
	Whisper       whisper.Config       `yaml:"whisper" mapstructure:"whisper"`
	Deepgram      deepgram.Config      `yaml:"deepgram" mapstructure:"deepgram"`
	Pipeline      pipeline.Config      `yaml:"pipeline" mapstructure:"pipeline"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults fills unset fields in every section.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = version.Name
	}
	if c.Version == "" {
		c.Version = version.Short()
	}
	c.ServiceConfig.ApplyDefaults()

	c.Media.ApplyDefaults()
	c.Whisper.ApplyDefaults()
	c.Deepgram.ApplyDefaults()
	c.Pipeline.ApplyDefaults()

	c.Observability.ServiceName = c.Name
	c.Observability.ServiceVersion = c.Version
	c.Observability.Environment = c.Environment
	c.Observability.ApplyDefaults()
}

// Validate checks every section and reports the first failure.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	sections := []struct {
		name string
		v    interface{ Validate() error }
	}{
		{"media", &c.Media},
		{"whisper", &c.Whisper},
		{"deepgram", &c.Deepgram},
		{"pipeline", &c.Pipeline},
		{"observability", &c.Observability},
	}
	for _, s := range sections {
		if err := s.v.Validate(); err != nil {
			return fmt.Errorf("config.%s: %w", s.name, err)
		}
	}
	return nil
}

// Load resolves config.yml and .env, applies defaults and validates.
// Environment variables win over the file, so DEEPGRAM_API_KEY fills
// deepgram.api_key.
func Load(opts ...LoaderOption) (*Config, error) {
	cfg := &Config{}
	if err := LoadConfig(version.Name, cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
