package deepgram

import (
	"time"

	"github.com/kbukum/vidscribe/validation"
)

const (
	defaultBaseURL  = "https://api.deepgram.com"
	defaultModel    = "general"
	defaultTier     = "enhanced"
	defaultLanguage = "en"
	defaultTimeout  = 5 * time.Minute
)

// Config holds configuration for the Deepgram transcriber.
type Config struct {
	// Enabled registers the remote engine in the pipeline.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// APIKey is the Deepgram credential, usually from DEEPGRAM_API_KEY.
	APIKey string `yaml:"api_key" mapstructure:"api_key"`
	// BaseURL is the API root.
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"required,url"`
	Model   string `yaml:"model" mapstructure:"model" validate:"required"`
	Tier    string `yaml:"tier" mapstructure:"tier"`
	// Language is the default language hint.
	Language string `yaml:"language" mapstructure:"language"`
	// SmartFormat and Punctuate default to true when unset.
	SmartFormat *bool `yaml:"smart_format" mapstructure:"smart_format"`
	Punctuate   *bool `yaml:"punctuate" mapstructure:"punctuate"`
	Diarize     bool  `yaml:"diarize" mapstructure:"diarize"`
	// Timeout bounds the whole upload and response.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gt=0"`
}

// ApplyDefaults sets default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.Model == "" {
		c.Model = defaultModel
	}
	if c.Tier == "" {
		c.Tier = defaultTier
	}
	if c.Language == "" {
		c.Language = defaultLanguage
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	return validation.Validate(c)
}

func (c Config) smartFormat() bool { return c.SmartFormat == nil || *c.SmartFormat }

func (c Config) punctuate() bool { return c.Punctuate == nil || *c.Punctuate }

// Ready reports whether the engine is enabled and has a credential.
func (c Config) Ready() bool {
	return c.Enabled && c.APIKey != ""
}
