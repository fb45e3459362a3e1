package logger

import (
	"fmt"
	"slices"
)

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config controls the root logger.
type Config struct {
	// Level is one of trace, debug, info, warn, error.
	Level string `yaml:"level" mapstructure:"level"`
	// Format is console for humans or json for log shippers.
	Format string `yaml:"format" mapstructure:"format"`
	// Output is stderr or stdout. Transcript previews go to stdout, so
	// logs default to stderr.
	Output  string `yaml:"output" mapstructure:"output"`
	NoColor bool   `yaml:"no_color" mapstructure:"no_color"`
	Caller  bool   `yaml:"caller" mapstructure:"caller"`
}

// ApplyDefaults gives unset fields info, console and stderr.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = FormatConsole
	}
	if c.Output == "" {
		c.Output = "stderr"
	}
}

// Validate rejects unknown levels, formats and outputs.
func (c *Config) Validate() error {
	checks := []struct {
		field, value string
		allowed      []string
	}{
		{"level", c.Level, []string{"trace", "debug", "info", "warn", "error"}},
		{"format", c.Format, []string{FormatConsole, FormatJSON}},
		{"output", c.Output, []string{"stderr", "stdout"}},
	}
	for _, chk := range checks {
		if !slices.Contains(chk.allowed, chk.value) {
			return fmt.Errorf("logging.%s must be one of %v (got: %q)", chk.field, chk.allowed, chk.value)
		}
	}
	return nil
}
