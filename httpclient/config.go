package httpclient

import (
	"fmt"
	"net/url"
	"time"
)

// Config configures a Client bound to one remote service.
type Config struct {
	// BaseURL is the service root that request paths are resolved against.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	// Timeout bounds the whole exchange including the response body.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// UserAgent is sent on every request when set.
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`
}

// ApplyDefaults gives an unset timeout the 30 second default.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
}

// Validate rejects a base URL without scheme and host.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	if c.BaseURL == "" {
		return nil
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("httpclient: base_url %q is not an absolute URL", c.BaseURL)
	}
	return nil
}
