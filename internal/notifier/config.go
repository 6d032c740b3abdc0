package notifier

import (
	"fmt"
	"os"
	"time"
)

// Providers accepted by Config.Provider.
const (
	ProviderSES = "ses"
	ProviderLog = "log"
)

const (
	defaultConfirmationTemplate = "InquiryConfirmationTemplate"
	defaultResponseTemplate     = "InquiryResponseTemplate"
	defaultRegion               = "us-east-1"
	defaultTimeout              = "5s"
)

// Config selects the email backend and its templates. An empty Sender is
// valid configuration: it surfaces as an Unconfigured error at send time.
type Config struct {
	Provider             string `toml:"provider"`
	Sender               string `toml:"sender"`
	Region               string `toml:"region"`
	ConfirmationTemplate string `toml:"confirmation_template"`
	ResponseTemplate     string `toml:"response_template"`
	Timeout              string `toml:"timeout"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Provider             string
	Sender               string
	Region               string
	ConfirmationTemplate string
	ResponseTemplate     string
	Timeout              string
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Template returns the template name for kind.
func (c *Config) Template(kind Kind) (string, error) {
	switch kind {
	case KindConfirmation:
		return c.ConfirmationTemplate, nil
	case KindResponse:
		return c.ResponseTemplate, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Provider != "" {
		c.Provider = overlay.Provider
	}
	if overlay.Sender != "" {
		c.Sender = overlay.Sender
	}
	if overlay.Region != "" {
		c.Region = overlay.Region
	}
	if overlay.ConfirmationTemplate != "" {
		c.ConfirmationTemplate = overlay.ConfirmationTemplate
	}
	if overlay.ResponseTemplate != "" {
		c.ResponseTemplate = overlay.ResponseTemplate
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}

func (c *Config) loadDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderSES
	}
	if c.Region == "" {
		c.Region = defaultRegion
	}
	if c.ConfirmationTemplate == "" {
		c.ConfirmationTemplate = defaultConfirmationTemplate
	}
	if c.ResponseTemplate == "" {
		c.ResponseTemplate = defaultResponseTemplate
	}
	if c.Timeout == "" {
		c.Timeout = defaultTimeout
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Provider != "" {
		if v := os.Getenv(env.Provider); v != "" {
			c.Provider = v
		}
	}
	if env.Sender != "" {
		if v := os.Getenv(env.Sender); v != "" {
			c.Sender = v
		}
	}
	if env.Region != "" {
		if v := os.Getenv(env.Region); v != "" {
			c.Region = v
		}
	}
	if env.ConfirmationTemplate != "" {
		if v := os.Getenv(env.ConfirmationTemplate); v != "" {
			c.ConfirmationTemplate = v
		}
	}
	if env.ResponseTemplate != "" {
		if v := os.Getenv(env.ResponseTemplate); v != "" {
			c.ResponseTemplate = v
		}
	}
	if env.Timeout != "" {
		if v := os.Getenv(env.Timeout); v != "" {
			c.Timeout = v
		}
	}
}

func (c *Config) validate() error {
	switch c.Provider {
	case ProviderSES, ProviderLog:
	default:
		return fmt.Errorf("unknown notifier provider %q", c.Provider)
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}
