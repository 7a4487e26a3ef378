package classifier

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Confidence display bands consumed by read-side views. The pipeline stores
// raw scores; banding is presentation only.
const (
	ConfidenceHighThreshold   = 0.8
	ConfidenceMediumThreshold = 0.6
)

// Config holds classification API parameters.
type Config struct {
	Endpoint     string `toml:"endpoint"`
	APIKey       string `toml:"api_key"`
	Model        string `toml:"model"`
	Timeout      string `toml:"timeout"`
	MaxAttempts  int    `toml:"max_attempts"`
	BackoffBase  string `toml:"backoff_base"`
	CacheMaxSize int    `toml:"cache_max_size"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Endpoint    string
	APIKey      string
	Model       string
	Timeout     string
	MaxAttempts string
	BackoffBase string
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// BackoffBaseDuration returns BackoffBase as a time.Duration.
func (c *Config) BackoffBaseDuration() time.Duration {
	d, _ := time.ParseDuration(c.BackoffBase)
	return d
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
	if overlay.Endpoint != "" {
		c.Endpoint = overlay.Endpoint
	}
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.MaxAttempts != 0 {
		c.MaxAttempts = overlay.MaxAttempts
	}
	if overlay.BackoffBase != "" {
		c.BackoffBase = overlay.BackoffBase
	}
	if overlay.CacheMaxSize != 0 {
		c.CacheMaxSize = overlay.CacheMaxSize
	}
}

func (c *Config) loadDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "https://api.x.ai/v1/chat/completions"
	}
	if c.Model == "" {
		c.Model = "grok-4-fast-reasoning"
	}
	if c.Timeout == "" {
		c.Timeout = "30s"
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = 3
	}
	if c.BackoffBase == "" {
		c.BackoffBase = "1s"
	}
	if c.CacheMaxSize == 0 {
		c.CacheMaxSize = 256
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Endpoint != "" {
		if v := os.Getenv(env.Endpoint); v != "" {
			c.Endpoint = v
		}
	}
	if env.APIKey != "" {
		if v := os.Getenv(env.APIKey); v != "" {
			c.APIKey = v
		}
	}
	if env.Model != "" {
		if v := os.Getenv(env.Model); v != "" {
			c.Model = v
		}
	}
	if env.Timeout != "" {
		if v := os.Getenv(env.Timeout); v != "" {
			c.Timeout = v
		}
	}
	if env.MaxAttempts != "" {
		if v := os.Getenv(env.MaxAttempts); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.MaxAttempts = n
			}
		}
	}
	if env.BackoffBase != "" {
		if v := os.Getenv(env.BackoffBase); v != "" {
			c.BackoffBase = v
		}
	}
}

func (c *Config) validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("api_key required")
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts must be positive")
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.BackoffBase); err != nil {
		return fmt.Errorf("invalid backoff_base: %w", err)
	}
	return nil
}
