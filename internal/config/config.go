package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/majikthise911/aes-note-taking-app/internal/classifier"
	"github.com/majikthise911/aes-note-taking-app/pkg/database"
	"github.com/majikthise911/aes-note-taking-app/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvNotesEnv             = "NOTES_ENV"
	EnvNotesShutdownTimeout = "NOTES_SHUTDOWN_TIMEOUT"
	EnvNotesVersion         = "NOTES_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "NOTES_DB_HOST",
	Port:            "NOTES_DB_PORT",
	Name:            "NOTES_DB_NAME",
	User:            "NOTES_DB_USER",
	Password:        "NOTES_DB_PASSWORD",
	SSLMode:         "NOTES_DB_SSL_MODE",
	MaxOpenConns:    "NOTES_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "NOTES_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "NOTES_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "NOTES_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "NOTES_STORAGE_CONTAINER_NAME",
	ConnectionString: "NOTES_STORAGE_CONNECTION_STRING",
	MaxListSize:      "NOTES_STORAGE_MAX_LIST_SIZE",
}

var classifierEnv = &classifier.Env{
	Endpoint:    "NOTES_CLASSIFIER_ENDPOINT",
	APIKey:      "NOTES_CLASSIFIER_API_KEY",
	Model:       "NOTES_CLASSIFIER_MODEL",
	Timeout:     "NOTES_CLASSIFIER_TIMEOUT",
	MaxAttempts: "NOTES_CLASSIFIER_MAX_ATTEMPTS",
	BackoffBase: "NOTES_CLASSIFIER_BACKOFF_BASE",
}

// Config is the root configuration for the note-taking service.
type Config struct {
	Server          ServerConfig      `toml:"server"`
	Database        database.Config   `toml:"database"`
	Storage         storage.Config    `toml:"storage"`
	Classifier      classifier.Config `toml:"classifier"`
	API             APIConfig         `toml:"api"`
	ShutdownTimeout string            `toml:"shutdown_timeout"`
	Version         string            `toml:"version"`
}

// Env returns the NOTES_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvNotesEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.Classifier.Merge(&overlay.Classifier)
	c.API.Merge(&overlay.API)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Classifier.Finalize(classifierEnv); err != nil {
		return fmt.Errorf("classifier: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvNotesShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvNotesVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvNotesEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
