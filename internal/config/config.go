// Package config provides configuration loading and validation.
// It supports an optional TOML configuration file with environment variable
// expansion, default values, and validation.
//
// Configuration structure:
//   - [auth]: Twitter API credentials
//   - [run]: deletion run defaults
//   - [logging]: logging level, format, and output
//
// Credential values can reference environment variables using ${VAR} or
// ${VAR:default} syntax, e.g. consumer_key = "${TWITTER_CONSUMER_KEY}".
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the main application configuration.
type Config struct {
	Auth    AuthConfig    `toml:"auth"`
	Run     RunConfig     `toml:"run"`
	Logging LoggingConfig `toml:"logging"`
}

// AuthConfig holds the OAuth1 key material.
type AuthConfig struct {
	ConsumerKey       string `toml:"consumer_key"`
	ConsumerSecret    string `toml:"consumer_secret"`
	AccessToken       string `toml:"access_token"`
	AccessTokenSecret string `toml:"access_token_secret"`
}

// RunConfig holds deletion run defaults.
type RunConfig struct {
	MaxTasks int `toml:"max_tasks"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	Output string `toml:"output"`
}

// Load reads the configuration from a TOML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)
	expandEnvVars(&cfg)

	return &cfg, nil
}

// LoadOptional loads the file if it exists, otherwise returns defaults.
func LoadOptional(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			cfg := &Config{}
			applyDefaults(cfg)
			fillFromEnv(cfg)
			return cfg, nil
		}
		return nil, err
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	fillFromEnv(cfg)
	return cfg, nil
}

func applyDefaults(c *Config) {
	if c.Run.MaxTasks == 0 {
		c.Run.MaxTasks = 10
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stderr"
	}
}

// Validate checks the configuration and returns every problem found.
func (c *Config) Validate() []error {
	var errors []error

	if c.Run.MaxTasks < 1 {
		errors = append(errors, fmt.Errorf("run.max_tasks must be at least 1, got %d", c.Run.MaxTasks))
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errors = append(errors, fmt.Errorf("invalid logging.level: %s (expected: debug, info, warn, error)", c.Logging.Level))
	}

	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errors = append(errors, fmt.Errorf("invalid logging.format: %s (expected: json, text)", c.Logging.Format))
	}

	if c.Logging.Output == "" {
		errors = append(errors, fmt.Errorf("logging.output is required"))
	}

	// An access token without its secret (or vice versa) is always a
	// configuration mistake.
	if (c.Auth.AccessToken == "") != (c.Auth.AccessTokenSecret == "") {
		errors = append(errors, fmt.Errorf("auth.access_token and auth.access_token_secret must be set together"))
	}

	return errors
}

// String renders the configuration with secrets masked.
func (c *Config) String() string {
	return fmt.Sprintf("auth{consumer_key: %s, access_token: %s} run{max_tasks: %d} logging{%s/%s/%s}",
		maskSecret(c.Auth.ConsumerKey),
		maskSecret(c.Auth.AccessToken),
		c.Run.MaxTasks,
		c.Logging.Level, c.Logging.Format, c.Logging.Output)
}
