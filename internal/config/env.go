package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Env var names checked when the config file leaves a credential empty.
const (
	EnvConsumerKey       = "TWITTER_CONSUMER_KEY"
	EnvConsumerSecret    = "TWITTER_CONSUMER_SECRET"
	EnvAccessToken       = "TWITTER_ACCESS_TOKEN"
	EnvAccessTokenSecret = "TWITTER_ACCESS_TOKEN_SECRET"
)

// LoadDotEnv loads a .env file from the working directory if present.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// expandEnvVars resolves ${VAR} references in credential fields.
func expandEnvVars(c *Config) {
	c.Auth.ConsumerKey = expandEnv(c.Auth.ConsumerKey)
	c.Auth.ConsumerSecret = expandEnv(c.Auth.ConsumerSecret)
	c.Auth.AccessToken = expandEnv(c.Auth.AccessToken)
	c.Auth.AccessTokenSecret = expandEnv(c.Auth.AccessTokenSecret)
}

// fillFromEnv fills empty credential fields from the well-known env vars.
func fillFromEnv(c *Config) {
	if c.Auth.ConsumerKey == "" {
		c.Auth.ConsumerKey = os.Getenv(EnvConsumerKey)
	}
	if c.Auth.ConsumerSecret == "" {
		c.Auth.ConsumerSecret = os.Getenv(EnvConsumerSecret)
	}
	if c.Auth.AccessToken == "" {
		c.Auth.AccessToken = os.Getenv(EnvAccessToken)
	}
	if c.Auth.AccessTokenSecret == "" {
		c.Auth.AccessTokenSecret = os.Getenv(EnvAccessTokenSecret)
	}
}

// expandEnv resolves a ${VAR} or ${VAR:default} reference.
func expandEnv(s string) string {
	if !strings.HasPrefix(s, "${") {
		return s
	}

	end := strings.Index(s, "}")
	if end == -1 {
		return s
	}

	content := s[2:end]
	if parts := strings.SplitN(content, ":", 2); len(parts) == 2 {
		if val := os.Getenv(parts[0]); val != "" {
			return val
		}
		return parts[1]
	}

	return os.Getenv(content)
}
