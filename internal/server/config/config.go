// Package config handles configuration for the server component,
// including defaults, environment overrides, JSON overlay, and
// command-line flags.
package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the ChatMate server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the HTTP API.
//   - DatabaseDSN: SQLite file path, or a postgres:// DSN (pgx).
//   - APIKey: Groq API key for the completion gateway.
//   - BaseEndpoint: OpenAI-compatible completion endpoint.
//   - SecretKey: HMAC secret for signing remember-me tokens (HS256).
//     Do not use test defaults in prod.
//   - SessionMaxAge: idle lifetime of an in-memory session.
//   - RememberTokenValidityDuration: remember-me token lifetime.
//   - LogLevel / LogFile: log verbosity and optional log file path.
type Config struct {
	EndpointAddrHTTP              string
	DatabaseDSN                   string
	APIKey                        string
	BaseEndpoint                  string
	SecretKey                     string
	SessionMaxAge                 time.Duration
	RememberTokenValidityDuration time.Duration
	LogLevel                      string
	LogFile                       string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.DatabaseDSN = "users.db"
	c.BaseEndpoint = "https://api.groq.com/openai/v1"
	c.SecretKey = "secretKey"
	c.SessionMaxAge = 24 * time.Hour
	c.RememberTokenValidityDuration = 30 * 24 * time.Hour
	c.LogLevel = "info"
}

// parseEnv overlays values from the environment. Only the API key is
// read from the environment so the secret stays out of shell history
// and config files.
func parseEnv(c *Config) {
	if v, ok := os.LookupEnv("GROQ_API_KEY"); ok {
		c.APIKey = v
	}
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment, an optional JSON file, and finally command-line
// flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
