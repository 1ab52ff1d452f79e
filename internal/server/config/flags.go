package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/chatmate/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   database DSN (SQLite path or postgres:// URL)
//	-k string   Groq API key
//	-e string   completion base endpoint
//	-s string   remember-me token HMAC secret key
//	-m int      session max age, minutes
//	-r int      remember-me token validity, minutes
//	-l string   log level (debug, info, warn, error)
//	-f string   log file path ("" logs to stderr only)
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
//   - Duration flags are accepted as integers in minutes and then converted
//     to time.Duration values.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-k", "-e", "-s", "-m", "-r", "-l", "-f"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.APIKey, "k", config.APIKey, "Groq API key")
	fs.StringVar(&config.BaseEndpoint, "e", config.BaseEndpoint, "completion base endpoint")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	sessionMaxAge := fs.Int("m", int(config.SessionMaxAge.Minutes()), "session_max_age (in minutes)")
	rememberTokenValidityDuration := fs.Int("r", int(config.RememberTokenValidityDuration.Minutes()), "remember_token_validity_duration (in minutes)")

	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.LogFile, "f", config.LogFile, "log file path")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionMaxAge = time.Duration(*sessionMaxAge) * time.Minute
	config.RememberTokenValidityDuration = time.Duration(*rememberTokenValidityDuration) * time.Minute
}
