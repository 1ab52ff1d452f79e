package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/chatmate/internal/flagx"
	"github.com/dmitrijs2005/chatmate/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// It uses timex.Duration for interval fields, which allows parsing both
// string values such as "24h" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON
// configuration files. After unmarshalling, its fields are copied into
// the runtime Config struct which uses time.Duration.
type JsonConfig struct {
	EndpointAddrHTTP              string         `json:"endpoint_addr_http"`
	DatabaseDSN                   string         `json:"database_dsn"`
	APIKey                        string         `json:"api_key"`
	BaseEndpoint                  string         `json:"base_endpoint"`
	SecretKey                     string         `json:"secret_key"`
	SessionMaxAge                 timex.Duration `json:"session_max_age"`
	RememberTokenValidityDuration timex.Duration `json:"remember_token_validity_duration"`
	LogLevel                      string         `json:"log_level"`
	LogFile                       string         `json:"log_file"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path comes from the -c or -config command-line flags; when
// neither is set, no JSON file is loaded. If the file cannot be read or
// contains invalid JSON, the function panics.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.EndpointAddrHTTP = c.EndpointAddrHTTP
	config.DatabaseDSN = c.DatabaseDSN
	config.APIKey = c.APIKey
	config.BaseEndpoint = c.BaseEndpoint
	config.SecretKey = c.SecretKey
	config.SessionMaxAge = time.Duration(c.SessionMaxAge.Duration)
	config.RememberTokenValidityDuration = time.Duration(c.RememberTokenValidityDuration.Duration)
	config.LogLevel = c.LogLevel
	config.LogFile = c.LogFile
}
