package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/botofarm/internal/flagx"
	"github.com/dmitrijs2005/botofarm/internal/timex"
)

// JsonConfig is the on-disk shape of the server config file. Durations use
// timex.Duration so both "30m" and integer nanoseconds are accepted.
// Pointer and zero values mean "not set" and leave the current value alone.
type JsonConfig struct {
	HTTPAddr                    string          `json:"http_addr"`
	DatabaseDSN                 string          `json:"database_dsn"`
	SecretKey                   string          `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	APIPrefix                   *string         `json:"api_prefix"`
	LogLevel                    string          `json:"log_level"`
	DBMaxOpenConns              int             `json:"db_max_open_conns"`
	ShutdownTimeout             *timex.Duration `json:"shutdown_timeout"`
}

// parseJson overlays config with the JSON file named by -c/-config (or
// $CONFIG). Nothing happens when no file is given. Unreadable or invalid
// files panic, as a misconfigured server must not start.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
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

	if c.HTTPAddr != "" {
		config.HTTPAddr = c.HTTPAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.APIPrefix != nil {
		config.APIPrefix = *c.APIPrefix
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
	if c.DBMaxOpenConns > 0 {
		config.DBMaxOpenConns = c.DBMaxOpenConns
	}
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
}
