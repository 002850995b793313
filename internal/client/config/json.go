package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/botofarm/internal/flagx"
	"github.com/dmitrijs2005/botofarm/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify the timeout either as
// a string like "5s" or as integer nanoseconds.
type JsonConfig struct {
	ServerURL      string          `json:"server_url"`
	APIPrefix      *string         `json:"api_prefix"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
}

// parseJson overlays Config with values loaded from a JSON file named by
// -c/-config (or $CONFIG). Fields absent from the file keep their current
// values. Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	// Resolve file path from flags.
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.APIPrefix != nil {
		cfg.APIPrefix = *jc.APIPrefix
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}
