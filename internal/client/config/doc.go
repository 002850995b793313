// Package config loads runtime configuration for the botofarm operator CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via -c/-config or $CONFIG.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the server, e.g. http://127.0.0.1:8000
//	-p string   API prefix the server was started with
//	-t int      request timeout (seconds)
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:8000",
//	  "api_prefix": "/api/v1",
//	  "request_timeout": "5s"
//	}
package config
