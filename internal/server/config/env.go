package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays config with environment variables:
//
//	HTTP_ADDR, DATABASE_URL, SECRET_KEY, ACCESS_TOKEN_EXPIRE_MINUTES,
//	API_PREFIX, LOG_LEVEL, DB_MAX_OPEN_CONNS, SHUTDOWN_TIMEOUT
//
// Unparseable numeric values are ignored.
func parseEnv(config *Config) {
	config.HTTPAddr = getEnv("HTTP_ADDR", config.HTTPAddr)
	config.DatabaseDSN = getEnv("DATABASE_URL", config.DatabaseDSN)
	config.SecretKey = getEnv("SECRET_KEY", config.SecretKey)
	config.AccessTokenValidityDuration = time.Duration(getInt("ACCESS_TOKEN_EXPIRE_MINUTES", int(config.AccessTokenValidityDuration.Minutes()))) * time.Minute
	config.APIPrefix = getEnv("API_PREFIX", config.APIPrefix)
	config.LogLevel = getEnv("LOG_LEVEL", config.LogLevel)
	config.DBMaxOpenConns = getInt("DB_MAX_OPEN_CONNS", config.DBMaxOpenConns)
	config.ShutdownTimeout = getDuration("SHUTDOWN_TIMEOUT", config.ShutdownTimeout)
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return def
}
