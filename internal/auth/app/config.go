package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer string // Optional: issuer claim for tokens (default: keyfold-auth)
	Secret string // Optional: HS256 signing secret, min 32 bytes (default: random ephemeral)

	TokenTTL     time.Duration // Optional: bearer token lifetime (default: 24h)
	DatabaseFile string        // Optional: path to SQLite database file (default: ./keyfold.db)
	PepperFile   string        // Optional: path to file containing pepper for password hashing (default: ./pepper)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		Issuer:              getEnvOrDefault("KEYFOLD_ISSUER", "keyfold-auth"),
		Secret:              os.Getenv("KEYFOLD_SECRET"), // Optional: ephemeral random secret when unset
		TokenTTL:            getEnvDurationOrDefault("KEYFOLD_TOKEN_TTL", 24*time.Hour),
		DatabaseFile:        getEnvOrDefault("KEYFOLD_DATABASE_FILE", "keyfold.db"),
		PepperFile:          getEnvOrDefault("KEYFOLD_PEPPER_FILE", "pepper"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are read as hours.
	if hours, err := strconv.Atoi(value); err == nil {
		return time.Duration(hours) * time.Hour
	}

	return defaultValue
}
