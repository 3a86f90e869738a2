// Package config loads environment-based defaults for the photomark tools.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds tool-wide defaults that are not per-invocation flags.
type Config struct {
	// Workers bounds the export worker pool; 0 means one per CPU.
	Workers int
	// JPEGQuality is the default encoder quality for JPEG output.
	JPEGQuality int
	// Verbose enables debug-level logging.
	Verbose bool
}

// Load reads the optional .env file and the PHOTOMARK_* variables.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Workers:     getEnvAsInt("PHOTOMARK_WORKERS", 0),
		JPEGQuality: getEnvAsInt("PHOTOMARK_JPEG_QUALITY", 95),
		Verbose:     getEnvAsBool("PHOTOMARK_VERBOSE", false),
	}
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultVal
}
