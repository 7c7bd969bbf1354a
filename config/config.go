// Package config provides configuration for the chat relay server.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the server configuration.
type Config struct {
	// Server settings
	HTTPPort  int
	StaticDir string

	// Database
	DatabasePath string

	// Completion service
	GeminiAPIKey string
	GeminiModel  string
	LLMTimeout   time.Duration

	// Knowledge base
	FAQsSource string
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		HTTPPort:     getEnvInt("HTTP_PORT", 8080),
		StaticDir:    getEnv("STATIC_DIR", "static"),
		DatabasePath: getEnv("DATABASE_PATH", "support.db"),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		LLMTimeout:   time.Duration(getEnvInt("LLM_TIMEOUT_MS", 30000)) * time.Millisecond,
		FAQsSource:   getEnv("FAQS_SOURCE", "data/faqs.json"),
	}
	return cfg
}

// DatabaseDSN builds the sqlite DSN for the configured database path.
func (c *Config) DatabaseDSN() string {
	if c.DatabasePath == ":memory:" {
		return ":memory:"
	}
	return "file:" + c.DatabasePath + "?cache=shared&mode=rwc"
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
