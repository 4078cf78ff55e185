package config

import (
	"os"
	"strconv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort    int
	DatabasePath  string
	JWTSecret     string
	AllowedOrigin string
}

// DefaultJWTSecret is the fallback signing secret when JWT_SECRET is unset.
// Only suitable for local development; main logs a warning when it is in use.
const DefaultJWTSecret = "Token"

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "3000")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:    port,
		DatabasePath:  getEnv("DATABASE_PATH", "./taskManagement.db"),
		JWTSecret:     getEnv("JWT_SECRET", DefaultJWTSecret),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
