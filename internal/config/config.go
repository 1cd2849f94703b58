// Package config loads front-office configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port      string
	Env       string
	LogLevel  string
	LogFormat string

	// GatewayBaseURL is the CabinetX API gateway every downstream call goes
	// through (clinics, patients, appointments, chatbot).
	GatewayBaseURL string
	GatewayTimeout time.Duration

	// Wizard session handling.
	SessionTTL time.Duration

	// Rate limiting for the public booking endpoints.
	RateLimitPerSecond float64
	RateLimitBurst     int

	CORSAllowedOrigins []string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8090"),
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          strings.ToLower(getEnv("LOG_FORMAT", "json")),
		GatewayBaseURL:     strings.TrimRight(getEnv("GATEWAY_BASE_URL", "http://localhost:8080"), "/"),
		GatewayTimeout:     getEnvAsDuration("GATEWAY_TIMEOUT", 15*time.Second),
		SessionTTL:         getEnvAsDuration("WIZARD_SESSION_TTL", 30*time.Minute),
		RateLimitPerSecond: getEnvAsFloat("RATE_LIMIT_PER_SECOND", 5),
		RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 20),
		CORSAllowedOrigins: splitAndTrim(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisDB:            getEnvAsInt("REDIS_DB", 0),
	}
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func splitAndTrim(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
