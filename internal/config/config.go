package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port               string
	Env                string
	LogLevel           string
	CORSAllowedOrigins []string

	// Upstream completion gateway
	AIGatewayURL    string
	AIGatewayKey    string
	AIModel         string
	UpstreamTimeout time.Duration

	// Capability endpoints (the relay calls these over HTTP)
	CapabilityBaseURL string
	ServiceToken      string

	// Storage
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisTLS      bool
	TranscriptTTL time.Duration

	// External data sources
	FirecrawlBaseURL string
	FirecrawlAPIKey  string
	FreepikBaseURL   string
	FreepikAPIKey    string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),

		AIGatewayURL:    getEnv("AI_GATEWAY_URL", "https://ai.gateway.lovable.dev"),
		AIGatewayKey:    getEnv("AI_GATEWAY_KEY", ""),
		AIModel:         getEnv("AI_MODEL", "google/gemini-2.5-flash"),
		UpstreamTimeout: getEnvAsDuration("UPSTREAM_TIMEOUT", 120*time.Second),

		CapabilityBaseURL: getEnv("CAPABILITY_BASE_URL", ""),
		ServiceToken:      getEnv("SERVICE_TOKEN", ""),

		DatabaseURL:   getEnv("DATABASE_URL", ""),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),
		TranscriptTTL: getEnvAsDuration("TRANSCRIPT_TTL", 72*time.Hour),

		FirecrawlBaseURL: getEnv("FIRECRAWL_BASE_URL", "https://api.firecrawl.dev"),
		FirecrawlAPIKey:  getEnv("FIRECRAWL_API_KEY", ""),
		FreepikBaseURL:   getEnv("FREEPIK_BASE_URL", "https://api.freepik.com"),
		FreepikAPIKey:    getEnv("FREEPIK_API_KEY", ""),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
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

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
