package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Redis     RedisConfig
	AI        AIConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Prewarm   PrewarmConfig
	App       AppConfig
}

type ServerConfig struct {
	Port        string
	CORSOrigins []string
}

type RedisConfig struct {
	URL string
}

type AIConfig struct {
	APIURL            string
	APIKey            string
	Model             string
	MaxTokens         int
	Temperature       float64
	Timeout           time.Duration
	MaxCallsPerMinute int
}

type CacheConfig struct {
	DailyTTL         time.Duration
	FallbackTTL      time.Duration
	LockTTL          time.Duration
	LockPollInterval time.Duration
	LockPollAttempts int
}

type RateLimitConfig struct {
	Max    int
	Window time.Duration
}

type PrewarmConfig struct {
	Enabled bool
	Count   int
}

type AppConfig struct {
	Environment string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			CORSOrigins: getEnvAsList("CORS_ORIGINS", []string{"http://localhost:3000"}),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", "redis://localhost:6379/0"),
		},
		AI: AIConfig{
			APIURL:            getEnv("AI_API_URL", "https://api.deepseek.com/v1/chat/completions"),
			APIKey:            getEnv("AI_API_KEY", ""),
			Model:             getEnv("AI_MODEL", "deepseek-chat"),
			MaxTokens:         getEnvAsInt("AI_MAX_TOKENS", 2000),
			Temperature:       getEnvAsFloat("AI_TEMPERATURE", 0.8),
			Timeout:           getEnvAsSeconds("AI_TIMEOUT_SECONDS", 30),
			MaxCallsPerMinute: getEnvAsInt("AI_MAX_CALLS_PER_MINUTE", 20),
		},
		Cache: CacheConfig{
			DailyTTL:         getEnvAsSeconds("DAILY_PROJECTS_TTL_SECONDS", 86400*7),
			FallbackTTL:      getEnvAsSeconds("FALLBACK_TTL_SECONDS", 3600),
			LockTTL:          getEnvAsSeconds("GENERATION_LOCK_TTL_SECONDS", 300),
			LockPollInterval: time.Duration(getEnvAsInt("LOCK_POLL_INTERVAL_MS", 500)) * time.Millisecond,
			LockPollAttempts: getEnvAsInt("LOCK_POLL_ATTEMPTS", 10),
		},
		RateLimit: RateLimitConfig{
			Max:    getEnvAsInt("RATE_LIMIT_MAX", 60),
			Window: getEnvAsSeconds("RATE_LIMIT_WINDOW_SECONDS", 60),
		},
		Prewarm: PrewarmConfig{
			Enabled: getEnvAsBool("PREWARM_ENABLED", false),
			Count:   getEnvAsInt("PREWARM_COUNT", 5),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Redis.URL == "" {
		return fmt.Errorf("REDIS_URL is required")
	}

	if c.AI.APIKey == "" {
		return fmt.Errorf("AI_API_KEY is required")
	}

	if c.RateLimit.Max < 1 {
		return fmt.Errorf("RATE_LIMIT_MAX must be positive")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float for %s, using default: %g", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid bool for %s, using default: %t", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsSeconds(key string, defaultValue int) time.Duration {
	return time.Duration(getEnvAsInt(key, defaultValue)) * time.Second
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
