package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port       string
	APIBaseURL string
	StudioID   string

	APITimeout time.Duration

	RedisAddr string

	CSRFKey    string
	CookieName string

	RateLimitRPS   float64
	RateLimitBurst int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "3000"),
		APIBaseURL:     getEnv("API_BASE_URL", ""),
		StudioID:       getEnv("STUDIO_ID", "6c67acfe-acbf-4c1b-a281-eafa495efc79"),
		APITimeout:     getDuration("API_TIMEOUT", 10*time.Second),
		RedisAddr:      getEnv("REDIS_ADDR", ""),
		CSRFKey:        getEnv("CSRF_KEY", "0123456789abcdef0123456789abcdef"),
		CookieName:     getEnv("SESSION_COOKIE", "studiofront_session"),
		RateLimitRPS:   getFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getInt("RATE_LIMIT_BURST", 10),
	}

	if len(cfg.CSRFKey) != 32 {
		return nil, fmt.Errorf("CSRF_KEY must be exactly 32 bytes, got %d", len(cfg.CSRFKey))
	}

	return cfg, nil
}

// ResolveAPIBase returns the configured backend base URL, or derives one from
// the host serving the frontend on port 8000 for local development.
func (c *Config) ResolveAPIBase(requestHost string) string {
	if c.APIBaseURL != "" {
		return c.APIBaseURL
	}
	host := requestHost
	if host == "" || host == "localhost" {
		host = "127.0.0.1"
	}
	return "http://" + host + ":8000"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
