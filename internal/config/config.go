// README: Config loader with env defaults for HTTP, LLM, DB, Redis, and rate-limit settings.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type LLMConfig struct {
	Provider    string // "kimi" or "gemini"
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
}

type RateLimitConfig struct {
	Requests      int
	WindowSeconds int
}

type Config struct {
	HTTP struct {
		Addr           string
		AllowedOrigins []string
	}
	Debug bool
	LLM   LLMConfig
	DB    struct {
		DSN string
	}
	Redis struct {
		Addr string
	}
	Maps struct {
		APIKey string
	}
	RateLimit RateLimitConfig
}

func Load() (Config, error) {
	// Missing .env is fine; real env vars always win.
	_ = godotenv.Load()

	var cfg Config
	cfg.HTTP.Addr = envOrDefault("TRIPGEN_HTTP_ADDR", ":8080")
	cfg.HTTP.AllowedOrigins = splitCSV(envOrDefault("TRIPGEN_ALLOWED_ORIGINS", "*"))
	cfg.Debug = envOrDefaultBool("TRIPGEN_DEBUG", false)

	cfg.LLM.Provider = envOrDefault("TRIPGEN_LLM_PROVIDER", "kimi")
	cfg.LLM.APIKey = envOrError("LLM_API_KEY")
	cfg.LLM.BaseURL = os.Getenv("TRIPGEN_LLM_BASE_URL")
	cfg.LLM.Model = os.Getenv("TRIPGEN_LLM_MODEL")
	cfg.LLM.Temperature = envOrDefaultFloat("TRIPGEN_LLM_TEMPERATURE", 0.7)
	cfg.LLM.MaxTokens = envOrDefaultInt("TRIPGEN_LLM_MAX_TOKENS", 0)

	// DB, Redis, and Maps are optional collaborators: empty values disable
	// the quota store, the rate limiter, and geocoding respectively.
	cfg.DB.DSN = os.Getenv("TRIPGEN_DB_DSN")
	cfg.Redis.Addr = os.Getenv("TRIPGEN_REDIS_ADDR")
	cfg.Maps.APIKey = os.Getenv("TRIPGEN_MAPS_API_KEY")

	cfg.RateLimit.Requests = envOrDefaultInt("TRIPGEN_RATE_LIMIT", 10)
	cfg.RateLimit.WindowSeconds = envOrDefaultInt("TRIPGEN_RATE_WINDOW", 60)
	return cfg, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrError(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	panic("environment variable " + key + " is required")
}

func envOrDefaultBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		v = strings.ToLower(v)
		return v == "1" || v == "true" || v == "yes"
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}
