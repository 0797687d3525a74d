package infra

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv           string
	Port             string
	DatabaseURL      string
	InferenceBaseURL string
	VisionModel      string
	CaptionModel     string
	VisionKeyEnv     string
	DobbyKeyEnv      string
	MaxUploadMB      int
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	RateLimitPerMin  int
	CORSOrigins      []string
}

// LoadConfig loads configuration from environment variables and applies
// defaults where needed. The two inference credentials are deliberately not
// read here: they are resolved from the environment at call time by the
// credentials store, so a key added or rotated after startup is picked up
// without a restart.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		InferenceBaseURL: getEnv("INFERENCE_BASE_URL", "https://api.fireworks.ai/inference/v1"),
		VisionModel:      getEnv("VISION_MODEL", "accounts/fireworks/models/llama-v3p2-11b-vision-instruct"),
		CaptionModel:     getEnv("CAPTION_MODEL", "accounts/sentientfoundation/models/dobby-unhinged-llama-3-3-70b-new"),
		VisionKeyEnv:     getEnv("VISION_KEY_ENV", "FIREWORKS_API_KEY"),
		DobbyKeyEnv:      getEnv("DOBBY_KEY_ENV", "DOBBY_API_KEY"),
		MaxUploadMB:      getEnvInt("MAX_UPLOAD_MB", 8),
		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 120)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:  getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
		CORSOrigins:      splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
