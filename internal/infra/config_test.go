package infra

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("INFERENCE_BASE_URL", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.InferenceBaseURL != "https://api.fireworks.ai/inference/v1" {
		t.Fatalf("InferenceBaseURL = %q", cfg.InferenceBaseURL)
	}
	if cfg.VisionKeyEnv != "FIREWORKS_API_KEY" || cfg.DobbyKeyEnv != "DOBBY_API_KEY" {
		t.Fatalf("key env names = %q / %q", cfg.VisionKeyEnv, cfg.DobbyKeyEnv)
	}
	if cfg.MaxUploadMB != 8 {
		t.Fatalf("MaxUploadMB = %d, want 8", cfg.MaxUploadMB)
	}
	if cfg.HTTPReadTimeout != 15*time.Second {
		t.Fatalf("HTTPReadTimeout = %v", cfg.HTTPReadTimeout)
	}
	if len(cfg.CORSOrigins) != 0 {
		t.Fatalf("CORSOrigins = %#v, want empty", cfg.CORSOrigins)
	}
	if cfg.DatabaseURL != "" {
		t.Fatalf("DatabaseURL = %q, want empty", cfg.DatabaseURL)
	}
}

func TestLoadConfigHonorsOverrides(t *testing.T) {
	t.Setenv("PORT", "1919")
	t.Setenv("CAPTION_MODEL", "accounts/example/models/test-model")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com ,")
	t.Setenv("HTTP_WRITE_TIMEOUT_SECONDS", "45")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Port != "1919" {
		t.Fatalf("Port = %q", cfg.Port)
	}
	if cfg.CaptionModel != "accounts/example/models/test-model" {
		t.Fatalf("CaptionModel = %q", cfg.CaptionModel)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[0] != "https://a.example.com" || cfg.CORSOrigins[1] != "https://b.example.com" {
		t.Fatalf("CORSOrigins = %#v", cfg.CORSOrigins)
	}
	if cfg.HTTPWriteTimeout != 45*time.Second {
		t.Fatalf("HTTPWriteTimeout = %v", cfg.HTTPWriteTimeout)
	}
}

func TestLoadConfigIgnoresBadInt(t *testing.T) {
	t.Setenv("RATE_LIMIT_PER_MINUTE", "not-a-number")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.RateLimitPerMin != 30 {
		t.Fatalf("RateLimitPerMin = %d, want default 30", cfg.RateLimitPerMin)
	}
}
