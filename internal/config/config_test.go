package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "API_PORT", "DB_PATH", "TOKEN_TTL", "CORS_ORIGINS", "REDIS_ADDR", "SEED_SAMPLE_DATA"} {
		t.Setenv(key, "")
	}
	cfg := Load()
	if cfg.Port != "5000" {
		t.Fatalf("port = %q, want 5000", cfg.Port)
	}
	if cfg.DBPath != "./academia_ai.db" {
		t.Fatalf("db path = %q", cfg.DBPath)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("token ttl = %s, want 24h", cfg.TokenTTL)
	}
	if !cfg.SeedSampleData {
		t.Fatal("seeding should default to on")
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, defaultOrigins) {
		t.Fatalf("origins = %v", cfg.CORSOrigins)
	}
	if cfg.Production() {
		t.Fatal("dev env reported as production")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("API_HOST", "127.0.0.1")
	t.Setenv("API_PORT", "9000")
	t.Setenv("TOKEN_TTL", "90m")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("SEED_SAMPLE_DATA", "false")
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("RATE_LIMIT_PER_MIN", "nope")

	cfg := Load()
	if !cfg.Production() {
		t.Fatal("prod env not detected")
	}
	if got := cfg.Addr(); got != "127.0.0.1:9000" {
		t.Fatalf("addr = %q", got)
	}
	if cfg.TokenTTL != 90*time.Minute {
		t.Fatalf("token ttl = %s", cfg.TokenTTL)
	}
	if cfg.BcryptCost != 4 {
		t.Fatalf("bcrypt cost = %d", cfg.BcryptCost)
	}
	if cfg.SeedSampleData {
		t.Fatal("seeding should be off")
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.CORSOrigins, want) {
		t.Fatalf("origins = %v, want %v", cfg.CORSOrigins, want)
	}
	if cfg.RateLimitPerMin != 120 {
		t.Fatalf("invalid int should fall back, got %d", cfg.RateLimitPerMin)
	}
}
