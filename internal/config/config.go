package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// App holds the runtime configuration loaded from environment variables.
type App struct {
	Env             string
	Host            string
	Port            string
	DBPath          string
	JWTSigningKey   string
	JWTIssuer       string
	TokenTTL        time.Duration
	BcryptCost      int
	SeedSampleData  bool
	CORSOrigins     []string
	RedisAddr       string
	RateLimitPerMin int
	FrontendDir     string
}

// Production reports whether the app runs with production settings.
func (a App) Production() bool {
	return a.Env == "production" || a.Env == "prod"
}

// Addr is the listen address for the HTTP server.
func (a App) Addr() string {
	return a.Host + ":" + a.Port
}

// Load returns application config populated from environment variables with sensible defaults.
// A .env file in the working directory, when present, is applied first without overriding
// variables that are already set.
func Load() App {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: .env not loaded: %v", err)
	}
	return App{
		Env:             getEnv("APP_ENV", "dev"),
		Host:            getEnv("API_HOST", "0.0.0.0"),
		Port:            getEnv("API_PORT", "5000"),
		DBPath:          getEnv("DB_PATH", "./academia_ai.db"),
		JWTSigningKey:   getEnv("JWT_SECRET_KEY", "academia_jwt_secret_2024"),
		JWTIssuer:       getEnv("JWT_ISSUER", "academia-ai"),
		TokenTTL:        durationEnv("TOKEN_TTL", 24*time.Hour),
		BcryptCost:      intEnv("BCRYPT_COST", 10),
		SeedSampleData:  boolEnv("SEED_SAMPLE_DATA", true),
		CORSOrigins:     listEnv("CORS_ORIGINS", defaultOrigins),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RateLimitPerMin: intEnv("RATE_LIMIT_PER_MIN", 120),
		FrontendDir:     getEnv("FRONTEND_DIR", ""),
	}
}

var defaultOrigins = []string{
	"http://localhost:8000",
	"http://127.0.0.1:8000",
	"http://localhost:3000",
	"http://127.0.0.1:3000",
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using fallback %s", key, err, fallback)
			return fallback
		}
		return d
	}
	return fallback
}

func boolEnv(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if val == "1" || val == "true" || val == "TRUE" {
			return true
		}
		if val == "0" || val == "false" || val == "FALSE" {
			return false
		}
		log.Printf("invalid bool for %s, using fallback %v", key, fallback)
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var parsed int
		if _, err := fmt.Sscanf(val, "%d", &parsed); err == nil {
			return parsed
		}
		log.Printf("invalid int for %s, using fallback %d", key, fallback)
	}
	return fallback
}

func listEnv(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
