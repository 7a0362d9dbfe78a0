package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, sourced from the environment.
type Config struct {
	Port                         string
	ProjectID                    string
	StorageBucket                string
	GoogleApplicationCredentials string
	AllowedOrigins               []string
	MinInterests                 int
}

// Load reads configuration from the environment. A .env file is applied first
// when present; real environment variables win over it.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port:                         getEnv("PORT", "8080"),
		ProjectID:                    os.Getenv("FIREBASE_PROJECT_ID"),
		StorageBucket:                os.Getenv("FIREBASE_STORAGE_BUCKET"),
		GoogleApplicationCredentials: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		MinInterests:                 getEnvInt("ONBOARDING_MIN_INTERESTS", 3),
	}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
