// Package config reads the server configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// DBDriver is "sqlite" or "postgres".
	DBDriver string
	DBDSN    string

	JWTSecret   string
	JWTTokenTTL time.Duration

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	AppleClientID      string

	// MobileDeepLink is where OAuth callbacks send the client back to.
	MobileDeepLink string

	StorageEndpoint  string
	StorageRegion    string
	StorageAccessKey string
	StorageSecretKey string
	StorageBucket    string

	VisionBaseURL string
	VisionAPIKey  string
	VisionModel   string

	AdminUsername     string
	AdminPasswordHash string

	CORSOrigins string
}

// Load reads .env when present, then the process environment. Missing
// optional values fall back to development defaults; features like
// OAuth, storage and vision degrade to disabled when their keys are
// empty.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port: getEnv("PORT", "8080"),

		DBDriver: getEnv("DB_DRIVER", "sqlite"),
		DBDSN:    getEnv("DB_DSN", "data/caloriesapp.db"),

		JWTSecret:   getEnv("JWT_SECRET", "change_me_in_production"),
		JWTTokenTTL: getDurationEnv("JWT_TOKEN_TTL", 30*24*time.Hour),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		AppleClientID:      os.Getenv("APPLE_CLIENT_ID"),

		MobileDeepLink: getEnv("MOBILE_DEEP_LINK", "caloriesapp://auth"),

		StorageEndpoint:  os.Getenv("STORAGE_ENDPOINT"),
		StorageRegion:    getEnv("STORAGE_REGION", "us-east-1"),
		StorageAccessKey: os.Getenv("STORAGE_ACCESS_KEY"),
		StorageSecretKey: os.Getenv("STORAGE_SECRET_KEY"),
		StorageBucket:    getEnv("STORAGE_BUCKET", "caloriesapp"),

		VisionBaseURL: os.Getenv("VISION_BASE_URL"),
		VisionAPIKey:  os.Getenv("VISION_API_KEY"),
		VisionModel:   os.Getenv("VISION_MODEL"),

		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),

		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	if parsed, err := time.ParseDuration(value); err == nil {
		return parsed
	}
	if hours, err := strconv.Atoi(value); err == nil {
		return time.Duration(hours) * time.Hour
	}
	return fallback
}
