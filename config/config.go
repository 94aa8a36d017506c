package config

import (
	"os"
	"time"
)

type Config struct {
	Environment    string
	RedisURL       string
	CatalogBaseURL string
	CatalogTimeout time.Duration
	EventChannel   string
}

func Load() Config {
	return Config{
		Environment:    getEnv("APP_ENV", "development"),
		RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379"),
		CatalogBaseURL: getEnv("CATALOG_BASE_URL", "https://fakestoreapi.com"),
		CatalogTimeout: getDuration("CATALOG_TIMEOUT", 10*time.Second),
		EventChannel:   getEnv("STORAGE_EVENT_CHANNEL", "storefront:storage:events"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
