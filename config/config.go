package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server Settings
	AppPort string
	Host    string

	// Storage Settings
	DatabaseURL    string
	StorageBackend string // "postgres" or "memory"
	ResetDB        bool

	// Session Settings
	RedisURL string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	config := &Config{
		AppPort:        getEnv("PORT", "3000"),
		Host:           getEnv("HOST", "0.0.0.0"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		StorageBackend: getEnv("STORAGE_BACKEND", "postgres"),
		ResetDB:        os.Getenv("DB_RESET") == "true",
		RedisURL:       os.Getenv("REDIS_URL"),
	}

	return config
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
