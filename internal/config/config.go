package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Default settings used when the environment leaves them unset
const (
	DefaultDBType     = "sqlite"
	DefaultDBPath     = "data/vocabkeep.db"
	DefaultDigestHour = 20
)

// Config holds runtime configuration read from the environment
type Config struct {
	// DBType selects the backend: "sqlite" or "postgres"
	DBType string
	// DBPath is the sqlite file path (":memory:" for tests)
	DBPath string
	// DatabaseURL is the postgres connection string
	DatabaseURL string
	// DigestHour is the AEST hour (0-23) for the daily debt digest
	DigestHour int
}

// Load reads configuration from .env (if present) and the environment
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		DBType:      envString("DB_TYPE", DefaultDBType),
		DBPath:      envString("DB_PATH", DefaultDBPath),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DigestHour:  envInt("DIGEST_HOUR", DefaultDigestHour, 0, 23),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback, min, max int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < min || n > max {
		log.Printf("Ignoring invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
