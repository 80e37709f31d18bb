// Package config loads the server configuration from the environment, with
// an optional .env file read first.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/matthewbaird/silic/internal/kv"
	"github.com/matthewbaird/silic/internal/mock"
	"github.com/matthewbaird/silic/internal/types"
)

// Config is everything cmd/server needs.
type Config struct {
	Port int

	// DataSource is a file path or http(s) URL of the SAP export. Empty
	// means generated data.
	DataSource string
	SeedCount  int
	MockSeed   uint64
	Policy     types.LandlordPolicy

	KV kv.Config
	// DatabaseURL is the SQLite DSN of the activity history. Empty keeps
	// history in memory.
	DatabaseURL string

	EditalSchemaPath string

	SessionIdle   time.Duration
	SessionMaxAge time.Duration
}

// Load reads envPath (".env" when empty) if it exists, then the
// environment. A missing file is not an error.
func Load(envPath string) (Config, error) {
	if envPath == "" {
		envPath = ".env"
	}
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading %s: %w", envPath, err)
	}

	cfg := Config{
		Port:             getEnvAsInt("PORT", 8080),
		DataSource:       getEnv("DATA_URL", getEnv("DATA_PATH", "")),
		SeedCount:        getEnvAsInt("SEED_COUNT", mock.DefaultCount),
		MockSeed:         uint64(getEnvAsInt("MOCK_SEED", 1)),
		Policy:           types.LandlordPolicy(getEnv("LANDLORD_POLICY", string(types.PolicyStrict))),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		EditalSchemaPath: getEnv("EDITAL_SCHEMA_PATH", ""),
		SessionIdle:      getEnvAsDuration("SESSION_IDLE_TIMEOUT", 30*time.Minute),
		SessionMaxAge:    getEnvAsDuration("SESSION_MAX_AGE", 24*time.Hour),
		KV: kv.Config{
			Driver:        getEnv("KV_DRIVER", kv.DriverMemory),
			DSN:           getEnv("KV_DSN", getEnv("DATABASE_URL", "")),
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvAsInt("REDIS_DB", 0),
		},
	}
	if !cfg.Policy.Valid() {
		return Config{}, fmt.Errorf("LANDLORD_POLICY %q: want strict, lenient or none", cfg.Policy)
	}
	if cfg.SeedCount < 1 {
		return Config{}, fmt.Errorf("SEED_COUNT must be positive, got %d", cfg.SeedCount)
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return defaultValue
}

// getEnvAsInt logs and falls back to the default on a malformed value.
func getEnvAsInt(key string, defaultValue int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: %s=%q is not an int, using %d", key, v, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("config: %s=%q is not a duration, using %s", key, v, defaultValue)
		return defaultValue
	}
	return d
}
