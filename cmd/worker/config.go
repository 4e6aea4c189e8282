package main

import (
	"log"
	"os"
)

// Config holds the worker's own configuration. Store and database
// settings come through the shared container.
type Config struct {
	RedisAddr string
}

func loadConfig() *Config {
	// The reminder sweep reads and writes sessions the API created, so
	// both processes must see the same database.
	if driver := getEnv("STORE_DRIVER", "memory"); driver != "postgres" {
		log.Fatalf("[Config] Worker requires STORE_DRIVER=postgres, got %q", driver)
	}

	cfg := &Config{
		RedisAddr: getEnv("REDIS_HOST", "localhost:6379"),
	}

	log.Printf("[Config] Redis: %s", cfg.RedisAddr)
	return cfg
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
