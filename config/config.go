package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config reads a key from .env / environment.
func Config(key string) string {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Error loading .env file: %v", err)
	}
	return os.Getenv(key)
}

// ConfigOr reads a key and falls back to def when unset.
func ConfigOr(key, def string) string {
	if v := Config(key); v != "" {
		return v
	}
	return def
}
