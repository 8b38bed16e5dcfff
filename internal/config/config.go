package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Load reads the optional .env file. Missing files are fine; real
// deployments set environment variables directly.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found – relying on env vars")
	}
}

// GetEnv reads an environment variable or returns the provided default.
func GetEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}
