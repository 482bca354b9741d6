package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the dashboard server.
type Config struct {
	APIBaseURL    string
	Port          string
	SessionSecret string
	TemplatesDir  string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Load loads configuration from environment variables.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading it.")
	}

	cfg := &Config{
		APIBaseURL:    os.Getenv("API_URL"),
		Port:          getenv("PORT", "8080"),
		SessionSecret: getenv("SESSION_SECRET", "supersecret-dev"),
		TemplatesDir:  getenv("TEMPLATES_DIR", "web/templates"),
	}

	if cfg.APIBaseURL == "" {
		log.Fatal("API_URL environment variable not set")
	}

	return cfg
}
