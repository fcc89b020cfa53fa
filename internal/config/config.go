package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	DatabaseURL       string
	HTTPPort          string
	LogLevel          string
	SiteURL           string
	AppTitle          string
}

var AppConfig Config

func LoadConfig() {
	err := godotenv.Load() // Load .env file if it exists
	if err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = Config{
		OpenRouterAPIKey:  getEnv("OPENROUTER_API_KEY", ""),
		OpenRouterBaseURL: getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		DatabaseURL:       getEnv("DATABASE_URL", "moussamarbre.db"),
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "INFO"),
		SiteURL:           getEnv("SITE_URL", "https://moussamarbre.com"),
		AppTitle:          getEnv("APP_TITLE", "Moussa Marbre AI Chat"),
	}

	// The OpenRouter key is deliberately not required at startup: the chat
	// endpoint reports a configuration error per request, so the catalog
	// endpoints keep working without it.
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
