package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LocalDevOrigin is always present in the CORS allow-list.
const LocalDevOrigin = "http://localhost:8000"

const DefaultGeminiModel = "gemini-2.5-flash"

type Config struct {
	// Server
	Port         string
	Env          string
	WriteTimeout time.Duration

	// Gemini AI
	GeminiAPIKey string
	GeminiModel  string

	// Frontend
	FrontendURL    string
	AllowedOrigins []string

	// Logging
	LogLevel  string
	LogFormat string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	frontendURL := getEnvOrDefault("FRONTEND_URL", "")

	cfg := &Config{
		Port:           getEnvOrDefault("PORT", "8000"),
		Env:            getEnvOrDefault("ENV", "development"),
		WriteTimeout:   time.Duration(getEnvAsIntOrDefault("SERVER_WRITE_TIMEOUT_SECONDS", 120)) * time.Second,
		GeminiAPIKey:   getEnvOrDefault("GEMINI_API_KEY", ""),
		GeminiModel:    getEnvOrDefault("GEMINI_MODEL", DefaultGeminiModel),
		FrontendURL:    frontendURL,
		AllowedOrigins: BuildAllowedOrigins(frontendURL),
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:      getEnvOrDefault("LOG_FORMAT", "text"),
	}

	return cfg
}

// AIConfigured reports whether chat traffic can be served.
func (c *Config) AIConfigured() bool {
	return c.GeminiAPIKey != ""
}

// BuildAllowedOrigins returns the local development origin, plus the front-end
// URL and its DigitalOcean App Platform twin when frontendURL is set.
// "https://app.example.com" yields "https://app.ondigitalocean.app".
// The derived origin is not validated.
func BuildAllowedOrigins(frontendURL string) []string {
	origins := []string{LocalDevOrigin}
	if frontendURL == "" {
		return origins
	}

	_, host, found := strings.Cut(frontendURL, "//")
	if !found {
		host = frontendURL
	}
	label, _, _ := strings.Cut(host, ".")

	return append(origins, frontendURL, "https://"+label+".ondigitalocean.app")
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
