package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	DatabaseURL       string
	GeminiAPIKey      string
	YouTubeAPIKey     string
	TranscriptBaseURL string
}

// Load reads configuration from the environment, with an optional .env
// file for local development.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:              getEnv("PORT", "8080"),
		DatabaseURL:       os.Getenv("DB_URL"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		YouTubeAPIKey:     os.Getenv("YOUTUBE_API_KEY"),
		TranscriptBaseURL: getEnv("TRANSCRIPT_BASE_URL", "http://localhost:5000"),
	}
}

// KeyStatus reports which generation credentials are missing. A missing
// key does not block startup; it surfaces as downstream call failures.
type KeyStatus struct {
	IsValid     bool
	MissingKeys []string
}

func (c *Config) ValidateKeys() KeyStatus {
	var missing []string
	if c.GeminiAPIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	if c.YouTubeAPIKey == "" {
		missing = append(missing, "YOUTUBE_API_KEY")
	}
	return KeyStatus{
		IsValid:     len(missing) == 0,
		MissingKeys: missing,
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
