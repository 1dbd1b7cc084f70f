package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config stores the application configuration.
// Values come from the environment (optionally seeded by a .env file)
// with simple defaults for local development.
type Config struct {
	ServerAddr string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	JWTSecret string

	// External song data sources
	LyricsAPIURL      string // lyrics.ovh compatible endpoint
	LrclibAPIURL      string
	LastFMAPIURL      string
	LastFMAPIKey      string // optional; enrichment is skipped when unset
	MusicBrainzAPIURL string

	// AI analysis backend (OpenAI-compatible chat completions)
	AIAPIURL string
	AIAPIKey string
	AIModel  string

	// Logging
	LogLevel   string
	LogPath    string
	LogMaxSize int
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a default value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// Load loads configuration from environment variables (via .env file) or defaults.
func Load() *Config {
	// godotenv.Load() will not override existing env vars.
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found or error loading .env, relying on existing environment variables and defaults.")
	}

	return &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8080"),

		DBHost:     getEnv("DB_HOST", "127.0.0.1"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "root"),
		DBPassword: os.Getenv("DB_PASSWORD"), // no hardcoded default for passwords
		DBName:     getEnv("DB_NAME", "songsense"),

		RedisHost:     getEnv("REDIS_HOST", "127.0.0.1"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		JWTSecret: getEnv("JWT_SECRET", "songsense-dev-secret"),

		LyricsAPIURL:      getEnv("LYRICS_API_URL", "https://api.lyrics.ovh"),
		LrclibAPIURL:      getEnv("LRCLIB_API_URL", "https://lrclib.net"),
		LastFMAPIURL:      getEnv("LASTFM_API_URL", "https://ws.audioscrobbler.com/2.0/"),
		LastFMAPIKey:      os.Getenv("LASTFM_API_KEY"),
		MusicBrainzAPIURL: getEnv("MUSICBRAINZ_API_URL", "https://musicbrainz.org/ws/2"),

		AIAPIURL: getEnv("AI_API_URL", "https://api.openai.com/v1"),
		AIAPIKey: os.Getenv("AI_API_KEY"),
		AIModel:  getEnv("AI_MODEL", "gpt-4o-mini"),

		LogLevel:   getEnv("LOG_LEVEL", "info"),
		LogPath:    getEnv("LOG_PATH", ""),
		LogMaxSize: getEnvInt("LOG_MAX_SIZE", 100),
	}
}
