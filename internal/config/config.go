package config

import (
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Firebase FirebaseConfig
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	RedisURL           string
	SessionStore       string // "memory" or "redis"
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	JWTSecret   string
	TokenExpiry time.Duration
}

// FirebaseConfig supports the three credential sources the Admin SDK accepts:
// a service-account file path, discrete fields, or the full JSON inline.
type FirebaseConfig struct {
	CredentialsFile string
	CredentialsJSON string
	ProjectID       string
	PrivateKey      string
	ClientEmail     string
}

type AIConfig struct {
	GeminiAPIKey string
	Models       []string
}

// defaultModels is the fallback preference order, most-preferred first.
var defaultModels = []string{
	"gemini-2.5-flash",
	"gemini-2.0-flash",
	"gemini-pro-latest",
	"gemini-flash-latest",
	"gemini-2.5-pro-preview-03-25",
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3001"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			SessionStore:       getEnv("SESSION_STORE", "memory"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JWTSecret:   getEnv("JWT_SECRET", ""),
			TokenExpiry: getEnvAsDuration("JWT_EXPIRES_IN", 7*24*time.Hour),
		},
		Firebase: FirebaseConfig{
			CredentialsFile: getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", ""),
			CredentialsJSON: getEnv("FIREBASE_SERVICE_ACCOUNT", ""),
			ProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
			PrivateKey:      getEnv("FIREBASE_PRIVATE_KEY", ""),
			ClientEmail:     getEnv("FIREBASE_CLIENT_EMAIL", ""),
		},
		Ai: AIConfig{
			GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
			Models:       getEnvAsList("GEMINI_MODELS", defaultModels),
		},
	}
}

// Validate enforces the fail-fast startup checks. A process without the
// Gemini key or the signing secret must not come up half-working.
func (c *Config) Validate() error {
	if c.Ai.GeminiAPIKey == "" {
		return errors.New("GEMINI_API_KEY is not set in environment variables")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set in environment variables")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsList(key string, fallback []string) []string {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	parts := strings.Split(strValue, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
