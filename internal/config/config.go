package config

import (
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DBPath        string
	MediaDir      string
	MigrationsDir string
	JWTSecret     []byte
	TokenTTL      time.Duration
}

func LoadConfig() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "3000"),
		DBPath:        getEnv("DB_PATH", "./coffeeshop.db"),
		MediaDir:      getEnv("MEDIA_DIR", "./uploads"),
		MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),
		TokenTTL:      24 * time.Hour,
	}

	if ttlStr := os.Getenv("TOKEN_TTL"); ttlStr != "" {
		ttl, err := time.ParseDuration(ttlStr)
		if err != nil {
			slog.Warn("Invalid TOKEN_TTL, keeping default 24h", "TOKEN_TTL", ttlStr)
		} else {
			cfg.TokenTTL = ttl
		}
	}

	// JWT secret (critical for security)
	secretStr := os.Getenv("JWT_SECRET")
	if secretStr == "" {
		slog.Warn("JWT_SECRET environment variable not set. Generating a random key for development. Tokens will be invalid on restart. PLEASE SET JWT_SECRET IN PRODUCTION!")
		cfg.JWTSecret = generateRandomBytes(32)
	} else {
		decoded, err := base64.StdEncoding.DecodeString(secretStr)
		if err == nil && len(decoded) >= 32 {
			cfg.JWTSecret = decoded
		} else if len(secretStr) >= 32 {
			cfg.JWTSecret = []byte(secretStr)
		} else {
			slog.Warn("JWT_SECRET is invalid or too short (min 32 bytes recommended). Generating a random key for development. PLEASE SET A SECURE JWT_SECRET IN PRODUCTION!")
			cfg.JWTSecret = generateRandomBytes(32)
		}
	}

	// Make sure port is valid
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		slog.Error("Invalid PORT environment variable. Falling back to default.", "PORT", os.Getenv("PORT"))
		cfg.Port = "3000"
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// generateRandomBytes generates a random byte slice of specified length
// using crypto/rand.
func generateRandomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		slog.Error("Failed to read random bytes", "error", err)
		// Fallback only prevents a panic at startup; never acceptable in production.
		fallbackKey := "fallback-insecure-key-" + strconv.FormatInt(time.Now().UnixNano(), 10)
		if len(fallbackKey) < n {
			paddedKey := make([]byte, n)
			copy(paddedKey, fallbackKey)
			return paddedKey
		}
		return []byte(fallbackKey)[:n]
	}
	return b
}
