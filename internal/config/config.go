package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"os"
	"strconv"
	"strings"
)

const EnvProduction = "production"

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	DatabaseURL          string
	JWTSecret            string
	JWTIssuer            string
	TokenTTLHours        int
	CorsOrigins          []string
	DefaultAdminPassword string
	SiteURL              string
	Environment          string
	Port                 string
	FrontendDist         string
	ImagesDir            string
	LogDir               string
	LogRetentionDays     int

	// EphemeralSecret is set when JWTSecret was generated at startup.
	EphemeralSecret bool
}

func Load() Config {
	cfg := Config{
		DatabaseURL:          envOr("DATABASE_URL", "sqlite://./cattery.db"),
		JWTSecret:            envOr("SECRET_KEY", ""),
		JWTIssuer:            envOr("JWT_ISSUER", "cattery"),
		TokenTTLHours:        envOrInt("JWT_EXPIRATION_HOURS", 24),
		CorsOrigins:          parseCSV(envOr("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		DefaultAdminPassword: envOr("DEFAULT_ADMIN_PASSWORD", "admin123"),
		SiteURL:              strings.TrimRight(envOr("SITE_URL", "https://royalabycattery.com"), "/"),
		Environment:          envOr("ENVIRONMENT", "development"),
		Port:                 envOr("PORT", "8000"),
		FrontendDist:         envOr("FRONTEND_DIST", "frontend/dist"),
		ImagesDir:            envOr("IMAGES_DIR", "images"),
		LogDir:               envOr("LOG_DIR", "storage/logs"),
		LogRetentionDays:     envOrInt("LOG_RETENTION_DAYS", 7),
	}
	if cfg.TokenTTLHours <= 0 {
		cfg.TokenTTLHours = 24
	}
	if cfg.JWTSecret == "" && !cfg.IsProduction() {
		cfg.JWTSecret = randomSecret()
		cfg.EphemeralSecret = cfg.JWTSecret != ""
	}
	return cfg
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, EnvProduction)
}

// Validate reports configuration that must stop the process from starting.
func (c Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		if c.IsProduction() {
			return errors.New("SECRET_KEY must be set when ENVIRONMENT=production")
		}
		return errors.New("missing signing secret")
	}
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return errors.New("missing env var: DATABASE_URL")
	}
	return nil
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return ""
	}
	return hex.EncodeToString(buf)
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		value := strings.TrimSpace(part)
		if value != "" {
			items = append(items, value)
		}
	}
	return items
}
