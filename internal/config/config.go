package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type AppConfig struct {
	HTTPPort        string
	Env             string
	LogLevel        string
	MongoURI        string
	MongoDatabase   string
	JWTSecret       string
	TokenTTL        time.Duration
	AdminEmail      string
	AdminPassword   string
	SwaggerEnable   bool
	EventLogDir     string
	JoinRetention   time.Duration
	WhatsAppNumber  string
	PublicBaseURL   string
	Storage         StorageConfig
}

type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
	PublicURL string
}

func (s StorageConfig) Enabled() bool {
	return s.Endpoint != "" && s.AccessKey != "" && s.SecretKey != "" && s.Bucket != ""
}

func Load() *AppConfig {
	storage := StorageConfig{
		Endpoint:  getEnv("STORAGE_ENDPOINT", ""),
		AccessKey: getEnv("STORAGE_ACCESS_KEY", ""),
		SecretKey: getEnv("STORAGE_SECRET_KEY", ""),
		Bucket:    getEnv("STORAGE_BUCKET", ""),
		Region:    getEnv("STORAGE_REGION", ""),
		UseSSL:    getEnv("STORAGE_USE_SSL", "false") == "true",
		PublicURL: getEnv("STORAGE_PUBLIC_URL", ""),
	}

	cfg := &AppConfig{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		// Empty URI keeps the API on in-memory repositories, handy for
		// local development.
		MongoURI:       getEnv("MONGODB_URI", ""),
		MongoDatabase:  getEnv("MONGODB_DB", "pinkcart"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		TokenTTL:       getDuration("TOKEN_TTL", 7*24*time.Hour),
		AdminEmail:     getEnv("ADMIN_EMAIL", ""),
		AdminPassword:  getEnv("ADMIN_PASSWORD", ""),
		SwaggerEnable:  getEnv("SWAGGER_ENABLE", "true") == "true",
		EventLogDir:    getEnv("EVENT_LOG_DIR", ""),
		JoinRetention:  getDuration("JOIN_RETENTION", 30*24*time.Hour),
		WhatsAppNumber: strings.TrimSpace(getEnv("WHATSAPP_NUMBER", "")),
		PublicBaseURL:  strings.TrimRight(getEnv("PUBLIC_BASE_URL", ""), "/"),
		Storage:        storage,
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	// Bare numbers are taken as days, e.g. JOIN_RETENTION=30.
	if n, err := strconv.Atoi(raw); err == nil {
		return time.Duration(n) * 24 * time.Hour
	}
	return def
}

func MustLoad() *AppConfig {
	cfg := Load()
	if cfg.HTTPPort == "" {
		log.Fatal("HTTP_PORT required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET required")
	}
	return cfg
}
