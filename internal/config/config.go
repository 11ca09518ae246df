package config

import (
	"os"
	"strconv"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// TransferConfig holds the token lifecycle knobs. The validation limits
// (size ceiling, MIME/extension allow-lists) are part of the upload contract
// and live as constants in the validate package, not here.
type TransferConfig struct {
	// TokenTTLSec is the validity window of an issued token.
	TokenTTLSec int
	// LocatorTTLSec bounds the lifetime of a presigned download URL.
	LocatorTTLSec int
	// JanitorIntervalSec is the pause between expired-record sweeps.
	JanitorIntervalSec int
	// JanitorBatch caps how many expired records one sweep reaps.
	JanitorBatch int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	// BaseURL is the public address embedded in download links handed to senders.
	BaseURL  string
	Port     string
	Transfer TransferConfig
	Database DatabaseConfig
	MinIO    MinIOConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		BaseURL: getEnv("APP_BASE_URL", "http://localhost:8080"),
		Port:    getEnv("PORT", "8080"), // default only for non-sensitive value
		Transfer: TransferConfig{
			TokenTTLSec:        getEnvInt("TOKEN_TTL_SEC", 24*3600),
			LocatorTTLSec:      getEnvInt("LOCATOR_TTL_SEC", 60),
			JanitorIntervalSec: getEnvInt("JANITOR_INTERVAL_SEC", 900),
			JanitorBatch:       getEnvInt("JANITOR_BATCH", 100),
		},
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
