package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	AWS      AWSConfig
	Database DatabaseConfig
	Paths    PathsConfig
	Retry    RetryConfig
}

// AWSConfig holds Textract credentials and region.
type AWSConfig struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
}

// DatabaseConfig holds the archive store configuration. When DSN is empty
// the repository falls back to a local SQLite file at SQLitePath.
type DatabaseConfig struct {
	DSN             string
	SQLitePath      string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	DialTimeout     time.Duration
}

// PathsConfig holds input/output directories for batch processing.
type PathsConfig struct {
	DataDir string
	OutDir  string
}

// RetryConfig holds the backoff knobs around the analysis call.
type RetryConfig struct {
	MaxRetries  int
	BaseBackoff int // seconds; sleep is base^attempt
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() *Config {
	return &Config{
		AWS: AWSConfig{
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			Region:          getEnv("AWS_REGION", "eu-south-1"),
		},
		Database: DatabaseConfig{
			DSN:             getEnv("DB_URL", ""),
			SQLitePath:      getEnv("SQLITE_PATH", "./out/docnorm.db"),
			MaxConns:        getEnvAsInt32("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt32("DB_MIN_CONNS", 1),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:     getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
		},
		Paths: PathsConfig{
			DataDir: getEnv("DATA_DIR", "./data"),
			OutDir:  getEnv("OUT_DIR", "./out"),
		},
		Retry: RetryConfig{
			MaxRetries:  getEnvAsInt("MAX_RETRIES", 3),
			BaseBackoff: getEnvAsInt("BASE_BACKOFF", 2),
		},
	}
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	if c.AWS.AccessKeyID == "" || c.AWS.SecretAccessKey == "" {
		return NewAppError("CONFIG_ERROR", "AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY are required", ErrInvalidInput)
	}
	if c.AWS.Region == "" {
		return NewAppError("CONFIG_ERROR", "AWS_REGION is required", ErrInvalidInput)
	}
	if c.Paths.DataDir == "" {
		return NewAppError("CONFIG_ERROR", "DATA_DIR is required", ErrInvalidInput)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
