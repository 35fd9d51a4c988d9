package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Storage backends
const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
	StorageS3       = "s3"
)

// Config holds all configuration for the application
type Config struct {
	// Server
	Port        string
	CORSOrigins []string
	Env         string

	// Auth; an empty token disables authentication
	APIToken string

	// Rate limiting
	RateLimitPerMinute int
	RateLimitBurst     int

	// Persistence
	StorageBackend string
	DataFile       string
	DatabaseURL    string
	S3             S3Config

	// Event fan-out; AMQP is disabled when URL is empty
	AMQP AMQPConfig
}

// S3Config holds AWS S3 configuration
type S3Config struct {
	Region          string
	Bucket          string
	Key             string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // Optional: for MinIO/LocalStack local dev
}

// AMQPConfig holds RabbitMQ configuration
type AMQPConfig struct {
	URL      string
	Exchange string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	perMinute, err := getEnvInt("RATE_LIMIT_PER_MINUTE", 100)
	if err != nil {
		return nil, err
	}
	burst, err := getEnvInt("RATE_LIMIT_BURST", 10)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		CORSOrigins:        splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		Env:                getEnv("ENV", "development"),
		APIToken:           getEnv("API_TOKEN", ""),
		RateLimitPerMinute: perMinute,
		RateLimitBurst:     burst,
		StorageBackend:     strings.ToLower(getEnv("STORAGE_BACKEND", StorageFile)),
		DataFile:           getEnv("DATA_FILE", "./data/budget.json"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		S3: S3Config{
			Region:          getEnv("S3_REGION", "us-east-1"),
			Bucket:          getEnv("S3_BUCKET", "zerobudget"),
			Key:             getEnv("S3_KEY", "budget.json"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			Endpoint:        getEnv("S3_ENDPOINT", ""), // Empty = use AWS, set for MinIO/LocalStack
		},
		AMQP: AMQPConfig{
			URL:      getEnv("AMQP_URL", ""),
			Exchange: getEnv("AMQP_EXCHANGE", "zerobudget.events"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProduction reports whether the service runs with ENV=production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks that the settings for the selected backend are present
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case StorageFile:
		if c.DataFile == "" {
			return fmt.Errorf("DATA_FILE is required for the file backend")
		}
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
	case StorageS3:
		if c.S3.Bucket == "" || c.S3.Key == "" {
			return fmt.Errorf("S3_BUCKET and S3_KEY are required for the s3 backend")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q (want file, postgres or s3)", c.StorageBackend)
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be positive")
	}
	if c.IsProduction() && c.APIToken == "" {
		return fmt.Errorf("API_TOKEN is required in production")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
