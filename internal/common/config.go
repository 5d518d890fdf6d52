package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	OCR      OCRConfig
	Database DatabaseConfig
	Output   OutputConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	HTTPAddr string
}

// OCRConfig holds the OCR service connection and pipeline toggles
type OCRConfig struct {
	BaseURL                string
	Timeout                time.Duration
	UseOrientationClassify bool
	UseDocUnwarping        bool
	UseLayoutDetection     bool
	UseChartRecognition    bool
	FormatBlockContent     bool
	MaxConcurrency         int
}

// DatabaseConfig holds the optional Postgres store configuration
type DatabaseConfig struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	DialTimeout     time.Duration
}

// OutputConfig holds artifact persistence configuration
type OutputConfig struct {
	ArtifactDir string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		},
		OCR: OCRConfig{
			BaseURL:                getEnv("OCR_SERVER_URL", "http://localhost:8118"),
			Timeout:                getEnvAsDuration("OCR_TIMEOUT", 2*time.Minute),
			UseOrientationClassify: getEnvAsBool("OCR_ORIENTATION_CLASSIFY", true),
			UseDocUnwarping:        getEnvAsBool("OCR_DOC_UNWARPING", true),
			UseLayoutDetection:     getEnvAsBool("OCR_LAYOUT_DETECTION", true),
			UseChartRecognition:    getEnvAsBool("OCR_CHART_RECOGNITION", false),
			FormatBlockContent:     getEnvAsBool("OCR_FORMAT_BLOCK_CONTENT", true),
			MaxConcurrency:         getEnvAsInt("OCR_MAX_CONCURRENCY", 0),
		},
		Database: DatabaseConfig{
			DSN:             getEnv("DB_URL", ""),
			MaxConns:        getEnvAsInt32("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt32("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:     getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
		},
		Output: OutputConfig{
			ArtifactDir: getEnv("OUTPUT_DIR", ""),
		},
	}
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

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
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

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.OCR.BaseURL == "" {
		return NewAppError("CONFIG_ERROR", "OCR_SERVER_URL is required", ErrInvalidInput)
	}
	if c.Server.HTTPAddr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	return nil
}
