package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	S3       S3Config
	Courier  CourierConfig
	Redis    RedisConfig
	Site     SiteConfig
	Jobs     JobsConfig
}

type ServerConfig struct {
	Port        string
	GinMode     string
	Environment string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string

	// ConnectRetries bounds the startup connection attempts
	ConnectRetries int
	RetryBackoff   time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	BaseURL         string // CloudFront or S3 direct URL
}

// Enabled reports whether logo uploads can be attempted at all.
func (c S3Config) Enabled() bool {
	return c.Bucket != "" && c.AccessKeyID != "" && c.SecretAccessKey != ""
}

type CourierConfig struct {
	BaseURL  string
	Username string
	Password string
	Timeout  time.Duration
}

type RedisConfig struct {
	Addr     string // empty disables the lookup cache
	Password string
	DB       int
	TTL      time.Duration
}

type SiteConfig struct {
	BaseURL string
}

type JobsConfig struct {
	// CitySyncCron is a robfig/cron spec; empty disables the job
	CitySyncCron string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			GinMode:     getEnv("GIN_MODE", "debug"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnv("DB_PORT", "5432"),
			User:           getEnv("DB_USER", "admin"),
			Password:       getEnv("DB_PASSWORD", "1234"),
			DBName:         getEnv("DB_NAME", "bizdir"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			ConnectRetries: parseInt(getEnv("DB_CONNECT_RETRIES", "5"), 5),
			RetryBackoff:   parseDuration(getEnv("DB_RETRY_BACKOFF", "1s"), time.Second),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		S3: S3Config{
			Region:          getEnv("AWS_REGION", "ap-south-1"),
			Bucket:          getEnv("AWS_S3_BUCKET", ""),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			BaseURL:         getEnv("AWS_S3_BASE_URL", ""),
		},
		Courier: CourierConfig{
			BaseURL:  getEnv("COURIER_BASE_URL", ""),
			Username: getEnv("COURIER_USERNAME", ""),
			Password: getEnv("COURIER_PASSWORD", ""),
			Timeout:  parseDuration(getEnv("COURIER_TIMEOUT", "10s"), 10*time.Second),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       parseInt(getEnv("REDIS_DB", "0"), 0),
			TTL:      parseDuration(getEnv("LOOKUP_CACHE_TTL", "30m"), 30*time.Minute),
		},
		Site: SiteConfig{
			BaseURL: strings.TrimRight(getEnv("SITE_URL", "http://localhost:3000"), "/"),
		},
		Jobs: JobsConfig{
			CitySyncCron: getEnv("CITY_SYNC_CRON", ""),
		},
	}

	return config, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default %s", s, fallback)
		return fallback
	}
	return duration
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		log.Printf("Invalid integer %s, using default %d", s, fallback)
		return fallback
	}
	return n
}

func parseSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
