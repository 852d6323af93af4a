package db

import (
	"context"
	"fmt"
	"time"

	"github.com/ikkim/bizdir-backend/config"
	appLogger "github.com/ikkim/bizdir-backend/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// openFunc is swapped in tests to simulate an unreachable server.
var openFunc = func(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent), // Use silent mode, we'll use our own logger
		TranslateError: true,
	})
}

// Initialize opens the pooled connection, retrying with exponential backoff
func Initialize(cfg *config.DatabaseConfig) error {
	appLogger.Info("Connecting to database", map[string]interface{}{
		"host":     cfg.Host,
		"port":     cfg.Port,
		"database": cfg.DBName,
		"user":     cfg.User,
	})

	conn, err := connectWithRetry(cfg.DSN(), cfg.ConnectRetries, cfg.RetryBackoff)
	if err != nil {
		return err
	}
	DB = conn

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	appLogger.Info("Database connection established successfully", map[string]interface{}{
		"max_idle_conns": 10,
		"max_open_conns": 100,
	})
	return nil
}

func connectWithRetry(dsn string, attempts int, backoff time.Duration) (*gorm.DB, error) {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	wait := backoff
	for attempt := 1; attempt <= attempts; attempt++ {
		conn, err := openFunc(dsn)
		if err == nil {
			if err = Ping(context.Background(), conn); err == nil {
				return conn, nil
			}
		}
		lastErr = err

		if attempt == attempts {
			break
		}
		appLogger.Warn("Database connection failed, retrying", map[string]interface{}{
			"attempt": attempt,
			"of":      attempts,
			"wait":    wait.String(),
			"error":   err.Error(),
		})
		time.Sleep(wait)
		wait *= 2
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", attempts, lastErr)
}

// Ping checks storage connectivity
func Ping(ctx context.Context, conn *gorm.DB) error {
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection
func Close() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
