package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the full application configuration, loaded from the
// environment (optionally seeded from a .env file).
type Config struct {
	Server struct {
		Host         string
		Port         int
		ReadTimeout  time.Duration
		WriteTimeout time.Duration
		IdleTimeout  time.Duration
	}

	Database struct {
		Host            string
		Port            int
		User            string
		Password        string
		Database        string
		SSLMode         string
		MaxOpenConns    int
		MaxIdleConns    int
		ConnMaxLifetime time.Duration
		ConnMaxIdleTime time.Duration
	}

	Geolocation struct {
		DatabasePath string
	}

	Logging struct {
		Level string
	}
}

// LoadConfig reads configuration from the environment.
func LoadConfig() (*Config, error) {
	// A missing .env file is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.Server.Host = getEnv("SERVER_HOST", "0.0.0.0")
	cfg.Server.Port = parseInt(getEnv("SERVER_PORT", "8080"))
	cfg.Server.ReadTimeout = parseDuration(getEnv("SERVER_READ_TIMEOUT", "10s"))
	cfg.Server.WriteTimeout = parseDuration(getEnv("SERVER_WRITE_TIMEOUT", "10s"))
	cfg.Server.IdleTimeout = parseDuration(getEnv("SERVER_IDLE_TIMEOUT", "60s"))

	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = parseInt(getEnv("DB_PORT", "5432"))
	cfg.Database.User = getEnv("DB_USER", "weather")
	cfg.Database.Password = getEnv("DB_PASSWORD", "")
	cfg.Database.Database = getEnv("DB_NAME", "weatherdb")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.MaxOpenConns = parseInt(getEnv("DB_MAX_OPEN_CONNS", "25"))
	cfg.Database.MaxIdleConns = parseInt(getEnv("DB_MAX_IDLE_CONNS", "5"))
	cfg.Database.ConnMaxLifetime = parseDuration(getEnv("DB_CONN_MAX_LIFETIME", "30m"))
	cfg.Database.ConnMaxIdleTime = parseDuration(getEnv("DB_CONN_MAX_IDLE_TIME", "5m"))

	cfg.Geolocation.DatabasePath = getEnv("IP2LOCATION_DB_PATH", "ip2locdb/IP2LOCATION-LITE-DB3.BIN")

	cfg.Logging.Level = getEnv("LOG_LEVEL", "info")

	return cfg, nil
}

// Validate checks the configuration for values the server cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host must not be empty")
	}

	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Database.Port)
	}

	if c.Database.User == "" {
		return fmt.Errorf("database user must not be empty")
	}

	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("db max open conns must be positive, got %d", c.Database.MaxOpenConns)
	}

	if c.Geolocation.DatabasePath == "" {
		return fmt.Errorf("geolocation database path must not be empty")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(value string) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return duration
}

func parseInt(value string) int {
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return intValue
}
