package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	"go.uber.org/zap"
)

// Config holds all configuration for the bot process.
type Config struct {
	AppEnv        string
	DiscordToken  string
	DatabaseURL   string
	DatabaseKey   string
	DBDriver      string
	RedisAddr     string
	MetricsAddr   string
	CommandPrefix string
}

// LoadFromEnv loads configuration from environment variables. The gateway
// token and database endpoint are required; with the pgx driver the service
// credential is required too. Missing required values fail the process at
// startup.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		AppEnv:        getEnv("APP_ENV", "development"),
		DiscordToken:  os.Getenv("DISCORD_TOKEN"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		DatabaseKey:   os.Getenv("DATABASE_SERVICE_KEY"),
		DBDriver:      getEnv("DB_DRIVER", "pgx"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		MetricsAddr:   os.Getenv("METRICS_ADDR"),
		CommandPrefix: getEnv("COMMAND_PREFIX", "!"),
	}

	if cfg.DiscordToken == "" {
		return nil, errors.New("missing DISCORD_TOKEN")
	}
	if cfg.DatabaseURL == "" {
		return nil, errors.New("missing DATABASE_URL")
	}
	if cfg.DBDriver == "pgx" && cfg.DatabaseKey == "" {
		return nil, errors.New("missing DATABASE_SERVICE_KEY")
	}

	return cfg, nil
}

// DSN assembles the data source name for the configured driver. For pgx the
// service credential is injected as the URL password; for sqlite3 the URL is
// used verbatim as a file DSN.
func (c *Config) DSN() (string, error) {
	if c.DBDriver != "pgx" {
		return c.DatabaseURL, nil
	}

	u, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return "", fmt.Errorf("parse DATABASE_URL: %w", err)
	}

	user := "postgres"
	if u.User != nil {
		user = u.User.Username()
	}
	u.User = url.UserPassword(user, c.DatabaseKey)
	return u.String(), nil
}

// NewLogger creates a new Zap logger based on the config.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	if cfg.AppEnv == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
