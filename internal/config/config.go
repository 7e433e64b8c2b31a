// Package config provides application configuration loading from environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Default token lifetimes, matching the original OAuth2 provider settings.
const (
	DefaultAccessTokenTTL  = 36000 * time.Second
	DefaultRefreshTokenTTL = 30 * 24 * time.Hour
)

// Config holds all configuration for the application.
type Config struct {
	HTTPAddr        string
	DatabaseURL     string
	GeminiAPIKey    string
	LogLevel        string
	OAuthAppName    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:     os.Getenv("HTTP_ADDR"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		LogLevel:     os.Getenv("LOG_LEVEL"),
		OAuthAppName: os.Getenv("OAUTH_APP_NAME"),
	}

	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	if cfg.OAuthAppName == "" {
		cfg.OAuthAppName = "walletfy"
	}

	cfg.AccessTokenTTL = DefaultAccessTokenTTL
	if s := os.Getenv("ACCESS_TOKEN_TTL_SECONDS"); s != "" {
		if secs, err := strconv.Atoi(s); err == nil && secs > 0 {
			cfg.AccessTokenTTL = time.Duration(secs) * time.Second
		}
	}

	cfg.RefreshTokenTTL = DefaultRefreshTokenTTL
	if s := os.Getenv("REFRESH_TOKEN_TTL_DAYS"); s != "" {
		if days, err := strconv.Atoi(s); err == nil && days > 0 {
			cfg.RefreshTokenTTL = time.Duration(days) * 24 * time.Hour
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks that all required configuration is present.
func (c *Config) validate() error {
	var errs []string

	if c.DatabaseURL == "" {
		errs = append(errs, "DATABASE_URL is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
