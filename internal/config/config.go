// Package config centralises configuration parsing for the fitlog server.
package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Auth modes for the progress and profile endpoints.
const (
	AuthOptional = "optional"
	AuthRequired = "required"
)

// Config captures runtime configuration values.
type Config struct {
	Addr                 string
	DatabaseURL          string // empty selects the in-memory store
	LogLevel             slog.Level
	LogFormat            string
	AuthMode             string
	ForwardAuth          bool    // trust the Remote-User header from an auth proxy
	RateLimitRPS         float64 // 0 disables rate limiting
	RateLimitBurst       int
	SessionPurgeInterval time.Duration
	ShutdownTimeout      time.Duration
	OIDC                 OIDC
}

// OIDC holds single sign-on settings.
type OIDC struct {
	Issuer       string
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Enabled reports whether every SSO setting is present.
func (o OIDC) Enabled() bool {
	return o.Issuer != "" && o.ClientID != "" && o.ClientSecret != "" && o.RedirectURL != ""
}

// Load reads an optional .env file and then environment variables into Config.
// Variables already set in the environment win over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}
	return FromEnv()
}

// FromEnv reads Config from the process environment only.
func FromEnv() (Config, error) {
	cfg := Config{
		Addr:                 getEnv("ADDR", ":8000"),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		LogFormat:            strings.ToLower(getEnv("LOG_FORMAT", "json")),
		AuthMode:             strings.ToLower(getEnv("AUTH_MODE", AuthOptional)),
		ForwardAuth:          getBoolEnv("FORWARD_AUTH", false),
		RateLimitRPS:         getFloatEnv("RATE_LIMIT_RPS", 5),
		RateLimitBurst:       getIntEnv("RATE_LIMIT_BURST", 30),
		SessionPurgeInterval: getDurationEnv("SESSION_PURGE_INTERVAL", time.Hour),
		ShutdownTimeout:      getDurationEnv("SHUTDOWN_TIMEOUT", 15*time.Second),
		OIDC: OIDC{
			Issuer:       getEnv("OIDC_ISSUER", ""),
			ClientID:     getEnv("OIDC_CLIENT_ID", ""),
			ClientSecret: getEnv("OIDC_CLIENT_SECRET", ""),
			RedirectURL:  getEnv("OIDC_REDIRECT_URL", ""),
		},
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return Config{}, err
	}
	if cfg.AuthMode != AuthOptional && cfg.AuthMode != AuthRequired {
		return Config{}, errors.New(`AUTH_MODE must be "optional" or "required"`)
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return Config{}, errors.New(`LOG_FORMAT must be "json" or "text"`)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getFloatEnv(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
