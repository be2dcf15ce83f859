// Package config loads process settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Base URL of the prediction service, without trailing slash.
	APIBaseURL string
	// Per-request timeout for calls to the prediction service.
	APITimeout time.Duration

	Port string

	HealthInterval   time.Duration
	FailureThreshold int
	SuccessThreshold int

	SessionTTL    time.Duration
	SweepInterval time.Duration

	// PrefsDB is the SQLite file for persisted preferences. Setting
	// MEDICOST_PREFS_DB to an empty value keeps them in memory.
	PrefsDB      string
	DefaultTheme string
	// PrefsRetention is how long a stored theme survives without changes.
	PrefsRetention time.Duration

	LogLevel   string
	LogBufSize int
}

func Default() Config {
	return Config{
		APIBaseURL:       "http://localhost:8000",
		APITimeout:       10 * time.Second,
		Port:             "8080",
		HealthInterval:   30 * time.Second,
		FailureThreshold: 3,
		SuccessThreshold: 2,
		SessionTTL:       30 * time.Minute,
		SweepInterval:    time.Minute,
		PrefsDB:          "medicost_prefs.db",
		DefaultTheme:     "light",
		PrefsRetention:   30 * 24 * time.Hour,
		LogLevel:         "INFO",
		LogBufSize:       1000,
	}
}

// Load reads envFile (if it exists) and then overlays MEDICOST_* variables
// and PORT on top of Default().
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := Default()
	cfg.APIBaseURL = strings.TrimRight(getEnv("MEDICOST_API_URL", cfg.APIBaseURL), "/")
	cfg.Port = getEnv("PORT", cfg.Port)
	if v, ok := os.LookupEnv("MEDICOST_PREFS_DB"); ok {
		cfg.PrefsDB = strings.TrimSpace(v)
	}
	cfg.DefaultTheme = getEnv("MEDICOST_DEFAULT_THEME", cfg.DefaultTheme)
	cfg.LogLevel = getEnv("MEDICOST_LOG_LEVEL", cfg.LogLevel)
	cfg.LogBufSize = getEnvInt("MEDICOST_LOG_BUFFER", cfg.LogBufSize)
	cfg.FailureThreshold = getEnvInt("MEDICOST_HEALTH_FAILURES", cfg.FailureThreshold)
	cfg.SuccessThreshold = getEnvInt("MEDICOST_HEALTH_SUCCESSES", cfg.SuccessThreshold)

	var err error
	if cfg.APITimeout, err = getEnvDuration("MEDICOST_API_TIMEOUT", cfg.APITimeout); err != nil {
		return Config{}, err
	}
	if cfg.HealthInterval, err = getEnvDuration("MEDICOST_HEALTH_INTERVAL", cfg.HealthInterval); err != nil {
		return Config{}, err
	}
	if cfg.SessionTTL, err = getEnvDuration("MEDICOST_SESSION_TTL", cfg.SessionTTL); err != nil {
		return Config{}, err
	}
	if cfg.SweepInterval, err = getEnvDuration("MEDICOST_SWEEP_INTERVAL", cfg.SweepInterval); err != nil {
		return Config{}, err
	}
	if cfg.PrefsRetention, err = getEnvDuration("MEDICOST_PREFS_RETENTION", cfg.PrefsRetention); err != nil {
		return Config{}, err
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.APIBaseURL == "" {
		return errors.New("MEDICOST_API_URL must not be empty")
	}
	if c.APITimeout <= 0 || c.HealthInterval <= 0 || c.SweepInterval <= 0 {
		return errors.New("timeouts and intervals must be positive")
	}
	if c.FailureThreshold < 1 || c.SuccessThreshold < 1 {
		return errors.New("health thresholds must be at least 1")
	}
	if c.PrefsRetention < 0 {
		return errors.New("MEDICOST_PREFS_RETENTION must not be negative")
	}
	if c.LogBufSize < 1 {
		return errors.New("MEDICOST_LOG_BUFFER must be at least 1")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
