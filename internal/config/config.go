package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

type Config struct {
	// Database
	DBPath string

	// Expense categories resource file
	CategoriesPath string

	// Logging
	LogLevel string
}

func Load() *Config {
	return &Config{
		DBPath:         getEnv("TRACKER_DB_PATH", "./tracker.db"),
		CategoriesPath: getEnv("TRACKER_CATEGORIES_PATH", "./categories.json"),
		LogLevel:       getEnv("TRACKER_LOG_LEVEL", "info"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if c.DBPath == "" {
		errors = append(errors, "database path cannot be empty")
	} else if err := ensureParentDir(c.DBPath); err != nil {
		errors = append(errors, fmt.Sprintf("cannot create database directory for '%s': %v", c.DBPath, err))
	}

	if c.CategoriesPath == "" {
		errors = append(errors, "categories file path cannot be empty")
	} else if err := ensureParentDir(c.CategoriesPath); err != nil {
		errors = append(errors, fmt.Sprintf("cannot create categories directory for '%s': %v", c.CategoriesPath, err))
	}

	if _, err := ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, err.Error())
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errors, "; "))
	}
	return nil
}

// ParseLevel maps a config string to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level '%s': must be one of debug, info, warn, error", s)
	}
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
