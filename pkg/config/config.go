// Package config provides configuration management for fintrack.
// It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Store drivers.
const (
	DriverBolt   = "bolt"
	DriverSQLite = "sqlite"
)

// Config represents the application configuration.
type Config struct {
	Storage StorageConfig
	Display DisplayConfig
	Alerts  AlertConfig
	Port    int
	Debug   bool
}

// StorageConfig represents where the book is kept.
type StorageConfig struct {
	DataRoot    string
	Driver      string
	DBPath      string
	CatalogPath string
}

// DisplayConfig represents presentation settings.
type DisplayConfig struct {
	Currency string
}

// AlertConfig holds the due-date thresholds, in days.
type AlertConfig struct {
	DueSoonDays  int
	UpcomingDays int
}

// Load loads configuration from environment variables.
// It automatically loads .env file from the current directory if available.
// You can optionally specify a custom .env file path.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Try to load .env from current directory (ignore error if not found)
		_ = godotenv.Load()
	}

	dueSoon, err := parseIntEnv("FINTRACK_DUE_SOON_DAYS", 7)
	if err != nil {
		return nil, err
	}
	upcoming, err := parseIntEnv("FINTRACK_UPCOMING_DAYS", 30)
	if err != nil {
		return nil, err
	}
	port, err := parseIntEnv("PORT", 8080)
	if err != nil {
		return nil, err
	}

	driver := strings.ToLower(getEnvOrDefault("FINTRACK_STORE_DRIVER", DriverBolt))
	if driver != DriverBolt && driver != DriverSQLite {
		return nil, fmt.Errorf("invalid FINTRACK_STORE_DRIVER: %s (want %s or %s)", driver, DriverBolt, DriverSQLite)
	}

	config := &Config{
		Storage: StorageConfig{
			DataRoot:    getEnvOrDefault("FINTRACK_DATA_ROOT", "./data"),
			Driver:      driver,
			DBPath:      os.Getenv("FINTRACK_DB_PATH"),
			CatalogPath: os.Getenv("FINTRACK_CATALOG_PATH"),
		},
		Display: DisplayConfig{
			Currency: strings.ToUpper(getEnvOrDefault("FINTRACK_CURRENCY", "BRL")),
		},
		Alerts: AlertConfig{
			DueSoonDays:  dueSoon,
			UpcomingDays: upcoming,
		},
		Port:  port,
		Debug: os.Getenv("DEBUG") == "true",
	}

	return config, nil
}

// Validate validates the configuration.
// It checks if all required fields are set.
func (c *Config) Validate(required ...[]string) error {
	var missing []string

	for _, path := range required {
		if len(path) < 2 {
			continue
		}

		var value string
		switch path[0] {
		case "storage":
			switch path[1] {
			case "dataRoot":
				value = c.Storage.DataRoot
			case "driver":
				value = c.Storage.Driver
			case "dbPath":
				value = c.Storage.DBPath
			case "catalogPath":
				value = c.Storage.CatalogPath
			}
		case "display":
			if path[1] == "currency" {
				value = c.Display.Currency
			}
		}

		if value == "" {
			missing = append(missing, strings.Join(path, "."))
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v\nPlease check your .env file or environment variables", missing)
	}

	if c.Alerts.DueSoonDays < 0 || c.Alerts.UpcomingDays < 0 {
		return fmt.Errorf("alert thresholds must not be negative")
	}

	return nil
}

// getEnvOrDefault returns the value of the environment variable or a default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseIntEnv parses an int from an environment variable.
// Returns defaultValue if the environment variable is not set.
func parseIntEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value for %s: %s", key, value)
	}

	return parsed, nil
}
