// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/buyer-intel/internal/types"
)

// Config represents configuration that can come from a JSON file, the
// environment, or CLI flags. All fields are optional; missing values use
// defaults. Only Registry and DateRange reach the pipeline; everything else
// configures the surfaces around it.
type Config struct {
	// Data sources
	DataDir     string `json:"data_dir,omitempty"`     // Directory holding registry export files
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL; file loading is used when empty

	// Pipeline options
	Registry  string `json:"registry,omitempty" validate:"omitempty,oneof=verra car"`
	DateRange string `json:"date_range,omitempty"`

	// Server
	Port               int    `json:"port,omitempty" validate:"gte=0,lte=65535"`
	JWTSecret          string `json:"jwt_secret,omitempty"`           // Empty disables API auth
	JWTExpirationHours int    `json:"jwt_expiration_hours,omitempty"` // Token lifetime; defaults to 24
	OperatorUser       string `json:"operator_user,omitempty"`
	OperatorPassword   string `json:"operator_password_hash,omitempty"` // bcrypt hash, never plaintext
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		DataDir:            "data",
		Registry:           string(types.RegistryVerra),
		DateRange:          string(types.DateRangeAll),
		Port:               8080,
		JWTExpirationHours: 24,
	}
}

// Load loads configuration from a JSON file.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv reads configuration from environment variables. A .env file loaded
// at process start feeds the same variables.
func FromEnv() Config {
	cfg := Config{
		DataDir:          os.Getenv("DATA_DIR"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		Registry:         os.Getenv("REGISTRY"),
		DateRange:        os.Getenv("DATE_RANGE"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		OperatorUser:     os.Getenv("OPERATOR_USER"),
		OperatorPassword: os.Getenv("OPERATOR_PASSWORD_HASH"),
	}
	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		cfg.Port = port
	}
	if hours, err := strconv.Atoi(os.Getenv("JWT_EXPIRATION_HOURS")); err == nil {
		cfg.JWTExpirationHours = hours
	}
	return cfg
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. CLI flags are merged the same way, flag values first.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DataDir == "" {
		result.DataDir = defaults.DataDir
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Registry == "" {
		result.Registry = defaults.Registry
	}
	if result.DateRange == "" {
		result.DateRange = defaults.DateRange
	}
	if result.JWTSecret == "" {
		result.JWTSecret = defaults.JWTSecret
	}
	if result.OperatorUser == "" {
		result.OperatorUser = defaults.OperatorUser
	}
	if result.OperatorPassword == "" {
		result.OperatorPassword = defaults.OperatorPassword
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.JWTExpirationHours == 0 {
		result.JWTExpirationHours = defaults.JWTExpirationHours
	}

	return result
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if c.DateRange != "" {
		if _, err := types.ParseDateRange(c.DateRange); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}
	if c.JWTSecret != "" && (c.OperatorUser == "" || c.OperatorPassword == "") {
		return fmt.Errorf("config error: 'jwt_secret' requires 'operator_user' and 'operator_password_hash'")
	}
	return nil
}
