// Package config handles application configuration
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Port               string
	Env                string
	VehicleCatalogPath string
	PhoneDirectoryPath string
	SpeedKmh           float64
	HTTPTimeout        time.Duration
}

// Load reads configuration from an optional config.yaml and environment
// variables, with sensible defaults. Environment variables win over the
// file (PORT, ENV, VEHICLE_CATALOG_PATH, PHONE_DIRECTORY_PATH, SPEED_KMH,
// HTTP_TIMEOUT_SECONDS).
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	v.SetDefault("port", "8000")
	v.SetDefault("env", "development")
	v.SetDefault("vehicle_catalog_path", "data/vehicles.json")
	v.SetDefault("phone_directory_path", "data/phone-locations.json")
	v.SetDefault("speed_kmh", 60.0)
	v.SetDefault("http_timeout_seconds", 15)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// No config file is fine; defaults and env cover everything.
	}

	cfg := &Config{
		Port:               v.GetString("port"),
		Env:                v.GetString("env"),
		VehicleCatalogPath: v.GetString("vehicle_catalog_path"),
		PhoneDirectoryPath: v.GetString("phone_directory_path"),
		SpeedKmh:           v.GetFloat64("speed_kmh"),
		HTTPTimeout:        time.Duration(v.GetInt("http_timeout_seconds")) * time.Second,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("port must not be empty")
	}
	if c.SpeedKmh <= 0 {
		return fmt.Errorf("speed_kmh must be positive, got %v", c.SpeedKmh)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout_seconds must be positive, got %v", c.HTTPTimeout)
	}
	return nil
}
