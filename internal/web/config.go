package web

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config represents the web server configuration
type Config struct {
	Server   ServerConfig  `json:"server"`
	Auth     AuthConfig    `json:"auth"`
	Features FeatureConfig `json:"features"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port int    `json:"port"`
	Host string `json:"host"`
}

// AuthConfig contains authentication settings
type AuthConfig struct {
	Enabled bool   `json:"enabled"`
	APIKey  string `json:"api_key"`
}

// FeatureConfig contains feature toggles
type FeatureConfig struct {
	StorageEnabled bool `json:"storage_enabled"`
	MetricsEnabled bool `json:"metrics_enabled"`
}

// LoadConfig loads configuration from a JSON file. Fields missing from the
// file keep their DefaultConfig values.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	if config.Auth.Enabled && config.Auth.APIKey == "" {
		return nil, fmt.Errorf("%s: auth is enabled but no api_key is set", filename)
	}

	return config, nil
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
			Host: "0.0.0.0",
		},
		Auth: AuthConfig{
			Enabled: false,
		},
		Features: FeatureConfig{
			StorageEnabled: true,
			MetricsEnabled: true,
		},
	}
}
