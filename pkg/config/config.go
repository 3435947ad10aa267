// Package config provides configuration for the Ledgerline tools.
// It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config represents the application configuration.
type Config struct {
	API    APIConfig
	Export ExportConfig
	Debug  bool
}

// APIConfig represents Ledgerline API configuration.
type APIConfig struct {
	URL          string
	AccessToken  string
	ClientID     string
	ClientSecret string
	TokenURL     string
	TokenPath    string
	LedgerID     string
}

// ExportConfig represents Beancount export configuration.
type ExportConfig struct {
	Root        string
	DBPath      string
	MappingPath string
	Currency    string
}

// Load loads configuration from environment variables. It loads a .env
// file first when one exists; an explicit path can be passed instead.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Missing default .env is fine; plain env vars still apply.
		_ = godotenv.Load()
	}

	config := &Config{
		API: APIConfig{
			URL:          getEnvOrDefault("LEDGERLINE_API_URL", "https://api.ledgerline.io"),
			AccessToken:  os.Getenv("LEDGERLINE_ACCESS_TOKEN"),
			ClientID:     os.Getenv("LEDGERLINE_CLIENT_ID"),
			ClientSecret: os.Getenv("LEDGERLINE_CLIENT_SECRET"),
			TokenURL:     getEnvOrDefault("LEDGERLINE_TOKEN_URL", "https://auth.ledgerline.io/oauth/token"),
			TokenPath:    os.Getenv("LEDGERLINE_TOKEN_PATH"),
			LedgerID:     os.Getenv("LEDGERLINE_LEDGER_ID"),
		},
		Export: ExportConfig{
			Root:        getEnvOrDefault("EXPORT_ROOT", "./beancount"),
			DBPath:      os.Getenv("EXPORT_DB_PATH"),
			MappingPath: getEnvOrDefault("EXPORT_MAPPING", "config/account-mapping.yaml"),
			Currency:    getEnvOrDefault("EXPORT_CURRENCY", "USD"),
		},
		Debug: os.Getenv("DEBUG") == "true",
	}

	return config, nil
}

// Validate checks that the named configuration fields are set. Fields
// are addressed by dotted name, e.g. "api.accessToken".
func (c *Config) Validate(required ...string) error {
	var missing []string

	for _, name := range required {
		var value string
		switch name {
		case "api.url":
			value = c.API.URL
		case "api.accessToken":
			value = c.API.AccessToken
		case "api.clientId":
			value = c.API.ClientID
		case "api.clientSecret":
			value = c.API.ClientSecret
		case "api.ledgerId":
			value = c.API.LedgerID
		case "export.root":
			value = c.Export.Root
		case "export.mappingPath":
			value = c.Export.MappingPath
		default:
			return fmt.Errorf("unknown configuration field: %s", name)
		}

		if value == "" {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s\nPlease check your .env file or environment variables", strings.Join(missing, ", "))
	}
	return nil
}

// getEnvOrDefault returns the value of the environment variable or a
// default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
