// Package export provides conversion of ledger transactions to
// Beancount format and appending to monthly Beancount files.
package export

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// AccountMapping maps a ledger account name to a Beancount account name.
type AccountMapping struct {
	Ledger    string `yaml:"ledger"`
	Beancount string `yaml:"beancount"`
}

// MappingConfig represents the account mapping configuration file.
type MappingConfig struct {
	Accounts       []AccountMapping `yaml:"accounts"`
	FallbackPrefix string           `yaml:"fallback_prefix"` // default "Expenses:Unmapped"
}

// Mapper maps ledger account names to Beancount account names.
type Mapper struct {
	toBeancount    map[string]string
	fallbackPrefix string
}

// NewMapper creates a Mapper from a YAML configuration file.
func NewMapper(configPath string) (*Mapper, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file: %w", err)
	}

	var config MappingConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse mapping file: %w", err)
	}
	return NewMapperFromConfig(config), nil
}

// NewMapperFromConfig creates a Mapper from an in-memory configuration.
func NewMapperFromConfig(config MappingConfig) *Mapper {
	toBeancount := make(map[string]string, len(config.Accounts))
	for _, m := range config.Accounts {
		toBeancount[m.Ledger] = m.Beancount
	}

	fallback := config.FallbackPrefix
	if fallback == "" {
		fallback = "Expenses:Unmapped"
	}
	return &Mapper{toBeancount: toBeancount, fallbackPrefix: fallback}
}

// BeancountAccount returns the Beancount account for a ledger account
// name. Unmapped names fall back to a sanitized account under the
// fallback prefix.
func (m *Mapper) BeancountAccount(ledgerName string) string {
	if account := m.toBeancount[ledgerName]; account != "" {
		return account
	}
	return fmt.Sprintf("%s:%s", m.fallbackPrefix, sanitizeAccountName(ledgerName))
}

// HasMapping checks whether an explicit mapping exists.
func (m *Mapper) HasMapping(ledgerName string) bool {
	_, ok := m.toBeancount[ledgerName]
	return ok
}

// sanitizeAccountName turns an arbitrary account name into a valid
// Beancount account component (capitalized, no spaces or punctuation).
func sanitizeAccountName(name string) string {
	var b strings.Builder
	upperNext := true
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
			if upperNext {
				r = r - 'a' + 'A'
			}
			b.WriteRune(r)
			upperNext = false
		case (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			upperNext = false
		default:
			upperNext = true
		}
	}
	if b.Len() == 0 {
		return "Unknown"
	}
	return b.String()
}
