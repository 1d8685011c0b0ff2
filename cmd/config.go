package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/etnz/holdings"
	"github.com/etnz/holdings/market"
	"gopkg.in/yaml.v3"
)

// Environment variables read when the matching flag is not set.
const (
	EnvConfigFile = "HLD_CONFIG"
	EnvBaseURL    = "HLD_BASE_URL"
	EnvStore      = "HLD_STORE"
	EnvStorePath  = "HLD_STORE_PATH"
	EnvSlot       = "HLD_SLOT"
	EnvLogLevel   = "HLD_LOG_LEVEL"
)

// Config holds the settings of the hld application.
type Config struct {
	BaseURL         string `yaml:"base_url"`         // quote service address
	Store           string `yaml:"store"`            // "file" or "sqlite"
	StorePath       string `yaml:"store_path"`       // directory holding the store
	Slot            string `yaml:"slot"`             // name of the persisted slot
	LogLevel        string `yaml:"log_level"`        // zerolog level name
	BaseCurrency    string `yaml:"base_currency"`    // currency of the prices
	DisplayCurrency string `yaml:"display_currency"` // currency reached through the exchange rate, rounded to its own fraction
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		BaseURL:         market.DefaultBaseURL,
		Store:           "file",
		StorePath:       ".holdings",
		Slot:            holdings.DefaultSlot,
		LogLevel:        "error",
		BaseCurrency:    "USD",
		DisplayCurrency: "JPY",
	}
}

// LoadConfigFile merges the YAML file at path into c. A missing file is not an
// error unless required is true.
func (c *Config) LoadConfigFile(path string, required bool) error {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot read config %q: %w", path, err)
	}
	var file Config
	if err := yaml.Unmarshal(content, &file); err != nil {
		return fmt.Errorf("cannot parse config %q: %w", path, err)
	}
	c.merge(file)
	return nil
}

// merge overrides the fields of c with the non empty fields of o.
func (c *Config) merge(o Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.BaseURL, o.BaseURL)
	set(&c.Store, o.Store)
	set(&c.StorePath, o.StorePath)
	set(&c.Slot, o.Slot)
	set(&c.LogLevel, o.LogLevel)
	set(&c.BaseCurrency, o.BaseCurrency)
	set(&c.DisplayCurrency, o.DisplayCurrency)
}

// Validate checks the values that cannot be checked later.
func (c Config) Validate() error {
	switch c.Store {
	case "file", "sqlite":
	default:
		return fmt.Errorf("unsupported store %q, want \"file\" or \"sqlite\"", c.Store)
	}
	if c.Slot == "" {
		return errors.New("slot name is required")
	}
	if c.BaseCurrency == c.DisplayCurrency {
		return fmt.Errorf("base and display currencies must differ, both are %q", c.BaseCurrency)
	}
	return nil
}
